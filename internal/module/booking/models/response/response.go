package response

import "salon-booking-service/internal/pkg/timegrid"

type Slot struct {
	Time      string         `json:"time"`
	Available bool           `json:"available"`
	Clock     timegrid.Clock `json:"-"`
}

type Availability struct {
	StaffID string `json:"staff_id,omitempty"`
	Date    string `json:"date"`
	Slots   []Slot `json:"slots"`
	// Degraded is set when the store could not be read and every slot was
	// reported free.
	Degraded bool `json:"degraded"`
}
