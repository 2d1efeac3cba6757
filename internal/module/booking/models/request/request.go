package request

type Availability struct {
	StaffID string `query:"staff_id" validate:"omitempty,max=64"`
	Date    string `query:"date" validate:"required,datetime=2006-01-02"`
}
