package messagestream

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
)

// Topics published by the engine. Notification delivery subscribes to them.
const (
	TopicTransactionFinalized  = "transaction_finalized"
	TopicGroupBookingScheduled = "group_booking_scheduled"
	TopicPoisonedQueue         = "poisoned_queue"
	TopicTerminalReplay        = "terminal_checkout_replay"
)

type PoisonedQueue struct {
	TopicTarget string      `json:"topic_target"`
	ErrorMsg    string      `json:"error_msg"`
	Payload     interface{} `json:"payload"`
}

// PublishJSON marshals v and publishes it to topic as one message.
func PublishJSON(publisher message.Publisher, topic string, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return publisher.Publish(topic, message.NewMessage(watermill.NewUUID(), payload))
}
