package messagestream

import (
	"fmt"

	"salon-booking-service/config"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-amqp/pkg/amqp"
	"github.com/ThreeDotsLabs/watermill/message"
)

type Amqp struct {
	config amqp.Config
	logger watermill.LoggerAdapter
}

func NewAmpq(cfg *config.MessageStreamConfig) *Amqp {
	uri := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.Username, cfg.Password, cfg.Host, cfg.Port)
	return &Amqp{
		config: amqp.NewDurableQueueConfig(uri),
		logger: watermill.NewStdLogger(false, false),
	}
}

func (a *Amqp) NewSubscriber() (message.Subscriber, error) {
	return amqp.NewSubscriber(a.config, a.logger)
}

func (a *Amqp) NewPublisher() (message.Publisher, error) {
	return amqp.NewPublisher(a.config, a.logger)
}
