package messagestream

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
)

// NewRouter subscribes handlerFunc to topic. Messages that still fail after
// the retries are forwarded to poisonTopic.
func NewRouter(publisher message.Publisher, poisonTopic, handlerName, topic string, subscriber message.Subscriber, handlerFunc message.NoPublishHandlerFunc) (*message.Router, error) {
	logger := watermill.NewStdLogger(false, false)

	router, err := message.NewRouter(message.RouterConfig{}, logger)
	if err != nil {
		return nil, err
	}

	poisonQueue, err := middleware.PoisonQueue(publisher, poisonTopic)
	if err != nil {
		return nil, err
	}

	router.AddMiddleware(
		middleware.Recoverer,
		poisonQueue,
		middleware.Retry{
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			Multiplier:      2,
			Logger:          logger,
		}.Middleware,
		middleware.CorrelationID,
	)

	router.AddNoPublisherHandler(handlerName, topic, subscriber, handlerFunc)

	return router, nil
}
