package scheduler

import (
	"context"
	"fmt"
	"net/http"

	"salon-booking-service/config"

	"github.com/hibiken/asynq"
	"github.com/hibiken/asynqmon"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const (
	TypeAccrueLoyaltyPoints = "accrue_loyalty_points"
)

type Scheduler struct {
	Log *otelzap.Logger
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// StartMonitoring serves the asynqmon dashboard on addr under /monitoring.
func (s *Scheduler) StartMonitoring(cfg *config.RedisConfig, addr string) {
	h := asynqmon.New(asynqmon.Options{
		RootPath:     "/monitoring",
		RedisConnOpt: redisOpt(cfg),
	})

	mux := http.NewServeMux()
	mux.Handle(h.RootPath()+"/", h)

	if err := http.ListenAndServe(addr, mux); err != nil {
		s.Log.Error("error start monitoring scheduler", zap.Error(err))
	}
}

func (s *Scheduler) InitClient(cfg *config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

func (s *Scheduler) StartHandler(cfg *config.RedisConfig, taskTypes []string, handlerFunc []func(ctx context.Context, t *asynq.Task) error) {
	srv := asynq.NewServer(
		redisOpt(cfg),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 10,
			},
		},
	)

	mux := asynq.NewServeMux()
	for i, taskType := range taskTypes {
		mux.HandleFunc(taskType, handlerFunc[i])
	}

	if err := srv.Run(mux); err != nil {
		s.Log.Error("error start handler scheduler", zap.Error(err))
	}
}
