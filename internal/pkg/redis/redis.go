package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"salon-booking-service/config"

	"github.com/redis/go-redis/v9"
)

func SetupClient(cfg *config.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("error connect redis: %v", err)
	}

	return client
}
