package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// Locker hands out distributed mutexes keyed by name.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(context.Context) error, err error)
}

type redsyncLocker struct {
	rs     *redsync.Redsync
	prefix string
	expiry time.Duration
}

func NewLocker(client *redis.Client, prefix string, expiry time.Duration) Locker {
	pool := goredis.NewPool(client)
	return &redsyncLocker{
		rs:     redsync.New(pool),
		prefix: prefix,
		expiry: expiry,
	}
}

func (l *redsyncLocker) Lock(ctx context.Context, key string) (func(context.Context) error, error) {
	mutex := l.rs.NewMutex(l.prefix+key,
		redsync.WithExpiry(l.expiry),
		redsync.WithTries(64),
		redsync.WithRetryDelay(50*time.Millisecond),
	)

	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}

	return func(ctx context.Context) error {
		ok, err := mutex.UnlockContext(ctx)
		if err != nil {
			return fmt.Errorf("unlock %s: %w", key, err)
		}
		if !ok {
			return fmt.Errorf("unlock %s: lock expired before release", key)
		}
		return nil
	}, nil
}
