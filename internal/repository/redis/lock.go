// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skursatToklucu/ozanparquet/internal/pkg/crypto"
)

// Lock is a best-effort distributed lock held for at most a TTL.
type Lock struct {
	client *Client
	key    string
	token  string
}

// AcquireLock takes the named lock if free. It returns nil, nil when
// another holder has it.
func (c *Client) AcquireLock(ctx context.Context, resource string, ttl time.Duration) (*Lock, error) {
	token, err := crypto.RandomToken(16)
	if err != nil {
		return nil, fmt.Errorf("lock token: %w", err)
	}
	key := c.LockKey(resource)
	ok, err := c.rdb.SetNX(ctx, key, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", resource, err)
	}
	if !ok {
		return nil, nil
	}
	return &Lock{client: c, key: key, token: token}, nil
}

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// Release frees the lock if this holder still owns it.
func (l *Lock) Release(ctx context.Context) error {
	if err := releaseScript.Run(ctx, l.client.rdb, []string{l.key}, l.token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("release lock: %w", err)
	}
	return nil
}
