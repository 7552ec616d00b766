// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// ViewCounter buffers page view increments in a Redis hash so detail page
// renders never write to PostgreSQL.
type ViewCounter struct {
	client *Client
	kind   string
}

// NewViewCounter creates a counter for one kind of entity, such as "product".
func NewViewCounter(client *Client, kind string) *ViewCounter {
	return &ViewCounter{client: client, kind: kind}
}

// Incr adds one view for id.
func (v *ViewCounter) Incr(ctx context.Context, id string) error {
	if err := v.client.Redis().HIncrBy(ctx, v.client.ViewCountKey(v.kind), id, 1).Err(); err != nil {
		return fmt.Errorf("increment view count: %w", err)
	}
	return nil
}

// Pending returns the buffered count for id.
func (v *ViewCounter) Pending(ctx context.Context, id string) (int64, error) {
	n, err := v.client.Redis().HGet(ctx, v.client.ViewCountKey(v.kind), id).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("get view count: %w", err)
	}
	return n, nil
}

var drainScript = redis.NewScript(`
local v = redis.call("HGETALL", KEYS[1])
redis.call("DEL", KEYS[1])
return v`)

// Drain atomically takes every buffered count and clears the buffer.
func (v *ViewCounter) Drain(ctx context.Context) (map[string]int64, error) {
	raw, err := drainScript.Run(ctx, v.client.Redis(), []string{v.client.ViewCountKey(v.kind)}).StringSlice()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("drain view counts: %w", err)
	}

	out := make(map[string]int64, len(raw)/2)
	for i := 0; i+1 < len(raw); i += 2 {
		n, err := strconv.ParseInt(raw[i+1], 10, 64)
		if err != nil || n <= 0 {
			continue
		}
		out[raw[i]] = n
	}
	return out, nil
}

// Restore puts counts back after a failed flush.
func (v *ViewCounter) Restore(ctx context.Context, counts map[string]int64) error {
	if len(counts) == 0 {
		return nil
	}
	key := v.client.ViewCountKey(v.kind)
	pipe := v.client.Redis().Pipeline()
	for id, n := range counts {
		pipe.HIncrBy(ctx, key, id, n)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("restore view counts: %w", err)
	}
	return nil
}
