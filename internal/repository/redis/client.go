// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package redis holds the Redis-backed stores: admin sessions, revoked
// tokens, buffered view counters and the flush lock.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces every key the application writes.
const DefaultKeyPrefix = "ozanparquet"

// Options configures the Redis client
type Options struct {
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	KeyPrefix    string
}

// DefaultOptions returns sensible default options
func DefaultOptions() Options {
	return Options{
		PoolSize:     10,
		MinIdleConns: 2,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		KeyPrefix:    DefaultKeyPrefix,
	}
}

// Client wraps redis.Client with key helpers.
type Client struct {
	rdb    *redis.Client
	prefix string
}

// New creates a new Redis client
func New(ctx context.Context, url string, opts Options) (*Client, error) {
	options, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	if opts.PoolSize > 0 {
		options.PoolSize = opts.PoolSize
	}
	if opts.MinIdleConns > 0 {
		options.MinIdleConns = opts.MinIdleConns
	}
	if opts.DialTimeout > 0 {
		options.DialTimeout = opts.DialTimeout
	}
	if opts.ReadTimeout > 0 {
		options.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		options.WriteTimeout = opts.WriteTimeout
	}

	rdb := redis.NewClient(options)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return NewFromRedis(rdb, opts.KeyPrefix), nil
}

// NewFromRedis wraps an existing client.
func NewFromRedis(rdb *redis.Client, prefix string) *Client {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &Client{rdb: rdb, prefix: prefix}
}

// Redis returns the underlying redis.Client
func (c *Client) Redis() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// Ping checks Redis connectivity
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// HealthCheck pings and checks the pool has connections.
func (c *Client) HealthCheck(ctx context.Context) error {
	if err := c.Ping(ctx); err != nil {
		return fmt.Errorf("ping failed: %w", err)
	}
	if stats := c.rdb.PoolStats(); stats.TotalConns == 0 {
		return fmt.Errorf("no connections available")
	}
	return nil
}

// DBSize returns the number of keys in the database
func (c *Client) DBSize(ctx context.Context) (int64, error) {
	return c.rdb.DBSize(ctx).Result()
}

// key joins the prefix with parts.
func (c *Client) key(parts ...string) string {
	k := c.prefix
	for _, p := range parts {
		k += ":" + p
	}
	return k
}

// SessionKey is the key holding one admin session.
func (c *Client) SessionKey(sessionID string) string {
	return c.key("session", sessionID)
}

// AdminSessionsKey is the set of session IDs belonging to one admin.
func (c *Client) AdminSessionsKey(adminID string) string {
	return c.key("admin_sessions", adminID)
}

// RevokedTokenKey marks a revoked token ID.
func (c *Client) RevokedTokenKey(tokenID string) string {
	return c.key("revoked", tokenID)
}

// ViewCountKey is the hash of buffered view increments for a kind.
func (c *Client) ViewCountKey(kind string) string {
	return c.key("views", kind)
}

// LockKey names a distributed lock.
func (c *Client) LockKey(resource string) string {
	return c.key("lock", resource)
}
