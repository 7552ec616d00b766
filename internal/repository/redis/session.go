// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/skursatToklucu/ozanparquet/internal/pkg/crypto"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("session not found")

// Session is a signed-in admin's browser session.
type Session struct {
	ID          string    `json:"id"`
	AdminID     string    `json:"admin_id"`
	Email       string    `json:"email"`
	AccessToken string    `json:"access_token"`
	CSRFToken   string    `json:"csrf_token"`
	UserAgent   string    `json:"user_agent,omitempty"`
	IPAddress   string    `json:"ip_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SessionStore keeps sessions as JSON with a TTL, plus a per-admin index.
type SessionStore struct {
	client *Client
	ttl    time.Duration
}

// NewSessionStore creates a session store.
func NewSessionStore(client *Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

// TTL returns the session lifetime.
func (s *SessionStore) TTL() time.Duration {
	return s.ttl
}

// Create stores a new session with fresh ID and CSRF token.
func (s *SessionStore) Create(ctx context.Context, adminID, email, accessToken, userAgent, ip string) (*Session, error) {
	id, err := crypto.RandomToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}
	csrf, err := crypto.RandomToken(32)
	if err != nil {
		return nil, fmt.Errorf("generate csrf token: %w", err)
	}

	now := time.Now().UTC()
	sess := &Session{
		ID:          id,
		AdminID:     adminID,
		Email:       email,
		AccessToken: accessToken,
		CSRFToken:   csrf,
		UserAgent:   userAgent,
		IPAddress:   ip,
		CreatedAt:   now,
		ExpiresAt:   now.Add(s.ttl),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	rdb := s.client.Redis()
	indexKey := s.client.AdminSessionsKey(adminID)
	pipe := rdb.TxPipeline()
	pipe.Set(ctx, s.client.SessionKey(id), data, s.ttl)
	pipe.SAdd(ctx, indexKey, id)
	pipe.Expire(ctx, indexKey, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return sess, nil
}

// Get loads a session.
func (s *SessionStore) Get(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, ErrSessionNotFound
	}
	data, err := s.client.Redis().Get(ctx, s.client.SessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &sess, nil
}

// Delete removes a session. Deleting an unknown session is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	sess, err := s.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := s.client.Redis().TxPipeline()
	pipe.Del(ctx, s.client.SessionKey(id))
	pipe.SRem(ctx, s.client.AdminSessionsKey(sess.AdminID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteAllForAdmin removes every session of one admin and returns how many
// were removed.
func (s *SessionStore) DeleteAllForAdmin(ctx context.Context, adminID string) (int, error) {
	rdb := s.client.Redis()
	indexKey := s.client.AdminSessionsKey(adminID)

	ids, err := rdb.SMembers(ctx, indexKey).Result()
	if err != nil {
		return 0, fmt.Errorf("list admin sessions: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, s.client.SessionKey(id))
	}
	keys = append(keys, indexKey)

	n, err := rdb.Del(ctx, keys...).Result()
	if err != nil {
		return 0, fmt.Errorf("delete admin sessions: %w", err)
	}
	if len(ids) > 0 {
		n-- // the index key itself
	}
	return int(n), nil
}
