// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2025-2026 ozanparquet contributors
// https://github.com/skursatToklucu/ozanparquet

// Package auth owns the admin authentication state seen by the access gate
// and the credential/token service behind it.
package auth

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/skursatToklucu/ozanparquet/internal/pkg/logger"
)

// State is the authentication state of a visitor.
type State int

const (
	// StatePending means the session check has not settled yet.
	StatePending State = iota
	// StateAuthenticated means a signed-in administrator.
	StateAuthenticated
	// StateAnonymous means no admin session, including failed checks.
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateAuthenticated:
		return "authenticated-admin"
	case StateAnonymous:
		return "anonymous"
	}
	return "unknown"
}

// Admin is the signed-in administrator as exposed to views.
type Admin struct {
	ID       uuid.UUID
	Email    string
	FullName string
}

// Credential is what the login form submits.
type Credential struct {
	Email    string
	Password string
}

// Collaborator is the backend that actually authenticates. CurrentAdmin
// returns (nil, nil) for a visitor without an admin session.
type Collaborator interface {
	CurrentAdmin(ctx context.Context) (*Admin, error)
	SignIn(ctx context.Context, cred Credential) (*Admin, error)
	SignOut(ctx context.Context) error
}

// Session holds the authentication state for one visitor. It starts
// pending; Start runs a single asynchronous check that settles it to
// authenticated or anonymous. Once settled it never returns to pending and
// only SignIn and SignOut change it.
type Session struct {
	collab Collaborator
	log    *logger.Logger

	mu        sync.RWMutex
	state     State
	admin     *Admin
	started   bool
	settled   chan struct{}
	listeners map[int]func(State)
	nextID    int
}

// NewSession returns a pending session backed by collab.
func NewSession(collab Collaborator, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	return &Session{
		collab:    collab,
		log:       log.Named("auth"),
		settled:   make(chan struct{}),
		listeners: make(map[int]func(State)),
	}
}

// Start launches the session check. Calls after the first are no-ops.
// The check runs under ctx; its result is published even if no caller is
// waiting any more.
func (s *Session) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		admin, err := s.collab.CurrentAdmin(ctx)
		if err != nil {
			s.log.Warn("session check failed", "error", err)
			admin = nil
		}
		s.settle(admin, true)
	}()
}

// Wait blocks until the check settles or ctx is done, then returns the
// state at that moment. A pending result means the caller gave up first.
func (s *Session) Wait(ctx context.Context) State {
	select {
	case <-s.settled:
	case <-ctx.Done():
	}
	return s.State()
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Admin returns the signed-in administrator, or nil.
func (s *Session) Admin() *Admin {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.admin
}

// SignIn authenticates through the collaborator. On failure the state is
// left as it was and the collaborator's error is returned.
func (s *Session) SignIn(ctx context.Context, cred Credential) (*Admin, error) {
	admin, err := s.collab.SignIn(ctx, cred)
	if err != nil {
		return nil, err
	}
	s.settle(admin, false)
	return admin, nil
}

// SignOut ends the admin session. The state becomes anonymous even when the
// collaborator reports an error, which is returned.
func (s *Session) SignOut(ctx context.Context) error {
	err := s.collab.SignOut(ctx)
	s.settle(nil, false)
	return err
}

// Subscribe registers fn to run after every state change. The returned
// function removes it.
func (s *Session) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// settle records a result. The initial check only applies while the state
// is still pending, so it cannot override an explicit sign-in or sign-out
// that finished first.
func (s *Session) settle(admin *Admin, fromCheck bool) {
	s.mu.Lock()
	if fromCheck && s.state != StatePending {
		s.mu.Unlock()
		return
	}

	prev := s.state
	if admin != nil {
		s.state = StateAuthenticated
	} else {
		s.state = StateAnonymous
	}
	s.admin = admin

	select {
	case <-s.settled:
	default:
		close(s.settled)
	}

	next := s.state
	var notify []func(State)
	if next != prev {
		notify = make([]func(State), 0, len(s.listeners))
		for _, fn := range s.listeners {
			notify = append(notify, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range notify {
		fn(next)
	}
}
