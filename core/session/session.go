// Package session owns the lifecycle of one operator session: the
// credential, the poll loop and its cancellation.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/kilianp07/dispatchconsole/auth"
	"github.com/kilianp07/dispatchconsole/core/logger"
	"github.com/kilianp07/dispatchconsole/core/poll"
)

// Credential is the minimal view the session needs to gate polling.
type Credential interface {
	Valid() bool
}

// ErrNoCredential is returned by Start when no valid credential is present.
// It wraps auth.ErrNoCredential so callers can match either sentinel.
var ErrNoCredential = fmt.Errorf("session: %w", auth.ErrNoCredential)

// ErrAlreadyStarted is returned by Start when the session is running.
var ErrAlreadyStarted = errors.New("session: already started")

// Session ties a credential to a running poller. Start spawns the poll loop;
// Stop cancels it deterministically so no timer outlives the credential.
type Session struct {
	id     uuid.UUID
	cred   Credential
	poller *poll.Poller
	log    logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New creates a stopped session.
func New(cred Credential, poller *poll.Poller, log logger.Logger) *Session {
	return &Session{id: uuid.New(), cred: cred, poller: poller, log: log}
}

// ID identifies the session in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Start launches the poll loop. It fails when the credential is absent: no
// anonymous reads.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrAlreadyStarted
	}
	if s.cred == nil || !s.cred.Valid() {
		return ErrNoCredential
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	s.log.Infof("session %s started", s.id)
	go func() {
		defer close(s.done)
		if err := s.poller.Run(runCtx); err != nil {
			s.log.Warnf("poller exited: %v", err)
		}
	}()
	return nil
}

// Stop cancels the poll loop and waits for it to exit. Safe to call twice.
func (s *Session) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
	s.log.Infof("session %s stopped", s.id)
}

// Running reports whether the poll loop is active.
func (s *Session) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}
