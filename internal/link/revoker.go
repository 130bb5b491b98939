package link

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/expensebud/backend/internal/upstream"
	"github.com/rs/zerolog/log"
)

// ErrRevokerClosed is returned when revocations are enqueued after
// the revoker has been stopped.
var ErrRevokerClosed = errors.New("revocation queue is closed")

type revocation struct {
	accessToken string
	attempt     int
}

// Revoker revokes access tokens of removed linked accounts with the
// provider in the background.
//
// Failed revocations are retried with a linearly growing delay.
// Revocations still queued when the revoker is stopped are dropped.
type Revoker struct {
	provider    upstream.Provider
	queue       chan revocation
	closeChan   chan struct{}
	wg          sync.WaitGroup
	mu          sync.RWMutex
	closed      bool
	maxAttempts int
	backoff     time.Duration
}

// NewRevoker creates a revoker that can hold bufferSize revocations.
func NewRevoker(provider upstream.Provider, bufferSize int) *Revoker {
	return &Revoker{
		provider:    provider,
		queue:       make(chan revocation, bufferSize),
		closeChan:   make(chan struct{}),
		maxAttempts: 3,
		backoff:     time.Second,
	}
}

// Start starts workers revoking queued access tokens.
func (r *Revoker) Start(ctx context.Context, workers int) {
	for i := 0; i < workers; i++ {
		r.wg.Add(1)
		go r.worker(ctx)
	}
}

// Enqueue queues the revocation of an access token.
//
// It does not wait for the revocation, only for space in the queue.
func (r *Revoker) Enqueue(ctx context.Context, accessToken string) error {
	return r.enqueue(ctx, revocation{accessToken: accessToken})
}

func (r *Revoker) enqueue(ctx context.Context, rev revocation) error {
	r.mu.RLock()
	closed := r.closed
	r.mu.RUnlock()

	if closed {
		return ErrRevokerClosed
	}

	select {
	case r.queue <- rev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-r.closeChan:
		return ErrRevokerClosed
	}
}

func (r *Revoker) worker(ctx context.Context) {
	defer r.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.closeChan:
			return
		case rev := <-r.queue:
			r.revoke(ctx, rev)
		}
	}
}

func (r *Revoker) revoke(ctx context.Context, rev revocation) {
	rev.attempt++
	logger := log.With().Str("token", fingerprint(rev.accessToken)).Int("attempt", rev.attempt).Logger()

	err := r.provider.RemoveItem(ctx, rev.accessToken)
	if err == nil {
		logger.Info().Msg("revoked access token")
		return
	}

	if rev.attempt >= r.maxAttempts {
		logger.Error().Err(err).Msg("giving up revoking access token")
		return
	}

	logger.Warn().Err(err).Msg("revoking access token failed, retrying")
	time.AfterFunc(time.Duration(rev.attempt)*r.backoff, func() {
		if err := r.enqueue(ctx, rev); err != nil {
			logger.Error().Err(err).Msg("could not requeue revocation")
		}
	})
}

// Stop stops the workers and waits for running revocations to finish.
func (r *Revoker) Stop(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.closeChan)
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
