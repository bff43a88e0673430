package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aussiebroadwan/twitchauth/internal/idp/store"
)

// HousekeepingService periodically deletes expired and revoked access tokens.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	// Grace keeps expired tokens around for a while so a late validate still
	// finds the record.
	Grace time.Duration

	mu      sync.Mutex
	started bool
	stopped bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// NewHousekeepingService returns a stopped service. A non-positive interval
// defaults to one hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs a sweep immediately and then every Interval until Stop. Calls
// after the first, or after Stop, do nothing.
func (s *HousekeepingService) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started || s.stopped {
		return
	}
	s.started = true

	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any in-flight sweep has finished. It returns at once
// when the service never started and is safe to call more than once.
func (s *HousekeepingService) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	close(s.stopCh)
	s.mu.Unlock()

	if !started {
		return
	}
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background())

	for {
		select {
		case <-ticker.C:
			s.Sweep(context.Background())
		case <-s.stopCh:
			return
		}
	}
}

// Sweep deletes stale tokens once and returns how many were removed.
func (s *HousekeepingService) Sweep(ctx context.Context) int64 {
	cutoff := time.Now().Add(-s.Grace)

	n, err := s.Store.AccessTokens().DeleteStaleAccessTokens(ctx, cutoff)
	if err != nil {
		s.Logger.Error("failed to delete stale access tokens", "error", err)
		return 0
	}

	s.Logger.Info("housekeeping sweep completed", "deleted_tokens", n)
	return n
}
