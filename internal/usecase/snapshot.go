package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"RivalEdge/internal/domain/models"
	drepo "RivalEdge/internal/domain/repository"
	xlogger "RivalEdge/pkg/logger"
)

// ErrDataUnavailable signals the gateway could not supply a usable
// reference data set. Fatal for the current request, transient across
// requests.
var ErrDataUnavailable = errors.New("reference data unavailable")

// SnapshotStore holds the current reference snapshot behind an atomic
// pointer. Refresh builds a whole new snapshot and swaps it in; readers
// always see a complete, internally consistent value.
type SnapshotStore struct {
	gateway drepo.Gateway
	metrics drepo.Metrics
	logger  *xlogger.Logger
	ttl     time.Duration

	mu      sync.Mutex // serializes refreshes, not reads
	current atomic.Pointer[models.Snapshot]
}

func NewSnapshotStore(gateway drepo.Gateway, metrics drepo.Metrics, logger *xlogger.Logger, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{gateway: gateway, metrics: metrics, logger: logger, ttl: ttl}
}

// Current returns the held snapshot, or nil before the first refresh.
func (s *SnapshotStore) Current() *models.Snapshot {
	return s.current.Load()
}

// Refresh fetches bootstrap and fixture data and atomically replaces the
// snapshot. Expected network failures come back as errors, never panics.
func (s *SnapshotStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	bootstrap, err := s.gateway.FetchBootstrap(ctx)
	if err != nil {
		s.metrics.RecordRefresh(false, time.Since(start).Seconds())
		s.metrics.RecordGatewayError("bootstrap")
		return fmt.Errorf("fetch bootstrap: %w", err)
	}

	fixtures, err := s.gateway.FetchFixtures(ctx)
	if err != nil {
		s.metrics.RecordRefresh(false, time.Since(start).Seconds())
		s.metrics.RecordGatewayError("fixtures")
		return fmt.Errorf("fetch fixtures: %w", err)
	}

	snap, err := models.NewSnapshot(bootstrap.Players, bootstrap.Teams, bootstrap.Events, fixtures, bootstrap.CurrentGameweek)
	if err != nil {
		s.metrics.RecordRefresh(false, time.Since(start).Seconds())
		s.metrics.RecordGatewayError("shape")
		return fmt.Errorf("build snapshot: %w", err)
	}

	s.current.Store(snap)
	s.metrics.RecordRefresh(true, time.Since(start).Seconds())
	s.metrics.RecordSnapshotSize(len(snap.Players), len(snap.Fixtures))
	s.logger.Info("reference data refreshed",
		xlogger.Int("players", len(snap.Players)),
		xlogger.Int("fixtures", len(snap.Fixtures)),
		xlogger.Int("gameweek", snap.CurrentGameweek),
	)
	return nil
}

// EnsureLoaded returns a usable snapshot, refreshing when none is held,
// fixtures are empty, or the held one aged past the TTL.
func (s *SnapshotStore) EnsureLoaded(ctx context.Context) (*models.Snapshot, error) {
	snap := s.Current()
	if snap != nil && len(snap.Fixtures) > 0 && (s.ttl <= 0 || snap.Age() < s.ttl) {
		return snap, nil
	}
	if err := s.Refresh(ctx); err != nil {
		// A stale snapshot beats no snapshot.
		if snap != nil && len(snap.Fixtures) > 0 {
			s.logger.Warn("refresh failed, serving stale snapshot", xlogger.Error(err))
			return snap, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return s.Current(), nil
}

// Status reports freshness for the operator endpoint.
func (s *SnapshotStore) Status() models.SnapshotStatus {
	snap := s.Current()
	if snap == nil {
		return models.SnapshotStatus{}
	}
	return models.SnapshotStatus{
		Loaded:          true,
		Players:         len(snap.Players),
		Fixtures:        len(snap.Fixtures),
		CurrentGameweek: snap.CurrentGameweek,
		AgeSeconds:      snap.Age().Seconds(),
	}
}
