// Package tracker owns the location heartbeat of open sessions. Clients
// report their position as often as they like; the tracker persists one
// sample per interval and drops the rest. Persistence failures are logged
// and never surface to the session.
package tracker

import (
	"context"
	"sync"
	"time"

	"workforce/backend/internal/entity"

	"github.com/rs/zerolog"
)

// DefaultInterval matches the heartbeat period of the mobile client.
const DefaultInterval = 5 * time.Minute

// Store persists heartbeat samples.
type Store interface {
	RecordPing(ctx context.Context, ping entity.LocationPing) error
}

type session struct {
	cancel context.CancelFunc

	mu     sync.Mutex
	sample *entity.LocationPing
}

func (s *session) observe(p entity.LocationPing) {
	s.mu.Lock()
	s.sample = &p
	s.mu.Unlock()
}

func (s *session) take() *entity.LocationPing {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.sample
	s.sample = nil
	return p
}

// Tracker runs one flush loop per open session. Loops are cancelled
// deterministically on Stop, never left to a view lifecycle.
type Tracker struct {
	store    Store
	interval time.Duration
	log      zerolog.Logger

	mu       sync.Mutex
	sessions map[int]*session
}

func New(store Store, interval time.Duration, log zerolog.Logger) *Tracker {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Tracker{
		store:    store,
		interval: interval,
		log:      log,
		sessions: map[int]*session{},
	}
}

// Start begins tracking a session. Starting an already tracked session is a
// no-op.
func (t *Tracker) Start(sessionID int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.sessions[sessionID]; ok {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &session{cancel: cancel}
	t.sessions[sessionID] = s

	go t.run(ctx, sessionID, s)
}

// Observe records the latest client-reported position for a session. Unknown
// sessions are ignored: a late ping after check-out must not revive tracking.
func (t *Tracker) Observe(sessionID int, latitude, longitude, accuracy float64) {
	t.mu.Lock()
	s, ok := t.sessions[sessionID]
	t.mu.Unlock()
	if !ok {
		return
	}

	s.observe(entity.LocationPing{
		AttendanceID: sessionID,
		Latitude:     latitude,
		Longitude:    longitude,
		Accuracy:     accuracy,
	})
}

// Stop cancels the session's flush loop. Called on check-out.
func (t *Tracker) Stop(sessionID int) {
	t.mu.Lock()
	s, ok := t.sessions[sessionID]
	if ok {
		delete(t.sessions, sessionID)
	}
	t.mu.Unlock()

	if ok {
		s.cancel()
	}
}

// StopAll cancels every loop. Called on service shutdown.
func (t *Tracker) StopAll() {
	t.mu.Lock()
	sessions := t.sessions
	t.sessions = map[int]*session{}
	t.mu.Unlock()

	for _, s := range sessions {
		s.cancel()
	}
}

func (t *Tracker) run(ctx context.Context, sessionID int, s *session) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.flush(ctx, sessionID, s)
		}
	}
}

func (t *Tracker) flush(ctx context.Context, sessionID int, s *session) {
	sample := s.take()
	if sample == nil {
		return
	}

	storeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := t.store.RecordPing(storeCtx, *sample); err != nil {
		t.log.Warn().Err(err).Int("session", sessionID).Msg("location heartbeat failed")
	}
}
