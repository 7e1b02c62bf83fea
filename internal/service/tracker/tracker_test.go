package tracker

import (
	"context"
	"sync"
	"testing"
	"time"

	"workforce/backend/internal/entity"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu    sync.Mutex
	pings []entity.LocationPing
}

func (f *fakeStore) RecordPing(_ context.Context, p entity.LocationPing) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pings = append(f.pings, p)
	return nil
}

func (f *fakeStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pings)
}

func (f *fakeStore) last() entity.LocationPing {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pings[len(f.pings)-1]
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestFlushLatestSampleOnly(t *testing.T) {
	store := &fakeStore{}
	tr := New(store, 20*time.Millisecond, zerolog.Nop())
	defer tr.StopAll()

	tr.Start(7)
	tr.Observe(7, 35.70, 139.77, 12)
	tr.Observe(7, 35.71, 139.78, 8)

	waitFor(t, func() bool { return store.count() >= 1 })

	ping := store.last()
	require.Equal(t, 7, ping.AttendanceID)
	require.Equal(t, 35.71, ping.Latitude)
	require.Equal(t, 139.78, ping.Longitude)
}

func TestNoSampleNoFlush(t *testing.T) {
	store := &fakeStore{}
	tr := New(store, 10*time.Millisecond, zerolog.Nop())
	defer tr.StopAll()

	tr.Start(3)
	time.Sleep(60 * time.Millisecond)

	require.Zero(t, store.count())
}

func TestStopIsDeterministic(t *testing.T) {
	store := &fakeStore{}
	tr := New(store, 10*time.Millisecond, zerolog.Nop())

	tr.Start(5)
	tr.Observe(5, 35.70, 139.77, 10)
	waitFor(t, func() bool { return store.count() >= 1 })

	tr.Stop(5)
	flushed := store.count()

	// samples after Stop belong to no session and are dropped
	tr.Observe(5, 35.99, 139.99, 10)
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, flushed, store.count())
}

func TestStartTwiceIsNoop(t *testing.T) {
	store := &fakeStore{}
	tr := New(store, 10*time.Millisecond, zerolog.Nop())
	defer tr.StopAll()

	tr.Start(1)
	tr.Start(1)
	tr.Observe(1, 35.70, 139.77, 10)

	waitFor(t, func() bool { return store.count() >= 1 })
	time.Sleep(30 * time.Millisecond)

	// one loop flushes the single sample exactly once
	require.Equal(t, 1, store.count())
}
