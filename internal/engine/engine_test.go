package engine

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type chanMonitor struct {
	events chan domain.SessionEvent
}

func (m *chanMonitor) Start(context.Context) error        { return nil }
func (m *chanMonitor) Stop(context.Context) error         { return nil }
func (m *chanMonitor) Events() <-chan domain.SessionEvent { return m.events }

type fakeNotification struct {
	mu      sync.Mutex
	starts  int
	stops   int
	started bool
	ready   bool // whether Start succeeds
}

func (f *fakeNotification) Start(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
	f.started = f.ready
}

func (f *fakeNotification) Stop(context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
	f.started = false
}

func (f *fakeNotification) Started() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started
}

func (f *fakeNotification) startCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.starts
}

func newSupervisor(n *fakeNotification) (*Supervisor, *chanMonitor) {
	mon := &chanMonitor{events: make(chan domain.SessionEvent, 10)}
	s := NewSupervisor(zap.NewNop(), mon, n)
	s.debounce = 10 * time.Millisecond
	return s, mon
}

func TestSupervisorStartsOnPlayableState(t *testing.T) {
	for _, state := range []domain.PlaybackState{domain.StatePlaying, domain.StatePaused} {
		t.Run(state.String(), func(t *testing.T) {
			n := &fakeNotification{ready: true}
			s, mon := newSupervisor(n)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			require.NoError(t, s.Start(ctx))

			mon.events <- domain.SessionEvent{Player: "org.mpris.MediaPlayer2.test", State: state}
			require.Eventually(t, func() bool { return n.startCount() == 1 }, time.Second, 5*time.Millisecond)

			// Already started: later events do not restart
			mon.events <- domain.SessionEvent{Player: "org.mpris.MediaPlayer2.test", State: state}
			time.Sleep(50 * time.Millisecond)
			assert.Equal(t, 1, n.startCount())
		})
	}
}

func TestSupervisorDebouncesBursts(t *testing.T) {
	n := &fakeNotification{ready: true}
	s, mon := newSupervisor(n)
	s.debounce = 50 * time.Millisecond
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))

	// The burst ends in Stopped, so nothing starts
	mon.events <- domain.SessionEvent{State: domain.StatePlaying}
	mon.events <- domain.SessionEvent{State: domain.StatePaused}
	mon.events <- domain.SessionEvent{State: domain.StateStopped}
	time.Sleep(150 * time.Millisecond)
	assert.Zero(t, n.startCount())
}

func TestSupervisorIgnoresUnplayableEvents(t *testing.T) {
	n := &fakeNotification{ready: true}
	s, mon := newSupervisor(n)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))

	mon.events <- domain.SessionEvent{State: domain.StateBuffering}
	time.Sleep(40 * time.Millisecond)
	mon.events <- domain.SessionEvent{State: domain.StatePlaying, Vanished: true}
	time.Sleep(40 * time.Millisecond)
	assert.Zero(t, n.startCount())
}

func TestSupervisorRetriesUntilReady(t *testing.T) {
	n := &fakeNotification{ready: false}
	s, mon := newSupervisor(n)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, s.Start(ctx))

	mon.events <- domain.SessionEvent{State: domain.StatePlaying}
	require.Eventually(t, func() bool { return n.startCount() == 1 }, time.Second, 5*time.Millisecond)

	n.mu.Lock()
	n.ready = true
	n.mu.Unlock()

	mon.events <- domain.SessionEvent{State: domain.StatePlaying}
	require.Eventually(t, func() bool { return n.Started() }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, n.startCount())
}

func TestSupervisorLoopExits(t *testing.T) {
	t.Run("Context cancelled", func(t *testing.T) {
		s, _ := newSupervisor(&fakeNotification{})
		ctx, cancel := context.WithCancel(context.Background())
		require.NoError(t, s.Start(ctx))
		cancel()
		select {
		case <-s.done:
		case <-time.After(time.Second):
			t.Fatal("loop did not exit")
		}
	})

	t.Run("Channel closed", func(t *testing.T) {
		s, mon := newSupervisor(&fakeNotification{})
		require.NoError(t, s.Start(context.Background()))
		close(mon.events)
		select {
		case <-s.done:
		case <-time.After(time.Second):
			t.Fatal("loop did not exit")
		}
	})
}

func TestSupervisorStopRemovesNotification(t *testing.T) {
	n := &fakeNotification{ready: true, started: true}
	s, _ := newSupervisor(n)
	require.NoError(t, s.Stop(context.Background()))
	assert.Equal(t, 1, n.stops)
	assert.False(t, n.Started())
}
