package coordinator

import (
	"context"
	"testing"
	"time"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/genricoloni/mprisnotify/internal/domain/mocks"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeTarget struct {
	session domain.MediaSession
	state   domain.PlaybackState
	meta    domain.TrackMetadata
	stops   int
}

func (f *fakeTarget) activeSession() (domain.MediaSession, bool) {
	return f.session, f.session != nil
}

func (f *fakeTarget) playbackState() domain.PlaybackState   { return f.state }
func (f *fakeTarget) currentMetadata() domain.TrackMetadata { return f.meta }
func (f *fakeTarget) Stop(context.Context)                  { f.stops++ }

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func TestRouterDebounce(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := mocks.NewMockMediaSession(ctrl)
	target := &fakeTarget{session: session}
	r := NewRouter(zap.NewNop(), target, nil, domain.DefaultActionIDs(), 0, false)

	// Accepted at 0s, 1.1s and 2.2s. The taps at 0.5s, 1s and 1.6s fall inside the
	// window of the last accepted tap; the dropped 1.6s tap does not move the window.
	session.EXPECT().Next().Return(nil).Times(3)

	r.OnAction(domain.ActionIDNext, epoch)
	r.OnAction(domain.ActionIDNext, epoch.Add(500*time.Millisecond))
	r.OnAction(domain.ActionIDNext, epoch.Add(time.Second))
	r.OnAction(domain.ActionIDNext, epoch.Add(1100*time.Millisecond))
	r.OnAction(domain.ActionIDNext, epoch.Add(1600*time.Millisecond))
	r.OnAction(domain.ActionIDNext, epoch.Add(2200*time.Millisecond))
}

func TestRouterDebounceAcrossActions(t *testing.T) {
	ctrl := gomock.NewController(t)
	session := mocks.NewMockMediaSession(ctrl)
	target := &fakeTarget{session: session}
	r := NewRouter(zap.NewNop(), target, nil, domain.DefaultActionIDs(), 0, false)

	session.EXPECT().Next().Return(nil)

	r.OnAction(domain.ActionIDNext, epoch)
	r.OnAction(domain.ActionIDPrev, epoch.Add(200*time.Millisecond))
	r.OnAction(domain.ActionIDClose, epoch.Add(400*time.Millisecond))
	assert.Zero(t, target.stops, "close inside the window is dropped")
}

func TestRouterDispatch(t *testing.T) {
	tests := []struct {
		name     string
		actionID string
		state    domain.PlaybackState
		expect   func(*mocks.MockMediaSession)
		stops    int
	}{
		{
			name:     "PlayOrPause while playing pauses",
			actionID: domain.ActionIDPlayOrPause,
			state:    domain.StatePlaying,
			expect:   func(m *mocks.MockMediaSession) { m.EXPECT().Pause().Return(nil) },
		},
		{
			name:     "PlayOrPause while paused plays",
			actionID: domain.ActionIDPlayOrPause,
			state:    domain.StatePaused,
			expect:   func(m *mocks.MockMediaSession) { m.EXPECT().Play().Return(nil) },
		},
		{
			name:     "PlayOrPause while buffering plays",
			actionID: domain.ActionIDPlayOrPause,
			state:    domain.StateBuffering,
			expect:   func(m *mocks.MockMediaSession) { m.EXPECT().Play().Return(nil) },
		},
		{
			name:     "Play",
			actionID: domain.ActionIDPlay,
			expect:   func(m *mocks.MockMediaSession) { m.EXPECT().Play().Return(nil) },
		},
		{
			name:     "Pause",
			actionID: domain.ActionIDPause,
			expect:   func(m *mocks.MockMediaSession) { m.EXPECT().Pause().Return(nil) },
		},
		{
			name:     "Previous",
			actionID: domain.ActionIDPrev,
			expect:   func(m *mocks.MockMediaSession) { m.EXPECT().Previous().Return(nil) },
		},
		{
			name:     "Open raises the player",
			actionID: domain.ActionIDOpen,
			expect:   func(m *mocks.MockMediaSession) { m.EXPECT().Raise().Return(nil) },
		},
		{
			name:     "Close stops the coordinator",
			actionID: domain.ActionIDClose,
			expect:   func(*mocks.MockMediaSession) {},
			stops:    1,
		},
		{
			name:     "Unknown action is ignored",
			actionID: "com.example.unknown",
			expect:   func(*mocks.MockMediaSession) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			session := mocks.NewMockMediaSession(ctrl)
			tt.expect(session)

			target := &fakeTarget{session: session, state: tt.state}
			r := NewRouter(zap.NewNop(), target, nil, domain.DefaultActionIDs(), 0, true)
			r.OnAction(tt.actionID, epoch)

			assert.Equal(t, tt.stops, target.stops)
		})
	}
}

func TestRouterNoSession(t *testing.T) {
	target := &fakeTarget{}
	r := NewRouter(zap.NewNop(), target, nil, domain.DefaultActionIDs(), 0, false)
	assert.NotPanics(t, func() { r.OnAction(domain.ActionIDNext, epoch) })
}

func TestRouterHooks(t *testing.T) {
	ctrl := gomock.NewController(t)
	hooks := mocks.NewMockHookRunner(ctrl)
	meta := domain.TrackMetadata{Title: "Song"}
	target := &fakeTarget{meta: meta}

	hooks.EXPECT().Has(domain.ActionIDFavorite).Return(true).AnyTimes()
	hooks.EXPECT().Has(gomock.Any()).Return(false).AnyTimes()

	done := make(chan struct{})
	hooks.EXPECT().Run(gomock.Any(), domain.ActionIDFavorite, meta).
		DoAndReturn(func(context.Context, string, domain.TrackMetadata) error {
			close(done)
			return nil
		})

	r := NewRouter(zap.NewNop(), target, hooks, domain.DefaultActionIDs(), 0, false)

	ids := r.ActionIDs()
	assert.Contains(t, ids, domain.ActionIDFavorite)
	assert.NotContains(t, ids, domain.ActionIDLyrics)
	assert.NotContains(t, ids, domain.ActionIDOpen)

	r.OnAction(domain.ActionIDFavorite, epoch)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hook was not run")
	}

	// Lyrics has no hook: nothing runs
	r.OnAction(domain.ActionIDLyrics, epoch.Add(2*time.Second))
}

func TestRouterActionIDs(t *testing.T) {
	r := NewRouter(zap.NewNop(), &fakeTarget{}, nil, domain.ActionIDs{Next: "custom.next"}, 0, true)
	ids := r.ActionIDs()
	assert.Contains(t, ids, "custom.next")
	assert.Contains(t, ids, domain.ActionIDPlayOrPause)
	assert.Contains(t, ids, domain.ActionIDClose)
	assert.Contains(t, ids, domain.ActionIDOpen)
	assert.NotContains(t, ids, domain.ActionIDNext)
}
