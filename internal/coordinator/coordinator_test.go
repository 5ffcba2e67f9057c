package coordinator

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/genricoloni/mprisnotify/internal/domain/mocks"
	"github.com/genricoloni/mprisnotify/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

// recordingShell keeps every descriptor handed to the shell
type recordingShell struct {
	mu       sync.Mutex
	channels []string
	notified []domain.Descriptor
	promoted []domain.Descriptor
	cancels  int
	demotes  int
}

func (s *recordingShell) CreateChannel(id string, _ domain.ChannelConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels = append(s.channels, id)
	return nil
}

func (s *recordingShell) Notify(_ int, d domain.Descriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notified = append(s.notified, d)
	return nil
}

func (s *recordingShell) Cancel(int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancels++
	return nil
}

func (s *recordingShell) PromoteForeground(_ int, d domain.Descriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.promoted = append(s.promoted, d)
	return nil
}

func (s *recordingShell) DemoteForeground() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.demotes++
	return nil
}

func (s *recordingShell) lastNotified(t *testing.T) domain.Descriptor {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.notified, "expected at least one notify")
	return s.notified[len(s.notified)-1]
}

// fakeFetcher records requests; tests complete them by hand
type fakeFetcher struct {
	mu     sync.Mutex
	urls   []string
	loaded []func([]byte)
	failed []func(error)
}

func (f *fakeFetcher) Fetch(url string, onLoaded func([]byte), onFailed func(error)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.urls = append(f.urls, url)
	f.loaded = append(f.loaded, onLoaded)
	f.failed = append(f.failed, onFailed)
}

type fakeImages struct{}

var placeholderArt = []byte("placeholder")

func (fakeImages) Thumbnail(context.Context, []byte) (domain.RawImage, error) {
	return domain.RawImage{}, nil
}

func (fakeImages) Placeholder() []byte { return placeholderArt }

// switchProvider lets a test rotate the current session
type switchProvider struct {
	mu      sync.Mutex
	session domain.MediaSession
}

func (p *switchProvider) Current() (domain.MediaSession, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.session, p.session != nil
}

func (p *switchProvider) set(s domain.MediaSession) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.session = s
}

type identityResolver struct{}

func (identityResolver) Resolve(name string, _ domain.ResourceKind) string { return name }

type fixture struct {
	ctrl     *gomock.Controller
	session  *mocks.MockMediaSession
	provider *switchProvider
	shell    *recordingShell
	actions  *mocks.MockActionEventSource
	fetcher  *fakeFetcher
	coord    *Coordinator
}

var (
	playing = domain.PlaybackSnapshot{
		State:   domain.StatePlaying,
		Actions: domain.ActionSkipNext | domain.ActionSkipPrev | domain.ActionPause,
	}
	song = domain.TrackMetadata{ID: "track-1", Title: "Song", Subtitle: "Artist"}
)

func newSession(ctrl *gomock.Controller, snap *domain.PlaybackSnapshot, meta *domain.TrackMetadata) *mocks.MockMediaSession {
	s := mocks.NewMockMediaSession(ctrl)
	s.EXPECT().Name().Return("org.mpris.MediaPlayer2.test").AnyTimes()
	if snap != nil {
		s.EXPECT().CurrentSnapshot().Return(*snap, true).AnyTimes()
	} else {
		s.EXPECT().CurrentSnapshot().Return(domain.PlaybackSnapshot{}, false).AnyTimes()
	}
	if meta != nil {
		s.EXPECT().CurrentMetadata().Return(*meta, true).AnyTimes()
	} else {
		s.EXPECT().CurrentMetadata().Return(domain.TrackMetadata{}, false).AnyTimes()
	}
	return s
}

func newFixture(t *testing.T, snap *domain.PlaybackSnapshot, meta *domain.TrackMetadata) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		ctrl:     ctrl,
		session:  newSession(ctrl, snap, meta),
		provider: &switchProvider{},
		shell:    &recordingShell{},
		actions:  mocks.NewMockActionEventSource(ctrl),
		fetcher:  &fakeFetcher{},
	}
	f.provider.set(f.session)

	theme := mocks.NewMockThemeDetector(ctrl)
	theme.EXPECT().IsDark(gomock.Any()).Return(false).AnyTimes()

	renderer := render.NewRenderer(render.Options{Resolver: identityResolver{}})
	f.coord = New(zap.NewNop(), f.provider, f.shell, f.actions, f.fetcher, theme, fakeImages{}, nil, renderer, Options{})
	return f
}

// start brings the coordinator up, expecting one subscription and one registration
func (f *fixture) start(t *testing.T) {
	t.Helper()
	f.session.EXPECT().Subscribe(f.coord).Return(domain.SubscriptionHandle(1))
	f.actions.EXPECT().Register(gomock.Any(), gomock.Any()).Return(domain.ActionHandle(7))
	f.coord.Start(context.Background())
	require.True(t, f.coord.Started())
}

// expectStop allows exactly one teardown
func (f *fixture) expectStop(unregisterErr error) {
	f.session.EXPECT().Unsubscribe(domain.SubscriptionHandle(1))
	f.actions.EXPECT().Unregister(domain.ActionHandle(7)).Return(unregisterErr)
}

func TestCoordinatorStart(t *testing.T) {
	f := newFixture(t, &playing, &song)
	f.start(t)

	assert.Equal(t, []string{domain.ChannelID}, f.shell.channels)
	require.Len(t, f.shell.promoted, 1)
	d := f.shell.promoted[0]
	assert.Equal(t, domain.NotificationID, d.ID)
	assert.Equal(t, "Song", d.Title)
	assert.Equal(t, "Song craetedBy Artist", d.Text)
	assert.True(t, d.Ongoing)
	assert.Equal(t, placeholderArt, d.Compact.Artwork, "placeholder shown until artwork arrives")
	assert.Empty(t, f.fetcher.urls, "nothing to fetch without an art url")

	// A second start is a no-op
	f.coord.Start(context.Background())
	assert.Len(t, f.shell.promoted, 1)
}

func TestCoordinatorStartNotReady(t *testing.T) {
	t.Run("No metadata yet", func(t *testing.T) {
		f := newFixture(t, &playing, nil)
		f.coord.Start(context.Background())
		assert.False(t, f.coord.Started())
		assert.Empty(t, f.shell.promoted)
	})

	t.Run("No playback state yet", func(t *testing.T) {
		f := newFixture(t, nil, &song)
		f.coord.Start(context.Background())
		assert.False(t, f.coord.Started())
		assert.Empty(t, f.shell.promoted)
	})

	t.Run("No session", func(t *testing.T) {
		f := newFixture(t, &playing, &song)
		f.provider.set(nil)
		f.coord.Start(context.Background())
		assert.False(t, f.coord.Started())
		assert.Empty(t, f.shell.promoted)
	})
}

func TestCoordinatorTerminalStateStops(t *testing.T) {
	for _, state := range []domain.PlaybackState{domain.StateStopped, domain.StateNone} {
		t.Run(state.String(), func(t *testing.T) {
			f := newFixture(t, &playing, &song)
			f.start(t)
			f.expectStop(nil)

			f.coord.OnPlaybackStateChanged(domain.PlaybackSnapshot{State: state})
			assert.False(t, f.coord.Started())
			assert.Equal(t, 1, f.shell.cancels)
			assert.Equal(t, 1, f.shell.demotes)

			// Repeated terminal states do not cancel again
			f.coord.OnPlaybackStateChanged(domain.PlaybackSnapshot{State: state})
			assert.Equal(t, 1, f.shell.cancels)
			assert.Empty(t, f.shell.notified)
		})
	}
}

func TestCoordinatorTerminalStateBeforeStart(t *testing.T) {
	f := newFixture(t, &playing, &song)
	f.coord.OnPlaybackStateChanged(domain.PlaybackSnapshot{State: domain.StateStopped})
	assert.Zero(t, f.shell.cancels)
	assert.Empty(t, f.shell.notified)
}

func TestCoordinatorStopIsIdempotent(t *testing.T) {
	f := newFixture(t, &playing, &song)
	f.start(t)
	f.expectStop(errors.New("receiver not registered"))

	f.coord.Stop(context.Background())
	f.coord.Stop(context.Background())

	assert.False(t, f.coord.Started())
	assert.Equal(t, 1, f.shell.cancels, "unregister failure must not skip the cancel")
	assert.Equal(t, 1, f.shell.demotes)
}

func TestCoordinatorStateChanges(t *testing.T) {
	f := newFixture(t, &playing, &song)
	f.start(t)

	// Metadata alone only stores the track
	next := domain.TrackMetadata{ID: "track-2", Title: "Other", Subtitle: "Band"}
	f.coord.OnMetadataChanged(next)
	assert.Empty(t, f.shell.notified)

	paused := domain.PlaybackSnapshot{State: domain.StatePaused, Actions: domain.ActionPlay}
	f.coord.OnPlaybackStateChanged(paused)
	d := f.shell.lastNotified(t)
	assert.Equal(t, "Other", d.Title)
	assert.Equal(t, "Other craetedBy Band", d.Text)
	assert.False(t, d.Ongoing)

	nextBtn, ok := d.Compact.Button(domain.SlotNext)
	require.True(t, ok)
	assert.False(t, nextBtn.Enabled)
	assert.Equal(t, render.DrawableLightNextPressed, nextBtn.Icon)

	// Buffering rebuilds without posting
	f.coord.OnPlaybackStateChanged(domain.PlaybackSnapshot{State: domain.StateBuffering})
	assert.Len(t, f.shell.notified, 1)
	assert.True(t, f.coord.Started())

	rendered, ok := f.coord.RenderNotification(context.Background())
	require.True(t, ok)
	assert.False(t, rendered.Ongoing)
}

func TestCoordinatorArtwork(t *testing.T) {
	remote := domain.TrackMetadata{Title: "Song", Subtitle: "Artist", ArtURL: "https://example.com/a.jpg"}

	t.Run("Fetched artwork replaces the placeholder", func(t *testing.T) {
		f := newFixture(t, &playing, &remote)
		f.start(t)

		require.Equal(t, []string{remote.ArtURL}, f.fetcher.urls)
		assert.Equal(t, placeholderArt, f.shell.promoted[0].Expanded.Artwork)

		art := []byte("cover")
		f.fetcher.loaded[0](art)

		d := f.shell.lastNotified(t)
		assert.Equal(t, art, d.Compact.Artwork)
		assert.Equal(t, art, d.Expanded.Artwork)
		assert.Equal(t, "Song", d.Title, "only the artwork is patched")
		assert.Equal(t, placeholderArt, f.shell.promoted[0].Expanded.Artwork, "posted descriptors are not mutated")
	})

	t.Run("Artwork after stop is dropped", func(t *testing.T) {
		f := newFixture(t, &playing, &remote)
		f.start(t)
		f.expectStop(nil)

		f.coord.Stop(context.Background())
		f.fetcher.loaded[0]([]byte("late"))

		assert.Empty(t, f.shell.notified)
		assert.Equal(t, 1, f.shell.cancels)
	})

	t.Run("Failure keeps the placeholder", func(t *testing.T) {
		f := newFixture(t, &playing, &remote)
		f.start(t)
		f.fetcher.failed[0](errors.New("404"))
		assert.Empty(t, f.shell.notified)
	})

	t.Run("Embedded bitmap needs no fetch", func(t *testing.T) {
		embedded := domain.TrackMetadata{Title: "Song", ArtBitmap: []byte("inline"), ArtURL: "https://example.com/a.jpg"}
		f := newFixture(t, &playing, &embedded)
		f.start(t)
		assert.Empty(t, f.fetcher.urls)
		assert.Equal(t, []byte("inline"), f.shell.promoted[0].Compact.Artwork)
	})
}

func TestCoordinatorToggles(t *testing.T) {
	t.Run("Before any render", func(t *testing.T) {
		f := newFixture(t, &playing, &song)
		f.coord.UpdateFavoriteUI(true)
		f.coord.UpdateLyricsUI(true)
		assert.Empty(t, f.shell.notified)
	})

	t.Run("Favorite and lyrics icons", func(t *testing.T) {
		f := newFixture(t, &playing, &song)
		f.start(t)

		f.coord.UpdateFavoriteUI(true)
		d := f.shell.lastNotified(t)
		fav, ok := d.Expanded.Button(domain.SlotFavorite)
		require.True(t, ok)
		assert.Equal(t, render.DrawableFavorite, fav.Icon)
		_, ok = d.Compact.Button(domain.SlotFavorite)
		assert.False(t, ok, "compact layout has no favorite button")

		f.coord.UpdateFavoriteUI(false)
		fav, _ = f.shell.lastNotified(t).Expanded.Button(domain.SlotFavorite)
		assert.Equal(t, render.DrawableLightFavorite, fav.Icon)

		f.coord.UpdateLyricsUI(true)
		lyr, _ := f.shell.lastNotified(t).Expanded.Button(domain.SlotLyrics)
		assert.Equal(t, render.DrawableLyrics, lyr.Icon)

		// Flags survive a full re-render
		f.coord.OnPlaybackStateChanged(playing)
		lyr, _ = f.shell.lastNotified(t).Expanded.Button(domain.SlotLyrics)
		assert.Equal(t, render.DrawableLyrics, lyr.Icon)
	})
}

func TestCoordinatorSessionDestroyed(t *testing.T) {
	t.Run("Callbacks move to the new session", func(t *testing.T) {
		f := newFixture(t, &playing, &song)
		f.start(t)

		other := domain.TrackMetadata{Title: "Replacement", Subtitle: "Player"}
		fresh := newSession(f.ctrl, &playing, &other)
		gomock.InOrder(
			f.session.EXPECT().Unsubscribe(domain.SubscriptionHandle(1)),
			fresh.EXPECT().Subscribe(f.coord).Return(domain.SubscriptionHandle(2)),
		)
		f.provider.set(fresh)

		f.coord.OnSessionDestroyed()
		assert.True(t, f.coord.Started())
		assert.Equal(t, "Replacement", f.shell.lastNotified(t).Title)
	})

	t.Run("Vanished session stops the notification", func(t *testing.T) {
		f := newFixture(t, &playing, &song)
		f.start(t)
		f.session.EXPECT().Unsubscribe(domain.SubscriptionHandle(1))
		f.actions.EXPECT().Unregister(domain.ActionHandle(7)).Return(nil)
		f.provider.set(nil)

		f.coord.OnSessionDestroyed()
		assert.False(t, f.coord.Started())
		assert.Equal(t, 1, f.shell.cancels)
	})

	t.Run("Not started only swaps the session", func(t *testing.T) {
		f := newFixture(t, &playing, &song)
		fresh := newSession(f.ctrl, &playing, &song)
		f.provider.set(fresh)

		f.coord.OnSessionDestroyed()
		assert.False(t, f.coord.Started())
		assert.Empty(t, f.shell.notified)
	})
}
