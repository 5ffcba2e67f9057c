// Package coordinator keeps the media notification in sync with the playback
// session and routes notification button taps back to the player.
package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/genricoloni/mprisnotify/internal/render"
	"go.uber.org/zap"
)

// Options are the coordinator settings taken from configuration
type Options struct {
	Actions  domain.ActionIDs
	Channel  domain.ChannelConfig
	Debounce time.Duration
	// OpenOnClick registers the default action so clicking the body raises the player
	OpenOnClick bool
}

// Coordinator owns the session connection and the notification lifecycle.
// All state is guarded by mu; collaborator callbacks may arrive on any goroutine.
type Coordinator struct {
	logger   *zap.Logger
	provider domain.SessionProvider
	shell    domain.NotificationShell
	actions  domain.ActionEventSource
	fetcher  domain.ArtworkFetcher
	theme    domain.ThemeDetector
	images   domain.ImageProcessor
	renderer *render.Renderer
	router   *Router

	mu           sync.Mutex
	session      domain.MediaSession
	sub          domain.SubscriptionHandle
	subscribed   bool
	actionHandle domain.ActionHandle
	registered   bool
	started      bool
	epoch        uint64 // bumped by every stop; artwork results from older epochs are dropped
	snapshot     *domain.PlaybackSnapshot
	metadata     *domain.TrackMetadata
	favorite     bool
	lyrics       bool
	lastDark     bool
	last         *domain.Descriptor
}

// New creates a coordinator and creates the notification channel
func New(
	logger *zap.Logger,
	provider domain.SessionProvider,
	shell domain.NotificationShell,
	actions domain.ActionEventSource,
	fetcher domain.ArtworkFetcher,
	theme domain.ThemeDetector,
	images domain.ImageProcessor,
	hooks domain.HookRunner,
	renderer *render.Renderer,
	opts Options,
) *Coordinator {
	c := &Coordinator{
		logger:   logger,
		provider: provider,
		shell:    shell,
		actions:  actions,
		fetcher:  fetcher,
		theme:    theme,
		images:   images,
		renderer: renderer,
	}
	c.router = NewRouter(logger, c, hooks, opts.Actions, opts.Debounce, opts.OpenOnClick)

	if err := shell.CreateChannel(domain.ChannelID, opts.Channel); err != nil {
		logger.Warn("Failed to create notification channel", zap.Error(err))
	}
	return c
}

// Router returns the action router wired to this coordinator
func (c *Coordinator) Router() *Router {
	return c.router
}

// Started reports whether the notification is currently shown
func (c *Coordinator) Started() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.started
}

// Start shows the notification when the session has both a playback state
// and metadata. A session that is not ready yet is not an error: callers
// retry after the next session event.
func (c *Coordinator) Start(ctx context.Context) {
	c.mu.Lock()
	if c.started {
		c.mu.Unlock()
		return
	}

	c.updateSessionLocked()
	if c.session == nil {
		c.mu.Unlock()
		c.logger.Debug("No media session yet, notification not started")
		return
	}

	c.captureLocked()
	d, ok := c.buildLocked(ctx)
	if !ok {
		c.mu.Unlock()
		c.logger.Debug("Session has no playback state or metadata yet")
		return
	}

	c.sub = c.session.Subscribe(c)
	c.subscribed = true
	c.actionHandle = c.actions.Register(c.router.ActionIDs(), c.router.OnAction)
	c.registered = true

	if err := c.shell.PromoteForeground(domain.NotificationID, d); err != nil {
		c.logger.Warn("Failed to promote notification", zap.Error(err))
	}
	c.started = true
	name := c.session.Name()
	fetch := c.artworkRequestLocked()
	c.mu.Unlock()

	c.logger.Info("Media notification started",
		zap.String("session", name),
		zap.String("title", d.Title))
	fetch()
}

// Stop removes the notification. It is idempotent.
func (c *Coordinator) Stop(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopLocked()
}

func (c *Coordinator) stopLocked() {
	if !c.started {
		return
	}
	c.started = false
	c.epoch++

	if c.subscribed && c.session != nil {
		c.session.Unsubscribe(c.sub)
	}
	c.subscribed = false

	if c.registered {
		// Registrations may already be gone on the shell side
		if err := c.actions.Unregister(c.actionHandle); err != nil {
			c.logger.Debug("Ignoring action unregister failure", zap.Error(err))
		}
	}
	c.registered = false

	if err := c.shell.Cancel(domain.NotificationID); err != nil {
		c.logger.Warn("Failed to cancel notification", zap.Error(err))
	}
	if err := c.shell.DemoteForeground(); err != nil {
		c.logger.Warn("Failed to demote notification", zap.Error(err))
	}
	c.logger.Info("Media notification stopped")
}

// OnPlaybackStateChanged replaces the snapshot and refreshes the notification
func (c *Coordinator) OnPlaybackStateChanged(snapshot domain.PlaybackSnapshot) {
	c.mu.Lock()
	c.snapshot = &snapshot
	fetch := c.refreshLocked(context.Background())
	c.mu.Unlock()
	fetch()
}

// OnMetadataChanged replaces the metadata. The paired state callback renders it.
func (c *Coordinator) OnMetadataChanged(metadata domain.TrackMetadata) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metadata = &metadata
}

// OnSessionDestroyed re-resolves the session. When started, callbacks move to
// the new session and the notification is refreshed from its state; with no
// session left the notification is stopped.
func (c *Coordinator) OnSessionDestroyed() {
	c.mu.Lock()
	changed := c.updateSessionLocked()
	if !c.started || !changed {
		c.mu.Unlock()
		return
	}
	if c.session == nil {
		c.logger.Info("Media session vanished")
		c.stopLocked()
		c.mu.Unlock()
		return
	}
	c.captureLocked()
	fetch := c.refreshLocked(context.Background())
	c.mu.Unlock()
	fetch()
}

// RenderNotification builds a descriptor from the current state without side effects
func (c *Coordinator) RenderNotification(ctx context.Context) (domain.Descriptor, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, _, ok := c.renderLocked(ctx)
	return d, ok
}

// UpdateFavoriteUI sets the favorite flag and updates the expanded layout icon
func (c *Coordinator) UpdateFavoriteUI(isFavorite bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.favorite = isFavorite
	if c.last == nil {
		return
	}
	d := c.last.WithExpandedIcon(domain.SlotFavorite, c.renderer.FavoriteIcon(isFavorite, c.lastDark))
	c.last = &d
	c.postLocked(d)
}

// UpdateLyricsUI sets the lyrics flag and updates the expanded layout icon
func (c *Coordinator) UpdateLyricsUI(isOn bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lyrics = isOn
	if c.last == nil {
		return
	}
	d := c.last.WithExpandedIcon(domain.SlotLyrics, c.renderer.LyricsIcon(isOn, c.lastDark))
	c.last = &d
	c.postLocked(d)
}

// refreshLocked reacts to a new snapshot. The returned func issues the artwork
// fetch and must be called after mu is released.
func (c *Coordinator) refreshLocked(ctx context.Context) func() {
	if !c.started {
		return func() {}
	}
	if c.snapshot != nil && c.snapshot.State.Terminal() {
		c.stopLocked()
		return func() {}
	}

	d, ok := c.buildLocked(ctx)
	if !ok {
		return func() {}
	}
	if c.snapshot.State == domain.StateBuffering {
		// Keep the descriptor fresh but do not repost while buffering
		c.logger.Debug("Buffering, notification rebuilt without posting")
		return func() {}
	}
	if err := c.shell.Notify(domain.NotificationID, d); err != nil {
		c.logger.Warn("Failed to update notification", zap.Error(err))
	}
	return c.artworkRequestLocked()
}

// postLocked reposts a patched descriptor while the notification is shown
func (c *Coordinator) postLocked(d domain.Descriptor) {
	if !c.started {
		return
	}
	if err := c.shell.Notify(domain.NotificationID, d); err != nil {
		c.logger.Warn("Failed to update notification", zap.Error(err))
	}
}

// captureLocked reads the current snapshot and metadata from the session
func (c *Coordinator) captureLocked() {
	c.snapshot, c.metadata = nil, nil
	if snap, ok := c.session.CurrentSnapshot(); ok {
		c.snapshot = &snap
	}
	if meta, ok := c.session.CurrentMetadata(); ok {
		c.metadata = &meta
	}
}

// renderLocked is the pure render step: no field of c is modified
func (c *Coordinator) renderLocked(ctx context.Context) (domain.Descriptor, bool, bool) {
	if c.snapshot == nil || c.metadata == nil {
		return domain.Descriptor{}, false, false
	}
	dark := c.theme.IsDark(ctx)
	art := c.metadata.ArtBitmap
	if art == nil {
		art = c.images.Placeholder()
	}
	d := c.renderer.Render(render.Input{
		Snapshot: *c.snapshot,
		Metadata: *c.metadata,
		Favorite: c.favorite,
		Lyrics:   c.lyrics,
		Dark:     dark,
		Artwork:  art,
	})
	return d, dark, true
}

// buildLocked renders and remembers the result as the last descriptor
func (c *Coordinator) buildLocked(ctx context.Context) (domain.Descriptor, bool) {
	d, dark, ok := c.renderLocked(ctx)
	if !ok {
		return domain.Descriptor{}, false
	}
	c.last = &d
	c.lastDark = dark
	return d, true
}

// artworkRequestLocked prepares the fetch for remote artwork, if the track needs one
func (c *Coordinator) artworkRequestLocked() func() {
	if c.metadata == nil || c.metadata.ArtBitmap != nil || c.metadata.ArtURL == "" {
		return func() {}
	}
	url := c.metadata.ArtURL
	epoch := c.epoch
	return func() {
		c.fetcher.Fetch(url,
			func(bitmap []byte) { c.applyArtwork(epoch, url, bitmap) },
			func(err error) {
				c.logger.Debug("Artwork fetch failed, keeping placeholder",
					zap.String("url", url), zap.Error(err))
			})
	}
}

// applyArtwork patches only the artwork of the last descriptor. A result that
// lands after a newer render is still applied; one that lands after a stop is dropped.
func (c *Coordinator) applyArtwork(epoch uint64, url string, bitmap []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.started || epoch != c.epoch || c.last == nil {
		c.logger.Debug("Dropping artwork for stopped notification", zap.String("url", url))
		return
	}
	d := c.last.WithArtwork(bitmap)
	c.last = &d
	if err := c.shell.Notify(domain.NotificationID, d); err != nil {
		c.logger.Warn("Failed to update notification artwork", zap.Error(err))
	}
}

// updateSessionLocked picks up a rotated session. It reports whether the session changed.
func (c *Coordinator) updateSessionLocked() bool {
	fresh, ok := c.provider.Current()
	if !ok {
		fresh = nil
	}
	if fresh == c.session {
		return false
	}

	// Unsubscribe before resubscribing so a rotated session never leaks callbacks
	if c.subscribed && c.session != nil {
		c.session.Unsubscribe(c.sub)
	}
	c.subscribed = false
	c.session = fresh

	if c.session != nil && c.started {
		c.sub = c.session.Subscribe(c)
		c.subscribed = true
	}
	return true
}

// activeSession is used by the router to reach the transport controls
func (c *Coordinator) activeSession() (domain.MediaSession, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session, c.session != nil
}

func (c *Coordinator) playbackState() domain.PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snapshot == nil {
		return domain.StateNone
	}
	return c.snapshot.State
}

func (c *Coordinator) currentMetadata() domain.TrackMetadata {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.metadata == nil {
		return domain.TrackMetadata{}
	}
	return *c.metadata
}
