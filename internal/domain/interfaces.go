package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/genricoloni/mprisnotify/internal/domain NotificationShell,MediaSession,SessionProvider,ActionEventSource,ArtworkFetcher,HookRunner,ThemeDetector

// SessionCallbacks receives media session changes.
// Callbacks are delivered from the session's event goroutine.
type SessionCallbacks interface {
	OnPlaybackStateChanged(snapshot PlaybackSnapshot)
	OnMetadataChanged(metadata TrackMetadata)
	// OnSessionDestroyed signals that the session connection must be re-resolved
	OnSessionDestroyed()
}

// SubscriptionHandle identifies a callback registration on a MediaSession
type SubscriptionHandle uint64

// MediaSession is the playback session the notification mirrors
type MediaSession interface {
	// Name identifies the session (for MPRIS, the player bus name)
	Name() string

	// CurrentSnapshot returns the latest playback state, if any is known
	CurrentSnapshot() (PlaybackSnapshot, bool)

	// CurrentMetadata returns the metadata of the loaded track, if any
	CurrentMetadata() (TrackMetadata, bool)

	Subscribe(cb SessionCallbacks) SubscriptionHandle
	Unsubscribe(h SubscriptionHandle)

	Play() error
	Pause() error
	Next() error
	Previous() error
	// Raise brings the player's own window forward
	Raise() error
}

// SessionProvider resolves the session currently backing the notification.
// The session may rotate when a player restarts.
type SessionProvider interface {
	Current() (MediaSession, bool)
}

// Monitor watches the bus for players and emits a SessionEvent on changes
type Monitor interface {
	// Start begins monitoring. It blocks until ctx is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop gracefully stops the monitor
	Stop(ctx context.Context) error

	// Events returns a read-only channel of session changes
	Events() <-chan SessionEvent
}

// NotificationShell displays, updates and cancels notifications
type NotificationShell interface {
	CreateChannel(id string, cfg ChannelConfig) error
	Notify(id int, d Descriptor) error
	Cancel(id int) error
	// PromoteForeground marks the notification as the one keeping the process alive
	PromoteForeground(id int, d Descriptor) error
	DemoteForeground() error
}

// ActionHandler is invoked for every tap on a registered action
type ActionHandler func(actionID string, at time.Time)

// ActionHandle identifies an ActionEventSource registration
type ActionHandle uint64

// ActionEventSource delivers user taps on notification buttons
type ActionEventSource interface {
	Register(actionIDs []string, h ActionHandler) ActionHandle
	// Unregister removes a registration. Unknown handles yield an error,
	// never a panic, so callers may treat it as best-effort.
	Unregister(h ActionHandle) error
}

// ArtworkFetcher retrieves album art asynchronously.
// Exactly one of onLoaded or onFailed is called, at most once, from any goroutine.
type ArtworkFetcher interface {
	Fetch(url string, onLoaded func(bitmap []byte), onFailed func(err error))
}

// Fetcher retrieves album artwork synchronously
type Fetcher interface {
	// Fetch downloads or reads image data from a URL or local path
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// ResourceResolver maps a resource name to the platform id shown to the shell
type ResourceResolver interface {
	Resolve(name string, kind ResourceKind) string
}

// ThemeDetector reports whether notifications are drawn on a dark background
type ThemeDetector interface {
	IsDark(ctx context.Context) bool
}

// HookRunner runs host-supplied commands for actions the router does not own
type HookRunner interface {
	Has(actionID string) bool
	Run(ctx context.Context, actionID string, meta TrackMetadata) error
}

// RawImage is an uncompressed RGBA image as carried by the image-data hint
type RawImage struct {
	Width         int32
	Height        int32
	RowStride     int32
	HasAlpha      bool
	BitsPerSample int32
	Channels      int32
	Data          []byte
}

// ImageProcessor prepares album art for display
type ImageProcessor interface {
	// Thumbnail decodes encoded image bytes and scales them to icon size
	Thumbnail(ctx context.Context, imageData []byte) (RawImage, error)

	// Placeholder returns the encoded image shown until artwork arrives
	Placeholder() []byte
}
