package domain

import "time"

// PlaybackState is the state reported by the media session
type PlaybackState int

const (
	// StateNone means the session has no playback state yet
	StateNone PlaybackState = iota
	// StateStopped indicates playback is stopped
	StateStopped
	// StatePlaying indicates the media is currently playing
	StatePlaying
	// StatePaused indicates the media is paused
	StatePaused
	// StateBuffering indicates the player is waiting for data
	StateBuffering
	// StateError indicates the player reported a failure
	StateError
)

func (s PlaybackState) String() string {
	switch s {
	case StateNone:
		return "None"
	case StateStopped:
		return "Stopped"
	case StatePlaying:
		return "Playing"
	case StatePaused:
		return "Paused"
	case StateBuffering:
		return "Buffering"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the state ends the notification lifecycle
func (s PlaybackState) Terminal() bool {
	return s == StateStopped || s == StateNone
}

// Actions is the set of transport actions the session currently allows
type Actions uint32

const (
	ActionSkipNext Actions = 1 << iota
	ActionSkipPrev
	ActionPlay
	ActionPause
	ActionSeek
	ActionStop
)

// Has reports whether every action in a is present in the set
func (s Actions) Has(a Actions) bool {
	return s&a == a
}

// PlaybackSnapshot is an immutable capture of the playback state
type PlaybackSnapshot struct {
	State   PlaybackState
	Actions Actions
}

// TrackMetadata describes the track currently loaded in the session
type TrackMetadata struct {
	// ID is the session-specific track identifier
	ID string
	// Title of the track
	Title string
	// Subtitle is usually the artist name
	Subtitle string
	// Album name
	Album string
	// ArtBitmap holds encoded image bytes when the session provides them inline
	ArtBitmap []byte
	// ArtURL is the remote or local location of the album artwork
	ArtURL string
}

// RenderState is derived from a snapshot, metadata and the UI flags.
// It is rebuilt on every render and never mutated afterwards.
type RenderState struct {
	SongName   string
	ArtistName string
	IsPlaying  bool
	IsDark     bool
	HasNext    bool
	HasPrev    bool
	IsFavorite bool
	IsLyricsOn bool
	Artwork    []byte
}

// SessionEvent is emitted by the session provider whenever a player changes
type SessionEvent struct {
	// Player is the well-known bus name of the player
	Player string
	State  PlaybackState
	Title  string
	// Vanished is set when the player left the bus
	Vanished bool
	At       time.Time
}

// ResourceKind groups resource names the way the platform resolves them
type ResourceKind string

const (
	KindDrawable ResourceKind = "drawable"
	KindLayout   ResourceKind = "layout"
	KindID       ResourceKind = "id"
)

// Theme selects how the dark/light decision is taken
type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Urgency represents notification priority levels per the freedesktop spec
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// ChannelConfig describes the notification channel created once at startup
type ChannelConfig struct {
	Name     string
	Category string
	Urgency  Urgency
}
