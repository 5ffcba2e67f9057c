package domain

import "time"

const (
	// NotificationID is the fixed id of the media notification
	NotificationID = 0x111
	// RequestCode disambiguates action registrations made by this component
	RequestCode = 100
	// TimeInterval is the debounce window between accepted taps
	TimeInterval = time.Second
	// ChannelID is the channel every media notification is posted on
	ChannelID = "StarrySky_Notification"
)

// Default action identifiers. Every one can be overridden through ActionIDs.
const (
	ActionIDPlay        = "com.lzx.starrysky.play"
	ActionIDPause       = "com.lzx.starrysky.pause"
	ActionIDPlayOrPause = "com.lzx.starrysky.play_or_pause"
	ActionIDNext        = "com.lzx.starrysky.next"
	ActionIDPrev        = "com.lzx.starrysky.prev"
	ActionIDFavorite    = "com.lzx.starrysky.favorite"
	ActionIDLyrics      = "com.lzx.starrysky.lyrics"
	ActionIDDownload    = "com.lzx.starrysky.download"
	ActionIDClose       = "com.lzx.starrysky.close"
	ActionIDStop        = "com.lzx.starrysky.stop"
	// ActionIDOpen is the freedesktop "default" action, sent when the body is clicked
	ActionIDOpen = "default"
)

// ActionIDs maps every button slot to the identifier delivered on tap
type ActionIDs struct {
	Play        string `koanf:"play"`
	Pause       string `koanf:"pause"`
	PlayOrPause string `koanf:"play_or_pause"`
	Next        string `koanf:"next"`
	Prev        string `koanf:"prev"`
	Favorite    string `koanf:"favorite"`
	Lyrics      string `koanf:"lyrics"`
	Download    string `koanf:"download"`
	Close       string `koanf:"close"`
	Stop        string `koanf:"stop"`
}

// DefaultActionIDs returns the built-in identifiers
func DefaultActionIDs() ActionIDs {
	return ActionIDs{
		Play:        ActionIDPlay,
		Pause:       ActionIDPause,
		PlayOrPause: ActionIDPlayOrPause,
		Next:        ActionIDNext,
		Prev:        ActionIDPrev,
		Favorite:    ActionIDFavorite,
		Lyrics:      ActionIDLyrics,
		Download:    ActionIDDownload,
		Close:       ActionIDClose,
		Stop:        ActionIDStop,
	}
}

// WithDefaults fills every empty identifier with its built-in value
func (a ActionIDs) WithDefaults() ActionIDs {
	d := DefaultActionIDs()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&a.Play, d.Play)
	fill(&a.Pause, d.Pause)
	fill(&a.PlayOrPause, d.PlayOrPause)
	fill(&a.Next, d.Next)
	fill(&a.Prev, d.Prev)
	fill(&a.Favorite, d.Favorite)
	fill(&a.Lyrics, d.Lyrics)
	fill(&a.Download, d.Download)
	fill(&a.Close, d.Close)
	fill(&a.Stop, d.Stop)
	return a
}

// ForSlot returns the identifier bound to the given slot
func (a ActionIDs) ForSlot(slot Slot) string {
	switch slot {
	case SlotPlay:
		return a.Play
	case SlotPause:
		return a.Pause
	case SlotPlayOrPause:
		return a.PlayOrPause
	case SlotNext:
		return a.Next
	case SlotPrev:
		return a.Prev
	case SlotFavorite:
		return a.Favorite
	case SlotLyrics:
		return a.Lyrics
	case SlotDownload:
		return a.Download
	case SlotClose:
		return a.Close
	case SlotStop:
		return a.Stop
	}
	return ""
}

// Routed returns the identifiers the action router listens for
func (a ActionIDs) Routed() []string {
	return []string{a.Next, a.Pause, a.Play, a.Prev, a.PlayOrPause, a.Close}
}
