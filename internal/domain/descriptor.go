package domain

import "slices"

// Slot names a button position inside a notification layout
type Slot string

const (
	SlotPlayOrPause Slot = "play_or_pause"
	SlotPlay        Slot = "play"
	SlotPause       Slot = "pause"
	SlotStop        Slot = "stop"
	SlotNext        Slot = "next"
	SlotPrev        Slot = "prev"
	SlotFavorite    Slot = "favorite"
	SlotLyrics      Slot = "lyrics"
	SlotDownload    Slot = "download"
	SlotClose       Slot = "close"
)

// Button is one tappable control of a layout
type Button struct {
	Slot Slot
	// ViewID is the resolved platform id of the control
	ViewID string
	// Icon is the resolved platform id of the glyph shown on the control
	Icon string
	// Action is the identifier delivered to the ActionEventSource on tap
	Action  string
	Label   string
	Enabled bool
}

// Layout is a declarative description of the compact or expanded view
type Layout struct {
	// Name is the resolved platform layout id
	Name       string
	SongName   string
	ArtistName string
	Artwork    []byte
	Buttons    []Button
}

// Button returns the button occupying the given slot
func (l Layout) Button(slot Slot) (Button, bool) {
	for _, b := range l.Buttons {
		if b.Slot == slot {
			return b, true
		}
	}
	return Button{}, false
}

func (l Layout) clone() Layout {
	l.Buttons = slices.Clone(l.Buttons)
	return l
}

// ContentIntent describes what happens when the notification body is tapped
type ContentIntent struct {
	// Target names the application to bring forward
	Target string
	SongID string
	Bundle map[string]string
}

// Descriptor is the notification content handed to the NotificationShell.
// Values are never mutated in place; the With* helpers return copies.
type Descriptor struct {
	ID            int
	SmallIcon     string
	Title         string
	Text          string
	ContentIntent *ContentIntent
	Compact       Layout
	Expanded      Layout
	Ongoing       bool
}

// WithArtwork returns a copy of d whose layouts show the given artwork
func (d Descriptor) WithArtwork(art []byte) Descriptor {
	out := d.clone()
	out.Compact.Artwork = art
	out.Expanded.Artwork = art
	return out
}

// WithExpandedIcon returns a copy of d with the icon of one expanded-layout slot replaced
func (d Descriptor) WithExpandedIcon(slot Slot, icon string) Descriptor {
	out := d.clone()
	for i := range out.Expanded.Buttons {
		if out.Expanded.Buttons[i].Slot == slot {
			out.Expanded.Buttons[i].Icon = icon
		}
	}
	return out
}

func (d Descriptor) clone() Descriptor {
	out := d
	out.Compact = d.Compact.clone()
	out.Expanded = d.Expanded.clone()
	if d.ContentIntent != nil {
		ci := *d.ContentIntent
		out.ContentIntent = &ci
	}
	return out
}
