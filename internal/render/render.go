// Package render turns a playback snapshot and track metadata into a
// notification descriptor. Rendering is pure: the same input always yields
// a descriptor with the same field values, built from scratch every time.
package render

import (
	"fmt"
	"maps"

	"github.com/genricoloni/mprisnotify/internal/domain"
)

// DefaultBodyFormat receives the title and the subtitle, in that order
const DefaultBodyFormat = "%[1]s craetedBy %[2]s"

// Options are the host-supplied, read-only render settings
type Options struct {
	// SmallIcon overrides the resource name of the small icon
	SmallIcon    string
	BodyFormat   string
	TargetClass  string
	TargetBundle map[string]string
	Actions      domain.ActionIDs
	Resolver     domain.ResourceResolver
}

// Input is everything a render depends on
type Input struct {
	Snapshot domain.PlaybackSnapshot
	Metadata domain.TrackMetadata
	Favorite bool
	Lyrics   bool
	Dark     bool
	// Artwork is the image to show: the track bitmap or the placeholder
	Artwork []byte
}

// Renderer builds descriptors
type Renderer struct {
	opts Options
}

// NewRenderer creates a renderer, filling unset options with defaults
func NewRenderer(opts Options) *Renderer {
	if opts.BodyFormat == "" {
		opts.BodyFormat = DefaultBodyFormat
	}
	if opts.SmallIcon == "" {
		opts.SmallIcon = DrawableSmallIcon
	}
	if opts.Resolver == nil {
		opts.Resolver = NewMapResolver(nil)
	}
	opts.Actions = opts.Actions.WithDefaults()
	return &Renderer{opts: opts}
}

// State derives the render state from the input
func (r *Renderer) State(in Input) domain.RenderState {
	return domain.RenderState{
		SongName:   in.Metadata.Title,
		ArtistName: in.Metadata.Subtitle,
		IsPlaying:  in.Snapshot.State == domain.StatePlaying,
		IsDark:     in.Dark,
		HasNext:    in.Snapshot.Actions.Has(domain.ActionSkipNext),
		HasPrev:    in.Snapshot.Actions.Has(domain.ActionSkipPrev),
		IsFavorite: in.Favorite,
		IsLyricsOn: in.Lyrics,
		Artwork:    in.Artwork,
	}
}

// Render builds a fresh descriptor. Nothing from a previous call is reused.
func (r *Renderer) Render(in Input) domain.Descriptor {
	st := r.State(in)

	d := domain.Descriptor{
		ID:        domain.NotificationID,
		SmallIcon: r.drawable(r.opts.SmallIcon),
		Title:     st.SongName,
		Text:      fmt.Sprintf(r.opts.BodyFormat, st.SongName, st.ArtistName),
		Compact:   r.layout(st, false),
		Expanded:  r.layout(st, true),
		Ongoing:   st.IsPlaying,
	}
	if r.opts.TargetClass != "" {
		d.ContentIntent = &domain.ContentIntent{
			Target: r.opts.TargetClass,
			SongID: in.Metadata.ID,
			Bundle: maps.Clone(r.opts.TargetBundle),
		}
	}
	return d
}

func (r *Renderer) layout(st domain.RenderState, expanded bool) domain.Layout {
	name := LayoutNotifyPlay
	if expanded {
		name = LayoutNotifyBigPlay
	}

	l := domain.Layout{
		Name:       r.opts.Resolver.Resolve(name, domain.KindLayout),
		SongName:   st.SongName,
		ArtistName: st.ArtistName,
		Artwork:    st.Artwork,
	}

	l.Buttons = append(l.Buttons,
		r.button(domain.SlotPrev, IDImgNotifyPre, r.prevIcon(st), "Previous", st.HasPrev),
		r.button(domain.SlotPlayOrPause, IDImgNotifyPlayOrPause, r.playPauseIcon(st), playPauseLabel(st), true),
		r.button(domain.SlotNext, IDImgNotifyNext, r.nextIcon(st), "Next", st.HasNext),
	)
	if expanded {
		l.Buttons = append(l.Buttons,
			r.button(domain.SlotFavorite, IDImgNotifyFavorite, r.FavoriteIcon(st.IsFavorite, st.IsDark), "Favorite", true),
			r.button(domain.SlotLyrics, IDImgNotifyLyrics, r.LyricsIcon(st.IsLyricsOn, st.IsDark), "Lyrics", true),
			r.button(domain.SlotDownload, IDImgNotifyDownload, r.downloadIcon(st), "Download", true),
		)
	}
	l.Buttons = append(l.Buttons,
		r.button(domain.SlotClose, IDImgNotifyClose, r.drawable(DrawableClose), "Close", true))
	return l
}

func (r *Renderer) button(slot domain.Slot, viewID, icon, label string, enabled bool) domain.Button {
	return domain.Button{
		Slot:    slot,
		ViewID:  r.opts.Resolver.Resolve(viewID, domain.KindID),
		Icon:    icon,
		Action:  r.opts.Actions.ForSlot(slot),
		Label:   label,
		Enabled: enabled,
	}
}

func (r *Renderer) drawable(name string) string {
	return r.opts.Resolver.Resolve(name, domain.KindDrawable)
}

func (r *Renderer) playPauseIcon(st domain.RenderState) string {
	switch {
	case st.IsPlaying && st.IsDark:
		return r.drawable(DrawableDarkPauseSelector)
	case st.IsPlaying:
		return r.drawable(DrawableLightPauseSelector)
	case st.IsDark:
		return r.drawable(DrawableDarkPlaySelector)
	default:
		return r.drawable(DrawableLightPlaySelector)
	}
}

func playPauseLabel(st domain.RenderState) string {
	if st.IsPlaying {
		return "Pause"
	}
	return "Play"
}

// nextIcon shows the pressed glyph when there is no next track
func (r *Renderer) nextIcon(st domain.RenderState) string {
	switch {
	case !st.HasNext && st.IsDark:
		return r.drawable(DrawableDarkNextPressed)
	case !st.HasNext:
		return r.drawable(DrawableLightNextPressed)
	case st.IsDark:
		return r.drawable(DrawableDarkNextSelector)
	default:
		return r.drawable(DrawableLightNextSelector)
	}
}

func (r *Renderer) prevIcon(st domain.RenderState) string {
	switch {
	case !st.HasPrev && st.IsDark:
		return r.drawable(DrawableDarkPrevPressed)
	case !st.HasPrev:
		return r.drawable(DrawableLightPrevPressed)
	case st.IsDark:
		return r.drawable(DrawableDarkPrevSelector)
	default:
		return r.drawable(DrawableLightPrevSelector)
	}
}

// FavoriteIcon returns the favorite glyph for the given toggle and theme
func (r *Renderer) FavoriteIcon(favorite, dark bool) string {
	switch {
	case favorite:
		return r.drawable(DrawableFavorite)
	case dark:
		return r.drawable(DrawableDarkFavorite)
	default:
		return r.drawable(DrawableLightFavorite)
	}
}

// LyricsIcon returns the lyrics glyph for the given toggle and theme
func (r *Renderer) LyricsIcon(on, dark bool) string {
	switch {
	case on:
		return r.drawable(DrawableLyrics)
	case dark:
		return r.drawable(DrawableDarkLyrics)
	default:
		return r.drawable(DrawableLightLyrics)
	}
}

func (r *Renderer) downloadIcon(st domain.RenderState) string {
	if st.IsDark {
		return r.drawable(DrawableDarkDownload)
	}
	return r.drawable(DrawableLightDownload)
}
