package render

import (
	"github.com/genricoloni/mprisnotify/internal/domain"
)

// Resource names referenced by the renderer. The resolver maps them to the
// icon names or ids understood by the notification server.
const (
	LayoutNotifyPlay    = "view_notify_play"
	LayoutNotifyBigPlay = "view_notify_big_play"

	IDImgNotifyPlayOrPause = "img_notifyPlayOrPause"
	IDImgNotifyPlay        = "img_notifyPlay"
	IDImgNotifyPause       = "img_notifyPause"
	IDImgNotifyStop        = "img_notifyStop"
	IDImgNotifyNext        = "img_notifyNext"
	IDImgNotifyPre         = "img_notifyPre"
	IDImgNotifyClose       = "img_notifyClose"
	IDImgNotifyFavorite    = "img_notifyFavorite"
	IDImgNotifyLyrics      = "img_notifyLyrics"
	IDImgNotifyDownload    = "img_notifyDownload"
	IDImgNotifyIcon        = "img_notifyIcon"
	IDTxtNotifySongName    = "txt_notifySongName"
	IDTxtNotifyArtistName  = "txt_notifyArtistName"

	DrawableSmallIcon = "ic_notification"
	DrawableClose     = "notify_btn_close"

	DrawableDarkPauseSelector  = "notify_btn_dark_pause_selector"
	DrawableLightPauseSelector = "notify_btn_light_pause_selector"
	DrawableDarkPlaySelector   = "notify_btn_dark_play_selector"
	DrawableLightPlaySelector  = "notify_btn_light_play_selector"
	DrawableDarkNextPressed    = "notify_btn_dark_next_pressed"
	DrawableLightNextPressed   = "notify_btn_light_next_pressed"
	DrawableDarkNextSelector   = "notify_btn_dark_next_selector"
	DrawableLightNextSelector  = "notify_btn_light_next_selector"
	DrawableDarkPrevPressed    = "notify_btn_dark_prev_pressed"
	DrawableLightPrevPressed   = "notify_btn_light_prev_pressed"
	DrawableDarkPrevSelector   = "notify_btn_dark_prev_selector"
	DrawableLightPrevSelector  = "notify_btn_light_prev_selector"
	DrawableFavorite           = "notify_btn_favorite"
	DrawableDarkFavorite       = "notify_btn_dark_favorite"
	DrawableLightFavorite      = "notify_btn_light_favorite"
	DrawableLyrics             = "notify_btn_lyrics"
	DrawableDarkLyrics         = "notify_btn_dark_lyrics"
	DrawableLightLyrics        = "notify_btn_light_lyrics"
	DrawableDarkDownload       = "notify_btn_dark_download"
	DrawableLightDownload      = "notify_btn_light_download"
)

// defaultIcons maps drawables to freedesktop icon-naming-spec names.
// Light and dark variants share a symbolic icon unless overridden.
var defaultIcons = map[string]string{
	DrawableSmallIcon: "audio-x-generic",
	DrawableClose:     "window-close-symbolic",

	DrawableDarkPauseSelector:  "media-playback-pause-symbolic",
	DrawableLightPauseSelector: "media-playback-pause",
	DrawableDarkPlaySelector:   "media-playback-start-symbolic",
	DrawableLightPlaySelector:  "media-playback-start",
	DrawableDarkNextPressed:    "action-unavailable-symbolic",
	DrawableLightNextPressed:   "action-unavailable",
	DrawableDarkNextSelector:   "media-skip-forward-symbolic",
	DrawableLightNextSelector:  "media-skip-forward",
	DrawableDarkPrevPressed:    "action-unavailable-symbolic",
	DrawableLightPrevPressed:   "action-unavailable",
	DrawableDarkPrevSelector:   "media-skip-backward-symbolic",
	DrawableLightPrevSelector:  "media-skip-backward",
	DrawableFavorite:           "starred",
	DrawableDarkFavorite:       "non-starred-symbolic",
	DrawableLightFavorite:      "non-starred",
	DrawableLyrics:             "format-justify-fill",
	DrawableDarkLyrics:         "accessories-text-editor-symbolic",
	DrawableLightLyrics:        "accessories-text-editor",
	DrawableDarkDownload:       "folder-download-symbolic",
	DrawableLightDownload:      "folder-download",
}

// MapResolver resolves resource names from an override table, falling back
// to the built-in icon names. Names it does not know resolve to themselves.
type MapResolver struct {
	overrides map[string]string
}

// NewMapResolver creates a resolver with the given name overrides
func NewMapResolver(overrides map[string]string) *MapResolver {
	return &MapResolver{overrides: overrides}
}

// Resolve returns the platform id for a named resource
func (r *MapResolver) Resolve(name string, kind domain.ResourceKind) string {
	if v, ok := r.overrides[name]; ok && v != "" {
		return v
	}
	if kind == domain.KindDrawable {
		if v, ok := defaultIcons[name]; ok {
			return v
		}
	}
	return name
}
