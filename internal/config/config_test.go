package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load([]string{filepath.Join(t.TempDir(), "missing.toml")})
	require.NoError(t, err)

	assert.Equal(t, domain.ThemeAuto, cfg.ThemeMode())
	assert.Equal(t, domain.TimeInterval, cfg.Debounce)
	assert.Equal(t, defaultFetchTimeout, cfg.Fetch.Timeout)
	assert.Equal(t, defaultRetryMax, cfg.Fetch.RetryMax)
	assert.Equal(t, domain.DefaultActionIDs(), cfg.Actions)
	assert.Equal(t, domain.ChannelConfig{Name: defaultChannelName, Urgency: domain.UrgencyNormal}, cfg.ChannelSettings())
	assert.Empty(t, cfg.HookCommands())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
player = "spotify"
theme = "Dark"
background_color = "#202020"
small_icon = "media-playback-start"
body_format = "%[2]s - %[1]s"
debounce = "500ms"
target_class = "org.example.Player"
open_on_click = true

[target_bundle]
source = "notification"

[actions]
next = "custom.next"

[resources]
notify_btn_dark_play_selector = "media-playback-start-symbolic"

[hooks]
favorite = "notify-send favorite {title}"
unknown = "true"

[fetch]
timeout = "3s"
retry_max = 5

[channel]
name = "Now playing"
category = "x-media"
urgency = "low"
`)

	cfg, err := load([]string{path})
	require.NoError(t, err)

	assert.Equal(t, "spotify", cfg.Player)
	assert.Equal(t, domain.ThemeDark, cfg.ThemeMode())
	assert.Equal(t, "#202020", cfg.BackgroundColor)
	assert.Equal(t, "media-playback-start", cfg.SmallIcon)
	assert.Equal(t, "%[2]s - %[1]s", cfg.BodyFormat)
	assert.Equal(t, 500*time.Millisecond, cfg.Debounce)
	assert.Equal(t, "org.example.Player", cfg.TargetClass)
	assert.True(t, cfg.OpenOnClick)
	assert.Equal(t, map[string]string{"source": "notification"}, cfg.TargetBundle)

	assert.Equal(t, "custom.next", cfg.Actions.Next)
	assert.Equal(t, domain.ActionIDPrev, cfg.Actions.Prev, "unset ids keep their default")

	assert.Equal(t, "media-playback-start-symbolic", cfg.Resources["notify_btn_dark_play_selector"])
	assert.Equal(t, map[string]string{domain.ActionIDFavorite: "notify-send favorite {title}"}, cfg.HookCommands())

	assert.Equal(t, 3*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, 5, cfg.Fetch.RetryMax)
	assert.Equal(t, domain.ChannelConfig{Name: "Now playing", Category: "x-media", Urgency: domain.UrgencyLow},
		cfg.ChannelSettings())
}

func TestLoadLayering(t *testing.T) {
	base := writeConfig(t, "player = \"vlc\"\ntheme = \"light\"\n")
	override := writeConfig(t, "player = \"mpv\"\n")

	cfg, err := load([]string{base, override})
	require.NoError(t, err)
	assert.Equal(t, "mpv", cfg.Player, "later files win")
	assert.Equal(t, domain.ThemeLight, cfg.ThemeMode())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, "player = \"vlc\"\ndebounce = \"2s\"\n")

	t.Setenv("MPRISNOTIFY_PLAYER", "mpv")
	t.Setenv("MPRISNOTIFY_THEME", "light")
	t.Setenv("MPRISNOTIFY_DEBOUNCE", "250ms")
	t.Setenv("MPRISNOTIFY_OPEN_ON_CLICK", "true")

	cfg, err := load([]string{path})
	require.NoError(t, err)
	assert.Equal(t, "mpv", cfg.Player)
	assert.Equal(t, domain.ThemeLight, cfg.ThemeMode())
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
	assert.True(t, cfg.OpenOnClick)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		env  map[string]string
	}{
		{name: "Malformed TOML", file: "player = \n[["},
		{name: "Invalid debounce env", env: map[string]string{"MPRISNOTIFY_DEBOUNCE": "soon"}},
		{name: "Invalid open on click env", env: map[string]string{"MPRISNOTIFY_OPEN_ON_CLICK": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			var paths []string
			if tt.file != "" {
				paths = append(paths, writeConfig(t, tt.file))
			}
			_, err := load(paths)
			assert.Error(t, err)
		})
	}
}

func TestLoadNormalizes(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	path := writeConfig(t, `
theme = "sepia"
placeholder_art = "~/art.png"

[fetch]
retry_max = -1

[channel]
urgency = "loud"
`)
	cfg, err := load([]string{path})
	require.NoError(t, err)
	assert.Equal(t, domain.ThemeAuto, cfg.ThemeMode(), "unknown theme falls back to auto")
	assert.Equal(t, filepath.Join(home, "art.png"), cfg.PlaceholderArt)
	assert.Zero(t, cfg.Fetch.RetryMax, "negative retries disable retrying")
	assert.Equal(t, domain.UrgencyNormal, cfg.ChannelSettings().Urgency)
}

func TestNewAppConfig(t *testing.T) {
	path := writeConfig(t, "player = \"spotify\"\n")
	t.Setenv("MPRISNOTIFY_CONFIG", path)

	cfg, err := NewAppConfig(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "spotify", cfg.Player)
}
