package theme

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	scheme uint32
	err    error
	calls  int
}

func (f *fakeReader) ColorScheme(context.Context) (uint32, error) {
	f.calls++
	return f.scheme, f.err
}

func TestDetectorIsDark(t *testing.T) {
	tests := []struct {
		name       string
		mode       domain.Theme
		reader     *fakeReader
		background string
		want       bool
	}{
		{name: "Forced dark", mode: domain.ThemeDark, want: true},
		{name: "Forced light", mode: domain.ThemeLight, reader: &fakeReader{scheme: SchemePreferDark}, want: false},
		{name: "Portal prefers dark", mode: domain.ThemeAuto, reader: &fakeReader{scheme: SchemePreferDark}, want: true},
		{name: "Portal prefers light", mode: domain.ThemeAuto, reader: &fakeReader{scheme: SchemePreferLight}, background: "#101010", want: false},
		{name: "No preference uses dark background", mode: domain.ThemeAuto, reader: &fakeReader{scheme: SchemeNoPreference}, background: "#202124", want: true},
		{name: "Portal error uses light background", mode: domain.ThemeAuto, reader: &fakeReader{err: errors.New("no portal")}, background: "#f5f5f5", want: false},
		{name: "Nothing known defaults to light", mode: domain.ThemeAuto, want: false},
		{name: "Invalid background ignored", mode: domain.ThemeAuto, background: "dark", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reader SchemeReader
			if tt.reader != nil {
				reader = tt.reader
			}
			d := NewDetector(zap.NewNop(), tt.mode, reader, tt.background)
			assert.Equal(t, tt.want, d.IsDark(context.Background()))
		})
	}
}

func TestDetectorCachesPortalAnswer(t *testing.T) {
	reader := &fakeReader{scheme: SchemePreferDark}
	d := NewDetector(zap.NewNop(), domain.ThemeAuto, reader, "")

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return now }

	assert.True(t, d.IsDark(context.Background()))
	reader.scheme = SchemePreferLight
	assert.True(t, d.IsDark(context.Background()), "cached within ttl")
	assert.Equal(t, 1, reader.calls)

	now = now.Add(defaultCacheTTL)
	assert.False(t, d.IsDark(context.Background()))
	assert.Equal(t, 2, reader.calls)
}
