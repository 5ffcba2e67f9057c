// Package theme decides whether notifications are drawn on a dark background.
package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/godbus/dbus/v5"
	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
)

const (
	portalDest      = "org.freedesktop.portal.Desktop"
	portalPath      = "/org/freedesktop/portal/desktop"
	portalSettings  = "org.freedesktop.portal.Settings"
	appearanceNS    = "org.freedesktop.appearance"
	colorSchemeKey  = "color-scheme"
	defaultCacheTTL = 5 * time.Second
)

// Values of the appearance color-scheme setting
const (
	SchemeNoPreference uint32 = 0
	SchemePreferDark   uint32 = 1
	SchemePreferLight  uint32 = 2
)

// ErrNoPreference is returned by a reader that has no usable color scheme
var ErrNoPreference = errors.New("no color scheme preference")

// SchemeReader reads the desktop color-scheme setting
type SchemeReader interface {
	ColorScheme(ctx context.Context) (uint32, error)
}

// Detector implements domain.ThemeDetector
type Detector struct {
	logger     *zap.Logger
	mode       domain.Theme
	reader     SchemeReader
	background *colorful.Color
	ttl        time.Duration
	now        func() time.Time

	mu        sync.Mutex
	cached    bool
	checkedAt time.Time
	valid     bool
}

// NewDetector creates a detector. reader may be nil when no portal is
// available; background is a hex color used when the portal has no answer.
func NewDetector(logger *zap.Logger, mode domain.Theme, reader SchemeReader, background string) *Detector {
	d := &Detector{
		logger: logger,
		mode:   mode,
		reader: reader,
		ttl:    defaultCacheTTL,
		now:    time.Now,
	}
	if background != "" {
		c, err := colorful.Hex(background)
		if err != nil {
			logger.Warn("Invalid background color, ignoring", zap.String("color", background), zap.Error(err))
		} else {
			d.background = &c
		}
	}
	return d
}

// IsDark reports whether the notification background is dark
func (d *Detector) IsDark(ctx context.Context) bool {
	switch d.mode {
	case domain.ThemeDark:
		return true
	case domain.ThemeLight:
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.valid && d.now().Sub(d.checkedAt) < d.ttl {
		return d.cached
	}
	d.cached = d.detect(ctx)
	d.checkedAt = d.now()
	d.valid = true
	return d.cached
}

func (d *Detector) detect(ctx context.Context) bool {
	if d.reader != nil {
		scheme, err := d.reader.ColorScheme(ctx)
		switch {
		case err != nil:
			d.logger.Debug("Color scheme unavailable", zap.Error(err))
		case scheme == SchemePreferDark:
			return true
		case scheme == SchemePreferLight:
			return false
		}
	}
	if d.background != nil {
		// CIE L* below the midpoint reads as a dark surface
		l, _, _ := d.background.Lab()
		return l < 0.5
	}
	return false
}

// PortalReader reads the color scheme from the XDG desktop portal
type PortalReader struct {
	conn *dbus.Conn
}

// NewPortalReader connects to the session bus
func NewPortalReader() (*PortalReader, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus connection failed: %w", err)
	}
	return &PortalReader{conn: conn}, nil
}

// ColorScheme calls Settings.ReadOne, falling back to the deprecated Read
// whose reply is wrapped in an extra variant
func (r *PortalReader) ColorScheme(ctx context.Context) (uint32, error) {
	obj := r.conn.Object(portalDest, portalPath)

	var v dbus.Variant
	err := obj.CallWithContext(ctx, portalSettings+".ReadOne", 0, appearanceNS, colorSchemeKey).Store(&v)
	if err != nil {
		if err := obj.CallWithContext(ctx, portalSettings+".Read", 0, appearanceNS, colorSchemeKey).Store(&v); err != nil {
			return 0, fmt.Errorf("portal settings read: %w", err)
		}
		if inner, ok := v.Value().(dbus.Variant); ok {
			v = inner
		}
	}

	scheme, ok := v.Value().(uint32)
	if !ok {
		return 0, fmt.Errorf("unexpected color-scheme type %s: %w", v.Signature(), ErrNoPreference)
	}
	return scheme, nil
}

// Close closes the bus connection
func (r *PortalReader) Close() error {
	return r.conn.Close()
}
