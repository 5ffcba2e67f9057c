// Package shell posts media notifications to the freedesktop notification
// server and delivers button taps back as actions.
package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

var (
	// ErrNotRegistered is returned when unregistering an unknown action handle
	ErrNotRegistered = errors.New("action receiver not registered")
	// ErrNoChannel is returned when posting before any channel was created
	ErrNoChannel = errors.New("notification channel not created")
)

// openLabel is shown for the default action on servers that list it
const openLabel = "Open"

// imageData is the (iiibiiay) struct of the image-data hint
type imageData struct {
	Width         int32
	Height        int32
	RowStride     int32
	HasAlpha      bool
	BitsPerSample int32
	Channels      int32
	Data          []byte
}

type registration struct {
	ids     map[string]struct{}
	handler domain.ActionHandler
}

// Shell implements domain.NotificationShell and domain.ActionEventSource
type Shell struct {
	logger  *zap.Logger
	bus     Bus
	images  domain.ImageProcessor
	appName string
	now     func() time.Time

	mu        sync.Mutex
	running   bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	channels  map[string]domain.ChannelConfig
	channel   string         // channel new notifications are posted on
	serverIDs map[int]uint32 // local notification id to server id, for replaces_id
	resident  map[int]bool   // promoted notifications
	regs      map[domain.ActionHandle]registration
	nextReg   domain.ActionHandle
	artKey    []byte // encoded artwork the cached hint was built from
	artHint   *dbus.Variant
}

// New creates a shell on the given bus. appName is sent as app_name and desktop-entry.
func New(logger *zap.Logger, bus Bus, images domain.ImageProcessor, appName string) *Shell {
	return &Shell{
		logger:    logger,
		bus:       bus,
		images:    images,
		appName:   appName,
		now:       time.Now,
		channels:  make(map[string]domain.ChannelConfig),
		serverIDs: make(map[int]uint32),
		resident:  make(map[int]bool),
		regs:      make(map[domain.ActionHandle]registration),
	}
}

// CreateChannel records a channel. The first created channel is used for
// posting; creating an existing channel again only updates its settings.
func (s *Shell) CreateChannel(id string, cfg domain.ChannelConfig) error {
	if id == "" {
		return errors.New("channel id must not be empty")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.channels[id] = cfg
	if s.channel == "" {
		s.channel = id
	}
	s.logger.Debug("Notification channel ready", zap.String("channel", id), zap.String("name", cfg.Name))
	return nil
}

// Notify posts the descriptor, replacing the previous notification with the same id
func (s *Shell) Notify(id int, d domain.Descriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.postLocked(id, d)
}

// PromoteForeground posts the descriptor as a resident notification
func (s *Shell) PromoteForeground(id int, d domain.Descriptor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resident[id] = true
	return s.postLocked(id, d)
}

// DemoteForeground drops the resident flag from every notification. It takes
// effect on the next post.
func (s *Shell) DemoteForeground() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.resident)
	return nil
}

// Cancel closes the notification. Unknown ids are not an error.
func (s *Shell) Cancel(id int) error {
	s.mu.Lock()
	sid, ok := s.serverIDs[id]
	delete(s.serverIDs, id)
	s.mu.Unlock()
	if !ok {
		return nil
	}
	if err := s.bus.CloseNotification(sid); err != nil {
		return fmt.Errorf("close notification %d: %w", sid, err)
	}
	return nil
}

func (s *Shell) postLocked(id int, d domain.Descriptor) error {
	cfg, ok := s.channels[s.channel]
	if !ok {
		return ErrNoChannel
	}

	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(cfg.Urgency)),
		"desktop-entry": dbus.MakeVariant(s.appName),
	}
	if cfg.Category != "" {
		hints["category"] = dbus.MakeVariant(cfg.Category)
	}
	resident := s.resident[id]
	if resident {
		hints["resident"] = dbus.MakeVariant(true)
	}
	if img, ok := s.artworkHintLocked(d.Expanded.Artwork); ok {
		hints["image-data"] = img
	}

	timeout := int32(-1)
	if resident || d.Ongoing {
		timeout = 0
	}

	sid, err := s.bus.Notify(Notification{
		AppName:    s.appName,
		ReplacesID: s.serverIDs[id],
		Icon:       d.SmallIcon,
		Summary:    d.Title,
		Body:       d.Text,
		Actions:    actionList(d),
		Hints:      hints,
		Timeout:    timeout,
	})
	if err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	s.serverIDs[id] = sid
	return nil
}

// artworkHintLocked converts artwork to an image-data hint, reusing the last
// conversion while the artwork bytes are unchanged
func (s *Shell) artworkHintLocked(art []byte) (dbus.Variant, bool) {
	if len(art) == 0 || s.images == nil {
		return dbus.Variant{}, false
	}
	if s.artHint != nil && bytes.Equal(s.artKey, art) {
		return *s.artHint, true
	}

	raw, err := s.images.Thumbnail(context.Background(), art)
	if err != nil {
		s.logger.Debug("Artwork not decodable, posting without image", zap.Error(err))
		return dbus.Variant{}, false
	}
	v := dbus.MakeVariant(imageData{
		Width:         raw.Width,
		Height:        raw.Height,
		RowStride:     raw.RowStride,
		HasAlpha:      raw.HasAlpha,
		BitsPerSample: raw.BitsPerSample,
		Channels:      raw.Channels,
		Data:          raw.Data,
	})
	s.artKey = bytes.Clone(art)
	s.artHint = &v
	return v, true
}

// actionList flattens the expanded layout buttons into identifier/label pairs.
// Disabled buttons are left out.
func actionList(d domain.Descriptor) []string {
	var actions []string
	if d.ContentIntent != nil {
		actions = append(actions, domain.ActionIDOpen, openLabel)
	}
	for _, b := range d.Expanded.Buttons {
		if !b.Enabled || b.Action == "" {
			continue
		}
		actions = append(actions, b.Action, b.Label)
	}
	return actions
}
