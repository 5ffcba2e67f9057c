package mpris

import (
	"fmt"
	"sync"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	objectPath      = "/org/mpris/MediaPlayer2"
	rootInterface   = "org.mpris.MediaPlayer2"
	playerInterface = "org.mpris.MediaPlayer2.Player"
	namePrefix      = "org.mpris.MediaPlayer2."
)

// capabilities maps MPRIS boolean properties to the domain action set
var capabilities = []struct {
	prop   string
	action domain.Actions
}{
	{"CanGoNext", domain.ActionSkipNext},
	{"CanGoPrevious", domain.ActionSkipPrev},
	{"CanPlay", domain.ActionPlay},
	{"CanPause", domain.ActionPause},
	{"CanSeek", domain.ActionSeek},
	{"CanControl", domain.ActionStop},
}

// Player is a MediaSession backed by one MPRIS player on the bus
type Player struct {
	logger *zap.Logger
	conn   DBusClient
	name   string // well-known name, e.g. org.mpris.MediaPlayer2.spotify
	owner  string // unique name at the time the player was resolved

	mu      sync.Mutex
	subs    map[domain.SubscriptionHandle]domain.SessionCallbacks
	nextSub domain.SubscriptionHandle
	gone    bool // set once the owner left the bus
}

// NewPlayer binds a session to the given well-known bus name
func NewPlayer(logger *zap.Logger, conn DBusClient, name, owner string) *Player {
	return &Player{
		logger: logger.With(zap.String("player", name)),
		conn:   conn,
		name:   name,
		owner:  owner,
		subs:   make(map[domain.SubscriptionHandle]domain.SessionCallbacks),
	}
}

// Name returns the well-known bus name of the player
func (p *Player) Name() string {
	return p.name
}

// Owner returns the unique bus name the player was resolved with
func (p *Player) Owner() string {
	return p.owner
}

// CurrentSnapshot reads PlaybackStatus and the Can* capabilities
func (p *Player) CurrentSnapshot() (domain.PlaybackSnapshot, bool) {
	return p.snapshot(nil)
}

// CurrentMetadata reads the Metadata property.
// An empty map means no track is loaded.
func (p *Player) CurrentMetadata() (domain.TrackMetadata, bool) {
	variant, err := p.conn.GetProperty(p.name, objectPath, playerInterface+".Metadata")
	if err != nil {
		p.logger.Debug("Metadata not available", zap.Error(err))
		return domain.TrackMetadata{}, false
	}

	// SAFE CAST: Some players may return nil or unexpected types if not playing anything
	metadata, ok := variant.Value().(map[string]dbus.Variant)
	if !ok || len(metadata) == 0 {
		return domain.TrackMetadata{}, false
	}
	return parseMetadata(p.logger, metadata), true
}

// snapshot builds a PlaybackSnapshot, preferring values carried by a signal
func (p *Player) snapshot(changed map[string]dbus.Variant) (domain.PlaybackSnapshot, bool) {
	statusVariant, ok := changed["PlaybackStatus"]
	if !ok {
		var err error
		statusVariant, err = p.conn.GetProperty(p.name, objectPath, playerInterface+".PlaybackStatus")
		if err != nil {
			p.logger.Debug("PlaybackStatus not available", zap.Error(err))
			return domain.PlaybackSnapshot{}, false
		}
	}
	status, ok := statusVariant.Value().(string)
	if !ok {
		p.logger.Warn("Invalid playback status format, ignoring")
		return domain.PlaybackSnapshot{}, false
	}

	snap := domain.PlaybackSnapshot{State: parseStatus(status)}
	for _, c := range capabilities {
		v, ok := changed[c.prop]
		if !ok {
			var err error
			v, err = p.conn.GetProperty(p.name, objectPath, playerInterface+"."+c.prop)
			if err != nil {
				continue
			}
		}
		if allowed, ok := v.Value().(bool); ok && allowed {
			snap.Actions |= c.action
		}
	}
	return snap, true
}

// Subscribe registers callbacks for changes on this player
func (p *Player) Subscribe(cb domain.SessionCallbacks) domain.SubscriptionHandle {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.nextSub++
	p.subs[p.nextSub] = cb
	return p.nextSub
}

// Unsubscribe removes a registration. Unknown handles are ignored.
func (p *Player) Unsubscribe(h domain.SubscriptionHandle) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.subs, h)
}

func (p *Player) subscribers() []domain.SessionCallbacks {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.SessionCallbacks, 0, len(p.subs))
	for _, cb := range p.subs {
		out = append(out, cb)
	}
	return out
}

// handleProperties dispatches a PropertiesChanged payload to subscribers.
// A metadata change is always followed by a state callback, so that consumers
// which only re-render on state changes pick up the new track.
func (p *Player) handleProperties(changed map[string]dbus.Variant) (domain.PlaybackSnapshot, bool) {
	metaVariant, hasMetadata := changed["Metadata"]
	_, hasStatus := changed["PlaybackStatus"]
	hasCaps := false
	for _, c := range capabilities {
		if _, ok := changed[c.prop]; ok {
			hasCaps = true
			break
		}
	}
	if !hasMetadata && !hasStatus && !hasCaps {
		return domain.PlaybackSnapshot{}, false
	}

	subs := p.subscribers()

	if hasMetadata {
		metadata, ok := metaVariant.Value().(map[string]dbus.Variant)
		if !ok {
			p.logger.Warn("Invalid metadata format in signal, ignoring")
			return domain.PlaybackSnapshot{}, false
		}
		meta := parseMetadata(p.logger, metadata)
		for _, cb := range subs {
			cb.OnMetadataChanged(meta)
		}
	}

	snap, ok := p.snapshot(changed)
	if !ok {
		return domain.PlaybackSnapshot{}, false
	}
	for _, cb := range subs {
		cb.OnPlaybackStateChanged(snap)
	}
	return snap, true
}

// destroy tells every subscriber that this session is gone
func (p *Player) destroy() {
	for _, cb := range p.subscribers() {
		cb.OnSessionDestroyed()
	}
}

// markGone makes further transport calls fail with ErrNoPlayer
func (p *Player) markGone() {
	p.mu.Lock()
	p.gone = true
	p.mu.Unlock()
}

// Play starts or resumes playback
func (p *Player) Play() error {
	return p.call(playerInterface + ".Play")
}

// Pause pauses playback
func (p *Player) Pause() error {
	return p.call(playerInterface + ".Pause")
}

// Next skips to the next track
func (p *Player) Next() error {
	return p.call(playerInterface + ".Next")
}

// Previous skips to the previous track
func (p *Player) Previous() error {
	return p.call(playerInterface + ".Previous")
}

// Raise asks the player to show its own window
func (p *Player) Raise() error {
	return p.call(rootInterface + ".Raise")
}

func (p *Player) call(method string) error {
	p.mu.Lock()
	gone := p.gone
	p.mu.Unlock()
	if gone {
		return fmt.Errorf("%s on %s: %w", method, p.name, ErrNoPlayer)
	}

	if err := p.conn.Call(p.name, objectPath, method); err != nil {
		return fmt.Errorf("%s on %s: %w", method, p.name, err)
	}
	return nil
}
