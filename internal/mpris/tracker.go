package mpris

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// ErrNoPlayer is returned when no MPRIS player is on the bus
var ErrNoPlayer = errors.New("no mpris player available")

// Tracker follows MPRIS players on the session bus and decides which one
// backs the notification. It implements domain.Monitor and domain.SessionProvider.
type Tracker struct {
	logger          *zap.Logger
	preferred       string
	dial            func() (DBusClient, error)
	events          chan domain.SessionEvent
	mu              sync.RWMutex
	running         bool
	cancel          context.CancelFunc
	conn            DBusClient         // Interface for testability
	lastDropWarning time.Time          // Rate limiting for "channel full" warnings
	wg              sync.WaitGroup     // Tracks active producer goroutines
	playerNames     map[string]string  // Maps unique bus names (:1.45) to well-known names
	players         map[string]*Player // Keyed by well-known name
	current         string
}

// NewTracker creates a tracker. preferred may be a full bus name or the short
// player name ("spotify"); empty means "the player that played last".
func NewTracker(logger *zap.Logger, preferred string) *Tracker {
	if preferred != "" && !strings.HasPrefix(preferred, namePrefix) {
		preferred = namePrefix + preferred
	}
	return &Tracker{
		logger:      logger,
		preferred:   preferred,
		dial:        func() (DBusClient, error) { return NewStdDBusClient() },
		events:      make(chan domain.SessionEvent, 10),
		playerNames: make(map[string]string),
		players:     make(map[string]*Player),
	}
}

// Start begins monitoring for players
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		return nil
	}
	t.running = true

	monitorCtx, cancel := context.WithCancel(ctx)
	t.cancel = cancel
	t.mu.Unlock()

	t.logger.Info("MPRIS tracker started", zap.String("preferred", t.preferred))

	// Connect to Session Bus (this may block)
	conn, err := t.dial()
	if err != nil {
		t.logger.Error("Failed to connect to session bus", zap.Error(err))
		t.mu.Lock()
		defer t.mu.Unlock()
		t.running = false
		t.cancel = nil
		return fmt.Errorf("session bus connection failed: %w", err)
	}

	// Check if we were stopped while connecting to D-Bus
	select {
	case <-monitorCtx.Done():
		t.logger.Info("Tracker stopped during D-Bus connection")
		if err := conn.Close(); err != nil {
			t.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
		}
		return monitorCtx.Err()
	default:
	}

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	t.wg.Add(1)
	func() {
		defer t.wg.Done()
		if err := t.detectExistingPlayers(); err != nil {
			t.logger.Warn("Failed to detect existing players", zap.Error(err))
		}
	}()

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(objectPath),
		dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
		dbus.WithMatchMember("PropertiesChanged"),
	); err != nil {
		t.logger.Error("Failed to add match signal", zap.Error(err))
		return fmt.Errorf("failed to add match signal: %w", err)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	); err != nil {
		// Non-fatal, continue without dynamic tracking
		t.logger.Warn("Failed to add NameOwnerChanged match signal", zap.Error(err))
	}

	t.wg.Add(1)
	go t.monitorSignals(monitorCtx)

	<-monitorCtx.Done()

	t.logger.Info("MPRIS tracker stopped")
	return monitorCtx.Err()
}

// Stop gracefully stops the tracker
func (t *Tracker) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	if t.cancel != nil {
		t.cancel()
	}
	t.running = false
	t.mu.Unlock()

	// Wait for producers before closing the channel to avoid "send on closed channel"
	t.wg.Wait()
	close(t.events)

	t.mu.Lock()
	if t.conn != nil {
		if err := t.conn.Close(); err != nil {
			t.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
		}
	}
	t.mu.Unlock()

	t.logger.Info("MPRIS tracker shutdown complete")
	return nil
}

// Events returns a read-only channel of player changes
func (t *Tracker) Events() <-chan domain.SessionEvent {
	return t.events
}

// Current returns the session currently backing the notification
func (t *Tracker) Current() (domain.MediaSession, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	p, ok := t.players[t.current]
	if !ok {
		return nil, false
	}
	return p, true
}

// detectExistingPlayers queries D-Bus for currently running MPRIS players
func (t *Tracker) detectExistingPlayers() error {
	names, err := t.conn.ListNames()
	if err != nil {
		return fmt.Errorf("failed to list bus names: %w", err)
	}
	sort.Strings(names)

	playerCount := 0
	for _, name := range names {
		if !strings.HasPrefix(name, namePrefix) {
			continue
		}
		playerCount++

		uniqueName, err := t.conn.GetNameOwner(name)
		if err != nil {
			t.logger.Warn("Failed to resolve player owner", zap.String("player", name), zap.Error(err))
			continue
		}
		t.addPlayer(name, uniqueName)
	}

	t.logger.Info("Player detection complete", zap.Int("count", playerCount))
	return nil
}

// addPlayer records a player and emits its initial state
func (t *Tracker) addPlayer(name, owner string) {
	p := NewPlayer(t.logger, t.conn, name, owner)

	t.mu.Lock()
	t.playerNames[owner] = name
	t.players[name] = p
	var displaced *Player
	if t.current == "" || name == t.preferred {
		if t.current != name {
			displaced = t.players[t.current]
		}
		t.current = name
	}
	t.mu.Unlock()

	t.logger.Info("MPRIS player tracked", zap.String("player", name), zap.String("unique", owner))
	if displaced != nil {
		displaced.destroy()
	}

	snap, ok := p.CurrentSnapshot()
	if !ok {
		return
	}
	meta, _ := p.CurrentMetadata()
	t.emit(domain.SessionEvent{Player: name, State: snap.State, Title: meta.Title, At: time.Now()})
}

// removePlayer forgets a player and hands the session to another one if needed
func (t *Tracker) removePlayer(name, owner string) {
	t.mu.Lock()
	delete(t.playerNames, owner)
	p := t.players[name]
	delete(t.players, name)
	wasCurrent := t.current == name
	if wasCurrent {
		t.current = t.fallbackLocked()
	}
	t.mu.Unlock()

	t.logger.Info("MPRIS player removed", zap.String("player", name), zap.String("unique", owner))

	if p != nil {
		p.markGone()
		if wasCurrent {
			p.destroy()
		}
	}
	t.emit(domain.SessionEvent{Player: name, State: domain.StateNone, Vanished: true, At: time.Now()})
}

// fallbackLocked picks the next current player. Caller holds t.mu.
func (t *Tracker) fallbackLocked() string {
	if _, ok := t.players[t.preferred]; ok {
		return t.preferred
	}
	names := make([]string, 0, len(t.players))
	for name := range t.players {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) == 0 {
		return ""
	}
	return names[0]
}

// promote makes a player current when it starts playing and nothing is preferred
func (t *Tracker) promote(name string) {
	t.mu.Lock()
	if t.preferred != "" && t.preferred != name {
		if _, ok := t.players[t.preferred]; ok {
			t.mu.Unlock()
			return
		}
	}
	if t.current == name {
		t.mu.Unlock()
		return
	}
	old := t.players[t.current]
	t.current = name
	t.mu.Unlock()

	t.logger.Info("Session moved to playing player", zap.String("player", name))
	if old != nil {
		old.destroy()
	}
}

// monitorSignals listens for D-Bus signals and processes them
func (t *Tracker) monitorSignals(ctx context.Context) {
	defer t.wg.Done()

	signals := make(chan *dbus.Signal, 10)
	t.conn.Signal(signals)

	for {
		select {
		case <-ctx.Done():
			t.logger.Debug("Signal monitoring goroutine stopped")
			return
		case sig := <-signals:
			if sig == nil {
				continue
			}
			if sig.Name == "org.freedesktop.DBus.NameOwnerChanged" {
				t.handleNameOwnerChanged(sig)
			} else {
				t.handleSignal(sig)
			}
		}
	}
}

// handleNameOwnerChanged processes NameOwnerChanged signals to track player lifecycle
func (t *Tracker) handleNameOwnerChanged(sig *dbus.Signal) {
	if len(sig.Body) < 3 {
		return
	}

	name, ok := sig.Body[0].(string)
	if !ok || !strings.HasPrefix(name, namePrefix) {
		return // Not an MPRIS player
	}

	oldOwner, _ := sig.Body[1].(string)
	newOwner, _ := sig.Body[2].(string)

	switch {
	case oldOwner == "" && newOwner != "":
		t.addPlayer(name, newOwner)
	case oldOwner != "" && newOwner == "":
		t.removePlayer(name, oldOwner)
	case oldOwner != "" && newOwner != "":
		// Ownership transfer: the session token rotates
		t.logger.Debug("MPRIS player ownership changed",
			zap.String("player", name),
			zap.String("oldUnique", oldOwner),
			zap.String("newUnique", newOwner))
		t.mu.Lock()
		old := t.players[name]
		delete(t.playerNames, oldOwner)
		t.playerNames[newOwner] = name
		t.players[name] = NewPlayer(t.logger, t.conn, name, newOwner)
		wasCurrent := t.current == name
		t.mu.Unlock()
		if old != nil && wasCurrent {
			old.destroy()
		}
	}
}

// handleSignal processes a PropertiesChanged signal
func (t *Tracker) handleSignal(sig *dbus.Signal) {
	if sig.Name != "org.freedesktop.DBus.Properties.PropertiesChanged" {
		return
	}
	if len(sig.Body) < 2 {
		return
	}
	iface, ok := sig.Body[0].(string)
	if !ok || iface != playerInterface {
		return
	}
	changedProps, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return
	}

	t.mu.RLock()
	name, known := t.playerNames[sig.Sender]
	p := t.players[name]
	t.mu.RUnlock()
	if !known || p == nil {
		t.logger.Debug("PropertiesChanged from untracked sender", zap.String("sender", sig.Sender))
		return
	}

	if status, ok := changedProps["PlaybackStatus"]; ok {
		if s, _ := status.Value().(string); s == "Playing" {
			t.promote(name)
		}
	}

	snap, ok := p.handleProperties(changedProps)
	if !ok {
		return
	}

	ev := domain.SessionEvent{Player: name, State: snap.State, At: time.Now()}
	if metaVariant, ok := changedProps["Metadata"]; ok {
		if m, ok := metaVariant.Value().(map[string]dbus.Variant); ok {
			ev.Title = parseMetadata(t.logger, m).Title
		}
	}
	t.emit(ev)
}

// emit performs a non-blocking send so a slow consumer never stalls signal handling
func (t *Tracker) emit(ev domain.SessionEvent) {
	select {
	case t.events <- ev:
		t.logger.Debug("Session change detected",
			zap.String("player", ev.Player),
			zap.String("state", ev.State.String()),
			zap.String("title", ev.Title))
	default:
		t.logChannelFullWarning()
	}
}

// logChannelFullWarning logs a warning about channel being full, but rate-limited
func (t *Tracker) logChannelFullWarning() {
	t.mu.Lock()
	defer t.mu.Unlock()

	const warningInterval = 5 * time.Second
	now := time.Now()

	if now.Sub(t.lastDropWarning) >= warningInterval {
		t.logger.Warn("Events channel full, dropping session event")
		t.lastDropWarning = now
	}
}
