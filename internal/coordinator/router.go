package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"go.uber.org/zap"
)

// target is the part of the coordinator the router drives
type target interface {
	activeSession() (domain.MediaSession, bool)
	playbackState() domain.PlaybackState
	currentMetadata() domain.TrackMetadata
	Stop(ctx context.Context)
}

// Router dispatches notification taps to the session transport controls.
// Taps closer than the debounce interval to the last accepted tap are dropped,
// whichever button they come from.
type Router struct {
	logger   *zap.Logger
	target   target
	hooks    domain.HookRunner
	ids      domain.ActionIDs
	interval time.Duration
	open     bool

	mu      sync.Mutex
	lastTap time.Time // zero until the first accepted tap
}

// NewRouter creates a router. A non-positive interval uses domain.TimeInterval.
func NewRouter(logger *zap.Logger, t target, hooks domain.HookRunner, ids domain.ActionIDs, interval time.Duration, open bool) *Router {
	if interval <= 0 {
		interval = domain.TimeInterval
	}
	return &Router{
		logger:   logger,
		target:   t,
		hooks:    hooks,
		ids:      ids.WithDefaults(),
		interval: interval,
		open:     open,
	}
}

// ActionIDs returns every identifier the router wants delivered
func (r *Router) ActionIDs() []string {
	ids := r.ids.Routed()
	if r.open {
		ids = append(ids, domain.ActionIDOpen)
	}
	if r.hooks != nil {
		for _, id := range r.hookable() {
			if r.hooks.Has(id) {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

func (r *Router) hookable() []string {
	return []string{r.ids.Favorite, r.ids.Lyrics, r.ids.Download, r.ids.Stop}
}

// OnAction handles one tap delivered at now
func (r *Router) OnAction(actionID string, now time.Time) {
	if !r.accept(now) {
		r.logger.Debug("Tap debounced", zap.String("action", actionID))
		return
	}

	switch actionID {
	case r.ids.PlayOrPause:
		if r.target.playbackState() == domain.StatePlaying {
			r.transport(actionID, domain.MediaSession.Pause)
		} else {
			r.transport(actionID, domain.MediaSession.Play)
		}
	case r.ids.Play:
		r.transport(actionID, domain.MediaSession.Play)
	case r.ids.Pause:
		r.transport(actionID, domain.MediaSession.Pause)
	case r.ids.Next:
		r.transport(actionID, domain.MediaSession.Next)
	case r.ids.Prev:
		r.transport(actionID, domain.MediaSession.Previous)
	case r.ids.Close:
		r.target.Stop(context.Background())
	case domain.ActionIDOpen:
		r.transport(actionID, domain.MediaSession.Raise)
	default:
		r.runHook(actionID)
	}
}

// accept applies the debounce window. Only accepted taps move the window.
func (r *Router) accept(now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.lastTap.IsZero() && now.Sub(r.lastTap) <= r.interval {
		return false
	}
	r.lastTap = now
	return true
}

func (r *Router) transport(actionID string, control func(domain.MediaSession) error) {
	session, ok := r.target.activeSession()
	if !ok {
		r.logger.Debug("No session for action", zap.String("action", actionID))
		return
	}
	if err := control(session); err != nil {
		r.logger.Warn("Transport control failed", zap.String("action", actionID), zap.Error(err))
	}
}

func (r *Router) runHook(actionID string) {
	if r.hooks == nil || !r.hooks.Has(actionID) {
		r.logger.Debug("Unhandled action", zap.String("action", actionID))
		return
	}
	meta := r.target.currentMetadata()
	// Hooks may be slow; keep the action delivery goroutine free
	go func() {
		if err := r.hooks.Run(context.Background(), actionID, meta); err != nil {
			r.logger.Warn("Action hook failed", zap.String("action", actionID), zap.Error(err))
		}
	}()
}
