package engine

import (
	"context"
	"time"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"go.uber.org/zap"
)

const defaultDebounce = 500 * time.Millisecond

// Notification is the lifecycle the supervisor drives
type Notification interface {
	Start(ctx context.Context)
	Stop(ctx context.Context)
	Started() bool
}

// Supervisor watches player events and brings the notification up once a
// session is playing or paused. Everything after that is driven by the
// session callbacks themselves.
type Supervisor struct {
	logger       *zap.Logger
	monitor      domain.Monitor
	notification Notification
	debounce     time.Duration
	done         chan struct{}
}

// NewSupervisor creates a new supervisor
func NewSupervisor(logger *zap.Logger, mon domain.Monitor, n Notification) *Supervisor {
	return &Supervisor{
		logger:       logger,
		monitor:      mon,
		notification: n,
		debounce:     defaultDebounce,
		done:         make(chan struct{}),
	}
}

// Start launches the event processing loop in a goroutine.
// It returns immediately (non-blocking).
func (s *Supervisor) Start(ctx context.Context) error {
	s.logger.Info("Supervisor starting...")
	go s.runLoop(ctx)
	return nil
}

// runLoop is the main event processing loop with debouncing.
// Players emit bursts of property changes on track switches; only the last
// event of a burst is acted on.
func (s *Supervisor) runLoop(ctx context.Context) {
	defer close(s.done)
	events := s.monitor.Events()

	timer := time.NewTimer(s.debounce)
	timer.Stop() // Start with stopped timer

	var pending *domain.SessionEvent

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Supervisor loop stopped")
			return

		case ev, ok := <-events:
			if !ok {
				s.logger.Info("Monitor events channel closed")
				return
			}
			s.logger.Debug("Event received, debouncing...",
				zap.String("player", ev.Player),
				zap.String("state", ev.State.String()))

			// Save the latest event and reset the debounce timer
			pending = &ev
			timer.Reset(s.debounce)

		case <-timer.C:
			if pending != nil {
				s.processEvent(ctx, *pending)
				pending = nil
			}
		}
	}
}

// processEvent starts the notification for a session that became ready
func (s *Supervisor) processEvent(ctx context.Context, ev domain.SessionEvent) {
	if ev.Vanished {
		s.logger.Debug("Player vanished", zap.String("player", ev.Player))
		return
	}
	if ev.State != domain.StatePlaying && ev.State != domain.StatePaused {
		return
	}
	if s.notification.Started() {
		return
	}

	s.logger.Info("Session ready, starting notification",
		zap.String("player", ev.Player),
		zap.String("title", ev.Title))
	s.notification.Start(ctx)
}

// Stop removes the notification on shutdown
func (s *Supervisor) Stop(ctx context.Context) error {
	s.logger.Info("Supervisor stopping...")
	s.notification.Stop(ctx)
	return nil
}
