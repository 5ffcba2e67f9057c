package shell

import (
	"context"
	"fmt"

	"github.com/genricoloni/mprisnotify/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	signalActionInvoked      = notifyInterface + ".ActionInvoked"
	signalNotificationClosed = notifyInterface + ".NotificationClosed"
)

// Register subscribes h to taps on the given action identifiers
func (s *Shell) Register(actionIDs []string, h domain.ActionHandler) domain.ActionHandle {
	ids := make(map[string]struct{}, len(actionIDs))
	for _, id := range actionIDs {
		ids[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextReg++
	s.regs[s.nextReg] = registration{ids: ids, handler: h}
	return s.nextReg
}

// Unregister removes a registration. Unknown handles return ErrNotRegistered.
func (s *Shell) Unregister(h domain.ActionHandle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.regs[h]; !ok {
		return fmt.Errorf("handle %d: %w", h, ErrNotRegistered)
	}
	delete(s.regs, h)
	return nil
}

// Start listens for notification signals. It blocks until ctx is cancelled or Stop is called.
func (s *Shell) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = true
	listenCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	for _, member := range []string{"ActionInvoked", "NotificationClosed"} {
		if err := s.bus.AddMatchSignal(
			dbus.WithMatchObjectPath(notifyPath),
			dbus.WithMatchInterface(notifyInterface),
			dbus.WithMatchMember(member),
		); err != nil {
			s.logger.Error("Failed to add match signal", zap.String("member", member), zap.Error(err))
			cancel()
			s.mu.Lock()
			s.running = false
			s.mu.Unlock()
			return fmt.Errorf("failed to add match signal: %w", err)
		}
	}

	signals := make(chan *dbus.Signal, 10)
	s.bus.Signal(signals)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-listenCtx.Done():
				return
			case sig, ok := <-signals:
				if !ok {
					return
				}
				s.handleSignal(sig)
			}
		}
	}()

	s.logger.Info("Notification shell listening for actions")
	<-listenCtx.Done()
	s.bus.RemoveSignal(signals)
	return listenCtx.Err()
}

// Stop ends signal delivery and closes the bus connection
func (s *Shell) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.running = false
	s.mu.Unlock()

	s.wg.Wait()
	if err := s.bus.Close(); err != nil {
		s.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
	}
	return nil
}

func (s *Shell) handleSignal(sig *dbus.Signal) {
	switch sig.Name {
	case signalActionInvoked:
		if len(sig.Body) < 2 {
			return
		}
		sid, ok1 := sig.Body[0].(uint32)
		action, ok2 := sig.Body[1].(string)
		if !ok1 || !ok2 {
			s.logger.Warn("Invalid ActionInvoked payload, ignoring")
			return
		}
		s.dispatch(sid, action)

	case signalNotificationClosed:
		if len(sig.Body) < 1 {
			return
		}
		if sid, ok := sig.Body[0].(uint32); ok {
			s.forget(sid)
		}
	}
}

// dispatch delivers an action on one of our notifications to every handler
// registered for it. Handlers run without the shell lock held.
func (s *Shell) dispatch(sid uint32, action string) {
	s.mu.Lock()
	if !s.ownsLocked(sid) {
		s.mu.Unlock()
		return
	}
	var handlers []domain.ActionHandler
	for _, reg := range s.regs {
		if _, ok := reg.ids[action]; ok {
			handlers = append(handlers, reg.handler)
		}
	}
	s.mu.Unlock()

	if len(handlers) == 0 {
		s.logger.Debug("No receiver for action", zap.String("action", action))
		return
	}
	at := s.now()
	for _, h := range handlers {
		h(action, at)
	}
}

// forget drops the mapping of a notification the server closed, so the next
// post creates a fresh one instead of replacing a dead id
func (s *Shell) forget(sid uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, v := range s.serverIDs {
		if v == sid {
			delete(s.serverIDs, id)
			s.logger.Debug("Notification closed by server", zap.Uint32("server_id", sid))
		}
	}
}

func (s *Shell) ownsLocked(sid uint32) bool {
	for _, v := range s.serverIDs {
		if v == sid {
			return true
		}
	}
	return false
}
