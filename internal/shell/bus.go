package shell

import (
	"github.com/godbus/dbus/v5"
)

const (
	notifyDest      = "org.freedesktop.Notifications"
	notifyPath      = "/org/freedesktop/Notifications"
	notifyInterface = "org.freedesktop.Notifications"
)

// Bus is the part of the notification server the shell talks to
type Bus interface {
	Close() error
	AddMatchSignal(options ...dbus.MatchOption) error
	Signal(ch chan<- *dbus.Signal)
	RemoveSignal(ch chan<- *dbus.Signal)

	// Notify posts or replaces a notification and returns its server id
	Notify(n Notification) (uint32, error)
	CloseNotification(id uint32) error
}

// Notification is one org.freedesktop.Notifications.Notify request
type Notification struct {
	AppName    string
	ReplacesID uint32
	Icon       string
	Summary    string
	Body       string
	// Actions alternates identifiers and labels
	Actions []string
	Hints   map[string]dbus.Variant
	Timeout int32
}

// SessionBus talks to the notification server on a private session bus connection
type SessionBus struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// NewSessionBus connects to the session bus
func NewSessionBus() (*SessionBus, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}
	return &SessionBus{conn: conn, obj: conn.Object(notifyDest, notifyPath)}, nil
}

// Close closes the connection
func (b *SessionBus) Close() error {
	return b.conn.Close()
}

// AddMatchSignal adds a signal match rule
func (b *SessionBus) AddMatchSignal(options ...dbus.MatchOption) error {
	return b.conn.AddMatchSignal(options...)
}

// Signal registers a channel to receive signals
func (b *SessionBus) Signal(ch chan<- *dbus.Signal) {
	b.conn.Signal(ch)
}

// RemoveSignal unregisters a signal channel
func (b *SessionBus) RemoveSignal(ch chan<- *dbus.Signal) {
	b.conn.RemoveSignal(ch)
}

// Notify calls Notify(app_name, replaces_id, app_icon, summary, body, actions, hints, expire_timeout)
func (b *SessionBus) Notify(n Notification) (uint32, error) {
	call := b.obj.Call(notifyInterface+".Notify", 0,
		n.AppName,
		n.ReplacesID,
		n.Icon,
		n.Summary,
		n.Body,
		n.Actions,
		n.Hints,
		n.Timeout,
	)
	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// CloseNotification closes a notification by server id
func (b *SessionBus) CloseNotification(id uint32) error {
	return b.obj.Call(notifyInterface+".CloseNotification", 0, id).Err
}
