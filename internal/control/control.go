// Package control exports the host-facing methods of the notification on the
// session bus, so players and scripts can toggle favorite and lyrics state.
package control

import (
	"context"
	"errors"
	"fmt"

	"github.com/godbus/dbus/v5"
	"github.com/godbus/dbus/v5/introspect"
	"go.uber.org/zap"
)

const (
	BusName    = "io.github.genricoloni.Mprisnotify"
	ObjectPath = "/io/github/genricoloni/Mprisnotify"
	Interface  = "io.github.genricoloni.Mprisnotify"
)

// ErrNameTaken is returned when another instance owns the bus name
var ErrNameTaken = errors.New("control bus name already taken")

// Target is the notification the control object drives
type Target interface {
	Start(ctx context.Context)
	Stop(ctx context.Context)
	Started() bool
	UpdateFavoriteUI(isFavorite bool)
	UpdateLyricsUI(isOn bool)
}

// Conn is the part of *dbus.Conn the service needs
type Conn interface {
	Export(v any, path dbus.ObjectPath, iface string) error
	RequestName(name string, flags dbus.RequestNameFlags) (dbus.RequestNameReply, error)
	ReleaseName(name string) (dbus.ReleaseNameReply, error)
	Close() error
}

// Service owns the exported object
type Service struct {
	logger *zap.Logger
	conn   Conn
	object *Object
}

// Object holds the exported methods. Every method returning *dbus.Error is
// callable on the bus.
type Object struct {
	logger *zap.Logger
	target Target
}

var introspection = &introspect.Node{
	Name: ObjectPath,
	Interfaces: []introspect.Interface{
		introspect.IntrospectData,
		{
			Name: Interface,
			Methods: []introspect.Method{
				{Name: "SetFavorite", Args: []introspect.Arg{{Name: "favorite", Type: "b", Direction: "in"}}},
				{Name: "SetLyrics", Args: []introspect.Arg{{Name: "on", Type: "b", Direction: "in"}}},
				{Name: "Start"},
				{Name: "Stop"},
				{Name: "Started", Args: []introspect.Arg{{Name: "started", Type: "b", Direction: "out"}}},
			},
		},
	},
}

// NewService creates the control service on conn
func NewService(logger *zap.Logger, conn Conn, target Target) *Service {
	return &Service{
		logger: logger,
		conn:   conn,
		object: &Object{logger: logger, target: target},
	}
}

// DialSessionBus opens a private session bus connection for the service
func DialSessionBus() (*dbus.Conn, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus connection failed: %w", err)
	}
	return conn, nil
}

// Start exports the object and claims the bus name
func (s *Service) Start(ctx context.Context) error {
	if err := s.conn.Export(s.object, ObjectPath, Interface); err != nil {
		return fmt.Errorf("export control object: %w", err)
	}
	if err := s.conn.Export(introspect.NewIntrospectable(introspection), ObjectPath,
		"org.freedesktop.DBus.Introspectable"); err != nil {
		return fmt.Errorf("export introspection: %w", err)
	}

	reply, err := s.conn.RequestName(BusName, dbus.NameFlagDoNotQueue)
	if err != nil {
		return fmt.Errorf("request bus name: %w", err)
	}
	if reply != dbus.RequestNameReplyPrimaryOwner {
		return ErrNameTaken
	}

	s.logger.Info("Control interface exported", zap.String("name", BusName))
	return nil
}

// Stop releases the bus name and closes the connection
func (s *Service) Stop(ctx context.Context) error {
	if _, err := s.conn.ReleaseName(BusName); err != nil {
		s.logger.Warn("Failed to release bus name", zap.Error(err))
	}
	if err := s.conn.Close(); err != nil {
		s.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
	}
	return nil
}

// SetFavorite updates the favorite icon of the notification
func (o *Object) SetFavorite(favorite bool) *dbus.Error {
	o.logger.Debug("SetFavorite called", zap.Bool("favorite", favorite))
	o.target.UpdateFavoriteUI(favorite)
	return nil
}

// SetLyrics updates the lyrics icon of the notification
func (o *Object) SetLyrics(on bool) *dbus.Error {
	o.logger.Debug("SetLyrics called", zap.Bool("on", on))
	o.target.UpdateLyricsUI(on)
	return nil
}

// Start shows the notification if a session is ready
func (o *Object) Start() *dbus.Error {
	o.target.Start(context.Background())
	return nil
}

// Stop removes the notification
func (o *Object) Stop() *dbus.Error {
	o.target.Stop(context.Background())
	return nil
}

// Started reports whether the notification is shown
func (o *Object) Started() (bool, *dbus.Error) {
	return o.target.Started(), nil
}
