//go:build linux

package notify

import (
	"path/filepath"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"
)

// dbusNotifier talks to org.freedesktop.Notifications on the session bus.
type dbusNotifier struct {
	conn *dbus.Conn
	obj  dbus.BusObject
}

// New connects to the session bus. Without a session bus it returns a
// notifier that drops everything.
func New() (Notifier, error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return &stubNotifier{}, nil //nolint:nilerr // graceful fallback when D-Bus unavailable
	}

	obj := conn.Object(dbusNotifyDest, dbusNotifyPath)
	return &dbusNotifier{conn: conn, obj: obj}, nil
}

// Notify sends notif and returns its id.
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	hints, icon := notificationHints(notif)

	// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout) -> id
	call := n.obj.Call(
		dbusNotifyInterface+".Notify",
		0,                // flags
		appName,          // app_name
		notif.ReplacesID, // replaces_id
		icon,             // app_icon
		notif.Title,      // summary
		notif.Body,       // body
		[]string{},       // actions
		hints,            // hints
		notif.Timeout,    // expire_timeout
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

// notificationHints builds the hints map. File paths go in the
// image-path hint so servers show the album art at full size; the app
// icon is then a generic themed icon.
func notificationHints(notif Notification) (map[string]dbus.Variant, string) {
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(appName),
		"category":      dbus.MakeVariant(notif.category()),
	}

	icon := notif.Icon
	if filepath.IsAbs(icon) {
		hints["image-path"] = dbus.MakeVariant("file://" + icon)
		icon = "audio-x-generic"
	}
	return hints, icon
}

// Close dismisses notification id.
func (n *dbusNotifier) Close(id uint32) error {
	call := n.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id)
	return call.Err
}

type stubNotifier struct{}

func (s *stubNotifier) Notify(_ Notification) (uint32, error) {
	return 0, nil
}

func (s *stubNotifier) Close(_ uint32) error {
	return nil
}
