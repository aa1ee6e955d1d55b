package notify

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notificationsDest   = "org.freedesktop.Notifications"
	notificationsPath   = "/org/freedesktop/Notifications"
	notificationsMethod = "org.freedesktop.Notifications.Notify"

	expireTimeoutMs = int32(5000)
)

type dbusBackend struct {
	appName string
}

func (d *dbusBackend) name() string { return "dbus" }

func (d *dbusBackend) send(n Notification) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return fmt.Errorf("session bus: %w", err)
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{
		"urgency": dbus.MakeVariant(byte(n.Urgency)),
	}

	obj := conn.Object(notificationsDest, dbus.ObjectPath(notificationsPath))
	call := obj.Call(notificationsMethod, 0,
		d.appName,
		uint32(0), // replaces_id
		"",        // app_icon
		n.Summary,
		n.Body,
		[]string{}, // actions
		hints,
		expireTimeoutMs,
	)
	if call.Err != nil {
		return fmt.Errorf("notify call: %w", call.Err)
	}
	return nil
}
