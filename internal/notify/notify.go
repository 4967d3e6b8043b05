// Package notify shows desktop notifications for track changes.
package notify

// appName is the sender reported to the notification server.
const appName = "waveplay"

// defaultCategory marks notifications as music player events.
const defaultCategory = "x-gnome.music"

// Urgency is the freedesktop notification urgency hint.
type Urgency byte

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyCritical
)

func (u Urgency) String() string {
	switch u {
	case UrgencyLow:
		return "low"
	case UrgencyNormal:
		return "normal"
	case UrgencyCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Notification is one desktop notification.
type Notification struct {
	Title      string
	Body       string
	Icon       string // absolute image path or themed icon name
	Category   string // empty means defaultCategory
	Timeout    int32  // ms; -1 server default, 0 never expires
	ReplacesID uint32 // id of the notification to replace, 0 for a new one
	Urgency    Urgency
}

func (n Notification) category() string {
	if n.Category == "" {
		return defaultCategory
	}
	return n.Category
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify returns the server-assigned id, or 0 when notifications are unavailable.
	Notify(n Notification) (uint32, error)
	Close(id uint32) error
}
