package interfaces

import "context"

// NotificationLevel classifies user-facing editor notifications.
type NotificationLevel string

const (
	NotificationInfo    NotificationLevel = "info"
	NotificationSuccess NotificationLevel = "success"
	NotificationWarning NotificationLevel = "warning"
	NotificationError   NotificationLevel = "error"
)

// Notification is a message the editor surfaces to the person using it
// (toasts in the admin UI).
type Notification struct {
	Level   NotificationLevel
	Code    string
	Message string
	Fields  map[string]any
}

// Notifier receives user-facing notifications raised by the builder. The
// builder never blocks on delivery.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) {
	if f != nil {
		f(ctx, n)
	}
}
