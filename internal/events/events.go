package events

// LoginEvent is published after a successful authentication. Stores use it
// to refresh from storage even when their identity update arrives late.
type LoginEvent struct {
	EventID string `json:"event_id"`
	UserID  string `json:"user_id"`
}

// Notifier is the login-success notification channel consumed by the
// shopping stores. Subscribe registers a handler and returns the function
// that removes it again.
type Notifier interface {
	Subscribe(fn func(LoginEvent)) (unsubscribe func())
}
