package application

import "sync"

// NoticeLevel distinguishes success banners from error banners.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
)

// Notice is a transient user-facing message.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Notifier surfaces transient messages to the user.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// Notices collects the messages raised while handling one request.
type Notices struct {
	mu    sync.Mutex
	items []Notice
}

// Success records a success message.
func (n *Notices) Success(message string) {
	n.push(NoticeSuccess, message)
}

// Error records an error message.
func (n *Notices) Error(message string) {
	n.push(NoticeError, message)
}

func (n *Notices) push(level NoticeLevel, message string) {
	if n == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, Notice{Level: level, Message: message})
}

// Items returns the recorded messages in the order they were raised.
func (n *Notices) Items() []Notice {
	if n == nil {
		return nil
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notice, len(n.items))
	copy(out, n.items)
	return out
}

type discardNotifier struct{}

func (discardNotifier) Success(string) {}
func (discardNotifier) Error(string)   {}

func notifierOrDiscard(n Notifier) Notifier {
	if n == nil {
		return discardNotifier{}
	}
	return n
}
