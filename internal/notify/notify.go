package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/puntotecno/terminal/pkg/config"
	"github.com/puntotecno/terminal/pkg/enums"
)

// Notification is one toast shown to the operator.
type Notification struct {
	ID        uuid.UUID
	Message   string
	Severity  enums.Severity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Notifier is a single queue of short-lived notifications shared by every
// screen. Screens push into it and the terminal loop drains it; no screen
// owns or blocks on another screen's messages.
type Notifier struct {
	mu    sync.Mutex
	items []Notification
	cfg   config.NotifyConfig
	now   func() time.Time
}

// New builds an empty notifier with per-severity display durations.
func New(cfg config.NotifyConfig) *Notifier {
	return &Notifier{cfg: cfg, now: time.Now}
}

// Push queues a message. Unknown severities are shown as errors rather
// than dropped.
func (n *Notifier) Push(message string, severity enums.Severity) uuid.UUID {
	if !severity.IsValid() {
		severity = enums.SeverityError
	}
	n.mu.Lock()
	defer n.mu.Unlock()

	now := n.now()
	item := Notification{
		ID:        uuid.New(),
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(n.ttl(severity)),
	}
	n.items = append(n.items, item)
	return item.ID
}

// Active returns the unexpired notifications in arrival order, pruning
// everything already past its deadline.
func (n *Notifier) Active(now time.Time) []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	kept := n.items[:0]
	for _, item := range n.items {
		if now.Before(item.ExpiresAt) {
			kept = append(kept, item)
		}
	}
	n.items = kept

	out := make([]Notification, len(n.items))
	copy(out, n.items)
	return out
}

// Dismiss removes one notification before its deadline; unknown ids are a
// no-op.
func (n *Notifier) Dismiss(id uuid.UUID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, item := range n.items {
		if item.ID == id {
			n.items = append(n.items[:i], n.items[i+1:]...)
			return
		}
	}
}

// Clear drops every queued notification.
func (n *Notifier) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = nil
}

func (n *Notifier) ttl(severity enums.Severity) time.Duration {
	switch severity {
	case enums.SeverityWarning:
		return n.cfg.WarningTTL
	case enums.SeverityError:
		return n.cfg.ErrorTTL
	default:
		return n.cfg.InfoTTL
	}
}
