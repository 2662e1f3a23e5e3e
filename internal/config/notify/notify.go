// Package notify provides change notification for configuration updates.
//
// Components such as open views subscribe to learn when the effective
// configuration may have changed, either because a single key was
// overridden or because a whole layer was replaced from disk.
package notify

import "sync"

// Kind is the type of configuration change.
type Kind int

const (
	// KindSet indicates a single key was written.
	KindSet Kind = iota

	// KindReload indicates an entire layer was replaced.
	KindReload
)

// String returns the change kind name.
func (k Kind) String() string {
	switch k {
	case KindSet:
		return "set"
	case KindReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes one configuration change.
type Change struct {
	// Kind is the type of change.
	Kind Kind

	// Scope names the affected layer: "global", "category:<name>",
	// or "session:<id>".
	Scope string

	// Key is the written key for set changes; empty for reloads.
	Key string

	// Value is the new value for set changes.
	Value any
}

// Observer is called for each configuration change.
type Observer func(change Change)

// Subscription represents an active observer registration.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes this subscription.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.unsubscribe(s.id)
	}
}

// Notifier delivers configuration changes to observers synchronously,
// in the order the changes occurred.
type Notifier struct {
	mu        sync.RWMutex
	observers map[uint64]Observer
	nextID    uint64
}

// New creates a new Notifier.
func New() *Notifier {
	return &Notifier{
		observers: make(map[uint64]Observer),
	}
}

// Subscribe registers an observer for all changes.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := n.nextID
	n.nextID++
	n.observers[id] = observer

	return &Subscription{id: id, notifier: n}
}

// Notify delivers a change to all observers.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	observers := make([]Observer, 0, len(n.observers))
	for _, obs := range n.observers {
		observers = append(observers, obs)
	}
	n.mu.RUnlock()

	// Observers run outside the lock so they may subscribe or unsubscribe.
	for _, obs := range observers {
		obs(change)
	}
}

// NotifySet is a convenience method for single-key changes.
func (n *Notifier) NotifySet(scope, key string, value any) {
	n.Notify(Change{Kind: KindSet, Scope: scope, Key: key, Value: value})
}

// NotifyReload is a convenience method for layer replacements.
func (n *Notifier) NotifyReload(scope string) {
	n.Notify(Change{Kind: KindReload, Scope: scope})
}

func (n *Notifier) unsubscribe(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.observers, id)
}
