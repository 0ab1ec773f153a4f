package events

import (
	"sync"

	"github.com/dimitrije/showcase-api/internal/models"
	"go.uber.org/zap"
)

type Kind string

const (
	KindSaved   Kind = "saved"
	KindCreated Kind = "created"
	KindDeleted Kind = "deleted"
)

// Wildcard subscribes a listener to every resource.
const Wildcard = "*"

// Event is a change notification for one resource.
type Event struct {
	Resource string `json:"resource"`
	Kind     Kind   `json:"kind"`
	Version  uint64 `json:"version"`
	RecordID string `json:"record_id,omitempty"`
	// Record is the created record. It stays in process.
	Record models.Record `json:"-"`
}

type Listener func(Event)

type subscription struct {
	id       uint64
	resource string
	fn       Listener
}

// Registry is a publish/subscribe registry keyed by resource name.
// Delivery is synchronous on the publisher's goroutine, in registration
// order. A panicking listener is logged and skipped.
type Registry struct {
	mu     sync.RWMutex
	subs   []subscription
	nextID uint64
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{logger: logger}
}

// Subscribe registers fn for resource (or Wildcard) and returns a function
// that removes it again.
func (r *Registry) Subscribe(resource string, fn Listener) func() {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.subs = append(r.subs, subscription{id: id, resource: resource, fn: fn})
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { r.remove(id) })
	}
}

func (r *Registry) remove(id uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.subs {
		if s.id == id {
			r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
			return
		}
	}
}

func (r *Registry) Publish(ev Event) {
	r.mu.RLock()
	targets := make([]subscription, 0, len(r.subs))
	for _, s := range r.subs {
		if s.resource == ev.Resource || s.resource == Wildcard {
			targets = append(targets, s)
		}
	}
	r.mu.RUnlock()

	for _, s := range targets {
		r.deliver(s, ev)
	}
}

func (r *Registry) deliver(s subscription, ev Event) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("listener panicked",
				zap.String("resource", ev.Resource),
				zap.String("kind", string(ev.Kind)),
				zap.Uint64("listener", s.id),
				zap.Any("panic", rec))
		}
	}()
	s.fn(ev)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
