package broadcast

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Observer is a passive viewer that receives snapshot messages
type Observer interface {
	// ID returns the opaque handle identifying the observer
	ID() string

	// Send delivers one text message; an error marks the observer dead
	Send(payload []byte) error
}

// Registry tracks open observers and fans messages out to them.
// Membership may change while a broadcast is in flight; each broadcast
// targets the observers registered when it started.
type Registry struct {
	mu        sync.RWMutex
	observers map[string]Observer
	logger    *log.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(logger *log.Logger) *Registry {
	return &Registry{
		observers: make(map[string]Observer),
		logger:    logger,
	}
}

// Register adds an observer
func (r *Registry) Register(o Observer) {
	r.mu.Lock()
	r.observers[o.ID()] = o
	count := len(r.observers)
	r.mu.Unlock()

	r.logger.Printf("Observer %s connected, %d active", o.ID(), count)
}

// Unregister removes an observer and reports whether it was present
func (r *Registry) Unregister(id string) bool {
	r.mu.Lock()
	_, ok := r.observers[id]
	delete(r.observers, id)
	count := len(r.observers)
	r.mu.Unlock()

	if ok {
		r.logger.Printf("Observer %s removed, %d active", id, count)
	}
	return ok
}

// Count returns the number of registered observers
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.observers)
}

// Broadcast marshals v once and attempts delivery to every registered
// observer. Observers whose send fails are unregistered; no retry is made.
// It returns the number of successful deliveries.
func (r *Registry) Broadcast(v any) int {
	payload, err := json.Marshal(v)
	if err != nil {
		r.logger.Printf("Failed to encode broadcast: %v", err)
		return 0
	}

	targets := r.members()
	if len(targets) == 0 {
		return 0
	}

	var (
		g         errgroup.Group
		mu        sync.Mutex
		delivered int
	)
	for _, o := range targets {
		g.Go(func() error {
			if err := o.Send(payload); err != nil {
				r.logger.Printf("Broadcast to %s failed: %v", o.ID(), err)
				r.Unregister(o.ID())
				return nil
			}
			mu.Lock()
			delivered++
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return delivered
}

// Unicast delivers v to a single observer outside the broadcast path.
// A failed send unregisters the observer.
func (r *Registry) Unicast(o Observer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	if err := o.Send(payload); err != nil {
		r.Unregister(o.ID())
		return fmt.Errorf("failed to send to %s: %w", o.ID(), err)
	}
	return nil
}

func (r *Registry) members() []Observer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Observer, 0, len(r.observers))
	for _, o := range r.observers {
		out = append(out, o)
	}
	return out
}
