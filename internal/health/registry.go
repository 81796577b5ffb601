package health

import (
	"errors"
	"fmt"
	"sync"
)

// ErrDuplicateName is returned when a probe name is registered a second
// time, regardless of class.
var ErrDuplicateName = errors.New("duplicate probe name")

type entry struct {
	name    string
	class   Class
	checker Checker
}

// Registry holds the named probes for an aggregator. Registration is
// expected to finish before the first run; a run only ever sees a
// snapshot, so late registrations cannot corrupt a pass in flight.
type Registry struct {
	mu      sync.Mutex
	entries []entry
	names   map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{names: make(map[string]struct{})}
}

// Register adds a probe under a unique name. Names are unique across both
// classes; a collision leaves the existing entry intact.
func (r *Registry) Register(name string, class Class, c Checker) error {
	if name == "" {
		return errors.New("register: empty probe name")
	}
	if c == nil {
		return fmt.Errorf("register %q: nil checker", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.names[name]; ok {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateName)
	}
	r.names[name] = struct{}{}
	r.entries = append(r.entries, entry{name: name, class: class, checker: c})
	return nil
}

// Len reports how many probes are registered.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// snapshot copies the entries for one aggregation run.
func (r *Registry) snapshot() []entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entry, len(r.entries))
	copy(out, r.entries)
	return out
}
