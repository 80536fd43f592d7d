// internal/room/registry.go
package room

import "sync"

// Registry is the process-wide mapping from room name to Room. Lookup-or-insert
// is a single critical section, so two concurrent joins of a new room name
// always land in the same Room instance. The registry handle is created once in
// main and threaded into the connection-accept path.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the room with the given name, creating it on first use.
func (reg *Registry) GetOrCreate(name string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	r, ok := reg.rooms[name]
	if !ok {
		r = New(name)
		reg.rooms[name] = r
	}
	return r
}

// Len reports how many rooms exist.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}
