package studio

import (
	"context"
	"sync"
	"time"
)

// Registry keeps one Workspace per browser session in memory.
type Registry struct {
	newWorkspace func() *Workspace
	ttl          time.Duration
	now          func() time.Time

	mu    sync.Mutex
	items map[string]*Workspace
}

// NewRegistry returns a registry creating workspaces with factory and
// forgetting them after ttl of inactivity.
func NewRegistry(factory func() *Workspace, ttl time.Duration) *Registry {
	return &Registry{
		newWorkspace: factory,
		ttl:          ttl,
		now:          time.Now,
		items:        map[string]*Workspace{},
	}
}

// Get returns the workspace for id, creating it on first use. The
// workspace is touched before the registry lock is released, so a
// concurrent Sweep never drops one that was just handed out.
func (r *Registry) Get(id string) *Workspace {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.items[id]
	if !ok {
		w = r.newWorkspace()
		r.items[id] = w
	}
	w.touch(r.now())
	return w
}

// Len returns the number of live workspaces.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Sweep drops workspaces idle for longer than the ttl. Workspaces with a
// generation in flight are kept.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, w := range r.items {
		idle, loading := w.idleSince(now)
		if !loading && idle > r.ttl {
			delete(r.items, id)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-t.C:
			r.Sweep(now)
		}
	}
}
