package surface

import (
	"sync"

	"github.com/billcraft/billcraft/internal/domain/document"
	"github.com/billcraft/billcraft/internal/logger"
	"github.com/billcraft/billcraft/internal/types"
)

// Registry tracks live rendering surfaces. Each render call acquires its
// own surface, so there is nothing to collide on; the registry exists so
// that a leaked surface is observable instead of silent.
type Registry struct {
	mu     sync.Mutex
	active map[string]*Surface
	log    *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{
		active: make(map[string]*Surface),
		log:    log,
	}
}

// Acquire allocates a fresh surface scoped to a single render call
func (r *Registry) Acquire(geometry document.PageGeometry) *Surface {
	s := &Surface{
		id:       types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SURFACE),
		geometry: geometry,
	}

	r.mu.Lock()
	r.active[s.id] = s
	r.mu.Unlock()

	r.log.Debugw("surface acquired", "surface_id", s.id)
	return s
}

// Release detaches a surface. It is idempotent so that deferred releases
// and explicit releases on error paths cannot double-free.
func (r *Registry) Release(s *Surface) {
	if s == nil || s.released {
		return
	}

	r.mu.Lock()
	delete(r.active, s.id)
	r.mu.Unlock()

	s.released = true
	s.elements = nil
	s.images = nil

	r.log.Debugw("surface released", "surface_id", s.id)
}

// ActiveCount returns the number of surfaces currently mounted. It is zero
// whenever no render is in flight.
func (r *Registry) ActiveCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}
