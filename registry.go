package guiplatform

import "errors"

var (
	// ErrRegistryFull is returned when a viewport cannot be registered
	// because the configured capacity is reached.
	ErrRegistryFull = errors.New("guiplatform: viewport registry full")
	// ErrDuplicateHandle is returned when a native handle is already mapped.
	ErrDuplicateHandle = errors.New("guiplatform: native window handle already registered")
)

// registry maps native window handles to viewports, keeping insertion order
// for iteration. A limit of zero means unbounded.
type registry struct {
	limit    int
	order    []*Viewport
	byHandle map[WindowHandle]*Viewport
}

func newRegistry(limit int) *registry {
	if limit < 0 {
		limit = 0
	}
	return &registry{
		limit:    limit,
		byHandle: make(map[WindowHandle]*Viewport),
	}
}

func (r *registry) full() bool {
	return r.limit > 0 && len(r.order) >= r.limit
}

func (r *registry) add(h WindowHandle, vp *Viewport) error {
	if _, ok := r.byHandle[h]; ok {
		return ErrDuplicateHandle
	}
	if r.full() {
		return ErrRegistryFull
	}
	r.byHandle[h] = vp
	r.order = append(r.order, vp)
	return nil
}

// remove drops the entry for h and reports whether one existed.
func (r *registry) remove(h WindowHandle) bool {
	vp, ok := r.byHandle[h]
	if !ok {
		return false
	}
	delete(r.byHandle, h)
	for i, v := range r.order {
		if v == vp {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *registry) find(h WindowHandle) *Viewport {
	if h == 0 {
		return nil
	}
	return r.byHandle[h]
}

func (r *registry) len() int {
	return len(r.order)
}

// each calls fn for every viewport in registration order.
func (r *registry) each(fn func(vp *Viewport)) {
	for _, vp := range r.order {
		fn(vp)
	}
}
