package ecs

import "iter"

// Registry owns every live game object keyed by id.
type Registry struct {
	ids     idAllocator
	objects SparseSet[Object]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add stores obj under a fresh id and returns it. An object that is
// already stored keeps its id.
func (r *Registry) Add(obj Object) ID {
	if r == nil || obj == nil {
		return 0
	}
	if id := obj.ID(); id.Valid() && r.objects.Has(id) {
		return id
	}
	id := r.ids.next()
	obj.assign(id)
	r.objects.Set(id, obj)
	return id
}

// Remove deletes the object with id. Unknown ids are ignored.
func (r *Registry) Remove(id ID) {
	if r == nil {
		return
	}
	r.objects.Remove(id)
}

// Get returns the object with id.
func (r *Registry) Get(id ID) (Object, bool) {
	if r == nil {
		return nil, false
	}
	return r.objects.Get(id)
}

// Len returns the number of stored objects.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return r.objects.Len()
}

// All yields every stored object. The registry must not be mutated while
// a sequence is being ranged over; between ranges it may change freely.
func (r *Registry) All() iter.Seq[Object] {
	return func(yield func(Object) bool) {
		if r == nil {
			return
		}
		for _, obj := range r.objects.Values() {
			if !yield(obj) {
				return
			}
		}
	}
}

// Each yields the stored objects of one kind.
func (r *Registry) Each(kind Kind) iter.Seq[Object] {
	return func(yield func(Object) bool) {
		for obj := range r.All() {
			if obj.Kind() != kind {
				continue
			}
			if !yield(obj) {
				return
			}
		}
	}
}

// Temporaries yields every object with a lifetime.
func (r *Registry) Temporaries() iter.Seq[*Temporary] {
	return func(yield func(*Temporary) bool) {
		for obj := range r.All() {
			t, ok := obj.AsTemporary()
			if !ok {
				continue
			}
			if !yield(t) {
				return
			}
		}
	}
}

// Renderables yields every object that can be drawn.
func (r *Registry) Renderables() iter.Seq[*Renderable] {
	return func(yield func(*Renderable) bool) {
		for obj := range r.All() {
			rd, ok := obj.AsRenderable()
			if !ok {
				continue
			}
			if !yield(rd) {
				return
			}
		}
	}
}
