package ecs

// SparseSet stores values keyed by ID in a dense slice so iteration does
// not touch empty slots. Removal swaps the last element into the hole, so
// dense order is not insertion order. The index only holds live ids.
type SparseSet[T any] struct {
	denseIDs    []ID
	denseValues []T
	sparse      map[ID]int
}

// Has returns true if the id exists in the set.
func (s *SparseSet[T]) Has(id ID) bool {
	if s == nil || !id.Valid() {
		return false
	}
	_, ok := s.sparse[id]
	return ok
}

// Get returns the value for id.
func (s *SparseSet[T]) Get(id ID) (T, bool) {
	var zero T
	if !s.Has(id) {
		return zero, false
	}
	return s.denseValues[s.sparse[id]], true
}

// Set inserts or updates the value for id.
func (s *SparseSet[T]) Set(id ID, v T) {
	if s == nil || !id.Valid() {
		return
	}
	if s.sparse == nil {
		s.sparse = make(map[ID]int)
	}
	if idx, ok := s.sparse[id]; ok {
		s.denseValues[idx] = v
		return
	}
	s.denseIDs = append(s.denseIDs, id)
	s.denseValues = append(s.denseValues, v)
	s.sparse[id] = len(s.denseIDs) - 1
}

// Remove deletes the value for id if present.
func (s *SparseSet[T]) Remove(id ID) bool {
	if s == nil || !s.Has(id) {
		return false
	}
	idx := s.sparse[id]
	last := len(s.denseIDs) - 1
	lastID := s.denseIDs[last]

	s.denseIDs[idx] = s.denseIDs[last]
	s.denseValues[idx] = s.denseValues[last]
	s.sparse[lastID] = idx

	var zero T
	s.denseValues[last] = zero
	s.denseIDs = s.denseIDs[:last]
	s.denseValues = s.denseValues[:last]
	delete(s.sparse, id)
	return true
}

// Len returns the number of stored values.
func (s *SparseSet[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.denseIDs)
}

// IDs returns the dense id list.
func (s *SparseSet[T]) IDs() []ID {
	if s == nil {
		return nil
	}
	return s.denseIDs
}

// Values returns the dense value list.
func (s *SparseSet[T]) Values() []T {
	if s == nil {
		return nil
	}
	return s.denseValues
}
