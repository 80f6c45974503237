package ecs

import "strconv"

// ID identifies a game object. IDs are assigned by a Registry, start at 1
// and are never reused.
type ID uint64

func (id ID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

func (id ID) Valid() bool {
	return id > 0
}

// idAllocator hands out monotonically increasing ids.
type idAllocator struct {
	last ID
}

func (a *idAllocator) next() ID {
	a.last++
	return a.last
}
