package system

import (
	"time"

	"github.com/milk9111/adventure/ecs"
)

// ID is re-exported for callers that only deal with system results.
type ID = ecs.ID

// RemoveExpired deletes every temporary object whose lifetime has run out
// at now and returns their ids.
func RemoveExpired(reg *ecs.Registry, now time.Time, events *ecs.EventQueue) []ID {
	if reg == nil {
		return nil
	}
	var expired []ID
	for t := range reg.Temporaries() {
		if t.Expired(now) {
			expired = append(expired, t.ID())
		}
	}
	for _, id := range expired {
		reg.Remove(id)
		events.Push(ecs.Event{Kind: ecs.EventExpired, Object: id})
	}
	return expired
}
