package system

import (
	"math/rand/v2"
	"time"

	"github.com/milk9111/adventure/common"
	"github.com/milk9111/adventure/levels"
)

// Random spawn interval bounds in whole seconds, upper bound exclusive.
const (
	SpawnMinSeconds = 1
	SpawnMaxSeconds = 2
)

// Spawner decides when a random temporary object appears and where.
type Spawner struct {
	rng  *rand.Rand
	last time.Time
}

func NewSpawner(rng *rand.Rand, now time.Time) *Spawner {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Spawner{rng: rng, last: now}
}

// Threshold draws a fresh interval from [SpawnMinSeconds, SpawnMaxSeconds).
func (s *Spawner) Threshold() time.Duration {
	return time.Duration(SpawnMinSeconds+s.rng.IntN(SpawnMaxSeconds-SpawnMinSeconds)) * time.Second
}

// Due reports whether the time since the last spawn exceeds a newly drawn
// threshold. A positive answer restarts the timer at now.
func (s *Spawner) Due(now time.Time) bool {
	if now.Sub(s.last) <= s.Threshold() {
		return false
	}
	s.last = now
	return true
}

// Reset restarts the spawn timer.
func (s *Spawner) Reset(now time.Time) {
	s.last = now
}

// Position returns a random tile-aligned world position inside the level.
func (s *Spawner) Position(level *levels.Level) common.Point {
	if level == nil || level.Width <= 0 || level.Height <= 0 {
		return common.Point{}
	}
	return common.Point{
		X: s.rng.IntN(level.Width) * level.TileWidth,
		Y: s.rng.IntN(level.Height) * level.TileHeight,
	}
}
