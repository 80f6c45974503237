package prefabs

import (
	"fmt"
	"time"

	"github.com/milk9111/adventure/sprite"
	"gopkg.in/yaml.v3"
)

const (
	PlayerFile    = "player.yaml"
	CompanionFile = "dog.yaml"
	BombFile      = "bomb.yaml"
)

func LoadSpec[T any](l *Loader, filename string) (T, error) {
	var zero T
	data, err := l.Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// ActorSpec describes the player or the companion.
type ActorSpec struct {
	Name             string    `yaml:"name"`
	Speed            float64   `yaml:"speed"`
	Start            PointSpec `yaml:"start"`
	InitialAnimation string    `yaml:"initial_animation"`
	Sheet            SheetSpec `yaml:"sheet"`
}

func (l *Loader) LoadActorSpec(filename string) (*ActorSpec, error) {
	spec, err := LoadSpec[ActorSpec](l, filename)
	if err != nil {
		return nil, err
	}
	if spec.Speed <= 0 {
		return nil, fmt.Errorf("prefabs: %s: speed must be positive", filename)
	}
	if err := spec.Sheet.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	if _, ok := spec.Sheet.Animations[spec.InitialAnimation]; !ok {
		return nil, fmt.Errorf("prefabs: %s: initial animation %q not defined", filename, spec.InitialAnimation)
	}
	return &spec, nil
}

// BombSpec describes the temporary bomb objects.
type BombSpec struct {
	Name             string    `yaml:"name"`
	TTLSeconds       float64   `yaml:"ttl_seconds"`
	ExplodeAnimation string    `yaml:"explode_animation"`
	Sheet            SheetSpec `yaml:"sheet"`
}

func (l *Loader) LoadBombSpec(filename string) (*BombSpec, error) {
	spec, err := LoadSpec[BombSpec](l, filename)
	if err != nil {
		return nil, err
	}
	if spec.TTLSeconds <= 0 {
		return nil, fmt.Errorf("prefabs: %s: ttl_seconds must be positive", filename)
	}
	if err := spec.Sheet.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return &spec, nil
}

// TTL returns the bomb lifetime.
func (s *BombSpec) TTL() time.Duration {
	return time.Duration(s.TTLSeconds * float64(time.Second))
}

type PointSpec struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

type SheetSpec struct {
	Image       string                   `yaml:"image"`
	Rows        int                      `yaml:"rows"`
	Columns     int                      `yaml:"columns"`
	FrameWidth  int                      `yaml:"frame_width"`
	FrameHeight int                      `yaml:"frame_height"`
	Offset      PointSpec                `yaml:"offset"`
	Animations  map[string]AnimationSpec `yaml:"animations"`
}

// Validate checks the grid and every animation against it.
func (s SheetSpec) Validate() error {
	if s.Image == "" {
		return fmt.Errorf("sheet has no image")
	}
	if s.Rows <= 0 || s.Columns <= 0 || s.FrameWidth <= 0 || s.FrameHeight <= 0 {
		return fmt.Errorf("sheet %s: invalid grid %dx%d of %dx%d px", s.Image, s.Rows, s.Columns, s.FrameWidth, s.FrameHeight)
	}
	for name, anim := range s.Animations {
		if err := anim.Animation().Validate(s.Rows, s.Columns); err != nil {
			return fmt.Errorf("sheet %s: animation %s: %w", s.Image, name, err)
		}
	}
	return nil
}

type FrameSpec struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

type AnimationSpec struct {
	Start      FrameSpec `yaml:"start"`
	End        FrameSpec `yaml:"end"`
	DurationMS int       `yaml:"duration_ms"`
	Loop       bool      `yaml:"loop"`
	Flip       bool      `yaml:"flip"`
}

// Animation converts the spec to a sprite animation.
func (a AnimationSpec) Animation() sprite.Animation {
	return sprite.Animation{
		Start:    sprite.Frame{Row: a.Start.Row, Col: a.Start.Col},
		End:      sprite.Frame{Row: a.End.Row, Col: a.End.Col},
		Duration: time.Duration(a.DurationMS) * time.Millisecond,
		Loop:     a.Loop,
		Flip:     a.Flip,
	}
}
