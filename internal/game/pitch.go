package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pitch dimensions in metres. The bowling crease is at z=0.
const (
	PitchLength    = 20.12
	PitchHalfWidth = 1.525
	CreaseOverrun  = 1.22

	// Vertical speed below which a grounded ball stops bouncing
	restBounceSpeed = 0.5
)

// TagPitch marks the playing strip. Contacts with it always count as a bounce.
const TagPitch = "Pitch"

// Contact describes one ball/surface touch reported by the pitch
type Contact struct {
	Point  mgl64.Vec3
	Normal mgl64.Vec3
	Tag    string
}

// Surface is a horizontal rectangle at a fixed height. An unbounded surface
// extends forever.
type Surface struct {
	Tag       string
	Height    float64
	MinX      float64
	MaxX      float64
	MinZ      float64
	MaxZ      float64
	Unbounded bool
}

// Contains reports whether the point (x, z) lies over the surface
func (s Surface) Contains(x, z float64) bool {
	if s.Unbounded {
		return true
	}
	return x >= s.MinX && x <= s.MaxX && z >= s.MinZ && z <= s.MaxZ
}

// Pitch is the ground the ball bounces on: the tagged strip and the untagged
// outfield around it. Surfaces are checked in order.
type Pitch struct {
	Surfaces    []Surface
	Restitution float64
	Friction    float64
}

func NewPitch(restitution, friction float64) *Pitch {
	return &Pitch{
		Surfaces: []Surface{
			{
				Tag:  TagPitch,
				MinX: -PitchHalfWidth,
				MaxX: PitchHalfWidth,
				MinZ: -CreaseOverrun,
				MaxZ: PitchLength + CreaseOverrun,
			},
			{Unbounded: true},
		},
		Restitution: restitution,
		Friction:    friction,
	}
}

// SurfaceAt returns the first surface under (x, z)
func (p *Pitch) SurfaceAt(x, z float64) (Surface, bool) {
	for _, s := range p.Surfaces {
		if s.Contains(x, z) {
			return s, true
		}
	}
	return Surface{}, false
}

// Collide resolves ball penetration into the ground. When the ball touches a
// surface it is pushed back on top, its downward velocity is reflected with
// restitution and friction is applied to the horizontal velocity.
func (p *Pitch) Collide(b *Ball) (Contact, bool) {
	s, ok := p.SurfaceAt(b.Position.X(), b.Position.Z())
	if !ok || b.Bottom() > s.Height {
		return Contact{}, false
	}

	b.Position[1] = s.Height + b.Radius
	if b.Velocity.Y() < 0 {
		vy := -b.Velocity.Y() * p.Restitution
		if math.Abs(vy) < restBounceSpeed {
			vy = 0
		}
		b.Velocity = mgl64.Vec3{b.Velocity.X() * p.Friction, vy, b.Velocity.Z() * p.Friction}
	}

	return Contact{
		Point:  mgl64.Vec3{b.Position.X(), s.Height, b.Position.Z()},
		Normal: Up,
		Tag:    s.Tag,
	}, true
}
