package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestPitchCollide_Strip(t *testing.T) {
	p := NewPitch(DefaultRestitution, DefaultFriction)
	ball := NewBall(mgl64.Vec3{0, 0.1, 10}, DefaultBallRadius, DefaultBallMass)
	ball.Velocity = mgl64.Vec3{1, -5, 10}

	c, ok := p.Collide(ball)
	if !ok {
		t.Fatal("expected a contact")
	}
	if c.Tag != TagPitch {
		t.Errorf("expected tag %q, got %q", TagPitch, c.Tag)
	}
	if !vec3AlmostEqual(c.Point, mgl64.Vec3{0, 0, 10}, 1e-12) {
		t.Errorf("expected contact at (0,0,10), got %v", c.Point)
	}
	if c.Normal != Up {
		t.Errorf("expected normal Up, got %v", c.Normal)
	}

	if !almostEqual(ball.Position.Y(), DefaultBallRadius, 1e-12) {
		t.Errorf("expected ball resting at radius, got y=%f", ball.Position.Y())
	}
	want := mgl64.Vec3{0.9, 2.75, 9}
	if !vec3AlmostEqual(ball.Velocity, want, 1e-12) {
		t.Errorf("expected velocity %v, got %v", want, ball.Velocity)
	}
}

func TestPitchCollide_Outfield(t *testing.T) {
	p := NewPitch(DefaultRestitution, DefaultFriction)
	ball := NewBall(mgl64.Vec3{5, 0.05, 10}, DefaultBallRadius, DefaultBallMass)
	ball.Velocity = mgl64.Vec3{0, -3, 5}

	c, ok := p.Collide(ball)
	if !ok {
		t.Fatal("expected a contact with the outfield")
	}
	if c.Tag != "" {
		t.Errorf("expected untagged outfield contact, got %q", c.Tag)
	}
}

func TestPitchCollide_Airborne(t *testing.T) {
	p := NewPitch(DefaultRestitution, DefaultFriction)
	ball := NewBall(mgl64.Vec3{0, 1, 10}, DefaultBallRadius, DefaultBallMass)
	ball.Velocity = mgl64.Vec3{0, -5, 10}

	if _, ok := p.Collide(ball); ok {
		t.Error("expected no contact above the ground")
	}
	if ball.Velocity != (mgl64.Vec3{0, -5, 10}) {
		t.Errorf("expected velocity untouched, got %v", ball.Velocity)
	}
}

func TestPitchCollide_Settles(t *testing.T) {
	p := NewPitch(DefaultRestitution, DefaultFriction)
	ball := NewBall(mgl64.Vec3{0, 0.11, 10}, DefaultBallRadius, DefaultBallMass)
	ball.Velocity = mgl64.Vec3{0, -0.5, 2}

	if _, ok := p.Collide(ball); !ok {
		t.Fatal("expected a contact")
	}
	if ball.Velocity.Y() != 0 {
		t.Errorf("expected small bounce to settle, got vy=%f", ball.Velocity.Y())
	}
}

func TestPitchSurfaceAt(t *testing.T) {
	p := NewPitch(DefaultRestitution, DefaultFriction)
	tests := []struct {
		name string
		x, z float64
		tag  string
	}{
		{"middle of the strip", 0, 10, TagPitch},
		{"behind the bowling crease", 0, -1, TagPitch},
		{"strip edge", PitchHalfWidth, 5, TagPitch},
		{"wide of the strip", PitchHalfWidth + 0.01, 5, ""},
		{"past the far crease", 0, PitchLength + CreaseOverrun + 1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ok := p.SurfaceAt(tt.x, tt.z)
			if !ok {
				t.Fatal("expected a surface")
			}
			if s.Tag != tt.tag {
				t.Errorf("expected tag %q, got %q", tt.tag, s.Tag)
			}
		})
	}
}
