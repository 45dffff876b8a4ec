package game

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBallIntegrate_Gravity(t *testing.T) {
	ball := NewBall(mgl64.Vec3{0, 2, 0}, DefaultBallRadius, DefaultBallMass)
	ball.Integrate(0.1, mgl64.Vec3{0, -10, 0})

	// Semi-implicit: velocity first, then position with the new velocity
	if !almostEqual(ball.Velocity.Y(), -1, 1e-12) {
		t.Errorf("expected vy -1, got %f", ball.Velocity.Y())
	}
	if !almostEqual(ball.Position.Y(), 1.9, 1e-12) {
		t.Errorf("expected y 1.9, got %f", ball.Position.Y())
	}
}

func TestBallIntegrate_ForceClearsAfterStep(t *testing.T) {
	ball := NewBall(mgl64.Vec3{}, DefaultBallRadius, 2)
	ball.AddForce(mgl64.Vec3{3, 0, 0})
	ball.AddForce(mgl64.Vec3{1, 0, 0})

	if got := ball.PendingForce(); got != (mgl64.Vec3{4, 0, 0}) {
		t.Fatalf("expected accumulated force (4,0,0), got %v", got)
	}

	ball.Integrate(0.5, mgl64.Vec3{})
	if !vec3AlmostEqual(ball.Velocity, mgl64.Vec3{1, 0, 0}, 1e-12) {
		t.Errorf("expected velocity (1,0,0), got %v", ball.Velocity)
	}
	if !vec3AlmostEqual(ball.Position, mgl64.Vec3{0.5, 0, 0}, 1e-12) {
		t.Errorf("expected position (0.5,0,0), got %v", ball.Position)
	}
	if ball.PendingForce() != (mgl64.Vec3{}) {
		t.Errorf("expected force cleared, got %v", ball.PendingForce())
	}

	// Without a new force the velocity stays put
	ball.Integrate(0.5, mgl64.Vec3{})
	if !vec3AlmostEqual(ball.Velocity, mgl64.Vec3{1, 0, 0}, 1e-12) {
		t.Errorf("expected velocity unchanged, got %v", ball.Velocity)
	}
}

func TestDragFactor(t *testing.T) {
	tests := []struct {
		name string
		drag float64
		dt   float64
		want float64
	}{
		{"no drag", 0, 1.0 / 60, 1},
		{"spin drag", 0.8, 1.0 / 60, 1 - 0.8/60},
		{"clamped", 100, 0.1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dragFactor(tt.drag, tt.dt); !almostEqual(got, tt.want, 1e-12) {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestBallIntegrate_Drag(t *testing.T) {
	ball := NewBall(mgl64.Vec3{}, DefaultBallRadius, DefaultBallMass)
	ball.Velocity = mgl64.Vec3{0, 0, 10}
	ball.Drag = 6
	ball.AngularVelocity = mgl64.Vec3{2, 0, 0}
	ball.AngularDrag = 3

	ball.Integrate(0.1, mgl64.Vec3{})

	if !almostEqual(ball.Velocity.Z(), 4, 1e-12) {
		t.Errorf("expected vz 4, got %f", ball.Velocity.Z())
	}
	if !almostEqual(ball.AngularVelocity.X(), 1.4, 1e-12) {
		t.Errorf("expected wx 1.4, got %f", ball.AngularVelocity.X())
	}
}

func TestAddTorqueImpulse(t *testing.T) {
	ball := NewBall(mgl64.Vec3{}, 0.5, 2)
	// inertia = 0.4 * 2 * 0.25 = 0.2
	ball.AddTorqueImpulse(mgl64.Vec3{0, 0.1, 0})
	if !vec3AlmostEqual(ball.AngularVelocity, mgl64.Vec3{0, 0.5, 0}, 1e-12) {
		t.Errorf("expected angular velocity (0,0.5,0), got %v", ball.AngularVelocity)
	}

	ball.MaxAngularSpeed = 7
	ball.AddTorqueImpulse(mgl64.Vec3{0, 0, 10})
	if w := ball.AngularVelocity.Len(); !almostEqual(w, 7, 1e-9) {
		t.Errorf("expected angular speed capped at 7, got %f", w)
	}
}

func TestBallVelocityHelpers(t *testing.T) {
	ball := NewBall(mgl64.Vec3{0, 1, 0}, DefaultBallRadius, DefaultBallMass)
	ball.Velocity = mgl64.Vec3{3, 0, 0}
	ball.AddVelocity(mgl64.Vec3{0, 0, 4})

	if !almostEqual(ball.Speed(), 5, 1e-12) {
		t.Errorf("expected speed 5, got %f", ball.Speed())
	}

	ball.ScaleVelocity(0.5)
	if !almostEqual(ball.Speed(), 2.5, 1e-12) {
		t.Errorf("expected speed 2.5, got %f", ball.Speed())
	}

	if !almostEqual(ball.Bottom(), 1-DefaultBallRadius, 1e-12) {
		t.Errorf("expected bottom %f, got %f", 1-DefaultBallRadius, ball.Bottom())
	}
}
