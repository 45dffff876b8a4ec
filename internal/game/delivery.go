package game

import "github.com/go-gl/mathgl/mgl64"

// Delivery is one live throw: the ball, its parameters and its bounce latch.
// A new throw replaces the delivery; the old one simply stops being stepped.
type Delivery struct {
	ID           int
	Ball         *Ball
	Params       ThrowParams
	Detector     *BounceDetector
	BounceTarget mgl64.Vec3
	Power        float64
	NoBall       bool
	Ticks        int
	Trail        []mgl64.Vec3
	Retired      bool

	trailLen int
}

// Phase returns the current flight phase
func (d *Delivery) Phase() Phase {
	return d.Detector.Phase()
}

// HasBounced reports whether the delivery has bounced
func (d *Delivery) HasBounced() bool {
	return d.Detector.HasBounced()
}

// record appends the ball position to the trail, dropping the oldest point
// once the trail is full.
func (d *Delivery) record() {
	if d.trailLen == 0 || d.Ball == nil {
		return
	}
	if len(d.Trail) >= d.trailLen {
		copy(d.Trail, d.Trail[1:])
		d.Trail = d.Trail[:len(d.Trail)-1]
	}
	d.Trail = append(d.Trail, d.Ball.Position)
}
