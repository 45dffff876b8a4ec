package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// fixedRand always returns the same value; 0.5 centres every uniform range.
type fixedRand struct {
	v float64
}

func (r fixedRand) Float64() float64 {
	return r.v
}

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func vec3AlmostEqual(a, b mgl64.Vec3, tolerance float64) bool {
	return almostEqual(a[0], b[0], tolerance) &&
		almostEqual(a[1], b[1], tolerance) &&
		almostEqual(a[2], b[2], tolerance)
}

// exactTuning removes drag, lead and the power multiplier so a throw lands
// where the planner aims it.
func exactTuning() Tuning {
	t := DefaultTuning()
	t.AimLead = 0
	t.PowerMultiplier = 1
	t.SwingDrag = 0
	t.SpinDrag = 0
	return t
}

var mgl64Zero = mgl64.Vec3{}
