package game

import "github.com/go-gl/mathgl/mgl64"

// World axes. Y is up, the bowler faces +Z and the batter stands down the pitch.
var (
	Up      = mgl64.Vec3{0, 1, 0}
	Forward = mgl64.Vec3{0, 0, 1}
	Right   = mgl64.Vec3{1, 0, 0}
)

// normalize returns the unit vector of v, or the zero vector when v has no length.
func normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp(v, minV, maxV float64) float64 {
	if v < minV {
		return minV
	}
	if v > maxV {
		return maxV
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}
