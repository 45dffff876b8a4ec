package game

import "github.com/go-gl/mathgl/mgl64"

// LaunchVelocity returns the initial velocity that carries a projectile from
// start to target in exactly duration seconds under constant gravity and no
// other forces. It solves target = start + v*t + 0.5*g*t² for v on every
// axis, so the horizontal components reduce to distance over time.
func LaunchVelocity(start, target mgl64.Vec3, duration float64, gravity mgl64.Vec3) (mgl64.Vec3, error) {
	if !(duration > 0) {
		return mgl64.Vec3{}, ErrInvalidDuration
	}

	drop := gravity.Mul(0.5 * duration * duration)
	return target.Sub(start).Sub(drop).Mul(1 / duration), nil
}

// TravelTime maps a normalised power value into the [minT, maxT] flight time range.
func TravelTime(power, minT, maxT float64) float64 {
	return lerp(minT, maxT, clamp01(power))
}
