package game

import "github.com/go-gl/mathgl/mgl64"

// BounceState is the state of a delivery's bounce latch
type BounceState int

const (
	Armed   BounceState = iota // Waiting for the first qualifying contact
	Tripped                    // Bounced; terminal for the delivery
)

func (s BounceState) String() string {
	if s == Tripped {
		return "tripped"
	}
	return "armed"
}

// Phase is the flight phase the stepping loop consults once per tick
type Phase int

const (
	PreBounce Phase = iota
	PostBounce
)

func (p Phase) String() string {
	if p == PostBounce {
		return "post-bounce"
	}
	return "pre-bounce"
}

// BounceDetector watches contacts for one delivery and fires onBounce on the
// first qualifying one. Armed -> Tripped is the only transition.
type BounceDetector struct {
	state     BounceState
	threshold float64
	onBounce  func(Contact)
	contact   Contact
}

func NewBounceDetector(threshold float64, onBounce func(Contact)) *BounceDetector {
	return &BounceDetector{
		state:     Armed,
		threshold: threshold,
		onBounce:  onBounce,
	}
}

// Qualifies reports whether a contact counts as a bounce for a ball whose
// centre is at reference: either it touched the pitch, or the contact point
// is more than the threshold below the ball's centre.
func (d *BounceDetector) Qualifies(c Contact, reference mgl64.Vec3) bool {
	return c.Tag == TagPitch || c.Point.Y() < reference.Y()-d.threshold
}

// Observe feeds one contact event. It returns true only for the contact that
// trips the detector.
func (d *BounceDetector) Observe(c Contact, reference mgl64.Vec3) bool {
	if d.state == Tripped || !d.Qualifies(c, reference) {
		return false
	}

	d.state = Tripped
	d.contact = c
	if d.onBounce != nil {
		d.onBounce(c)
	}
	return true
}

func (d *BounceDetector) State() BounceState {
	return d.state
}

func (d *BounceDetector) HasBounced() bool {
	return d.state == Tripped
}

func (d *BounceDetector) Phase() Phase {
	if d.state == Tripped {
		return PostBounce
	}
	return PreBounce
}

// Contact returns the contact that tripped the detector
func (d *BounceDetector) Contact() (Contact, bool) {
	return d.contact, d.state == Tripped
}
