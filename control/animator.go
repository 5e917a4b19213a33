package control

import "github.com/go-gl/mathgl/mgl32"

const (
	// AnimationTick is the clock time, in milliseconds, between constant steps.
	AnimationTick = 125

	constantStep  float32 = 0.0015
	constantFloor float32 = -0.75
)

// ConstantRestart is where the Julia constant jumps back to once the
// imaginary part has drifted past the floor.
var ConstantRestart = mgl32.Vec2{0.55, 0.45}

// Animator drifts the Julia constant along a fixed diagonal.
type Animator struct {
	last uint64
}

// NewAnimator starts the tick clock at now (milliseconds).
func NewAnimator(now uint64) *Animator {
	return &Animator{last: now}
}

// Step takes at most one animation step. The clock advances by a whole tick
// so time lost to slow frames is recovered on later calls. It reports whether
// the constant changed.
func (a *Animator) Step(p *Params, now uint64) bool {
	if p.Paused || p.Mode != Julia {
		return false
	}
	if now < a.last || now-a.last <= AnimationTick {
		return false
	}
	a.last += AnimationTick

	p.Constant = p.Constant.Sub(mgl32.Vec2{constantStep, constantStep})
	if p.Constant.Y() <= constantFloor {
		p.Constant = ConstantRestart
	}
	return true
}
