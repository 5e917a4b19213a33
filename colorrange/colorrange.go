// Package colorrange derives the gradient stop positions of the fractal
// palette from the depth values the shader wrote for the previous frame.
//
// The shader stores 0 for points inside the set and the normalised escape
// iteration otherwise, so the depth distribution of the escaped points tells
// us where the interesting detail is. The four stops are the smallest
// escaped depth, the 80th and 90th percentiles and the overall maximum.
package colorrange

import (
	"slices"

	"github.com/go-gl/mathgl/mgl32"
)

// Initial is used until the first frame has been sampled.
var Initial = mgl32.Vec4{0.0001, 0.33333, 0.66667, 1.0}

// Find sorts depth in place and returns the four gradient stops. ok is false
// when no pixel escaped, in which case the caller should keep its previous
// ranges.
func Find(depth []float32) (ranges mgl32.Vec4, ok bool) {
	if len(depth) == 0 {
		return ranges, false
	}
	slices.Sort(depth)

	lo := 0
	for lo < len(depth) && depth[lo] == 0 {
		lo++
	}
	if lo == len(depth) {
		return ranges, false
	}

	n := len(depth) - lo
	at := func(offset int) float32 {
		return depth[max(lo+offset-1, lo)]
	}

	return mgl32.Vec4{
		depth[lo],
		at(n * 4 / 5),
		at(n * 9 / 10),
		depth[len(depth)-1],
	}, true
}

// Sampler owns the readback buffer the depth attachment is copied into and
// remembers the last valid ranges.
type Sampler struct {
	buf    []float32
	ranges mgl32.Vec4
}

func NewSampler(width, height int) *Sampler {
	s := &Sampler{ranges: Initial}
	s.Resize(width, height)
	return s
}

// Resize reallocates the buffer only when the pixel count grows.
func (s *Sampler) Resize(width, height int) {
	n := width * height
	if n < 0 {
		n = 0
	}
	if cap(s.buf) < n {
		s.buf = make([]float32, n)
		return
	}
	s.buf = s.buf[:n]
}

// Buffer is the destination for the next depth readback.
func (s *Sampler) Buffer() []float32 {
	return s.buf
}

// Recompute updates the ranges from the current buffer contents.
func (s *Sampler) Recompute() mgl32.Vec4 {
	if r, ok := Find(s.buf); ok {
		s.ranges = r
	}
	return s.ranges
}

func (s *Sampler) Ranges() mgl32.Vec4 {
	return s.ranges
}
