package colorrange

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFindPercentiles(t *testing.T) {
	// 10 zeros followed by 1..100 (as hundredths), shuffled.
	depth := make([]float32, 0, 110)
	for i := 100; i >= 1; i-- {
		depth = append(depth, float32(i)/100)
		if i%10 == 0 {
			depth = append(depth, 0)
		}
	}

	got, ok := Find(depth)
	if !ok {
		t.Fatal("expected ranges")
	}
	want := mgl32.Vec4{0.01, 0.80, 0.90, 1.00}
	if !got.ApproxEqual(want) {
		t.Fatalf("ranges = %v, want %v", got, want)
	}
}

func TestFindAllInside(t *testing.T) {
	if _, ok := Find(make([]float32, 64)); ok {
		t.Fatal("all-zero depth should not produce ranges")
	}
	if _, ok := Find(nil); ok {
		t.Fatal("empty depth should not produce ranges")
	}
}

func TestFindSingleEscapedPixel(t *testing.T) {
	got, ok := Find([]float32{0, 0, 0.4})
	if !ok {
		t.Fatal("expected ranges")
	}
	want := mgl32.Vec4{0.4, 0.4, 0.4, 0.4}
	if got != want {
		t.Fatalf("ranges = %v, want %v", got, want)
	}
}

func TestSamplerKeepsLastRanges(t *testing.T) {
	s := NewSampler(2, 2)
	if s.Ranges() != Initial {
		t.Fatalf("initial ranges = %v", s.Ranges())
	}

	copy(s.Buffer(), []float32{0.2, 0.4, 0.6, 0.8})
	first := s.Recompute()
	if first[0] != 0.2 || first[3] != 0.8 {
		t.Fatalf("ranges = %v", first)
	}

	for i := range s.Buffer() {
		s.Buffer()[i] = 0
	}
	if got := s.Recompute(); got != first {
		t.Fatalf("ranges changed to %v on an all-inside frame", got)
	}
}

func TestSamplerResize(t *testing.T) {
	s := NewSampler(4, 4)
	if len(s.Buffer()) != 16 {
		t.Fatalf("len = %d, want 16", len(s.Buffer()))
	}
	s.Resize(2, 2)
	if len(s.Buffer()) != 4 || cap(s.Buffer()) != 16 {
		t.Fatalf("shrink reallocated: len=%d cap=%d", len(s.Buffer()), cap(s.Buffer()))
	}
	s.Resize(8, 8)
	if len(s.Buffer()) != 64 {
		t.Fatalf("len = %d, want 64", len(s.Buffer()))
	}
}

func BenchmarkFind1080(b *testing.B) {
	src := make([]float32, 1080*1080)
	for i := range src {
		src[i] = float32(i%300) / 300
	}
	buf := make([]float32, len(src))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(buf, src)
		Find(buf)
	}
}
