package renderer

import (
	"strings"
	"testing"
)

func TestMillis(t *testing.T) {
	tests := []struct {
		seconds float64
		want    uint64
	}{
		{-1, 0},
		{0, 0},
		{0.125, 125},
		{2.5, 2500},
	}
	for _, tt := range tests {
		if got := millis(tt.seconds); got != tt.want {
			t.Errorf("millis(%v) = %d, want %d", tt.seconds, got, tt.want)
		}
	}
}

func TestQuadIndicesInRange(t *testing.T) {
	verts := uint32(len(quadVertices) / 2)
	if len(quadIndices)%3 != 0 {
		t.Fatalf("%d indices do not form triangles", len(quadIndices))
	}
	for _, i := range quadIndices {
		if i >= verts {
			t.Fatalf("index %d out of range for %d vertices", i, verts)
		}
	}
}

func TestControlsMentionEveryBinding(t *testing.T) {
	help := strings.Join(Controls, "\n")
	for _, key := range []string{"arrow", "lCtrl", "lShift", "R ", "J ", "M ", "P ", "F12"} {
		if !strings.Contains(help, key) {
			t.Errorf("controls help does not mention %q", key)
		}
	}
}
