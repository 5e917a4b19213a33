package control

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewParamsDefaults(t *testing.T) {
	p := NewParams()
	if p.Mode != Mandelbrot {
		t.Errorf("mode = %v, want mandelbrot", p.Mode)
	}
	if p.Zoom != 1 || p.CenterX != 0 || p.CenterY != 0 {
		t.Errorf("view = (%v, %v, %v), want (0, 0, 1)", p.CenterX, p.CenterY, p.Zoom)
	}
	if p.MaxIterations != 15 {
		t.Errorf("iterations = %d, want 15", p.MaxIterations)
	}
	if p.Constant != (mgl32.Vec2{0.1, 0.5}) {
		t.Errorf("constant = %v", p.Constant)
	}
}

func TestModeSwitching(t *testing.T) {
	p := NewParams()
	p.CenterX, p.CenterY = 0.3, -0.2

	p.SwitchToMandelbrot()
	if p.CenterX != 0.3 {
		t.Fatal("switching to the current mode must be a no-op")
	}

	p.SwitchToJulia()
	if p.Mode != Julia || p.Zoom != 0.8 || p.MaxIterations != 300 {
		t.Fatalf("after J: mode=%v zoom=%v iterations=%d", p.Mode, p.Zoom, p.MaxIterations)
	}
	if p.CenterX != 0 || p.CenterY != 0 {
		t.Fatalf("after J: center = (%v, %v)", p.CenterX, p.CenterY)
	}

	p.Zoom = 0.1
	p.SwitchToJulia()
	if p.Zoom != 0.1 {
		t.Fatal("J in julia mode must be a no-op")
	}

	p.SwitchToMandelbrot()
	if p.Mode != Mandelbrot || p.Zoom != 1 || p.MaxIterations != 15 {
		t.Fatalf("after M: mode=%v zoom=%v iterations=%d", p.Mode, p.Zoom, p.MaxIterations)
	}
}

func TestTogglePauseOnlyInJulia(t *testing.T) {
	p := NewParams()
	p.TogglePause()
	if p.Paused {
		t.Fatal("pause toggled in mandelbrot mode")
	}
	p.SwitchToJulia()
	p.TogglePause()
	if !p.Paused {
		t.Fatal("pause not toggled in julia mode")
	}
	p.TogglePause()
	if p.Paused {
		t.Fatal("second toggle did not resume")
	}
}

func TestResetKeepsMode(t *testing.T) {
	p := NewParams()
	p.SwitchToJulia()
	p.CenterX, p.CenterY, p.Zoom = 0.5, 0.5, 0.01
	p.Reset()
	if p.Mode != Julia {
		t.Fatal("reset changed the mode")
	}
	if p.Zoom != 1 || p.CenterX != 0 || p.CenterY != 0 || p.MaxIterations != 15 {
		t.Fatalf("reset view = (%v, %v, %v, %d)", p.CenterX, p.CenterY, p.Zoom, p.MaxIterations)
	}
}

func TestApplyHeld(t *testing.T) {
	tests := []struct {
		name  string
		start Params
		keys  Keys
		want  Params
	}{
		{
			name:  "pan up scales with zoom",
			start: Params{Zoom: 0.5, MaxIterations: 15},
			keys:  Keys{Up: true},
			want:  Params{CenterY: 0.00125, Zoom: 0.5, MaxIterations: 15},
		},
		{
			name:  "pan clamps at the edge",
			start: Params{CenterX: -0.999, CenterY: 0.999, Zoom: 1, MaxIterations: 15},
			keys:  Keys{Up: true, Left: true},
			want:  Params{CenterX: -1, CenterY: 1, Zoom: 1, MaxIterations: 15},
		},
		{
			name:  "opposite keys cancel",
			start: Params{Zoom: 1, MaxIterations: 15},
			keys:  Keys{Up: true, Down: true, Left: true, Right: true},
			want:  Params{Zoom: 1, MaxIterations: 15},
		},
		{
			name:  "zoom in adds an iteration in mandelbrot mode",
			start: Params{Zoom: 1, MaxIterations: 15},
			keys:  Keys{ZoomIn: true},
			want:  Params{Zoom: 0.975, MaxIterations: 16},
		},
		{
			name:  "zoom in keeps julia iterations",
			start: Params{Mode: Julia, Zoom: 0.8, MaxIterations: 300},
			keys:  Keys{ZoomIn: true},
			want:  Params{Mode: Julia, Zoom: 0.78, MaxIterations: 300},
		},
		{
			name:  "zoom in clamps",
			start: Params{Zoom: 0.000005, MaxIterations: 500},
			keys:  Keys{ZoomIn: true},
			want:  Params{Zoom: 0.000005, MaxIterations: 500},
		},
		{
			name:  "zoom out clamps",
			start: Params{Zoom: 1, MaxIterations: 15},
			keys:  Keys{ZoomOut: true},
			want:  Params{Zoom: 1, MaxIterations: 15},
		},
		{
			name:  "zoom out drops an iteration",
			start: Params{Zoom: 0.5, MaxIterations: 40},
			keys:  Keys{ZoomOut: true},
			want:  Params{Zoom: 0.52, MaxIterations: 39},
		},
		{
			name:  "pan uses zoom from before the zoom step",
			start: Params{Zoom: 0.5, MaxIterations: 15},
			keys:  Keys{Right: true, ZoomIn: true},
			want:  Params{CenterX: 0.00125, Zoom: 0.4875, MaxIterations: 16},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.start
			p.ApplyHeld(tt.keys)
			if !mgl32.FloatEqual(p.CenterX, tt.want.CenterX) ||
				!mgl32.FloatEqual(p.CenterY, tt.want.CenterY) ||
				!mgl32.FloatEqualThreshold(p.Zoom, tt.want.Zoom, 1e-7) ||
				p.MaxIterations != tt.want.MaxIterations {
				t.Errorf("got (%v, %v, %v, %d), want (%v, %v, %v, %d)",
					p.CenterX, p.CenterY, p.Zoom, p.MaxIterations,
					tt.want.CenterX, tt.want.CenterY, tt.want.Zoom, tt.want.MaxIterations)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{Mandelbrot, Julia} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("burning-ship"); err == nil {
		t.Error("expected an error for an unknown fractal")
	}
}

func TestParamsString(t *testing.T) {
	p := NewParams()
	if got, want := p.String(), "mandelbrot zoom 1 iterations 15"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	p.SwitchToJulia()
	p.TogglePause()
	if got, want := p.String(), "julia zoom 0.8 iterations 300 c=(0.1000, 0.5000) paused"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
