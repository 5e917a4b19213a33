package control

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode selects which fractal the shader iterates.
type Mode int

const (
	Mandelbrot Mode = iota
	Julia
)

func (m Mode) String() string {
	switch m {
	case Mandelbrot:
		return "mandelbrot"
	case Julia:
		return "julia"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the names produced by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "mandelbrot":
		return Mandelbrot, nil
	case "julia":
		return Julia, nil
	}
	return Mandelbrot, fmt.Errorf("unknown fractal %q", s)
}

const (
	panStep     float32 = 0.0025
	panLimit    float32 = 1.0
	zoomOutRate float32 = 1.04
	zoomInRate  float32 = 0.975
	maxZoom     float32 = 1.0
	minZoom     float32 = 0.000005

	minIterations int32 = 15
	maxIterations int32 = 500

	mandelbrotZoom       float32 = 1.0
	mandelbrotIterations int32   = 15
	juliaZoom            float32 = 0.8
	juliaIterations      int32   = 300
)

// DefaultConstant is the Julia constant at startup.
var DefaultConstant = mgl32.Vec2{0.1, 0.5}

// Keys is the set of navigation keys held down during a frame.
type Keys struct {
	Up, Down, Left, Right bool
	ZoomOut               bool
	ZoomIn                bool
}

// Params holds everything the fractal shader needs besides the color ranges.
type Params struct {
	CenterX       float32
	CenterY       float32
	Zoom          float32
	MaxIterations int32
	Mode          Mode
	Constant      mgl32.Vec2
	Paused        bool
}

func NewParams() *Params {
	return &Params{
		Zoom:          mandelbrotZoom,
		MaxIterations: mandelbrotIterations,
		Mode:          Mandelbrot,
		Constant:      DefaultConstant,
	}
}

// Reset recenters the view without changing the fractal mode.
func (p *Params) Reset() {
	p.Zoom = mandelbrotZoom
	p.CenterX, p.CenterY = 0, 0
	p.MaxIterations = mandelbrotIterations
}

func (p *Params) SwitchToJulia() {
	if p.Mode != Mandelbrot {
		return
	}
	p.Mode = Julia
	p.Zoom = juliaZoom
	p.CenterX, p.CenterY = 0, 0
	p.MaxIterations = juliaIterations
}

func (p *Params) SwitchToMandelbrot() {
	if p.Mode != Julia {
		return
	}
	p.Mode = Mandelbrot
	p.Zoom = mandelbrotZoom
	p.CenterX, p.CenterY = 0, 0
	p.MaxIterations = mandelbrotIterations
}

// TogglePause only has an effect while the Julia constant is animating.
func (p *Params) TogglePause() {
	if p.Mode != Julia {
		return
	}
	p.Paused = !p.Paused
}

// ApplyHeld advances the view by one frame of continuous input.
func (p *Params) ApplyHeld(k Keys) {
	step := panStep * p.Zoom

	if k.Up {
		p.CenterY = min(p.CenterY+step, panLimit)
	}
	if k.Down {
		p.CenterY = max(p.CenterY-step, -panLimit)
	}
	if k.Left {
		p.CenterX = max(p.CenterX-step, -panLimit)
	}
	if k.Right {
		p.CenterX = min(p.CenterX+step, panLimit)
	}

	if k.ZoomOut {
		p.Zoom = min(p.Zoom*zoomOutRate, maxZoom)
		if p.Mode == Mandelbrot {
			p.MaxIterations--
		}
		p.MaxIterations = max(p.MaxIterations, minIterations)
	}
	if k.ZoomIn {
		p.Zoom = max(p.Zoom*zoomInRate, minZoom)
		if p.Mode == Mandelbrot {
			p.MaxIterations++
		}
		p.MaxIterations = min(p.MaxIterations, maxIterations)
	}
}

func (p *Params) String() string {
	s := fmt.Sprintf("%s zoom %.6g iterations %d", p.Mode, p.Zoom, p.MaxIterations)
	if p.Mode == Julia {
		s += fmt.Sprintf(" c=(%.4f, %.4f)", p.Constant.X(), p.Constant.Y())
		if p.Paused {
			s += " paused"
		}
	}
	return s
}
