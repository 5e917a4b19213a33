package options

import (
	"fmt"

	"github.com/richinsley/gofractal/control"
)

type FractalOptions struct {
	Help       *bool
	Mode       *string // "interactive" or "record"
	Fractal    *string // starting fractal, "mandelbrot" or "julia"
	Width      *int
	Height     *int
	Duration   *float64
	FPS        *int
	OutputFile *string
	Codec      *string
	FFMPEGPath *string
	Headless   *bool // record through an EGL pbuffer instead of a hidden GLFW window
}

// Validate checks the values that would otherwise fail deep inside the
// renderer or ffmpeg.
func (o *FractalOptions) Validate() error {
	switch *o.Mode {
	case "interactive", "record":
	default:
		return fmt.Errorf("unknown mode %q", *o.Mode)
	}
	if _, err := control.ParseMode(*o.Fractal); err != nil {
		return err
	}
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", *o.Width, *o.Height)
	}
	if *o.Mode == "record" {
		if *o.FPS <= 0 {
			return fmt.Errorf("invalid fps %d", *o.FPS)
		}
		if *o.Duration <= 0 {
			return fmt.Errorf("invalid duration %v", *o.Duration)
		}
		if *o.OutputFile == "" {
			return fmt.Errorf("record mode needs an output file")
		}
		switch *o.Codec {
		case "h264", "hevc":
		default:
			return fmt.Errorf("unknown codec %q", *o.Codec)
		}
	}
	if *o.Headless && *o.Mode != "record" {
		return fmt.Errorf("headless rendering is only available in record mode")
	}
	return nil
}

// StartParams builds the initial navigation state for the chosen fractal.
func (o *FractalOptions) StartParams() *control.Params {
	p := control.NewParams()
	if m, _ := control.ParseMode(*o.Fractal); m == control.Julia {
		p.SwitchToJulia()
	}
	return p
}

// TotalFrames is the number of frames rendered in record mode.
func (o *FractalOptions) TotalFrames() int {
	return int(*o.Duration * float64(*o.FPS))
}
