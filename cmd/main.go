package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gofractal/glfwcontext"
	"github.com/richinsley/gofractal/graphics"
	"github.com/richinsley/gofractal/headless"
	options "github.com/richinsley/gofractal/options"
	renderer "github.com/richinsley/gofractal/renderer"
)

func init() {
	runtime.LockOSThread()
}

func bindKeys(ctx *glfwcontext.Context, r *renderer.Renderer) {
	p := r.Params()
	ctx.RegisterKeyCallback(glfw.KeyR, p.Reset)
	ctx.RegisterKeyCallback(glfw.KeyP, p.TogglePause)
	ctx.RegisterKeyCallback(glfw.KeyJ, p.SwitchToJulia)
	ctx.RegisterKeyCallback(glfw.KeyM, p.SwitchToMandelbrot)
	ctx.RegisterKeyCallback(glfw.KeyF12, func() {
		name, err := r.Snapshot()
		if err != nil {
			log.Printf("Snapshot failed: %v", err)
			return
		}
		log.Printf("Saved snapshot to %s", name)
	})
}

func runInteractive(opts *options.FractalOptions) {
	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(opts, true)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	defer ctx.Shutdown()

	r, err := renderer.NewRenderer(ctx, opts.StartParams(), *opts.Width, *opts.Height, false)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	if err := r.InitScene(); err != nil {
		log.Fatalf("Failed to initialize scene: %v", err)
	}
	bindKeys(ctx, r)

	for _, line := range renderer.Controls {
		log.Println(line)
	}
	log.Println("Starting interactive render loop...")
	r.Run()
}

func runRecord(opts *options.FractalOptions) {
	var ctx graphics.Context
	if *opts.Headless {
		h, err := headless.NewHeadless(*opts.Width, *opts.Height)
		if err != nil {
			log.Fatalf("Failed to create headless context: %v", err)
		}
		ctx = h
	} else {
		if err := glfwcontext.InitGraphics(); err != nil {
			log.Fatalf("Failed to initialize GLFW: %v", err)
		}
		defer glfwcontext.TerminateGraphics()

		w, err := glfwcontext.New(opts, false)
		if err != nil {
			log.Fatalf("Failed to create hidden window: %v", err)
		}
		ctx = w
	}
	defer ctx.Shutdown()

	r, err := renderer.NewRenderer(ctx, opts.StartParams(), *opts.Width, *opts.Height, true)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	if err := r.InitScene(); err != nil {
		log.Fatalf("Failed to initialize scene: %v", err)
	}

	if err := r.RunOffscreen(opts); err != nil {
		log.Fatalf("Offscreen rendering failed: %v", err)
	}
	log.Printf("Successfully rendered to %s", *opts.OutputFile)
}

func main() {
	opts := &options.FractalOptions{
		Help:       flag.Bool("help", false, "Show help message"),
		Mode:       flag.String("mode", "interactive", "Run mode: interactive or record"),
		Fractal:    flag.String("fractal", "mandelbrot", "Starting fractal: mandelbrot or julia"),
		Width:      flag.Int("width", 1080, "Width of the window or output"),
		Height:     flag.Int("height", 1080, "Height of the window or output"),
		Duration:   flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 30, "Frames per second for recording"),
		OutputFile: flag.String("output", "fractal.mp4", "Output file name for recording"),
		Codec:      flag.String("codec", "h264", "Video codec for recording: h264 or hevc"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
		Headless:   flag.Bool("headless", false, "Record through EGL without a window (linux only)"),
	}
	flag.Parse()

	if *opts.Help {
		fmt.Println("Mandelbrot/Julia Visualizer")
		flag.PrintDefaults()
		return
	}

	if err := opts.Validate(); err != nil {
		log.Fatalf("Invalid options: %v", err)
	}

	if *opts.Mode == "record" {
		runRecord(opts)
		return
	}
	runInteractive(opts)
}
