package renderer

import (
	"fmt"
	"log"
	"strings"
	"sync"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gofractal/colorrange"
	"github.com/richinsley/gofractal/control"
	"github.com/richinsley/gofractal/graphics"
	"github.com/richinsley/gofractal/shader"
	"github.com/richinsley/gofractal/translator"
)

// glInitOnce ensures gl.Init() is called only once.
var glInitOnce sync.Once

// FractalPass is the compiled fractal program and its uniform locations.
type FractalPass struct {
	ShaderProgram uint32
	locations     map[string]int32
}

func (p *FractalPass) loc(name string) int32 {
	if l, ok := p.locations[name]; ok {
		return l
	}
	return -1
}

type Renderer struct {
	context           graphics.Context
	params            *control.Params
	animator          *control.Animator
	sampler           *colorrange.Sampler
	quadVAO           uint32
	quadVBO           uint32
	quadEBO           uint32
	fractal           *FractalPass
	offscreenRenderer *OffscreenRenderer
	blitProgram       uint32
	width             int
	height            int
	recordMode        bool
	title             string
	depthWarned       bool
}

func NewRenderer(ctx graphics.Context, params *control.Params, width, height int, recordMode bool) (*Renderer, error) {
	r := &Renderer{
		context:    ctx,
		params:     params,
		width:      width,
		height:     height,
		recordMode: recordMode,
	}

	// Make the context current BEFORE initializing OpenGL.
	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	log.Printf("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	if !recordMode {
		r.width, r.height = r.context.GetFramebufferSize()
	}

	var err error
	r.offscreenRenderer, err = NewOffscreenRenderer(r.width, r.height)
	if err != nil {
		return nil, fmt.Errorf("failed to create offscreen renderer: %w", err)
	}
	r.sampler = colorrange.NewSampler(r.width, r.height)

	return r, nil
}

func (r *Renderer) Shutdown() {
	if r.fractal != nil {
		gl.DeleteProgram(r.fractal.ShaderProgram)
	}
	gl.DeleteProgram(r.blitProgram)
	if r.offscreenRenderer != nil {
		r.offscreenRenderer.Destroy()
	}
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteBuffers(1, &r.quadEBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
}

// Two triangles covering clip space.
var (
	quadVertices = []float32{
		-1.0, -1.0,
		1.0, 1.0,
		-1.0, 1.0,
		1.0, -1.0,
	}
	quadIndices = []uint32{
		0, 1, 2,
		0, 3, 1,
	}
)

// InitScene builds the quad geometry and both shader programs.
func (r *Renderer) InitScene() error {
	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.quadEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.quadEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*4, gl.Ptr(quadIndices), gl.STATIC_DRAW)

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	var err error
	r.blitProgram, err = newProgram(shader.GenerateVertexShader(r.isGLES()), shader.GetBlitFragmentShader(r.isGLES()))
	if err != nil {
		return fmt.Errorf("failed to create blit program: %w", err)
	}

	r.fractal, err = r.createFractalPass()
	if err != nil {
		return fmt.Errorf("failed to create fractal pass: %w", err)
	}
	return nil
}

func (r *Renderer) createFractalPass() (*FractalPass, error) {
	fs, err := translator.TranslateFragment(shader.GetFractalShader(), r.isGLES())
	if err != nil {
		return nil, err
	}

	program, err := newProgram(shader.GenerateVertexShader(r.isGLES()), fs.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	pass := &FractalPass{
		ShaderProgram: program,
		locations:     make(map[string]int32, len(shader.Uniforms)),
	}
	gl.UseProgram(program)
	for _, name := range shader.Uniforms {
		pass.locations[name] = r.GetUniformLocation(fs.Uniforms, program, name)
	}
	return pass, nil
}

// GetUniformLocation resolves a uniform through the translator's renaming.
// Uniforms the compiler dropped resolve to -1, which GL ignores on upload.
func (r *Renderer) GetUniformLocation(uniformMap map[string]string, program uint32, name string) int32 {
	mapped, ok := uniformMap[name]
	if !ok {
		return -1
	}
	return gl.GetUniformLocation(program, gl.Str(mapped+"\x00"))
}

func (r *Renderer) isGLES() bool {
	return r.context != nil && r.context.IsGLES()
}

// Params exposes the navigation state, mainly for key bindings.
func (r *Renderer) Params() *control.Params {
	return r.params
}

// UploadUniforms pushes the navigation state and color ranges to the fractal
// program. The program must be in use.
func (r *Renderer) UploadUniforms(p *control.Params, ranges [4]float32, width, height int) {
	f := r.fractal
	gl.Uniform1f(f.loc("zoom"), p.Zoom)
	gl.Uniform1f(f.loc("center_x"), p.CenterX)
	gl.Uniform1f(f.loc("center_y"), p.CenterY)
	gl.Uniform1f(f.loc("width"), float32(width))
	gl.Uniform1f(f.loc("height"), float32(height))
	gl.Uniform1i(f.loc("max_iterations"), p.MaxIterations)
	var mandelbrot int32
	if p.Mode == control.Mandelbrot {
		mandelbrot = 1
	}
	gl.Uniform1i(f.loc("mandelbrot"), mandelbrot)
	gl.Uniform1f(f.loc("constant_x"), p.Constant.X())
	gl.Uniform1f(f.loc("constant_y"), p.Constant.Y())
	gl.Uniform4f(f.loc("color_ranges"), ranges[0], ranges[1], ranges[2], ranges[3])
}

// RenderFrame draws the fractal into the offscreen framebuffer, color and depth.
func (r *Renderer) RenderFrame() {
	or := r.offscreenRenderer
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)
	gl.Viewport(0, 0, int32(or.width), int32(or.height))
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LEQUAL)
	gl.ClearColor(1, 1, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.fractal.ShaderProgram)
	r.UploadUniforms(r.params, r.sampler.Ranges(), or.width, or.height)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.UseProgram(0)

	gl.Disable(gl.DEPTH_TEST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// SampleDepth copies the depth attachment into the sampler's buffer and
// recomputes the color ranges for the next frame.
func (r *Renderer) SampleDepth() {
	if r.isGLES() {
		// ES 3 cannot read back depth; the ranges stay where they are.
		if !r.depthWarned {
			log.Println("Warning: depth readback is unavailable on GLES, color ranges are fixed.")
			r.depthWarned = true
		}
		return
	}
	r.offscreenRenderer.ReadDepth(r.sampler.Buffer())
	r.sampler.Recompute()
}

// step runs one frame of the pipeline: input, animation, draw, depth sampling.
func (r *Renderer) step(nowMillis uint64, keys control.Keys) {
	r.params.ApplyHeld(keys)
	r.animator.Step(r.params, nowMillis)
	r.RenderFrame()
	r.SampleDepth()
}

// resize follows the window's framebuffer in interactive mode.
func (r *Renderer) resize() {
	fbWidth, fbHeight := r.context.GetFramebufferSize()
	if fbWidth == 0 || fbHeight == 0 {
		// minimised
		return
	}
	if fbWidth == r.width && fbHeight == r.height {
		return
	}
	r.width, r.height = fbWidth, fbHeight
	r.offscreenRenderer.Resize(fbWidth, fbHeight)
	r.sampler.Resize(fbWidth, fbHeight)
}

func (r *Renderer) blitToScreen() {
	fbWidth, fbHeight := r.context.GetFramebufferSize()
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(r.blitProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, r.offscreenRenderer.textureID)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (r *Renderer) updateTitle() {
	title := "Mandelbrot Visualizer - " + r.params.String()
	if title != r.title {
		r.context.SetTitle(title)
		r.title = title
	}
}

func millis(seconds float64) uint64 {
	if seconds <= 0 {
		return 0
	}
	return uint64(seconds * 1000)
}

// Run is the interactive loop. Discrete keys are delivered through the
// context's callbacks during EndFrame; held keys are polled here.
func (r *Renderer) Run() {
	r.animator = control.NewAnimator(millis(r.context.Time()))

	for !r.context.ShouldClose() {
		r.resize()
		r.step(millis(r.context.Time()), r.context.HeldKeys())
		r.blitToScreen()
		r.updateTitle()
		r.context.EndFrame()
	}
}

// Controls is the help text logged when the interactive loop starts.
var Controls = []string{
	"Use arrow keys to navigate around",
	"Use lCtrl to zoom in and lShift to zoom out",
	"Press R to reset your zoom and position",
	"Press J to switch to Julia mode, and M to switch to Mandelbrot mode",
	"When in Julia mode, press P to pause the animation",
	"Press F12 to save a PNG snapshot, Escape to quit",
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
