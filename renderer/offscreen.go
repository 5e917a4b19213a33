package renderer

import (
	"fmt"
	"log"
	"time"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/richinsley/gofractal/control"
	"github.com/richinsley/gofractal/encoder"
	options "github.com/richinsley/gofractal/options"
)

// OffscreenRenderer is the framebuffer every frame is drawn into. The depth
// attachment carries the escape depths the color ranges are derived from.
type OffscreenRenderer struct {
	fbo               uint32
	textureID         uint32
	depthRenderbuffer uint32
	width             int
	height            int
}

func NewOffscreenRenderer(width, height int) (*OffscreenRenderer, error) {
	or := &OffscreenRenderer{
		width:  width,
		height: height,
	}

	gl.GenFramebuffers(1, &or.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, or.fbo)

	gl.GenTextures(1, &or.textureID)
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, or.textureID, 0)

	gl.GenRenderbuffers(1, &or.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, or.depthRenderbuffer)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, or.depthRenderbuffer)

	or.allocate()

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		or.Destroy()
		return nil, fmt.Errorf("main offscreen fbo is not complete")
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return or, nil
}

// allocate (re)specifies storage for both attachments at the current size.
func (or *OffscreenRenderer) allocate() {
	gl.BindTexture(gl.TEXTURE_2D, or.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(or.width), int32(or.height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.BindRenderbuffer(gl.RENDERBUFFER, or.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(or.width), int32(or.height))
}

func (or *OffscreenRenderer) Resize(width, height int) {
	or.width, or.height = width, height
	or.allocate()
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
}

func (or *OffscreenRenderer) Destroy() {
	gl.DeleteFramebuffers(1, &or.fbo)
	gl.DeleteTextures(1, &or.textureID)
	gl.DeleteRenderbuffers(1, &or.depthRenderbuffer)
}

// ReadDepth reads the depth attachment as floats in [0, 1]. dst must hold
// width*height values.
func (or *OffscreenRenderer) ReadDepth(dst []float32) {
	if len(dst) < or.width*or.height || len(dst) == 0 {
		return
	}
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 4)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.DEPTH_COMPONENT, gl.FLOAT, gl.Ptr(&dst[0]))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

// ReadColor reads the color attachment as tightly packed RGBA rows, bottom
// row first.
func (or *OffscreenRenderer) ReadColor() []byte {
	pixels := make([]byte, or.width*or.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, or.fbo)
	gl.ReadBuffer(gl.COLOR_ATTACHMENT0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(or.width), int32(or.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&pixels[0]))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return pixels
}

// Snapshot writes the last rendered frame to a PNG in the working directory.
func (r *Renderer) Snapshot() (string, error) {
	name := fmt.Sprintf("fractal-%d.png", time.Now().Unix())
	or := r.offscreenRenderer
	if err := encoder.WritePNG(name, or.width, or.height, or.ReadColor()); err != nil {
		return "", fmt.Errorf("failed to save snapshot: %w", err)
	}
	return name, nil
}

// RunOffscreen renders a fixed number of frames with simulated time and
// streams them to ffmpeg. Navigation is fixed at the starting view; the Julia
// constant animates as it would interactively.
func (r *Renderer) RunOffscreen(options *options.FractalOptions) error {
	log.Println("Starting in record mode...")
	enc := encoder.NewEncoder(options)
	if err := enc.Start(); err != nil {
		return err
	}

	r.animator = control.NewAnimator(0)
	totalFrames := options.TotalFrames()
	fps := uint64(*options.FPS)

	for i := 0; i < totalFrames; i++ {
		now := uint64(i) * 1000 / fps
		r.step(now, control.Keys{})

		pixels := r.offscreenRenderer.ReadColor()
		if err := enc.SendVideo(&encoder.Frame{Pixels: pixels, PTS: int64(i)}); err != nil {
			log.Printf("Error sending frame %d: %v", i, err)
			break
		}
		r.context.EndFrame()

		if (i+1)%int(fps) == 0 {
			log.Printf("Rendered %d/%d frames", i+1, totalFrames)
		}
	}

	return enc.Close()
}
