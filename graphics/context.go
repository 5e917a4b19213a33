package graphics

import "github.com/richinsley/gofractal/control"

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	// Time returns seconds since the context was created.
	Time() float64
	IsGLES() bool
	// HeldKeys returns the navigation keys currently held down. Contexts
	// without a keyboard report none.
	HeldKeys() control.Keys
	SetTitle(title string)
}
