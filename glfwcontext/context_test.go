package glfwcontext

import (
	"testing"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/richinsley/gofractal/control"
)

func TestDispatchOnlyOnPress(t *testing.T) {
	c := &Context{keyCallbacks: make(map[glfw.Key]func())}
	calls := 0
	c.RegisterKeyCallback(glfw.KeyR, func() { calls++ })

	c.dispatch(glfw.KeyR, glfw.Repeat)
	c.dispatch(glfw.KeyR, glfw.Release)
	if calls != 0 {
		t.Fatalf("callback ran %d times on repeat/release", calls)
	}
	if !c.dispatch(glfw.KeyR, glfw.Press) || calls != 1 {
		t.Fatalf("callback did not run on press (calls=%d)", calls)
	}
	if c.dispatch(glfw.KeyQ, glfw.Press) {
		t.Fatal("unregistered key reported as handled")
	}
}

func TestHeldKeysMapping(t *testing.T) {
	down := map[glfw.Key]bool{
		glfw.KeyUp:          true,
		glfw.KeyLeftControl: true,
		// right-hand modifiers do not zoom
		glfw.KeyRightShift: true,
	}
	got := heldKeys(func(k glfw.Key) bool { return down[k] })
	want := control.Keys{Up: true, ZoomIn: true}
	if got != want {
		t.Fatalf("heldKeys = %+v, want %+v", got, want)
	}
}
