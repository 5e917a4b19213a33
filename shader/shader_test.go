package shader

import (
	"strings"
	"testing"
)

func TestFractalShaderDeclaresUniforms(t *testing.T) {
	src := GetFractalShader()
	if !strings.HasPrefix(src, "#version 300 es\n") {
		t.Fatal("fractal shader must start with the WebGL2 version line")
	}
	for _, name := range Uniforms {
		if !strings.Contains(src, " "+name+";") {
			t.Errorf("uniform %q is not declared", name)
		}
	}
}

func TestFractalShaderWritesDepth(t *testing.T) {
	src := GetFractalShader()
	if strings.Count(src, "gl_FragDepth") < 2 {
		t.Fatal("both the inside and escaped branches must write gl_FragDepth")
	}
}

func TestDialects(t *testing.T) {
	tests := []struct {
		gles bool
		want string
	}{
		{false, "#version 410 core"},
		{true, "#version 300 es"},
	}
	for _, tt := range tests {
		if v := GenerateVertexShader(tt.gles); !strings.HasPrefix(v, tt.want) {
			t.Errorf("vertex shader (gles=%v) starts with %q", tt.gles, strings.SplitN(v, "\n", 2)[0])
		}
		if f := GetBlitFragmentShader(tt.gles); !strings.HasPrefix(f, tt.want) {
			t.Errorf("blit shader (gles=%v) starts with %q", tt.gles, strings.SplitN(f, "\n", 2)[0])
		}
	}
}
