package shader

import "strings"

// ────────────────────────────────── Desktop GL ──────────────────────────────────

const vertexShaderSourceGL = `#version 410 core
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const blitFragmentShaderSourceGL = `#version 410 core
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

// ──────────────────────────────────── GLES ──────────────────────────────────────

const vertexShaderSourceGLES = `#version 300 es
layout (location = 0) in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = in_vert * 0.5 + 0.5;
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const blitFragmentShaderSourceGLES = `#version 300 es
precision mediump float;
in vec2 frag_uv;
out vec4 fragColor;
uniform sampler2D u_texture;
void main() { fragColor = texture(u_texture, frag_uv); }
`

// ─────────────────────────────────── Fractal ────────────────────────────────────

// The fractal pass is written once against WebGL2 and translated to whatever
// the current context speaks.
const fractalPreamble = `#version 300 es
precision highp float;
precision highp int;

uniform float zoom;
uniform float center_x;
uniform float center_y;
uniform float width;
uniform float height;
uniform int   max_iterations;
uniform int   mandelbrot;
uniform float constant_x;
uniform float constant_y;
uniform vec4  color_ranges;

out vec4 fragColor;
`

const fractalBody = `
const vec3 STOP0 = vec3(0.02, 0.01, 0.20);
const vec3 STOP1 = vec3(0.10, 0.45, 0.85);
const vec3 STOP2 = vec3(0.95, 0.80, 0.25);
const vec3 STOP3 = vec3(1.00, 1.00, 1.00);

float segment(float d, float lo, float hi) {
    return clamp((d - lo) / max(hi - lo, 1e-6), 0.0, 1.0);
}

vec3 gradient(float d) {
    if (d <= color_ranges.y) {
        return mix(STOP0, STOP1, segment(d, color_ranges.x, color_ranges.y));
    }
    if (d <= color_ranges.z) {
        return mix(STOP1, STOP2, segment(d, color_ranges.y, color_ranges.z));
    }
    return mix(STOP2, STOP3, segment(d, color_ranges.z, color_ranges.w));
}

void main() {
    vec2 res = vec2(width, height);
    vec2 uv = (gl_FragCoord.xy - 0.5 * res) / min(width, height);
    vec2 c = vec2(center_x, center_y) * 2.0 + uv * 4.0 * zoom;

    vec2 z = c;
    vec2 k = vec2(constant_x, constant_y);
    if (mandelbrot != 0) {
        z = vec2(0.0);
        k = c;
    }

    int escaped = -1;
    for (int i = 0; i < max_iterations; i++) {
        z = vec2(z.x * z.x - z.y * z.y, 2.0 * z.x * z.y) + k;
        if (dot(z, z) > 4.0) {
            escaped = i;
            break;
        }
    }

    if (escaped < 0) {
        gl_FragDepth = 0.0;
        fragColor = vec4(0.0, 0.0, 0.0, 1.0);
        return;
    }

    float d = float(escaped + 1) / float(max_iterations + 1);
    gl_FragDepth = d;
    fragColor = vec4(gradient(d), 1.0);
}
`

// Uniforms lists the names the fractal pass reads; the renderer resolves a
// location for each of them.
var Uniforms = []string{
	"zoom",
	"center_x",
	"center_y",
	"width",
	"height",
	"max_iterations",
	"mandelbrot",
	"constant_x",
	"constant_y",
	"color_ranges",
}

// ────────────────────────────────── Public API ─────────────────────────────────

func GenerateVertexShader(isGLES bool) string {
	if isGLES {
		return vertexShaderSourceGLES
	}
	return vertexShaderSourceGL
}

func GetBlitFragmentShader(isGLES bool) string {
	if isGLES {
		return blitFragmentShaderSourceGLES
	}
	return blitFragmentShaderSourceGL
}

// GetFractalShader returns the WebGL2 source of the fractal pass, ready for
// translation.
func GetFractalShader() string {
	var b strings.Builder
	b.WriteString(fractalPreamble)
	b.WriteString(fractalBody)
	return b.String()
}
