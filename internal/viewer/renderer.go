//go:build !test
// +build !test

package viewer

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/display"
)

const vertexShaderSource = `
#version 410 core
layout (location = 0) in vec2 aPos;
layout (location = 1) in vec4 aColor;

uniform mat4 projection;

out vec4 vertexColor;

void main() {
    gl_Position = projection * vec4(aPos, 0.0, 1.0);
    vertexColor = aColor;
}
` + "\x00"

const fragmentShaderSource = `
#version 410 core
in vec4 vertexColor;
out vec4 FragColor;

void main() {
    FragColor = vertexColor;
}
` + "\x00"

type Color struct{ R, G, B, A float32 }

func rgb(r, g, b uint8) Color {
	return Color{float32(r) / 255, float32(g) / 255, float32(b) / 255, 1}
}

// Renderer batches pixel-space triangles and draws them in one call.
type Renderer struct {
	shaderProgram uint32
	vao           uint32
	vbo           uint32
	projectionLoc int32

	verts []float32 // x,y,r,g,b,a per vertex
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.initShaders()
	r.initBuffers()
	return r
}

func (r *Renderer) initShaders() {
	vertexShader := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	fragmentShader := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)

	r.shaderProgram = gl.CreateProgram()
	gl.AttachShader(r.shaderProgram, vertexShader)
	gl.AttachShader(r.shaderProgram, fragmentShader)
	gl.LinkProgram(r.shaderProgram)

	var success int32
	gl.GetProgramiv(r.shaderProgram, gl.LINK_STATUS, &success)
	if success == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(r.shaderProgram, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(r.shaderProgram, logLength, nil, gl.Str(log))
		panic(fmt.Errorf("failed to link shader program: %v", log))
	}

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	r.projectionLoc = gl.GetUniformLocation(r.shaderProgram, gl.Str("projection\x00"))
}

func (r *Renderer) initBuffers() {
	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 6*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, 6*4, gl.PtrOffset(2*4))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
}

// Begin starts a frame in a width x height pixel space, origin top-left.
func (r *Renderer) Begin(width, height int) {
	r.verts = r.verts[:0]
	projection := mgl32.Ortho2D(0, float32(width), float32(height), 0)
	gl.UseProgram(r.shaderProgram)
	gl.UniformMatrix4fv(r.projectionLoc, 1, false, &projection[0])
}

// Flush uploads the batch and draws it.
func (r *Renderer) Flush() {
	if len(r.verts) == 0 {
		return
	}
	gl.UseProgram(r.shaderProgram)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.verts)*4, gl.Ptr(r.verts), gl.DYNAMIC_DRAW)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(r.verts)/6))
	gl.BindVertexArray(0)
}

func (r *Renderer) addV(p display.Point, c Color) {
	r.verts = append(r.verts, float32(p.X), float32(p.Y), c.R, c.G, c.B, c.A)
}

func (r *Renderer) Triangle(a, b, c display.Point, col Color) {
	r.addV(a, col)
	r.addV(b, col)
	r.addV(c, col)
}

func (r *Renderer) Rect(x, y, w, h float64, c Color) {
	p0 := display.Point{X: x, Y: y}
	p1 := display.Point{X: x + w, Y: y}
	p2 := display.Point{X: x + w, Y: y + h}
	p3 := display.Point{X: x, Y: y + h}
	r.Triangle(p0, p1, p2, c)
	r.Triangle(p0, p2, p3, c)
}

// Line draws a segment of the given pixel width as a quad.
func (r *Renderer) Line(from, to display.Point, width float64, c Color) {
	dx, dy := to.X-from.X, to.Y-from.Y
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	a := display.Point{X: from.X + nx, Y: from.Y + ny}
	b := display.Point{X: to.X + nx, Y: to.Y + ny}
	cc := display.Point{X: to.X - nx, Y: to.Y - ny}
	d := display.Point{X: from.X - nx, Y: from.Y - ny}
	r.Triangle(a, b, cc, c)
	r.Triangle(a, cc, d, c)
}

func (r *Renderer) Circle(center display.Point, radius float64, c Color) {
	const segments = 16
	for i := 0; i < segments; i++ {
		a0 := 2 * math.Pi * float64(i) / segments
		a1 := 2 * math.Pi * float64(i+1) / segments
		r.Triangle(center,
			display.Point{X: center.X + math.Cos(a0)*radius, Y: center.Y + math.Sin(a0)*radius},
			display.Point{X: center.X + math.Cos(a1)*radius, Y: center.Y + math.Sin(a1)*radius},
			c)
	}
}

func compileShader(source string, shaderType uint32) uint32 {
	shader := gl.CreateShader(shaderType)
	cSources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, cSources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		panic(fmt.Errorf("failed to compile %v: %v", source, log))
	}

	return shader
}
