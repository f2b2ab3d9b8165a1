//go:build !test
// +build !test

package viewer

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/amanjot-gulshi/thrust-vector-drone/internal/display"
)

type InputHandler struct {
	keys       map[glfw.Key]bool
	keyPressed map[glfw.Key]bool // Single key press detection
}

func NewInputHandler() *InputHandler {
	return &InputHandler{
		keys:       make(map[glfw.Key]bool),
		keyPressed: make(map[glfw.Key]bool),
	}
}

func (i *InputHandler) SetupCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press {
			i.keys[key] = true
			i.keyPressed[key] = true
		} else if action == glfw.Release {
			i.keys[key] = false
		}
	})
}

func (i *InputHandler) IsKeyPressed(key glfw.Key) bool {
	return i.keys[key]
}

func (i *InputHandler) WasKeyPressed(key glfw.Key) bool {
	if i.keyPressed[key] {
		i.keyPressed[key] = false // Reset for next frame
		return true
	}
	return false
}

// Controls samples the held keys for one tick. R is consumed on read so
// a press resets the vehicle once.
func (i *InputHandler) Controls() display.Controls {
	return display.Controls{
		TorqueLeft:  i.IsKeyPressed(glfw.KeyLeft),
		TorqueRight: i.IsKeyPressed(glfw.KeyRight),
		ForceUp:     i.IsKeyPressed(glfw.KeyUp),
		ForceDown:   i.IsKeyPressed(glfw.KeyDown),
		ForceLeft:   i.IsKeyPressed(glfw.KeyA),
		ForceRight:  i.IsKeyPressed(glfw.KeyD),
		DepthNear:   i.IsKeyPressed(glfw.KeyW),
		DepthFar:    i.IsKeyPressed(glfw.KeyS),
		Reset:       i.WasKeyPressed(glfw.KeyR),
	}
}
