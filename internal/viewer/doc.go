// Package viewer is the GLFW/OpenGL front end: it paces the simulation
// against the frame clock, feeds keyboard input into it and draws the
// vehicle, its thrust vector and a telemetry panel.
package viewer
