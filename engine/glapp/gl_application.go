package glapp

import (
	"fmt"
	"math"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/memmaker/hudtext/engine/glhf"
	"github.com/memmaker/hudtext/engine/util"
	"github.com/pkg/errors"
)

type GlApplication struct {
	Window          *glfw.Window
	TerminateFunc   func()
	UpdateFunc      func(elapsed float64)
	DrawFunc        func(elapsed float64)
	KeyHandler      func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey)
	ResizeHandler   func(width, height int)
	WindowWidth     int
	WindowHeight    int
	ticks           uint64
	FramesPerSecond float64
	FPSRunningAvg   float64
	FPSMin          float64
	FPSMax          float64
}

func (a *GlApplication) KeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if a.KeyHandler != nil {
		a.KeyHandler(
			key,
			scancode,
			action,
			mods,
		)
	}
}

func (a *GlApplication) FramebufferSizeCallback(w *glfw.Window, width int, height int) {
	a.WindowWidth = width
	a.WindowHeight = height
	gl.Viewport(0, 0, int32(width), int32(height))
	if a.ResizeHandler != nil {
		a.ResizeHandler(width, height)
	}
}

// Ticks returns the number of frames drawn so far.
func (a *GlApplication) Ticks() uint64 {
	return a.ticks
}

func (a *GlApplication) Run() {
	defer a.TerminateFunc()
	previousTime := glfw.GetTime()
	a.FPSMin = math.MaxFloat64
	for !a.Window.ShouldClose() {
		gl.ClearColor(0, 0, 0, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		time := glfw.GetTime()
		elapsed := time - previousTime
		previousTime = time
		if a.UpdateFunc != nil {
			a.UpdateFunc(elapsed)
		}
		if a.DrawFunc != nil {
			a.DrawFunc(elapsed)
		}

		if elapsed > 0 {
			a.FramesPerSecond = 1.0 / elapsed
		}
		if a.ticks%60 == 0 {
			a.FPSRunningAvg = a.FramesPerSecond * (1.0 / 60.0)
			a.FPSMin = math.MaxFloat64
			a.FPSMax = 0
		} else {
			a.FPSRunningAvg = a.FPSRunningAvg + a.FramesPerSecond*(1.0/60.0)
			if a.FramesPerSecond < a.FPSMin {
				a.FPSMin = a.FramesPerSecond
			}
			if a.FramesPerSecond > a.FPSMax {
				a.FPSMax = a.FramesPerSecond
			}
		}

		a.Window.SwapBuffers()
		glfw.PollEvents()
		a.ticks++
	}
}

// InitOpenGL opens a window with a 3.3 core context and makes it current on the calling thread.
func InitOpenGL(title string, width, height int) (*glfw.Window, func(), error) {
	if err := glfw.Init(); err != nil {
		return nil, nil, errors.Wrap(err, "glfw")
	}
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, nil, errors.Wrap(err, "failed to create window")
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1) // enable (1) vsync

	if err = glhf.Init(); err != nil {
		glfw.Terminate()
		return nil, nil, err
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	util.LogGlInfo(fmt.Sprintf("OpenGL version %s", version))

	return win, func() {
		glfw.Terminate()
	}, nil
}
