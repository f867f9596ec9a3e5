package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/faiface/mainthread"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/hudtext/engine/glapp"
	"github.com/memmaker/hudtext/engine/text"
	"github.com/memmaker/hudtext/engine/textgl"
	"github.com/memmaker/hudtext/engine/util"
	"golang.org/x/image/font/gofont/goregular"
)

func main() {
	mainthread.Run(run)
}

func run() {
	var err error
	mainthread.Call(func() {
		err = runDemo("HUD Text", 800, 600)
	})
	if err != nil {
		util.LogSystemInfo(fmt.Sprintf("[Demo] %v", err))
		os.Exit(1)
	}
}

func runDemo(title string, width, height int) error {
	window, terminateFunc, err := glapp.InitOpenGL(title, width, height)
	if err != nil {
		return err
	}
	app := &glapp.GlApplication{
		Window:        window,
		TerminateFunc: terminateFunc,
		WindowWidth:   width,
		WindowHeight:  height,
	}
	window.SetKeyCallback(app.KeyCallback)
	window.SetFramebufferSizeCallback(app.FramebufferSizeCallback)

	shader, err := textgl.LoadTextShader()
	if err != nil {
		terminateFunc()
		return err
	}
	cfg := text.DefaultConfig(width, height)
	cfg.DebugAtlasPath = os.Getenv("HUDTEXT_DEBUG_ATLAS")
	cfg.FallbackFont = goregular.TTF
	if fontPath := os.Getenv("HUDTEXT_FONT"); fontPath != "" {
		cfg.FontPath = fontPath
	}
	renderer, err := text.NewRenderer(cfg, shader, textgl.QuadLoader{Shader: shader}, textgl.NewDevice())
	if err != nil {
		// keep running, the overlay just stays empty
		util.LogSystemInfo(fmt.Sprintf("[Demo] %v", err))
	}

	overlay := text.NewOverlay(renderer, height)
	events := make(chan text.TextEvent, 16)
	overlay.Subscribe(events)

	stopClock := startClock(events)
	// GL objects have to go before the context does
	app.TerminateFunc = func() {
		stopClock()
		renderer.Close()
		terminateFunc()
	}

	fogEnabled := true
	whiteText := false
	app.KeyHandler = func(key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			window.SetShouldClose(true)
		case glfw.KeyF:
			fogEnabled = !fogEnabled
		case glfw.KeyC:
			whiteText = !whiteText
			if whiteText {
				renderer.SetColor(mgl32.Vec3{1, 1, 1})
			} else {
				renderer.SetColor(cfg.Color)
			}
		}
	}
	app.ResizeHandler = func(w, h int) {
		renderer.SetViewport(w, h)
		overlay.Top = float32(h - 30)
	}

	var angle float64
	app.UpdateFunc = func(elapsed float64) {
		angle += elapsed * 0.5
		x, z := 10*math.Cos(angle), 10*math.Sin(angle)
		publish(events, text.CategoryPosition, fmt.Sprintf("Position: %.1f 2.0 %.1f", x, z))
		fog := "Fog: off"
		if fogEnabled {
			fog = fmt.Sprintf("Fog: %.2f", 0.5+0.5*math.Sin(angle*3))
		}
		publish(events, text.CategoryFog, fog)
		// the running average covers the last 60 frames right when it is about to be reset
		if app.Ticks() > 0 && app.Ticks()%60 == 0 {
			publish(events, text.CategoryFPS, fmt.Sprintf("FPS: %.0f (%.0f - %.0f)", app.FPSRunningAvg, app.FPSMin, app.FPSMax))
		}
	}
	app.DrawFunc = func(elapsed float64) {
		overlay.Draw()
	}

	app.Run()
	return nil
}

// publish drops the event if the overlay has fallen behind, the next frame sends a newer value anyway.
func publish(events chan<- text.TextEvent, category text.Category, txt string) {
	select {
	case events <- text.TextEvent{Category: category, Text: txt}:
	default:
	}
}

// startClock sends the elapsed wall clock time once per second from its own goroutine.
func startClock(events chan<- text.TextEvent) func() {
	ticker := time.NewTicker(time.Second)
	done := make(chan struct{})
	start := time.Now()
	go func() {
		for {
			select {
			case <-done:
				return
			case now := <-ticker.C:
				elapsed := now.Sub(start).Truncate(time.Second)
				publish(events, text.CategoryTime, fmt.Sprintf("Time: %v", elapsed))
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}
