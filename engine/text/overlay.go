package text

import (
	"fmt"

	"github.com/memmaker/hudtext/engine/util"
)

// Category identifies one line of the overlay.
type Category int

const (
	CategoryFPS Category = iota
	CategoryPosition
	CategoryFog
	CategoryTime
	categoryCount
)

func (c Category) String() string {
	switch c {
	case CategoryFPS:
		return "FPS"
	case CategoryPosition:
		return "Position"
	case CategoryFog:
		return "Fog"
	case CategoryTime:
		return "Time"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func (c Category) valid() bool {
	return c >= 0 && c < categoryCount
}

// TextEvent carries the newest text of one category.
type TextEvent struct {
	Category Category
	Text     string
}

// LineRenderer draws a batch of lines.
type LineRenderer interface {
	RenderLines(lines []Line)
	PixelSize() int
}

// Overlay shows the latest text of every category, one line each, top down from the top left corner.
// Events may be produced on any goroutine, they are applied by Poll on the render thread.
type Overlay struct {
	renderer LineRenderer
	events   <-chan TextEvent
	values   [categoryCount]string
	present  [categoryCount]bool

	X           float32
	Top         float32
	Scale       float32
	LineSpacing float32

	lines []Line
}

// NewOverlay places the first baseline 30px below the top of a viewport of the given height.
func NewOverlay(renderer LineRenderer, viewportHeight int) *Overlay {
	scale := float32(0.5)
	return &Overlay{
		renderer:    renderer,
		X:           5,
		Top:         float32(viewportHeight - 30),
		Scale:       scale,
		LineSpacing: float32(renderer.PixelSize())*scale + 2,
	}
}

// Set stores text as the value of category.
func (o *Overlay) Set(category Category, text string) {
	if !category.valid() {
		util.LogTextDebug(fmt.Sprintf("[Overlay] Ignoring text for unknown %v", category))
		return
	}
	o.values[category] = text
	o.present[category] = true
}

// Clear removes the line of category.
func (o *Overlay) Clear(category Category) {
	if !category.valid() {
		return
	}
	o.values[category] = ""
	o.present[category] = false
}

func (o *Overlay) Value(category Category) (string, bool) {
	if !category.valid() {
		return "", false
	}
	return o.values[category], o.present[category]
}

// Subscribe makes Poll drain events. A closed channel is detached.
func (o *Overlay) Subscribe(events <-chan TextEvent) {
	o.events = events
}

// Poll applies all pending events without blocking and returns how many were applied.
func (o *Overlay) Poll() int {
	applied := 0
	for o.events != nil {
		select {
		case event, ok := <-o.events:
			if !ok {
				o.events = nil
				return applied
			}
			o.Set(event.Category, event.Text)
			applied++
		default:
			return applied
		}
	}
	return applied
}

// Lines returns the current lines in category order.
func (o *Overlay) Lines() []Line {
	o.lines = o.lines[:0]
	y := o.Top
	for c := Category(0); c < categoryCount; c++ {
		if !o.present[c] {
			continue
		}
		o.lines = append(o.lines, Line{Text: o.values[c], X: o.X, Y: y, Scale: o.Scale})
		y -= o.LineSpacing
	}
	return o.lines
}

// Draw applies pending events and renders all lines.
func (o *Overlay) Draw() {
	o.Poll()
	lines := o.Lines()
	if len(lines) == 0 {
		return
	}
	o.renderer.RenderLines(lines)
}
