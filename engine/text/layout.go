package text

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/hudtext/engine/glyphs"
)

// GlyphQuad is one draw of the shared unit quad.
type GlyphQuad struct {
	Code byte
	// Model places and sizes the unit quad on screen.
	Model mgl32.Mat4
	// Coord is the atlas sub-rectangle as origin (x, y) and size (z, w).
	Coord mgl32.Vec4
}

// Line is a string drawn with its pen starting at X, Y.
type Line struct {
	Text  string
	X, Y  float32
	Scale float32
}

// layoutGlyphs walks text byte by byte and returns one quad per drawable glyph and the final pen x.
// The pen starts at x, y is the baseline, both in window pixels with y pointing up.
func layoutGlyphs(atlas *glyphs.Atlas, text string, x, y, scale float32, quads []GlyphQuad) ([]GlyphQuad, float32) {
	if atlas == nil {
		return quads, x
	}
	for i := 0; i < len(text); i++ {
		code := text[i]
		ch := atlas.Lookup(rune(code))
		if !ch.Drawable() {
			// denylisted, failed or outside of the table
			continue
		}
		xpos := x + float32(ch.BearingLeft)
		ypos := y - float32(ch.BitmapHeight-ch.BearingTop)

		w := float32(ch.BitmapWidth) * scale
		h := float32(ch.BitmapHeight) * scale

		model := mgl32.Translate3D(xpos, ypos, 0).Mul4(mgl32.Scale3D(w, h, 0))
		u, v, texWidth, texHeight := atlas.TexRect(rune(code))
		coord := mgl32.Vec4{u, v, texWidth, texHeight}
		quads = append(quads, GlyphQuad{Code: code, Model: model, Coord: coord})

		x += float32(ch.AdvanceX) * scale
	}
	return quads, x
}
