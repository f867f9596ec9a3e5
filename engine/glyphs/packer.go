package glyphs

import (
	"fmt"

	"github.com/memmaker/hudtext/engine/util"
)

const (
	// DefaultMaxRowWidth bounds the width of every atlas row in texels.
	DefaultMaxRowWidth = 1024
	// GlyphPadding is the gap left after every glyph in a row.
	GlyphPadding = 1
)

// breaksRow is the only row-break rule: it reports whether a glyph of glyphWidth no longer fits into a row
// that is already rowWidth wide. The sizing and the packing pass both call it, so they agree on row boundaries.
func breaksRow(rowWidth, glyphWidth, maxRowWidth int) bool {
	return rowWidth+glyphWidth+GlyphPadding >= maxRowWidth
}

// RowBreak records that the glyph Code opened row Row.
type RowBreak struct {
	Code rune
	Row  int
}

// selection is the outcome of looking at one code point, identical in both passes.
type selection struct {
	code   rune
	state  SlotState
	bitmap *Bitmap
}

func (b *builder) selectGlyph(code rune) selection {
	if b.opts.Denylist.Contains(code) {
		return selection{code: code, state: SlotDenylisted}
	}
	bitmap, err := b.rasterizer.Rasterize(code)
	if err != nil {
		util.LogGlyphsError(fmt.Sprintf("[Atlas] Failed to load char %d: %v", code, err))
		return selection{code: code, state: SlotFailed}
	}
	if bitmap == nil {
		util.LogGlyphsError(fmt.Sprintf("[Atlas] Failed to load char %d: empty result", code))
		return selection{code: code, state: SlotFailed}
	}
	if breaksRow(0, bitmap.Width(), b.opts.MaxRowWidth) {
		util.LogGlyphsError(fmt.Sprintf("[Atlas] Char %d is %dpx wide and can't fit a %dpx row", code, bitmap.Width(), b.opts.MaxRowWidth))
		return selection{code: code, state: SlotFailed}
	}
	return selection{code: code, state: SlotPresent, bitmap: bitmap}
}

// layout is the result of the sizing pass.
type layout struct {
	width, height int
	rowHeights    []int
	breaks        []RowBreak
}

// measure is the sizing pass. It writes no pixels, it only finds the bounding box of the greedy row packing.
func (b *builder) measure() layout {
	var result layout
	rowWidth := 0
	rowHeight := 0
	closeRow := func() {
		result.width = max(result.width, rowWidth)
		result.height += rowHeight
		result.rowHeights = append(result.rowHeights, rowHeight)
		rowWidth = 0
		rowHeight = 0
	}
	for code := b.opts.First; code <= b.opts.Last; code++ {
		glyph := b.selectGlyph(code)
		if glyph.state != SlotPresent {
			continue
		}
		w, h := glyph.bitmap.Width(), glyph.bitmap.Height()
		if breaksRow(rowWidth, w, b.opts.MaxRowWidth) {
			closeRow()
			result.breaks = append(result.breaks, RowBreak{Code: code, Row: len(result.rowHeights)})
		}
		rowWidth += w + GlyphPadding
		rowHeight = max(rowHeight, h)
	}
	closeRow()
	return result
}

// pack is the writing pass. It repeats the traversal of measure, uploads every bitmap and fills the table.
func (b *builder) pack(target Target, width, height int, table *MetricsTable) ([]RowBreak, error) {
	var breaks []RowBreak
	row := 0
	rowHeight := 0
	xOffset := 0
	yOffset := 0
	for code := b.opts.First; code <= b.opts.Last; code++ {
		glyph := b.selectGlyph(code)
		table[code].State = glyph.state
		if glyph.state != SlotPresent {
			continue
		}
		bitmap := glyph.bitmap
		w, h := bitmap.Width(), bitmap.Height()
		if breaksRow(xOffset, w, b.opts.MaxRowWidth) {
			yOffset += rowHeight
			rowHeight = 0
			xOffset = 0
			row++
			breaks = append(breaks, RowBreak{Code: code, Row: row})
		}
		if w > 0 && h > 0 {
			if err := target.Upload(xOffset, yOffset, bitmap.Mask); err != nil {
				return breaks, err
			}
		}
		table[code].Metrics = GlyphMetrics{
			AdvanceX:     int(bitmap.Advance.X >> 6),
			AdvanceY:     int(bitmap.Advance.Y >> 6),
			BitmapWidth:  w,
			BitmapHeight: h,
			BearingLeft:  bitmap.BearingLeft,
			BearingTop:   bitmap.BearingTop,
			AtlasU:       float32(xOffset) / float32(width),
			AtlasV:       float32(yOffset) / float32(height),
		}
		table[code].Rect.Min.X = xOffset
		table[code].Rect.Min.Y = yOffset
		table[code].Rect.Max.X = xOffset + w
		table[code].Rect.Max.Y = yOffset + h

		rowHeight = max(rowHeight, h)
		xOffset += w + GlyphPadding
	}
	return breaks, nil
}

func sameBreaks(a, b []RowBreak) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
