package glyphs

import "image"

const (
	// TableSize is the number of entries in a MetricsTable, one per ASCII code.
	TableSize = 128
	// FirstCode is the first printable ASCII code that is considered for the atlas.
	FirstCode rune = 32
)

// SlotState tells why a table entry holds the metrics it holds.
type SlotState uint8

const (
	// SlotUnused is the state of codes that are never considered, i.e. the control codes below FirstCode.
	SlotUnused SlotState = iota
	SlotPresent
	SlotDenylisted
	// SlotFailed marks codes the rasterizer could not produce or that can't fit into any atlas row.
	SlotFailed
)

func (s SlotState) String() string {
	switch s {
	case SlotUnused:
		return "unused"
	case SlotPresent:
		return "present"
	case SlotDenylisted:
		return "denylisted"
	case SlotFailed:
		return "failed"
	}
	return "unknown"
}

// GlyphMetrics is everything the draw loop needs to place and sample one glyph.
type GlyphMetrics struct {
	AdvanceX int // pixels to move the pen after this glyph
	AdvanceY int // recorded, but text is laid out horizontally only

	BitmapWidth  int
	BitmapHeight int

	BearingLeft int // pen origin to left edge of the bitmap
	BearingTop  int // baseline to top edge of the bitmap

	AtlasU float32 // x offset of the glyph in texture coordinates
	AtlasV float32 // y offset of the glyph in texture coordinates
}

// Drawable reports whether the draw loop renders this glyph. A zero advance means skip.
func (m GlyphMetrics) Drawable() bool {
	return m.AdvanceX != 0
}

// Slot is one entry of the MetricsTable.
type Slot struct {
	State   SlotState
	Metrics GlyphMetrics
	// Rect is the glyph's pixel rectangle inside the atlas, only set for present glyphs.
	Rect image.Rectangle
}

// MetricsTable is indexed directly by character code.
type MetricsTable [TableSize]Slot

// Lookup returns the metrics for code. Codes outside of the table yield zero metrics.
func (t *MetricsTable) Lookup(code rune) GlyphMetrics {
	if code < 0 || code >= TableSize {
		return GlyphMetrics{}
	}
	return t[code].Metrics
}

// State returns the slot state for code, SlotUnused for codes outside of the table.
func (t *MetricsTable) State(code rune) SlotState {
	if code < 0 || code >= TableSize {
		return SlotUnused
	}
	return t[code].State
}

// Count returns how many slots are in the given state.
func (t *MetricsTable) Count(state SlotState) int {
	count := 0
	for i := range t {
		if t[i].State == state {
			count++
		}
	}
	return count
}
