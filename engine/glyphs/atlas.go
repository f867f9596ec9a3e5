package glyphs

import (
	"fmt"
	"image"

	"github.com/memmaker/hudtext/engine/util"
	"github.com/pkg/errors"
)

// ErrEmptyAtlas is returned when not a single glyph could be placed.
var ErrEmptyAtlas = errors.New("atlas contains no glyphs")

// Options select the glyphs of an atlas and bound its rows.
type Options struct {
	// First and Last are the inclusive range of code points that are considered, clamped to the table.
	First, Last rune
	Denylist    Charset
	MaxRowWidth int
}

func DefaultOptions() Options {
	return Options{
		First:       FirstCode,
		Last:        TableSize - 1,
		Denylist:    DefaultDenylist,
		MaxRowWidth: DefaultMaxRowWidth,
	}
}

func (o Options) normalized() Options {
	if o.First < 0 {
		o.First = 0
	}
	if o.Last >= TableSize {
		o.Last = TableSize - 1
	}
	if o.MaxRowWidth <= 0 {
		o.MaxRowWidth = DefaultMaxRowWidth
	}
	return o
}

// Target receives the atlas pixels: first one allocation of the final size, then one upload per glyph.
type Target interface {
	Allocate(width, height int) error
	Upload(x, y int, mask *image.Alpha) error
}

// Atlas describes a packed glyph texture. It is immutable once built.
type Atlas struct {
	Width, Height int
	Table         MetricsTable
	// RowHeights holds the height of every row, their sum is Height.
	RowHeights []int
	// SizingBreaks and PackingBreaks are the row breaks seen by the two passes, they are always equal.
	SizingBreaks  []RowBreak
	PackingBreaks []RowBreak
}

// Lookup returns the metrics of code, see MetricsTable.Lookup.
func (a *Atlas) Lookup(code rune) GlyphMetrics {
	return a.Table.Lookup(code)
}

// TexRect returns the normalized texture rectangle of code as origin and size.
func (a *Atlas) TexRect(code rune) (u, v, width, height float32) {
	m := a.Table.Lookup(code)
	return m.AtlasU, m.AtlasV, float32(m.BitmapWidth) / float32(a.Width), float32(m.BitmapHeight) / float32(a.Height)
}

type builder struct {
	rasterizer Rasterizer
	opts       Options
}

// Build measures every selected glyph, allocates target at the minimal size and packs all glyphs into it.
// Glyphs that fail to rasterize are logged and left out, an atlas without any glyph is an error.
func Build(rasterizer Rasterizer, target Target, opts Options) (*Atlas, error) {
	b := &builder{rasterizer: rasterizer, opts: opts.normalized()}

	sizing := b.measure()
	if sizing.width == 0 || sizing.height == 0 {
		return nil, ErrEmptyAtlas
	}
	if err := target.Allocate(sizing.width, sizing.height); err != nil {
		return nil, errors.Wrapf(err, "failed to allocate %dx%d atlas", sizing.width, sizing.height)
	}

	atlas := &Atlas{
		Width:        sizing.width,
		Height:       sizing.height,
		RowHeights:   sizing.rowHeights,
		SizingBreaks: sizing.breaks,
	}
	packingBreaks, err := b.pack(target, sizing.width, sizing.height, &atlas.Table)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upload glyph")
	}
	atlas.PackingBreaks = packingBreaks
	if !sameBreaks(atlas.SizingBreaks, atlas.PackingBreaks) {
		return nil, errors.Errorf("row breaks diverged: sizing %v, packing %v", atlas.SizingBreaks, atlas.PackingBreaks)
	}

	util.LogGlyphsInfo(fmt.Sprintf("[Atlas] %dx%d, %d rows, %d glyphs, %d denylisted, %d failed",
		atlas.Width, atlas.Height, len(atlas.RowHeights),
		atlas.Table.Count(SlotPresent), atlas.Table.Count(SlotDenylisted), atlas.Table.Count(SlotFailed)))
	return atlas, nil
}
