package text

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/hudtext/engine/glyphs"
)

// Config fixes everything the renderer needs at construction time.
type Config struct {
	FontPath    string
	PixelSize   int
	MaxRowWidth int
	Denylist    glyphs.Charset
	// TextureUnit is the unit the atlas is bound to while drawing.
	TextureUnit int
	Color       mgl32.Vec3

	ViewportWidth  int
	ViewportHeight int

	// FallbackFont is parsed when FontPath can't be loaded. Without it a missing font leaves the renderer empty.
	FallbackFont []byte

	// DebugAtlasPath, if set, receives a PNG of the packed atlas after construction.
	DebugAtlasPath string
}

func DefaultConfig(viewportWidth, viewportHeight int) Config {
	return Config{
		FontPath:       "assets/fonts/Antonio-Bold.ttf",
		PixelSize:      48,
		MaxRowWidth:    glyphs.DefaultMaxRowWidth,
		Denylist:       glyphs.DefaultDenylist,
		TextureUnit:    18,
		Color:          mgl32.Vec3{0, 1, 0},
		ViewportWidth:  viewportWidth,
		ViewportHeight: viewportHeight,
	}
}

func (c Config) atlasOptions() glyphs.Options {
	opts := glyphs.DefaultOptions()
	opts.Denylist = c.Denylist
	if c.MaxRowWidth > 0 {
		opts.MaxRowWidth = c.MaxRowWidth
	}
	return opts
}
