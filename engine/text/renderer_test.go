package text

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/hudtext/engine/glyphs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestConstructionWiresUniformsAndQuad(t *testing.T) {
	rec := newRecorder()
	loader := &fakeLoader{rec: rec}
	device := &fakeDevice{rec: rec}
	cfg := DefaultConfig(800, 600)

	r, err := NewRendererWithRasterizer(cfg, blockRasterizer{}, &fakeShader{rec: rec}, loader, device)
	require.NoError(t, err)
	assert.True(t, r.Ready())

	assert.Equal(t, []interface{}{mgl32.Ortho2D(0, 800, 0, 600)}, rec.uniforms[UniformProjection])
	assert.Equal(t, []interface{}{mgl32.Vec3{0, 1, 0}}, rec.uniforms[UniformTextColor])
	assert.Equal(t, []interface{}{int32(18)}, rec.uniforms[UniformSampler])
	assert.Equal(t, 1, rec.count("loader.LoadToVAO"))
	assert.Equal(t, 1, rec.count("device.NewAtlasTexture(18)"))
	assert.Len(t, loader.positions, 12)
	assert.Len(t, loader.texCoords, 12)
	assert.Equal(t, 18, device.texture.unit)
}

func TestMissingFontLeavesRendererDrawingNothing(t *testing.T) {
	rec := newRecorder()
	cfg := DefaultConfig(800, 600)
	cfg.FontPath = filepath.Join(t.TempDir(), "missing-font-7d3a.ttf")

	r, err := NewRenderer(cfg, &fakeShader{rec: rec}, &fakeLoader{rec: rec}, &fakeDevice{rec: rec})
	require.Error(t, err)
	require.NotNil(t, r)
	assert.False(t, r.Ready())
	rec.calls = nil

	end := r.RenderText("Hello", 10, 20, 1)
	r.RenderLines([]Line{{Text: "abc", X: 1, Y: 1, Scale: 1}})

	assert.Equal(t, float32(10), end)
	assert.Empty(t, rec.calls)
	r.Close()
}

func TestAtlasFailureDeletesTexture(t *testing.T) {
	rec := newRecorder()
	cfg := DefaultConfig(800, 600)
	failing := glyphs.RasterizerFunc(func(code rune) (*glyphs.Bitmap, error) {
		return nil, assert.AnError
	})

	r, err := NewRendererWithRasterizer(cfg, failing, &fakeShader{rec: rec}, &fakeLoader{rec: rec}, &fakeDevice{rec: rec})

	assert.ErrorIs(t, err, glyphs.ErrEmptyAtlas)
	assert.False(t, r.Ready())
	assert.Equal(t, 1, rec.count("texture.Delete"))
}

func TestRenderTextDrawsOneQuadPerGlyph(t *testing.T) {
	env := newTestEnv(DefaultConfig(800, 600))
	require.NoError(t, env.err)

	env.r.RenderText("Hi yo", 5, 100, 1)

	assert.Equal(t, []string{
		"shader.Begin", "device.EnableBlend", "texture.Begin", "quad.Begin",
		"uniform.model", "uniform.coord", "quad.Draw",
		"uniform.model", "uniform.coord", "quad.Draw",
		"uniform.model", "uniform.coord", "quad.Draw",
		"uniform.model", "uniform.coord", "quad.Draw",
		"uniform.model", "uniform.coord", "quad.Draw",
		"quad.End", "texture.End", "device.DisableBlend", "shader.End",
	}, env.rec.calls)
}

func TestEmptyStringTouchesNothing(t *testing.T) {
	env := newTestEnv(DefaultConfig(800, 600))
	require.NoError(t, env.err)

	end := env.r.RenderText("", 42, 7, 2)
	env.r.RenderLines(nil)

	assert.Equal(t, float32(42), end)
	assert.Empty(t, env.rec.calls)
}

func TestZeroAdvanceGlyphsAreNeverDrawn(t *testing.T) {
	env := newTestEnv(DefaultConfig(800, 600))
	require.NoError(t, env.err)
	atlas := env.r.Atlas()

	// '@' is denylisted, '1' fails to rasterize, 200 is outside of the table
	for _, text := range []string{"@", "1", "@1\\", string([]byte{200, 0, 31})} {
		for _, scale := range []float32{0.5, 1, 3} {
			quads, end := env.r.Layout(text, 17, 3, scale)
			assert.Empty(t, quads, "%q at scale %v", text, scale)
			assert.Equal(t, float32(17), end)
		}
	}
	assert.Equal(t, glyphs.SlotDenylisted, atlas.Table.State('@'))
	assert.Equal(t, glyphs.SlotFailed, atlas.Table.State('1'))

	end := env.r.RenderText("@1", 3, 3, 1)
	assert.Equal(t, float32(3), end)
	assert.Zero(t, env.rec.count("quad.Draw"))

	quads, _ := env.r.Layout("a@b", 0, 0, 1)
	require.Len(t, quads, 2)
	assert.Equal(t, byte('a'), quads[0].Code)
	assert.Equal(t, byte('b'), quads[1].Code)
}

func TestPenAccumulatesScaledAdvances(t *testing.T) {
	env := newTestEnv(DefaultConfig(800, 600))
	require.NoError(t, env.err)
	atlas := env.r.Atlas()
	text := "Hello World"
	scale := float32(0.75)

	want := float32(12)
	for i := 0; i < len(text); i++ {
		want += float32(atlas.Lookup(rune(text[i])).AdvanceX) * scale
	}

	end := env.r.RenderText(text, 12, 40, scale)

	assert.InDelta(t, want, end, 1e-4)
	assert.Equal(t, len(text), env.rec.count("quad.Draw"))
	_, layoutEnd := env.r.Layout(text, 12, 40, scale)
	assert.Equal(t, end, layoutEnd)
}

func TestQuadPlacement(t *testing.T) {
	env := newTestEnv(DefaultConfig(800, 600))
	require.NoError(t, env.err)
	atlas := env.r.Atlas()
	scale := float32(2)

	quads, _ := env.r.Layout("Ap", 100, 50, scale)
	require.Len(t, quads, 2)

	a := atlas.Lookup('A')
	p := atlas.Lookup('p')
	penAfterA := 100 + float32(a.AdvanceX)*scale

	// bearings are not scaled, only the extent is
	assert.Equal(t, mgl32.Translate3D(101, 50, 0).Mul4(mgl32.Scale3D(float32(a.BitmapWidth)*scale, 40, 0)), quads[0].Model)
	assert.Equal(t, mgl32.Translate3D(penAfterA+1, 50-6, 0).Mul4(mgl32.Scale3D(float32(p.BitmapWidth)*scale, 40, 0)), quads[1].Model)

	u, v, w, h := atlas.TexRect('p')
	assert.Equal(t, mgl32.Vec4{u, v, w, h}, quads[1].Coord)

	// unit quad corners land on the glyph footprint
	corner := quads[0].Model.Mul4x1(mgl32.Vec4{1, 1, 0, 1})
	assert.InDelta(t, 101+float32(a.BitmapWidth)*scale, corner.X(), 1e-4)
	assert.InDelta(t, 90, corner.Y(), 1e-4)
}

func TestRenderLinesBindsOnce(t *testing.T) {
	env := newTestEnv(DefaultConfig(800, 600))
	require.NoError(t, env.err)

	env.r.RenderLines([]Line{
		{Text: "ab", X: 0, Y: 100, Scale: 1},
		{Text: "", X: 0, Y: 80, Scale: 1},
		{Text: "c", X: 0, Y: 60, Scale: 1},
	})

	assert.Equal(t, 1, env.rec.count("shader.Begin"))
	assert.Equal(t, 1, env.rec.count("device.EnableBlend"))
	assert.Equal(t, 1, env.rec.count("device.DisableBlend"))
	assert.Equal(t, 3, env.rec.count("quad.Draw"))
}

func TestSetViewportUpdatesProjection(t *testing.T) {
	env := newTestEnv(DefaultConfig(800, 600))
	require.NoError(t, env.err)

	env.r.SetViewport(1024, 768)

	projections := env.rec.uniforms[UniformProjection]
	require.Len(t, projections, 2)
	assert.Equal(t, mgl32.Ortho2D(0, 1024, 0, 768), projections[1])
	assert.Equal(t, []string{"shader.Begin", "uniform.projection", "shader.End"}, env.rec.calls)
}

func TestCloseReleasesTextureAndStopsDrawing(t *testing.T) {
	env := newTestEnv(DefaultConfig(800, 600))
	require.NoError(t, env.err)

	env.r.Close()
	env.r.Close()
	env.r.RenderText("abc", 0, 0, 1)

	assert.Equal(t, []string{"texture.Delete"}, env.rec.calls)
	assert.False(t, env.r.Ready())
}

func TestDebugAtlasIsWritten(t *testing.T) {
	cfg := DefaultConfig(800, 600)
	cfg.DebugAtlasPath = filepath.Join(t.TempDir(), "debug_atlas.png")

	env := newTestEnv(cfg)
	require.NoError(t, env.err)

	info, err := os.Stat(cfg.DebugAtlasPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
	// the GPU texture received the same allocation
	assert.Equal(t, env.r.Atlas().Width, env.device.texture.Bounds().Dx())
}

func TestSetColorUpdatesUniform(t *testing.T) {
	env := newTestEnv(DefaultConfig(800, 600))
	require.NoError(t, env.err)

	env.r.SetColor(mgl32.Vec3{1, 1, 1})

	colors := env.rec.uniforms[UniformTextColor]
	require.Len(t, colors, 2)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, colors[1])
	assert.Equal(t, []string{"shader.Begin", "uniform.textColor", "shader.End"}, env.rec.calls)
}

func TestQuadUploadFailureIsReturned(t *testing.T) {
	rec := newRecorder()
	loader := &fakeLoader{rec: rec, err: assert.AnError}

	r, err := NewRendererWithRasterizer(DefaultConfig(800, 600), blockRasterizer{}, &fakeShader{rec: rec}, loader, &fakeDevice{rec: rec})

	assert.ErrorIs(t, err, assert.AnError)
	require.NotNil(t, r)
	assert.False(t, r.Ready())
	assert.Zero(t, rec.count("device.NewAtlasTexture(18)"), "no atlas without a quad")
	rec.calls = nil
	r.RenderText("abc", 0, 0, 1)
	assert.Empty(t, rec.calls)
}

func TestMissingFontUsesFallback(t *testing.T) {
	rec := newRecorder()
	cfg := DefaultConfig(800, 600)
	cfg.FontPath = filepath.Join(t.TempDir(), "missing-font-7d3a.ttf")
	cfg.FallbackFont = goregular.TTF

	r, err := NewRenderer(cfg, &fakeShader{rec: rec}, &fakeLoader{rec: rec}, &fakeDevice{rec: rec})
	require.NoError(t, err)
	assert.True(t, r.Ready())

	quads, _ := r.Layout("Hi", 0, 0, 1)
	assert.Len(t, quads, 2)
}

func TestBrokenFallbackReportsBothErrors(t *testing.T) {
	rec := newRecorder()
	cfg := DefaultConfig(800, 600)
	cfg.FontPath = filepath.Join(t.TempDir(), "missing-font-7d3a.ttf")
	cfg.FallbackFont = []byte("not a font")

	r, err := NewRenderer(cfg, &fakeShader{rec: rec}, &fakeLoader{rec: rec}, &fakeDevice{rec: rec})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fallback after")
	assert.False(t, r.Ready())
}
