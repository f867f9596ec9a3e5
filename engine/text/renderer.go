package text

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/memmaker/hudtext/engine/glyphs"
	"github.com/memmaker/hudtext/engine/util"
	"github.com/pkg/errors"
)

// Uniform names of the text shader.
const (
	UniformProjection = "projection"
	UniformTextColor  = "textColor"
	UniformSampler    = "text"
	UniformModel      = "model"
	UniformCoord      = "coord"
)

// Shader is a linked program with named uniforms.
type Shader interface {
	Begin()
	End()
	SetUniformByName(name string, value interface{}) bool
}

// Drawable is an uploaded mesh. Draw must be called between Begin and End.
type Drawable interface {
	Begin()
	Draw()
	End()
}

// MeshLoader uploads interleaved 2D positions and texture coordinates.
type MeshLoader interface {
	LoadToVAO(positions, texCoords []float32) (Drawable, error)
}

// AtlasTexture is the GPU side of the atlas.
type AtlasTexture interface {
	glyphs.Target
	Begin()
	End()
	Delete()
}

// Device owns the global GPU state the renderer touches.
type Device interface {
	NewAtlasTexture(unit int) AtlasTexture
	EnableBlend()
	DisableBlend()
}

// unit quad in [0,1]², texture v runs top to bottom
var (
	quadPositions = []float32{
		0, 1,
		0, 0,
		1, 0,
		0, 1,
		1, 0,
		1, 1,
	}
	quadTexCoords = []float32{
		0, 0,
		0, 1,
		1, 1,
		0, 0,
		1, 1,
		1, 0,
	}
)

// Renderer draws strings from a glyph atlas, one quad draw per character.
type Renderer struct {
	cfg     Config
	shader  Shader
	device  Device
	quad    Drawable
	texture AtlasTexture
	atlas   *glyphs.Atlas
	quads   []GlyphQuad
}

// NewRenderer loads cfg.FontPath and builds the atlas. If the font can't be loaded the error is returned
// together with a renderer that draws nothing.
func NewRenderer(cfg Config, shader Shader, loader MeshLoader, device Device) (*Renderer, error) {
	r, err := newRenderer(cfg, shader, loader, device)
	if err != nil {
		return r, err
	}
	face, err := openFace(cfg)
	if err != nil {
		util.LogTextError(fmt.Sprintf("[TextRenderer] %v", err))
		return r, errors.Wrap(err, "text renderer unusable")
	}
	defer face.Close()
	return r, r.buildAtlas(face)
}

// NewRendererWithRasterizer is NewRenderer with the glyph source supplied by the caller.
func NewRendererWithRasterizer(cfg Config, rasterizer glyphs.Rasterizer, shader Shader, loader MeshLoader, device Device) (*Renderer, error) {
	r, err := newRenderer(cfg, shader, loader, device)
	if err != nil {
		return r, err
	}
	return r, r.buildAtlas(rasterizer)
}

// openFace loads cfg.FontPath and falls back to cfg.FallbackFont if that fails and a fallback is set.
func openFace(cfg Config) (*glyphs.FaceRasterizer, error) {
	face, err := glyphs.OpenFace(cfg.FontPath, cfg.PixelSize)
	if err == nil || len(cfg.FallbackFont) == 0 {
		return face, err
	}
	util.LogTextWarning(fmt.Sprintf("[TextRenderer] %v, using the fallback font", err))
	face, fallbackErr := glyphs.ParseFace(cfg.FallbackFont, cfg.PixelSize)
	if fallbackErr != nil {
		return nil, errors.Wrapf(fallbackErr, "fallback after: %v", err)
	}
	return face, nil
}

func newRenderer(cfg Config, shader Shader, loader MeshLoader, device Device) (*Renderer, error) {
	r := &Renderer{
		cfg:    cfg,
		shader: shader,
		device: device,
	}
	shader.Begin()
	shader.SetUniformByName(UniformProjection, util.Get2DBaselineOrthographicProjectionMatrix(cfg.ViewportWidth, cfg.ViewportHeight))
	shader.SetUniformByName(UniformTextColor, cfg.Color)
	shader.SetUniformByName(UniformSampler, int32(cfg.TextureUnit))
	shader.End()

	quad, err := loader.LoadToVAO(quadPositions, quadTexCoords)
	if err != nil {
		util.LogTextError(fmt.Sprintf("[TextRenderer] Could not upload the glyph quad: %v", err))
		return r, errors.Wrap(err, "text renderer unusable")
	}
	r.quad = quad
	return r, nil
}

func (r *Renderer) buildAtlas(rasterizer glyphs.Rasterizer) error {
	texture := r.device.NewAtlasTexture(r.cfg.TextureUnit)
	var target glyphs.Target = texture
	var debugImage *glyphs.ImageAtlas
	if r.cfg.DebugAtlasPath != "" {
		debugImage = glyphs.NewImageAtlas()
		target = glyphs.MultiTarget{texture, debugImage}
	}

	atlas, err := glyphs.Build(rasterizer, target, r.cfg.atlasOptions())
	if err != nil {
		texture.Delete()
		util.LogTextError(fmt.Sprintf("[TextRenderer] Could not create atlas: %v", err))
		return errors.Wrap(err, "text renderer unusable")
	}
	r.atlas = atlas
	r.texture = texture

	if debugImage != nil {
		if err = debugImage.WritePNG(r.cfg.DebugAtlasPath); err != nil {
			util.LogIOError(fmt.Sprintf("[TextRenderer] %v", err))
		}
	}
	return nil
}

// Ready reports whether an atlas is available. Draws on a renderer that isn't ready are no-ops.
func (r *Renderer) Ready() bool {
	return r.atlas != nil
}

func (r *Renderer) Atlas() *glyphs.Atlas {
	return r.atlas
}

func (r *Renderer) PixelSize() int {
	return r.cfg.PixelSize
}

// Layout returns the quads RenderText would draw and the final pen x.
func (r *Renderer) Layout(text string, x, y, scale float32) ([]GlyphQuad, float32) {
	return layoutGlyphs(r.atlas, text, x, y, scale, nil)
}

// RenderText draws text with the pen starting at x on the baseline y and returns the final pen x.
func (r *Renderer) RenderText(text string, x, y, scale float32) float32 {
	var end float32
	r.quads, end = layoutGlyphs(r.atlas, text, x, y, scale, r.quads[:0])
	r.drawQuads(r.quads)
	return end
}

// RenderLines draws all lines with a single bind of shader, texture and quad.
func (r *Renderer) RenderLines(lines []Line) {
	r.quads = r.quads[:0]
	for _, line := range lines {
		r.quads, _ = layoutGlyphs(r.atlas, line.Text, line.X, line.Y, line.Scale, r.quads)
	}
	r.drawQuads(r.quads)
}

func (r *Renderer) drawQuads(quads []GlyphQuad) {
	if len(quads) == 0 {
		return
	}
	r.shader.Begin()
	r.device.EnableBlend()
	r.texture.Begin()
	r.quad.Begin()

	for _, q := range quads {
		r.shader.SetUniformByName(UniformModel, q.Model)
		r.shader.SetUniformByName(UniformCoord, q.Coord)
		r.quad.Draw()
	}

	r.quad.End()
	r.texture.End()
	r.device.DisableBlend()
	r.shader.End()
}

// SetViewport re-derives the projection after the window size changed.
func (r *Renderer) SetViewport(width, height int) {
	r.cfg.ViewportWidth = width
	r.cfg.ViewportHeight = height
	r.shader.Begin()
	r.shader.SetUniformByName(UniformProjection, util.Get2DBaselineOrthographicProjectionMatrix(width, height))
	r.shader.End()
}

// SetColor changes the text color of subsequent draws.
func (r *Renderer) SetColor(color mgl32.Vec3) {
	r.cfg.Color = color
	r.shader.Begin()
	r.shader.SetUniformByName(UniformTextColor, color)
	r.shader.End()
}

// Close releases the atlas texture.
func (r *Renderer) Close() {
	if r.texture != nil {
		r.texture.Delete()
		r.texture = nil
	}
	r.atlas = nil
}
