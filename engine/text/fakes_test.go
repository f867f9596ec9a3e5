package text

import (
	"fmt"
	"image"

	"github.com/memmaker/hudtext/engine/glyphs"
	"golang.org/x/image/math/fixed"
)

// recorder collects the calls of all fake collaborators in order.
type recorder struct {
	calls    []string
	uniforms map[string][]interface{}
}

func newRecorder() *recorder {
	return &recorder{uniforms: map[string][]interface{}{}}
}

func (r *recorder) record(call string) {
	r.calls = append(r.calls, call)
}

func (r *recorder) count(call string) int {
	n := 0
	for _, c := range r.calls {
		if c == call {
			n++
		}
	}
	return n
}

type fakeShader struct{ rec *recorder }

func (s *fakeShader) Begin() { s.rec.record("shader.Begin") }
func (s *fakeShader) End()   { s.rec.record("shader.End") }
func (s *fakeShader) SetUniformByName(name string, value interface{}) bool {
	s.rec.record("uniform." + name)
	s.rec.uniforms[name] = append(s.rec.uniforms[name], value)
	return true
}

type fakeQuad struct{ rec *recorder }

func (q *fakeQuad) Begin() { q.rec.record("quad.Begin") }
func (q *fakeQuad) Draw()  { q.rec.record("quad.Draw") }
func (q *fakeQuad) End()   { q.rec.record("quad.End") }

type fakeLoader struct {
	rec                  *recorder
	positions, texCoords []float32
	err                  error
}

func (l *fakeLoader) LoadToVAO(positions, texCoords []float32) (Drawable, error) {
	l.rec.record("loader.LoadToVAO")
	if l.err != nil {
		return nil, l.err
	}
	l.positions = positions
	l.texCoords = texCoords
	return &fakeQuad{rec: l.rec}, nil
}

type fakeTexture struct {
	*glyphs.ImageAtlas
	rec  *recorder
	unit int
}

func (t *fakeTexture) Begin()  { t.rec.record("texture.Begin") }
func (t *fakeTexture) End()    { t.rec.record("texture.End") }
func (t *fakeTexture) Delete() { t.rec.record("texture.Delete") }

type fakeDevice struct {
	rec     *recorder
	texture *fakeTexture
}

func (d *fakeDevice) NewAtlasTexture(unit int) AtlasTexture {
	d.rec.record(fmt.Sprintf("device.NewAtlasTexture(%d)", unit))
	d.texture = &fakeTexture{ImageAtlas: glyphs.NewImageAtlas(), rec: d.rec, unit: unit}
	return d.texture
}
func (d *fakeDevice) EnableBlend()  { d.rec.record("device.EnableBlend") }
func (d *fakeDevice) DisableBlend() { d.rec.record("device.DisableBlend") }

// blockRasterizer returns solid w x h blocks for A-Z and a-z and fails everything else except space.
type blockRasterizer struct{}

func (blockRasterizer) Rasterize(code rune) (*glyphs.Bitmap, error) {
	switch {
	case code == ' ':
		return &glyphs.Bitmap{Mask: image.NewAlpha(image.Rect(0, 0, 0, 0)), Advance: fixed.P(8, 0)}, nil
	case code >= 'A' && code <= 'Z', code >= 'a' && code <= 'z':
		w := 10 + int(code)%4
		h := 20
		bearingTop := h
		if code == 'p' {
			bearingTop = 14
		}
		return &glyphs.Bitmap{
			Mask:        image.NewAlpha(image.Rect(0, 0, w, h)),
			BearingLeft: 1,
			BearingTop:  bearingTop,
			Advance:     fixed.P(w+3, 0),
		}, nil
	}
	return nil, fmt.Errorf("unsupported code %d", code)
}

type testEnv struct {
	rec    *recorder
	device *fakeDevice
	loader *fakeLoader
	r      *Renderer
	err    error
}

func newTestEnv(cfg Config) *testEnv {
	rec := newRecorder()
	env := &testEnv{
		rec:    rec,
		device: &fakeDevice{rec: rec},
		loader: &fakeLoader{rec: rec},
	}
	env.r, env.err = NewRendererWithRasterizer(cfg, blockRasterizer{}, &fakeShader{rec: rec}, env.loader, env.device)
	rec.calls = nil
	return env
}
