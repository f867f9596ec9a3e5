package textgl

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/memmaker/hudtext/engine/glapp"
	"github.com/memmaker/hudtext/engine/glhf"
	"github.com/memmaker/hudtext/engine/text"
	"github.com/memmaker/hudtext/engine/util"
	"github.com/pkg/errors"
)

// Device is the OpenGL implementation of text.Device.
type Device struct{}

func NewDevice() *Device {
	return &Device{}
}

func (d *Device) NewAtlasTexture(unit int) text.AtlasTexture {
	return &AtlasTexture{unit: unit}
}

func (d *Device) EnableBlend() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (d *Device) DisableBlend() {
	gl.Disable(gl.BLEND)
}

// AtlasTexture is a glyph atlas living in a single channel texture that is always used on one texture unit.
type AtlasTexture struct {
	unit    int
	texture *glhf.Texture
}

func (a *AtlasTexture) activate() {
	gl.ActiveTexture(gl.TEXTURE0 + uint32(a.unit))
}

func (a *AtlasTexture) Allocate(width, height int) error {
	if a.texture != nil {
		return errors.New("atlas texture already allocated")
	}
	a.activate()
	a.texture = glhf.NewAlphaTexture(width, height, true)
	gl.ActiveTexture(gl.TEXTURE0)
	glapp.CheckForGLError()
	util.LogGlDebug(fmt.Sprintf("[AtlasTexture] Allocated %dx%d on unit %d", width, height, a.unit))
	return nil
}

func (a *AtlasTexture) Upload(x, y int, mask *image.Alpha) error {
	if a.texture == nil {
		return errors.New("upload before allocation")
	}
	a.Begin()
	defer a.End()
	return a.texture.SetAlphaPixels(x, y, mask)
}

// Begin activates the texture unit and binds the atlas on it.
func (a *AtlasTexture) Begin() {
	if a.texture == nil {
		return
	}
	a.activate()
	a.texture.Begin()
}

func (a *AtlasTexture) End() {
	if a.texture == nil {
		return
	}
	a.texture.End()
	gl.ActiveTexture(gl.TEXTURE0)
}

func (a *AtlasTexture) Delete() {
	if a.texture == nil {
		return
	}
	a.texture.Delete()
	a.texture = nil
}
