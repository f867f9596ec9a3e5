package glhf

import (
	"image"
	"runtime"

	"github.com/faiface/mainthread"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// Texture is an OpenGL texture with one 8 bit red channel per texel.
type Texture struct {
	tex           binder
	width, height int
	deleted       bool
}

// NewAlphaTexture creates a single channel texture of the given size with undefined content.
// Rows are tightly packed, one byte per texel.
func NewAlphaTexture(width, height int, smooth bool) *Texture {
	tex := &Texture{
		tex: binder{
			restoreLoc: gl.TEXTURE_BINDING_2D,
			bindFunc: func(obj uint32) {
				gl.BindTexture(gl.TEXTURE_2D, obj)
			},
		},
		width:  width,
		height: height,
	}

	gl.GenTextures(1, &tex.tex.obj)

	tex.Begin()
	defer tex.End()

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RED,
		int32(width),
		int32(height),
		0,
		gl.RED,
		gl.UNSIGNED_BYTE,
		nil,
	)

	tex.SetSmooth(smooth)
	tex.SetWrapToClamp()
	runtime.SetFinalizer(tex, (*Texture).delete)

	return tex
}

func (t *Texture) delete() {
	if t.deleted {
		return
	}
	mainthread.CallNonBlock(func() {
		gl.DeleteTextures(1, &t.tex.obj)
	})
}

// Delete frees the texture right away. It must be called on the thread owning the context.
func (t *Texture) Delete() {
	if t.deleted {
		return
	}
	gl.DeleteTextures(1, &t.tex.obj)
	t.deleted = true
	runtime.SetFinalizer(t, nil)
}

// SetAlphaPixels sets the content of a sub-region of the Texture. The Texture must be bound.
func (t *Texture) SetAlphaPixels(x, y int, mask *image.Alpha) error {
	w, h := mask.Rect.Dx(), mask.Rect.Dy()
	if x < 0 || y < 0 || x+w > t.width || y+h > t.height {
		return errors.Errorf("set pixels: %dx%d at %d,%d exceeds %dx%d texture", w, h, x, y, t.width, t.height)
	}
	if w == 0 || h == 0 {
		return nil
	}
	pixels := mask.Pix
	if mask.Stride != w {
		pixels = make([]uint8, 0, w*h)
		for row := 0; row < h; row++ {
			start := mask.PixOffset(mask.Rect.Min.X, mask.Rect.Min.Y+row)
			pixels = append(pixels, mask.Pix[start:start+w]...)
		}
	}
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexSubImage2D(
		gl.TEXTURE_2D,
		0,
		int32(x),
		int32(y),
		int32(w),
		int32(h),
		gl.RED,
		gl.UNSIGNED_BYTE,
		gl.Ptr(pixels),
	)
	return nil
}

// SetSmooth sets whether the Texture should be drawn "smoothly" or "pixely".
//
// It affects how the Texture is drawn when zoomed. Smooth interpolates between the neighbour
// pixels, while pixely always chooses the nearest pixel.
func (t *Texture) SetSmooth(smooth bool) {
	if smooth {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	}
}

func (t *Texture) SetWrapToClamp() {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
}

// Begin binds the Texture. This is necessary before using the Texture.
func (t *Texture) Begin() {
	t.tex.bind()
}

// End unbinds the Texture and restores the previous one.
func (t *Texture) End() {
	t.tex.restore()
}
