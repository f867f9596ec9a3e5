package glhf

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/pkg/errors"
)

// Init loads the OpenGL function pointers. It must be called on the main thread after a context was made
// current and before anything else in this package is used.
func Init() error {
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "failed to initialize OpenGL")
	}
	gl.BlendEquation(gl.FUNC_ADD)
	return nil
}
