package glapp

import (
	"fmt"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/memmaker/hudtext/engine/util"
)

func CheckForGLError() {
	errorCodeOfGL := gl.GetError()

	if errorCodeOfGL != gl.NO_ERROR {
		util.LogGlError(fmt.Sprintf("GL error: %v", errorCodeOfGL))
	}
}
