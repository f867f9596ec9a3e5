package util

import "github.com/go-gl/mathgl/mgl32"

// Get2DBaselineOrthographicProjectionMatrix maps window pixels with 0,0 at the bottom left and y pointing up,
// which is the space text baselines are specified in.
func Get2DBaselineOrthographicProjectionMatrix(width, height int) mgl32.Mat4 {
	return mgl32.Ortho2D(0, float32(width), 0, float32(height))
}
