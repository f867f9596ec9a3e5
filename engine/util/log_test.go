package util

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestLogFiltersByLevelAndCategory(t *testing.T) {
	lines, restore := CaptureLog()
	defer restore()

	oldLevel, oldCategories := GLOBAL_LOG_LEVEL, GLOBAL_LOG_CATEGORIES
	defer func() {
		GLOBAL_LOG_LEVEL, GLOBAL_LOG_CATEGORIES = oldLevel, oldCategories
	}()
	GLOBAL_LOG_LEVEL = LogLevelInfo
	GLOBAL_LOG_CATEGORIES = LogGlyphs

	LogGlyphsInfo("info")
	LogGlyphsDebug("debug")
	LogGlyphsError("error")
	LogTextError("other category")
	LogGlyphsWarning("[Atlas] 3 rows")

	assert.Equal(t, []string{"info", "error", "[Atlas] 3 rows"}, *lines)
}

func TestBaselineProjectionPutsOriginBottomLeft(t *testing.T) {
	projection := Get2DBaselineOrthographicProjectionMatrix(800, 600)

	bottomLeft := projection.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	topRight := projection.Mul4x1(mgl32.Vec4{800, 600, 0, 1})

	assert.InDelta(t, -1, bottomLeft.X(), 1e-6)
	assert.InDelta(t, -1, bottomLeft.Y(), 1e-6)
	assert.InDelta(t, 1, topRight.X(), 1e-6)
	assert.InDelta(t, 1, topRight.Y(), 1e-6)
}
