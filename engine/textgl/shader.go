package textgl

import (
	_ "embed"

	"github.com/memmaker/hudtext/engine/glhf"
	"github.com/memmaker/hudtext/engine/text"
	"github.com/pkg/errors"
)

var (
	//go:embed shader/text.vert
	textVertexShaderSource string

	//go:embed shader/text.frag
	textFragmentShaderSource string
)

// LoadTextShader compiles the glyph shader. Its uniforms are set by text.Renderer.
func LoadTextShader() (*glhf.Shader, error) {
	var (
		vertexFormat = glhf.AttrFormat{
			{Name: "position", Type: glhf.Vec2},
			{Name: "texCoord", Type: glhf.Vec2},
		}
		uniformFormat = glhf.AttrFormat{
			glhf.Attr{Name: text.UniformProjection, Type: glhf.Mat4},
			glhf.Attr{Name: text.UniformTextColor, Type: glhf.Vec3},
			glhf.Attr{Name: text.UniformSampler, Type: glhf.Int},
			glhf.Attr{Name: text.UniformModel, Type: glhf.Mat4},
			glhf.Attr{Name: text.UniformCoord, Type: glhf.Vec4},
		}
	)
	shader, err := glhf.NewShader(vertexFormat, uniformFormat, textVertexShaderSource, textFragmentShaderSource)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load text shader")
	}
	return shader, nil
}

// QuadLoader uploads meshes for one shader.
type QuadLoader struct {
	Shader *glhf.Shader
}

func (l QuadLoader) LoadToVAO(positions, texCoords []float32) (text.Drawable, error) {
	vertices, err := glhf.LoadToVAO(l.Shader, positions, texCoords)
	if err != nil {
		return nil, err
	}
	return vertices, nil
}
