package material

import (
	"fmt"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/geometry"
	"github.com/df07/go-raytracer-kernel/pkg/params"
)

// Constant shades every sample from a color source, ignoring lighting
type Constant struct {
	Source ColorSource
}

// NewConstant creates a shader with a single flat color
func NewConstant(color core.Vec3) *Constant {
	return &Constant{Source: NewSolidColor(color)}
}

// NewTextured creates a shader that looks its color up by UV
func NewTextured(source ColorSource) *Constant {
	return &Constant{Source: source}
}

// Update reads "color", replacing the source with a solid color
func (c *Constant) Update(pl *params.List) error {
	if !pl.Has("color") {
		return nil
	}
	color, err := pl.GetColor("color", core.Vec3{})
	if err != nil {
		return fmt.Errorf("constant: %w", err)
	}
	c.Source = NewSolidColor(color)
	return nil
}

func (c *Constant) Radiance(state *geometry.ShadingState) core.Vec3 {
	if c.Source == nil {
		return core.Vec3{}
	}
	return c.Source.Evaluate(state.UV, state.Point)
}

// UVShader visualizes surface coordinates as (u, v, 0)
type UVShader struct{}

func (UVShader) Radiance(state *geometry.ShadingState) core.Vec3 {
	return core.NewVec3(state.UV.U, state.UV.V, 0)
}
