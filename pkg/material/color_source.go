package material

import (
	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/geometry"
)

// ColorSource provides spatially-varying colors for shaders
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and world-space point
	Evaluate(uv geometry.UV, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv geometry.UV, point core.Vec3) core.Vec3 {
	return s.Color
}
