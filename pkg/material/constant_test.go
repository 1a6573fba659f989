package material

import (
	"testing"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/geometry"
	"github.com/df07/go-raytracer-kernel/pkg/params"
)

func TestConstant_Update(t *testing.T) {
	c := NewConstant(core.NewVec3(0.5, 0.5, 0.5))
	state := &geometry.ShadingState{}

	if err := c.Update(params.NewList()); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := c.Radiance(state); got != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Expected color to be kept, got %v", got)
	}

	if err := c.Update(params.NewList().AddColor("color", core.NewVec3(1, 0, 0))); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if got := c.Radiance(state); got != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected red, got %v", got)
	}
}

func TestUVShader(t *testing.T) {
	state := &geometry.ShadingState{UV: geometry.UV{U: 0.25, V: 0.75}}
	if got := (UVShader{}).Radiance(state); got != core.NewVec3(0.25, 0.75, 0) {
		t.Errorf("Expected (0.25, 0.75, 0), got %v", got)
	}
}

// TestImageTextureEvaluate tests basic texture sampling
func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	pixels := []core.Vec3{
		white, black, // Row 0 (top in image coords)
		black, white, // Row 1 (bottom in image coords)
	}
	texture := NewImageTexture(2, 2, pixels)

	tests := []struct {
		uv       geometry.UV
		expected core.Vec3
	}{
		{geometry.UV{U: 0.1, V: 0.1}, black},
		{geometry.UV{U: 0.9, V: 0.1}, white},
		{geometry.UV{U: 0.1, V: 0.9}, white},
		{geometry.UV{U: 0.9, V: 0.9}, black},
		// Wrapping
		{geometry.UV{U: 1.1, V: 0.1}, black},
		{geometry.UV{U: -0.1, V: 0.1}, white},
	}
	for _, tt := range tests {
		if got := texture.Evaluate(tt.uv, core.Vec3{}); got != tt.expected {
			t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, got)
		}
	}
}

func TestImageTextureEmpty(t *testing.T) {
	texture := NewImageTexture(0, 0, nil)
	if got := texture.Evaluate(geometry.UV{U: 0.5, V: 0.5}, core.Vec3{}); got != (core.Vec3{}) {
		t.Errorf("Expected black from an empty texture, got %v", got)
	}
}

func TestCheckerboardTexture(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	texture := NewCheckerboardTexture(4, 4, 2, red, white)

	if texture.Pixels[0] != red || texture.Pixels[2] != white || texture.Pixels[2*4+2] != red {
		t.Errorf("Unexpected checkerboard layout: %v", texture.Pixels)
	}

	shader := NewTextured(texture)
	state := &geometry.ShadingState{UV: geometry.UV{U: 0.1, V: 0.9}}
	if got := shader.Radiance(state); got != red {
		t.Errorf("Expected top-left check to be red, got %v", got)
	}
}

func TestUVDebugTexture(t *testing.T) {
	texture := NewUVDebugTexture(3, 3)
	// Bottom-right pixel is (u=1, v=0)
	if got := texture.Pixels[2*3+2]; got != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected (1,0,0) at bottom right, got %v", got)
	}
}
