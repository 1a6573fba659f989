package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer-kernel/pkg/core"
)

func vecNear(a, b core.Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestCameraGetRay_Center(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(1, 2, 3),
		LookAt:      core.NewVec3(1, 2, -7),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        45.0,
	}
	camera := NewCamera(config)

	ray := camera.GetRay(0.5, 0.5)
	if ray.Origin != config.Center {
		t.Errorf("Expected ray origin %v, got %v", config.Center, ray.Origin)
	}
	if !vecNear(ray.Direction.Normalize(), core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("Expected forward direction (0,0,-1), got %v", ray.Direction.Normalize())
	}
}

func TestCameraGetRay_Corners(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 2.0,
		VFov:        90.0,
	})

	// With a 90 degree field of view the viewport is 2 units tall at distance 1
	tests := []struct {
		name     string
		s, t     float64
		expected core.Vec3
	}{
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"top center", 0.5, 1, core.NewVec3(0, 1, -1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t)
			if !vecNear(ray.Direction, tt.expected, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCameraWorldToCamera(t *testing.T) {
	config := CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       100,
		AspectRatio: 1,
		VFov:        40,
	}
	w2c := NewCamera(config).WorldToCamera()

	if got := w2c.TransformP(config.Center); !vecNear(got, core.Vec3{}, 1e-9) {
		t.Errorf("Expected eye at the camera origin, got %v", got)
	}
	if got := w2c.TransformP(config.LookAt); !vecNear(got, core.NewVec3(0, 0, -5), 1e-9) {
		t.Errorf("Expected target on -Z, got %v", got)
	}
	if got := w2c.TransformP(core.NewVec3(0, 1, 5)); !vecNear(got, core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("Expected up to stay +Y, got %v", got)
	}
}

func TestMergeCameraConfig(t *testing.T) {
	base := CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40,
	}
	merged := MergeCameraConfig(base, CameraConfig{Width: 200, VFov: 60})

	if merged.Width != 200 || merged.VFov != 60 {
		t.Errorf("Expected overrides to apply, got %+v", merged)
	}
	if merged.Center != base.Center || merged.AspectRatio != base.AspectRatio {
		t.Errorf("Expected unset fields to keep base values, got %+v", merged)
	}
}

func TestCameraImageSize(t *testing.T) {
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0, 0, 1),
		Width:       400,
		AspectRatio: 2,
		VFov:        40,
	})
	w, h := camera.ImageSize()
	if w != 400 || h != 200 {
		t.Errorf("Expected 400x200, got %dx%d", w, h)
	}
}
