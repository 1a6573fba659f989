package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/geometry"
	"github.com/df07/go-raytracer-kernel/pkg/material"
	"github.com/df07/go-raytracer-kernel/pkg/params"
	"github.com/df07/go-raytracer-kernel/pkg/renderer"
)

// setupCamera applies any overrides to the default camera configuration
func setupCamera(defaults renderer.CameraConfig, cameraOverrides ...renderer.CameraConfig) renderer.CameraConfig {
	if len(cameraOverrides) > 0 {
		return renderer.MergeCameraConfig(defaults, cameraOverrides[0])
	}
	return defaults
}

// newGroundPlane creates a y=0 plane whose UV mapping repeats every
// tile units along x and z
func newGroundPlane(tile float64) (*geometry.Plane, error) {
	ground := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0))
	err := ground.Update(params.NewList().
		AddPoint("center", core.NewVec3(0, 0, 0)).
		AddPoint("point1", core.NewVec3(tile, 0, 0)).
		AddPoint("point2", core.NewVec3(0, 0, -tile)))
	if err != nil {
		return nil, fmt.Errorf("ground plane: %w", err)
	}
	return ground, nil
}

// NewDefaultScene creates a wireframe icosahedron and cube over a
// checkered ground plane, with a UV-shaded sphere for comparison
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cameraConfig := setupCamera(renderer.CameraConfig{
		Center:      core.NewVec3(0, 2.5, 7),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}, cameraOverrides...)

	s := NewScene(cameraConfig)
	s.Background = core.NewVec3(0.7, 0.8, 1.0)

	ground, err := newGroundPlane(8)
	if err != nil {
		return nil, err
	}
	checker := material.NewCheckerboardTexture(64, 64, 8,
		core.NewVec3(0.85, 0.85, 0.85),
		core.NewVec3(0.55, 0.55, 0.6),
	)
	s.Add(geometry.NewInstance(ground, material.NewTextured(checker)))

	wireframe := material.NewWireframe()
	if err := wireframe.Update(params.NewList().
		AddColor("line", core.NewVec3(0.05, 0.05, 0.1)).
		AddColor("fill", core.NewVec3(0.95, 0.6, 0.2))); err != nil {
		return nil, err
	}

	ico, err := newMesh(icosahedronParams())
	if err != nil {
		return nil, fmt.Errorf("icosahedron: %w", err)
	}
	icoInst, err := placed(ico, core.NewVec3(-1.3, 1, 0), core.NewVec3(0, 1, 0), math.Pi/7, 1, wireframe)
	if err != nil {
		return nil, err
	}

	cube, err := newMesh(cubeParams())
	if err != nil {
		return nil, fmt.Errorf("cube: %w", err)
	}
	cubeInst, err := placed(cube, core.NewVec3(1.3, 0.75, 0), core.NewVec3(1, 1, 0), math.Pi/5, 0.6, wireframe)
	if err != nil {
		return nil, err
	}

	sphere := geometry.NewInstance(geometry.NewSphere(core.NewVec3(0, 0.4, 1.6), 0.4), material.UVShader{})

	s.Add(icoInst, cubeInst, sphere)
	return s, s.Preprocess()
}
