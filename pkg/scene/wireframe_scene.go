package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/geometry"
	"github.com/df07/go-raytracer-kernel/pkg/loaders"
	"github.com/df07/go-raytracer-kernel/pkg/material"
	"github.com/df07/go-raytracer-kernel/pkg/params"
	"github.com/df07/go-raytracer-kernel/pkg/renderer"
)

// NewWireframeScene creates a row of wireframe icosahedra rotated about
// different axes, black lines on white
func NewWireframeScene(cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cameraConfig := setupCamera(renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 8),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       600,
		AspectRatio: 2.0,
		VFov:        30.0,
	}, cameraOverrides...)

	s := NewScene(cameraConfig)
	wireframe := material.NewWireframe()

	ico, err := newMesh(icosahedronParams())
	if err != nil {
		return nil, fmt.Errorf("icosahedron: %w", err)
	}

	axes := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(1, 1, 1),
	}
	for i, axis := range axes {
		at := core.NewVec3(float64(i-1)*2.4, 0, 0)
		inst, err := placed(ico, at, axis, math.Pi/9*float64(i+1), 1, wireframe)
		if err != nil {
			return nil, err
		}
		s.Add(inst)
	}
	return s, s.Preprocess()
}

// NewTexturedScene shows texture on a UV-mapped plane facing the camera.
// A nil texture uses a UV debug gradient.
func NewTexturedScene(texture material.ColorSource, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	cameraConfig := setupCamera(renderer.CameraConfig{
		Center:      core.NewVec3(0.5, 0.5, 2.5),
		LookAt:      core.NewVec3(0.5, 0.5, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 1.0,
		VFov:        30.0,
	}, cameraOverrides...)

	if texture == nil {
		texture = material.NewUVDebugTexture(64, 64)
	}

	// center, point1 and point2 span the unit square so UV matches xy
	plane := geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	err := plane.Update(params.NewList().
		AddPoint("center", core.NewVec3(0, 0, 0)).
		AddPoint("point1", core.NewVec3(1, 0, 0)).
		AddPoint("point2", core.NewVec3(0, 1, 0)))
	if err != nil {
		return nil, fmt.Errorf("texture plane: %w", err)
	}

	s := NewScene(cameraConfig)
	s.Background = core.NewVec3(0.1, 0.1, 0.1)
	s.Add(geometry.NewInstance(plane, material.NewTextured(texture)))
	return s, s.Preprocess()
}

// NewMeshScene frames a loaded PLY mesh in a wireframe view
func NewMeshScene(data *loaders.PLYData, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	mesh, err := geometry.NewTriangleMesh(data.Vertices, data.Faces)
	if err != nil {
		return nil, err
	}
	inst := geometry.NewInstance(mesh, material.NewWireframe())

	box, ok := inst.WorldBounds()
	if !ok || box.IsEmpty() {
		return nil, fmt.Errorf("mesh has no vertices: %w", geometry.ErrInvalidMesh)
	}

	const vfov = 40.0
	center := box.Center()
	radius := max(box.Extents().Length()/2, 1e-3)
	distance := radius / math.Tan(vfov/2*math.Pi/180) * 1.1

	cameraConfig := setupCamera(renderer.CameraConfig{
		Center:      center.Add(core.NewVec3(0, radius*0.3, distance)),
		LookAt:      center,
		Up:          core.NewVec3(0, 1, 0),
		Width:       500,
		AspectRatio: 1.0,
		VFov:        vfov,
	}, cameraOverrides...)

	s := NewScene(cameraConfig)
	s.Add(inst)
	return s, s.Preprocess()
}

// SetWireframeWidth sets the line width of every wireframe shader in s
func SetWireframeWidth(s *Scene, width float64) {
	for _, inst := range s.Instances {
		for _, shader := range inst.Shaders {
			if w, ok := shader.(*material.Wireframe); ok {
				w.SetWidth(width)
			}
		}
	}
}
