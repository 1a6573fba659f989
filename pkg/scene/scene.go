package scene

import (
	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/geometry"
	"github.com/df07/go-raytracer-kernel/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Camera       *renderer.Camera
	CameraConfig renderer.CameraConfig
	Background   core.Vec3            // Color of rays that hit nothing
	Instances    []*geometry.Instance // Objects in the scene

	bounds []instanceBounds // Cached by Preprocess
}

type instanceBounds struct {
	box     core.AABB
	bounded bool
}

// NewScene creates an empty scene viewed through cameraConfig
func NewScene(cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Camera:       renderer.NewCamera(cameraConfig),
		CameraConfig: cameraConfig,
		Background:   core.NewVec3(1, 1, 1),
	}
}

// Add appends instances to the scene. Call Preprocess again afterwards.
func (s *Scene) Add(instances ...*geometry.Instance) {
	s.Instances = append(s.Instances, instances...)
	s.bounds = nil
}

// GetCamera returns the scene camera
func (s *Scene) GetCamera() *renderer.Camera {
	return s.Camera
}

// GetBackgroundColor returns the color of rays that escape the scene
func (s *Scene) GetBackgroundColor() core.Vec3 {
	return s.Background
}

// Preprocess caches the world bounds of every instance so Intersect can
// skip bounded instances the ray misses
func (s *Scene) Preprocess() error {
	s.bounds = make([]instanceBounds, len(s.Instances))
	for i, inst := range s.Instances {
		box, ok := inst.WorldBounds()
		s.bounds[i] = instanceBounds{box: box, bounded: ok}
	}
	return nil
}

// Intersect tests every instance and leaves the nearest hit in state.
// Unbounded instances are always tested.
func (s *Scene) Intersect(ray *core.Ray, state *geometry.IntersectionState) {
	culled := len(s.bounds) == len(s.Instances)
	for i, inst := range s.Instances {
		if culled && s.bounds[i].bounded && !s.bounds[i].box.Hit(*ray, ray.TMin, ray.TMax) {
			continue
		}
		inst.Intersect(ray, state)
	}
}

// Bounds returns the union of all finite instance bounds and whether any
// instance is unbounded
func (s *Scene) Bounds() (box core.AABB, unbounded bool) {
	box = core.NewEmptyAABB()
	for _, inst := range s.Instances {
		b, ok := inst.WorldBounds()
		if !ok {
			unbounded = true
			continue
		}
		box.IncludeBox(&b)
	}
	return box, unbounded
}

// GetPrimitiveCount returns the total number of primitives in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, inst := range s.Instances {
		count += inst.Geometry.NumPrimitives()
	}
	return count
}

// ImageSize returns the camera's default pixel size, or width with the
// height following the camera aspect ratio
func (s *Scene) ImageSize(width int) (int, int) {
	if width <= 0 {
		return s.Camera.ImageSize()
	}
	aspect := s.CameraConfig.AspectRatio
	if aspect <= 0 {
		aspect = 1
	}
	return width, max(1, int(float64(width)/aspect))
}
