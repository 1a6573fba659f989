package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/geometry"
)

// Scene interface to avoid circular imports
type Scene interface {
	GetCamera() *Camera
	GetBackgroundColor() core.Vec3
	// Intersect narrows ray.TMax to the nearest hit and records it in state
	Intersect(ray *core.Ray, state *geometry.IntersectionState)
}

// Raytracer shades the first hit of each primary ray. It holds no mutable
// state, so one value can serve every worker.
type Raytracer struct {
	scene  Scene
	width  int
	height int
}

// NewRaytracer creates a raytracer for a width x height image
func NewRaytracer(scene Scene, width, height int) *Raytracer {
	return &Raytracer{
		scene:  scene,
		width:  width,
		height: height,
	}
}

// RayColor returns the shaded color of the nearest surface, or the
// background when nothing is hit
func (rt *Raytracer) RayColor(ray core.Ray) (core.Vec3, bool) {
	var istate geometry.IntersectionState
	rt.scene.Intersect(&ray, &istate)
	if !istate.Hit() {
		return rt.scene.GetBackgroundColor(), false
	}

	state := geometry.NewShadingState(ray, &istate, rt.scene.GetCamera().WorldToCamera())
	state.Prepare()
	return state.Shade(), true
}

// RenderBounds traces one ray through the center of every pixel in bounds.
// Row 0 is the top of the image.
func (rt *Raytracer) RenderBounds(bounds image.Rectangle, pixelStats [][]PixelStats) RenderStats {
	camera := rt.scene.GetCamera()
	var stats RenderStats

	for j := bounds.Min.Y; j < bounds.Max.Y; j++ {
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			s := (float64(i) + 0.5) / float64(rt.width)
			t := 1 - (float64(j)+0.5)/float64(rt.height)

			c, hit := rt.RayColor(camera.GetRay(s, t))
			pixelStats[j][i].AddSample(c)
			stats.TotalSamples++
			if hit {
				stats.Hits++
			}
		}
	}
	return stats
}

// vec3ToColor converts a Vec3 color to RGBA, clamping to [0, 1]
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255*colorVec.X + 0.5),
		G: uint8(255*colorVec.Y + 0.5),
		B: uint8(255*colorVec.Z + 0.5),
		A: 255,
	}
}
