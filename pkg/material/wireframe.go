package material

import (
	"fmt"
	"math"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/geometry"
	"github.com/df07/go-raytracer-kernel/pkg/params"
)

// DefaultWireframeWidth is roughly half the angular width of a pixel
const DefaultWireframeWidth = math.Pi * 0.5 / 4096

// Wireframe colors a sample with the line color when the direction to it
// lies within an angular width of one of the hit triangle's edges, as seen
// from the camera. Everything else gets the fill color.
type Wireframe struct {
	lineColor core.Vec3
	fillColor core.Vec3
	width     float64
	cosWidth  float64
}

// NewWireframe creates a wireframe shader with black lines on white
func NewWireframe() *Wireframe {
	w := &Wireframe{
		lineColor: core.NewVec3(0, 0, 0),
		fillColor: core.NewVec3(1, 1, 1),
	}
	w.SetWidth(DefaultWireframeWidth)
	return w
}

// Update reads "line", "fill" and "width"
func (w *Wireframe) Update(pl *params.List) error {
	line, err := pl.GetColor("line", w.lineColor)
	if err != nil {
		return fmt.Errorf("wireframe: %w", err)
	}
	fill, err := pl.GetColor("fill", w.fillColor)
	if err != nil {
		return fmt.Errorf("wireframe: %w", err)
	}
	width, err := pl.GetFloat("width", w.width)
	if err != nil {
		return fmt.Errorf("wireframe: %w", err)
	}
	w.lineColor = line
	w.fillColor = fill
	w.SetWidth(width)
	return nil
}

// SetWidth sets the angular half-width of the lines in radians
func (w *Wireframe) SetWidth(width float64) {
	w.width = width
	w.cosWidth = math.Cos(width)
}

// Width returns the angular half-width in radians
func (w *Wireframe) Width() float64 { return w.width }

// LineColor returns the color used on edges
func (w *Wireframe) LineColor() core.Vec3 { return w.lineColor }

// FillColor returns the color used away from edges
func (w *Wireframe) FillColor() core.Vec3 { return w.fillColor }

// Radiance returns the line color near an edge and the fill color otherwise
func (w *Wireframe) Radiance(state *geometry.ShadingState) core.Vec3 {
	if _, ok := w.EdgeAt(state); ok {
		return w.lineColor
	}
	return w.fillColor
}

// EdgeAt returns the first triangle edge the shaded point lies on. Edge i
// joins vertex i to the one before it: 0 is (0,2), 1 is (1,0), 2 is (2,1).
// ok is false for non-triangle hits, for points off every edge and for a
// point at the camera origin. Zero-length edges are never matched.
func (w *Wireframe) EdgeAt(state *geometry.ShadingState) (edge int, ok bool) {
	points, ok := state.TrianglePoints()
	if !ok {
		return 0, false
	}

	w2c := state.WorldToCamera()
	center := w2c.TransformP(state.Point)
	for i := range points {
		points[i] = w2c.TransformP(state.TransformObjectToWorld(points[i]))
	}

	cl := center.Length()
	if cl == 0 {
		return 0, false
	}

	for i, i2 := 0, 2; i < 3; i2, i = i, i+1 {
		// Orthogonal projection of the point onto the line through the edge
		a, b := points[i], points[i2]
		ab := b.Subtract(a)
		l2 := ab.LengthSquared()
		if l2 == 0 {
			continue
		}
		t := center.Subtract(a).Dot(ab) / l2
		proj := a.Multiply(1 - t).Add(b.Multiply(t))

		pl := proj.Length()
		if pl == 0 || !proj.IsFinite() {
			continue
		}
		if proj.Dot(center)/(pl*cl) >= w.cosWidth {
			return i, true
		}
	}
	return 0, false
}
