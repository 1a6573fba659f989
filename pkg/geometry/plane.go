package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/params"
)

var (
	// ErrDegeneratePlane is returned when the three points defining a plane
	// are collinear or coincident
	ErrDegeneratePlane = errors.New("degenerate plane: defining points are collinear")

	// ErrZeroNormal is returned when a plane is given a zero-length normal
	ErrZeroNormal = errors.New("plane normal has zero length")
)

// Axis is the coordinate axis a plane's UV mapping projects along
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
	AxisNone // No UV mapping: every hit gets UV (0, 0)
)

// uvAxes gives, per projection axis, the two world coordinates used as
// (u, v) before the affine map is applied
var uvAxes = [3][2]int{
	AxisX: {1, 2},
	AxisY: {2, 0},
	AxisZ: {0, 1},
}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "none"
	}
}

// project returns the 2D coordinates of p orthogonal to axis a
func (a Axis) project(p core.Vec3) (float64, float64) {
	if a < AxisX || a > AxisZ {
		return 0, 0
	}
	axes := uvAxes[a]
	return p.Get(axes[0]), p.Get(axes[1])
}

// dominantAxis returns the axis along which n has its largest component
func dominantAxis(n core.Vec3) Axis {
	ax, ay, az := math.Abs(n.X), math.Abs(n.Y), math.Abs(n.Z)
	switch {
	case ax > ay && ax > az:
		return AxisX
	case ay > az:
		return AxisY
	default:
		return AxisZ
	}
}

// Plane is an infinite plane through Center. When configured from three
// points it also carries an affine UV mapping: center maps to (0,0),
// point1 to (1,0) and point2 to (0,1).
type Plane struct {
	center core.Vec3
	normal core.Vec3
	k      Axis

	bnu, bnv, bnd float64
	cnu, cnv, cnd float64
}

// NewPlane creates a plane through center with the given normal and no UV
// mapping. The normal must be nonzero.
func NewPlane(center, normal core.Vec3) *Plane {
	return &Plane{
		center: center,
		normal: normal.Normalize(),
		k:      AxisNone,
	}
}

// Center returns the plane's reference point
func (p *Plane) Center() core.Vec3 { return p.center }

// Normal returns the plane's unit normal
func (p *Plane) Normal() core.Vec3 { return p.normal }

// Axis returns the projection axis of the UV mapping
func (p *Plane) Axis() Axis { return p.k }

// Update reconfigures the plane from "center", "point1", "point2" and
// "normal". With both points present the normal and UV mapping are derived
// from the triangle (center, point1, point2); otherwise the explicit normal
// is used and UV mapping is disabled. On error the plane is unchanged.
func (p *Plane) Update(pl *params.List) error {
	center, err := pl.GetPoint("center", p.center)
	if err != nil {
		return fmt.Errorf("plane: %w", err)
	}
	b, hasB, err := pl.Point("point1")
	if err != nil {
		return fmt.Errorf("plane: %w", err)
	}
	c, hasC, err := pl.Point("point2")
	if err != nil {
		return fmt.Errorf("plane: %w", err)
	}

	next := Plane{center: center, normal: p.normal, k: AxisNone}
	if hasB && hasC {
		if err := next.mapTriangle(center, b, c); err != nil {
			return fmt.Errorf("plane (%v, %v, %v): %w", center, b, c, err)
		}
	} else {
		n, err := pl.GetVector("normal", p.normal)
		if err != nil {
			return fmt.Errorf("plane: %w", err)
		}
		if n.LengthSquared() == 0 {
			return fmt.Errorf("plane: %w", ErrZeroNormal)
		}
		next.normal = n.Normalize()
	}

	*p = next
	return nil
}

// mapTriangle derives the normal, projection axis and UV coefficients
// from three points
func (p *Plane) mapTriangle(v0, v1, v2 core.Vec3) error {
	ng := v1.Subtract(v0).Cross(v2.Subtract(v0))
	if ng.LengthSquared() == 0 {
		return ErrDegeneratePlane
	}
	ng = ng.Normalize()
	k := dominantAxis(ng)

	ax, ay := k.project(v0)
	bx, by := k.project(v2)
	cx, cy := k.project(v1)
	bx, by = bx-ax, by-ay
	cx, cy = cx-ax, cy-ay

	det := bx*cy - by*cx
	if det == 0 {
		return ErrDegeneratePlane
	}

	coeffs := [6]float64{
		-by / det,
		bx / det,
		(by*ax - bx*ay) / det,
		cy / det,
		-cx / det,
		(cx*ay - cy*ax) / det,
	}
	for _, f := range coeffs {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return ErrDegeneratePlane
		}
	}

	p.normal = ng
	p.k = k
	p.bnu, p.bnv, p.bnd = coeffs[0], coeffs[1], coeffs[2]
	p.cnu, p.cnv, p.cnd = coeffs[3], coeffs[4], coeffs[5]
	return nil
}

// MapUV evaluates the plane's UV mapping at an object-space point
func (p *Plane) MapUV(point core.Vec3) UV {
	hu, hv := p.k.project(point)
	return UV{
		U: hu*p.bnu + hv*p.bnv + p.bnd,
		V: hu*p.cnu + hv*p.cnv + p.cnd,
	}
}

// IntersectPrimitive intersects the ray with the plane. Parallel rays never hit.
func (p *Plane) IntersectPrimitive(ray *core.Ray, primID int, state *IntersectionState) {
	dn := p.normal.Dot(ray.Direction)
	if dn == 0 {
		return
	}
	t := p.center.Subtract(ray.Origin).Dot(p.normal) / dn
	if ray.IsInside(t) {
		ray.SetMax(t)
		state.SetIntersection(0)
	}
}

// NumPrimitives returns 1: the plane is a single primitive
func (p *Plane) NumPrimitives() int {
	return 1
}

// PrimitiveBound returns 0; a plane has no finite extent
func (p *Plane) PrimitiveBound(primID, i int) float64 {
	return 0
}

// WorldBounds reports the plane as unbounded
func (p *Plane) WorldBounds(o2w core.Matrix4) (core.AABB, bool) {
	return core.NewEmptyAABB(), false
}

// PrepareShadingState fills in the hit point, the flat normal, UV and a
// shading frame around the normal
func (p *Plane) PrepareShadingState(state *ShadingState) {
	state.Init()
	state.Point = state.Ray.At(state.Ray.TMax)

	worldNormal := state.TransformNormalObjectToWorld(p.normal)
	state.Normal = worldNormal
	state.GeoNormal = worldNormal

	if state.Instance != nil {
		state.Shader = state.Instance.Shader(0)
		state.Modifier = state.Instance.Modifier(0)
	}

	state.UV = p.MapUV(state.TransformWorldToObject(state.Point))
	state.Basis = core.MakeFromW(worldNormal)
}
