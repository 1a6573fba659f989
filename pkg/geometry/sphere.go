package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/params"
)

// ErrInvalidRadius is returned for non-positive sphere radii
var ErrInvalidRadius = errors.New("sphere radius must be positive")

// Sphere represents a sphere shape
type Sphere struct {
	center core.Vec3
	radius float64
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64) *Sphere {
	return &Sphere{center: center, radius: radius}
}

// Center returns the object-space center
func (s *Sphere) Center() core.Vec3 { return s.center }

// Radius returns the sphere radius
func (s *Sphere) Radius() float64 { return s.radius }

// Update reads "center" and "radius"
func (s *Sphere) Update(pl *params.List) error {
	center, err := pl.GetPoint("center", s.center)
	if err != nil {
		return fmt.Errorf("sphere: %w", err)
	}
	radius, err := pl.GetFloat("radius", s.radius)
	if err != nil {
		return fmt.Errorf("sphere: %w", err)
	}
	if !(radius > 0) {
		return fmt.Errorf("sphere: %w: %g", ErrInvalidRadius, radius)
	}
	s.center = center
	s.radius = radius
	return nil
}

func (s *Sphere) NumPrimitives() int {
	return 1
}

func (s *Sphere) objectBounds() core.AABB {
	r := core.NewVec3(s.radius, s.radius, s.radius)
	return core.NewAABB(s.center.Subtract(r), s.center.Add(r))
}

// PrimitiveBound returns side i of the object-space bounds
func (s *Sphere) PrimitiveBound(primID, i int) float64 {
	return s.objectBounds().Bound(i)
}

// WorldBounds transforms the eight corners of the object-space box
func (s *Sphere) WorldBounds(o2w core.Matrix4) (core.AABB, bool) {
	local := s.objectBounds()
	box := core.NewEmptyAABB()
	for i := 0; i < 8; i++ {
		box.IncludePoint(o2w.TransformP(local.Corner(i)))
	}
	box.EnlargeUlps()
	return box, true
}

// IntersectPrimitive tests the ray against the sphere, nearest root first
func (s *Sphere) IntersectPrimitive(ray *core.Ray, primID int, state *IntersectionState) {
	oc := ray.Origin.Subtract(s.center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	halfB := oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.radius*s.radius

	discriminant := halfB*halfB - a*c
	if discriminant < 0 || a == 0 {
		return
	}
	sqrtD := math.Sqrt(discriminant)

	for _, root := range [2]float64{(-halfB - sqrtD) / a, (-halfB + sqrtD) / a} {
		if ray.IsInside(root) {
			ray.SetMax(root)
			state.SetIntersection(0)
			return
		}
	}
}

// PrepareShadingState fills in the point, the radial normal and spherical
// UV coordinates (longitude, latitude in [0, 1])
func (s *Sphere) PrepareShadingState(state *ShadingState) {
	state.Init()
	state.Point = state.Ray.At(state.Ray.TMax)

	local := state.TransformWorldToObject(state.Point).Subtract(s.center)
	worldNormal := state.TransformNormalObjectToWorld(local)
	state.Normal = worldNormal
	state.GeoNormal = worldNormal

	if state.Instance != nil {
		state.Shader = state.Instance.Shader(0)
		state.Modifier = state.Instance.Modifier(0)
	}

	n := local.Normalize()
	phi := math.Atan2(n.Y, n.X)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	state.UV = UV{
		U: phi / (2 * math.Pi),
		V: (math.Pi - math.Acos(max(-1, min(1, n.Z)))) / math.Pi,
	}
	state.Basis = core.MakeFromW(worldNormal)
}
