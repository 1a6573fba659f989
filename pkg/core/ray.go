package core

import "math"

// Ray represents a ray with an origin, a direction and the open interval
// (TMin, TMax) of parameters still considered valid
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64
}

// NewRay creates a new ray valid over (0, +Inf)
func NewRay(origin, direction Vec3) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: 0, TMax: math.Inf(1)}
}

// NewRaySegment creates a ray valid over (tMin, tMax)
func NewRaySegment(origin, direction Vec3, tMin, tMax float64) Ray {
	return Ray{Origin: origin, Direction: direction, TMin: tMin, TMax: tMax}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// IsInside reports whether t lies strictly inside the valid interval
func (r Ray) IsInside(t float64) bool {
	return r.TMin < t && t < r.TMax
}

// SetMax narrows the valid interval so that t becomes its upper end
func (r *Ray) SetMax(t float64) {
	r.TMax = t
}

// Transform returns the ray expressed in another space. The direction is not
// renormalized, so parameters along the ray stay comparable across spaces.
func (r Ray) Transform(m Matrix4) Ray {
	return Ray{
		Origin:    m.TransformP(r.Origin),
		Direction: m.TransformV(r.Direction),
		TMin:      r.TMin,
		TMax:      r.TMax,
	}
}
