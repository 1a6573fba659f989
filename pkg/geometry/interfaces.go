package geometry

import (
	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/params"
)

// PrimitiveList is a surface made of one or more primitives, described in
// object space. Implementations must narrow the ray interval on every
// accepted hit so that the nearest hit wins.
type PrimitiveList interface {
	params.Configurable

	// WorldBounds returns the world-space bounds of all primitives under
	// o2w. ok is false when the surface is unbounded and must be tested
	// exhaustively instead of through a spatial index.
	WorldBounds(o2w core.Matrix4) (box core.AABB, ok bool)

	// NumPrimitives returns the number of primitives in the list
	NumPrimitives() int

	// PrimitiveBound returns side i (0..5 = min/max X, Y, Z) of a
	// primitive's object-space bounds
	PrimitiveBound(primID, i int) float64

	// IntersectPrimitive tests one primitive. On a hit inside the ray's
	// valid interval it calls ray.SetMax and records the hit in state.
	IntersectPrimitive(ray *core.Ray, primID int, state *IntersectionState)

	// PrepareShadingState fills in position, normals, UV and basis for the
	// hit recorded in state
	PrepareShadingState(state *ShadingState)
}

// TriangleSource is implemented by primitive lists that can report the
// vertices of a hit triangle
type TriangleSource interface {
	TrianglePoints(primID int) ([3]core.Vec3, bool)
}

// Shader computes the radiance of a shading sample
type Shader interface {
	Radiance(state *ShadingState) core.Vec3
}

// Modifier perturbs a shading state (bump or normal mapping) before shading
type Modifier interface {
	Modify(state *ShadingState)
}
