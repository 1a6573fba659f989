package geometry

import (
	"github.com/df07/go-raytracer-kernel/pkg/core"
)

// IntersectionState records the nearest hit found while tracing one ray
type IntersectionState struct {
	Instance *Instance // Instance owning the hit primitive
	PrimID   int       // Primitive identifier within the instance
	U, V     float64   // Primitive-specific hit coordinates (barycentrics for triangles)

	current *Instance
	hit     bool
}

// SetIntersection records a hit on primID of the instance being tested
func (s *IntersectionState) SetIntersection(primID int) {
	s.SetIntersectionUV(primID, 0, 0)
}

// SetIntersectionUV records a hit with primitive-specific coordinates
func (s *IntersectionState) SetIntersectionUV(primID int, u, v float64) {
	s.Instance = s.current
	s.PrimID = primID
	s.U = u
	s.V = v
	s.hit = true
}

// Hit reports whether any intersection was recorded
func (s *IntersectionState) Hit() bool {
	return s.hit
}

// UV is a surface parameterization coordinate
type UV struct {
	U, V float64
}

// ShadingState describes a single ray/surface interaction. The primitive
// fills in the geometric fields in PrepareShadingState; shaders read them.
type ShadingState struct {
	Ray       core.Ray              // World-space ray, TMax at the hit
	Instance  *Instance             // Instance that was hit
	PrimID    int                   // Hit primitive
	HitU      float64               // First primitive-specific hit coordinate
	HitV      float64               // Second primitive-specific hit coordinate
	Point     core.Vec3             // World-space hit point
	Normal    core.Vec3             // Shading normal
	GeoNormal core.Vec3             // Geometric normal
	UV        UV                    // Surface parameterization
	Basis     core.OrthoNormalBasis // Local shading frame
	Shader    Shader                // Bound shader
	Modifier  Modifier              // Bound modifier, may be nil

	worldToCamera core.Matrix4
}

// NewShadingState creates the shading state for a hit recorded in istate.
// worldToCamera is the transform of the camera the ray was traced from.
func NewShadingState(ray core.Ray, istate *IntersectionState, worldToCamera core.Matrix4) *ShadingState {
	return &ShadingState{
		Ray:           ray,
		Instance:      istate.Instance,
		PrimID:        istate.PrimID,
		HitU:          istate.U,
		HitV:          istate.V,
		worldToCamera: worldToCamera,
	}
}

// Init clears every field a primitive is expected to fill in
func (s *ShadingState) Init() {
	s.Point = core.Vec3{}
	s.Normal = core.Vec3{}
	s.GeoNormal = core.Vec3{}
	s.UV = UV{}
	s.Basis = core.OrthoNormalBasis{}
	s.Shader = nil
	s.Modifier = nil
}

// Prepare asks the hit primitive to fill in the state
func (s *ShadingState) Prepare() {
	if s.Instance == nil {
		return
	}
	s.Instance.Geometry.PrepareShadingState(s)
}

// Shade applies the modifier then returns the shader's radiance. Without a
// shader the sample is black.
func (s *ShadingState) Shade() core.Vec3 {
	if s.Modifier != nil {
		s.Modifier.Modify(s)
	}
	if s.Shader == nil {
		return core.Vec3{}
	}
	return s.Shader.Radiance(s)
}

// TransformNormalObjectToWorld maps an object-space normal to a unit
// world-space normal
func (s *ShadingState) TransformNormalObjectToWorld(n core.Vec3) core.Vec3 {
	if s.Instance == nil {
		return n
	}
	return s.Instance.w2o.TransformTransposeV(n).Normalize()
}

// TransformObjectToWorld maps an object-space point to world space
func (s *ShadingState) TransformObjectToWorld(p core.Vec3) core.Vec3 {
	if s.Instance == nil {
		return p
	}
	return s.Instance.o2w.TransformP(p)
}

// TransformWorldToObject maps a world-space point to object space
func (s *ShadingState) TransformWorldToObject(p core.Vec3) core.Vec3 {
	if s.Instance == nil {
		return p
	}
	return s.Instance.w2o.TransformP(p)
}

// WorldToCamera returns the camera transform the state was created with
func (s *ShadingState) WorldToCamera() core.Matrix4 {
	return s.worldToCamera
}

// TrianglePoints returns the object-space vertices of the hit triangle.
// ok is false when the hit geometry is not triangulated.
func (s *ShadingState) TrianglePoints() (points [3]core.Vec3, ok bool) {
	if s.Instance == nil {
		return points, false
	}
	src, isTriangles := s.Instance.Geometry.(TriangleSource)
	if !isTriangles {
		return points, false
	}
	return src.TrianglePoints(s.PrimID)
}
