package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/params"
)

// ErrInvalidMesh is returned for malformed vertex or index data
var ErrInvalidMesh = errors.New("invalid triangle mesh")

// TriangleMesh is a list of flat-shaded triangles sharing a vertex array
type TriangleMesh struct {
	points    []core.Vec3
	triangles []int
}

// NewTriangleMesh creates a mesh from vertices and face indices (each group
// of 3 indices forms a triangle)
func NewTriangleMesh(vertices []core.Vec3, faces []int) (*TriangleMesh, error) {
	m := &TriangleMesh{}
	if err := m.set(vertices, faces); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *TriangleMesh) set(vertices []core.Vec3, faces []int) error {
	if len(faces)%3 != 0 {
		return fmt.Errorf("%w: %d face indices is not a multiple of 3", ErrInvalidMesh, len(faces))
	}
	for _, idx := range faces {
		if idx < 0 || idx >= len(vertices) {
			return fmt.Errorf("%w: face index %d out of range [0, %d)", ErrInvalidMesh, idx, len(vertices))
		}
	}
	m.points = append([]core.Vec3(nil), vertices...)
	m.triangles = append([]int(nil), faces...)
	return nil
}

// Update reads "points" (xyz triples) and "triangles". A key left out keeps
// the current data; on error the mesh is unchanged.
func (m *TriangleMesh) Update(pl *params.List) error {
	vertices := m.points
	coords, ok, err := pl.FloatArray("points")
	if err != nil {
		return fmt.Errorf("triangle mesh: %w", err)
	}
	if ok {
		if len(coords)%3 != 0 {
			return fmt.Errorf("triangle mesh: %w: %d coordinates is not a multiple of 3", ErrInvalidMesh, len(coords))
		}
		vertices = make([]core.Vec3, len(coords)/3)
		for i := range vertices {
			vertices[i] = core.NewVec3(coords[3*i], coords[3*i+1], coords[3*i+2])
		}
	}

	faces := m.triangles
	if tris, ok, err := pl.IntArray("triangles"); err != nil {
		return fmt.Errorf("triangle mesh: %w", err)
	} else if ok {
		faces = tris
	}

	if err := m.set(vertices, faces); err != nil {
		return fmt.Errorf("triangle mesh: %w", err)
	}
	return nil
}

// NumPrimitives returns the number of triangles
func (m *TriangleMesh) NumPrimitives() int {
	return len(m.triangles) / 3
}

// TrianglePoints returns the object-space vertices of triangle primID
func (m *TriangleMesh) TrianglePoints(primID int) ([3]core.Vec3, bool) {
	if primID < 0 || primID >= m.NumPrimitives() {
		return [3]core.Vec3{}, false
	}
	i := 3 * primID
	return [3]core.Vec3{
		m.points[m.triangles[i]],
		m.points[m.triangles[i+1]],
		m.points[m.triangles[i+2]],
	}, true
}

// PrimitiveBound returns side i of the object-space bounds of one triangle
func (m *TriangleMesh) PrimitiveBound(primID, i int) float64 {
	p, ok := m.TrianglePoints(primID)
	if !ok {
		return 0
	}
	return core.NewAABBFromPoints(p[0], p[1], p[2]).Bound(i)
}

// WorldBounds returns the bounds of every transformed vertex, inflated to
// absorb rounding in the transform
func (m *TriangleMesh) WorldBounds(o2w core.Matrix4) (core.AABB, bool) {
	box := core.NewEmptyAABB()
	for _, p := range m.points {
		box.IncludePoint(o2w.TransformP(p))
	}
	box.EnlargeUlps()
	return box, true
}

// IntersectPrimitive tests one triangle using the Möller-Trumbore algorithm
func (m *TriangleMesh) IntersectPrimitive(ray *core.Ray, primID int, state *IntersectionState) {
	const epsilon = 1e-12

	p, ok := m.TrianglePoints(primID)
	if !ok {
		return
	}

	edge1 := p[1].Subtract(p[0])
	edge2 := p[2].Subtract(p[0])

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)
	// Ray lies in the plane of the triangle
	if a > -epsilon && a < epsilon {
		return
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(p[0])
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return
	}

	t := f * edge2.Dot(q)
	if ray.IsInside(t) {
		ray.SetMax(t)
		state.SetIntersectionUV(primID, u, v)
	}
}

// PrepareShadingState fills in the hit point and the flat triangle normal.
// Without texture coordinates the barycentrics are used as UV.
func (m *TriangleMesh) PrepareShadingState(state *ShadingState) {
	state.Init()
	p, ok := m.TrianglePoints(state.PrimID)
	if !ok {
		return
	}
	state.Point = state.Ray.At(state.Ray.TMax)

	ng := p[1].Subtract(p[0]).Cross(p[2].Subtract(p[0]))
	worldNormal := state.TransformNormalObjectToWorld(ng)
	state.Normal = worldNormal
	state.GeoNormal = worldNormal

	if state.Instance != nil {
		state.Shader = state.Instance.Shader(0)
		state.Modifier = state.Instance.Modifier(0)
	}

	state.UV = UV{U: state.HitU, V: state.HitV}
	state.Basis = core.MakeFromW(worldNormal)
}
