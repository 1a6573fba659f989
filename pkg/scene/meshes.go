package scene

import (
	"math"

	"github.com/df07/go-raytracer-kernel/pkg/core"
	"github.com/df07/go-raytracer-kernel/pkg/geometry"
	"github.com/df07/go-raytracer-kernel/pkg/params"
)

// icosahedronParams describes a regular icosahedron with circumradius 1
func icosahedronParams() *params.List {
	t := (1 + math.Sqrt(5)) / 2
	s := 1 / math.Sqrt(1+t*t)
	a, b := s, t*s

	points := []float64{
		-a, b, 0, a, b, 0, -a, -b, 0, a, -b, 0,
		0, -a, b, 0, a, b, 0, -a, -b, 0, a, -b,
		b, 0, -a, b, 0, a, -b, 0, -a, -b, 0, a,
	}
	triangles := []int{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return params.NewList().
		AddFloatArray("points", points).
		AddIntArray("triangles", triangles)
}

// cubeParams describes the cube [-1,1]^3 split into 12 triangles
func cubeParams() *params.List {
	points := []float64{
		-1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
		-1, -1, 1, 1, -1, 1, 1, 1, 1, -1, 1, 1,
	}
	triangles := []int{
		0, 2, 1, 0, 3, 2, // back
		4, 5, 6, 4, 6, 7, // front
		0, 1, 5, 0, 5, 4, // bottom
		3, 7, 6, 3, 6, 2, // top
		0, 4, 7, 0, 7, 3, // left
		1, 2, 6, 1, 6, 5, // right
	}
	return params.NewList().
		AddFloatArray("points", points).
		AddIntArray("triangles", triangles)
}

// newMesh builds a triangle mesh from a parameter list
func newMesh(pl *params.List) (*geometry.TriangleMesh, error) {
	mesh, err := geometry.NewTriangleMesh(nil, nil)
	if err != nil {
		return nil, err
	}
	if err := mesh.Update(pl); err != nil {
		return nil, err
	}
	return mesh, nil
}

// placed returns an instance with o2w = translate(at) · rotate(axis, angle) · scale(size)
func placed(geom geometry.PrimitiveList, at core.Vec3, axis core.Vec3, angle, size float64, shaders ...geometry.Shader) (*geometry.Instance, error) {
	inst := geometry.NewInstance(geom, shaders...)
	o2w := core.TranslationMatrix(at.X, at.Y, at.Z).
		Multiply(core.RotationMatrix(axis, angle)).
		Multiply(core.ScaleMatrix(size, size, size))
	if err := inst.SetTransform(o2w); err != nil {
		return nil, err
	}
	return inst, nil
}
