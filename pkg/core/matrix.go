package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Matrix4 is an affine 4x4 transform. The bottom row is assumed to be
// (0, 0, 0, 1), so points are never divided by w.
type Matrix4 struct {
	m mgl64.Mat4
}

// IdentityMatrix returns the identity transform
func IdentityMatrix() Matrix4 {
	return Matrix4{m: mgl64.Ident4()}
}

// NewMatrix4 wraps an mgl64 matrix
func NewMatrix4(m mgl64.Mat4) Matrix4 {
	return Matrix4{m: m}
}

// TranslationMatrix returns a translation by (x, y, z)
func TranslationMatrix(x, y, z float64) Matrix4 {
	return Matrix4{m: mgl64.Translate3D(x, y, z)}
}

// ScaleMatrix returns a non-uniform scale
func ScaleMatrix(x, y, z float64) Matrix4 {
	return Matrix4{m: mgl64.Scale3D(x, y, z)}
}

// RotationMatrix returns a rotation of angle radians about axis
func RotationMatrix(axis Vec3, angle float64) Matrix4 {
	a := axis.Normalize()
	return Matrix4{m: mgl64.HomogRotate3D(angle, mgl64.Vec3{a.X, a.Y, a.Z})}
}

// LookAtMatrix returns the world-to-camera transform of a camera at eye
// looking at target. The camera looks down its -Z axis.
func LookAtMatrix(eye, target, up Vec3) Matrix4 {
	return Matrix4{m: mgl64.LookAtV(toMgl(eye), toMgl(target), toMgl(up))}
}

// Mat4 returns the underlying mgl64 matrix
func (a Matrix4) Mat4() mgl64.Mat4 {
	return a.m
}

// Multiply returns a × b, which applies b first
func (a Matrix4) Multiply(b Matrix4) Matrix4 {
	return Matrix4{m: a.m.Mul4(b.m)}
}

// Inverse returns the inverse transform and false if the matrix is singular
func (a Matrix4) Inverse() (Matrix4, bool) {
	if a.m.Det() == 0 {
		return Matrix4{}, false
	}
	return Matrix4{m: a.m.Inv()}, true
}

// IsIdentity reports whether every entry is within 1e-9 of the identity.
// The tolerance is absolute: mgl64's relative compares collapse to ~1e-18
// against the zero entries.
func (a Matrix4) IsIdentity() bool {
	return a.m.ApproxFuncEqual(mgl64.Ident4(), func(x, y float64) bool {
		return math.Abs(x-y) <= 1e-9
	})
}

// TransformP transforms a point
func (a Matrix4) TransformP(p Vec3) Vec3 {
	return fromMgl4(a.m.Mul4x1(mgl64.Vec4{p.X, p.Y, p.Z, 1}))
}

// TransformV transforms a direction (translation ignored)
func (a Matrix4) TransformV(v Vec3) Vec3 {
	return fromMgl4(a.m.Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0}))
}

// TransformTransposeV transforms a direction by the transpose of the
// matrix. Applied to an inverse transform it maps normals.
func (a Matrix4) TransformTransposeV(v Vec3) Vec3 {
	return fromMgl4(a.m.Transpose().Mul4x1(mgl64.Vec4{v.X, v.Y, v.Z, 0}))
}

func toMgl(v Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl4(v mgl64.Vec4) Vec3 {
	return Vec3{X: v[0], Y: v[1], Z: v[2]}
}
