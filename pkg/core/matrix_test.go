package core

import (
	"math"
	"testing"
)

func TestMatrix4_TransformP(t *testing.T) {
	tests := []struct {
		name     string
		m        Matrix4
		point    Vec3
		expected Vec3
	}{
		{"identity", IdentityMatrix(), NewVec3(1, 2, 3), NewVec3(1, 2, 3)},
		{"translation", TranslationMatrix(1, -2, 3), NewVec3(1, 1, 1), NewVec3(2, -1, 4)},
		{"scale", ScaleMatrix(2, 3, 4), NewVec3(1, 1, 1), NewVec3(2, 3, 4)},
		{"rotation about Z", RotationMatrix(NewVec3(0, 0, 1), math.Pi/2), NewVec3(1, 0, 0), NewVec3(0, 1, 0)},
		{"translate after scale", TranslationMatrix(1, 0, 0).Multiply(ScaleMatrix(2, 2, 2)), NewVec3(1, 1, 1), NewVec3(3, 2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.m.TransformP(tt.point)
			if result.Subtract(tt.expected).Length() > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestMatrix4_TransformVIgnoresTranslation(t *testing.T) {
	m := TranslationMatrix(5, 5, 5)
	v := NewVec3(0, 1, 0)
	if r := m.TransformV(v); r != v {
		t.Errorf("Expected direction unchanged, got %v", r)
	}
}

func TestMatrix4_Inverse(t *testing.T) {
	m := TranslationMatrix(1, 2, 3).Multiply(RotationMatrix(NewVec3(1, 1, 0), 0.7)).Multiply(ScaleMatrix(2, 1, 0.5))
	inv, ok := m.Inverse()
	if !ok {
		t.Fatal("Expected invertible matrix")
	}
	if !m.Multiply(inv).IsIdentity() {
		t.Errorf("m * inv(m) is not identity: %v", m.Multiply(inv).Mat4())
	}

	p := NewVec3(-4, 0.5, 9)
	if back := inv.TransformP(m.TransformP(p)); back.Subtract(p).Length() > 1e-9 {
		t.Errorf("Expected %v after round trip, got %v", p, back)
	}

	if _, ok := ScaleMatrix(1, 0, 1).Inverse(); ok {
		t.Error("Expected singular matrix to report no inverse")
	}
}

func TestMatrix4_IsIdentity(t *testing.T) {
	rot := RotationMatrix(NewVec3(1, 1, 0), 0.7)
	rotInv, _ := rot.Inverse()

	tests := []struct {
		name     string
		m        Matrix4
		expected bool
	}{
		{"identity", IdentityMatrix(), true},
		{"rotation times its inverse", rot.Multiply(rotInv), true},
		{"rotation by a full turn", RotationMatrix(NewVec3(0, 0, 1), 2*math.Pi), true},
		{"small translation", TranslationMatrix(1e-6, 0, 0), false},
		{"small scale", ScaleMatrix(1.001, 1, 1), false},
		{"rotation", rot, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.IsIdentity(); got != tt.expected {
				t.Errorf("Expected IsIdentity() = %v for %v", tt.expected, tt.m.Mat4())
			}
		})
	}
}

func TestMatrix4_NormalTransform(t *testing.T) {
	// Non-uniform scale: normals map through the inverse transpose
	o2w := ScaleMatrix(2, 1, 1)
	w2o, _ := o2w.Inverse()

	n := NewVec3(1, 1, 0).Normalize()
	tangent := NewVec3(1, -1, 0)

	worldN := w2o.TransformTransposeV(n)
	worldT := o2w.TransformV(tangent)
	if math.Abs(worldN.Dot(worldT)) > 1e-12 {
		t.Errorf("Transformed normal %v not perpendicular to transformed tangent %v", worldN, worldT)
	}
}

func TestLookAtMatrix(t *testing.T) {
	w2c := LookAtMatrix(NewVec3(0, 0, 5), NewVec3(0, 0, 0), NewVec3(0, 1, 0))

	// Camera sits at the origin of camera space
	if p := w2c.TransformP(NewVec3(0, 0, 5)); p.Length() > 1e-9 {
		t.Errorf("Expected eye at camera origin, got %v", p)
	}
	// Target lies on -Z
	if p := w2c.TransformP(NewVec3(0, 0, 0)); p.Subtract(NewVec3(0, 0, -5)).Length() > 1e-9 {
		t.Errorf("Expected target at (0,0,-5), got %v", p)
	}
}

func TestRay_IntervalAndTransform(t *testing.T) {
	r := NewRay(NewVec3(0, 0, 0), NewVec3(0, 0, 2))
	if r.IsInside(0) || !r.IsInside(1) {
		t.Error("Expected open interval (0, +Inf)")
	}
	r.SetMax(3)
	if r.IsInside(3) || !r.IsInside(2.9) {
		t.Error("Expected SetMax to close the interval at 3")
	}

	moved := r.Transform(TranslationMatrix(1, 0, 0))
	if moved.TMax != 3 || moved.Origin != NewVec3(1, 0, 0) || moved.Direction != NewVec3(0, 0, 2) {
		t.Errorf("Unexpected transformed ray %+v", moved)
	}
	if p := moved.At(1.5); p != NewVec3(1, 0, 3) {
		t.Errorf("Expected (1,0,3), got %v", p)
	}
}
