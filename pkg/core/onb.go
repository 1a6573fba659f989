package core

import "math"

// OrthoNormalBasis is a right-handed frame of unit vectors with U = V × W.
// Bases are values: flips and swaps return a new basis.
type OrthoNormalBasis struct {
	U, V, W Vec3
}

// MakeFromW builds a basis whose W axis points along w. The seed for V is
// taken perpendicular to w by zeroing w's smallest component, so it is
// never close to parallel with w.
func MakeFromW(w Vec3) OrthoNormalBasis {
	w = w.Normalize()
	ax, ay, az := math.Abs(w.X), math.Abs(w.Y), math.Abs(w.Z)

	var v Vec3
	switch {
	case ax < ay && ax < az:
		v = Vec3{0, w.Z, -w.Y}
	case ay < az:
		v = Vec3{w.Z, 0, -w.X}
	default:
		v = Vec3{w.Y, -w.X, 0}
	}
	v = v.Normalize()

	return OrthoNormalBasis{U: v.Cross(w), V: v, W: w}
}

// MakeFromWV builds a basis whose W axis points along w, with V as close as
// possible to the up hint v
func MakeFromWV(w, v Vec3) OrthoNormalBasis {
	w = w.Normalize()
	u := v.Cross(w).Normalize()
	return OrthoNormalBasis{U: u, V: w.Cross(u), W: w}
}

// Transform maps a vector from basis-local to ambient coordinates
func (b OrthoNormalBasis) Transform(a Vec3) Vec3 {
	return Vec3{
		X: a.X*b.U.X + a.Y*b.V.X + a.Z*b.W.X,
		Y: a.X*b.U.Y + a.Y*b.V.Y + a.Z*b.W.Y,
		Z: a.X*b.U.Z + a.Y*b.V.Z + a.Z*b.W.Z,
	}
}

// Untransform maps a vector from ambient to basis-local coordinates
func (b OrthoNormalBasis) Untransform(a Vec3) Vec3 {
	return Vec3{a.Dot(b.U), a.Dot(b.V), a.Dot(b.W)}
}

// UntransformX returns the local U coordinate of a
func (b OrthoNormalBasis) UntransformX(a Vec3) float64 { return a.Dot(b.U) }

// UntransformY returns the local V coordinate of a
func (b OrthoNormalBasis) UntransformY(a Vec3) float64 { return a.Dot(b.V) }

// UntransformZ returns the local W coordinate of a
func (b OrthoNormalBasis) UntransformZ(a Vec3) float64 { return a.Dot(b.W) }

func (b OrthoNormalBasis) FlipU() OrthoNormalBasis {
	b.U = b.U.Negate()
	return b
}

func (b OrthoNormalBasis) FlipV() OrthoNormalBasis {
	b.V = b.V.Negate()
	return b
}

func (b OrthoNormalBasis) FlipW() OrthoNormalBasis {
	b.W = b.W.Negate()
	return b
}

func (b OrthoNormalBasis) SwapUV() OrthoNormalBasis {
	b.U, b.V = b.V, b.U
	return b
}

func (b OrthoNormalBasis) SwapVW() OrthoNormalBasis {
	b.V, b.W = b.W, b.V
	return b
}

func (b OrthoNormalBasis) SwapWU() OrthoNormalBasis {
	b.W, b.U = b.U, b.W
	return b
}
