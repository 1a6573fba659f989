package core

import "math"

// Lookup tables for decoding compressed unit vectors. Filled once in init
// and read-only afterwards.
var (
	cosTheta [256]float64
	sinTheta [256]float64
	cosPhi   [256]float64
	sinPhi   [256]float64
)

func init() {
	for i := 0; i < 256; i++ {
		angle := float64(i) * math.Pi / 256.0
		cosTheta[i] = math.Cos(angle)
		sinTheta[i] = math.Sin(angle)
		cosPhi[i] = math.Cos(2 * angle)
		sinPhi[i] = math.Sin(2 * angle)
	}
}

// Encode compresses a unit vector into 16 bits: 8 bits of elevation
// (acos z over [0, pi]) in the high byte and 8 bits of azimuth
// (atan2 y, x over [0, 2pi)) in the low byte. The encoding is lossy.
func (v Vec3) Encode() uint16 {
	z := max(-1, min(1, v.Z))
	theta := int(math.Acos(z) * (256.0 / math.Pi))
	if theta > 255 {
		theta = 255
	}
	phi := int(math.Atan2(v.Y, v.X) * (128.0 / math.Pi))
	if phi < 0 {
		phi += 256
	} else if phi > 255 {
		phi = 255
	}
	return uint16((theta&0xFF)<<8 | (phi & 0xFF))
}

// DecodeVec3 expands a code produced by Encode into an approximate unit vector
func DecodeVec3(code uint16) Vec3 {
	t := code >> 8
	p := code & 0xFF
	return Vec3{
		X: sinTheta[t] * cosPhi[p],
		Y: sinTheta[t] * sinPhi[p],
		Z: cosTheta[t],
	}
}
