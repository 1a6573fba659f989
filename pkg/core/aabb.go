package core

import (
	"fmt"
	"math"
)

// enlargeEpsilon is the minimum outward push applied by EnlargeUlps
const enlargeEpsilon = 1e-4

// AABB represents an axis-aligned bounding box. A box with Max < Min on
// any axis is empty.
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// NewEmptyAABB creates an empty box (Min = +Inf, Max = -Inf) that any
// inclusion will replace
func NewEmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewAABBFromPoint creates a degenerate box containing only p
func NewAABBFromPoint(p Vec3) AABB {
	return AABB{Min: p, Max: p}
}

// NewAABBFromPoints creates an AABB that bounds all given points. With no
// points the box is empty.
func NewAABBFromPoints(points ...Vec3) AABB {
	box := NewEmptyAABB()
	for _, point := range points {
		box.IncludePoint(point)
	}
	return box
}

// IncludePoint grows the box to contain p
func (aabb *AABB) IncludePoint(p Vec3) {
	aabb.Min.X = math.Min(aabb.Min.X, p.X)
	aabb.Min.Y = math.Min(aabb.Min.Y, p.Y)
	aabb.Min.Z = math.Min(aabb.Min.Z, p.Z)

	aabb.Max.X = math.Max(aabb.Max.X, p.X)
	aabb.Max.Y = math.Max(aabb.Max.Y, p.Y)
	aabb.Max.Z = math.Max(aabb.Max.Z, p.Z)
}

// IncludeBox grows the box to contain other. A nil box is ignored.
func (aabb *AABB) IncludeBox(other *AABB) {
	if other == nil {
		return
	}
	aabb.Min.X = math.Min(aabb.Min.X, other.Min.X)
	aabb.Min.Y = math.Min(aabb.Min.Y, other.Min.Y)
	aabb.Min.Z = math.Min(aabb.Min.Z, other.Min.Z)

	aabb.Max.X = math.Max(aabb.Max.X, other.Max.X)
	aabb.Max.Y = math.Max(aabb.Max.Y, other.Max.Y)
	aabb.Max.Z = math.Max(aabb.Max.Z, other.Max.Z)
}

// EnlargeUlps pushes every corner coordinate outward by the larger of a
// small epsilon and one ulp at that coordinate, so rays grazing a box built
// from transformed geometry are not lost to rounding. Empty boxes are left
// untouched.
func (aabb *AABB) EnlargeUlps() {
	if aabb.IsEmpty() {
		return
	}
	aabb.Min.X -= math.Max(enlargeEpsilon, ulp(aabb.Min.X))
	aabb.Min.Y -= math.Max(enlargeEpsilon, ulp(aabb.Min.Y))
	aabb.Min.Z -= math.Max(enlargeEpsilon, ulp(aabb.Min.Z))
	aabb.Max.X += math.Max(enlargeEpsilon, ulp(aabb.Max.X))
	aabb.Max.Y += math.Max(enlargeEpsilon, ulp(aabb.Max.Y))
	aabb.Max.Z += math.Max(enlargeEpsilon, ulp(aabb.Max.Z))
}

// ulp returns the distance from |x| to the next larger float64
func ulp(x float64) float64 {
	x = math.Abs(x)
	if math.IsInf(x, 0) {
		return x
	}
	return math.Nextafter(x, math.Inf(1)) - x
}

// IsEmpty reports whether Max < Min on any axis
func (aabb AABB) IsEmpty() bool {
	return aabb.Max.X < aabb.Min.X || aabb.Max.Y < aabb.Min.Y || aabb.Max.Z < aabb.Min.Z
}

// Extents returns Max - Min. Components are negative for empty boxes.
func (aabb AABB) Extents() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Area returns the surface area, treating negative extents as zero
func (aabb AABB) Area() float64 {
	w := aabb.Extents()
	ax, ay, az := math.Max(w.X, 0), math.Max(w.Y, 0), math.Max(w.Z, 0)
	return 2 * (ax*ay + ay*az + az*ax)
}

// Volume returns the volume, treating negative extents as zero
func (aabb AABB) Volume() float64 {
	w := aabb.Extents()
	return math.Max(w.X, 0) * math.Max(w.Y, 0) * math.Max(w.Z, 0)
}

// Corner returns one of the eight corners. Bit 0 of i selects Max.X,
// bit 1 Max.Y and bit 2 Max.Z; corner 0 is Min and corner 7 is Max.
func (aabb AABB) Corner(i int) Vec3 {
	c := aabb.Min
	if i&1 != 0 {
		c.X = aabb.Max.X
	}
	if i&2 != 0 {
		c.Y = aabb.Max.Y
	}
	if i&4 != 0 {
		c.Z = aabb.Max.Z
	}
	return c
}

// Bound returns side i of the box: 0/1 min/max X, 2/3 Y, 4/5 Z. Other
// indices return 0.
func (aabb AABB) Bound(i int) float64 {
	switch i {
	case 0:
		return aabb.Min.X
	case 1:
		return aabb.Max.X
	case 2:
		return aabb.Min.Y
	case 3:
		return aabb.Max.Y
	case 4:
		return aabb.Min.Z
	case 5:
		return aabb.Max.Z
	default:
		return 0
	}
}

// Intersects reports whether the closed volumes overlap on all three axes.
// A box nested inside another intersects it. A nil box never intersects.
func (aabb AABB) Intersects(other *AABB) bool {
	return other != nil &&
		aabb.Min.X <= other.Max.X && aabb.Max.X >= other.Min.X &&
		aabb.Min.Y <= other.Max.Y && aabb.Max.Y >= other.Min.Y &&
		aabb.Min.Z <= other.Max.Z && aabb.Max.Z >= other.Min.Z
}

// Contains reports whether p lies inside the closed box
func (aabb AABB) Contains(p Vec3) bool {
	return p.X >= aabb.Min.X && p.X <= aabb.Max.X &&
		p.Y >= aabb.Min.Y && p.Y <= aabb.Max.Y &&
		p.Z >= aabb.Min.Z && p.Z <= aabb.Max.Z
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	for axis := 0; axis < 3; axis++ {
		min := aabb.Min.Get(axis)
		max := aabb.Max.Get(axis)
		origin := ray.Origin.Get(axis)
		direction := ray.Direction.Get(axis)

		// Ray parallel to this slab
		if direction == 0 {
			if origin < min || origin > max {
				return false
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}

	return true
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	aabb.IncludeBox(&other)
	return aabb
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Extents()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}

func (aabb AABB) String() string {
	return fmt.Sprintf("%v to %v", aabb.Min, aabb.Max)
}
