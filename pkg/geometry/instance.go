package geometry

import (
	"errors"

	"github.com/df07/go-raytracer-kernel/pkg/core"
)

// ErrSingularTransform is returned for object-to-world matrices with no inverse
var ErrSingularTransform = errors.New("instance transform is not invertible")

// Instance places a primitive list in the world and binds its shaders and
// modifiers. Slot 0 is used for surfaces that do not select per primitive.
type Instance struct {
	Geometry  PrimitiveList
	Shaders   []Shader
	Modifiers []Modifier

	o2w core.Matrix4
	w2o core.Matrix4
}

// NewInstance creates an instance with an identity transform
func NewInstance(geometry PrimitiveList, shaders ...Shader) *Instance {
	return &Instance{
		Geometry: geometry,
		Shaders:  shaders,
		o2w:      core.IdentityMatrix(),
		w2o:      core.IdentityMatrix(),
	}
}

// SetTransform sets the object-to-world matrix
func (i *Instance) SetTransform(o2w core.Matrix4) error {
	w2o, ok := o2w.Inverse()
	if !ok {
		return ErrSingularTransform
	}
	i.o2w = o2w
	i.w2o = w2o
	return nil
}

// ObjectToWorld returns the object-to-world matrix
func (i *Instance) ObjectToWorld() core.Matrix4 { return i.o2w }

// WorldToObject returns the world-to-object matrix
func (i *Instance) WorldToObject() core.Matrix4 { return i.w2o }

// Shader returns shader slot n, or nil when unset
func (i *Instance) Shader(n int) Shader {
	if n < 0 || n >= len(i.Shaders) {
		return nil
	}
	return i.Shaders[n]
}

// Modifier returns modifier slot n, or nil when unset
func (i *Instance) Modifier(n int) Modifier {
	if n < 0 || n >= len(i.Modifiers) {
		return nil
	}
	return i.Modifiers[n]
}

// WorldBounds returns the instance bounds; ok is false for unbounded geometry
func (i *Instance) WorldBounds() (core.AABB, bool) {
	return i.Geometry.WorldBounds(i.o2w)
}

// Intersect tests every primitive of the instance. The ray is moved into
// object space; since the direction is not renormalized, the narrowed TMax
// is valid in world space as well.
func (i *Instance) Intersect(ray *core.Ray, state *IntersectionState) {
	local := ray.Transform(i.w2o)
	state.current = i
	for id := 0; id < i.Geometry.NumPrimitives(); id++ {
		i.Geometry.IntersectPrimitive(&local, id, state)
	}
	state.current = nil
	ray.TMax = local.TMax
}
