// Package params holds the typed named options used to (re)configure
// primitives and shaders. A key that is absent leaves the target's previous
// value in place, so configuration can be applied incrementally.
package params

import (
	"errors"
	"fmt"

	"github.com/df07/go-raytracer-kernel/pkg/core"
)

// ErrTypeMismatch is returned when a key exists with a different type than requested
var ErrTypeMismatch = errors.New("parameter type mismatch")

// Type identifies the kind of value stored under a key
type Type int

const (
	TypePoint Type = iota
	TypeVector
	TypeColor
	TypeFloat
	TypeInt
	TypeFloatArray
	TypeIntArray
)

func (t Type) String() string {
	switch t {
	case TypePoint:
		return "point"
	case TypeVector:
		return "vector"
	case TypeColor:
		return "color"
	case TypeFloat:
		return "float"
	case TypeInt:
		return "int"
	case TypeFloatArray:
		return "float[]"
	case TypeIntArray:
		return "int[]"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

type param struct {
	typ    Type
	vec    core.Vec3
	float  float64
	int    int
	floats []float64
	ints   []int
}

// Configurable is implemented by objects that read their settings from a List
type Configurable interface {
	Update(pl *List) error
}

// List is a set of named, typed options. The zero value is ready to use and
// a nil *List behaves as an empty list.
type List struct {
	params map[string]param
}

// NewList creates an empty parameter list
func NewList() *List {
	return &List{params: make(map[string]param)}
}

func (pl *List) add(name string, p param) *List {
	if pl.params == nil {
		pl.params = make(map[string]param)
	}
	pl.params[name] = p
	return pl
}

// AddPoint stores a point. Add methods return the list for chaining.
func (pl *List) AddPoint(name string, p core.Vec3) *List {
	return pl.add(name, param{typ: TypePoint, vec: p})
}

func (pl *List) AddVector(name string, v core.Vec3) *List {
	return pl.add(name, param{typ: TypeVector, vec: v})
}

func (pl *List) AddColor(name string, c core.Vec3) *List {
	return pl.add(name, param{typ: TypeColor, vec: c})
}

func (pl *List) AddFloat(name string, f float64) *List {
	return pl.add(name, param{typ: TypeFloat, float: f})
}

func (pl *List) AddInt(name string, i int) *List {
	return pl.add(name, param{typ: TypeInt, int: i})
}

func (pl *List) AddFloatArray(name string, values []float64) *List {
	return pl.add(name, param{typ: TypeFloatArray, floats: append([]float64(nil), values...)})
}

func (pl *List) AddIntArray(name string, values []int) *List {
	return pl.add(name, param{typ: TypeIntArray, ints: append([]int(nil), values...)})
}

// Has reports whether name is present with any type
func (pl *List) Has(name string) bool {
	if pl == nil {
		return false
	}
	_, ok := pl.params[name]
	return ok
}

// Len returns the number of stored options
func (pl *List) Len() int {
	if pl == nil {
		return 0
	}
	return len(pl.params)
}

func (pl *List) lookup(name string, typ Type) (param, bool, error) {
	if pl == nil {
		return param{}, false, nil
	}
	p, ok := pl.params[name]
	if !ok {
		return param{}, false, nil
	}
	if p.typ != typ {
		return param{}, false, fmt.Errorf("%q: got %v, want %v: %w", name, p.typ, typ, ErrTypeMismatch)
	}
	return p, true, nil
}

// Point returns the point stored under name and whether it was present
func (pl *List) Point(name string) (core.Vec3, bool, error) {
	p, ok, err := pl.lookup(name, TypePoint)
	return p.vec, ok, err
}

// GetPoint returns the point stored under name, or def when absent
func (pl *List) GetPoint(name string, def core.Vec3) (core.Vec3, error) {
	v, ok, err := pl.Point(name)
	if !ok {
		return def, err
	}
	return v, nil
}

// GetVector returns the vector stored under name, or def when absent
func (pl *List) GetVector(name string, def core.Vec3) (core.Vec3, error) {
	p, ok, err := pl.lookup(name, TypeVector)
	if !ok {
		return def, err
	}
	return p.vec, nil
}

// GetColor returns the color stored under name, or def when absent
func (pl *List) GetColor(name string, def core.Vec3) (core.Vec3, error) {
	p, ok, err := pl.lookup(name, TypeColor)
	if !ok {
		return def, err
	}
	return p.vec, nil
}

// GetFloat returns the float stored under name, or def when absent. An int
// value is accepted and converted.
func (pl *List) GetFloat(name string, def float64) (float64, error) {
	if p, ok, _ := pl.lookup(name, TypeInt); ok {
		return float64(p.int), nil
	}
	p, ok, err := pl.lookup(name, TypeFloat)
	if !ok {
		return def, err
	}
	return p.float, nil
}

// GetInt returns the int stored under name, or def when absent
func (pl *List) GetInt(name string, def int) (int, error) {
	p, ok, err := pl.lookup(name, TypeInt)
	if !ok {
		return def, err
	}
	return p.int, nil
}

// FloatArray returns a copy of the float array stored under name
func (pl *List) FloatArray(name string) ([]float64, bool, error) {
	p, ok, err := pl.lookup(name, TypeFloatArray)
	if !ok {
		return nil, false, err
	}
	return append([]float64(nil), p.floats...), true, nil
}

// IntArray returns a copy of the int array stored under name
func (pl *List) IntArray(name string) ([]int, bool, error) {
	p, ok, err := pl.lookup(name, TypeIntArray)
	if !ok {
		return nil, false, err
	}
	return append([]int(nil), p.ints...), true, nil
}
