// Package variant implements the scalar value type used for object
// attributes: a tagged atom (string, int, float, bool, point) or an array of
// atoms.
package variant

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind tags the underlying representation carried by a Variant.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindPoint
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindPoint:
		return "point"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Point is the atom used for 2D coordinate attributes.
type Point struct {
	X, Y float64
}

// Variant is an atom (string | int | float | bool | point) or an array of
// atoms. The zero value is the null variant.
type Variant struct {
	kind  Kind
	str   string
	i     int64
	f     float64
	b     bool
	pt    Point
	items []Variant
}

// Null returns the null variant.
func Null() Variant { return Variant{kind: KindNull} }

// String wraps a string atom.
func String(s string) Variant { return Variant{kind: KindString, str: s} }

// Int wraps an integer atom.
func Int(i int64) Variant { return Variant{kind: KindInt, i: i} }

// Float wraps a floating-point atom.
func Float(f float64) Variant { return Variant{kind: KindFloat, f: f} }

// Bool wraps a boolean atom.
func Bool(b bool) Variant { return Variant{kind: KindBool, b: b} }

// PointValue wraps a point atom.
func PointValue(x, y float64) Variant { return Variant{kind: KindPoint, pt: Point{X: x, Y: y}} }

// Array wraps a sequence of atoms. Passing array-kind items is a programming
// error (arrays are one level deep); they are flattened defensively.
func Array(items ...Variant) Variant {
	flat := make([]Variant, 0, len(items))
	for _, it := range items {
		if it.kind == KindArray {
			flat = append(flat, it.items...)
			continue
		}
		flat = append(flat, it)
	}
	return Variant{kind: KindArray, items: flat}
}

// Kind returns the tag of the variant.
func (v Variant) Kind() Kind { return v.kind }

// IsNull reports whether v carries no value.
func (v Variant) IsNull() bool { return v.kind == KindNull }

// IsArray reports whether v is an array of atoms.
func (v Variant) IsArray() bool { return v.kind == KindArray }

// AsString returns the string atom, if v holds one.
func (v Variant) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsInt returns the int atom, if v holds one.
func (v Variant) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// AsFloat returns the float atom, if v holds one.
func (v Variant) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return v.f, true
}

// AsBool returns the bool atom, if v holds one.
func (v Variant) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsPoint returns the point atom, if v holds one.
func (v Variant) AsPoint() (Point, bool) {
	if v.kind != KindPoint {
		return Point{}, false
	}
	return v.pt, true
}

// Items returns the array's atoms, if v is an array.
func (v Variant) Items() ([]Variant, bool) {
	if v.kind != KindArray {
		return nil, false
	}
	out := make([]Variant, len(v.items))
	copy(out, v.items)
	return out, true
}

// Equal compares two variants element-by-element (arrays) or by value (atoms).
func (v Variant) Equal(other Variant) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindInt:
		return v.i == other.i
	case KindFloat:
		return v.f == other.f
	case KindBool:
		return v.b == other.b
	case KindPoint:
		return v.pt == other.pt
	case KindArray:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// String renders the variant for diagnostics and content hashing.
func (v Variant) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindPoint:
		return fmt.Sprintf("(%g,%g)", v.pt.X, v.pt.Y)
	case KindArray:
		parts := make([]string, len(v.items))
		for i, it := range v.items {
			parts[i] = it.String()
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return ""
	}
}
