package variant

import "fmt"

// FromGo coerces a raw Go value into a Variant, the way a foreign-loader
// shim turns untyped import data into attribute values. It is the coercion
// chokepoint behind TransientFrame.CreateFromValues and
// TransientObject.SetAttributeValue, so every untyped value entering the
// engine is normalized the same way.
func FromGo(v interface{}) Variant {
	switch val := v.(type) {
	case nil:
		return Null()
	case Variant:
		return val
	case string:
		return String(val)
	case bool:
		return Bool(val)
	case int:
		return Int(int64(val))
	case int8:
		return Int(int64(val))
	case int16:
		return Int(int64(val))
	case int32:
		return Int(int64(val))
	case int64:
		return Int(val)
	case uint:
		return Int(int64(val))
	case uint8:
		return Int(int64(val))
	case uint16:
		return Int(int64(val))
	case uint32:
		return Int(int64(val))
	case uint64:
		return Int(int64(val))
	case float32:
		return Float(float64(val))
	case float64:
		return Float(val)
	case Point:
		return PointValue(val.X, val.Y)
	case []interface{}:
		items := make([]Variant, len(val))
		for i, it := range val {
			items[i] = FromGo(it)
		}
		return Array(items...)
	default:
		return String(fmt.Sprintf("%v", val))
	}
}

// FromGoMap coerces every value of a raw attribute map through FromGo.
func FromGoMap(m map[string]interface{}) map[string]Variant {
	if m == nil {
		return nil
	}
	out := make(map[string]Variant, len(m))
	for k, v := range m {
		out[k] = FromGo(v)
	}
	return out
}
