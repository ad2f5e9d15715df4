package variant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariantNullIsDefaultAndDistinct(t *testing.T) {
	var zero Variant
	assert.True(t, zero.IsNull())
	assert.True(t, Null().IsNull())
	assert.False(t, String("").IsNull())
}

func TestVariantEqual(t *testing.T) {
	assert.True(t, Int(5).Equal(Int(5)))
	assert.False(t, Int(5).Equal(Int(6)))
	assert.False(t, Int(5).Equal(String("5")), "different kinds are never equal")
}

func TestVariantArrayFlattensNestedArrays(t *testing.T) {
	inner := Array(Int(1), Int(2))
	outer := Array(inner, Int(3))

	items, ok := outer.Items()
	assert.True(t, ok)
	assert.Len(t, items, 3, "Array is one level deep; nested arrays are flattened")
}

func TestVariantArrayEqualByElement(t *testing.T) {
	a := Array(Int(1), String("x"))
	b := Array(Int(1), String("x"))
	c := Array(Int(1), String("y"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestVariantStringRendersEachKind(t *testing.T) {
	assert.Equal(t, "null", Null().String())
	assert.Equal(t, "5", Int(5).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "(1,2)", PointValue(1, 2).String())
	assert.Equal(t, "[1,2]", Array(Int(1), Int(2)).String())
}
