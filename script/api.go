package script

import (
	"strings"

	"github.com/d5/tengo/v2"
)

// API assembles an immutable function table to hand to Runtime.Handlers.
func API(values map[string]tengo.Object) *tengo.ImmutableMap {
	if values == nil {
		values = map[string]tengo.Object{}
	}
	return &tengo.ImmutableMap{Value: values}
}

// Func wraps a Go callback for use inside an API table.
func Func(name string, fn tengo.CallableFunc) tengo.Object {
	return &tengo.UserFunction{Name: name, Value: fn}
}

// Vec2 packs a coordinate pair the way scripts expect: a [x, y] array.
func Vec2(x, y float64) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{
		&tengo.Float{Value: x},
		&tengo.Float{Value: y},
	}}
}

// ArgString coerces a positional script argument to a trimmed string,
// returning "" when absent.
func ArgString(args []tengo.Object, i int) string {
	if i >= len(args) || args[i] == nil {
		return ""
	}
	if s, ok := args[i].(*tengo.String); ok {
		return s.Value
	}
	return strings.Trim(args[i].String(), "\"")
}

// ArgFloat coerces a positional script argument to a float64, returning 0
// when absent or non-numeric.
func ArgFloat(args []tengo.Object, i int) float64 {
	if i >= len(args) {
		return 0
	}
	switch v := args[i].(type) {
	case *tengo.Float:
		return v.Value
	case *tengo.Int:
		return float64(v.Value)
	default:
		return 0
	}
}
