package listener

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned when the input is not valid JSON.
var ErrInvalidJSON = errors.New("invalid JSON")

// ErrUnsupportedPattern is returned when JSON holds a value that has no
// Pattern form, such as a boolean or an array.
var ErrUnsupportedPattern = errors.New("unsupported pattern value")

// ParsePattern reads a pattern from JSON. Strings and numbers become scalars,
// objects become Maps with their key order preserved, and a top-level null
// is the absent pattern.
//
// Example:
//
//	p, err := listener.ParsePattern([]byte(`{"cmd": "sum", "version": 2}`))
func ParsePattern(raw []byte) (Pattern, error) {
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	r := gjson.ParseBytes(raw)
	if r.Type == gjson.Null {
		return nil, nil
	}
	return fromResult(r, "")
}

// MustParsePattern is like ParsePattern but panics on error. Use it for
// patterns written into the source.
func MustParsePattern(s string) Pattern {
	p, err := ParsePattern([]byte(s))
	if err != nil {
		panic(fmt.Sprintf("listener: parse pattern %q: %v", s, err))
	}
	return p
}

func fromResult(r gjson.Result, path string) (Pattern, error) {
	switch {
	case r.Type == gjson.String:
		return String(r.Str), nil
	case r.Type == gjson.Number:
		return Number(r.Num), nil
	case r.IsObject():
		m := NewMap()
		var err error
		r.ForEach(func(k, v gjson.Result) bool {
			var p Pattern
			p, err = fromResult(v, join(path, k.Str))
			if err != nil {
				return false
			}
			m.set(k.Str, p)
			return true
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("%w: %s at %q", ErrUnsupportedPattern, describe(r), path)
	}
}

func describe(r gjson.Result) string {
	switch {
	case r.IsArray():
		return "array"
	case r.IsBool():
		return "boolean"
	case r.Type == gjson.Null:
		return "null"
	default:
		return r.Type.String()
	}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
