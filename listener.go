package listener

import (
	"fmt"
	"reflect"
	"sort"
)

// HandlerType tells how a handler answers the messages it receives.
type HandlerType int

const (
	// RequestResponse handlers produce a reply for every message.
	RequestResponse HandlerType = iota + 1

	// Event handlers consume messages without replying (fire-and-forget).
	Event
)

func (h HandlerType) String() string {
	switch h {
	case RequestResponse:
		return "request-response"
	case Event:
		return "event"
	default:
		return fmt.Sprintf("HandlerType(%d)", int(h))
	}
}

// MethodDescription describes one handler method of a controller.
//
// Descriptions are built fresh on each exploration and never modified
// afterwards.
type MethodDescription struct {
	// MethodKey is the method name, unique within the controller type.
	MethodKey string

	// TargetCallback is the method expression taken from the controller's
	// method set; its first argument is the receiver. The description only
	// borrows it.
	TargetCallback reflect.Value

	// Pattern is the resolved routing pattern. After Explore it has the
	// controller pattern merged in; from ExploreMethodMetadata it is the
	// method's own declaration. It may be nil.
	Pattern Pattern

	// IsEventHandler is true for event handlers and false for everything
	// else, including unrecognised handler types.
	IsEventHandler bool
}

// ClassDescription describes the pattern declared on a controller type.
type ClassDescription struct {
	// Pattern is nil when the type declares no pattern, otherwise a Map
	// holding the declared value under ControllerKey.
	Pattern *Map
}

// ClientProperties pairs a client hook field with its configuration.
type ClientProperties struct {
	// Property is the field name.
	Property string

	// Metadata is the configuration declared for the field, or nil.
	Metadata any
}

// asPattern converts a stored metadata value into a Pattern. Plain Go
// strings, numbers and string-keyed maps are accepted so stores other than
// Registry can hold raw values. Maps have no key order, so their keys are
// sorted; nil entries are dropped.
func asPattern(v any) (Pattern, bool) {
	switch p := v.(type) {
	case nil:
		return nil, true
	case Pattern:
		return p, true
	case string:
		return String(p), true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Number(float64(rv.Int())), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Number(float64(rv.Uint())), true
	case reflect.Float32, reflect.Float64:
		return Number(rv.Float()), true
	case reflect.String:
		return String(rv.String()), true
	case reflect.Map:
		return mapPattern(rv)
	default:
		return nil, false
	}
}

func mapPattern(rv reflect.Value) (Pattern, bool) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	if rv.IsNil() {
		return nil, true
	}

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	m := NewMap()
	for _, k := range keys {
		p, ok := asPattern(rv.MapIndex(reflect.ValueOf(k).Convert(rv.Type().Key())).Interface())
		if !ok {
			return nil, false
		}
		m.set(k, p)
	}
	return m, true
}

// mustPattern is asPattern for values read during exploration. A value that
// is not a pattern was stored by a broken declaration phase.
func mustPattern(v any, t reflect.Type, property string) Pattern {
	p, ok := asPattern(v)
	if !ok {
		panic(fmt.Sprintf("listener: %s %q on %s holds %T, not a pattern", PatternKey, property, typeName(t), v))
	}
	if IsAbsent(p) {
		return nil
	}
	return p
}
