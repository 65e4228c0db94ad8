package listener

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// MetadataKey names a kind of metadata attached to a type or one of its members.
type MetadataKey string

// Metadata keys read by the Explorer.
const (
	// PatternKey holds the Pattern declared on a controller type (with an
	// empty property) or on a handler method.
	PatternKey MetadataKey = "microservices:pattern"

	// HandlerTypeKey marks a method as a message handler. Its value is a
	// HandlerType.
	HandlerTypeKey MetadataKey = "microservices:handler_type"

	// ClientKey marks a field as an outbound client hook.
	ClientKey MetadataKey = "microservices:client"

	// ClientConfigurationKey holds the configuration of a client hook.
	ClientConfigurationKey MetadataKey = "microservices:client_configuration"
)

// ErrUnknownMember is returned when metadata is declared for a method or
// field the target type does not have.
var ErrUnknownMember = errors.New("unknown member")

// Store is read-only access to metadata attached to types and their members.
//
// target identifies the type: a value, a pointer to a value or a
// reflect.Type. property names a method or field, or is empty for metadata
// on the type itself. Implementations must be safe for concurrent reads.
type Store interface {
	Get(key MetadataKey, target any, property string) (any, bool)
}

// Registry is an in-memory Store populated during a declaration phase,
// usually from init functions or constructors, and read during exploration.
//
// Pointer types are normalised to their element type, so metadata declared
// on (*T)(nil) is visible when exploring &T{} or T{}.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[entryKey]any
}

type entryKey struct {
	key      MetadataKey
	target   reflect.Type
	property string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[entryKey]any)}
}

// Set stores value under key for the target and property. Storing nil is
// allowed and reads back the same as never having stored anything.
func (r *Registry) Set(key MetadataKey, target any, property string, value any) {
	t := typeOf(target)
	if t == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[entryKey{key: key, target: t, property: property}] = value
}

// Get implements Store.
func (r *Registry) Get(key MetadataKey, target any, property string) (any, bool) {
	t := typeOf(target)
	if t == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[entryKey{key: key, target: t, property: property}]
	return v, ok
}

// Controller declares the pattern shared by every handler of target.
func (r *Registry) Controller(target any, pattern Pattern) {
	r.Set(PatternKey, target, "", pattern)
}

// MessagePattern declares method as a request/response handler for pattern.
func (r *Registry) MessagePattern(target any, method string, pattern Pattern) error {
	return r.handler(target, method, pattern, RequestResponse)
}

// EventPattern declares method as an event handler for pattern.
func (r *Registry) EventPattern(target any, method string, pattern Pattern) error {
	return r.handler(target, method, pattern, Event)
}

func (r *Registry) handler(target any, method string, pattern Pattern, ht HandlerType) error {
	t := typeOf(target)
	if !hasMethod(t, method) {
		return fmt.Errorf("declare handler %s.%s: %w", typeName(t), method, ErrUnknownMember)
	}
	r.Set(HandlerTypeKey, t, method, ht)
	r.Set(PatternKey, t, method, pattern)
	return nil
}

// Client declares field of target as an outbound client hook configured by
// config. config is typically a ClientOptions or a map decodable into one.
func (r *Registry) Client(target any, field string, config any) error {
	t := typeOf(target)
	if !hasField(t, field) {
		return fmt.Errorf("declare client %s.%s: %w", typeName(t), field, ErrUnknownMember)
	}
	r.Set(ClientKey, t, field, true)
	r.Set(ClientConfigurationKey, t, field, config)
	return nil
}

// lookup reads key from store, treating a stored nil as absent.
func lookup(store Store, key MetadataKey, target any, property string) (any, bool) {
	v, ok := store.Get(key, target, property)
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// typeOf normalises a target to the non-pointer type metadata is keyed by.
func typeOf(target any) reflect.Type {
	var t reflect.Type
	switch v := target.(type) {
	case nil:
		return nil
	case reflect.Type:
		t = v
	default:
		t = reflect.TypeOf(target)
	}
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

// hasMethod reports whether method is in the method set of t or *t.
func hasMethod(t reflect.Type, method string) bool {
	if t == nil {
		return false
	}
	if _, ok := t.MethodByName(method); ok {
		return true
	}
	_, ok := reflect.PointerTo(t).MethodByName(method)
	return ok
}

// hasField reports whether t declares field directly. Promoted fields of
// embedded structs are not client hook candidates.
func hasField(t reflect.Type, field string) bool {
	if t == nil || t.Kind() != reflect.Struct {
		return false
	}
	for i := 0; i < t.NumField(); i++ {
		if t.Field(i).Name == field {
			return true
		}
	}
	return false
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
