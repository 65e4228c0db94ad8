package listener

import (
	"encoding/json"
	"fmt"
	"iter"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies the shape of a Pattern.
type Kind uint8

const (
	// KindString is a text scalar.
	KindString Kind = iota + 1
	// KindNumber is a numeric scalar.
	KindNumber
	// KindToken is an opaque symbolic token matched by identity.
	KindToken
	// KindMap is a structured mapping from string keys to patterns.
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindToken:
		return "token"
	case KindMap:
		return "map"
	default:
		return "unknown"
	}
}

// Pattern is a routing key declared on a controller type or a handler method.
//
// A nil Pattern is the absent pattern. Every other value is one of String,
// Number, *Token or *Map. Patterns are immutable once declared; merging
// always produces a new value.
type Pattern interface {
	// Kind reports the shape of the pattern.
	Kind() Kind

	// Key returns the canonical routing key. Structurally equal patterns
	// produce equal keys; tokens produce keys unique to their identity.
	Key() string

	sealed()
}

// String is a text scalar pattern.
type String string

func (String) Kind() Kind    { return KindString }
func (s String) Key() string { return string(s) }
func (String) sealed()       {}

// Number is a numeric scalar pattern.
type Number float64

func (Number) Kind() Kind    { return KindNumber }
func (n Number) Key() string { return formatNumber(float64(n)) }
func (Number) sealed()       {}

// Token is an opaque symbolic pattern. Two tokens match only if they are the
// same token, even when their descriptions are equal.
type Token struct {
	id   uuid.UUID
	desc string
}

// NewToken creates a token with a fresh identity.
func NewToken(desc string) *Token {
	return &Token{id: uuid.New(), desc: desc}
}

// Description returns the text the token was created with.
func (t *Token) Description() string { return t.desc }

// String renders the token the way it joins into path patterns.
func (t *Token) String() string { return "Symbol(" + t.desc + ")" }

func (*Token) Kind() Kind    { return KindToken }
func (t *Token) Key() string { return t.String() + "#" + t.id.String() }
func (*Token) sealed()       {}

// Field is a single key/value entry of a Map.
type Field struct {
	Key   string
	Value Pattern
}

// Map is an ordered, immutable mapping from string keys to patterns.
type Map struct {
	keys   []string
	values map[string]Pattern
}

// NewMap builds a Map from fields in order. A repeated key keeps its first
// slot and takes the last value. Fields with an absent value are dropped.
func NewMap(fields ...Field) *Map {
	m := &Map{
		keys:   make([]string, 0, len(fields)),
		values: make(map[string]Pattern, len(fields)),
	}
	for _, f := range fields {
		m.set(f.Key, f.Value)
	}
	return m
}

func (m *Map) set(key string, value Pattern) {
	if IsAbsent(value) {
		return
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// clone returns a shallow copy with room for extra keys.
func (m *Map) clone(extra int) *Map {
	out := &Map{
		keys:   make([]string, len(m.keys), len(m.keys)+extra),
		values: make(map[string]Pattern, len(m.keys)+extra),
	}
	copy(out.keys, m.keys)
	for k, v := range m.values {
		out.values[k] = v
	}
	return out
}

// Len returns the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Pattern, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// All iterates the entries in order.
func (m *Map) All() iter.Seq2[string, Pattern] {
	return func(yield func(string, Pattern) bool) {
		if m == nil {
			return
		}
		for _, k := range m.keys {
			if !yield(k, m.values[k]) {
				return
			}
		}
	}
}

// Fields returns the entries in order.
func (m *Map) Fields() []Field {
	out := make([]Field, 0, m.Len())
	for k, v := range m.All() {
		out = append(out, Field{Key: k, Value: v})
	}
	return out
}

func (*Map) Kind() Kind { return KindMap }

func (m *Map) Key() string {
	var b strings.Builder
	writeKey(&b, m, false)
	return b.String()
}

func (*Map) sealed() {}

// IsAbsent reports whether p is the absent pattern, including typed nil
// pointers stored in the interface.
func IsAbsent(p Pattern) bool {
	switch v := p.(type) {
	case nil:
		return true
	case *Map:
		return v == nil
	case *Token:
		return v == nil
	default:
		return false
	}
}

// Equal reports whether two patterns are structurally equal. Map key order
// is ignored; tokens compare by identity.
func Equal(a, b Pattern) bool {
	if IsAbsent(a) || IsAbsent(b) {
		return IsAbsent(a) && IsAbsent(b)
	}
	switch av := a.(type) {
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case *Token:
		bv, ok := b.(*Token)
		return ok && av == bv
	case *Map:
		bv, ok := b.(*Map)
		if !ok || av.Len() != bv.Len() {
			return false
		}
		for k, v := range av.All() {
			w, ok := bv.Get(k)
			if !ok || !Equal(v, w) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// text returns the form a scalar takes when joined into a path pattern.
func text(p Pattern) string {
	switch v := p.(type) {
	case String:
		return string(v)
	case Number:
		return formatNumber(float64(v))
	case *Token:
		return v.String()
	default:
		return fmt.Sprint(p)
	}
}

// formatNumber renders f the way message brokers see numeric patterns:
// integers without a fraction, exponent form only for very large or small values.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e21 || abs < 1e-6) {
		return trimExponent(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// trimExponent drops the zero padding strconv puts in two-digit exponents:
// "1e-07" becomes "1e-7".
func trimExponent(s string) string {
	i := strings.IndexByte(s, 'e')
	if i < 0 || i+2 >= len(s) {
		return s
	}
	digits := strings.TrimLeft(s[i+2:], "0")
	if digits == "" {
		digits = "0"
	}
	return s[:i+2] + digits
}

// writeKey renders p as canonical JSON with map keys sorted. Top-level
// strings stay bare so that String("a").Key() == "a".
func writeKey(b *strings.Builder, p Pattern, nested bool) {
	switch v := p.(type) {
	case String:
		if !nested {
			b.WriteString(string(v))
			return
		}
		writeQuoted(b, string(v))
	case Number:
		b.WriteString(formatNumber(float64(v)))
	case *Token:
		if !nested {
			b.WriteString(v.Key())
			return
		}
		writeQuoted(b, v.Key())
	case *Map:
		keys := v.Keys()
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			writeQuoted(b, k)
			b.WriteByte(':')
			val, _ := v.Get(k)
			writeKey(b, val, true)
		}
		b.WriteByte('}')
	}
}

func writeQuoted(b *strings.Builder, s string) {
	raw, _ := json.Marshal(s)
	b.Write(raw)
}
