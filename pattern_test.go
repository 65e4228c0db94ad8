package listener

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPattern_Key(t *testing.T) {
	tests := map[string]struct {
		pattern Pattern
		want    string
	}{
		"string":           {String("users/get"), "users/get"},
		"integer":          {Number(42), "42"},
		"negative":         {Number(-3), "-3"},
		"fraction":         {Number(0.25), "0.25"},
		"large":            {Number(1e21), "1e+21"},
		"small":            {Number(1e-7), "1e-7"},
		"small fraction":   {Number(1.5e-7), "1.5e-7"},
		"tiny":             {Number(5e-324), "5e-324"},
		"huge":             {Number(1.5e300), "1.5e+300"},
		"million":          {Number(1e6), "1000000"},
		"empty map":        {NewMap(), "{}"},
		"map sorted keys":  {NewMap(Field{"cmd", String("sum")}, Field{"a", Number(1)}), `{"a":1,"cmd":"sum"}`},
		"nested map":       {NewMap(Field{"controller", NewMap(Field{"use", String("user")})}), `{"controller":{"use":"user"}}`},
		"quotes escaped":   {NewMap(Field{"q", String(`say "hi"`)}), `{"q":"say \"hi\""}`},
		"string in map":    {NewMap(Field{"n", String("5")}), `{"n":"5"}`},
		"number in map":    {NewMap(Field{"n", Number(5)}), `{"n":5}`},
		"empty string key": {String(""), ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pattern.Key())
		})
	}
}

func TestPattern_Kind(t *testing.T) {
	assert.Equal(t, KindString, String("a").Kind())
	assert.Equal(t, KindNumber, Number(1).Kind())
	assert.Equal(t, KindToken, NewToken("a").Kind())
	assert.Equal(t, KindMap, NewMap().Kind())
	assert.Equal(t, "map", KindMap.String())
	assert.Equal(t, "unknown", Kind(0).String())
}

func TestMap_KeyIgnoresOrder(t *testing.T) {
	a := NewMap(Field{"b", Number(1)}, Field{"a", Number(2)})
	b := NewMap(Field{"a", Number(2)}, Field{"b", Number(1)})

	assert.Equal(t, a.Key(), b.Key())
	assert.True(t, Equal(a, b))
	assert.Equal(t, []string{"b", "a"}, a.Keys())
}

func TestNewMap(t *testing.T) {
	t.Run("repeated key keeps first slot and last value", func(t *testing.T) {
		m := NewMap(Field{"a", Number(1)}, Field{"b", Number(2)}, Field{"a", Number(3)})

		assert.Equal(t, []string{"a", "b"}, m.Keys())
		v, ok := m.Get("a")
		assert.True(t, ok)
		assert.Equal(t, Number(3), v)
	})

	t.Run("absent values are dropped", func(t *testing.T) {
		var nilMap *Map
		m := NewMap(Field{"a", nil}, Field{"b", nilMap}, Field{"c", String("x")})

		assert.Equal(t, []string{"c"}, m.Keys())
	})

	t.Run("keys are copied", func(t *testing.T) {
		m := NewMap(Field{"a", Number(1)})
		keys := m.Keys()
		keys[0] = "z"

		assert.Equal(t, []string{"a"}, m.Keys())
	})

	t.Run("all stops early", func(t *testing.T) {
		m := NewMap(Field{"a", Number(1)}, Field{"b", Number(2)})
		var seen []string
		for k := range m.All() {
			seen = append(seen, k)
			break
		}
		assert.Equal(t, []string{"a"}, seen)
	})

	t.Run("fields round trip", func(t *testing.T) {
		fields := []Field{{"x", String("1")}, {"y", Number(2)}}
		assert.Equal(t, fields, NewMap(fields...).Fields())
	})
}

func TestNilMap(t *testing.T) {
	var m *Map

	assert.Equal(t, 0, m.Len())
	assert.Nil(t, m.Keys())
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Empty(t, m.Fields())
}

func TestToken(t *testing.T) {
	a := NewToken("User")
	b := NewToken("User")

	assert.Equal(t, "User", a.Description())
	assert.Equal(t, "Symbol(User)", a.String())
	assert.NotEqual(t, a.Key(), b.Key())
	assert.True(t, Equal(a, a))
	assert.False(t, Equal(a, b))
}

func TestIsAbsent(t *testing.T) {
	var nilMap *Map
	var nilToken *Token

	assert.True(t, IsAbsent(nil))
	assert.True(t, IsAbsent(nilMap))
	assert.True(t, IsAbsent(nilToken))
	assert.False(t, IsAbsent(String("")))
	assert.False(t, IsAbsent(Number(0)))
	assert.False(t, IsAbsent(NewMap()))
}

func TestEqual(t *testing.T) {
	tests := map[string]struct {
		a, b Pattern
		want bool
	}{
		"both absent":         {nil, nil, true},
		"absent and string":   {nil, String(""), false},
		"same strings":        {String("a"), String("a"), true},
		"string vs number":    {String("5"), Number(5), false},
		"same numbers":        {Number(5), Number(5), true},
		"maps differ in size": {NewMap(Field{"a", Number(1)}), NewMap(), false},
		"maps differ in value": {
			NewMap(Field{"a", Number(1)}),
			NewMap(Field{"a", Number(2)}),
			false,
		},
		"nested maps": {
			NewMap(Field{"a", NewMap(Field{"b", String("c")})}),
			NewMap(Field{"a", NewMap(Field{"b", String("c")})}),
			true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}
