package value

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Neumenon/zzz/zzz"
)

func TestType_String(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeNull, "null"},
		{TypeBool, "bool"},
		{TypeF32, "f32"},
		{TypeI32, "i32"},
		{TypeStr, "str"},
		{TypeArray, "array"},
		{TypeMap, "map"},
		{TypeNode, "node"},
		{TypeVariant, "variant"},
		{Type(99), "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.typ.String())
	}
}

func TestAccessors(t *testing.T) {
	b, err := Bool(true).AsBool()
	require.NoError(t, err)
	assert.True(t, b)

	f, err := F32(2.5).AsF32()
	require.NoError(t, err)
	assert.Equal(t, float32(2.5), f)

	i, err := I32(-7).AsI32()
	require.NoError(t, err)
	assert.Equal(t, int32(-7), i)

	s, err := Str("x").AsStr()
	require.NoError(t, err)
	assert.Equal(t, "x", s)

	_, err = Str("x").AsI32()
	assert.EqualError(t, err, "value: expected i32, got str")

	var nilVal *Value
	assert.True(t, nilVal.IsNull())
	assert.Equal(t, TypeNull, nilVal.Type())
	_, err = nilVal.AsBool()
	assert.EqualError(t, err, "value: nil value")

	vv, err := NewtypeVariant("Some", I32(1)).AsVariant()
	require.NoError(t, err)
	assert.Equal(t, "Some", vv.Tag)
	assert.Equal(t, 1, vv.Payload.Len())
}

func TestNode_GetSet(t *testing.T) {
	n := Node(FieldVal("a", I32(1)))
	n.Set("b", Str("two"))
	n.Set("a", I32(10))

	fields, err := n.AsNode()
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "a", fields[0].Name)

	a, err := n.Get("a").AsI32()
	require.NoError(t, err)
	assert.Equal(t, int32(10), a)
	assert.Nil(t, n.Get("missing"))

	m := Map(Entry(I32(1), Null()))
	m.Set("k", Bool(true))
	m.Set("k", Bool(false))
	assert.Equal(t, 2, m.Len())
	assert.True(t, Bool(false).Equal(m.Get("k")))

	assert.Panics(t, func() { I32(1).Set("x", Null()) })
}

func TestIndex(t *testing.T) {
	arr := Array(I32(1), I32(2))
	arr.Append(I32(3))

	v, err := arr.Index(2)
	require.NoError(t, err)
	assert.True(t, I32(3).Equal(v))

	_, err = arr.Index(3)
	assert.EqualError(t, err, "value: index 3 out of bounds (len=3)")

	tup := Tuple(Str("a"), Str("b"))
	v, err = tup.Index(1)
	require.NoError(t, err)
	assert.True(t, Str("b").Equal(v))

	_, err = Str("s").Index(0)
	assert.EqualError(t, err, "value: str is not indexable")

	assert.Panics(t, func() { Map().Append(Null()) })
}

func TestEqual(t *testing.T) {
	nan := float32(math.NaN())

	assert.True(t, F32(nan).Equal(F32(nan)))
	assert.True(t, F32(0).Equal(F32(float32(math.Copysign(0, -1)))))
	assert.False(t, F32(1).Equal(I32(1)))
	assert.True(t, Null().Equal(nil))

	assert.True(t, Variant("A", nil).Equal(Variant("A", nil)))
	assert.False(t, Variant("A", nil).Equal(Variant("A", Node())))
	assert.False(t, Variant("A", nil).Equal(Variant("B", nil)))

	// Map order is significant.
	m1 := Map(Entry(Str("a"), I32(1)), Entry(Str("b"), I32(2)))
	m2 := Map(Entry(Str("b"), I32(2)), Entry(Str("a"), I32(1)))
	assert.False(t, m1.Equal(m2))

	assert.False(t, Node(FieldVal("a", Null())).Equal(Tuple(Null())))

	want := Array(Node(FieldVal("x", F32(nan))), Str("s"))
	got := Array(Node(FieldVal("x", F32(nan))), Str("s"))
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	input := `
// deployment
(
  name: "api",
  replicas: 3,
  ratio: 0.5,
  ports: [80, 443],
  env: {"LOG": "debug", 7: null},
  strategy: Rolling(max_surge: 1),
  owner: Some("ops"),
  pinned: (1, 2),
  paused: false,
)`

	// Trailing commas are not part of the grammar.
	_, err := Parse(input)
	assert.ErrorIs(t, err, zzz.ErrExpectedNode)

	v, err := Parse(strings.Replace(input, "false,", "false", 1))
	require.NoError(t, err)

	want := Node(
		FieldVal("name", Str("api")),
		FieldVal("replicas", I32(3)),
		FieldVal("ratio", F32(0.5)),
		FieldVal("ports", Array(I32(80), I32(443))),
		FieldVal("env", Map(Entry(Str("LOG"), Str("debug")), Entry(I32(7), Null()))),
		FieldVal("strategy", Variant("Rolling", Node(FieldVal("max_surge", I32(1))))),
		FieldVal("owner", NewtypeVariant("Some", Str("ops"))),
		FieldVal("pinned", Tuple(I32(1), I32(2))),
		FieldVal("paused", Bool(false)),
	)
	if diff := cmp.Diff(want, v); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	out, err := Emit(v)
	require.NoError(t, err)
	assert.Equal(t,
		`(name:"api",replicas:3,ratio:0.5,ports:[80,443],env:{"LOG":"debug",7:null},strategy:Rolling(max_surge:1),owner:Some("ops"),pinned:(1,2),paused:false)`,
		out)
}

func TestEmit_Errors(t *testing.T) {
	_, err := Emit(Variant("Bad", I32(1)))
	assert.ErrorIs(t, err, zzz.Custom("payload of variant Bad must be a node, got i32"))

	mixed := Node(Field{Value: I32(1)}, FieldVal("b", I32(2)))
	_, err = Emit(mixed)
	assert.ErrorIs(t, err, zzz.Custom("node mixes positional and named fields"))

	_, err = Emit(Node(FieldVal("true", Null())))
	assert.ErrorIs(t, err, zzz.Custom(`invalid field name "true"`))

	_, err = Emit(Variant("not ok", nil))
	assert.ErrorIs(t, err, zzz.Custom(`invalid variant tag "not ok"`))
}

func TestEmit_Nil(t *testing.T) {
	out, err := Emit(nil)
	require.NoError(t, err)
	assert.Equal(t, "null", out)

	out, err = Emit(Array(nil, Null()))
	require.NoError(t, err)
	assert.Equal(t, "[null,null]", out)
}

func TestEmitPretty(t *testing.T) {
	v := Map(Entry(Str("k"), Variant("Pair", Tuple(I32(1), Array()))))
	out, err := EmitPretty(v)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"k\": Pair(\n    1,\n    []\n  )\n}", out)
}

// Values embed in typed structures through the Marshaler and Unmarshaler
// interfaces.
func TestValue_InStruct(t *testing.T) {
	type envelope struct {
		Kind string `zzz:"kind"`
		Body *Value `zzz:"body"`
	}

	in := envelope{Kind: "event", Body: Array(Variant("Ping", nil), Str("x"))}
	text, err := zzz.ToString(in)
	require.NoError(t, err)
	assert.Equal(t, `(kind:"event",body:[Ping,"x"])`, text)

	out, err := zzz.FromString[envelope](text)
	require.NoError(t, err)
	assert.Equal(t, "event", out.Kind)
	if diff := cmp.Diff(in.Body, out.Body); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}

	out, err = zzz.FromString[envelope](`(kind: "empty", body: null)`)
	require.NoError(t, err)
	assert.Nil(t, out.Body)

	// A Null field and a nil field share one encoding, and both come back
	// as nil, which Equal treats as Null.
	for _, body := range []*Value{Null(), nil} {
		text, err = zzz.ToString(envelope{Kind: "k", Body: body})
		require.NoError(t, err)
		assert.Equal(t, `(kind:"k",body:null)`, text)

		out, err = zzz.FromString[envelope](text)
		require.NoError(t, err)
		assert.Nil(t, out.Body)
		assert.True(t, Null().Equal(out.Body))
		assert.True(t, out.Body.IsNull())
	}
}
