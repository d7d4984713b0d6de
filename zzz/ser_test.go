package zzz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializer_F32(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-3, "-3.0"},
		{1.5, "1.5"},
		{0.1, "0.1"},
		{-0.25, "-0.25"},
		{1e20, "1e+20"},
		{1.5e-7, "1.5e-07"},
		{float32(math.Inf(1)), "inf"},
		{float32(math.Inf(-1)), "-inf"},
		{float32(math.NaN()), "nan"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatF32(tt.in))

			// Every spelling reads back as a float and as the same number.
			d := NewDeserializer(tt.want, DefaultDecodeOptions())
			shape, err := d.Next()
			require.NoError(t, err)
			assert.Equal(t, ShapeF32, shape)

			got, err := d.F32()
			require.NoError(t, err)
			if math.IsNaN(float64(tt.in)) {
				assert.True(t, math.IsNaN(float64(got)))
			} else {
				assert.Equal(t, tt.in, got)
			}
		})
	}
}

func TestSerializer_Str(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", `""`},
		{"plain", `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"line\nbreak\r\ttab", `"line\nbreak\r\ttab"`},
		{"\x00\x01\x1f\x7f", `"\u0000\u0001\u001f\u007f"`},
		{"héllo", `"héllo"`},
		{"\xff\xfe", "\"\xff\xfe\""},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			s := NewSerializer(DefaultEncodeOptions())
			s.Str(tt.in)
			assert.Equal(t, tt.want, s.String())

			got, err := NewDeserializer(s.String(), DefaultDecodeOptions()).Str()
			require.NoError(t, err)
			assert.Equal(t, tt.in, got)
		})
	}
}

func TestSerializer_Primitives(t *testing.T) {
	s := NewSerializer(DefaultEncodeOptions())
	require.NoError(t, s.Array(5, func(i int) error {
		switch i {
		case 0:
			s.Bool(true)
		case 1:
			s.Bool(false)
		case 2:
			s.I32(math.MinInt32)
		case 3:
			s.Null()
		case 4:
			s.F32(2)
		}
		return nil
	}))
	assert.Equal(t, "[true,false,-2147483648,null,2.0]", s.String())
}

func TestSerializer_Composites(t *testing.T) {
	s := NewSerializer(DefaultEncodeOptions())
	err := s.Map(2,
		func(i int) error {
			if i == 0 {
				s.Str("empty")
				return nil
			}
			return s.Tuple(2, func(j int) error { s.I32(int32(j)); return nil })
		},
		func(i int) error {
			if i == 0 {
				return s.Array(0, nil)
			}
			if err := s.Variant("Some"); err != nil {
				return err
			}
			return s.Node([]string{"a", "b_2"}, func(j int) error { s.I32(int32(j)); return nil })
		},
	)
	require.NoError(t, err)
	assert.Equal(t, `{"empty":[],(0,1):Some(a:0,b_2:1)}`, s.String())

	s = NewSerializer(DefaultEncodeOptions())
	require.NoError(t, s.Node(nil, nil))
	assert.Equal(t, "()", s.String())
}

func TestSerializer_InvalidNames(t *testing.T) {
	for _, tag := range []string{"", "true", "null", "nan", "9lives", "with space", "dash-ed"} {
		s := NewSerializer(DefaultEncodeOptions())
		err := s.Variant(tag)
		assert.ErrorIs(t, err, Custom("invalid variant tag %q", tag), "tag %q", tag)

		err = s.Node([]string{tag}, func(int) error { return nil })
		assert.Error(t, err, "field %q", tag)

		var zerr *Error
		require.ErrorAs(t, err, &zerr)
		assert.Equal(t, KindMessage, zerr.Kind)
		assert.False(t, zerr.Pos.IsValid())
	}
}

func TestSerializer_CallbackError(t *testing.T) {
	boom := Custom("boom")
	s := NewSerializer(DefaultEncodeOptions())
	err := s.Array(3, func(i int) error {
		if i == 1 {
			return boom
		}
		s.I32(int32(i))
		return nil
	})
	assert.Same(t, boom, err)
}

func TestSerializer_Pretty(t *testing.T) {
	type point struct {
		X int32
		Y int32
	}
	type shape struct {
		Name   string            `zzz:"name"`
		Points []point           `zzz:"points"`
		Tags   map[string]string `zzz:"tags"`
		Empty  []int32           `zzz:"empty"`
	}

	v := shape{
		Name:   "tri",
		Points: []point{{0, 0}, {1, 2}},
		Tags:   map[string]string{"color": "red"},
		Empty:  []int32{},
	}

	got, err := MarshalString(v, PrettyEncodeOptions())
	require.NoError(t, err)

	want := `(
  name: "tri",
  points: [
    (
      X: 0,
      Y: 0
    ),
    (
      X: 1,
      Y: 2
    )
  ],
  tags: {
    "color": "red"
  },
  empty: []
)`
	assert.Equal(t, want, got)

	compact, err := ToString(v)
	require.NoError(t, err)
	assert.Equal(t, `(name:"tri",points:[(X:0,Y:0),(X:1,Y:2)],tags:{"color":"red"},empty:[])`, compact)

	var fromPretty, fromCompact shape
	require.NoError(t, UnmarshalString(got, &fromPretty, DefaultDecodeOptions()))
	require.NoError(t, UnmarshalString(compact, &fromCompact, DefaultDecodeOptions()))
	assert.Equal(t, v, fromPretty)
	assert.Equal(t, fromCompact, fromPretty)
}
