package zzz

import (
	"math"
	"reflect"
	"sort"
	"strings"
)

// Marshaler is implemented by types that describe themselves to a
// Serializer, typically enums and other shapes reflection cannot infer.
type Marshaler interface {
	MarshalZZZ(s *Serializer) error
}

// Unmarshaler is implemented by types that rebuild themselves from a
// Deserializer. The method must consume exactly one value.
type Unmarshaler interface {
	UnmarshalZZZ(d *Deserializer) error
}

var (
	marshalerType   = reflect.TypeOf((*Marshaler)(nil)).Elem()
	unmarshalerType = reflect.TypeOf((*Unmarshaler)(nil)).Elem()
)

// ============================================================
// Encoding
// ============================================================

// Encode writes v. Marshaler implementations take precedence; other values
// are mapped by kind:
//
//	bool                    → boolean
//	float32, float64        → f32 (float64 must be exact in float32)
//	signed/unsigned ints    → i32 (must fit)
//	string                  → string
//	nil pointer/slice/map   → null
//	slice, array            → array
//	map                     → map, entries sorted by encoded key
//	struct                  → node with named fields
func (s *Serializer) Encode(v any) error {
	return s.encodeValue(reflect.ValueOf(v))
}

func (s *Serializer) encodeValue(rv reflect.Value) error {
	if !rv.IsValid() {
		s.Null()
		return nil
	}

	if k := rv.Kind(); (k == reflect.Pointer || k == reflect.Interface) && !rv.IsNil() {
		s.hops++
		defer func() { s.hops-- }()
		if s.hops > s.opts.MaxDepth {
			return Custom("nesting exceeds %d levels", s.opts.MaxDepth)
		}
	}

	t := rv.Type()
	if t.Implements(marshalerType) {
		if (rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface) && rv.IsNil() {
			s.Null()
			return nil
		}
		return rv.Interface().(Marshaler).MarshalZZZ(s)
	}
	if rv.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(marshalerType) {
		if !rv.CanAddr() {
			p := reflect.New(t)
			p.Elem().Set(rv)
			rv = p.Elem()
		}
		return rv.Addr().Interface().(Marshaler).MarshalZZZ(s)
	}

	switch rv.Kind() {
	case reflect.Bool:
		s.Bool(rv.Bool())

	case reflect.Float32:
		s.F32(float32(rv.Float()))

	case reflect.Float64:
		f := rv.Float()
		if float64(float32(f)) != f && !math.IsNaN(f) {
			return Custom("value %v is not representable as f32", f)
		}
		s.F32(float32(f))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := rv.Int()
		if i < math.MinInt32 || i > math.MaxInt32 {
			return Custom("value %d overflows i32", i)
		}
		s.I32(int32(i))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt32 {
			return Custom("value %d overflows i32", u)
		}
		s.I32(int32(u))

	case reflect.String:
		s.Str(rv.String())

	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			s.Null()
			return nil
		}
		return s.encodeValue(rv.Elem())

	case reflect.Slice:
		if rv.IsNil() {
			s.Null()
			return nil
		}
		return s.Array(rv.Len(), func(i int) error { return s.encodeValue(rv.Index(i)) })

	case reflect.Array:
		return s.Array(rv.Len(), func(i int) error { return s.encodeValue(rv.Index(i)) })

	case reflect.Map:
		if rv.IsNil() {
			s.Null()
			return nil
		}
		return s.encodeMap(rv)

	case reflect.Struct:
		return s.encodeStruct(rv)

	default:
		return Custom("unsupported type %s", t)
	}
	return nil
}

// encodeMap writes a Go map. Go maps carry no insertion order, so entries are
// sorted by the text of their keys to keep output deterministic.
func (s *Serializer) encodeMap(rv reflect.Value) error {
	type entry struct {
		key   string
		value reflect.Value
	}

	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		ks := &Serializer{opts: s.opts, depth: s.depth + 1, hops: s.hops}
		if err := ks.encodeValue(iter.Key()); err != nil {
			return err
		}
		entries = append(entries, entry{key: ks.String(), value: iter.Value()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].key < entries[j].key })

	return s.Map(len(entries),
		func(i int) error {
			s.sb.WriteString(entries[i].key)
			return nil
		},
		func(i int) error { return s.encodeValue(entries[i].value) },
	)
}

func (s *Serializer) encodeStruct(rv reflect.Value) error {
	fields, err := structFields(rv.Type())
	if err != nil {
		return err
	}

	names := make([]string, 0, len(fields))
	values := make([]reflect.Value, 0, len(fields))
	for _, f := range fields {
		fv := rv.FieldByIndex(f.index)
		if f.omitEmpty && fv.IsZero() {
			continue
		}
		names = append(names, f.name)
		values = append(values, fv)
	}

	return s.Node(names, func(i int) error { return s.encodeValue(values[i]) })
}

// ============================================================
// Decoding
// ============================================================

// Decode reads one value into v, which must be a non-nil pointer or an
// Unmarshaler. It is the inverse of Serializer.Encode.
func (d *Deserializer) Decode(v any) error {
	if u, ok := v.(Unmarshaler); ok {
		return u.UnmarshalZZZ(d)
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return Custom("decode target must be a non-nil pointer, got %T", v)
	}
	return d.decodeValue(rv.Elem())
}

func (d *Deserializer) decodeValue(rv reflect.Value) error {
	if rv.Kind() != reflect.Pointer && rv.CanAddr() && rv.Addr().Type().Implements(unmarshalerType) {
		return rv.Addr().Interface().(Unmarshaler).UnmarshalZZZ(d)
	}

	t := rv.Type()
	switch rv.Kind() {
	case reflect.Bool:
		b, err := d.Bool()
		if err != nil {
			return err
		}
		rv.SetBool(b)

	case reflect.Float32, reflect.Float64:
		f, err := d.F32()
		if err != nil {
			return err
		}
		rv.SetFloat(float64(f))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := d.I32()
		if err != nil {
			return err
		}
		if rv.OverflowInt(int64(i)) {
			return Custom("value %d overflows %s", i, t)
		}
		rv.SetInt(int64(i))

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		i, err := d.I32()
		if err != nil {
			return err
		}
		if i < 0 || rv.OverflowUint(uint64(i)) {
			return Custom("value %d overflows %s", i, t)
		}
		rv.SetUint(uint64(i))

	case reflect.String:
		str, err := d.Str()
		if err != nil {
			return err
		}
		rv.SetString(str)

	case reflect.Pointer:
		// null always clears the pointer, even when the pointee is an
		// Unmarshaler that could represent null itself.
		if d.IsNull() {
			rv.SetZero()
			return d.Null()
		}
		if rv.IsNil() {
			rv.Set(reflect.New(t.Elem()))
		}
		return d.decodeValue(rv.Elem())

	case reflect.Interface:
		if d.IsNull() {
			rv.SetZero()
			return d.Null()
		}
		if rv.IsNil() || rv.Elem().Kind() != reflect.Pointer || rv.Elem().IsNil() {
			return Custom("cannot decode into %s without a concrete pointer", t)
		}
		return d.decodeValue(rv.Elem())

	case reflect.Slice:
		if d.IsNull() {
			rv.SetZero()
			return d.Null()
		}
		if rv.IsNil() {
			rv.Set(reflect.MakeSlice(t, 0, 0))
		}
		rv.SetLen(0)
		return d.Array(func() error {
			elem := reflect.New(t.Elem()).Elem()
			if err := d.decodeValue(elem); err != nil {
				return err
			}
			rv.Set(reflect.Append(rv, elem))
			return nil
		})

	case reflect.Array:
		n := 0
		err := d.Array(func() error {
			if n >= rv.Len() {
				return Custom("too many elements for %s", t)
			}
			n++
			return d.decodeValue(rv.Index(n - 1))
		})
		if err != nil {
			return err
		}
		if n != rv.Len() {
			return Custom("%s needs %d elements, got %d", t, rv.Len(), n)
		}

	case reflect.Map:
		return d.decodeMap(rv)

	case reflect.Struct:
		return d.decodeStruct(rv)

	default:
		return Custom("unsupported type %s", t)
	}
	return nil
}

func (d *Deserializer) decodeMap(rv reflect.Value) error {
	if d.IsNull() {
		rv.SetZero()
		return d.Null()
	}

	t := rv.Type()
	if rv.IsNil() {
		rv.Set(reflect.MakeMap(t))
	}

	var key reflect.Value
	return d.Map(
		func() error {
			key = reflect.New(t.Key()).Elem()
			return d.decodeValue(key)
		},
		func() error {
			val := reflect.New(t.Elem()).Elem()
			if err := d.decodeValue(val); err != nil {
				return err
			}
			rv.SetMapIndex(key, val)
			return nil
		},
	)
}

func (d *Deserializer) decodeStruct(rv reflect.Value) error {
	fields, err := structFields(rv.Type())
	if err != nil {
		return err
	}

	seen := make([]bool, len(fields))
	return d.Node(func(name string) error {
		for i, f := range fields {
			if f.name != name {
				continue
			}
			if seen[i] {
				return Custom("duplicate field %q", name)
			}
			seen[i] = true
			return d.decodeValue(rv.FieldByIndex(f.index))
		}
		if d.opts.DisallowUnknownFields {
			return Custom("unknown field %q in %s", name, rv.Type())
		}
		return d.Skip()
	})
}

// ============================================================
// Struct introspection
// ============================================================

// field describes one struct field as it appears in a node.
type field struct {
	name      string
	index     []int
	omitEmpty bool
}

// structFields lists the encodable fields of t in declaration order.
// Embedded structs without a tag name are flattened into their parent.
//
// Tags: `zzz:"name,omitempty"`, or `zzz:"-"` to skip the field.
func structFields(t reflect.Type) ([]field, error) {
	var fields []field
	collectFields(t, nil, &fields)

	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.name] {
			return nil, Custom("duplicate field %q in %s", f.name, t)
		}
		seen[f.name] = true
	}
	return fields, nil
}

func collectFields(t reflect.Type, index []int, fields *[]field) {
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag := sf.Tag.Get("zzz")
		if tag == "-" {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		idx := append(append([]int(nil), index...), i)

		if sf.Anonymous && name == "" && sf.Type.Kind() == reflect.Struct {
			collectFields(sf.Type, idx, fields)
			continue
		}
		if !sf.IsExported() {
			continue
		}

		if name == "" {
			name = sf.Name
		}
		*fields = append(*fields, field{
			name:      name,
			index:     idx,
			omitEmpty: hasOption(opts, "omitempty"),
		})
	}
}

func hasOption(opts, want string) bool {
	for _, o := range strings.Split(opts, ",") {
		if strings.TrimSpace(o) == want {
			return true
		}
	}
	return false
}
