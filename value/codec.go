package value

import (
	"github.com/Neumenon/zzz/zzz"
)

// MarshalZZZ writes v. Map entries keep their order.
func (v *Value) MarshalZZZ(s *zzz.Serializer) error {
	switch v.Type() {
	case TypeNull:
		s.Null()
	case TypeBool:
		s.Bool(v.boolVal)
	case TypeF32:
		s.F32(v.f32Val)
	case TypeI32:
		s.I32(v.i32Val)
	case TypeStr:
		s.Str(v.strVal)
	case TypeArray:
		return s.Array(len(v.arrayVal), func(i int) error {
			return v.arrayVal[i].MarshalZZZ(s)
		})
	case TypeMap:
		return s.Map(len(v.mapVal),
			func(i int) error { return v.mapVal[i].Key.MarshalZZZ(s) },
			func(i int) error { return v.mapVal[i].Value.MarshalZZZ(s) },
		)
	case TypeNode:
		return marshalNode(s, v.nodeVal)
	case TypeVariant:
		vv := v.variantVal
		if err := s.Variant(vv.Tag); err != nil {
			return err
		}
		if vv.Payload == nil {
			return nil
		}
		if vv.Payload.Type() != TypeNode {
			return zzz.Custom("payload of variant %s must be a node, got %s", vv.Tag, vv.Payload.Type())
		}
		return marshalNode(s, vv.Payload.nodeVal)
	}
	return nil
}

// marshalNode writes positional fields as a tuple and named ones as a node.
func marshalNode(s *zzz.Serializer, fields []Field) error {
	if len(fields) > 0 && fields[0].Name == "" {
		return s.Tuple(len(fields), func(i int) error {
			if fields[i].Name != "" {
				return zzz.Custom("node mixes positional and named fields")
			}
			return fields[i].Value.MarshalZZZ(s)
		})
	}

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	return s.Node(names, func(i int) error {
		return fields[i].Value.MarshalZZZ(s)
	})
}

// UnmarshalZZZ reads any value into v, using the shape of the input.
func (v *Value) UnmarshalZZZ(d *zzz.Deserializer) error {
	shape, err := d.Next()
	if err != nil {
		return err
	}

	switch shape {
	case zzz.ShapeBool:
		b, err := d.Bool()
		if err != nil {
			return err
		}
		*v = Value{typ: TypeBool, boolVal: b}

	case zzz.ShapeF32:
		f, err := d.F32()
		if err != nil {
			return err
		}
		*v = Value{typ: TypeF32, f32Val: f}

	case zzz.ShapeI32:
		i, err := d.I32()
		if err != nil {
			return err
		}
		*v = Value{typ: TypeI32, i32Val: i}

	case zzz.ShapeStr:
		str, err := d.Str()
		if err != nil {
			return err
		}
		*v = Value{typ: TypeStr, strVal: str}

	case zzz.ShapeNull:
		if err := d.Null(); err != nil {
			return err
		}
		*v = Value{typ: TypeNull}

	case zzz.ShapeArray:
		var elems []*Value
		err := d.Array(func() error {
			elem := &Value{}
			if err := elem.UnmarshalZZZ(d); err != nil {
				return err
			}
			elems = append(elems, elem)
			return nil
		})
		if err != nil {
			return err
		}
		*v = Value{typ: TypeArray, arrayVal: elems}

	case zzz.ShapeMap:
		var entries []MapEntry
		err := d.Map(
			func() error {
				key := &Value{}
				if err := key.UnmarshalZZZ(d); err != nil {
					return err
				}
				entries = append(entries, MapEntry{Key: key})
				return nil
			},
			func() error {
				val := &Value{}
				if err := val.UnmarshalZZZ(d); err != nil {
					return err
				}
				entries[len(entries)-1].Value = val
				return nil
			},
		)
		if err != nil {
			return err
		}
		*v = Value{typ: TypeMap, mapVal: entries}

	case zzz.ShapeNode, zzz.ShapeTuple:
		fields, err := unmarshalNode(d, shape)
		if err != nil {
			return err
		}
		*v = Value{typ: TypeNode, nodeVal: fields}

	case zzz.ShapeVariant:
		tag, err := d.Variant()
		if err != nil {
			return err
		}
		var payload *Value
		if d.PayloadFollows() {
			shape, err := d.Next()
			if err != nil {
				return err
			}
			fields, err := unmarshalNode(d, shape)
			if err != nil {
				return err
			}
			payload = &Value{typ: TypeNode, nodeVal: fields}
		}
		*v = *Variant(tag, payload)
	}
	return nil
}

func unmarshalNode(d *zzz.Deserializer, shape zzz.Shape) ([]Field, error) {
	var fields []Field
	readField := func(name string) error {
		val := &Value{}
		if err := val.UnmarshalZZZ(d); err != nil {
			return err
		}
		fields = append(fields, Field{Name: name, Value: val})
		return nil
	}

	var err error
	if shape == zzz.ShapeTuple {
		err = d.Tuple(func() error { return readField("") })
	} else {
		err = d.Node(readField)
	}
	return fields, err
}

// Parse decodes zzz text into a Value.
func Parse(input string) (*Value, error) {
	v := &Value{}
	if err := zzz.UnmarshalString(input, v, zzz.DefaultDecodeOptions()); err != nil {
		return nil, err
	}
	return v, nil
}

// Emit encodes v as compact zzz text.
func Emit(v *Value) (string, error) {
	return zzz.ToString(v)
}

// EmitPretty encodes v with one element per line.
func EmitPretty(v *Value) (string, error) {
	return zzz.MarshalString(v, zzz.PrettyEncodeOptions())
}
