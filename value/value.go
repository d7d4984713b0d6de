// Package value provides Value, a dynamic tree over the zzz data model for
// data whose shape is not known at compile time.
package value

import (
	"fmt"
	"math"
)

// Type represents zzz value types.
type Type uint8

const (
	TypeNull Type = iota
	TypeBool
	TypeF32
	TypeI32
	TypeStr
	TypeArray
	TypeMap
	TypeNode    // Named (a: 1) or positional (1, 2) fields
	TypeVariant // Enum tag with optional node payload
)

// String returns the type name.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeF32:
		return "f32"
	case TypeI32:
		return "i32"
	case TypeStr:
		return "str"
	case TypeArray:
		return "array"
	case TypeMap:
		return "map"
	case TypeNode:
		return "node"
	case TypeVariant:
		return "variant"
	default:
		return "unknown"
	}
}

// Value represents a zzz value. A nil *Value is null.
type Value struct {
	typ Type

	// Scalar values (only one valid based on typ)
	boolVal bool
	f32Val  float32
	i32Val  int32
	strVal  string

	// Container values
	arrayVal []*Value
	mapVal   []MapEntry
	nodeVal  []Field

	// Variant
	variantVal *VariantValue
}

// MapEntry represents a key-value pair in a map. Keys may be any value.
type MapEntry struct {
	Key   *Value
	Value *Value
}

// Field represents a node field. Positional fields have an empty Name.
type Field struct {
	Name  string
	Value *Value
}

// VariantValue represents an enum variant.
type VariantValue struct {
	Tag     string // The variant tag
	Payload *Value // nil for a unit variant, otherwise a node
}

// ============================================================
// Constructors
// ============================================================

// Null creates a null value.
func Null() *Value {
	return &Value{typ: TypeNull}
}

// Bool creates a boolean value.
func Bool(v bool) *Value {
	return &Value{typ: TypeBool, boolVal: v}
}

// F32 creates a float value.
func F32(v float32) *Value {
	return &Value{typ: TypeF32, f32Val: v}
}

// I32 creates an integer value.
func I32(v int32) *Value {
	return &Value{typ: TypeI32, i32Val: v}
}

// Str creates a string value.
func Str(v string) *Value {
	return &Value{typ: TypeStr, strVal: v}
}

// Array creates an array value.
func Array(values ...*Value) *Value {
	return &Value{typ: TypeArray, arrayVal: values}
}

// Map creates a map value; entry order is kept.
func Map(entries ...MapEntry) *Value {
	return &Value{typ: TypeMap, mapVal: entries}
}

// Entry creates a MapEntry for use in Map construction.
func Entry(key, value *Value) MapEntry {
	return MapEntry{Key: key, Value: value}
}

// Node creates a node with named fields.
func Node(fields ...Field) *Value {
	return &Value{typ: TypeNode, nodeVal: fields}
}

// Tuple creates a node with positional fields.
func Tuple(values ...*Value) *Value {
	fields := make([]Field, len(values))
	for i, v := range values {
		fields[i] = Field{Value: v}
	}
	return &Value{typ: TypeNode, nodeVal: fields}
}

// FieldVal creates a Field for use in Node construction.
func FieldVal(name string, value *Value) Field {
	return Field{Name: name, Value: value}
}

// Variant creates an enum variant. payload is nil for a unit variant and a
// node otherwise.
func Variant(tag string, payload *Value) *Value {
	return &Value{
		typ: TypeVariant,
		variantVal: &VariantValue{
			Tag:     tag,
			Payload: payload,
		},
	}
}

// NewtypeVariant creates a variant carrying a single value, written Tag(v).
func NewtypeVariant(tag string, v *Value) *Value {
	return Variant(tag, Tuple(v))
}

// ============================================================
// Accessors
// ============================================================

// Type returns the value type.
func (v *Value) Type() Type {
	if v == nil {
		return TypeNull
	}
	return v.typ
}

// IsNull returns true if this is a null value.
func (v *Value) IsNull() bool {
	return v == nil || v.typ == TypeNull
}

func (v *Value) expect(t Type) error {
	if v == nil {
		return fmt.Errorf("value: nil value")
	}
	if v.typ != t {
		return fmt.Errorf("value: expected %s, got %s", t, v.typ)
	}
	return nil
}

// AsBool returns the boolean value.
func (v *Value) AsBool() (bool, error) {
	if err := v.expect(TypeBool); err != nil {
		return false, err
	}
	return v.boolVal, nil
}

// AsF32 returns the float value.
func (v *Value) AsF32() (float32, error) {
	if err := v.expect(TypeF32); err != nil {
		return 0, err
	}
	return v.f32Val, nil
}

// AsI32 returns the integer value.
func (v *Value) AsI32() (int32, error) {
	if err := v.expect(TypeI32); err != nil {
		return 0, err
	}
	return v.i32Val, nil
}

// AsStr returns the string value.
func (v *Value) AsStr() (string, error) {
	if err := v.expect(TypeStr); err != nil {
		return "", err
	}
	return v.strVal, nil
}

// AsArray returns the array elements.
func (v *Value) AsArray() ([]*Value, error) {
	if err := v.expect(TypeArray); err != nil {
		return nil, err
	}
	return v.arrayVal, nil
}

// AsMap returns the map entries.
func (v *Value) AsMap() ([]MapEntry, error) {
	if err := v.expect(TypeMap); err != nil {
		return nil, err
	}
	return v.mapVal, nil
}

// AsNode returns the node fields.
func (v *Value) AsNode() ([]Field, error) {
	if err := v.expect(TypeNode); err != nil {
		return nil, err
	}
	return v.nodeVal, nil
}

// AsVariant returns the variant.
func (v *Value) AsVariant() (*VariantValue, error) {
	if err := v.expect(TypeVariant); err != nil {
		return nil, err
	}
	return v.variantVal, nil
}

// Len returns the length of an array, map, or node.
func (v *Value) Len() int {
	switch v.Type() {
	case TypeArray:
		return len(v.arrayVal)
	case TypeMap:
		return len(v.mapVal)
	case TypeNode:
		return len(v.nodeVal)
	default:
		return 0
	}
}

// Get returns a field value by name from a node, or the value of the first
// map entry whose key is the string name.
func (v *Value) Get(name string) *Value {
	switch v.Type() {
	case TypeNode:
		for _, f := range v.nodeVal {
			if f.Name == name {
				return f.Value
			}
		}
	case TypeMap:
		for _, e := range v.mapVal {
			if e.Key.Type() == TypeStr && e.Key.strVal == name {
				return e.Value
			}
		}
	}
	return nil
}

// Index returns the i-th element of an array or positional node.
func (v *Value) Index(i int) (*Value, error) {
	switch v.Type() {
	case TypeArray:
		if i >= 0 && i < len(v.arrayVal) {
			return v.arrayVal[i], nil
		}
	case TypeNode:
		if i >= 0 && i < len(v.nodeVal) {
			return v.nodeVal[i].Value, nil
		}
	default:
		return nil, fmt.Errorf("value: %s is not indexable", v.Type())
	}
	return nil, fmt.Errorf("value: index %d out of bounds (len=%d)", i, v.Len())
}

// ============================================================
// Mutators
// ============================================================

// Set sets a named field on a node, or the entry with string key name on a
// map, appending it when absent.
func (v *Value) Set(name string, val *Value) {
	switch v.Type() {
	case TypeNode:
		for i := range v.nodeVal {
			if v.nodeVal[i].Name == name {
				v.nodeVal[i].Value = val
				return
			}
		}
		v.nodeVal = append(v.nodeVal, Field{Name: name, Value: val})
	case TypeMap:
		for i := range v.mapVal {
			if k := v.mapVal[i].Key; k.Type() == TypeStr && k.strVal == name {
				v.mapVal[i].Value = val
				return
			}
		}
		v.mapVal = append(v.mapVal, MapEntry{Key: Str(name), Value: val})
	default:
		panic("value: cannot set on non-node/map")
	}
}

// Append adds a value to an array.
func (v *Value) Append(val *Value) {
	if v.Type() != TypeArray {
		panic("value: cannot append to non-array")
	}
	v.arrayVal = append(v.arrayVal, val)
}

// ============================================================
// Equality
// ============================================================

// Equal reports whether v and other are the same value. NaN equals NaN, so
// every value equals its own decoded encoding.
func (v *Value) Equal(other *Value) bool {
	if v.Type() != other.Type() {
		return false
	}

	switch v.Type() {
	case TypeNull:
		return true
	case TypeBool:
		return v.boolVal == other.boolVal
	case TypeF32:
		a, b := float64(v.f32Val), float64(other.f32Val)
		return a == b || (math.IsNaN(a) && math.IsNaN(b))
	case TypeI32:
		return v.i32Val == other.i32Val
	case TypeStr:
		return v.strVal == other.strVal
	case TypeArray:
		if len(v.arrayVal) != len(other.arrayVal) {
			return false
		}
		for i := range v.arrayVal {
			if !v.arrayVal[i].Equal(other.arrayVal[i]) {
				return false
			}
		}
		return true
	case TypeMap:
		if len(v.mapVal) != len(other.mapVal) {
			return false
		}
		for i := range v.mapVal {
			if !v.mapVal[i].Key.Equal(other.mapVal[i].Key) || !v.mapVal[i].Value.Equal(other.mapVal[i].Value) {
				return false
			}
		}
		return true
	case TypeNode:
		if len(v.nodeVal) != len(other.nodeVal) {
			return false
		}
		for i := range v.nodeVal {
			if v.nodeVal[i].Name != other.nodeVal[i].Name || !v.nodeVal[i].Value.Equal(other.nodeVal[i].Value) {
				return false
			}
		}
		return true
	case TypeVariant:
		a, b := v.variantVal, other.variantVal
		return a.Tag == b.Tag && (a.Payload == nil) == (b.Payload == nil) && a.Payload.Equal(b.Payload)
	}
	return false
}
