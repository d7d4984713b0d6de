package zzz

// ToString encodes v as compact zzz text.
func ToString(v any) (string, error) {
	return MarshalString(v, DefaultEncodeOptions())
}

// MarshalString encodes v with custom options.
func MarshalString(v any, opts EncodeOptions) (string, error) {
	s := NewSerializer(opts)
	if err := s.Encode(v); err != nil {
		return "", err
	}
	return s.String(), nil
}

// Marshal encodes v as compact zzz text.
func Marshal(v any) ([]byte, error) {
	return MarshalWithOptions(v, DefaultEncodeOptions())
}

// MarshalWithOptions encodes v with custom options.
func MarshalWithOptions(v any, opts EncodeOptions) ([]byte, error) {
	str, err := MarshalString(v, opts)
	if err != nil {
		return nil, err
	}
	return []byte(str), nil
}

// FromString decodes input into a new T.
func FromString[T any](input string) (T, error) {
	var v T
	if err := UnmarshalString(input, &v, DefaultDecodeOptions()); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// UnmarshalString decodes input into v, which must be a non-nil pointer or
// an Unmarshaler. The whole input must be one value plus whitespace.
func UnmarshalString(input string, v any, opts DecodeOptions) error {
	d := NewDeserializer(input, opts)
	if err := d.Decode(v); err != nil {
		return err
	}
	return d.End()
}

// Unmarshal decodes data into v.
func Unmarshal(data []byte, v any) error {
	return UnmarshalWithOptions(data, v, DefaultDecodeOptions())
}

// UnmarshalWithOptions decodes data into v with custom options.
// data is copied once so decoded strings never alias the caller's buffer.
func UnmarshalWithOptions(data []byte, v any, opts DecodeOptions) error {
	return UnmarshalString(string(data), v, opts)
}
