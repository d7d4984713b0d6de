package zzz

// EncodeOptions configures the Serializer.
type EncodeOptions struct {
	// Pretty puts every element, entry and field on its own line.
	Pretty bool

	// Indent string for pretty mode (default: "  ")
	Indent string

	// MaxDepth limits nesting of arrays, maps and nodes, and separately the
	// chain of pointers followed, so cyclic values fail instead of recursing
	// forever (default: 128, the decoder's default)
	MaxDepth int
}

// DefaultEncodeOptions returns the compact canonical form.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Pretty:   false,
		Indent:   "  ",
		MaxDepth: 128,
	}
}

// PrettyEncodeOptions returns options for human-readable output.
func PrettyEncodeOptions() EncodeOptions {
	return EncodeOptions{
		Pretty:   true,
		Indent:   "  ",
		MaxDepth: 128,
	}
}

// DecodeOptions configures the Deserializer.
type DecodeOptions struct {
	// MaxDepth limits nesting of arrays, maps and nodes (default: 128)
	MaxDepth int

	// DisallowUnknownFields rejects node fields that have no matching
	// struct field instead of skipping them.
	DisallowUnknownFields bool
}

// DefaultDecodeOptions returns sensible defaults.
func DefaultDecodeOptions() DecodeOptions {
	return DecodeOptions{
		MaxDepth: 128,
	}
}

func (o EncodeOptions) withDefaults() EncodeOptions {
	if o.Indent == "" {
		o.Indent = "  "
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = 128
	}
	return o
}

func (o DecodeOptions) withDefaults() DecodeOptions {
	if o.MaxDepth == 0 {
		o.MaxDepth = 128
	}
	return o
}
