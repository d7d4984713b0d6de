package zzz

import (
	"math"
	"strconv"
	"strings"
)

// Serializer writes zzz text into an append-only buffer. Primitive writes
// never fail; composite writes fail only when a callback does.
//
// A Serializer is created per encode call and must not be shared between
// goroutines.
type Serializer struct {
	sb    strings.Builder
	opts  EncodeOptions
	depth int // open composites
	hops  int // pointer and interface indirections being followed
}

// NewSerializer creates a Serializer with an empty buffer.
func NewSerializer(opts EncodeOptions) *Serializer {
	return &Serializer{opts: opts.withDefaults()}
}

// String returns the text written so far.
func (s *Serializer) String() string {
	return s.sb.String()
}

// ============================================================
// Primitives
// ============================================================

// Bool writes true or false.
func (s *Serializer) Bool(b bool) {
	if b {
		s.sb.WriteString("true")
	} else {
		s.sb.WriteString("false")
	}
}

// F32 writes the shortest decimal that reads back as f. The text always has
// a decimal point or an exponent so it never reads as an integer.
func (s *Serializer) F32(f float32) {
	s.sb.WriteString(formatF32(f))
}

func formatF32(f float32) string {
	switch {
	case math.IsNaN(float64(f)):
		return "nan"
	case math.IsInf(float64(f), 1):
		return "inf"
	case math.IsInf(float64(f), -1):
		return "-inf"
	}

	str := strconv.FormatFloat(float64(f), 'g', -1, 32)
	if !strings.ContainsAny(str, ".e") {
		str += ".0"
	}
	return str
}

// I32 writes a decimal integer.
func (s *Serializer) I32(i int32) {
	s.sb.WriteString(strconv.FormatInt(int64(i), 10))
}

// Str writes a quoted, escaped string.
func (s *Serializer) Str(v string) {
	s.sb.WriteByte('"')
	writeEscaped(&s.sb, v)
	s.sb.WriteByte('"')
}

// Null writes the null literal.
func (s *Serializer) Null() {
	s.sb.WriteString("null")
}

// writeEscaped escapes a string for quoted output. Bytes other than the
// escaped ones, including invalid UTF-8, are copied as they are.
func writeEscaped(sb *strings.Builder, v string) {
	const hex = "0123456789abcdef"
	start := 0
	for i := 0; i < len(v); i++ {
		ch := v[i]
		var esc string
		switch ch {
		case '"':
			esc = `\"`
		case '\\':
			esc = `\\`
		case '\n':
			esc = `\n`
		case '\r':
			esc = `\r`
		case '\t':
			esc = `\t`
		case '\b':
			esc = `\b`
		case '\f':
			esc = `\f`
		default:
			if ch >= 0x20 && ch != 0x7f {
				continue
			}
		}
		sb.WriteString(v[start:i])
		if esc != "" {
			sb.WriteString(esc)
		} else {
			sb.WriteString(`\u00`)
			sb.WriteByte(hex[ch>>4])
			sb.WriteByte(hex[ch&0xF])
		}
		start = i + 1
	}
	sb.WriteString(v[start:])
}

// ============================================================
// Composites
// ============================================================

func (s *Serializer) open(ch byte) error {
	s.depth++
	if s.depth > s.opts.MaxDepth {
		return Custom("nesting exceeds %d levels", s.opts.MaxDepth)
	}
	s.sb.WriteByte(ch)
	return nil
}

// sep writes what goes in front of element i.
func (s *Serializer) sep(i int) {
	if i > 0 {
		s.sb.WriteByte(',')
	}
	if s.opts.Pretty {
		s.newline(s.depth)
	}
}

func (s *Serializer) close(ch byte, n int) {
	s.depth--
	if s.opts.Pretty && n > 0 {
		s.newline(s.depth)
	}
	s.sb.WriteByte(ch)
}

func (s *Serializer) colon() {
	if s.opts.Pretty {
		s.sb.WriteString(": ")
	} else {
		s.sb.WriteByte(':')
	}
}

func (s *Serializer) newline(depth int) {
	s.sb.WriteByte('\n')
	for i := 0; i < depth; i++ {
		s.sb.WriteString(s.opts.Indent)
	}
}

// Array writes n elements between brackets; elem writes element i.
func (s *Serializer) Array(n int, elem func(i int) error) error {
	return s.sequence('[', ']', n, elem)
}

// Tuple writes a node with n positional fields; elem writes field i.
func (s *Serializer) Tuple(n int, elem func(i int) error) error {
	return s.sequence('(', ')', n, elem)
}

func (s *Serializer) sequence(opener, closer byte, n int, elem func(i int) error) error {
	if err := s.open(opener); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		s.sep(i)
		if err := elem(i); err != nil {
			return err
		}
	}
	s.close(closer, n)
	return nil
}

// Map writes n entries in the order given; key and value write entry i.
func (s *Serializer) Map(n int, key, value func(i int) error) error {
	if err := s.open('{'); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		s.sep(i)
		if err := key(i); err != nil {
			return err
		}
		s.colon()
		if err := value(i); err != nil {
			return err
		}
	}
	s.close('}', n)
	return nil
}

// Node writes a node with the named fields; field writes the value of
// names[i].
func (s *Serializer) Node(names []string, field func(i int) error) error {
	for _, name := range names {
		if !isIdent(name) {
			return Custom("invalid field name %q", name)
		}
	}

	if err := s.open('('); err != nil {
		return err
	}
	for i, name := range names {
		s.sep(i)
		s.sb.WriteString(name)
		s.colon()
		if err := field(i); err != nil {
			return err
		}
	}
	s.close(')', len(names))
	return nil
}

// Variant writes an enum tag. A unit variant is the tag alone; otherwise the
// caller follows it with a node payload: Newtype, Tuple, Node, or Encode of a
// struct.
func (s *Serializer) Variant(tag string) error {
	if !isIdent(tag) {
		return Custom("invalid variant tag %q", tag)
	}
	s.sb.WriteString(tag)
	return nil
}

// Newtype writes the single-value payload (v).
func (s *Serializer) Newtype(v any) error {
	return s.Tuple(1, func(int) error { return s.Encode(v) })
}
