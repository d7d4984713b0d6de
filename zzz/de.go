package zzz

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Shape classifies the value at the cursor for self-describing decoding.
type Shape uint8

const (
	ShapeBool Shape = iota
	ShapeF32
	ShapeI32
	ShapeStr
	ShapeNull
	ShapeArray
	ShapeMap
	ShapeNode  // Node with named fields: (a: 1, b: 2), or ()
	ShapeTuple // Node with positional fields: (1, 2)
	ShapeVariant
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeBool:
		return "bool"
	case ShapeF32:
		return "f32"
	case ShapeI32:
		return "i32"
	case ShapeStr:
		return "str"
	case ShapeNull:
		return "null"
	case ShapeArray:
		return "array"
	case ShapeMap:
		return "map"
	case ShapeNode:
		return "node"
	case ShapeTuple:
		return "tuple"
	case ShapeVariant:
		return "variant"
	default:
		return "unknown"
	}
}

// Next looks at the value under the cursor and reports its shape without
// consuming it.
func (d *Deserializer) Next() (Shape, error) {
	ch, err := d.peek()
	if err != nil {
		return 0, err
	}

	switch ch {
	case '[':
		return ShapeArray, nil
	case '{':
		return ShapeMap, nil
	case '(':
		if d.namedNodeFollows() {
			return ShapeNode, nil
		}
		return ShapeTuple, nil
	case '"':
		return ShapeStr, nil
	}

	if ch == '-' || ch == '+' || isDigit(ch) {
		n, isFloat := numeralLen(d.rest())
		if n == 0 {
			return 0, d.failf(KindSyntax, "malformed number")
		}
		if isFloat {
			return ShapeF32, nil
		}
		return ShapeI32, nil
	}

	if isIdentStart(ch) {
		word := d.rest()[:identLen(d.rest())]
		switch word {
		case "true", "false":
			return ShapeBool, nil
		case "null":
			return ShapeNull, nil
		case "inf", "nan":
			return ShapeF32, nil
		}
		return ShapeVariant, nil
	}

	return 0, d.failf(KindSyntax, "unexpected character %q", ch)
}

// namedNodeFollows looks past the '(' under the cursor: the node is named
// when it is empty or opens with "ident :".
func (d *Deserializer) namedNodeFollows() bool {
	s := d.rest()[1:]
	i := whitespaceLen(s)
	if i < len(s) && s[i] == ')' {
		return true
	}
	n := identLen(s[i:])
	if n == 0 || isKeyword(s[i:i+n]) {
		return false
	}
	i += n
	i += whitespaceLen(s[i:])
	return i < len(s) && s[i] == ':'
}

// ============================================================
// Primitives
// ============================================================

// Bool reads true or false.
func (d *Deserializer) Bool() (bool, error) {
	if _, err := d.peek(); err != nil {
		return false, err
	}
	switch {
	case d.atWord("true"):
		d.advanceN(4)
		return true, nil
	case d.atWord("false"):
		d.advanceN(5)
		return false, nil
	}
	return false, d.fail(KindExpectedBoolean)
}

// F32 reads a float. Integer numerals are accepted.
func (d *Deserializer) F32() (float32, error) {
	if _, err := d.peek(); err != nil {
		return 0, err
	}
	n, _ := numeralLen(d.rest())
	if n == 0 {
		return 0, d.fail(KindExpectedF32)
	}
	f, err := strconv.ParseFloat(d.rest()[:n], 32)
	if err != nil {
		return 0, d.fail(KindExpectedF32)
	}
	d.advanceN(n)
	return float32(f), nil
}

// I32 reads a decimal integer in the int32 range.
func (d *Deserializer) I32() (int32, error) {
	if _, err := d.peek(); err != nil {
		return 0, err
	}
	n, isFloat := numeralLen(d.rest())
	if n == 0 || isFloat {
		return 0, d.fail(KindExpectedI32)
	}
	i, err := strconv.ParseInt(d.rest()[:n], 10, 32)
	if err != nil {
		return 0, d.fail(KindExpectedI32)
	}
	d.advanceN(n)
	return int32(i), nil
}

// Str reads a quoted string. Without escapes the result shares memory with
// the input.
func (d *Deserializer) Str() (string, error) {
	ch, err := d.peek()
	if err != nil {
		return "", err
	}
	if ch != '"' {
		return "", d.fail(KindExpectedString)
	}
	d.advance() // consume opening "

	start := d.pos
	var sb *strings.Builder
	for {
		if d.pos >= len(d.input) {
			return "", d.failf(KindExpectedString, "unterminated string")
		}

		ch := d.input[d.pos]
		if ch == '"' {
			s := d.input[start:d.pos]
			d.advance() // consume closing "
			if sb == nil {
				return s, nil
			}
			sb.WriteString(s)
			return sb.String(), nil
		}

		if ch != '\\' {
			d.advance()
			continue
		}

		if sb == nil {
			sb = &strings.Builder{}
		}
		sb.WriteString(d.input[start:d.pos])
		if err := d.unescape(sb); err != nil {
			return "", err
		}
		start = d.pos
	}
}

// unescape decodes the escape sequence under the cursor into sb.
func (d *Deserializer) unescape(sb *strings.Builder) error {
	d.advance() // consume \
	if d.pos >= len(d.input) {
		return d.failf(KindExpectedString, "unterminated escape")
	}

	escaped := d.input[d.pos]
	switch escaped {
	case '"', '\\', '/':
		sb.WriteByte(escaped)
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case '0':
		sb.WriteByte(0)
	case 'u':
		if d.pos+5 > len(d.input) {
			return d.failf(KindExpectedString, "short unicode escape")
		}
		r, err := strconv.ParseUint(d.input[d.pos+1:d.pos+5], 16, 32)
		if err != nil {
			return d.failf(KindExpectedString, "invalid unicode escape")
		}
		var buf [utf8.UTFMax]byte
		sb.Write(buf[:utf8.EncodeRune(buf[:], rune(r))])
		d.advanceN(4)
	default:
		return d.failf(KindExpectedString, "invalid escape %q", escaped)
	}
	d.advance()
	return nil
}

// Null reads the null literal.
func (d *Deserializer) Null() error {
	return d.literal("null", KindExpectedNull)
}

// IsNull reports whether the next token is the null literal, without
// consuming it.
func (d *Deserializer) IsNull() bool {
	d.skipWhitespace()
	return d.atWord("null")
}

// ============================================================
// Composites
// ============================================================

// seq walks the elements of a delimited sequence whose opener has been
// consumed.
type seq struct {
	d       *Deserializer
	close   byte
	comma   Kind
	end     Kind
	started bool
}

// next reports whether another element follows, consuming the separator in
// front of it or the closing delimiter.
func (s *seq) next() (bool, error) {
	ch, err := s.d.peek()
	if err != nil {
		return false, s.d.fail(s.end)
	}
	if ch == s.close {
		s.d.advance()
		s.d.leave()
		return false, nil
	}
	if s.started {
		if ch != ',' {
			return false, s.d.fail(s.comma)
		}
		s.d.advance()
	}
	s.started = true
	return true, nil
}

// open consumes the opening delimiter of a composite.
func (d *Deserializer) open(ch byte, kind Kind) error {
	c, err := d.peek()
	if err != nil {
		return err
	}
	if c != ch {
		return d.fail(kind)
	}
	d.advance()
	return d.enter()
}

// Array reads [a, b, ...], calling elem once per element with the cursor
// on the element.
func (d *Deserializer) Array(elem func() error) error {
	if err := d.open('[', KindExpectedArray); err != nil {
		return err
	}
	s := seq{d: d, close: ']', comma: KindExpectedArrayComma, end: KindExpectedArrayEnd}
	for {
		more, err := s.next()
		if err != nil || !more {
			return err
		}
		if err := elem(); err != nil {
			return err
		}
	}
}

// Map reads {k: v, ...}, calling key and then value for every entry.
func (d *Deserializer) Map(key, value func() error) error {
	if err := d.open('{', KindExpectedMap); err != nil {
		return err
	}
	s := seq{d: d, close: '}', comma: KindExpectedMapComma, end: KindExpectedMapEnd}
	for {
		more, err := s.next()
		if err != nil || !more {
			return err
		}
		if err := key(); err != nil {
			return err
		}
		if err := d.consume(':', KindExpectedMapColon); err != nil {
			return err
		}
		if err := value(); err != nil {
			return err
		}
	}
}

// Node reads a node with named fields, (name: v, ...). field is called with
// the cursor on the value and must consume it, with Decode or Skip.
func (d *Deserializer) Node(field func(name string) error) error {
	if err := d.open('(', KindExpectedNode); err != nil {
		return err
	}
	s := seq{d: d, close: ')', comma: KindExpectedMapComma, end: KindExpectedMapEnd}
	for {
		more, err := s.next()
		if err != nil || !more {
			return err
		}
		name, err := d.ident(KindExpectedNode)
		if err != nil {
			return err
		}
		if err := d.consume(':', KindExpectedMapColon); err != nil {
			return err
		}
		if err := field(name); err != nil {
			return err
		}
	}
}

// Tuple reads a node with positional fields, (a, b, ...).
func (d *Deserializer) Tuple(elem func() error) error {
	if err := d.open('(', KindExpectedNode); err != nil {
		return err
	}
	s := seq{d: d, close: ')', comma: KindExpectedArrayComma, end: KindExpectedArrayEnd}
	for {
		more, err := s.next()
		if err != nil || !more {
			return err
		}
		if err := elem(); err != nil {
			return err
		}
	}
}

// Variant reads an enum tag. When tags are given, any other tag fails with
// KindExpectedEnum; the payload, if any, is read by the caller.
func (d *Deserializer) Variant(tags ...string) (string, error) {
	pos := d.Position()
	tag, err := d.ident(KindExpectedEnum)
	if err != nil {
		return "", err
	}
	if len(tags) == 0 {
		return tag, nil
	}
	for _, t := range tags {
		if t == tag {
			return tag, nil
		}
	}
	return "", &Error{Kind: KindExpectedEnum, Msg: "unknown variant " + strconv.Quote(tag), Pos: pos}
}

// PayloadFollows reports whether a variant payload, a node, follows the tag
// just read.
func (d *Deserializer) PayloadFollows() bool {
	d.skipWhitespace()
	return strings.HasPrefix(d.rest(), "(")
}

// Newtype reads the single-value payload (v) of a variant into v.
func (d *Deserializer) Newtype(v any) error {
	if err := d.open('(', KindExpectedNode); err != nil {
		return err
	}
	if err := d.Decode(v); err != nil {
		return err
	}
	if err := d.consume(')', KindExpectedArrayEnd); err != nil {
		return err
	}
	d.leave()
	return nil
}

// ident reads an identifier that is not a keyword.
func (d *Deserializer) ident(kind Kind) (string, error) {
	if _, err := d.peek(); err != nil {
		return "", err
	}
	n := identLen(d.rest())
	if n == 0 || isKeyword(d.rest()[:n]) {
		return "", d.fail(kind)
	}
	word := d.rest()[:n]
	d.advanceN(n)
	return word, nil
}

// Skip consumes one value of any shape.
func (d *Deserializer) Skip() error {
	shape, err := d.Next()
	if err != nil {
		return err
	}

	switch shape {
	case ShapeBool:
		_, err = d.Bool()
	case ShapeF32:
		_, err = d.F32()
	case ShapeI32:
		_, err = d.I32()
	case ShapeStr:
		_, err = d.Str()
	case ShapeNull:
		err = d.Null()
	case ShapeArray:
		err = d.Array(d.Skip)
	case ShapeMap:
		err = d.Map(d.Skip, d.Skip)
	case ShapeNode:
		err = d.Node(func(string) error { return d.Skip() })
	case ShapeTuple:
		err = d.Tuple(d.Skip)
	case ShapeVariant:
		if _, err = d.Variant(); err == nil && d.PayloadFollows() {
			err = d.Skip()
		}
	}
	return err
}
