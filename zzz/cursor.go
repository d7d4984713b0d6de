package zzz

import (
	"fmt"
	"strings"
)

// Deserializer reads zzz text. It owns a forward-only cursor over the input;
// the only lookahead is peeking at the bytes of the next token.
//
// A Deserializer is created per decode call and must not be shared between
// goroutines.
type Deserializer struct {
	input string
	pos   int // Current position in input
	line  int // Current line number (1-based)
	col   int // Current column number (1-based)
	depth int
	opts  DecodeOptions
}

// NewDeserializer creates a Deserializer over input.
func NewDeserializer(input string, opts DecodeOptions) *Deserializer {
	return &Deserializer{
		input: input,
		pos:   0,
		line:  1,
		col:   1,
		opts:  opts.withDefaults(),
	}
}

// End checks that only whitespace and comments remain.
func (d *Deserializer) End() error {
	d.skipWhitespace()
	if d.pos < len(d.input) {
		return d.fail(KindTrailingCharacters)
	}
	return nil
}

// Position returns the cursor position.
func (d *Deserializer) Position() Position {
	return Position{Line: d.line, Column: d.col, Offset: d.pos}
}

// Cursor primitives

// peek skips whitespace and returns the next byte without consuming it.
func (d *Deserializer) peek() (byte, error) {
	d.skipWhitespace()
	if d.pos >= len(d.input) {
		return 0, d.fail(KindEOF)
	}
	return d.input[d.pos], nil
}

func (d *Deserializer) rest() string {
	return d.input[d.pos:]
}

func (d *Deserializer) advance() {
	if d.pos < len(d.input) {
		ch := d.input[d.pos]
		if ch == '\n' {
			d.line++
			d.col = 1
		} else if ch&0xC0 != 0x80 {
			// UTF-8 continuation bytes do not start a new column.
			d.col++
		}
		d.pos++
	}
}

func (d *Deserializer) advanceN(n int) {
	for i := 0; i < n; i++ {
		d.advance()
	}
}

// consume expects the single-byte token ch. Running out of input counts as a
// mismatch: the caller is waiting for a delimiter, not for any value.
func (d *Deserializer) consume(ch byte, kind Kind) error {
	c, err := d.peek()
	if err != nil || c != ch {
		return d.fail(kind)
	}
	d.advance()
	return nil
}

// literal consumes the keyword word, failing with kind when the next token is
// anything else.
func (d *Deserializer) literal(word string, kind Kind) error {
	if _, err := d.peek(); err != nil {
		return err
	}
	if !d.atWord(word) {
		return d.fail(kind)
	}
	d.advanceN(len(word))
	return nil
}

// atWord reports whether the identifier under the cursor is exactly word.
func (d *Deserializer) atWord(word string) bool {
	return identLen(d.rest()) == len(word) && strings.HasPrefix(d.rest(), word)
}

// skipWhitespace skips whitespace and // comments.
func (d *Deserializer) skipWhitespace() {
	n := whitespaceLen(d.rest())
	d.advanceN(n)
}

func (d *Deserializer) fail(kind Kind) *Error {
	return &Error{Kind: kind, Pos: d.Position()}
}

func (d *Deserializer) failf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Pos: d.Position()}
}

// enter records one more level of nesting.
func (d *Deserializer) enter() error {
	d.depth++
	if d.depth > d.opts.MaxDepth {
		return d.failf(KindSyntax, "nesting exceeds %d levels", d.opts.MaxDepth)
	}
	return nil
}

func (d *Deserializer) leave() {
	d.depth--
}

// Scanning helpers. They measure a token at the start of s without touching
// the cursor, so they double as lookahead.

// whitespaceLen returns the length of the whitespace and comment run that
// starts s.
func whitespaceLen(s string) int {
	i := 0
	for i < len(s) {
		ch := s[i]
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' {
			i++
			continue
		}
		if ch == '/' && i+1 < len(s) && s[i+1] == '/' {
			i += 2
			for i < len(s) && s[i] != '\n' {
				i++
			}
			continue
		}
		break
	}
	return i
}

// numeralLen returns the length of the numeral that starts s and whether it
// has a fractional part, an exponent, or is one of inf / nan.
func numeralLen(s string) (n int, isFloat bool) {
	i := 0
	signed := false
	if i < len(s) && (s[i] == '-' || s[i] == '+') {
		signed = true
		i++
	}

	if identLen(s[i:]) == 3 {
		if strings.HasPrefix(s[i:], "inf") {
			return i + 3, true
		}
		if !signed && strings.HasPrefix(s, "nan") {
			return 3, true
		}
	}

	start := i
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == start {
		return 0, false
	}

	// Decimal part
	if i+1 < len(s) && s[i] == '.' && isDigit(s[i+1]) {
		isFloat = true
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}

	// Exponent part, only taken when digits follow
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && isDigit(s[k]) {
			k++
		}
		if k > j {
			isFloat = true
			i = k
		}
	}

	return i, isFloat
}

// identLen returns the length of the identifier that starts s.
func identLen(s string) int {
	if len(s) == 0 || !isIdentStart(s[0]) {
		return 0
	}
	i := 1
	for i < len(s) && isIdentContinue(s[i]) {
		i++
	}
	return i
}

// Character classification

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isKeyword(s string) bool {
	switch s {
	case "true", "false", "null", "inf", "nan":
		return true
	}
	return false
}

// isIdent reports whether s can be written as a variant tag or field name.
func isIdent(s string) bool {
	return len(s) > 0 && identLen(s) == len(s) && !isKeyword(s)
}
