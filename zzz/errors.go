package zzz

import (
	"fmt"
)

// Kind identifies the class of an Error.
type Kind uint8

const (
	// KindMessage is a free-form error raised by the value model, for
	// example a numeric range violation or an unknown struct field.
	KindMessage Kind = iota

	// Grammar-raised kinds, produced directly by the Deserializer.
	KindEOF
	KindSyntax
	KindExpectedBoolean
	KindExpectedF32
	KindExpectedI32
	KindExpectedString
	KindExpectedNode
	KindExpectedNull
	KindExpectedArray
	KindExpectedArrayComma
	KindExpectedArrayEnd
	KindExpectedEnum
	KindExpectedMap
	KindExpectedMapComma
	KindExpectedMapColon
	KindExpectedMapEnd
	KindTrailingCharacters

	numKinds
)

// kindMessages has one entry per Kind; a Kind without a message is a bug
// caught by TestKindMessages.
var kindMessages = [numKinds]string{
	KindMessage:            "message",
	KindEOF:                "unexpected end of input",
	KindSyntax:             "syntax error",
	KindExpectedBoolean:    "expected boolean",
	KindExpectedF32:        "expected f32",
	KindExpectedI32:        "expected i32",
	KindExpectedString:     "expected string",
	KindExpectedNode:       "expected node",
	KindExpectedNull:       "expected null",
	KindExpectedArray:      "expected array",
	KindExpectedArrayComma: "expected array comma",
	KindExpectedArrayEnd:   "expected array end",
	KindExpectedEnum:       "expected enum",
	KindExpectedMap:        "expected map",
	KindExpectedMapComma:   "expected map comma",
	KindExpectedMapColon:   "expected map colon",
	KindExpectedMapEnd:     "expected map end",
	KindTrailingCharacters: "trailing characters",
}

// String returns the fixed message of the kind.
func (k Kind) String() string {
	if k >= numKinds {
		return fmt.Sprintf("kind(%d)", k)
	}
	return kindMessages[k]
}

// Position represents a source location.
type Position struct {
	Line   int
	Column int
	Offset int
}

// String returns position as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// IsValid reports whether the position points into some input.
func (p Position) IsValid() bool {
	return p.Line > 0
}

// Error is the error type returned by the Serializer and the Deserializer.
//
// Grammar-raised errors carry the Kind of the token that was expected and the
// Position where the cursor stood. Value-model errors have KindMessage, a
// message, and no position.
type Error struct {
	Kind Kind
	Msg  string
	Pos  Position
}

func (e *Error) Error() string {
	msg := e.Msg
	if e.Kind != KindMessage {
		msg = e.Kind.String()
		if e.Msg != "" {
			msg += ": " + e.Msg
		}
	}
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s at %s", msg, e.Pos)
	}
	return msg
}

// Is matches errors of the same kind, so the sentinels below work with
// errors.Is regardless of position. Message errors also compare the text.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return e.Kind != KindMessage || t.Msg == e.Msg
}

// Custom builds a value-model error from a formatted message.
// Implementations of Marshaler and Unmarshaler use it to reject values.
func Custom(format string, args ...any) *Error {
	return &Error{Kind: KindMessage, Msg: fmt.Sprintf(format, args...)}
}

// Sentinel errors, one per grammar-raised kind.
var (
	ErrEOF                = &Error{Kind: KindEOF}
	ErrSyntax             = &Error{Kind: KindSyntax}
	ErrExpectedBoolean    = &Error{Kind: KindExpectedBoolean}
	ErrExpectedF32        = &Error{Kind: KindExpectedF32}
	ErrExpectedI32        = &Error{Kind: KindExpectedI32}
	ErrExpectedString     = &Error{Kind: KindExpectedString}
	ErrExpectedNode       = &Error{Kind: KindExpectedNode}
	ErrExpectedNull       = &Error{Kind: KindExpectedNull}
	ErrExpectedArray      = &Error{Kind: KindExpectedArray}
	ErrExpectedArrayComma = &Error{Kind: KindExpectedArrayComma}
	ErrExpectedArrayEnd   = &Error{Kind: KindExpectedArrayEnd}
	ErrExpectedEnum       = &Error{Kind: KindExpectedEnum}
	ErrExpectedMap        = &Error{Kind: KindExpectedMap}
	ErrExpectedMapComma   = &Error{Kind: KindExpectedMapComma}
	ErrExpectedMapColon   = &Error{Kind: KindExpectedMapColon}
	ErrExpectedMapEnd     = &Error{Kind: KindExpectedMapEnd}
	ErrTrailingCharacters = &Error{Kind: KindTrailingCharacters}
)
