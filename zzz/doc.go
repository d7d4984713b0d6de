// Package zzz implements the zzz text notation, a compact codec for
// structured configuration and interchange data.
//
// zzz is designed to be:
//   - Round-trippable: everything the Serializer writes, the Deserializer
//     reads back to an equal value
//   - Strict: every malformed input fails with one fixed error kind
//   - Whitespace-insensitive between tokens
//   - Free of shared state: each call owns its buffer or cursor
//
// # Data Model
//
// Scalars: bool, f32, i32, str, null
// Containers: array, map (any key, insertion order), node (named or positional fields)
// Special: variant (enum tag with an optional node payload)
//
// # Syntax
//
// Bool:       true / false
// Null:       null
// I32:        42, -7
// F32:        1.0, -2.5e-3, inf, -inf, nan (always with '.' or an exponent when written)
// String:     "quoted with \" \\ \n \r \t \b \f \0 \uXXXX escapes"
// Array:      [1, 2, 3]
// Map:        {"a": 1, 2: [true]}
// Node:       (name: "x", size: 3) or (1, "two")
// Variant:    Unit, Newtype(5), Tuple(1, 2), Struct(x: 1, y: 2)
//
// Whitespace is space, tab, CR and LF; // starts a comment that runs to the
// end of the line. Both may appear between any two tokens.
//
// # Example
//
//	(
//	  name: "edge-proxy",
//	  ports: [80, 443],
//	  labels: {"tier": "front"},
//	  mode: Balanced(weight: 0.75),
//	  fallback: null
//	)
//
// # Go Values
//
// Encode and Decode map Go values by kind: structs become named nodes
// (field names from `zzz:"name,omitempty"` tags), slices and arrays become
// arrays, maps become maps, pointers become null or their target. Types
// implementing Marshaler and Unmarshaler describe themselves; that is how enums
// are expressed. The value package provides a dynamic Value for data whose
// shape is not known at compile time.
//
// # Errors
//
// Every failure is an *Error. Grammar-raised errors name the token that was
// expected (KindExpectedArrayComma, KindTrailingCharacters, ...) and carry the
// position of the cursor; value-model errors are KindMessage. Match them with
// errors.Is against the Err* sentinels.
package zzz
