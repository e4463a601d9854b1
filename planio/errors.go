package planio

import "errors"

// ErrBadMagic means a section marker in the preprocessor stream did not
// match the token expected at that position — truncated input, a
// corrupted stream, or a file produced by an incompatible encoder.
var ErrBadMagic = errors.New("planio: magic marker mismatch")

// ErrVersionMismatch means the stream declared a schema version other
// than SchemaVersion. The reader never attempts to interpret an
// unrecognized schema.
var ErrVersionMismatch = errors.New("planio: preprocessor schema version mismatch")

// ErrMalformedInt means a token expected to be a decimal integer was not.
var ErrMalformedInt = errors.New("planio: malformed integer token")
