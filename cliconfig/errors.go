package cliconfig

import "errors"

// ErrUnexpectedToken means the selector-expression tokenizer or parser
// found a token it could not fit into the grammar at that position.
var ErrUnexpectedToken = errors.New("cliconfig: unexpected token")

// ErrUnexpectedEOF means the selector expression ended before a required
// token (an argument, a closing paren) was seen.
var ErrUnexpectedEOF = errors.New("cliconfig: unexpected end of selector")

// ErrUnknownEngine means the selector's outer call name does not name
// one of the supported search engines.
var ErrUnknownEngine = errors.New("cliconfig: unknown engine")

// ErrMalformedSelector means the selector parsed as valid syntax but
// does not have the shape ParseConfiguration requires (an engine whose
// first argument carries no value). An engine with no argument at all is
// not an error: it resolves to DefaultOptions with an empty heuristic name.
var ErrMalformedSelector = errors.New("cliconfig: malformed selector")

// ErrUnknownOption means a key=value argument's key does not name a
// recognized numeric or enum option.
var ErrUnknownOption = errors.New("cliconfig: unknown option")

// ErrInvalidOptionValue means a recognized option's value is out of its
// valid range (a size limit < 1, a sample count < 1, and so on).
var ErrInvalidOptionValue = errors.New("cliconfig: invalid option value")

// ErrUnknownShrinkStrategy means shrink_strategy named something other
// than fh_bucket, bisimulation, or dfp — the only three mas.ShrinkStrategy
// values this build supports. Per the design notes' "reject unknown enum
// values" instruction, this is fatal at configuration time rather than
// silently falling back to a default.
var ErrUnknownShrinkStrategy = errors.New("cliconfig: unknown shrink strategy")

// ErrUnknownMergeStrategy means merge_strategy named something other
// than linear_cg, linear_reverse_level, or linear_given.
var ErrUnknownMergeStrategy = errors.New("cliconfig: unknown merge strategy")
