// Package schema defines the single error kind used across the pipeline.
// Any missing key, type mismatch, out-of-range value or unresolvable
// reference lookup is a schema error: the run aborts, nothing is skipped.
// Reference-table drift after a game update should surface loudly instead
// of silently producing an incomplete ranking.
package schema

import (
	"errors"
	"fmt"
)

// Error describes a schema failure at a specific path or lookup.
type Error struct {
	// Path is a dotted description of what failed, e.g.
	// "entry.succession_chara_array position_id==10" or "factor.json[1011]".
	Path string
	// Hint names the file most likely stale or malformed.
	Hint string
}

func (e *Error) Error() string {
	hint := e.Hint
	if hint == "" {
		hint = "verify your game_data JSON files match the expected schema"
	} else {
		hint = "update or fix " + hint
	}
	return fmt.Sprintf("missing or invalid data at: %s. The source JSONs appear incomplete or changed. Suggestion: %s.", e.Path, hint)
}

// New builds a schema error for the given path with an optional hint.
func New(path, hint string) *Error {
	return &Error{Path: path, Hint: hint}
}

// Newf is New with a formatted path.
func Newf(hint, format string, args ...interface{}) *Error {
	return &Error{Path: fmt.Sprintf(format, args...), Hint: hint}
}

// Is reports whether err is (or wraps) a schema error.
func Is(err error) bool {
	var se *Error
	return errors.As(err, &se)
}
