package rules

import (
	"errors"
	"fmt"
)

// ErrPattern is matched by every PatternError via errors.Is.
var ErrPattern = errors.New("invalid pattern")

// PatternError reports a rule that failed to compile.
type PatternError struct {
	Set     string // rule set name, e.g. exclude_rules
	Index   int    // position within the set
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%s[%d] %q: %v", e.Set, e.Index, e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// Is reports ErrPattern so callers need not know the concrete type.
func (e *PatternError) Is(target error) bool { return target == ErrPattern }
