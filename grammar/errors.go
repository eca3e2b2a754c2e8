package grammar

import (
	"fmt"
)

// ConflictError reports two registrations that disagree on a spelling or
// an identifier.
type ConflictError struct {
	Existing  Token
	Requested Token
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("token conflict: %s is already registered as %s", e.Requested, e.Existing)
}

// TargetError reports a per-operand modifier whose operand index is
// beyond the instruction's source count.
type TargetError struct {
	Mnemonic string
	Modifier string
	Sources  int
}

func (e *TargetError) Error() string {
	return fmt.Sprintf("instruction %q: modifier %q targets a source operand but the instruction has only %d", e.Mnemonic, e.Modifier, e.Sources)
}
