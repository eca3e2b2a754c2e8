package isa

import (
	"fmt"
	"strings"
)

// ModelError reports a malformed ISA description. Line is zero when the
// problem is not tied to a single line.
type ModelError struct {
	Line     int
	Mnemonic string
	Modifier string
	Reason   string
}

func (e *ModelError) Error() string {
	var b strings.Builder
	if e.Line > 0 {
		fmt.Fprintf(&b, "line %d: ", e.Line)
	}
	switch {
	case e.Mnemonic != "" && e.Modifier != "":
		fmt.Fprintf(&b, "instruction %q, modifier %q: ", e.Mnemonic, e.Modifier)
	case e.Mnemonic != "":
		fmt.Fprintf(&b, "instruction %q: ", e.Mnemonic)
	case e.Modifier != "":
		fmt.Fprintf(&b, "modifier %q: ", e.Modifier)
	}
	b.WriteString(e.Reason)
	return b.String()
}
