package isa

import (
	"strconv"
)

// NoOperand is the Index of a modifier that applies to the whole
// instruction rather than to one source operand.
const NoOperand = -1

// ModName is a modifier reference split into its base name and the
// source operand it applies to, if any. "neg1" is ModName{"neg", 1}.
type ModName struct {
	Base  string
	Index int
}

var swizzles = map[string]struct{}{
	"lane":      {},
	"lanes":     {},
	"replicate": {},
	"swz":       {},
	"widen":     {},
	"swap":      {},
}

var sourceMods = map[string]string{
	"abs":  "abs",
	"sign": "abs",
	"neg":  "neg",
	"not":  "neg",
}

// ParseModName splits a trailing operand digit 0-3 off a modifier
// reference. "bytes2" is a whole-instruction modifier whose digit is
// part of its name.
func ParseModName(s string) ModName {
	if s == "bytes2" || len(s) < 2 {
		return ModName{Base: s, Index: NoOperand}
	}
	last := s[len(s)-1]
	if last < '0' || last > '3' {
		return ModName{Base: s, Index: NoOperand}
	}
	return ModName{Base: s[:len(s)-1], Index: int(last - '0')}
}

func (n ModName) HasOperand() bool {
	return n.Index != NoOperand
}

func (n ModName) String() string {
	if !n.HasOperand() {
		return n.Base
	}
	return n.Base + strconv.Itoa(n.Index)
}

func (n ModName) IsSwizzle() bool {
	_, ok := swizzles[n.Base]
	return ok
}

// SourceMod returns the operand field ("abs" or "neg") that this
// modifier controls, or the empty string if it is not a source modifier.
func (n ModName) SourceMod() string {
	return sourceMods[n.Base]
}

// Normalize collapses the swizzle family onto "swizzle", keeping the
// operand digit.
func (n ModName) Normalize() string {
	if n.IsSwizzle() {
		return ModName{Base: "swizzle", Index: n.Index}.String()
	}
	return n.String()
}
