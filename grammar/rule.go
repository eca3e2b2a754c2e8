// Package grammar derives Bison rules and the Flex token table for the
// Bifrost textual assembler from an isa.Model.
package grammar

import (
	"strconv"
)

type Symbol struct {
	Name     string
	Terminal bool
}

func Term(name string) Symbol {
	return Symbol{Name: name, Terminal: true}
}

func Nonterm(name string) Symbol {
	return Symbol{Name: name}
}

// Literal is a single-character terminal, such as the ',' operand
// separator.
func Literal(ch byte) Symbol {
	return Symbol{Name: "'" + string(ch) + "'", Terminal: true}
}

// Value is the right-hand side of an Action: either a reference to the
// value of a matched symbol (Ref counts from 1) or a constant expression.
type Value struct {
	Ref   int
	Const string
}

func Ref(pos int) Value {
	return Value{Ref: pos}
}

func Const(expr string) Value {
	return Value{Const: expr}
}

func (v Value) String() string {
	if v.Ref > 0 {
		return "$" + strconv.Itoa(v.Ref)
	}
	return v.Const
}

// Action assigns Value to a field of the instruction record. An empty
// Field assigns the value of the rule itself.
type Action struct {
	Field string
	Value Value
}

type AltKind int

const (
	Epsilon AltKind = iota
	TokenMatch
	Sequence
)

func (k AltKind) String() string {
	switch k {
	case Epsilon:
		return "epsilon"
	case TokenMatch:
		return "token"
	default:
		return "sequence"
	}
}

type Alternative struct {
	Symbols []Symbol
	Actions []Action
}

func (a *Alternative) Kind() AltKind {
	switch {
	case len(a.Symbols) == 0:
		return Epsilon
	case len(a.Symbols) == 1 && a.Symbols[0].Terminal:
		return TokenMatch
	default:
		return Sequence
	}
}

// Append adds sym to the end of the alternative and returns a reference
// to its value.
func (a *Alternative) Append(sym Symbol) Value {
	a.Symbols = append(a.Symbols, sym)
	return Ref(len(a.Symbols))
}

func (a *Alternative) Assign(field string, v Value) {
	a.Actions = append(a.Actions, Action{Field: field, Value: v})
}

type Rule struct {
	Name         string
	Alternatives []*Alternative
}

func (r *Rule) Add(alt *Alternative) {
	r.Alternatives = append(r.Alternatives, alt)
}
