// Package isa holds the in-memory model of a Bifrost instruction set
// description: per-mnemonic operand shapes and the catalog of modifiers
// those mnemonics refer to.
package isa

type Instruction struct {
	Mnemonic   string
	Sources    int
	Immediates []string
	Modifiers  []ModName

	// Staging is "r", "w" or "rw" for instructions that read or write a
	// staging register, and empty otherwise.
	Staging string
}

func (ins *Instruction) HasStaging() bool {
	return ins.Staging != ""
}

type Modifier struct {
	Name   ModName
	Values []string
}

// Model is the result of loading an ISA description. Both lists are in a
// stable order: instructions as declared, modifiers in the order they
// are first referenced by an instruction.
type Model struct {
	Instructions []*Instruction
	Modifiers    []*Modifier

	insIndex map[string]int
	modIndex map[string]int
}

func (m *Model) Instruction(mnemonic string) *Instruction {
	i, ok := m.insIndex[mnemonic]
	if !ok {
		return nil
	}
	return m.Instructions[i]
}

func (m *Model) Modifier(name string) *Modifier {
	i, ok := m.modIndex[name]
	if !ok {
		return nil
	}
	return m.Modifiers[i]
}
