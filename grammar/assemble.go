package grammar

import (
	"fmt"

	"github.com/apparentlymart/bifrost-meta/isa"
)

// The rule holding one shared operand template per shape group.
const instrRule = "instr"

func groupRuleName(n int) string {
	return fmt.Sprintf("ins_set_%d", n)
}

// assembleGroups emits one ins_set_N rule per group, each with an
// alternative per mnemonic, and the instr rule that pairs every group
// with its operand template.
func assembleGroups(reg *Registry, groups []*Group) ([]*Rule, *Rule, error) {
	instr := &Rule{Name: instrRule}
	var sets []*Rule
	for n, g := range groups {
		set := &Rule{Name: groupRuleName(n)}
		for _, ins := range g.Instructions {
			alt, err := opcodeAlternative(reg, ins)
			if err != nil {
				return nil, nil, err
			}
			set.Add(alt)
		}
		sets = append(sets, set)
		instr.Add(operandTemplate(set.Name, g.Instructions[0]))
	}
	return sets, instr, nil
}

// opcodeAlternative matches the opcode token followed by the modifiers
// that apply to the whole instruction.
func opcodeAlternative(reg *Registry, ins *isa.Instruction) (*Alternative, error) {
	tok := Token{Spelling: ins.Mnemonic, Ident: opcodeToken(ins.Mnemonic), Type: Plain}
	if err := reg.Register(tok); err != nil {
		return nil, fmt.Errorf("instruction %q: %w", ins.Mnemonic, err)
	}

	alt := &Alternative{}
	alt.Append(Term(tok.Ident))
	for _, m := range ins.Modifiers {
		if m.HasOperand() {
			if m.Index >= ins.Sources {
				return nil, &TargetError{Mnemonic: ins.Mnemonic, Modifier: m.String(), Sources: ins.Sources}
			}
			continue
		}
		alt.Append(Nonterm(modRuleRef(m)))
	}
	alt.Assign("op", Const(opcodeConst(ins.Mnemonic)))
	return alt, nil
}

// operandTemplate is the positional operand list shared by a group:
// destination, each source with its modifiers, immediates, then the
// staging register. Every instruction in a group has the same shape, so
// the first one stands in for all of them.
func operandTemplate(setName string, ins *isa.Instruction) *Alternative {
	srcMods := make([][]isa.ModName, ins.Sources)
	for _, m := range ins.Modifiers {
		if m.HasOperand() {
			srcMods[m.Index] = append(srcMods[m.Index], m)
		}
	}

	alt := &Alternative{}
	alt.Append(Nonterm(setName))
	alt.Assign("dest[0]", alt.Append(Nonterm(DestOperand)))

	for i := 0; i < ins.Sources; i++ {
		alt.Append(operandSeparator)
		alt.Assign(fmt.Sprintf("src[%d]", i), alt.Append(Nonterm(SourceOperand)))
		for _, m := range srcMods[i] {
			alt.Append(Nonterm(modRuleRef(m)))
		}
	}

	for _, imm := range ins.Immediates {
		alt.Append(operandSeparator)
		alt.Assign(makeIdentUnderscores(imm), alt.Append(Nonterm(immRuleName(imm))))
	}

	if ins.HasStaging() {
		alt.Append(operandSeparator)
		alt.Assign("staging", alt.Append(Nonterm(StagingOperand)))
	}

	return alt
}
