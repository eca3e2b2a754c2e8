package grammar

import (
	"github.com/apparentlymart/bifrost-meta/isa"
	log "github.com/sirupsen/logrus"
)

type Immediate struct {
	Field string
	Rule  string
	Token string
}

type TypeDecl struct {
	Type     ValueType
	Nonterms []string
}

// Grammar is the complete output of one generation run, ready for
// rendering.
type Grammar struct {
	Tokens     *Registry
	Groups     []*Group
	Rules      []*Rule
	Immediates []Immediate
	Types      []TypeDecl
}

// Generate derives the token table and rules for m. Rules are ordered as
// modifier rules in catalog order, one ins_set rule per shape group, the
// instr rule, then the immediate rules.
func Generate(m *isa.Model) (*Grammar, error) {
	if err := checkCatalog(m); err != nil {
		return nil, err
	}

	reg := NewRegistry()

	rules, err := modifierRules(reg, m.Modifiers)
	if err != nil {
		return nil, err
	}
	log.Debugf("synthesized %d modifier rules", len(rules))

	groups := GroupInstructions(m.Instructions)
	log.Debugf("grouped %d instructions into %d shapes", len(m.Instructions), len(groups))

	sets, instr, err := assembleGroups(reg, groups)
	if err != nil {
		return nil, err
	}
	rules = append(rules, sets...)
	rules = append(rules, instr)

	imms, immRules, err := immediateRules(reg, m.Instructions)
	if err != nil {
		return nil, err
	}
	rules = append(rules, immRules...)

	numTypes := append([]string(nil), clauseNonterms...)
	for _, imm := range imms {
		numTypes = append(numTypes, imm.Rule)
	}

	return &Grammar{
		Tokens:     reg,
		Groups:     groups,
		Rules:      rules,
		Immediates: imms,
		Types: []TypeDecl{
			{Type: Numeric, Nonterms: numTypes},
			{Type: Index, Nonterms: []string{SourceOperand, DestOperand, StagingOperand}},
		},
	}, nil
}

// checkCatalog makes sure every modifier an instruction refers to has a
// rule to refer to.
func checkCatalog(m *isa.Model) error {
	for _, ins := range m.Instructions {
		for _, ref := range ins.Modifiers {
			if ref.IsSwizzle() {
				continue
			}
			if m.Modifier(ref.String()) == nil {
				return &isa.ModelError{
					Mnemonic: ins.Mnemonic,
					Modifier: ref.String(),
					Reason:   "modifier is missing from the catalog",
				}
			}
		}
	}
	return nil
}

// immediateRules gives each distinct immediate field a nonterminal over a
// numeric token, in order of first use.
func immediateRules(reg *Registry, instrs []*isa.Instruction) ([]Immediate, []*Rule, error) {
	var imms []Immediate
	var rules []*Rule
	seen := make(map[string]struct{})
	for _, ins := range instrs {
		for _, field := range ins.Immediates {
			if _, ok := seen[field]; ok {
				continue
			}
			seen[field] = struct{}{}

			imm := Immediate{Field: field, Rule: immRuleName(field), Token: immToken(field)}
			if err := reg.Register(Token{Ident: imm.Token, Type: Numeric}); err != nil {
				return nil, nil, err
			}

			alt := &Alternative{}
			alt.Assign("", alt.Append(Term(imm.Token)))
			rules = append(rules, &Rule{Name: imm.Rule, Alternatives: []*Alternative{alt}})
			imms = append(imms, imm)
		}
	}
	return imms, rules, nil
}
