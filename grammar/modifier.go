package grammar

import (
	"fmt"

	"github.com/apparentlymart/bifrost-meta/isa"
)

// modifierField is the instruction record field a modifier sets. Source
// modifiers land in the operand they are suffixed with, or in the
// destination when they carry no suffix.
func modifierField(n isa.ModName) string {
	kind := n.SourceMod()
	switch {
	case kind == "":
		return makeIdentUnderscores(n.String())
	case n.HasOperand():
		return fmt.Sprintf("src[%d].%s", n.Index, kind)
	default:
		return "dest[0]." + kind
	}
}

// modifierRules builds one mod_X rule per catalog entry, in catalog
// order, registering the tokens the rules match.
func modifierRules(reg *Registry, mods []*isa.Modifier) ([]*Rule, error) {
	var ret []*Rule
	for _, mod := range mods {
		if mod.Name.IsSwizzle() {
			continue
		}
		rule, err := modifierRule(reg, mod)
		if err != nil {
			return nil, err
		}
		ret = append(ret, rule)
	}
	return ret, nil
}

func modifierRule(reg *Registry, mod *isa.Modifier) (*Rule, error) {
	name := mod.Name.String()
	if len(mod.Values) == 0 {
		return nil, &isa.ModelError{Modifier: name, Reason: "modifier has no values"}
	}

	field := modifierField(mod.Name)
	rule := &Rule{Name: modRuleName(name)}

	var values []string
	for _, v := range mod.Values {
		if v != "reserved" {
			values = append(values, v)
		}
	}

	if len(values) > 2 {
		for _, v := range values {
			alt := &Alternative{}
			if v != "none" {
				tok := Token{Spelling: "." + v, Ident: modToken(v), Type: Plain}
				if err := reg.Register(tok); err != nil {
					return nil, fmt.Errorf("modifier %q: %w", name, err)
				}
				alt.Append(Term(tok.Ident))
			}
			alt.Assign(field, Const(modConst(name, v)))
			rule.Add(alt)
		}
		return rule, nil
	}

	// Anything with two or fewer values is a flag, spelled after the base
	// name so that every operand's variant shares one token.
	tok := Token{Spelling: "." + mod.Name.Base, Ident: modToken(mod.Name.Base), Type: Plain}
	if err := reg.Register(tok); err != nil {
		return nil, fmt.Errorf("modifier %q: %w", name, err)
	}

	absent := &Alternative{}
	absent.Assign(field, Const("false"))
	present := &Alternative{}
	present.Append(Term(tok.Ident))
	present.Assign(field, Const("true"))
	rule.Add(absent)
	rule.Add(present)
	return rule, nil
}
