package grammar

import (
	"errors"
	"testing"

	"github.com/apparentlymart/bifrost-meta/isa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countKinds(r *Rule) (epsilon, tokens int) {
	for _, alt := range r.Alternatives {
		switch alt.Kind() {
		case Epsilon:
			epsilon++
		case TokenMatch:
			tokens++
		}
	}
	return epsilon, tokens
}

func TestModifierRuleEnumerated(t *testing.T) {
	reg := newRegistry()
	mod := &isa.Modifier{
		Name:   isa.ParseModName("round"),
		Values: []string{"none", "rtz", "rtp", "rtn", "reserved"},
	}

	rule, err := modifierRule(reg, mod)
	require.NoError(t, err)
	assert.Equal(t, "mod_round", rule.Name)
	require.Len(t, rule.Alternatives, 4)

	assert.Equal(t, `mod_round:
  %empty { instr->round = BI_ROUND_NONE; }
| T_MOD_RTZ { instr->round = BI_ROUND_RTZ; }
| T_MOD_RTP { instr->round = BI_ROUND_RTP; }
| T_MOD_RTN { instr->round = BI_ROUND_RTN; }
;

`, yaccRule(rule))

	var spellings []string
	for _, tok := range reg.Tokens() {
		spellings = append(spellings, tok.Spelling)
	}
	assert.Equal(t, []string{".rtz", ".rtp", ".rtn"}, spellings)
}

func TestModifierRuleAlternativeCounts(t *testing.T) {
	tests := []struct {
		name   string
		values []string
	}{
		{"with none", []string{"none", "a", "b", "c"}},
		{"without none", []string{"a", "b", "c"}},
		{"reserved gaps", []string{"a", "reserved", "b", "reserved", "c", "none"}},
		{"many", []string{"none", "v2f32", "v2f16", "reserved", "f32", "f16", "s32"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newRegistry()
			rule, err := modifierRule(reg, &isa.Modifier{Name: isa.ParseModName("conv"), Values: tt.values})
			require.NoError(t, err)

			reserved, none := 0, 0
			for _, v := range tt.values {
				switch v {
				case "reserved":
					reserved++
				case "none":
					none++
				}
			}

			epsilon, tokens := countKinds(rule)
			assert.Equal(t, len(tt.values)-reserved-none, tokens)
			assert.Equal(t, none, epsilon)
			assert.Equal(t, tokens, reg.Len())
		})
	}
}

func TestModifierRuleFlag(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		field  string
	}{
		{"neg0", []string{"none", "neg"}, "src[0].neg"},
		{"abs", []string{"none", "abs"}, "dest[0].abs"},
		{"sign1", []string{"none", "sign"}, "src[1].abs"},
		{"not2", []string{"not"}, "src[2].neg"},
		{"clamp", []string{"none", "clamp", "reserved"}, "clamp"},
		{"bytes2", []string{"none", "bytes2"}, "bytes2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := newRegistry()
			name := isa.ParseModName(tt.name)
			rule, err := modifierRule(reg, &isa.Modifier{Name: name, Values: tt.values})
			require.NoError(t, err)

			require.Len(t, rule.Alternatives, 2)
			epsilon, tokens := countKinds(rule)
			assert.Equal(t, 1, epsilon)
			assert.Equal(t, 1, tokens)

			assert.Equal(t, []Action{{Field: tt.field, Value: Const("false")}}, rule.Alternatives[0].Actions)
			assert.Equal(t, []Action{{Field: tt.field, Value: Const("true")}}, rule.Alternatives[1].Actions)

			toks := reg.Tokens()
			require.Len(t, toks, 1)
			assert.Equal(t, "."+name.Base, toks[0].Spelling)
			assert.Equal(t, Term(toks[0].Ident), rule.Alternatives[1].Symbols[0])
		})
	}
}

func TestModifierRuleNoValues(t *testing.T) {
	_, err := modifierRule(newRegistry(), &isa.Modifier{Name: isa.ParseModName("round")})
	var merr *isa.ModelError
	require.True(t, errors.As(err, &merr))
	assert.Equal(t, "round", merr.Modifier)
}

func TestModifierRulesSkipSwizzles(t *testing.T) {
	reg := newRegistry()
	rules, err := modifierRules(reg, []*isa.Modifier{
		{Name: isa.ParseModName("lane0"), Values: []string{"h0", "h1", "b0"}},
		{Name: isa.ParseModName("neg0"), Values: []string{"none", "neg"}},
		{Name: isa.ParseModName("neg1"), Values: []string{"none", "neg"}},
		{Name: isa.ParseModName("widen1"), Values: []string{"none", "h0", "h1"}},
	})
	require.NoError(t, err)

	var names []string
	for _, r := range rules {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"mod_neg0", "mod_neg1"}, names)
	assert.Equal(t, 1, reg.Len())
}

func TestModifierRuleTokenConflict(t *testing.T) {
	reg := newRegistry()
	require.NoError(t, reg.Register(Token{Spelling: ".rtz", Ident: "T_ROUND_TO_ZERO", Type: Plain}))

	_, err := modifierRule(reg, &isa.Modifier{
		Name:   isa.ParseModName("round"),
		Values: []string{"none", "rtz", "rtp"},
	})
	var cerr *ConflictError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, "T_ROUND_TO_ZERO", cerr.Existing.Ident)
}
