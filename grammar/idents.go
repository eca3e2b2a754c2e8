package grammar

import (
	"strings"
	"unicode"

	"github.com/apparentlymart/bifrost-meta/isa"
)

func makeIdentUnderscores(inp string) string {
	var b strings.Builder
	for i, r := range inp {
		switch {
		case unicode.IsDigit(r):
			if i == 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r)
		case unicode.IsLetter(r):
			b.WriteString(strings.ToLower(string(r)))
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// makeIdentConst turns "fma.f32" into "FMA_F32".
func makeIdentConst(inp string) string {
	return strings.ToUpper(makeIdentUnderscores(inp))
}

func opcodeToken(mnemonic string) string {
	return "T_OP_" + makeIdentConst(mnemonic)
}

func opcodeConst(mnemonic string) string {
	return "BI_OPCODE_" + makeIdentConst(mnemonic)
}

func modToken(name string) string {
	return "T_MOD_" + makeIdentConst(name)
}

func modConst(mod, value string) string {
	return "BI_" + makeIdentConst(mod) + "_" + makeIdentConst(value)
}

func modRuleName(name string) string {
	return "mod_" + makeIdentUnderscores(name)
}

// modRuleRef names the nonterminal an instruction uses for a modifier.
// The whole swizzle family shares the externally supplied mod_swizzle.
func modRuleRef(n isa.ModName) string {
	if n.IsSwizzle() {
		return modRuleName("swizzle")
	}
	return modRuleName(n.String())
}

func immRuleName(field string) string {
	return "imm_" + makeIdentUnderscores(field)
}

func immToken(field string) string {
	return "T_IMM_" + makeIdentConst(field)
}
