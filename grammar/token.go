package grammar

import (
	"fmt"
)

// ValueType selects the %union member a token or nonterminal carries.
type ValueType string

const (
	Plain   ValueType = "tok"
	Numeric ValueType = "num"
	Index   ValueType = "index"
)

// Token is one entry of the scanner's match table. Synthetic tokens have
// no spelling; the scanner produces them from its fixed literal rules.
type Token struct {
	Spelling string
	Ident    string
	Type     ValueType
}

func (t Token) Synthetic() bool {
	return t.Spelling == ""
}

func (t Token) String() string {
	if t.Synthetic() {
		return fmt.Sprintf("<synthetic> %s <%s>", t.Ident, t.Type)
	}
	return fmt.Sprintf("%q %s <%s>", t.Spelling, t.Ident, t.Type)
}

// Registry is the deduplicated, insertion-ordered token table shared by
// every synthesis stage of one generation run.
type Registry struct {
	tokens     []Token
	byIdent    map[string]int
	bySpelling map[string]int
}

// fixedTokens are the clause framing and operand carrier tokens. They are
// registered ahead of anything derived from the ISA so that their
// identifiers keep their position across ISA revisions.
var fixedTokens = []Token{
	{"osrb", "T_OSRB", Plain},
	{"eos", "T_EOS", Plain},
	{"nbb", "T_NBB", Plain},
	{"br_pc", "T_BR_PC", Plain},
	{"r_uncond", "T_R_UNCOND", Plain},
	{"bb", "T_BB", Plain},
	{"we", "T_WE", Plain},
	{"inf_suppress", "T_INF_SUPPRESS", Plain},
	{"nan_suppress", "T_NAN_SUPPRESS", Plain},
	{"ftz_dx11", "T_FTZ_DX11", Plain},
	{"ftz_hsa", "T_FTZ_HSA", Plain},
	{"ftz_au", "T_FTZ_AU", Plain},
	{"fpe_ts", "T_FPE_TS", Plain},
	{"fpe_pd", "T_FPE_PD", Plain},
	{"fpe_psqr", "T_FPE_PSQR", Plain},
	{"vary", "T_VARYING", Plain},
	{"attr", "T_ATTRIBUTE", Plain},
	{"tex", "T_TEX", Plain},
	{"vartex", "T_VARTEX", Plain},
	{"load", "T_LOAD", Plain},
	{"store", "T_STORE", Plain},
	{"atomic", "T_ATOMIC", Plain},
	{"barrier", "T_BARRIER", Plain},
	{"blend", "T_BLEND", Plain},
	{"tile", "T_TILE", Plain},
	{"z_stencil", "T_Z_STENCIL", Plain},
	{"atest", "T_ATEST", Plain},
	{"job", "T_JOB", Plain},
	{"64", "T_64BIT", Plain},
	{"td", "T_TD", Plain},
	{"ncph", "T_NCPH", Plain},
	{"next_", "T_NEXT", Plain},
	{"dwb", "T_DEP_WAIT", Plain},

	{"t0", "T_T0", Plain},
	{"t1", "T_T1", Plain},
	{"t", "T_T", Plain},

	{"", "T_CLAUSE", Plain},
	{"", "T_DEPSLOT", Numeric},
	{"", "T_REGISTER", Numeric},
	{"", "T_ZERO", Plain},
	{"", "T_FAU", Numeric},
	{"", "T_OFFSET", Numeric},
}

// NewRegistry returns a registry holding the fixed structural tokens.
func NewRegistry() *Registry {
	r := newRegistry()
	for _, tok := range fixedTokens {
		if err := r.Register(tok); err != nil {
			panic(err)
		}
	}
	return r
}

func newRegistry() *Registry {
	return &Registry{
		byIdent:    make(map[string]int),
		bySpelling: make(map[string]int),
	}
}

// Register adds tok to the table. Registering a token identical to an
// existing entry does nothing; reusing a spelling or identifier for a
// different token is a ConflictError.
func (r *Registry) Register(tok Token) error {
	if i, ok := r.byIdent[tok.Ident]; ok {
		existing := r.tokens[i]
		if existing != tok {
			return &ConflictError{Existing: existing, Requested: tok}
		}
		return nil
	}
	if !tok.Synthetic() {
		if i, ok := r.bySpelling[tok.Spelling]; ok {
			return &ConflictError{Existing: r.tokens[i], Requested: tok}
		}
		r.bySpelling[tok.Spelling] = len(r.tokens)
	}
	r.byIdent[tok.Ident] = len(r.tokens)
	r.tokens = append(r.tokens, tok)
	return nil
}

func (r *Registry) Lookup(ident string) (Token, bool) {
	i, ok := r.byIdent[ident]
	if !ok {
		return Token{}, false
	}
	return r.tokens[i], true
}

// Tokens returns the registered tokens in registration order.
func (r *Registry) Tokens() []Token {
	ret := make([]Token, len(r.tokens))
	copy(ret, r.tokens)
	return ret
}

func (r *Registry) Len() int {
	return len(r.tokens)
}
