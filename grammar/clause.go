package grammar

// clauseNonterms are the clause header fields defined by the fixed part
// of parser.y. Each evaluates to a number that lands in one field of
// struct bifrost_header.
var clauseNonterms = []string{
	"clause_staging",
	"clause_flow",
	"clause_inf_suppress",
	"clause_nan_suppress",
	"clause_ftz",
	"clause_fpe",
	"clause_message",
	"clause_next_message",
	"clause_td",
	"clause_prefetch",
	"clause_dep_wait",
}

// scannerPunctuation are the single-character tokens the scanner passes
// through to the parser unchanged.
var scannerPunctuation = []string{":", "{", "}", "*", "+", ",", "@", "(", ")", "0"}
