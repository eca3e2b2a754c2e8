package grammar

// Operand nonterminals supplied by the fixed part of the grammar. Each
// evaluates to a bi_index.
const (
	DestOperand    = "dst_reg"
	SourceOperand  = "src_reg"
	StagingOperand = "staging_reg"
)

// operandSeparator sits between repeated operand groups.
var operandSeparator = Literal(',')
