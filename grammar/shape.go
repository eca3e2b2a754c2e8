package grammar

import (
	"sort"
	"strings"

	"github.com/apparentlymart/bifrost-meta/isa"
)

// ShapeKey is the structural signature of an instruction. Instructions
// with equal keys can share one positional operand template.
type ShapeKey struct {
	Sources     int
	Immediates  string
	OperandMods string
	Staging     bool
}

func shapeOf(ins *isa.Instruction) ShapeKey {
	imms := make([]string, len(ins.Immediates))
	copy(imms, ins.Immediates)
	sort.Strings(imms)

	var mods []string
	seen := make(map[string]struct{})
	for _, m := range ins.Modifiers {
		if !m.HasOperand() {
			continue
		}
		norm := m.Normalize()
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		mods = append(mods, norm)
	}
	sort.Strings(mods)

	return ShapeKey{
		Sources:     ins.Sources,
		Immediates:  strings.Join(imms, ","),
		OperandMods: strings.Join(mods, ","),
		Staging:     ins.HasStaging(),
	}
}

type Group struct {
	Key          ShapeKey
	Instructions []*isa.Instruction
}

// GroupInstructions partitions instrs by shape. Groups are ordered by
// their first member, and members keep their relative order, so the
// result depends only on the order of instrs.
func GroupInstructions(instrs []*isa.Instruction) []*Group {
	var groups []*Group
	index := make(map[ShapeKey]int)
	for _, ins := range instrs {
		key := shapeOf(ins)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, &Group{Key: key})
		}
		groups[i].Instructions = append(groups[i].Instructions, ins)
	}
	return groups
}
