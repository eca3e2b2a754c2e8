package grammar

import (
	"strings"
	"testing"

	"github.com/apparentlymart/bifrost-meta/isa"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, src string) *isa.Model {
	t.Helper()
	m, err := isa.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return m
}

func groupMnemonics(groups []*Group) [][]string {
	var ret [][]string
	for _, g := range groups {
		var names []string
		for _, ins := range g.Instructions {
			names = append(names, ins.Mnemonic)
		}
		ret = append(ret, names)
	}
	return ret
}

func TestGroupInstructions(t *testing.T) {
	m := mustParse(t, `
modifier neg none neg
modifier abs none abs
modifier round none rtz rtp rtn
modifier bytes2 none bytes2
ins fma.f32 srcs=3 mods=neg0,neg1,neg2,round
ins fadd.f32 srcs=2 mods=neg0,neg1
ins fma.f16 srcs=3 mods=neg2,neg1,neg0
ins fadd.f16 srcs=2 mods=neg1,abs0
ins fadd.v2f16 srcs=2 mods=neg1,neg0,bytes2
ins ld srcs=1 imm=index staging=w
ins ld.imm srcs=1 imm=index
ins st srcs=1 imm=index staging=r
`)

	groups := GroupInstructions(m.Instructions)
	assert.Equal(t, [][]string{
		{"fma.f32", "fma.f16"},
		{"fadd.f32", "fadd.v2f16"},
		{"fadd.f16"},
		{"ld", "st"},
		{"ld.imm"},
	}, groupMnemonics(groups))

	assert.Equal(t, ShapeKey{Sources: 3, OperandMods: "neg0,neg1,neg2"}, groups[0].Key)
	assert.Equal(t, ShapeKey{Sources: 1, Immediates: "index", Staging: true}, groups[3].Key)
}

func TestShapeKeyNormalizesSwizzles(t *testing.T) {
	a := &isa.Instruction{Mnemonic: "a", Sources: 2, Modifiers: []isa.ModName{
		isa.ParseModName("lane0"), isa.ParseModName("swz1"),
	}}
	b := &isa.Instruction{Mnemonic: "b", Sources: 2, Modifiers: []isa.ModName{
		isa.ParseModName("swz1"), isa.ParseModName("widen0"),
	}}
	c := &isa.Instruction{Mnemonic: "c", Sources: 2, Modifiers: []isa.ModName{
		isa.ParseModName("swz0"),
	}}

	assert.Equal(t, "swizzle0,swizzle1", shapeOf(a).OperandMods)
	assert.Equal(t, shapeOf(a), shapeOf(b))
	assert.NotEqual(t, shapeOf(a), shapeOf(c))
}

func TestShapeKeySortsImmediates(t *testing.T) {
	a := &isa.Instruction{Mnemonic: "a", Immediates: []string{"shift", "index"}}
	b := &isa.Instruction{Mnemonic: "b", Immediates: []string{"index", "shift"}}
	assert.Equal(t, "index,shift", shapeOf(a).Immediates)
	assert.Equal(t, shapeOf(a), shapeOf(b))

	// The key must not reorder the instruction's own list.
	assert.Equal(t, []string{"shift", "index"}, a.Immediates)
}

func TestGroupInstructionsEmpty(t *testing.T) {
	assert.Empty(t, GroupInstructions(nil))
}
