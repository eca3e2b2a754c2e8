package isa

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Load reads an ISA description file. See Parse for the format.
func Load(filename string) (*Model, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	m, err := Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return m, nil
}

type declaredModifier struct {
	name   string
	values []string
	used   bool
}

type loader struct {
	decls     []*declaredModifier
	declIndex map[string]int

	instrs   []*Instruction
	insIndex map[string]int
	insLine  map[string]int
}

// Parse reads a line-oriented ISA description. Each non-blank line,
// after stripping "#" comments, is one of:
//
//	modifier <name> <value>...
//	ins <mnemonic> srcs=<n> [mods=<a,b,...>] [imm=<f,g,...>] [staging=<r|w|rw>]
//
// Mnemonics prefixed with "*" or "+" name the FMA and ADD unit variants
// of one instruction and are merged under the bare, lower-cased name.
func Parse(r io.Reader) (*Model, error) {
	l := &loader{
		declIndex: make(map[string]int),
		insIndex:  make(map[string]int),
		insLine:   make(map[string]int),
	}

	sc := bufio.NewScanner(r)
	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := trimComments(sc.Text())
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "modifier":
			err = l.modifier(lineNum, fields[1:])
		case "ins":
			err = l.instruction(lineNum, fields[1:])
		default:
			err = &ModelError{Line: lineNum, Reason: fmt.Sprintf("unknown directive %q", fields[0])}
		}
		if err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return l.model()
}

func (l *loader) modifier(lineNum int, fields []string) error {
	if len(fields) == 0 {
		return &ModelError{Line: lineNum, Reason: "modifier declaration has no name"}
	}
	name := fields[0]
	if len(fields) == 1 {
		return &ModelError{Line: lineNum, Modifier: name, Reason: "modifier has no values"}
	}
	if _, exists := l.declIndex[name]; exists {
		return &ModelError{Line: lineNum, Modifier: name, Reason: "modifier declared more than once"}
	}

	l.declIndex[name] = len(l.decls)
	l.decls = append(l.decls, &declaredModifier{
		name:   name,
		values: fields[1:],
	})
	return nil
}

func (l *loader) instruction(lineNum int, fields []string) error {
	if len(fields) == 0 {
		return &ModelError{Line: lineNum, Reason: "instruction has no mnemonic"}
	}
	mnemonic := strings.ToLower(strings.TrimLeft(fields[0], "*+"))
	if mnemonic == "" {
		return &ModelError{Line: lineNum, Mnemonic: fields[0], Reason: "empty mnemonic"}
	}

	ins := &Instruction{Mnemonic: mnemonic}
	haveSrcs := false
	for _, field := range fields[1:] {
		key, val := partition(field, "=")
		switch key {
		case "srcs":
			n, err := strconv.Atoi(val)
			if err != nil || n < 0 {
				return &ModelError{Line: lineNum, Mnemonic: mnemonic, Reason: fmt.Sprintf("invalid source count %q", val)}
			}
			ins.Sources = n
			haveSrcs = true
		case "mods":
			for _, raw := range splitList(val) {
				ins.Modifiers = appendModName(ins.Modifiers, ParseModName(raw))
			}
		case "imm":
			for _, raw := range splitList(val) {
				ins.Immediates = appendString(ins.Immediates, raw)
			}
		case "staging":
			switch val {
			case "r", "w", "rw":
				ins.Staging = val
			default:
				return &ModelError{Line: lineNum, Mnemonic: mnemonic, Reason: fmt.Sprintf("invalid staging mode %q", val)}
			}
		default:
			return &ModelError{Line: lineNum, Mnemonic: mnemonic, Reason: fmt.Sprintf("unknown field %q", key)}
		}
	}
	if !haveSrcs {
		return &ModelError{Line: lineNum, Mnemonic: mnemonic, Reason: "missing required field \"srcs\""}
	}

	i, exists := l.insIndex[mnemonic]
	if !exists {
		l.insIndex[mnemonic] = len(l.instrs)
		l.insLine[mnemonic] = lineNum
		l.instrs = append(l.instrs, ins)
		return nil
	}

	// A second sighting is the other unit's variant of the same
	// instruction, which must agree on operand shape.
	prev := l.instrs[i]
	if prev.Sources != ins.Sources {
		return &ModelError{Line: lineNum, Mnemonic: mnemonic, Reason: fmt.Sprintf("unit variants disagree on source count (%d vs %d)", prev.Sources, ins.Sources)}
	}
	if prev.Staging != ins.Staging {
		return &ModelError{Line: lineNum, Mnemonic: mnemonic, Reason: fmt.Sprintf("unit variants disagree on staging (%q vs %q)", prev.Staging, ins.Staging)}
	}
	for _, mod := range ins.Modifiers {
		prev.Modifiers = appendModName(prev.Modifiers, mod)
	}
	for _, imm := range ins.Immediates {
		prev.Immediates = appendString(prev.Immediates, imm)
	}
	log.Debugf("merged unit variant %s (line %d)", fields[0], lineNum)
	return nil
}

// model resolves every modifier reference against the declarations and
// builds the catalog in first-reference order.
func (l *loader) model() (*Model, error) {
	m := &Model{
		Instructions: l.instrs,
		insIndex:     l.insIndex,
		modIndex:     make(map[string]int),
	}

	for _, ins := range l.instrs {
		for _, ref := range ins.Modifiers {
			name := ref.String()
			if _, seen := m.modIndex[name]; seen {
				continue
			}
			decl := l.resolve(ref)
			if decl == nil {
				if ref.IsSwizzle() {
					continue
				}
				return nil, &ModelError{
					Line:     l.insLine[ins.Mnemonic],
					Mnemonic: ins.Mnemonic,
					Modifier: name,
					Reason:   "reference to undeclared modifier",
				}
			}
			decl.used = true

			values := make([]string, len(decl.values))
			copy(values, decl.values)
			m.modIndex[name] = len(m.Modifiers)
			m.Modifiers = append(m.Modifiers, &Modifier{Name: ref, Values: values})
		}
	}

	for _, decl := range l.decls {
		if !decl.used {
			log.Debugf("modifier %s is declared but never referenced", decl.name)
		}
	}

	return m, nil
}

func (l *loader) resolve(ref ModName) *declaredModifier {
	if i, ok := l.declIndex[ref.String()]; ok {
		return l.decls[i]
	}
	if i, ok := l.declIndex[ref.Base]; ok {
		return l.decls[i]
	}
	return nil
}

func trimComments(line string) string {
	hash := strings.IndexByte(line, '#')
	if hash == -1 {
		return line
	}
	return line[:hash]
}

func partition(s string, sep string) (l, r string) {
	idx := strings.Index(s, sep)
	if idx == -1 {
		return s, ""
	}
	return s[:idx], s[idx+len(sep):]
}

func splitList(s string) []string {
	var ret []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			ret = append(ret, part)
		}
	}
	return ret
}

func appendString(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}

func appendModName(list []ModName, n ModName) []ModName {
	for _, existing := range list {
		if existing == n {
			return list
		}
	}
	return append(list, n)
}
