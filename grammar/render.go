package grammar

import (
	"embed"
	"io"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"join":  strings.Join,
	"quote": quote,
	"rule":  yaccRule,
}).ParseFS(templatesFS, "templates/*.tmpl"))

type renderData struct {
	Tokens      []Token
	Types       []TypeDecl
	Rules       []*Rule
	Immediates  []Immediate
	Punctuation []string
}

func (g *Grammar) renderData() renderData {
	return renderData{
		Tokens:      g.Tokens.Tokens(),
		Types:       g.Types,
		Rules:       g.Rules,
		Immediates:  g.Immediates,
		Punctuation: scannerPunctuation,
	}
}

// RenderParser writes the Bison grammar: token and type declarations,
// the generated rules, then the fixed clause grammar.
func RenderParser(w io.Writer, g *Grammar) error {
	return templates.ExecuteTemplate(w, "parser.y.tmpl", g.renderData())
}

// RenderScanner writes the Flex scanner matching every spelled token.
func RenderScanner(w io.Writer, g *Grammar) error {
	return templates.ExecuteTemplate(w, "scanner.l.tmpl", g.renderData())
}

func yaccRule(r *Rule) string {
	var b strings.Builder
	b.WriteString(r.Name)
	b.WriteString(":\n")
	for i, alt := range r.Alternatives {
		if i == 0 {
			b.WriteString("  ")
		} else {
			b.WriteString("| ")
		}
		b.WriteString(renderAlternative(alt))
		b.WriteByte('\n')
	}
	b.WriteString(";\n\n")
	return b.String()
}

func renderAlternative(alt *Alternative) string {
	var b strings.Builder
	if alt.Kind() == Epsilon {
		b.WriteString("%empty")
	}
	for i, sym := range alt.Symbols {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sym.Name)
	}
	if len(alt.Actions) > 0 {
		b.WriteString(" {")
		for _, act := range alt.Actions {
			b.WriteByte(' ')
			b.WriteString(renderAction(act))
		}
		b.WriteString(" }")
	}
	return b.String()
}

func renderAction(act Action) string {
	if act.Field == "" {
		return "$$ = " + act.Value.String() + ";"
	}
	return "instr->" + act.Field + " = " + act.Value.String() + ";"
}

var quoteReplacer = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote produces a Flex string literal.
func quote(s string) string {
	return `"` + quoteReplacer.Replace(s) + `"`
}
