package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/apparentlymart/bifrost-meta/grammar"
	"github.com/apparentlymart/bifrost-meta/isa"
	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
)

type options struct {
	isaPath     string
	parserPath  string
	scannerPath string
	dump        bool
}

func generate(opts options) error {
	m, err := isa.Load(opts.isaPath)
	if err != nil {
		return err
	}
	log.Debugf("loaded %d instructions and %d modifiers from %s", len(m.Instructions), len(m.Modifiers), opts.isaPath)

	g, err := grammar.Generate(m)
	if err != nil {
		return fmt.Errorf("failed to generate grammar: %w", err)
	}
	if opts.dump {
		spew.Fdump(os.Stderr, m, g.Groups)
	}

	var parser, scanner bytes.Buffer
	if err := grammar.RenderParser(&parser, g); err != nil {
		return fmt.Errorf("failed to render grammar: %w", err)
	}
	if err := grammar.RenderScanner(&scanner, g); err != nil {
		return fmt.Errorf("failed to render scanner: %w", err)
	}

	err = writeArtifacts([]artifact{
		{path: opts.parserPath, data: parser.Bytes()},
		{path: opts.scannerPath, data: scanner.Bytes()},
	})
	if err != nil {
		return err
	}
	log.Debugf("wrote %d tokens and %d rules", g.Tokens.Len(), len(g.Rules))
	return nil
}
