package main

import (
	"fmt"
	"os"
	"path/filepath"
)

type artifact struct {
	path string
	data []byte
}

// writeArtifacts stages every artifact in a temporary file beside its
// destination and renames them into place only once all are written.
func writeArtifacts(artifacts []artifact) error {
	temps := make([]string, 0, len(artifacts))
	cleanup := func() {
		for _, tmp := range temps {
			os.Remove(tmp)
		}
	}

	for _, a := range artifacts {
		tmp, err := writeTemp(a)
		if err != nil {
			cleanup()
			return err
		}
		temps = append(temps, tmp)
	}

	for i, a := range artifacts {
		if err := os.Rename(temps[i], a.path); err != nil {
			temps = temps[i:]
			cleanup()
			return fmt.Errorf("failed to write %s: %w", a.path, err)
		}
	}
	return nil
}

func writeTemp(a artifact) (string, error) {
	dir, base := filepath.Split(a.path)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to write %s: %w", a.path, err)
	}
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write %s: %w", a.path, err)
	}
	if _, err := f.Write(a.data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write %s: %w", a.path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write %s: %w", a.path, err)
	}
	return f.Name(), nil
}
