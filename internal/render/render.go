// Package render serializes monitoring snapshots into the supported output
// formats. Renderers are pure: the same snapshot always produces the same
// bytes, regardless of destination.
package render

import (
	"fmt"
	"os"

	"aiopsmon/internal/entities/snapshot"
)

// Renderer turns one snapshot into a finished report.
type Renderer interface {
	Render(snap *snapshot.Snapshot) ([]byte, error)
}

// New returns the renderer for a format name: console, json or html.
func New(format string) (Renderer, error) {
	switch format {
	case "console", "":
		return &ConsoleRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "html":
		return &HTMLRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// Output renders the snapshot and writes it to the file at path, or to
// stdout when path is empty. Renderer and destination are orthogonal.
func Output(r Renderer, snap *snapshot.Snapshot, path string) error {
	out, err := r.Render(snap)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	if path == "" {
		_, err = os.Stdout.Write(out)
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
