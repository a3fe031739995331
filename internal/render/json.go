package render

import (
	"encoding/json"

	"aiopsmon/internal/entities/snapshot"
)

// JSONRenderer serializes the full snapshot structure for machine
// consumption. Decoding its output reproduces every field of the snapshot.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(snap *snapshot.Snapshot) ([]byte, error) {
	out, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}
