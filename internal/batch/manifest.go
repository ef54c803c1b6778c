package batch

import (
	"encoding/json"
	"fmt"
	"os"
)

// ManifestEntry describes one rendered frame.
type ManifestEntry struct {
	Frame  int     `json:"frame"`
	Time   float64 `json:"time"`
	Mode   string  `json:"mode"`
	Active *int    `json:"active"` // null while no photo frame is active
	Image  string  `json:"image"`
}

// Entries builds manifest entries for the jobs that rendered successfully.
// results must be in job order, as Run returns them.
func Entries(jobs []Job, results []Result) []ManifestEntry {
	entries := make([]ManifestEntry, 0, len(jobs))
	for i, j := range jobs {
		if i >= len(results) || !results[i].Success {
			continue
		}
		e := ManifestEntry{
			Frame: j.Index,
			Time:  j.Time,
			Mode:  j.Mode.String(),
			Image: j.Name(),
		}
		if j.Active.Valid {
			id := j.Active.ID
			e.Active = &id
		}
		entries = append(entries, e)
	}
	return entries
}

// WriteManifest writes the entries as indented JSON to path.
func WriteManifest(path string, entries []ManifestEntry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}
