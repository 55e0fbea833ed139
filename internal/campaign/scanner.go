package campaign

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"chosenoffset.com/burrow/internal/jsonfile"
)

// Entry represents a campaign found in the campaigns directory
type Entry struct {
	ID          string // directory name, passed to Load
	Title       string
	Description string
}

// Scan lists the campaigns in dir. Only directories holding an index file
// count; unreadable indexes are skipped.
func Scan(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read campaigns directory: %w", err)
	}

	var campaigns []Entry
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		var idx indexNode
		if err := jsonfile.Load(filepath.Join(dir, entry.Name(), IndexFile), &idx); err != nil {
			continue
		}

		e := Entry{ID: entry.Name(), Title: entry.Name()}
		if idx.Title != nil {
			e.Title = *idx.Title
		}
		if idx.Description != nil {
			e.Description = *idx.Description
		}
		campaigns = append(campaigns, e)
	}

	sort.Slice(campaigns, func(i, j int) bool { return campaigns[i].ID < campaigns[j].ID })
	return campaigns, nil
}
