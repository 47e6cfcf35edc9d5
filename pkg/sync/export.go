package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/mklimuk/vocal-notes/pkg/note"
	"github.com/mklimuk/vocal-notes/pkg/vault"
)

// ExportResult summarizes one export.
type ExportResult struct {
	Files     []string `json:"files"`
	Committed bool     `json:"committed"`
}

// Exporter writes notes as markdown files into a git working tree and
// commits the snapshot. It never reads notes back.
type Exporter struct {
	mu  sync.Mutex
	git *GitManager
	dir string
}

// NewExporter writes into the notes folder under the vault root.
func NewExporter(g *GitManager, folder string) *Exporter {
	return &Exporter{git: g, dir: folder}
}

// Export writes every note, removes markdown files of notes that no longer
// exist and commits.
func (e *Exporter) Export(notes []note.Note) (ExportResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	dir := filepath.Join(e.git.RepoPath, e.dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("failed to create export directory: %w", err)
	}

	names := make([]string, len(notes))
	used := make(map[string]bool, len(notes))
	keep := make(map[string]bool, len(notes))
	for i, n := range notes {
		name := vault.Filename(n)
		if used[strings.ToLower(name)] {
			name = strings.TrimSuffix(name, ".md") + " (" + n.ID + ").md"
		}
		used[strings.ToLower(name)] = true
		keep[name] = true
		names[i] = name
	}

	var res ExportResult
	if err := prune(dir, keep); err != nil {
		return res, err
	}

	for i, n := range notes {
		data, err := vault.MarshalNote(n)
		if err != nil {
			return res, err
		}
		if err := os.WriteFile(filepath.Join(dir, names[i]), data, 0644); err != nil {
			return res, fmt.Errorf("failed to write %s: %w", names[i], err)
		}
		res.Files = append(res.Files, filepath.Join(e.dir, names[i]))
	}

	committed, err := e.git.Sync(fmt.Sprintf("Export %d notes", len(notes)))
	if err != nil {
		return res, err
	}
	res.Committed = committed
	return res, nil
}

// prune deletes markdown files in dir that are not in keep.
func prune(dir string, keep map[string]bool) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read export directory: %w", err)
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(name), ".md") || keep[name] {
			continue
		}
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("failed to remove %s: %w", name, err)
		}
	}
	return nil
}
