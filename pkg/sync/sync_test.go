package sync

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"

	"github.com/mklimuk/vocal-notes/pkg/note"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSyncInitializesAndCommits(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vault")
	g := NewGitManager(dir, quietLogger())

	committed, err := g.Sync("")
	if err != nil {
		t.Fatalf("sync empty vault: %v", err)
	}
	if committed {
		t.Error("expected no commit for an empty vault")
	}

	if err := os.WriteFile(filepath.Join(dir, "a.md"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	committed, err = g.Sync("Add a")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !committed {
		t.Fatal("expected a commit")
	}

	r, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatal(err)
	}
	head, err := r.Head()
	if err != nil {
		t.Fatal(err)
	}
	commit, err := r.CommitObject(head.Hash())
	if err != nil {
		t.Fatal(err)
	}
	if commit.Message != "Add a" || commit.Author.Name != "Vocal Notes" {
		t.Errorf("unexpected commit %q by %q", commit.Message, commit.Author.Name)
	}

	committed, err = g.Sync("nothing")
	if err != nil {
		t.Fatalf("sync clean: %v", err)
	}
	if committed {
		t.Error("expected no commit for a clean worktree")
	}
}

func TestPushWithoutRemoteIsSkipped(t *testing.T) {
	dir := t.TempDir()
	g := NewGitManager(dir, quietLogger())
	g.Push = true

	if err := os.WriteFile(filepath.Join(dir, "a.md"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	committed, err := g.Sync("Add a")
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if !committed {
		t.Error("expected a commit")
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(NewGitManager(dir, quietLogger()), "Notes")
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	notes := []note.Note{
		{ID: "1", Title: "Ideas", Content: "one", CreatedAt: at, UpdatedAt: at},
		{ID: "2", Title: "ideas", Content: "two", CreatedAt: at, UpdatedAt: at},
		{ID: "3", Title: "", Content: "three", CreatedAt: at, UpdatedAt: at},
	}

	res, err := e.Export(notes)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !res.Committed {
		t.Error("expected a commit")
	}
	want := []string{
		filepath.Join("Notes", "Ideas.md"),
		filepath.Join("Notes", "ideas (2).md"),
		filepath.Join("Notes", "3.md"),
	}
	if len(res.Files) != len(want) {
		t.Fatalf("files = %v, want %v", res.Files, want)
	}
	for i := range want {
		if res.Files[i] != want[i] {
			t.Errorf("file %d = %q, want %q", i, res.Files[i], want[i])
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, "Notes", "Ideas.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "title: Ideas") || !strings.HasSuffix(string(data), "one\n") {
		t.Errorf("unexpected file content %q", data)
	}

	res, err = e.Export(notes)
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if res.Committed {
		t.Error("unchanged export should not commit")
	}
}

func TestExportRemovesRenamedAndDeletedNotes(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(NewGitManager(dir, quietLogger()), "Notes")
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

	if _, err := e.Export([]note.Note{
		{ID: "1", Title: "Draft", Content: "v1", CreatedAt: at, UpdatedAt: at},
		{ID: "2", Title: "Gone", Content: "bye", CreatedAt: at, UpdatedAt: at},
	}); err != nil {
		t.Fatalf("first export: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("vault"), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := e.Export([]note.Note{
		{ID: "1", Title: "Final", Content: "v2", CreatedAt: at, UpdatedAt: at},
	})
	if err != nil {
		t.Fatalf("second export: %v", err)
	}
	if !res.Committed {
		t.Error("expected a commit")
	}

	entries, err := os.ReadDir(filepath.Join(dir, "Notes"))
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	if len(names) != 1 || names[0] != "Final.md" {
		t.Errorf("Notes holds %v, want [Final.md]", names)
	}

	r, err := git.PlainOpen(dir)
	if err != nil {
		t.Fatal(err)
	}
	head, err := r.Head()
	if err != nil {
		t.Fatal(err)
	}
	commit, err := r.CommitObject(head.Hash())
	if err != nil {
		t.Fatal(err)
	}
	tree, err := commit.Tree()
	if err != nil {
		t.Fatal(err)
	}
	for _, path := range []string{"Notes/Draft.md", "Notes/Gone.md"} {
		if _, err := tree.File(path); err == nil {
			t.Errorf("%s still committed", path)
		}
	}
	for _, path := range []string{"Notes/Final.md", "README.txt"} {
		if _, err := tree.File(path); err != nil {
			t.Errorf("%s missing from commit: %v", path, err)
		}
	}
}

func TestConcurrentExports(t *testing.T) {
	dir := t.TempDir()
	e := NewExporter(NewGitManager(dir, quietLogger()), "Notes")
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	notes := []note.Note{{ID: "1", Title: "Ideas", Content: "one", CreatedAt: at, UpdatedAt: at}}

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Export(notes)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("export: %v", err)
		}
	}
}
