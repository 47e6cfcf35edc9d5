package vault

import (
	"strings"
	"testing"
	"time"

	"github.com/mklimuk/vocal-notes/pkg/note"
)

func TestMarshalParseNote(t *testing.T) {
	created := time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC)
	n := note.Note{
		ID:        "abc",
		Title:     "Meeting Notes",
		Content:   "# Agenda\n\n- budget\n- hiring",
		Summary:   "Budget and hiring.",
		Source:    &note.Source{Kind: "presentation", Filename: "q3.pptx"},
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}

	data, err := MarshalNote(n)
	if err != nil {
		t.Fatalf("Failed to marshal note: %v", err)
	}
	text := string(data)
	if !strings.HasPrefix(text, "---\n") {
		t.Errorf("expected frontmatter, got %q", text)
	}
	if !strings.Contains(text, "title: Meeting Notes") {
		t.Errorf("frontmatter missing title: %s", text)
	}

	doc, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("Failed to parse note: %v", err)
	}
	got := doc.Note()

	if got.ID != n.ID || got.Title != n.Title || got.Summary != n.Summary {
		t.Errorf("metadata mismatch: %+v", got)
	}
	if got.Content != n.Content {
		t.Errorf("Expected content %q, got %q", n.Content, got.Content)
	}
	if got.Source == nil || *got.Source != *n.Source {
		t.Errorf("source mismatch: %+v", got.Source)
	}
	if !got.CreatedAt.Equal(n.CreatedAt) || !got.UpdatedAt.Equal(n.UpdatedAt) {
		t.Errorf("timestamps mismatch: %v %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestParseWithoutFrontmatter(t *testing.T) {
	doc, err := ParseBytes([]byte("# Shopping\n\nmilk\neggs\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n := doc.Note()
	if n.Title != "Shopping" {
		t.Errorf("title = %q", n.Title)
	}
	if n.Content != "milk\neggs" {
		t.Errorf("content = %q", n.Content)
	}
	if n.ID != "" || !n.CreatedAt.IsZero() {
		t.Errorf("expected empty metadata, got %+v", n)
	}
}

func TestParsePlainText(t *testing.T) {
	doc, err := ParseBytes([]byte("just a line"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	n := doc.Note()
	if n.Title != "" || n.Content != "just a line" {
		t.Errorf("unexpected note %+v", n)
	}
}

func TestParseErrors(t *testing.T) {
	tests := map[string]string{
		"unterminated": "---\ntitle: x\nbody",
		"bad yaml":     "---\ntitle: [x\n---\nbody",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseBytes([]byte(input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestFilename(t *testing.T) {
	tests := []struct {
		n    note.Note
		want string
	}{
		{note.Note{ID: "1", Title: "Q3: plan/draft"}, "Q3- plan-draft.md"},
		{note.Note{ID: "2", Title: "  "}, "2.md"},
		{note.Note{ID: "3", Title: "Ideas"}, "Ideas.md"},
	}
	for _, tt := range tests {
		if got := Filename(tt.n); got != tt.want {
			t.Errorf("Filename(%q) = %q, want %q", tt.n.Title, got, tt.want)
		}
	}
}
