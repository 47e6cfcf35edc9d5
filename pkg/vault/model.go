// Package vault converts notes to and from markdown files with YAML
// frontmatter, the format used by Obsidian-style vaults.
package vault

import (
	"time"

	"github.com/mklimuk/vocal-notes/pkg/note"
)

// Frontmatter contains the note metadata stored above the markdown body
type Frontmatter struct {
	ID       string       `yaml:"id,omitempty"`
	Title    string       `yaml:"title,omitempty"`
	Summary  string       `yaml:"summary,omitempty"`
	Source   *note.Source `yaml:"source,omitempty"`
	Tags     []string     `yaml:"tags,omitempty"`
	Created  time.Time    `yaml:"created,omitempty"`
	Modified time.Time    `yaml:"modified,omitempty"`
}

// Document represents a parsed markdown note
type Document struct {
	Frontmatter Frontmatter
	Content     string // The markdown content after frontmatter
}

// FromNote builds the markdown document for a note.
func FromNote(n note.Note) Document {
	return Document{
		Frontmatter: Frontmatter{
			ID:       n.ID,
			Title:    n.Title,
			Summary:  n.Summary,
			Source:   n.Source,
			Created:  n.CreatedAt,
			Modified: n.UpdatedAt,
		},
		Content: n.Content,
	}
}

// Note converts the document back into a note. A missing title falls back to
// the first markdown heading.
func (d Document) Note() note.Note {
	title := d.Frontmatter.Title
	content := d.Content
	if title == "" {
		title, content = splitHeading(content)
	}
	return note.Note{
		ID:        d.Frontmatter.ID,
		Title:     title,
		Content:   content,
		Summary:   d.Frontmatter.Summary,
		Source:    d.Frontmatter.Source,
		CreatedAt: d.Frontmatter.Created,
		UpdatedAt: d.Frontmatter.Modified,
	}
}
