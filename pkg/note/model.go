// Package note holds the in-memory Note Store: an ordered collection of notes
// with a single active selection.
package note

import "time"

// Source describes the document a note was imported from.
type Source struct {
	Kind     string `json:"kind" yaml:"kind"` // presentation, voice, markdown
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`
}

// Note is one user note.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary,omitempty"`
	AudioURL  string    `json:"audio_url,omitempty"`
	Source    *Source   `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Summary  *string `json:"summary,omitempty"`
	AudioURL *string `json:"audio_url,omitempty"`
	Source   *Source `json:"source,omitempty"`
}

// String returns a pointer to s, for building patches.
func String(s string) *string {
	return &s
}

func (n Note) clone() Note {
	if n.Source != nil {
		src := *n.Source
		n.Source = &src
	}
	return n
}

func (p Patch) apply(n *Note) {
	if p.Title != nil {
		n.Title = *p.Title
	}
	if p.Content != nil {
		n.Content = *p.Content
	}
	if p.Summary != nil {
		n.Summary = *p.Summary
	}
	if p.AudioURL != nil {
		n.AudioURL = *p.AudioURL
	}
	if p.Source != nil {
		src := *p.Source
		n.Source = &src
	}
}
