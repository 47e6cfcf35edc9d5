package vault

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mklimuk/vocal-notes/pkg/note"
)

// Marshal renders the document as frontmatter followed by the markdown body
func (d Document) Marshal() ([]byte, error) {
	fmData, err := yaml.Marshal(d.Frontmatter)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(fmData)
	buf.WriteString("---\n")
	buf.WriteString(d.Content)
	if d.Content != "" && !strings.HasSuffix(d.Content, "\n") {
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// MarshalNote renders a note as a markdown file.
func MarshalNote(n note.Note) ([]byte, error) {
	return FromNote(n).Marshal()
}

// Filename returns a file name for the note: the sanitized title, or the ID
// for untitled notes.
func Filename(n note.Note) string {
	name := strings.TrimSpace(SanitizeFilename(n.Title))
	if name == "" {
		name = n.ID
	}
	return name + ".md"
}

// SanitizeFilename removes characters invalid in filenames.
func SanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	for _, char := range invalid {
		name = strings.ReplaceAll(name, char, "-")
	}
	return name
}
