package vault

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Parse reads a markdown document and splits its frontmatter and content.
// Documents without frontmatter are accepted as plain content.
func Parse(r io.Reader) (*Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	var frontmatterLines []string
	var contentLines []string
	inFrontmatter := false
	closed := false
	lineCount := 0

	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		lineCount++

		if lineCount == 1 && line == "---" {
			inFrontmatter = true
			continue
		}

		if inFrontmatter {
			if line == "---" {
				inFrontmatter = false
				closed = true
				continue
			}
			frontmatterLines = append(frontmatterLines, line)
		} else {
			contentLines = append(contentLines, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read markdown: %w", err)
	}
	if inFrontmatter && !closed {
		return nil, fmt.Errorf("unterminated frontmatter")
	}

	doc := &Document{Content: strings.Trim(strings.Join(contentLines, "\n"), "\n")}
	if fm := strings.Join(frontmatterLines, "\n"); strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &doc.Frontmatter); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
	}
	return doc, nil
}

// ParseBytes is Parse over an in-memory document.
func ParseBytes(data []byte) (*Document, error) {
	return Parse(bytes.NewReader(data))
}

// splitHeading pulls a leading "# Title" line out of the content.
func splitHeading(content string) (string, string) {
	first, rest, _ := strings.Cut(content, "\n")
	title, ok := strings.CutPrefix(strings.TrimSpace(first), "# ")
	if !ok {
		return "", content
	}
	return strings.TrimSpace(title), strings.TrimLeft(rest, "\n")
}
