// Package integration holds what the chat capture bots share.
package integration

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/mklimuk/vocal-notes/pkg/ai"
	"github.com/mklimuk/vocal-notes/pkg/gateway"
)

// MaxAttachmentBytes bounds downloaded voice messages and documents.
const MaxAttachmentBytes = 20 << 20

// FetchMedia downloads an attachment. The declared MIME type wins over the
// one the file server reports, which is often application/octet-stream.
func FetchMedia(ctx context.Context, client *http.Client, url, mimeType string) (ai.Media, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ai.Media{}, fmt.Errorf("failed to build download request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return ai.Media{}, fmt.Errorf("failed to download attachment: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ai.Media{}, fmt.Errorf("failed to download attachment: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxAttachmentBytes+1))
	if err != nil {
		return ai.Media{}, fmt.Errorf("failed to read attachment: %w", err)
	}
	if len(data) > MaxAttachmentBytes {
		return ai.Media{}, fmt.Errorf("attachment exceeds %d bytes", MaxAttachmentBytes)
	}

	if mimeType == "" {
		mimeType = resp.Header.Get("Content-Type")
	}
	return ai.Media{MIMEType: mimeType, Data: data}, nil
}

// Kind classifies an attachment by media type.
type Kind int

const (
	KindOther Kind = iota
	KindAudio
	KindPresentation
)

// Classify tells voice recordings and slide decks apart from everything else.
func Classify(mimeType string) Kind {
	switch {
	case gateway.AcceptsAudio(mimeType):
		return KindAudio
	case gateway.AcceptsPresentation(mimeType):
		return KindPresentation
	default:
		return KindOther
	}
}

// TruncateTitle returns a title derived from content, truncated to 20 characters with "..." if needed.
func TruncateTitle(content string) string {
	content = strings.TrimSpace(content)
	if first, _, ok := strings.Cut(content, "\n"); ok {
		content = first
	}
	if utf8.RuneCountInString(content) > 20 {
		return string([]rune(content)[:20]) + "..."
	}
	return content
}

// FormatNoteList renders note titles as a numbered list, at most limit entries.
func FormatNoteList(titles []string, limit int) string {
	if len(titles) == 0 {
		return "No notes yet."
	}
	var sb strings.Builder
	for i, title := range titles {
		if i == limit {
			fmt.Fprintf(&sb, "... and %d more\n", len(titles)-limit)
			break
		}
		if strings.TrimSpace(title) == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
