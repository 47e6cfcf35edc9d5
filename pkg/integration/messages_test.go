package integration

import (
	"strings"
	"testing"
)

func TestStatusText(t *testing.T) {
	if got := StatusText(3, true); got != "Vocal Notes is online. 3 notes stored." {
		t.Errorf("StatusText = %q", got)
	}
	if got := StatusText(0, false); got != "Vocal Notes is online. 0 notes stored. Text-to-speech is not configured." {
		t.Errorf("StatusText = %q", got)
	}
}

func TestTruncateMessage(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{"fits", "hello", 5, "hello"},
		{"cut", "hello world", 8, "hello..."},
		{"multibyte", "żółw żółw", 7, "żółw..."},
		{"surrogate pairs", "😀😀😀😀", 7, "😀😀..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateMessage(tt.text, tt.limit); got != tt.want {
				t.Errorf("TruncateMessage(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
		})
	}
}

func TestTruncateMessageFitsPlatformLimits(t *testing.T) {
	slides := "Saved **Deck**\n" + strings.Repeat("Quarterly results slide text. ", 500)
	for _, limit := range []int{DiscordMessageLimit, TelegramMessageLimit} {
		got := TruncateMessage(slides, limit)
		if n := utf16Len(got); n > limit {
			t.Errorf("limit %d: got %d units", limit, n)
		}
		if !strings.HasPrefix(got, "Saved **Deck**\n") || !strings.HasSuffix(got, "...") {
			t.Errorf("limit %d: unexpected message %q", limit, got[:40])
		}
	}
}
