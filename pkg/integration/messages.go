package integration

import (
	"fmt"
	"unicode/utf16"
)

// Message length limits of the chat platforms.
const (
	DiscordMessageLimit  = 2000
	TelegramMessageLimit = 4096
)

const ellipsis = "..."

// StatusText describes the bot state.
func StatusText(notes int, canSpeak bool) string {
	s := fmt.Sprintf("Vocal Notes is online. %d notes stored.", notes)
	if !canSpeak {
		s += " Text-to-speech is not configured."
	}
	return s
}

// TruncateMessage shortens text to at most limit UTF-16 code units, ending
// with "..." when cut. Telegram counts UTF-16 units and Discord counts
// characters, so the result fits both.
func TruncateMessage(text string, limit int) string {
	if utf16Len(text) <= limit {
		return text
	}
	budget := limit - len(ellipsis)
	if budget < 0 {
		budget = 0
	}
	n := 0
	for i, r := range text {
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}
		if n+w > budget {
			return text[:i] + ellipsis
		}
		n += w
	}
	return text
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		w := utf16.RuneLen(r)
		if w < 0 {
			w = 1
		}
		n += w
	}
	return n
}
