package discord

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mklimuk/vocal-notes/pkg/integration"
	"github.com/mklimuk/vocal-notes/pkg/note"
	"github.com/mklimuk/vocal-notes/pkg/notebook"
)

// Bot wraps the Discord session and dependencies
type Bot struct {
	Session  *discordgo.Session
	Notebook *notebook.Notebook
	client   *http.Client
	logger   *slog.Logger
	ctx      context.Context
}

// NewBot creates a new Discord bot
func NewBot(token string, nb *notebook.Notebook, logger *slog.Logger) (*Bot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	bot := &Bot{
		Session:  dg,
		Notebook: nb,
		client:   http.DefaultClient,
		logger:   logger.With("bot", "discord"),
		ctx:      context.Background(),
	}

	dg.Identify.Intents = discordgo.IntentGuildMessages | discordgo.IntentDirectMessages | discordgo.IntentMessageContent
	dg.AddHandler(bot.messageCreate)

	return bot, nil
}

// Start opens the websocket connection. Operations started from messages
// run under ctx.
func (b *Bot) Start(ctx context.Context) error {
	b.ctx = ctx
	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening Discord session: %w", err)
	}
	b.logger.Info("bot started")
	return nil
}

// Stop closes the websocket connection
func (b *Bot) Stop() error {
	return b.Session.Close()
}

func (b *Bot) messageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// Ignore messages from self
	if m.Author == nil || (s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID) {
		return
	}

	for _, a := range m.Attachments {
		b.handleAttachment(s, m, a)
	}

	cmd, content := ParseCommand(m.Content)
	switch cmd {
	case "!note":
		b.handleNote(s, m, content)
	case "!status":
		b.send(s, m.ChannelID, integration.StatusText(b.Notebook.Store().Len(), b.Notebook.CanSynthesize()))
	}
}

func (b *Bot) handleNote(s *discordgo.Session, m *discordgo.MessageCreate, content string) {
	store := b.Notebook.Store()
	n := store.Create()
	if _, err := store.Update(n.ID, note.Patch{Title: note.String(integration.TruncateTitle(content)), Content: note.String(content)}); err != nil {
		b.send(s, m.ChannelID, fmt.Sprintf("Error creating note: %v", err))
		return
	}
	b.send(s, m.ChannelID, "✅ Note saved")
}

func (b *Bot) handleAttachment(s *discordgo.Session, m *discordgo.MessageCreate, a *discordgo.MessageAttachment) {
	kind := integration.Classify(a.ContentType)
	if kind == integration.KindOther {
		return
	}

	media, err := integration.FetchMedia(b.ctx, b.client, a.URL, a.ContentType)
	if err != nil {
		b.logger.Error("failed to download attachment", "file", a.Filename, "error", err)
		b.send(s, m.ChannelID, "Could not download "+a.Filename)
		return
	}

	var n note.Note
	if kind == integration.KindAudio {
		n, err = b.Notebook.CaptureVoice(b.ctx, media)
	} else {
		n, err = b.Notebook.ImportSlides(b.ctx, a.Filename, media)
	}
	if err != nil {
		b.send(s, m.ChannelID, fmt.Sprintf("Error creating note from %s: %v", a.Filename, err))
		return
	}
	b.send(s, m.ChannelID, fmt.Sprintf("✅ Saved **%s**\n%s", n.Title, n.Content))
}

func (b *Bot) send(s *discordgo.Session, channelID, text string) {
	text = integration.TruncateMessage(text, integration.DiscordMessageLimit)
	if _, err := s.ChannelMessageSend(channelID, text); err != nil {
		b.logger.Error("failed to send message", "channel", channelID, "error", err)
	}
}

// ParseCommand extracts the command and content from a message.
func ParseCommand(text string) (command, content string) {
	if strings.HasPrefix(text, "!note ") {
		return "!note", strings.TrimSpace(strings.TrimPrefix(text, "!note "))
	}
	if text == "!status" {
		return "!status", ""
	}
	return "", text
}
