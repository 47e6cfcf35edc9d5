package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mklimuk/vocal-notes/pkg/integration"
	"github.com/mklimuk/vocal-notes/pkg/note"
	"github.com/mklimuk/vocal-notes/pkg/notebook"
)

const listLimit = 10

// Bot wraps the Telegram bot API and dependencies
type Bot struct {
	API      *tgbotapi.BotAPI
	Notebook *notebook.Notebook
	client   *http.Client
	logger   *slog.Logger
	stopCh   chan struct{}
	done     chan struct{}
}

// NewBot creates a new Telegram bot
func NewBot(token string, nb *notebook.Notebook, logger *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("error creating Telegram bot: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Bot{
		API:      api,
		Notebook: nb,
		client:   http.DefaultClient,
		logger:   logger.With("bot", "telegram"),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins polling for updates in a goroutine
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.API.GetUpdatesChan(u)

	go func() {
		defer close(b.done)
		for {
			select {
			case <-b.stopCh:
				return
			case <-ctx.Done():
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message != nil {
					b.handleMessage(ctx, update.Message)
				}
			}
		}
	}()

	b.logger.Info("bot started", "user", b.API.Self.UserName)
	return nil
}

// Stop stops polling for updates
func (b *Bot) Stop() {
	close(b.stopCh)
	b.API.StopReceivingUpdates()
	<-b.done
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	switch {
	case msg.Voice != nil:
		b.handleAttachment(ctx, msg, msg.Voice.FileID, msg.Voice.MimeType, "")
		return
	case msg.Audio != nil:
		b.handleAttachment(ctx, msg, msg.Audio.FileID, msg.Audio.MimeType, msg.Audio.FileName)
		return
	case msg.Document != nil:
		b.handleAttachment(ctx, msg, msg.Document.FileID, msg.Document.MimeType, msg.Document.FileName)
		return
	}

	cmd, content := ParseCommand(msg.Text)
	switch cmd {
	case "/note":
		b.handleNote(msg, content)
	case "/list":
		b.handleList(msg)
	case "/status":
		b.handleStatus(msg)
	}
}

func (b *Bot) handleNote(msg *tgbotapi.Message, content string) {
	store := b.Notebook.Store()
	n := store.Create()
	if _, err := store.Update(n.ID, note.Patch{Title: note.String(integration.TruncateTitle(content)), Content: note.String(content)}); err != nil {
		b.reply(msg, fmt.Sprintf("Error creating note: %v", err))
		return
	}
	b.reply(msg, "Note saved")
}

func (b *Bot) handleList(msg *tgbotapi.Message) {
	notes := b.Notebook.Store().List()
	titles := make([]string, 0, len(notes))
	for _, n := range notes {
		titles = append(titles, n.Title)
	}
	b.reply(msg, integration.FormatNoteList(titles, listLimit))
}

func (b *Bot) handleStatus(msg *tgbotapi.Message) {
	b.reply(msg, integration.StatusText(b.Notebook.Store().Len(), b.Notebook.CanSynthesize()))
}

func (b *Bot) handleAttachment(ctx context.Context, msg *tgbotapi.Message, fileID, mimeType, filename string) {
	kind := integration.Classify(mimeType)
	if kind == integration.KindOther {
		b.reply(msg, "Send a voice message or a presentation (pptx, ppt, odp).")
		return
	}

	url, err := b.API.GetFileDirectURL(fileID)
	if err != nil {
		b.logger.Error("failed to resolve file", "file", fileID, "error", err)
		b.reply(msg, "Could not download the file.")
		return
	}
	media, err := integration.FetchMedia(ctx, b.client, url, mimeType)
	if err != nil {
		b.logger.Error("failed to download file", "file", fileID, "error", err)
		b.reply(msg, "Could not download the file.")
		return
	}

	var n note.Note
	if kind == integration.KindAudio {
		n, err = b.Notebook.CaptureVoice(ctx, media)
	} else {
		n, err = b.Notebook.ImportSlides(ctx, filename, media)
	}
	if err != nil {
		b.reply(msg, fmt.Sprintf("Error creating note: %v", err))
		return
	}
	b.reply(msg, fmt.Sprintf("Saved %q:\n%s", n.Title, n.Content))
}

func (b *Bot) reply(msg *tgbotapi.Message, text string) {
	text = integration.TruncateMessage(text, integration.TelegramMessageLimit)
	if _, err := b.API.Send(tgbotapi.NewMessage(msg.Chat.ID, text)); err != nil {
		b.logger.Error("failed to send reply", "chat", msg.Chat.ID, "error", err)
	}
}

// ParseCommand extracts the command and content from a message text.
// Returns the command (e.g. "/note", "/status") and the remaining content.
func ParseCommand(text string) (command, content string) {
	if strings.HasPrefix(text, "/note ") {
		return "/note", strings.TrimSpace(strings.TrimPrefix(text, "/note "))
	}
	if text == "/list" || text == "/status" {
		return text, ""
	}
	return "", text
}
