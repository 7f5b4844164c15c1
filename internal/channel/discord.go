package channel

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"github.com/joebot/bookbot/internal/bot"
	"github.com/joebot/bookbot/internal/config"
)

// messenger is the part of *discordgo.Session used to reply.
type messenger interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

var _ Channel = (*Discord)(nil)

// Discord connects the router to a Discord gateway session.
type Discord struct {
	config config.DiscordConfig
	router *bot.Router

	mu      sync.Mutex
	session *discordgo.Session
	ctx     context.Context
	cancel  context.CancelFunc
	stopped bool
}

// NewDiscord creates a new Discord channel.
func NewDiscord(cfg config.DiscordConfig, router *bot.Router) *Discord {
	return &Discord{config: cfg, router: router}
}

func (d *Discord) Name() string { return "discord" }

// Start opens the gateway session and serves messages until ctx is done.
func (d *Discord) Start(ctx context.Context) error {
	if d.config.Token == "" {
		return fmt.Errorf("discord bot token not configured")
	}

	s, err := discordgo.New("Bot " + d.config.Token)
	if err != nil {
		return fmt.Errorf("create discord session: %w", err)
	}
	s.Identify.Intents = discordgo.Intent(d.config.Intents)
	s.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		slog.Info("Discord gateway READY", "user", r.User.Username, "guilds", len(r.Guilds))
	})
	s.AddHandler(d.onMessageCreate)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return context.Canceled
	}
	d.ctx, d.cancel, d.session = runCtx, cancel, s
	d.mu.Unlock()

	slog.Info("Connecting to Discord gateway...")
	if err := s.Open(); err != nil {
		return fmt.Errorf("open discord gateway: %w", err)
	}

	<-runCtx.Done()
	return runCtx.Err()
}

// Stop disconnects from Discord. It is safe to call while Start is
// still connecting.
func (d *Discord) Stop() error {
	d.mu.Lock()
	d.stopped = true
	cancel, session := d.cancel, d.session
	d.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if session != nil {
		return session.Close()
	}
	return nil
}

// onMessageCreate runs on its own goroutine for every message.
func (d *Discord) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	d.mu.Lock()
	ctx := d.ctx
	d.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}
	d.handle(ctx, m.Message, &discordResponder{api: s, channelID: m.ChannelID})
}

func (d *Discord) handle(ctx context.Context, m *discordgo.Message, out bot.Responder) {
	if m == nil || m.Author == nil || m.ChannelID == "" {
		return
	}
	if m.Author.Bot {
		return
	}
	if !IsAllowed(m.Author.ID, d.config.AllowFrom) {
		return
	}

	msg := bot.Message{
		ID:        m.ID,
		ChannelID: m.ChannelID,
		AuthorID:  m.Author.ID,
		AuthorBot: m.Author.Bot,
		Content:   m.Content,
		Timestamp: m.Timestamp,
	}
	if err := d.router.Handle(ctx, msg, out); err != nil {
		slog.Warn("Discord reply failed", "channel", m.ChannelID, "message", m.ID, "err", err)
	}
}

// discordResponder replies on one Discord channel.
type discordResponder struct {
	api       messenger
	channelID string
}

func (r *discordResponder) Send(ctx context.Context, reply bot.Reply) (*bot.Sent, error) {
	data := &discordgo.MessageSend{Content: reply.Text}
	if reply.Card != nil {
		data.Embeds = []*discordgo.MessageEmbed{toEmbed(reply.Card)}
	}
	m, err := r.api.ChannelMessageSendComplex(r.channelID, data, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("send discord message: %w", err)
	}
	return &bot.Sent{ID: m.ID, Timestamp: m.Timestamp}, nil
}

func (r *discordResponder) Edit(ctx context.Context, id string, reply bot.Reply) (*bot.Sent, error) {
	edit := discordgo.NewMessageEdit(r.channelID, id).SetContent(reply.Text)
	if reply.Card != nil {
		edit.SetEmbeds([]*discordgo.MessageEmbed{toEmbed(reply.Card)})
	}
	m, err := r.api.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("edit discord message: %w", err)
	}
	return &bot.Sent{ID: m.ID, Timestamp: m.Timestamp}, nil
}

// Discord rejects embeds with longer parts.
const (
	maxEmbedTitle       = 256
	maxEmbedDescription = 4096
	maxEmbedAuthor      = 256
	maxEmbedFieldName   = 256
	maxEmbedFieldValue  = 1024
	maxEmbedFooter      = 2048
)

func toEmbed(c *bot.Card) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:       truncate(c.Title, maxEmbedTitle),
		URL:         c.URL,
		Color:       c.Color,
		Description: truncate(c.Description, maxEmbedDescription),
	}
	if c.Author != "" {
		e.Author = &discordgo.MessageEmbedAuthor{Name: truncate(c.Author, maxEmbedAuthor)}
	}
	if c.Thumbnail != "" {
		e.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: c.Thumbnail}
	}
	if c.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: truncate(c.Footer, maxEmbedFooter)}
	}
	for _, f := range c.Fields {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name:   truncate(f.Name, maxEmbedFieldName),
			Value:  truncate(f.Value, maxEmbedFieldValue),
			Inline: f.Inline,
		})
	}
	return e
}

// truncate cuts s to at most max runes, ending in an ellipsis when cut.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}
