package bot

import (
	"context"
	"time"
)

// Message is an inbound chat message.
type Message struct {
	ID        string
	ChannelID string
	AuthorID  string
	AuthorBot bool
	Content   string
	Timestamp time.Time
}

// Field is a named value shown on a card.
type Field struct {
	Name   string
	Value  string
	Inline bool
}

// Card is a structured reply. The chat platform decides how it looks.
type Card struct {
	Title       string
	URL         string
	Color       int
	Author      string
	Description string
	Fields      []Field
	Thumbnail   string
	Footer      string
}

// Reply is either plain text or a card.
type Reply struct {
	Text string
	Card *Card
}

// TextReply returns a plain-text reply.
func TextReply(s string) Reply { return Reply{Text: s} }

// CardReply returns a card reply.
func CardReply(c *Card) Reply { return Reply{Card: c} }

// Sent identifies a message the bot has posted.
type Sent struct {
	ID        string
	Timestamp time.Time
}

// Responder posts to the channel a message came from.
type Responder interface {
	Send(ctx context.Context, r Reply) (*Sent, error)
	Edit(ctx context.Context, id string, r Reply) (*Sent, error)
}
