package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/joebot/bookbot/internal/bot"
)

// ConsoleResponder collects router replies in memory for the terminal.
type ConsoleResponder struct {
	mu      sync.Mutex
	now     func() time.Time
	nextID  int
	order   []string
	replies map[string]bot.Reply
}

// NewConsoleResponder returns an empty responder stamping replies with time.Now.
func NewConsoleResponder() *ConsoleResponder {
	return &ConsoleResponder{now: time.Now, replies: make(map[string]bot.Reply)}
}

func (c *ConsoleResponder) Send(_ context.Context, r bot.Reply) (*bot.Sent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	id := fmt.Sprintf("console-%d", c.nextID)
	c.order = append(c.order, id)
	c.replies[id] = r
	return &bot.Sent{ID: id, Timestamp: c.now()}, nil
}

func (c *ConsoleResponder) Edit(_ context.Context, id string, r bot.Reply) (*bot.Sent, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.replies[id]; !ok {
		return nil, fmt.Errorf("unknown message %q", id)
	}
	c.replies[id] = r
	return &bot.Sent{ID: id, Timestamp: c.now()}, nil
}

// Replies returns the current content of every sent message, oldest first.
func (c *ConsoleResponder) Replies() []bot.Reply {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]bot.Reply, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.replies[id])
	}
	return out
}

// consoleMessage wraps typed text as an inbound message from the local user.
func consoleMessage(text string) bot.Message {
	return bot.Message{
		ID:        fmt.Sprintf("local-%d", time.Now().UnixNano()),
		ChannelID: "console",
		AuthorID:  "console",
		Content:   text,
		Timestamp: time.Now(),
	}
}

// Route sends text through the router and returns the resulting replies.
func Route(ctx context.Context, router *bot.Router, text string) ([]bot.Reply, error) {
	out := NewConsoleResponder()
	err := router.Handle(ctx, consoleMessage(text), out)
	return out.Replies(), err
}
