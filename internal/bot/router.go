// Package bot routes chat commands to the book search API and renders replies.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/joebot/bookbot/internal/books"
)

// DefaultRecommendLimit is how many volumes !recommend picks from.
const DefaultRecommendLimit = 10

// User-facing text replies.
const (
	MsgNeedTitle       = "Please provide a book title to search for."
	MsgNoBooks         = "No books found for that title."
	MsgSearchFailed    = "There was an error fetching book data. Please try again later."
	MsgNeedAuthor      = "Please provide an author name for recommendations."
	MsgNoRecommend     = "No recommendations found for that author."
	MsgRecommendFailed = "There was an error fetching the recommendations. Please try again later."
	MsgPinging         = "Pinging..."
)

// Searcher is the subset of the books client the router needs.
type Searcher interface {
	SearchTitle(ctx context.Context, title string) ([]books.Book, error)
	SearchAuthor(ctx context.Context, author string, limit int) ([]books.Book, error)
}

// PickFunc returns an index in [0, n). n is always at least 1.
type PickFunc func(n int) int

// Router handles one inbound message at a time. It holds no per-message
// state and may be shared between goroutines.
type Router struct {
	books          Searcher
	pick           PickFunc
	recommendLimit int
	logger         *slog.Logger
}

// Option configures a Router.
type Option func(*Router)

// WithPicker replaces the uniform random pick used by !recommend.
func WithPicker(p PickFunc) Option {
	return func(r *Router) { r.pick = p }
}

// WithRecommendLimit sets how many results !recommend requests.
func WithRecommendLimit(n int) Option {
	return func(r *Router) {
		if n > 0 {
			r.recommendLimit = n
		}
	}
}

// WithLogger sets the logger used for fetch errors and command traces.
func WithLogger(l *slog.Logger) Option {
	return func(r *Router) { r.logger = l }
}

// NewRouter creates a Router backed by s.
func NewRouter(s Searcher, opts ...Option) *Router {
	r := &Router{
		books:          s,
		pick:           rand.Intn,
		recommendLimit: DefaultRecommendLimit,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Handle classifies msg and sends at most one reply through out.
// Book API failures are reported to the user and never returned;
// the returned error is always a send or edit failure.
func (r *Router) Handle(ctx context.Context, msg Message, out Responder) error {
	if msg.AuthorBot {
		return nil
	}

	cmd, arg := Classify(msg.Content)
	if cmd == CommandNone {
		return nil
	}

	log := r.logger.With("request", uuid.NewString(), "command", string(cmd), "channel", msg.ChannelID)
	log.Debug("Routing command", "author", msg.AuthorID, "arg", arg)

	switch cmd {
	case CommandHelp:
		return send(ctx, out, CardReply(HelpCard()))
	case CommandSearch:
		return r.search(ctx, log, arg, out)
	case CommandRecommend:
		return r.recommend(ctx, log, arg, out)
	case CommandPing:
		return r.ping(ctx, msg, out)
	}
	return nil
}

func (r *Router) search(ctx context.Context, log *slog.Logger, title string, out Responder) error {
	if title == "" {
		return send(ctx, out, TextReply(MsgNeedTitle))
	}

	results, err := r.books.SearchTitle(ctx, title)
	if err != nil {
		log.Error("Error fetching book data", append([]any{"query", title}, fetchErrorAttrs(err)...)...)
		return send(ctx, out, TextReply(MsgSearchFailed))
	}
	if len(results) == 0 {
		log.Info("No books found", "query", title)
		return send(ctx, out, TextReply(MsgNoBooks))
	}
	return send(ctx, out, CardReply(BookCard(results[0])))
}

func (r *Router) recommend(ctx context.Context, log *slog.Logger, author string, out Responder) error {
	if author == "" {
		return send(ctx, out, TextReply(MsgNeedAuthor))
	}

	results, err := r.books.SearchAuthor(ctx, author, r.recommendLimit)
	if err != nil {
		log.Error("Error fetching recommendations", append([]any{"author", author}, fetchErrorAttrs(err)...)...)
		return send(ctx, out, TextReply(MsgRecommendFailed))
	}
	if len(results) == 0 {
		log.Info("No recommendations found", "author", author)
		return send(ctx, out, TextReply(MsgNoRecommend))
	}

	i := r.pick(len(results))
	if i < 0 || i >= len(results) {
		i = 0
	}
	return send(ctx, out, CardReply(RecommendationCard(results[i])))
}

func (r *Router) ping(ctx context.Context, msg Message, out Responder) error {
	sent, err := out.Send(ctx, TextReply(MsgPinging))
	if err != nil {
		return fmt.Errorf("send ping: %w", err)
	}
	_, err = out.Edit(ctx, sent.ID, TextReply(PongText(ResponseTime(msg.Timestamp, sent.Timestamp))))
	if err != nil {
		return fmt.Errorf("edit ping: %w", err)
	}
	return nil
}

// ResponseTime is the delay between a message and the bot's reply to it.
// Clock skew between the two timestamps never yields a negative value.
func ResponseTime(received, replied time.Time) time.Duration {
	d := replied.Sub(received)
	if d < 0 {
		return 0
	}
	return d
}

// PongText formats the edited ping reply.
func PongText(d time.Duration) string {
	return fmt.Sprintf("Pong! Response time: %dms", d.Milliseconds())
}

// fetchErrorAttrs logs API error bodies as a block below the log line.
func fetchErrorAttrs(err error) []any {
	var se *books.StatusError
	if errors.As(err, &se) {
		return []any{"status", se.StatusCode, "body", se.Body}
	}
	return []any{"err", err}
}

func send(ctx context.Context, out Responder, reply Reply) error {
	if _, err := out.Send(ctx, reply); err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}
