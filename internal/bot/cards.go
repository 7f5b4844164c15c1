package bot

import "github.com/joebot/bookbot/internal/books"

const (
	cardColor = 0x0099FF
	footer    = "Powered by Google Books API"
)

var helpFields = []Field{
	{Name: "!search <book title>", Value: "Search for a book by its title."},
	{Name: "!recommend <author>", Value: "Get a book recommendation from a specific author."},
	{Name: "!ping", Value: "Check the bot's response time."},
	{Name: "!help", Value: "Show this help message."},
}

// HelpCard lists the supported commands.
func HelpCard() *Card {
	fields := make([]Field, len(helpFields))
	copy(fields, helpFields)
	return &Card{
		Title:       "Available Commands",
		Color:       cardColor,
		Description: "Here are the commands you can use:",
		Fields:      fields,
	}
}

// BookCard renders a single search result.
func BookCard(b books.Book) *Card {
	return &Card{
		Title:       b.DisplayTitle(),
		URL:         b.InfoLink,
		Color:       cardColor,
		Author:      b.AuthorLine(),
		Description: b.Summary(),
		Thumbnail:   b.Thumbnail,
		Footer:      footer,
	}
}

// RecommendationCard is a BookCard with a one-sentence plot field.
func RecommendationCard(b books.Book) *Card {
	c := BookCard(b)
	c.Fields = []Field{{Name: "Plot", Value: b.Plot()}}
	return c
}
