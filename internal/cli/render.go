package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/joebot/bookbot/internal/bot"
)

const maxCardWidth = 72

// RenderReply renders a router reply for the terminal.
func RenderReply(r bot.Reply, width int) string {
	if r.Card == nil {
		return r.Text
	}
	return RenderCard(r.Card, width)
}

// RenderCard draws a card as a bordered box with a colored left edge.
func RenderCard(c *bot.Card, width int) string {
	if width <= 0 || width > maxCardWidth {
		width = maxCardWidth
	}
	color := lipgloss.Color(fmt.Sprintf("#%06X", c.Color))
	inner := width - 4

	var parts []string
	if c.Author != "" {
		parts = append(parts, BoldStyle.Render(c.Author))
	}
	if c.Title != "" {
		parts = append(parts, lipgloss.NewStyle().Bold(true).Foreground(color).Render(c.Title))
	}
	if c.URL != "" {
		parts = append(parts, DimStyle.Render(c.URL))
	}
	if c.Description != "" {
		parts = append(parts, lipgloss.NewStyle().Width(inner).Render(c.Description))
	}
	for _, f := range c.Fields {
		parts = append(parts, BoldStyle.Render(f.Name)+"\n"+lipgloss.NewStyle().Width(inner).Render(f.Value))
	}
	if c.Thumbnail != "" {
		parts = append(parts, DimStyle.Render("🖼  "+c.Thumbnail))
	}
	if c.Footer != "" {
		parts = append(parts, DimStyle.Render(c.Footer))
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(color).
		PaddingLeft(1).
		Width(width - 1)
	return box.Render(strings.Join(parts, "\n\n"))
}
