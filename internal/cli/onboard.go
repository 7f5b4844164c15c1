package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joebot/bookbot/internal/config"
)

type onboardChoice int

const (
	choiceKeep onboardChoice = iota
	choiceOverwrite
)

type onboardModel struct {
	choices []string
	cursor  int
	chosen  bool
	choice  onboardChoice
}

func (m onboardModel) Init() tea.Cmd { return nil }

func (m onboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.choice = choiceKeep
			m.chosen = true
			return m, tea.Quit
		case tea.KeyUp, tea.KeyShiftTab:
			if m.cursor > 0 {
				m.cursor--
			}
		case tea.KeyDown, tea.KeyTab:
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case tea.KeyEnter:
			m.choice = onboardChoice(m.cursor)
			m.chosen = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m onboardModel) View() string {
	if m.chosen {
		return ""
	}

	s := "\n"
	s += fmt.Sprintf("  Config already exists at %s\n\n", DimStyle.Render(config.ConfigPath()))
	for i, choice := range m.choices {
		cursor := "  "
		if i == m.cursor {
			cursor = BotLabel.Render("❯ ")
		}
		s += "  " + cursor + choice + "\n"
	}
	s += "\n" + DimStyle.Render("  ↑/↓ navigate · enter select · esc cancel") + "\n"
	return s
}

// RunOnboard writes a default config file, asking before replacing one.
func RunOnboard() error {
	cfgPath := config.ConfigPath()

	fmt.Println()
	fmt.Println(TitleStyle.Render(fmt.Sprintf("  %s bookbot Onboard", Logo)))

	if _, err := os.Stat(cfgPath); err == nil {
		m := onboardModel{
			choices: []string{
				"Keep, do not modify config",
				"Overwrite, replace with fresh defaults",
			},
		}
		final, err := tea.NewProgram(m).Run()
		if err != nil {
			return err
		}
		fmt.Println()
		if final.(onboardModel).choice != choiceOverwrite {
			fmt.Println("  " + DimStyle.Render("Config unchanged"))
			return nil
		}
	}

	if err := config.Save(config.DefaultConfig()); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("  " + OkStyle.Render("✓") + " Wrote config to " + DimStyle.Render(cfgPath))

	fmt.Println()
	fmt.Println(OkStyle.Render("  bookbot is ready!"))
	fmt.Println()
	fmt.Println(DimStyle.Render("  Next steps:"))
	fmt.Println(DimStyle.Render("  1. Set discord.token and books.apiKey in " + cfgPath))
	fmt.Println(DimStyle.Render("     or export " + config.EnvDiscordToken + " and " + config.EnvGoogleAPIKey + " (a .env file works too)"))
	fmt.Println(DimStyle.Render("  2. Try it locally: bookbot ask \"!search Dune\""))
	fmt.Println(DimStyle.Render("  3. Go live: bookbot gateway"))
	fmt.Println()
	return nil
}
