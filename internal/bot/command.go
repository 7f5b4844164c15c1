package bot

import "strings"

// Command is a recognised chat command.
type Command string

const (
	CommandNone      Command = ""
	CommandHelp      Command = "!help"
	CommandSearch    Command = "!search"
	CommandRecommend Command = "!recommend"
	CommandPing      Command = "!ping"
)

// Classify maps message text to a command and its argument.
// Help and Ping match the whole text; Search and Recommend match the
// first whitespace-delimited token and take the remaining tokens,
// space-joined, as the argument.
func Classify(content string) (Command, string) {
	if content == string(CommandHelp) {
		return CommandHelp, ""
	}

	fields := strings.Fields(content)
	if len(fields) > 0 {
		switch head := Command(fields[0]); head {
		case CommandSearch, CommandRecommend:
			return head, strings.Join(fields[1:], " ")
		}
	}

	if content == string(CommandPing) {
		return CommandPing, ""
	}
	return CommandNone, ""
}
