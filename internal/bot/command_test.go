package bot

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		content string
		cmd     Command
		arg     string
	}{
		{"!help", CommandHelp, ""},
		{"!help please", CommandNone, ""},
		{"!search Dune", CommandSearch, "Dune"},
		{"!search  The Hobbit ", CommandSearch, "The Hobbit"},
		{"!search", CommandSearch, ""},
		{"!searchDune", CommandNone, ""},
		{"!recommend Frank Herbert", CommandRecommend, "Frank Herbert"},
		{"!recommend", CommandRecommend, ""},
		{"!search\tDune", CommandSearch, "Dune"},
		{"!search\nDune", CommandSearch, "Dune"},
		{"!recommend\nFrank Herbert", CommandRecommend, "Frank Herbert"},
		{"!search Dune\tMessiah", CommandSearch, "Dune Messiah"},
		{"!search \n ", CommandSearch, ""},
		{"!ping", CommandPing, ""},
		{"!ping now", CommandNone, ""},
		{"ping", CommandNone, ""},
		{"", CommandNone, ""},
		{"!SEARCH Dune", CommandNone, ""},
	}

	for _, tt := range tests {
		cmd, arg := Classify(tt.content)
		if cmd != tt.cmd || arg != tt.arg {
			t.Errorf("Classify(%q) = (%q, %q), want (%q, %q)", tt.content, cmd, arg, tt.cmd, tt.arg)
		}
	}
}
