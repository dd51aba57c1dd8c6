package ai

import "strings"

var fallbackThemes = map[string][]string{
	"animals": {"cat", "dog", "horse", "tiger", "zebra", "rabbit", "monkey", "eagle", "shark", "whale", "otter", "camel"},
	"fruits":  {"apple", "banana", "cherry", "grape", "lemon", "mango", "melon", "peach", "pear", "plum", "kiwi", "orange"},
	"space":   {"star", "moon", "comet", "planet", "galaxy", "orbit", "rocket", "nebula", "meteor", "saturn", "venus", "mars"},
	"ocean":   {"wave", "coral", "tide", "reef", "squid", "pearl", "kelp", "shell", "crab", "anchor", "island", "harbor"},
}

const defaultTheme = "animals"

// fallbackWords returns up to count words from the built-in list closest to
// theme, or the default list when nothing matches.
func fallbackWords(theme string, count int) []string {
	theme = strings.ToLower(theme)
	list, ok := fallbackThemes[theme]
	if !ok {
		for name, words := range fallbackThemes {
			if theme != "" && (strings.Contains(theme, strings.TrimSuffix(name, "s")) || strings.Contains(name, theme)) {
				list, ok = words, true
				break
			}
		}
	}
	if !ok {
		list = fallbackThemes[defaultTheme]
	}

	out := make([]string, min(count, len(list)))
	copy(out, list)
	return out
}
