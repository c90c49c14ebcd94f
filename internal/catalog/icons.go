package catalog

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var iconGlyphs = map[string]string{
	"terminal":   ">_",
	"gitbranch":  "⎇",
	"git":        "⎇",
	"container":  "▣",
	"box":        "▣",
	"database":   "⛁",
	"code":       "</>",
	"cloud":      "☁",
	"server":     "▤",
	"file":       "▯",
	"folder":     "▭",
	"package":    "◫",
	"settings":   "⚙",
	"cpu":        "▦",
	"network":    "⇄",
	"lock":       "⚿",
	"key":        "⚷",
	"sparkles":   "✦",
	"zap":        "ϟ",
	"hammer":     "⚒",
	"wrench":     "⚒",
	"globe":      "◍",
	"bookopen":   "▥",
	"commandkey": "⌘",
}

// IconGlyph resolves a game icon name to a terminal glyph. Unknown names
// yield an empty string.
func IconGlyph(name string) string {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	return iconGlyphs[key]
}

var gameColors = map[string]lipgloss.Color{
	"blue":   lipgloss.Color("#3B82F6"),
	"yellow": lipgloss.Color("#EAB308"),
	"green":  lipgloss.Color("#22C55E"),
	"red":    lipgloss.Color("#EF4444"),
	"purple": lipgloss.Color("#A855F7"),
	"amber":  lipgloss.Color("#F59E0B"),
}

// DefaultColor is used for games with an unknown colour.
var DefaultColor = lipgloss.Color("#C89A3A")

// GameColor resolves a game colour name.
func GameColor(name string) lipgloss.Color {
	if c, ok := gameColors[strings.ToLower(strings.TrimSpace(name))]; ok {
		return c
	}
	return DefaultColor
}
