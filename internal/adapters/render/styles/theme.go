package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red

	// Mana colors, keyed by color letter
	ManaColors = map[string]lipgloss.Color{
		"W": lipgloss.Color("#F8E7B9"),
		"U": lipgloss.Color("#60A5FA"),
		"B": lipgloss.Color("#A78BFA"),
		"R": lipgloss.Color("#F87171"),
		"G": lipgloss.Color("#34D399"),
	}

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	Label = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)

	Oracle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Muted).
		Padding(0, 1)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Warning).
		MarginTop(1)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)
)

// ForColors renders text in the first mana color of colors, or plain when colorless
func ForColors(colors []string) lipgloss.Style {
	if len(colors) > 0 {
		if c, ok := ManaColors[colors[0]]; ok {
			return lipgloss.NewStyle().Bold(true).Foreground(c)
		}
	}
	return lipgloss.NewStyle().Bold(true)
}
