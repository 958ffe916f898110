package theme

import "github.com/charmbracelet/lipgloss"

// Nord theme - Arctic, north-bluish color palette
// https://www.nordtheme.com/
var Nord = Theme{
	Name: "nord",

	Background: lipgloss.Color("#2E3440"),
	Foreground: lipgloss.Color("#ECEFF4"),
	Subtle:     lipgloss.Color("#4C566A"),
	Highlight:  lipgloss.Color("#3B4252"),
	Border:     lipgloss.Color("#4C566A"),

	Primary:   lipgloss.Color("#88C0D0"),
	Secondary: lipgloss.Color("#81A1C1"),
	Info:      lipgloss.Color("#5E81AC"),
	Success:   lipgloss.Color("#A3BE8C"),
	Warning:   lipgloss.Color("#EBCB8B"),
	Error:     lipgloss.Color("#BF616A"),

	PriorityLow:    lipgloss.Color("#A3BE8C"),
	PriorityMedium: lipgloss.Color("#EBCB8B"),
	PriorityHigh:   lipgloss.Color("#BF616A"),

	StateIdle:      lipgloss.Color("#4C566A"),
	StateRunning:   lipgloss.Color("#88C0D0"),
	StatePaused:    lipgloss.Color("#EBCB8B"),
	StateCompleted: lipgloss.Color("#A3BE8C"),

	OrgWork:     lipgloss.Color("#5E81AC"),
	OrgPersonal: lipgloss.Color("#B48EAD"),
}

// Dracula theme
// https://draculatheme.com/
var Dracula = Theme{
	Name: "dracula",

	Background: lipgloss.Color("#282A36"),
	Foreground: lipgloss.Color("#F8F8F2"),
	Subtle:     lipgloss.Color("#6272A4"),
	Highlight:  lipgloss.Color("#44475A"),
	Border:     lipgloss.Color("#6272A4"),

	Primary:   lipgloss.Color("#BD93F9"),
	Secondary: lipgloss.Color("#FF79C6"),
	Info:      lipgloss.Color("#8BE9FD"),
	Success:   lipgloss.Color("#50FA7B"),
	Warning:   lipgloss.Color("#F1FA8C"),
	Error:     lipgloss.Color("#FF5555"),

	PriorityLow:    lipgloss.Color("#50FA7B"),
	PriorityMedium: lipgloss.Color("#F1FA8C"),
	PriorityHigh:   lipgloss.Color("#FF5555"),

	StateIdle:      lipgloss.Color("#6272A4"),
	StateRunning:   lipgloss.Color("#8BE9FD"),
	StatePaused:    lipgloss.Color("#F1FA8C"),
	StateCompleted: lipgloss.Color("#50FA7B"),

	OrgWork:     lipgloss.Color("#8BE9FD"),
	OrgPersonal: lipgloss.Color("#FF79C6"),
}

// Gruvbox theme (dark, medium contrast)
// https://github.com/morhetz/gruvbox
var Gruvbox = Theme{
	Name: "gruvbox",

	Background: lipgloss.Color("#282828"),
	Foreground: lipgloss.Color("#EBDBB2"),
	Subtle:     lipgloss.Color("#928374"),
	Highlight:  lipgloss.Color("#3C3836"),
	Border:     lipgloss.Color("#504945"),

	Primary:   lipgloss.Color("#83A598"),
	Secondary: lipgloss.Color("#D3869B"),
	Info:      lipgloss.Color("#458588"),
	Success:   lipgloss.Color("#B8BB26"),
	Warning:   lipgloss.Color("#FABD2F"),
	Error:     lipgloss.Color("#FB4934"),

	PriorityLow:    lipgloss.Color("#B8BB26"),
	PriorityMedium: lipgloss.Color("#FABD2F"),
	PriorityHigh:   lipgloss.Color("#FB4934"),

	StateIdle:      lipgloss.Color("#928374"),
	StateRunning:   lipgloss.Color("#83A598"),
	StatePaused:    lipgloss.Color("#FABD2F"),
	StateCompleted: lipgloss.Color("#B8BB26"),

	OrgWork:     lipgloss.Color("#458588"),
	OrgPersonal: lipgloss.Color("#D3869B"),
}
