package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Core palette
	Green       = lipgloss.Color("#00FF41")
	BrightGreen = lipgloss.Color("#39FF14")
	MedGreen    = lipgloss.Color("#00C832")
	DarkGreen   = lipgloss.Color("#008F11")
	DimGreen    = lipgloss.Color("#003B00")
	Cyan        = lipgloss.Color("#00D4AA")
	Amber       = lipgloss.Color("#FFD700")
	Red         = lipgloss.Color("#FF4136")
	Black       = lipgloss.Color("#0D0208")
	MidGray     = lipgloss.Color("#3a3a4e")
	LightGray   = lipgloss.Color("#aaaaaa")
	White       = lipgloss.Color("#e0e0e0")

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Background(DarkGreen).
			Foreground(Black).
			Bold(true).
			Padding(0, 1)

	StatusFileStyle = lipgloss.NewStyle().
			Background(Green).
			Foreground(Black).
			Bold(true).
			Padding(0, 1)

	DirtyStyle = lipgloss.NewStyle().
			Background(Amber).
			Foreground(Black).
			Bold(true).
			Padding(0, 1)

	// Screen headings
	HeadingStyle = lipgloss.NewStyle().
			Foreground(BrightGreen).
			Bold(true).
			MarginBottom(1)

	// Form labels and inputs
	LabelStyle = lipgloss.NewStyle().
			Foreground(MedGreen).
			Bold(true).
			Width(18)

	FocusedLabelStyle = LabelStyle.
				Foreground(BrightGreen)

	ValueStyle = lipgloss.NewStyle().
			Foreground(White)

	// Menu box
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DarkGreen).
			Padding(0, 1)

	// Condition messages
	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(Cyan)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	// Banner
	BannerStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	// Help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	// Separator
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(MidGray)
)

const Banner = `
  ╔╗ ╔═╗╔═╗╦╔═╔═╗╦ ╦╔═╗╦  ╔═╗
  ╠╩╗║ ║║ ║╠╩╗╚═╗╠═╣║╣ ║  ╠╣
  ╚═╝╚═╝╚═╝╩ ╩╚═╝╩ ╩╚═╝╩═╝╚
`

// GradientBanner renders the banner with a line-by-line green gradient.
func GradientBanner() string {
	shades := []lipgloss.Color{BrightGreen, Green, MedGreen, DarkGreen}
	lines := strings.Split(strings.Trim(Banner, "\n"), "\n")
	for i, line := range lines {
		lines[i] = lipgloss.NewStyle().Foreground(shades[i%len(shades)]).Bold(true).Render(line)
	}
	return strings.Join(lines, "\n") + "\n"
}
