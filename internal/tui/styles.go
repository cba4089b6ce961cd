package tui

import (
	"fmt"
	"math"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Pulse animation for the MAGLO wordmark and loading spinners.
type pulseTickMsg time.Time

func pulseTickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return pulseTickMsg(t)
	})
}

// renderLogo renders "M A G L O" with a wave of brightness sweeping across
// the letters. Deep moss (#1c3a2a) -> lime (#c8ee44), the brand gradient.
func renderLogo(frame int) string {
	const text = "MAGLO"
	n := len(text)

	t := float64(frame)
	var out string
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n-1)
		phase := t*0.12 - x*2.6
		b := math.Sin(phase)*0.5 + 0.5
		b = b*0.7 + 0.25

		r := clampByte(28 + b*(200-28))
		g := clampByte(58 + b*(238-58))
		bl := clampByte(42 + b*(68-42))
		color := fmt.Sprintf("#%02X%02X%02X", r, g, bl)

		out += lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(string(text[i]))
		if i < n-1 {
			out += " "
		}
	}
	return out
}

func clampByte(v float64) int {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return int(v)
}

// spinnerFrames drive the per-section loading indicator.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

func spinner(frame int) string {
	return accentStyle.Render(spinnerFrames[frame%len(spinnerFrames)])
}

var (
	// Base styles — maglo dark palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#78778b"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f8f8f8")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c4c4cf"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#545368"))

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#78778b"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#545368"))

	// Brand accents
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c8ee44"))

	tealStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#29a073"))

	// Money movement
	incomeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	expenseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	trendUpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	trendDownStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	// Status lines
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	refreshStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24"))

	sectionHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#606878")).
				Bold(true)

	inputPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c8ee44")).
				Bold(true)

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#3a3a4a"))

	fieldErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171")).
			Italic(true)

	selectedRowBg = lipgloss.NewStyle().Background(lipgloss.Color("#232334"))

	// Wallet type colors
	walletColors = map[string]lipgloss.Color{
		"checking":   lipgloss.Color("#60a0e0"),
		"savings":    lipgloss.Color("#4ade80"),
		"investment": lipgloss.Color("#c084e0"),
		"credit":     lipgloss.Color("#f0944a"),
	}
)

// WalletStyle returns a bold style colored for the given wallet type.
func WalletStyle(walletType string) lipgloss.Style {
	if c, ok := walletColors[walletType]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#78778b")).Bold(true)
}

// trendArrow renders "▲ 12.5%" or "▼ 3.2%" colored by direction.
func trendArrow(trend string, percentage float64) string {
	label := fmt.Sprintf("%.1f%%", percentage)
	if trend == "down" {
		return trendDownStyle.Render("▼ " + label)
	}
	return trendUpStyle.Render("▲ " + label)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
