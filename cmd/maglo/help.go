package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func printHelp() {
	title := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#c8ee44")).
		Bold(true).
		Render("M A G L O")

	tagline := lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")).
		Italic(true).
		Render("Your finances, one terminal away.")

	cmdStyle := lipgloss.NewStyle().Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	commands := []struct{ cmd, desc string }{
		{"maglo", "Open the dashboard (interactive TUI)"},
		{"maglo snapshot", "Print a one-shot dashboard report"},
		{"maglo whoami", "Show the signed-in account"},
		{"maglo logout", "Clear your session"},
		{"maglo locale", "Show or set the display locale"},
		{"maglo web", "Open the web dashboard in a browser"},
		{"maglo --version", "Show version"},
		{"maglo help", "You are here"},
	}

	fmt.Printf("\n  %s\n\n  %s\n\n  Commands:\n", title, tagline)
	for _, c := range commands {
		fmt.Printf("    %s  %s\n", cmdStyle.Render(fmt.Sprintf("%-18s", c.cmd)), descStyle.Render(c.desc))
	}
	fmt.Println()
}
