// Package cliui provides reusable terminal UI styles for mnemo CLI commands.
package cliui

import "github.com/charmbracelet/lipgloss"

var (
	// KeyStyle renders config keys and list labels.
	KeyStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81"))

	// ValueStyle renders values.
	ValueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	// DimStyle renders de-emphasized hints and paths.
	DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// SuccessMark is the checkmark for successful operations.
	SuccessMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")

	// FailMark is the cross for failed operations.
	FailMark = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
)
