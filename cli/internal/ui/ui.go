package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"
)

var (
	// Colors
	PrimaryColor   = lipgloss.Color("#00D9FF")
	SuccessColor   = lipgloss.Color("#00FF88")
	WarningColor   = lipgloss.Color("#FFB800")
	ErrorColor     = lipgloss.Color("#FF4444")
	SecondaryColor = lipgloss.Color("#6C757D")

	// Styles
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	SecondaryStyle = lipgloss.NewStyle().
			Foreground(SecondaryColor)
)

// PrintHeader prints the banner shown when the REPL starts.
func PrintHeader(title string, subtitle string) {
	width := 80
	if w := pterm.GetTerminalWidth(); w > 0 {
		width = w
	}

	header := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(PrimaryColor).
		Padding(1, 2).
		Render(
			lipgloss.JoinVertical(
				lipgloss.Center,
				TitleStyle.Render(title),
				SecondaryStyle.Render(subtitle),
			),
		)

	fmt.Println(header)
	fmt.Println()
}

// PrintSuccess prints a success message
func PrintSuccess(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Println(SuccessStyle.Render("✓ " + message))
}

// PrintError prints an error message
func PrintError(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, ErrorStyle.Render("✗ "+message))
}

// PrintWarning prints a warning message
func PrintWarning(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Println(WarningStyle.Render("⚠ " + message))
}

// PrintInfo prints an info message
func PrintInfo(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	fmt.Println(InfoStyle.Render("ℹ " + message))
}

// PrintTable prints query results using pterm
func PrintTable(headers []string, rows [][]string) {
	tableData := pterm.TableData{headers}
	tableData = append(tableData, rows...)
	pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
}

// PrintList prints a bulleted list
func PrintList(items []string) {
	for _, item := range items {
		fmt.Printf("  • %s\n", item)
	}
}

// PrintMarkdown renders markdown content with glamour
func PrintMarkdown(content string) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return err
	}

	out, err := r.Render(content)
	if err != nil {
		return err
	}

	fmt.Print(out)
	return nil
}

// PrintSpinner creates a spinner and returns it
func PrintSpinner(message string) (*pterm.SpinnerPrinter, error) {
	spinner := pterm.DefaultSpinner.WithText(message)
	return spinner.Start()
}
