package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/srgsearch/pkg/srg"
)

// Palette (ANSI 256).
var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

// Shared text styles.
var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
	styleCommand     = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey         = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

const (
	iconSuccess = "✓"
	iconArrow   = "→"
)

// statusIcons pairs each status line kind with its icon.
var statusIcons = map[string]string{
	"success": lipgloss.NewStyle().Foreground(colorGreen).Render(iconSuccess),
	"error":   lipgloss.NewStyle().Foreground(colorRed).Render("✗"),
	"warning": lipgloss.NewStyle().Foreground(colorYellow).Render("!"),
	"info":    lipgloss.NewStyle().Foreground(colorGray).Render("›"),
}

func status(kind, format string, args ...any) {
	fmt.Println(statusIcons[kind] + " " + fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { status("success", format, args...) }

func printError(format string, args ...any) { status("error", format, args...) }

func printWarning(format string, args ...any) {
	status("warning", "%s", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) { status("info", format, args...) }

// printDetail prints an indented secondary line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output path.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints the search counters on one line, ending with whether
// the result came from the store or from a fresh search.
func printStats(stats srg.Stats, stored bool) {
	parts := []string{
		StyleDim.Render(fmt.Sprintf("%d iterations", stats.Iterations)),
		StyleDim.Render(fmt.Sprintf("%d backtracks", stats.Backtracks)),
		StyleDim.Render(fmt.Sprintf("deepest %d", stats.MaxRows)),
	}
	if stored {
		parts = append(parts, StyleSuccess.Render("stored"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorGray).Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests a follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
