package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/swatchly/swatch/internal/color"
)

// Dark/Light pairs so output reads on both terminal backgrounds.
var (
	ColorSuccess = lipgloss.AdaptiveColor{Dark: "#22c55e", Light: "#16a34a"}
	ColorError   = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"}
	ColorWarning = lipgloss.AdaptiveColor{Dark: "#f59e0b", Light: "#d97706"}
	ColorMuted   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"}
	ColorAccent  = lipgloss.AdaptiveColor{Dark: "#a78bfa", Light: "#7c3aed"}
	ColorURL     = lipgloss.AdaptiveColor{Dark: "#38bdf8", Light: "#0284c7"}
)

var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleID      = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleURL     = lipgloss.NewStyle().Foreground(ColorURL)
	StyleBold    = lipgloss.NewStyle().Bold(true)
)

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "→"
)

func statusLine(out *os.File, style lipgloss.Style, icon, format string, args ...any) {
	fmt.Fprintf(out, "%s %s\n", style.Render(icon), fmt.Sprintf(format, args...))
}

// PrintSuccess prints a message with a green checkmark.
func PrintSuccess(format string, args ...any) {
	statusLine(os.Stdout, StyleSuccess, IconSuccess, format, args...)
}

// PrintError prints a message with a red cross to stderr.
func PrintError(format string, args ...any) {
	statusLine(os.Stderr, StyleError, IconError, format, args...)
}

// PrintWarning prints a message with an amber icon to stderr.
func PrintWarning(format string, args ...any) {
	statusLine(os.Stderr, StyleWarning, IconWarning, format, args...)
}

// PrintInfo prints a secondary message with an arrow.
func PrintInfo(format string, args ...any) {
	statusLine(os.Stdout, StyleMuted, IconInfo, format, args...)
}

// RenderID renders a palette ID in the accent color.
func RenderID(id string) string { return StyleID.Render(id) }

// RenderURL renders a URL in the link color.
func RenderURL(url string) string { return StyleURL.Render(url) }

// RenderMuted renders secondary text.
func RenderMuted(text string) string { return StyleMuted.Render(text) }

// RenderBold renders emphasized text.
func RenderBold(text string) string { return StyleBold.Render(text) }

// ColorSwatch renders a small inline color block for list rows.
func ColorSwatch(hexColor string) string {
	if hexColor == "" {
		return StyleMuted.Render("░░")
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render("██")
}

// GridCell renders one preview tile. Filled cells get their background color
// with a contrast-picked label; empty cells get a dotted placeholder.
func GridCell(hexColor, label string, width int) string {
	if width < 2 {
		width = 2
	}
	height := width / 3
	if height < 1 {
		height = 1
	}

	cell := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center)

	if hexColor == "" {
		return cell.Foreground(ColorMuted).Render("·")
	}

	return cell.
		Background(lipgloss.Color(hexColor)).
		Foreground(lipgloss.Color(color.ContrastForeground(hexColor))).
		Render(label)
}

// JoinGridRow lays out multi-line cells horizontally with a space gutter.
func JoinGridRow(cells []string) string {
	spaced := make([]string, 0, len(cells)*2)
	for i, cell := range cells {
		if i > 0 {
			spaced = append(spaced, " ")
		}
		spaced = append(spaced, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}

// Box renders content inside a rounded border.
func Box(content string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted).
		Padding(0, 1).
		Render(content)
}

// TitleBox renders a heading in an accented border.
func TitleBox(title string) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 2).
		Bold(true).
		Render(title)
}

// LabelValue formats a detail row with a right-aligned muted label.
func LabelValue(label, value string, labelWidth int) string {
	labelStyle := lipgloss.NewStyle().
		Width(labelWidth).
		Align(lipgloss.Right).
		Foreground(ColorMuted)
	return fmt.Sprintf("%s %s", labelStyle.Render(label+":"), value)
}
