package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/pisica/pkg/colorspace"
)

// =============================================================================
// Palette
// =============================================================================

var (
	colorGinger = lipgloss.Color("208") // accent, titles and keys
	colorMint   = lipgloss.Color("78")
	colorAmber  = lipgloss.Color("214")
	colorRose   = lipgloss.Color("168")
	colorCream  = lipgloss.Color("230")
	colorMuted  = lipgloss.Color("246")
	colorFaint  = lipgloss.Color("240")
)

var (
	StyleTitle     = lipgloss.NewStyle().Bold(true).Foreground(colorGinger)
	StyleHighlight = lipgloss.NewStyle().Foreground(colorGinger)
	StyleDim       = lipgloss.NewStyle().Foreground(colorFaint)
	StyleValue     = lipgloss.NewStyle().Foreground(colorCream)
	StyleSuccess   = lipgloss.NewStyle().Foreground(colorMint)
	StyleWarning   = lipgloss.NewStyle().Foreground(colorAmber)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorGinger)
	styleLabel       = lipgloss.NewStyle().Foreground(colorMuted).Width(12)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Lines
// =============================================================================

type statusKind struct {
	icon      string
	iconStyle lipgloss.Style
	text      *lipgloss.Style // nil leaves the message unstyled
}

var (
	statusSuccess = statusKind{iconSuccess, StyleSuccess, nil}
	statusError   = statusKind{iconError, lipgloss.NewStyle().Foreground(colorRose), nil}
	statusWarning = statusKind{iconWarning, StyleWarning, &StyleWarning}
	statusInfo    = statusKind{iconInfo, lipgloss.NewStyle().Foreground(colorMuted), nil}
)

func printStatus(k statusKind, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if k.text != nil {
		msg = k.text.Render(msg)
	}
	fmt.Println(k.iconStyle.Render(k.icon) + " " + msg)
}

func printSuccess(format string, args ...any) { printStatus(statusSuccess, format, args...) }
func printError(format string, args ...any)   { printStatus(statusError, format, args...) }
func printWarning(format string, args ...any) { printStatus(statusWarning, format, args...) }
func printInfo(format string, args ...any)    { printStatus(statusInfo, format, args...) }

// printDetail prints an indented, dimmed line under the previous status.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// =============================================================================
// Results
// =============================================================================

// printArtifact prints one written file with its size and whether the
// raster came from the cache.
func printArtifact(path string, size int, cached bool) {
	origin := StyleDim.Render("fresh")
	if cached {
		origin = StyleSuccess.Render("cached")
	}
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path) +
		StyleDim.Render(" · "+formatBytes(size)+" · ") + origin)
}

func printKeyValue(key, value string) {
	fmt.Println(styleLabel.Render(key) + " " + StyleValue.Render(value))
}

// swatch renders a two-cell block filled with c, followed by its hex code.
func swatch(c colorspace.Color) string {
	hex := colorspace.HexCompatible(c)
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ") + " " + StyleValue.Render(hex)
}

func formatBytes(n int) string {
	const kb, mb = 1 << 10, 1 << 20
	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/mb)
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/kb)
	}
	return fmt.Sprintf("%d B", n)
}

func joinDim(parts []string) string {
	return strings.Join(parts, StyleDim.Render(" · "))
}
