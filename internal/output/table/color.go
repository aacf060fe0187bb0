package table

import (
	"fmt"

	"github.com/fatih/color"
)

// ColorHelper provides utilities for coloring test output.
// Colors are disabled whenever fatih/color decides the output is not a terminal.
type ColorHelper struct {
	enabled bool
}

// NewColorHelper creates a new color helper
func NewColorHelper() *ColorHelper {
	return &ColorHelper{
		enabled: !color.NoColor,
	}
}

func (c *ColorHelper) paint(attrs []color.Attribute, text string) string {
	if !c.enabled {
		return text
	}

	return color.New(attrs...).Sprint(text)
}

// Success returns green colored text
func (c *ColorHelper) Success(text string) string {
	return c.paint([]color.Attribute{color.FgGreen}, text)
}

// Failure returns red colored text
func (c *ColorHelper) Failure(text string) string {
	return c.paint([]color.Attribute{color.FgRed}, text)
}

// Warning returns yellow colored text
func (c *ColorHelper) Warning(text string) string {
	return c.paint([]color.Attribute{color.FgYellow}, text)
}

// Muted returns gray colored text
func (c *ColorHelper) Muted(text string) string {
	return c.paint([]color.Attribute{color.FgHiBlack}, text)
}

// Bold returns bold text
func (c *ColorHelper) Bold(text string) string {
	return c.paint([]color.Attribute{color.Bold}, text)
}

// Header returns bold cyan text for section headers
func (c *ColorHelper) Header(text string) string {
	return c.paint([]color.Attribute{color.FgCyan, color.Bold}, text)
}

// FormatStatus returns appropriately colored status text
func (c *ColorHelper) FormatStatus(passed bool) string {
	if passed {
		return c.Success("✓ PASS")
	}

	return c.Failure("✗ FAIL")
}

// FormatExitCode renders a process exit status; -1 means none was produced.
func (c *ColorHelper) FormatExitCode(code int) string {
	switch code {
	case 0:
		return c.Success("0")
	case -1:
		return c.Muted("-")
	default:
		return c.Failure(fmt.Sprintf("%d", code))
	}
}

// FormatPercentage returns colored percentage based on value
func (c *ColorHelper) FormatPercentage(value float64) string {
	text := fmt.Sprintf("%.1f%%", value)

	switch {
	case value == 100.0:
		return c.Success(text)
	case value >= 90.0:
		return c.Warning(text)
	default:
		return c.Failure(text)
	}
}
