package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

const (
	colorModeAutoStringConstant          = "auto"
	colorModeAlwaysStringConstant        = "always"
	colorModeNeverStringConstant         = "never"
	unsupportedColorModeTemplateConstant = "unsupported color mode %q (expected auto, always, or never)"
	terminalEnvironmentNameConstant      = "TERM"
	dumbTerminalNameConstant             = "dumb"
)

// ColorMode selects when output styling is applied.
type ColorMode string

// Supported color modes.
const (
	ColorModeAuto   ColorMode = ColorMode(colorModeAutoStringConstant)
	ColorModeAlways ColorMode = ColorMode(colorModeAlwaysStringConstant)
	ColorModeNever  ColorMode = ColorMode(colorModeNeverStringConstant)
)

// ParseColorMode normalizes value; an empty value selects ColorModeAuto.
func ParseColorMode(value string) (ColorMode, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", colorModeAutoStringConstant:
		return ColorModeAuto, nil
	case colorModeAlwaysStringConstant:
		return ColorModeAlways, nil
	case colorModeNeverStringConstant:
		return ColorModeNever, nil
	default:
		return "", fmt.Errorf(unsupportedColorModeTemplateConstant, value)
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so configuration decoding validates the mode.
func (mode *ColorMode) UnmarshalText(text []byte) error {
	parsedMode, parseError := ParseColorMode(string(text))
	if parseError != nil {
		return parseError
	}
	*mode = parsedMode
	return nil
}

// TerminalCapabilities records what the output destination can display.
type TerminalCapabilities struct {
	Interactive bool
	NoColor     bool
	Dumb        bool
}

// ProbeTerminal inspects output and the process environment once.
func ProbeTerminal(output *os.File) TerminalCapabilities {
	capabilities := TerminalCapabilities{
		NoColor: termenv.EnvNoColor(),
		Dumb:    os.Getenv(terminalEnvironmentNameConstant) == dumbTerminalNameConstant,
	}
	if output != nil {
		descriptor := output.Fd()
		capabilities.Interactive = isatty.IsTerminal(descriptor) || isatty.IsCygwinTerminal(descriptor)
	}
	return capabilities
}

// StylingEnabled applies mode to the probed capabilities.
func (capabilities TerminalCapabilities) StylingEnabled(mode ColorMode) bool {
	switch mode {
	case ColorModeAlways:
		return true
	case ColorModeNever:
		return false
	default:
		return capabilities.Interactive && !capabilities.NoColor && !capabilities.Dumb
	}
}

// Styler emphasizes text with bold/reset sequences when enabled and returns it untouched otherwise.
type Styler struct {
	enabled  bool
	emphasis lipgloss.Style
}

// NewStyler constructs a Styler. The renderer is pinned to the ANSI profile because the
// decision to style has already been made by the caller.
func NewStyler(enabled bool) Styler {
	renderer := lipgloss.NewRenderer(io.Discard)
	renderer.SetColorProfile(termenv.ANSI)
	return Styler{
		enabled:  enabled,
		emphasis: renderer.NewStyle().Bold(true),
	}
}

// Emphasize renders text in bold.
func (styler Styler) Emphasize(text string) string {
	if !styler.enabled {
		return text
	}
	return styler.emphasis.Render(text)
}
