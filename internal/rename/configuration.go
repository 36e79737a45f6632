package rename

import "github.com/temirov/git-rename-branch/internal/ui"

const colorConfigurationKeyConstant = "color"

// CommandConfiguration captures configuration values for the rename command.
type CommandConfiguration struct {
	Color ui.ColorMode `mapstructure:"color"`
}

// DefaultCommandConfiguration provides baseline configuration values for the rename command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{Color: ui.ColorModeAuto}
}

// Sanitize replaces an empty color mode with ColorModeAuto.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	sanitized := configuration
	if len(sanitized.Color) == 0 {
		sanitized.Color = ui.ColorModeAuto
	}
	return sanitized
}

// DefaultConfigurationValues returns Viper defaults keyed beneath prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + "." + colorConfigurationKeyConstant: string(defaults.Color),
	}
}
