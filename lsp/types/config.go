package types

import (
	"maps"

	"bennypowers.dev/classwrap/internal/config"
)

// SettingsSection is the key of the server's object in workspace settings
const SettingsSection = "classwrap"

// ServerConfig represents the server configuration, sent by the client
// under the "classwrap" settings key:
//
//	{"classwrap": {"hostCommand": "prettier", "options": {"printWidth": 100}}}
type ServerConfig struct {
	// HostCommand, when set, prints through an external formatter instead
	// of the built-in printers
	HostCommand string `json:"hostCommand"`

	// Options are applied over any discovered config file, with the same
	// keys as .prettierrc
	Options map[string]any `json:"options"`

	// LogLevel overrides the server's log level
	LogLevel string `json:"logLevel"`
}

// DefaultConfig returns the default server configuration
func DefaultConfig() ServerConfig {
	return ServerConfig{
		Options: map[string]any{},
	}
}

// OptionsFor resolves the formatting options for the document at path.
// Editor settings sit below config files, which sit below Options.
func (c ServerConfig) OptionsFor(path string, editor map[string]any) (config.Options, error) {
	return config.ResolveWithDefaults(path, editor, maps.Clone(c.Options))
}
