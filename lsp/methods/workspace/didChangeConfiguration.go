package workspace

import (
	"encoding/json"
	"fmt"

	"bennypowers.dev/classwrap/internal/log"
	"bennypowers.dev/classwrap/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeConfiguration handles the workspace/didChangeConfiguration notification
func DidChangeConfiguration(req *types.RequestContext, params *protocol.DidChangeConfigurationParams) error {
	log.Info("Configuration changed")

	config, err := parseConfiguration(params.Settings)
	if err != nil {
		// Keep formatting with defaults rather than failing the notification
		LogWarning(req.GLSP, "Ignoring %s settings: %v", types.SettingsSection, err)
	}

	if config.LogLevel != "" {
		if level, err := log.ParseLevel(config.LogLevel); err != nil {
			req.AddWarning(err)
		} else {
			log.SetLevel(level)
		}
	}

	req.Server.SetConfig(config)
	log.Debug("New configuration: %+v", config)
	return nil
}

// parseConfiguration reads the server's section of the settings:
// { "classwrap": { ... } }
func parseConfiguration(settings any) (types.ServerConfig, error) {
	config := types.DefaultConfig()

	if settings == nil {
		return config, nil
	}

	settingsMap, ok := settings.(map[string]any)
	if !ok {
		return config, fmt.Errorf("settings is not a map")
	}

	ours, exists := settingsMap[types.SettingsSection]
	if !exists || ours == nil {
		return config, nil
	}

	jsonBytes, err := json.Marshal(ours)
	if err != nil {
		return types.DefaultConfig(), fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := json.Unmarshal(jsonBytes, &config); err != nil {
		return types.DefaultConfig(), fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	if config.Options == nil {
		config.Options = map[string]any{}
	}

	return config, nil
}
