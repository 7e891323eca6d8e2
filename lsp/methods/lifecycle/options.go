package lifecycle

import (
	"encoding/json"
	"fmt"

	"bennypowers.dev/classwrap/lsp/types"
)

// applyInitializationOptions accepts the same object as the "classwrap"
// workspace settings, for clients that configure servers at startup
func applyInitializationOptions(req *types.RequestContext, raw any) error {
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("invalid initializationOptions: %w", err)
	}
	cfg := types.DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("invalid initializationOptions: %w", err)
	}
	if cfg.Options == nil {
		cfg.Options = map[string]any{}
	}
	req.Server.SetConfig(cfg)
	return nil
}
