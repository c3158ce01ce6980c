package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/thingful/internal/flagx"
	"github.com/dmitrijs2005/thingful/internal/timex"
)

// fileConfig mirrors the JSON file. Pointers tell absent keys from zero values.
type fileConfig struct {
	ServerEndpointAddr *string         `json:"server_endpoint_addr"`
	RequestTimeout     *timex.Duration `json:"request_timeout"`
}

// parseJson applies the keys present in the file named by -c/-config.
// Without the flag it does nothing.
func parseJson(cfg *Config) error {
	path := flagx.JsonConfigFlags()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read client config: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse client config %s: %w", path, err)
	}

	if fc.ServerEndpointAddr != nil {
		cfg.ServerEndpointAddr = *fc.ServerEndpointAddr
	}
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	return nil
}
