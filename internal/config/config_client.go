package config

import (
	"fmt"
	"time"
)

// DefaultAdapterAddress is used by the CLI when no server address is configured.
const DefaultAdapterAddress = "http://localhost:8080"

// ClientApp holds the client-side application settings.
type ClientApp struct {
	// HashKey signs uploads with the HashSHA256 header when non-empty.
	HashKey string
}

// ClientAdapter holds the client's connection settings.
type ClientAdapter struct {
	HTTPAddress    string
	RequestTimeout time.Duration
	Token          string
}

// ClientConfig is the configuration of the command-line client.
type ClientConfig struct {
	App     ClientApp
	Adapter ClientAdapter
}

// GetClientConfig reads the client configuration from the environment
// (ADAPTER_ADDRESS, ADAPTER_REQUEST_TIMEOUT, ADAPTER_TOKEN, APP_HASH_KEY). Command-line
// flags are owned by the CLI and applied on top by the caller.
func GetClientConfig() (*ClientConfig, error) {
	cfg := &StructuredConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("error get client config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			HashKey: cfg.App.HashKey,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
			Token:          cfg.Adapter.Token,
		},
	}
	if clientCfg.Adapter.HTTPAddress == "" {
		clientCfg.Adapter.HTTPAddress = DefaultAdapterAddress
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = DefaultRequestTimeout
	}

	return clientCfg, clientCfg.validate()
}
