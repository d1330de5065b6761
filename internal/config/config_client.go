package config

import (
	"fmt"
	"time"
)

// Default sync timings applied when the corresponding config fields are
// left unset.
const (
	DefaultSettleDelay  = 500 * time.Millisecond
	DefaultRetryDelay   = 5 * time.Second
	DefaultPushDebounce = 2 * time.Second
	DefaultSyncInterval = 5 * time.Minute
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the backend base URL used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientLocal contains local state file settings for the client.
type ClientLocal struct {
	// Path is the local JSON state file path, or ":memory:" for a
	// non-persistent store.
	Path string
}

// ClientStorage groups client storage backend settings.
type ClientStorage struct {
	// Local holds local state file settings.
	Local ClientLocal
}

// ClientSync contains the timing parameters of the client sync engine.
type ClientSync struct {
	// SettleDelay is the post-write listener reconnect delay.
	SettleDelay time.Duration
	// RetryDelay is the pause between listener reconnection attempts.
	RetryDelay time.Duration
	// PushDebounce is the quiet period before pushing coalesced toggles.
	PushDebounce time.Duration
	// Interval defines how often the periodic background reconcile runs.
	Interval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport addresses and timeouts.
	Adapter ClientAdapter
	// Storage contains client storage settings.
	Storage ClientStorage
	// Sync contains sync engine timings.
	Sync ClientSync
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, fills in default sync timings for unset
// fields, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			Local: ClientLocal{
				Path: cfg.Storage.Local.Path,
			},
		},
		Sync: ClientSync{
			SettleDelay:  cfg.Sync.SettleDelay,
			RetryDelay:   cfg.Sync.RetryDelay,
			PushDebounce: cfg.Sync.PushDebounce,
			Interval:     cfg.Sync.Interval,
		},
	}
	clientCfg.applyDefaults()

	return clientCfg, clientCfg.validate()
}

func (cfg *ClientConfig) applyDefaults() {
	if cfg.Sync.SettleDelay == 0 {
		cfg.Sync.SettleDelay = DefaultSettleDelay
	}
	if cfg.Sync.RetryDelay == 0 {
		cfg.Sync.RetryDelay = DefaultRetryDelay
	}
	if cfg.Sync.PushDebounce == 0 {
		cfg.Sync.PushDebounce = DefaultPushDebounce
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = DefaultSyncInterval
	}
}
