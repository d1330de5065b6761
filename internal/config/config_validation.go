package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Currently a no-op placeholder; server-side validation rules live with the
// components that consume the individual sections.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.Local.Path == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Sync.SettleDelay < 0 || cfg.Sync.RetryDelay < 0 ||
		cfg.Sync.PushDebounce < 0 || cfg.Sync.Interval < 0 {
		return ErrInvalidSyncConfigs
	}

	return nil
}
