// Package config loads and validates naviguard configuration.
//
// Configuration is read from a YAML file, merged over hardcoded defaults,
// and finally overridden by NAVIGUARD_* environment variables. The loaded
// Config carries the reference constants of the system: the 21600-second
// credential validity window, the 12-second HTTP request timeout, the
// storage key prefix, and the navigation whitelist.
//
// # Usage
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    return err
//	}
//	timeout := cfg.RequestTimeout()
package config
