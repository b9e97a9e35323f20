// Package config resolves runtime configuration from the environment.
package config

import (
	"os"
	"path/filepath"
)

const (
	DefaultBridgeAddr = "127.0.0.1:7341"
	appDirName        = "quillpad"
)

type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// JSONLogs switches the console writer to raw JSON lines.
	JSONLogs bool
	// BridgeAddr is the loopback address the control server listens on.
	BridgeAddr string
	// DataDir holds the persistent store. Defaults to the user config dir.
	DataDir string
}

func Load() Config {
	cfg := Config{
		LogLevel:   "info",
		BridgeAddr: DefaultBridgeAddr,
	}

	if v := os.Getenv("QUILLPAD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if os.Getenv("QUILLPAD_DEBUG") == "1" {
		cfg.LogLevel = "debug"
	}
	if os.Getenv("QUILLPAD_JSON_LOGS") == "true" {
		cfg.JSONLogs = true
	}
	if v := os.Getenv("QUILLPAD_BRIDGE_ADDR"); v != "" {
		cfg.BridgeAddr = v
	}
	if v := os.Getenv("QUILLPAD_DATA_DIR"); v != "" {
		cfg.DataDir = v
	} else {
		cfg.DataDir = defaultDataDir()
	}

	return cfg
}

// StorePath is the on-disk location of the persistent key-value store.
func (c Config) StorePath() string {
	return filepath.Join(c.DataDir, "store.json")
}

func defaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return appDirName
	}
	return filepath.Join(base, appDirName)
}
