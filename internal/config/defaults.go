// Package config provides configuration defaults and loading for geoclient.
package config

import (
	"os"
	"path/filepath"

	"github.com/gezibash/geoclient/internal/command"
)

// EnvPrefix prefixes every environment variable read by the loader.
const EnvPrefix = "GEOCLIENT"

// Common contains default values for every config key.
var Common = struct {
	Host         string
	Output       string
	LogLevel     string
	LogFormat    string
	OTLPProtocol string
	ServiceName  string
}{
	Host:         command.DefaultHost,
	Output:       "text",
	LogLevel:     "warn",
	LogFormat:    "text",
	OTLPProtocol: "http",
	ServiceName:  "geoclient",
}

// DefaultConfigDir returns the per-user config directory (~/.geoclient).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".geoclient"
	}
	return filepath.Join(home, ".geoclient")
}

// SearchPaths lists the directories searched for config.yaml after ".".
func SearchPaths() []string {
	return []string{DefaultConfigDir(), "/etc/geoclient"}
}
