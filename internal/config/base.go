package config

import "strings"

// BaseConfig holds every setting the client reads. Commands embed it with
// mapstructure:",squash" when they need extra keys.
type BaseConfig struct {
	Host          string              `mapstructure:"host"`
	Output        string              `mapstructure:"output"`
	Verbose       bool                `mapstructure:"verbose"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// ObservabilityConfig holds logging, tracing and metrics settings.
type ObservabilityConfig struct {
	LogLevel       string `mapstructure:"log_level"`
	LogFormat      string `mapstructure:"log_format"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPProtocol   string `mapstructure:"otlp_protocol"`
	ServiceName    string `mapstructure:"service_name"`
	ServiceVersion string `mapstructure:"service_version"`
	MetricsFile    string `mapstructure:"metrics_file"`
}

// ResolvedHost returns the configured host, or the default endpoint.
func (c BaseConfig) ResolvedHost() string {
	if c.Host != "" {
		return c.Host
	}
	return Common.Host
}

// ResolvedLogLevel returns the log level, lowered to info by --verbose so
// the request reporter becomes visible.
func (c BaseConfig) ResolvedLogLevel() string {
	level := strings.ToLower(c.Observability.LogLevel)
	if level == "" {
		level = Common.LogLevel
	}
	if c.Verbose && (level == "warn" || level == "error") {
		return "info"
	}
	return level
}
