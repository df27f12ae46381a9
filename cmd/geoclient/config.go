package main

import (
	"github.com/spf13/viper"

	"github.com/gezibash/geoclient/internal/config"
	"github.com/gezibash/geoclient/internal/observability"
)

// Config represents the geoclient configuration.
type Config struct {
	config.BaseConfig `mapstructure:",squash"`
}

func loadConfig(v *viper.Viper, configFile string) (Config, error) {
	v.SetDefault("observability.service_version", version)

	var cfg Config
	err := config.LoadInto(v, config.EnvPrefix, configFile, &cfg, config.SearchPaths()...)
	return cfg, err
}

func (c Config) obsConfig() observability.ObsConfig {
	o := c.Observability
	return observability.ObsConfig{
		LogLevel:       c.ResolvedLogLevel(),
		LogFormat:      o.LogFormat,
		OTLPEndpoint:   o.OTLPEndpoint,
		OTLPProtocol:   o.OTLPProtocol,
		ServiceName:    o.ServiceName,
		ServiceVersion: o.ServiceVersion,
		MetricsFile:    o.MetricsFile,
	}
}
