package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SetCommonDefaults configures standard defaults on a Viper instance.
func SetCommonDefaults(v *viper.Viper) {
	v.SetDefault("host", Common.Host)
	v.SetDefault("output", Common.Output)
	v.SetDefault("verbose", false)
	v.SetDefault("observability.log_level", Common.LogLevel)
	v.SetDefault("observability.log_format", Common.LogFormat)
	v.SetDefault("observability.otlp_endpoint", "")
	v.SetDefault("observability.otlp_protocol", Common.OTLPProtocol)
	v.SetDefault("observability.service_name", Common.ServiceName)
	v.SetDefault("observability.metrics_file", "")
}

// BindCommonFlags registers the logging and telemetry flags on cmd's
// persistent flag set and binds them to Viper.
func BindCommonFlags(cmd *cobra.Command, v *viper.Viper) {
	f := cmd.PersistentFlags()

	f.String("config", "", "config file path")
	f.BoolP("verbose", "v", false, "log requests and responses to stderr")
	f.String("log-level", "", "log level (debug, info, warn, error)")
	f.String("log-format", "", "log format (json, text)")
	f.String("otlp-endpoint", "", "OTLP collector endpoint for request traces")
	f.String("metrics-file", "", "write request metrics to this textfile on exit")

	_ = v.BindPFlag("verbose", f.Lookup("verbose"))
	_ = v.BindPFlag("observability.log_level", f.Lookup("log-level"))
	_ = v.BindPFlag("observability.log_format", f.Lookup("log-format"))
	_ = v.BindPFlag("observability.otlp_endpoint", f.Lookup("otlp-endpoint"))
	_ = v.BindPFlag("observability.metrics_file", f.Lookup("metrics-file"))
}

// Load merges flags, environment and config file into v. Environment
// variables are envPrefix + "_" + key with dots and dashes as underscores
// (GEOCLIENT_OBSERVABILITY_LOG_LEVEL). Without configFile, config.yaml is
// looked up in "." and then configPaths; not finding it is not an error.
func Load(v *viper.Viper, envPrefix string, configFile string, configPaths ...string) error {
	bindEnv(v, envPrefix)
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", configFile, err)
		}
		return nil
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range append([]string{"."}, configPaths...) {
		v.AddConfigPath(p)
	}
	err := v.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if err != nil && !errors.As(err, &notFound) {
		return fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
	}
	return nil
}

func bindEnv(v *viper.Viper, prefix string) {
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
}

// LoadInto applies common defaults, loads config from flags/env/file, and
// unmarshals into cfg, which should embed BaseConfig.
func LoadInto(v *viper.Viper, envPrefix, configFile string, cfg any, paths ...string) error {
	SetCommonDefaults(v)
	if err := Load(v, envPrefix, configFile, paths...); err != nil {
		return err
	}
	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}
