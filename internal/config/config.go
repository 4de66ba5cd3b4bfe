package config

import (
	"time"

	"github.com/spf13/viper"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
)

// Config holds the main configuration for the application.
type Config struct {
	Server    Server         `mapstructure:"server"`
	Storage   Storage        `mapstructure:"storage"`
	Scheduler Scheduler      `mapstructure:"scheduler"`
	Retry     retry.Strategy `mapstructure:"retry"`
}

// Server holds HTTP server-related configuration.
type Server struct {
	HTTPPort string `mapstructure:"http_port"` // HTTP port to listen on
}

// Storage holds record store configuration.
type Storage struct {
	Path string `mapstructure:"path"` // path to the JSON store document
}

// Scheduler holds scan loop configuration.
type Scheduler struct {
	Interval time.Duration `mapstructure:"interval"` // pause between scans
}

// mustBindEnv binds environment variable overrides to Viper keys.
//
// It panics if any environment variable cannot be bound.
func mustBindEnv() {
	bindings := map[string]string{
		"server.http_port":   "HTTP_PORT",
		"storage.path":       "STORE_PATH",
		"scheduler.interval": "SCHEDULER_INTERVAL",
	}

	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			zlog.Logger.Panic().Err(err).Msgf("failed to bind env %s", env)
		}
	}
}

// Must loads and validates the configuration from file and environment variables.
//
// It panics if configuration cannot be read or unmarshalled.
func Must() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		zlog.Logger.Panic().Err(err).Msg("failed to read config")
	}

	mustBindEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		zlog.Logger.Panic().Err(err).Msgf("failed to unmarshal config: %v", err)
	}

	return &cfg
}
