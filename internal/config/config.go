// Copyright (c) 2025 ToeiRei
// Stockmaster - point-of-sale inventory back end
// This source code is licensed under the MIT license found in the LICENSE file.

// Package config provides configuration loading, merging, and persistence
// helpers for Stockmaster. It uses Viper for file/env/flag parsing and
// goccy/go-yaml to write configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Database holds the connection settings read once at start-up.
type Database struct {
	// Type is one of "sqlite", "postgres" or "mysql".
	Type string `mapstructure:"type" yaml:"type"`
	// Dsn is the driver connection string. For SQLite this is a file path.
	Dsn string `mapstructure:"dsn" yaml:"dsn"`
	// Username and Password are merged into Dsn for postgres and mysql.
	Username string `mapstructure:"username" yaml:"username,omitempty"`
	Password string `mapstructure:"password" yaml:"password,omitempty"`
}

// Config is the top-level application configuration.
type Config struct {
	Database Database `mapstructure:"database" yaml:"database"`
	// Offline runs every DAO against synthesized data instead of a store.
	Offline  bool   `mapstructure:"offline" yaml:"offline"`
	Language string `mapstructure:"language" yaml:"language"`
	Debug    bool   `mapstructure:"debug" yaml:"debug"`
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"database.type":     "sqlite",
		"database.dsn":      "./stockmaster.db",
		"database.username": "",
		"database.password": "",
		"offline":           false,
		"language":          "en",
		"debug":             false,
	}
}

// FlagBindings maps config keys to the CLI flag names that override them.
var FlagBindings = map[string]string{
	"database.type":     "db-type",
	"database.dsn":      "db-dsn",
	"database.username": "db-user",
	"database.password": "db-password",
	"offline":           "offline",
	"language":          "lang",
	"debug":             "debug",
}

// GetConfigPath returns the full path for the configuration file.
func GetConfigPath(system bool) (string, error) {
	var configDir string
	var err error

	if system {
		switch runtime.GOOS {
		case "windows":
			configDir = filepath.Join(os.Getenv("ProgramData"), "Stockmaster")
		default: // Linux, macOS, etc.
			configDir = "/etc/stockmaster"
		}
	} else {
		configDir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		configDir = filepath.Join(configDir, "stockmaster")
	}

	return filepath.Join(configDir, "stockmaster.yaml"), nil
}

// LoadConfig builds a T from, in increasing precedence: defaults, the config
// file, STOCKMASTER_* environment variables and flags set on cmd.
// A missing config file is reported as viper.ConfigFileNotFoundError together
// with the fully populated T so callers can decide to write a default file.
func LoadConfig[T any](cmd *cobra.Command, defaults map[string]any, configFilePath *string) (T, error) {
	var c T
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("stockmaster")
	v.SetConfigType("yaml")

	explicit := configFilePath != nil && *configFilePath != ""
	if explicit {
		v.SetConfigFile(*configFilePath)
	}
	if userConfigPath, err := GetConfigPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(userConfigPath))
	}
	if systemConfigPath, err := GetConfigPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(systemConfigPath))
	}
	v.AddConfigPath(".")

	var notFound error
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || explicit {
			return c, err
		}
		notFound = err
	}

	v.SetEnvPrefix("stockmaster")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cmd != nil {
		for key, flagName := range FlagBindings {
			f := cmd.Flags().Lookup(flagName)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return c, err
			}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, notFound
}

// WriteConfigFile writes c as YAML to the user or system config path and
// returns the path written.
func WriteConfigFile[T any](c *T, system bool) (string, error) {
	path, err := GetConfigPath(system)
	if err != nil {
		return "", err
	}
	return path, WriteConfigFileTo(c, path)
}

// WriteConfigFileTo writes c as YAML to path, creating parent directories.
func WriteConfigFileTo[T any](c *T, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	configDir := filepath.Dir(path)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", configDir, err)
	}

	// 0600: the file may hold database credentials.
	return os.WriteFile(path, data, 0600)
}
