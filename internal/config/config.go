// Package config loads application settings from an optional config.yaml
// and WIFEYMOOC_* environment variables. Every field has a usable default;
// a missing config file is not an error.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Logger    LoggerConfig
	Worksheet WorksheetConfig
	Progress  ProgressConfig
}

type LoggerConfig struct {
	Level string // "debug" or "info"
	Env   string // "development" or "production"
	File  string // log destination; empty logs to stderr
}

type WorksheetConfig struct {
	Title string
}

type ProgressConfig struct {
	// Dir is where quick-saved progress snapshots land.
	Dir string
}

// Load reads config.yaml from the working directory or the user config
// directory, then applies WIFEYMOOC_* environment overrides.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "wifeymooc"))
	}

	v.SetEnvPrefix("WIFEYMOOC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.file", defaultLogFile())
	v.SetDefault("worksheet.title", "WifeyMOOC - Exercise Worksheet")
	v.SetDefault("progress.dir", defaultProgressDir())

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
			File:  v.GetString("logger.file"),
		},
		Worksheet: WorksheetConfig{
			Title: v.GetString("worksheet.title"),
		},
		Progress: ProgressConfig{
			Dir: v.GetString("progress.dir"),
		},
	}
	return cfg, nil
}

func defaultProgressDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".wifeymooc")
	}
	return "."
}

func defaultLogFile() string {
	return filepath.Join(defaultProgressDir(), "wifeymooc.log")
}
