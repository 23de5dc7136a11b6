package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sandeepkv93/moodcal/internal/logging"
)

const envPrefix = "MOODCAL"

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

func (c LogConfig) Logging() logging.Config {
	return logging.Config{Level: c.Level, Format: c.Format, Output: c.Output}
}

type RuntimeConfig struct {
	DBPath          string    `mapstructure:"db_path"`
	NoticeSeconds   int       `mapstructure:"notice_seconds"`
	TrendDays       int       `mapstructure:"trend_days"`
	RetentionDays   int       `mapstructure:"retention_days"`
	SchedulerBuffer int       `mapstructure:"scheduler_buffer"`
	Log             LogConfig `mapstructure:"log"`
}

// DataDir is where the database and log file live unless overridden.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".moodcal"
	}
	return filepath.Join(home, ".local", "share", "moodcal")
}

func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "moodcal.yaml"
	}
	return filepath.Join(home, ".config", "moodcal", "config.yaml")
}

func DefaultRuntimeConfig() RuntimeConfig {
	dir := DataDir()
	return RuntimeConfig{
		DBPath:          filepath.Join(dir, "moodcal.db"),
		NoticeSeconds:   3,
		TrendDays:       7,
		RetentionDays:   30,
		SchedulerBuffer: 16,
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: filepath.Join(dir, "moodcal.log"),
		},
	}
}

// Load resolves configuration from defaults, an optional YAML file and
// MOODCAL_* environment variables, in increasing precedence. A .env file in
// the working directory is read first when present.
func Load(path string) (RuntimeConfig, error) {
	_ = godotenv.Load()

	base := DefaultRuntimeConfig()
	v := viper.New()
	v.SetDefault("db_path", base.DBPath)
	v.SetDefault("notice_seconds", base.NoticeSeconds)
	v.SetDefault("trend_days", base.TrendDays)
	v.SetDefault("retention_days", base.RetentionDays)
	v.SetDefault("scheduler_buffer", base.SchedulerBuffer)
	v.SetDefault("log.level", base.Log.Level)
	v.SetDefault("log.format", base.Log.Format)
	v.SetDefault("log.output", base.Log.Output)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		var pathErr *os.PathError
		missing := errors.As(err, &notFound) || errors.As(err, &pathErr)
		if !missing || explicit {
			return RuntimeConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := base
	if err := v.Unmarshal(&cfg); err != nil {
		return RuntimeConfig{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.normalized(base), nil
}

func (c RuntimeConfig) normalized(base RuntimeConfig) RuntimeConfig {
	if c.NoticeSeconds <= 0 {
		c.NoticeSeconds = base.NoticeSeconds
	}
	if c.TrendDays <= 0 {
		c.TrendDays = base.TrendDays
	}
	if c.RetentionDays < 0 {
		c.RetentionDays = 0
	}
	if c.SchedulerBuffer <= 0 {
		c.SchedulerBuffer = base.SchedulerBuffer
	}
	if strings.TrimSpace(c.DBPath) == "" {
		c.DBPath = base.DBPath
	}
	return c
}
