package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	internal "github.com/ZanzyTHEbar/fsplus/fsplus"

	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	FSPlus FSPlusConfig `mapstructure:"fsplus"`
}

// FSPlusConfig groups the settings consumed by the filesystem components.
type FSPlusConfig struct {
	Copy    CopyConfig    `mapstructure:"copy"`
	Resolve ResolveConfig `mapstructure:"resolve"`
	Walk    WalkConfig    `mapstructure:"walk"`
	Probe   ProbeConfig   `mapstructure:"probe"`
	Log     LogConfig     `mapstructure:"log"`
}

// CopyConfig stores buffered copy settings.
type CopyConfig struct {
	BufferSize int `mapstructure:"bufferSize"`
}

// ResolveConfig stores the load paths searched by ResolveOnLoadPath.
type ResolveConfig struct {
	LoadPaths   []string `mapstructure:"loadPaths"`
	LoadPathEnv string   `mapstructure:"loadPathEnv"`
}

// WalkConfig stores traversal settings.
type WalkConfig struct {
	IgnoreFile string `mapstructure:"ignoreFile"`
}

// ProbeConfig stores the path used to detect filesystem case sensitivity.
// An empty CasePath means the running executable.
type ProbeConfig struct {
	CasePath string `mapstructure:"casePath"`
}

// LogConfig stores logging settings.
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Default returns a Config populated with the built-in defaults, without
// consulting any file or environment variable.
func Default() *Config {
	return &Config{
		FSPlus: FSPlusConfig{
			Copy:    CopyConfig{BufferSize: internal.DefaultCopyBufferSize},
			Resolve: ResolveConfig{LoadPaths: []string{}, LoadPathEnv: internal.DefaultLoadPathEnv},
			Walk:    WalkConfig{IgnoreFile: internal.DefaultIgnoreFile},
			Log:     LogConfig{Level: internal.DefaultLogLevel},
		},
	}
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("..")
		v.AddConfigPath(filepath.Join("etc", internal.DefaultAppName))
		v.AddConfigPath(internal.DefaultConfigPath)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetDefault("fsplus.copy.bufferSize", internal.DefaultCopyBufferSize)
	v.SetDefault("fsplus.resolve.loadPaths", []string{})
	v.SetDefault("fsplus.resolve.loadPathEnv", internal.DefaultLoadPathEnv)
	v.SetDefault("fsplus.walk.ignoreFile", internal.DefaultIgnoreFile)
	v.SetDefault("fsplus.probe.casePath", "")
	v.SetDefault("fsplus.log.level", internal.DefaultLogLevel)

	// FSPLUS_COPY_BUFFERSIZE overrides fsplus.copy.bufferSize
	v.SetEnvPrefix(internal.DefaultAppName)
	v.SetEnvKeyReplacer(strings.NewReplacer("FSPLUS.", "", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if cfg.FSPlus.Copy.BufferSize <= 0 {
		return nil, fmt.Errorf("fsplus.copy.bufferSize must be positive, got %d", cfg.FSPlus.Copy.BufferSize)
	}

	return &cfg, nil
}
