package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config is the senxor-serve configuration file.
type Config struct {
	SerialPort    string  `toml:"serial_port"`
	ListenAddress string  `toml:"listen_address"`
	ListenPort    int     `toml:"listen_port"`
	FrameRate     float64 `toml:"frame_rate"`
	SettingsFile  string  `toml:"settings_file"`
	Profile       string  `toml:"profile"`
	LogLevel      string  `toml:"log_level"`
	ClientBuffer  int     `toml:"client_buffer"`
}

func defaultConfig() *Config {
	return &Config{
		SerialPort:    "", // autodetect
		ListenAddress: "0.0.0.0",
		ListenPort:    9048,
		FrameRate:     8.5,
		LogLevel:      "info",
		ClientBuffer:  4,
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "senxor", "senxor-serve.toml")
}

// loadConfig reads the configuration at path, writing the defaults there
// first if the file does not exist.
func loadConfig(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := defaultConfig()
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		cfgFile, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		defer cfgFile.Close()
		if err := toml.NewEncoder(cfgFile).Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to write default config: %w", err)
		}
		return cfg, nil
	}

	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (c *Config) addr() string {
	return fmt.Sprintf("%s:%d", c.ListenAddress, c.ListenPort)
}
