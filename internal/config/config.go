package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AppName names the config, data and state directories.
const AppName = "waveplay"

type Config struct {
	DefaultFolder string `koanf:"default_folder"` // file picker start directory
	Language      string `koanf:"language"`       // "en" or "de", used for column headers
	Notifications *bool  `koanf:"notifications"`  // desktop "now playing" notifications (default: true)
	MPRIS         *bool  `koanf:"mpris"`          // MPRIS media controls (default: true)
	LogFile       string `koanf:"log_file"`       // default: $XDG_STATE_HOME/waveplay/waveplay.log
	Icons         string `koanf:"icons"`          // "nerd", "unicode" (default), or "none"

	Playback PlaybackConfig `koanf:"playback"`
}

// PlaybackConfig holds transport settings.
type PlaybackConfig struct {
	Volume         *int `koanf:"volume"`          // initial volume percent (0-100, default: 50)
	Wrap           bool `koanf:"wrap"`            // next/previous wrap around the playlist
	SkipUnplayable bool `koanf:"skip_unplayable"` // advance past tracks that fail to load
	SeekStep       int  `koanf:"seek_step"`       // seconds per seek key press (default: 5)
}

// Load reads the default config files.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom reads the default config files, then extra if non-empty.
// Later files override earlier ones; missing files are skipped.
func LoadFrom(extra string) (*Config, error) {
	k := koanf.New(".")

	configPaths := getConfigPaths()
	if extra != "" {
		configPaths = append(configPaths, expandPath(extra))
	}

	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		DefaultFolder: "", // empty means use cwd
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}
	if cfg.LogFile != "" {
		cfg.LogFile = expandPath(cfg.LogFile)
	}
	cfg.Language = strings.ToLower(strings.TrimSpace(cfg.Language))

	return cfg, nil
}

func getConfigPaths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/waveplay/config.toml
		filepath.Join(xdg.ConfigHome, AppName, "config.toml"),
		// 2. ./config.toml (pwd, highest priority)
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetPlaybackConfig returns the playback configuration with defaults applied.
func (c *Config) GetPlaybackConfig() PlaybackConfig {
	cfg := c.Playback

	if cfg.Volume == nil {
		v := 50
		cfg.Volume = &v
	} else {
		v := min(max(*cfg.Volume, 0), 100)
		cfg.Volume = &v
	}
	if cfg.SeekStep <= 0 {
		cfg.SeekStep = 5
	}

	return cfg
}

// NotificationsEnabled reports whether desktop notifications are on.
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// MPRISEnabled reports whether MPRIS media controls are on.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS == nil || *c.MPRIS
}

// LogPath returns the log file path, creating its directory.
func (c *Config) LogPath() (string, error) {
	if c.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(c.LogFile), 0o755); err != nil {
			return "", err
		}
		return c.LogFile, nil
	}
	return xdg.StateFile(filepath.Join(AppName, AppName+".log"))
}
