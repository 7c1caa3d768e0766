package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	AppName               = "tasklist"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "tasklist.db"
	DefaultLogName        = "tasklist.log"
)

type Keymap struct {
	Quit           string `toml:"quit"`
	Add            string `toml:"add"`
	Up             string `toml:"up"`
	Down           string `toml:"down"`
	Toggle         string `toml:"toggle"`
	Important      string `toml:"important"`
	Delete         string `toml:"delete"`
	Confirm        string `toml:"confirm"`
	Cancel         string `toml:"cancel"`
	Edit           string `toml:"edit"`
	NextList       string `toml:"next_list"`
	PrevList       string `toml:"prev_list"`
	Filter         string `toml:"filter"`
	ClearCompleted string `toml:"clear_completed"`
	NewList        string `toml:"new_list"`
	DeleteList     string `toml:"delete_list"`
}

type Config struct {
	DBPath string `toml:"db_path"`
	// LogPath receives log output while the UI owns the terminal.
	LogPath  string `toml:"log_path"`
	LogLevel string `toml:"log_level"`
	// MetricsPath, when set, gets a Prometheus text dump on exit.
	MetricsPath   string   `toml:"metrics_path"`
	DefaultList   string   `toml:"default_list"`
	DefaultFilter string   `toml:"default_filter"`
	ListColors    []string `toml:"list_colors"`
	Keys          Keymap   `toml:"keys"`
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/tasklist/config.toml, falling
// back to ~/.config/tasklist/config.toml and then the working directory.
func ResolveConfigPath() string {
	return filepath.Join(configDir(), DefaultConfigFileName)
}

func configDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", AppName)
}

// LoadOrCreate reads path, writing the defaults there first if it does not
// exist. Relative data paths are resolved against the config directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(filepath.Dir(path)), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.LogPath == "" {
		cfg.LogPath = DefaultLogName
	}
	if len(cfg.ListColors) == 0 {
		cfg.ListColors = defaultConfig().ListColors
	}
	return cfg.resolve(filepath.Dir(path)), nil
}

func (c Config) resolve(dir string) Config {
	c.DBPath = resolvePath(dir, c.DBPath)
	c.LogPath = resolvePath(dir, c.LogPath)
	c.MetricsPath = resolvePath(dir, c.MetricsPath)
	return c
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || strings.HasPrefix(p, "file:") {
		return p
	}
	return filepath.Join(dir, p)
}

func write(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:        DefaultDBName,
		LogPath:       DefaultLogName,
		LogLevel:      "info",
		DefaultList:   "default",
		DefaultFilter: "all",
		ListColors:    []string{"#6c5ce7", "#48dbfb", "#1dd1a1", "#ff6b6b", "#feca57"},
		Keys: Keymap{
			Quit:           "q",
			Add:            "a",
			Up:             "k",
			Down:           "j",
			Toggle:         " ",
			Important:      "i",
			Delete:         "d",
			Confirm:        "enter",
			Cancel:         "esc",
			Edit:           "e",
			NextList:       "tab",
			PrevList:       "shift+tab",
			Filter:         "f",
			ClearCompleted: "c",
			NewList:        "n",
			DeleteList:     "x",
		},
	}
}
