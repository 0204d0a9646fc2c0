package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "daybook.db"
	DefaultLogName        = "daybook.log"
	appDirName            = "daybook"

	EnvConfig = "DAYBOOK_CONFIG"
	EnvDB     = "DAYBOOK_DB"
)

type Keymap struct {
	Quit          string `toml:"quit"`
	Add           string `toml:"add"`
	Up            string `toml:"up"`
	Down          string `toml:"down"`
	Toggle        string `toml:"toggle"`
	Delete        string `toml:"delete"`
	Confirm       string `toml:"confirm"`
	Cancel        string `toml:"cancel"`
	MoveUp        string `toml:"move_up"`
	MoveDown      string `toml:"move_down"`
	StartTimer    string `toml:"start_timer"`
	StopTimer     string `toml:"stop_timer"`
	FreeStart     string `toml:"free_start"`
	FreePause     string `toml:"free_pause"`
	FreeReset     string `toml:"free_reset"`
	Pomodoro      string `toml:"pomodoro"`
	Calendar      string `toml:"calendar"`
	PrevMonth     string `toml:"prev_month"`
	NextMonth     string `toml:"next_month"`
	Sort          string `toml:"sort"`
	Filter        string `toml:"filter"`
	ClockSize     string `toml:"clock_size"`
	FocusLock     string `toml:"focus_lock"`
	LockPasswd    string `toml:"lock_passwd"`
	ResolveDone   string `toml:"resolve_done"`
	ResolveUrgent string `toml:"resolve_urgent"`
}

type Timers struct {
	FreeMinutes int  `toml:"free_minutes"`
	FreeSeconds int  `toml:"free_seconds"`
	Pomodoro    bool `toml:"pomodoro"`
	Bell        bool `toml:"bell"`
}

type Config struct {
	DBPath        string `toml:"db_path"`
	LogPath       string `toml:"log_path"`
	LogLevel      string `toml:"log_level"`
	DefaultFilter string `toml:"default_filter"`
	Timers        Timers `toml:"timers"`
	Keys          Keymap `toml:"keys"`
}

// ResolveConfigPath picks the config file: $DAYBOOK_CONFIG, then the user
// config directory, then the working directory.
func ResolveConfigPath() string {
	if p := envOrDefault(EnvConfig, ""); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

// LoadOrCreate reads path, writing the defaults there first if the file
// does not exist. Relative db and log paths resolve against the config
// file's directory.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg.resolve(path), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.DBPath == "" {
		cfg.DBPath = DefaultDBName
	}
	if cfg.LogPath == "" {
		cfg.LogPath = DefaultLogName
	}
	if cfg.Timers.FreeMinutes < 0 {
		cfg.Timers.FreeMinutes = 0
	}
	if cfg.Timers.FreeSeconds < 0 || cfg.Timers.FreeSeconds > 59 {
		cfg.Timers.FreeSeconds = 0
	}
	cfg.Keys = cfg.Keys.withDefaults(Default().Keys)
	return cfg.resolve(path), nil
}

func (c Config) resolve(path string) Config {
	c.DBPath = envOrDefault(EnvDB, c.DBPath)
	dir := filepath.Dir(path)
	if !filepath.IsAbs(c.DBPath) && !strings.HasPrefix(c.DBPath, "file:") {
		c.DBPath = filepath.Join(dir, c.DBPath)
	}
	if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(dir, c.LogPath)
	}
	return c
}

// Level maps the configured level name; unknown names mean info.
func (c Config) Level() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// withDefaults fills keys left blank in an older config file.
func (k Keymap) withDefaults(def Keymap) Keymap {
	fill := func(v *string, d string) {
		if *v == "" {
			*v = d
		}
	}
	fill(&k.Quit, def.Quit)
	fill(&k.Add, def.Add)
	fill(&k.Up, def.Up)
	fill(&k.Down, def.Down)
	fill(&k.Toggle, def.Toggle)
	fill(&k.Delete, def.Delete)
	fill(&k.Confirm, def.Confirm)
	fill(&k.Cancel, def.Cancel)
	fill(&k.MoveUp, def.MoveUp)
	fill(&k.MoveDown, def.MoveDown)
	fill(&k.StartTimer, def.StartTimer)
	fill(&k.StopTimer, def.StopTimer)
	fill(&k.FreeStart, def.FreeStart)
	fill(&k.FreePause, def.FreePause)
	fill(&k.FreeReset, def.FreeReset)
	fill(&k.Pomodoro, def.Pomodoro)
	fill(&k.Calendar, def.Calendar)
	fill(&k.PrevMonth, def.PrevMonth)
	fill(&k.NextMonth, def.NextMonth)
	fill(&k.Sort, def.Sort)
	fill(&k.Filter, def.Filter)
	fill(&k.ClockSize, def.ClockSize)
	fill(&k.FocusLock, def.FocusLock)
	fill(&k.LockPasswd, def.LockPasswd)
	fill(&k.ResolveDone, def.ResolveDone)
	fill(&k.ResolveUrgent, def.ResolveUrgent)
	return k
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Default is the configuration written to a new config file.
func Default() Config {
	return Config{
		DBPath:        DefaultDBName,
		LogPath:       DefaultLogName,
		LogLevel:      "info",
		DefaultFilter: "all",
		Timers: Timers{
			FreeMinutes: 25,
			FreeSeconds: 0,
			Pomodoro:    true,
			Bell:        true,
		},
		Keys: Keymap{
			Quit:          "q",
			Add:           "a",
			Up:            "k",
			Down:          "j",
			Toggle:        " ",
			Delete:        "d",
			Confirm:       "enter",
			Cancel:        "esc",
			MoveUp:        "K",
			MoveDown:      "J",
			StartTimer:    "t",
			StopTimer:     "x",
			FreeStart:     "s",
			FreePause:     "p",
			FreeReset:     "r",
			Pomodoro:      "o",
			Calendar:      "c",
			PrevMonth:     "[",
			NextMonth:     "]",
			Sort:          "S",
			Filter:        "F",
			ClockSize:     "z",
			FocusLock:     "L",
			LockPasswd:    "P",
			ResolveDone:   "D",
			ResolveUrgent: "U",
		},
	}
}
