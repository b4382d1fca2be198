package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "studyplanner.db"
	DefaultLogName        = "studyplanner.log"

	appDirName = "studyplanner"

	EnvConfigPath = "STUDYPLANNER_CONFIG"
	EnvDBPath     = "STUDYPLANNER_DB"
)

type Keymap struct {
	Quit       string `toml:"quit"`
	Up         string `toml:"up"`
	Down       string `toml:"down"`
	Toggle     string `toml:"toggle"`
	Add        string `toml:"add"`
	Confirm    string `toml:"confirm"`
	Cancel     string `toml:"cancel"`
	NextField  string `toml:"next_field"`
	PrevField  string `toml:"prev_field"`
	Progress   string `toml:"progress"`
	Settings   string `toml:"settings"`
	Focus      string `toml:"focus"`
	Dismiss    string `toml:"dismiss"`
	Reset      string `toml:"reset"`
	Login      string `toml:"login_mode"`
	SignUp     string `toml:"signup_mode"`
	Reveal     string `toml:"reveal_password"`
	OptionNext string `toml:"option_next"`
	OptionPrev string `toml:"option_prev"`
}

// Timing holds every deferred-callback delay. Values are milliseconds except
// FocusSeconds.
type Timing struct {
	SplashMS          int `toml:"splash_ms"`
	SignUpConfirmMS   int `toml:"signup_confirm_ms"`
	ReminderDelayMS   int `toml:"reminder_delay_ms"`
	ReminderDismissMS int `toml:"reminder_dismiss_ms"`
	FocusSeconds      int `toml:"focus_seconds"`
}

type Reminders struct {
	HonorOffset bool   `toml:"honor_offset"`
	RolloverAt  string `toml:"rollover_at"`
}

// Preferences are startup defaults only; changes made in the settings view
// are not written back.
type Preferences struct {
	DarkMode      bool   `toml:"dark_mode"`
	FontSize      string `toml:"font_size"`
	Notifications bool   `toml:"notifications"`
	Offline       bool   `toml:"offline"`
}

type Config struct {
	DBPath      string      `toml:"db_path"`
	LogPath     string      `toml:"log_path"`
	LogLevel    string      `toml:"log_level"`
	Keys        Keymap      `toml:"keys"`
	Timing      Timing      `toml:"timing"`
	Reminders   Reminders   `toml:"reminders"`
	Preferences Preferences `toml:"preferences"`
}

func (t Timing) Splash() time.Duration          { return ms(t.SplashMS) }
func (t Timing) SignUpConfirm() time.Duration   { return ms(t.SignUpConfirmMS) }
func (t Timing) ReminderDelay() time.Duration   { return ms(t.ReminderDelayMS) }
func (t Timing) ReminderDismiss() time.Duration { return ms(t.ReminderDismissMS) }

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// ResolveConfigPath picks the config file location: the environment override
// first, then the per-user config dir, then the working directory.
func ResolveConfigPath() string {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, appDirName, DefaultConfigFileName)
}

func LoadOrCreate(path string) (Config, error) {
	cfg := defaultConfig()
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
	cfg.fillTimingDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg.resolve(path), nil
}

func (c *Config) fillTimingDefaults() {
	def := defaultConfig().Timing
	if c.Timing.SplashMS <= 0 {
		c.Timing.SplashMS = def.SplashMS
	}
	if c.Timing.SignUpConfirmMS <= 0 {
		c.Timing.SignUpConfirmMS = def.SignUpConfirmMS
	}
	if c.Timing.ReminderDelayMS <= 0 {
		c.Timing.ReminderDelayMS = def.ReminderDelayMS
	}
	if c.Timing.ReminderDismissMS <= 0 {
		c.Timing.ReminderDismissMS = def.ReminderDismissMS
	}
	if c.Timing.FocusSeconds <= 0 {
		c.Timing.FocusSeconds = def.FocusSeconds
	}
	if strings.TrimSpace(c.Reminders.RolloverAt) == "" {
		c.Reminders.RolloverAt = defaultConfig().Reminders.RolloverAt
	}
}

func (c Config) validate() error {
	if _, _, err := ParseClock(c.Reminders.RolloverAt); err != nil {
		return fmt.Errorf("reminders.rollover_at: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(c.Preferences.FontSize)) {
	case "", "small", "medium", "large":
	default:
		return fmt.Errorf("preferences.font_size: unknown size %q", c.Preferences.FontSize)
	}
	return nil
}

// resolve anchors relative file paths to the directory holding the config
// file and applies the database environment override.
func (c Config) resolve(configPath string) Config {
	base := filepath.Dir(configPath)
	if p := strings.TrimSpace(os.Getenv(EnvDBPath)); p != "" {
		c.DBPath = p
	}
	if !filepath.IsAbs(c.DBPath) && !strings.HasPrefix(c.DBPath, "file:") {
		c.DBPath = filepath.Join(base, c.DBPath)
	}
	if !filepath.IsAbs(c.LogPath) {
		c.LogPath = filepath.Join(base, c.LogPath)
	}
	return c
}

// ParseClock parses an HH:MM wall-clock time.
func ParseClock(v string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(v), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", v)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", v)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", v)
	}
	return hour, minute, nil
}

func write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func defaultConfig() Config {
	return Config{
		DBPath:   DefaultDBName,
		LogPath:  DefaultLogName,
		LogLevel: "info",
		Keys: Keymap{
			Quit:       "q",
			Up:         "k",
			Down:       "j",
			Toggle:     " ",
			Add:        "a",
			Confirm:    "enter",
			Cancel:     "esc",
			NextField:  "tab",
			PrevField:  "shift+tab",
			Progress:   "p",
			Settings:   "s",
			Focus:      "f",
			Dismiss:    "x",
			Reset:      "r",
			Login:      "ctrl+l",
			SignUp:     "ctrl+n",
			Reveal:     "ctrl+r",
			OptionNext: "right",
			OptionPrev: "left",
		},
		Timing: Timing{
			SplashMS:          2500,
			SignUpConfirmMS:   2000,
			ReminderDelayMS:   1500,
			ReminderDismissMS: 6000,
			FocusSeconds:      25 * 60,
		},
		Reminders: Reminders{
			HonorOffset: false,
			RolloverAt:  "00:00",
		},
		Preferences: Preferences{
			DarkMode:      false,
			FontSize:      "medium",
			Notifications: true,
			Offline:       false,
		},
	}
}
