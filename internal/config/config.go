// Package config loads settings from the user's conf file with
// environment-variable overrides. Precedence: environment, then conf
// file, then built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/kolisa/Daily-task-manager/internal/db"
)

// Config holds the runtime settings
type Config struct {
	DBPath            string
	LogPath           string
	LogLevel          string
	Theme             string
	MorningReminder   string // "HH:MM", empty disables
	WeeklyTargetHours float64
	ExclusiveTimer    bool
	Notifications     bool
}

const (
	DefaultLogLevel = "warn"
	DefaultTheme    = "nord"
)

// Load reads the conf file (creating a default one on first run) and
// applies environment overrides
func Load() (Config, error) {
	fromEnv := fromEnviron()

	confFile, err := ensureConfFile()
	if err != nil {
		return Config{}, err
	}
	if err := godotenv.Load(confFile); err != nil {
		return Config{}, fmt.Errorf("failed to load conf file: %w", err)
	}
	fromFile := fromEnviron()

	dataDir := db.DefaultDataDir()
	cfg := Config{
		DBPath:          coalesce(fromEnv.DBPath, fromFile.DBPath, db.DefaultDBPath()),
		LogPath:         coalesce(fromEnv.LogPath, fromFile.LogPath, filepath.Join(dataDir, "dailytask.log")),
		LogLevel:        coalesce(fromEnv.LogLevel, fromFile.LogLevel, DefaultLogLevel),
		Theme:           coalesce(fromEnv.Theme, fromFile.Theme, DefaultTheme),
		MorningReminder: coalesce(fromEnv.MorningReminder, fromFile.MorningReminder, "08:30"),
	}

	// godotenv does not override real environment variables, so by this
	// point os.Getenv already reflects env-over-file precedence
	cfg.WeeklyTargetHours = parseFloat(os.Getenv("DAILYTASK_WEEKLY_TARGET_HOURS"), 0)
	cfg.ExclusiveTimer = parseBool(os.Getenv("DAILYTASK_EXCLUSIVE_TIMER"), false)
	cfg.Notifications = parseBool(os.Getenv("DAILYTASK_NOTIFICATIONS"), true)

	return cfg, nil
}

func fromEnviron() Config {
	return Config{
		DBPath:          os.Getenv("DAILYTASK_DB_PATH"),
		LogPath:         os.Getenv("DAILYTASK_LOG_PATH"),
		LogLevel:        os.Getenv("DAILYTASK_LOG_LEVEL"),
		Theme:           os.Getenv("DAILYTASK_THEME"),
		MorningReminder: os.Getenv("DAILYTASK_MORNING_REMINDER"),
	}
}

// ensureConfFile returns the conf file path, writing a commented default
// on first run
func ensureConfFile() (string, error) {
	cfgDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	cfgDir = filepath.Join(cfgDir, "dailytask")
	confFile := filepath.Join(cfgDir, "dailytask.conf")

	if _, err := os.Stat(confFile); err == nil {
		return confFile, nil
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}
	defaults := "DAILYTASK_DB_PATH=" + db.DefaultDBPath() + "\n" +
		"DAILYTASK_LOG_LEVEL=" + DefaultLogLevel + "\n" +
		"DAILYTASK_THEME=" + DefaultTheme + "\n" +
		"DAILYTASK_MORNING_REMINDER=08:30\n"
	if err := os.WriteFile(confFile, []byte(defaults), 0o644); err != nil {
		return "", fmt.Errorf("failed to write default conf file: %w", err)
	}
	return confFile, nil
}

func coalesce(args ...string) string {
	for _, s := range args {
		if s != "" {
			return s
		}
	}
	return ""
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func parseBool(s string, def bool) bool {
	if s == "" {
		return def
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return def
	}
	return v
}
