package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gofrs/flock"

	"github.com/kolisa/Daily-task-manager/internal/config"
	"github.com/kolisa/Daily-task-manager/internal/db"
	"github.com/kolisa/Daily-task-manager/internal/notify"
)

// App holds the application state and dependencies
type App struct {
	Config   config.Config
	DB       *db.DB
	Notifier *notify.Notifier
	Logger   *log.Logger
	DataDir  string

	lockFile *flock.Flock
	logFile  *os.File
}

// New creates a new application instance
func New(cfg config.Config) (*App, error) {
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	app := &App{
		Config:   cfg,
		DataDir:  dataDir,
		Notifier: notify.NewNotifier(),
	}
	app.Notifier.SetEnabled(cfg.Notifications)

	if err := app.openLogger(); err != nil {
		return nil, err
	}

	// Single instance only; two processes sweeping the same database
	// would double-fire reminders and spawns
	if err := app.acquireLock(); err != nil {
		app.closeLogger()
		return nil, err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		app.releaseLock()
		app.closeLogger()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	app.DB = database

	app.Logger.Info("application started", "db", cfg.DBPath)
	return app, nil
}

// openLogger sets up the file-backed logger. Logging to stdout would
// corrupt the TUI.
func (a *App) openLogger() error {
	if err := os.MkdirAll(filepath.Dir(a.Config.LogPath), 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(a.Config.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	a.logFile = f

	lvl, err := log.ParseLevel(a.Config.LogLevel)
	if err != nil {
		lvl = log.WarnLevel
	}
	a.Logger = log.NewWithOptions(f, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})
	return nil
}

func (a *App) closeLogger() {
	if a.logFile != nil {
		a.logFile.Close()
	}
}

// acquireLock acquires an exclusive file lock to prevent multiple instances
func (a *App) acquireLock() error {
	lockPath := filepath.Join(a.DataDir, "dailytask.lock")
	a.lockFile = flock.New(lockPath)

	locked, err := a.lockFile.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}

	if !locked {
		return fmt.Errorf("another instance of dailytask is already running")
	}

	return nil
}

// releaseLock releases the file lock
func (a *App) releaseLock() {
	if a.lockFile != nil {
		a.lockFile.Unlock()
	}
}

// Close cleans up application resources
func (a *App) Close() error {
	var errs []error

	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	a.releaseLock()
	a.closeLogger()

	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}
