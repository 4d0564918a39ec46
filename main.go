package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/rebind/internal/app"
	"github.com/llehouerou/rebind/internal/binding"
	"github.com/llehouerou/rebind/internal/config"
	"github.com/llehouerou/rebind/internal/conflict"
	"github.com/llehouerou/rebind/internal/display"
	"github.com/llehouerou/rebind/internal/errmsg"
	"github.com/llehouerou/rebind/internal/listen"
	"github.com/llehouerou/rebind/internal/rebind"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpConfigLoad, err))
	}

	logger, logFile, err := openLog(cfg)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpLogOpen, err))
	}
	defer logFile.Close()

	store, err := loadStore(cfg)
	if err != nil {
		return errors.New(errmsg.FormatWith(errmsg.OpBindingsLoad, cfg.BindingsFile, err))
	}
	registry, err := store.Watch(cfg.WatchedMaps...)
	if err != nil {
		return errors.New(errmsg.Format(errmsg.OpMapsWatch, err))
	}

	rc := cfg.GetRebindConfig()
	formatter := display.New(display.Config{ArrowFamilies: cfg.GetDisplayConfig().ArrowFamilies})
	term := listen.New(logger)
	inbox := app.NewInbox()
	mgr := rebind.NewManager(rebind.Config{
		Store:     store,
		Registry:  registry,
		Resolver:  conflict.New(conflict.Config{StickControls: cfg.GetConflictConfig().StickControls}, logger),
		Formatter: formatter,
		Listener:  term,
		Observer:  inbox,
		Options: rebind.Options{
			Timeout:       rc.Timeout,
			CancelControl: rc.CancelControl,
			Excluded:      rc.ExcludedControls,
		},
		Logger: logger,
	})
	defer mgr.Close()

	logger.Info("starting",
		"bindings", cfg.BindingsFile, "maps", len(store.Maps()), "watched", len(registry.Maps()))

	m := app.New(app.Deps{
		Store:     store,
		Registry:  registry,
		Manager:   mgr,
		Formatter: formatter,
		Listener:  term,
		Inbox:     inbox,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	term.Attach(p.Send)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openLog opens the log file; the terminal belongs to the UI.
func openLog(cfg *config.Config) (*slog.Logger, *os.File, error) {
	path, err := cfg.LogFile()
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: cfg.LogLevel()})
	return slog.New(handler), f, nil
}

// loadStore reads the configured binding asset, or the built-in sample.
func loadStore(cfg *config.Config) (*binding.Store, error) {
	if cfg.BindingsFile == "" {
		return binding.Sample(), nil
	}
	return binding.LoadFile(cfg.BindingsFile)
}
