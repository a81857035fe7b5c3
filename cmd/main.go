package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/spf13/pflag"

	controller "pomodoro/internal/app"
	"pomodoro/internal/audio"
	"pomodoro/internal/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/i18n"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/animation"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/theme"
	"pomodoro/internal/ui/timerwindow"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"
)

const (
	appName = "Pomodoro"
	appID   = "com.pomodoro.app"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	opts, err := parseOptions(args, os.Stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	logger := newLogger(opts, os.Stderr)
	slog.SetDefault(logger)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logger.Info("single instance", "error", err)
		return nil
	}
	defer func() {
		_ = guard.Release()
	}()

	i18n.Detect(logger)

	fyneApp := app.NewWithID(appID)
	activeIcon := resources.MustIcon(resources.IconActive)
	pausedIcon := resources.MustIcon(resources.IconPaused)
	fyneApp.SetIcon(activeIcon)

	backend, err := newBackend(opts, fyneApp)
	if err != nil {
		return err
	}
	store := storage.NewStore(backend, logger)
	settings := store.Load()
	fyneApp.Settings().SetTheme(theme.New(settings))

	player := audio.NewPlayer(audio.Speaker(), settings.Volume, logger)
	engine := timekeeper.New(settings, player, logger)
	runner := timekeeper.NewRunner(engine, clock.Real(), timekeeper.Config{TickInterval: time.Second, Logger: logger})
	events := runner.Subscribe(16)

	ctx, cancel := context.WithCancel(context.Background())
	runDone := make(chan error, 1)
	go func() {
		runDone <- runner.Run(ctx)
	}()
	defer func() {
		cancel()
		if err := <-runDone; err != nil {
			logger.Warn("timer runner stopped", "error", err)
		}
	}()

	settingsController := controller.New(settings, store, runner, player, logger)
	if fileBackend, ok := backend.(*storage.FileBackend); ok {
		go watchSettingsFile(ctx, fileBackend, store, settingsController, logger)
	}
	prefsWindow := preferences.New(fyneApp, settingsController, logger)

	command := func(name string, do func() error) func() {
		return func() {
			if err := do(); err != nil {
				logger.Warn("timer command failed", "command", name, "error", err)
			}
		}
	}

	timerWindow := timerwindow.New(fyneApp, settings, timerwindow.Callbacks{
		OnToggle:        command("toggle", runner.Toggle),
		OnReset:         command("reset", func() error { return runner.ResetCurrentMode(true) }),
		OnResetSessions: command("reset sessions", runner.ResetAllSessions),
		OnSkipBreak:     command("skip break", runner.SkipBreak),
		OnTestAlarm:     command("test alarm", runner.TestAlarm),
		OnSettings:      prefsWindow.Show,
	})
	timerWindow.Window().SetMaster()

	flash := animation.New(func(highlight bool) {
		fyne.Do(func() {
			timerWindow.SetHighlight(highlight)
		})
	})

	settingsController.OnChange(func(updated model.Settings) {
		fyne.Do(func() {
			fyneApp.Settings().SetTheme(theme.New(updated))
			timerWindow.ApplySettings(updated)
			prefsWindow.UpdateSettings(updated)
		})
	})

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShowTimer:   timerWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnToggle:      command("toggle", runner.Toggle),
			OnSkipBreak:   command("skip break", runner.SkipBreak),
			OnReset:       command("reset", func() error { return runner.ResetCurrentMode(true) }),
			OnQuit:        fyneApp.Quit,
		})
		desktopApp.SetSystemTrayIcon(pausedIcon)
		timerWindow.Window().SetCloseIntercept(timerWindow.Window().Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
	}

	snapshot, err := runner.Snapshot()
	if err != nil {
		return fmt.Errorf("read initial timer state: %w", err)
	}
	timerWindow.Update(snapshot)
	if trayManager != nil {
		trayManager.Update(snapshot)
	}

	go func() {
		for event := range events {
			if event.Type == timekeeper.EventAlarm {
				flash.Start(ctx, animation.Pattern(event.Alarm))
			}
			snapshot := event.Snapshot
			running := event.Type == timekeeper.EventRunning
			fyne.Do(func() {
				timerWindow.Update(snapshot)
				if trayManager == nil {
					return
				}
				trayManager.Update(snapshot)
				if running {
					desktopApp.SetSystemTrayIcon(trayIcon(snapshot.Running, activeIcon, pausedIcon))
				}
			})
		}
	}()

	timerWindow.Show()
	fyneApp.Run()
	flash.Stop()
	return nil
}

func newBackend(opts options, fyneApp fyne.App) (storage.Backend, error) {
	if opts.storage == storagePreferences {
		return storage.NewPreferencesBackend(fyneApp.Preferences()), nil
	}

	dir := opts.configDir
	if dir == "" {
		configDir, err := platform.ConfigDir(appName)
		if err != nil {
			return nil, err
		}
		dir = configDir
	}
	return storage.NewFileBackend(dir), nil
}

// watchSettingsFile reloads settings edited outside the app. Saves made by
// the app itself load back unchanged and are ignored.
func watchSettingsFile(ctx context.Context, backend *storage.FileBackend, store *storage.Store, settingsController *controller.Controller, logger *slog.Logger) {
	err := backend.Watch(ctx, storage.SettingsKey, logger, func() {
		loaded := store.Load()
		if loaded == settingsController.Settings() {
			return
		}
		logger.Info("settings file edited, reloading", "path", backend.Path(storage.SettingsKey))
		settingsController.ReplaceSettings(loaded)
	})
	if err != nil {
		logger.Warn("settings watcher stopped", "error", err)
	}
}

func trayIcon(running bool, active, paused fyne.Resource) fyne.Resource {
	if running {
		return active
	}
	return paused
}
