package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"pomodoro/internal/core/display"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/i18n"
)

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShowTimer   func()
	OnPreferences func()
	OnToggle      func()
	OnSkipBreak   func()
	OnReset       func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host       MenuHost
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	skipItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem
	showItem   *fyne.MenuItem
	prefsItem  *fyne.MenuItem
	quitItem   *fyne.MenuItem
	snapshot   timekeeper.Snapshot
}

// New creates a tray manager with the provided callbacks.
func New(host MenuHost, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.showItem = fyne.NewMenuItem(display.AppName, func() { call(manager.callbacks.OnShowTimer) })
	manager.toggleItem = fyne.NewMenuItem(i18n.T("Start"), func() { call(manager.callbacks.OnToggle) })
	manager.skipItem = fyne.NewMenuItem(i18n.T("Skip Break"), func() { call(manager.callbacks.OnSkipBreak) })
	manager.resetItem = fyne.NewMenuItem(i18n.T("Reset"), func() { call(manager.callbacks.OnReset) })
	manager.prefsItem = fyne.NewMenuItem(i18n.T("Settings"), func() { call(manager.callbacks.OnPreferences) })
	manager.quitItem = fyne.NewMenuItem(i18n.T("Quit"), func() { call(manager.callbacks.OnQuit) })
	manager.quitItem.IsQuit = true

	manager.Update(timekeeper.Snapshot{Mode: timekeeper.ModeFocus})
	return manager
}

// Update reflects snapshot in the menu. Must be called on the Fyne thread.
func (manager *Manager) Update(snapshot timekeeper.Snapshot) {
	manager.snapshot = snapshot
	manager.statusItem.Label = Status(snapshot)
	manager.toggleItem.Label = i18n.T(display.StartLabel(snapshot))
	manager.skipItem.Disabled = !display.SkipVisible(snapshot)
	manager.refreshMenu()
}

// Menu builds the current tray menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu(display.AppName,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		manager.skipItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		manager.showItem,
		manager.prefsItem,
		manager.quitItem,
	)
}

// Status is the tray status line, e.g. "Focus 24:59 (paused)".
func Status(snapshot timekeeper.Snapshot) string {
	status := fmt.Sprintf("%s %s", i18n.T(display.ModeLabel(snapshot.Mode)), display.Clock(snapshot.Remaining))
	if !snapshot.Running {
		status = fmt.Sprintf("%s (%s)", status, "paused")
	}
	return status
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.Menu())
	}
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
