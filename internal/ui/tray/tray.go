package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnSkip        func()
	OnPreferences func()
	OnStats       func()
	OnImport      func()
	OnQuit        func()
}

// Icons are the tray icons for each timer state.
type Icons struct {
	Work   fyne.Resource
	Break  fyne.Resource
	Paused fyne.Resource
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	icons      Icons
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	running    bool
	inBreak    bool
	status     string
	icon       fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", call(&manager.callbacks.OnToggle))

	manager.refreshMenu()
	manager.refreshIcon()
	return manager
}

// Update reflects the timer state in the menu and icon.
func (manager *Manager) Update(status string, running, inBreak bool) {
	if status == manager.status && running == manager.running && inBreak == manager.inBreak {
		return
	}
	changedMode := running != manager.running || inBreak != manager.inBreak
	manager.status = status
	manager.running = running
	manager.inBreak = inBreak

	manager.statusItem.Label = manager.statusLabel()
	if running {
		manager.toggleItem.Label = "Pause"
	} else {
		manager.toggleItem.Label = "Start"
	}
	manager.refreshMenu()
	if changedMode {
		manager.refreshIcon()
	}
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// Icon returns the icon matching the current state.
func (manager *Manager) Icon() fyne.Resource {
	return manager.icon
}

func (manager *Manager) statusLabel() string {
	phase := "work"
	if manager.inBreak {
		phase = "break"
	}
	status := fmt.Sprintf("%s %s", phase, manager.status)
	if !manager.running {
		status = fmt.Sprintf("%s (paused)", status)
	}
	return fmt.Sprintf("Status: %s", status)
}

func (manager *Manager) refreshIcon() {
	switch {
	case !manager.running:
		manager.icon = manager.icons.Paused
	case manager.inBreak:
		manager.icon = manager.icons.Break
	default:
		manager.icon = manager.icons.Work
	}
	if manager.app != nil && manager.icon != nil {
		manager.app.SetSystemTrayIcon(manager.icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu("PomoPet",
		manager.statusItem,
		fyne.NewMenuItem("Show", call(&manager.callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		fyne.NewMenuItem("Reset", call(&manager.callbacks.OnReset)),
		fyne.NewMenuItem("Skip phase", call(&manager.callbacks.OnSkip)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Statistics", call(&manager.callbacks.OnStats)),
		fyne.NewMenuItem("Import pet...", call(&manager.callbacks.OnImport)),
		fyne.NewMenuItem("Preferences", call(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", call(&manager.callbacks.OnQuit)),
	))
}

func call(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
