package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDesktop struct {
	menu *fyne.Menu
	icon fyne.Resource
}

func (app *fakeDesktop) SetSystemTrayMenu(menu *fyne.Menu) { app.menu = menu }
func (app *fakeDesktop) SetSystemTrayIcon(icon fyne.Resource) { app.icon = icon }
func (app *fakeDesktop) SetSystemTrayWindow(fyne.Window)      {}

var icons = Icons{
	Work:   fyne.NewStaticResource("work.png", []byte("w")),
	Break:  fyne.NewStaticResource("break.png", []byte("b")),
	Paused: fyne.NewStaticResource("paused.png", []byte("p")),
}

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.Failf(t, "menu item not found", "%q", label)
	return nil
}

func TestMenuCallbacks(t *testing.T) {
	app := &fakeDesktop{}
	var calls []string
	New(app, icons, Callbacks{
		OnToggle: func() { calls = append(calls, "toggle") },
		OnSkip:   func() { calls = append(calls, "skip") },
		OnQuit:   func() { calls = append(calls, "quit") },
	})

	findItem(t, app.menu, "Start").Action()
	findItem(t, app.menu, "Skip phase").Action()
	findItem(t, app.menu, "Reset").Action()
	findItem(t, app.menu, "Quit").Action()

	assert.Equal(t, []string{"toggle", "skip", "quit"}, calls)
	assert.Same(t, icons.Paused, app.icon)
}

func TestUpdateSwitchesIconAndLabels(t *testing.T) {
	app := &fakeDesktop{}
	manager := New(app, icons, Callbacks{})

	manager.Update("24:59", true, false)
	assert.Same(t, icons.Work, app.icon)
	assert.Equal(t, "Status: work 24:59", manager.Status())
	findItem(t, app.menu, "Pause")

	manager.Update("05:00", false, true)
	assert.Same(t, icons.Paused, app.icon)
	assert.Equal(t, "Status: break 05:00 (paused)", manager.Status())

	manager.Update("04:59", true, true)
	assert.Same(t, icons.Break, manager.Icon())
}
