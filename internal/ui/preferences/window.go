package preferences

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window       fyne.Window
	settings     Settings
	onSave       func(Settings)
	workEntry    *widget.Entry
	breakEntry   *widget.Entry
	scaleEntry   *widget.Entry
	autoContinue *widget.Check
	sound        *widget.Check
	journal      *widget.Check
	pet          *widget.Select
}

// New creates a preferences window. pets lists the selectable sprite sets.
func New(app fyne.App, settings Settings, pets []string, onSave func(Settings)) *Window {
	window := app.NewWindow("PomoPet Settings")

	workEntry := widget.NewEntry()
	breakEntry := widget.NewEntry()
	scaleEntry := widget.NewEntry()

	autoContinue := widget.NewCheck("Start the next phase automatically", nil)
	sound := widget.NewCheck("Play a chime on phase change", nil)
	journal := widget.NewCheck("Log work sessions", nil)
	pet := widget.NewSelect(pets, nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work"), workEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Break"), breakEntry, widget.NewLabel("min")),
		autoContinue,
		sound,
		journal,
		widget.NewLabelWithStyle("Pet", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		pet,
		container.NewHBox(widget.NewLabel("Sprite scale"), scaleEntry, widget.NewLabel("x")),
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(360, 380))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:       window,
		onSave:       onSave,
		workEntry:    workEntry,
		breakEntry:   breakEntry,
		scaleEntry:   scaleEntry,
		autoContinue: autoContinue,
		sound:        sound,
		journal:      journal,
		pet:          pet,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// SetPets replaces the selectable sprite sets.
func (prefs *Window) SetPets(pets []string) {
	prefs.pet.SetOptions(pets)
	prefs.pet.SetSelected(prefs.settings.Pet)
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.workEntry.SetText(fmt.Sprintf("%d", int(settings.Work.Minutes())))
	prefs.breakEntry.SetText(fmt.Sprintf("%d", int(settings.Break.Minutes())))
	prefs.scaleEntry.SetText(fmt.Sprintf("%d", settings.SpriteScale))
	prefs.autoContinue.SetChecked(settings.AutoContinue)
	prefs.sound.SetChecked(settings.Sound)
	prefs.journal.SetChecked(settings.Journal)
	prefs.pet.SetSelected(settings.Pet)
}

func (prefs *Window) handleSave() {
	prefs.settings = prefs.collect()
	if prefs.onSave != nil {
		prefs.onSave(prefs.settings)
	}
	prefs.window.Hide()
}

// collect reads the form. Invalid numbers keep the previous value.
func (prefs *Window) collect() Settings {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.workEntry.Text); ok {
		settings.Work = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(prefs.breakEntry.Text); ok {
		settings.Break = time.Duration(minutes) * time.Minute
	}
	if scale, ok := parsePositiveInt(prefs.scaleEntry.Text); ok && scale <= 8 {
		settings.SpriteScale = scale
	}
	if prefs.pet.Selected != "" {
		settings.Pet = prefs.pet.Selected
	}

	settings.AutoContinue = prefs.autoContinue.Checked
	settings.Sound = prefs.sound.Checked
	settings.Journal = prefs.journal.Checked
	return settings
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
