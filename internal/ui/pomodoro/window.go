package pomodoro

import (
	"fmt"
	"image/color"
	"time"

	"pomopet/internal/core/controller"
	"pomopet/internal/core/timer"
	"pomopet/internal/sprites"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

var (
	workColor  = color.NRGBA{R: 0x8e, G: 0x2a, B: 0x2a, A: 0xff}
	breakColor = color.NRGBA{R: 0x2a, G: 0x6e, B: 0x3f, A: 0xff}
	flashColor = color.NRGBA{R: 0xff, G: 0xf4, B: 0xc2, A: 0xff}
	textColor  = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

const (
	windowWidth  = float32(250)
	windowHeight = float32(300)
	flashLength  = 250 * time.Millisecond
)

// Window is the main timer window with the walking pet underneath.
type Window struct {
	window     fyne.Window
	controller *controller.Controller
	sprites    *sprites.Set

	background  *canvas.Rectangle
	phaseLabel  *canvas.Text
	timerLabel  *canvas.Text
	countLabel  *canvas.Text
	progress    *widget.ProgressBar
	startButton *widget.Button
	resetButton *widget.Button
	skipButton  *widget.Button
	sprite      *canvas.Image
	petArea     *fyne.Container
	petLayout   *petLayout

	phase timer.Phase
	flash *fyne.Animation
}

// New creates the timer window. Call Render after every state change.
func New(app fyne.App, ctrl *controller.Controller, set *sprites.Set) *Window {
	window := app.NewWindow("PomoPet")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	background := canvas.NewRectangle(workColor)

	phaseLabel := canvas.NewText("WORK", textColor)
	phaseLabel.Alignment = fyne.TextAlignCenter
	phaseLabel.TextStyle = fyne.TextStyle{Bold: true}
	phaseLabel.TextSize = 16

	timerLabel := canvas.NewText("--:--", textColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 42

	countLabel := canvas.NewText("", textColor)
	countLabel.Alignment = fyne.TextAlignCenter
	countLabel.TextSize = 12

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	sprite := canvas.NewImageFromResource(nil)
	sprite.FillMode = canvas.ImageFillContain
	sprite.ScaleMode = canvas.ImageScalePixels

	pomodoro := &Window{
		window:     window,
		controller: ctrl,
		background: background,
		phaseLabel: phaseLabel,
		timerLabel: timerLabel,
		countLabel: countLabel,
		progress:   progress,
		sprite:     sprite,
	}

	pomodoro.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		pomodoro.dispatch(controller.CommandToggle)
	})
	pomodoro.resetButton = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() {
		pomodoro.dispatch(controller.CommandReset)
	})
	pomodoro.skipButton = widget.NewButtonWithIcon("", theme.MediaSkipNextIcon(), func() {
		pomodoro.dispatch(controller.CommandSkip)
	})

	pomodoro.petLayout = &petLayout{onWidth: func(width float32) {
		ctrl.Resize(int(width))
	}}
	pomodoro.petArea = container.New(pomodoro.petLayout, sprite)

	buttons := container.NewGridWithColumns(3, pomodoro.startButton, pomodoro.resetButton, pomodoro.skipButton)
	header := container.NewVBox(phaseLabel, timerLabel, progress, countLabel, buttons)
	content := container.NewBorder(header, nil, nil, nil, pomodoro.petArea)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.Resize(fyne.NewSize(windowWidth, windowHeight))

	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		pomodoro.HandleKey(event.Name)
	})

	pomodoro.SetSprites(set)
	return pomodoro
}

// Window returns the underlying fyne window.
func (pomodoro *Window) Window() fyne.Window {
	return pomodoro.window
}

// Show displays the window.
func (pomodoro *Window) Show() {
	pomodoro.window.Show()
}

// SetSprites replaces the pet sprite set.
func (pomodoro *Window) SetSprites(set *sprites.Set) {
	pomodoro.sprites = set
	if set != nil {
		width, height := set.Size()
		pomodoro.sprite.SetMinSize(fyne.NewSize(float32(width), float32(height)))
	}
	pomodoro.sprite.Resource = nil
	pomodoro.petLayout.width = 0
	pomodoro.Render()
	pomodoro.petArea.Refresh()
}

// ChooseSpritePack opens a file dialog for a sprite pack archive.
func (pomodoro *Window) ChooseSpritePack(onPick func(path string)) {
	open := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			pomodoro.ShowError(err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		_ = reader.Close()
		onPick(path)
	}, pomodoro.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".zip"}))
	open.Show()
}

// HandleKey maps a key press to a controller command.
func (pomodoro *Window) HandleKey(name fyne.KeyName) {
	command, ok := controller.CommandForKey(string(name))
	if !ok {
		return
	}
	pomodoro.dispatch(command)
}

func (pomodoro *Window) dispatch(command controller.Command) {
	pomodoro.controller.Dispatch(command)
	pomodoro.Render()
}

// Render redraws the window from the controller state.
func (pomodoro *Window) Render() {
	snapshot := pomodoro.controller.Snapshot()
	state := snapshot.Timer

	pomodoro.setText(pomodoro.timerLabel, timer.FormatRemaining(state.Remaining))
	pomodoro.setText(pomodoro.phaseLabel, phaseTitle(state))
	pomodoro.setText(pomodoro.countLabel, fmt.Sprintf("%s · %d sessions", snapshot.PetName, state.Completed))
	if pomodoro.progress.Value != snapshot.Progress {
		pomodoro.progress.SetValue(snapshot.Progress)
	}

	if state.Running {
		pomodoro.setButton("Pause", theme.MediaPauseIcon())
	} else {
		pomodoro.setButton("Start", theme.MediaPlayIcon())
	}

	if state.Phase != pomodoro.phase {
		pomodoro.phase = state.Phase
		pomodoro.stopFlash()
		pomodoro.background.FillColor = phaseColor(state.Phase)
		pomodoro.background.Refresh()
	}

	if pomodoro.sprites != nil {
		resource := pomodoro.sprites.Frame(snapshot.Pose.Frame, snapshot.Pose.Mirrored)
		if pomodoro.sprite.Resource != resource {
			pomodoro.sprite.Resource = resource
			pomodoro.sprite.Refresh()
		}
	}
	if x := float32(snapshot.X); pomodoro.petLayout.x != x {
		pomodoro.petLayout.x = x
		pomodoro.petArea.Refresh()
	}
}

// Flash blinks the background to draw attention to a phase change.
func (pomodoro *Window) Flash() {
	pomodoro.stopFlash()
	pomodoro.phase = pomodoro.controller.Snapshot().Timer.Phase
	base := phaseColor(pomodoro.phase)
	pomodoro.flash = canvas.NewColorRGBAAnimation(base, flashColor, flashLength, func(value color.Color) {
		pomodoro.background.FillColor = value
		pomodoro.background.Refresh()
	})
	pomodoro.flash.AutoReverse = true
	pomodoro.flash.RepeatCount = 2
	pomodoro.flash.Start()
}

// ShowText opens a dialog with preformatted text.
func (pomodoro *Window) ShowText(title, text string) {
	label := widget.NewLabel(text)
	label.TextStyle = fyne.TextStyle{Monospace: true}
	dialog.ShowCustom(title, "Close", label, pomodoro.window)
}

// ShowError reports an error in a dialog.
func (pomodoro *Window) ShowError(err error) {
	dialog.ShowError(err, pomodoro.window)
}

func (pomodoro *Window) stopFlash() {
	if pomodoro.flash != nil {
		pomodoro.flash.Stop()
		pomodoro.flash = nil
	}
}

func (pomodoro *Window) setText(text *canvas.Text, value string) {
	if text.Text == value {
		return
	}
	text.Text = value
	text.Refresh()
}

func (pomodoro *Window) setButton(label string, icon fyne.Resource) {
	if pomodoro.startButton.Text == label {
		return
	}
	pomodoro.startButton.SetText(label)
	pomodoro.startButton.SetIcon(icon)
}

func phaseTitle(state timer.State) string {
	title := "WORK"
	if state.Phase == timer.PhaseBreak {
		title = "BREAK"
	}
	if !state.Running {
		title += " (paused)"
	}
	return title
}

func phaseColor(phase timer.Phase) color.Color {
	if phase == timer.PhaseBreak {
		return breakColor
	}
	return workColor
}

// petLayout places the sprite at x on the bottom of the pet area.
type petLayout struct {
	x       float32
	width   float32
	onWidth func(float32)
}

const petGround = float32(8)

func (layout *petLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if size.Width != layout.width {
		layout.width = size.Width
		if layout.onWidth != nil {
			layout.onWidth(size.Width)
		}
	}
	if len(objects) == 0 {
		return
	}
	sprite := objects[0]
	spriteSize := sprite.MinSize()
	y := size.Height - spriteSize.Height - petGround
	if y < 0 {
		y = 0
	}
	sprite.Move(fyne.NewPos(layout.x, y))
	sprite.Resize(spriteSize)
}

func (layout *petLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) == 0 {
		return fyne.NewSize(0, 0)
	}
	spriteSize := objects[0].MinSize()
	return fyne.NewSize(spriteSize.Width, spriteSize.Height+petGround)
}
