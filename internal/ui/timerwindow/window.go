// Package timerwindow renders the countdown and the timer controls.
package timerwindow

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	fynetheme "fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/display"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/i18n"
	"pomodoro/internal/ui/theme"
)

// Callbacks defines timer control handlers.
type Callbacks struct {
	OnToggle        func()
	OnReset         func()
	OnResetSessions func()
	OnSkipBreak     func()
	OnTestAlarm     func()
	OnSettings      func()
}

const (
	ringThickness = float64(0.12)
	clockTextSize = float32(56)
	minDialSide   = float32(220)
)

// Window is the main timer window. All methods must be called on the Fyne
// thread.
type Window struct {
	window    fyne.Window
	callbacks Callbacks

	background *canvas.Rectangle
	linearText *canvas.Text
	ringText   *canvas.Text
	progress   *widget.ProgressBar
	ring       *canvas.Raster
	linearBox  *fyne.Container
	ringBox    *fyne.Container

	modeLabel      *widget.Label
	sessionLabel   *widget.Label
	startButton    *widget.Button
	resetButton    *widget.Button
	resetSessions  *widget.Button
	skipButton     *widget.Button
	testButton     *widget.Button
	settingsButton *widget.Button

	snapshot timekeeper.Snapshot
	display  model.TimerDisplay
	accent   color.NRGBA
}

// New creates the timer window.
func New(app fyne.App, settings model.Settings, callbacks Callbacks) *Window {
	window := app.NewWindow(display.AppName)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	timerWindow := &Window{
		window:    window,
		callbacks: callbacks,
	}

	timerWindow.background = canvas.NewRectangle(color.Transparent)
	timerWindow.linearText = newClockText()
	timerWindow.ringText = newClockText()

	timerWindow.progress = widget.NewProgressBar()
	timerWindow.progress.TextFormatter = func() string { return "" }
	timerWindow.ring = canvas.NewRasterWithPixels(timerWindow.ringPixel)

	timerWindow.linearBox = container.NewVBox(layout.NewSpacer(), timerWindow.linearText, timerWindow.progress, layout.NewSpacer())
	timerWindow.ringBox = container.New(&dialLayout{}, timerWindow.ring, timerWindow.ringText)

	timerWindow.modeLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	timerWindow.sessionLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	timerWindow.startButton = widget.NewButtonWithIcon(i18n.T("Start"), fynetheme.MediaPlayIcon(), func() {
		call(timerWindow.callbacks.OnToggle)
	})
	timerWindow.startButton.Importance = widget.HighImportance
	timerWindow.resetButton = widget.NewButtonWithIcon(i18n.T("Reset"), fynetheme.MediaReplayIcon(), func() {
		call(timerWindow.callbacks.OnReset)
	})
	timerWindow.skipButton = widget.NewButtonWithIcon(i18n.T("Skip Break"), fynetheme.MediaSkipNextIcon(), func() {
		call(timerWindow.callbacks.OnSkipBreak)
	})
	timerWindow.resetSessions = widget.NewButton(i18n.T("Reset Sessions"), func() {
		call(timerWindow.callbacks.OnResetSessions)
	})
	timerWindow.testButton = widget.NewButtonWithIcon(i18n.T("Test Alarm"), fynetheme.VolumeUpIcon(), func() {
		call(timerWindow.callbacks.OnTestAlarm)
	})
	timerWindow.settingsButton = widget.NewButtonWithIcon(i18n.T("Settings"), fynetheme.SettingsIcon(), func() {
		call(timerWindow.callbacks.OnSettings)
	})

	controls := container.NewVBox(
		container.NewHBox(layout.NewSpacer(), timerWindow.startButton, timerWindow.resetButton, timerWindow.skipButton, layout.NewSpacer()),
		container.NewHBox(layout.NewSpacer(), timerWindow.resetSessions, timerWindow.testButton, timerWindow.settingsButton, layout.NewSpacer()),
		timerWindow.sessionLabel,
	)
	dial := container.NewStack(timerWindow.background, container.NewPadded(container.NewStack(timerWindow.linearBox, timerWindow.ringBox)))
	window.SetContent(container.NewBorder(timerWindow.modeLabel, controls, nil, nil, dial))
	window.Resize(fyne.NewSize(420, 480))

	timerWindow.ApplySettings(settings)
	return timerWindow
}

// Window exposes the underlying Fyne window.
func (timerWindow *Window) Window() fyne.Window {
	return timerWindow.window
}

// Show displays the timer window.
func (timerWindow *Window) Show() {
	timerWindow.window.Show()
	timerWindow.window.RequestFocus()
}

// Update renders snapshot.
func (timerWindow *Window) Update(snapshot timekeeper.Snapshot) {
	timerWindow.snapshot = snapshot

	clockText := display.Clock(snapshot.Remaining)
	timerWindow.linearText.Text = clockText
	timerWindow.linearText.Refresh()
	timerWindow.ringText.Text = clockText
	timerWindow.ringText.Refresh()

	timerWindow.progress.SetValue(display.Progress(snapshot))
	timerWindow.ring.Refresh()

	timerWindow.modeLabel.SetText(i18n.T(display.ModeLabel(snapshot.Mode)))
	timerWindow.sessionLabel.SetText(display.SessionCounter(snapshot))
	timerWindow.window.SetTitle(display.Title(snapshot))

	timerWindow.startButton.SetText(i18n.T(display.StartLabel(snapshot)))
	if snapshot.Running {
		timerWindow.startButton.SetIcon(fynetheme.MediaPauseIcon())
	} else {
		timerWindow.startButton.SetIcon(fynetheme.MediaPlayIcon())
	}
	if display.SkipVisible(snapshot) {
		timerWindow.skipButton.Show()
	} else {
		timerWindow.skipButton.Hide()
	}
}

// ApplySettings switches the progress style and accent colour.
func (timerWindow *Window) ApplySettings(settings model.Settings) {
	timerWindow.display = settings.TimerDisplay
	timerWindow.accent = theme.Accent(settings.ColorTheme)

	if settings.TimerDisplay == model.DisplayCircular {
		timerWindow.linearBox.Hide()
		timerWindow.ringBox.Show()
	} else {
		timerWindow.ringBox.Hide()
		timerWindow.linearBox.Show()
	}
	timerWindow.ring.Refresh()
}

// SetHighlight tints the dial background while an alarm flashes.
func (timerWindow *Window) SetHighlight(highlight bool) {
	fill := color.Color(color.Transparent)
	if highlight {
		tint := timerWindow.accent
		tint.A = 0x50
		fill = tint
	}
	timerWindow.background.FillColor = fill
	timerWindow.background.Refresh()
}

func (timerWindow *Window) ringPixel(x, y, width, height int) color.Color {
	track := color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0x40}
	return RingPixel(x, y, width, height, display.Progress(timerWindow.snapshot), timerWindow.accent, track)
}

// RingPixel colours one pixel of the circular progress ring. The filled
// arc starts at twelve o'clock and runs clockwise over the remaining
// fraction.
func RingPixel(x, y, width, height int, progress float64, fill, track color.Color) color.Color {
	side := math.Min(float64(width), float64(height))
	if side <= 0 {
		return color.Transparent
	}
	outer := side / 2
	inner := outer * (1 - ringThickness)
	dx := float64(x) + 0.5 - float64(width)/2
	dy := float64(y) + 0.5 - float64(height)/2
	distance := math.Hypot(dx, dy)
	if distance < inner || distance > outer {
		return color.Transparent
	}

	angle := math.Atan2(dx, -dy)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	if angle/(2*math.Pi) < progress {
		return fill
	}
	return track
}

func newClockText() *canvas.Text {
	text := canvas.NewText(display.Clock(0), fynetheme.Color(fynetheme.ColorNameForeground))
	text.Alignment = fyne.TextAlignCenter
	text.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	text.TextSize = clockTextSize
	return text
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}

// dialLayout centres a square ring with the clock text over it.
type dialLayout struct{}

func (dial *dialLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 2 {
		return
	}
	ring := objects[0]
	text := objects[1]

	side := size.Width
	if size.Height < side {
		side = size.Height
	}
	ring.Move(fyne.NewPos((size.Width-side)/2, (size.Height-side)/2))
	ring.Resize(fyne.NewSize(side, side))

	textSize := text.MinSize()
	text.Move(fyne.NewPos((size.Width-textSize.Width)/2, (size.Height-textSize.Height)/2))
	text.Resize(textSize)
}

func (dial *dialLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	side := minDialSide
	if len(objects) >= 2 {
		textMin := objects[1].MinSize()
		if textMin.Width*1.3 > side {
			side = textMin.Width * 1.3
		}
	}
	return fyne.NewSize(side, side)
}
