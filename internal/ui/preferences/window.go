package preferences

import (
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/app"
	"pomodoro/internal/core/model"
	"pomodoro/internal/i18n"
)

// Editor applies settings edits.
type Editor interface {
	Settings() model.Settings
	ChangeSetting(key string, value any) (model.Settings, error)
	Step(key string, delta int) (model.Settings, error)
}

const volumeStep = 0.05

// stepper is a numeric field with decrement and increment buttons.
type stepper struct {
	key   string
	entry *widget.Entry
	minus *widget.Button
	plus  *widget.Button
}

func (field *stepper) enable(enabled bool) {
	if enabled {
		field.entry.Enable()
		field.minus.Enable()
		field.plus.Enable()
		return
	}
	field.entry.Disable()
	field.minus.Disable()
	field.plus.Disable()
}

// Window handles the preferences UI.
type Window struct {
	window fyne.Window
	editor Editor
	logger *slog.Logger

	// updating suppresses change handlers while widgets are refreshed
	// from settings.
	updating bool

	steppers     map[string]*stepper
	longBreak    *widget.Check
	autoBreaks   *widget.Check
	autoFocus    *widget.Check
	darkMode     *widget.Check
	volume       *widget.Slider
	volumeLabel  *widget.Label
	colorTheme   *widget.Select
	timerDisplay *widget.RadioGroup
}

// New creates a preferences window.
func New(fyneApp fyne.App, editor Editor, logger *slog.Logger) *Window {
	if logger == nil {
		logger = slog.Default()
	}
	window := fyneApp.NewWindow(i18n.T("Settings"))

	prefs := &Window{
		window:   window,
		editor:   editor,
		logger:   logger,
		steppers: make(map[string]*stepper),
	}

	focus := prefs.newStepper(model.KeyFocusDuration)
	shortBreak := prefs.newStepper(model.KeyShortBreakDuration)
	longBreak := prefs.newStepper(model.KeyLongBreakDuration)
	sessions := prefs.newStepper(model.KeySessionsUntilLongBreak)

	prefs.longBreak = prefs.newCheck("Enable Long Breaks", model.KeyLongBreakEnabled)
	prefs.autoBreaks = prefs.newCheck("Auto-start Breaks", model.KeyAutoStartBreaks)
	prefs.autoFocus = prefs.newCheck("Auto-start Focus", model.KeyAutoStartFocus)
	prefs.darkMode = prefs.newCheck("Dark Mode", model.KeyDarkMode)

	prefs.volume = widget.NewSlider(0, 1)
	prefs.volume.Step = volumeStep
	prefs.volumeLabel = widget.NewLabel("")
	prefs.volume.OnChanged = func(value float64) {
		prefs.volumeLabel.SetText(formatVolume(value))
	}
	prefs.volume.OnChangeEnded = func(value float64) {
		prefs.change(model.KeyVolume, value)
	}

	themes := make([]string, 0, len(model.ColorThemes))
	for _, colorTheme := range model.ColorThemes {
		themes = append(themes, string(colorTheme))
	}
	prefs.colorTheme = widget.NewSelect(themes, func(selected string) {
		prefs.change(model.KeyColorTheme, model.ColorTheme(selected))
	})

	displays := make([]string, 0, len(model.TimerDisplays))
	for _, timerDisplay := range model.TimerDisplays {
		displays = append(displays, string(timerDisplay))
	}
	prefs.timerDisplay = widget.NewRadioGroup(displays, func(selected string) {
		if selected == "" {
			return
		}
		prefs.change(model.KeyTimerDisplay, model.TimerDisplay(selected))
	})
	prefs.timerDisplay.Horizontal = true
	prefs.timerDisplay.Required = true

	form := widget.NewForm(
		widget.NewFormItem(i18n.T("Focus (min)"), focus.row()),
		widget.NewFormItem(i18n.T("Short Break (min)"), shortBreak.row()),
		widget.NewFormItem(i18n.T("Long Break (min)"), longBreak.row()),
		widget.NewFormItem(i18n.T("Sessions until Long Break"), sessions.row()),
		widget.NewFormItem(i18n.T("Alarm Volume"), container.NewBorder(nil, nil, nil, prefs.volumeLabel, prefs.volume)),
		widget.NewFormItem(i18n.T("Color Theme"), prefs.colorTheme),
		widget.NewFormItem(i18n.T("Timer Display"), prefs.timerDisplay),
	)

	content := container.NewVBox(
		widget.NewLabelWithStyle(i18n.T("Settings"), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		form,
		prefs.longBreak,
		prefs.autoBreaks,
		prefs.autoFocus,
		prefs.darkMode,
	)

	closeButton := widget.NewButton(i18n.T("Close"), window.Hide)
	buttons := container.NewHBox(layout.NewSpacer(), closeButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, content))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(460, 480))

	prefs.UpdateSettings(editor.Settings())
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values. Must be called on the Fyne thread.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.updating = true
	defer func() { prefs.updating = false }()

	values := map[string]int{
		model.KeyFocusDuration:          settings.FocusDuration,
		model.KeyShortBreakDuration:     settings.ShortBreakDuration,
		model.KeyLongBreakDuration:      settings.LongBreakDuration,
		model.KeySessionsUntilLongBreak: settings.SessionsUntilLongBreak,
	}
	for key, field := range prefs.steppers {
		// Leave text being typed alone when it already means this value.
		if app.ClampNumeric(key, field.entry.Text) != values[key] || field.entry.Text == "" {
			field.entry.SetText(strconv.Itoa(values[key]))
		}
	}

	prefs.longBreak.SetChecked(settings.LongBreakEnabled)
	prefs.autoBreaks.SetChecked(settings.AutoStartBreaks)
	prefs.autoFocus.SetChecked(settings.AutoStartFocus)
	prefs.darkMode.SetChecked(settings.DarkMode)

	prefs.volume.SetValue(settings.Volume)
	prefs.volumeLabel.SetText(formatVolume(settings.Volume))
	prefs.colorTheme.SetSelected(string(settings.ColorTheme))
	prefs.timerDisplay.SetSelected(string(settings.TimerDisplay))

	prefs.steppers[model.KeyLongBreakDuration].enable(settings.LongBreakEnabled)
	prefs.steppers[model.KeySessionsUntilLongBreak].enable(settings.LongBreakEnabled)
}

func (prefs *Window) newStepper(key string) *stepper {
	field := &stepper{key: key, entry: widget.NewEntry()}
	field.entry.OnChanged = func(text string) {
		// An empty field is mid-edit; wait for a value.
		if prefs.updating || text == "" {
			return
		}
		prefs.change(key, app.ClampNumeric(key, text))
	}
	field.minus = widget.NewButton("-", func() { prefs.step(key, -1) })
	field.plus = widget.NewButton("+", func() { prefs.step(key, 1) })
	prefs.steppers[key] = field
	return field
}

func (field *stepper) row() fyne.CanvasObject {
	return container.NewBorder(nil, nil, field.minus, field.plus, field.entry)
}

func (prefs *Window) newCheck(label, key string) *widget.Check {
	return widget.NewCheck(i18n.T(label), func(checked bool) {
		prefs.change(key, checked)
	})
}

func (prefs *Window) change(key string, value any) {
	if prefs.updating {
		return
	}
	if _, err := prefs.editor.ChangeSetting(key, value); err != nil {
		prefs.logger.Warn("setting rejected", "key", key, "error", err)
	}
}

func (prefs *Window) step(key string, delta int) {
	if _, err := prefs.editor.Step(key, delta); err != nil {
		prefs.logger.Warn("setting rejected", "key", key, "error", err)
	}
}

func formatVolume(volume float64) string {
	return strconv.Itoa(int(volume*100+0.5)) + "%"
}
