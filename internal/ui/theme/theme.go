// Package theme provides the Fyne theme driven by the colour and dark
// mode settings.
package theme

import (
	"image/color"

	"fyne.io/fyne/v2"
	fynetheme "fyne.io/fyne/v2/theme"

	"pomodoro/internal/core/model"
)

var accents = map[model.ColorTheme]color.NRGBA{
	model.ThemeRed:    {R: 0xd9, G: 0x53, B: 0x4f, A: 0xff},
	model.ThemeBlue:   {R: 0x34, G: 0x78, B: 0xf6, A: 0xff},
	model.ThemeGreen:  {R: 0x2e, G: 0xa0, B: 0x43, A: 0xff},
	model.ThemePurple: {R: 0x8e, G: 0x44, B: 0xad, A: 0xff},
}

// Accent returns the primary colour of a colour theme. Unknown themes use
// red.
func Accent(colorTheme model.ColorTheme) color.NRGBA {
	if accent, ok := accents[colorTheme]; ok {
		return accent
	}
	return accents[model.ThemeRed]
}

// PomodoroTheme overrides the accent colour and forces the variant.
type PomodoroTheme struct {
	fyne.Theme
	accent  color.NRGBA
	variant fyne.ThemeVariant
}

// New builds the theme for settings.
func New(settings model.Settings) fyne.Theme {
	variant := fynetheme.VariantLight
	if settings.DarkMode {
		variant = fynetheme.VariantDark
	}
	return &PomodoroTheme{
		Theme:   fynetheme.DefaultTheme(),
		accent:  Accent(settings.ColorTheme),
		variant: variant,
	}
}

// Color returns the accent for primary-coloured elements and the default
// palette of the selected variant otherwise.
func (t *PomodoroTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case fynetheme.ColorNamePrimary, fynetheme.ColorNameFocus:
		return t.accent
	case fynetheme.ColorNameSelection:
		selection := t.accent
		selection.A = 0x40
		return selection
	}
	return t.Theme.Color(name, t.variant)
}

// Variant reports the forced variant.
func (t *PomodoroTheme) Variant() fyne.ThemeVariant {
	return t.variant
}
