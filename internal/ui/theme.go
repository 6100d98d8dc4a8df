// Package ui provides the PACKIT4.0 viewer UI components.
//
// This file defines a custom compact Fyne theme for a dense planning layout.

package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// PackitTheme wraps the default Fyne theme with compact sizing overrides so
// the manifest table and trailer canvas fit on one screen.
type PackitTheme struct {
	base    fyne.Theme
	variant fyne.ThemeVariant
}

// NewPackitTheme creates a new PackitTheme with the system default variant.
func NewPackitTheme() *PackitTheme {
	return &PackitTheme{
		base:    theme.DefaultTheme(),
		variant: 0, // system default
	}
}

// NewPackitThemeWithVariant creates a PackitTheme with a specific light/dark
// variant.
func NewPackitThemeWithVariant(variant fyne.ThemeVariant) *PackitTheme {
	return &PackitTheme{
		base:    theme.DefaultTheme(),
		variant: variant,
	}
}

// SetVariant updates the theme variant (light/dark/system).
func (t *PackitTheme) SetVariant(variant fyne.ThemeVariant) {
	t.variant = variant
}

// Color delegates to the base theme with the stored variant.
func (t *PackitTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	return t.base.Color(name, t.variant)
}

// Font delegates to the base theme.
func (t *PackitTheme) Font(style fyne.TextStyle) fyne.Resource {
	return t.base.Font(style)
}

// Icon delegates to the base theme.
func (t *PackitTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return t.base.Icon(name)
}

// Size returns compact sizing overrides for a dense layout.
func (t *PackitTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 12
	case theme.SizeNameCaptionText:
		return 9
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameSubHeadingText:
		return 15
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameInlineIcon:
		return 16
	default:
		return t.base.Size(name)
	}
}
