package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// GetAppIcon returns the application icon
func GetAppIcon() fyne.Resource {
	return theme.NewPrimaryThemedResource(theme.ContentPasteIcon())
}
