package ui

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/adamsulik/PACKIT4.0/internal/engine"
	"github.com/adamsulik/PACKIT4.0/internal/project"
)

// showSettingsDialog displays the application settings editor.
func (a *App) showSettingsDialog() {
	cfg := a.config

	// Helper to create a float entry bound to a pointer
	floatEntry := func(val *float64) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%.2f", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.ParseFloat(text, 64); err == nil {
				*val = v
			}
		}
		return e
	}

	intEntry := func(val *int) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(fmt.Sprintf("%d", *val))
		e.OnChanged = func(text string) {
			if v, err := strconv.Atoi(text); err == nil {
				*val = v
			}
		}
		return e
	}

	// Strategy selector
	kindNames := make([]string, 0, len(engine.Kinds()))
	for _, k := range engine.Kinds() {
		kindNames = append(kindNames, string(k))
	}
	strategySelect := widget.NewSelect(kindNames, func(selected string) {
		cfg.DefaultStrategy = selected
	})
	strategySelect.SetSelected(cfg.DefaultStrategy)

	// Theme selector
	themeSelect := widget.NewSelect([]string{"system", "light", "dark"}, func(selected string) {
		cfg.Theme = selected
	})
	themeSelect.SetSelected(cfg.Theme)

	stackingCheck := widget.NewCheck("", func(checked bool) {
		cfg.DefaultAllowStacking = checked
	})
	stackingCheck.SetChecked(cfg.DefaultAllowStacking)

	// Auto-save interval
	autoSaveEntry := intEntry(&cfg.AutoSaveInterval)

	formItems := []*widget.FormItem{
		widget.NewFormItem("Theme", themeSelect),
		widget.NewFormItem("Auto-Save Interval (min, 0=off)", autoSaveEntry),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Default Strategy", strategySelect),
		widget.NewFormItem("Default Allow Stacking", stackingCheck),
		widget.NewFormItem("Default Zones (0=auto)", intEntry(&cfg.DefaultZones)),
		widget.NewFormItem("Default Balancing Factor", floatEntry(&cfg.DefaultBalancingFactor)),
		widget.NewFormItem("", widget.NewSeparator()),
		widget.NewFormItem("Trailer Length (mm)", intEntry(&cfg.DefaultTrailer.Length)),
		widget.NewFormItem("Trailer Width (mm)", intEntry(&cfg.DefaultTrailer.Width)),
		widget.NewFormItem("Trailer Height (mm)", intEntry(&cfg.DefaultTrailer.Height)),
		widget.NewFormItem("Trailer Max Load (kg)", intEntry(&cfg.DefaultTrailer.MaxLoad)),
		widget.NewFormItem("Grid Resolution (mm)", intEntry(&cfg.DefaultTrailer.Resolution)),
		widget.NewFormItem("Balance Threshold", floatEntry(&cfg.DefaultTrailer.Balance.Threshold)),
		widget.NewFormItem("Front Axle Target Share", floatEntry(&cfg.DefaultTrailer.Balance.FrontBackTarget)),
	}

	d := dialog.NewForm("Settings", "Save", "Cancel", formItems,
		func(ok bool) {
			if !ok {
				return
			}
			a.config = cfg
			if err := a.saveConfig(); err != nil {
				dialog.ShowError(fmt.Errorf("failed to save settings: %w", err), a.window)
			} else {
				dialog.ShowInformation("Settings Saved", "Application settings have been saved.", a.window)
			}
		},
		a.window,
	)
	d.Resize(fyne.NewSize(500, 600))
	d.Show()
}

// showImportExportDialog displays the import/export data dialog.
func (a *App) showImportExportDialog() {
	exportBtn := widget.NewButton("Export All Data...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := project.ExportAllData(path, a.config); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("All application data exported to:\n%s", path), a.window)
			}
		}, a.window)
		d.SetFileName("packit-backup.json")
		d.Show()
	})

	importBtn := widget.NewButton("Import All Data...", func() {
		dialog.ShowConfirm("Import Data",
			"Importing data will replace your current application settings.\n\nAre you sure you want to continue?",
			func(ok bool) {
				if !ok {
					return
				}
				d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
					if err != nil || reader == nil {
						return
					}
					defer reader.Close()
					path := reader.URI().Path()
					backup, err := project.ImportAllData(path)
					if err != nil {
						dialog.ShowError(err, a.window)
						return
					}
					a.config = backup.Config
					if err := a.saveConfig(); err != nil {
						dialog.ShowError(fmt.Errorf("failed to save imported settings: %w", err), a.window)
						return
					}
					dialog.ShowInformation("Import Complete",
						fmt.Sprintf("Data imported successfully from backup created at %s.", backup.CreatedAt), a.window)
				}, a.window)
				d.Show()
			},
			a.window,
		)
	})

	content := container.NewVBox(
		widget.NewLabel("Export all application data (settings, preferences) to a backup file,\nor import from a previously exported backup."),
		widget.NewSeparator(),
		exportBtn,
		widget.NewSeparator(),
		importBtn,
	)

	d := dialog.NewCustom("Import / Export Data", "Close", content, a.window)
	d.Resize(fyne.NewSize(450, 250))
	d.Show()
}

// saveConfig persists the current app config to disk.
func (a *App) saveConfig() error {
	return project.SaveAppConfig(project.DefaultConfigPath(), a.config)
}
