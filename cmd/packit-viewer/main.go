// PACKIT4.0 - Trailer Loading Planner
//
// A cross-platform desktop application for planning truck and trailer
// loads: pallet manifests, loading strategies, stacking, axle balance,
// and export to PDF, DXF and QR labels.
//
// Build:
//   go build -o packit-viewer ./cmd/packit-viewer
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o packit-viewer.exe ./cmd/packit-viewer
//   GOOS=darwin  GOARCH=amd64 go build -o packit-viewer-darwin ./cmd/packit-viewer
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/adamsulik/PACKIT4.0/internal/model"
	"github.com/adamsulik/PACKIT4.0/internal/project"
	"github.com/adamsulik/PACKIT4.0/internal/ui"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		log.Warn().Err(err).Msg("failed to load app config, falling back to defaults")
		cfg = model.DefaultAppConfig()
	}

	application := app.NewWithID("com.adamsulik.packit")
	applyTheme(application, cfg.Theme)

	window := application.NewWindow("PACKIT4.0 - Trailer Loading Planner")

	appUI := ui.NewApp(window, cfg)
	appUI.SetupMenus()
	window.SetContent(appUI.Build())
	window.Resize(fyne.NewSize(1400, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}

func applyTheme(application fyne.App, name string) {
	switch name {
	case "light":
		application.Settings().SetTheme(ui.NewPackitThemeWithVariant(theme.VariantLight))
	case "dark":
		application.Settings().SetTheme(ui.NewPackitThemeWithVariant(theme.VariantDark))
	default:
		application.Settings().SetTheme(ui.NewPackitTheme())
	}
}
