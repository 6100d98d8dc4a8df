package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/adamsulik/PACKIT4.0/internal/engine"
	"github.com/adamsulik/PACKIT4.0/internal/export"
	palletimporter "github.com/adamsulik/PACKIT4.0/internal/importer"
	"github.com/adamsulik/PACKIT4.0/internal/model"
	"github.com/adamsulik/PACKIT4.0/internal/project"
	"github.com/adamsulik/PACKIT4.0/internal/ui/widgets"
	"github.com/adamsulik/PACKIT4.0/internal/validate"
)

// Stacking choices offered in the Strategy tab. "Strategy default" leaves
// the decision to the selected strategy.
const (
	stackingDefault   = "Strategy default"
	stackingAllowed   = "Allowed"
	stackingForbidden = "Forbidden"
)

// App holds all application state and UI references.
type App struct {
	window  fyne.Window
	config  model.AppConfig
	spec    model.TrailerSpec
	pallets []*model.Pallet
	plan    *project.Plan
	history *History
	tabs    *container.AppTabs

	// Strategy tab state, bound to its widgets
	kind     engine.Kind
	opts     engine.Options
	stacking string

	// UI references for dynamic updates
	palletsContainer *fyne.Container
	resultContainer  *fyne.Container
}

func NewApp(window fyne.Window, config model.AppConfig) *App {
	a := &App{
		window:   window,
		config:   config,
		spec:     config.DefaultTrailer,
		history:  NewHistory(),
		kind:     engine.Kind(config.DefaultStrategy),
		stacking: stackingDefault,
	}
	if engine.Describe(a.kind) == "" {
		a.kind = engine.KindAxisScan
	}
	a.opts.Zones = config.DefaultZones
	a.opts.BalancingFactor = config.DefaultBalancingFactor
	if config.DefaultAllowStacking {
		a.stacking = stackingAllowed
	}
	return a
}

// SetupMenus creates the native menu bar for the application.
func (a *App) SetupMenus() {
	// File Menu
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("New Manifest", func() {
			a.pushHistory("new manifest")
			a.pallets = nil
			a.plan = nil
			a.refreshPalletsList()
			a.refreshResults()
		}),
		fyne.NewMenuItem("Open Manifest...", func() {
			a.openManifest()
		}),
		fyne.NewMenuItem("Save Manifest...", func() {
			a.saveManifest()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Import Pallets from CSV...", func() {
			a.importCSV()
		}),
		fyne.NewMenuItem("Import Pallets from Excel...", func() {
			a.importExcel()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Plan...", func() {
			a.openPlan()
		}),
		fyne.NewMenuItem("Save Plan...", func() {
			a.savePlan()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Export Plan as PDF...", func() {
			a.exportPDF()
		}),
		fyne.NewMenuItem("Export Floor Plan as DXF...", func() {
			a.exportDXF()
		}),
		fyne.NewMenuItem("Export Pallet Labels...", func() {
			a.exportLabels()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			a.window.Close()
		}),
	)

	// Edit Menu
	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", func() {
			a.undo()
		}),
		fyne.NewMenuItem("Redo", func() {
			a.redo()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Clear All Pallets", func() {
			a.pushHistory("clear pallets")
			a.pallets = nil
			a.refreshPalletsList()
		}),
	)

	// Tools Menu
	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Run Strategy", func() {
			a.runStrategy()
			a.tabs.SelectIndex(3) // Switch to Results tab
		}),
		fyne.NewMenuItem("Compare Strategies...", func() {
			a.compareStrategies()
		}),
		fyne.NewMenuItem("Estimate Fleet...", func() {
			a.showFleetEstimateDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Load Sample Set...", func() {
			a.showSampleSetDialog()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings...", func() {
			a.showSettingsDialog()
		}),
		fyne.NewMenuItem("Import / Export Data...", func() {
			a.showImportExportDialog()
		}),
	)

	// Help Menu
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("Pallet Formats", func() {
			a.showCatalogDialog()
		}),
		fyne.NewMenuItem("About", func() {
			a.showAboutDialog()
		}),
	)

	// Set the main menu
	mainMenu := fyne.NewMainMenu(
		fileMenu,
		editMenu,
		toolsMenu,
		helpMenu,
	)
	a.window.SetMainMenu(mainMenu)
}

func (a *App) showAboutDialog() {
	dialog.ShowInformation(
		"About PACKIT4.0",
		"PACKIT4.0 - Trailer Loading Planner\n\n"+
			"A cross-platform desktop application for planning\n"+
			"truck and trailer loads with stacking, axle balance\n"+
			"and side-by-side strategy comparison.\n\n"+
			"Version 1.0.0",
		a.window,
	)
}

func (a *App) showCatalogDialog() {
	grid := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Format", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Footprint (mm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Tare (kg)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Max Stack (mm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Loading Meters", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, pt := range model.PalletTypes {
		grid.Add(widget.NewLabel(pt.Name))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d x %d", pt.Length, pt.Width)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d", pt.TareWeight)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d", pt.MaxStackHeight)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.2f", pt.LoadingMeters())))
	}

	d := dialog.NewCustom("Built-in Pallet Formats", "Close", grid, a.window)
	d.Resize(fyne.NewSize(600, 300))
	d.Show()
}

// Build constructs the full UI and returns the root container.
func (a *App) Build() fyne.CanvasObject {
	// Main tabs
	palletsTab := container.NewTabItem("Pallets", a.buildPalletsPanel())
	trailerTab := container.NewTabItem("Trailer", a.buildTrailerPanel())
	strategyTab := container.NewTabItem("Strategy", a.buildStrategyPanel())
	resultsTab := container.NewTabItem("Results", a.buildResultsPanel())

	a.tabs = container.NewAppTabs(palletsTab, trailerTab, strategyTab, resultsTab)
	a.tabs.SetTabLocation(container.TabLocationTop)

	return a.tabs
}

// ─── Pallets Panel ─────────────────────────────────────────

func (a *App) buildPalletsPanel() fyne.CanvasObject {
	a.palletsContainer = container.NewVBox()
	a.refreshPalletsList()

	addBtn := widget.NewButtonWithIcon("Add Pallet", theme.ContentAddIcon(), func() {
		a.showAddPalletDialog()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Cargo Manifest", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			addBtn,
		),
		nil, nil, nil,
		container.NewVScroll(a.palletsContainer),
	)
}

func (a *App) refreshPalletsList() {
	a.palletsContainer.RemoveAll()

	if len(a.pallets) == 0 {
		a.palletsContainer.Add(widget.NewLabel("No pallets in the manifest yet. Click 'Add Pallet' or import a file to begin."))
		return
	}

	// Header
	header := container.NewGridWithColumns(8,
		widget.NewLabelWithStyle("ID", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Type", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Size (mm)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Cargo (kg)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Total (kg)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Flags", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
		widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{}),
	)
	a.palletsContainer.Add(header)
	a.palletsContainer.Add(widget.NewSeparator())

	totalWeight := 0
	loadingMeters := 0.0
	for i := range a.pallets {
		idx := i // capture
		p := a.pallets[idx]
		totalWeight += p.TotalWeight()
		loadingMeters += p.LoadingMeters()
		row := container.NewGridWithColumns(8,
			widget.NewLabel(p.ID),
			widget.NewLabel(p.Type),
			widget.NewLabel(fmt.Sprintf("%dx%dx%d", p.Length, p.Width, p.Height)),
			widget.NewLabel(fmt.Sprintf("%d", p.CargoWeight)),
			widget.NewLabel(fmt.Sprintf("%d", p.TotalWeight())),
			widget.NewLabel(palletFlags(p)),
			widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
				a.showEditPalletDialog(idx)
			}),
			widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
				a.pushHistory("delete pallet")
				a.pallets = append(a.pallets[:idx], a.pallets[idx+1:]...)
				a.refreshPalletsList()
			}),
		)
		a.palletsContainer.Add(row)
	}

	a.palletsContainer.Add(widget.NewSeparator())
	a.palletsContainer.Add(widget.NewLabel(
		fmt.Sprintf("%d pallets, %d kg, %.1f loading meters", len(a.pallets), totalWeight, loadingMeters)))
}

func palletFlags(p *model.Pallet) string {
	var flags []string
	if p.Stackable {
		flags = append(flags, "stack")
	}
	if p.Fragile {
		flags = append(flags, "fragile")
	}
	if len(flags) == 0 {
		return "-"
	}
	return strings.Join(flags, ", ")
}

func (a *App) showAddPalletDialog() {
	idEntry := widget.NewEntry()
	idEntry.SetText(fmt.Sprintf("P-%03d", len(a.pallets)+1))

	typeEntry := widget.NewEntry()
	typeEntry.SetText("EUR")

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText("1200")

	widthEntry := widget.NewEntry()
	widthEntry.SetText("800")

	heightEntry := widget.NewEntry()
	heightEntry.SetPlaceHolder("Loaded height in mm")
	heightEntry.SetText("1000")

	tareEntry := widget.NewEntry()
	tareEntry.SetText("25")

	cargoEntry := widget.NewEntry()
	cargoEntry.SetPlaceHolder("Cargo weight in kg")

	qtyEntry := widget.NewEntry()
	qtyEntry.SetText("1")

	stackableCheck := widget.NewCheck("", nil)
	stackableCheck.SetChecked(true)
	fragileCheck := widget.NewCheck("", nil)

	// Catalog formats fill the dimension fields; the height stays manual
	// because it depends on the cargo.
	formatSelect := widget.NewSelect(model.PalletTypeNames(), func(selected string) {
		if pt, ok := model.GetPalletType(selected); ok {
			typeEntry.SetText(pt.Name)
			lengthEntry.SetText(fmt.Sprintf("%d", pt.Length))
			widthEntry.SetText(fmt.Sprintf("%d", pt.Width))
			tareEntry.SetText(fmt.Sprintf("%d", pt.TareWeight))
		}
	})
	formatSelect.PlaceHolder = "Select a standard format..."

	form := dialog.NewForm("Add Pallet", "Add", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Format", formatSelect),
			widget.NewFormItem("ID", idEntry),
			widget.NewFormItem("Type", typeEntry),
			widget.NewFormItem("Length (mm)", lengthEntry),
			widget.NewFormItem("Width (mm)", widthEntry),
			widget.NewFormItem("Height (mm)", heightEntry),
			widget.NewFormItem("Tare Weight (kg)", tareEntry),
			widget.NewFormItem("Cargo Weight (kg)", cargoEntry),
			widget.NewFormItem("Quantity", qtyEntry),
			widget.NewFormItem("Stackable", stackableCheck),
			widget.NewFormItem("Fragile", fragileCheck),
		},
		func(ok bool) {
			if !ok {
				return
			}
			l, _ := strconv.Atoi(lengthEntry.Text)
			w, _ := strconv.Atoi(widthEntry.Text)
			h, _ := strconv.Atoi(heightEntry.Text)
			tare, _ := strconv.Atoi(tareEntry.Text)
			cargo, _ := strconv.Atoi(cargoEntry.Text)
			qty, _ := strconv.Atoi(qtyEntry.Text)
			if l <= 0 || w <= 0 || h <= 0 || qty <= 0 {
				dialog.ShowError(fmt.Errorf("length, width, height, and quantity must be > 0"), a.window)
				return
			}
			if tare < 0 || cargo < 0 {
				dialog.ShowError(fmt.Errorf("weights must not be negative"), a.window)
				return
			}

			a.pushHistory("add pallet")
			for i := 0; i < qty; i++ {
				p := model.NewPallet(typeEntry.Text, l, w, h, tare)
				p.ID = idEntry.Text
				if qty > 1 {
					p.ID = fmt.Sprintf("%s-%d", idEntry.Text, i+1)
				}
				p.CargoWeight = cargo
				p.Stackable = stackableCheck.Checked
				p.Fragile = fragileCheck.Checked
				if pt, ok := model.GetPalletType(p.Type); ok {
					p.Color = pt.Color
				}
				a.pallets = append(a.pallets, p)
			}
			a.refreshPalletsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 550))
	form.Show()
}

func (a *App) showEditPalletDialog(idx int) {
	p := a.pallets[idx]

	idEntry := widget.NewEntry()
	idEntry.SetText(p.ID)

	typeEntry := widget.NewEntry()
	typeEntry.SetText(p.Type)

	lengthEntry := widget.NewEntry()
	lengthEntry.SetText(fmt.Sprintf("%d", p.Length))

	widthEntry := widget.NewEntry()
	widthEntry.SetText(fmt.Sprintf("%d", p.Width))

	heightEntry := widget.NewEntry()
	heightEntry.SetText(fmt.Sprintf("%d", p.Height))

	tareEntry := widget.NewEntry()
	tareEntry.SetText(fmt.Sprintf("%d", p.TareWeight))

	cargoEntry := widget.NewEntry()
	cargoEntry.SetText(fmt.Sprintf("%d", p.CargoWeight))

	maxStackEntry := widget.NewEntry()
	maxStackEntry.SetText(fmt.Sprintf("%d", p.MaxStackWeight))

	stackableCheck := widget.NewCheck("", nil)
	stackableCheck.SetChecked(p.Stackable)
	fragileCheck := widget.NewCheck("", nil)
	fragileCheck.SetChecked(p.Fragile)

	form := dialog.NewForm("Edit Pallet", "Save", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("ID", idEntry),
			widget.NewFormItem("Type", typeEntry),
			widget.NewFormItem("Length (mm)", lengthEntry),
			widget.NewFormItem("Width (mm)", widthEntry),
			widget.NewFormItem("Height (mm)", heightEntry),
			widget.NewFormItem("Tare Weight (kg)", tareEntry),
			widget.NewFormItem("Cargo Weight (kg)", cargoEntry),
			widget.NewFormItem("Max Stack Weight (kg, 0=none)", maxStackEntry),
			widget.NewFormItem("Stackable", stackableCheck),
			widget.NewFormItem("Fragile", fragileCheck),
		},
		func(ok bool) {
			if !ok {
				return
			}
			l, _ := strconv.Atoi(lengthEntry.Text)
			w, _ := strconv.Atoi(widthEntry.Text)
			h, _ := strconv.Atoi(heightEntry.Text)
			tare, _ := strconv.Atoi(tareEntry.Text)
			cargo, _ := strconv.Atoi(cargoEntry.Text)
			maxStack, _ := strconv.Atoi(maxStackEntry.Text)
			if l <= 0 || w <= 0 || h <= 0 {
				dialog.ShowError(fmt.Errorf("length, width, and height must be > 0"), a.window)
				return
			}
			if tare < 0 || cargo < 0 || maxStack < 0 {
				dialog.ShowError(fmt.Errorf("weights must not be negative"), a.window)
				return
			}

			a.pushHistory("edit pallet")
			// Update the existing pallet
			a.pallets[idx].ID = idEntry.Text
			a.pallets[idx].Type = typeEntry.Text
			a.pallets[idx].Length = l
			a.pallets[idx].Width = w
			a.pallets[idx].Height = h
			a.pallets[idx].TareWeight = tare
			a.pallets[idx].CargoWeight = cargo
			a.pallets[idx].MaxStackWeight = maxStack
			a.pallets[idx].Stackable = stackableCheck.Checked
			a.pallets[idx].Fragile = fragileCheck.Checked
			a.refreshPalletsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(450, 500))
	form.Show()
}

// ─── Trailer Panel ─────────────────────────────────────────

// trailerPreset defines a common cargo space for quick selection.
type trailerPreset struct {
	Label   string
	Length  int
	Width   int
	Height  int
	MaxLoad int
}

// Common trailer presets covering standard European equipment.
var trailerPresets = []trailerPreset{
	{Label: "Custom"},
	{Label: "Semi-Trailer 13.6 m", Length: 13600, Width: 2450, Height: 2700, MaxLoad: 24000},
	{Label: "Mega Trailer 13.6 m", Length: 13600, Width: 2480, Height: 3000, MaxLoad: 24000},
	{Label: "City Trailer 10.5 m", Length: 10500, Width: 2450, Height: 2600, MaxLoad: 16000},
	{Label: "Swap Body 7.45 m", Length: 7450, Width: 2480, Height: 2670, MaxLoad: 10000},
	{Label: "40 ft Container", Length: 12030, Width: 2350, Height: 2390, MaxLoad: 26700},
	{Label: "20 ft Container", Length: 5900, Width: 2350, Height: 2390, MaxLoad: 21700},
}

func (a *App) buildTrailerPanel() fyne.CanvasObject {
	s := &a.spec

	// Helper to create a bound float entry
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

	lengthEntry := intEntry(&s.Length)
	widthEntry := intEntry(&s.Width)
	heightEntry := intEntry(&s.Height)
	maxLoadEntry := intEntry(&s.MaxLoad)

	// Build preset names for the dropdown
	presetNames := make([]string, len(trailerPresets))
	for i, p := range trailerPresets {
		presetNames[i] = p.Label
	}

	presetSelect := widget.NewSelect(presetNames, func(selected string) {
		for _, p := range trailerPresets {
			if p.Label == selected && p.Length > 0 {
				lengthEntry.SetText(fmt.Sprintf("%d", p.Length))
				widthEntry.SetText(fmt.Sprintf("%d", p.Width))
				heightEntry.SetText(fmt.Sprintf("%d", p.Height))
				maxLoadEntry.SetText(fmt.Sprintf("%d", p.MaxLoad))
				break
			}
		}
	})
	presetSelect.PlaceHolder = "Select a preset trailer..."

	cargoSection := widget.NewCard("Cargo Space", "", container.NewGridWithColumns(2,
		widget.NewLabel("Preset"), presetSelect,
		widget.NewLabel("Length (mm)"), lengthEntry,
		widget.NewLabel("Width (mm)"), widthEntry,
		widget.NewLabel("Height (mm)"), heightEntry,
		widget.NewLabel("Max Load (kg)"), maxLoadEntry,
		widget.NewLabel("Grid Resolution (mm)"), intEntry(&s.Resolution),
	))

	balanceSection := widget.NewCard("Axle Balance", "", container.NewGridWithColumns(2,
		widget.NewLabel("Side Threshold (0-0.5)"), floatEntry(&s.Balance.Threshold),
		widget.NewLabel("Front Share Target (0-1)"), floatEntry(&s.Balance.FrontBackTarget),
	))

	return container.NewVScroll(container.NewVBox(
		cargoSection,
		balanceSection,
	))
}

// ─── Strategy Panel ────────────────────────────────────────

func (a *App) buildStrategyPanel() fyne.CanvasObject {
	o := &a.opts

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

	descLabel := widget.NewLabel(engine.Describe(a.kind))
	descLabel.Wrapping = fyne.TextWrapWord

	kindNames := make([]string, 0, len(engine.Kinds()))
	for _, k := range engine.Kinds() {
		kindNames = append(kindNames, string(k))
	}
	kindSelect := widget.NewSelect(kindNames, func(selected string) {
		a.kind = engine.Kind(selected)
		descLabel.SetText(engine.Describe(a.kind))
	})
	kindSelect.SetSelected(string(a.kind))

	strategySection := widget.NewCard("Strategy", "", container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel("Loading Strategy"), kindSelect,
		),
		descLabel,
	))

	startSelect := widget.NewSelect([]string{engine.StartFront, engine.StartBack}, func(selected string) {
		o.Start = selected
	})
	startSelect.SetSelected(engine.StartFront)

	sortSelect := widget.NewSelect([]string{"manifest order", "weight", "volume"}, func(selected string) {
		switch selected {
		case "weight":
			o.SortBy = engine.SortWeight
		case "volume":
			o.SortBy = engine.SortVolume
		default:
			o.SortBy = ""
		}
	})
	sortSelect.SetSelected("manifest order")

	stackingSelect := widget.NewSelect([]string{stackingDefault, stackingAllowed, stackingForbidden}, func(selected string) {
		a.stacking = selected
	})
	stackingSelect.SetSelected(a.stacking)

	reservedSelect := widget.NewSelect(append([]string{"none"}, model.PalletTypeNames()...), func(selected string) {
		if selected == "none" {
			o.ReservedType = ""
		} else {
			o.ReservedType = selected
		}
	})
	reservedSelect.SetSelected("none")

	optionsSection := widget.NewCard("Options", "", container.NewGridWithColumns(2,
		widget.NewLabel("Start From"), startSelect,
		widget.NewLabel("Sort Manifest By"), sortSelect,
		widget.NewLabel("Stacking"), stackingSelect,
		widget.NewLabel("Zones (0 = default)"), intEntry(&o.Zones),
		widget.NewLabel("Balancing Factor (0 = default)"), floatEntry(&o.BalancingFactor),
		widget.NewLabel("Keep Orientation For"), reservedSelect,
		widget.NewLabel("Layers (0 = default)"), intEntry(&o.Layers),
		widget.NewLabel("Weight Factor (0 = default)"), floatEntry(&o.WeightFactor),
	))

	runBtn := widget.NewButtonWithIcon("Run Strategy", theme.MediaPlayIcon(), func() {
		a.runStrategy()
		a.tabs.SelectIndex(3)
	})
	runBtn.Importance = widget.HighImportance

	compareBtn := widget.NewButtonWithIcon("Compare All Strategies", theme.ViewRefreshIcon(), func() {
		a.compareStrategies()
	})

	return container.NewVScroll(container.NewVBox(
		strategySection,
		optionsSection,
		container.NewHBox(runBtn, compareBtn, layout.NewSpacer()),
	))
}

// ─── Results Panel ─────────────────────────────────────────

func (a *App) buildResultsPanel() fyne.CanvasObject {
	a.resultContainer = container.NewStack(
		widget.NewLabel("No results yet. Import or add pallets, then click Run."),
	)

	pdfBtn := newIconButtonWithTooltip(theme.DocumentIcon(), "Export loading plan as PDF", func() {
		a.exportPDF()
	})
	dxfBtn := newIconButtonWithTooltip(theme.GridIcon(), "Export floor plan as DXF", func() {
		a.exportDXF()
	})
	labelsBtn := newIconButtonWithTooltip(theme.ContentCopyIcon(), "Export QR pallet labels", func() {
		a.exportLabels()
	})
	planBtn := newIconButtonWithTooltip(theme.DocumentSaveIcon(), "Save plan as JSON", func() {
		a.savePlan()
	})

	return container.NewBorder(
		container.NewHBox(
			widget.NewLabelWithStyle("Loading Result", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			pdfBtn,
			dxfBtn,
			labelsBtn,
			planBtn,
		),
		nil, nil, nil,
		a.resultContainer,
	)
}

func (a *App) refreshResults() {
	a.resultContainer.RemoveAll()
	if a.plan == nil {
		a.resultContainer.Add(widget.NewLabel("No results yet. Import or add pallets, then click Run."))
	} else {
		report := validate.Check(a.plan.Placed, a.plan.Trailer)
		a.resultContainer.Add(widgets.RenderLoadResult(
			a.plan.Trailer, a.plan.Placed, a.plan.Unplaced, a.plan.Statistics,
			validate.FormatFindings(report)))
	}
	a.resultContainer.Refresh()
}

// ─── Actions ───────────────────────────────────────────────

// buildOptions resolves the Strategy tab state into engine options.
func (a *App) buildOptions() engine.Options {
	opts := a.opts
	switch a.stacking {
	case stackingAllowed:
		allow := true
		opts.AllowStacking = &allow
	case stackingForbidden:
		allow := false
		opts.AllowStacking = &allow
	}
	return opts
}

func (a *App) runStrategy() {
	if len(a.pallets) == 0 {
		dialog.ShowInformation("Nothing to load", "Add at least one pallet first.", a.window)
		return
	}

	strategy, err := engine.New(a.kind, a.buildOptions())
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}
	loader := engine.NewLoader(strategy, a.spec)
	placed := loader.Run(a.pallets, true)
	plan := project.NewPlan(a.kind, a.spec, placed, engine.Unplaced(a.pallets, placed), loader.Statistics())
	a.plan = &plan
	a.refreshResults()
}

func (a *App) compareStrategies() {
	if len(a.pallets) == 0 {
		dialog.ShowInformation("Nothing to compare", "Add at least one pallet first.", a.window)
		return
	}

	results, err := engine.CompareScenarios(engine.BuildDefaultScenarios(), a.spec, a.pallets)
	if err != nil {
		dialog.ShowError(err, a.window)
		return
	}

	grid := container.NewGridWithColumns(5,
		widget.NewLabelWithStyle("Scenario", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Loaded", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Unplaced", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Space %", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Balanced", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, r := range results {
		balanced := "yes"
		if !r.BalanceValid {
			balanced = "NO"
		}
		grid.Add(widget.NewLabel(r.Scenario.Name))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d", r.PlacedCount)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%d", r.UnplacedCount)))
		grid.Add(widget.NewLabel(fmt.Sprintf("%.1f", r.Statistics.Efficiency.SpaceUtilization)))
		grid.Add(widget.NewLabel(balanced))
	}

	exportBtn := widget.NewButton("Export Comparison PDF...", func() {
		d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
			if err != nil || writer == nil {
				return
			}
			defer writer.Close()
			path := writer.URI().Path()
			if err := export.WriteComparisonPDF(path, a.spec, results); err != nil {
				dialog.ShowError(err, a.window)
			} else {
				dialog.ShowInformation("Export Complete",
					fmt.Sprintf("Comparison saved to %s", path), a.window)
			}
		}, a.window)
		d.SetFileName("strategy-comparison.pdf")
		d.Show()
	})

	content := container.NewVBox(grid, widget.NewSeparator(), exportBtn)
	d := dialog.NewCustom("Strategy Comparison", "Close", content, a.window)
	d.Resize(fyne.NewSize(550, 350))
	d.Show()
}

func (a *App) showFleetEstimateDialog() {
	if len(a.pallets) == 0 {
		dialog.ShowInformation("Nothing to estimate", "Add at least one pallet first.", a.window)
		return
	}

	est := model.CalculateFleetEstimate(a.pallets, a.spec, 0.85, 0)

	grid := container.NewGridWithColumns(2,
		widget.NewLabel("Cargo volume"),
		widget.NewLabel(fmt.Sprintf("%.1f m3", est.TotalVolume)),
		widget.NewLabel("Cargo weight"),
		widget.NewLabel(fmt.Sprintf("%d kg", est.TotalWeight)),
		widget.NewLabel("Loading meters"),
		widget.NewLabel(fmt.Sprintf("%.1f", est.TotalLoadingMeters)),
		widget.NewLabel("Trailers by volume"),
		widget.NewLabel(fmt.Sprintf("%.2f", est.TrailersByVolume)),
		widget.NewLabel("Trailers by payload"),
		widget.NewLabel(fmt.Sprintf("%.2f", est.TrailersByWeight)),
		widget.NewLabel("Trailers by floor"),
		widget.NewLabel(fmt.Sprintf("%.2f", est.TrailersByFloor)),
		widget.NewLabelWithStyle("Minimum", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle(fmt.Sprintf("%d", est.TrailersMin), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle("Recommended (85% fill)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabelWithStyle(fmt.Sprintf("%d", est.TrailersRecommended), fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)

	d := dialog.NewCustom("Fleet Estimate", "Close", grid, a.window)
	d.Resize(fyne.NewSize(400, 350))
	d.Show()
}

func (a *App) pushHistory(label string) {
	a.history.Push(MakeSnapshot(a.pallets, label))
}

func (a *App) undo() {
	snap, ok := a.history.Undo(MakeSnapshot(a.pallets, ""))
	if !ok {
		return
	}
	a.pallets = snap.Pallets
	a.refreshPalletsList()
}

func (a *App) redo() {
	snap, ok := a.history.Redo(MakeSnapshot(a.pallets, ""))
	if !ok {
		return
	}
	a.pallets = snap.Pallets
	a.refreshPalletsList()
}

func (a *App) saveManifest() {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := project.SavePallets(path, a.pallets); err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.config.RememberManifest(path)
		_ = a.saveConfig()
	}, a.window)
	d.SetFileName("manifest.json")
	d.Show()
}

func (a *App) openManifest() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		path := reader.URI().Path()
		pallets, err := project.LoadPallets(path)
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.pushHistory("open manifest")
		a.pallets = pallets
		a.refreshPalletsList()
		a.config.RememberManifest(path)
		_ = a.saveConfig()
	}, a.window)
	d.Show()
}

func (a *App) savePlan() {
	if a.plan == nil {
		dialog.ShowInformation("No plan", "Run a strategy first before saving a plan.", a.window)
		return
	}
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := project.SavePlan(writer.URI().Path(), *a.plan); err != nil {
			dialog.ShowError(err, a.window)
		}
	}, a.window)
	d.SetFileName("loading-plan.json")
	d.Show()
}

func (a *App) openPlan() {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		plan, err := project.LoadPlan(reader.URI().Path())
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		a.plan = &plan
		a.refreshResults()
		a.tabs.SelectIndex(3)
	}, a.window)
	d.Show()
}

func (a *App) exportPDF() {
	if a.plan == nil || len(a.plan.Placed) == 0 {
		dialog.ShowInformation("No results", "Run a strategy first before exporting.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := export.WritePDF(path, *a.plan); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Loading plan saved to %s", path), a.window)
		}
	}, a.window)
	d.SetFileName("loading-plan.pdf")
	d.Show()
}

func (a *App) exportDXF() {
	if a.plan == nil || len(a.plan.Placed) == 0 {
		dialog.ShowInformation("No results", "Run a strategy first before exporting.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		trailer := model.NewTrailer(a.plan.Trailer)
		trailer.Restore(a.plan.Placed)
		if err := export.WriteDXF(path, trailer); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Floor plan saved to %s", path), a.window)
		}
	}, a.window)
	d.SetFileName("floor-plan.dxf")
	d.Show()
}

func (a *App) exportLabels() {
	if a.plan == nil || len(a.plan.Placed) == 0 {
		dialog.ShowInformation("No results", "Run a strategy first before exporting.", a.window)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		path := writer.URI().Path()
		if err := export.WriteLabels(path, a.plan.Placed); err != nil {
			dialog.ShowError(err, a.window)
		} else {
			dialog.ShowInformation("Export Complete",
				fmt.Sprintf("Pallet labels saved to %s", path), a.window)
		}
	}, a.window)
	d.SetFileName("pallet-labels.pdf")
	d.Show()
}

func (a *App) showSampleSetDialog() {
	sets := project.SampleSets(time.Now().UnixNano())

	names := make([]string, len(sets))
	for i, s := range sets {
		names[i] = fmt.Sprintf("%s (%d pallets)", s.Name, len(s.Pallets))
	}
	setSelect := widget.NewSelect(names, nil)
	setSelect.SetSelectedIndex(0)

	form := dialog.NewForm("Load Sample Set", "Load", "Cancel",
		[]*widget.FormItem{
			widget.NewFormItem("Sample Set", setSelect),
		},
		func(ok bool) {
			if !ok || setSelect.SelectedIndex() < 0 {
				return
			}
			a.pushHistory("load sample set")
			a.pallets = sets[setSelect.SelectedIndex()].Pallets
			a.refreshPalletsList()
		},
		a.window,
	)
	form.Resize(fyne.NewSize(400, 150))
	form.Show()
}

// ─── Import Functions ───────────────────────────────────────

func (a *App) importCSV() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := palletimporter.ImportCSV(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) importExcel() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()

		result := palletimporter.ImportExcel(reader.URI().Path())
		a.handleImportResult(result)
	}, a.window)
}

func (a *App) handleImportResult(result palletimporter.ImportResult) {
	// Show errors if any
	if len(result.Errors) > 0 {
		errorMsg := "Errors encountered during import:\n\n" + strings.Join(result.Errors, "\n")
		dialog.ShowError(fmt.Errorf("%s", errorMsg), a.window)
	}

	// Show warnings if any
	if len(result.Warnings) > 0 {
		// Just log warnings, don't block
		fmt.Printf("Import warnings: %v\n", result.Warnings)
	}

	// Add imported pallets
	if len(result.Pallets) > 0 {
		a.pushHistory("import pallets")
		a.pallets = append(a.pallets, result.Pallets...)
		a.refreshPalletsList()

		// Show success message
		msg := fmt.Sprintf("Successfully imported %d pallets.", len(result.Pallets))
		if len(result.Errors) > 0 {
			msg += fmt.Sprintf("\n\nHowever, %d rows had errors and were skipped.", len(result.Errors))
		}
		dialog.ShowInformation("Import Complete", msg, a.window)
	}
}
