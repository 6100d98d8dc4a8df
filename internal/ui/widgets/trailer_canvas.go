package widgets

import (
	"fmt"
	"image/color"
	"sort"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/adamsulik/PACKIT4.0/internal/engine"
	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// Fallback pallet colors for types without a catalog color.
var palletColors = []color.NRGBA{
	{R: 76, G: 175, B: 80, A: 200},  // green
	{R: 33, G: 150, B: 243, A: 200}, // blue
	{R: 255, G: 152, B: 0, A: 200},  // orange
	{R: 156, G: 39, B: 176, A: 200}, // purple
	{R: 0, G: 188, B: 212, A: 200},  // cyan
	{R: 244, G: 67, B: 54, A: 200},  // red
	{R: 255, G: 235, B: 59, A: 200}, // yellow
	{R: 121, G: 85, B: 72, A: 200},  // brown
}

// ViewMode selects the projection a TrailerCanvas draws.
type ViewMode int

const (
	ViewTop  ViewMode = iota // looking down on the floor (x/y)
	ViewSide                 // looking through the curtain side (x/z)
)

// TrailerCanvas renders a visual representation of a loaded trailer.
type TrailerCanvas struct {
	widget.BaseWidget
	spec      model.TrailerSpec
	pallets   []*model.Pallet
	view      ViewMode
	maxWidth  float32
	maxHeight float32
}

func NewTrailerCanvas(spec model.TrailerSpec, pallets []*model.Pallet, view ViewMode, maxW, maxH float32) *TrailerCanvas {
	tc := &TrailerCanvas{
		spec:      spec,
		pallets:   pallets,
		view:      view,
		maxWidth:  maxW,
		maxHeight: maxH,
	}
	tc.ExtendBaseWidget(tc)
	return tc
}

// SetView switches the projection and redraws.
func (tc *TrailerCanvas) SetView(view ViewMode) {
	tc.view = view
	tc.Refresh()
}

func (tc *TrailerCanvas) CreateRenderer() fyne.WidgetRenderer {
	return newTrailerCanvasRenderer(tc)
}

type trailerCanvasRenderer struct {
	tc      *TrailerCanvas
	objects []fyne.CanvasObject
}

func newTrailerCanvasRenderer(tc *TrailerCanvas) *trailerCanvasRenderer {
	r := &trailerCanvasRenderer{tc: tc}
	r.rebuild()
	return r
}

// depth returns the vertical extent of the current projection in mm.
func (tc *TrailerCanvas) depth() float32 {
	if tc.view == ViewSide {
		return float32(tc.spec.Height)
	}
	return float32(tc.spec.Width)
}

func (tc *TrailerCanvas) scale() float32 {
	scaleX := tc.maxWidth / float32(tc.spec.Length)
	scaleY := tc.maxHeight / tc.depth()
	if scaleY < scaleX {
		return scaleY
	}
	return scaleX
}

func (r *trailerCanvasRenderer) rebuild() {
	r.objects = nil

	tc := r.tc
	scale := tc.scale()
	canvasW := float32(tc.spec.Length) * scale
	canvasH := tc.depth() * scale

	// Cargo floor background
	bg := canvas.NewRectangle(color.NRGBA{R: 235, G: 235, B: 230, A: 255})
	bg.Resize(fyne.NewSize(canvasW, canvasH))
	bg.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, bg)

	// Trailer border
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.NRGBA{R: 100, G: 100, B: 100, A: 255}
	border.StrokeWidth = 2
	border.Resize(fyne.NewSize(canvasW, canvasH))
	border.Move(fyne.NewPos(0, 0))
	r.objects = append(r.objects, border)

	colors := resolveTypeColors(tc.pallets)

	// Paint floor pallets first so stacked ones stay visible on top
	byLevel := make([]*model.Pallet, len(tc.pallets))
	copy(byLevel, tc.pallets)
	sort.SliceStable(byLevel, func(i, j int) bool {
		return byLevel[i].Position.Z < byLevel[j].Position.Z
	})

	for _, p := range byLevel {
		pw := float32(p.PlacedLength()) * scale
		px := float32(p.Position.X) * scale

		var ph, py float32
		if tc.view == ViewSide {
			ph = float32(p.Height) * scale
			py = float32(tc.spec.Height-p.Position.Z-p.Height) * scale
		} else {
			ph = float32(p.PlacedWidth()) * scale
			py = float32(p.Position.Y) * scale
		}

		// Pallet rectangle
		palletRect := canvas.NewRectangle(colors[p.Type])
		palletRect.Resize(fyne.NewSize(pw, ph))
		palletRect.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, palletRect)

		// Pallet border
		palletBorder := canvas.NewRectangle(color.Transparent)
		palletBorder.StrokeColor = color.NRGBA{R: 30, G: 30, B: 30, A: 255}
		palletBorder.StrokeWidth = 1
		palletBorder.Resize(fyne.NewSize(pw, ph))
		palletBorder.Move(fyne.NewPos(px, py))
		r.objects = append(r.objects, palletBorder)

		// Label (only if big enough)
		if pw > 30 && ph > 16 {
			label := canvas.NewText(p.ID, color.Black)
			label.TextSize = 10
			label.Move(fyne.NewPos(px+3, py+2))
			r.objects = append(r.objects, label)
		}
	}
}

func (r *trailerCanvasRenderer) Layout(size fyne.Size)        {}
func (r *trailerCanvasRenderer) Refresh()                     { r.rebuild() }
func (r *trailerCanvasRenderer) Destroy()                     {}
func (r *trailerCanvasRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *trailerCanvasRenderer) MinSize() fyne.Size {
	tc := r.tc
	scale := tc.scale()
	return fyne.NewSize(float32(tc.spec.Length)*scale, tc.depth()*scale)
}

// resolveTypeColors maps each pallet type to a fill color, preferring the
// catalog color carried on the pallet and cycling the fixed palette for the
// rest.
func resolveTypeColors(pallets []*model.Pallet) map[string]color.NRGBA {
	colors := make(map[string]color.NRGBA)
	next := 0
	for _, p := range pallets {
		if _, ok := colors[p.Type]; ok {
			continue
		}
		if col, ok := parseRGBA(p.Color); ok {
			colors[p.Type] = col
		} else {
			colors[p.Type] = palletColors[next%len(palletColors)]
			next++
		}
	}
	return colors
}

// parseRGBA reads a CSS rgba() string as stored in the pallet catalog.
func parseRGBA(s string) (color.NRGBA, bool) {
	var r, g, b int
	var alpha float64
	if _, err := fmt.Sscanf(s, "rgba(%d, %d, %d, %f)", &r, &g, &b, &alpha); err != nil {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(alpha * 255)}, true
}

// RenderLoadResult creates a scrollable container showing a finished run:
// the trailer canvas with a projection selector, the load statistics, any
// unplaced pallets and the audit findings.
func RenderLoadResult(spec model.TrailerSpec, placed, unplaced []*model.Pallet, stats engine.Statistics, findings []string) fyne.CanvasObject {
	if len(placed) == 0 && len(unplaced) == 0 {
		return widget.NewLabel("No results yet. Import or add pallets, then click Run.")
	}

	var items []fyne.CanvasObject

	header := widget.NewLabel(fmt.Sprintf(
		"Strategy %s: %d pallets loaded, %.1f%% of the cargo space, %d kg",
		stats.Strategy, stats.PalletsLoaded,
		stats.Efficiency.SpaceUtilization, stats.WeightDistribution.Total,
	))
	header.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, header)

	trailerCanvas := NewTrailerCanvas(spec, placed, ViewTop, 760, 400)
	viewSelect := widget.NewSelect([]string{"Top view", "Side view"}, func(selected string) {
		if selected == "Side view" {
			trailerCanvas.SetView(ViewSide)
		} else {
			trailerCanvas.SetView(ViewTop)
		}
	})
	viewSelect.SetSelected("Top view")

	items = append(items, container.NewHBox(widget.NewLabel("Projection:"), viewSelect))
	items = append(items, trailerCanvas, widget.NewSeparator())

	if len(unplaced) > 0 {
		warning := widget.NewLabel(fmt.Sprintf(
			"WARNING: %d pallets could not be placed! Try another strategy or allow stacking.",
			len(unplaced),
		))
		warning.Importance = widget.DangerImportance
		items = append(items, warning)
		for _, p := range unplaced {
			items = append(items, widget.NewLabel(fmt.Sprintf(
				"  %s: %s %dx%dx%d mm, %d kg", p.ID, p.Type, p.Length, p.Width, p.Height, p.TotalWeight(),
			)))
		}
		items = append(items, widget.NewSeparator())
	}

	// Audit verdict
	if len(findings) == 0 {
		ok := widget.NewLabel("Load check passed: no collisions, everything in bounds and supported.")
		ok.Importance = widget.SuccessImportance
		items = append(items, ok)
	} else {
		bad := widget.NewLabel(fmt.Sprintf("Load check found %d problems:", len(findings)))
		bad.Importance = widget.DangerImportance
		items = append(items, bad)
		for _, finding := range findings {
			items = append(items, widget.NewLabel("  "+finding))
		}
	}

	// Per-type breakdown
	breakdown := buildTypeBreakdown(placed)
	if len(breakdown) > 1 {
		items = append(items, widget.NewSeparator())
		breakdownHeader := widget.NewLabel("Load Breakdown:")
		breakdownHeader.TextStyle = fyne.TextStyle{Bold: true}
		items = append(items, breakdownHeader)
		for _, line := range breakdown {
			items = append(items, widget.NewLabel(line))
		}
	}

	summary := widget.NewLabel(fmt.Sprintf(
		"Balance: %.2f left/right, %.2f front share (target %.2f)",
		stats.Balance.SideBalance, stats.Balance.FrontBackBalance, spec.Balance.FrontBackTarget,
	))
	summary.TextStyle = fyne.TextStyle{Bold: true}
	items = append(items, summary)

	return container.NewVScroll(container.NewVBox(items...))
}

// buildTypeBreakdown generates per-type statistics lines: count, stacked
// count and total weight for every pallet format in the load.
func buildTypeBreakdown(placed []*model.Pallet) []string {
	if len(placed) == 0 {
		return nil
	}

	type typeStats struct {
		count   int
		stacked int
		weight  int
	}

	// Preserve insertion order with a slice of keys
	var order []string
	statsMap := make(map[string]*typeStats)

	for _, p := range placed {
		if _, exists := statsMap[p.Type]; !exists {
			order = append(order, p.Type)
			statsMap[p.Type] = &typeStats{}
		}
		s := statsMap[p.Type]
		s.count++
		if p.Position.Z > 0 {
			s.stacked++
		}
		s.weight += p.TotalWeight()
	}

	var lines []string
	for _, typeName := range order {
		s := statsMap[typeName]
		lines = append(lines, fmt.Sprintf(
			"  %s: %d pallet(s), %d stacked, %d kg",
			typeName, s.count, s.stacked, s.weight,
		))
	}
	return lines
}
