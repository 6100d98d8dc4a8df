// Package export renders loading plans to shareable file formats.
package export

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-pdf/fpdf"

	"github.com/adamsulik/PACKIT4.0/internal/engine"
	"github.com/adamsulik/PACKIT4.0/internal/model"
	"github.com/adamsulik/PACKIT4.0/internal/project"
)

// palletColor represents an RGB fill color for a rendered pallet.
type palletColor struct {
	R, G, B int
}

// fallbackColors covers pallet types that carry no catalog color. The scheme
// mirrors the trailer canvas widget in the UI.
var fallbackColors = []palletColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth     = 297.0
	pageHeight    = 210.0
	marginLeft    = 15.0
	marginRight   = 15.0
	marginTop     = 15.0
	marginBottom  = 15.0
	headerHeight  = 12.0
	legendHeight  = 20.0
	captionHeight = 5.0
	viewGap       = 6.0
	drawAreaTop   = marginTop + headerHeight + 5.0
)

// WritePDF renders a loading plan as a PDF document: a layout page with a
// scaled top view and side view of the trailer, followed by a summary page
// with statistics, the per-type breakdown and the trailer parameters.
func WritePDF(path string, plan project.Plan) error {
	if len(plan.Placed) == 0 {
		return fmt.Errorf("no placed pallets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	title := fmt.Sprintf("Loading Plan: %s (%d x %d mm trailer)",
		plan.Strategy, plan.Trailer.Length, plan.Trailer.Width)

	pdf.AddPage()
	renderLoadPage(pdf, title, plan.Trailer, plan.Placed, plan.Statistics)

	pdf.AddPage()
	renderPlanSummary(pdf, plan)

	return pdf.OutputFileAndClose(path)
}

// WriteComparisonPDF renders one layout page per scenario followed by a
// side-by-side summary table, so strategies can be compared on paper.
func WriteComparisonPDF(path string, spec model.TrailerSpec, results []engine.ComparisonResult) error {
	if len(results) == 0 {
		return fmt.Errorf("no scenarios to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, result := range results {
		pdf.AddPage()
		title := fmt.Sprintf("Scenario %d: %s", i+1, result.Scenario.Name)
		renderLoadPage(pdf, title, spec, result.Placed, result.Statistics)
	}

	pdf.AddPage()
	renderComparisonSummary(pdf, results)

	return pdf.OutputFileAndClose(path)
}

// renderLoadPage draws a loaded trailer on the current PDF page as two
// projections: the floor seen from above (x/y) and the load seen from the
// side (x/z), sharing one scale along the trailer length.
func renderLoadPage(pdf *fpdf.Fpdf, title string, spec model.TrailerSpec, placed []*model.Pallet, stats engine.Statistics) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	statsLine := fmt.Sprintf("Pallets: %d | Space: %.1f%% | Weight: %d / %d kg | Balance L/R: %.2f, F/B: %.2f",
		stats.PalletsLoaded, stats.Efficiency.SpaceUtilization,
		stats.WeightDistribution.Total, spec.MaxLoad,
		stats.Balance.SideBalance, stats.Balance.FrontBackBalance)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, statsLine, "", 0, "L", false, 0, "")

	// Scale both projections to the drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	viewBudget := pageHeight - drawAreaTop - marginBottom - legendHeight - 2*captionHeight - viewGap

	scaleX := drawWidth / float64(spec.Length)
	scaleY := viewBudget / float64(spec.Width+spec.Height)
	scale := math.Min(scaleX, scaleY)

	canvasW := float64(spec.Length) * scale
	topH := float64(spec.Width) * scale
	sideH := float64(spec.Height) * scale

	// Center the drawing horizontally
	offsetX := marginLeft + (drawWidth-canvasW)/2
	topY := drawAreaTop + captionHeight
	sideY := topY + topH + viewGap + captionHeight

	colors := resolveColors(placed)

	// Paint lower pallets first so stacked ones stay visible on top
	byLevel := make([]*model.Pallet, len(placed))
	copy(byLevel, placed)
	sort.SliceStable(byLevel, func(i, j int) bool {
		return byLevel[i].Position.Z < byLevel[j].Position.Z
	})

	// Top view (x/y)
	drawViewCaption(pdf, "Top view (x/y)", offsetX, topY-captionHeight)
	drawTrailerBox(pdf, offsetX, topY, canvasW, topH)
	for _, p := range byLevel {
		px := offsetX + float64(p.Position.X)*scale
		py := topY + float64(p.Position.Y)*scale
		pw := float64(p.PlacedLength()) * scale
		ph := float64(p.PlacedWidth()) * scale
		drawPalletRect(pdf, px, py, pw, ph, colors[p.Type], p.ID,
			fmt.Sprintf("%dx%d", p.PlacedLength(), p.PlacedWidth()))
	}

	// Side view (x/z), trailer floor at the bottom edge
	drawViewCaption(pdf, "Side view (x/z)", offsetX, sideY-captionHeight)
	drawTrailerBox(pdf, offsetX, sideY, canvasW, sideH)
	for _, p := range byLevel {
		px := offsetX + float64(p.Position.X)*scale
		py := sideY + float64(spec.Height-p.Position.Z-p.Height)*scale
		pw := float64(p.PlacedLength()) * scale
		ph := float64(p.Height) * scale
		drawPalletRect(pdf, px, py, pw, ph, colors[p.Type], p.ID,
			fmt.Sprintf("%d kg", p.TotalWeight()))
	}

	drawDimensionAnnotations(pdf, spec, offsetX, topY, sideY, canvasW, topH, sideH)
	drawTypeLegend(pdf, placed, colors, sideY+sideH+5)
}

// drawViewCaption labels a projection above its frame.
func drawViewCaption(pdf *fpdf.Fpdf, caption string, x, y float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)
	pdf.SetXY(x, y)
	pdf.CellFormat(60, captionHeight, caption, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// drawTrailerBox renders the cargo space outline with a neutral deck fill.
func drawTrailerBox(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetFillColor(235, 235, 230)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(x, y, w, h, "FD")
}

// drawPalletRect renders a single pallet rectangle with an ID label and a
// detail line when the rectangle is large enough to hold them.
func drawPalletRect(pdf *fpdf.Fpdf, x, y, w, h float64, col palletColor, id, detail string) {
	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	pdf.Rect(x, y, w, h, "FD")

	if w <= 15 || h <= 8 {
		return
	}

	pdf.SetFont("Helvetica", "", labelFontSize(w, h))
	pdf.SetTextColor(0, 0, 0)

	idW := pdf.GetStringWidth(id)
	if idW < w-2 {
		pdf.SetXY(x+(w-idW)/2, y+h/2-4)
		pdf.CellFormat(idW, 4, id, "", 0, "C", false, 0, "")
	}

	detailW := pdf.GetStringWidth(detail)
	if h > 14 && detailW < w-2 {
		pdf.SetXY(x+(w-detailW)/2, y+h/2)
		pdf.CellFormat(detailW, 4, detail, "", 0, "C", false, 0, "")
	}
}

// drawDimensionAnnotations adds trailer dimension labels outside the two
// projection frames.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, spec model.TrailerSpec, offsetX, topY, sideY, canvasW, topH, sideH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Length annotation (between the projections)
	lengthLabel := fmt.Sprintf("%d mm", spec.Length)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX+(canvasW-lLabelW)/2, topY+topH+1)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")

	// Width annotation (left of the top view, rotated)
	widthLabel := fmt.Sprintf("%d mm", spec.Width)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, topY+topH/2)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX-3-wLabelW/2, topY+topH/2-2)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	// Height annotation (left of the side view, rotated)
	heightLabel := fmt.Sprintf("%d mm", spec.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, sideY+sideH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, sideY+sideH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawTypeLegend renders a compact per-type legend with pallet counts.
func drawTypeLegend(pdf *fpdf.Fpdf, placed []*model.Pallet, colors map[string]palletColor, startY float64) {
	if len(placed) == 0 {
		return
	}

	counts := make(map[string]int)
	var order []string
	for _, p := range placed {
		if counts[p.Type] == 0 {
			order = append(order, p.Type)
		}
		counts[p.Type]++
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Pallet types:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for _, typeName := range order {
		col := colors[typeName]
		label := fmt.Sprintf("%s x%d", typeName, counts[typeName])
		labelW := pdf.GetStringWidth(label) + 6

		// Wrap to next line if needed
		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderPlanSummary draws the statistics page for a single loading plan.
func renderPlanSummary(pdf *fpdf.Fpdf, plan project.Plan) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Loading Plan Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Overall statistics
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	stats := plan.Statistics
	balanceVerdict := "within limits"
	if !stats.Balance.Valid {
		balanceVerdict = "OUT OF BALANCE"
	}

	summaryItems := []struct {
		label string
		value string
	}{
		{"Strategy", string(plan.Strategy)},
		{"Created", plan.CreatedAt},
		{"Pallets Loaded", fmt.Sprintf("%d", stats.PalletsLoaded)},
		{"Unplaced Pallets", fmt.Sprintf("%d", len(plan.Unplaced))},
		{"Space Utilization", fmt.Sprintf("%.1f%%", stats.Efficiency.SpaceUtilization)},
		{"Weight Utilization", fmt.Sprintf("%.1f%% (%d / %d kg)", stats.Efficiency.WeightUtilization, stats.WeightDistribution.Total, plan.Trailer.MaxLoad)},
		{"Left / Right", fmt.Sprintf("%d / %d kg (share %.2f)", stats.WeightDistribution.Left, stats.WeightDistribution.Right, stats.Balance.SideBalance)},
		{"Front / Back", fmt.Sprintf("%d / %d kg (share %.2f)", stats.WeightDistribution.Front, stats.WeightDistribution.Back, stats.Balance.FrontBackBalance)},
		{"Weight Balance", balanceVerdict},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(80, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	y = drawTypeBreakdown(pdf, plan.Placed, y)

	// Unplaced pallets warning
	if len(plan.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Pallets", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, p := range plan.Unplaced {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- %s: %s %d x %d x %d mm, %d kg", p.ID, p.Type, p.Length, p.Width, p.Height, p.TotalWeight())
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	// Trailer parameters
	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Trailer", "", 0, "L", false, 0, "")
	y += 9

	spec := plan.Trailer
	trailerItems := []struct {
		label string
		value string
	}{
		{"Cargo Space", fmt.Sprintf("%d x %d x %d mm", spec.Length, spec.Width, spec.Height)},
		{"Max Load", fmt.Sprintf("%d kg", spec.MaxLoad)},
		{"Grid Resolution", fmt.Sprintf("%d mm", spec.Resolution)},
		{"Balance Window", fmt.Sprintf("side 0.50 \xb1 %.2f, front %.2f \xb1 %.2f", spec.Balance.Threshold, spec.Balance.FrontBackTarget, spec.Balance.Threshold)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range trailerItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(80, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	drawFooter(pdf)
}

// drawTypeBreakdown renders the per-type table and returns the y position
// below it.
func drawTypeBreakdown(pdf *fpdf.Fpdf, placed []*model.Pallet, y float64) float64 {
	type typeRow struct {
		name    string
		count   int
		stacked int
		weight  int
		area    int64
	}

	rows := make(map[string]*typeRow)
	var order []string
	for _, p := range placed {
		row, ok := rows[p.Type]
		if !ok {
			row = &typeRow{name: p.Type}
			rows[p.Type] = row
			order = append(order, p.Type)
		}
		row.count++
		if p.Position.Z > 0 {
			row.stacked++
		}
		row.weight += p.TotalWeight()
		row.area += p.FootprintArea()
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Load Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{45, 25, 25, 45, 45}
	headers := []string{"Type", "Count", "Stacked", "Total Weight", "Footprint"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, name := range order {
		row := rows[name]
		xPos = marginLeft
		rowData := []string{
			row.name,
			fmt.Sprintf("%d", row.count),
			fmt.Sprintf("%d", row.stacked),
			fmt.Sprintf("%d kg", row.weight),
			fmt.Sprintf("%.1f m\xb2", float64(row.area)/1e6),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	return y
}

// renderComparisonSummary draws the side-by-side scenario table.
func renderComparisonSummary(pdf *fpdf.Fpdf, results []engine.ComparisonResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Strategy Comparison", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	colWidths := []float64{15, 70, 30, 30, 30, 30, 35}
	headers := []string{"#", "Scenario", "Loaded", "Unplaced", "Space %", "Weight %", "Balanced"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, result := range results {
		balanced := "yes"
		if !result.BalanceValid {
			balanced = "no"
		}
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			result.Scenario.Name,
			fmt.Sprintf("%d", result.PlacedCount),
			fmt.Sprintf("%d", result.UnplacedCount),
			fmt.Sprintf("%.1f", result.Statistics.Efficiency.SpaceUtilization),
			fmt.Sprintf("%.1f", result.Statistics.Efficiency.WeightUtilization),
			balanced,
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	drawFooter(pdf)
}

// drawFooter renders the page footer.
func drawFooter(pdf *fpdf.Fpdf) {
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by PACKIT4.0 - Trailer Loading Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// resolveColors maps each pallet type to a fill color, preferring the
// catalog color carried on the pallet and cycling a fixed palette for the
// rest.
func resolveColors(pallets []*model.Pallet) map[string]palletColor {
	colors := make(map[string]palletColor)
	next := 0
	for _, p := range pallets {
		if _, ok := colors[p.Type]; ok {
			continue
		}
		if col, ok := parseRGBA(p.Color); ok {
			colors[p.Type] = col
		} else {
			colors[p.Type] = fallbackColors[next%len(fallbackColors)]
			next++
		}
	}
	return colors
}

// parseRGBA extracts the RGB channels from a CSS rgba() string as stored in
// the pallet catalog. The alpha channel is ignored.
func parseRGBA(s string) (palletColor, bool) {
	var col palletColor
	var alpha float64
	if _, err := fmt.Sscanf(s, "rgba(%d, %d, %d, %f)", &col.R, &col.G, &col.B, &alpha); err != nil {
		return palletColor{}, false
	}
	return col, true
}

// labelFontSize returns an appropriate font size based on the rectangle
// dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
