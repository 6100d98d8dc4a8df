package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// LabelInfo holds the data encoded into each pallet label's QR code.
type LabelInfo struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Length   int    `json:"length_mm"`
	Width    int    `json:"width_mm"`
	Height   int    `json:"height_mm"`
	Weight   int    `json:"weight_kg"`
	X        int    `json:"x_mm"`
	Y        int    `json:"y_mm"`
	Z        int    `json:"z_mm"`
	Rotation int    `json:"rotation_deg"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows
// per page). Each label cell is approximately 66.7mm x 25.4mm on US Letter
// paper.
const (
	labelPageWidth  = 215.9 // US Letter width in mm
	labelPageHeight = 279.4 // US Letter height in mm
	labelMarginTop  = 12.7  // mm
	labelMarginLeft = 4.8   // mm
	labelWidth      = 66.7  // mm per label
	labelHeight     = 25.4  // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// WriteLabels generates a PDF of QR-coded labels for the given pallets.
// Each label carries the pallet ID, format, dimensions and loading position,
// plus a QR code encoding the same data as JSON. Labels are laid out on a
// standard label sheet format (Avery 5160 / 3 columns x 10 rows on US
// Letter).
func WriteLabels(path string, pallets []*model.Pallet) error {
	if len(pallets) == 0 {
		return fmt.Errorf("no pallets to generate labels for")
	}

	labels := CollectLabelInfos(pallets)

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		// Add new page when needed
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.ID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Draw light border for cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	// Generate QR code PNG bytes
	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Register QR image with a unique name
	imgName := fmt.Sprintf("qr_%s_%d_%d_%d", info.ID, info.X, info.Y, info.Z)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	// Place QR code on the right side of the label
	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Text area (left side of label)
	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	// Pallet ID (bold, larger)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	// Truncate ID if too long
	id := info.ID
	if pdf.GetStringWidth(id) > textW {
		for len(id) > 0 && pdf.GetStringWidth(id+"...") > textW {
			id = id[:len(id)-1]
		}
		id += "..."
	}
	pdf.CellFormat(textW, 4.5, id, "", 1, "L", false, 0, "")

	// Format and dimensions
	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%s %dx%dx%d mm", info.Type, info.Length, info.Width, info.Height)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	// Weight and loading position
	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	posInfo := fmt.Sprintf("%d kg @ (%d, %d, %d)", info.Weight, info.X, info.Y, info.Z)
	pdf.CellFormat(textW, 3, posInfo, "", 1, "L", false, 0, "")

	// Rotation indicator
	if info.Rotation == 90 {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	// Reset text color
	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos extracts label payloads from a pallet list for use in
// testing or alternative export formats. Dimensions are the physical pallet
// dimensions; the rotation field tells the scanner how the pallet sits in
// the trailer.
func CollectLabelInfos(pallets []*model.Pallet) []LabelInfo {
	labels := make([]LabelInfo, 0, len(pallets))
	for _, p := range pallets {
		labels = append(labels, LabelInfo{
			ID:       p.ID,
			Type:     p.Type,
			Length:   p.Length,
			Width:    p.Width,
			Height:   p.Height,
			Weight:   p.TotalWeight(),
			X:        p.Position.X,
			Y:        p.Position.Y,
			Z:        p.Position.Z,
			Rotation: p.Rotation,
		})
	}
	return labels
}
