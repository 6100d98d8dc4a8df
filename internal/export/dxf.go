package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// Layer names for the DXF floor plan.
const (
	layerTrailer = "TRAILER"
	layerPallets = "PALLETS"
	layerStacked = "STACKED"
)

// WriteDXF exports the trailer floor plan as a DXF drawing in millimeters.
// The trailer outline, floor-level pallet footprints and stacked pallet
// footprints land on separate layers so CAD tools can toggle them
// independently. Everything is drawn as LINE entities in the x/y plane.
func WriteDXF(path string, trailer *model.Trailer) error {
	d := dxf.NewDrawing()

	if _, err := d.AddLayer(layerTrailer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add trailer layer: %w", err)
	}
	spec := trailer.Spec
	if err := drawRect(d, 0, 0, float64(spec.Length), float64(spec.Width)); err != nil {
		return fmt.Errorf("failed to draw trailer outline: %w", err)
	}

	if _, err := d.AddLayer(layerPallets, color.Green, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add pallet layer: %w", err)
	}
	for _, p := range trailer.Loaded() {
		if p.Position.Z > 0 {
			continue
		}
		if err := drawPalletFootprint(d, p); err != nil {
			return fmt.Errorf("failed to draw pallet %s: %w", p.ID, err)
		}
	}

	// Stacked pallets use a hidden linetype, the CAD convention for
	// geometry above the section plane.
	if _, err := d.AddLayer(layerStacked, color.Red, table.LT_HIDDEN, true); err != nil {
		return fmt.Errorf("failed to add stacked layer: %w", err)
	}
	for _, p := range trailer.Loaded() {
		if p.Position.Z == 0 {
			continue
		}
		if err := drawPalletFootprint(d, p); err != nil {
			return fmt.Errorf("failed to draw stacked pallet %s: %w", p.ID, err)
		}
	}

	return d.SaveAs(path)
}

// drawPalletFootprint draws the rotated footprint rectangle of one pallet.
func drawPalletFootprint(d *drawing.Drawing, p *model.Pallet) error {
	return drawRect(d,
		float64(p.Position.X), float64(p.Position.Y),
		float64(p.PlacedLength()), float64(p.PlacedWidth()))
}

// drawRect adds an axis-aligned rectangle as four LINE entities on the
// current layer.
func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	corners := [4][2]float64{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	for i := range corners {
		next := corners[(i+1)%4]
		if _, err := d.Line(corners[i][0], corners[i][1], 0, next[0], next[1], 0); err != nil {
			return err
		}
	}
	return nil
}
