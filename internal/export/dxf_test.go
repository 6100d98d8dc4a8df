package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

func buildDXFTrailer() *model.Trailer {
	spec := model.TrailerSpec{
		Length:     3000,
		Width:      1000,
		Height:     1000,
		MaxLoad:    24000,
		Resolution: 100,
		Balance:    model.BalanceSpec{Threshold: 0.1, FrontBackTarget: 0.6},
	}
	trailer := model.NewTrailer(spec)

	base := model.NewPallet("EUR", 1200, 800, 400, 25)
	base.ID = "floor-1"
	base.SetPosition(0, 0, 0)

	top := model.NewPallet("HALF_EUR", 800, 600, 300, 15)
	top.ID = "stack-1"
	top.SetPosition(0, 0, 400)

	trailer.Restore([]*model.Pallet{base, top})
	return trailer
}

func TestWriteDXF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.dxf")

	err := WriteDXF(path, buildDXFTrailer())
	if err != nil {
		t.Fatalf("WriteDXF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}
	content := string(data)

	for _, layer := range []string{layerTrailer, layerPallets, layerStacked} {
		if !strings.Contains(content, layer) {
			t.Errorf("expected layer %s in drawing", layer)
		}
	}

	// Outline, one floor footprint and one stacked footprint: 4 lines each
	if n := strings.Count(content, "LINE"); n < 12 {
		t.Errorf("expected at least 12 LINE entities, found %d", n)
	}
}

func TestWriteDXF_EmptyTrailer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.dxf")

	trailer := model.NewTrailer(model.DefaultTrailerSpec())
	if err := WriteDXF(path, trailer); err != nil {
		t.Fatalf("WriteDXF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}

	// The outline alone still makes a valid drawing
	if !strings.Contains(string(data), layerTrailer) {
		t.Error("expected trailer outline layer in drawing")
	}
}

func TestWriteDXF_FootprintUsesRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rotated.dxf")

	trailer := model.NewTrailer(model.DefaultTrailerSpec())
	p := model.NewPallet("EUR", 1200, 800, 944, 25)
	p.ID = "rot-1"
	p.Rotate()
	p.SetPosition(0, 0, 0)
	trailer.Restore([]*model.Pallet{p})

	if err := WriteDXF(path, trailer); err != nil {
		t.Fatalf("WriteDXF returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("DXF file was not created: %v", err)
	}

	// The rotated footprint reaches x=800, y=1200
	content := string(data)
	if !strings.Contains(content, "800") || !strings.Contains(content, "1200") {
		t.Error("expected rotated footprint coordinates in drawing")
	}
}
