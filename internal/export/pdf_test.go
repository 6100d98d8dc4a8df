package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/adamsulik/PACKIT4.0/internal/engine"
	"github.com/adamsulik/PACKIT4.0/internal/model"
	"github.com/adamsulik/PACKIT4.0/internal/project"
)

// buildTestPlan creates a realistic loading plan for rendering tests.
func buildTestPlan() project.Plan {
	spec := model.DefaultTrailerSpec()

	eur := model.NewPallet("EUR", 1200, 800, 944, 25)
	eur.ID = "P-001"
	eur.CargoWeight = 400
	eur.Color = "rgba(31, 119, 180, 0.7)"
	eur.SetPosition(0, 0, 0)

	industrial := model.NewPallet("INDUSTRIAL", 1200, 1200, 800, 35)
	industrial.ID = "P-002"
	industrial.CargoWeight = 600
	industrial.Color = "rgba(44, 160, 44, 0.7)"
	industrial.SetPosition(1200, 0, 0)

	stacked := model.NewPallet("EUR", 1200, 800, 600, 25)
	stacked.ID = "P-003"
	stacked.CargoWeight = 150
	stacked.Color = "rgba(31, 119, 180, 0.7)"
	stacked.SetPosition(0, 0, 944)

	rotated := model.NewPallet("HALF_EUR", 800, 600, 500, 15)
	rotated.ID = "P-004"
	rotated.CargoWeight = 100
	rotated.Rotate()
	rotated.SetPosition(2400, 0, 0)

	unplaced := model.NewPallet("L10", 2400, 1200, 2000, 60)
	unplaced.ID = "P-900"
	unplaced.CargoWeight = 800

	placed := []*model.Pallet{eur, industrial, stacked, rotated}

	trailer := model.NewTrailer(spec)
	trailer.Restore(placed)
	stats := engine.Statistics{
		Strategy:           engine.KindAxisScan,
		Efficiency:         trailer.LoadingEfficiency(),
		WeightDistribution: trailer.WeightDistribution(),
		Balance:            trailer.BalanceValid(),
		PalletsLoaded:      len(placed),
	}

	return project.NewPlan(engine.KindAxisScan, spec, placed, []*model.Pallet{unplaced}, stats)
}

func TestWritePDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plan.pdf")

	err := WritePDF(path, buildTestPlan())
	if err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	// A layout page plus a summary page should be a reasonable size
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestWritePDF_EmptyPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pdf")

	plan := buildTestPlan()
	plan.Placed = nil

	if err := WritePDF(path, plan); err == nil {
		t.Fatal("expected error for a plan with no placed pallets, got nil")
	}
}

func TestWritePDF_NoUnplacedSection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "full.pdf")

	plan := buildTestPlan()
	plan.Unplaced = nil

	if err := WritePDF(path, plan); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
}

func TestWritePDF_ManyTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "many_types.pdf")

	// More uncolored types than the fallback palette holds, to exercise
	// color cycling and legend wrapping
	spec := model.DefaultTrailerSpec()
	placed := make([]*model.Pallet, 12)
	for i := range placed {
		p := model.NewPallet(fmt.Sprintf("CUSTOM-%d", i), 1000, 800, 500, 20)
		p.ID = fmt.Sprintf("P-%03d", i)
		p.CargoWeight = 100
		p.SetPosition((i%10)*1200, (i/10)*900, 0)
		placed[i] = p
	}

	plan := project.NewPlan(engine.KindXZone, spec, placed, nil, engine.Statistics{Strategy: engine.KindXZone})

	if err := WritePDF(path, plan); err != nil {
		t.Fatalf("WritePDF returned error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestWriteComparisonPDF_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "comparison.pdf")

	plan := buildTestPlan()
	results := []engine.ComparisonResult{
		{
			Scenario:     engine.Scenario{Name: "axis_scan", Kind: engine.KindAxisScan},
			Placed:       plan.Placed,
			PlacedCount:  len(plan.Placed),
			Statistics:   plan.Statistics,
			BalanceValid: plan.Statistics.Balance.Valid,
		},
		{
			Scenario:      engine.Scenario{Name: "z_layer", Kind: engine.KindZLayer},
			Placed:        plan.Placed[:2],
			PlacedCount:   2,
			UnplacedCount: 2,
			Statistics:    engine.Statistics{Strategy: engine.KindZLayer},
		},
	}

	err := WriteComparisonPDF(path, plan.Trailer, results)
	if err != nil {
		t.Fatalf("WriteComparisonPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	// Two scenario pages plus the comparison table
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestWriteComparisonPDF_NoScenarios(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.pdf")

	if err := WriteComparisonPDF(path, model.DefaultTrailerSpec(), nil); err == nil {
		t.Fatal("expected error for empty comparison, got nil")
	}
}

func TestParseRGBA(t *testing.T) {
	tests := []struct {
		input string
		want  palletColor
		ok    bool
	}{
		{"rgba(31, 119, 180, 0.7)", palletColor{31, 119, 180}, true},
		{"rgba(0, 0, 0, 1.0)", palletColor{0, 0, 0}, true},
		{"", palletColor{}, false},
		{"#ff0000", palletColor{}, false},
		{"rgba(banana)", palletColor{}, false},
	}

	for _, tt := range tests {
		got, ok := parseRGBA(tt.input)
		if ok != tt.ok {
			t.Errorf("parseRGBA(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("parseRGBA(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestResolveColors_FallbackCycles(t *testing.T) {
	pallets := make([]*model.Pallet, 10)
	for i := range pallets {
		pallets[i] = model.NewPallet(fmt.Sprintf("T%d", i), 800, 600, 500, 15)
	}

	colors := resolveColors(pallets)
	if len(colors) != 10 {
		t.Fatalf("expected 10 type colors, got %d", len(colors))
	}
	// The ninth uncolored type wraps around to the first palette entry
	if colors["T8"] != fallbackColors[0] {
		t.Errorf("expected palette wrap, got %+v", colors["T8"])
	}
	if colors["T0"] != fallbackColors[0] {
		t.Errorf("expected first palette entry, got %+v", colors["T0"])
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{30, 25, 7},
		{10, 15, 6},
	}
	for _, tt := range tests {
		got := labelFontSize(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
