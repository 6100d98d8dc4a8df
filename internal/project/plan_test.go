package project

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/adamsulik/PACKIT4.0/internal/engine"
	"github.com/adamsulik/PACKIT4.0/internal/model"
)

func TestSaveAndLoadPlan(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plans", "tuesday.json")

	placed := model.NewPallet("EUR", 1200, 800, 144, 25)
	placed.ID = "p1"
	placed.SetPosition(0, 0, 0)
	unplaced := model.NewPallet("L10", 2400, 1200, 200, 60)
	unplaced.ID = "p2"

	plan := NewPlan(engine.KindAxisScan, model.DefaultTrailerSpec(),
		[]*model.Pallet{placed}, []*model.Pallet{unplaced},
		engine.Statistics{Strategy: engine.KindAxisScan, PalletsLoaded: 1})

	if err := SavePlan(path, plan); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	loaded, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}
	if loaded.Strategy != engine.KindAxisScan {
		t.Errorf("expected strategy axis_scan, got %s", loaded.Strategy)
	}
	if loaded.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %q", loaded.Version)
	}
	if loaded.CreatedAt == "" {
		t.Error("expected a creation timestamp")
	}
	if !reflect.DeepEqual(plan.Placed, loaded.Placed) {
		t.Errorf("placed mismatch: %+v vs %+v", plan.Placed, loaded.Placed)
	}
	if len(loaded.Unplaced) != 1 || loaded.Unplaced[0].ID != "p2" {
		t.Errorf("unexpected unplaced list: %+v", loaded.Unplaced)
	}
	if loaded.Statistics.PalletsLoaded != 1 {
		t.Errorf("expected 1 pallet in statistics, got %d", loaded.Statistics.PalletsLoaded)
	}
	if loaded.Trailer != model.DefaultTrailerSpec() {
		t.Errorf("trailer spec changed in roundtrip: %+v", loaded.Trailer)
	}
}

func TestLoadPlan_MissingFile(t *testing.T) {
	if _, err := LoadPlan(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing plan")
	}
}

func TestLoadPlan_MissingVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	if err := os.WriteFile(path, []byte(`{"strategy":"axis_scan"}`), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadPlan(path); err == nil {
		t.Error("expected error for plan without version field")
	}
}

func TestLoadPlan_RejectsInvalidPlacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.json")
	content := `{"version":"1.0.0","strategy":"axis_scan",` +
		`"placed":[{"id":"x","length":0,"width":800,"height":144,"rotation":0}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadPlan(path); err == nil {
		t.Error("expected error for zero-length placement")
	}
}
