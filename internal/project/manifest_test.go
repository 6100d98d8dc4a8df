package project

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

func TestSaveAndLoadPallets(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")

	a := model.NewPallet("EUR", 1200, 800, 144, 25)
	a.ID = "a"
	a.CargoWeight = 300
	a.SetPosition(100, 200, 0)
	b := model.NewPallet("EUR2", 1200, 1000, 144, 30)
	b.ID = "b"
	b.Rotate()
	pallets := []*model.Pallet{a, b}

	if err := SavePallets(path, pallets); err != nil {
		t.Fatalf("SavePallets failed: %v", err)
	}

	loaded, err := LoadPallets(path)
	if err != nil {
		t.Fatalf("LoadPallets failed: %v", err)
	}
	if !reflect.DeepEqual(pallets, loaded) {
		t.Errorf("roundtrip mismatch:\nsaved  %+v\nloaded %+v", pallets[0], loaded[0])
	}
	if loaded[1].Rotation != 90 {
		t.Errorf("expected rotation 90 to survive, got %d", loaded[1].Rotation)
	}
}

func TestSavePallets_CreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "manifest.json")

	if err := SavePallets(path, nil); err != nil {
		t.Fatalf("SavePallets failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %v", err)
	}
}

func TestLoadPallets_MissingFile(t *testing.T) {
	_, err := LoadPallets(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Error("expected error for missing manifest")
	}
}

func TestLoadPallets_BadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadPallets(path); err == nil {
		t.Error("expected error for malformed manifest")
	}
}

func TestLoadPallets_RejectsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	content := `[{"id":"x","type":"EUR","length":1200,"width":800,"height":144,` +
		`"tare_weight":25,"cargo_weight":0,"stackable":true,"fragile":false,` +
		`"position":{"x":0,"y":0,"z":0},"rotation":45}]`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadPallets(path); err == nil {
		t.Error("expected error for rotation outside 0/90")
	}
}

func TestLoadPallets_EmptyArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	pallets, err := LoadPallets(path)
	if err != nil {
		t.Fatalf("LoadPallets failed: %v", err)
	}
	if pallets == nil || len(pallets) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", pallets)
	}
}
