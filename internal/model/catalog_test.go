package model

import (
	"math"
	"testing"
)

func TestGetPalletType(t *testing.T) {
	pt, ok := GetPalletType("EUR")
	if !ok {
		t.Fatal("EUR should be a built-in format")
	}
	if pt.Length != 1200 || pt.Width != 800 || pt.Height != 144 {
		t.Errorf("EUR dimensions wrong: %dx%dx%d", pt.Length, pt.Width, pt.Height)
	}
	if pt.TareWeight != 25 {
		t.Errorf("EUR tare weight wrong: %d", pt.TareWeight)
	}

	if _, ok := GetPalletType("L99"); ok {
		t.Error("unknown format should not resolve")
	}
}

func TestPalletTypeNames(t *testing.T) {
	names := PalletTypeNames()
	if len(names) != len(PalletTypes) {
		t.Fatalf("expected %d names, got %d", len(PalletTypes), len(names))
	}
	if names[0] != "EUR" {
		t.Errorf("catalog order changed, first name %q", names[0])
	}
	found := map[string]bool{}
	for _, n := range names {
		found[n] = true
	}
	for _, want := range []string{"EUR", "EUR2", "INDUSTRIAL", "HALF_EUR", "L10"} {
		if !found[want] {
			t.Errorf("missing built-in format %s", want)
		}
	}
}

func TestNewPalletOfType(t *testing.T) {
	p, err := NewPalletOfType("HALF_EUR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Length != 800 || p.Width != 600 || p.Height != 144 {
		t.Errorf("HALF_EUR dimensions wrong: %dx%dx%d", p.Length, p.Width, p.Height)
	}
	if p.TareWeight != 15 {
		t.Errorf("HALF_EUR tare wrong: %d", p.TareWeight)
	}
	if p.Color == "" {
		t.Error("catalog pallets should carry the format color")
	}

	if _, err := NewPalletOfType("NOPE"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestPalletTypeLoadingMeters(t *testing.T) {
	eur, _ := GetPalletType("EUR")
	if math.Abs(eur.LoadingMeters()-0.4) > 1e-9 {
		t.Errorf("EUR should be 0.4 ldm, got %f", eur.LoadingMeters())
	}
	l10, _ := GetPalletType("L10")
	if math.Abs(l10.LoadingMeters()-1.2) > 1e-9 {
		t.Errorf("L10 should be 1.2 ldm, got %f", l10.LoadingMeters())
	}
}
