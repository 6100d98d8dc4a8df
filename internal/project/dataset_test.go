package project

import (
	"reflect"
	"testing"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

func TestSampleSets_FiveSetsOfTwenty(t *testing.T) {
	sets := SampleSets(42)

	if len(sets) != 5 {
		t.Fatalf("expected 5 sample sets, got %d", len(sets))
	}
	for _, set := range sets {
		if set.Name == "" {
			t.Error("expected every set to carry a name")
		}
		if len(set.Pallets) != 20 {
			t.Errorf("set %q: expected 20 pallets, got %d", set.Name, len(set.Pallets))
		}
		for _, p := range set.Pallets {
			if err := p.Validate(); err != nil {
				t.Errorf("set %q: invalid pallet: %v", set.Name, err)
			}
		}
	}
}

func TestSampleSets_Reproducible(t *testing.T) {
	first := SampleSets(7)
	second := SampleSets(7)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical sets for the same seed")
	}
}

func TestSampleSets_SeedChangesCargo(t *testing.T) {
	first := SampleSets(1)
	second := SampleSets(2)

	same := true
	for i, p := range first[0].Pallets {
		if p.CargoWeight != second[0].Pallets[i].CargoWeight {
			same = false
			break
		}
	}
	if same {
		t.Error("expected different seeds to draw different cargo weights")
	}
}

func TestSampleSets_EvenMixCoversCatalog(t *testing.T) {
	sets := SampleSets(42)

	counts := map[string]int{}
	for _, p := range sets[0].Pallets {
		counts[p.Type]++
	}
	if len(counts) != len(model.PalletTypes) {
		t.Fatalf("expected all %d formats, got %v", len(model.PalletTypes), counts)
	}
	for name, n := range counts {
		if n != 4 {
			t.Errorf("format %s: expected 4 pallets, got %d", name, n)
		}
	}
}

func TestSampleSets_HeavyFormats(t *testing.T) {
	sets := SampleSets(42)

	for _, p := range sets[1].Pallets {
		if p.Type != "INDUSTRIAL" && p.Type != "EUR2" {
			t.Errorf("unexpected format %s in the heavy set", p.Type)
		}
		if p.CargoWeight < 600 || p.CargoWeight > 1200 {
			t.Errorf("cargo %d outside the heavy range", p.CargoWeight)
		}
	}
}

func TestSampleSets_LightFormats(t *testing.T) {
	sets := SampleSets(42)

	for _, p := range sets[2].Pallets {
		if p.Type != "HALF_EUR" && p.Type != "EUR" {
			t.Errorf("unexpected format %s in the light set", p.Type)
		}
		if p.CargoWeight < 50 || p.CargoWeight > 250 {
			t.Errorf("cargo %d outside the light range", p.CargoWeight)
		}
	}
}

func TestSampleSets_LoadingMeterOrder(t *testing.T) {
	sets := SampleSets(42)

	pallets := sets[4].Pallets
	for i := 1; i < len(pallets); i++ {
		if pallets[i].LoadingMeters() > pallets[i-1].LoadingMeters() {
			t.Fatalf("pallet %d takes more loading meters than its predecessor", i)
		}
	}
}

func TestGenerateTestPallets_BoundsAndIdentity(t *testing.T) {
	pallets := GenerateTestPallets(50, 7)

	if len(pallets) != 50 {
		t.Fatalf("expected 50 pallets, got %d", len(pallets))
	}
	seen := map[string]bool{}
	for _, p := range pallets {
		if p.CargoWeight < 50 || p.CargoWeight > 1000 {
			t.Errorf("cargo %d outside [50, 1000]", p.CargoWeight)
		}
		if _, ok := model.GetPalletType(p.Type); !ok {
			t.Errorf("unknown format %s", p.Type)
		}
		if seen[p.ID] {
			t.Errorf("duplicate id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestGenerateTestPallets_Reproducible(t *testing.T) {
	first := GenerateTestPallets(10, 3)
	second := GenerateTestPallets(10, 3)

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical pallets for the same seed")
	}
}

func TestGenerateTestPallets_Empty(t *testing.T) {
	if got := GenerateTestPallets(0, 1); len(got) != 0 {
		t.Errorf("expected no pallets, got %d", len(got))
	}
}
