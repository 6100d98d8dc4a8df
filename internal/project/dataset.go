package project

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// SampleSet is a named, ready-to-load cargo manifest.
type SampleSet struct {
	Name    string          `json:"name"`
	Pallets []*model.Pallet `json:"pallets"`
}

const sampleSetSize = 20

// SampleSets builds the five built-in demo manifests, 20 pallets each. The
// same seed always yields the same sets.
func SampleSets(seed int64) []SampleSet {
	rng := rand.New(rand.NewSource(seed))
	return []SampleSet{
		{Name: "Even mix", Pallets: evenMix(rng)},
		{Name: "Heavy formats", Pallets: heavyMix(rng)},
		{Name: "Light formats", Pallets: lightMix(rng)},
		{Name: "Random mix", Pallets: randomMix(rng)},
		{Name: "By loading meters", Pallets: loadingMeterMix(rng)},
	}
}

// GenerateTestPallets builds n pallets of random catalog formats with cargo
// between 50 and 1000 kg, 80% stackable and 30% fragile. Deterministic per
// seed.
func GenerateTestPallets(n int, seed int64) []*model.Pallet {
	rng := rand.New(rand.NewSource(seed))
	pallets := make([]*model.Pallet, 0, n)
	for i := 0; i < n; i++ {
		pt := model.PalletTypes[rng.Intn(len(model.PalletTypes))]
		p := samplePallet(pt, fmt.Sprintf("TEST-%03d", i+1), 50+rng.Intn(951))
		p.Stackable = rng.Float64() < 0.8
		p.Fragile = rng.Float64() < 0.3
		pallets = append(pallets, p)
	}
	return pallets
}

// samplePallet builds one pallet of a catalog format with a fixed id, so
// generated sets stay reproducible.
func samplePallet(pt model.PalletType, id string, cargo int) *model.Pallet {
	p := model.NewPallet(pt.Name, pt.Length, pt.Width, pt.Height, pt.TareWeight)
	p.ID = id
	p.Color = pt.Color
	p.CargoWeight = cargo
	return p
}

// evenMix cycles through the whole catalog with mid-range cargo weights.
func evenMix(rng *rand.Rand) []*model.Pallet {
	pallets := make([]*model.Pallet, 0, sampleSetSize)
	for i := 0; i < sampleSetSize; i++ {
		pt := model.PalletTypes[i%len(model.PalletTypes)]
		pallets = append(pallets, samplePallet(pt, fmt.Sprintf("MIX-%02d", i+1), 100+rng.Intn(401)))
	}
	return pallets
}

// heavyMix alternates the two big formats with heavy cargo, 30% fragile.
func heavyMix(rng *rand.Rand) []*model.Pallet {
	types := pickTypes("INDUSTRIAL", "EUR2")
	pallets := make([]*model.Pallet, 0, sampleSetSize)
	for i := 0; i < sampleSetSize; i++ {
		p := samplePallet(types[i%len(types)], fmt.Sprintf("HVY-%02d", i+1), 600+rng.Intn(601))
		p.Fragile = rng.Float64() < 0.3
		pallets = append(pallets, p)
	}
	return pallets
}

// lightMix alternates the two small formats with light cargo, 20% fragile.
func lightMix(rng *rand.Rand) []*model.Pallet {
	types := pickTypes("HALF_EUR", "EUR")
	pallets := make([]*model.Pallet, 0, sampleSetSize)
	for i := 0; i < sampleSetSize; i++ {
		p := samplePallet(types[i%len(types)], fmt.Sprintf("LGT-%02d", i+1), 50+rng.Intn(201))
		p.Fragile = rng.Float64() < 0.2
		pallets = append(pallets, p)
	}
	return pallets
}

// randomMix draws format and cargo freely, 25% fragile.
func randomMix(rng *rand.Rand) []*model.Pallet {
	pallets := make([]*model.Pallet, 0, sampleSetSize)
	for i := 0; i < sampleSetSize; i++ {
		pt := model.PalletTypes[rng.Intn(len(model.PalletTypes))]
		p := samplePallet(pt, fmt.Sprintf("RND-%02d", i+1), 50+rng.Intn(951))
		p.Fragile = rng.Float64() < 0.25
		pallets = append(pallets, p)
	}
	return pallets
}

// loadingMeterMix draws random formats and orders them by the trailer meters
// they take, longest first.
func loadingMeterMix(rng *rand.Rand) []*model.Pallet {
	pallets := make([]*model.Pallet, 0, sampleSetSize)
	for i := 0; i < sampleSetSize; i++ {
		pt := model.PalletTypes[rng.Intn(len(model.PalletTypes))]
		pallets = append(pallets, samplePallet(pt, fmt.Sprintf("LDM-%02d", i+1), 100+rng.Intn(801)))
	}
	sort.SliceStable(pallets, func(i, j int) bool {
		return pallets[i].LoadingMeters() > pallets[j].LoadingMeters()
	})
	return pallets
}

// pickTypes resolves catalog entries by name, skipping unknown names.
func pickTypes(names ...string) []model.PalletType {
	var types []model.PalletType
	for _, name := range names {
		if pt, ok := model.GetPalletType(name); ok {
			types = append(types, pt)
		}
	}
	return types
}
