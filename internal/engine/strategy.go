package engine

import (
	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// Kind identifies a loading strategy.
type Kind string

const (
	KindAxisScan Kind = "axis_scan" // first free cell, front to back
	KindXZone    Kind = "x_zone"    // weight spread across length zones
	KindYZone    Kind = "y_zone"    // width lanes, long loads aligned
	KindZLayer   Kind = "z_layer"   // height layers, heavy cargo low
)

// Strategy places pallets into a trailer. Place mutates the trailer and the
// pallets it manages to commit, returning those in loading order; pallets
// that fit nowhere are skipped and never appear in the result.
type Strategy interface {
	Kind() Kind
	Place(t *model.Trailer, pallets []*model.Pallet) []*model.Pallet
}

// Loader runs one strategy against one trailer. A loader is single-threaded;
// hosts that race several strategies give each its own Loader.
type Loader struct {
	strategy Strategy
	trailer  *model.Trailer
}

func NewLoader(strategy Strategy, spec model.TrailerSpec) *Loader {
	return &Loader{
		strategy: strategy,
		trailer:  model.NewTrailer(spec),
	}
}

// Run loads the given pallets and returns the placed ones. Inputs are deep
// copied with position and rotation cleared, so callers keep their data and
// a rerun starts from a clean slate. With reset the trailer is emptied
// first; without it the strategy loads into the remaining space.
func (l *Loader) Run(pallets []*model.Pallet, reset bool) []*model.Pallet {
	if reset {
		l.trailer.Reset()
	}
	work := make([]*model.Pallet, len(pallets))
	for i, p := range pallets {
		c := p.Clone()
		c.SetPosition(0, 0, 0)
		c.Rotation = 0
		work[i] = c
	}
	return l.strategy.Place(l.trailer, work)
}

// Trailer exposes the loading state for inspection and export.
func (l *Loader) Trailer() *model.Trailer {
	return l.trailer
}

// Statistics summarizes a finished run.
type Statistics struct {
	Strategy           Kind                     `json:"strategy"`
	Efficiency         model.Efficiency         `json:"efficiency"`
	WeightDistribution model.WeightDistribution `json:"weight_distribution"`
	Balance            model.BalanceReport      `json:"balance"`
	PalletsLoaded      int                      `json:"pallets_loaded"`
}

func (l *Loader) Statistics() Statistics {
	return Statistics{
		Strategy:           l.strategy.Kind(),
		Efficiency:         l.trailer.LoadingEfficiency(),
		WeightDistribution: l.trailer.WeightDistribution(),
		Balance:            l.trailer.BalanceValid(),
		PalletsLoaded:      len(l.trailer.Loaded()),
	}
}
