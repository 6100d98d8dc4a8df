package engine

import (
	"fmt"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// Scenario defines a named strategy configuration to compare.
type Scenario struct {
	Name    string
	Kind    Kind
	Options Options
}

// ComparisonResult holds the placement outcome and statistics for a single
// scenario.
type ComparisonResult struct {
	Scenario      Scenario
	Placed        []*model.Pallet
	PlacedCount   int
	UnplacedCount int
	Statistics    Statistics
	BalanceValid  bool
}

// CompareScenarios runs every scenario on a fresh trailer over the same
// manifest and returns the outcomes in scenario order, for side-by-side
// comparison of strategies and their knobs.
func CompareScenarios(scenarios []Scenario, spec model.TrailerSpec, pallets []*model.Pallet) ([]ComparisonResult, error) {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		strategy, err := New(scenario.Kind, scenario.Options)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
		}
		loader := NewLoader(strategy, spec)
		placed := loader.Run(pallets, true)
		stats := loader.Statistics()

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Placed:        placed,
			PlacedCount:   len(placed),
			UnplacedCount: len(pallets) - len(placed),
			Statistics:    stats,
			BalanceValid:  stats.Balance.Valid,
		})
	}

	return results, nil
}

// Unplaced returns copies of the manifest pallets missing from the placed
// result, in manifest order.
func Unplaced(manifest, placed []*model.Pallet) []*model.Pallet {
	loaded := make(map[string]bool, len(placed))
	for _, p := range placed {
		loaded[p.ID] = true
	}
	var rest []*model.Pallet
	for _, p := range manifest {
		if !loaded[p.ID] {
			rest = append(rest, p.Clone())
		}
	}
	return rest
}

// BuildDefaultScenarios generates one scenario per strategy with default
// options, plus a back-loaded axis scan as a what-if alternative.
func BuildDefaultScenarios() []Scenario {
	scenarios := make([]Scenario, 0, len(Kinds())+1)
	for _, k := range Kinds() {
		scenarios = append(scenarios, Scenario{Name: string(k), Kind: k})
	}
	scenarios = append(scenarios, Scenario{
		Name:    "axis_scan from back",
		Kind:    KindAxisScan,
		Options: Options{Start: StartBack},
	})
	return scenarios
}
