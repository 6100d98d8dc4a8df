package engine

import (
	"errors"
	"testing"

	"github.com/adamsulik/PACKIT4.0/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareScenarios_RunsEveryScenarioOnAFreshTrailer(t *testing.T) {
	pallets := []*model.Pallet{
		buildPallet("a", 1200, 800, 144, 300),
		buildPallet("b", 1200, 800, 144, 200),
	}

	results, err := CompareScenarios(BuildDefaultScenarios(), model.DefaultTrailerSpec(), pallets)
	require.NoError(t, err)
	require.Len(t, results, len(BuildDefaultScenarios()))

	for _, r := range results {
		assert.Equal(t, 2, r.PlacedCount, "scenario %s", r.Scenario.Name)
		assert.Equal(t, 0, r.UnplacedCount, "scenario %s", r.Scenario.Name)
		assert.Equal(t, r.Scenario.Kind, r.Statistics.Strategy)
		assert.Equal(t, 2, r.Statistics.PalletsLoaded)
		assert.Equal(t, r.Statistics.Balance.Valid, r.BalanceValid)
	}
}

func TestCompareScenarios_CountsAddUp(t *testing.T) {
	// The second pallet never fits the cube without stacking.
	pallets := []*model.Pallet{
		buildPallet("floor", 1000, 1000, 500, 100),
		buildPallet("top", 1000, 1000, 500, 100),
	}
	scenarios := []Scenario{
		{Name: "flat", Kind: KindAxisScan},
		{Name: "stacked", Kind: KindAxisScan, Options: Options{AllowStacking: boolPtr(true)}},
	}

	results, err := CompareScenarios(scenarios, smallSpec(), pallets)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, 1, results[0].PlacedCount)
	assert.Equal(t, 1, results[0].UnplacedCount)
	assert.Equal(t, 2, results[1].PlacedCount)
	assert.Equal(t, 0, results[1].UnplacedCount)
}

func TestCompareScenarios_InputStaysUntouched(t *testing.T) {
	p := buildPallet("a", 1200, 800, 144, 300)
	p.SetPosition(5000, 1000, 0)

	_, err := CompareScenarios(BuildDefaultScenarios(), model.DefaultTrailerSpec(), []*model.Pallet{p})
	require.NoError(t, err)

	assert.Equal(t, model.Position{X: 5000, Y: 1000, Z: 0}, p.Position,
		"scenarios must work on copies of the manifest")
}

func TestCompareScenarios_UnknownKindFails(t *testing.T) {
	scenarios := []Scenario{{Name: "broken", Kind: Kind("bogus")}}

	results, err := CompareScenarios(scenarios, model.DefaultTrailerSpec(), nil)
	assert.Nil(t, results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	var unknown *UnknownStrategyError
	assert.True(t, errors.As(err, &unknown))
}

func TestUnplaced_KeepsManifestOrderAndCopies(t *testing.T) {
	a := buildPallet("a", 1200, 800, 144, 300)
	b := buildPallet("b", 1200, 800, 144, 200)
	c := buildPallet("c", 1200, 800, 144, 100)

	missing := Unplaced([]*model.Pallet{a, b, c}, []*model.Pallet{b})
	require.Len(t, missing, 2)
	assert.Equal(t, "a", missing[0].ID)
	assert.Equal(t, "c", missing[1].ID)

	missing[0].SetPosition(5000, 0, 0)
	assert.Equal(t, model.Position{}, a.Position, "callers get copies, not the manifest pallets")
}

func TestUnplaced_EverythingPlaced(t *testing.T) {
	a := buildPallet("a", 1200, 800, 144, 300)
	b := buildPallet("b", 1200, 800, 144, 200)

	assert.Empty(t, Unplaced([]*model.Pallet{a, b}, []*model.Pallet{b, a}))
}

func TestBuildDefaultScenarios_OnePerKindPlusBackScan(t *testing.T) {
	scenarios := BuildDefaultScenarios()
	require.Len(t, scenarios, len(Kinds())+1)

	for i, k := range Kinds() {
		assert.Equal(t, string(k), scenarios[i].Name)
		assert.Equal(t, k, scenarios[i].Kind)
	}
	last := scenarios[len(scenarios)-1]
	assert.Equal(t, KindAxisScan, last.Kind)
	assert.Equal(t, StartBack, last.Options.Start)
}

func boolPtr(b bool) *bool { return &b }
