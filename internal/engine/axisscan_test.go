package engine

import (
	"testing"

	"github.com/adamsulik/PACKIT4.0/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxisScan_FillsFromTheFront(t *testing.T) {
	loader := NewLoader(NewAxisScan(DefaultAxisScanConfig()), model.DefaultTrailerSpec())

	placed := loader.Run([]*model.Pallet{
		buildPallet("a", 1200, 800, 144, 100),
		buildPallet("b", 1200, 800, 144, 100),
	}, true)

	require.Len(t, placed, 2)
	assert.Equal(t, model.Position{X: 0, Y: 0, Z: 0}, placed[0].Position)
	assert.Equal(t, model.Position{X: 0, Y: 800, Z: 0}, placed[1].Position,
		"second pallet should slot beside the first before advancing along x")
}

func TestAxisScan_FillsFromTheBack(t *testing.T) {
	cfg := DefaultAxisScanConfig()
	cfg.Start = StartBack
	loader := NewLoader(NewAxisScan(cfg), model.DefaultTrailerSpec())

	placed := loader.Run([]*model.Pallet{buildPallet("a", 1200, 800, 144, 100)}, true)

	require.Len(t, placed, 1)
	assert.Equal(t, model.Position{X: 12400, Y: 0, Z: 0}, placed[0].Position,
		"back start should put the first pallet against the rear wall")
}

func TestAxisScan_HeaviestFirstByDefault(t *testing.T) {
	loader := NewLoader(NewAxisScan(DefaultAxisScanConfig()), model.DefaultTrailerSpec())

	placed := loader.Run([]*model.Pallet{
		buildPallet("light", 1200, 800, 144, 100),
		buildPallet("heavy", 1200, 800, 144, 900),
	}, true)

	require.Len(t, placed, 2)
	assert.Equal(t, "heavy", placed[0].ID, "the heavy pallet should load first")
	assert.Equal(t, model.Position{X: 0, Y: 0, Z: 0}, placed[0].Position)
}

func TestAxisScan_SortByVolume(t *testing.T) {
	cfg := DefaultAxisScanConfig()
	cfg.SortBy = SortVolume
	loader := NewLoader(NewAxisScan(cfg), model.DefaultTrailerSpec())

	placed := loader.Run([]*model.Pallet{
		buildPallet("small-heavy", 800, 600, 144, 900),
		buildPallet("big-light", 1200, 1000, 1000, 100),
	}, true)

	require.Len(t, placed, 2)
	assert.Equal(t, "big-light", placed[0].ID, "volume order should beat weight order")
}

func TestAxisScan_StackingDisabledByDefault(t *testing.T) {
	loader := NewLoader(NewAxisScan(DefaultAxisScanConfig()), smallSpec())

	placed := loader.Run([]*model.Pallet{
		buildPallet("floor", 1000, 1000, 500, 100),
		buildPallet("top", 1000, 1000, 500, 100),
	}, true)

	require.Len(t, placed, 1, "without stacking the second pallet has no floor cell")
	assert.Equal(t, "floor", placed[0].ID)
}

func TestAxisScan_StackingEnabled(t *testing.T) {
	cfg := DefaultAxisScanConfig()
	cfg.AllowStacking = true
	loader := NewLoader(NewAxisScan(cfg), smallSpec())

	placed := loader.Run([]*model.Pallet{
		buildPallet("floor", 1000, 1000, 500, 100),
		buildPallet("top", 1000, 1000, 500, 100),
	}, true)

	require.Len(t, placed, 2)
	assert.Equal(t, 500, placed[1].Position.Z, "second pallet should rest on the first")
}

func TestAxisScan_RotatesToFit(t *testing.T) {
	spec := smallSpec()
	spec.Width = 500
	loader := NewLoader(NewAxisScan(DefaultAxisScanConfig()), spec)

	// 400x600 is too wide for the 500 mm trailer; turned it fits.
	placed := loader.Run([]*model.Pallet{buildPallet("p", 400, 600, 300, 100)}, true)

	require.Len(t, placed, 1)
	assert.Equal(t, 90, placed[0].Rotation)
	assert.Equal(t, model.Position{X: 0, Y: 0, Z: 0}, placed[0].Position)
}

func TestAxisScan_SkipsWhatNeverFits(t *testing.T) {
	loader := NewLoader(NewAxisScan(DefaultAxisScanConfig()), smallSpec())

	placed := loader.Run([]*model.Pallet{
		buildPallet("oversized", 1200, 1200, 300, 100),
		buildPallet("fits", 400, 400, 300, 100),
	}, true)

	require.Len(t, placed, 1, "the oversized pallet is skipped, the rest still loads")
	assert.Equal(t, "fits", placed[0].ID)
	assert.Len(t, loader.Trailer().Loaded(), 1)
}

func TestAxisScan_SkipsOnCapacity(t *testing.T) {
	spec := smallSpec()
	spec.MaxLoad = 1000
	loader := NewLoader(NewAxisScan(DefaultAxisScanConfig()), spec)

	placed := loader.Run([]*model.Pallet{
		buildPallet("a", 400, 400, 300, 600),
		buildPallet("b", 400, 400, 300, 600),
	}, true)

	require.Len(t, placed, 1, "second pallet would exceed the weight limit")
	assert.Equal(t, 600, loader.Trailer().CurrentLoad())
}
