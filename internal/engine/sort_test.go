package engine

import (
	"testing"

	"github.com/adamsulik/PACKIT4.0/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortByWeight(t *testing.T) {
	light := buildPallet("light", 800, 600, 400, 100)
	heavy := buildPallet("heavy", 800, 600, 400, 500)
	mid := buildPallet("mid", 800, 600, 400, 300)

	pallets := []*model.Pallet{light, heavy, mid}
	SortByWeight(pallets, true)
	assert.Equal(t, []string{"heavy", "mid", "light"}, ids(pallets))

	SortByWeight(pallets, false)
	assert.Equal(t, []string{"light", "mid", "heavy"}, ids(pallets))
}

func TestSortByVolume(t *testing.T) {
	small := buildPallet("small", 400, 400, 400, 100)
	big := buildPallet("big", 1200, 800, 600, 100)

	pallets := []*model.Pallet{small, big}
	SortByVolume(pallets, true)
	assert.Equal(t, []string{"big", "small"}, ids(pallets))
}

func TestSortByFootprint(t *testing.T) {
	// Tall but narrow vs flat but wide: footprint ignores height.
	tall := buildPallet("tall", 400, 400, 2000, 100)
	wide := buildPallet("wide", 1200, 1000, 100, 100)

	pallets := []*model.Pallet{tall, wide}
	SortByFootprint(pallets, true)
	assert.Equal(t, []string{"wide", "tall"}, ids(pallets))
}

func TestSortsAreStable(t *testing.T) {
	a := buildPallet("a", 800, 600, 400, 100)
	b := buildPallet("b", 800, 600, 400, 100)
	c := buildPallet("c", 800, 600, 400, 100)

	pallets := []*model.Pallet{a, b, c}
	SortByWeight(pallets, true)
	assert.Equal(t, []string{"a", "b", "c"}, ids(pallets), "equal weights must keep manifest order")

	SortByVolume(pallets, false)
	assert.Equal(t, []string{"a", "b", "c"}, ids(pallets), "equal volumes must keep manifest order")
}

func TestRotateIfBetter_KeepsStrictImprovement(t *testing.T) {
	spec := model.TrailerSpec{Length: 500, Width: 300, Height: 300, MaxLoad: 1000, Resolution: 100}
	tr := model.NewTrailer(spec)

	// 100x300 has 5 drop positions; turned to 300x100 it has 9.
	p := buildPallet("p", 100, 300, 100, 10)
	require.Len(t, tr.AvailablePositions(p), 5)

	rotated := RotateIfBetter(tr, p)
	assert.True(t, rotated)
	assert.Equal(t, 90, p.Rotation)
	assert.Len(t, tr.AvailablePositions(p), 9)
}

func TestRotateIfBetter_RestoresWhenNotBetter(t *testing.T) {
	spec := model.TrailerSpec{Length: 500, Width: 300, Height: 300, MaxLoad: 1000, Resolution: 100}
	tr := model.NewTrailer(spec)

	// 300x100 already has the better orientation.
	worse := buildPallet("worse", 300, 100, 100, 10)
	assert.False(t, RotateIfBetter(tr, worse))
	assert.Equal(t, 0, worse.Rotation, "losing probe must restore the rotation")

	// A square gains nothing from turning; equal counts stay put.
	square := buildPallet("square", 200, 200, 100, 10)
	assert.False(t, RotateIfBetter(tr, square))
	assert.Equal(t, 0, square.Rotation)
}
