package engine

import (
	"sort"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// SortOrder selects how a strategy orders pallets before placing them.
type SortOrder string

const (
	SortWeight SortOrder = "weight" // heaviest first
	SortVolume SortOrder = "volume" // bulkiest first
)

// SortByVolume orders pallets by box volume, largest first unless descending
// is false. The sort is stable so equal pallets keep their manifest order.
func SortByVolume(pallets []*model.Pallet, descending bool) {
	sort.SliceStable(pallets, func(i, j int) bool {
		if descending {
			return pallets[i].Volume() > pallets[j].Volume()
		}
		return pallets[i].Volume() < pallets[j].Volume()
	})
}

// SortByWeight orders pallets by total weight, heaviest first unless
// descending is false.
func SortByWeight(pallets []*model.Pallet, descending bool) {
	sort.SliceStable(pallets, func(i, j int) bool {
		if descending {
			return pallets[i].TotalWeight() > pallets[j].TotalWeight()
		}
		return pallets[i].TotalWeight() < pallets[j].TotalWeight()
	})
}

// SortByFootprint orders pallets by floor area, largest first unless
// descending is false.
func SortByFootprint(pallets []*model.Pallet, descending bool) {
	sort.SliceStable(pallets, func(i, j int) bool {
		if descending {
			return pallets[i].FootprintArea() > pallets[j].FootprintArea()
		}
		return pallets[i].FootprintArea() < pallets[j].FootprintArea()
	})
}

// RotateIfBetter probes the pallet's other orientation and keeps it only
// when it strictly increases the number of drop positions. It reports
// whether the pallet was left rotated.
func RotateIfBetter(t *model.Trailer, p *model.Pallet) bool {
	before := len(t.AvailablePositions(p))
	p.Rotate()
	if len(t.AvailablePositions(p)) > before {
		return true
	}
	p.Rotate()
	return false
}
