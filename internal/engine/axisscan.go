package engine

import (
	"sort"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// Loading directions for the axis scan.
const (
	StartFront = "front"
	StartBack  = "back"
)

// AxisScanConfig tunes the axis scan strategy.
type AxisScanConfig struct {
	Start         string    `json:"start"`   // "front" or "back"
	SortBy        SortOrder `json:"sort_by"` // weight (default) or volume
	AllowStacking bool      `json:"allow_stacking"`
}

func DefaultAxisScanConfig() AxisScanConfig {
	return AxisScanConfig{
		Start:         StartFront,
		SortBy:        SortWeight,
		AllowStacking: false,
	}
}

// AxisScan sweeps the floor plan in resolution steps and drops each pallet
// at the first free cell, front to back or back to front. With stacking
// enabled pallets may rest on cargo instead of the floor.
type AxisScan struct {
	Config AxisScanConfig
}

func NewAxisScan(cfg AxisScanConfig) *AxisScan {
	return &AxisScan{Config: cfg}
}

func (s *AxisScan) Kind() Kind {
	return KindAxisScan
}

func (s *AxisScan) Place(t *model.Trailer, pallets []*model.Pallet) []*model.Pallet {
	queue := append([]*model.Pallet(nil), pallets...)
	if s.Config.SortBy == SortVolume {
		SortByVolume(queue, true)
	} else {
		SortByWeight(queue, true)
	}

	var placed []*model.Pallet
	for _, p := range queue {
		orig := p.Rotation
		positions := s.candidates(t, p)
		if len(positions) == 0 && RotateIfBetter(t, p) {
			positions = s.candidates(t, p)
		}
		if len(positions) == 0 {
			p.Rotation = orig
			continue
		}
		best := positions[0]
		p.SetPosition(best.X, best.Y, best.Z)
		if t.Add(p) {
			placed = append(placed, p)
		}
	}
	return placed
}

// candidates collects every legal drop cell for the pallet and orders it by
// the configured loading direction: (x, y) ascending from the front, x
// descending from the back.
func (s *AxisScan) candidates(t *model.Trailer, p *model.Pallet) []model.Position {
	var out []model.Position
	if s.Config.AllowStacking {
		out = t.AvailablePositions(p)
	} else {
		out = s.floorPositions(t, p)
	}
	if s.Config.Start == StartBack {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].X != out[j].X {
				return out[i].X > out[j].X
			}
			return out[i].Y < out[j].Y
		})
	}
	return out
}

// floorPositions scans z=0 only, ignoring any stackable surface.
func (s *AxisScan) floorPositions(t *model.Trailer, p *model.Pallet) []model.Position {
	pl, pw := p.PlacedLength(), p.PlacedWidth()
	if p.Height > t.Spec.Height {
		return nil
	}
	probe := p.Clone()
	var out []model.Position
	for x := 0; x+pl <= t.Spec.Length; x += t.Spec.Resolution {
		for y := 0; y+pw <= t.Spec.Width; y += t.Spec.Resolution {
			probe.SetPosition(x, y, 0)
			if t.HasCollision(probe) {
				continue
			}
			out = append(out, model.Position{X: x, Y: y, Z: 0})
		}
	}
	return out
}
