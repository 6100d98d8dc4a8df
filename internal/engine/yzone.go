package engine

import (
	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// YZoneConfig tunes the width-lane strategy.
type YZoneConfig struct {
	Zones        int    `json:"zones"`
	ReservedType string `json:"reserved_type"` // format that keeps its orientation
}

func DefaultYZoneConfig() YZoneConfig {
	return YZoneConfig{
		Zones:        2,
		ReservedType: "L10",
	}
}

// YZone fills lanes across the trailer width. Pallets are first turned so
// their longer side runs along the width, assigned round-robin to lanes, and
// centered on their lane. Everything stays on the floor; long pallets of the
// reserved format keep their orientation.
type YZone struct {
	Config YZoneConfig
}

func NewYZone(cfg YZoneConfig) *YZone {
	return &YZone{Config: cfg}
}

func (s *YZone) Kind() Kind {
	return KindYZone
}

func (s *YZone) Place(t *model.Trailer, pallets []*model.Pallet) []*model.Pallet {
	zones := s.Config.Zones
	if zones <= 0 {
		zones = DefaultYZoneConfig().Zones
	}
	zoneWidth := t.Spec.Width / zones
	if zoneWidth <= 0 {
		return nil
	}

	queue := append([]*model.Pallet(nil), pallets...)
	for _, p := range queue {
		if p.Type != s.Config.ReservedType && p.PlacedWidth() < p.PlacedLength() {
			p.Rotate()
		}
	}
	SortByVolume(queue, true)

	// Round-robin over the volume order so every lane sees a similar mix.
	lanes := make([][]*model.Pallet, zones)
	for i, p := range queue {
		lanes[i%zones] = append(lanes[i%zones], p)
	}

	var placed []*model.Pallet
	for zone, lane := range lanes {
		yStart := zone * zoneWidth
		yEnd := (zone + 1) * zoneWidth
		if zone == zones-1 {
			yEnd = t.Spec.Width
		}
		SortByWeight(lane, true)

		for _, p := range lane {
			pos, ok := s.findInLane(t, p, yStart, yEnd)
			if !ok {
				orig := p.Rotation
				p.Rotate()
				pos, ok = s.findInLane(t, p, yStart, yEnd)
				if !ok {
					p.Rotation = orig
					continue
				}
			}
			p.SetPosition(pos.X, pos.Y, pos.Z)
			if t.Add(p) {
				placed = append(placed, p)
			}
		}
	}
	return placed
}

// findInLane scans the lane at floor level and returns the collision-free
// cell whose footprint center sits closest to the lane center. The distance
// compares doubled coordinates to stay in integers; scan order breaks ties.
func (s *YZone) findInLane(t *model.Trailer, p *model.Pallet, yStart, yEnd int) (model.Position, bool) {
	pl, pw := p.PlacedLength(), p.PlacedWidth()
	probe := p.Clone()

	var best model.Position
	bestDist := -1
	for x := 0; x+pl <= t.Spec.Length; x += t.Spec.Resolution {
		for y := yStart; y+pw <= yEnd; y += t.Spec.Resolution {
			dist := 2*y + pw - yStart - yEnd
			if dist < 0 {
				dist = -dist
			}
			if bestDist >= 0 && dist >= bestDist {
				continue
			}
			probe.SetPosition(x, y, 0)
			if t.HasCollision(probe) {
				continue
			}
			best = model.Position{X: x, Y: y, Z: 0}
			bestDist = dist
		}
	}
	return best, bestDist >= 0
}
