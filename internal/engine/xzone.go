package engine

import (
	"sort"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// XZoneConfig tunes the length-zone balancing strategy.
type XZoneConfig struct {
	Zones           int     `json:"zones"`            // number of equal bands along the length
	BalancingFactor float64 `json:"balancing_factor"` // tolerated share above the even split
}

func DefaultXZoneConfig() XZoneConfig {
	return XZoneConfig{
		Zones:           3,
		BalancingFactor: 0.8,
	}
}

// XZone spreads weight along the trailer length. The length is cut into
// equal zones; each pallet goes to the zone whose running weight sits
// furthest below the even share, at the lowest stackable spot in that zone.
type XZone struct {
	Config XZoneConfig
}

func NewXZone(cfg XZoneConfig) *XZone {
	return &XZone{Config: cfg}
}

func (s *XZone) Kind() Kind {
	return KindXZone
}

func (s *XZone) Place(t *model.Trailer, pallets []*model.Pallet) []*model.Pallet {
	zones := s.Config.Zones
	if zones <= 0 {
		zones = DefaultXZoneConfig().Zones
	}
	zoneLength := t.Spec.Length / zones
	if zoneLength <= 0 {
		return nil
	}

	queue := append([]*model.Pallet(nil), pallets...)
	SortByWeight(queue, true)

	zoneWeights := make([]int, zones)
	var placed []*model.Pallet
	for _, p := range queue {
		zone := s.selectZone(t, p, zoneWeights, zoneLength)
		if zone < 0 {
			continue
		}
		pos, ok := s.findInZone(t, p, zone, zoneLength)
		if !ok {
			orig := p.Rotation
			p.Rotate()
			pos, ok = s.findInZone(t, p, zone, zoneLength)
			if !ok {
				p.Rotation = orig
				continue
			}
		}
		p.SetPosition(pos.X, pos.Y, pos.Z)
		if t.Add(p) {
			zoneWeights[zone] += p.TotalWeight()
			placed = append(placed, p)
		}
	}
	return placed
}

// selectZone picks the first zone, in order of distance below the even
// share, that has floor room for the pallet and would not overshoot the
// balancing window. Returns -1 when no zone qualifies.
func (s *XZone) selectZone(t *model.Trailer, p *model.Pallet, zoneWeights []int, zoneLength int) int {
	total := p.TotalWeight()
	for _, w := range zoneWeights {
		total += w
	}
	ideal := float64(total) / float64(len(zoneWeights))

	order := make([]int, len(zoneWeights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		da := float64(zoneWeights[order[a]]) - ideal
		db := float64(zoneWeights[order[b]]) - ideal
		if da < 0 {
			da = -da
		}
		if db < 0 {
			db = -db
		}
		return da < db
	})

	for _, zone := range order {
		if !s.zoneHasRoom(t, p, zone, zoneLength) {
			continue
		}
		share := float64(zoneWeights[zone]+p.TotalWeight()) / float64(total)
		if share <= 1.0+s.Config.BalancingFactor {
			return zone
		}
	}
	return -1
}

// zoneHasRoom probes for at least one collision-free floor cell with the
// pallet fully inside the zone's x range.
func (s *XZone) zoneHasRoom(t *model.Trailer, p *model.Pallet, zone, zoneLength int) bool {
	xStart := zone * zoneLength
	xEnd := (zone + 1) * zoneLength
	pl, pw := p.PlacedLength(), p.PlacedWidth()
	probe := p.Clone()
	for x := xStart; x+pl <= xEnd; x += t.Spec.Resolution {
		for y := 0; y+pw <= t.Spec.Width; y += t.Spec.Resolution {
			probe.SetPosition(x, y, 0)
			if !t.HasCollision(probe) {
				return true
			}
		}
	}
	return false
}

// findInZone scans the zone and returns the lowest legal drop position,
// resting pallets on cargo when the floor is taken. Scan order breaks ties.
func (s *XZone) findInZone(t *model.Trailer, p *model.Pallet, zone, zoneLength int) (model.Position, bool) {
	xStart := zone * zoneLength
	xEnd := (zone + 1) * zoneLength
	if xEnd > t.Spec.Length {
		xEnd = t.Spec.Length
	}
	pl, pw := p.PlacedLength(), p.PlacedWidth()
	probe := p.Clone()

	var best model.Position
	bestZ := -1
	for x := xStart; x+pl <= xEnd; x += t.Spec.Resolution {
		for y := 0; y+pw <= t.Spec.Width; y += t.Spec.Resolution {
			z := t.LowestFreeHeight(x, y, pl, pw)
			if z+p.Height > t.Spec.Height {
				continue
			}
			if bestZ >= 0 && z >= bestZ {
				continue
			}
			probe.SetPosition(x, y, z)
			if t.HasCollision(probe) {
				continue
			}
			best = model.Position{X: x, Y: y, Z: z}
			bestZ = z
		}
	}
	return best, bestZ >= 0
}
