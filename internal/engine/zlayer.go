package engine

import (
	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// ZLayerConfig tunes the height-layer strategy.
type ZLayerConfig struct {
	Layers       int     `json:"layers"`
	WeightFactor float64 `json:"weight_factor"` // caps pallet weight allowed above the floor layer
}

func DefaultZLayerConfig() ZLayerConfig {
	return ZLayerConfig{
		Layers:       2,
		WeightFactor: 0.7,
	}
}

// ZLayer builds the load in horizontal layers. The floor layer takes the
// heavy cargo packed toward the trailer center; upper layers only accept
// pallets light enough for their height, lightest first.
type ZLayer struct {
	Config ZLayerConfig
}

func NewZLayer(cfg ZLayerConfig) *ZLayer {
	return &ZLayer{Config: cfg}
}

func (s *ZLayer) Kind() Kind {
	return KindZLayer
}

func (s *ZLayer) Place(t *model.Trailer, pallets []*model.Pallet) []*model.Pallet {
	layers := s.Config.Layers
	if layers <= 0 {
		layers = DefaultZLayerConfig().Layers
	}
	layerHeight := t.Spec.Height / layers
	if layerHeight <= 0 {
		return nil
	}

	queue := append([]*model.Pallet(nil), pallets...)
	SortByVolume(queue, true)

	done := make(map[string]bool)
	var placed []*model.Pallet
	for layer := 0; layer < layers; layer++ {
		zStart := layer * layerHeight
		candidates := s.eligible(t, queue, done, layer, layers, layerHeight)

		for _, p := range candidates {
			pos, ok := s.findInLayer(t, p, zStart, layerHeight)
			if !ok {
				orig := p.Rotation
				p.Rotate()
				pos, ok = s.findInLayer(t, p, zStart, layerHeight)
				if !ok {
					p.Rotation = orig
					continue
				}
			}
			p.SetPosition(pos.X, pos.Y, pos.Z)
			if t.Add(p) {
				done[p.ID] = true
				placed = append(placed, p)
			}
		}
	}
	return placed
}

// eligible filters the still-unplaced pallets a layer may take: short enough
// for the layer band and, above the floor, light enough for the height. The
// floor layer goes heaviest first, upper layers lightest first.
func (s *ZLayer) eligible(t *model.Trailer, queue []*model.Pallet, done map[string]bool, layer, layers, layerHeight int) []*model.Pallet {
	maxWeight := float64(t.Spec.MaxLoad) * s.Config.WeightFactor * (1.0 - float64(layer)/float64(layers))

	var out []*model.Pallet
	for _, p := range queue {
		if done[p.ID] || p.Height > layerHeight {
			continue
		}
		if layer > 0 && float64(p.TotalWeight()) > maxWeight {
			continue
		}
		out = append(out, p)
	}
	SortByWeight(out, layer == 0)
	return out
}

// findInLayer scans the whole floor plan and returns the legal drop position
// closest to the trailer's horizontal center whose resting height falls
// inside the layer band. Distances compare doubled coordinates squared to
// stay in integers; scan order breaks ties.
func (s *ZLayer) findInLayer(t *model.Trailer, p *model.Pallet, zStart, layerHeight int) (model.Position, bool) {
	pl, pw := p.PlacedLength(), p.PlacedWidth()
	probe := p.Clone()

	var best model.Position
	bestDist := int64(-1)
	for x := 0; x+pl <= t.Spec.Length; x += t.Spec.Resolution {
		for y := 0; y+pw <= t.Spec.Width; y += t.Spec.Resolution {
			z := t.LowestFreeHeight(x, y, pl, pw)
			if z < zStart || z+p.Height > zStart+layerHeight {
				continue
			}
			dx := int64(2*x + pl - t.Spec.Length)
			dy := int64(2*y + pw - t.Spec.Width)
			dist := dx*dx + dy*dy
			if bestDist >= 0 && dist >= bestDist {
				continue
			}
			probe.SetPosition(x, y, z)
			if t.HasCollision(probe) {
				continue
			}
			best = model.Position{X: x, Y: y, Z: z}
			bestDist = dist
		}
	}
	return best, bestDist >= 0
}
