package model

import "math"

// TrailerSpec describes the cargo space and its loading limits.
type TrailerSpec struct {
	Length     int `json:"length"`     // mm
	Width      int `json:"width"`      // mm
	Height     int `json:"height"`     // mm
	MaxLoad    int `json:"max_load"`   // kg
	Resolution int `json:"resolution"` // occupancy grid cell size in mm

	Balance BalanceSpec `json:"balance"`
}

// BalanceSpec is the acceptance window for the weight distribution check.
type BalanceSpec struct {
	Threshold       float64 `json:"threshold"`            // allowed deviation from the target share
	FrontBackTarget float64 `json:"front_to_back_target"` // desired share of weight on the front half
}

// DefaultTrailerSpec returns a standard 13.6 m semi-trailer.
func DefaultTrailerSpec() TrailerSpec {
	return TrailerSpec{
		Length:     13600,
		Width:      2450,
		Height:     2700,
		MaxLoad:    24000,
		Resolution: 100,
		Balance: BalanceSpec{
			Threshold:       0.1,
			FrontBackTarget: 0.6,
		},
	}
}

// Volume returns the cargo space volume in mm³.
func (s TrailerSpec) Volume() int64 {
	return int64(s.Length) * int64(s.Width) * int64(s.Height)
}

// InBounds reports whether the pallet's box lies fully inside the cargo
// space. Touching a wall, the floor or the roof is still inside.
func (s TrailerSpec) InBounds(p *Pallet) bool {
	min, max := p.Bounds()
	return min.X >= 0 && min.Y >= 0 && min.Z >= 0 &&
		max.X <= s.Length && max.Y <= s.Width && max.Z <= s.Height
}

// WeightDistribution holds the per-half weight sums in kg. A pallet belongs
// to the half its footprint center falls in; centers exactly on a midline
// count as right and as back.
type WeightDistribution struct {
	Left  int `json:"left"`
	Right int `json:"right"`
	Front int `json:"front"`
	Back  int `json:"back"`
	Total int `json:"total"`
}

// SideBalance returns the share of weight on the right half. An empty load
// reads as a neutral 0.5.
func (w WeightDistribution) SideBalance() float64 {
	lr := w.Left + w.Right
	if lr == 0 {
		return 0.5
	}
	return float64(w.Right) / float64(lr)
}

// FrontBackBalance returns the share of weight on the front half, 0 when
// empty.
func (w WeightDistribution) FrontBackBalance() float64 {
	fb := w.Front + w.Back
	if fb == 0 {
		return 0
	}
	return float64(w.Front) / float64(fb)
}

// Efficiency summarizes how well the cargo space is used.
type Efficiency struct {
	SpaceUtilization     float64 `json:"space_utilization"`  // percent of cargo volume
	WeightUtilization    float64 `json:"weight_utilization"` // percent of max load
	PalletsLoaded        int     `json:"pallets_loaded"`
	PalletsPerCubicMeter float64 `json:"pallets_per_cubic_meter"`
	SideBalance          float64 `json:"side_balance"`       // right-half share, 0.5 = even
	FrontBackBalance     float64 `json:"front_back_balance"` // front-half share
}

// BalanceReport is the verdict of the weight distribution check.
type BalanceReport struct {
	SideBalance       float64 `json:"side_balance"`
	FrontBackBalance  float64 `json:"front_back_balance"`
	SideBalanced      bool    `json:"side_balanced"`
	FrontBackBalanced bool    `json:"front_back_balanced"`
	Valid             bool    `json:"valid"`
}

// Trailer is the mutable loading state: the pallets on board, an occupancy
// grid for height queries, and weight accumulators per trailer half.
// Mutations are sequential; a Trailer is not safe for concurrent use.
type Trailer struct {
	Spec TrailerSpec

	loaded []*Pallet
	grid   *occupancyGrid
	weight WeightDistribution
}

// NewTrailer returns an empty trailer. A zero or negative resolution falls
// back to 100 mm.
func NewTrailer(spec TrailerSpec) *Trailer {
	if spec.Resolution <= 0 {
		spec.Resolution = 100
	}
	return &Trailer{
		Spec: spec,
		grid: newOccupancyGrid(spec),
	}
}

// Loaded returns the pallets on board in loading order.
func (t *Trailer) Loaded() []*Pallet {
	return t.loaded
}

// CurrentLoad returns the total on-board weight in kg.
func (t *Trailer) CurrentLoad() int {
	return t.weight.Total
}

// Add loads the pallet at its current position when it fits: fully inside
// the cargo space, free of collisions and within the weight limit. A failed
// add leaves the trailer untouched.
func (t *Trailer) Add(p *Pallet) bool {
	if !t.Spec.InBounds(p) {
		return false
	}
	if t.HasCollision(p) {
		return false
	}
	if t.weight.Total+p.TotalWeight() > t.Spec.MaxLoad {
		return false
	}
	t.loaded = append(t.loaded, p)
	t.grid.mark(p)
	t.recomputeWeight()
	return true
}

// Remove unloads the pallet with the given id. The grid is rebuilt from the
// remaining pallets so cells shared between rounded extents stay correct.
func (t *Trailer) Remove(id string) bool {
	for i, q := range t.loaded {
		if q.ID == id {
			t.loaded = append(t.loaded[:i], t.loaded[i+1:]...)
			t.rebuildGrid()
			t.recomputeWeight()
			return true
		}
	}
	return false
}

// Reset unloads everything.
func (t *Trailer) Reset() {
	t.loaded = nil
	t.grid.clear()
	t.weight = WeightDistribution{}
}

// Restore installs a finished placement verbatim, without legality checks,
// so saved plans and externally produced loads can be inspected.
func (t *Trailer) Restore(pallets []*Pallet) {
	t.loaded = append([]*Pallet(nil), pallets...)
	t.rebuildGrid()
	t.recomputeWeight()
}

// HasCollision reports whether the pallet's box overlaps any loaded pallet
// other than itself.
func (t *Trailer) HasCollision(p *Pallet) bool {
	for _, q := range t.loaded {
		if q.ID == p.ID {
			continue
		}
		if p.CollidesWith(q) {
			return true
		}
	}
	return false
}

// LowestFreeHeight returns the lowest z in mm at which a length×width
// footprint could rest at (x, y): the top of the tallest cargo under it, or
// 0 when nothing is there.
func (t *Trailer) LowestFreeHeight(x, y, length, width int) int {
	x0, x1 := t.grid.cellRange(x, length, t.grid.nx)
	y0, y1 := t.grid.cellRange(y, width, t.grid.ny)
	top := 0
	for cx := x0; cx < x1; cx++ {
		for cy := y0; cy < y1; cy++ {
			if h := t.grid.columnTop(cx, cy); h > top {
				top = h
			}
		}
	}
	return top
}

// AvailablePositions scans the floor plan in resolution steps and returns
// every drop position for the pallet at its current rotation: resting on the
// floor or on cargo, under the roof and collision free. Positions come back
// in scan order, x outer and y inner, both ascending.
func (t *Trailer) AvailablePositions(p *Pallet) []Position {
	pl, pw := p.PlacedLength(), p.PlacedWidth()
	probe := p.Clone()
	var out []Position
	for x := 0; x+pl <= t.Spec.Length; x += t.Spec.Resolution {
		for y := 0; y+pw <= t.Spec.Width; y += t.Spec.Resolution {
			z := t.LowestFreeHeight(x, y, pl, pw)
			if z+p.Height > t.Spec.Height {
				continue
			}
			probe.SetPosition(x, y, z)
			if t.HasCollision(probe) {
				continue
			}
			out = append(out, Position{X: x, Y: y, Z: z})
		}
	}
	return out
}

// LoadingEfficiency computes the utilization summary for the current load.
// An empty trailer reports zeros and a neutral side balance.
func (t *Trailer) LoadingEfficiency() Efficiency {
	var used int64
	for _, p := range t.loaded {
		used += p.Volume()
	}
	e := Efficiency{
		PalletsLoaded:    len(t.loaded),
		SideBalance:      t.weight.SideBalance(),
		FrontBackBalance: t.weight.FrontBackBalance(),
	}
	if vol := t.Spec.Volume(); vol > 0 {
		e.SpaceUtilization = float64(used) / float64(vol) * 100.0
		e.PalletsPerCubicMeter = float64(len(t.loaded)) / (float64(vol) / 1e9)
	}
	if t.Spec.MaxLoad > 0 {
		e.WeightUtilization = float64(t.weight.Total) / float64(t.Spec.MaxLoad) * 100.0
	}
	return e
}

// WeightDistribution returns a snapshot of the per-half weight sums.
func (t *Trailer) WeightDistribution() WeightDistribution {
	return t.weight
}

// BalanceValid checks the load against the balance window: the right-half
// share within Threshold of 0.5 and the front share within Threshold of
// FrontBackTarget.
func (t *Trailer) BalanceValid() BalanceReport {
	r := BalanceReport{
		SideBalance:      t.weight.SideBalance(),
		FrontBackBalance: t.weight.FrontBackBalance(),
	}
	b := t.Spec.Balance
	r.SideBalanced = math.Abs(r.SideBalance-0.5) <= b.Threshold
	r.FrontBackBalanced = math.Abs(r.FrontBackBalance-b.FrontBackTarget) <= b.Threshold
	r.Valid = r.SideBalanced && r.FrontBackBalanced
	return r
}

func (t *Trailer) rebuildGrid() {
	t.grid.clear()
	for _, p := range t.loaded {
		t.grid.mark(p)
	}
}

// recomputeWeight rebuilds the accumulators from scratch. The halves compare
// doubled center coordinates against the span to stay in integers: a center
// strictly before the midline counts as front and as left.
func (t *Trailer) recomputeWeight() {
	var w WeightDistribution
	for _, p := range t.loaded {
		tw := p.TotalWeight()
		w.Total += tw
		if 2*p.Position.Y+p.PlacedWidth() < t.Spec.Width {
			w.Left += tw
		} else {
			w.Right += tw
		}
		if 2*p.Position.X+p.PlacedLength() < t.Spec.Length {
			w.Front += tw
		} else {
			w.Back += tw
		}
	}
	t.weight = w
}
