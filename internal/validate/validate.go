package validate

import (
	"fmt"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// Reason classifies a stacking violation.
type Reason string

const (
	ReasonUnsupported           Reason = "unsupported"
	ReasonSupportNotStackable   Reason = "support_not_stackable"
	ReasonExceedsMaxStackWeight Reason = "exceeds_max_stack_weight"
	ReasonFragileLoaded         Reason = "fragile_loaded"
)

// CollisionPair names two pallets whose boxes overlap.
type CollisionPair struct {
	A string `json:"a"`
	B string `json:"b"`
}

// StackingViolation names a pallet whose vertical support is missing or
// illegal. OtherID is the offending supporter, empty when there is none.
type StackingViolation struct {
	UnitID  string `json:"unit_id"`
	OtherID string `json:"other_id,omitempty"`
	Reason  Reason `json:"reason"`
}

// WeightCheck compares the summed pallet weight against the trailer limit.
type WeightCheck struct {
	Total      int  `json:"total"`
	MaxAllowed int  `json:"max_allowed"`
	Exceeded   bool `json:"exceeded"`
}

// Report is the full outcome of a load audit.
type Report struct {
	Valid       bool                `json:"valid"`
	Collisions  []CollisionPair     `json:"collisions,omitempty"`
	Stacking    []StackingViolation `json:"stacking,omitempty"`
	OutOfBounds []string            `json:"out_of_bounds,omitempty"`
	Weight      WeightCheck         `json:"weight"`
	Balance     model.BalanceReport `json:"balance"`
	Efficiency  model.Efficiency    `json:"efficiency"`
}

// Check audits an already placed load against the trailer spec. Placements
// are taken as-is; nothing is moved or rejected.
//
// The audit covers:
//  1. Pairwise box overlap (shared faces do not overlap).
//  2. Container bounds.
//  3. Vertical support: every pallet above the floor needs at least one
//     pallet whose top surface sits exactly at its z and whose footprint
//     overlaps its own. Each supporter that is not stackable, carries more
//     than its stack limit, or is fragile counts as its own violation.
//  4. Total weight against the trailer's maximum load.
//  5. Side and front/back balance inside the configured windows.
//
// Valid is true only when every check passes.
func Check(pallets []*model.Pallet, spec model.TrailerSpec) Report {
	audit := model.NewTrailer(spec)
	audit.Restore(pallets)

	report := Report{
		Balance:    audit.BalanceValid(),
		Efficiency: audit.LoadingEfficiency(),
	}

	for i := 0; i < len(pallets); i++ {
		for j := i + 1; j < len(pallets); j++ {
			if pallets[i].CollidesWith(pallets[j]) {
				report.Collisions = append(report.Collisions, CollisionPair{
					A: pallets[i].ID,
					B: pallets[j].ID,
				})
			}
		}
	}

	total := 0
	for _, p := range pallets {
		total += p.TotalWeight()
		if !spec.InBounds(p) {
			report.OutOfBounds = append(report.OutOfBounds, p.ID)
		}
		report.Stacking = append(report.Stacking, checkSupport(p, pallets)...)
	}
	report.Weight = WeightCheck{
		Total:      total,
		MaxAllowed: spec.MaxLoad,
		Exceeded:   total > spec.MaxLoad,
	}

	report.Valid = len(report.Collisions) == 0 &&
		len(report.Stacking) == 0 &&
		len(report.OutOfBounds) == 0 &&
		!report.Weight.Exceeded &&
		report.Balance.Valid

	return report
}

// checkSupport collects the stacking violations for a single pallet. Floor
// pallets carry themselves and never produce findings.
func checkSupport(p *model.Pallet, pallets []*model.Pallet) []StackingViolation {
	if p.Position.Z <= 0 {
		return nil
	}

	var violations []StackingViolation
	supported := false
	for _, q := range pallets {
		if q.ID == p.ID || !isSupporter(p, q) {
			continue
		}
		supported = true
		if !q.Stackable {
			violations = append(violations, StackingViolation{
				UnitID:  p.ID,
				OtherID: q.ID,
				Reason:  ReasonSupportNotStackable,
			})
		}
		if q.MaxStackWeight > 0 && p.TotalWeight() > q.MaxStackWeight {
			violations = append(violations, StackingViolation{
				UnitID:  p.ID,
				OtherID: q.ID,
				Reason:  ReasonExceedsMaxStackWeight,
			})
		}
		if q.Fragile {
			violations = append(violations, StackingViolation{
				UnitID:  q.ID,
				OtherID: p.ID,
				Reason:  ReasonFragileLoaded,
			})
		}
	}
	if !supported {
		violations = append(violations, StackingViolation{
			UnitID: p.ID,
			Reason: ReasonUnsupported,
		})
	}
	return violations
}

// isSupporter reports whether q carries p: q's top surface sits exactly at
// p's z and the footprints overlap. Touching edges do not carry weight.
func isSupporter(p, q *model.Pallet) bool {
	return q.Position.Z+q.Height == p.Position.Z && p.OverlapsFootprint(q)
}

// FormatFindings renders a report's findings as human-readable messages,
// one per finding, for log output and CLI display.
func FormatFindings(report Report) []string {
	var findings []string
	for _, c := range report.Collisions {
		findings = append(findings, fmt.Sprintf("pallets %s and %s overlap", c.A, c.B))
	}
	for _, v := range report.Stacking {
		switch v.Reason {
		case ReasonUnsupported:
			findings = append(findings, fmt.Sprintf("pallet %s floats with nothing under it", v.UnitID))
		case ReasonSupportNotStackable:
			findings = append(findings, fmt.Sprintf("pallet %s rests on %s, which must not be stacked on", v.UnitID, v.OtherID))
		case ReasonExceedsMaxStackWeight:
			findings = append(findings, fmt.Sprintf("pallet %s is too heavy for the stack limit of %s", v.UnitID, v.OtherID))
		case ReasonFragileLoaded:
			findings = append(findings, fmt.Sprintf("fragile pallet %s carries %s", v.UnitID, v.OtherID))
		}
	}
	for _, id := range report.OutOfBounds {
		findings = append(findings, fmt.Sprintf("pallet %s sticks out of the trailer", id))
	}
	if report.Weight.Exceeded {
		findings = append(findings, fmt.Sprintf("load weighs %d kg, %d kg over the limit",
			report.Weight.Total, report.Weight.Total-report.Weight.MaxAllowed))
	}
	if !report.Balance.SideBalanced {
		findings = append(findings, fmt.Sprintf("left/right balance %.2f outside the window", report.Balance.SideBalance))
	}
	if !report.Balance.FrontBackBalanced {
		findings = append(findings, fmt.Sprintf("front/back balance %.2f outside the window", report.Balance.FrontBackBalance))
	}
	return findings
}
