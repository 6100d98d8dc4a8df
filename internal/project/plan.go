package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adamsulik/PACKIT4.0/internal/engine"
	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// Plan is a saved loading plan: the trailer, the placements a strategy
// produced, and the statistics of the result.
type Plan struct {
	Version    string            `json:"version"`
	CreatedAt  string            `json:"created_at"`
	Strategy   engine.Kind       `json:"strategy"`
	Trailer    model.TrailerSpec `json:"trailer"`
	Placed     []*model.Pallet   `json:"placed"`
	Unplaced   []*model.Pallet   `json:"unplaced,omitempty"`
	Statistics engine.Statistics `json:"statistics"`
}

// NewPlan assembles a plan from a finished run, stamped with the current
// time.
func NewPlan(strategy engine.Kind, spec model.TrailerSpec, placed, unplaced []*model.Pallet, stats engine.Statistics) Plan {
	return Plan{
		Version:    "1.0.0",
		CreatedAt:  time.Now().UTC().Format(time.RFC3339),
		Strategy:   strategy,
		Trailer:    spec,
		Placed:     placed,
		Unplaced:   unplaced,
		Statistics: stats,
	}
}

// SavePlan writes a plan to the given path as JSON, creating missing parent
// directories.
func SavePlan(path string, plan Plan) error {
	data, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create plan directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}

// LoadPlan reads a plan back from disk. Placements are validated; a plan
// with an invalid pallet is rejected as a whole.
func LoadPlan(path string) (Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Plan{}, fmt.Errorf("failed to read plan: %w", err)
	}
	var plan Plan
	if err := json.Unmarshal(data, &plan); err != nil {
		return Plan{}, fmt.Errorf("failed to parse plan: %w", err)
	}
	if plan.Version == "" {
		return Plan{}, fmt.Errorf("invalid plan file: missing version field")
	}
	for _, p := range plan.Placed {
		if err := p.Validate(); err != nil {
			return Plan{}, fmt.Errorf("invalid plan: %w", err)
		}
	}
	if plan.Placed == nil {
		plan.Placed = []*model.Pallet{}
	}
	return plan, nil
}
