package engine

import (
	"fmt"
	"strings"
)

// Options carries the strategy knobs a caller may set. Zero values select
// per-strategy defaults; AllowStacking is a pointer so an explicit false
// stays distinguishable from unset.
type Options struct {
	Zones           int
	BalancingFactor float64
	Start           string
	SortBy          SortOrder
	ReservedType    string
	AllowStacking   *bool
	Layers          int
	WeightFactor    float64
}

func (o Options) validate() error {
	if o.Zones < 0 {
		return fmt.Errorf("zones must not be negative, got %d", o.Zones)
	}
	if o.Layers < 0 {
		return fmt.Errorf("layers must not be negative, got %d", o.Layers)
	}
	if o.BalancingFactor < 0 {
		return fmt.Errorf("balancing factor must not be negative, got %g", o.BalancingFactor)
	}
	if o.WeightFactor < 0 {
		return fmt.Errorf("weight factor must not be negative, got %g", o.WeightFactor)
	}
	switch o.Start {
	case "", StartFront, StartBack:
	default:
		return fmt.Errorf("start must be %q or %q, got %q", StartFront, StartBack, o.Start)
	}
	switch o.SortBy {
	case "", SortWeight, SortVolume:
	default:
		return fmt.Errorf("sort order must be %q or %q, got %q", SortWeight, SortVolume, o.SortBy)
	}
	return nil
}

// UnknownStrategyError reports a strategy kind the factory does not know.
type UnknownStrategyError struct {
	Kind      Kind
	Available []Kind
}

func (e *UnknownStrategyError) Error() string {
	names := make([]string, len(e.Available))
	for i, k := range e.Available {
		names[i] = string(k)
	}
	return fmt.Sprintf("unknown strategy %q, available: %s", string(e.Kind), strings.Join(names, ", "))
}

// New builds a strategy by kind, applying the given options over the kind's
// defaults. Invalid options and unknown kinds fail before any placement.
func New(kind Kind, opts Options) (Strategy, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	switch kind {
	case KindAxisScan:
		cfg := DefaultAxisScanConfig()
		if opts.Start != "" {
			cfg.Start = opts.Start
		}
		if opts.SortBy != "" {
			cfg.SortBy = opts.SortBy
		}
		if opts.AllowStacking != nil {
			cfg.AllowStacking = *opts.AllowStacking
		}
		return NewAxisScan(cfg), nil
	case KindXZone:
		cfg := DefaultXZoneConfig()
		if opts.Zones > 0 {
			cfg.Zones = opts.Zones
		}
		if opts.BalancingFactor > 0 {
			cfg.BalancingFactor = opts.BalancingFactor
		}
		return NewXZone(cfg), nil
	case KindYZone:
		cfg := DefaultYZoneConfig()
		if opts.Zones > 0 {
			cfg.Zones = opts.Zones
		}
		if opts.ReservedType != "" {
			cfg.ReservedType = opts.ReservedType
		}
		return NewYZone(cfg), nil
	case KindZLayer:
		cfg := DefaultZLayerConfig()
		if opts.Layers > 0 {
			cfg.Layers = opts.Layers
		}
		if opts.WeightFactor > 0 {
			cfg.WeightFactor = opts.WeightFactor
		}
		return NewZLayer(cfg), nil
	}
	return nil, &UnknownStrategyError{Kind: kind, Available: Kinds()}
}

// Kinds lists the known strategies in presentation order.
func Kinds() []Kind {
	return []Kind{KindAxisScan, KindXZone, KindYZone, KindZLayer}
}

// Describe returns a one-line description of a strategy kind.
func Describe(kind Kind) string {
	switch kind {
	case KindAxisScan:
		return "Scans the floor front to back and takes the first free cell"
	case KindXZone:
		return "Splits the length into zones and evens out the weight across them"
	case KindYZone:
		return "Fills width lanes with the longer pallet side across the trailer"
	case KindZLayer:
		return "Builds height layers with the heavy cargo at the bottom"
	default:
		return ""
	}
}
