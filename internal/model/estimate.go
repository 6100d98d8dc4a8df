package model

import "math"

// FleetEstimate holds the results of a trailer capacity calculation.
type FleetEstimate struct {
	TotalVolume         float64 `json:"total_volume"`         // Cargo volume of the manifest (m3)
	TotalWeight         int     `json:"total_weight"`         // Total weight including pallet tare (kg)
	TotalLoadingMeters  float64 `json:"total_loading_meters"` // Loading meters on a standard 2.4 m deck
	TrailerVolume       float64 `json:"trailer_volume"`       // Cargo space volume of one trailer (m3)
	TrailersByVolume    float64 `json:"trailers_by_volume"`   // Exact trailer count by volume
	TrailersByWeight    float64 `json:"trailers_by_weight"`   // Exact trailer count by payload
	TrailersByFloor     float64 `json:"trailers_by_floor"`    // Exact trailer count by loading meters
	TrailersMin         int     `json:"trailers_min"`         // Minimum trailers (ceiling of the binding constraint)
	TrailersRecommended int     `json:"trailers_recommended"` // Recommended trailers at the given fill factor
	FillFactor          float64 `json:"fill_factor"`          // Achievable fill share applied (e.g. 0.85)
	EstimatedCost       float64 `json:"estimated_cost"`       // Total freight cost if pricing available
	CostPerTrailer      float64 `json:"cost_per_trailer"`     // Price used for estimation
}

// mm3PerCubicMeter converts the integer pallet volumes to cubic meters.
const mm3PerCubicMeter = 1e9

// CalculateFleetEstimate computes how many trailers a manifest needs before
// any placement runs. Volume, payload and floor length are checked
// independently and the binding constraint decides. The fill factor derates
// the space constraints since real loads never pack the cargo space
// completely; the payload limit is legal and is never derated.
func CalculateFleetEstimate(pallets []*Pallet, spec TrailerSpec, fillFactor, costPerTrailer float64) FleetEstimate {
	if fillFactor <= 0 || fillFactor > 1 {
		fillFactor = 1.0
	}

	var volume, meters float64
	var weight int
	for _, p := range pallets {
		volume += float64(p.Volume()) / mm3PerCubicMeter
		weight += p.TotalWeight()
		meters += p.LoadingMeters()
	}

	est := FleetEstimate{
		TotalVolume:        volume,
		TotalWeight:        weight,
		TotalLoadingMeters: meters,
		FillFactor:         fillFactor,
		CostPerTrailer:     costPerTrailer,
	}

	trailerVolume := float64(spec.Length) * float64(spec.Width) * float64(spec.Height) / mm3PerCubicMeter
	if trailerVolume <= 0 {
		return est
	}
	est.TrailerVolume = trailerVolume

	est.TrailersByVolume = volume / trailerVolume
	if spec.MaxLoad > 0 {
		est.TrailersByWeight = float64(weight) / float64(spec.MaxLoad)
	}
	floorMeters := float64(spec.Length) / 1000.0
	if floorMeters > 0 {
		est.TrailersByFloor = meters / floorMeters
	}

	exact := math.Max(est.TrailersByVolume, math.Max(est.TrailersByWeight, est.TrailersByFloor))
	est.TrailersMin = int(math.Ceil(exact))

	derated := math.Max(est.TrailersByVolume/fillFactor,
		math.Max(est.TrailersByWeight, est.TrailersByFloor/fillFactor))
	est.TrailersRecommended = int(math.Ceil(derated))
	if est.TrailersRecommended < est.TrailersMin {
		est.TrailersRecommended = est.TrailersMin
	}

	est.EstimatedCost = float64(est.TrailersRecommended) * costPerTrailer
	return est
}
