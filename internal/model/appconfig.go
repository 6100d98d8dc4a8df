package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Defaults applied to new loading plans
	DefaultStrategy        string      `json:"default_strategy"`
	DefaultTrailer         TrailerSpec `json:"default_trailer"`
	DefaultAllowStacking   bool        `json:"default_allow_stacking"`
	DefaultZones           int         `json:"default_zones"`
	DefaultBalancingFactor float64     `json:"default_balancing_factor"`

	// Application preferences
	AutoSaveInterval int      `json:"auto_save_interval"` // minutes, 0 = disabled
	RecentManifests  []string `json:"recent_manifests"`
	Theme            string   `json:"theme"` // "light", "dark", "system"
}

// DefaultAppConfig returns an AppConfig populated with the stock trailer and
// strategy defaults.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultStrategy:        "axis_scan",
		DefaultTrailer:         DefaultTrailerSpec(),
		DefaultAllowStacking:   false,
		DefaultZones:           0,
		DefaultBalancingFactor: 0,
		AutoSaveInterval:       0,
		RecentManifests:        []string{},
		Theme:                  "system",
	}
}

// RememberManifest puts a manifest path at the front of the recent list,
// dropping duplicates and keeping at most ten entries.
func (c *AppConfig) RememberManifest(path string) {
	recent := []string{path}
	for _, r := range c.RecentManifests {
		if r != path {
			recent = append(recent, r)
		}
	}
	if len(recent) > 10 {
		recent = recent[:10]
	}
	c.RecentManifests = recent
}
