package model

import "testing"

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()

	if cfg.DefaultStrategy != "axis_scan" {
		t.Errorf("expected default strategy axis_scan, got %s", cfg.DefaultStrategy)
	}
	if cfg.DefaultTrailer != DefaultTrailerSpec() {
		t.Errorf("default trailer mismatch: %+v", cfg.DefaultTrailer)
	}
	if cfg.Theme != "system" {
		t.Errorf("expected default theme=system, got %s", cfg.Theme)
	}
	if cfg.RecentManifests == nil {
		t.Error("RecentManifests should not be nil")
	}
}

func TestRememberManifest(t *testing.T) {
	cfg := DefaultAppConfig()

	cfg.RememberManifest("/tmp/a.json")
	cfg.RememberManifest("/tmp/b.json")
	if len(cfg.RecentManifests) != 2 {
		t.Fatalf("expected 2 recent entries, got %d", len(cfg.RecentManifests))
	}
	if cfg.RecentManifests[0] != "/tmp/b.json" {
		t.Errorf("latest manifest should be first, got %s", cfg.RecentManifests[0])
	}

	// Re-remembering moves to the front without duplicating.
	cfg.RememberManifest("/tmp/a.json")
	if len(cfg.RecentManifests) != 2 {
		t.Errorf("duplicate entry added: %v", cfg.RecentManifests)
	}
	if cfg.RecentManifests[0] != "/tmp/a.json" {
		t.Errorf("re-remembered manifest should move to front, got %s", cfg.RecentManifests[0])
	}

	for i := 0; i < 15; i++ {
		cfg.RememberManifest(string(rune('a'+i)) + ".json")
	}
	if len(cfg.RecentManifests) != 10 {
		t.Errorf("recent list should cap at 10, got %d", len(cfg.RecentManifests))
	}
}
