package project

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

func TestLoadAppConfig_MissingFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if !reflect.DeepEqual(config, model.DefaultAppConfig()) {
		t.Error("expected the stock defaults for a missing file")
	}
}

func TestSaveAndLoadAppConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	config := model.DefaultAppConfig()
	config.DefaultStrategy = "z_layer"
	config.DefaultAllowStacking = true
	config.Theme = "dark"
	config.RememberManifest("/tmp/monday.csv")

	if err := SaveAppConfig(path, config); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	loaded, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if !reflect.DeepEqual(loaded, config) {
		t.Errorf("config did not survive the round trip:\ngot  %+v\nwant %+v", loaded, config)
	}
}

func TestSaveAppConfig_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "config.json")

	if err := SaveAppConfig(path, model.DefaultAppConfig()); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to exist: %v", err)
	}
}

func TestLoadAppConfig_BadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAppConfig(path); err == nil {
		t.Error("expected an error for malformed JSON")
	}
}

func TestLoadAppConfig_NormalizesRecentManifests(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"theme":"light"}`), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if config.RecentManifests == nil {
		t.Error("expected recent manifests to be an empty slice, not nil")
	}
}

func TestRememberManifest(t *testing.T) {
	config := model.DefaultAppConfig()

	config.RememberManifest("/tmp/a.csv")
	config.RememberManifest("/tmp/b.csv")
	config.RememberManifest("/tmp/a.csv")

	want := []string{"/tmp/a.csv", "/tmp/b.csv"}
	if !reflect.DeepEqual(config.RecentManifests, want) {
		t.Errorf("expected %v, got %v", want, config.RecentManifests)
	}

	for i := 0; i < 15; i++ {
		config.RememberManifest(filepath.Join("/tmp", string(rune('a'+i))+".csv"))
	}
	if len(config.RecentManifests) != 10 {
		t.Errorf("expected the recent list capped at 10, got %d", len(config.RecentManifests))
	}
}
