package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adamsulik/PACKIT4.0/internal/model"
)

// DefaultDataDir returns the default directory for application data.
// On all platforms this is ~/.packit/
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".packit")
}

// SavePallets persists a cargo manifest to the given path as JSON.
// It creates any missing parent directories automatically.
func SavePallets(path string, pallets []*model.Pallet) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(pallets, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadPallets reads a cargo manifest from the given path. Every pallet is
// validated; a manifest with an invalid entry is rejected as a whole.
func LoadPallets(path string) ([]*model.Pallet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var pallets []*model.Pallet
	if err := json.Unmarshal(data, &pallets); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	for _, p := range pallets {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid manifest: %w", err)
		}
	}
	if pallets == nil {
		pallets = []*model.Pallet{}
	}
	return pallets, nil
}
