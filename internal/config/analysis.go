// Package config loads the analysis defaults file. The schema matches the
// CLI flags so the same JSON can seed a run without repeating every flag.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AnalysisConfig represents optional analysis parameter defaults. Pointer
// fields distinguish "not set" from zero values; the Get* methods provide
// the fallback defaults for unset fields, so partial configs are safe.
type AnalysisConfig struct {
	BladeProfile      *string  `json:"blade_profile,omitempty"`
	RequiredHeight    *float64 `json:"required_height_m,omitempty"`
	StationSpacing    *float64 `json:"station_spacing_m,omitempty"`
	SamplesPerProfile *int     `json:"samples_per_profile,omitempty"`
	DistanceUnits     *string  `json:"distance_units,omitempty"`
}

// EmptyAnalysisConfig returns an AnalysisConfig with all fields unset.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// LoadAnalysisConfig loads an AnalysisConfig from a JSON file. The file must
// have a .json extension and stay under the max file size. Fields omitted
// from the JSON retain their defaults.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *AnalysisConfig) Validate() error {
	if c.RequiredHeight != nil && *c.RequiredHeight < 0 {
		return fmt.Errorf("required_height_m must be non-negative, got %f", *c.RequiredHeight)
	}
	if c.StationSpacing != nil && *c.StationSpacing <= 0 {
		return fmt.Errorf("station_spacing_m must be positive, got %f", *c.StationSpacing)
	}
	if c.SamplesPerProfile != nil && *c.SamplesPerProfile < 3 {
		return fmt.Errorf("samples_per_profile must be at least 3, got %d", *c.SamplesPerProfile)
	}
	return nil
}

// GetBladeProfile returns the blade_profile value or the default.
func (c *AnalysisConfig) GetBladeProfile() string {
	if c.BladeProfile == nil || *c.BladeProfile == "" {
		return "N117" // default
	}
	return *c.BladeProfile
}

// GetRequiredHeight returns the required_height_m value or the default.
func (c *AnalysisConfig) GetRequiredHeight() float64 {
	if c.RequiredHeight == nil {
		return 5.0 // default
	}
	return *c.RequiredHeight
}

// GetStationSpacing returns the station_spacing_m value or the default.
func (c *AnalysisConfig) GetStationSpacing() float64 {
	if c.StationSpacing == nil {
		return 1.0 // default
	}
	return *c.StationSpacing
}

// GetSamplesPerProfile returns the samples_per_profile value or the default.
func (c *AnalysisConfig) GetSamplesPerProfile() int {
	if c.SamplesPerProfile == nil {
		return 9 // default
	}
	return *c.SamplesPerProfile
}

// GetDistanceUnits returns the distance_units value or the default.
func (c *AnalysisConfig) GetDistanceUnits() string {
	if c.DistanceUnits == nil || *c.DistanceUnits == "" {
		return "m" // default
	}
	return *c.DistanceUnits
}
