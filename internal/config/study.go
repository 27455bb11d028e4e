package config

import (
	"fmt"
	"os"

	"github.com/gkobilansky/shield-study/internal/study"
	"gopkg.in/yaml.v3"
)

// LoadStudy reads a YAML study definition over the built-in base for
// extensionID. An empty path or a missing file yields the base. Endings in
// the file are merged into the base endings; variations replace them.
func LoadStudy(path, extensionID string) (study.Setup, error) {
	setup := study.Base(extensionID)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return study.Setup{}, fmt.Errorf("failed to read study file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &setup); err != nil {
				return study.Setup{}, fmt.Errorf("failed to parse study file: %w", err)
			}
		}
	}

	if setup.ActiveExperimentName == "" {
		setup.ActiveExperimentName = extensionID
	}

	if err := setup.Validate(); err != nil {
		return study.Setup{}, err
	}
	return setup, nil
}

// SaveStudy writes setup as YAML.
func SaveStudy(path string, setup study.Setup) error {
	data, err := yaml.Marshal(setup)
	if err != nil {
		return fmt.Errorf("failed to marshal study: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write study file: %w", err)
	}
	return nil
}
