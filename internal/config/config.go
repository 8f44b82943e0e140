package config

import (
	"fmt"
	"os"

	"mail-digest/internal/models"

	"gopkg.in/yaml.v2"
)

const defaultWindowSize = 200

// Load reads the configuration from the specified YAML file and returns a Config struct.
// Absent fields keep their defaults: daysBack 1, includeBody true, folderPath "Inbox",
// windowSize 200.
func Load(filepath string) (*models.Config, error) {
	configFile, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	config := &models.Config{
		Digest: models.DigestConfig{
			DaysBack:    1,
			IncludeBody: true,
			FolderPath:  "Inbox",
			WindowSize:  defaultWindowSize,
		},
	}
	if err := yaml.Unmarshal(configFile, config); err != nil {
		return nil, err
	}

	if config.Digest.DaysBack < 1 {
		return nil, fmt.Errorf("digest.daysBack must be at least 1, got %d", config.Digest.DaysBack)
	}
	if config.Digest.WindowSize < 1 {
		config.Digest.WindowSize = defaultWindowSize
	}

	return config, nil
}
