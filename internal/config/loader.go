package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// ConfigPathEnv names the variable that points at the YAML file.
const ConfigPathEnv = "CONFIG_PATH"

// defaultPaths are tried in order when ConfigPathEnv is unset.
var defaultPaths = []string{"config.yaml", "config.yml"}

// Load builds the Config from, in increasing priority: env-default tags, the
// YAML file, and environment variables. An explicit CONFIG_PATH must exist;
// without it a missing default file just means ENV-only configuration, which
// is how the container images run.
func Load() (*Config, error) {
	path, err := resolvePath(os.Getenv(ConfigPathEnv))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	var cfg Config
	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// resolvePath returns the file to read, or "" for ENV-only loading.
func resolvePath(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	for _, p := range defaultPaths {
		_, err := os.Stat(p)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("file %s: %w", p, err)
		}
	}
	return "", nil
}
