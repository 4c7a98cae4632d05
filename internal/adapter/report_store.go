package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	m "efixctl.dev/pkg/efixctl/internal/model"
)

// ResolutionStore persists resolution results for later install steps.
type ResolutionStore interface {
	Save(path m.Path, resolution m.Resolution) error
	Load(path m.Path) (m.Resolution, error)
}

type yamlResolutionStore struct{}

// NewResolutionStore returns a ResolutionStore backed by YAML files.
func NewResolutionStore() ResolutionStore {
	return &yamlResolutionStore{}
}

// Save writes the resolution as YAML, creating parent directories as needed.
func (s *yamlResolutionStore) Save(path m.Path, resolution m.Resolution) error {
	data, err := yaml.Marshal(resolution)
	if err != nil {
		return fmt.Errorf("marshal resolution: %w", err)
	}

	if dir := filepath.Dir(string(path)); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	if err := os.WriteFile(string(path), data, 0o644); err != nil {
		return fmt.Errorf("write resolution: %w", err)
	}

	return nil
}

// Load reads a resolution back from a YAML file.
func (s *yamlResolutionStore) Load(path m.Path) (m.Resolution, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return m.Resolution{}, fmt.Errorf("read resolution: %w", err)
	}

	var resolution m.Resolution
	if err := yaml.Unmarshal(data, &resolution); err != nil {
		return m.Resolution{}, fmt.Errorf("unmarshal resolution: %w", err)
	}

	return resolution, nil
}
