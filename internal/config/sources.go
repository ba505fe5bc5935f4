package config

import (
	"fmt"
	"os"

	"github.com/windoze95/mealhound-api/internal/models"
	"gopkg.in/yaml.v3"
)

// ProviderPolicy holds the per-provider settings from sources.yaml.
type ProviderPolicy struct {
	Enabled  bool   `yaml:"enabled"`
	Paid     bool   `yaml:"paid"`
	Endpoint string `yaml:"endpoint"`
}

// KeywordLookup holds the keyword-based image lookup settings.
type KeywordLookup struct {
	Endpoint string `yaml:"endpoint"`
}

// Sources is the source policy configuration loaded from YAML: provider
// endpoints and toggles, the trust order used for ranking tie-breaks, which
// sources are curated (always ship reliable images), and the image fallback
// pool.
type Sources struct {
	TrustOrder     []string                  `yaml:"trust_order"`
	Curated        []string                  `yaml:"curated"`
	Providers      map[string]ProviderPolicy `yaml:"providers"`
	KeywordLookup  KeywordLookup             `yaml:"keyword_lookup"`
	FallbackImages []string                  `yaml:"fallback_images"`
}

// LoadSources reads and parses the source policy YAML file.
func LoadSources(path string) (*Sources, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var sources Sources
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	if err := sources.validate(); err != nil {
		return nil, fmt.Errorf("invalid sources file: %w", err)
	}

	return &sources, nil
}

func (s *Sources) validate() error {
	if len(s.TrustOrder) == 0 {
		return fmt.Errorf("trust_order must not be empty")
	}
	if len(s.FallbackImages) == 0 {
		return fmt.Errorf("fallback_images must not be empty")
	}
	for name := range s.Providers {
		if s.TrustRank(models.Source(name)) == len(s.TrustOrder) {
			return fmt.Errorf("provider %q missing from trust_order", name)
		}
	}
	return nil
}

// TrustRank returns the position of a source in the trust order; lower is
// more trusted. Unknown sources rank after every listed one.
func (s *Sources) TrustRank(source models.Source) int {
	for i, name := range s.TrustOrder {
		if name == string(source) {
			return i
		}
	}
	return len(s.TrustOrder)
}

// IsCurated reports whether a source is on the curated list.
func (s *Sources) IsCurated(source models.Source) bool {
	for _, name := range s.Curated {
		if name == string(source) {
			return true
		}
	}
	return false
}
