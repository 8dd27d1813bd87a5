package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the procheck.yaml project configuration.
type Config struct {
	// Strict toggles process-boundary checking. Defaults to true; when
	// false every check is a pass-through with zero diagnostics.
	Strict *bool `yaml:"strict,omitempty"`

	// AuditDB is the path to the sqlite database reveal sites are
	// recorded in. Empty disables audit recording.
	AuditDB string `yaml:"auditDb,omitempty"`

	// Serializers lists additional function names treated as
	// serialization boundaries (e.g. project-local toJson wrappers).
	Serializers []string `yaml:"serializers,omitempty"`

	// RevealAliases lists additional function names treated as reveal.
	RevealAliases []string `yaml:"revealAliases,omitempty"`
}

// IsStrict resolves the Strict field's default.
func (c *Config) IsStrict() bool {
	return c.Strict == nil || *c.Strict
}

// LoadConfig reads a procheck.yaml file. A missing file is not an
// error; it yields the zero config (strict, no audit db).
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}
