// Package file loads the regsync configuration from a TOML file.
package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/regsync-labs/regsync-cli/internal/core/domain"
)

// DefaultPath is used when no --config flag is given.
const DefaultPath = "config.toml"

// Config is the resolved run configuration.
type Config struct {
	// Minio holds the object store connection settings.
	Minio MinioConfig `toml:"minio"`

	// Registry holds the register API settings.
	Registry RegistryConfig `toml:"registry"`

	// BucketName is the object store bucket documents land in.
	BucketName string `toml:"bucket_name"`

	// ParentFolder is the key prefix under which everything is stored.
	ParentFolder string `toml:"parent_folder"`

	// Agencies is the ordered list of agency identifiers to process.
	Agencies []string `toml:"agencies"`

	// CheckpointEachAgency persists the index after every agency to
	// bound data loss on crash. Defaults to true.
	CheckpointEachAgency bool `toml:"checkpoint_each_agency"`
}

// MinioConfig mirrors the [minio] table.
type MinioConfig struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Region    string `toml:"region"`
	Secure    bool   `toml:"secure"`
}

// RegistryConfig mirrors the [registry] table.
type RegistryConfig struct {
	// BaseURL overrides the register endpoint; empty means the public
	// Federal Register API.
	BaseURL string `toml:"base_url"`

	// RequestsPerSecond throttles register calls; 0 keeps the adapter
	// default.
	RequestsPerSecond float64 `toml:"requests_per_second"`

	// Burst is the rate limiter burst size; 0 keeps the adapter default.
	Burst int `toml:"burst"`
}

// Load reads and validates the configuration at path. An empty path
// falls back to DefaultPath.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg := &Config{CheckpointEachAgency: true}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the required fields.
func (c *Config) Validate() error {
	switch {
	case c.Minio.Endpoint == "":
		return fmt.Errorf("%w: minio.endpoint is required", domain.ErrInvalidConfig)
	case c.Minio.AccessKey == "":
		return fmt.Errorf("%w: minio.access_key is required", domain.ErrInvalidConfig)
	case c.Minio.SecretKey == "":
		return fmt.Errorf("%w: minio.secret_key is required", domain.ErrInvalidConfig)
	case c.BucketName == "":
		return fmt.Errorf("%w: bucket_name is required", domain.ErrInvalidConfig)
	case c.ParentFolder == "":
		return fmt.Errorf("%w: parent_folder is required", domain.ErrInvalidConfig)
	case len(c.Agencies) == 0:
		return fmt.Errorf("%w: at least one agency is required", domain.ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.Agencies))
	for _, agency := range c.Agencies {
		if agency == "" {
			return fmt.Errorf("%w: empty agency identifier", domain.ErrInvalidConfig)
		}
		if _, dup := seen[agency]; dup {
			return fmt.Errorf("%w: duplicate agency %q", domain.ErrInvalidConfig, agency)
		}
		seen[agency] = struct{}{}
	}
	return nil
}
