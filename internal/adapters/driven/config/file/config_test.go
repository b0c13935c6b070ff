package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/regsync-labs/regsync-cli/internal/core/domain"
)

const validTOML = `
bucket_name = "fedreg"
parent_folder = "federal-register"
agencies = ["EPA", "FDA"]

[minio]
endpoint = "localhost:9000"
access_key = "minioadmin"
secret_key = "minioadmin"
region = "us-east-1"
secure = false

[registry]
requests_per_second = 2.5
burst = 4
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Valid(t *testing.T) {
	cfg, err := Load(writeConfig(t, validTOML))
	require.NoError(t, err)

	assert.Equal(t, "fedreg", cfg.BucketName)
	assert.Equal(t, "federal-register", cfg.ParentFolder)
	assert.Equal(t, []string{"EPA", "FDA"}, cfg.Agencies)
	assert.Equal(t, "localhost:9000", cfg.Minio.Endpoint)
	assert.Equal(t, "minioadmin", cfg.Minio.AccessKey)
	assert.Equal(t, "us-east-1", cfg.Minio.Region)
	assert.False(t, cfg.Minio.Secure)
	assert.InDelta(t, 2.5, cfg.Registry.RequestsPerSecond, 0.001)
	assert.Equal(t, 4, cfg.Registry.Burst)
	assert.True(t, cfg.CheckpointEachAgency, "checkpointing defaults on")
	assert.Empty(t, cfg.Registry.BaseURL, "base URL defaults to the public register")
}

func TestLoad_CheckpointCanBeDisabled(t *testing.T) {
	cfg, err := Load(writeConfig(t, "checkpoint_each_agency = false\n"+validTOML))
	require.NoError(t, err)
	assert.False(t, cfg.CheckpointEachAgency)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_MalformedTOML(t *testing.T) {
	_, err := Load(writeConfig(t, "bucket_name = [unclosed"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Minio:        MinioConfig{Endpoint: "localhost:9000", AccessKey: "a", SecretKey: "s"},
			BucketName:   "fedreg",
			ParentFolder: "fr",
			Agencies:     []string{"EPA"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing endpoint", func(c *Config) { c.Minio.Endpoint = "" }, "minio.endpoint"},
		{"missing access key", func(c *Config) { c.Minio.AccessKey = "" }, "minio.access_key"},
		{"missing secret key", func(c *Config) { c.Minio.SecretKey = "" }, "minio.secret_key"},
		{"missing bucket", func(c *Config) { c.BucketName = "" }, "bucket_name"},
		{"missing parent folder", func(c *Config) { c.ParentFolder = "" }, "parent_folder"},
		{"no agencies", func(c *Config) { c.Agencies = nil }, "at least one agency"},
		{"empty agency", func(c *Config) { c.Agencies = []string{"EPA", ""} }, "empty agency"},
		{"duplicate agency", func(c *Config) { c.Agencies = []string{"EPA", "EPA"} }, "duplicate agency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
