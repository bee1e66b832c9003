package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/airtable/internal/config"
	"github.com/mesh-intelligence/airtable/pkg/content"
	"github.com/mesh-intelligence/airtable/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	schemaFileExt  = "schema.yaml"

	cfgKeyAPIKey     = "api_key"
	cfgKeyBaseURL    = "base_url"
	cfgKeyTimeout    = "timeout"
	cfgKeySchemaFile = "schema_file"
	cfgKeyDataDir    = "data_dir"

	defaultTimeout = 30 * time.Second
)

// Environment overrides for connection settings.
const (
	envAPIKey  = "AIRTABLE_API_KEY"
	envBaseURL = "AIRTABLE_BASE_URL"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# airtable CLI configuration

# API token from the Airtable dashboard (or set AIRTABLE_API_KEY).
api_key: ""

# Base endpoint, e.g. https://api.airtable.com/v0/appXXXXXXXXXXXXXX
# (or set AIRTABLE_BASE_URL).
base_url: ""

# Per-request timeout.
timeout: 30s

# Table schemas, relative to this directory.
schema_file: schema.yaml

# Export directory (optional; overridable by --data-dir).
# data_dir:
`

// defaultSchemas describes the content and tags tables of the demo base.
func defaultSchemas() *config.Schemas {
	return config.NewSchemas(
		config.TableDef{Name: content.ContentTable, Fields: content.ContentSchema.Keys()},
		config.TableDef{Name: content.TagsTable, Fields: content.TagSchema.Keys()},
	)
}

// loadConfig reads config.yaml from configDir, creating the directory and
// default files on first run. Environment variables override file values.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureDefaultFiles(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyTimeout, defaultTimeout)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	if err := v.BindEnv(cfgKeyAPIKey, envAPIKey); err != nil {
		return nil, err
	}
	if err := v.BindEnv(cfgKeyBaseURL, envBaseURL); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultFiles creates configDir with a default config.yaml and
// schema.yaml when they do not exist yet.
func ensureDefaultFiles(configDir string) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}
	if err := writeIfMissing(filepath.Join(configDir, configFileExt), []byte(defaultConfigYAML)); err != nil {
		return err
	}
	schema, err := defaultSchemas().Marshal()
	if err != nil {
		return fmt.Errorf("rendering default schema: %w", err)
	}
	return writeIfMissing(filepath.Join(configDir, schemaFileExt), schema)
}

func writeIfMissing(path string, data []byte) error {
	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat %s: %w", filepath.Base(path), err)
	}
	return os.WriteFile(path, data, 0o644)
}

// clientConfig builds and validates the connection settings.
func (a *app) clientConfig() (types.Config, error) {
	cfg := types.Config{
		APIKey:  a.v.GetString(cfgKeyAPIKey),
		BaseURL: a.v.GetString(cfgKeyBaseURL),
		Timeout: a.v.GetDuration(cfgKeyTimeout),
	}
	if err := cfg.Validate(); err != nil {
		return cfg, userError(fmt.Errorf("config: %w", err))
	}
	return cfg, nil
}

// schemas loads the schema file named by --schema or config.yaml. Relative
// config paths resolve against the config directory. Without either the
// demo content and tags schemas are used.
func (a *app) schemas() (*config.Schemas, error) {
	path := a.schemaFile
	if path == "" {
		path = a.v.GetString(cfgKeySchemaFile)
		if path != "" && !filepath.IsAbs(path) {
			path = filepath.Join(a.configDir, path)
		}
	}
	if path == "" {
		return defaultSchemas(), nil
	}
	s, err := config.LoadSchemas(path)
	if err != nil {
		return nil, userError(err)
	}
	return s, nil
}
