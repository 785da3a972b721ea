package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/dartyper/internal/errors"
	"github.com/mcncl/dartyper/internal/naming"
)

// NullSafety selects how field nullability is decided.
type NullSafety string

const (
	NullSafetyNullable    NullSafety = "nullable"
	NullSafetyNonNullable NullSafety = "non-nullable"
	NullSafetyAuto        NullSafety = "auto"
)

// Config represents the complete configuration for dartyper
type Config struct {
	Output     OutputConfig     `yaml:"output"`
	Model      ModelConfig      `yaml:"model"`
	Arrays     ArraysConfig     `yaml:"arrays"`
	Formatting FormattingConfig `yaml:"formatting"`
	Dev        DevConfig        `yaml:"dev"`
}

// OutputConfig controls where generated files are placed
type OutputConfig struct {
	BaseFolder         string `yaml:"base_folder"`
	GenerateSubfolders bool   `yaml:"generate_subfolders"`
}

// ModelConfig controls the shape of the generated Dart classes
type ModelConfig struct {
	NullSafety             NullSafety       `yaml:"null_safety"`
	FieldCase              naming.FieldCase `yaml:"field_case"`
	GenerateJSONAnnotation bool             `yaml:"generate_json_annotation"`
	GenerateCopyWith       bool             `yaml:"generate_copy_with"`
	GenerateEquatable      bool             `yaml:"generate_equatable"`
	GenerateToString       bool             `yaml:"generate_to_string"`
	UseFreezed             bool             `yaml:"use_freezed"`
	AddPartStatement       bool             `yaml:"add_part_statement"`
}

// ArraysConfig controls array handling
type ArraysConfig struct {
	SingularizeNames bool `yaml:"singularize_names"`
}

// FormattingConfig controls output normalisation
type FormattingConfig struct {
	Enabled bool `yaml:"enabled"`
}

// DevConfig contains development/debug options
type DevConfig struct {
	Debug bool `yaml:"debug"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Output: OutputConfig{
			BaseFolder:         "lib/data/models",
			GenerateSubfolders: true,
		},
		Model: ModelConfig{
			NullSafety:             NullSafetyAuto,
			FieldCase:              naming.CamelCase,
			GenerateJSONAnnotation: true,
			GenerateCopyWith:       false,
			GenerateEquatable:      false,
			GenerateToString:       false,
			UseFreezed:             false,
			AddPartStatement:       true,
		},
		Arrays: ArraysConfig{
			SingularizeNames: false,
		},
		Formatting: FormattingConfig{
			Enabled: true,
		},
		Dev: DevConfig{
			Debug: false,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to read config file '%s'", path), err)
	}

	// Start with defaults
	cfg := NewConfig()

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to parse config file '%s'", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findConfigFrom(currentDir)
}

func findConfigFrom(dir string) string {
	configNames := []string{".dartyper.yml", ".dartyper.yaml", "dartyper.yml", "dartyper.yaml"}

	for {
		for _, name := range configNames {
			configPath := filepath.Join(dir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			// Reached root directory
			return ""
		}
		dir = parentDir
	}
}

// Validate rejects enumerated options outside their legal values.
func (c *Config) Validate() error {
	switch c.Model.NullSafety {
	case NullSafetyNullable, NullSafetyNonNullable, NullSafetyAuto:
	default:
		return errors.NewConfigError(
			fmt.Sprintf("unknown null_safety %q (want nullable, non-nullable or auto)", c.Model.NullSafety),
			errors.ErrInvalidConfig,
		)
	}

	switch c.Model.FieldCase {
	case naming.CamelCase, naming.SnakeCase, naming.Preserve:
	default:
		return errors.NewConfigError(
			fmt.Sprintf("unknown field_case %q (want camelCase, snake_case or preserve)", c.Model.FieldCase),
			errors.ErrInvalidConfig,
		)
	}

	if c.Output.BaseFolder == "" {
		return errors.NewConfigError("output.base_folder must not be empty", errors.ErrInvalidConfig)
	}
	return nil
}

// CLIOverrides carries command-line values that take precedence over the
// config file. Empty strings and false booleans leave the file value alone.
type CLIOverrides struct {
	NullSafety   string
	FieldCase    string
	BaseFolder   string
	NoSubfolders bool
	Freezed      bool
	CopyWith     bool
	Equatable    bool
	ToString     bool
	NoFormat     bool
	Debug        bool
}

// LoadConfigWithCLI loads config with CLI argument precedence
func LoadConfigWithCLI(configPath string, cli CLIOverrides) (*Config, error) {
	cfg := NewConfig()

	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cli.NullSafety != "" {
		cfg.Model.NullSafety = NullSafety(cli.NullSafety)
	}
	if cli.FieldCase != "" {
		cfg.Model.FieldCase = naming.FieldCase(cli.FieldCase)
	}
	if cli.BaseFolder != "" {
		cfg.Output.BaseFolder = cli.BaseFolder
	}
	if cli.NoSubfolders {
		cfg.Output.GenerateSubfolders = false
	}
	cfg.Model.UseFreezed = cfg.Model.UseFreezed || cli.Freezed
	cfg.Model.GenerateCopyWith = cfg.Model.GenerateCopyWith || cli.CopyWith
	cfg.Model.GenerateEquatable = cfg.Model.GenerateEquatable || cli.Equatable
	cfg.Model.GenerateToString = cfg.Model.GenerateToString || cli.ToString
	if cli.NoFormat {
		cfg.Formatting.Enabled = false
	}
	cfg.Dev.Debug = cfg.Dev.Debug || cli.Debug

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
