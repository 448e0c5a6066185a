package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/frherrer/docsuite/internal/domain"
)

// Config is the top-level configuration struct.
type Config struct {
	// MinVersion is a version constraint such as ">= 1.2" the running
	// docsuite binary must satisfy.
	MinVersion string        `yaml:"min_version" toml:"min_version"`
	Input      InputConfig   `yaml:"input" toml:"input"`
	Parsing    ParsingConfig `yaml:"parsing" toml:"parsing"`
	Output     OutputConfig  `yaml:"output" toml:"output"`
	Logging    LoggingConfig `yaml:"logging" toml:"logging"`
}

type InputConfig struct {
	Paths          []string `yaml:"paths" toml:"paths"`
	IncludedSuites []string `yaml:"included_suites" toml:"included_suites"`
	Extensions     []string `yaml:"extensions" toml:"extensions"`
	// Parsers are "format:ext[:ext]" aliases registering a built-in
	// parser for more extensions.
	Parsers []string `yaml:"parsers" toml:"parsers"`
}

type ParsingConfig struct {
	Mode              string                  `yaml:"mode" toml:"mode"`
	Languages         []string                `yaml:"languages" toml:"languages"`
	AllowEmptySuite   bool                    `yaml:"allow_empty_suite" toml:"allow_empty_suite"`
	ProcessCurdir     bool                    `yaml:"process_curdir" toml:"process_curdir"`
	BlockTags         []string                `yaml:"block_tags" toml:"block_tags"`
	PlaintextPatterns PlaintextPatternsConfig `yaml:"plaintext_patterns" toml:"plaintext_patterns"`
}

type PlaintextPatternsConfig struct {
	BlockStart string `yaml:"block_start" toml:"block_start"`
	BlockEnd   string `yaml:"block_end" toml:"block_end"`
}

type OutputConfig struct {
	Format      string `yaml:"format" toml:"format"`
	Template    string `yaml:"template" toml:"template"`
	TemplateDir string `yaml:"template_dir" toml:"template_dir"`
	Color       bool   `yaml:"color" toml:"color"`
}

type LoggingConfig struct {
	Level string `yaml:"level" toml:"level"`
	File  string `yaml:"file" toml:"file"`
}

// Load reads a YAML or TOML configuration file and returns a Config.
// Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewError(domain.KindConfig, path, 0, "failed to read config file", err)
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, domain.NewError(domain.KindConfig, path, 0, "failed to parse config file", err)
	}

	return cfg, nil
}
