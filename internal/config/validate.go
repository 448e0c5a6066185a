package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hashicorp/go-version"

	"github.com/frherrer/docsuite/internal/domain"
	"github.com/frherrer/docsuite/internal/lang"
)

// Validate checks the Config for required fields and valid values. All
// problems are reported in one error.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.MinVersion != "" {
		if _, err := version.NewConstraint(cfg.MinVersion); err != nil {
			errs = append(errs, fmt.Sprintf("min_version is not a valid version constraint: %v", err))
		}
	}

	// Input validation
	if len(cfg.Input.Paths) == 0 {
		errs = append(errs, "input.paths must not be empty")
	}
	for _, spec := range cfg.Input.Parsers {
		if !strings.Contains(spec, ":") {
			errs = append(errs, fmt.Sprintf("input.parsers entry %q must have the form format:extension", spec))
		}
	}

	// Parsing validation
	if _, err := domain.ParseExecutionMode(cfg.Parsing.Mode); err != nil {
		errs = append(errs, fmt.Sprintf("parsing.mode: %v", err))
	}
	if _, err := lang.New(cfg.Parsing.Languages...); err != nil {
		errs = append(errs, fmt.Sprintf("parsing.languages: %v", err))
	}
	if cfg.Parsing.PlaintextPatterns.BlockStart != "" {
		if _, err := regexp.Compile(cfg.Parsing.PlaintextPatterns.BlockStart); err != nil {
			errs = append(errs, fmt.Sprintf("parsing.plaintext_patterns.block_start is not a valid regex: %v", err))
		}
	}
	if cfg.Parsing.PlaintextPatterns.BlockEnd != "" {
		if _, err := regexp.Compile(cfg.Parsing.PlaintextPatterns.BlockEnd); err != nil {
			errs = append(errs, fmt.Sprintf("parsing.plaintext_patterns.block_end is not a valid regex: %v", err))
		}
	}

	// Output validation
	switch cfg.Output.Format {
	case "tree", "json":
	default:
		errs = append(errs, fmt.Sprintf("output.format must be one of: tree, json (got %q)", cfg.Output.Format))
	}

	// Validate logging level
	if cfg.Logging.Level != "" {
		validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
		if !validLevels[cfg.Logging.Level] {
			errs = append(errs, fmt.Sprintf("logging.level must be one of: debug, info, warn, error (got %q)", cfg.Logging.Level))
		}
	}

	if len(errs) > 0 {
		return domain.NewError(domain.KindConfig, "", 0, fmt.Sprintf("validation failed: %s", strings.Join(errs, "; ")), nil)
	}

	return nil
}

// CheckVersion reports an error when current does not satisfy the
// configured min_version. Development builds are always accepted.
func (c *Config) CheckVersion(current string) error {
	if c.MinVersion == "" || current == "" || current == "dev" {
		return nil
	}
	constraint, err := version.NewConstraint(c.MinVersion)
	if err != nil {
		return domain.NewError(domain.KindConfig, "", 0, "invalid min_version", err)
	}
	v, err := version.NewVersion(current)
	if err != nil {
		return domain.NewError(domain.KindConfig, "", 0, "invalid docsuite version", err)
	}
	if !constraint.Check(v) {
		return domain.Errorf(domain.KindConfig,
			"docsuite %s does not satisfy min_version %q.", v, c.MinVersion)
	}
	return nil
}
