// Package modelgen runs the generation pipeline: schema inference, Dart
// emission and output normalisation.
package modelgen

import (
	"log/slog"
	"strings"

	"github.com/mcncl/dartyper/internal/analyzer"
	"github.com/mcncl/dartyper/internal/config"
	"github.com/mcncl/dartyper/internal/errors"
	"github.com/mcncl/dartyper/internal/formatter"
	"github.com/mcncl/dartyper/internal/generator"
	"github.com/mcncl/dartyper/internal/models"
	"github.com/mcncl/dartyper/internal/naming"
)

// Options names the model to generate.
type Options struct {
	// BaseName is the class name without its role suffix.
	BaseName string
	Role     models.Role
}

// Result is one generated Dart file.
type Result struct {
	BaseName  string
	ClassName string
	Role      models.Role
	Schema    *models.ClassSchema
	Code      string
}

// Generate turns one sample into Dart source. The only failures are invalid
// arguments or configuration, both detected before inference starts.
func Generate(ir models.IntermediateRepresentation, opts Options, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := strings.TrimSpace(opts.BaseName)
	if base == "" {
		return nil, errors.NewGenerateError("class name is empty", errors.ErrNoClassName)
	}
	className := naming.ClassName(base, opts.Role)

	schema := analyzer.NewAnalyzerWithConfig(cfg).Analyze(ir, className, opts.Role)

	gen := generator.NewGeneratorWithConfig(cfg)
	code := gen.Generate(schema)

	slog.Debug("generated model",
		"class", className,
		"role", opts.Role.String(),
		"strategy", gen.Strategy().String(),
		"classes", len(schema.Flatten()),
	)

	if cfg.Formatting.Enabled {
		formatted, err := formatter.NewFormatter().Format(code)
		if err != nil {
			return nil, err
		}
		code = formatted
	}

	return &Result{
		BaseName:  base,
		ClassName: className,
		Role:      opts.Role,
		Schema:    schema,
		Code:      code,
	}, nil
}
