package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mcncl/dartyper/internal/config"
	"github.com/mcncl/dartyper/internal/models"
	"github.com/mcncl/dartyper/internal/naming"
)

// Strategy selects the shape of the emitted classes.
type Strategy int

const (
	// StrategyRegular emits plain immutable classes with hand-written
	// serialization methods.
	StrategyRegular Strategy = iota
	// StrategyFreezed emits @freezed value objects and leaves the method
	// bodies to build_runner.
	StrategyFreezed
)

func (s Strategy) String() string {
	if s == StrategyFreezed {
		return "freezed"
	}
	return "regular"
}

const (
	importEquatable      = "import 'package:equatable/equatable.dart';"
	importJSONAnnotation = "import 'package:json_annotation/json_annotation.dart';"
	importFreezed        = "import 'package:freezed_annotation/freezed_annotation.dart';"
)

// Generator is responsible for rendering Dart source from class schemas
type Generator struct {
	config *config.Config
}

// NewGenerator creates a new Generator instance
func NewGenerator() *Generator {
	return &Generator{config: config.NewConfig()}
}

// NewGeneratorWithConfig creates a new Generator instance with custom configuration
func NewGeneratorWithConfig(cfg *config.Config) *Generator {
	return &Generator{config: cfg}
}

// Strategy reports the strategy selected by the configuration.
func (g *Generator) Strategy() Strategy {
	if g.config.Model.UseFreezed {
		return StrategyFreezed
	}
	return StrategyRegular
}

// Generate renders root and every class nested under it as one Dart file.
// Classes appear depth-first, parents before children, separated by a blank
// line. The same schema always renders to the same text.
func (g *Generator) Generate(root *models.ClassSchema) string {
	strategy := g.Strategy()

	var (
		blocks      []string
		usesJSONKey bool
	)
	for _, class := range root.Flatten() {
		var buf bytes.Buffer
		switch strategy {
		case StrategyFreezed:
			g.writeFreezed(&buf, class)
		default:
			if g.writeRegular(&buf, class) {
				usesJSONKey = true
			}
		}
		blocks = append(blocks, strings.TrimRight(buf.String(), "\n"))
	}

	var out bytes.Buffer
	if header := g.header(root.Name, strategy, usesJSONKey); header != "" {
		out.WriteString(header)
		out.WriteString("\n")
	}
	out.WriteString(strings.Join(blocks, "\n\n"))
	out.WriteString("\n")
	return out.String()
}

// header returns the import and part directives the body depends on, or ""
// when it needs none.
func (g *Generator) header(rootName string, strategy Strategy, usesJSONKey bool) string {
	var buf bytes.Buffer

	if strategy == StrategyFreezed {
		buf.WriteString(importFreezed + "\n")
		if g.config.Model.AddPartStatement {
			stem := naming.FileStem(rootName)
			buf.WriteString("\n")
			fmt.Fprintf(&buf, "part '%s.freezed.dart';\n", stem)
			if g.config.Model.GenerateJSONAnnotation {
				fmt.Fprintf(&buf, "part '%s.g.dart';\n", stem)
			}
		}
		return buf.String()
	}

	if g.config.Model.GenerateEquatable {
		buf.WriteString(importEquatable + "\n")
	}
	if usesJSONKey {
		buf.WriteString(importJSONAnnotation + "\n")
	}
	return buf.String()
}

// wantsJSONKey reports whether a field needs an explicit @JsonKey.
func (g *Generator) wantsJSONKey(f models.FieldSchema) bool {
	return g.config.Model.GenerateJSONAnnotation && f.Renamed()
}

func jsonKeyAnnotation(f models.FieldSchema) string {
	return "@JsonKey(name: " + dartString(f.SourceKey) + ")"
}
