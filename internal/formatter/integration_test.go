package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/dartyper/internal/analyzer"
	"github.com/mcncl/dartyper/internal/config"
	"github.com/mcncl/dartyper/internal/generator"
	"github.com/mcncl/dartyper/internal/models"
	"github.com/mcncl/dartyper/internal/parser"
)

func TestIntegration_ParserAnalyzerGeneratorFormatter(t *testing.T) {
	// Test the full pipeline: Parser -> Analyzer -> Generator -> Formatter
	jsonInput := `{
		"user_id": 123,
		"username": "johndoe",
		"is_active": true,
		"profile": {
			"full_name": "John Doe",
			"email": "john.doe@example.com"
		}
	}`

	ir, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	for _, useFreezed := range []bool{false, true} {
		cfg := config.NewConfig()
		cfg.Model.UseFreezed = useFreezed
		cfg.Model.GenerateEquatable = true
		cfg.Model.GenerateToString = true
		cfg.Model.GenerateCopyWith = true

		schema := analyzer.NewAnalyzerWithConfig(cfg).Analyze(ir, "User", models.RoleNeutral)
		generatedCode := generator.NewGeneratorWithConfig(cfg).Generate(schema)

		formattedCode, err := NewFormatter().Format(generatedCode)
		require.NoError(t, err)

		// Generated code is already in normal form
		assert.Equal(t, generatedCode, formattedCode, "freezed=%v", useFreezed)
	}
}
