package e2e_test

import (
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mcncl/dartyper/internal/config"
	"github.com/mcncl/dartyper/internal/modelgen"
	"github.com/mcncl/dartyper/internal/models"
	"github.com/mcncl/dartyper/internal/parser"
)

// generateNestedJSON creates an object nested depth levels deep with width
// children per level
func generateNestedJSON(depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"count":      depth + width,
			"enabled":    true,
		}
	}

	result := make(map[string]interface{})
	for i := 0; i < width; i++ {
		result[fmt.Sprintf("nested_%d_%d", depth, i)] = generateNestedJSON(depth-1, width)
	}
	return result
}

// generateWideJSON creates a JSON object with many fields at the same level
func generateWideJSON(fieldCount int) map[string]interface{} {
	result := make(map[string]interface{})
	for i := 0; i < fieldCount; i++ {
		switch i % 4 {
		case 0:
			result[fmt.Sprintf("string_field_%d", i)] = fmt.Sprintf("value_%d", i)
		case 1:
			result[fmt.Sprintf("number_field_%d", i)] = float64(i) + 0.5
		case 2:
			result[fmt.Sprintf("list_field_%d", i)] = []int{i, i + 1}
		case 3:
			result[fmt.Sprintf("object_field_%d", i)] = map[string]interface{}{"id": i, "name": fmt.Sprintf("Object %d", i)}
		}
	}
	return result
}

func writeJSON(b *testing.B, dir, name string, v interface{}) string {
	b.Helper()
	data, err := json.Marshal(v)
	require.NoError(b, err)
	path := filepath.Join(dir, name+".json")
	require.NoError(b, os.WriteFile(path, data, 0644))
	return path
}

func benchCLI(b *testing.B, jsonFile string) {
	b.Helper()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cmd := exec.Command("go", "run", "../../main.go", "-i", jsonFile, "-n", "BenchResponse", "--stdout")
		output, err := cmd.CombinedOutput()
		require.NoError(b, err, "CLI command failed: %s", string(output))
	}
}

// BenchmarkDeepNesting benchmarks the CLI with deeply nested JSON structures
func BenchmarkDeepNesting(b *testing.B) {
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}
	dir := b.TempDir()

	for _, depth := range []int{3, 5, 8} {
		b.Run(fmt.Sprintf("Depth%d", depth), func(b *testing.B) {
			benchCLI(b, writeJSON(b, dir, fmt.Sprintf("depth_%d", depth), generateNestedJSON(depth, 2)))
		})
	}
}

// BenchmarkWideStructures benchmarks the CLI with many fields per object
func BenchmarkWideStructures(b *testing.B) {
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}
	dir := b.TempDir()

	for _, width := range []int{50, 200, 1000} {
		b.Run(fmt.Sprintf("Fields%d", width), func(b *testing.B) {
			benchCLI(b, writeJSON(b, dir, fmt.Sprintf("wide_%d", width), generateWideJSON(width)))
		})
	}
}

// BenchmarkPipeline measures parse and generation without process start-up
func BenchmarkPipeline(b *testing.B) {
	cases := map[string]interface{}{
		"Nested": generateNestedJSON(6, 2),
		"Wide":   generateWideJSON(500),
	}
	for name, sample := range cases {
		data, err := json.Marshal(sample)
		require.NoError(b, err)

		for _, useFreezed := range []bool{false, true} {
			cfg := config.NewConfig()
			cfg.Model.UseFreezed = useFreezed

			b.Run(fmt.Sprintf("%s/freezed=%v", name, useFreezed), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					ir, err := parser.ParseString(string(data))
					if err != nil {
						b.Fatal(err)
					}
					if _, err := modelgen.Generate(ir, modelgen.Options{BaseName: "Bench", Role: models.RoleNeutral}, cfg); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
