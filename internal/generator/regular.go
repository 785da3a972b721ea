package generator

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mcncl/dartyper/internal/models"
)

// writeRegular emits one conventional class and reports whether it used a
// @JsonKey annotation.
func (g *Generator) writeRegular(buf *bytes.Buffer, c *models.ClassSchema) bool {
	opts := g.config.Model
	usesJSONKey := false

	if opts.GenerateEquatable {
		fmt.Fprintf(buf, "class %s extends Equatable {\n", c.Name)
	} else {
		fmt.Fprintf(buf, "class %s {\n", c.Name)
	}

	for _, f := range c.Fields {
		if g.wantsJSONKey(f) {
			fmt.Fprintf(buf, "  %s\n", jsonKeyAnnotation(f))
			usesJSONKey = true
		}
		fmt.Fprintf(buf, "  final %s %s;\n", fieldType(f), f.Identifier)
	}
	if len(c.Fields) > 0 {
		buf.WriteString("\n")
	}

	writeConstructor(buf, c)

	if c.Role.Decodes() {
		buf.WriteString("\n")
		writeFromJSON(buf, c)
	}
	if c.Role.Encodes() {
		buf.WriteString("\n")
		writeToJSON(buf, c)
	}
	if opts.GenerateCopyWith && len(c.Fields) > 0 {
		buf.WriteString("\n")
		writeCopyWith(buf, c)
	}
	if opts.GenerateToString {
		buf.WriteString("\n")
		writeToString(buf, c)
	}
	if opts.GenerateEquatable {
		buf.WriteString("\n")
		writeProps(buf, c)
	}

	buf.WriteString("}\n")
	return usesJSONKey
}

func writeConstructor(buf *bytes.Buffer, c *models.ClassSchema) {
	if len(c.Fields) == 0 {
		fmt.Fprintf(buf, "  const %s();\n", c.Name)
		return
	}
	fmt.Fprintf(buf, "  const %s({\n", c.Name)
	for _, f := range c.Fields {
		fmt.Fprintf(buf, "    required this.%s,\n", f.Identifier)
	}
	buf.WriteString("  });\n")
}

func writeFromJSON(buf *bytes.Buffer, c *models.ClassSchema) {
	fmt.Fprintf(buf, "  factory %s.fromJson(Map<String, dynamic> json) {\n", c.Name)
	if len(c.Fields) == 0 {
		fmt.Fprintf(buf, "    return const %s();\n", c.Name)
		buf.WriteString("  }\n")
		return
	}
	fmt.Fprintf(buf, "    return %s(\n", c.Name)
	for _, f := range c.Fields {
		fmt.Fprintf(buf, "      %s: %s,\n", f.Identifier, decodeField(f))
	}
	buf.WriteString("    );\n")
	buf.WriteString("  }\n")
}

func writeToJSON(buf *bytes.Buffer, c *models.ClassSchema) {
	buf.WriteString("  Map<String, dynamic> toJson() {\n")
	if len(c.Fields) == 0 {
		buf.WriteString("    return <String, dynamic>{};\n")
		buf.WriteString("  }\n")
		return
	}
	buf.WriteString("    return {\n")
	for _, f := range c.Fields {
		fmt.Fprintf(buf, "      %s: %s,\n", dartString(f.SourceKey), encodeField(f))
	}
	buf.WriteString("    };\n")
	buf.WriteString("  }\n")
}

func writeCopyWith(buf *bytes.Buffer, c *models.ClassSchema) {
	fmt.Fprintf(buf, "  %s copyWith({\n", c.Name)
	for _, f := range c.Fields {
		fmt.Fprintf(buf, "    %s %s,\n", optionalType(f), f.Identifier)
	}
	buf.WriteString("  }) {\n")
	fmt.Fprintf(buf, "    return %s(\n", c.Name)
	for _, f := range c.Fields {
		fmt.Fprintf(buf, "      %s: %s ?? this.%s,\n", f.Identifier, f.Identifier, f.Identifier)
	}
	buf.WriteString("    );\n")
	buf.WriteString("  }\n")
}

func writeToString(buf *bytes.Buffer, c *models.ClassSchema) {
	parts := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		parts = append(parts, fmt.Sprintf("%s: $%s", f.Identifier, f.Identifier))
	}
	buf.WriteString("  @override\n")
	fmt.Fprintf(buf, "  String toString() => '%s(%s)';\n", c.Name, strings.Join(parts, ", "))
}

func writeProps(buf *bytes.Buffer, c *models.ClassSchema) {
	idents := make([]string, 0, len(c.Fields))
	for _, f := range c.Fields {
		idents = append(idents, f.Identifier)
	}
	buf.WriteString("  @override\n")
	fmt.Fprintf(buf, "  List<Object?> get props => [%s];\n", strings.Join(idents, ", "))
}
