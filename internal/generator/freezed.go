package generator

import (
	"bytes"
	"fmt"

	"github.com/mcncl/dartyper/internal/models"
)

// writeFreezed emits one @freezed value class. Equality, copyWith and
// toString come from the freezed code generator, so the matching options
// are ignored here.
func (g *Generator) writeFreezed(buf *bytes.Buffer, c *models.ClassSchema) {
	buf.WriteString("@freezed\n")
	fmt.Fprintf(buf, "class %s with _$%s {\n", c.Name, c.Name)

	if len(c.Fields) == 0 {
		fmt.Fprintf(buf, "  const factory %s() = _%s;\n", c.Name, c.Name)
	} else {
		fmt.Fprintf(buf, "  const factory %s({\n", c.Name)
		for _, f := range c.Fields {
			buf.WriteString("    ")
			if g.wantsJSONKey(f) {
				buf.WriteString(jsonKeyAnnotation(f) + " ")
			}
			fmt.Fprintf(buf, "required %s %s,\n", fieldType(f), f.Identifier)
		}
		fmt.Fprintf(buf, "  }) = _%s;\n", c.Name)
	}

	if g.config.Model.GenerateJSONAnnotation {
		buf.WriteString("\n")
		fmt.Fprintf(buf, "  factory %s.fromJson(Map<String, dynamic> json) =>\n", c.Name)
		fmt.Fprintf(buf, "      _$%sFromJson(json);\n", c.Name)
	}

	buf.WriteString("}\n")
}
