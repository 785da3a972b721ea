package generator

import (
	"fmt"
	"strings"

	"github.com/mcncl/dartyper/internal/models"
)

// dartString quotes s as a single-quoted Dart literal. Control characters
// are escaped so the literal stays on one line.
func dartString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '$':
			b.WriteString(`\$`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%X}`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// fieldType is the declared Dart type of a field. dynamic already admits
// null and never takes a marker.
func fieldType(f models.FieldSchema) string {
	name := f.Type.DartName()
	if f.Nullable && !f.Type.IsDynamic() {
		return name + "?"
	}
	return name
}

// optionalType is the copyWith parameter type: every parameter may be omitted.
func optionalType(f models.FieldSchema) string {
	if f.Type.IsDynamic() {
		return "dynamic"
	}
	return f.Type.DartName() + "?"
}

// decodeField is the fromJson initializer for f.
func decodeField(f models.FieldSchema) string {
	src := "json[" + dartString(f.SourceKey) + "]"

	switch {
	case f.Type.IsDynamic():
		return src
	case f.Type.Kind == models.TypePrimitive:
		if f.Nullable {
			return src + " as " + f.Type.DartName() + "?"
		}
		return src + " as " + f.Type.DartName()
	}

	expr := decodeValue(f.Type, src, 0)
	if f.Nullable {
		return src + " == null ? null : " + expr
	}
	return expr
}

func decodeValue(t models.TypeRef, src string, depth int) string {
	switch t.Kind {
	case models.TypeClass:
		return fmt.Sprintf("%s.fromJson(%s as Map<String, dynamic>)", t.ClassName, src)
	case models.TypeList:
		elem := listElem(t)
		if elem.Kind == models.TypePrimitive {
			return fmt.Sprintf("List<%s>.from(%s as List)", elem.DartName(), src)
		}
		v := lambdaVar(depth)
		return fmt.Sprintf("(%s as List).map((%s) => %s).toList()", src, v, decodeValue(elem, v, depth+1))
	default:
		if t.IsDynamic() {
			return src
		}
		return src + " as " + t.DartName()
	}
}

// encodeField is the toJson value for f.
func encodeField(f models.FieldSchema) string {
	return encodeValue(f.Type, f.Identifier, f.Nullable, 0)
}

func encodeValue(t models.TypeRef, src string, nullable bool, depth int) string {
	if !t.ContainsClass() {
		return src
	}
	access := "."
	if nullable {
		access = "?."
	}
	if t.Kind == models.TypeClass {
		return src + access + "toJson()"
	}
	v := lambdaVar(depth)
	return fmt.Sprintf("%s%smap((%s) => %s).toList()", src, access, v, encodeValue(listElem(t), v, false, depth+1))
}

func listElem(t models.TypeRef) models.TypeRef {
	if t.Elem == nil {
		return models.PrimitiveType(models.PrimDynamic)
	}
	return *t.Elem
}

// lambdaVar names closure parameters so nested maps never shadow each other.
func lambdaVar(depth int) string {
	if depth == 0 {
		return "e"
	}
	return fmt.Sprintf("e%d", depth)
}
