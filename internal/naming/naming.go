// Package naming derives Dart identifiers and class names from JSON keys.
package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
	"github.com/iancoleman/strcase"

	"github.com/mcncl/dartyper/internal/models"
)

// FieldCase selects how JSON keys become Dart field identifiers.
type FieldCase string

const (
	CamelCase FieldCase = "camelCase"
	SnakeCase FieldCase = "snake_case"
	Preserve  FieldCase = "preserve"
)

// ArrayItemSuffix is appended to class names derived from arrays of objects.
const ArrayItemSuffix = "Item"

var (
	delimiterRun  = regexp.MustCompile(`[_\-\s]+(.)?`)
	upperRun      = regexp.MustCompile(`([A-Z])([A-Z]+)`)
	snakeBoundary = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	snakeDelims   = regexp.MustCompile(`[_\-\s]+`)
)

// FieldIdentifier converts a JSON key into a field identifier. A conversion
// that leaves nothing behind falls back to the key itself.
func FieldIdentifier(key string, fc FieldCase) string {
	var ident string
	switch fc {
	case Preserve:
		return key
	case SnakeCase:
		ident = ToSnake(key)
	default:
		ident = ToCamel(key)
	}
	if ident == "" {
		return key
	}
	return ident
}

// ToCamel turns delimiter runs into capitalisation boundaries, folds runs of
// capitals ("URL" -> "Url") and lower-cases the first letter.
func ToCamel(s string) string {
	s = delimiterRun.ReplaceAllStringFunc(s, func(m string) string {
		sub := delimiterRun.FindStringSubmatch(m)
		return strings.ToUpper(sub[1])
	})
	s = upperRun.ReplaceAllStringFunc(s, func(m string) string {
		return m[:1] + strings.ToLower(m[1:])
	})
	return lowerFirst(s)
}

// ToSnake separates a capital that follows a lower-case letter or digit,
// normalises delimiters to a single underscore and lower-cases the result.
func ToSnake(s string) string {
	s = snakeBoundary.ReplaceAllString(s, "${1}_${2}")
	s = snakeDelims.ReplaceAllString(s, "_")
	return strings.ToLower(s)
}

// ToPascal converts a JSON key into a type-name fragment.
func ToPascal(key string) string {
	pascal := strcase.ToCamel(key)
	if pascal == "" {
		return "Field"
	}
	return pascal
}

// ClassName joins a base name with the role suffix. A base that already ends
// in the suffix is not suffixed twice.
func ClassName(base string, role models.Role) string {
	suffix := role.Suffix()
	if suffix == "" {
		return base
	}
	if strings.HasSuffix(strings.ToLower(base), strings.ToLower(suffix)) {
		base = base[:len(base)-len(suffix)]
	}
	return base + suffix
}

// SplitRole reads a Request/Response suffix off a full class name. Names
// without one are neutral.
func SplitRole(className string) (string, models.Role) {
	lower := strings.ToLower(className)
	for _, role := range []models.Role{models.RoleRequest, models.RoleResponse} {
		suffix := strings.ToLower(role.Suffix())
		if strings.HasSuffix(lower, suffix) && len(className) > len(suffix) {
			return className[:len(className)-len(suffix)], role
		}
	}
	return className, models.RoleNeutral
}

// NestedClassName names the class generated for an object-valued field.
// Names are scoped to the root class, so equal keys at different depths
// share a name.
func NestedClassName(rootClass, key string) string {
	return rootClass + ToPascal(key)
}

// ArrayItemClassName names the class generated for the elements of an
// array-of-objects field.
func ArrayItemClassName(rootClass, key string, singularize bool) string {
	if singularize {
		return rootClass + ToPascal(inflect.Singularize(key))
	}
	return rootClass + ToPascal(key) + ArrayItemSuffix
}

// FileStem is the snake_case file name (without extension) for a class.
func FileStem(className string) string {
	return strcase.ToSnake(className)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if !unicode.IsUpper(r) {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
