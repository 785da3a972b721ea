package analyzer

import (
	"fmt"

	"github.com/mcncl/dartyper/internal/config"
	"github.com/mcncl/dartyper/internal/models"
	"github.com/mcncl/dartyper/internal/naming"
)

// RootValueKey is the field used when the JSON root is not an object.
const RootValueKey = "value"

// NameSet records the class names already produced by one Analyze call.
type NameSet struct {
	names map[string]struct{}
}

// NewNameSet returns an empty set.
func NewNameSet() *NameSet {
	return &NameSet{names: make(map[string]struct{})}
}

// Add inserts name and reports whether it was absent.
func (s *NameSet) Add(name string) bool {
	if _, ok := s.names[name]; ok {
		return false
	}
	s.names[name] = struct{}{}
	return true
}

// Analyzer infers a class schema tree from a sample JSON value.
type Analyzer struct {
	config *config.Config
}

// NewAnalyzer creates a new Analyzer instance.
func NewAnalyzer() *Analyzer {
	return &Analyzer{config: config.NewConfig()}
}

// NewAnalyzerWithConfig creates a new Analyzer instance with custom configuration.
func NewAnalyzerWithConfig(cfg *config.Config) *Analyzer {
	return &Analyzer{config: cfg}
}

// scope is threaded unchanged through one Analyze call.
type scope struct {
	rootClass string
	role      models.Role
	seen      *NameSet
}

// Analyze builds the schema for className from the sample. Every call owns
// a fresh NameSet, so repeated calls with equal inputs give equal trees.
func (a *Analyzer) Analyze(ir models.IntermediateRepresentation, className string, role models.Role) *models.ClassSchema {
	sc := scope{rootClass: className, role: role, seen: NewNameSet()}
	sc.seen.Add(className)

	root := ir.Root
	switch {
	case root.Kind == models.Object:
		return a.buildClass(root.Members, className, sc)
	case ir.RootIsArray && len(root.Items) > 0 && root.Items[0].Kind == models.Object:
		// The class describes one element; the caller decodes a list of them.
		return a.buildClass(root.Items[0].Members, className, sc)
	default:
		return a.buildClass([]models.Member{{Key: RootValueKey, Value: root}}, className, sc)
	}
}

// buildClass walks members in source order. Nested classes are built before
// the field that references them is recorded.
func (a *Analyzer) buildClass(members []models.Member, name string, sc scope) *models.ClassSchema {
	class := &models.ClassSchema{
		Name:   name,
		Role:   sc.role,
		Fields: make([]models.FieldSchema, 0, len(members)),
	}
	used := make(map[string]bool, len(members))

	for _, m := range members {
		typ, nested := a.inferType(m.Value, m.Key, sc)
		class.Nested = append(class.Nested, nested...)
		class.Fields = append(class.Fields, models.FieldSchema{
			SourceKey:  m.Key,
			Identifier: uniqueIdentifier(naming.FieldIdentifier(m.Key, a.config.Model.FieldCase), used),
			Type:       typ,
			Nullable:   a.nullable(m.Value),
		})
	}
	return class
}

// uniqueIdentifier numbers an identifier already taken in the same class,
// e.g. user_name and userName become userName and userName_2.
func uniqueIdentifier(ident string, used map[string]bool) string {
	candidate := ident
	for n := 2; used[candidate]; n++ {
		candidate = fmt.Sprintf("%s_%d", ident, n)
	}
	used[candidate] = true
	return candidate
}

// inferType maps a JSON value to a type. It returns the classes it had to
// build on the way; a name already in the set is referenced, not rebuilt.
func (a *Analyzer) inferType(v models.Value, key string, sc scope) (models.TypeRef, []*models.ClassSchema) {
	switch v.Kind {
	case models.Null:
		return models.PrimitiveType(models.PrimDynamic), nil
	case models.Bool:
		return models.PrimitiveType(models.PrimBool), nil
	case models.Number:
		return models.PrimitiveType(models.PrimNum), nil
	case models.String:
		return models.PrimitiveType(models.PrimString), nil
	case models.Object:
		name := naming.NestedClassName(sc.rootClass, key)
		return models.ClassRef(name), a.materialize(v.Members, name, sc)
	case models.Array:
		if len(v.Items) == 0 {
			return models.ListOf(models.PrimitiveType(models.PrimDynamic)), nil
		}
		// Only the first element is inspected.
		first := v.Items[0]
		if first.Kind == models.Object {
			name := naming.ArrayItemClassName(sc.rootClass, key, a.config.Arrays.SingularizeNames)
			return models.ListOf(models.ClassRef(name)), a.materialize(first.Members, name, sc)
		}
		elem, nested := a.inferType(first, key, sc)
		return models.ListOf(elem), nested
	default:
		panic(fmt.Sprintf("analyzer: unhandled JSON kind %v", v.Kind))
	}
}

func (a *Analyzer) materialize(members []models.Member, name string, sc scope) []*models.ClassSchema {
	if !sc.seen.Add(name) {
		return nil
	}
	return []*models.ClassSchema{a.buildClass(members, name, sc)}
}

// nullable applies the configured null-safety mode. Observed nulls are
// always nullable.
func (a *Analyzer) nullable(v models.Value) bool {
	if v.Kind == models.Null {
		return true
	}
	return a.config.Model.NullSafety == config.NullSafetyNullable
}
