package modelgen

import (
	"fmt"

	"github.com/mcncl/dartyper/internal/config"
	"github.com/mcncl/dartyper/internal/errors"
	"github.com/mcncl/dartyper/internal/models"
)

// Entry is one model of a collection document:
//
//	{"Login": {"type": "Request", "data": {...}}}
type Entry struct {
	Name string
	Role models.Role
	Data models.Value
}

// EntryError reports a collection entry that could not be generated.
type EntryError struct {
	Name string
	Err  error
}

func (e *EntryError) Error() string { return fmt.Sprintf("%s: %v", e.Name, e.Err) }

func (e *EntryError) Unwrap() error { return e.Err }

// CollectionResult holds the generated files in document order and the
// entries that were skipped.
type CollectionResult struct {
	Results []*Result
	Errors  []*EntryError
}

// ParseCollection splits a collection document into entries. Malformed
// entries are returned as errors and do not stop the others.
func ParseCollection(ir models.IntermediateRepresentation) ([]Entry, []*EntryError, error) {
	if ir.Root.Kind != models.Object {
		return nil, nil, errors.NewInputError(
			fmt.Sprintf("collection must be a JSON object, got %s", ir.Root.Kind),
			errors.ErrInvalidCollection,
		)
	}

	var (
		entries []Entry
		bad     []*EntryError
	)
	for _, m := range ir.Root.Members {
		entry, err := parseEntry(m)
		if err != nil {
			bad = append(bad, &EntryError{Name: m.Key, Err: err})
			continue
		}
		entries = append(entries, entry)
	}
	return entries, bad, nil
}

func parseEntry(m models.Member) (Entry, error) {
	invalid := func(format string, args ...any) error {
		return errors.NewInputError(fmt.Sprintf(format, args...), errors.ErrInvalidCollection)
	}

	if m.Key == "" {
		return Entry{}, invalid("model name is empty")
	}
	if m.Value.Kind != models.Object {
		return Entry{}, invalid("entry must be an object with \"type\" and \"data\"")
	}

	typ, ok := m.Value.Get("type")
	if !ok || typ.Kind != models.String {
		return Entry{}, invalid("entry needs a string \"type\"")
	}
	role, ok := models.ParseRole(typ.Str)
	if !ok {
		return Entry{}, invalid("unknown type %q (want Request, Response or none)", typ.Str)
	}

	data, ok := m.Value.Get("data")
	if !ok {
		return Entry{}, invalid("entry has no \"data\"")
	}

	return Entry{Name: m.Key, Role: role, Data: data}, nil
}

// GenerateCollection generates every well-formed entry of a collection. Each
// entry is analysed on its own, so equal nested names in two entries do not
// affect each other.
func GenerateCollection(ir models.IntermediateRepresentation, cfg *config.Config) (*CollectionResult, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	entries, bad, err := ParseCollection(ir)
	if err != nil {
		return nil, err
	}

	out := &CollectionResult{Errors: bad}
	for _, e := range entries {
		sample := models.IntermediateRepresentation{Root: e.Data, RootIsArray: e.Data.Kind == models.Array}
		res, err := Generate(sample, Options{BaseName: e.Name, Role: e.Role}, cfg)
		if err != nil {
			out.Errors = append(out.Errors, &EntryError{Name: e.Name, Err: err})
			continue
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
