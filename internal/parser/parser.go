package parser

import (
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/mcncl/dartyper/internal/errors" // Custom errors package
	"github.com/mcncl/dartyper/internal/models"
)

// Parse converts JSON data from an io.Reader into an IntermediateRepresentation.
// The document is read token by token so object keys keep their source order.
func Parse(reader io.Reader) (models.IntermediateRepresentation, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Ensure numbers are read as json.Number

	first, err := decoder.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.IntermediateRepresentation{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.IntermediateRepresentation{}, syntaxError(err)
	}

	root, err := valueFromToken(decoder, first)
	if err != nil {
		return models.IntermediateRepresentation{}, syntaxError(err)
	}

	// Anything after the first value other than whitespace is rejected.
	if _, err := decoder.Token(); err == nil {
		return models.IntermediateRepresentation{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.IntermediateRepresentation{}, errors.NewParsingError("invalid trailing data after first JSON value", err)
	}

	return models.IntermediateRepresentation{
		Root:        root,
		RootIsArray: root.Kind == models.Array,
	}, nil
}

// syntaxError maps decoder failures onto the parsing error category.
func syntaxError(err error) error {
	var syntaxErr *json.SyntaxError
	if stderrors.As(err, &syntaxErr) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxErr.Offset),
			errors.ErrInvalidJSON,
		)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", errors.ErrInvalidJSON)
	}
	return errors.NewParsingError("failed to decode JSON", fmt.Errorf("%w: %v", errors.ErrInvalidJSON, err))
}

func readValue(dec *json.Decoder) (models.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Value{}, io.ErrUnexpectedEOF
		}
		return models.Value{}, err
	}
	return valueFromToken(dec, tok)
}

func valueFromToken(dec *json.Decoder, tok json.Token) (models.Value, error) {
	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			return readObject(dec)
		case '[':
			return readArray(dec)
		}
		return models.Value{}, fmt.Errorf("unexpected delimiter %q", rune(v))
	case string:
		return models.StringValue(v), nil
	case json.Number:
		return models.NumberValue(string(v)), nil
	case float64:
		return models.NumberValue(strconv.FormatFloat(v, 'g', -1, 64)), nil
	case bool:
		return models.BoolValue(v), nil
	case nil:
		return models.NullValue(), nil
	default:
		return models.Value{}, fmt.Errorf("unexpected JSON token %T", tok)
	}
}

// readObject reads members up to the closing brace. A repeated key keeps the
// position of its first occurrence and the value of its last.
func readObject(dec *json.Decoder) (models.Value, error) {
	var members []models.Member
	index := make(map[string]int)

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return models.Value{}, unexpectedEOF(err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return models.Value{}, fmt.Errorf("object key must be a string, got %T", keyTok)
		}
		val, err := readValue(dec)
		if err != nil {
			return models.Value{}, err
		}
		if i, dup := index[key]; dup {
			members[i].Value = val
			continue
		}
		index[key] = len(members)
		members = append(members, models.Member{Key: key, Value: val})
	}

	if err := expectDelim(dec, '}'); err != nil {
		return models.Value{}, err
	}
	return models.ObjectValue(members...), nil
}

func readArray(dec *json.Decoder) (models.Value, error) {
	var items []models.Value
	for dec.More() {
		item, err := readValue(dec)
		if err != nil {
			return models.Value{}, err
		}
		items = append(items, item)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return models.Value{}, err
	}
	return models.ArrayValue(items...), nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return unexpectedEOF(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", rune(want), tok)
	}
	return nil
}

func unexpectedEOF(err error) error {
	if stderrors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.IntermediateRepresentation{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		_ = file.Close()
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file)
}
