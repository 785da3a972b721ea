package models

import "fmt"

// Kind identifies which variant of the JSON union a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is a parsed JSON value. Exactly one payload field is meaningful,
// selected by Kind. Object members keep the order they had in the source.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  string // literal text, e.g. "1", "2.5e3"
	Str     string
	Items   []Value
	Members []Member
}

// Member is one key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

func NullValue() Value { return Value{Kind: Null} }
func BoolValue(b bool) Value { return Value{Kind: Bool, Bool: b} }
func NumberValue(n string) Value { return Value{Kind: Number, Number: n} }
func StringValue(s string) Value { return Value{Kind: String, Str: s} }
func ArrayValue(items ...Value) Value {
	return Value{Kind: Array, Items: items}
}

// ObjectValue builds an object from members in the given order.
func ObjectValue(members ...Member) Value {
	return Value{Kind: Object, Members: members}
}

// Get returns the value stored under key in an object.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != Object {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Keys returns object keys in source order.
func (v Value) Keys() []string {
	keys := make([]string, 0, len(v.Members))
	for _, m := range v.Members {
		keys = append(keys, m.Key)
	}
	return keys
}

// IntermediateRepresentation is a structure to hold the parsed JSON data
// in a way that's easy for the analyzer to work with.
type IntermediateRepresentation struct {
	Root        Value
	RootIsArray bool // True if the root of the JSON is an array vs an object
}
