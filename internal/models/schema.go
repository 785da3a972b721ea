package models

import "strings"

// Role classifies a generated class by the JSON direction it supports.
type Role int

const (
	// RoleNeutral classes both decode and encode.
	RoleNeutral Role = iota
	// RoleRequest classes only encode (toJson).
	RoleRequest
	// RoleResponse classes only decode (fromJson).
	RoleResponse
)

// Suffix is appended to a base name to form the final class name.
func (r Role) Suffix() string {
	switch r {
	case RoleRequest:
		return "Request"
	case RoleResponse:
		return "Response"
	default:
		return ""
	}
}

func (r Role) String() string {
	switch r {
	case RoleRequest:
		return "request"
	case RoleResponse:
		return "response"
	default:
		return "none"
	}
}

// Decodes reports whether classes of this role get a fromJson factory.
func (r Role) Decodes() bool { return r == RoleResponse || r == RoleNeutral }

// Encodes reports whether classes of this role get a toJson method.
func (r Role) Encodes() bool { return r == RoleRequest || r == RoleNeutral }

// ParseRole maps a user-supplied role name to a Role.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "request":
		return RoleRequest, true
	case "response":
		return RoleResponse, true
	case "none", "neutral", "":
		return RoleNeutral, true
	}
	return RoleNeutral, false
}

// TypeKind categorizes a TypeRef.
type TypeKind int

const (
	TypePrimitive TypeKind = iota
	TypeList
	TypeClass
)

// Primitive is one of the scalar Dart types a JSON leaf maps to.
type Primitive int

const (
	PrimDynamic Primitive = iota
	PrimString
	PrimNum
	PrimBool
)

// DartName returns the Dart spelling of the primitive.
func (p Primitive) DartName() string {
	switch p {
	case PrimString:
		return "String"
	case PrimNum:
		return "num"
	case PrimBool:
		return "bool"
	default:
		return "dynamic"
	}
}

// TypeRef is the inferred type of a field.
type TypeRef struct {
	Kind      TypeKind
	Primitive Primitive // valid for TypePrimitive
	Elem      *TypeRef  // valid for TypeList
	ClassName string    // valid for TypeClass
}

func PrimitiveType(p Primitive) TypeRef { return TypeRef{Kind: TypePrimitive, Primitive: p} }

func ListOf(elem TypeRef) TypeRef { return TypeRef{Kind: TypeList, Elem: &elem} }

func ClassRef(name string) TypeRef { return TypeRef{Kind: TypeClass, ClassName: name} }

// IsDynamic reports whether t is the untyped placeholder.
func (t TypeRef) IsDynamic() bool {
	return t.Kind == TypePrimitive && t.Primitive == PrimDynamic
}

// ContainsClass reports whether a class reference appears anywhere in t.
func (t TypeRef) ContainsClass() bool {
	switch t.Kind {
	case TypeClass:
		return true
	case TypeList:
		return t.Elem != nil && t.Elem.ContainsClass()
	default:
		return false
	}
}

// DartName renders the type without a nullability marker.
func (t TypeRef) DartName() string {
	switch t.Kind {
	case TypeClass:
		return t.ClassName
	case TypeList:
		if t.Elem == nil {
			return "List<dynamic>"
		}
		return "List<" + t.Elem.DartName() + ">"
	default:
		return t.Primitive.DartName()
	}
}

// FieldSchema describes one field of a generated class.
type FieldSchema struct {
	SourceKey  string
	Identifier string
	Type       TypeRef
	Nullable   bool
}

// Renamed reports whether the identifier differs from the JSON key.
func (f FieldSchema) Renamed() bool { return f.SourceKey != f.Identifier }

// ClassSchema describes one generated class. Nested holds the classes first
// built while walking this class's fields, in field-encounter order.
type ClassSchema struct {
	Name   string
	Role   Role
	Fields []FieldSchema
	Nested []*ClassSchema
}

// Walk visits c and its nested classes depth-first, parents first.
func (c *ClassSchema) Walk(fn func(*ClassSchema)) {
	if c == nil {
		return
	}
	fn(c)
	for _, n := range c.Nested {
		n.Walk(fn)
	}
}

// Flatten returns the classes in emission order.
func (c *ClassSchema) Flatten() []*ClassSchema {
	var out []*ClassSchema
	c.Walk(func(cs *ClassSchema) { out = append(out, cs) })
	return out
}
