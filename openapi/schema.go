package openapi

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// RefPrefix is the location of named schemas inside a document.
const RefPrefix = "#/components/schemas/"

// Map is an insertion-ordered JSON object. Every serialized tree of this
// package is built from Map values so that encoding is deterministic.
type Map = orderedmap.OrderedMap[string, any]

// Properties maps property names to schemas in declaration order.
type Properties = orderedmap.OrderedMap[string, *Schema]

// NewMap creates an empty ordered JSON object.
func NewMap() *Map {
	return orderedmap.New[string, any]()
}

// NewProperties creates an empty ordered property map.
func NewProperties() *Properties {
	return orderedmap.New[string, *Schema]()
}

// Schema is a node of the schema graph. A schema with a Name is nameable: it
// is expanded once under components and referenced by $ref everywhere else.
// Nil and empty fields are absent from the serialized form.
//
// See: https://spec.openapis.org/oas/v3.0.3#schema-object
type Schema struct {
	Name string

	Type    string
	Format  string
	Pattern string

	MinLength *int
	MaxLength *int

	Minimum          *float64
	Maximum          *float64
	ExclusiveMinimum *bool
	ExclusiveMaximum *bool

	MinItems    *int
	MaxItems    *int
	UniqueItems *bool

	MinProperties *int
	MaxProperties *int

	Required             []string
	Items                *Schema
	Properties           *Properties
	AdditionalProperties *bool

	Default any
	Example any
	Enum    []any

	// Nullable is a pointer so that an explicit false is serialized.
	Nullable  *bool
	ReadOnly  *bool
	WriteOnly *bool

	AllOf []*Schema
	OneOf []*Schema
	AnyOf []*Schema
}

// Bool returns a pointer to v.
func Bool(v bool) *bool {
	return &v
}

// IsNameable reports whether the schema is emitted as a named component.
func (s *Schema) IsNameable() bool {
	return s.Name != ""
}

// IsNullable reports whether the schema admits null.
func (s *Schema) IsNullable() bool {
	return s.Nullable != nil && *s.Nullable
}

// Ref returns the reference to the named component of the schema.
func (s *Schema) Ref() string {
	return RefPrefix + s.Name
}

// ToMap serializes the schema. A nameable schema serialized as reference is
// reduced to its $ref; otherwise every populated field is emitted in OpenAPI
// key order. Children are always serialized as references.
func (s *Schema) ToMap(asReference bool) *Map {
	m := NewMap()

	if asReference && s.IsNameable() {
		m.Set("$ref", s.Ref())
		return m
	}

	setString(m, "type", s.Type)
	setString(m, "format", s.Format)
	setString(m, "pattern", s.Pattern)
	setPointer(m, "minLength", s.MinLength)
	setPointer(m, "maxLength", s.MaxLength)
	setPointer(m, "minimum", s.Minimum)
	setPointer(m, "maximum", s.Maximum)
	setPointer(m, "exclusiveMinimum", s.ExclusiveMinimum)
	setPointer(m, "exclusiveMaximum", s.ExclusiveMaximum)
	setPointer(m, "minItems", s.MinItems)
	setPointer(m, "maxItems", s.MaxItems)
	setPointer(m, "uniqueItems", s.UniqueItems)
	setPointer(m, "minProperties", s.MinProperties)
	setPointer(m, "maxProperties", s.MaxProperties)

	if len(s.Required) > 0 {
		m.Set("required", s.Required)
	}

	if s.Items != nil {
		m.Set("items", s.Items.ToMap(true))
	}

	if s.Properties != nil && s.Properties.Len() > 0 {
		props := NewMap()
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			props.Set(pair.Key, pair.Value.ToMap(true))
		}

		m.Set("properties", props)
	}

	setPointer(m, "additionalProperties", s.AdditionalProperties)

	if s.Default != nil {
		m.Set("default", s.Default)
	}

	if s.Example != nil {
		m.Set("example", s.Example)
	}

	if len(s.Enum) > 0 {
		m.Set("enum", s.Enum)
	}

	setPointer(m, "nullable", s.Nullable)
	setPointer(m, "readOnly", s.ReadOnly)
	setPointer(m, "writeOnly", s.WriteOnly)

	setSchemas(m, "allOf", s.AllOf)
	setSchemas(m, "oneOf", s.OneOf)
	setSchemas(m, "anyOf", s.AnyOf)

	return m
}

// Schemas returns the direct children of the schema: properties in order,
// then items and the members of allOf, oneOf and anyOf.
func (s *Schema) Schemas() []*Schema {
	var children []*Schema

	if s.Properties != nil {
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			children = append(children, pair.Value)
		}
	}

	if s.Items != nil {
		children = append(children, s.Items)
	}

	children = append(children, s.AllOf...)
	children = append(children, s.OneOf...)
	children = append(children, s.AnyOf...)

	return children
}

func setSchemas(m *Map, key string, schemas []*Schema) {
	if len(schemas) == 0 {
		return
	}

	list := make([]any, 0, len(schemas))
	for _, schema := range schemas {
		list = append(list, schema.ToMap(true))
	}

	m.Set(key, list)
}

func setString(m *Map, key, value string) {
	if value != "" {
		m.Set(key, value)
	}
}

func setBool(m *Map, key string, value bool) {
	if value {
		m.Set(key, true)
	}
}

func setPointer[T any](m *Map, key string, value *T) {
	if value != nil {
		m.Set(key, *value)
	}
}
