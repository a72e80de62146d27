package openapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// Version is the OpenAPI version of generated documents.
const Version = "3.0.0"

// Document represents the root of an OpenAPI v3.0 document. Paths are kept in
// construction order and grouped by URI only when serialized.
//
// See: https://spec.openapis.org/oas/v3.0.3#openapi-object
type Document struct {
	OpenAPI string
	Info    Info
	Servers []Server
	Paths   []*Path
}

// NewDocument creates an empty document.
func NewDocument(info Info) *Document {
	return &Document{
		OpenAPI: Version,
		Info:    info,
	}
}

// AddPath appends an operation.
func (d *Document) AddPath(path *Path) *Document {
	d.Paths = append(d.Paths, path)
	return d
}

// NamedSchemas collects every nameable schema reachable from the paths,
// keyed by name in discovery order. Traversal descends through anonymous
// schemas and stops at names already recorded, so cycles terminate.
//
// See: https://spec.openapis.org/oas/v3.0.3#components-object
func (d *Document) NamedSchemas() *Properties {
	named := NewProperties()
	seen := make(map[*Schema]bool)

	var visit func(schema *Schema)
	visit = func(schema *Schema) {
		if seen[schema] {
			return
		}

		seen[schema] = true

		if schema.IsNameable() {
			if _, ok := named.Get(schema.Name); ok {
				return
			}

			named.Set(schema.Name, schema)
		}

		for _, child := range schema.Schemas() {
			visit(child)
		}
	}

	for _, path := range d.Paths {
		for _, schema := range path.Schemas() {
			visit(schema)
		}
	}

	return named
}

// ToMap serializes the document. Servers are always emitted; components only
// when at least one named schema exists.
func (d *Document) ToMap() *Map {
	m := NewMap()
	m.Set("openapi", d.OpenAPI)

	servers := make([]any, 0, len(d.Servers))
	for _, server := range d.Servers {
		servers = append(servers, server.ToMap())
	}

	m.Set("servers", servers)
	m.Set("info", d.Info.ToMap())

	paths := NewMap()
	for _, path := range d.Paths {
		var item *Map

		if v, ok := paths.Get(path.Path); ok {
			item = v.(*Map)
		} else {
			item = NewMap()
			paths.Set(path.Path, item)
		}

		item.Set(strings.ToLower(path.Method), path.ToMap())
	}

	m.Set("paths", paths)

	if named := d.NamedSchemas(); named.Len() > 0 {
		schemas := NewMap()
		for pair := named.Oldest(); pair != nil; pair = pair.Next() {
			schemas.Set(pair.Key, pair.Value.ToMap(false))
		}

		components := NewMap()
		components.Set("schemas", schemas)
		m.Set("components", components)
	}

	return m
}

// MarshalJSON encodes the document as compact JSON.
func (d *Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToMap())
}

// MarshalIndentJSON encodes the document as indented JSON.
func (d *Document) MarshalIndentJSON(prefix, indent string) ([]byte, error) {
	return json.MarshalIndent(d.ToMap(), prefix, indent)
}

// MarshalYAML implements yaml.Marshaler.
func (d *Document) MarshalYAML() (any, error) {
	return d.ToMap(), nil
}

// YAML encodes the document as YAML.
func (d *Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}

// Validate checks the serialized document against the OpenAPI 3.0 rules.
func (d *Document) Validate(ctx context.Context) error {
	data, err := d.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx

	spec, err := loader.LoadFromData(data)
	if err != nil {
		return fmt.Errorf("load document: %w", err)
	}

	if err := spec.Validate(ctx); err != nil {
		return fmt.Errorf("validate document: %w", err)
	}

	return nil
}

var _ yaml.Marshaler = (*Document)(nil)
