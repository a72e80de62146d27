package generator

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/vitalvas/apidoc/metadata"
	"github.com/vitalvas/apidoc/openapi"
	"github.com/vitalvas/apidoc/typeinfo"
)

var uuidType = reflect.TypeFor[uuid.UUID]()

// builtInTypeMappings maps reflect kinds to OpenAPI primitive types.
//
// See: https://spec.openapis.org/oas/v3.0.3#data-types
var builtInTypeMappings = map[reflect.Kind]string{
	reflect.Bool:   "boolean",
	reflect.String: "string",
	reflect.Int:    "integer",
	reflect.Int8:   "integer",
	reflect.Int16:  "integer",
	reflect.Int32:  "integer",
	reflect.Int64:  "integer",
	reflect.Uint:   "integer",
	reflect.Uint8:  "integer",
	reflect.Uint16: "integer",
	reflect.Uint32: "integer",
	reflect.Uint64: "integer",
}

// TypeToSchema compiles t, refined by the optional element hint meta. Results
// are cached by qualified name, nullability and hint; the entry is stored
// before it is populated so that recursive types terminate.
func (g *Generator) TypeToSchema(t typeinfo.Type, meta *metadata.ArrayMetadata) (*openapi.Schema, error) {
	return g.compile(t, meta, "")
}

// compile is TypeToSchema for a struct field carrying an openapi tag. Tagged
// fields of anonymous types get their own node; named types are referenced,
// so their tags do not apply.
func (g *Generator) compile(t typeinfo.Type, meta *metadata.ArrayMetadata, tag string) (*openapi.Schema, error) {
	// A bare hint on an untyped value names the value's type.
	if t.Shape() == typeinfo.Any && meta != nil && !meta.List {
		hinted, err := g.resolve(meta.Type)
		if err != nil {
			return nil, err
		}

		if t.Nullable() {
			hinted = hinted.WithNullable(true)
		}

		return g.compile(hinted, nil, tag)
	}

	if tag != "" && nameable(t) {
		g.logger.Debug("ignoring openapi tag of a referenced schema", "type", t.Name(), "tag", tag)
		tag = ""
	}

	key := cacheKey{name: t.Name(), nullable: t.Nullable(), tag: tag}
	if meta != nil {
		key.hint = meta.DocBlock()
	}

	if schema, ok := g.schemas[key]; ok {
		return schema, nil
	}

	schema := &openapi.Schema{Nullable: openapi.Bool(t.Nullable())}
	g.schemas[key] = schema

	g.logger.Debug("compiling schema", "type", t.Name(), "shape", t.Shape().String(), "hint", key.hint)

	err := g.populate(t, schema, meta)
	if err == nil && tag != "" {
		err = applyTag(schema, tag)
	}

	if err != nil {
		delete(g.schemas, key)
		return nil, err
	}

	return schema, nil
}

// nameable reports whether t compiles to a component schema.
func nameable(t typeinfo.Type) bool {
	switch t.Shape() {
	case typeinfo.Enum, typeinfo.Object:
		return t.ShortName() != ""
	}

	return false
}

func (g *Generator) populate(t typeinfo.Type, schema *openapi.Schema, meta *metadata.ArrayMetadata) error {
	switch t.Shape() {
	case typeinfo.Iterable:
		return g.handleIterable(t, schema, meta)
	case typeinfo.Float:
		schema.Type = "number"
		schema.Format = "float"
	case typeinfo.Scalar:
		schema.Type, schema.Format = scalarType(t.Reflect())
	case typeinfo.Enum:
		return g.handleEnum(t, schema)
	case typeinfo.DateTime:
		schema.Type = "string"
		schema.Format = "date-time"
	case typeinfo.Object:
		return g.handleObject(t, schema)
	case typeinfo.Union:
		return g.handleUnion(t, schema)
	case typeinfo.Any:
		if meta != nil {
			return g.handleIterable(t, schema, meta)
		}
	default:
		return &TypeNotSupportedError{Type: t.Name()}
	}

	return nil
}

// handleIterable compiles slices, arrays and maps as arrays. Items come from
// the hint, or from the reflected element type when there is none. Map keys
// are not described.
func (g *Generator) handleIterable(t typeinfo.Type, schema *openapi.Schema, meta *metadata.ArrayMetadata) error {
	schema.Type = "array"

	var (
		items *openapi.Schema
		err   error
	)

	switch {
	case meta != nil:
		var elem typeinfo.Type

		elem, err = g.resolve(meta.Type)
		if err != nil {
			return err
		}

		items, err = g.TypeToSchema(elem, nil)
	default:
		rt, ok := t.Elem()
		if !ok {
			return nil
		}

		elem := g.registry.Of(rt)
		if elem.Shape() == typeinfo.Any {
			return nil
		}

		items, err = g.TypeToSchema(elem, nil)
	}

	if err != nil {
		return err
	}

	schema.Items = items

	return nil
}

func (g *Generator) handleEnum(t typeinfo.Type, schema *openapi.Schema) error {
	schema.Type = "string"
	schema.Name = g.schemaName(t.Reflect())

	cases := t.Cases()

	backed := len(cases) > 0
	for _, c := range cases {
		if c.Value == nil {
			backed = false
			break
		}
	}

	for _, c := range cases {
		if backed {
			schema.Enum = append(schema.Enum, literal(c.Value))
		} else {
			schema.Enum = append(schema.Enum, c.Name)
		}
	}

	return g.applyExample(t, schema)
}

// applyExample sets the example of a component schema from api.Exampler.
func (g *Generator) applyExample(t typeinfo.Type, schema *openapi.Schema) error {
	example, ok := t.Example()
	if !ok {
		return nil
	}

	value, err := exampleValue(example)
	if err != nil {
		return fmt.Errorf("example of %s: %w", t.ShortName(), err)
	}

	schema.Example = value

	return nil
}

func (g *Generator) handleObject(t typeinfo.Type, schema *openapi.Schema) error {
	rt := t.Reflect()

	schema.Name = g.schemaName(rt)
	schema.Type = "object"

	props := openapi.NewProperties()
	if err := g.collectProperties(t, g.requests[rt], props); err != nil {
		return err
	}

	schema.Properties = props

	return g.applyExample(t, schema)
}

// collectProperties compiles the fields of t into props, inlining embedded
// structs. Fields tagged validate:"-" are left out of request types.
func (g *Generator) collectProperties(t typeinfo.Type, request bool, props *openapi.Properties) error {
	classMeta, err := g.extractor.ClassMetadata(t.Reflect())
	if err != nil {
		return err
	}

	for _, field := range t.Fields() {
		if field.Embedded {
			if err := g.collectProperties(g.registry.Of(field.Type), request, props); err != nil {
				return err
			}

			continue
		}

		if request && field.SkipValidation {
			continue
		}

		ft := g.registry.Of(field.Type)

		// A field with a default may be omitted by clients.
		if field.HasDefault {
			ft = ft.WithNullable(true)
		}

		child, err := g.compile(ft, classMeta.Property(field.Name, field.Property), field.Tag)
		if err != nil {
			return fmt.Errorf("field %s.%s: %w", t.ShortName(), field.Name, err)
		}

		props.Set(field.Property, child)
	}

	return nil
}

func (g *Generator) handleUnion(t typeinfo.Type, schema *openapi.Schema) error {
	for _, member := range t.Members() {
		child, err := g.TypeToSchema(member, nil)
		if err != nil {
			return err
		}

		schema.OneOf = append(schema.OneOf, child)
	}

	return nil
}

// resolve turns an annotation type expression into a type.
func (g *Generator) resolve(expr string) (typeinfo.Type, error) {
	t, err := g.registry.Parse(expr)
	if err != nil {
		return typeinfo.Type{}, &TypeNotSupportedError{Type: expr, Reason: "not registered", Err: err}
	}

	return t, nil
}

// schemaName returns a unique component name for a named type. When two
// types from different packages share a name, the later one is prefixed
// with its package name, with a numeric suffix if that still collides.
//
// See: https://spec.openapis.org/oas/v3.0.3#components-object
func (g *Generator) schemaName(rt reflect.Type) string {
	simple := typeinfo.ShortName(rt)
	if simple == "" {
		return ""
	}

	if name, ok := g.typeNames[rt]; ok {
		return name
	}

	name := simple
	if existing, ok := g.nameTypes[name]; ok && existing != rt {
		name = pkgPrefix(rt.PkgPath()) + simple

		if existing, ok := g.nameTypes[name]; ok && existing != rt {
			base := name
			for i := 2; ; i++ {
				candidate := base + strconv.Itoa(i)
				if _, ok := g.nameTypes[candidate]; !ok {
					name = candidate
					break
				}
			}
		}
	}

	g.typeNames[rt] = name
	g.nameTypes[name] = rt

	return name
}

// pkgPrefix capitalizes the last segment of a package path for use as a
// component name prefix ("github.com/acme/pet" becomes "Pet").
func pkgPrefix(pkgPath string) string {
	if idx := strings.LastIndexByte(pkgPath, '/'); idx >= 0 {
		pkgPath = pkgPath[idx+1:]
	}

	if len(pkgPath) == 0 {
		return ""
	}

	pkgPath = strings.ReplaceAll(pkgPath, "-", "_")
	pkgPath = strings.ReplaceAll(pkgPath, ".", "_")

	return strings.ToUpper(pkgPath[:1]) + pkgPath[1:]
}

func scalarType(rt reflect.Type) (string, string) {
	switch {
	case rt == uuidType:
		return "string", "uuid"
	case rt.Kind() == reflect.Slice:
		return "string", "byte"
	}

	return builtInTypeMappings[rt.Kind()], ""
}

// literal converts an enum case value to its JSON form.
func literal(v any) any {
	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint()
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	case reflect.Bool:
		return rv.Bool()
	}

	return v
}
