package generator

import (
	"encoding/json"
	"reflect"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/apidoc/api"
	"github.com/vitalvas/apidoc/internal/fixtures"
	"github.com/vitalvas/apidoc/internal/fixtures/pet"
	"github.com/vitalvas/apidoc/metadata"
	"github.com/vitalvas/apidoc/openapi"
)

var refPattern = regexp.MustCompile(`"\$ref":"#/components/schemas/([^"]+)"`)

// Pet collides with pet.Pet by name.
type Pet struct{}

func newTestGenerator(types ...any) *Generator {
	return New(api.NewConfig("Test API").Register(types...), testExtractor())
}

func compile[T any](t *testing.T, g *Generator) *openapi.Schema {
	t.Helper()

	schema, err := g.TypeToSchema(g.Registry().Of(reflect.TypeFor[T]()), nil)
	require.NoError(t, err)

	return schema
}

func schemaJSON(t *testing.T, schema *openapi.Schema) string {
	t.Helper()

	data, err := json.Marshal(schema.ToMap(false))
	require.NoError(t, err)

	return string(data)
}

func TestTypeToSchemaPlainObject(t *testing.T) {
	schema := compile[fixtures.PlainObject](t, newTestGenerator())

	assert.Equal(t, "PlainObject", schema.Name)
	assert.Equal(t,
		`{"type":"object","properties":{`+
			`"int":{"type":"integer","nullable":false},`+
			`"string":{"type":"string","nullable":false},`+
			`"bool":{"type":"boolean","nullable":false},`+
			`"float":{"type":"number","format":"float","nullable":false},`+
			`"nullableInt":{"type":"integer","nullable":true}},`+
			`"nullable":false}`,
		schemaJSON(t, schema))
}

func TestTypeToSchemaEnums(t *testing.T) {
	g := newTestGenerator()

	pure := compile[fixtures.PureEnum](t, g)
	assert.Equal(t, "PureEnum", pure.Name)
	assert.Equal(t, `{"type":"string","enum":["FOO","BAR","BAZ"],"nullable":false}`, schemaJSON(t, pure))

	backed := compile[fixtures.StringEnum](t, g)
	assert.Equal(t, "StringEnum", backed.Name)
	assert.Equal(t, `{"type":"string","enum":["foo","bar","baz"],"nullable":false}`, schemaJSON(t, backed))

	holder := compile[fixtures.Enums](t, g)
	assert.Equal(t,
		`{"type":"object","properties":{`+
			`"pure":{"$ref":"#/components/schemas/PureEnum"},`+
			`"string":{"$ref":"#/components/schemas/StringEnum"}},"nullable":false}`,
		schemaJSON(t, holder))
}

func TestTypeToSchemaArrays(t *testing.T) {
	g := newTestGenerator(fixtures.PlainObject{})
	schema := compile[fixtures.Arrays](t, g)

	assert.Equal(t,
		`{"type":"object","properties":{`+
			`"array":{"type":"array","items":{"type":"integer","nullable":false},"nullable":false},`+
			`"strings":{"type":"array","items":{"type":"string","nullable":false},"nullable":false},`+
			`"objects":{"type":"array","items":{"$ref":"#/components/schemas/PlainObject"},"nullable":false},`+
			`"untyped":{"type":"array","nullable":false}},`+
			`"nullable":false}`,
		schemaJSON(t, schema))
}

func TestTypeToSchemaUnion(t *testing.T) {
	g := newTestGenerator()

	schema := compile[fixtures.UnionType](t, g)
	assert.Equal(t,
		`{"type":"object","properties":{"intOrString":{`+
			`"nullable":false,"oneOf":[{"type":"string","nullable":false},{"type":"integer","nullable":false}]}},`+
			`"nullable":false}`,
		schemaJSON(t, schema))

	nullable := compile[fixtures.NullableUnion](t, g)
	value, ok := nullable.Properties.Get("value")
	require.True(t, ok)
	assert.True(t, value.IsNullable())
	assert.Len(t, value.OneOf, 2)
}

func TestTypeToSchemaDefaultValue(t *testing.T) {
	g := newTestGenerator()

	plainInt := compile[int](t, g)

	schema := compile[fixtures.DefaultValue](t, g)
	assert.Equal(t,
		`{"type":"object","properties":{`+
			`"intWithDefault":{"type":"integer","nullable":true},`+
			`"nullableIntWithDefault":{"type":"integer","nullable":true},`+
			`"plain":{"type":"integer","nullable":false}},`+
			`"nullable":false}`,
		schemaJSON(t, schema))

	assert.False(t, plainInt.IsNullable())

	plain, ok := schema.Properties.Get("plain")
	require.True(t, ok)
	assert.Same(t, plainInt, plain)
}

func TestTypeToSchemaCycle(t *testing.T) {
	g := newTestGenerator()
	node := compile[fixtures.Node](t, g)

	children, ok := node.Properties.Get("children")
	require.True(t, ok)
	assert.Same(t, node, children.Items)

	parent, ok := node.Properties.Get("parent")
	require.True(t, ok)
	assert.Equal(t, "Node", parent.Name)
	assert.True(t, parent.IsNullable())

	assert.Same(t, node, compile[fixtures.Node](t, g))
}

func TestTypeToSchemaScalars(t *testing.T) {
	schema := compile[fixtures.Scalars](t, newTestGenerator())

	assert.Equal(t,
		`{"type":"object","properties":{`+
			`"id":{"type":"string","format":"uuid","nullable":false},`+
			`"createdAt":{"type":"string","format":"date-time","nullable":false},`+
			`"payload":{"type":"string","format":"byte","nullable":false},`+
			`"ratio":{"type":"number","format":"float","nullable":false},`+
			`"count":{"type":"integer","nullable":false}},`+
			`"nullable":false}`,
		schemaJSON(t, schema))
}

func TestTypeToSchemaImportAlias(t *testing.T) {
	g := newTestGenerator(pet.Pet{})
	schema := compile[fixtures.Appointment](t, g)

	assert.Equal(t,
		`{"type":"object","properties":{`+
			`"owner":{"$ref":"#/components/schemas/Pet"},`+
			`"guests":{"type":"array","items":{"$ref":"#/components/schemas/Pet"},"nullable":false},`+
			`"kind":{"$ref":"#/components/schemas/PetType"},`+
			`"anything":{"nullable":false}},`+
			`"nullable":false}`,
		schemaJSON(t, schema))

	kind, ok := schema.Properties.Get("kind")
	require.True(t, ok)
	assert.True(t, kind.IsNullable())
}

func TestTypeToSchemaEmbedded(t *testing.T) {
	schema := compile[fixtures.Audited](t, newTestGenerator())

	assert.Equal(t,
		`{"type":"object","properties":{`+
			`"createdAt":{"type":"string","format":"date-time","nullable":false},`+
			`"name":{"type":"string","nullable":false}},`+
			`"nullable":false}`,
		schemaJSON(t, schema))
}

func TestTypeToSchemaConstructorPromotion(t *testing.T) {
	schema := compile[fixtures.Labels](t, newTestGenerator())

	values, ok := schema.Properties.Get("values")
	require.True(t, ok)
	require.NotNil(t, values.Items)
	assert.Equal(t, "string", values.Items.Type)
}

func TestTypeToSchemaGeneric(t *testing.T) {
	schema := compile[fixtures.Page[pet.Pet]](t, newTestGenerator())

	assert.Equal(t, "PagePet", schema.Name)

	items, ok := schema.Properties.Get("items")
	require.True(t, ok)
	require.NotNil(t, items.Items)
	assert.Equal(t, "Pet", items.Items.Name)
}

func TestTypeToSchemaCache(t *testing.T) {
	g := newTestGenerator(pet.Pet{})

	t.Run("identical keys share nodes", func(t *testing.T) {
		first := compile[pet.Pet](t, g)
		second := compile[pet.Pet](t, g)
		assert.Same(t, first, second)

		nullable := compile[*pet.Pet](t, g)
		assert.NotSame(t, first, nullable)
		assert.True(t, nullable.IsNullable())
	})

	t.Run("hint is part of the key", func(t *testing.T) {
		anyType := g.Registry().Of(reflect.TypeFor[[]any]())

		ints, err := g.TypeToSchema(anyType, &metadata.ArrayMetadata{Type: "int", List: true})
		require.NoError(t, err)

		strs, err := g.TypeToSchema(anyType, &metadata.ArrayMetadata{Type: "string", List: true})
		require.NoError(t, err)

		again, err := g.TypeToSchema(anyType, &metadata.ArrayMetadata{Type: "int", List: true})
		require.NoError(t, err)

		assert.NotSame(t, ints, strs)
		assert.Same(t, ints, again)
		assert.Equal(t, "integer", ints.Items.Type)
		assert.Equal(t, "string", strs.Items.Type)
	})

	t.Run("scalar hint on any names the type", func(t *testing.T) {
		hinted, err := g.TypeToSchema(g.Registry().Of(reflect.TypeFor[any]()), &metadata.ArrayMetadata{
			Type: "github.com/vitalvas/apidoc/internal/fixtures/pet.Pet",
		})
		require.NoError(t, err)
		assert.Same(t, compile[pet.Pet](t, g), hinted)
	})

	t.Run("any without hint", func(t *testing.T) {
		schema := compile[any](t, g)
		assert.Empty(t, schema.Type)
		assert.False(t, schema.IsNameable())
	})
}

func TestTypeToSchemaOpenAPITag(t *testing.T) {
	g := newTestGenerator()

	plainString := compile[string](t, g)
	schema := compile[fixtures.Constrained](t, g)

	property := func(name string) *openapi.Schema {
		t.Helper()

		child, ok := schema.Properties.Get(name)
		require.True(t, ok)

		return child
	}

	assert.Equal(t,
		`{"type":"string","pattern":"^[a-z]+$","minLength":1,"maxLength":64,"example":"rex","nullable":false}`,
		schemaJSON(t, property("name")))
	assert.Equal(t,
		`{"type":"integer","minimum":0,"maximum":30,"exclusiveMaximum":true,"default":3,"nullable":false}`,
		schemaJSON(t, property("age")))
	assert.Equal(t,
		`{"type":"array","minItems":1,"uniqueItems":true,"items":{"type":"string","nullable":false},"nullable":false}`,
		schemaJSON(t, property("tags")))
	assert.Equal(t,
		`{"type":"string","enum":["fast","slow"],"nullable":false,"readOnly":true}`,
		schemaJSON(t, property("mode")))

	t.Run("untagged fields share nodes", func(t *testing.T) {
		assert.Same(t, plainString, property("plain"))
		assert.NotSame(t, plainString, property("name"))
		assert.Equal(t, `{"type":"string","nullable":false}`, schemaJSON(t, plainString))
	})

	t.Run("referenced types ignore tags", func(t *testing.T) {
		kind := property("kind")
		assert.Same(t, compile[fixtures.StringEnum](t, g), kind)
		assert.Nil(t, kind.MinLength)
	})

	t.Run("malformed value", func(t *testing.T) {
		_, err := g.TypeToSchema(g.Registry().Of(reflect.TypeFor[fixtures.MalformedTag]()), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MalformedTag.Name")
		assert.Contains(t, err.Error(), "minLength")
	})

	t.Run("unknown keyword", func(t *testing.T) {
		_, err := g.TypeToSchema(g.Registry().Of(reflect.TypeFor[fixtures.UnknownTag]()), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown keyword "colour"`)
	})
}

func TestTypeToSchemaExample(t *testing.T) {
	schema := compile[fixtures.Sample](t, newTestGenerator())

	assert.Equal(t, "Sample", schema.Name)
	assert.Equal(t,
		`{"type":"object","properties":{`+
			`"name":{"type":"string","nullable":false},`+
			`"count":{"type":"integer","nullable":false}},`+
			`"example":{"count":2,"name":"Rex"},"nullable":false}`,
		schemaJSON(t, schema))
}

func TestTypeToSchemaEmptyEnum(t *testing.T) {
	schema := compile[fixtures.EmptyEnum](t, newTestGenerator())

	assert.Equal(t, "EmptyEnum", schema.Name)
	assert.Empty(t, schema.Enum)
	assert.Equal(t, `{"type":"string","nullable":false}`, schemaJSON(t, schema))
}

func TestTypeToSchemaUnsupported(t *testing.T) {
	g := newTestGenerator()

	for _, rt := range []reflect.Type{
		reflect.TypeFor[chan int](),
		reflect.TypeFor[func()](),
		reflect.TypeFor[complex64](),
	} {
		_, err := g.TypeToSchema(g.Registry().Of(rt), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTypeNotSupported)

		var notSupported *TypeNotSupportedError
		require.ErrorAs(t, err, &notSupported)
		assert.Equal(t, rt.String(), notSupported.Type)
	}
}

func TestSchemaName(t *testing.T) {
	g := newTestGenerator()

	assert.Equal(t, "Pet", g.schemaName(reflect.TypeFor[pet.Pet]()))
	assert.Equal(t, "GeneratorPet", g.schemaName(reflect.TypeFor[Pet]()))
	assert.Equal(t, "Pet", g.schemaName(reflect.TypeFor[pet.Pet]()))
	assert.Empty(t, g.schemaName(reflect.TypeFor[struct{ A int }]()))

	assert.Equal(t, "Http", pkgPrefix("net/http"))
	assert.Equal(t, "Go_ordered_map", pkgPrefix("github.com/wk8/go-ordered-map"))
	assert.Empty(t, pkgPrefix(""))
}

func TestTypeNotSupportedError(t *testing.T) {
	err := &TypeNotSupportedError{Type: "chan int"}
	assert.Equal(t, `the type "chan int" is currently not supported`, err.Error())

	err = &TypeNotSupportedError{Type: "x.Y", Reason: "not registered"}
	assert.Equal(t, `the type "x.Y" is currently not supported: not registered`, err.Error())
	assert.ErrorIs(t, err, ErrTypeNotSupported)
}
