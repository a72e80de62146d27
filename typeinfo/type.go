package typeinfo

import (
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vitalvas/apidoc/api"
)

// Shape is the classification of a Type. Shapes are assigned in declaration
// order: the first matching shape wins.
type Shape int

const (
	Unsupported Shape = iota
	Iterable
	Float
	Scalar
	Enum
	DateTime
	Object
	Union
	Any
)

var shapeNames = [...]string{
	Unsupported: "unsupported",
	Iterable:    "iterable",
	Float:       "float",
	Scalar:      "scalar",
	Enum:        "enum",
	DateTime:    "datetime",
	Object:      "object",
	Union:       "union",
	Any:         "any",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}

	return shapeNames[s]
}

var (
	enumType      = reflect.TypeFor[api.Enum]()
	examplerType  = reflect.TypeFor[api.Exampler]()
	responderType = reflect.TypeFor[api.Responder]()
	timeType      = reflect.TypeFor[time.Time]()
	uuidType      = reflect.TypeFor[uuid.UUID]()
	anyType       = reflect.TypeFor[any]()
)

// Type is a classified type. The zero value is an unsupported type without a
// name.
type Type struct {
	name     string
	nullable bool
	shape    Shape
	rtype    reflect.Type
	members  []Type
}

// Name returns the qualified name of the type. Union names join their members
// with "|".
func (t Type) Name() string { return t.name }

// Nullable reports whether the type admits null.
func (t Type) Nullable() bool { return t.nullable }

// Shape returns the classification of the type.
func (t Type) Shape() Shape { return t.shape }

// Reflect returns the underlying reflect.Type, nil for unions.
func (t Type) Reflect() reflect.Type { return t.rtype }

// Members returns the members of a union in written order.
func (t Type) Members() []Type { return t.members }

// ShortName returns the component name of the type, empty for types that
// cannot be named.
func (t Type) ShortName() string {
	if t.rtype == nil {
		return ""
	}

	return ShortName(t.rtype)
}

// WithNullable returns a copy of the type with the given nullability.
func (t Type) WithNullable(nullable bool) Type {
	t.nullable = nullable
	return t
}

// Elem returns the element type of an iterable: the value type for maps.
func (t Type) Elem() (reflect.Type, bool) {
	if t.shape != Iterable {
		return nil, false
	}

	return t.rtype.Elem(), true
}

// Implements reports whether the type or a pointer to it implements iface.
func (t Type) Implements(iface reflect.Type) bool {
	if t.rtype == nil {
		return false
	}

	return implements(t.rtype, iface)
}

// IsResponder reports whether the type implements api.Responder.
func (t Type) IsResponder() bool {
	return t.Implements(responderType)
}

// Method looks up an exported method declared on the type or on a pointer to
// it, promoted methods included.
func (t Type) Method(name string) (reflect.Method, bool) {
	if t.rtype == nil {
		return reflect.Method{}, false
	}

	return reflect.PointerTo(t.rtype).MethodByName(name)
}

// Cases returns the cases of an enum type.
func (t Type) Cases() []api.Case {
	if t.shape != Enum {
		return nil
	}

	if e, ok := reflect.Zero(t.rtype).Interface().(api.Enum); ok {
		return e.Cases()
	}

	if e, ok := reflect.New(t.rtype).Interface().(api.Enum); ok {
		return e.Cases()
	}

	return nil
}

// Example returns the example value of a named type implementing
// api.Exampler.
func (t Type) Example() (any, bool) {
	if t.rtype == nil || t.rtype.Name() == "" || !implements(t.rtype, examplerType) {
		return nil, false
	}

	if e, ok := reflect.Zero(t.rtype).Interface().(api.Exampler); ok {
		return e.OpenAPIExample(), true
	}

	if e, ok := reflect.New(t.rtype).Interface().(api.Exampler); ok {
		return e.OpenAPIExample(), true
	}

	return nil, false
}

// Field is an exported struct field as seen by the schema compiler.
type Field struct {
	// Name is the Go field name.
	Name string

	// Property is the serialized property name taken from the json tag.
	Property string

	Type reflect.Type

	// Embedded is set for anonymous struct fields whose fields are inlined.
	Embedded bool

	// HasDefault is set for fields carrying a default tag.
	HasDefault bool

	// Tag is the raw openapi struct tag with schema keywords for the field.
	Tag string

	// SkipValidation is set for fields tagged validate:"-".
	SkipValidation bool
}

// Fields returns the fields of an object type in declaration order. Fields
// tagged json:"-" are omitted.
func (t Type) Fields() []Field {
	if t.shape != Object {
		return nil
	}

	var fields []Field

	for i := range t.rtype.NumField() {
		sf := t.rtype.Field(i)
		jsonTag := sf.Tag.Get("json")

		if jsonTag == "-" {
			continue
		}

		name, _, _ := strings.Cut(jsonTag, ",")

		// encoding/json inlines anonymous struct fields without a tag name,
		// even when the embedded type itself is unexported.
		if sf.Anonymous && name == "" {
			ft := sf.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}

			if ft.Kind() == reflect.Struct {
				fields = append(fields, Field{Name: sf.Name, Type: ft, Embedded: true})
				continue
			}
		}

		if !sf.IsExported() {
			continue
		}

		if name == "" {
			name = sf.Name
		}

		field := Field{
			Name:           sf.Name,
			Property:       name,
			Type:           sf.Type,
			SkipValidation: sf.Tag.Get("validate") == "-",
		}
		_, field.HasDefault = sf.Tag.Lookup("default")
		field.Tag = strings.TrimSpace(sf.Tag.Get("openapi"))

		fields = append(fields, field)
	}

	return fields
}

func implements(rt, iface reflect.Type) bool {
	return rt.Implements(iface) || reflect.PointerTo(rt).Implements(iface)
}

// classify assigns the shape of a non-pointer type.
func classify(rt reflect.Type) Shape {
	switch {
	case rt == uuidType:
		return Scalar
	case rt.Kind() == reflect.Slice && rt.Elem().Kind() == reflect.Uint8:
		return Scalar
	}

	switch rt.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return Iterable
	}

	predeclared := rt.PkgPath() == ""

	if predeclared {
		if shape := basicShape(rt.Kind()); shape != Unsupported {
			return shape
		}
	}

	if rt.Name() != "" && implements(rt, enumType) {
		return Enum
	}

	if rt == timeType || (rt.Kind() == reflect.Struct && rt.ConvertibleTo(timeType)) {
		return DateTime
	}

	switch rt.Kind() {
	case reflect.Struct:
		return Object
	case reflect.Interface:
		return Any
	}

	// Defined types over basic kinds that are not enums.
	return basicShape(rt.Kind())
}

func basicShape(kind reflect.Kind) Shape {
	switch kind {
	case reflect.Float32, reflect.Float64:
		return Float
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Scalar
	}

	return Unsupported
}
