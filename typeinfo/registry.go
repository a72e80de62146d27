package typeinfo

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ErrUnknownType is returned when a type expression names a type the registry
// has never seen.
var ErrUnknownType = errors.New("unknown type")

// UnknownTypeError names the type expression that could not be resolved.
type UnknownTypeError struct {
	Name string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown type %q", e.Name)
}

func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// builtinTypes are the names annotations may use without registration.
var builtinTypes = map[string]reflect.Type{
	"bool":        reflect.TypeFor[bool](),
	"string":      reflect.TypeFor[string](),
	"int":         reflect.TypeFor[int](),
	"int8":        reflect.TypeFor[int8](),
	"int16":       reflect.TypeFor[int16](),
	"int32":       reflect.TypeFor[int32](),
	"int64":       reflect.TypeFor[int64](),
	"uint":        reflect.TypeFor[uint](),
	"uint8":       reflect.TypeFor[uint8](),
	"uint16":      reflect.TypeFor[uint16](),
	"uint32":      reflect.TypeFor[uint32](),
	"uint64":      reflect.TypeFor[uint64](),
	"byte":        reflect.TypeFor[byte](),
	"rune":        reflect.TypeFor[rune](),
	"float32":     reflect.TypeFor[float32](),
	"float64":     reflect.TypeFor[float64](),
	"float":       reflect.TypeFor[float64](),
	"any":         anyType,
	"mixed":       anyType,
	"interface{}": anyType,
	"array":       reflect.TypeFor[[]any](),
}

// IsBuiltin reports whether name is a type name that needs no qualification.
func IsBuiltin(name string) bool {
	_, ok := builtinTypes[name]
	return ok
}

// Registry resolves qualified type names to types. Every named type passed
// through Of is registered automatically. A Registry is not safe for
// concurrent use.
type Registry struct {
	types map[string]reflect.Type
}

// NewRegistry creates a registry knowing the builtin names, time.Time and
// uuid.UUID.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]reflect.Type, len(builtinTypes)+2)}

	for name, rt := range builtinTypes {
		r.types[name] = rt
	}

	r.Register(timeType)
	r.Register(uuidType)

	return r
}

// Register records rt, and the named types it is composed of, under their
// qualified names. Struct fields are followed whether exported or not, so
// that types only reachable through annotations on unexported members are
// known as well.
func (r *Registry) Register(rt reflect.Type) {
	r.register(rt, make(map[reflect.Type]bool))
}

func (r *Registry) register(rt reflect.Type, visited map[reflect.Type]bool) {
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if visited[rt] {
		return
	}

	visited[rt] = true

	if rt.Name() != "" {
		name := QualifiedName(rt)

		// A registered named type had its components registered with it.
		if _, ok := r.types[name]; ok {
			return
		}

		r.types[name] = rt
	}

	// Opaque values whose internals are never described.
	if rt == timeType || rt == uuidType {
		return
	}

	switch rt.Kind() {
	case reflect.Slice, reflect.Array:
		r.register(rt.Elem(), visited)
	case reflect.Map:
		r.register(rt.Key(), visited)
		r.register(rt.Elem(), visited)
	case reflect.Struct:
		for i := range rt.NumField() {
			r.register(rt.Field(i).Type, visited)
		}
	}
}

// Lookup returns the type registered under the qualified name.
func (r *Registry) Lookup(name string) (reflect.Type, bool) {
	rt, ok := r.types[name]
	return rt, ok
}

// Of classifies rt. Pointer types are dereferenced and reported nullable.
func (r *Registry) Of(rt reflect.Type) Type {
	nullable := false
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
		nullable = true
	}

	r.Register(rt)

	return Type{
		name:     QualifiedName(rt),
		nullable: nullable,
		shape:    classify(rt),
		rtype:    rt,
	}
}

// Parse resolves an annotation type expression. Supported forms are qualified
// or builtin names, "?T" and "*T" for nullable types, "[]T" and unions
// "A|B" where a null member makes the union nullable.
func (r *Registry) Parse(expr string) (Type, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Type{}, &UnknownTypeError{Name: expr}
	}

	if strings.Contains(expr, "|") {
		return r.parseUnion(expr)
	}

	nullable := false
	for strings.HasPrefix(expr, "?") || strings.HasPrefix(expr, "*") {
		expr = strings.TrimSpace(expr[1:])
		nullable = true
	}

	if rest, ok := strings.CutPrefix(expr, "[]"); ok {
		elem, err := r.Parse(rest)
		if err != nil {
			return Type{}, err
		}

		if elem.rtype == nil {
			return Type{}, &UnknownTypeError{Name: expr}
		}

		return r.Of(reflect.SliceOf(elem.rtype)).WithNullable(nullable), nil
	}

	rt, ok := r.types[expr]
	if !ok {
		return Type{}, &UnknownTypeError{Name: expr}
	}

	t := r.Of(rt)
	if nullable {
		t.nullable = true
	}

	return t, nil
}

func (r *Registry) parseUnion(expr string) (Type, error) {
	var (
		members  []Type
		names    []string
		nullable bool
	)

	for part := range strings.SplitSeq(expr, "|") {
		part = strings.TrimSpace(part)
		if part == "null" {
			nullable = true
			continue
		}

		member, err := r.Parse(part)
		if err != nil {
			return Type{}, err
		}

		members = append(members, member)
		names = append(names, member.name)
	}

	switch len(members) {
	case 0:
		return Type{}, &UnknownTypeError{Name: expr}
	case 1:
		if nullable {
			members[0].nullable = true
		}

		return members[0], nil
	}

	return Type{
		name:     strings.Join(names, "|"),
		nullable: nullable,
		shape:    Union,
		members:  members,
	}, nil
}
