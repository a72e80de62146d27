package typeinfo

import (
	"fmt"
	"reflect"
	"strings"
)

// QualifiedName returns the name identifying rt in annotations and cache keys:
// "pkgpath.Name" for named types, the bare name for predeclared types and a
// composite spelling such as "[]pkgpath.Name" for unnamed ones.
func QualifiedName(rt reflect.Type) string {
	if rt.Name() != "" {
		if rt.PkgPath() == "" {
			return rt.Name()
		}

		return rt.PkgPath() + "." + rt.Name()
	}

	switch rt.Kind() {
	case reflect.Pointer:
		return "*" + QualifiedName(rt.Elem())
	case reflect.Slice:
		return "[]" + QualifiedName(rt.Elem())
	case reflect.Array:
		return fmt.Sprintf("[%d]%s", rt.Len(), QualifiedName(rt.Elem()))
	case reflect.Map:
		return "map[" + QualifiedName(rt.Key()) + "]" + QualifiedName(rt.Elem())
	}

	return rt.String()
}

// ShortName returns the component name of a named type: the bare type name,
// with generic instantiations flattened ("Page[pkg.Pet]" becomes "PagePet").
// Unnamed and predeclared types have no short name.
func ShortName(rt reflect.Type) string {
	if rt.Name() == "" || rt.PkgPath() == "" {
		return ""
	}

	return sanitizeName(rt.Name())
}

// BaseName strips the type arguments of a generic instantiation name.
func BaseName(name string) string {
	if idx := strings.IndexByte(name, '['); idx >= 0 {
		return name[:idx]
	}

	return name
}

// sanitizeName converts Go generic type names into names usable as component
// keys. For example, "Page[github.com/acme/pet.Pet]" becomes "PagePet" and
// "Page[[]github.com/acme/pet.Pet]" becomes "PagePetList".
func sanitizeName(name string) string {
	idx := strings.IndexByte(name, '[')
	if idx < 0 || !strings.HasSuffix(name, "]") {
		return BaseName(name)
	}

	base := name[:idx]
	inner := name[idx+1 : len(name)-1]

	var b strings.Builder
	b.WriteString(base)

	for _, arg := range splitTypeArgs(inner) {
		arg = strings.TrimSpace(arg)

		isList := strings.HasPrefix(arg, "[]")
		arg = strings.TrimPrefix(arg, "[]")
		arg = strings.TrimPrefix(arg, "*")

		if dot := strings.LastIndexByte(arg, '.'); dot >= 0 {
			arg = arg[dot+1:]
		}

		b.WriteString(sanitizeName(arg))

		if isList {
			b.WriteString("List")
		}
	}

	return b.String()
}

// splitTypeArgs splits a type argument list on the commas that are not nested
// inside brackets.
func splitTypeArgs(s string) []string {
	var (
		args  []string
		depth int
		start int
	)

	for i, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, s[start:i])
				start = i + 1
			}
		}
	}

	return append(args, s[start:])
}
