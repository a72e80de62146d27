// Package typeinfo classifies Go types for schema compilation.
//
// A Type wraps a reflect.Type (or a union written in an annotation) together
// with its nullability and one Shape out of a closed set. The Registry maps
// qualified names such as "github.com/acme/pet.Pet" back to types so that
// names found in doc comment annotations can be compiled like reflected ones.
package typeinfo
