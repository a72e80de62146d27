// Package metadata reads type annotations from Go doc comments.
//
// Reflection cannot tell the element type of []any or map[string]any, nor
// the concrete type behind a method returning any. Those are written as
// annotations in the doc comment of the field or method instead:
//
//	type PetStoreRequest struct {
//		Tags []any `json:"tags"` // @var string[]
//	}
//
//	// @return Pet[]
//	func (r PetListResponse) ToResponse() any
//
//	// @param string[] $values
//	func NewLabels(values []any) Labels
//
// Supported forms are T, T[], []T, array<T>, array<K, V> and map[K]V, where T
// may be nullable (?T) or a union (A|B). Names are qualified with the import
// path of the declaring file, so pet.Pet written in a file importing
// "github.com/acme/pet" is github.com/acme/pet.Pet.
//
// An Extractor loads package sources through a SourceLoader: PackagesLoader
// resolves packages like the go command, DirLoader parses fixed directories.
package metadata
