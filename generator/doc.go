// Package generator compiles the endpoints of an api.Config into an OpenAPI
// document.
//
// # Generating
//
// A Generator is built for one configuration and one metadata extractor:
//
//	cfg := api.NewConfig("Pet Store API").
//		AddEndpoint(api.NewEndpoint(http.MethodGet, "/pets").WithResponse(PetListResponse{}))
//
//	doc, err := generator.New(cfg, metadata.NewExtractor()).Generate()
//
// Every endpoint becomes one operation: path parameters from the URI template,
// a JSON request body for POST, PUT and PATCH, query parameters for the other
// methods, and a single 200 response whose schema is the return type of the
// response's ToResponse method.
//
// # Schemas
//
// TypeToSchema compiles a single type. Structs and enums become components
// referenced by name; other types are written inline. Containers whose
// element type is erased ([]any, map[string]any, any) are refined by doc
// comment annotations read by the metadata package:
//
//	type PetListResponse struct {
//		pets []Pet
//	}
//
//	// @return Pet[]
//	func (r PetListResponse) ToResponse() any { return r.pets }
//
// Compiled schemas are cached by type, nullability and annotation, so that a
// type used many times yields one schema node and recursive types terminate.
//
// # Struct tags
//
// Field schemas follow the json tag for property names. A default tag marks
// the property nullable, validate:"-" drops the field from request types, and
// the openapi tag adds schema keywords to fields of unnamed types:
//
//	Name string `json:"name" openapi:"minLength=1,maxLength=64,example=Rex"`
//
// Named types provide a component example by implementing api.Exampler.
//
// # Serving
//
// Handler serves the generated document as JSON and YAML next to an
// interactive docs page:
//
//	http.Handle("/docs/", http.StripPrefix("/docs", generator.Handler(cfg, nil)))
package generator
