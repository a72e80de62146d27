// Package openapi is the OpenAPI 3.0 document model produced by the generator.
//
// Every model serializes itself through ToMap into an insertion-ordered tree
// (github.com/wk8/go-ordered-map) so that JSON and YAML output is byte-stable
// across runs. Empty, false and nil fields are dropped from the tree, with two
// exceptions: the servers list of a Document is always present and a schema
// keeps an explicit "nullable": false.
//
// See: https://spec.openapis.org/oas/v3.0.3
//
// # Schemas
//
// A Schema with a Name is nameable. It is written once, expanded, under
// components.schemas and everywhere else as a reference:
//
//	pet := &openapi.Schema{Name: "Pet", Type: "object", Properties: props}
//	pet.ToMap(true)  // {"$ref": "#/components/schemas/Pet"}
//	pet.ToMap(false) // {"type": "object", "properties": {...}}
//
// Schemas without a name are always expanded inline.
//
// # Documents
//
// A Document holds operations in construction order. Serialization groups
// them by URI and lowercase method and collects the named schemas reachable
// from responses, request bodies and parameters:
//
//	doc := openapi.NewDocument(openapi.Info{Title: "Pet Store API", Version: "1.0"})
//	doc.AddPath(&openapi.Path{Path: "/api/pets", Method: http.MethodGet, ...})
//
//	data, err := doc.MarshalIndentJSON("", "  ")
//	if err != nil {
//		return err
//	}
//
// Validate loads the encoded document with kin-openapi and reports any
// structural error.
package openapi
