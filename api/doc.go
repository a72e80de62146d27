// Package api holds the inputs of a documentation run: the endpoints of an
// application, their optional documentation overrides, the document-level
// settings and the capability interfaces request and response types implement.
//
// An endpoint is described by its HTTP method, its URI template and the zero
// values of its request and response types:
//
//	cfg := api.NewConfig("Pet Store API").
//		AddEndpoint(api.NewEndpoint(http.MethodGet, "/api/pets/{id}").
//			WithResponse(pet.PetResponse{}))
//
// Response types implement Responder to document their success body; named
// types with a closed set of values implement Enum.
package api
