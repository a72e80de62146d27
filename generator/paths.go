package generator

import (
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/vitalvas/apidoc/api"
	"github.com/vitalvas/apidoc/openapi"
	"github.com/vitalvas/apidoc/typeinfo"
)

const (
	responseMethod      = "ToResponse"
	responseDescription = "Successful Response"
)

func (g *Generator) pathFromEndpoint(endpoint api.Endpoint) (*openapi.Path, error) {
	path := &openapi.Path{
		Path:   endpoint.URI,
		Method: strings.ToUpper(endpoint.Method),
	}

	if endpoint.Info != nil {
		path.Description = endpoint.Info.Description
		path.Summary = endpoint.Info.Summary
		path.OperationID = endpoint.Info.OperationID
	}

	for _, name := range endpoint.PathParameters {
		path.Parameters = append(path.Parameters, &openapi.Parameter{
			Name:     name,
			In:       "path",
			Required: true,
			Schema:   &openapi.Schema{Type: "string"},
		})
	}

	if rt := endpoint.RequestType(); rt != nil {
		schema, err := g.TypeToSchema(g.registry.Of(rt), nil)
		if err != nil {
			return nil, fmt.Errorf("request: %w", err)
		}

		if endpoint.HasBody() {
			path.RequestBody = &openapi.RequestBody{Schema: schema}
		} else {
			path.Parameters = append(path.Parameters, queryParameters(schema)...)
		}
	}

	response, err := g.successResponse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("response: %w", err)
	}

	path.Responses = append(path.Responses, response)

	return path, nil
}

// queryParameters turns the top-level properties of a request schema into
// query parameters. Only non-nullable properties are required.
func queryParameters(schema *openapi.Schema) []*openapi.Parameter {
	if schema.Properties == nil {
		return nil
	}

	params := make([]*openapi.Parameter, 0, schema.Properties.Len())
	for pair := schema.Properties.Oldest(); pair != nil; pair = pair.Next() {
		params = append(params, &openapi.Parameter{
			Name:     pair.Key,
			In:       "query",
			Required: !pair.Value.IsNullable(),
			Schema:   pair.Value,
		})
	}

	return params
}

func (g *Generator) successResponse(endpoint api.Endpoint) (*openapi.Response, error) {
	response := &openapi.Response{
		StatusCode:  http.StatusOK,
		Description: responseDescription,
	}

	rt := endpoint.ResponseType()
	if rt == nil {
		return response, nil
	}

	t := g.registry.Of(rt)
	if !t.IsResponder() {
		return response, nil
	}

	schema, err := g.methodReturnToSchema(t, responseMethod)
	if err != nil {
		return nil, err
	}

	response.Schema = schema

	return response, nil
}

// methodReturnToSchema compiles the declared return type of a method, refined
// by the @return annotation found on the type that declares the method.
func (g *Generator) methodReturnToSchema(t typeinfo.Type, name string) (*openapi.Schema, error) {
	method, ok := t.Method(name)
	if !ok || method.Type.NumOut() == 0 {
		return nil, &TypeNotSupportedError{Type: t.Name(), Reason: "no " + name + " result"}
	}

	declaring, err := g.declaringType(t.Reflect(), name)
	if err != nil {
		return nil, err
	}

	classMeta, err := g.extractor.ClassMetadata(declaring)
	if err != nil {
		return nil, err
	}

	return g.TypeToSchema(g.registry.Of(method.Type.Out(0)), classMeta.MethodReturnType(name))
}

// declaringType finds the type whose source declares the method: rt itself,
// or the embedded type the method is promoted from.
func (g *Generator) declaringType(rt reflect.Type, name string) (reflect.Type, error) {
	classMeta, err := g.extractor.ClassMetadata(rt)
	if err != nil {
		return nil, err
	}

	if classMeta.HasMethod(name) || rt.Kind() != reflect.Struct {
		return rt, nil
	}

	for i := range rt.NumField() {
		field := rt.Field(i)
		if !field.Anonymous {
			continue
		}

		ft := field.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		if _, ok := reflect.PointerTo(ft).MethodByName(name); ok {
			return g.declaringType(ft, name)
		}
	}

	return rt, nil
}
