package api

import (
	"net/http"
	"reflect"
	"regexp"
	"strings"
)

// pathVarRegexp matches URI template variables in the form {name} or {name:pattern}.
var pathVarRegexp = regexp.MustCompile(`\{([^}]+)\}`)

// Info overrides the documentation of a single endpoint. Request and Response,
// when set, replace the types declared on the endpoint.
type Info struct {
	Description string
	Summary     string
	OperationID string
	Request     any
	Response    any
}

// Endpoint describes one HTTP operation of the documented application.
type Endpoint struct {
	Method         string
	URI            string
	PathParameters []string
	Request        any
	Response       any
	Info           *Info
}

// NewEndpoint creates an endpoint for method and uri. Template variables of the
// URI become path parameters and the URI is normalized to the {name} form.
func NewEndpoint(method, uri string) Endpoint {
	path, params := ParsePath(uri)

	return Endpoint{
		Method:         strings.ToUpper(method),
		URI:            path,
		PathParameters: params,
	}
}

// WithRequest returns a copy of the endpoint using the type of v as request type.
func (e Endpoint) WithRequest(v any) Endpoint {
	e.Request = v
	return e
}

// WithResponse returns a copy of the endpoint using the type of v as response type.
func (e Endpoint) WithResponse(v any) Endpoint {
	e.Response = v
	return e
}

// WithInfo returns a copy of the endpoint carrying the documentation override.
func (e Endpoint) WithInfo(info Info) Endpoint {
	e.Info = &info
	return e
}

// RequestType returns the effective request type, or nil when the endpoint has
// none. Pointer types are dereferenced.
func (e Endpoint) RequestType() reflect.Type {
	if e.Info != nil && e.Info.Request != nil {
		return typeOf(e.Info.Request)
	}

	return typeOf(e.Request)
}

// ResponseType returns the effective response type, or nil when the endpoint
// has none. Pointer types are dereferenced.
func (e Endpoint) ResponseType() reflect.Type {
	if e.Info != nil && e.Info.Response != nil {
		return typeOf(e.Info.Response)
	}

	return typeOf(e.Response)
}

// HasBody reports whether the request of the endpoint travels in the body
// rather than in the query string. The method is matched case-insensitively.
func (e Endpoint) HasBody() bool {
	switch strings.ToUpper(strings.TrimSpace(e.Method)) {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	}

	return false
}

// ParsePath extracts the variable names of an URI template and returns the
// template with every {name:pattern} variable rewritten as {name}.
func ParsePath(tpl string) (string, []string) {
	var params []string

	path := pathVarRegexp.ReplaceAllStringFunc(tpl, func(match string) string {
		inner := match[1 : len(match)-1]
		varName, _, _ := strings.Cut(inner, ":")
		varName = strings.TrimSpace(varName)

		params = append(params, varName)
		return "{" + varName + "}"
	})

	return path, params
}

func typeOf(v any) reflect.Type {
	if v == nil {
		return nil
	}

	rt := reflect.TypeOf(v)
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	return rt
}
