package openapi

import (
	"slices"
	"strconv"
)

// MediaTypeJSON is the only media type of request and response bodies.
const MediaTypeJSON = "application/json"

// Info provides metadata about the API.
//
// See: https://spec.openapis.org/oas/v3.0.3#info-object
type Info struct {
	Title          string
	Description    string
	TermsOfService string
	Contact        *Contact
	License        *License
	Version        string
}

// ToMap serializes the info object, dropping empty fields.
func (i Info) ToMap() *Map {
	m := NewMap()

	setString(m, "title", i.Title)
	setString(m, "description", i.Description)
	setString(m, "termsOfService", i.TermsOfService)

	if i.Contact != nil {
		if contact := i.Contact.ToMap(); contact.Len() > 0 {
			m.Set("contact", contact)
		}
	}

	if i.License != nil {
		if license := i.License.ToMap(); license.Len() > 0 {
			m.Set("license", license)
		}
	}

	setString(m, "version", i.Version)

	return m
}

// Contact represents contact information for the API.
//
// See: https://spec.openapis.org/oas/v3.0.3#contact-object
type Contact struct {
	Name  string
	URL   string
	Email string
}

// ToMap serializes the contact, dropping empty fields.
func (c Contact) ToMap() *Map {
	m := NewMap()
	setString(m, "name", c.Name)
	setString(m, "url", c.URL)
	setString(m, "email", c.Email)

	return m
}

// License represents license information for the API.
//
// See: https://spec.openapis.org/oas/v3.0.3#license-object
type License struct {
	Name       string
	Identifier string
	URL        string
}

// ToMap serializes the license, dropping empty fields.
func (l License) ToMap() *Map {
	m := NewMap()
	setString(m, "name", l.Name)
	setString(m, "identifier", l.Identifier)
	setString(m, "url", l.URL)

	return m
}

// Server represents a server.
//
// See: https://spec.openapis.org/oas/v3.0.3#server-object
type Server struct {
	URL         string
	Description string
	Variables   map[string]*ServerVariable
}

// ToMap serializes the server. Variables are emitted in name order.
func (s Server) ToMap() *Map {
	m := NewMap()
	setString(m, "url", s.URL)
	setString(m, "description", s.Description)

	if len(s.Variables) > 0 {
		names := make([]string, 0, len(s.Variables))
		for name := range s.Variables {
			names = append(names, name)
		}

		slices.Sort(names)

		vars := NewMap()
		for _, name := range names {
			vars.Set(name, s.Variables[name].ToMap())
		}

		m.Set("variables", vars)
	}

	return m
}

// ServerVariable represents a server variable for URL template substitution.
//
// See: https://spec.openapis.org/oas/v3.0.3#server-variable-object
type ServerVariable struct {
	Enum        []string
	Default     string
	Description string
}

// ToMap serializes the server variable. Enum values keep their order.
func (v *ServerVariable) ToMap() *Map {
	m := NewMap()

	if len(v.Enum) > 0 {
		m.Set("enum", v.Enum)
	}

	setString(m, "default", v.Default)
	setString(m, "description", v.Description)

	return m
}

// Parameter describes a single operation parameter located in the path or
// the query string.
//
// See: https://spec.openapis.org/oas/v3.0.3#parameter-object
type Parameter struct {
	Name            string
	In              string
	Description     string
	Required        bool
	Deprecated      bool
	AllowEmptyValue bool
	Schema          *Schema
}

// ToMap serializes the parameter. The schema is written as a reference when
// it is nameable; an optional parameter omits required.
func (p *Parameter) ToMap() *Map {
	m := NewMap()
	setString(m, "name", p.Name)
	setString(m, "in", p.In)
	setString(m, "description", p.Description)
	setBool(m, "required", p.Required)
	setBool(m, "deprecated", p.Deprecated)
	setBool(m, "allowEmptyValue", p.AllowEmptyValue)

	if p.Schema != nil {
		m.Set("schema", p.Schema.ToMap(true))
	}

	return m
}

// RequestBody describes a JSON request body.
//
// See: https://spec.openapis.org/oas/v3.0.3#request-body-object
type RequestBody struct {
	Description string
	Required    bool
	Schema      *Schema
}

// ToMap serializes the request body with its schema as application/json
// content.
func (b *RequestBody) ToMap() *Map {
	m := NewMap()
	setString(m, "description", b.Description)
	setContent(m, b.Schema)
	setBool(m, "required", b.Required)

	return m
}

// Response describes a single response of an operation.
//
// See: https://spec.openapis.org/oas/v3.0.3#response-object
type Response struct {
	StatusCode  int
	Description string
	Schema      *Schema
}

// ToMap serializes the response. Content is present only when the response
// has a schema.
func (r *Response) ToMap() *Map {
	m := NewMap()
	setString(m, "description", r.Description)
	setContent(m, r.Schema)

	return m
}

// Path is a single operation: a method on an URI template.
//
// See: https://spec.openapis.org/oas/v3.0.3#operation-object
type Path struct {
	Path        string
	Method      string
	Description string
	Summary     string
	OperationID string
	Responses   []*Response
	Parameters  []*Parameter
	RequestBody *RequestBody
}

// ToMap serializes the operation. Responses are keyed by status code.
func (p *Path) ToMap() *Map {
	m := NewMap()
	setString(m, "description", p.Description)
	setString(m, "summary", p.Summary)
	setString(m, "operationId", p.OperationID)

	if len(p.Responses) > 0 {
		responses := NewMap()
		for _, response := range p.Responses {
			responses.Set(strconv.Itoa(response.StatusCode), response.ToMap())
		}

		m.Set("responses", responses)
	}

	if len(p.Parameters) > 0 {
		params := make([]any, 0, len(p.Parameters))
		for _, param := range p.Parameters {
			params = append(params, param.ToMap())
		}

		m.Set("parameters", params)
	}

	if p.RequestBody != nil {
		m.Set("requestBody", p.RequestBody.ToMap())
	}

	return m
}

// Schemas returns the schemas the operation references directly: response
// bodies, the request body and parameters.
func (p *Path) Schemas() []*Schema {
	var schemas []*Schema

	for _, response := range p.Responses {
		if response.Schema != nil {
			schemas = append(schemas, response.Schema)
		}
	}

	if p.RequestBody != nil && p.RequestBody.Schema != nil {
		schemas = append(schemas, p.RequestBody.Schema)
	}

	for _, param := range p.Parameters {
		if param.Schema != nil {
			schemas = append(schemas, param.Schema)
		}
	}

	return schemas
}

func setContent(m *Map, schema *Schema) {
	if schema == nil {
		return
	}

	media := NewMap()
	media.Set("schema", schema.ToMap(true))

	content := NewMap()
	content.Set(MediaTypeJSON, media)

	m.Set("content", content)
}
