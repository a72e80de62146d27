package generator

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/vitalvas/apidoc/openapi"
)

// tagKeyword applies one keyword of an openapi struct tag to a schema.
type tagKeyword func(schema *openapi.Schema, value string) error

// tagKeywords are the keywords accepted by the openapi struct tag, written as
// comma separated key=value pairs; flags take no value:
//
//	Name string `json:"name" openapi:"minLength=1,maxLength=64,example=Rex"`
//
// See: https://spec.openapis.org/oas/v3.0.3#properties
var tagKeywords = map[string]tagKeyword{
	"format":  func(s *openapi.Schema, v string) error { s.Format = v; return nil },
	"pattern": func(s *openapi.Schema, v string) error { s.Pattern = v; return nil },

	"minLength":     intKeyword(func(s *openapi.Schema) **int { return &s.MinLength }),
	"maxLength":     intKeyword(func(s *openapi.Schema) **int { return &s.MaxLength }),
	"minItems":      intKeyword(func(s *openapi.Schema) **int { return &s.MinItems }),
	"maxItems":      intKeyword(func(s *openapi.Schema) **int { return &s.MaxItems }),
	"minProperties": intKeyword(func(s *openapi.Schema) **int { return &s.MinProperties }),
	"maxProperties": intKeyword(func(s *openapi.Schema) **int { return &s.MaxProperties }),

	"minimum": floatKeyword(func(s *openapi.Schema) **float64 { return &s.Minimum }),
	"maximum": floatKeyword(func(s *openapi.Schema) **float64 { return &s.Maximum }),

	"exclusiveMinimum": flagKeyword(func(s *openapi.Schema) **bool { return &s.ExclusiveMinimum }),
	"exclusiveMaximum": flagKeyword(func(s *openapi.Schema) **bool { return &s.ExclusiveMaximum }),
	"uniqueItems":      flagKeyword(func(s *openapi.Schema) **bool { return &s.UniqueItems }),
	"readOnly":         flagKeyword(func(s *openapi.Schema) **bool { return &s.ReadOnly }),
	"writeOnly":        flagKeyword(func(s *openapi.Schema) **bool { return &s.WriteOnly }),

	"default": func(s *openapi.Schema, v string) error { s.Default = tagLiteral(s, v); return nil },
	"example": func(s *openapi.Schema, v string) error { s.Example = tagLiteral(s, v); return nil },
	"enum": func(s *openapi.Schema, v string) error {
		s.Enum = nil
		for _, item := range strings.Split(v, "|") {
			s.Enum = append(s.Enum, tagLiteral(s, strings.TrimSpace(item)))
		}
		return nil
	},
}

func intKeyword(field func(*openapi.Schema) **int) tagKeyword {
	return func(s *openapi.Schema, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}

		*field(s) = &n

		return nil
	}
}

func floatKeyword(field func(*openapi.Schema) **float64) tagKeyword {
	return func(s *openapi.Schema, v string) error {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}

		*field(s) = &n

		return nil
	}
}

func flagKeyword(field func(*openapi.Schema) **bool) tagKeyword {
	return func(s *openapi.Schema, v string) error {
		set := true

		if v != "" {
			var err error
			if set, err = strconv.ParseBool(v); err != nil {
				return err
			}
		}

		*field(s) = openapi.Bool(set)

		return nil
	}
}

// applyTag applies the keywords of an openapi struct tag to schema. Unknown
// keywords and malformed values are reported.
func applyTag(schema *openapi.Schema, tag string) error {
	for part := range strings.SplitSeq(tag, ",") {
		key, value, _ := strings.Cut(part, "=")

		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}

		keyword, ok := tagKeywords[key]
		if !ok {
			return fmt.Errorf("openapi tag: unknown keyword %q", key)
		}

		if err := keyword(schema, strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("openapi tag: %s: %w", key, err)
		}
	}

	return nil
}

// tagLiteral converts a tag value to the JSON type of the schema, leaving it a
// string when it does not parse.
func tagLiteral(schema *openapi.Schema, value string) any {
	switch schema.Type {
	case "integer":
		if v, err := strconv.ParseInt(value, 10, 64); err == nil {
			return v
		}
	case "number":
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			return v
		}
	case "boolean":
		if v, err := strconv.ParseBool(value); err == nil {
			return v
		}
	}

	return value
}

// exampleValue converts a Go example value to its JSON form, so that JSON and
// YAML output agree on property names.
func exampleValue(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}

	return out, nil
}
