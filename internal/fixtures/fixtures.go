// Package fixtures holds types exercising each schema compilation rule.
package fixtures

import (
	"time"

	"github.com/google/uuid"

	"github.com/vitalvas/apidoc/api"
	petdomain "github.com/vitalvas/apidoc/internal/fixtures/pet"
)

type PlainObject struct {
	Int         int     `json:"int"`
	String      string  `json:"string"`
	Bool        bool    `json:"bool"`
	Float       float64 `json:"float"`
	NullableInt *int    `json:"nullableInt"`
}

type PureEnum int

const (
	Foo PureEnum = iota
	Bar
	Baz
)

func (PureEnum) Cases() []api.Case {
	return []api.Case{{Name: "FOO"}, {Name: "BAR"}, {Name: "BAZ"}}
}

type StringEnum string

func (StringEnum) Cases() []api.Case {
	return []api.Case{
		{Name: "Foo", Value: StringEnum("foo")},
		{Name: "Bar", Value: StringEnum("bar")},
		{Name: "Baz", Value: StringEnum("baz")},
	}
}

type Enums struct {
	Pure   PureEnum   `json:"pure"`
	String StringEnum `json:"string"`
}

type Arrays struct {
	// @var int[]
	Array []any `json:"array"`

	Strings []string `json:"strings"`

	// @var array<string, PlainObject>
	Objects map[string]any `json:"objects"`

	Untyped []any `json:"untyped"`
}

type UnionType struct {
	// @var string|int
	IntOrString any `json:"intOrString"`
}

type NullableUnion struct {
	Value any `json:"value"` // @var string|int|null
}

type DefaultValue struct {
	IntWithDefault         int  `json:"intWithDefault" default:"1"`
	NullableIntWithDefault *int `json:"nullableIntWithDefault" default:"1"`
	Plain                  int  `json:"plain"`
}

// Node is self-referencing.
type Node struct {
	Name     string `json:"name"`
	Children []Node `json:"children"`
	Parent   *Node  `json:"parent"`
}

type Scalars struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Payload   []byte    `json:"payload"`
	Ratio     float32   `json:"ratio"`
	Count     uint64    `json:"count"`
}

// Appointment references another package through an import alias.
type Appointment struct {
	Owner petdomain.Pet `json:"owner"`

	// @var petdomain.Pet[]
	Guests []any `json:"guests"`

	// @var ?petdomain.PetType
	Kind any `json:"kind"`

	Anything any `json:"anything"`
}

type Timestamps struct {
	CreatedAt time.Time `json:"createdAt"`
}

type Audited struct {
	Timestamps
	Name   string `json:"name"`
	Secret string `json:"-"`
}

// Labels is populated by its constructor.
type Labels struct {
	Values []any `json:"values"`
}

// NewLabels builds a label set.
//
// @param string[] $values
func NewLabels(values []any) Labels {
	return Labels{Values: values}
}

type SearchRequest struct {
	Query string `json:"query"`
	Token string `json:"token" validate:"-"`
}

type SearchResult struct {
	Query string `json:"query"`
	Token string `json:"token" validate:"-"`
}

type petList struct{}

// ToResponse is promoted to the embedding types.
//
// @return petdomain.Pet[]
func (petList) ToResponse() any {
	return nil
}

// WrappedPetList documents its body through an embedded type.
type WrappedPetList struct {
	petList
}

type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

type Unsupported struct {
	Events chan int `json:"events"`
}

type UnknownHint struct {
	// @var Missing
	Value any `json:"value"`
}

// Constrained carries schema keywords in openapi tags.
type Constrained struct {
	Name  string     `json:"name" openapi:"minLength=1,maxLength=64,pattern=^[a-z]+$,example=rex"`
	Age   int        `json:"age" openapi:"minimum=0,maximum=30,exclusiveMaximum,default=3"`
	Tags  []string   `json:"tags" openapi:"minItems=1,uniqueItems"`
	Mode  string     `json:"mode" openapi:"enum=fast|slow,readOnly"`
	Plain string     `json:"plain"`
	Kind  StringEnum `json:"kind" openapi:"minLength=2"`
}

type MalformedTag struct {
	Name string `json:"name" openapi:"minLength=short"`
}

type UnknownTag struct {
	Name string `json:"name" openapi:"colour=red"`
}

// EmptyEnum declares no cases.
type EmptyEnum string

func (EmptyEnum) Cases() []api.Case { return nil }

type Sample struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func (Sample) OpenAPIExample() any {
	return Sample{Name: "Rex", Count: 2}
}
