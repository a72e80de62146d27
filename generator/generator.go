package generator

import (
	"fmt"
	"io"
	"log/slog"
	"reflect"

	"github.com/vitalvas/apidoc/api"
	"github.com/vitalvas/apidoc/metadata"
	"github.com/vitalvas/apidoc/openapi"
	"github.com/vitalvas/apidoc/typeinfo"
)

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger receiving debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithRegistry replaces the type registry, for example to share registered
// names between runs.
func WithRegistry(registry *typeinfo.Registry) Option {
	return func(g *Generator) {
		g.registry = registry
	}
}

type cacheKey struct {
	name     string
	nullable bool
	hint     string
	tag      string
}

// Generator compiles the types of a configuration into an OpenAPI document.
// Compiled schemas are cached for the lifetime of the generator, so equal
// inputs yield the identical schema node. A Generator is not safe for
// concurrent use.
type Generator struct {
	config    *api.Config
	extractor *metadata.Extractor
	registry  *typeinfo.Registry
	logger    *slog.Logger

	schemas   map[cacheKey]*openapi.Schema
	requests  map[reflect.Type]bool
	typeNames map[reflect.Type]string
	nameTypes map[string]reflect.Type
}

// New creates a generator for config reading annotations through extractor.
func New(config *api.Config, extractor *metadata.Extractor, opts ...Option) *Generator {
	g := &Generator{
		config:    config,
		extractor: extractor,
		registry:  typeinfo.NewRegistry(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		schemas:   make(map[cacheKey]*openapi.Schema),
		requests:  make(map[reflect.Type]bool),
		typeNames: make(map[reflect.Type]string),
		nameTypes: make(map[string]reflect.Type),
	}

	for _, opt := range opts {
		opt(g)
	}

	for _, v := range config.Types {
		if v != nil {
			g.registry.Register(reflect.TypeOf(v))
		}
	}

	for _, endpoint := range config.Endpoints {
		if rt := endpoint.RequestType(); rt != nil {
			g.registry.Register(rt)
			g.requests[rt] = true
		}

		if rt := endpoint.ResponseType(); rt != nil {
			g.registry.Register(rt)
		}
	}

	return g
}

// Registry returns the type registry of the generator.
func (g *Generator) Registry() *typeinfo.Registry {
	return g.registry
}

// Generate builds the document. Any unsupported type or unreadable source
// aborts the run.
func (g *Generator) Generate() (*openapi.Document, error) {
	version := g.config.Version
	if version == "" {
		version = api.DefaultVersion
	}

	doc := openapi.NewDocument(openapi.Info{
		Title:       g.config.Name,
		Description: g.config.Description,
		Version:     version,
	})

	for _, server := range g.config.Servers {
		doc.Servers = append(doc.Servers, openapi.Server{
			URL:         server.URL,
			Description: server.Description,
		})
	}

	for _, endpoint := range g.config.Endpoints {
		g.logger.Debug("processing endpoint", "method", endpoint.Method, "uri", endpoint.URI)

		path, err := g.pathFromEndpoint(endpoint)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", endpoint.Method, endpoint.URI, err)
		}

		doc.AddPath(path)
	}

	return doc, nil
}
