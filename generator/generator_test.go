package generator

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"os"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/apidoc/api"
	"github.com/vitalvas/apidoc/internal/fixtures"
	"github.com/vitalvas/apidoc/internal/fixtures/pet"
	"github.com/vitalvas/apidoc/metadata"
)

func testExtractor() *metadata.Extractor {
	return metadata.NewExtractor(metadata.WithLoader(metadata.DirLoader{
		"github.com/vitalvas/apidoc/internal/fixtures":     "../internal/fixtures",
		"github.com/vitalvas/apidoc/internal/fixtures/pet": "../internal/fixtures/pet",
	}))
}

func petConfig() *api.Config {
	return api.NewConfig("Test API").
		AddEndpoint(
			api.NewEndpoint(http.MethodGet, "/api/pets").
				WithRequest(pet.PetListRequest{}).
				WithResponse(pet.PetListResponse{}),
			api.NewEndpoint(http.MethodGet, "/api/pets/{id}"),
			api.NewEndpoint(http.MethodPost, "/api/pets").
				WithRequest(pet.PetStoreRequest{}),
		)
}

func generate(t *testing.T, cfg *api.Config, opts ...Option) []byte {
	t.Helper()

	doc, err := New(cfg, testExtractor(), opts...).Generate()
	require.NoError(t, err)

	data, err := doc.MarshalIndentJSON("", "  ")
	require.NoError(t, err)

	return data
}

func TestGeneratePetStore(t *testing.T) {
	want, err := os.ReadFile("testdata/petstore.json")
	require.NoError(t, err)

	got := generate(t, petConfig())
	assert.Equal(t, strings.TrimSpace(string(want)), string(got))
}

func TestGenerateIsIdempotent(t *testing.T) {
	first := generate(t, petConfig())
	second := generate(t, petConfig())
	assert.Equal(t, first, second)
}

func TestGenerateValidates(t *testing.T) {
	doc, err := New(petConfig(), testExtractor()).Generate()
	require.NoError(t, err)
	assert.NoError(t, doc.Validate(context.Background()))
}

func TestGenerateReferenceIntegrity(t *testing.T) {
	cfg := petConfig().AddEndpoint(
		api.NewEndpoint(http.MethodPost, "/api/appointments").WithRequest(fixtures.Appointment{}),
		api.NewEndpoint(http.MethodGet, "/api/tree").WithRequest(fixtures.Node{}),
	)

	doc, err := New(cfg, testExtractor()).Generate()
	require.NoError(t, err)

	data, err := doc.MarshalJSON()
	require.NoError(t, err)

	named := doc.NamedSchemas()
	for _, ref := range refPattern.FindAllStringSubmatch(string(data), -1) {
		_, ok := named.Get(ref[1])
		assert.True(t, ok, "dangling reference %s", ref[1])
	}

	assert.NotContains(t, string(data), "null,")
	assert.NotContains(t, string(data), ":null")
}

func TestGenerateEndpointOrder(t *testing.T) {
	list := api.NewEndpoint(http.MethodGet, "/api/pets").WithResponse(pet.PetListResponse{})
	appointment := api.NewEndpoint(http.MethodPost, "/api/appointments").WithRequest(fixtures.Appointment{})

	for _, endpoints := range [][]api.Endpoint{{list, appointment}, {appointment, list}} {
		cfg := api.NewConfig("Test API").AddEndpoint(endpoints...)

		doc, err := New(cfg, testExtractor()).Generate()
		require.NoError(t, err)

		for _, path := range doc.Paths {
			if path.Path != "/api/pets" {
				continue
			}

			schema := path.Responses[0].Schema
			require.NotNil(t, schema)
			require.NotNil(t, schema.Items)
			assert.Equal(t, "Pet", schema.Items.Name)
		}

		_, ok := doc.NamedSchemas().Get("Pet")
		assert.True(t, ok)
	}
}

func TestGenerateLowercaseMethod(t *testing.T) {
	cfg := api.NewConfig("Test API").AddEndpoint(api.Endpoint{
		Method:  "post",
		URI:     "/api/pets",
		Request: pet.PetStoreRequest{},
	})

	doc, err := New(cfg, testExtractor()).Generate()
	require.NoError(t, err)
	require.Len(t, doc.Paths, 1)

	path := doc.Paths[0]
	assert.Equal(t, http.MethodPost, path.Method)
	require.NotNil(t, path.RequestBody)
	assert.Empty(t, path.Parameters)

	data, err := doc.MarshalJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"post":{`)
	assert.NotContains(t, string(data), `"in":"query"`)
}

func TestGenerateInfoOverride(t *testing.T) {
	cfg := api.NewConfig("Test API").AddEndpoint(
		api.NewEndpoint(http.MethodGet, "/api/pets").
			WithResponse(pet.PetResponse{}).
			WithInfo(api.Info{
				Summary:     "List pets",
				Description: "Returns every pet.",
				OperationID: "listPets",
				Response:    pet.PetListResponse{},
			}),
	).Register(pet.Pet{})

	doc, err := New(cfg, testExtractor()).Generate()
	require.NoError(t, err)
	require.Len(t, doc.Paths, 1)

	path := doc.Paths[0]
	assert.Equal(t, "List pets", path.Summary)
	assert.Equal(t, "Returns every pet.", path.Description)
	assert.Equal(t, "listPets", path.OperationID)

	require.Len(t, path.Responses, 1)
	schema := path.Responses[0].Schema
	require.NotNil(t, schema)
	assert.Equal(t, "array", schema.Type)
	require.NotNil(t, schema.Items)
	assert.Equal(t, "Pet", schema.Items.Name)
}

func TestGenerateResponses(t *testing.T) {
	t.Run("scalar return hint", func(t *testing.T) {
		cfg := api.NewConfig("Test API").
			AddEndpoint(api.NewEndpoint(http.MethodGet, "/api/pets/{id}").WithResponse(pet.PetResponse{})).
			Register(pet.Pet{})

		doc, err := New(cfg, testExtractor()).Generate()
		require.NoError(t, err)

		schema := doc.Paths[0].Responses[0].Schema
		require.NotNil(t, schema)
		assert.Equal(t, "Pet", schema.Name)
	})

	t.Run("promoted from embedded type", func(t *testing.T) {
		cfg := api.NewConfig("Test API").
			AddEndpoint(api.NewEndpoint(http.MethodGet, "/api/pets").WithResponse(&fixtures.WrappedPetList{})).
			Register(pet.Pet{})

		doc, err := New(cfg, testExtractor()).Generate()
		require.NoError(t, err)

		schema := doc.Paths[0].Responses[0].Schema
		require.NotNil(t, schema)
		assert.Equal(t, "array", schema.Type)
		require.NotNil(t, schema.Items)
		assert.Equal(t, "Pet", schema.Items.Name)
	})

	t.Run("not a responder", func(t *testing.T) {
		cfg := api.NewConfig("Test API").
			AddEndpoint(api.NewEndpoint(http.MethodGet, "/api/pets").WithResponse(pet.Pet{}))

		doc, err := New(cfg, testExtractor()).Generate()
		require.NoError(t, err)

		response := doc.Paths[0].Responses[0]
		assert.Equal(t, 200, response.StatusCode)
		assert.Equal(t, "Successful Response", response.Description)
		assert.Nil(t, response.Schema)
	})
}

func TestGenerateQueryParameters(t *testing.T) {
	cfg := api.NewConfig("Test API").AddEndpoint(
		api.NewEndpoint(http.MethodGet, "/api/search/{scope}").WithRequest(fixtures.DefaultValue{}),
	)

	doc, err := New(cfg, testExtractor()).Generate()
	require.NoError(t, err)

	params := doc.Paths[0].Parameters
	require.Len(t, params, 4)

	assert.Equal(t, "scope", params[0].Name)
	assert.Equal(t, "path", params[0].In)
	assert.True(t, params[0].Required)

	assert.Equal(t, "intWithDefault", params[1].Name)
	assert.Equal(t, "query", params[1].In)
	assert.False(t, params[1].Required)

	assert.Equal(t, "plain", params[3].Name)
	assert.True(t, params[3].Required)
}

func TestGenerateSkipValidation(t *testing.T) {
	cfg := api.NewConfig("Test API").AddEndpoint(
		api.NewEndpoint(http.MethodPost, "/api/search").
			WithRequest(fixtures.SearchRequest{}).
			WithResponse(fixtures.SearchResult{}),
	)

	g := New(cfg, testExtractor())

	doc, err := g.Generate()
	require.NoError(t, err)

	body := doc.Paths[0].RequestBody.Schema
	_, ok := body.Properties.Get("token")
	assert.False(t, ok)
	_, ok = body.Properties.Get("query")
	assert.True(t, ok)

	result, err := g.TypeToSchema(g.Registry().Of(reflect.TypeFor[fixtures.SearchResult]()), nil)
	require.NoError(t, err)
	_, ok = result.Properties.Get("token")
	assert.True(t, ok)
}

func TestGenerateErrors(t *testing.T) {
	t.Run("unsupported field", func(t *testing.T) {
		cfg := api.NewConfig("Test API").AddEndpoint(
			api.NewEndpoint(http.MethodPost, "/api/events").WithRequest(fixtures.Unsupported{}),
		)

		doc, err := New(cfg, testExtractor()).Generate()
		require.Error(t, err)
		assert.Nil(t, doc)
		assert.ErrorIs(t, err, ErrTypeNotSupported)
		assert.Contains(t, err.Error(), "POST /api/events")
		assert.Contains(t, err.Error(), "chan int")
	})

	t.Run("unregistered hint", func(t *testing.T) {
		cfg := api.NewConfig("Test API").AddEndpoint(
			api.NewEndpoint(http.MethodPost, "/api/unknown").WithRequest(fixtures.UnknownHint{}),
		)

		_, err := New(cfg, testExtractor()).Generate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrTypeNotSupported)

		var notSupported *TypeNotSupportedError
		require.ErrorAs(t, err, &notSupported)
		assert.Equal(t, "github.com/vitalvas/apidoc/internal/fixtures.Missing", notSupported.Type)
	})

	t.Run("source unavailable", func(t *testing.T) {
		cfg := petConfig()
		extractor := metadata.NewExtractor(metadata.WithLoader(metadata.DirLoader{}))

		_, err := New(cfg, extractor).Generate()
		require.Error(t, err)
		assert.ErrorIs(t, err, metadata.ErrSourceUnavailable)
	})
}

func TestGenerateServers(t *testing.T) {
	cfg := api.NewConfig("Test API").AddServer(api.Server{URL: "https://api.example.com", Description: "Production"})
	cfg.Version = ""
	cfg.Description = "Pets everywhere"

	doc, err := New(cfg, testExtractor()).Generate()
	require.NoError(t, err)

	assert.Equal(t, "1.0", doc.Info.Version)
	assert.Equal(t, "Pets everywhere", doc.Info.Description)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "https://api.example.com", doc.Servers[0].URL)
	assert.Equal(t, "Production", doc.Servers[0].Description)
	assert.Empty(t, doc.Paths)
}

func TestGenerateLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	generate(t, petConfig(), WithLogger(logger))

	assert.Contains(t, buf.String(), "processing endpoint")
	assert.Contains(t, buf.String(), "uri=/api/pets")
	assert.Contains(t, buf.String(), "compiling schema")
}
