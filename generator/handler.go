package generator

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/vitalvas/apidoc/api"
	"github.com/vitalvas/apidoc/metadata"
	"github.com/vitalvas/apidoc/openapi"
)

// DocsUI selects which interactive documentation UI to serve.
type DocsUI int

const (
	DocsSwaggerUI DocsUI = iota
	DocsRapiDoc
	DocsRedoc
)

// HandleConfig configures the routes served by Handler.
type HandleConfig struct {
	// UI selects the interactive docs UI (default: DocsSwaggerUI).
	UI DocsUI

	// Title overrides the HTML page title (default: the document title).
	Title string

	// JSONFilename is the path of the JSON document (default: "schema.json").
	// Set to "-" to disable.
	JSONFilename string

	// YAMLFilename is the path of the YAML document (default: "schema.yaml").
	// Set to "-" to disable.
	YAMLFilename string

	// DisableDocs disables the interactive HTML docs page.
	DisableDocs bool

	// SwaggerUIConfig provides additional SwaggerUIBundle options, rendered
	// next to the url and dom_id defaults.
	//
	// See: https://swagger.io/docs/open-source-tools/swagger-ui/usage/configuration/
	SwaggerUIConfig map[string]any

	// ExtractorOptions configure the metadata extractor used for the run.
	ExtractorOptions []metadata.Option
}

func (cfg HandleConfig) jsonFilename() string {
	if cfg.JSONFilename == "" {
		return "schema.json"
	}

	return cfg.JSONFilename
}

func (cfg HandleConfig) yamlFilename() string {
	if cfg.YAMLFilename == "" {
		return "schema.yaml"
	}

	return cfg.YAMLFilename
}

type docHandler struct {
	config  *api.Config
	handle  HandleConfig
	opts    []Option
	once    sync.Once
	doc     *openapi.Document
	jsonDoc []byte
	yamlDoc []byte
	err     error
}

// Handler serves the document generated from config. Paths are relative to
// where the handler is mounted:
//
//	/             - interactive HTML docs (unless DisableDocs)
//	/schema.json  - document as JSON      (unless JSONFilename is "-")
//	/schema.yaml  - document as YAML      (unless YAMLFilename is "-")
//
// The document is generated once, on the first request. A generation error
// is reported as 500 on every request.
//
//	http.Handle("/docs/", http.StripPrefix("/docs", generator.Handler(cfg, nil)))
func Handler(config *api.Config, handle *HandleConfig, opts ...Option) http.Handler {
	if handle == nil {
		handle = &HandleConfig{}
	}

	h := &docHandler{config: config, handle: *handle, opts: opts}
	mux := http.NewServeMux()

	jsonFile := handle.jsonFilename()
	yamlFile := handle.yamlFilename()

	var specURL string

	if yamlFile != "-" {
		specURL = yamlFile
		mux.HandleFunc("GET /"+yamlFile, h.serveYAML)
	}

	if jsonFile != "-" {
		specURL = jsonFile
		mux.HandleFunc("GET /"+jsonFile, h.serveJSON)
	}

	if !handle.DisableDocs && specURL != "" {
		mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
			h.serveDocs(w, r, specURL)
		})
	}

	return mux
}

func (h *docHandler) build() error {
	h.once.Do(func() {
		extractor := metadata.NewExtractor(h.handle.ExtractorOptions...)

		h.doc, h.err = New(h.config, extractor, h.opts...).Generate()
		if h.err != nil {
			return
		}

		if h.jsonDoc, h.err = h.doc.MarshalIndentJSON("", "  "); h.err != nil {
			return
		}

		h.yamlDoc, h.err = h.doc.YAML()
	})

	return h.err
}

func (h *docHandler) serveJSON(w http.ResponseWriter, _ *http.Request) {
	if err := h.build(); err != nil {
		http.Error(w, "failed to generate OpenAPI document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.jsonDoc)
}

func (h *docHandler) serveYAML(w http.ResponseWriter, _ *http.Request) {
	if err := h.build(); err != nil {
		http.Error(w, "failed to generate OpenAPI document", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(h.yamlDoc)
}

func (h *docHandler) serveDocs(w http.ResponseWriter, _ *http.Request, specURL string) {
	title := h.handle.Title
	if title == "" {
		title = h.config.Name
	}

	var page string

	switch h.handle.UI {
	case DocsRapiDoc:
		page = rapidocTemplate(title, specURL)
	case DocsRedoc:
		page = redocTemplate(title, specURL)
	default:
		page = swaggerUITemplate(title, specURL, h.handle.SwaggerUIConfig)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(page))
}

func swaggerUITemplate(title, specPath string, config map[string]any) string {
	var extra string
	if len(config) > 0 {
		keys := make([]string, 0, len(config))
		for k := range config {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var buf strings.Builder
		for _, k := range keys {
			v, err := json.Marshal(config[k])
			if err != nil {
				continue
			}
			fmt.Fprintf(&buf, ", %q: %s", k, v)
		}
		extra = buf.String()
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
<link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
<div id="swagger-ui"></div>
<script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
<script>
SwaggerUIBundle({url: %q, dom_id: "#swagger-ui"%s});
</script>
</body>
</html>`, html.EscapeString(title), specPath, extra)
}

func rapidocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
<script type="module" src="https://unpkg.com/rapidoc/dist/rapidoc-min.js"></script>
</head>
<body>
<rapi-doc spec-url=%q render-style="read"></rapi-doc>
</body>
</html>`, html.EscapeString(title), specPath)
}

func redocTemplate(title, specPath string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>%s</title>
</head>
<body>
<redoc spec-url=%q></redoc>
<script src="https://cdn.redoc.ly/redoc/latest/bundles/redoc.standalone.js"></script>
</body>
</html>`, html.EscapeString(title), specPath)
}
