package jsonstructure

import (
	"encoding/base64"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
)

// Validator is the compilation/caching pipeline: an RWMutex-guarded
// cache of import-expanded schema documents keyed by URI, a pluggable
// Loaders registry keyed by URL scheme, and pluggable MediaTypes
// decoders. The loader registry serves the Import Processor's
// fetch(uri) -> value surface rather than $ref loading:
// JSON Structure Core resolves $ref purely lexically against the root
// document, so only $import/$importdefs ever leaves the document.
type Validator struct {
	mu         sync.RWMutex
	schemas    map[string]Value
	Loaders    map[string]func(uri string) (io.ReadCloser, error)
	Decoders   map[string]func(string) ([]byte, error)
	MediaTypes map[string]func([]byte) (Value, error)

	// DefaultBaseURI is currently unused by pointer/ref resolution
	// (both are purely lexical) but kept for a future base-URI-relative
	// loader.
	DefaultBaseURI string

	Options Options
}

// NewValidator builds a Validator with default loaders (http/https) and
// media types (application/json, application/yaml) installed, the way
// NewCompiler calls initDefaults.
func NewValidator(opts Options) *Validator {
	v := &Validator{
		schemas:    make(map[string]Value),
		Loaders:    make(map[string]func(string) (io.ReadCloser, error)),
		Decoders:   make(map[string]func(string) ([]byte, error)),
		MediaTypes: make(map[string]func([]byte) (Value, error)),
		Options:    opts,
	}
	v.initDefaults()
	return v
}

func (v *Validator) initDefaults() {
	v.Decoders["base64"] = base64.StdEncoding.DecodeString
	v.MediaTypes["application/json"] = ParseValue
	v.MediaTypes["application/yaml"] = decodeYAMLValue

	client := &http.Client{Timeout: 10 * time.Second}
	httpLoader := func(uri string) (io.ReadCloser, error) {
		resp, err := client.Get(uri)
		if err != nil {
			return nil, errors.Wrapf(err, "fetching %q", uri)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, errors.Errorf("jsonstructure: fetching %q: status %d", uri, resp.StatusCode)
		}
		return resp.Body, nil
	}
	v.Loaders["http"] = httpLoader
	v.Loaders["https"] = httpLoader
}

// decodeYAMLValue decodes YAML bytes into the order-preserving Value
// tree by round-tripping through goccy/go-yaml's YAMLToJSON, matching
// setupMediaTypes application/yaml handler (there it
// unmarshals into `any`; here we want the ordered tree ParseValue
// already knows how to build, so we convert to JSON first).
func decodeYAMLValue(data []byte) (Value, error) {
	jsonBytes, err := yaml.YAMLToJSON(data)
	if err != nil {
		return Value{}, errors.Wrap(err, "converting YAML to JSON")
	}
	return ParseValue(jsonBytes)
}

// RegisterLoader adds a loader function for a specific URI scheme.
func (v *Validator) RegisterLoader(scheme string, loader func(uri string) (io.ReadCloser, error)) *Validator {
	v.Loaders[scheme] = loader
	return v
}

// RegisterMediaType adds a decoder for a specific media type, keyed by
// the same strings Fetch uses (via mediaTypeForURI) to pick a decoder
// from a URI's extension.
func (v *Validator) RegisterMediaType(mediaType string, decode func([]byte) (Value, error)) *Validator {
	v.MediaTypes[mediaType] = decode
	return v
}

// Fetch implements Resolver, so a Validator can serve as the Import
// Processor's fetch(uri) -> value collaborator directly.
// The media type is guessed from the URI's extension (.yaml/.yml for
// YAML), defaulting to JSON.
func (v *Validator) Fetch(uri string) (Value, error) {
	scheme := schemeOf(uri)
	loader, ok := v.Loaders[scheme]
	if !ok {
		return Value{}, errors.Wrapf(ErrUnknownLoaderScheme, "scheme %q", scheme)
	}
	rc, err := loader(uri)
	if err != nil {
		return Value{}, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return Value{}, errors.Wrapf(err, "reading %q", uri)
	}
	decode, ok := v.MediaTypes[mediaTypeForURI(uri)]
	if !ok {
		decode = v.MediaTypes["application/json"]
	}
	return decode(data)
}

func schemeOf(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return ""
	}
	return u.Scheme
}

func mediaTypeForURI(uri string) string {
	switch {
	case strings.HasSuffix(uri, ".yaml"), strings.HasSuffix(uri, ".yml"):
		return "application/yaml"
	default:
		return "application/json"
	}
}

// CompileSchema parses, caches (by uri, when non-empty), and
// import-expands a schema document. Repeated calls with the same
// non-empty uri return the cached expansion without re-parsing,
// mirroring Compile schema cache.
func (v *Validator) CompileSchema(data []byte, uri string) (Value, *DiagnosticList, error) {
	if uri != "" {
		v.mu.RLock()
		cached, ok := v.schemas[uri]
		v.mu.RUnlock()
		if ok {
			return cached, &DiagnosticList{}, nil
		}
	}
	doc, err := ParseValue(data)
	if err != nil {
		return Value{}, nil, errors.Wrap(ErrInvalidJSON, err.Error())
	}
	opts := v.Options
	if opts.AllowImport && opts.Resolver == nil {
		if len(opts.ImportMap) > 0 {
			opts.Resolver = FileResolver{ImportMap: opts.ImportMap}
		} else {
			opts.Resolver = v
		}
	}
	expanded, diags := ExpandImports(doc, opts)
	if uri != "" {
		v.mu.Lock()
		v.schemas[uri] = expanded
		v.mu.Unlock()
	}
	return expanded, diags, nil
}

// ValidateSchemaDocument runs the full schema-validation pipeline over
// raw bytes: parse, import-expand, then Meta-Schema Validator checks.
// All diagnostics (import failures and structural findings) share one
// ordered list.
func (v *Validator) ValidateSchemaDocument(data []byte) *DiagnosticList {
	expanded, diags, err := v.CompileSchema(data, "")
	if err != nil {
		diags = &DiagnosticList{}
		diags.Addf(CategoryStructural, "invalid-json", "#", err.Error())
		return diags
	}
	schemaDiags := ValidateSchema(expanded, v.Options)
	diags.items = append(diags.items, schemaDiags.items...)
	return diags
}

// ValidateInstanceDocument runs the full pipeline for an instance
// against a schema given as raw bytes: parse+import-expand the schema,
// parse the instance, then run the Instance Validator.
func (v *Validator) ValidateInstanceDocument(schemaData, instanceData []byte) *DiagnosticList {
	expandedSchema, diags, err := v.CompileSchema(schemaData, "")
	if err != nil {
		diags = &DiagnosticList{}
		diags.Addf(CategoryStructural, "invalid-schema-json", "#", err.Error())
		return diags
	}
	instance, err := ParseValue(instanceData)
	if err != nil {
		diags.Addf(CategoryStructural, "invalid-instance-json", "#", err.Error())
		return diags
	}
	instDiags := ValidateInstance(instance, expandedSchema, v.Options)
	diags.items = append(diags.items, instDiags.items...)
	return diags
}
