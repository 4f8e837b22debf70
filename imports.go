package jsonstructure

import (
	"io"
	"net/http"
	"os"

	"github.com/pkg/errors"
)

// Resolver fetches the document named by an absolute URI for
// $import/$importdefs expansion.
type Resolver interface {
	Fetch(uri string) (Value, error)
}

// MapResolver resolves a fixed URI->document map, useful in tests. An
// ImportMap of URI->file path is served by FileResolver instead.
type MapResolver struct {
	Documents map[string]Value
}

func (r MapResolver) Fetch(uri string) (Value, error) {
	doc, ok := r.Documents[uri]
	if !ok {
		return Value{}, errors.Errorf("jsonstructure: no document registered for %q", uri)
	}
	return doc, nil
}

// FileResolver resolves a URI through an ImportMap of URI->local file
// path, reading and parsing the file with ParseValue. This backs the
// CLI's --import-map flag, which accepts a YAML file of exactly this
// shape.
type FileResolver struct {
	ImportMap map[string]string
}

func (r FileResolver) Fetch(uri string) (Value, error) {
	path, ok := r.ImportMap[uri]
	if !ok {
		return Value{}, errors.Errorf("jsonstructure: import_map has no entry for %q", uri)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Value{}, errors.Wrapf(err, "reading import target %q", path)
	}
	v, err := ParseValue(data)
	if err != nil {
		return Value{}, errors.Wrapf(err, "parsing import target %q", path)
	}
	return v, nil
}

// HTTPResolver fetches import targets over HTTP(S), for production use
// against a real schema registry.
type HTTPResolver struct {
	Client *http.Client
}

func (r HTTPResolver) Fetch(uri string) (Value, error) {
	client := r.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(uri)
	if err != nil {
		return Value{}, errors.Wrapf(err, "fetching $import target %q", uri)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return Value{}, errors.Errorf("jsonstructure: fetching %q: status %d", uri, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Value{}, errors.Wrapf(err, "reading $import target %q", uri)
	}
	v, err := ParseValue(data)
	if err != nil {
		return Value{}, errors.Wrapf(err, "parsing $import target %q", uri)
	}
	return v, nil
}

// ExpandImports walks doc depth-first, replacing any $import/$importdefs
// keyword with the fetched document's contents, without
// mutating the input tree. Returns the expanded document and any
// diagnostics raised along the way; an import failure diagnoses and
// continues, leaving that branch's names unexpanded, never aborting the
// whole walk.
func ExpandImports(doc Value, opts Options) (Value, *DiagnosticList) {
	diags := &DiagnosticList{}
	if !opts.AllowImport {
		return doc, diags
	}
	expanded := expandImportsNode(doc, opts, "#", diags)
	return expanded, diags
}

func expandImportsNode(node Value, opts Options, path string, diags *DiagnosticList) Value {
	switch node.Kind() {
	case KindArray:
		out := make([]Value, len(node.Array()))
		for i, item := range node.Array() {
			out[i] = expandImportsNode(item, opts, arrayPath(path, i), diags)
		}
		return Array(out)
	case KindObject:
		return expandImportsObject(node.Object(), opts, path, diags)
	default:
		return node
	}
}

func expandImportsObject(obj *Object, opts Options, path string, diags *DiagnosticList) Value {
	result := NewObject()
	for _, k := range obj.Keys() {
		v, _ := obj.Get(k)
		result.Set(k, v)
	}

	for _, keyword := range []string{"$import", "$importdefs"} {
		v, ok := result.Get(keyword)
		if !ok {
			continue
		}
		applyImportKeyword(result, keyword, v, opts, path, diags)
		result.Delete(keyword)
	}

	for _, k := range result.Keys() {
		v, _ := result.Get(k)
		result.Set(k, expandImportsNode(v, opts, path+"/"+k, diags))
	}
	return ObjectValue(result)
}

func applyImportKeyword(result *Object, keyword string, uriV Value, opts Options, path string, diags *DiagnosticList) {
	if uriV.Kind() != KindString || !isAbsoluteURIString(uriV.Str()) {
		diags.Addf(CategoryStructural, "import-not-absolute-uri", path+"/"+keyword,
			"'"+keyword+"' value must be an absolute URI.")
		return
	}
	uri := uriV.Str()
	resolver := opts.Resolver
	if resolver == nil {
		diags.Addf(CategoryStructural, "import-no-resolver", path+"/"+keyword,
			"'"+keyword+"' requires a Resolver but none is configured.")
		return
	}
	fetched, err := resolver.Fetch(uri)
	if err != nil {
		diags.Addf(CategoryStructural, "import-fetch-failed", path+"/"+keyword,
			"Failed to fetch '"+uri+"': "+err.Error())
		return
	}
	fetchedObj := fetched.Object()
	if fetchedObj == nil {
		diags.Addf(CategoryStructural, "import-target-not-object", path+"/"+keyword,
			"Import target '"+uri+"' is not a JSON object.")
		return
	}

	if keyword == "$import" {
		nameV, hasName := fetchedObj.Get("name")
		_, hasType := fetchedObj.Get("type")
		if hasName && hasType && nameV.Kind() == KindString {
			mergeNonClobbering(result, nameV.Str(), fetched)
		}
	}

	if defsV, ok := fetchedObj.Get("definitions"); ok && defsV.Kind() == KindObject {
		existingDefsV, hasDefs := result.Get("definitions")
		existingDefs := NewObject()
		if hasDefs && existingDefsV.Kind() == KindObject {
			existingDefs = existingDefsV.Clone().Object()
		}
		for _, name := range defsV.Object().Keys() {
			defSchema, _ := defsV.Object().Get(name)
			mergeNonClobbering(existingDefs, name, defSchema)
		}
		result.Set("definitions", ObjectValue(existingDefs))
	}
}

// mergeNonClobbering sets key on target only if not already present.
func mergeNonClobbering(target *Object, key string, v Value) {
	if target.Has(key) {
		return
	}
	target.Set(key, v)
}
