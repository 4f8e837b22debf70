package jsonstructure

import "regexp"

// ValidateSchema is the Meta-Schema Validator's public contract:
// validate(doc) -> [diagnostic]. It assumes imports have already been
// expanded (see imports.go) — it performs no $import/$importdefs
// processing itself, keeping that concern separate from structural
// checking. Per-type structural-check order and constants are
// authoritative; diagnostics accumulate into one ordered buffer.
func ValidateSchema(doc Value, opts Options) *DiagnosticList {
	sv := &schemaValidator{
		root:    doc,
		diags:   &DiagnosticList{},
		opts:    opts,
		identRe: opts.identifierPattern(),
	}
	sv.validateRoot()
	return sv.diags
}

type schemaValidator struct {
	root    Value
	diags   *DiagnosticList
	opts    Options
	identRe *regexp.Regexp
	enabled map[string]bool
}

func (sv *schemaValidator) validateRoot() {
	if sv.root.Kind() != KindObject {
		sv.diags.Addf(CategoryStructural, "root-not-object", "#", "Root of the document must be a JSON object.")
		return
	}
	doc := sv.root.Object()

	if sv.opts.Extended {
		sv.enabled = computeEnabledExtensions(sv.root)
	}

	if !doc.Has("$schema") {
		sv.diags.Addf(CategoryStructural, "missing-schema", "#", "Missing required '$schema' keyword at root.")
	}
	if !doc.Has("$id") {
		sv.diags.Addf(CategoryStructural, "missing-id", "#", "Missing required '$id' keyword at root.")
	}
	if v, ok := doc.Get("$schema"); ok {
		sv.checkAbsoluteURI(v, "$schema", "#/$schema")
	}
	if v, ok := doc.Get("$id"); ok {
		sv.checkAbsoluteURI(v, "$id", "#/$id")
	}
	if v, ok := doc.Get("$uses"); ok {
		sv.checkUses(v, "#/$uses")
	}
	_, hasType := doc.Get("type")
	_, hasRoot := doc.Get("$root")
	if hasType && hasRoot {
		sv.diags.Addf(CategoryStructural, "type-and-root", "#", "Document cannot have both 'type' at root and '$root' at the same time.")
	}
	if hasType {
		sv.validateSchemaNode(sv.root, true, "#")
	}
	if rootPtr, ok := doc.Get("$root"); ok {
		sv.checkPointer(rootPtr, "#/$root")
	}
	if defs, ok := doc.Get("definitions"); ok {
		if defs.Kind() != KindObject {
			sv.diags.Addf(CategoryStructural, "definitions-not-object", "#/definitions", "definitions must be an object.")
		} else {
			sv.validateNamespace(defs, "#/definitions")
		}
	}
	if offers, ok := doc.Get("$offers"); ok {
		sv.checkOffers(offers, "#/$offers")
	}
	if sv.opts.Extended && !hasType {
		sv.checkCompositionKeywords(sv.root, "#")
	}
}

func (sv *schemaValidator) checkAbsoluteURI(v Value, keyword, path string) {
	if v.Kind() != KindString {
		sv.diags.Addf(CategoryStructural, "not-string", path, "'"+keyword+"' must be a string.")
		return
	}
	if !isAbsoluteURIString(v.Str()) {
		sv.diags.Addf(CategoryStructural, "not-absolute-uri", path, "'"+keyword+"' must be an absolute URI.")
	}
}

func (sv *schemaValidator) checkUses(v Value, path string) {
	if v.Kind() != KindArray {
		sv.diags.Addf(CategoryStructural, "uses-not-array", path, "$uses must be an array.")
		return
	}
	for idx, item := range v.Array() {
		sub := arrayPath(path, idx)
		if item.Kind() != KindString {
			sv.diags.Addf(CategoryStructural, "uses-item-not-string", sub, "$uses item must be a string.")
			continue
		}
		if sv.opts.Extended && !knownExtensions[item.Str()] {
			sv.diags.Addf(CategoryExtensionGating, "unknown-extension", sub, "Unknown extension '"+item.Str()+"' in $uses.")
		}
	}
}

func (sv *schemaValidator) validateNamespace(v Value, path string) {
	if v.Kind() != KindObject {
		sv.diags.Addf(CategoryStructural, "namespace-not-object", path, path+" must be an object.")
		return
	}
	for _, k := range v.Object().Keys() {
		child, _ := v.Object().Get(k)
		sub := path + "/" + k
		if child.Kind() == KindObject && (child.Object().Has("type") || child.Object().Has("$ref") ||
			(sv.opts.Extended && sv.hasCompositionKeywords(child))) {
			sv.validateSchemaNode(child, false, sub)
		} else if child.Kind() != KindObject {
			sv.diags.Addf(CategoryStructural, "not-namespace-or-schema", sub, sub+" is not a valid namespace or schema object.")
		} else {
			sv.validateNamespace(child, sub)
		}
	}
}

var compositionKeywords = []string{"allOf", "anyOf", "oneOf", "not", "if", "then", "else"}

func (sv *schemaValidator) hasCompositionKeywords(v Value) bool {
	if v.Kind() != KindObject {
		return false
	}
	for _, k := range compositionKeywords {
		if v.Object().Has(k) {
			return true
		}
	}
	return false
}

// validateSchemaNode checks a single schema object's structural rules,
// recursing into nested schema locations.
func (sv *schemaValidator) validateSchemaNode(node Value, isRoot bool, path string) {
	if node.Kind() != KindObject {
		sv.diags.Addf(CategoryStructural, "not-schema-object", path, path+" must be an object to be a schema.")
		return
	}
	obj := node.Object()

	if sv.opts.Extended {
		sv.checkCompositionKeywords(node, path)
	}

	if isRoot {
		if tv, ok := obj.Get("type"); ok && tv.Kind() != KindArray {
			if !obj.Has("name") {
				sv.diags.Addf(CategoryStructural, "root-missing-name", path, "Root schema with 'type' must have a 'name' property.")
			}
		}
	}
	if nameV, ok := obj.Get("name"); ok {
		if nameV.Kind() != KindString {
			sv.diags.Addf(CategoryIdentifier, "name-not-string", path+"/name", "'name' must be a string.")
		} else if !sv.identRe.MatchString(nameV.Str()) {
			sv.diags.Addf(CategoryIdentifier, "name-pattern", path+"/name", "'name' must match the identifier pattern.")
		}
	}
	if abstractV, ok := obj.Get("abstract"); ok && abstractV.Kind() != KindBool {
		sv.diags.Addf(CategoryStructural, "abstract-not-bool", path+"/abstract", "'abstract' keyword must be boolean.")
	}
	if extV, ok := obj.Get("$extends"); ok {
		if extV.Kind() != KindString {
			sv.diags.Addf(CategoryReference, "extends-not-string", path+"/$extends", "'$extends' must be a JSON pointer string.")
		} else {
			sv.checkPointer(extV, path+"/$extends")
		}
	}

	_, hasType := obj.Get("type")
	_, hasRef := obj.Get("$ref")
	hasComposition := sv.opts.Extended && sv.hasCompositionKeywords(node)

	if !hasType && !hasRef && !hasComposition {
		sv.diags.Addf(CategoryStructural, "missing-type-or-ref", path, "Missing required 'type' or '$ref' in schema object.")
		return
	}
	if hasType && hasRef {
		sv.diags.Addf(CategoryStructural, "type-and-ref", path, "Cannot have both 'type' and '$ref'.")
		return
	}
	if hasRef {
		refV, _ := obj.Get("$ref")
		if refV.Kind() != KindString {
			sv.diags.Addf(CategoryReference, "ref-not-string", path+"/$ref", "'$ref' must be a string.")
		} else {
			sv.checkPointer(refV, path+"/$ref")
		}
		return
	}

	if hasType {
		sv.validateTypeField(node, path)
	}

	if sv.opts.Extended && hasType {
		sv.checkExtendedValidationKeywords(node, path)
	}

	if _, ok := obj.Get("required"); ok {
		if tv, ok := obj.Get("type"); ok && tv.Kind() == KindString && tv.Str() != "object" {
			sv.diags.Addf(CategoryStructural, "required-not-object", path+"/required", "'required' can only appear in an object schema.")
		}
	}
	if _, ok := obj.Get("additionalProperties"); ok {
		if tv, ok := obj.Get("type"); ok && tv.Kind() == KindString && tv.Str() != "object" {
			sv.diags.Addf(CategoryStructural, "additional-properties-not-object", path+"/additionalProperties", "'additionalProperties' can only appear in an object schema.")
		}
	}
	if enumV, ok := obj.Get("enum"); ok {
		if enumV.Kind() != KindArray {
			sv.diags.Addf(CategoryStructural, "enum-not-array", path+"/enum", "Enum must be an array.")
		}
		if tv, ok := obj.Get("type"); ok && tv.Kind() == KindString && compoundTypes[tv.Str()] {
			sv.diags.Addf(CategoryConstraint, "enum-compound-type", path+"/enum", "'enum' cannot be used with compound types.")
		}
	}
	if _, ok := obj.Get("const"); ok {
		if tv, ok := obj.Get("type"); ok && tv.Kind() == KindString && compoundTypes[tv.Str()] {
			sv.diags.Addf(CategoryConstraint, "const-compound-type", path+"/const", "'const' cannot be used with compound types.")
		}
	}
}

func (sv *schemaValidator) validateTypeField(node Value, path string) {
	obj := node.Object()
	tv, _ := obj.Get("type")
	switch tv.Kind() {
	case KindArray:
		items := tv.Array()
		if len(items) == 0 {
			sv.diags.Addf(CategoryStructural, "empty-union", path+"/type", "Type union cannot be empty.")
			return
		}
		for idx, item := range items {
			sv.checkUnionTypeItem(item, arrayPath(path+"/type", idx))
		}
	case KindObject:
		if refV, ok := tv.Object().Get("$ref"); ok {
			sv.checkPointer(refV, path+"/type/$ref")
			return
		}
		if tv.Object().Has("type") || tv.Object().Has("properties") {
			sv.validateSchemaNode(tv, false, path+"/type(inline)")
			return
		}
		sv.diags.Addf(CategoryStructural, "type-dict-invalid", path+"/type", "Type dict must have '$ref' or be a valid schema object.")
	case KindString:
		name := tv.Str()
		if !isRecognizedType(name) {
			sv.diags.Addf(CategoryStructural, "unrecognized-type", path+"/type", "Type '"+name+"' is not a recognized primitive or compound type.")
			return
		}
		switch name {
		case "object":
			sv.checkObjectSchema(node, path)
		case "array", "set":
			sv.checkItemsSchema(node, path)
		case "map":
			sv.checkMapSchema(node, path)
		case "tuple":
			sv.checkTupleSchema(node, path)
		case "choice":
			sv.checkChoiceSchema(node, path)
		}
	default:
		sv.diags.Addf(CategoryStructural, "type-bad-shape", path+"/type", "Type must be a string, list, or object with $ref.")
	}
}

func (sv *schemaValidator) checkUnionTypeItem(item Value, path string) {
	switch item.Kind() {
	case KindString:
		name := item.Str()
		if !isRecognizedType(name) {
			sv.diags.Addf(CategoryStructural, "union-unrecognized-type", path, "'"+name+"' not recognized as a valid type name.")
		}
		if compoundTypes[name] {
			sv.diags.Addf(CategoryStructural, "union-inline-compound", path, "Inline compound type '"+name+"' is not permitted in a union. Must use a $ref.")
		}
	case KindObject:
		if refV, ok := item.Object().Get("$ref"); ok {
			sv.checkPointer(refV, path+"/$ref")
		} else {
			sv.diags.Addf(CategoryStructural, "union-inline-object", path, "Inline compound definitions not allowed in union. Must be a $ref.")
		}
	default:
		sv.diags.Addf(CategoryStructural, "union-item-bad-shape", path, "Union item must be a string or an object with $ref.")
	}
}

func (sv *schemaValidator) checkObjectSchema(node Value, path string) {
	obj := node.Object()
	propsV, hasProps := obj.Get("properties")
	if !hasProps && !obj.Has("$extends") {
		sv.diags.Addf(CategoryStructural, "object-missing-properties", path+"/properties", "Object type must have 'properties' if not extending another type.")
		return
	}
	if !hasProps {
		return
	}
	if propsV.Kind() != KindObject {
		sv.diags.Addf(CategoryStructural, "properties-not-object", path+"/properties", "Properties must be an object.")
		return
	}
	for _, name := range propsV.Object().Keys() {
		propSchema, _ := propsV.Object().Get(name)
		sub := path + "/properties/" + name
		if !sv.identRe.MatchString(name) {
			sv.diags.Addf(CategoryIdentifier, "property-key-pattern", sub, "Property key '"+name+"' does not match the identifier pattern.")
		}
		if propSchema.Kind() == KindObject {
			sv.validateSchemaNode(propSchema, false, sub)
		} else {
			sv.diags.Addf(CategoryStructural, "property-not-schema", sub, "Property '"+name+"' must be an object (a schema).")
		}
	}
}

func (sv *schemaValidator) checkItemsSchema(node Value, path string) {
	obj := node.Object()
	itemsV, ok := obj.Get("items")
	if !ok {
		sv.diags.Addf(CategoryStructural, "missing-items", path+"/items", "Type must have 'items'.")
		return
	}
	if itemsV.Kind() != KindObject {
		sv.diags.Addf(CategoryStructural, "items-not-object", path+"/items", "'items' must be an object (a schema).")
		return
	}
	sv.validateSchemaNode(itemsV, false, path+"/items")
}

func (sv *schemaValidator) checkMapSchema(node Value, path string) {
	obj := node.Object()
	valuesV, ok := obj.Get("values")
	if !ok {
		sv.diags.Addf(CategoryStructural, "missing-values", path+"/values", "Map type must have 'values'.")
		return
	}
	if valuesV.Kind() != KindObject {
		sv.diags.Addf(CategoryStructural, "values-not-object", path+"/values", "'values' must be an object (a schema).")
		return
	}
	sv.validateSchemaNode(valuesV, false, path+"/values")
}

func (sv *schemaValidator) checkTupleSchema(node Value, path string) {
	obj := node.Object()
	if !obj.Has("name") {
		sv.diags.Addf(CategoryStructural, "tuple-missing-name", path+"/name", "Tuple type must include a 'name' attribute.")
	}
	propsV, hasProps := obj.Get("properties")
	if !hasProps {
		sv.diags.Addf(CategoryStructural, "tuple-missing-properties", path+"/properties", "Tuple type must have 'properties'.")
	} else if propsV.Kind() != KindObject {
		sv.diags.Addf(CategoryStructural, "tuple-properties-not-object", path+"/properties", "'properties' must be an object.")
	} else {
		for _, name := range propsV.Object().Keys() {
			propSchema, _ := propsV.Object().Get(name)
			sub := path + "/properties/" + name
			if !sv.identRe.MatchString(name) {
				sv.diags.Addf(CategoryIdentifier, "tuple-property-key-pattern", sub, "Tuple property key '"+name+"' does not match the identifier pattern.")
			}
			if propSchema.Kind() == KindObject {
				sv.validateSchemaNode(propSchema, false, sub)
			} else {
				sv.diags.Addf(CategoryStructural, "tuple-property-not-schema", sub, "Tuple property '"+name+"' must be an object (a schema).")
			}
		}
	}
	tupleV, hasTuple := obj.Get("tuple")
	if !hasTuple {
		sv.diags.Addf(CategoryStructural, "tuple-missing-order", path+"/tuple", "Tuple type must include the 'tuple' keyword defining the order of elements.")
		return
	}
	if tupleV.Kind() != KindArray {
		sv.diags.Addf(CategoryStructural, "tuple-order-not-array", path+"/tuple", "'tuple' keyword must be an array of strings.")
		return
	}
	for idx, el := range tupleV.Array() {
		sub := arrayPath(path+"/tuple", idx)
		if el.Kind() != KindString {
			sv.diags.Addf(CategoryStructural, "tuple-element-not-string", sub, "Element in 'tuple' array must be a string.")
			continue
		}
		if hasProps && propsV.Kind() == KindObject && !propsV.Object().Has(el.Str()) {
			sv.diags.Addf(CategoryStructural, "tuple-element-unknown", sub, "Element '"+el.Str()+"' in 'tuple' does not correspond to any property in 'properties'.")
		}
	}
}

func (sv *schemaValidator) checkChoiceSchema(node Value, path string) {
	obj := node.Object()
	choicesV, ok := obj.Get("choices")
	if !ok {
		sv.diags.Addf(CategoryStructural, "choice-missing-choices", path+"/choices", "Choice type must have 'choices'.")
	} else if choicesV.Kind() != KindObject {
		sv.diags.Addf(CategoryStructural, "choices-not-object", path+"/choices", "'choices' must be an object (map).")
	} else {
		for _, name := range choicesV.Object().Keys() {
			choiceSchema, _ := choicesV.Object().Get(name)
			sub := path + "/choices/" + name
			if choiceSchema.Kind() == KindObject {
				sv.validateSchemaNode(choiceSchema, false, sub)
			} else {
				sv.diags.Addf(CategoryStructural, "choice-value-not-schema", sub, "Choice value for '"+name+"' must be an object (schema).")
			}
		}
	}
	if selV, ok := obj.Get("selector"); ok && selV.Kind() != KindString {
		sv.diags.Addf(CategoryStructural, "selector-not-string", path+"/selector", "'selector' must be a string.")
	}
}

func (sv *schemaValidator) checkPointer(v Value, path string) {
	if v.Kind() != KindString {
		sv.diags.Addf(CategoryReference, "pointer-not-string", path, "JSON Pointer must be a string.")
		return
	}
	if _, err := ResolvePointer(sv.root, v.Str()); err != nil {
		sv.diags.Addf(CategoryReference, "pointer-unresolved", path, "JSON Pointer '"+v.Str()+"' does not resolve within the document.")
	}
}

func (sv *schemaValidator) checkOffers(v Value, path string) {
	if v.Kind() != KindObject {
		sv.diags.Addf(CategoryStructural, "offers-not-object", path, "$offers must be an object.")
		return
	}
	for _, name := range v.Object().Keys() {
		addin, _ := v.Object().Get(name)
		sub := path + "/" + name
		switch addin.Kind() {
		case KindString:
			sv.checkPointer(addin, sub)
		case KindArray:
			for idx, ptr := range addin.Array() {
				psub := arrayPath(sub, idx)
				if ptr.Kind() != KindString {
					sv.diags.Addf(CategoryStructural, "offers-item-not-string", psub, "$offers item must be a string (JSON Pointer).")
					continue
				}
				sv.checkPointer(ptr, psub)
			}
		default:
			sv.diags.Addf(CategoryStructural, "offers-value-bad-shape", sub, "$offers value must be a string or array of strings.")
		}
	}
}

// checkCompositionKeywords validates allOf/anyOf/oneOf/not/if/then/else
// shapes when present, gating on the JSONStructureConditionalComposition
// extension.
func (sv *schemaValidator) checkCompositionKeywords(node Value, path string) {
	if node.Kind() != KindObject {
		return
	}
	obj := node.Object()
	if !sv.enabled[ExtConditionalComposition] {
		for _, key := range compositionKeywords {
			if obj.Has(key) {
				sv.diags.Addf(CategoryExtensionGating, "composition-not-enabled", path+"/"+key,
					"Conditional composition keyword '"+key+"' requires JSONStructureConditionalComposition extension.")
			}
		}
		return
	}
	for _, key := range []string{"allOf", "anyOf", "oneOf"} {
		v, ok := obj.Get(key)
		if !ok {
			continue
		}
		if v.Kind() != KindArray {
			sv.diags.Addf(CategoryStructural, "composition-not-array", path+"/"+key, "'"+key+"' must be an array.")
			continue
		}
		if len(v.Array()) == 0 {
			sv.diags.Addf(CategoryStructural, "composition-empty", path+"/"+key, "'"+key+"' array cannot be empty.")
			continue
		}
		for idx, item := range v.Array() {
			sub := arrayPath(path+"/"+key, idx)
			if item.Kind() == KindObject {
				sv.validateSchemaNode(item, false, sub)
			} else {
				sv.diags.Addf(CategoryStructural, "composition-item-not-schema", sub, "'"+key+"' array items must be schema objects.")
			}
		}
	}
	if v, ok := obj.Get("not"); ok {
		if v.Kind() == KindObject {
			sv.validateSchemaNode(v, false, path+"/not")
		} else {
			sv.diags.Addf(CategoryStructural, "not-not-schema", path+"/not", "'not' must be a schema object.")
		}
	}
	for _, key := range []string{"if", "then", "else"} {
		v, ok := obj.Get(key)
		if !ok {
			continue
		}
		if v.Kind() == KindObject {
			sv.validateSchemaNode(v, false, path+"/"+key)
		} else {
			sv.diags.Addf(CategoryStructural, "conditional-not-schema", path+"/"+key, "'"+key+"' must be a schema object.")
		}
	}
}

var allValidationKeywords = []string{
	"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf",
	"minLength", "maxLength", "pattern", "format",
	"minItems", "maxItems", "uniqueItems", "contains", "minContains", "maxContains",
	"minProperties", "maxProperties", "minEntries", "maxEntries",
	"dependentRequired", "patternProperties", "patternKeys", "propertyNames", "keyNames", "has",
	"default",
}

// checkExtendedValidationKeywords gates and structurally checks the
// validation-addin keywords, dispatching per the node's declared type.
func (sv *schemaValidator) checkExtendedValidationKeywords(node Value, path string) {
	obj := node.Object()
	if !sv.enabled[ExtValidation] {
		for _, key := range allValidationKeywords {
			if obj.Has(key) {
				sv.diags.Addf(CategoryExtensionGating, "validation-not-enabled", path+"/"+key,
					"Validation keyword '"+key+"' requires JSONStructureValidation extension.")
			}
		}
		return
	}
	tv, _ := obj.Get("type")
	if tv.Kind() == KindString {
		name := tv.Str()
		switch {
		case numericTypes[name]:
			sv.checkNumericValidation(obj, path, name)
		case name == "string":
			sv.checkStringValidation(obj, path)
		case name == "array" || name == "set":
			sv.checkArrayValidation(obj, path, name)
		case name == "object" || name == "map":
			sv.checkObjectValidation(obj, path, name)
		}
	}
}

func (sv *schemaValidator) checkNumericValidation(obj *Object, path, typeName string) {
	expectsString := stringBackedNumericTypes[typeName]
	for _, key := range []string{"minimum", "maximum", "exclusiveMinimum", "exclusiveMaximum", "multipleOf"} {
		v, ok := obj.Get(key)
		if !ok {
			continue
		}
		if expectsString {
			if v.Kind() != KindString {
				sv.diags.Addf(CategoryStructural, "numeric-bound-not-string", path+"/"+key, "'"+key+"' for type '"+typeName+"' must be a string.")
			}
			continue
		}
		if v.Kind() != KindNumber {
			sv.diags.Addf(CategoryStructural, "numeric-bound-not-number", path+"/"+key, "'"+key+"' must be a number.")
			continue
		}
		if key == "multipleOf" {
			if r, ok := v.Num().Rat(); !ok || r.Sign() <= 0 {
				sv.diags.Addf(CategoryConstraint, "multiple-of-not-positive", path+"/"+key, "'multipleOf' must be a positive number.")
			}
		}
	}
}

func (sv *schemaValidator) checkStringValidation(obj *Object, path string) {
	if v, ok := obj.Get("minLength"); ok {
		if v.Kind() != KindNumber || !v.Num().IsInteger() || negativeNumber(v) {
			sv.diags.Addf(CategoryStructural, "min-length-invalid", path+"/minLength", "'minLength' must be a non-negative integer.")
		}
	}
	if v, ok := obj.Get("maxLength"); ok {
		if v.Kind() != KindNumber || !v.Num().IsInteger() || negativeNumber(v) {
			sv.diags.Addf(CategoryStructural, "max-length-invalid", path+"/maxLength", "'maxLength' must be a non-negative integer.")
		}
	}
	if v, ok := obj.Get("pattern"); ok {
		if v.Kind() != KindString {
			sv.diags.Addf(CategoryStructural, "pattern-not-string", path+"/pattern", "'pattern' must be a string.")
		} else if _, err := compiledPattern(v.Str()); err != nil {
			sv.diags.Addf(CategoryConstraint, "pattern-invalid-regex", path+"/pattern", "'pattern' is not a valid regular expression: "+err.Error())
		}
	}
	if v, ok := obj.Get("format"); ok {
		if v.Kind() != KindString {
			sv.diags.Addf(CategoryStructural, "format-not-string", path+"/format", "'format' must be a string.")
		} else if !validFormats[v.Str()] {
			sv.diags.Addf(CategoryStructural, "format-unknown", path+"/format", "Unknown format '"+v.Str()+"'.")
		}
	}
}

func (sv *schemaValidator) checkArrayValidation(obj *Object, path, typeName string) {
	for _, key := range []string{"minItems", "maxItems"} {
		if v, ok := obj.Get(key); ok {
			if v.Kind() != KindNumber || !v.Num().IsInteger() || negativeNumber(v) {
				sv.diags.Addf(CategoryStructural, "array-bound-invalid", path+"/"+key, "'"+key+"' must be a non-negative integer.")
			}
		}
	}
	if v, ok := obj.Get("uniqueItems"); ok {
		if v.Kind() != KindBool {
			sv.diags.Addf(CategoryStructural, "unique-items-not-bool", path+"/uniqueItems", "'uniqueItems' must be a boolean.")
		} else if typeName == "set" && !v.Bool() {
			sv.diags.Addf(CategoryConstraint, "set-unique-items-false", path+"/uniqueItems", "'uniqueItems' cannot be false for 'set' type.")
		}
	}
	if v, ok := obj.Get("contains"); ok {
		if v.Kind() == KindObject {
			sv.validateSchemaNode(v, false, path+"/contains")
		} else {
			sv.diags.Addf(CategoryStructural, "contains-not-schema", path+"/contains", "'contains' must be a schema object.")
		}
	}
	for _, key := range []string{"minContains", "maxContains"} {
		if v, ok := obj.Get(key); ok {
			if v.Kind() != KindNumber || !v.Num().IsInteger() || negativeNumber(v) {
				sv.diags.Addf(CategoryStructural, "contains-bound-invalid", path+"/"+key, "'"+key+"' must be a non-negative integer.")
			}
			if !obj.Has("contains") {
				sv.diags.Addf(CategoryStructural, "contains-bound-requires-contains", path+"/"+key, "'"+key+"' requires 'contains' to be present.")
			}
		}
	}
}

func (sv *schemaValidator) checkObjectValidation(obj *Object, path, typeName string) {
	for _, key := range []string{"minProperties", "maxProperties", "minEntries", "maxEntries"} {
		v, ok := obj.Get(key)
		if !ok {
			continue
		}
		if typeName == "map" && (key == "minProperties" || key == "maxProperties") {
			sv.diags.Addf(CategoryStructural, "wrong-keyword-for-map", path+"/"+key, "Use entries-named keyword for map type instead of '"+key+"'.")
		}
		if typeName == "object" && (key == "minEntries" || key == "maxEntries") {
			sv.diags.Addf(CategoryStructural, "wrong-keyword-for-object", path+"/"+key, "Use properties-named keyword for object type instead of '"+key+"'.")
		}
		if v.Kind() != KindNumber || !v.Num().IsInteger() || negativeNumber(v) {
			sv.diags.Addf(CategoryStructural, "object-bound-invalid", path+"/"+key, "'"+key+"' must be a non-negative integer.")
		}
	}
	if v, ok := obj.Get("dependentRequired"); ok {
		if typeName != "object" {
			sv.diags.Addf(CategoryStructural, "dependent-required-not-object-type", path+"/dependentRequired", "'dependentRequired' only applies to object type.")
		} else if v.Kind() != KindObject {
			sv.diags.Addf(CategoryStructural, "dependent-required-not-object", path+"/dependentRequired", "'dependentRequired' must be an object.")
		} else {
			for _, prop := range v.Object().Keys() {
				deps, _ := v.Object().Get(prop)
				sub := path + "/dependentRequired/" + prop
				if deps.Kind() != KindArray {
					sv.diags.Addf(CategoryStructural, "dependent-required-deps-not-array", sub, "'dependentRequired/"+prop+"' must be an array.")
					continue
				}
				for idx, dep := range deps.Array() {
					if dep.Kind() != KindString {
						sv.diags.Addf(CategoryStructural, "dependent-required-dep-not-string", arrayPath(sub, idx), "dependentRequired dependency must be a string.")
					}
				}
			}
		}
	}
	for _, key := range []string{"patternProperties", "patternKeys"} {
		v, ok := obj.Get(key)
		if !ok {
			continue
		}
		if typeName == "map" && key == "patternProperties" {
			sv.diags.Addf(CategoryStructural, "wrong-pattern-keyword", path+"/"+key, "Use 'patternKeys' for map type instead of 'patternProperties'.")
		}
		if typeName == "object" && key == "patternKeys" {
			sv.diags.Addf(CategoryStructural, "wrong-pattern-keyword", path+"/"+key, "Use 'patternProperties' for object type instead of 'patternKeys'.")
		}
		if v.Kind() != KindObject {
			sv.diags.Addf(CategoryStructural, "pattern-map-not-object", path+"/"+key, "'"+key+"' must be an object.")
			continue
		}
		for _, pattern := range v.Object().Keys() {
			schema, _ := v.Object().Get(pattern)
			sub := path + "/" + key + "/" + pattern
			if _, err := compiledPattern(pattern); err != nil {
				sv.diags.Addf(CategoryConstraint, "pattern-map-invalid-regex", sub, "'"+key+"/"+pattern+"' is not a valid regular expression: "+err.Error())
			}
			if schema.Kind() == KindObject {
				sv.validateSchemaNode(schema, false, sub)
			} else {
				sv.diags.Addf(CategoryStructural, "pattern-map-value-not-schema", sub, "'"+key+"/"+pattern+"' must be a schema object.")
			}
		}
	}
	for _, key := range []string{"propertyNames", "keyNames"} {
		v, ok := obj.Get(key)
		if !ok {
			continue
		}
		if typeName == "map" && key == "propertyNames" {
			sv.diags.Addf(CategoryStructural, "wrong-names-keyword", path+"/"+key, "Use 'keyNames' for map type instead of 'propertyNames'.")
		}
		if typeName == "object" && key == "keyNames" {
			sv.diags.Addf(CategoryStructural, "wrong-names-keyword", path+"/"+key, "Use 'propertyNames' for object type instead of 'keyNames'.")
		}
		if v.Kind() != KindObject {
			sv.diags.Addf(CategoryStructural, "names-not-schema", path+"/"+key, "'"+key+"' must be a schema object.")
			continue
		}
		if tv, ok := v.Object().Get("type"); ok && !(tv.Kind() == KindString && tv.Str() == "string") {
			sv.diags.Addf(CategoryStructural, "names-not-string-type", path+"/"+key, "'"+key+"' schema must have type 'string'.")
		}
		sv.validateSchemaNode(v, false, path+"/"+key)
	}
	if v, ok := obj.Get("has"); ok {
		if v.Kind() == KindObject {
			sv.validateSchemaNode(v, false, path+"/has")
		} else {
			sv.diags.Addf(CategoryStructural, "has-not-schema", path+"/has", "'has' must be a schema object.")
		}
	}
}

func negativeNumber(v Value) bool {
	r, ok := v.Num().Rat()
	if !ok {
		return true
	}
	return r.Sign() < 0
}

func isAbsoluteURIString(s string) bool {
	return absoluteURIRe.MatchString(s)
}

var absoluteURIRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+\-.]*://`)

func arrayPath(path string, idx int) string {
	return path + "[" + itoa(idx) + "]"
}
