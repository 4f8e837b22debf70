package jsonstructure

// ValidateInstance is the Instance Validator's public contract:
// validate(instance, rootSchema) -> [diagnostic]. rootSchema is
// assumed to already be import-expanded (see imports.go), matching
// ValidateSchema's separation of concerns.
//
// The twelve-step dispatch order (ref -> conditionals -> type
// resolution -> $extends -> abstract -> $uses -> type dispatch ->
// validation addins -> const -> enum) is authoritative; diagnostics
// accumulate into one flat ordered buffer rather than a per-node
// result tree.
func ValidateInstance(instance Value, rootSchema Value, opts Options) *DiagnosticList {
	iv := &InstanceValidator{
		root:  rootSchema,
		diags: &DiagnosticList{},
		opts:  opts,
	}
	iv.enabledUses = computeEnabledExtensions(rootSchema)
	checkRootUsesSupported(instance, rootSchema, iv.diags)
	iv.validate(instance, rootSchema, "#")
	return iv.diags
}

// checkRootUsesSupported runs once per ValidateInstance call: a plain
// core schema offers neither JSONStructureConditionalComposition nor
// JSONStructureValidation, so an instance naming either one in its own
// root-level $uses is rejected rather than silently ignored.
func checkRootUsesSupported(instance Value, rootSchema Value, diags *DiagnosticList) {
	if detectMetaKind(schemaURIOf(rootSchema)) != metaCore {
		return
	}
	iObj := instance.Object()
	if iObj == nil {
		return
	}
	usesV, ok := iObj.Get("$uses")
	if !ok {
		return
	}
	var names []string
	switch usesV.Kind() {
	case KindArray:
		for _, item := range usesV.Array() {
			if item.Kind() == KindString {
				names = append(names, item.Str())
			}
		}
	case KindString:
		names = append(names, usesV.Str())
	}
	for _, name := range names {
		if name == ExtConditionalComposition || name == ExtValidation {
			diags.Addf(CategoryReference, "uses-addin-not-supported", "#",
				"Instance references JSONStructureConditionalComposition or JSONStructureValidation addins but the schema does not support them.")
			return
		}
	}
}

// InstanceValidator holds the state threaded through one ValidateInstance
// call: the diagnostic buffer conditional.go and validation.go both
// append to, the root document $ref/$extends/$offers resolve against,
// and the extension set enabled for this document.
type InstanceValidator struct {
	root        Value
	diags       *DiagnosticList
	opts        Options
	enabledUses map[string]bool
}

// validate is the recursive per-node entry point every composition
// branch, property recursion, and array/map/tuple element ultimately
// calls back into.
func (iv *InstanceValidator) validate(instance Value, schema Value, path string) {
	if schema.Kind() != KindObject {
		iv.diags.Addf(CategoryStructural, "schema-not-object", path, "Schema node must be an object.")
		return
	}
	obj := schema.Object()

	// Step 2: $ref resolves transitively and replaces the effective
	// schema for this node entirely.
	if refV, ok := obj.Get("$ref"); ok && refV.Kind() == KindString {
		target, err := resolveRef(iv.root, refV.Str())
		if err != nil {
			iv.diags.Addf(CategoryReference, "ref-unresolved", path+"/$ref", "'$ref' does not resolve: "+err.Error())
			return
		}
		iv.validate(instance, target, path)
		return
	}

	// Step 3: conditional-composition keywords (gated).
	hasConditionals := false
	if iv.enabledUses[ExtConditionalComposition] {
		hasConditionals = iv.evaluateConditionals(schema, instance, path)
	}

	_, hasType := obj.Get("type")
	if !hasType {
		if !hasConditionals {
			iv.diags.Addf(CategoryStructural, "missing-type", path, "Schema node has neither 'type' nor a composition keyword.")
		}
		return
	}

	tv, _ := obj.Get("type")

	// Step 5/6: type as an object ($ref or inline schema) or a union list.
	switch tv.Kind() {
	case KindObject:
		if refV, ok := tv.Object().Get("$ref"); ok && refV.Kind() == KindString {
			target, err := resolveRef(iv.root, refV.Str())
			if err != nil {
				iv.diags.Addf(CategoryReference, "type-ref-unresolved", path+"/type/$ref", "'type/$ref' does not resolve: "+err.Error())
				return
			}
			iv.validateAgainstFlattened(instance, target, path)
			return
		}
		iv.validateAgainstFlattened(instance, tv, path)
		return
	case KindArray:
		items := tv.Array()
		mark := iv.diags.Mark()
		matched := false
		for idx, item := range items {
			resolvedItem := item
			if item.Kind() == KindObject {
				if refV, ok := item.Object().Get("$ref"); ok && refV.Kind() == KindString {
					target, err := resolveRef(iv.root, refV.Str())
					if err != nil {
						iv.diags.Addf(CategoryReference, "union-ref-unresolved", arrayPath(path+"/type", idx), "Union alternative '$ref' does not resolve: "+err.Error())
						continue
					}
					if tn, ok := target.Object().Get("type"); ok {
						resolvedItem = tn
					}
				}
			}
			trial := iv.diags.Mark()
			sub := ObjectValue(cloneWithType(obj, resolvedItem))
			iv.validateAgainstFlattened(instance, sub, arrayPath(path+"/type", idx))
			if len(iv.diags.Since(trial)) == 0 {
				matched = true
				iv.diags.Restore(trial)
				break
			}
			iv.diags.Restore(trial)
		}
		if !matched {
			iv.diags.Restore(mark)
			iv.diags.Addf(CategoryTypeMismatch, "union-no-match", path, "Instance does not match any alternative in the type union.")
		}
		return
	}

	iv.validateAgainstFlattened(instance, schema, path)
}

// cloneWithType returns a shallow copy of obj with "type" replaced by
// item, used to re-check the surrounding schema node (properties,
// required, validation addins) once per union alternative.
func cloneWithType(obj *Object, item Value) *Object {
	clone := NewObject()
	for _, k := range obj.Keys() {
		if k == "type" {
			continue
		}
		v, _ := obj.Get(k)
		clone.Set(k, v)
	}
	clone.Set("type", item)
	return clone
}

// validateAgainstFlattened performs steps 7-12 once the effective
// 'type' keyword for this node has been settled: flatten $extends,
// reject abstract types, apply instance-side $uses add-ins, dispatch by
// type tag, run validation addins, then check const/enum.
func (iv *InstanceValidator) validateAgainstFlattened(instance Value, schema Value, path string) {
	merged := applyExtends(iv.root, schema, path, iv.diags)
	mobj := merged.Object()
	if mobj == nil {
		return
	}

	if abstractV, ok := mobj.Get("abstract"); ok && abstractV.Kind() == KindBool && abstractV.Bool() {
		iv.diags.Addf(CategoryStructural, "abstract-type-instantiated", path, "Instance validated directly against an abstract type.")
		return
	}

	effective := merged
	effectiveInstance := instance
	if instance.Kind() == KindObject && instance.Object().Has("$uses") {
		effective = applyUses(iv.root, merged, instance.Object(), path, iv.diags)
		effectiveInstance = ObjectValue(instance.Object().Without("$uses"))
	}
	eobj := effective.Object()

	tv, _ := eobj.Get("type")
	typeName := ""
	if tv.Kind() == KindString {
		typeName = tv.Str()
	}

	if !isRecognizedType(typeName) {
		iv.diags.Addf(CategoryStructural, "unrecognized-type", path+"/type", "Type '"+typeName+"' is not recognized.")
		return
	}

	switch typeName {
	case "any":
		// no structural constraint
	case "object":
		iv.validateObject(eobj, effectiveInstance, path)
	case "array", "set":
		iv.validateArrayInstance(eobj, effectiveInstance, path, typeName == "set")
	case "map":
		iv.validateMap(eobj, effectiveInstance, path)
	case "tuple":
		iv.validateTuple(eobj, effectiveInstance, path)
	case "choice":
		iv.validateChoice(eobj, effectiveInstance, path)
	default:
		iv.validatePrimitive(typeName, effectiveInstance, path)
	}

	iv.validateAddins(effective, effectiveInstance, path)

	if constV, ok := eobj.Get("const"); ok {
		if !effectiveInstance.DeepEqual(constV) {
			iv.diags.Addf(CategoryConstraint, "const-mismatch", path, "Instance does not equal the required 'const' value.")
		}
	}
	if enumV, ok := eobj.Get("enum"); ok && enumV.Kind() == KindArray {
		matched := false
		for _, candidate := range enumV.Array() {
			if effectiveInstance.DeepEqual(candidate) {
				matched = true
				break
			}
		}
		if !matched {
			iv.diags.Addf(CategoryConstraint, "enum-mismatch", path, "Instance does not match any value in 'enum'.")
		}
	}
}

var typeAccept = map[string]func(Value) bool{
	"string":      acceptString,
	"number":      acceptNumber,
	"boolean":     acceptBoolean,
	"null":        acceptNull,
	"int32":       acceptInt32,
	"uint32":      acceptUint32,
	"int64":       acceptInt64String,
	"uint64":      acceptUint64String,
	"int128":      acceptInt128String,
	"uint128":     acceptUint128String,
	"decimal":     acceptDecimalString,
	"uuid":        acceptUUID,
	"uri":         acceptURI,
	"jsonpointer": acceptJSONPointer,
}

func (iv *InstanceValidator) validatePrimitive(typeName string, instance Value, path string) {
	switch typeName {
	case "int8", "uint8", "int16", "uint16", "float8", "float", "double":
		if instance.Kind() != KindNumber {
			iv.diags.Addf(CategoryTypeMismatch, "type-mismatch", path, "Expected a number for type '"+typeName+"'.")
		}
		return
	case "date":
		if instance.Kind() != KindString || !dateRe.MatchString(instance.Str()) {
			iv.diags.Addf(CategoryTypeMismatch, "type-mismatch", path, "Expected a date string for type '"+typeName+"'.")
		}
		return
	case "datetime":
		if instance.Kind() != KindString || !datetimeRe.MatchString(instance.Str()) {
			iv.diags.Addf(CategoryTypeMismatch, "type-mismatch", path, "Expected a datetime string for type '"+typeName+"'.")
		}
		return
	case "time":
		if instance.Kind() != KindString || !timeRe.MatchString(instance.Str()) {
			iv.diags.Addf(CategoryTypeMismatch, "type-mismatch", path, "Expected a time string for type '"+typeName+"'.")
		}
		return
	case "duration", "binary":
		if instance.Kind() != KindString {
			iv.diags.Addf(CategoryTypeMismatch, "type-mismatch", path, "Expected a string for type '"+typeName+"'.")
		}
		return
	}
	accept, ok := typeAccept[typeName]
	if !ok {
		iv.diags.Addf(CategoryStructural, "unrecognized-type", path, "Type '"+typeName+"' is not recognized.")
		return
	}
	if !accept(instance) {
		iv.diags.Addf(CategoryTypeMismatch, "type-mismatch", path, "Instance does not match type '"+typeName+"'.")
	}
}

func (iv *InstanceValidator) validateObject(obj *Object, instance Value, path string) {
	if instance.Kind() != KindObject {
		iv.diags.Addf(CategoryTypeMismatch, "type-mismatch", path, "Expected an object.")
		return
	}
	iObj := instance.Object()
	propsV, hasProps := obj.Get("properties")
	var props *Object
	if hasProps && propsV.Kind() == KindObject {
		props = propsV.Object()
	}
	if reqV, ok := obj.Get("required"); ok && reqV.Kind() == KindArray {
		for _, r := range reqV.Array() {
			if r.Kind() == KindString && !iObj.Has(r.Str()) {
				iv.diags.Addf(CategoryConstraint, "required-property-missing", path, "Required property '"+r.Str()+"' is missing.")
			}
		}
	}
	for _, propName := range iObj.Keys() {
		propVal, _ := iObj.Get(propName)
		var propSchema Value
		declared := false
		if props != nil {
			propSchema, declared = props.Get(propName)
		}
		if declared {
			iv.validate(propVal, propSchema, path+"/"+propName)
			continue
		}
		addlV, hasAddl := obj.Get("additionalProperties")
		if !hasAddl {
			continue
		}
		switch addlV.Kind() {
		case KindBool:
			if !addlV.Bool() {
				iv.diags.Addf(CategoryConstraint, "additional-property-not-allowed", path+"/"+propName, "Property '"+propName+"' is not declared and additionalProperties is false.")
			}
		case KindObject:
			iv.validate(propVal, addlV, path+"/"+propName)
		}
	}
}

func (iv *InstanceValidator) validateArrayInstance(obj *Object, instance Value, path string, isSet bool) {
	if instance.Kind() != KindArray {
		iv.diags.Addf(CategoryTypeMismatch, "type-mismatch", path, "Expected an array.")
		return
	}
	itemsV, ok := obj.Get("items")
	items := instance.Array()
	if ok {
		for idx, item := range items {
			iv.validate(item, itemsV, arrayPath(path, idx))
		}
	}
	if isSet && hasDuplicates(items) {
		iv.diags.Addf(CategoryConstraint, "set-not-unique", path, "Set instance contains duplicate elements.")
	}
}

func (iv *InstanceValidator) validateMap(obj *Object, instance Value, path string) {
	if instance.Kind() != KindObject {
		iv.diags.Addf(CategoryTypeMismatch, "type-mismatch", path, "Expected an object for type 'map'.")
		return
	}
	valuesV, ok := obj.Get("values")
	if !ok {
		return
	}
	iObj := instance.Object()
	for _, key := range iObj.Keys() {
		v, _ := iObj.Get(key)
		iv.validate(v, valuesV, path+"/"+key)
	}
}

func (iv *InstanceValidator) validateTuple(obj *Object, instance Value, path string) {
	if instance.Kind() != KindArray {
		iv.diags.Addf(CategoryTypeMismatch, "type-mismatch", path, "Expected an array for type 'tuple'.")
		return
	}
	tupleV, ok := obj.Get("tuple")
	if !ok || tupleV.Kind() != KindArray {
		return
	}
	propsV, hasProps := obj.Get("properties")
	var props *Object
	if hasProps && propsV.Kind() == KindObject {
		props = propsV.Object()
	}
	order := tupleV.Array()
	items := instance.Array()
	if len(items) != len(order) {
		iv.diags.Addf(CategoryConstraint, "tuple-length-mismatch", path, "Tuple instance has a different number of elements than the 'tuple' order declares.")
	}
	limit := len(items)
	if len(order) < limit {
		limit = len(order)
	}
	for idx := 0; idx < limit; idx++ {
		name := order[idx]
		if name.Kind() != KindString || props == nil {
			continue
		}
		elemSchema, ok := props.Get(name.Str())
		if !ok {
			continue
		}
		iv.validate(items[idx], elemSchema, arrayPath(path, idx))
	}
}

func (iv *InstanceValidator) validateChoice(obj *Object, instance Value, path string) {
	choicesV, ok := obj.Get("choices")
	if !ok || choicesV.Kind() != KindObject {
		return
	}
	selectorName := "$choice"
	if selV, ok := obj.Get("selector"); ok && selV.Kind() == KindString {
		selectorName = selV.Str()
	}
	if instance.Kind() != KindObject {
		iv.diags.Addf(CategoryTypeMismatch, "type-mismatch", path, "Expected an object for type 'choice'.")
		return
	}
	selV, ok := instance.Object().Get(selectorName)
	if !ok || selV.Kind() != KindString {
		iv.diags.Addf(CategoryConstraint, "choice-selector-missing", path, "Choice instance is missing selector property '"+selectorName+"'.")
		return
	}
	chosen, ok := choicesV.Object().Get(selV.Str())
	if !ok {
		iv.diags.Addf(CategoryConstraint, "choice-unknown", path, "Selector value '"+selV.Str()+"' does not name a declared choice.")
		return
	}
	iv.validate(instance, chosen, path)
}
