package jsonstructure

import "math/big"

// intFromValue reads a JSON number Value as a plain int, used for the
// small integral bounds (minLength, maxItems, minProperties, and
// friends) that are always non-negative integers.
func intFromValue(v Value) (int, bool) {
	if v.Kind() != KindNumber {
		return 0, false
	}
	r, ok := v.Num().Rat()
	if !ok || !r.IsInt() {
		return 0, false
	}
	return int(r.Num().Int64()), true
}

// validateAddins applies the validation-addin keywords to instance
// against schema, once the main type check has already run, covering
// numeric, string, array/set, object, and map keyword families
// (patternKeys/keyNames/minEntries/maxEntries for map).
func (iv *InstanceValidator) validateAddins(schema Value, instance Value, path string) {
	if !iv.enabledUses[ExtValidation] {
		return
	}
	obj := schema.Object()
	if obj == nil {
		return
	}
	tv, _ := obj.Get("type")
	typeName := ""
	if tv.Kind() == KindString {
		typeName = tv.Str()
	}

	if numericTypes[typeName] {
		iv.validateNumeric(obj, instance, path, typeName)
	}
	if typeName == "string" && instance.Kind() == KindString {
		iv.validateString(obj, instance, path)
	}
	if (typeName == "array" || typeName == "set") && instance.Kind() == KindArray {
		iv.validateArray(obj, instance, path)
	}
	if typeName == "object" && instance.Kind() == KindObject {
		iv.validateObjectAddins(obj, instance, path)
	}
	if typeName == "map" && instance.Kind() == KindObject {
		iv.validateMapAddins(obj, instance, path)
	}
}

// numericValue returns instance as a Rat, reading it as a JSON number
// or, for string-backed numeric types, as a numeric string.
func numericValue(instance Value) (*Rat, bool) {
	return NewRatFromValue(instance)
}

func (iv *InstanceValidator) validateNumeric(obj *Object, instance Value, path, typeName string) {
	instNum, ok := numericValue(instance)
	if !ok {
		return
	}
	boundOf := func(key string) (*Rat, bool) {
		v, ok := obj.Get(key)
		if !ok {
			return nil, false
		}
		return numericValue(v)
	}
	minimum, hasMin := boundOf("minimum")
	maximum, hasMax := boundOf("maximum")
	exclusiveMin := boolField(obj, "exclusiveMinimum")
	exclusiveMax := boolField(obj, "exclusiveMaximum")

	if hasMin {
		cmp := instNum.Cmp(minimum.Rat)
		if exclusiveMin {
			if cmp <= 0 {
				iv.diags.Addf(CategoryConstraint, "exclusive-minimum", path, "Value is not greater than exclusive minimum "+FormatRat(minimum)+".")
			}
		} else if cmp < 0 {
			iv.diags.Addf(CategoryConstraint, "minimum", path, "Value is less than minimum "+FormatRat(minimum)+".")
		}
	}
	if hasMax {
		cmp := instNum.Cmp(maximum.Rat)
		if exclusiveMax {
			if cmp >= 0 {
				iv.diags.Addf(CategoryConstraint, "exclusive-maximum", path, "Value is not less than exclusive maximum "+FormatRat(maximum)+".")
			}
		} else if cmp > 0 {
			iv.diags.Addf(CategoryConstraint, "maximum", path, "Value is greater than maximum "+FormatRat(maximum)+".")
		}
	}
	if multipleOfV, ok := obj.Get("multipleOf"); ok {
		if mult, ok := numericValue(multipleOfV); ok && mult.Sign() != 0 {
			quotient := new(big.Rat).Quo(instNum.Rat, mult.Rat)
			if !quotient.IsInt() {
				iv.diags.Addf(CategoryConstraint, "multiple-of", path, "Value is not a multiple of "+FormatRat(mult)+".")
			}
		}
	}
}

func boolField(obj *Object, key string) bool {
	v, ok := obj.Get(key)
	return ok && v.Kind() == KindBool && v.Bool()
}

func (iv *InstanceValidator) validateString(obj *Object, instance Value, path string) {
	s := instance.Str()
	runeLen := len([]rune(s))
	if v, ok := obj.Get("minLength"); ok {
		if n, ok := intFromValue(v); ok && runeLen < n {
			iv.diags.Addf(CategoryConstraint, "min-length", path, "String is shorter than minLength.")
		}
	}
	if v, ok := obj.Get("maxLength"); ok {
		if n, ok := intFromValue(v); ok && runeLen > n {
			iv.diags.Addf(CategoryConstraint, "max-length", path, "String is longer than maxLength.")
		}
	}
	if v, ok := obj.Get("pattern"); ok && v.Kind() == KindString {
		if re, err := compiledPattern(v.Str()); err == nil && !re.MatchString(s) {
			iv.diags.Addf(CategoryConstraint, "pattern-mismatch", path, "String does not match pattern "+v.Str()+".")
		}
	}
	if v, ok := obj.Get("format"); ok && v.Kind() == KindString {
		if !validateFormat(v.Str(), s) {
			iv.diags.Addf(CategoryConstraint, "format-mismatch", path, "String does not match format '"+v.Str()+"'.")
		}
	}
}

func (iv *InstanceValidator) validateArray(obj *Object, instance Value, path string) {
	items := instance.Array()
	if v, ok := obj.Get("minItems"); ok {
		if n, ok := intFromValue(v); ok && len(items) < n {
			iv.diags.Addf(CategoryConstraint, "min-items", path, "Array has fewer items than minItems.")
		}
	}
	if v, ok := obj.Get("maxItems"); ok {
		if n, ok := intFromValue(v); ok && len(items) > n {
			iv.diags.Addf(CategoryConstraint, "max-items", path, "Array has more items than maxItems.")
		}
	}
	if uniqueV, ok := obj.Get("uniqueItems"); ok && uniqueV.Kind() == KindBool && uniqueV.Bool() {
		if hasDuplicates(items) {
			iv.diags.Addf(CategoryConstraint, "unique-items", path, "Array does not have unique items.")
		}
	}
	if containsV, ok := obj.Get("contains"); ok {
		count := 0
		for idx, item := range items {
			mark := iv.diags.Mark()
			iv.validate(item, containsV, arrayPath(path+"/contains", idx))
			ok := len(iv.diags.Since(mark)) == 0
			iv.diags.Restore(mark)
			if ok {
				count++
			}
		}
		minContains := 1
		if v, ok := obj.Get("minContains"); ok {
			if n, ok := intFromValue(v); ok {
				minContains = n
			}
		}
		if count < minContains {
			iv.diags.Addf(CategoryConstraint, "min-contains", path, "Array does not contain enough items matching 'contains'.")
		}
		if v, ok := obj.Get("maxContains"); ok {
			if n, ok := intFromValue(v); ok && count > n {
				iv.diags.Addf(CategoryConstraint, "max-contains", path, "Array contains too many items matching 'contains'.")
			}
		}
	}
}

func hasDuplicates(items []Value) bool {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		key := it.CanonicalJSON()
		if seen[key] {
			return true
		}
		seen[key] = true
	}
	return false
}

func (iv *InstanceValidator) validateObjectAddins(obj *Object, instance Value, path string) {
	iObj := instance.Object()
	if v, ok := obj.Get("minProperties"); ok {
		if n, ok := intFromValue(v); ok && iObj.Len() < n {
			iv.diags.Addf(CategoryConstraint, "min-properties", path, "Object has fewer properties than minProperties.")
		}
	}
	if v, ok := obj.Get("maxProperties"); ok {
		if n, ok := intFromValue(v); ok && iObj.Len() > n {
			iv.diags.Addf(CategoryConstraint, "max-properties", path, "Object has more properties than maxProperties.")
		}
	}
	if v, ok := obj.Get("patternProperties"); ok && v.Kind() == KindObject {
		for _, pattern := range v.Object().Keys() {
			patternSchema, _ := v.Object().Get(pattern)
			re, err := compiledPattern(pattern)
			if err != nil {
				iv.diags.Addf(CategoryConstraint, "pattern-properties-invalid-regex", path, "Invalid regular expression '"+pattern+"' in patternProperties.")
				continue
			}
			for _, propName := range iObj.Keys() {
				if re.MatchString(propName) {
					propVal, _ := iObj.Get(propName)
					iv.validate(propVal, patternSchema, path+"/"+propName)
				}
			}
		}
	}
	if v, ok := obj.Get("propertyNames"); ok && v.Kind() == KindObject {
		for _, propName := range iObj.Keys() {
			iv.validate(String(propName), v, path+"/"+propName)
		}
	}
	if v, ok := obj.Get("has"); ok {
		valid := false
		for _, propName := range iObj.Keys() {
			propVal, _ := iObj.Get(propName)
			mark := iv.diags.Mark()
			iv.validate(propVal, v, path+"/"+propName)
			ok := len(iv.diags.Since(mark)) == 0
			iv.diags.Restore(mark)
			if ok {
				valid = true
				break
			}
		}
		if !valid {
			iv.diags.Addf(CategoryConstraint, "has-no-match", path, "Object does not have any property satisfying 'has' schema.")
		}
	}
	if v, ok := obj.Get("dependentRequired"); ok && v.Kind() == KindObject {
		validateDependentRequired(iv, v, iObj, path)
	}
}

func (iv *InstanceValidator) validateMapAddins(obj *Object, instance Value, path string) {
	iObj := instance.Object()
	if v, ok := obj.Get("minEntries"); ok {
		if n, ok := intFromValue(v); ok && iObj.Len() < n {
			iv.diags.Addf(CategoryConstraint, "min-entries", path, "Map has fewer entries than minEntries.")
		}
	}
	if v, ok := obj.Get("maxEntries"); ok {
		if n, ok := intFromValue(v); ok && iObj.Len() > n {
			iv.diags.Addf(CategoryConstraint, "max-entries", path, "Map has more entries than maxEntries.")
		}
	}
	if v, ok := obj.Get("patternKeys"); ok && v.Kind() == KindObject {
		for _, pattern := range v.Object().Keys() {
			patternSchema, _ := v.Object().Get(pattern)
			re, err := compiledPattern(pattern)
			if err != nil {
				iv.diags.Addf(CategoryConstraint, "pattern-keys-invalid-regex", path, "Invalid regular expression '"+pattern+"' in patternKeys.")
				continue
			}
			for _, keyName := range iObj.Keys() {
				if re.MatchString(keyName) {
					keyVal, _ := iObj.Get(keyName)
					iv.validate(keyVal, patternSchema, path+"/"+keyName)
				}
			}
		}
	}
	if v, ok := obj.Get("keyNames"); ok && v.Kind() == KindObject {
		for _, keyName := range iObj.Keys() {
			iv.validate(String(keyName), v, path+"/"+keyName)
		}
	}
}

func validateDependentRequired(iv *InstanceValidator, dep Value, instance *Object, path string) {
	for _, propName := range dep.Object().Keys() {
		if !instance.Has(propName) {
			continue
		}
		depsV, _ := dep.Object().Get(propName)
		if depsV.Kind() != KindArray {
			continue
		}
		for _, d := range depsV.Array() {
			if d.Kind() == KindString && !instance.Has(d.Str()) {
				iv.diags.Addf(CategoryConstraint, "dependent-required", path, "Property '"+propName+"' requires dependent property '"+d.Str()+"'.")
			}
		}
	}
}
