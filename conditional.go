package jsonstructure

// evaluateConditionals processes allOf/anyOf/oneOf/not/if/then/else on
// schema against instance, using the diagnostic buffer's length-marker
// save/restore discipline instead of ever swapping buffer identity.
// Returns whether any composition keyword was present, which the
// dispatcher uses to decide whether a missing 'type' is an error.
func (iv *InstanceValidator) evaluateConditionals(schema Value, instance Value, path string) bool {
	obj := schema.Object()
	if obj == nil {
		return false
	}
	hasConditionals := false

	if v, ok := obj.Get("allOf"); ok && v.Kind() == KindArray {
		hasConditionals = true
		for idx, sub := range v.Array() {
			iv.validate(instance, sub, arrayPath(path+"/allOf", idx))
		}
	}

	if v, ok := obj.Get("anyOf"); ok && v.Kind() == KindArray {
		hasConditionals = true
		valid := false
		mark := iv.diags.Mark()
		for idx, sub := range v.Array() {
			trial := iv.diags.Mark()
			iv.validate(instance, sub, arrayPath(path+"/anyOf", idx))
			if len(iv.diags.Since(trial)) == 0 {
				valid = true
				iv.diags.Restore(trial)
				break
			}
			iv.diags.Restore(trial)
		}
		if !valid {
			iv.diags.Restore(mark)
			iv.diags.Addf(CategoryConstraint, "any-of-no-match", path, "Instance does not satisfy anyOf: no alternative matched.")
		}
	}

	if v, ok := obj.Get("oneOf"); ok && v.Kind() == KindArray {
		hasConditionals = true
		mark := iv.diags.Mark()
		matched := 0
		for idx, sub := range v.Array() {
			trial := iv.diags.Mark()
			iv.validate(instance, sub, arrayPath(path+"/oneOf", idx))
			if len(iv.diags.Since(trial)) == 0 {
				matched++
			}
			iv.diags.Restore(trial)
		}
		if matched != 1 {
			iv.diags.Restore(mark)
			iv.diags.Addf(CategoryConstraint, "one-of-count", path, "Instance must match exactly one subschema in oneOf; matched "+itoa(matched)+".")
		}
	}

	if v, ok := obj.Get("not"); ok {
		hasConditionals = true
		mark := iv.diags.Mark()
		iv.validate(instance, v, path+"/not")
		failed := len(iv.diags.Since(mark)) > 0
		iv.diags.Restore(mark)
		if !failed {
			iv.diags.Addf(CategoryConstraint, "not-matched", path, "Instance should not validate against 'not' schema.")
		}
	}

	if v, ok := obj.Get("if"); ok {
		hasConditionals = true
		mark := iv.diags.Mark()
		iv.validate(instance, v, path+"/if")
		ifValid := len(iv.diags.Since(mark)) == 0
		// The 'if' probe's diagnostics are never surfaced.
		iv.diags.Restore(mark)
		if ifValid {
			if thenV, ok := obj.Get("then"); ok {
				iv.validate(instance, thenV, path+"/then")
			}
		} else if elseV, ok := obj.Get("else"); ok {
			iv.validate(instance, elseV, path+"/else")
		}
	}

	return hasConditionals
}
