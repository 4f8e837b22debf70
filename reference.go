package jsonstructure

// refResolutionBudget bounds the transitive $ref chain so a pointer
// cycle terminates with a diagnostic instead of recursing forever.
const refResolutionBudget = 64

// resolveRef follows a possibly-transitive chain of $ref pointers
// starting at ref, returning the first non-$ref schema node found.
// Pointer targets may themselves carry $ref; resolution stops after
// refResolutionBudget hops or when a target is revisited, diagnosing a
// cycle.
func resolveRef(root Value, ref string) (Value, error) {
	seen := make(map[string]bool)
	current := ref
	for i := 0; i < refResolutionBudget; i++ {
		if seen[current] {
			return Value{}, ErrRefCycle
		}
		seen[current] = true
		target, err := ResolvePointer(root, current)
		if err != nil {
			return Value{}, err
		}
		if target.Kind() == KindObject {
			if nextRef, ok := target.Object().Get("$ref"); ok && nextRef.Kind() == KindString {
				current = nextRef.Str()
				continue
			}
		}
		return target, nil
	}
	return Value{}, ErrRefCycle
}

// applyExtends flattens a chain of $extends: the
// extending node is the merge of base ∪ extending; properties
// introduced by the base must not be re-declared in the extending
// node's properties (diagnosed; the extending node's definition wins);
// other keys in the extending node override the base. The extending
// node's $extends is dropped from the merge while the base's own
// $extends is carried over, so resolution is transitive (the base may
// itself extend a further base) and the fully flattened result carries
// no $extends. The chain is bounded the same way resolveRef is.
//
// This merges a real union of the nested properties maps rather than
// a shallow dict update, since a shallow update would silently drop
// base properties whenever the derived node declares its own
// "properties" key.
func applyExtends(root Value, schema Value, path string, diags *DiagnosticList) Value {
	current := schema
	seen := make(map[string]bool)
	for i := 0; i < refResolutionBudget; i++ {
		obj := current.Object()
		if obj == nil {
			return current
		}
		extV, ok := obj.Get("$extends")
		if !ok || extV.Kind() != KindString {
			return current
		}
		if seen[extV.Str()] {
			diags.Addf(CategoryReference, "extends-cycle", path, "Cyclic $extends chain detected.")
			return current
		}
		seen[extV.Str()] = true

		base, err := ResolvePointer(root, extV.Str())
		if err != nil || base.Kind() != KindObject {
			diags.Addf(CategoryReference, "extends-target-not-schema", path+"/$extends", "'$extends' target is not a schema node.")
			return current
		}

		merged := NewObject()
		for _, k := range base.Object().Keys() {
			v, _ := base.Object().Get(k)
			merged.Set(k, v)
		}

		baseProps, _ := base.Object().Get("properties")
		derivedProps, hasDerivedProps := obj.Get("properties")
		if hasDerivedProps {
			unioned := NewObject()
			if baseProps.Kind() == KindObject {
				for _, k := range baseProps.Object().Keys() {
					v, _ := baseProps.Object().Get(k)
					unioned.Set(k, v)
				}
			}
			if derivedProps.Kind() == KindObject {
				for _, k := range derivedProps.Object().Keys() {
					if baseProps.Kind() == KindObject && baseProps.Object().Has(k) {
						diags.Addf(CategoryStructural, "extends-property-conflict", path+"/properties/"+k,
							"Property '"+k+"' is inherited via $extends and must not be redefined.")
					}
					v, _ := derivedProps.Object().Get(k)
					unioned.Set(k, v)
				}
			}
			merged.Set("properties", ObjectValue(unioned))
		}

		for _, k := range obj.Keys() {
			if k == "$extends" || k == "properties" {
				continue
			}
			v, _ := obj.Get(k)
			merged.Set(k, v)
		}

		current = ObjectValue(merged)
	}
	diags.Addf(CategoryReference, "extends-cycle", path, "Cyclic $extends chain detected.")
	return current
}

// applyUses implements $offers/$uses add-in merge: for
// every $uses name on instance that is not a reserved extension name,
// resolve the offered schema(s) from the root document's $offers map
// and merge their properties into a new effective schema. The existing
// schema's properties win on conflict; the conflict is diagnosed
// either way.
func applyUses(root Value, schema Value, instanceObj *Object, path string, diags *DiagnosticList) Value {
	usesV, ok := instanceObj.Get("$uses")
	if !ok {
		return schema
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

	merged := NewObject()
	if schema.Object() != nil {
		for _, k := range schema.Object().Keys() {
			v, _ := schema.Object().Get(k)
			merged.Set(k, v)
		}
	}
	mergedProps := NewObject()
	if propsV, ok := merged.Get("properties"); ok && propsV.Kind() == KindObject {
		for _, k := range propsV.Object().Keys() {
			v, _ := propsV.Object().Get(k)
			mergedProps.Set(k, v)
		}
	}

	offersV, hasOffers := rootObject(root).Get("$offers")

	for _, name := range names {
		if reservedExtensionNames[name] {
			continue
		}
		if !hasOffers {
			diags.Addf(CategoryReference, "uses-not-offered", path, "Add-in '"+name+"' not offered in $offers.")
			continue
		}
		addinV, ok := offersV.Object().Get(name)
		if !ok {
			diags.Addf(CategoryReference, "uses-not-offered", path, "Add-in '"+name+"' not offered in $offers.")
			continue
		}
		var pointers []string
		switch addinV.Kind() {
		case KindString:
			pointers = append(pointers, addinV.Str())
		case KindArray:
			for _, p := range addinV.Array() {
				if p.Kind() == KindString {
					pointers = append(pointers, p.Str())
				}
			}
		}
		for _, ptr := range pointers {
			resolved, err := ResolvePointer(root, ptr)
			if err != nil || resolved.Kind() != KindObject {
				diags.Addf(CategoryReference, "uses-pointer-unresolved", path, "Add-in '"+name+"' pointer does not resolve.")
				continue
			}
			addinProps, ok := resolved.Object().Get("properties")
			if !ok || addinProps.Kind() != KindObject {
				continue
			}
			for _, propName := range addinProps.Object().Keys() {
				propSchema, _ := addinProps.Object().Get(propName)
				if mergedProps.Has(propName) {
					diags.Addf(CategoryConstraint, "uses-property-conflict", path,
						"Add-in property '"+propName+"' from add-in '"+name+"' conflicts with existing property; existing wins.")
					continue
				}
				mergedProps.Set(propName, propSchema)
			}
		}
	}
	merged.Set("properties", ObjectValue(mergedProps))
	return ObjectValue(merged)
}

func rootObject(root Value) *Object {
	if root.Object() == nil {
		return NewObject()
	}
	return root.Object()
}
