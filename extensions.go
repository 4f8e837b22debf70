package jsonstructure

import "strings"

// Reserved extension names: all five are excluded from $offers lookup
// and recognized without ever needing to be offered.
const (
	ExtImport                 = "JSONStructureImport"
	ExtConditionalComposition = "JSONStructureConditionalComposition"
	ExtValidation             = "JSONStructureValidation"
	ExtAlternateNames         = "JSONStructureAlternateNames"
	ExtUnits                  = "JSONStructureUnits"
)

var knownExtensions = map[string]bool{
	ExtImport:                 true,
	ExtConditionalComposition: true,
	ExtValidation:             true,
	ExtAlternateNames:         true,
	ExtUnits:                  true,
}

// reservedExtensionNames is the set $offers lookup must never consult.
var reservedExtensionNames = knownExtensions

// metaKind classifies a $schema URI by substring match of the three
// canonical path fragments.
type metaKind int

const (
	metaUnknown metaKind = iota
	metaCore
	metaValidationMeta
	metaExtendedMeta
)

func detectMetaKind(schemaURI string) metaKind {
	switch {
	case strings.Contains(schemaURI, "meta/extended/"):
		return metaExtendedMeta
	case strings.Contains(schemaURI, "meta/validation/"):
		return metaValidationMeta
	case strings.Contains(schemaURI, "meta/core/"):
		return metaCore
	default:
		return metaUnknown
	}
}

func schemaURIOf(doc Value) string {
	obj := doc.Object()
	if obj == nil {
		return ""
	}
	if v, ok := obj.Get("$schema"); ok && v.Kind() == KindString {
		return v.Str()
	}
	return ""
}

// computeEnabledExtensions implements "Extension enabling":
// the starting set is derived from the $schema URI (validation meta
// grants JSONStructureConditionalComposition + JSONStructureValidation;
// extended meta grants all known addins) plus the document's own $uses
// array.
func computeEnabledExtensions(doc Value) map[string]bool {
	enabled := make(map[string]bool)
	switch detectMetaKind(schemaURIOf(doc)) {
	case metaValidationMeta:
		enabled[ExtConditionalComposition] = true
		enabled[ExtValidation] = true
	case metaExtendedMeta:
		for name := range knownExtensions {
			enabled[name] = true
		}
	}
	obj := doc.Object()
	if obj == nil {
		return enabled
	}
	if usesV, ok := obj.Get("$uses"); ok && usesV.Kind() == KindArray {
		for _, item := range usesV.Array() {
			if item.Kind() == KindString && knownExtensions[item.Str()] {
				enabled[item.Str()] = true
			}
		}
	}
	return enabled
}
