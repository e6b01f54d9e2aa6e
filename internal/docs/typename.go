package docs

import "strings"

// typeAliases maps internal engine type names onto their documented
// scripting-level aliases. Applied in order after path qualifiers are
// stripped, so Vec<Dynamic> has already become Vec<?> when the Array alias
// runs.
var typeAliases = []struct{ from, to string }{
	{"Iterator<Item=", "Iterator<"},
	{"Dynamic", "?"},
	{"INT", "int"},
	{"i64", "int"},
	{"FLOAT", "float"},
	{"&str", "String"},
	{"ImmutableString", "String"},
	{"f64", "float"},
	{"Vec<?>", "Array"},
	{"Vec<u8>", "Blob"},
}

// displayType maps a raw parameter or return type name onto the form shown
// in documentation: the mutable reference marker and fallible wrappers are
// stripped, path qualifiers reduce to the last segment, and internal names
// are replaced by their scripting aliases.
func displayType(ty string) string {
	ty = strings.TrimSpace(strings.TrimPrefix(ty, "&mut"))
	ty = unwrapResult(ty)
	if i := strings.LastIndex(ty, "::"); i >= 0 {
		ty = ty[i+2:]
	}
	for _, alias := range typeAliases {
		ty = strings.ReplaceAll(ty, alias.from, alias.to)
	}
	return ty
}

// unwrapResult strips the fallible wrapper types so documentation shows the
// success type. Unbalanced forms are returned unchanged.
func unwrapResult(ty string) string {
	if inner, ok := strings.CutPrefix(ty, "Result<"); ok {
		for _, suffix := range []string{
			",Box<EvalAltResult>>",
			",Box<rhai::EvalAltResult>>",
			", Box<EvalAltResult>>",
			", Box<rhai::EvalAltResult>>",
		} {
			if s, ok := strings.CutSuffix(inner, suffix); ok {
				return strings.TrimSpace(s)
			}
		}
		if s, ok := strings.CutSuffix(inner, ">"); ok {
			return strings.TrimSpace(s)
		}
		return ty
	}
	if inner, ok := strings.CutPrefix(ty, "EngineResult<"); ok {
		if s, ok := strings.CutSuffix(inner, ">"); ok {
			return strings.TrimSpace(s)
		}
		return ty
	}
	for _, prefix := range []string{"RhaiResultOf<", "rhai::RhaiResultOf<"} {
		if inner, ok := strings.CutPrefix(ty, prefix); ok {
			if s, ok := strings.CutSuffix(inner, ">"); ok {
				return strings.TrimSpace(s)
			}
			return ty
		}
	}
	return ty
}
