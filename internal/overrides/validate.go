package overrides

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"es-mapper/internal/diagnostic"
	"es-mapper/internal/match"
	"es-mapper/mapper"
	"es-mapper/typeinfo"
)

const maxSuggestions = 3

// Validate checks an overrides file against the given type graph.
// Type references must resolve to structs of the graph and field names to
// fields declared on them.
func Validate(f *File, graph *typeinfo.TypeGraph) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if f == nil {
		res.AddError("overrides_is_nil", "overrides file is nil", "", "")
		return res
	}

	if graph == nil {
		res.AddError("graph_is_nil", "type graph is nil", "", "")
		return res
	}

	validateSettings(res, f)
	validateKinds(res, f, graph)
	validateMappings(res, graph)

	seen := make(map[string]string)

	for i := range f.Types {
		to := &f.Types[i]

		info, err := graph.Struct(to.Type)
		if err != nil {
			res.AddError("type_not_found", err.Error(), to.Type, "", suggestTypes(to.Type, graph)...)
			continue
		}

		key := info.Key()
		if prev, ok := seen[key]; ok {
			res.AddError("duplicate_type", fmt.Sprintf("type already overridden as %q", prev), to.Type, "")
			continue
		}

		seen[key] = to.Type

		validateFields(res, to, info)
	}

	return res
}

func validateSettings(res *diagnostic.Diagnostics, f *File) {
	if f.Version != CurrentVersion {
		res.AddError("unsupported_version", fmt.Sprintf("unsupported version %q, expected %q", f.Version, CurrentVersion), "", "")
	}

	if f.Cycles != "" {
		if _, err := mapper.ParseCyclePolicy(f.Cycles); err != nil {
			res.AddError("invalid_cycle_policy", err.Error(), "", "")
		}
	}

	if f.Duplicates != "" {
		if _, err := mapper.ParseDuplicatePolicy(f.Duplicates); err != nil {
			res.AddError("invalid_duplicate_policy", err.Error(), "", "")
		}
	}

	if f.MaxDepth < 0 {
		res.AddError("invalid_max_depth", fmt.Sprintf("max_depth must be positive, got %d", f.MaxDepth), "", "")
	}

	if f.ScalingFactor < 0 {
		res.AddError("invalid_scaling_factor", fmt.Sprintf("scaling_factor must be positive, got %g", f.ScalingFactor), "", "")
	}
}

func validateKinds(res *diagnostic.Diagnostics, f *File, graph *typeinfo.TypeGraph) {
	for _, id := range slices.Sorted(maps.Keys(f.Kinds)) {
		if _, err := graph.Lookup(id); err != nil {
			// Kinds usually name types of other modules, which are not loaded.
			res.AddInfo("kind_type_not_loaded", fmt.Sprintf("type %s is not in the loaded packages", id), id, "")
		}
	}
}

// validateMappings reports types whose mapping comes from a Mapping method.
// Mappings built from source classify their fields instead.
func validateMappings(res *diagnostic.Diagnostics, graph *typeinfo.TypeGraph) {
	for _, id := range graph.MappingTypes() {
		res.AddWarning("runtime_mapping",
			"type implements mapper.CustomMapper, its Mapping method only runs on runtime types", id.String(), "")
	}
}

func validateFields(res *diagnostic.Diagnostics, to *TypeOverride, info *typeinfo.TypeInfo) {
	known := make([]string, 0, len(info.Fields))
	for _, fi := range info.Fields {
		known = append(known, fi.Name)
	}

	names := make(map[string]string)

	for _, name := range slices.Sorted(maps.Keys(to.Fields)) {
		spec := to.Fields[name]

		fi, ok := info.Field(name)
		if !ok {
			res.AddError("field_not_found", fmt.Sprintf("struct has no field %q", name), to.Type, name,
				match.Suggest(name, known, maxSuggestions, match.DefaultThreshold)...)

			continue
		}

		if spec.IsZero() {
			res.AddWarning("empty_override", "override changes nothing", to.Type, name)
			continue
		}

		if spec.Text && spec.Keyword {
			res.AddError("conflicting_hints", "text and keyword are exclusive", to.Type, name)
		}

		if spec.Ignore {
			if spec != (FieldSpec{Ignore: true}) {
				res.AddWarning("ignored_field_has_settings", "field is ignored, other settings have no effect", to.Type, name)
			}

			continue
		}

		if spec.Mapping != nil && (spec.Text || spec.Keyword || spec.Nested) {
			res.AddWarning("mapping_overrides_hints", "mapping replaces the node, hints have no effect", to.Type, name)
		}

		if (spec.Text || spec.Keyword) && !isStringLike(fi.Type) {
			res.AddWarning("hint_on_non_string", fmt.Sprintf("string hint on %s field", fi.Type), to.Type, name)
		}

		if spec.Nested && !isStructLike(fi.Type) {
			res.AddWarning("nested_on_non_struct", fmt.Sprintf("nested on %s field", fi.Type), to.Type, name)
		}

		out := spec.Name
		if out == "" {
			out = outputName(fi)
		}

		if prev, ok := names[out]; ok {
			res.AddWarning("duplicate_output_name", fmt.Sprintf("fields %s and %s both map to %q", prev, name, out), to.Type, name)
		}

		names[out] = name
	}
}

// outputName is the mapping name of a field before file overrides.
func outputName(fi *typeinfo.FieldInfo) string {
	d := mapper.FieldDescriptor{Name: fi.Name}
	if tag, ok := fi.Tag.Lookup(mapper.TagKey); ok {
		if name, _, _ := strings.Cut(tag, ","); name != "" && name != "-" {
			d.NameOverride = name
		}
	}

	return d.OutputName()
}

// elem strips pointers and collections down to the value type.
func elem(t *typeinfo.TypeInfo) *typeinfo.TypeInfo {
	for t != nil {
		switch t.Kind {
		case typeinfo.TypeKindPointer, typeinfo.TypeKindSlice, typeinfo.TypeKindArray:
			t = t.ElemType
		default:
			return t
		}
	}

	return nil
}

func isStringLike(t *typeinfo.TypeInfo) bool {
	t = elem(t)
	for t != nil && t.Kind == typeinfo.TypeKindNamed && !t.TextLike {
		t = elem(t.Underlying)
	}

	if t == nil {
		return false
	}

	return t.TextLike || (t.Kind == typeinfo.TypeKindBasic && t.ID.Name == "string")
}

func isStructLike(t *typeinfo.TypeInfo) bool {
	t = elem(t)
	return t != nil && t.Kind == typeinfo.TypeKindStruct
}

func suggestTypes(ref string, graph *typeinfo.TypeGraph) []string {
	byName := make(map[string][]string)
	for id, info := range graph.Types {
		if info.Kind == typeinfo.TypeKindStruct {
			byName[id.Name] = append(byName[id.Name], id.String())
		}
	}

	names := slices.Sorted(maps.Keys(byName))

	var out []string
	for _, name := range match.Suggest(ref[strings.LastIndexAny(ref, "./")+1:], names, maxSuggestions, match.DefaultThreshold) {
		ids := byName[name]
		slices.Sort(ids)
		out = append(out, ids...)
	}

	return out
}
