package overrides

import (
	"fmt"

	"es-mapper/mapper"
	"es-mapper/typeinfo"
)

// Options converts the file into mapper options. Type references are
// resolved through graph when it is not nil; otherwise they must be full
// type IDs ("es-mapper/catalog.Order").
func (f *File) Options(graph *typeinfo.TypeGraph) ([]mapper.Option, error) {
	var opts []mapper.Option

	if f.Cycles != "" {
		p, err := mapper.ParseCyclePolicy(f.Cycles)
		if err != nil {
			return nil, err
		}

		opts = append(opts, mapper.WithCyclePolicy(p))
	}

	if f.Duplicates != "" {
		p, err := mapper.ParseDuplicatePolicy(f.Duplicates)
		if err != nil {
			return nil, err
		}

		opts = append(opts, mapper.WithDuplicatePolicy(p))
	}

	if f.MaxDepth > 0 {
		opts = append(opts, mapper.WithMaxDepth(f.MaxDepth))
	}

	if f.ScalingFactor > 0 {
		opts = append(opts, mapper.WithScalingFactor(f.ScalingFactor))
	}

	for id, node := range f.Kinds {
		opts = append(opts, mapper.WithKind(id, node))
	}

	for i := range f.Types {
		to := &f.Types[i]

		key, err := resolve(to.Type, graph)
		if err != nil {
			return nil, err
		}

		for field, spec := range to.Fields {
			opts = append(opts, mapper.WithFieldOverride(key, field, spec.Override()))
		}
	}

	return opts, nil
}

func resolve(ref string, graph *typeinfo.TypeGraph) (string, error) {
	if graph == nil {
		return ref, nil
	}

	info, err := graph.Struct(ref)
	if err != nil {
		return "", fmt.Errorf("overrides: %w", err)
	}

	return info.Key(), nil
}

// Override converts the spec into a mapper field override.
func (f FieldSpec) Override() mapper.FieldOverride {
	o := mapper.FieldOverride{
		Name:   f.Name,
		Ignore: f.Ignore,
		Nested: f.Nested,
	}

	switch {
	case f.Text:
		o.Hint = mapper.HintText
	case f.Keyword:
		o.Hint = mapper.HintKeyword
	}

	if f.Mapping != nil {
		o.Custom = mapper.Literal(*f.Mapping)
	}

	return o
}
