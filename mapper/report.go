package mapper

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"es-mapper/schema"
)

// Describe writes one line per field of tm: output name, node kind, Go
// field path and Go type.
func Describe(w io.Writer, tm *TypeMapping) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "# %s\n", tm.Type)

	for _, f := range tm.Fields {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", f.Name, nodeLabel(f.Node), f.Descriptor.Path, f.Descriptor.Type)
	}

	return tw.Flush()
}

func nodeLabel(n schema.Node) string {
	switch {
	case n.IsDisabled():
		return "object (disabled)"
	case n.Kind.IsContainer():
		return fmt.Sprintf("%s{%d}", n.Kind, n.Properties.Len())
	default:
		return string(n.Kind)
	}
}

// KindGroup lists the output names of the fields mapped to one kind.
type KindGroup struct {
	Kind   schema.Kind
	Fields []string
}

// GroupByKind groups the fields of tm by node kind, ordered by kind name.
// Field order inside a group follows the mapping.
func GroupByKind(tm *TypeMapping) []KindGroup {
	index := make(map[schema.Kind]int)

	var groups []KindGroup

	for _, f := range tm.Fields {
		i, ok := index[f.Node.Kind]
		if !ok {
			i = len(groups)
			index[f.Node.Kind] = i
			groups = append(groups, KindGroup{Kind: f.Node.Kind})
		}

		groups[i].Fields = append(groups[i].Fields, f.Name)
	}

	slices.SortFunc(groups, func(a, b KindGroup) int {
		return cmp.Compare(a.Kind, b.Kind)
	})

	return groups
}

// WriteGroups prints groups as "kind: a, b, c" lines.
func WriteGroups(w io.Writer, groups []KindGroup) error {
	tw := tabwriter.NewWriter(w, 0, 4, 1, ' ', 0)

	for _, g := range groups {
		fmt.Fprintf(tw, "%s:\t", g.Kind)

		for i, name := range g.Fields {
			if i > 0 {
				fmt.Fprint(tw, ", ")
			}

			fmt.Fprint(tw, name)
		}

		fmt.Fprintln(tw)
	}

	return tw.Flush()
}
