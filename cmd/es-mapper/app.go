package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"es-mapper/internal/analyze"
	"es-mapper/internal/overrides"
	"es-mapper/mapper"
	"es-mapper/typeinfo"
)

var errCheckFailed = errors.New("overrides check failed")

func newApp() *cli.App {
	return &cli.App{
		Name:  "es-mapper",
		Usage: "derive Elasticsearch mappings from Go struct types",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "pkg",
				Aliases: []string{"p"},
				Usage:   "package `PATTERN` to load",
				Value:   cli.NewStringSlice("."),
			},
			&cli.StringFlag{
				Name:    "overrides",
				Aliases: []string{"o"},
				Usage:   "overrides `FILE`",
				EnvVars: []string{"ES_MAPPER_OVERRIDES"},
			},
			&cli.StringFlag{
				Name:  "cycles",
				Usage: "cycle policy: error or truncate",
			},
			&cli.StringFlag{
				Name:  "duplicates",
				Usage: "duplicate field name policy: overwrite or error",
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "maximum struct nesting depth",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   "info",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Before: func(c *cli.Context) error {
			h := slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{Level: parseLogLevel(c.String("log-level"))})
			slog.SetDefault(slog.New(h))

			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "mapping",
				Usage:     "print the mappings of struct types",
				ArgsUsage: "[TYPE...]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "json or yaml",
						Value:   "json",
					},
				},
				Action: runMapping,
			},
			{
				Name:      "describe",
				Usage:     "print one line per mapped field",
				ArgsUsage: "[TYPE...]",
				Action:    runDescribe,
			},
			{
				Name:      "group",
				Usage:     "print mapped fields grouped by kind",
				ArgsUsage: "[TYPE...]",
				Action:    runGroup,
			},
			{
				Name:   "check",
				Usage:  "validate the overrides file against the loaded packages",
				Action: runCheck,
			},
		},
	}
}

// session holds what every command needs: the loaded graph, the overrides
// file and a mapper configured from both.
type session struct {
	graph  *typeinfo.TypeGraph
	file   *overrides.File
	mapper *mapper.Mapper
}

// load reads the packages and the overrides file, if any.
func load(c *cli.Context) (*session, error) {
	graph, err := analyze.NewAnalyzer().LoadPackages(c.StringSlice("pkg")...)
	if err != nil {
		return nil, err
	}

	s := &session{graph: graph}

	if path := c.String("overrides"); path != "" {
		s.file, err = overrides.LoadFile(path)
		if err != nil {
			return nil, err
		}
	}

	return s, nil
}

func newSession(c *cli.Context) (*session, error) {
	s, err := load(c)
	if err != nil {
		return nil, err
	}

	var opts []mapper.Option

	if s.file != nil {
		fileOpts, err := s.file.Options(s.graph)
		if err != nil {
			return nil, err
		}

		opts = append(opts, fileOpts...)
	}

	flagOpts, err := policyOptions(c)
	if err != nil {
		return nil, err
	}

	opts = append(opts, flagOpts...)
	opts = append(opts, mapper.WithLogger(slog.Default()))

	for _, id := range s.graph.MappingTypes() {
		slog.Warn("custom mapper only runs on runtime types, mapping its fields", "type", id.String())
	}

	s.mapper = mapper.New(opts...)

	return s, nil
}

// policyOptions turns the policy flags into options. They are applied
// after the overrides file and win over it.
func policyOptions(c *cli.Context) ([]mapper.Option, error) {
	var opts []mapper.Option

	if v := c.String("cycles"); v != "" {
		p, err := mapper.ParseCyclePolicy(v)
		if err != nil {
			return nil, err
		}

		opts = append(opts, mapper.WithCyclePolicy(p))
	}

	if v := c.String("duplicates"); v != "" {
		p, err := mapper.ParseDuplicatePolicy(v)
		if err != nil {
			return nil, err
		}

		opts = append(opts, mapper.WithDuplicatePolicy(p))
	}

	if c.IsSet("max-depth") {
		opts = append(opts, mapper.WithMaxDepth(c.Int("max-depth")))
	}

	return opts, nil
}

// target is a struct type selected on the command line.
type target struct {
	ref  string
	info *typeinfo.TypeInfo
}

// targets resolves refs in argument order. Without refs every struct of the
// graph is selected, ordered by type ID.
func (s *session) targets(refs []string) ([]target, error) {
	if len(refs) == 0 {
		for id, info := range s.graph.Types {
			if info.Kind == typeinfo.TypeKindStruct {
				refs = append(refs, id.String())
			}
		}

		slices.Sort(refs)
	}

	out := make([]target, 0, len(refs))

	for _, ref := range refs {
		info, err := s.graph.Struct(ref)
		if err != nil {
			return nil, err
		}

		out = append(out, target{ref: ref, info: info})
	}

	return out, nil
}

func (s *session) mappings(refs []string) ([]target, []*mapper.TypeMapping, error) {
	targets, err := s.targets(refs)
	if err != nil {
		return nil, nil, err
	}

	tms := make([]*mapper.TypeMapping, len(targets))

	for i, t := range targets {
		tms[i], err = s.mapper.TypeMappingInfo(t.info)
		if err != nil {
			return nil, nil, err
		}
	}

	return targets, tms, nil
}

func runMapping(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	targets, tms, err := s.mappings(c.Args().Slice())
	if err != nil {
		return err
	}

	switch format := c.String("format"); format {
	case "json":
		return writeJSON(c.App.Writer, targets, tms)
	case "yaml":
		return writeYAML(c.App.Writer, targets, tms)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// writeJSON writes {"ref": mapping, ...} keeping argument order.
func writeJSON(w io.Writer, targets []target, tms []*mapper.TypeMapping) error {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, t := range targets {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(t.ref)
		if err != nil {
			return err
		}

		tree, err := tms[i].Tree.MarshalJSON()
		if err != nil {
			return err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(tree)
	}

	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}

	out.WriteByte('\n')

	_, err := out.WriteTo(w)

	return err
}

func writeYAML(w io.Writer, targets []target, tms []*mapper.TypeMapping) error {
	doc := &yaml.Node{Kind: yaml.MappingNode}

	for i, t := range targets {
		var tree yaml.Node
		if err := tree.Encode(tms[i].Tree); err != nil {
			return err
		}

		doc.Content = append(doc.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: t.ref}, &tree)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(doc); err != nil {
		return err
	}

	return enc.Close()
}

func runDescribe(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	_, tms, err := s.mappings(c.Args().Slice())
	if err != nil {
		return err
	}

	for i, tm := range tms {
		if i > 0 {
			fmt.Fprintln(c.App.Writer)
		}

		if err := mapper.Describe(c.App.Writer, tm); err != nil {
			return err
		}
	}

	return nil
}

func runGroup(c *cli.Context) error {
	s, err := newSession(c)
	if err != nil {
		return err
	}

	_, tms, err := s.mappings(c.Args().Slice())
	if err != nil {
		return err
	}

	for i, tm := range tms {
		if i > 0 {
			fmt.Fprintln(c.App.Writer)
		}

		fmt.Fprintf(c.App.Writer, "# %s\n", tm.Type)

		if err := mapper.WriteGroups(c.App.Writer, mapper.GroupByKind(tm)); err != nil {
			return err
		}
	}

	return nil
}

func runCheck(c *cli.Context) error {
	if c.String("overrides") == "" {
		return errors.New("check requires --overrides")
	}

	s, err := load(c)
	if err != nil {
		return err
	}

	res := overrides.Validate(s.file, s.graph)

	if err := res.Write(c.App.Writer); err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, res.Summary())

	if res.HasErrors() {
		return errCheckFailed
	}

	return nil
}
