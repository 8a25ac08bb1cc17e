// Package main provides the CLI entrypoint for es-mapper.
//
// es-mapper loads Go packages and prints the Elasticsearch mappings of their
// struct types:
//
//	es-mapper --pkg ./catalog mapping Order Product
//	es-mapper --pkg ./catalog --overrides es.yaml describe Order
//	es-mapper --pkg ./catalog --overrides es.yaml check
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
