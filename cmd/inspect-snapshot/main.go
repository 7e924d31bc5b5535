// Command inspect-snapshot resolves and prints the variables captured in a
// breakpoint document.
//
// Usage:
//
//	inspect-snapshot [-frame N] [-max-level N] [-json] snapshot.json
//
// The document may be JSON or YAML. By default the evaluated expressions
// are resolved; -frame selects a stack frame's arguments and locals
// instead.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/snapdbg/snapdbg"
	"github.com/snapdbg/snapdbg/pkg/render"
	"github.com/snapdbg/snapdbg/varresolve"
)

func main() {
	frame := flag.Int("frame", -1, "stack frame to resolve (-1 for evaluated expressions)")
	maxLevel := flag.Int("max-level", 3, "maximum variable expansion depth")
	asJSON := flag.Bool("json", false, "print JSON instead of a table")
	logLevel := flag.String("log-level", "warn", "resolver log level (error, warn, info, debug)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: inspect-snapshot [flags] <snapshot file>")
		flag.PrintDefaults()
		os.Exit(2)
	}

	doc, err := loadDocument(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "inspect-snapshot: %v\n", err)
		os.Exit(1)
	}

	bp := snapdbg.DecodeBreakpoint(doc)

	opts := varresolve.DefaultOptions()
	opts.MaxLevel = *maxLevel
	opts.Logger = varresolve.NewLogger(varresolve.ParseLogLevel(*logLevel), os.Stderr)
	resolver := varresolve.New(bp, opts)

	var entries []varresolve.Entry
	if *frame >= 0 {
		entries = resolver.ResolveLocals(*frame)
	} else {
		entries = resolver.ResolveExpressions()
	}

	if *asJSON {
		color := isatty.IsTerminal(os.Stdout.Fd())
		out, err := render.JSON(entries, color)
		if err != nil {
			fmt.Fprintf(os.Stderr, "inspect-snapshot: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(out)
		return
	}
	fmt.Print(render.Table(entries))
}

// loadDocument reads a breakpoint document, converting YAML input to JSON
// so the tolerant wire decoder can consume it.
func loadDocument(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		return json.Marshal(v)
	}
	return data, nil
}
