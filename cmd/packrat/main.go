// Command packrat is the CLI front end over the manifest/build/runtime
// libraries (spec.md §6.1). It is intentionally thin: parse flags,
// wire a diagnostic printer, call into the library, map the result to
// an exit code. Grounded on original_source/src/cli/main.c's
// dispatch-by-subcommand shape, translated to Go idiom.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/golang/glog"

	"github.com/psucodervn/packrat/build"
	"github.com/psucodervn/packrat/config"
	"github.com/psucodervn/packrat/diag"
	"github.com/psucodervn/packrat/manifest"
	"github.com/psucodervn/packrat/runtime"
	"github.com/psucodervn/packrat/status"
)

func main() {
	defer glog.Flush()
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if len(args) < 2 {
		return printUsage(os.Stderr)
	}

	switch args[1] {
	case "validate":
		return runValidate(args)
	case "build":
		return runBuild(args)
	case "inspect":
		return runInspect(args)
	case "--help", "-h":
		return printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[1])
		return printUsage(os.Stderr)
	}
}

func printUsage(w *os.File) int {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  packrat validate <manifest>")
	fmt.Fprintln(w, "  packrat build <manifest> [options]")
	fmt.Fprintln(w, "  packrat inspect <package> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build options:")
	fmt.Fprintln(w, "  -output <path>")
	fmt.Fprintln(w, "  -debug-output <path>")
	fmt.Fprintln(w, "  -pretty-debug-json")
	fmt.Fprintln(w, "  -quiet")
	fmt.Fprintln(w, "  -strict")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Inspect options:")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "  -verbose")
	return 1
}

// splitPositional peels off the first non-flag argument (the
// manifest/package path, always argv[2] per spec.md §6.1's usage
// grammar) and returns it along with the remaining flag arguments.
// Mirrors original_source/src/cli/main.c, which reads argv[2] as the
// positional unconditionally and loops over flags starting at
// argv[3] — done explicitly here because Go's flag package stops
// parsing at the first non-flag token, and this CLI's usage puts the
// positional before its flags.
func splitPositional(args []string) (string, []string, bool) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "", nil, false
	}
	return args[0], args[1:], true
}

func runValidate(args []string) int {
	path, rest, ok := splitPositional(args[2:])
	if !ok {
		return printUsage(os.Stderr)
	}
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	if err := fs.Parse(rest); err != nil || fs.NArg() != 0 {
		return printUsage(os.Stderr)
	}

	glog.V(1).Infof("validating manifest %s", path)
	sink := newDiagPrinter(false)
	_, _, _, err := manifest.LoadAndValidate(path, sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validate failed: %v\n", err)
		return status.Of(err).ExitCode()
	}
	fmt.Fprintf(os.Stdout, "Manifest is valid: %s\n", path)
	return 0
}

func runBuild(args []string) int {
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		glog.Warningf("could not load ambient config, using defaults: %v", cfgErr)
		cfg = config.Default()
	}

	manifestPath, rest, ok := splitPositional(args[2:])
	if !ok {
		return printUsage(os.Stderr)
	}
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	output := fs.String("output", "", "override the manifest's `output` path")
	debugOutput := fs.String("debug-output", "", "override the manifest's `debug_output` path")
	pretty := fs.Bool("pretty-debug-json", cfg.PrettyDebugJSON, "pretty-print debug JSON")
	quiet := fs.Bool("quiet", cfg.Quiet, "suppress non-error diagnostics")
	strict := fs.Bool("strict", cfg.Strict, "treat validator warnings as build failures")
	if err := fs.Parse(rest); err != nil || fs.NArg() != 0 {
		return printUsage(os.Stderr)
	}

	glog.V(1).Infof("building %s (strict=%v quiet=%v)", manifestPath, *strict, *quiet)
	sink := newDiagPrinter(*quiet)
	result, err := build.Run(manifestPath, build.Options{
		OutputPath:      *output,
		DebugOutputPath: *debugOutput,
		PrettyDebugJSON: *pretty,
		Strict:          *strict,
	}, sink)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
		return status.Of(err).ExitCode()
	}
	fmt.Fprintf(os.Stdout, "Build succeeded: %s\n", result.OutputPath)
	return 0
}

func runInspect(args []string) int {
	packagePath, rest, ok := splitPositional(args[2:])
	if !ok {
		return printUsage(os.Stderr)
	}
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	jsonOutput := fs.Bool("json", false, "emit machine-readable JSON")
	verbose := fs.Bool("verbose", false, "include per-sprite and per-animation detail")
	if err := fs.Parse(rest); err != nil || fs.NArg() != 0 {
		return printUsage(os.Stderr)
	}

	pkg, err := runtime.OpenFile(packagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Inspect failed: %v\n", err)
		return status.Of(err).ExitCode()
	}

	if *jsonOutput {
		printInspectJSON(os.Stdout, packagePath, pkg, *verbose)
	} else {
		printInspectText(os.Stdout, packagePath, pkg, *verbose)
	}
	return 0
}

func newDiagPrinter(quiet bool) diag.Sink {
	return func(d diag.Diagnostic) {
		if quiet && d.Severity != diag.Error {
			return
		}
		fmt.Fprintln(os.Stderr, d.String())
	}
}
