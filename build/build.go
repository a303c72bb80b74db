package build

import (
	"os"
	"path/filepath"

	"github.com/psucodervn/packrat/diag"
	"github.com/psucodervn/packrat/format"
	"github.com/psucodervn/packrat/manifest"
	"github.com/psucodervn/packrat/status"
)

// Options configures one build run, mirroring the CLI flags of
// spec §6.1.
type Options struct {
	// OutputPath overrides the manifest's `output` field when non-empty.
	OutputPath string
	// DebugOutputPath overrides the manifest's `debug_output` field
	// when non-empty.
	DebugOutputPath string
	// PrettyDebugJSON overrides the manifest's `pretty_debug_json`
	// field when true.
	PrettyDebugJSON bool
	// Strict promotes any validator warning into a build failure
	// before any bytes are written, per spec §5.
	Strict bool
}

// Result reports what a successful build produced.
type Result struct {
	OutputPath      string
	DebugOutputPath string
	Warnings        int
}

// Run executes the full L1-L8 pipeline against the manifest at path,
// writing the encoded package (and optional debug JSON) to disk. It
// returns a *status.Error on any failure, per spec §7's "single
// top-level status" policy.
func Run(manifestPath string, opts Options, sink diag.Sink) (*Result, error) {
	m, _, warnings, err := manifest.LoadAndValidate(manifestPath, sink)
	if err != nil {
		return nil, err
	}

	if opts.Strict && warnings > 0 {
		return nil, status.New(status.ValidationError, "strict mode: %d warning(s) during validation", warnings)
	}

	images, err := ImportImages(manifestPath, m, sink)
	if err != nil {
		return nil, err
	}

	frames, slices, err := ResolveFrames(manifestPath, m, images, sink)
	if err != nil {
		return nil, err
	}

	placed, pages, err := PackAtlas(manifestPath, m, images, frames, sink)
	if err != nil {
		return nil, err
	}

	anims, keys, err := ResolveAnimations(manifestPath, m, slices, sink)
	if err != nil {
		return nil, err
	}

	strTable, refs := BuildStrings(m, images)
	for i := range anims {
		anims[i].NameStrIdx = refs.AnimationID[i]
	}

	sprites, err := BuildResolvedSprites(m, images, slices, refs)
	if err != nil {
		return nil, err
	}

	sampling, ok := format.ParseSampling(m.Atlas.Sampling)
	if !ok {
		return nil, status.New(status.InternalError, "unresolved atlas sampling %q reached L8", m.Atlas.Sampling)
	}

	pkg := EncodePackage(strTable, images, refs, pages, sampling, m.Atlas.Padding, m.Atlas.PowerOfTwo, sprites, placed, anims, keys)

	outputPath := m.Output
	if opts.OutputPath != "" {
		outputPath = opts.OutputPath
	}
	outputPath = resolveOutputPath(manifestPath, outputPath)
	if err := os.WriteFile(outputPath, pkg.Bytes, 0o644); err != nil {
		return nil, status.New(status.IOError, "writing package %s: %w", outputPath, err)
	}

	result := &Result{OutputPath: outputPath, Warnings: warnings}

	debugPath := m.DebugOutput
	if opts.DebugOutputPath != "" {
		debugPath = opts.DebugOutputPath
	}
	if debugPath != "" {
		debugPath = resolveOutputPath(manifestPath, debugPath)
		pretty := m.PrettyDebugJSON || opts.PrettyDebugJSON
		report := BuildDebugReport(m, images)
		if err := os.WriteFile(debugPath, EncodeDebugJSON(report, pretty), 0o644); err != nil {
			return nil, status.New(status.IOError, "writing debug json %s: %w", debugPath, err)
		}
		result.DebugOutputPath = debugPath
	}

	return result, nil
}

// resolveOutputPath joins a relative output path against the
// manifest's directory, mirroring resolveImagePath's rule.
func resolveOutputPath(manifestPath, outPath string) string {
	if filepath.IsAbs(outPath) {
		return outPath
	}
	dir := filepath.Dir(manifestPath)
	if dir == "." {
		return outPath
	}
	return filepath.Join(dir, outPath)
}
