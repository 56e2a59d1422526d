// Package typegen runs the generation pipeline: load the API dump and
// corrections, emit Luau types for the selected classes and splice the
// results into the project's source files.
package typegen

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/rbxtypes/am"
	"github.com/teranos/rbxtypes/apidump"
	"github.com/teranos/rbxtypes/errors"
	"github.com/teranos/rbxtypes/internal/httpclient"
	"github.com/teranos/rbxtypes/logger"
	"github.com/teranos/rbxtypes/typegen/luau"
	"github.com/teranos/rbxtypes/typegen/patch"
	"github.com/teranos/rbxtypes/typegen/source"
)

// Inputs are the indexed upstream documents
type Inputs struct {
	Repository *apidump.Repository
	Overlay    *apidump.Overlay
}

// Fetcher loads a source document from a URL or path
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// NewFetcher builds the default fetcher from the sources config
func NewFetcher(cfg am.SourcesConfig) *source.Fetcher {
	client := httpclient.NewWithOptions(
		time.Duration(cfg.TimeoutSeconds)*time.Second,
		httpclient.Options{RequestsPerMinute: cfg.MaxRequestsPerMinute},
	)
	return source.NewFetcher(client)
}

// Load fetches the API dump, then the corrections, then the optional local
// corrections overlay, and indexes them
func Load(ctx context.Context, f Fetcher, cfg am.SourcesConfig) (*Inputs, error) {
	log := logger.LoggerFromContext(ctx)

	data, err := f.Fetch(ctx, cfg.APIDump)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load API dump")
	}
	dump, err := apidump.DecodeDump(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode API dump from %s", cfg.APIDump)
	}

	data, err = f.Fetch(ctx, cfg.Corrections)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load corrections")
	}
	corrections, err := apidump.DecodeCorrections(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode corrections from %s", cfg.Corrections)
	}

	overlay := apidump.NewOverlay(corrections.Classes)
	if cfg.LocalCorrections != "" {
		data, err = f.Fetch(ctx, cfg.LocalCorrections)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load local corrections")
		}
		local, err := apidump.DecodeCorrectionsTOML(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(err, "failed to decode local corrections from %s", cfg.LocalCorrections)
		}
		overlay = overlay.Merge(apidump.NewOverlay(local.Classes))
	}

	repo := apidump.NewRepository(dump.Classes)
	log.Infow("Indexed sources",
		"classes", repo.Len(),
		"corrections", overlay.Len())

	return &Inputs{Repository: repo, Overlay: overlay}, nil
}

// NewGenerator builds a Luau generator for the config's format and aliases
func NewGenerator(in *Inputs, cfg *am.Config) *luau.Generator {
	return luau.NewGenerator(in.Repository, in.Overlay, luau.Options{
		Format:      luau.Format{Compact: cfg.Format.Compact},
		Aliases:     cfg.AliasTable(),
		TypesModule: cfg.Output.TypesModule,
		TypesAlias:  cfg.Output.TypesAlias,
	})
}

// Generate emits the types module and patch fragments for the configured classes
func Generate(ctx context.Context, in *Inputs, cfg *am.Config) (*Result, error) {
	log := logger.LoggerFromContext(ctx)
	gen := NewGenerator(in, cfg)

	var classes []*apidump.Class
	var err error
	if cfg.Classes.All {
		classes, err = gen.SelectAll()
	} else {
		classes, err = gen.Select(cfg.Classes.Allow)
	}
	if err != nil {
		return nil, err
	}

	types, err := gen.TypesDocument(classes)
	if err != nil {
		return nil, err
	}

	traceClasses := logger.ShouldOutput(logger.Verbosity, logger.OutputClassEmit)
	names := make([]string, 0, len(classes))
	for _, c := range classes {
		names = append(names, c.Name)
		if traceClasses {
			log.Debugw("Emitted class",
				logger.FieldOutput, logger.CategoryName(logger.OutputClassEmit),
				logger.FieldClass, c.Name)
		}
	}
	if logger.ShouldOutput(logger.Verbosity, logger.OutputDataDump) {
		log.Debugw("Types module",
			logger.FieldOutput, logger.CategoryName(logger.OutputDataDump),
			"text", types)
	}

	result := &Result{
		RunID:         RunIDFromContext(ctx),
		Classes:       names,
		Types:         types,
		CreateClauses: gen.CreateClauses(classes),
		InitReexports: gen.InitReexports(classes),
	}
	log.Infow("Generated types",
		logger.FieldCount, len(names),
		logger.FieldSize, len(types))
	return result, nil
}

// Run loads the sources and generates under a fresh run id
func Run(ctx context.Context, f Fetcher, cfg *am.Config) (*Result, error) {
	ctx = logger.WithComponent(WithNewRunID(ctx), "typegen")
	start := time.Now()

	in, err := Load(ctx, f, cfg.Sources)
	if err != nil {
		return nil, err
	}
	result, err := Generate(ctx, in, cfg)
	if err != nil {
		return nil, err
	}

	logger.LoggerFromContext(ctx).Infow("Run complete",
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return result, nil
}

// PlanWrite reads the create and init documents and computes every file the
// run would write. Nothing is written; a missing anchor fails here.
func PlanWrite(result *Result, out am.OutputConfig) (*Plan, error) {
	create, err := patchedContents(out.Create, out.CreateAnchor, result.CreateClauses, patch.StrategyTruncate)
	if err != nil {
		return nil, err
	}
	initDoc, err := patchedContents(out.Init, out.InitAnchor, result.InitReexports, patch.StrategyReplacePlaceholder)
	if err != nil {
		return nil, err
	}

	return &Plan{Files: []PlannedFile{
		{Path: out.Types, Contents: result.Types},
		{Path: out.Create, Contents: create, Patched: true},
		{Path: out.Init, Contents: initDoc, Patched: true},
	}}, nil
}

func patchedContents(path, marker string, fragments []string, strategy patch.Strategy) (string, error) {
	patched, err := patch.Prepare(path, marker, fragments, strategy)
	if err != nil {
		return "", err
	}
	return patched.String(), nil
}

// Write writes the types module and patches the create and init documents.
// All three results are computed before the first write.
func Write(ctx context.Context, result *Result, out am.OutputConfig) error {
	log := logger.LoggerFromContext(ctx)

	plan, err := PlanWrite(result, out)
	if err != nil {
		return err
	}

	for _, f := range plan.Files {
		if f.Patched {
			if err := patch.WriteFile(f.Path, patch.Split(f.Contents)); err != nil {
				return err
			}
		} else {
			if err := os.MkdirAll(filepath.Dir(f.Path), am.DefaultDirPermissions); err != nil {
				return errors.Wrapf(err, "failed to create directory for %s", f.Path)
			}
			if err := os.WriteFile(f.Path, []byte(f.Contents), am.DefaultFilePermissions); err != nil {
				return errors.Wrapf(err, "failed to write %s", f.Path)
			}
		}
		log.Infow("Wrote file",
			logger.FieldFile, f.Path,
			logger.FieldSize, len(f.Contents),
			"patched", f.Patched)
	}
	return nil
}

// Check compares the files a run would write against what is on disk. The
// types module must match exactly, the create document must already end with
// the create clauses, and the init re-exports must directly follow the init
// anchor.
func Check(ctx context.Context, result *Result, out am.OutputConfig) ([]Drift, error) {
	log := logger.LoggerFromContext(ctx)
	var drift []Drift

	current, err := os.ReadFile(out.Types)
	switch {
	case os.IsNotExist(err):
		drift = append(drift, Drift{File: out.Types, Reason: "missing"})
	case err != nil:
		return nil, errors.Wrapf(err, "failed to read %s", out.Types)
	case string(current) != result.Types:
		drift = append(drift, Drift{File: out.Types, Reason: "out of date"})
	}

	create, err := patch.ReadFile(out.Create)
	if err != nil {
		return nil, err
	}
	patched, err := patch.Prepare(out.Create, out.CreateAnchor, result.CreateClauses, patch.StrategyTruncate)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check %s", out.Create)
	}
	if patched.String() != create.String() {
		drift = append(drift, Drift{File: out.Create, Reason: "out of date"})
	}

	initDoc, err := patch.ReadFile(out.Init)
	if err != nil {
		return nil, err
	}
	i, err := patch.FindAnchor(initDoc, out.InitAnchor)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check %s", out.Init)
	}
	if !hasLinesAt(initDoc, i+1, result.InitReexports) {
		drift = append(drift, Drift{File: out.Init, Reason: "out of date"})
	}

	log.Infow("Checked outputs",
		logger.FieldCount, 3,
		"drifted", len(drift))
	return drift, nil
}

func hasLinesAt(doc patch.Document, at int, lines []string) bool {
	if at+len(lines) > len(doc) {
		return false
	}
	for j, line := range lines {
		if doc[at+j] != line {
			return false
		}
	}
	return true
}

type runIDKey struct{}

// WithNewRunID returns a context carrying a fresh run id, both for
// RunIDFromContext and for log fields
func WithNewRunID(ctx context.Context) context.Context {
	id := uuid.NewString()
	ctx = context.WithValue(ctx, runIDKey{}, id)
	return logger.WithRunID(ctx, id)
}

// RunIDFromContext returns the run id set by WithNewRunID, if any
func RunIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey{}).(string)
	return id
}
