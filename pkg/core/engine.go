package core

import (
	"sync"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/importsteps/pkg/assetdb"
	"github.com/arthur-debert/importsteps/pkg/config"
	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/executor"
	"github.com/arthur-debert/importsteps/pkg/logging"
	"github.com/arthur-debert/importsteps/pkg/matcher"
	"github.com/arthur-debert/importsteps/pkg/pattern"
	"github.com/arthur-debert/importsteps/pkg/resolver"
	"github.com/arthur-debert/importsteps/pkg/stepstore"
	"github.com/arthur-debert/importsteps/pkg/steps"
	"github.com/arthur-debert/importsteps/pkg/storage"
	"github.com/arthur-debert/importsteps/pkg/suffix"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// Options configures Initialize
type Options struct {
	// Config defaults to config.Default()
	Config *config.Config
	// Fs is the project filesystem. Defaults to the OS filesystem rooted
	// at Config.ProjectRoot.
	Fs afero.Fs
}

// Engine owns the state of one project
type Engine struct {
	cfg       *config.Config
	fs        afero.Fs
	db        assetdb.Database
	file      *storage.File
	hierarchy *types.Hierarchy
	compiler  *pattern.Compiler
	matcher   *matcher.Matcher
	store     *stepstore.Store
	resolver  *resolver.Resolver
	logger    zerolog.Logger

	mu       sync.Mutex
	doc      *storage.Document
	table    *suffix.Table
	problems []error
}

// Initialize loads the state file, creating it from the configuration when
// missing, and restores the stored steps
func Initialize(opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewBasePathFs(afero.NewOsFs(), cfg.ProjectRoot)
	}

	e := &Engine{
		cfg:       cfg,
		fs:        fs,
		db:        assetdb.New(fs),
		file:      storage.New(fs, cfg.StateFile),
		hierarchy: cfg.Hierarchy(),
		logger:    logging.GetLogger("core"),
	}

	fallback := storage.DefaultDocument(cfg.Wildcards, cfg.SuffixTable())
	doc, created, err := e.file.LoadOrCreate(fallback)
	if err != nil {
		return nil, err
	}
	e.doc = doc
	e.table = doc.SuffixTable()

	wildcards := doc.Wildcards
	if wildcards.FileOrFolder == "" && wildcards.MultipleFolder == "" {
		wildcards = cfg.Wildcards
	}
	e.compiler = pattern.NewCompiler(wildcards, cfg.PatternCacheSize)
	e.matcher = matcher.New(e.compiler, e.hierarchy, cfg.Keywords,
		matcher.WithRoot(cfg.RootFolder),
		matcher.WithFolderExists(e.db.IsFolder),
	)

	byID, patterns, problems := storage.DecodeSteps(doc, e.hierarchy, e.logger)
	e.problems = problems
	e.store = stepstore.New()
	e.store.Load(byID, patterns)
	e.store.SetPersister(e)
	e.resolver = resolver.New(e.store, e.matcher)

	e.logger.Info().
		Str("state_file", e.file.Path()).
		Bool("created", created).
		Int("steps", e.store.Len()).
		Int("skipped", len(problems)).
		Msg("Engine initialized")
	return e, nil
}

// Close flushes the state file
func (e *Engine) Close() error {
	return e.Flush()
}

// Flush writes the current state to the state file
func (e *Engine) Flush() error {
	return e.Persist(e.store.Snapshot())
}

// Persist implements stepstore.Persister
func (e *Engine) Persist(snap stepstore.Snapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := storage.EncodeSnapshot(e.doc, snap); err != nil {
		return err
	}
	e.doc.Wildcards = e.compiler.Wildcards()
	e.doc.SetSuffixes(e.table)
	return e.file.Save(e.doc)
}

// Config returns the configuration the engine was built with
func (e *Engine) Config() *config.Config { return e.cfg }

// Fs returns the project filesystem
func (e *Engine) Fs() afero.Fs { return e.fs }

// DB returns the asset database
func (e *Engine) DB() assetdb.Database { return e.db }

// Hierarchy returns the type hierarchy
func (e *Engine) Hierarchy() *types.Hierarchy { return e.hierarchy }

// Matcher returns the target matcher
func (e *Engine) Matcher() *matcher.Matcher { return e.matcher }

// Suffixes returns the suffix table
func (e *Engine) Suffixes() *suffix.Table { return e.table }

// StatePath returns the state file path
func (e *Engine) StatePath() string { return e.file.Path() }

// LoadProblems returns the stored records that could not be loaded. They
// stay in the state file.
func (e *Engine) LoadProblems() []error { return e.problems }

// AddStep registers step and flushes
func (e *Engine) AddStep(step *steps.Step) error { return e.store.Add(step) }

// RemoveStep unregisters step and flushes
func (e *Engine) RemoveStep(step *steps.Step) error { return e.store.Remove(step) }

// UpdateStep re-validates an edited step and flushes
func (e *Engine) UpdateStep(step *steps.Step) error { return e.store.Update(step) }

// FindStep looks a step up by its id
func (e *Engine) FindStep(id string) (*steps.Step, error) {
	step, ok := e.store.Find(id)
	if !ok {
		return nil, errors.Newf(errors.ErrNotFound, "no step with id %s", id)
	}
	return step, nil
}

// AllSteps returns the id steps, grouped by sorted id, then the pattern steps
func (e *Engine) AllSteps() []*steps.Step {
	snap := e.store.Snapshot()
	var out []*steps.Step
	for _, id := range snap.IDs {
		out = append(out, snap.ByID[id]...)
	}
	return append(out, snap.Patterns...)
}

// StepsForID returns the id steps applying to id and tags
func (e *Engine) StepsForID(id string, tags []types.TypeTag) []*steps.Step {
	return e.resolver.StepsForID(id, tags)
}

// StepsForPattern returns the pattern steps applying to path and tags
func (e *Engine) StepsForPattern(path string, tags []types.TypeTag) []*steps.Step {
	return e.resolver.StepsForPattern(path, tags)
}

// StepsForFolder returns the pattern steps originating from folder
func (e *Engine) StepsForFolder(folder string) []*steps.Step {
	return e.resolver.StepsForFolder(folder)
}

// Resolve returns the ordered steps for an asset
func (e *Engine) Resolve(id, path string, tags []types.TypeTag) []*steps.Step {
	return e.resolver.Resolve(id, path, tags)
}

// NewController creates a lifecycle controller over the engine
func (e *Engine) NewController() *executor.Controller {
	return executor.New(executor.Options{
		Resolver:   e.resolver,
		DB:         e.db,
		Matcher:    e.matcher,
		Suffixes:   e.table,
		Analysis:   e.cfg.Analysis,
		Root:       e.cfg.RootFolder,
		DebugHooks: e.cfg.DebugHooks,
	})
}

// RestoreDefaultSuffixes resets the suffix table and flushes
func (e *Engine) RestoreDefaultSuffixes() error {
	e.table.RestoreDefaults()
	e.logger.Info().Msg("Restored default suffix rules")
	return e.Flush()
}

// SetSuffixSeparator changes the separator written in front of suffixes
func (e *Engine) SetSuffixSeparator(sep string) error {
	if sep == "" {
		return errors.New(errors.ErrInvalidInput, "suffix separator must not be empty")
	}
	e.table.Separator = sep
	e.table.Invalidate()
	return e.Flush()
}

// Nuke removes every step and restores the default suffix rules
func (e *Engine) Nuke() error {
	e.mu.Lock()
	e.doc.DropHeld()
	e.mu.Unlock()
	e.table.RestoreDefaults()
	return e.store.Clear()
}
