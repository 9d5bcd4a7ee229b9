// Package resolver answers which steps apply to an imported asset.
//
// Id steps and pattern steps are matched separately through the Matcher,
// concatenated (id steps first) and stable-sorted by ascending priority, so
// equal priorities keep id-before-pattern and insertion order.
package resolver

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/logging"
	"github.com/arthur-debert/importsteps/pkg/matcher"
	"github.com/arthur-debert/importsteps/pkg/steps"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// Source is the part of the step store the resolver reads
type Source interface {
	IDSteps(id string) []*steps.Step
	PatternSteps() []*steps.Step
}

// Resolver matches stored steps against assets
type Resolver struct {
	source  Source
	matcher *matcher.Matcher
	logger  zerolog.Logger
}

// New creates a resolver over source
func New(source Source, m *matcher.Matcher) *Resolver {
	return &Resolver{
		source:  source,
		matcher: m,
		logger:  logging.GetLogger("resolver"),
	}
}

// Matcher returns the matcher used for every query
func (r *Resolver) Matcher() *matcher.Matcher { return r.matcher }

// StepsForID returns the id steps anchored to id whose kind works for one of
// tags and whose target accepts them, ordered by priority
func (r *Resolver) StepsForID(id string, tags []types.TypeTag) []*steps.Step {
	out := r.idSteps(id, tags)
	SortByPriority(out)
	return out
}

// StepsForPattern returns the pattern steps whose pattern matches path and
// whose kind works for one of tags, ordered by priority. Id steps are never
// returned.
func (r *Resolver) StepsForPattern(path string, tags []types.TypeTag) []*steps.Step {
	out := r.patternSteps(path, tags)
	SortByPriority(out)
	return out
}

// StepsForFolder returns the pattern steps originating from folder, ordered
// by priority
func (r *Resolver) StepsForFolder(folder string) []*steps.Step {
	var out []*steps.Step
	for _, step := range r.source.PatternSteps() {
		if r.matcher.IsFolderTarget(step.Target, folder) {
			out = append(out, step)
		}
	}
	SortByPriority(out)
	return out
}

func (r *Resolver) idSteps(id string, tags []types.TypeTag) []*steps.Step {
	return r.filter(r.source.IDSteps(id), matcher.Candidate{ID: id, Types: tags})
}

func (r *Resolver) patternSteps(path string, tags []types.TypeTag) []*steps.Step {
	return r.filter(r.source.PatternSteps(), matcher.Candidate{Path: path, Types: tags})
}

// Resolve returns every step that applies to the asset, ordered by
// priority. Disabled steps are kept; the executor skips them. The two
// collections are concatenated first and sorted once.
func (r *Resolver) Resolve(id, path string, tags []types.TypeTag) []*steps.Step {
	seen := make(map[string]bool)
	var out []*steps.Step
	for _, step := range append(r.idSteps(id, tags), r.patternSteps(path, tags)...) {
		if seen[step.ID] {
			continue
		}
		seen[step.ID] = true
		out = append(out, step)
	}

	SortByPriority(out)

	r.logger.Debug().
		Str("id", id).
		Str("path", path).
		Strs("types", types.Strings(tags)).
		Int("steps", len(out)).
		Msg("Resolved steps")
	return out
}

// SortByPriority orders list by ascending priority, keeping the relative
// order of equal priorities
func SortByPriority(list []*steps.Step) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Priority < list[j].Priority
	})
}

func (r *Resolver) filter(list []*steps.Step, c matcher.Candidate) []*steps.Step {
	var out []*steps.Step
	for _, step := range list {
		if err := r.checkTypes(step); err != nil {
			r.logger.Warn().Err(err).Str("step", step.ID).Msg("Skipping step")
			continue
		}
		if !step.WorksForOneOfTypes(r.matcher.Hierarchy(), c.Types) {
			continue
		}
		if !r.matcher.Matches(step.Target, c) {
			continue
		}
		out = append(out, step)
	}
	return out
}

// checkTypes reports a MATCH error for a target naming a type the hierarchy
// cannot place
func (r *Resolver) checkTypes(step *steps.Step) error {
	h := r.matcher.Hierarchy()
	for _, tag := range step.Target.Types {
		if !h.Known(tag) {
			return errors.Newf(errors.ErrMatch, "step %s targets unknown type %q", step.ID, tag).
				WithDetail("step", step.ID).
				WithDetail("type", string(tag))
		}
	}
	return nil
}
