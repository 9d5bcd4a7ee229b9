package storage

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/stepstore"
	"github.com/arthur-debert/importsteps/pkg/steps"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// EncodeStep converts a step to its record
func EncodeStep(s *steps.Step) (StepRecord, error) {
	params, err := steps.EncodeParams(s.Params)
	if err != nil {
		return StepRecord{}, err
	}
	return StepRecord{
		ID:       s.ID,
		Kind:     string(s.Kind()),
		Enabled:  s.Enabled,
		Priority: s.Priority,
		Target: TargetRecord{
			StableID:      s.Target.StableID,
			Path:          s.Target.PathPattern,
			SubAssetMatch: s.Target.SubAssetMatch,
			Types:         types.Strings(s.Target.Types),
		},
		Params: params,
	}, nil
}

// DecodeStep rebuilds a step from its record. Type tags are kept as
// written, known or not.
func DecodeStep(r StepRecord) (*steps.Step, error) {
	params, err := steps.DecodeParams(steps.Kind(r.Kind), r.Params)
	if err != nil {
		return nil, err
	}
	if r.ID == "" {
		return nil, errors.New(errors.ErrConfigParse, "step record has no id").
			WithDetail("kind", r.Kind)
	}

	tags := make([]types.TypeTag, 0, len(r.Target.Types))
	for _, raw := range r.Target.Types {
		tags = append(tags, types.TypeTag(raw))
	}
	return &steps.Step{
		ID:       r.ID,
		Enabled:  r.Enabled,
		Priority: r.Priority,
		Target: types.Target{
			StableID:      r.Target.StableID,
			PathPattern:   r.Target.Path,
			SubAssetMatch: r.Target.SubAssetMatch,
			Types:         tags,
		},
		Params: params,
	}, nil
}

// EncodeSnapshot writes both step collections into doc. Records that
// DecodeSteps held back are appended after the live steps.
func EncodeSnapshot(doc *Document, snap stepstore.Snapshot) error {
	doc.IDSteps = make(map[string][]StepRecord, len(snap.IDs))
	for _, id := range snap.IDs {
		for _, s := range snap.ByID[id] {
			r, err := EncodeStep(s)
			if err != nil {
				return errors.Wrapf(err, errors.ErrStorageWrite, "encode step %s", s.ID)
			}
			doc.IDSteps[id] = append(doc.IDSteps[id], r)
		}
	}

	doc.PatternSteps = make([]StepRecord, 0, len(snap.Patterns))
	for _, s := range snap.Patterns {
		r, err := EncodeStep(s)
		if err != nil {
			return errors.Wrapf(err, errors.ErrStorageWrite, "encode step %s", s.ID)
		}
		doc.PatternSteps = append(doc.PatternSteps, r)
	}

	for id, records := range doc.heldIDs {
		doc.IDSteps[id] = append(doc.IDSteps[id], records...)
	}
	doc.PatternSteps = append(doc.PatternSteps, doc.heldPatterns...)
	return nil
}

// DecodeSteps rebuilds both collections from doc. Records that cannot be
// decoded, such as an unknown kind, are not loaded: they are returned as
// errors and held on doc so EncodeSnapshot keeps them in the file. Type
// tags the hierarchy does not know are kept and reported; the resolver
// drops those steps per asset.
func DecodeSteps(doc *Document, h *types.Hierarchy, logger zerolog.Logger) (map[string][]*steps.Step, []*steps.Step, []error) {
	var problems []error
	doc.DropHeld()
	warn := func(r StepRecord, err error) {
		logger.Warn().Err(err).Str("step", r.ID).Str("kind", r.Kind).Msg("Stored step not loaded, keeping record")
		problems = append(problems, err)
	}
	check := func(s *steps.Step) {
		if h == nil {
			return
		}
		if _, unknown := h.ParseTypeTags(types.Strings(s.Target.Types)); len(unknown) > 0 {
			logger.Warn().Str("step", s.ID).Strs("unknown_types", unknown).Msg("Stored step targets unknown types")
		}
	}

	byID := make(map[string][]*steps.Step, len(doc.IDSteps))
	for id, records := range doc.IDSteps {
		for i, r := range records {
			if r.Target.StableID == "" {
				r.Target.StableID = id
			}
			s, err := DecodeStep(r)
			if err != nil {
				warn(r, err)
				if doc.heldIDs == nil {
					doc.heldIDs = make(map[string][]StepRecord)
				}
				doc.heldIDs[id] = append(doc.heldIDs[id], records[i])
				continue
			}
			check(s)
			byID[id] = append(byID[id], s)
		}
	}

	var patterns []*steps.Step
	for _, r := range doc.PatternSteps {
		s, err := DecodeStep(r)
		if err != nil {
			warn(r, err)
			doc.heldPatterns = append(doc.heldPatterns, r)
			continue
		}
		check(s)
		patterns = append(patterns, s)
	}
	return byID, patterns, problems
}
