package storage_test

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/pattern"
	"github.com/arthur-debert/importsteps/pkg/stepstore"
	"github.com/arthur-debert/importsteps/pkg/steps"
	"github.com/arthur-debert/importsteps/pkg/storage"
	"github.com/arthur-debert/importsteps/pkg/suffix"
	"github.com/arthur-debert/importsteps/pkg/types"
)

func sampleSnapshot(t *testing.T) stepstore.Snapshot {
	t.Helper()
	store := stepstore.New()

	rename := steps.NewRename()
	rename.RenameTo = "Hero"
	idStep := steps.New(types.NewIDTarget("G1", types.TypeGameObject), rename)
	idStep.Priority = 2

	move := steps.NewMove()
	move.MoveTo = "Assets/Models/"
	patternStep := steps.New(types.NewPatternTarget("Assets/Incoming/*.fbx"), move)
	patternStep.Enabled = false

	require.NoError(t, store.Add(idStep))
	require.NoError(t, store.Add(patternStep))
	return store.Snapshot()
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, storage.FormatTOML, storage.FormatFor("ProjectSettings/importsteps.toml"))
	assert.Equal(t, storage.FormatYAML, storage.FormatFor("state.YAML"))
	assert.Equal(t, storage.FormatYAML, storage.FormatFor("state.yml"))
	assert.Equal(t, storage.FormatTOML, storage.FormatFor("state"))
}

func TestSaveAndLoadPreservesSteps(t *testing.T) {
	for _, path := range []string{"ProjectSettings/importsteps.toml", "ProjectSettings/importsteps.yaml"} {
		t.Run(path, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			file := storage.New(fs, path)

			doc := storage.DefaultDocument(pattern.DefaultWildcards(), suffix.DefaultTable())
			snap := sampleSnapshot(t)
			require.NoError(t, storage.EncodeSnapshot(doc, snap))
			require.NoError(t, file.Save(doc))
			assert.True(t, file.Exists())

			loaded, err := file.Load()
			require.NoError(t, err)
			assert.Equal(t, storage.CurrentVersion, loaded.Version)
			assert.Equal(t, pattern.DefaultWildcards(), loaded.Wildcards)
			assert.Equal(t, suffix.DefaultRules(), loaded.Suffixes.Rules)

			byID, patterns, problems := storage.DecodeSteps(loaded, types.DefaultHierarchy(), zerolog.Nop())
			require.Empty(t, problems)
			require.Len(t, byID["G1"], 1)
			require.Len(t, patterns, 1)

			hero := byID["G1"][0]
			assert.Equal(t, snap.ByID["G1"][0].ID, hero.ID)
			assert.Equal(t, 2, hero.Priority)
			assert.Equal(t, "Hero", hero.Params.(*steps.Rename).RenameTo)
			assert.Equal(t, []types.TypeTag{types.TypeGameObject}, hero.Target.Types)

			mv := patterns[0]
			assert.False(t, mv.Enabled)
			assert.Equal(t, "Assets/Incoming/*.fbx", mv.Target.PathPattern)
			assert.Equal(t, "Assets/Models/", mv.Params.(*steps.Move).MoveTo)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := storage.New(afero.NewMemMapFs(), "").Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestLoadInvalidFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "state.toml", []byte("version = = 1"), 0644))

	_, err := storage.New(fs, "state.toml").Load()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoadOrCreateWritesFallback(t *testing.T) {
	fs := afero.NewMemMapFs()
	file := storage.New(fs, "")
	fallback := storage.DefaultDocument(pattern.DefaultWildcards(), suffix.DefaultTable())

	doc, created, err := file.LoadOrCreate(fallback)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Same(t, fallback, doc)
	assert.Equal(t, storage.DefaultPath, file.Path())

	_, created, err = file.LoadOrCreate(fallback)
	require.NoError(t, err)
	assert.False(t, created)

	tmp, _ := afero.Exists(fs, storage.DefaultPath+".tmp")
	assert.False(t, tmp)
}

func TestDecodeSkipsUnknownKindsAndKeepsUnknownTypes(t *testing.T) {
	doc := &storage.Document{
		IDSteps: map[string][]storage.StepRecord{
			"G7": {{ID: "a", Kind: "rename", Enabled: true, Target: storage.TargetRecord{Types: []string{"GameObject"}}}},
		},
		PatternSteps: []storage.StepRecord{
			{ID: "b", Kind: "teleport", Target: storage.TargetRecord{Path: "Assets/**"}},
			{ID: "c", Kind: "unify_suffix", Target: storage.TargetRecord{Path: "Assets/**", Types: []string{"Hologram"}},
				Params: map[string]string{"ignore_casing": "false", "removed_field": "x"}},
		},
	}

	byID, patterns, problems := storage.DecodeSteps(doc, types.DefaultHierarchy(), zerolog.Nop())

	require.Len(t, problems, 1)
	assert.True(t, errors.IsErrorCode(problems[0], errors.ErrUnknownKind))

	require.Len(t, byID["G7"], 1)
	assert.Equal(t, "G7", byID["G7"][0].Target.StableID)

	require.Len(t, patterns, 1)
	assert.Equal(t, []types.TypeTag{"Hologram"}, patterns[0].Target.Types)
	assert.False(t, patterns[0].Params.(*steps.UnifySuffix).IgnoreCasing)
}

func TestUndecodableRecordsAreWrittenBack(t *testing.T) {
	legacy := storage.StepRecord{ID: "old", Kind: "legacy_kind", Target: storage.TargetRecord{Path: "Assets/**"}}
	orphan := storage.StepRecord{Kind: "rename", Target: storage.TargetRecord{Types: []string{"GameObject"}}}
	doc := &storage.Document{
		IDSteps:      map[string][]storage.StepRecord{"G9": {orphan}},
		PatternSteps: []storage.StepRecord{legacy},
	}

	byID, patterns, problems := storage.DecodeSteps(doc, types.DefaultHierarchy(), zerolog.Nop())
	assert.Empty(t, byID["G9"])
	assert.Empty(t, patterns)
	assert.Len(t, problems, 2)
	assert.Equal(t, 2, doc.Held())

	snap := sampleSnapshot(t)
	require.NoError(t, storage.EncodeSnapshot(doc, snap))
	require.Len(t, doc.PatternSteps, 2)
	assert.Equal(t, snap.Patterns[0].ID, doc.PatternSteps[0].ID)
	assert.Equal(t, legacy, doc.PatternSteps[1])
	assert.Equal(t, []storage.StepRecord{orphan}, doc.IDSteps["G9"])
	assert.Len(t, doc.IDSteps["G1"], 1)

	// a second encode must not duplicate them
	require.NoError(t, storage.EncodeSnapshot(doc, snap))
	assert.Len(t, doc.PatternSteps, 2)

	doc.DropHeld()
	require.NoError(t, storage.EncodeSnapshot(doc, snap))
	assert.Len(t, doc.PatternSteps, 1)
	assert.NotContains(t, doc.IDSteps, "G9")
}

func TestSuffixTableFallsBackToDefaults(t *testing.T) {
	doc := &storage.Document{Suffixes: storage.SuffixSettings{Separator: "-"}}
	table := doc.SuffixTable()
	assert.Equal(t, "-", table.Separator)
	assert.Equal(t, suffix.DefaultRules(), table.Rules)
	assert.Equal(t, suffix.DefaultSeparatorVariations(), table.SeparatorVariations)
}
