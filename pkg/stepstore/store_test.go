package stepstore_test

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/stepstore"
	"github.com/arthur-debert/importsteps/pkg/steps"
	"github.com/arthur-debert/importsteps/pkg/types"
)

type countingPersister struct {
	calls int
	last  stepstore.Snapshot
	err   error
}

func (c *countingPersister) Persist(snap stepstore.Snapshot) error {
	c.calls++
	c.last = snap
	return c.err
}

func idStep(id string) *steps.Step {
	return steps.New(types.NewIDTarget(id, types.TypeGameObject), steps.NewRename())
}

func patternStep(p string) *steps.Step {
	return steps.New(types.NewPatternTarget(p), steps.NewUnifySuffix())
}

func TestAddRoutesByTarget(t *testing.T) {
	p := &countingPersister{}
	store := stepstore.New(stepstore.WithPersister(p))

	a := idStep("guid-1")
	b := idStep("guid-1")
	c := patternStep("Assets/**")

	require.NoError(t, store.Add(a))
	require.NoError(t, store.Add(b))
	require.NoError(t, store.Add(c))

	assert.Equal(t, []*steps.Step{a, b}, store.IDSteps("guid-1"))
	assert.Equal(t, []*steps.Step{c}, store.PatternSteps())
	assert.Equal(t, []string{"guid-1"}, store.IDs())
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, 3, p.calls)
	assert.Len(t, p.last.ByID["guid-1"], 2)
}

func TestAddRejectsDuplicatesAndEmptySteps(t *testing.T) {
	store := stepstore.New()
	a := idStep("guid-1")
	require.NoError(t, store.Add(a))

	err := store.Add(a)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	err = store.Add(nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	err = store.Add(&steps.Step{ID: "x"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Equal(t, 1, store.Len())
}

func TestAddDisablesStepWithoutTypes(t *testing.T) {
	store := stepstore.New()
	s := patternStep("Assets/**")
	s.Target.ClearAllTypes()

	err := store.Add(s)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
	assert.False(t, s.Enabled)
	assert.Equal(t, []*steps.Step{s}, store.PatternSteps())
}

func TestUpdateReportsStepLeftWithoutTypes(t *testing.T) {
	p := &countingPersister{}
	store := stepstore.New(stepstore.WithPersister(p))
	s := idStep("guid-1")
	require.NoError(t, store.Add(s))

	s.Target.ClearAllTypes()
	err := store.Update(s)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid), "got %v", err)
	assert.False(t, s.Enabled)
	assert.Equal(t, 2, p.calls)
	assert.Equal(t, []*steps.Step{s}, store.IDSteps("guid-1"))

	p.err = stderrors.New("disk full")
	err = store.Update(s)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStorageWrite), "storage failure wins, got %v", err)
}

func TestRemoveLastIDStepDropsKey(t *testing.T) {
	p := &countingPersister{}
	store := stepstore.New(stepstore.WithPersister(p))
	a := idStep("guid-1")
	require.NoError(t, store.Add(a))

	require.NoError(t, store.Remove(a))
	assert.Empty(t, store.IDs())
	assert.Empty(t, store.IDSteps("guid-1"))
	assert.Equal(t, 2, p.calls)
	assert.NotContains(t, p.last.ByID, "guid-1")
}

func TestRemoveKeepsOrderOfRemaining(t *testing.T) {
	store := stepstore.New()
	a, b, c := patternStep("A/*"), patternStep("B/*"), patternStep("C/*")
	for _, s := range []*steps.Step{a, b, c} {
		require.NoError(t, store.Add(s))
	}

	require.NoError(t, store.Remove(b))
	assert.Equal(t, []*steps.Step{a, c}, store.PatternSteps())
}

func TestRemoveMissingIsIntegrityError(t *testing.T) {
	p := &countingPersister{}
	store := stepstore.New(stepstore.WithPersister(p))
	a := patternStep("Assets/**")
	require.NoError(t, store.Add(a))

	err := store.Remove(patternStep("Assets/**"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIntegrity))
	assert.Equal(t, 1, store.Len())
	assert.Equal(t, 1, p.calls)

	// an id step is only looked up in the id collection
	moved := *a
	moved.Target = types.NewIDTarget("guid-9", types.TypeGameObject)
	err = store.Remove(&moved)
	assert.True(t, errors.IsErrorCode(err, errors.ErrIntegrity))
}

func TestUpdateMovesBetweenCollections(t *testing.T) {
	store := stepstore.New()
	s := patternStep("Assets/**")
	other := patternStep("Other/**")
	require.NoError(t, store.Add(s))
	require.NoError(t, store.Add(other))

	s.Target = types.NewIDTarget("guid-2", types.TypeTexture)
	require.NoError(t, store.Update(s))
	assert.Equal(t, []*steps.Step{other}, store.PatternSteps())
	assert.Equal(t, []*steps.Step{s}, store.IDSteps("guid-2"))

	s.Target = types.NewIDTarget("guid-3", types.TypeTexture)
	require.NoError(t, store.Update(s))
	assert.Empty(t, store.IDSteps("guid-2"))
	assert.Equal(t, []*steps.Step{s}, store.IDSteps("guid-3"))

	err := store.Update(patternStep("X"))
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestUpdateKeepsPosition(t *testing.T) {
	store := stepstore.New()
	a, b := patternStep("A/*"), patternStep("B/*")
	require.NoError(t, store.Add(a))
	require.NoError(t, store.Add(b))

	a.Priority = 4
	require.NoError(t, store.Update(a))
	assert.Equal(t, []*steps.Step{a, b}, store.PatternSteps())
}

func TestClearAndLoad(t *testing.T) {
	store := stepstore.New()
	a := idStep("guid-1")
	b := patternStep("Assets/**")

	store.Load(map[string][]*steps.Step{"guid-1": {a}}, []*steps.Step{b})
	assert.Equal(t, 2, store.Len())
	found, ok := store.Find(a.ID)
	assert.True(t, ok)
	assert.Same(t, a, found)

	require.NoError(t, store.Clear())
	assert.Equal(t, 0, store.Len())
	_, ok = store.Find(a.ID)
	assert.False(t, ok)
}

func TestPersistFailureIsStorageError(t *testing.T) {
	p := &countingPersister{err: stderrors.New("disk full")}
	store := stepstore.New(stepstore.WithPersister(p))

	err := store.Add(patternStep("Assets/**"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStorageWrite))
	assert.Equal(t, 1, store.Len())
}

func TestSnapshotIsACopy(t *testing.T) {
	store := stepstore.New()
	require.NoError(t, store.Add(idStep("b")))
	require.NoError(t, store.Add(idStep("a")))

	snap := store.Snapshot()
	assert.Equal(t, []string{"a", "b"}, snap.IDs)
	snap.ByID["a"] = nil
	assert.Len(t, store.IDSteps("a"), 1)
}
