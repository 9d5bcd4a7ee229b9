package steps_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/steps"
)

func TestEncodeParams(t *testing.T) {
	fields, err := steps.EncodeParams(steps.NewCreatePrefab())
	require.NoError(t, err)

	assert.Equal(t, "/Prefabs/", fields["path"])
	assert.Equal(t, "true", fields["local_path"])
	assert.Equal(t, "[[FILENAME]]", fields["prefab_name"])
	assert.Equal(t, "-1", fields["align_y"])
	assert.Equal(t, "0", fields["align_x"])
	assert.Equal(t, "false", fields["make_static"])
}

func TestDecodeParamsIgnoresUnknownFields(t *testing.T) {
	p, err := steps.DecodeParams(steps.KindRename, map[string]string{
		"rename_to":   "Hero",
		"legacy_flag": "yes",
	})
	require.NoError(t, err)
	assert.Equal(t, &steps.Rename{RenameTo: "Hero"}, p)
}

func TestDecodeParamsKeepsDefaultsForMissingFields(t *testing.T) {
	p, err := steps.DecodeParams(steps.KindCreatePrefab, map[string]string{
		"make_static": "true",
		"align_x":     "0.5",
	})
	require.NoError(t, err)

	prefab := p.(*steps.CreatePrefab)
	assert.True(t, prefab.MakeStatic)
	assert.Equal(t, 0.5, prefab.AlignX)
	assert.Equal(t, -1.0, prefab.AlignY)
	assert.True(t, prefab.LocalPath)
	assert.Equal(t, "/Prefabs/", prefab.Path)
}

func TestDecodeParamsEmptyMapIsDefaults(t *testing.T) {
	p, err := steps.DecodeParams(steps.KindUnifySuffix, nil)
	require.NoError(t, err)
	assert.Equal(t, steps.NewUnifySuffix(), p)
}

func TestDecodeParamsBadValue(t *testing.T) {
	_, err := steps.DecodeParams(steps.KindPostprocessMesh, map[string]string{"align_x": "left"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestDecodeParamsUnknownKind(t *testing.T) {
	_, err := steps.DecodeParams("teleport", map[string]string{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnknownKind))
}

func TestEncodeDecodeKeepsEditedValues(t *testing.T) {
	mesh := &steps.PostprocessMesh{CenterPivot: true, AlignPivot: true, AlignZ: 1, ApplyScale: true}

	fields, err := steps.EncodeParams(mesh)
	require.NoError(t, err)
	p, err := steps.DecodeParams(steps.KindPostprocessMesh, fields)
	require.NoError(t, err)

	assert.Equal(t, mesh, p)
}
