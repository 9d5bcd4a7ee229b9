package paths_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/importsteps/pkg/paths"
)

func TestNormalizeAssetPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty is root", "", "Assets/"},
		{"whitespace is root", "   ", "Assets/"},
		{"adds root", "Models", "Assets/Models/"},
		{"adds trailing separator", "Assets/Models", "Assets/Models/"},
		{"keeps trailing separator", "Assets/Models/", "Assets/Models/"},
		{"backslashes", `Assets\Models\Orc`, "Assets/Models/Orc/"},
		{"collapses doubled separators", "Assets//Models///Orc", "Assets/Models/Orc/"},
		{"leading separator", "/Models", "Assets/Models/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := paths.NormalizeAssetPath(tt.in, "")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, paths.NormalizeAssetPath(got, ""), "normalization must be idempotent")
		})
	}
}

func TestNormalizeAssetPathCustomRoot(t *testing.T) {
	assert.Equal(t, "Content/Models/", paths.NormalizeAssetPath("Models", "Content"))
}

func TestNormalizeLocalPath(t *testing.T) {
	assert.Equal(t, "/", paths.NormalizeLocalPath(""))
	assert.Equal(t, "/Prefabs/", paths.NormalizeLocalPath("Prefabs"))
	assert.Equal(t, "/Prefabs/", paths.NormalizeLocalPath("//Prefabs"))
}

func TestExistingSubPath(t *testing.T) {
	existing := map[string]bool{"Assets/Models": true, "Assets/Models/Enemies": true}
	exists := func(p string) bool { return existing[p] }

	assert.Equal(t, "Assets/Models/Enemies/", paths.ExistingSubPath("Assets/Models/Enemies/Big", "", exists))
	assert.Equal(t, "Assets/Models/Enemies/", paths.ExistingSubPath("Assets/Models/Enemies", "", exists))
	assert.Equal(t, "Assets/", paths.ExistingSubPath("Assets/Textures/Rock", "", exists))
	assert.Equal(t, "Assets/Textures/Rock/", paths.ExistingSubPath("Assets/Textures/Rock", "", nil))
}

func TestFileParts(t *testing.T) {
	assert.Equal(t, "Assets/Models", paths.Dir(`Assets\Models\Orc.fbx`))
	assert.Equal(t, "", paths.Dir("Orc.fbx"))
	assert.Equal(t, "Orc.fbx", paths.Base("Assets/Models/Orc.fbx"))
	assert.Equal(t, "Orc", paths.Stem("Assets/Models/Orc.fbx"))
	assert.Equal(t, ".fbx", paths.Ext("Assets/Models/Orc.fbx"))
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	home, err := paths.HomeDirectory()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/game", filepath.Join(home, "game")},
		{"/abs/game", "/abs/game"},
		{"rel/game", "rel/game"},
		{"~other/game", "~other/game"},
		{"", ""},
	}
	for _, tt := range tests {
		got, err := paths.ExpandHome(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
