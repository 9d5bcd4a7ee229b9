package keywords_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/arthur-debert/importsteps/pkg/keywords"
	"github.com/arthur-debert/importsteps/pkg/types"
)

func TestResolve(t *testing.T) {
	k := keywords.Defaults()
	asset := "Assets/Models/Orc.fbx"

	tests := []struct {
		name       string
		in         string
		objectName string
		tag        types.TypeTag
		want       string
	}{
		{"file name", "[[FILENAME]]_LOD0", "", "", "Orc_LOD0"},
		{"extension", "copy[[EXTENSION]]", "", "", "copy.fbx"},
		{"path", "[[PATH]]/Prefabs", "", "", "Assets/Models/Prefabs"},
		{"object name", "[[OBJECTNAME]]_mesh", "Body", "", "Body_mesh"},
		{"object name falls back to file name", "[[OBJECTNAME]]", "", "", "Orc"},
		{"type", "[[FILENAME]]_[[TYPE]]", "", types.TypeMesh, "Orc_Mesh"},
		{"type left alone without tag", "[[TYPE]]", "", "", "[[TYPE]]"},
		{"no keywords", "Hero", "", "", "Hero"},
		{"empty", "", "", "", ""},
		{"repeated", "[[FILENAME]][[FILENAME]]", "", "", "OrcOrc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, k.Resolve(tt.in, asset, tt.objectName, tt.tag))
		})
	}
}

func TestResolveCustomKeywords(t *testing.T) {
	k := keywords.Defaults()
	k.FileName = "%name%"
	k.Path = ""

	assert.Equal(t, "Orc [[PATH]]", k.Resolve("%name% [[PATH]]", "Assets/Orc.fbx", "", ""))
}

func TestHelpMentionsEveryKeyword(t *testing.T) {
	k := keywords.Defaults()
	help := k.Help()
	for _, kw := range []string{k.ObjectName, k.FileName, k.Extension, k.Path, k.Type} {
		assert.Contains(t, help, kw)
	}
}
