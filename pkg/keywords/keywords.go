// Package keywords expands placeholders such as [[FILENAME]] against an
// asset path, a sub-object name and a type.
package keywords

import (
	"strings"

	"github.com/arthur-debert/importsteps/pkg/paths"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// Keywords holds the placeholder spellings
type Keywords struct {
	ObjectName string `koanf:"object_name" mapstructure:"object_name" toml:"object_name" yaml:"object_name"`
	FileName   string `koanf:"file_name" mapstructure:"file_name" toml:"file_name" yaml:"file_name"`
	Extension  string `koanf:"extension" mapstructure:"extension" toml:"extension" yaml:"extension"`
	Path       string `koanf:"path" mapstructure:"path" toml:"path" yaml:"path"`
	Type       string `koanf:"type" mapstructure:"type" toml:"type" yaml:"type"`
}

// Defaults returns the built-in placeholder spellings
func Defaults() Keywords {
	return Keywords{
		ObjectName: "[[OBJECTNAME]]",
		FileName:   "[[FILENAME]]",
		Extension:  "[[EXTENSION]]",
		Path:       "[[PATH]]",
		Type:       "[[TYPE]]",
	}
}

// Resolve replaces every placeholder in s.
//
// [[FILENAME]] is the file name without extension, [[EXTENSION]] the
// extension with its dot and [[PATH]] the folder of the asset. [[OBJECTNAME]]
// is objectName, or the file name when objectName is empty. [[TYPE]] is only
// replaced when tag is set.
func (k Keywords) Resolve(s, assetPath, objectName string, tag types.TypeTag) string {
	if s == "" {
		return s
	}
	stem := paths.Stem(assetPath)
	if objectName == "" {
		objectName = stem
	}

	pairs := []string{}
	add := func(keyword, value string) {
		if keyword != "" {
			pairs = append(pairs, keyword, value)
		}
	}
	add(k.ObjectName, objectName)
	add(k.FileName, stem)
	add(k.Extension, paths.Ext(assetPath))
	add(k.Path, paths.Dir(assetPath))
	if tag != "" {
		add(k.Type, string(tag))
	}

	return strings.NewReplacer(pairs...).Replace(s)
}

// Help describes every placeholder, one per line
func (k Keywords) Help() string {
	var b strings.Builder
	b.WriteString(k.ObjectName + " is replaced with the name of the sub asset, like a mesh name.\n")
	b.WriteString(k.FileName + " is replaced with the file name of the asset.\n")
	b.WriteString(k.Extension + " is replaced with the extension of the asset, including the dot.\n")
	b.WriteString(k.Path + " is replaced with the folder of the asset.\n")
	b.WriteString(k.Type + " is replaced with the type of the asset (Mesh, Texture, ...).\n")
	return b.String()
}
