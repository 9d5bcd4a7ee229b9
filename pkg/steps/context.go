package steps

import (
	"github.com/rs/zerolog"

	"github.com/arthur-debert/importsteps/pkg/assetdb"
	"github.com/arthur-debert/importsteps/pkg/matcher"
	"github.com/arthur-debert/importsteps/pkg/paths"
	"github.com/arthur-debert/importsteps/pkg/suffix"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// Deferrer queues a step for completion after the batch
type Deferrer interface {
	Defer(step *Step, assetPath string)
}

// ImportContext is what the host reports about the running import
type ImportContext struct {
	// AssetPath is the path the host is importing. It wins over the
	// object's own path when set.
	AssetPath string
	// Importer names the host importer, for example "model" or "texture"
	Importer string
}

// Context carries the collaborators steps need
type Context struct {
	DB       assetdb.Database
	Matcher  *matcher.Matcher
	Suffixes *suffix.Table
	Analysis suffix.AnalysisOptions
	Root     string
	Import   ImportContext
	Deferrer Deferrer
	Logger   zerolog.Logger
}

// Hierarchy returns the type hierarchy
func (c *Context) Hierarchy() *types.Hierarchy {
	return c.Matcher.Hierarchy()
}

// Resolve expands keywords in s
func (c *Context) Resolve(s, assetPath, objectName string, tag types.TypeTag) string {
	return c.Matcher.Keywords().Resolve(s, assetPath, objectName, tag)
}

// AssetPath returns the import path for obj
func (c *Context) AssetPath(obj *types.ImportedObject) string {
	if c.Import.AssetPath != "" {
		return c.Import.AssetPath
	}
	return obj.AssetPath
}

func (c *Context) root() string {
	if c.Root == "" {
		return paths.DefaultRoot
	}
	return c.Root
}
