// Package matcher decides whether a step target applies to an imported
// object, one of its sub-objects, or a folder.
package matcher

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/importsteps/pkg/keywords"
	"github.com/arthur-debert/importsteps/pkg/logging"
	"github.com/arthur-debert/importsteps/pkg/paths"
	"github.com/arthur-debert/importsteps/pkg/pattern"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// Candidate is the identity of an imported object
type Candidate struct {
	ID    string
	Path  string
	Types []types.TypeTag
}

// Matcher evaluates targets against candidates
type Matcher struct {
	compiler     *pattern.Compiler
	hierarchy    *types.Hierarchy
	keywords     keywords.Keywords
	root         string
	folderExists func(string) bool
	logger       zerolog.Logger
}

// Option configures a Matcher
type Option func(*Matcher)

// WithRoot sets the asset root folder used for folder normalization
func WithRoot(root string) Option {
	return func(m *Matcher) { m.root = root }
}

// WithFolderExists trims folder target paths to folders that exist
func WithFolderExists(fn func(string) bool) Option {
	return func(m *Matcher) { m.folderExists = fn }
}

// New creates a Matcher
func New(compiler *pattern.Compiler, hierarchy *types.Hierarchy, kw keywords.Keywords, opts ...Option) *Matcher {
	m := &Matcher{
		compiler:  compiler,
		hierarchy: hierarchy,
		keywords:  kw,
		root:      paths.DefaultRoot,
		logger:    logging.GetLogger("matcher"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Hierarchy returns the type hierarchy used for type checks
func (m *Matcher) Hierarchy() *types.Hierarchy { return m.hierarchy }

// Keywords returns the placeholder spellings
func (m *Matcher) Keywords() keywords.Keywords { return m.keywords }

// Compiler returns the pattern compiler
func (m *Matcher) Compiler() *pattern.Compiler { return m.compiler }

// Matches reports whether target applies to c.
//
// Id-targets require an equal id. Pattern-targets require the compiled path
// pattern to match c.Path. Both require at least one of c.Types to be, or
// descend from, a declared type, so a target without types matches nothing.
func (m *Matcher) Matches(target types.Target, c Candidate) bool {
	if !target.CheckType(m.hierarchy, c.Types...) {
		return false
	}

	if target.IsIDTarget() {
		return c.ID == target.StableID
	}

	return m.compiler.Compile(target.PathPattern).Matches(c.Path)
}

// IsSubAssetTarget reports whether the sub-object subName of type subType
// inside assetPath is selected by the target's sub-asset pattern. Keywords
// in the pattern are resolved against the sub-object first. A pattern that
// resolves to blank never matches.
func (m *Matcher) IsSubAssetTarget(target types.Target, subName, assetPath string, subType types.TypeTag) bool {
	resolved := m.keywords.Resolve(target.SubAssetMatch, assetPath, subName, subType)
	if strings.TrimSpace(resolved) == "" {
		m.logger.Trace().Str("asset", assetPath).Str("sub_asset", subName).Msg("Blank sub-asset pattern never matches")
		return false
	}

	if !target.CheckType(m.hierarchy, subType) {
		return false
	}

	return m.compiler.Compile(resolved).Matches(subName)
}

// FolderTargetPath returns the folder a pattern-target originates from: the
// literal part of its pattern up to the folder holding the first wildcard,
// in normalized folder form. Id-targets have no folder.
func (m *Matcher) FolderTargetPath(target types.Target) string {
	if target.IsIDTarget() {
		return ""
	}

	p := pattern.Normalize(target.PathPattern)
	folder := p
	if idx, tok := m.firstWildcard(p); idx >= 0 {
		prefix := p[:idx]
		if strings.HasPrefix(tok, pattern.Separator) {
			folder = prefix
		} else if cut := strings.LastIndex(prefix, pattern.Separator); cut >= 0 {
			folder = prefix[:cut]
		} else {
			folder = ""
		}
	}

	if m.folderExists != nil {
		return paths.ExistingSubPath(folder, m.root, m.folderExists)
	}
	return paths.NormalizeAssetPath(folder, m.root)
}

// IsFolderTarget reports whether folder is the folder the target originates
// from. Both sides are normalized so the result does not depend on trailing
// separators or slash direction.
func (m *Matcher) IsFolderTarget(target types.Target, folder string) bool {
	if target.IsIDTarget() {
		return false
	}
	return paths.NormalizeAssetPath(folder, m.root) == paths.NormalizeAssetPath(m.FolderTargetPath(target), m.root)
}

func (m *Matcher) firstWildcard(p string) (int, string) {
	w := m.compiler.Wildcards()
	idx, tok := -1, ""
	for _, candidate := range []string{w.MultipleFolder, w.FileOrFolder} {
		if candidate == "" {
			continue
		}
		if i := strings.Index(p, candidate); i >= 0 && (idx < 0 || i < idx) {
			idx, tok = i, candidate
		}
	}
	return idx, tok
}
