// Package paths normalizes asset database paths.
//
// Asset paths always use forward slashes and live under a root folder
// ("Assets" by default). Folder paths carry a trailing separator.
package paths

import (
	"path"
	"strings"
)

// DefaultRoot is the asset database root folder
const DefaultRoot = "Assets"

// NormalizeAssetPath returns folder in canonical form: rooted under root,
// forward slashes only, a single trailing separator and no doubled
// separators. Empty input yields the root folder.
func NormalizeAssetPath(folder, root string) string {
	if root == "" {
		root = DefaultRoot
	}
	folder = strings.TrimSpace(strings.ReplaceAll(folder, `\`, "/"))
	if folder == "" {
		return root + "/"
	}
	if !strings.HasPrefix(folder, root) {
		folder = root + "/" + folder
	}
	return finish(folder)
}

// NormalizeLocalPath is NormalizeAssetPath for paths relative to an asset's
// own folder. The root is "/".
func NormalizeLocalPath(folder string) string {
	folder = strings.TrimSpace(strings.ReplaceAll(folder, `\`, "/"))
	if folder == "" {
		return "/"
	}
	if !strings.HasPrefix(folder, "/") {
		folder = "/" + folder
	}
	return finish(folder)
}

func finish(p string) string {
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}

// ExistingSubPath trims folder to its deepest prefix for which exists is
// true. The root folder is assumed to exist. A nil exists returns folder
// normalized.
func ExistingSubPath(folder, root string, exists func(string) bool) string {
	folder = NormalizeAssetPath(folder, root)
	if exists == nil {
		return folder
	}

	parts := strings.Split(strings.TrimSuffix(folder, "/"), "/")
	deepest := parts[0] + "/"
	for i := 2; i <= len(parts); i++ {
		candidate := strings.Join(parts[:i], "/")
		if !exists(candidate) {
			break
		}
		deepest = candidate + "/"
	}
	return deepest
}

// Dir returns the folder part of an asset path, without trailing separator
func Dir(assetPath string) string {
	dir := path.Dir(strings.ReplaceAll(assetPath, `\`, "/"))
	if dir == "." {
		return ""
	}
	return dir
}

// Base returns the file name of an asset path
func Base(assetPath string) string {
	return path.Base(strings.ReplaceAll(assetPath, `\`, "/"))
}

// Stem returns the file name without extension
func Stem(assetPath string) string {
	base := Base(assetPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// Ext returns the extension including the dot
func Ext(assetPath string) string {
	return path.Ext(Base(assetPath))
}
