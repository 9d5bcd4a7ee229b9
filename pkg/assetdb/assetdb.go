package assetdb

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/logging"
)

// MetaExt is the extension of the sidecar file next to each asset
const MetaExt = ".meta"

// Database is the set of asset operations steps depend on
type Database interface {
	// Exists reports whether an asset or folder exists
	Exists(assetPath string) bool
	// IsFolder reports whether assetPath is an existing folder
	IsFolder(assetPath string) bool
	// CreateFolders creates folder and its parents, reporting whether
	// anything was created
	CreateFolders(folder string) (bool, error)
	// Move moves an asset into folder and returns the new path
	Move(assetPath, folder string) (string, error)
	// Rename changes the file name of an asset, keeping its extension,
	// and returns the new path
	Rename(assetPath, newName string) (string, error)
	// UniquePath returns assetPath, or the first "name N.ext" variant
	// that does not exist yet
	UniquePath(assetPath string) string
	// WriteAsset creates or replaces an asset
	WriteAsset(assetPath string, data []byte) error
	// ReadAsset returns the content of an asset
	ReadAsset(assetPath string) ([]byte, error)
	// List returns the assets directly inside folder, optionally filtered
	// by extension, sorted by path
	List(folder string, exts ...string) ([]string, error)
}

type aferoDB struct {
	fs     afero.Fs
	logger zerolog.Logger
}

// New creates a database on top of fs. Asset paths are resolved relative to
// the root of fs.
func New(fs afero.Fs) Database {
	return &aferoDB{fs: fs, logger: logging.GetLogger("assetdb")}
}

// NewOS creates a database rooted at projectRoot on the real filesystem
func NewOS(projectRoot string) Database {
	return New(afero.NewBasePathFs(afero.NewOsFs(), projectRoot))
}

func native(assetPath string) string {
	return filepath.FromSlash(strings.TrimSuffix(strings.ReplaceAll(assetPath, `\`, "/"), "/"))
}

func clean(assetPath string) string {
	return strings.TrimSuffix(strings.ReplaceAll(assetPath, `\`, "/"), "/")
}

func (db *aferoDB) Exists(assetPath string) bool {
	ok, err := afero.Exists(db.fs, native(assetPath))
	return err == nil && ok
}

func (db *aferoDB) IsFolder(assetPath string) bool {
	ok, err := afero.DirExists(db.fs, native(assetPath))
	return err == nil && ok
}

func (db *aferoDB) CreateFolders(folder string) (bool, error) {
	if db.IsFolder(folder) {
		return false, nil
	}
	if err := db.fs.MkdirAll(native(folder), 0755); err != nil {
		return false, errors.Wrapf(err, errors.ErrAssetCreate, "create folder %s", folder)
	}
	db.logger.Debug().Str("folder", folder).Msg("Created folder")
	return true, nil
}

func (db *aferoDB) Move(assetPath, folder string) (string, error) {
	src := clean(assetPath)
	if !db.Exists(src) {
		return "", errors.Newf(errors.ErrAssetNotFound, "asset %s does not exist", src)
	}
	dst := path.Join(clean(folder), path.Base(src))
	if dst == src {
		return src, nil
	}
	if db.Exists(dst) {
		return "", errors.Newf(errors.ErrAssetMove, "cannot move %s: %s already exists", src, dst).
			WithDetail("destination", dst)
	}
	if !db.IsFolder(folder) {
		return "", errors.Newf(errors.ErrAssetMove, "cannot move %s: folder %s does not exist", src, folder)
	}
	if err := db.relocate(src, dst); err != nil {
		return "", errors.Wrapf(err, errors.ErrAssetMove, "move %s to %s", src, dst)
	}
	db.logger.Debug().Str("from", src).Str("to", dst).Msg("Moved asset")
	return dst, nil
}

func (db *aferoDB) Rename(assetPath, newName string) (string, error) {
	src := clean(assetPath)
	if newName == "" || strings.ContainsAny(newName, `/\`) {
		return "", errors.Newf(errors.ErrAssetRename, "invalid asset name %q", newName)
	}
	if !db.Exists(src) {
		return "", errors.Newf(errors.ErrAssetNotFound, "asset %s does not exist", src)
	}
	dst := path.Join(path.Dir(src), newName+path.Ext(src))
	if dst == src {
		return src, nil
	}
	if db.Exists(dst) {
		return "", errors.Newf(errors.ErrAssetRename, "cannot rename %s: %s already exists", src, dst).
			WithDetail("destination", dst)
	}
	if err := db.relocate(src, dst); err != nil {
		return "", errors.Wrapf(err, errors.ErrAssetRename, "rename %s to %s", src, dst)
	}
	db.logger.Debug().Str("from", src).Str("to", dst).Msg("Renamed asset")
	return dst, nil
}

// relocate moves an asset together with its meta file
func (db *aferoDB) relocate(src, dst string) error {
	if err := db.fs.Rename(native(src), native(dst)); err != nil {
		return err
	}
	if db.Exists(src + MetaExt) {
		if err := db.fs.Rename(native(src+MetaExt), native(dst+MetaExt)); err != nil {
			return fmt.Errorf("moving meta file: %w", err)
		}
	}
	return nil
}

func (db *aferoDB) UniquePath(assetPath string) string {
	p := clean(assetPath)
	if !db.Exists(p) {
		return p
	}
	dir, base := path.Split(p)
	ext := path.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s%s %d%s", dir, stem, i, ext)
		if !db.Exists(candidate) {
			return candidate
		}
	}
}

func (db *aferoDB) WriteAsset(assetPath string, data []byte) error {
	p := clean(assetPath)
	if dir := path.Dir(p); dir != "." {
		if _, err := db.CreateFolders(dir); err != nil {
			return err
		}
	}
	if err := afero.WriteFile(db.fs, native(p), data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrAssetCreate, "write asset %s", p)
	}
	return nil
}

func (db *aferoDB) ReadAsset(assetPath string) ([]byte, error) {
	p := clean(assetPath)
	data, err := afero.ReadFile(db.fs, native(p))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrAssetNotFound, "asset %s does not exist", p)
		}
		return nil, errors.Wrapf(err, errors.ErrInternal, "read asset %s", p)
	}
	return data, nil
}

func (db *aferoDB) List(folder string, exts ...string) ([]string, error) {
	dir := clean(folder)
	entries, err := afero.ReadDir(db.fs, native(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrAssetNotFound, "folder %s does not exist", dir)
		}
		return nil, errors.Wrapf(err, errors.ErrInternal, "list %s", dir)
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), MetaExt) {
			continue
		}
		if len(exts) > 0 && !hasExt(e.Name(), exts) {
			continue
		}
		out = append(out, path.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

func hasExt(name string, exts []string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range exts {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
