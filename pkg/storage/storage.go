// Package storage persists the step collections and suffix settings in
// one state file. The format follows the file extension: .yaml and .yml
// use YAML, anything else TOML.
package storage

import (
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/logging"
)

// DefaultPath is where the state file lives, relative to the project root
const DefaultPath = "ProjectSettings/importsteps.toml"

// Format is the encoding of a state file
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFor picks the format from the file extension
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// File reads and writes one state file
type File struct {
	fs     afero.Fs
	path   string
	format Format
	logger zerolog.Logger
}

// New creates a state file handle on fs
func New(fs afero.Fs, path string) *File {
	if path == "" {
		path = DefaultPath
	}
	return &File{
		fs:     fs,
		path:   path,
		format: FormatFor(path),
		logger: logging.GetLogger("storage").With().Str("path", path).Logger(),
	}
}

// Path returns the state file path
func (f *File) Path() string { return f.path }

// Format returns the encoding used
func (f *File) Format() Format { return f.format }

// Exists reports whether the state file is present
func (f *File) Exists() bool {
	ok, err := afero.Exists(f.fs, f.path)
	return err == nil && ok
}

// Load reads and decodes the state file
func (f *File) Load() (*Document, error) {
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "state file %s does not exist", f.path)
		}
		return nil, errors.Wrapf(err, errors.ErrStorageRead, "read state file %s", f.path)
	}

	doc := &Document{}
	switch f.format {
	case FormatYAML:
		err = yaml.Unmarshal(data, doc)
	default:
		err = toml.Unmarshal(data, doc)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "parse state file %s", f.path).
			WithDetail("format", string(f.format))
	}
	if doc.IDSteps == nil {
		doc.IDSteps = make(map[string][]StepRecord)
	}

	f.logger.Debug().
		Int("version", doc.Version).
		Int("steps", doc.StepCount()).
		Msg("State file loaded")
	return doc, nil
}

// LoadOrCreate loads the state file, writing fallback first when it does
// not exist yet
func (f *File) LoadOrCreate(fallback *Document) (*Document, bool, error) {
	if !f.Exists() {
		if err := f.Save(fallback); err != nil {
			return nil, false, err
		}
		f.logger.Info().Msg("Created state file")
		return fallback, true, nil
	}
	doc, err := f.Load()
	return doc, false, err
}

// Save encodes doc and replaces the state file
func (f *File) Save(doc *Document) error {
	if doc.Version == 0 {
		doc.Version = CurrentVersion
	}

	var (
		data []byte
		err  error
	)
	switch f.format {
	case FormatYAML:
		data, err = yaml.Marshal(doc)
	default:
		data, err = toml.Marshal(doc)
	}
	if err != nil {
		return errors.Wrap(err, errors.ErrStorageWrite, "encode state")
	}

	if dir := filepath.Dir(f.path); dir != "." && dir != "" {
		if err := f.fs.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, errors.ErrStorageWrite, "create state directory %s", dir)
		}
	}

	tmp := f.path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrStorageWrite, "write state file %s", tmp)
	}
	if err := f.fs.Rename(tmp, f.path); err != nil {
		_ = f.fs.Remove(tmp)
		return errors.Wrapf(err, errors.ErrStorageWrite, "replace state file %s", f.path)
	}

	f.logger.Debug().Int("steps", doc.StepCount()).Msg("State file saved")
	return nil
}
