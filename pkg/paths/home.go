package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/importsteps/pkg/errors"
)

// HomeDirectory returns the user's home directory, falling back to HOME
func HomeDirectory() (string, error) {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home, nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	return "", errors.New(errors.ErrInvalidInput, "unable to determine home directory")
}

// ExpandHome expands a leading ~ in a local filesystem path. Other paths,
// including ~user forms, are returned unchanged.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := HomeDirectory()
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "cannot expand %s", p)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
