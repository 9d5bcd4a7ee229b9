package config

import (
	"embed"

	"github.com/arthur-debert/importsteps/pkg/errors"
)

// DefaultsFile is the name of the embedded defaults inside the binary
const DefaultsFile = "embedded/defaults.toml"

//go:embed embedded/defaults.toml
var embedded embed.FS

// DefaultContent returns the embedded defaults as written, comments included.
// `importsteps config defaults` prints it as a starting point for a project file.
func DefaultContent() string {
	return string(mustDefaults())
}

func mustDefaults() []byte {
	data, err := embedded.ReadFile(DefaultsFile)
	if err != nil {
		panic("config: embedded defaults missing: " + err.Error())
	}
	return data
}

// bytesSource feeds an in-memory document to a koanf parser. koanf only
// calls ReadBytes when a parser is given; Read is never reached.
type bytesSource []byte

func (b bytesSource) ReadBytes() ([]byte, error) { return b, nil }

func (b bytesSource) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "bytes source requires a parser")
}
