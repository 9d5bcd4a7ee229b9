package config

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"

	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/logging"
)

// EnvPrefix starts every environment override. A double underscore
// separates nesting levels: IMPORTSTEPS_WILDCARDS__FILE_OR_FOLDER.
const EnvPrefix = "IMPORTSTEPS_"

// ProjectFiles are the project config names, first found wins. Files ending
// in .yaml or .yml are parsed as YAML, everything else as TOML.
var ProjectFiles = []string{"importsteps.toml", ".importsteps.toml", "importsteps.yaml", ".importsteps.yaml"}

// Options controls which layers Load reads
type Options struct {
	// Fs is where config files are read from. Defaults to the OS.
	Fs afero.Fs
	// ProjectRoot is searched for a project config file. Defaults to ".".
	ProjectRoot string
	// UserFile overrides the user config path
	UserFile string
	// Overrides are applied last, keyed by dotted paths
	Overrides map[string]interface{}

	SkipUser    bool
	SkipProject bool
	SkipEnv     bool
}

// UserConfigPath returns the user config location under XDG_CONFIG_HOME
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "importsteps", "config.toml")
}

// Load merges the configuration layers and validates the result
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	root := opts.ProjectRoot
	if root == "" {
		root = "."
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(bytesSource(mustDefaults()), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	if opts.ProjectRoot != "" {
		if err := k.Set("project_root", opts.ProjectRoot); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to set project root")
		}
	}

	// 2. User config
	if !opts.SkipUser {
		path := opts.UserFile
		if path == "" {
			path = UserConfigPath()
		}
		if err := loadFile(k, fs, path); err != nil {
			return nil, err
		}
	}

	// 3. Project config, first name found
	if !opts.SkipProject {
		for _, name := range ProjectFiles {
			path := filepath.Join(root, name)
			if ok, _ := afero.Exists(fs, path); ok {
				if err := loadFile(k, fs, path); err != nil {
					return nil, err
				}
				break
			}
		}
	}

	// 4. Environment
	if !opts.SkipEnv {
		err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
		}
	}

	// 5. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("project_root", cfg.ProjectRoot).
		Str("state_file", cfg.StateFile).
		Int("suffix_rules", len(cfg.Suffix.Rules)).
		Msg("Configuration loaded")
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, fs afero.Fs, path string) error {
	ok, err := afero.Exists(fs, path)
	if err != nil || !ok {
		return nil
	}

	var provider koanf.Provider
	if _, onDisk := fs.(*afero.OsFs); onDisk {
		provider = file.Provider(path)
	} else {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return errors.Wrapf(err, errors.ErrConfigLoad, "failed to read config from %s", path)
		}
		provider = bytesSource(data)
	}

	if err := k.Load(provider, parserFor(path)); err != nil {
		return errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	logger := logging.GetLogger("config")
	logger.Debug().Str("path", path).Msg("Loaded config file")
	return nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// envKey turns IMPORTSTEPS_SUFFIX__SEPARATOR into suffix.separator
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(key, "__", ".")
}
