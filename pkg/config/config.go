package config

import (
	"github.com/arthur-debert/importsteps/pkg/errors"
	"github.com/arthur-debert/importsteps/pkg/keywords"
	"github.com/arthur-debert/importsteps/pkg/pattern"
	"github.com/arthur-debert/importsteps/pkg/suffix"
	"github.com/arthur-debert/importsteps/pkg/types"
)

// Config is the merged configuration
type Config struct {
	// ProjectRoot is the folder holding the asset root and the state file
	ProjectRoot string `koanf:"project_root"`
	// RootFolder is the asset root every asset path starts with
	RootFolder string `koanf:"root_folder"`
	// StateFile is the step state path, relative to ProjectRoot
	StateFile string `koanf:"state_file"`
	// DebugHooks raises lifecycle hook logging from debug to info
	DebugHooks       bool `koanf:"debug_hooks"`
	PatternCacheSize int  `koanf:"pattern_cache_size"`

	Wildcards pattern.Wildcards      `koanf:"wildcards"`
	Keywords  keywords.Keywords      `koanf:"keywords"`
	Analysis  suffix.AnalysisOptions `koanf:"analysis"`
	Suffix    SuffixConfig           `koanf:"suffix"`
	Types     TypesConfig            `koanf:"types"`
}

// SuffixConfig seeds the suffix table of a new state file
type SuffixConfig struct {
	Separator           string        `koanf:"separator"`
	SeparatorVariations []string      `koanf:"separator_variations"`
	Rules               []suffix.Rule `koanf:"rules"`
}

// TypesConfig extends the type hierarchy
type TypesConfig struct {
	// Parents maps a type tag to its parent tag
	Parents map[string]string `koanf:"parents"`
}

// SuffixTable builds a suffix table from the configuration
func (c *Config) SuffixTable() *suffix.Table {
	table := suffix.DefaultTable()
	if c.Suffix.Separator != "" {
		table.Separator = c.Suffix.Separator
	}
	if len(c.Suffix.SeparatorVariations) > 0 {
		table.SeparatorVariations = append([]string(nil), c.Suffix.SeparatorVariations...)
	}
	if len(c.Suffix.Rules) > 0 {
		table.Rules = append([]suffix.Rule(nil), c.Suffix.Rules...)
	}
	return table
}

// Hierarchy builds the type hierarchy: the built-in tags plus configured
// parents, which win on conflict
func (c *Config) Hierarchy() *types.Hierarchy {
	parents := make(map[types.TypeTag]types.TypeTag, len(types.DefaultParents)+len(c.Types.Parents))
	for child, parent := range types.DefaultParents {
		parents[child] = parent
	}
	for child, parent := range c.Types.Parents {
		parents[types.TypeTag(child)] = types.TypeTag(parent)
	}
	return types.NewHierarchy(parents)
}

// Validate reports settings that cannot work
func (c *Config) Validate() error {
	if c.RootFolder == "" {
		return errors.New(errors.ErrConfigValid, "root_folder must not be empty")
	}
	if c.StateFile == "" {
		return errors.New(errors.ErrConfigValid, "state_file must not be empty")
	}
	if c.PatternCacheSize < 0 {
		return errors.Newf(errors.ErrConfigValid, "pattern_cache_size must not be negative, got %d", c.PatternCacheSize)
	}
	if c.Analysis.SampleStep < 1 {
		return errors.Newf(errors.ErrConfigValid, "analysis.sample_step must be at least 1, got %d", c.Analysis.SampleStep)
	}
	for i, rule := range c.Suffix.Rules {
		if rule.Canonical == "" {
			return errors.Newf(errors.ErrConfigValid, "suffix rule %d has no canonical name", i)
		}
	}
	return nil
}

// Default returns the configuration built from the embedded defaults only
func Default() *Config {
	cfg, err := Load(Options{SkipUser: true, SkipProject: true, SkipEnv: true})
	if err != nil {
		panic(err)
	}
	return cfg
}
