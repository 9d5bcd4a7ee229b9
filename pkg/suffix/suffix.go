// Package suffix normalizes name suffixes such as "_normal" or " Glow" to a
// canonical spelling and classifies textures by their content.
package suffix

import (
	"regexp"
	"strings"
	"sync"
)

// Category is the semantic meaning of a suffix
type Category string

// Suffix categories
const (
	Diffuse             Category = "Diffuse"
	Specular            Category = "Specular"
	Metallic            Category = "Metallic"
	NormalMap           Category = "NormalMap"
	HeightMap           Category = "HeightMap"
	OcclusionMap        Category = "OcclusionMap"
	EmissionMap         Category = "EmissionMap"
	Material            Category = "Material"
	Animation           Category = "Animation"
	AnimationController Category = "AnimationController"
	Other               Category = "Other"
)

// DefaultSeparator joins a name and its suffix
const DefaultSeparator = "_"

// Rule maps variant spellings to one canonical suffix
type Rule struct {
	Canonical string   `koanf:"canonical" mapstructure:"canonical" toml:"canonical" yaml:"canonical"`
	Variants  []string `koanf:"variants" mapstructure:"variants" toml:"variants" yaml:"variants"`
	Category  Category `koanf:"category" mapstructure:"category" toml:"category" yaml:"category"`
}

// DefaultRules returns the built-in rule table. Order matters: rules are
// applied one after the other on the output of the previous rule.
func DefaultRules() []Rule {
	return []Rule{
		{Canonical: "D", Variants: []string{"D", "Diffuse", "Surface", "Skin", "Albedo", "AlbedoMap", "Color"}, Category: Diffuse},
		{Canonical: "S", Variants: []string{"S", "Specular", "Roughness", "RoughnessMap"}, Category: Specular},
		{Canonical: "M", Variants: []string{"M", "Metallic", "Glossiness"}, Category: Metallic},
		{Canonical: "N", Variants: []string{"N", "Normal", "NormalMap", "Bump", "BumpMap"}, Category: NormalMap},
		{Canonical: "H", Variants: []string{"H", "Height", "HeightMap", "ParallaxMap", "Displacement"}, Category: HeightMap},
		{Canonical: "AO", Variants: []string{"AO", "Occlusion", "O", "Ambient Occlusion"}, Category: OcclusionMap},
		{Canonical: "E", Variants: []string{"E", "Glow", "GlowMap", "Emission", "EmissionMap"}, Category: EmissionMap},
		{Canonical: "Mat", Variants: []string{"Mat", "Material"}, Category: Material},
		{Canonical: "Anim", Variants: []string{"Anim", "Animation"}, Category: Animation},
		{Canonical: "AnimCtrl", Variants: []string{"AnimCtrl", "Animation Controller", "AnimationController"}, Category: AnimationController},
	}
}

// DefaultSeparatorVariations are the separators recognized in front of a
// suffix variant
func DefaultSeparatorVariations() []string {
	return []string{"_", ".", " ", "-"}
}

// Table is an ordered rule table plus separator settings
type Table struct {
	Separator           string   `mapstructure:"separator" toml:"separator" yaml:"separator"`
	SeparatorVariations []string `mapstructure:"separator_variations" toml:"separator_variations" yaml:"separator_variations"`
	Rules               []Rule   `mapstructure:"rules" toml:"rules" yaml:"rules"`

	mu       sync.Mutex
	compiled map[bool][]*regexp.Regexp
}

// DefaultTable returns a table with the built-in rules and separators
func DefaultTable() *Table {
	return &Table{
		Separator:           DefaultSeparator,
		SeparatorVariations: DefaultSeparatorVariations(),
		Rules:               DefaultRules(),
	}
}

// RestoreDefaults resets the rules and separators to the built-in ones
func (t *Table) RestoreDefaults() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Separator = DefaultSeparator
	t.SeparatorVariations = DefaultSeparatorVariations()
	t.Rules = DefaultRules()
	t.compiled = nil
}

// Invalidate drops compiled expressions after the rules were edited
func (t *Table) Invalidate() {
	t.mu.Lock()
	t.compiled = nil
	t.mu.Unlock()
}

// Resolve rewrites a trailing suffix variant of name to its canonical form.
// Every rule runs in table order on the result of the previous one. A result
// that would be blank returns name unchanged.
func (t *Table) Resolve(name string, ignoreCase bool) string {
	resolved := name
	for i, re := range t.expressions(ignoreCase) {
		if re == nil {
			continue
		}
		resolved = re.ReplaceAllLiteralString(resolved, t.Separator+t.Rules[i].Canonical)
	}
	if strings.TrimSpace(resolved) == "" {
		return name
	}
	return resolved
}

// HasAnySuffix reports whether name already ends in separator + canonical
// suffix for any rule
func (t *Table) HasAnySuffix(name string, ignoreCase bool) bool {
	for _, r := range t.Rules {
		if r.Canonical == "" {
			continue
		}
		want := t.Separator + r.Canonical
		if ignoreCase {
			if strings.HasSuffix(strings.ToLower(name), strings.ToLower(want)) {
				return true
			}
		} else if strings.HasSuffix(name, want) {
			return true
		}
	}
	return false
}

// SuffixFor returns the canonical suffix of the first rule with category c,
// or "" when no rule has it
func (t *Table) SuffixFor(c Category) string {
	for _, r := range t.Rules {
		if r.Category == c {
			return r.Canonical
		}
	}
	return ""
}

// CategoryOf returns the category of the canonical suffix name ends in
func (t *Table) CategoryOf(name string) (Category, bool) {
	for _, r := range t.Rules {
		if r.Canonical != "" && strings.HasSuffix(name, t.Separator+r.Canonical) {
			return r.Category, true
		}
	}
	return Other, false
}

func (t *Table) expressions(ignoreCase bool) []*regexp.Regexp {
	t.mu.Lock()
	defer t.mu.Unlock()

	if exprs, ok := t.compiled[ignoreCase]; ok {
		return exprs
	}

	sep := separatorExpr(t.SeparatorVariations, t.Separator)
	exprs := make([]*regexp.Regexp, len(t.Rules))
	for i, r := range t.Rules {
		alt := alternation(r.Variants)
		if alt == "" {
			continue
		}
		expr := sep + alt + "$"
		if ignoreCase {
			expr = "(?i)" + expr
		}
		exprs[i] = regexp.MustCompile(expr)
	}

	if t.compiled == nil {
		t.compiled = make(map[bool][]*regexp.Regexp, 2)
	}
	t.compiled[ignoreCase] = exprs
	return exprs
}

func separatorExpr(variations []string, fallback string) string {
	if len(variations) == 0 && fallback != "" {
		variations = []string{fallback}
	}
	return alternation(variations)
}

// alternation builds a non-capturing group of quoted alternatives
func alternation(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(v))
	}
	if len(quoted) == 0 {
		return ""
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}
