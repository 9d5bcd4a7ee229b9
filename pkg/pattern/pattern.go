// Package pattern compiles user path patterns with two wildcard tokens into
// anchored regular expressions.
//
// The single-segment token matches one path component and never crosses a
// separator. The multi-segment token matches any run of components. Every
// other character is literal. A pattern ending in a separator matches any
// direct child of that folder.
package pattern

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/importsteps/pkg/logging"
)

const (
	// Separator is the only path separator patterns and paths use after
	// normalization.
	Separator = "/"

	// SegmentClass matches a single file or folder name
	SegmentClass = `[\w\-\. ]+`
	// MultiSegmentClass matches names joined by separators
	MultiSegmentClass = `[\w\-\. /]+`

	// DefaultFileOrFolder is the default single-segment wildcard
	DefaultFileOrFolder = "*"
	// DefaultMultipleFolder is the default multi-segment wildcard
	DefaultMultipleFolder = "/**"

	defaultCacheSize = 256
)

// Wildcards holds the two configurable wildcard tokens
type Wildcards struct {
	FileOrFolder   string `koanf:"file_or_folder" mapstructure:"file_or_folder" toml:"file_or_folder" yaml:"file_or_folder"`
	MultipleFolder string `koanf:"multiple_folder" mapstructure:"multiple_folder" toml:"multiple_folder" yaml:"multiple_folder"`
}

// DefaultWildcards returns "*" and "/**"
func DefaultWildcards() Wildcards {
	return Wildcards{FileOrFolder: DefaultFileOrFolder, MultipleFolder: DefaultMultipleFolder}
}

// Valid reports whether both tokens are usable
func (w Wildcards) Valid() bool {
	return w.FileOrFolder != "" && w.MultipleFolder != ""
}

// Pattern is a compiled path pattern
type Pattern struct {
	source   string
	re       *regexp.Regexp
	matchAll bool
}

// Matches reports whether path matches the whole pattern. Backslashes in
// path are treated as separators.
func (p *Pattern) Matches(path string) bool {
	if p.matchAll {
		return true
	}
	return p.re.MatchString(Normalize(path))
}

// Source returns the pattern as written
func (p *Pattern) Source() string { return p.source }

// MatchesEverything is true for patterns compiled under an invalid wildcard
// configuration
func (p *Pattern) MatchesEverything() bool { return p.matchAll }

// Regexp returns the compiled expression, or "" for match-all patterns
func (p *Pattern) Regexp() string {
	if p.matchAll {
		return ""
	}
	return p.re.String()
}

// Compiler turns patterns into Pattern values. It is safe for concurrent use.
type Compiler struct {
	wildcards Wildcards
	tokens    []token
	cache     *lru.Cache[string, *Pattern]
	logger    zerolog.Logger
}

type token struct {
	text string
	expr string
}

// NewCompiler creates a compiler for the given wildcard tokens. cacheSize
// bounds how many compiled patterns are kept; zero or less picks a default.
func NewCompiler(w Wildcards, cacheSize int) *Compiler {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, _ := lru.New[string, *Pattern](cacheSize)

	c := &Compiler{
		wildcards: w,
		cache:     cache,
		logger:    logging.GetLogger("pattern"),
	}
	if w.Valid() {
		c.tokens = buildTokens(w)
	}
	return c
}

// Wildcards returns the tokens the compiler was built with
func (c *Compiler) Wildcards() Wildcards { return c.wildcards }

// Compile compiles pattern. It is a pure function of the pattern and the
// wildcard tokens, so results are cached.
func (c *Compiler) Compile(pattern string) *Pattern {
	if p, ok := c.cache.Get(pattern); ok {
		return p
	}

	p := c.compile(pattern)
	c.cache.Add(pattern, p)
	return p
}

func (c *Compiler) compile(pattern string) *Pattern {
	if !c.wildcards.Valid() {
		c.logger.Warn().
			Str("pattern", pattern).
			Str("file_or_folder", c.wildcards.FileOrFolder).
			Str("multiple_folder", c.wildcards.MultipleFolder).
			Msg("Wildcard configuration is invalid, pattern matches everything")
		return &Pattern{source: pattern, matchAll: true}
	}

	normalized := Normalize(pattern)

	var b strings.Builder
	b.WriteString("^")
	for i := 0; i < len(normalized); {
		matched := false
		for _, tok := range c.tokens {
			if strings.HasPrefix(normalized[i:], tok.text) {
				b.WriteString(tok.expr)
				i += len(tok.text)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		_, size := utf8.DecodeRuneInString(normalized[i:])
		b.WriteString(regexp.QuoteMeta(normalized[i : i+size]))
		i += size
	}
	if strings.HasSuffix(normalized, Separator) {
		b.WriteString(SegmentClass)
	}
	b.WriteString("$")

	re, err := regexp.Compile(b.String())
	if err != nil {
		// literals are quoted, so this only happens with a broken class
		c.logger.Error().Err(err).Str("pattern", pattern).Msg("Failed to compile pattern, it will never match")
		return &Pattern{source: pattern, re: regexp.MustCompile(`^\b\B$`)}
	}

	c.logger.Trace().Str("pattern", pattern).Str("regexp", re.String()).Msg("Compiled pattern")
	return &Pattern{source: pattern, re: re}
}

// buildTokens orders wildcard tokens longest first so "/**" wins over "*"
func buildTokens(w Wildcards) []token {
	tokens := []token{
		{text: w.MultipleFolder, expr: multiExpr(w.MultipleFolder)},
		{text: w.FileOrFolder, expr: SegmentClass},
	}
	sort.SliceStable(tokens, func(i, j int) bool {
		return len(tokens[i].text) > len(tokens[j].text)
	})
	return tokens
}

// multiExpr expands the multi-segment token. A token that starts with a
// separator also covers zero components, so "A/**/B" matches "A/B".
func multiExpr(tok string) string {
	if strings.HasPrefix(tok, Separator) {
		return "(?:" + Separator + MultiSegmentClass + ")?"
	}
	return MultiSegmentClass
}

// Normalize converts backslashes to forward slashes
func Normalize(path string) string {
	return strings.ReplaceAll(path, `\`, Separator)
}
