package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Step defines a single normalization step.
type Step func(string) string

// CacheSize is the maximum number of entries in the normalization cache.
// At ~100 bytes per entry, 100k entries uses approximately 10MB of memory.
const CacheSize = 100_000

// Normalizer applies a configurable pipeline of normalization steps.
// The result depends only on the input string, so repeated inputs are
// served from an LRU cache when one is enabled.
type Normalizer struct {
	steps []Step
	cache *lru.Cache[string, string]
}

// New creates a normalizer with the default pipeline and LRU cache enabled.
func New() *Normalizer {
	cache, _ := lru.New[string, string](CacheSize)
	n := NewNoCache()
	n.cache = cache
	return n
}

// NewNoCache creates a normalizer with the default pipeline and no cache.
// Use this when memory is constrained or inputs are rarely repeated.
func NewNoCache() *Normalizer {
	return &Normalizer{
		steps: []Step{
			NFKDDecompose,
			RemoveCombiningMarks,
			StripPunctuation,
			CollapseWhitespace,
			FoldCase,
		},
	}
}

// NewWithSteps creates a normalizer with a custom pipeline and no cache.
func NewWithSteps(steps ...Step) *Normalizer {
	return &Normalizer{steps: steps}
}

// Normalize applies all configured steps in order.
func (n *Normalizer) Normalize(s string) string {
	// If cache is disabled, compute directly
	if n.cache == nil {
		return n.normalizeUncached(s)
	}

	// Check cache first (LRU is thread-safe)
	if result, ok := n.cache.Get(s); ok {
		return result
	}

	result := n.normalizeUncached(s)

	// Store in cache (evicts oldest if at capacity)
	n.cache.Add(s, result)

	return result
}

// normalizeUncached runs the pipeline without consulting the cache.
func (n *Normalizer) normalizeUncached(s string) string {
	for _, step := range n.steps {
		s = step(s)
	}
	return s
}

// NFKDDecompose applies Unicode NFKD normalization.
// Decomposes é → e + combining_acute, ﬁ → fi, etc.
func NFKDDecompose(s string) string {
	return norm.NFKD.String(s)
}

// combiningMarks strips every rune in the mark categories (Mn, Mc, Me).
// The remove transformer is stateless, so sharing one instance is safe.
var combiningMarks = runes.Remove(runes.In(unicode.M))

// RemoveCombiningMarks removes Unicode combining characters.
// Drops the accents left behind by NFKD decomposition. NFKD does not
// decompose ß or đ; such letters are handled by StripPunctuation instead.
func RemoveCombiningMarks(s string) string {
	result, _, err := transform.String(combiningMarks, s)
	if err != nil {
		return s
	}
	return result
}

// nonWordRuns matches maximal runs of characters that are not ASCII
// letters, ASCII digits, or whitespace.
var nonWordRuns = regexp.MustCompile(`[^0-9a-zA-Z\s]+`)

// StripPunctuation replaces each run of non-alphanumeric, non-whitespace
// characters with a single space.
func StripPunctuation(s string) string {
	return nonWordRuns.ReplaceAllLiteralString(s, " ")
}

// CollapseWhitespace collapses consecutive whitespace into one space and
// trims leading and trailing whitespace.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FoldCase lowercases using full Unicode case folding.
// A cases.Caser carries internal state, so a fresh one is built per call.
func FoldCase(s string) string {
	return cases.Fold().String(s)
}

// ClearCache clears the memoization cache.
func (n *Normalizer) ClearCache() {
	if n.cache != nil {
		n.cache.Purge()
	}
}

// CacheLen returns the number of cached entries (0 if cache is disabled).
func (n *Normalizer) CacheLen() int {
	if n.cache == nil {
		return 0
	}
	return n.cache.Len()
}

// CacheEnabled returns true if caching is enabled.
func (n *Normalizer) CacheEnabled() bool {
	return n.cache != nil
}
