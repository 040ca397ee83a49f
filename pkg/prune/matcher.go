package prune

import (
	"strings"
	"unicode/utf8"

	"flavorprune/pkg/textnorm"
	"flavorprune/pkg/wordlist"
)

const (
	// MinArtistTokenLength is the whitespace-free length an artist token
	// must exceed to participate in matching. Guards against initials and
	// other ultra-short tokens matching everywhere.
	MinArtistTokenLength = 3

	// CoordinatingWord must occur in a normalized flavor line for any
	// match to count. Attribution phrases read "in the style of X and Y";
	// requiring it keeps name-like substrings in ordinary vocabulary
	// entries from being flagged.
	CoordinatingWord = "and"
)

// Heuristics are the tunable gates of the matching rule. The defaults are
// a deliberate precision/recall trade-off: loosening them is a product
// decision, not a bug fix.
type Heuristics struct {
	// MinArtistTokenLength is the rune count, spaces excluded, an artist
	// token must exceed.
	MinArtistTokenLength int

	// CoordinatingWord is checked by plain substring containment, not
	// word boundary ("commander" satisfies "and"). Empty disables the
	// gate.
	CoordinatingWord string
}

// DefaultHeuristics returns the stock gates.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		MinArtistTokenLength: MinArtistTokenLength,
		CoordinatingWord:     CoordinatingWord,
	}
}

// Decision records one flavor line flagged for removal.
type Decision struct {
	Index  int    // zero-based position in the flavors file
	Line   string // original text, reported verbatim
	Artist string // normalized artist token that triggered the match
}

// NearMiss records a flavor line that contains an artist token but failed
// a heuristic gate. Diagnostic only; near misses are never removed.
type NearMiss struct {
	Index  int
	Line   string
	Artist string
	Reason string
}

// Near-miss reasons.
const (
	ReasonTokenTooShort          = "artist token too short"
	ReasonCoordinatingWordAbsent = "coordinating word absent"
)

// Matcher decides which flavor lines overlap the artist set.
type Matcher struct {
	artists    *ArtistSet
	heuristics Heuristics
	normalizer *textnorm.Normalizer
}

// NewMatcher creates a matcher over the given artist set.
func NewMatcher(artists *ArtistSet, heuristics Heuristics, normalizer *textnorm.Normalizer) *Matcher {
	return &Matcher{
		artists:    artists,
		heuristics: heuristics,
		normalizer: normalizer,
	}
}

// FindRemovals returns the flavor lines to remove, in ascending index
// order. Blank lines are never flagged. Artist tokens are scanned in
// lexicographic order and the first token satisfying every gate wins.
func (m *Matcher) FindRemovals(flavors []wordlist.Line) []Decision {
	var decisions []Decision
	for _, flavor := range flavors {
		if flavor.Blank() {
			continue
		}
		nf := m.normalizer.Normalize(flavor.Text)
		if artist, ok := m.match(nf); ok {
			decisions = append(decisions, Decision{
				Index:  flavor.Index,
				Line:   flavor.Text,
				Artist: artist,
			})
		}
	}
	return decisions
}

// match reports the first artist token contained in nf that passes both
// gates. The coordinating-word gate depends only on nf, so it is checked
// once up front.
func (m *Matcher) match(nf string) (string, bool) {
	if nf == "" {
		return "", false
	}
	if !m.hasCoordinatingWord(nf) {
		return "", false
	}
	for _, na := range m.artists.Tokens() {
		if !strings.Contains(nf, na) {
			continue
		}
		if bareLength(na) <= m.heuristics.MinArtistTokenLength {
			continue
		}
		return na, true
	}
	return "", false
}

// NearMisses returns, for each non-blank flavor line that was NOT flagged,
// the first artist token (lexicographic order) contained in its normalized
// form, with the gate(s) it failed. Results are in ascending index order.
func (m *Matcher) NearMisses(flavors []wordlist.Line) []NearMiss {
	var misses []NearMiss
	for _, flavor := range flavors {
		if flavor.Blank() {
			continue
		}
		nf := m.normalizer.Normalize(flavor.Text)
		if _, ok := m.match(nf); ok {
			continue
		}
		for _, na := range m.artists.Tokens() {
			if !strings.Contains(nf, na) {
				continue
			}
			misses = append(misses, NearMiss{
				Index:  flavor.Index,
				Line:   flavor.Text,
				Artist: na,
				Reason: m.missReason(na, nf),
			})
			break
		}
	}
	return misses
}

// missReason names the gate(s) a contained token failed.
func (m *Matcher) missReason(na, nf string) string {
	reasons := make([]string, 0, 2)
	if bareLength(na) <= m.heuristics.MinArtistTokenLength {
		reasons = append(reasons, ReasonTokenTooShort)
	}
	if !m.hasCoordinatingWord(nf) {
		reasons = append(reasons, ReasonCoordinatingWordAbsent)
	}
	return strings.Join(reasons, "; ")
}

func (m *Matcher) hasCoordinatingWord(nf string) bool {
	if m.heuristics.CoordinatingWord == "" {
		return true
	}
	return strings.Contains(nf, m.heuristics.CoordinatingWord)
}

// bareLength is the rune count of token with spaces removed. Normalized
// tokens contain only single ASCII spaces.
func bareLength(token string) int {
	return utf8.RuneCountInString(strings.ReplaceAll(token, " ", ""))
}
