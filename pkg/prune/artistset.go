package prune

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/blevesearch/vellum"

	"flavorprune/pkg/textnorm"
	"flavorprune/pkg/wordlist"
)

// ArtistSet holds the normalized artist tokens in an FST for fast
// membership checks, plus the sorted token slice the matcher scans.
// It is built once per run and immutable afterward.
type ArtistSet struct {
	fst    *vellum.FST
	tokens []string
}

// BuildArtistSet normalizes every non-blank artist line, discards entries
// that normalize to the empty string, deduplicates, and indexes the rest.
func BuildArtistSet(lines []wordlist.Line, normalizer *textnorm.Normalizer) (*ArtistSet, error) {
	seen := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		if l.Blank() {
			continue
		}
		token := normalizer.Normalize(l.Text)
		if token == "" {
			continue
		}
		seen[token] = struct{}{}
	}

	tokens := make([]string, 0, len(seen))
	for token := range seen {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	fst, err := buildFST(tokens)
	if err != nil {
		return nil, err
	}

	return &ArtistSet{fst: fst, tokens: tokens}, nil
}

// buildFST builds an in-memory FST over the tokens.
// Vellum requires insertion in lexicographic order.
func buildFST(sorted []string) (*vellum.FST, error) {
	var buf bytes.Buffer

	builder, err := vellum.New(&buf, nil)
	if err != nil {
		return nil, fmt.Errorf("create fst builder: %w", err)
	}

	for _, token := range sorted {
		if err := builder.Insert([]byte(token), 0); err != nil {
			return nil, fmt.Errorf("insert artist token %q: %w", token, err)
		}
	}

	if err := builder.Close(); err != nil {
		return nil, fmt.Errorf("finalize fst: %w", err)
	}

	fst, err := vellum.Load(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("load fst: %w", err)
	}
	return fst, nil
}

// Len returns the number of distinct artist tokens.
func (a *ArtistSet) Len() int {
	return len(a.tokens)
}

// Contains checks whether the exact normalized token is in the set.
func (a *ArtistSet) Contains(token string) bool {
	_, exists, _ := a.fst.Get([]byte(token))
	return exists
}

// Tokens returns the tokens in lexicographic order. The slice is shared;
// callers must not modify it.
func (a *ArtistSet) Tokens() []string {
	return a.tokens
}
