package prune

import (
	"fmt"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"

	"flavorprune/pkg/textnorm"
	"flavorprune/pkg/wordlist"
)

// Plan is the computed removal set for one flavors file plus everything
// needed to apply it. Building a plan never modifies any file.
type Plan struct {
	ArtistsPath string
	FlavorsPath string
	Flavors     []wordlist.Line
	ArtistCount int
	Decisions   []Decision

	matcher *Matcher
}

// BuildPlan validates that both inputs exist, loads them, builds the
// artist set, and runs the matcher. Validation happens before any read so
// a missing path is reported without partial processing.
func BuildPlan(artistsPath, flavorsPath string, heuristics Heuristics, normalizer *textnorm.Normalizer, logger zerolog.Logger) (*Plan, error) {
	if _, err := os.Stat(artistsPath); err != nil {
		return nil, fmt.Errorf("artists file: %w", err)
	}
	if _, err := os.Stat(flavorsPath); err != nil {
		return nil, fmt.Errorf("flavors file: %w", err)
	}

	artists, err := wordlist.Load(artistsPath)
	if err != nil {
		return nil, err
	}
	flavors, err := wordlist.Load(flavorsPath)
	if err != nil {
		return nil, err
	}

	set, err := BuildArtistSet(artists, normalizer)
	if err != nil {
		return nil, fmt.Errorf("build artist set: %w", err)
	}
	logger.Debug().
		Int("artist_lines", len(artists)).
		Int("artist_tokens", set.Len()).
		Int("flavor_lines", len(flavors)).
		Msg("word lists loaded")

	matcher := NewMatcher(set, heuristics, normalizer)
	decisions := matcher.FindRemovals(flavors)
	for _, d := range decisions {
		logger.Debug().
			Int("line", d.Index).
			Str("artist", d.Artist).
			Str("flavor", d.Line).
			Msg("flagged for removal")
	}
	logger.Info().
		Int("total", len(flavors)).
		Int("matched", len(decisions)).
		Int("kept", len(flavors)-len(decisions)).
		Msg("match complete")

	return &Plan{
		ArtistsPath: artistsPath,
		FlavorsPath: flavorsPath,
		Flavors:     flavors,
		ArtistCount: set.Len(),
		Decisions:   decisions,
		matcher:     matcher,
	}, nil
}

// Total returns the number of flavor lines loaded.
func (p *Plan) Total() int {
	return len(p.Flavors)
}

// Matched returns the number of flavor lines flagged for removal.
func (p *Plan) Matched() int {
	return len(p.Decisions)
}

// Kept returns the number of flavor lines that survive the plan.
func (p *Plan) Kept() int {
	return len(p.Flavors) - len(p.Decisions)
}

// Preview returns at most limit decisions, from the front. A negative
// limit means no cap.
func (p *Plan) Preview(limit int) []Decision {
	if limit < 0 || limit >= len(p.Decisions) {
		return p.Decisions
	}
	return p.Decisions[:limit]
}

// KeptLines returns the flavor lines that survive the plan, original
// order preserved, blank lines included.
func (p *Plan) KeptLines() []wordlist.Line {
	removed := make(map[int]struct{}, len(p.Decisions))
	for _, d := range p.Decisions {
		removed[d.Index] = struct{}{}
	}

	kept := make([]wordlist.Line, 0, len(p.Flavors)-len(p.Decisions))
	for _, l := range p.Flavors {
		if _, ok := removed[l.Index]; ok {
			continue
		}
		kept = append(kept, l)
	}
	return kept
}

// NearMisses reports the flavor lines that contain an artist token but
// failed a heuristic gate. Diagnostic only.
func (p *Plan) NearMisses() []NearMiss {
	return p.matcher.NearMisses(p.Flavors)
}

// LockPath returns the lock file guarding apply runs against path.
func LockPath(path string) string {
	return path + ".lock"
}

// Apply rewrites the flavors file with only the kept lines, after writing
// a timestamped backup when requested. A failed backup aborts before the
// primary file is touched. An exclusive lock on LockPath(FlavorsPath)
// keeps concurrent applies from interleaving backup and rewrite.
// Returns the backup path, empty when no backup was requested.
func (p *Plan) Apply(makeBackup bool, now time.Time, logger zerolog.Logger) (string, error) {
	lock := flock.New(LockPath(p.FlavorsPath))
	ok, err := lock.TryLock()
	if err != nil {
		return "", fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return "", fmt.Errorf("another apply is already running on %s", p.FlavorsPath)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	var backupPath string
	if makeBackup {
		backupPath, err = wordlist.Backup(p.FlavorsPath, p.Flavors, now)
		if err != nil {
			return "", err
		}
		logger.Info().Str("path", backupPath).Msg("backup written")
	}

	if err := wordlist.Write(p.FlavorsPath, p.KeptLines()); err != nil {
		if backupPath != "" {
			return "", fmt.Errorf("%w (backup preserved at %s)", err, backupPath)
		}
		return "", err
	}
	logger.Info().
		Str("path", p.FlavorsPath).
		Int("removed", p.Matched()).
		Int("kept", p.Kept()).
		Msg("flavors file rewritten")

	return backupPath, nil
}
