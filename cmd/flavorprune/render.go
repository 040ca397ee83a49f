package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mattn/go-isatty"

	"flavorprune/pkg/prune"
)

// renderSummary prints the match counts and a preview of matched lines.
// Interactive terminals get tables; pipes and files get the plain format
// so output stays grep- and diff-friendly.
func renderSummary(w io.Writer, plan *prune.Plan, previewLimit int) {
	if shouldRenderTable(w) {
		renderSummaryTable(w, plan, previewLimit)
		return
	}
	renderSummaryPlain(w, plan, previewLimit)
}

func renderSummaryPlain(w io.Writer, plan *prune.Plan, previewLimit int) {
	fmt.Fprintf(w, "Total flavors lines: %d\n", plan.Total())
	fmt.Fprintf(w, "Matched (to remove): %d\n", plan.Matched())
	fmt.Fprintf(w, "Kept: %d\n", plan.Kept())

	preview := plan.Preview(previewLimit)
	if len(preview) == 0 {
		return
	}

	fmt.Fprintf(w, "\nExamples of matched lines (first %d shown):\n", len(preview))
	for _, d := range preview {
		fmt.Fprintf(w, " - %s\n", d.Line)
	}
}

func renderSummaryTable(w io.Writer, plan *prune.Plan, previewLimit int) {
	fmt.Fprintln(w, renderTable(
		[]string{"Metric", "Count"},
		[][]string{
			{"Total flavor lines", strconv.Itoa(plan.Total())},
			{"Matched (to remove)", strconv.Itoa(plan.Matched())},
			{"Kept", strconv.Itoa(plan.Kept())},
			{"Artist tokens", strconv.Itoa(plan.ArtistCount)},
		},
		[]columnAlignment{alignLeft, alignRight},
	))

	preview := plan.Preview(previewLimit)
	if len(preview) == 0 {
		return
	}

	rows := make([][]string, 0, len(preview))
	for _, d := range preview {
		rows = append(rows, []string{strconv.Itoa(d.Index + 1), d.Line, d.Artist})
	}

	fmt.Fprintf(w, "\nMatched lines (first %d shown):\n", len(preview))
	fmt.Fprintln(w, renderTable(
		[]string{"Line", "Flavor", "Matched Artist"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft},
	))
}

// renderNearMisses prints the audit report.
func renderNearMisses(w io.Writer, misses []prune.NearMiss) {
	if len(misses) == 0 {
		fmt.Fprintln(w, "No near misses: no kept flavor line contains an artist name.")
		return
	}

	if shouldRenderTable(w) {
		rows := make([][]string, 0, len(misses))
		for _, m := range misses {
			rows = append(rows, []string{strconv.Itoa(m.Index + 1), m.Line, m.Artist, m.Reason})
		}
		fmt.Fprintf(w, "Near misses: %d\n", len(misses))
		fmt.Fprintln(w, renderTable(
			[]string{"Line", "Flavor", "Artist", "Kept Because"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
		))
		return
	}

	fmt.Fprintf(w, "Near misses: %d\n", len(misses))
	for _, m := range misses {
		fmt.Fprintf(w, " - %s\n", m.Line)
		fmt.Fprintf(w, "   artist: %s (%s)\n", m.Artist, m.Reason)
	}
}

func shouldRenderTable(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
