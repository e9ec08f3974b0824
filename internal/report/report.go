// Package report renders validation results as a human-readable text report.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fyrsmithlabs/annocheck/internal/validate"
)

const rule = 80

// Stats summarizes a set of validation entries.
type Stats struct {
	Total      int
	Found      int
	Relevant   int
	Irrelevant int
}

// Summarize computes summary counts for entries. Entries that carry a
// diagnostic error count as neither relevant nor irrelevant.
func Summarize(entries []validate.Entry) Stats {
	s := Stats{Total: len(entries)}
	for _, e := range entries {
		if e.Found {
			s.Found++
		}
		if e.Err != "" {
			continue
		}
		if e.Relevant {
			s.Relevant++
		} else {
			s.Irrelevant++
		}
	}
	return s
}

// Failed reports whether any entry failed validation.
func Failed(entries []validate.Entry) int {
	failed := 0
	for _, e := range entries {
		if !e.Found {
			failed++
		}
	}
	return failed
}

// Write renders the full validation report for a run.
func Write(w io.Writer, result *validate.RunResult) {
	entries := result.Entries
	stats := Summarize(entries)

	banner(w, "ANNOTATION VALIDATION REPORT")
	fmt.Fprintf(w, "Disease: %s (%s)\n", result.DiseaseName, result.DiseaseID)
	fmt.Fprintf(w, "Total supporting text entries: %d\n", stats.Total)
	fmt.Fprintf(w, "[+] Found in publications: %d\n", stats.Found)
	fmt.Fprintf(w, "[-] Not found: %d\n", stats.Total-stats.Found)
	fmt.Fprintf(w, "[+] Disease-relevant publications: %d\n", stats.Relevant)
	fmt.Fprintf(w, "[-] Disease-irrelevant publications: %d\n", stats.Irrelevant)
	if stats.Total > 0 {
		fmt.Fprintf(w, "Success rate: %.1f%%\n", float64(stats.Found)/float64(stats.Total)*100)
		fmt.Fprintf(w, "Relevance rate: %.1f%%\n", float64(stats.Relevant)/float64(stats.Total)*100)
	} else {
		fmt.Fprintln(w, "No entries to validate")
	}

	fmt.Fprintln(w, "\nDETAILED RESULTS")
	fmt.Fprintln(w, strings.Repeat("-", rule))

	for i, e := range entries {
		writeEntry(w, i+1, e)
	}

	writeFailedSummary(w, entries)
	writeNextSteps(w, entries, stats)
}

func writeEntry(w io.Writer, n int, e validate.Entry) {
	status := "[-] NOT FOUND"
	if e.Found {
		status = "[+] FOUND"
	}

	line := fmt.Sprintf("\n%d. %s", n, status)
	if e.Err == "" {
		line += fmt.Sprintf(" (confidence: %.3f)", e.Similarity)
		line += fmt.Sprintf(" (relevance: %.2f)", e.Relevance)
	}
	fmt.Fprintln(w, line)

	if e.TermID != "" {
		fmt.Fprintf(w, "   Term: %s (%s)\n", e.TermID, e.TermName)
	}
	fmt.Fprintf(w, "   Reference: %s\n", e.Reference)
	fmt.Fprintf(w, "   Text: %s\n", e.Text)

	if e.Err != "" {
		fmt.Fprintf(w, "   Error: %s\n", e.Err)
	}
	if e.Context != "" {
		fmt.Fprintf(w, "   Context: %s\n", truncate(e.Context, 200))
	}
	if id := e.Identifier; id != nil {
		switch {
		case id.Error != "":
			fmt.Fprintf(w, "   Identifier: INVALID (%s)\n", id.Error)
		case id.TitleChecked && !id.TitleOverlap:
			fmt.Fprintf(w, "   Identifier: title mismatch (retrieved %q)\n", id.RetrievedTitle)
		default:
			fmt.Fprintln(w, "   Identifier: ok")
		}
	}
	if len(e.Suggestions) > 0 {
		fmt.Fprintln(w, "   Suggestions for improvement:")
		for _, s := range e.Suggestions {
			fmt.Fprintf(w, "      - %s\n", s)
		}
	}
}

func writeFailedSummary(w io.Writer, entries []validate.Entry) {
	var failed []validate.Entry
	for _, e := range entries {
		if !e.Found {
			failed = append(failed, e)
		}
	}
	if len(failed) == 0 {
		return
	}

	banner(w, "FAILED VALIDATIONS SUMMARY")
	fmt.Fprintf(w, "The following %d supporting text entries need attention:\n", len(failed))

	for i, e := range failed {
		fmt.Fprintf(w, "\n%d. %s (%s)\n", i+1, e.TermID, e.TermName)
		fmt.Fprintf(w, "   Reference: %s\n", e.Reference)
		fmt.Fprintf(w, "   Text: %s\n", truncate(e.Text, 80))
		switch {
		case e.Err != "":
			fmt.Fprintf(w, "   Issue: %s\n", e.Err)
		case len(e.Suggestions) > 0:
			fmt.Fprintf(w, "   Best alternative: %s\n", e.Suggestions[0])
		}
		action := "Update supporting text or find better quote"
		if e.Err != "" {
			action = "Check reference validity"
		}
		fmt.Fprintf(w, "   Action needed: %s\n", action)
	}
}

func writeNextSteps(w io.Writer, entries []validate.Entry, stats Stats) {
	banner(w, "NEXT STEPS")

	failed := stats.Total - stats.Found
	if failed > 0 {
		fmt.Fprintln(w, "1. For failed validations:")
		fmt.Fprintln(w, "   - Verify PMID references are correct")
		fmt.Fprintln(w, "   - Update supporting text to match exact quotes from papers")
		fmt.Fprintln(w, "   - Consider using suggested alternatives if available")
		fmt.Fprintln(w, "   - Remove entries that cannot be validated")
	}
	if stats.Irrelevant > 0 {
		fmt.Fprintln(w, "2. For disease-irrelevant papers:")
		fmt.Fprintln(w, "   - Check if references are correct for the disease being annotated")
		fmt.Fprintln(w, "   - Consider finding more specific publications")
	}
	if failed == 0 && stats.Irrelevant == 0 {
		fmt.Fprintln(w, "All supporting text entries validated successfully!")
		fmt.Fprintln(w, "   - Consider adding more phenotypic features if needed")
		fmt.Fprintln(w, "   - Review frequency data and inheritance patterns")
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", rule))
}

func banner(w io.Writer, title string) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", rule))
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", rule))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
