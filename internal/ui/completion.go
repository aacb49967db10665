package ui

import (
	"fmt"
	"strings"

	"github.com/bamsammich/hollow/internal/engine"
	"github.com/bamsammich/hollow/internal/stats"
)

// CompletionSummary builds a final summary line from a snapshot.
// Format: done ✓  files 48,917  full 1,204 (2.1 GiB)  hollow 47,013  skipped 700  time 3m 17s  errors 0
func CompletionSummary(snap stats.Snapshot) string {
	failed := snap.FilesFailed + snap.DirsFailed

	icon := "✓"
	if failed > 0 {
		icon = "✗"
	}

	return fmt.Sprintf("done %s  files %s  full %s (%s)  hollow %s  skipped %s  time %s  errors %d",
		icon,
		FormatCount(snap.FilesProcessed),
		FormatCount(snap.FilesFull),
		FormatBytes(snap.BytesCopied),
		FormatCount(snap.FilesHollowed),
		FormatCount(snap.FilesExcluded),
		FormatDuration(snap.Elapsed),
		failed,
	)
}

// ScanReport renders the dry-run tally.
func ScanReport(st engine.ScanStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total Files: %s\n", FormatCount(int64(st.Files)))
	fmt.Fprintf(&b, "To Hollow (Dummy): %s\n", FormatCount(int64(st.Hollow)))
	fmt.Fprintf(&b, "To Full Copy: %s (~%s)\n", FormatCount(int64(st.Full)), FormatMB(st.FullBytes))
	fmt.Fprintf(&b, "To Skip: %s\n", FormatCount(int64(st.Excluded)))
	fmt.Fprintf(&b, "Ready to copy %s files.", FormatCount(int64(st.ToCopy())))
	return b.String()
}

// FailureReport lists per-entry failures, at most limit of them.
func FailureReport(failures []engine.FileError, limit int) string {
	if len(failures) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d errors:\n", len(failures))
	for i, fe := range failures {
		if limit > 0 && i == limit {
			fmt.Fprintf(&b, "  ... and %d more\n", len(failures)-limit)
			break
		}
		fmt.Fprintf(&b, "  %s\n", fe.Error())
	}
	return strings.TrimRight(b.String(), "\n")
}
