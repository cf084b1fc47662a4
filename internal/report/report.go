// Package report: textual output and the optional delimited report file.
// Background: the shell form (KEY=VALUE) is meant for machine parsing; the
// plain form for humans. The no-match sentinel is a bare line in both modes.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"fs-api/internal/check"
	"fs-api/internal/logger"
)

// Render writes the classification report. Shell mode emits KEY=VALUE lines.
func Render(w io.Writer, res check.Result, shell bool) {
	if !res.InGermany() {
		fmt.Fprintln(w, check.NotInGermany)
		return
	}
	if shell {
		fmt.Fprintf(w, "FEDERAL_STATE=%s\n", res.Names())
		fmt.Fprintf(w, "FS=%s\n", res.Codes())
		return
	}
	fmt.Fprintf(w, "FEDERAL_STATE: %s\n", res.Names())
	fmt.Fprintf(w, "FS: %s\n", res.Codes())
}

// WriteFile persists the KEY=VALUE report to path, best effort.
// Skipped when there is no match, the parent directory does not exist or the
// target cannot be written; the primary computation never fails over a side
// artifact, so no case surfaces an error. Returns whether a file was written.
func WriteFile(path string, res check.Result) bool {
	if path == "" || !res.InGermany() {
		return false
	}
	dir := filepath.Dir(path)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		logger.L().Debug("report_file_skip", "path", path, "reason", "no_parent_dir")
		return false
	}
	body := fmt.Sprintf("FEDERAL_STATE=%s\nFS=%s\n", res.Names(), res.Codes())
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		logger.L().Warn("report_file_skip", "path", path, "err", err)
		return false
	}
	logger.L().Debug("report_file_ok", "path", path)
	return true
}
