package writer

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"
)

const timestampLayout = "20060102_150405"

// DefaultFilename produces the standardized name for a single-firm export,
// e.g. "SINGLE_Example_Rep_Firm_20250101_120000.xlsx". An empty firm name
// falls back to a generic prefix.
func DefaultFilename(repFirmName string, now time.Time) string {
	name := sanitizeName(repFirmName)
	if name == "" {
		name = "rep_firm_line_sheet"
	}
	return fmt.Sprintf("SINGLE_%s_%s.xlsx", name, now.Format(timestampLayout))
}

// BatchFilename produces the standardized name for a consolidated batch
// export covering n firms.
func BatchFilename(n int, now time.Time) string {
	return fmt.Sprintf("BATCH_%dfirms_%s.xlsx", n, now.Format(timestampLayout))
}

// EnsureOutputDir creates the output directory if it does not exist.
func EnsureOutputDir(dir string) error {
	if dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0755)
}

// sanitizeName reduces a firm name to a filename-safe token: letters and
// digits kept, everything else collapsed to single underscores.
func sanitizeName(name string) string {
	var b strings.Builder
	lastUnderscore := true
	for _, r := range strings.TrimSpace(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastUnderscore = false
		} else if !lastUnderscore {
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}
