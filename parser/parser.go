// Package parser converts the model's semi-structured text reply into
// catalog rows. The model is instructed to emit CSV, but its output is
// treated as untrusted: surrounding prose, markdown fences, header rows and
// malformed lines are skipped rather than aborting the parse.
package parser

import (
	"encoding/csv"
	"strings"

	"linesheet-extractor/internal/types"
)

// headerCells are first-column values that mark a line as the model echoing
// the requested header row instead of data.
var headerCells = map[string]bool{
	"rep firm name": true,
	"brand carried": true,
	"brand":         true,
}

// Parse splits responseText into lines and maps each well-formed line to one
// CatalogRow, preserving order. repFirmName is injected from the call
// context; a firm name echoed by the model is discarded. Parse never fails —
// an empty result is a valid outcome.
func Parse(responseText, repFirmName string, logger types.Logger) []types.CatalogRow {
	var rows []types.CatalogRow

	for _, line := range strings.Split(responseText, "\n") {
		line = strings.TrimSpace(line)
		if skipLine(line) {
			continue
		}

		cells, ok := splitLine(line)
		if !ok || len(cells) < 3 {
			if line != "" && logger != nil {
				logger.Debugf("Skipping unparseable line: %q", line)
			}
			continue
		}

		if headerCells[strings.ToLower(cells[0])] {
			continue
		}

		// With 4+ cells the first is the model's echo of the firm name;
		// with exactly 3 the line starts at the brand.
		if len(cells) >= 4 {
			cells = cells[1:]
		}

		rows = append(rows, types.CatalogRow{
			RepFirmName:   repFirmName,
			Brand:         cells[0],
			Product:       cells[1],
			SpaceCategory: cells[2],
		})
	}

	return rows
}

// skipLine filters blank lines, markdown code fences and table separator
// rows before any cell splitting is attempted.
func skipLine(line string) bool {
	if line == "" {
		return true
	}
	if strings.HasPrefix(line, "```") {
		return true
	}
	// markdown table separators like |---|---| or ---,---
	stripped := strings.Map(func(r rune) rune {
		switch r {
		case '-', '|', ':', ',', ' ':
			return -1
		}
		return r
	}, line)
	return stripped == ""
}

// splitLine decomposes one line into trimmed cells. Pipe-delimited lines are
// split directly; anything else is treated as a CSV record so quoted fields
// containing commas survive intact.
func splitLine(line string) ([]string, bool) {
	var cells []string

	if strings.Contains(line, "|") {
		for _, c := range strings.Split(strings.Trim(line, "|"), "|") {
			cells = append(cells, strings.TrimSpace(c))
		}
	} else {
		r := csv.NewReader(strings.NewReader(line))
		r.TrimLeadingSpace = true
		record, err := r.Read()
		if err != nil {
			return nil, false
		}
		for _, c := range record {
			cells = append(cells, strings.TrimSpace(c))
		}
	}

	// A line of empty cells carries no data.
	nonEmpty := 0
	for _, c := range cells {
		if c != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return nil, false
	}

	return cells, true
}
