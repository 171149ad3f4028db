// Package writer serializes catalog rows into a single-sheet xlsx workbook
// with a fixed column order.
package writer

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"linesheet-extractor/internal/types"
)

const sheetName = "Sheet1"

// Header is the fixed column order of every exported workbook.
var Header = []string{"Rep Firm Name", "Brand Carried", "Product Covered", "Space"}

// Write serializes rows to an xlsx file at path, preserving input order. A
// path without an extension gets ".xlsx" appended; an existing file is
// overwritten. The final path written is returned.
func Write(rows []types.CatalogRow, path string) (string, error) {
	if filepath.Ext(path) == "" {
		path += ".xlsx"
	}

	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return "", types.NewWriteError("failed to write header row", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", types.NewWriteError(fmt.Sprintf("failed to address row %d", i+2), err)
		}
		values := []interface{}{row.RepFirmName, row.Brand, row.Product, row.SpaceCategory}
		if err := f.SetSheetRow(sheetName, cell, &values); err != nil {
			return "", types.NewWriteError(fmt.Sprintf("failed to write row %d", i+2), err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", types.NewWriteError(fmt.Sprintf("failed to save workbook to %s", path), err)
	}

	return path, nil
}
