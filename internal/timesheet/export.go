// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package timesheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/hrops/hrops-go/internal/model"
)

// Export writes the entries as an XLSX workbook with a header row, one row
// per entry, and a totals row.
func Export(w io.Writer, username string, entries []model.TimesheetEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Timesheet"
	f.SetSheetName("Sheet1", sheet)

	header := []any{"Date", "Project", "Hours", "Notes"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	var total float64
	for i, e := range entries {
		row := []any{e.WorkDate, e.ProjectName, e.Hours, e.Notes}
		cell := fmt.Sprintf("A%d", i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
		total += e.Hours
	}

	totalsRow := []any{"Total", username, total, ""}
	cell := fmt.Sprintf("A%d", len(entries)+2)
	if err := f.SetSheetRow(sheet, cell, &totalsRow); err != nil {
		return fmt.Errorf("writing totals row: %w", err)
	}

	if err := f.SetColWidth(sheet, "A", "B", 18); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "D", "D", 40); err != nil {
		return fmt.Errorf("setting column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
