package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"leadscout/pkg/types"
)

const (
	resultsSheet = "Results"
	summarySheet = "Summary"
)

// WriteXLSX writes a workbook with a full results sheet and a summary sheet,
// mirroring the two CSV exports.
func WriteXLSX(w io.Writer, records []types.CompanyRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), resultsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}

	if err := writeSheet(f, resultsSheet, Columns, resultRows(records)); err != nil {
		return err
	}
	if err := writeSheet(f, summarySheet, SummaryColumns, summaryRows(records)); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	headerRow := make([]any, len(header))
	for i, name := range header {
		headerRow[i] = name
	}
	if err := setRow(f, sheet, 1, headerRow); err != nil {
		return err
	}
	for i, row := range rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("set row %d in %s: %w", rowNum, sheet, err)
	}
	return nil
}

func resultRows(records []types.CompanyRecord) [][]any {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.URL,
			r.Source,
			r.PagesScraped,
			r.CompanyName,
			r.About,
			r.Services,
			r.Products,
			joinContacts(r.Emails),
			joinContacts(r.Phones),
			r.Address,
			r.Clients,
			r.TeamInfo,
			socialString(r.SocialMedia),
			len(r.Emails),
			len(r.Phones),
			r.SEOScore,
			r.QualityScore,
		})
	}
	return rows
}

func summaryRows(records []types.CompanyRecord) [][]any {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		rows = append(rows, []any{
			r.CompanyName,
			r.URL,
			len(r.Emails),
			len(r.Phones),
			r.PagesScraped,
			r.QualityScore,
		})
	}
	return rows
}
