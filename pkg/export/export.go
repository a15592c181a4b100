// Package export reads stored submissions back and writes them to a
// spreadsheet, one month at a time.
package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"contact-intake/pkg/models"
	"contact-intake/pkg/storage"
)

// SheetName is the single worksheet in an export.
const SheetName = "Leads"

// Columns is the header row, in order.
var Columns = []string{
	"submissionId",
	"submittedAt",
	"firstName",
	"lastName",
	"email",
	"phone",
	"careerStage",
	"sport",
	"referral",
	"message",
	"source",
}

// ErrNotXLSX is returned when the output path does not end in .xlsx.
var ErrNotXLSX = errors.New("output file must use the .xlsx extension")

// Summary describes a finished export.
type Summary struct {
	Count  int    `json:"count"`
	File   string `json:"file"`
	Bucket string `json:"bucket,omitempty"`
	Year   int    `json:"year"`
	Month  int    `json:"month"`
}

// FetchMonthlyLeads loads every submission for the month, sorted by
// submittedAt. Flat layouts carry no date in the key, so the records are
// filtered by their timestamp instead.
func FetchMonthlyLeads(ctx context.Context, reader storage.Reader, layout storage.KeyLayout, year int, month time.Month) ([]models.SubmissionRecord, error) {
	keys, err := reader.List(ctx, layout.MonthPrefix(year, month))
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}

	monthPrefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	rows := make([]models.SubmissionRecord, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		data, err := reader.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", key, err)
		}
		var record models.SubmissionRecord
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		if layout == storage.Flat && !strings.HasPrefix(record.SubmittedAt, monthPrefix) {
			continue
		}
		rows = append(rows, record)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SubmittedAt < rows[j].SubmittedAt })
	return rows, nil
}

// WriteXLSX writes rows to path, creating parent directories as needed.
func WriteXLSX(rows []models.SubmissionRecord, path string) (string, error) {
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return "", ErrNotXLSX
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		values := []any{
			r.SubmissionID, r.SubmittedAt, r.FirstName, r.LastName, r.Email, r.Phone,
			r.CareerStage, r.Sport, r.Referral, r.Message, r.Source,
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return "", fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// Month exports one month from reader to path.
func Month(ctx context.Context, reader storage.Reader, layout storage.KeyLayout, year int, month time.Month, path string) (*Summary, error) {
	rows, err := FetchMonthlyLeads(ctx, reader, layout, year, month)
	if err != nil {
		return nil, err
	}
	written, err := WriteXLSX(rows, path)
	if err != nil {
		return nil, err
	}
	return &Summary{Count: len(rows), File: written, Year: year, Month: int(month)}, nil
}

// DefaultPath is where an export lands when no output is given.
func DefaultPath(year int, month time.Month) string {
	return filepath.Join("contact_leads", fmt.Sprintf("leads-%04d-%02d.xlsx", year, int(month)))
}
