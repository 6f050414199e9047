package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/flockbook/internal/config"
	"github.com/mamadbah2/flockbook/internal/domain/models"
)

const (
	dateLayout = "2006-01-02"

	// SummaryRange holds one row per report: day followed by the seven monthly counts.
	SummaryRange = "Summary!A:H"
	// PopulationRange holds one row per farm per report.
	PopulationRange = "Population!A:H"

	summaryDayColumn = "Summary!A:A"
)

// Repository defines the spreadsheet operations used by the flock report export.
type Repository interface {
	AppendFlockReport(ctx context.Context, report models.FlockReport) error
	LastExportedDay(ctx context.Context) (string, error)
}

// ValuesAPI is the slice of the Sheets values service the repository needs.
type ValuesAPI interface {
	Append(ctx context.Context, spreadsheetID, sheetRange string, rows [][]interface{}) error
	Get(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error)
}

// GoogleSheetRepository lays flock reports out as spreadsheet rows.
type GoogleSheetRepository struct {
	values        ValuesAPI
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a repository backed by the official Google Sheets API.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("sheets export requires credentials path and spreadsheet id")
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return NewRepository(apiValues{service: service}, cfg.SpreadsheetID, logger), nil
}

// NewRepository wires the repository on any ValuesAPI implementation.
func NewRepository(values ValuesAPI, spreadsheetID string, logger *zap.Logger) *GoogleSheetRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GoogleSheetRepository{values: values, spreadsheetID: spreadsheetID, logger: logger}
}

// AppendFlockReport writes the summary row and then one population row per farm,
// all stamped with the report day.
func (r *GoogleSheetRepository) AppendFlockReport(ctx context.Context, report models.FlockReport) error {
	day := report.GeneratedAt.Format(dateLayout)
	sum := report.Summary

	summary := [][]interface{}{{
		day, sum.Lambs, sum.Weaners, sum.Hoggets, sum.Adults,
		sum.DeathsThisMonth, sum.TotalDeaths, sum.TransfersThisMonth,
	}}
	if err := r.values.Append(ctx, r.spreadsheetID, SummaryRange, summary); err != nil {
		return fmt.Errorf("append summary row: %w", err)
	}

	if len(report.Population) == 0 {
		return nil
	}

	population := make([][]interface{}, 0, len(report.Population))
	for _, farm := range report.Population {
		population = append(population, []interface{}{
			day, farm.FarmName, farm.Lambs, farm.Weaners, farm.Hoggets, farm.Adults, farm.Males, farm.Females,
		})
	}
	if err := r.values.Append(ctx, r.spreadsheetID, PopulationRange, population); err != nil {
		return fmt.Errorf("append population rows: %w", err)
	}

	r.logger.Debug("flock report appended", zap.String("day", day), zap.Int("farms", len(population)))
	return nil
}

// LastExportedDay returns the day (YYYY-MM-DD) of the newest summary row, or ""
// when the sheet has none. Header and malformed cells are skipped.
func (r *GoogleSheetRepository) LastExportedDay(ctx context.Context) (string, error) {
	rows, err := r.values.Get(ctx, r.spreadsheetID, summaryDayColumn)
	if err != nil {
		return "", fmt.Errorf("read range %s: %w", summaryDayColumn, err)
	}

	for i := len(rows) - 1; i >= 0; i-- {
		if len(rows[i]) == 0 {
			continue
		}
		day, err := parseDate(rows[i][0])
		if err != nil {
			r.logger.Debug("skip summary row with invalid date", zap.Any("value", rows[i][0]), zap.Error(err))
			continue
		}
		return day.Format(dateLayout), nil
	}
	return "", nil
}

type apiValues struct {
	service *sheetsapi.Service
}

func (a apiValues) Append(ctx context.Context, spreadsheetID, sheetRange string, rows [][]interface{}) error {
	_, err := a.service.Spreadsheets.Values.Append(spreadsheetID, sheetRange, &sheetsapi.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (a apiValues) Get(ctx context.Context, spreadsheetID, sheetRange string) ([][]interface{}, error) {
	resp, err := a.service.Spreadsheets.Values.Get(spreadsheetID, sheetRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}

func parseDate(value interface{}) (time.Time, error) {
	str := fmt.Sprint(value)
	if str == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(str) > 10 {
		str = str[:10]
	}
	return time.Parse(dateLayout, str)
}
