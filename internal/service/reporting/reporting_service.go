// Package reporting builds the periodic flock report and hands it to the
// configured sinks: a MongoDB archive, a Google Sheets export and a WhatsApp digest.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/flockbook/internal/domain/models"
	"github.com/mamadbah2/flockbook/internal/metrics"
	"github.com/mamadbah2/flockbook/internal/service/dashboard"
	"github.com/mamadbah2/flockbook/pkg/clients/whatsapp"
)

const (
	dateLayout     = "2006-01-02"
	outcomeSuccess = "success"
	outcomePartial = "partial"
	outcomeFailed  = "failed"
)

// Summarizer supplies the figures a report is built from.
type Summarizer interface {
	MonthlySummary(ctx context.Context) (models.MonthlySummary, error)
	PopulationSummary(ctx context.Context) ([]models.FarmPopulation, error)
}

// Archive persists generated reports.
type Archive interface {
	SaveFlockReport(ctx context.Context, report models.FlockReport) error
}

// Sheet is the spreadsheet export.
type Sheet interface {
	AppendFlockReport(ctx context.Context, report models.FlockReport) error
	LastExportedDay(ctx context.Context) (string, error)
}

// Messenger delivers the text digest.
type Messenger interface {
	SendTextMessage(ctx context.Context, req whatsapp.SendTextMessageRequest) (*whatsapp.SendTextMessageResponse, error)
}

// Sinks lists the optional report destinations. Nil sinks are skipped.
type Sinks struct {
	Archive   Archive
	Sheet     Sheet
	Messenger Messenger
	Recipient string
}

// Service generates and publishes flock reports.
type Service struct {
	source Summarizer
	sinks  Sinks
	loc    *time.Location
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(source Summarizer, sinks Sinks, loc *time.Location, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{source: source, sinks: sinks, loc: loc, logger: logger, now: time.Now}
}

// Generate collects the monthly summary and per-farm population into one report.
func (s *Service) Generate(ctx context.Context) (models.FlockReport, error) {
	now := s.now().In(s.loc)

	summary, err := s.source.MonthlySummary(ctx)
	if err != nil {
		return models.FlockReport{}, fmt.Errorf("load monthly summary: %w", err)
	}

	population, err := s.source.PopulationSummary(ctx)
	if err != nil {
		return models.FlockReport{}, fmt.Errorf("load population summary: %w", err)
	}

	return models.FlockReport{
		GeneratedAt: now,
		PeriodStart: dashboard.MonthStart(now),
		Summary:     summary,
		Population:  population,
	}, nil
}

// Publish sends the report to every configured sink. A failing sink does not
// stop the others; all failures are returned joined.
func (s *Service) Publish(ctx context.Context, report models.FlockReport) error {
	var errs []error

	if s.sinks.Archive != nil {
		if err := s.sinks.Archive.SaveFlockReport(ctx, report); err != nil {
			s.logger.Error("failed to archive flock report", zap.Error(err))
			errs = append(errs, fmt.Errorf("archive report: %w", err))
		}
	}

	if s.sinks.Sheet != nil {
		if err := s.exportToSheet(ctx, report); err != nil {
			s.logger.Error("failed to export flock report to sheets", zap.Error(err))
			errs = append(errs, fmt.Errorf("export report: %w", err))
		}
	}

	if s.sinks.Messenger != nil && s.sinks.Recipient != "" {
		req := whatsapp.SendTextMessageRequest{To: s.sinks.Recipient, Body: FormatDigest(report)}
		if _, err := s.sinks.Messenger.SendTextMessage(ctx, req); err != nil {
			s.logger.Error("failed to deliver flock report", zap.Error(err))
			errs = append(errs, fmt.Errorf("deliver report: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Run generates a report and publishes it, recording the outcome.
func (s *Service) Run(ctx context.Context) error {
	report, err := s.Generate(ctx)
	if err != nil {
		metrics.ReportRuns.WithLabelValues(outcomeFailed).Inc()
		return err
	}

	if err := s.Publish(ctx, report); err != nil {
		metrics.ReportRuns.WithLabelValues(outcomePartial).Inc()
		return err
	}

	metrics.ReportRuns.WithLabelValues(outcomeSuccess).Inc()
	s.logger.Info("flock report published",
		zap.Time("period_start", report.PeriodStart),
		zap.Int("farms", len(report.Population)))
	return nil
}

// exportToSheet appends the report unless its day was already exported, so a
// re-run does not duplicate rows.
func (s *Service) exportToSheet(ctx context.Context, report models.FlockReport) error {
	day := report.GeneratedAt.Format(dateLayout)

	last, err := s.sinks.Sheet.LastExportedDay(ctx)
	if err != nil {
		return fmt.Errorf("load exported days: %w", err)
	}
	if last == day {
		s.logger.Info("sheets export already done for day", zap.String("day", day))
		return nil
	}

	return s.sinks.Sheet.AppendFlockReport(ctx, report)
}

// FormatDigest renders the report as the plain-text message sent to the farm manager.
func FormatDigest(report models.FlockReport) string {
	var b strings.Builder
	sum := report.Summary

	fmt.Fprintf(&b, "Flock report %s\n", report.GeneratedAt.Format(dateLayout))
	fmt.Fprintf(&b, "Stock: %d lambs, %d weaners, %d hoggets, %d adults\n",
		sum.Lambs, sum.Weaners, sum.Hoggets, sum.Adults)
	fmt.Fprintf(&b, "Since %s: %d deaths, %d transfers (deaths to date: %d)\n",
		report.PeriodStart.Format(dateLayout), sum.DeathsThisMonth, sum.TransfersThisMonth, sum.TotalDeaths)

	if len(report.Population) == 0 {
		b.WriteString("No living animals recorded.")
		return b.String()
	}

	b.WriteString("Living animals by farm:")
	for _, farm := range report.Population {
		fmt.Fprintf(&b, "\n- %s: %d lambs, %d weaners, %d hoggets, %d adults (%d M / %d F)",
			farm.FarmName, farm.Lambs, farm.Weaners, farm.Hoggets, farm.Adults, farm.Males, farm.Females)
	}
	return b.String()
}
