package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/repository"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

const (
	monthLayout = "2006-01"

	// MaxKPIMonths bounds the span of a single KPI query
	MaxKPIMonths = 60
	// defaultKPIMonths is the span used when no range is given
	defaultKPIMonths = 12
)

// KPICache is the read-through cache used for KPI reports
type KPICache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// KPITotals aggregates a KPI range
type KPITotals struct {
	ReceiptCount        int64 `json:"receipt_count"`
	TotalCents          int64 `json:"total_cents"`
	VATCents            int64 `json:"vat_cents"`
	NetCents            int64 `json:"net_cents"`
	MaintenanceCents    int64 `json:"maintenance_cents"`
	AverageReceiptCents int64 `json:"average_receipt_cents"`
}

// KPIMonth is one point of the monthly series
type KPIMonth struct {
	Month            string `json:"month"`
	ReceiptCount     int64  `json:"receipt_count"`
	TotalCents       int64  `json:"total_cents"`
	VATCents         int64  `json:"vat_cents"`
	NetCents         int64  `json:"net_cents"`
	MaintenanceCents int64  `json:"maintenance_cents"`
}

// KPIReport is the response of the KPI endpoint
type KPIReport struct {
	From      string                 `json:"from"`
	To        string                 `json:"to"`
	VehicleID *valueobject.VehicleID `json:"vehicle_id,omitempty"`
	Totals    KPITotals              `json:"totals"`
	Months    []KPIMonth             `json:"months"`
}

// KPIRequest selects a KPI report. Zero From/To fall back to the last twelve months.
type KPIRequest struct {
	From      time.Time
	To        time.Time
	VehicleID *valueobject.VehicleID
}

// AnalyticsService serves the monthly KPI projection
type AnalyticsService struct {
	analyticsRepo repository.AnalyticsRepository
	cache         KPICache
	tasks         TaskEnqueuer
	now           clock
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analyticsRepo repository.AnalyticsRepository, cache KPICache, tasks TaskEnqueuer) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		cache:         cache,
		tasks:         tasks,
		now:           time.Now,
	}
}

// ParseMonth parses a YYYY-MM string into the first instant of that month in UTC
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(monthLayout, s)
	if err != nil {
		return time.Time{}, apperror.NewBadRequestError(fmt.Sprintf("Invalid month %q, expected YYYY-MM", s))
	}
	return t.UTC(), nil
}

func monthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// GetKPIs returns totals and the monthly series for the caller, served from
// the cache when possible
func (s *AnalyticsService) GetKPIs(ctx context.Context, req KPIRequest) (*KPIReport, error) {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return nil, err
	}

	to := req.To
	if to.IsZero() {
		to = s.now()
	}
	to = monthStart(to)
	from := req.From
	if from.IsZero() {
		from = to.AddDate(0, -(defaultKPIMonths - 1), 0)
	}
	from = monthStart(from)

	if from.After(to) {
		return nil, apperror.NewUnprocessableError("'from' must not be after 'to'")
	}
	if monthsBetween(from, to) > MaxKPIMonths {
		return nil, apperror.NewUnprocessableError(fmt.Sprintf("A KPI range spans at most %d months", MaxKPIMonths))
	}

	key := kpiCacheKey(ownerID, from, to, req.VehicleID)
	if s.cache != nil {
		var cached KPIReport
		hit, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("kpi cache read failed")
		} else if hit {
			return &cached, nil
		}
	}

	rows, err := s.analyticsRepo.ListMonthlyKPIs(ctx, repository.KPIQuery{
		OwnerID:   ownerID,
		From:      from,
		To:        to,
		VehicleID: req.VehicleID,
	})
	if err != nil {
		return nil, err
	}

	report := BuildKPIReport(rows, from, to)
	report.VehicleID = req.VehicleID

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, report); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("kpi cache write failed")
		}
	}
	return report, nil
}

// RefreshProjection rebuilds the owner's projection and drops cached reports.
// It runs in the worker, outside any request scope.
func (s *AnalyticsService) RefreshProjection(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	written, err := s.analyticsRepo.RebuildMonthlyKPIs(ctx, ownerID, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("rebuild monthly kpis: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.DeletePrefix(ctx, kpiOwnerPrefix(ownerID)); err != nil {
			return written, fmt.Errorf("invalidate kpi cache: %w", err)
		}
	}
	return written, nil
}

// RequestRefresh enqueues a projection rebuild for the caller
func (s *AnalyticsService) RequestRefresh(ctx context.Context) error {
	ownerID, err := ownerFromContext(ctx)
	if err != nil {
		return err
	}
	if s.tasks == nil {
		return apperror.ErrUnavailable
	}
	if err := s.tasks.EnqueueAnalyticsRefresh(ctx, ownerID); err != nil {
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("failed to enqueue analytics refresh")
		return apperror.ErrUnavailable
	}
	return nil
}

// BuildKPIReport folds projection rows into a report covering every month in
// [from, to]. Months without rows are reported with zero values.
func BuildKPIReport(rows []entity.MonthlyKPI, from, to time.Time) *KPIReport {
	from, to = monthStart(from), monthStart(to)

	index := make(map[string]int)
	months := make([]KPIMonth, 0, monthsBetween(from, to))
	for m := from; !m.After(to); m = m.AddDate(0, 1, 0) {
		label := m.Format(monthLayout)
		index[label] = len(months)
		months = append(months, KPIMonth{Month: label})
	}

	var totals KPITotals
	for _, row := range rows {
		i, ok := index[monthStart(row.Month).Format(monthLayout)]
		if !ok {
			continue
		}
		m := &months[i]
		m.ReceiptCount += row.ReceiptCount
		m.TotalCents += row.TotalCents
		m.VATCents += row.VATCents
		m.NetCents += row.NetCents
		m.MaintenanceCents += row.MaintenanceCents

		totals.ReceiptCount += row.ReceiptCount
		totals.TotalCents += row.TotalCents
		totals.VATCents += row.VATCents
		totals.NetCents += row.NetCents
		totals.MaintenanceCents += row.MaintenanceCents
	}
	if totals.ReceiptCount > 0 {
		totals.AverageReceiptCents = decimal.NewFromInt(totals.TotalCents).
			DivRound(decimal.NewFromInt(totals.ReceiptCount), 0).
			IntPart()
	}

	return &KPIReport{
		From:   from.Format(monthLayout),
		To:     to.Format(monthLayout),
		Totals: totals,
		Months: months,
	}
}

func monthsBetween(from, to time.Time) int {
	return (to.Year()-from.Year())*12 + int(to.Month()-from.Month()) + 1
}

func kpiOwnerPrefix(ownerID uuid.UUID) string {
	return "kpis:" + ownerID.String() + ":"
}

func kpiCacheKey(ownerID uuid.UUID, from, to time.Time, vehicleID *valueobject.VehicleID) string {
	vehicle := "all"
	if vehicleID != nil {
		vehicle = vehicleID.String()
	}
	return kpiOwnerPrefix(ownerID) + from.Format(monthLayout) + ":" + to.Format(monthLayout) + ":" + vehicle
}
