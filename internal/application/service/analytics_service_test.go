package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/cache"
	"github.com/sangkips/fueltrack-api/pkg/apperror"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func newKPICache(t *testing.T) (*cache.JSONCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewJSONCache(client, "fueltrack:", time.Minute), mr
}

func TestBuildKPIReportZeroFillsMonths(t *testing.T) {
	car, van := valueobject.NewVehicleID(), valueobject.NewVehicleID()
	rows := []entity.MonthlyKPI{
		{VehicleID: car, Month: month(2026, 1), ReceiptCount: 2, TotalCents: 3000, VATCents: 500, NetCents: 2500},
		{VehicleID: van, Month: month(2026, 1), ReceiptCount: 1, TotalCents: 1001, VATCents: 167, NetCents: 834, MaintenanceCents: 9000},
		{VehicleID: car, Month: month(2026, 3), ReceiptCount: 0, MaintenanceCents: 1200},
	}

	report := BuildKPIReport(rows, month(2025, 12), month(2026, 3))

	require.Equal(t, "2025-12", report.From)
	require.Equal(t, "2026-03", report.To)
	require.Len(t, report.Months, 4)
	require.Equal(t, KPIMonth{Month: "2025-12"}, report.Months[0])
	require.Equal(t, int64(3), report.Months[1].ReceiptCount)
	require.Equal(t, int64(4001), report.Months[1].TotalCents)
	require.Equal(t, KPIMonth{Month: "2026-02"}, report.Months[2])
	require.Equal(t, int64(1200), report.Months[3].MaintenanceCents)

	require.Equal(t, KPITotals{
		ReceiptCount:        3,
		TotalCents:          4001,
		VATCents:            667,
		NetCents:            3334,
		MaintenanceCents:    10200,
		AverageReceiptCents: 1334,
	}, report.Totals)
}

func TestBuildKPIReportWithoutReceipts(t *testing.T) {
	report := BuildKPIReport(nil, month(2026, 5), month(2026, 5))
	require.Len(t, report.Months, 1)
	require.Zero(t, report.Totals.AverageReceiptCents)
}

func TestGetKPIsReadsThroughCache(t *testing.T) {
	ownerID := uuid.New()
	repo := &fakeAnalyticsRepo{rows: []entity.MonthlyKPI{
		{OwnerID: ownerID, VehicleID: valueobject.NewVehicleID(), Month: month(2026, 2), ReceiptCount: 1, TotalCents: 1796, VATCents: 299, NetCents: 1497},
	}}
	kpiCache, mr := newKPICache(t)
	svc := NewAnalyticsService(repo, kpiCache, &fakeTasks{})
	svc.now = fixedClock
	ctx := ownerCtx(ownerID)

	first, err := svc.GetKPIs(ctx, KPIRequest{})
	require.NoError(t, err)
	require.Equal(t, "2025-04", first.From)
	require.Equal(t, "2026-03", first.To)
	require.Len(t, first.Months, 12)
	require.Equal(t, int64(1796), first.Totals.TotalCents)

	second, err := svc.GetKPIs(ctx, KPIRequest{})
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, repo.listCalls)
	require.True(t, mr.Exists("fueltrack:kpis:"+ownerID.String()+":2025-04:2026-03:all"))

	written, err := svc.RefreshProjection(context.Background(), ownerID)
	require.NoError(t, err)
	require.Equal(t, int64(1), written)
	require.Equal(t, []uuid.UUID{ownerID}, repo.rebuilt)
	require.Empty(t, mr.Keys())

	_, err = svc.GetKPIs(ctx, KPIRequest{})
	require.NoError(t, err)
	require.Equal(t, 2, repo.listCalls)
}

func TestRefreshKeepsOtherOwnersCache(t *testing.T) {
	kpiCache, mr := newKPICache(t)
	other := uuid.New()
	require.NoError(t, kpiCache.SetJSON(context.Background(), kpiOwnerPrefix(other)+"2026-01:2026-01:all", KPIReport{}))

	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, kpiCache, nil)
	_, err := svc.RefreshProjection(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Len(t, mr.Keys(), 1)
}

func TestGetKPIsValidatesRange(t *testing.T) {
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, nil, nil)
	ctx := ownerCtx(uuid.New())

	_, err := svc.GetKPIs(ctx, KPIRequest{From: month(2026, 5), To: month(2026, 1)})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	_, err = svc.GetKPIs(ctx, KPIRequest{From: month(2020, 1), To: month(2026, 1)})
	requireAppError(t, err, http.StatusUnprocessableEntity)

	_, err = svc.GetKPIs(context.Background(), KPIRequest{})
	require.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("2026-02")
	require.NoError(t, err)
	require.Equal(t, month(2026, 2), m)

	_, err = ParseMonth("02/2026")
	requireAppError(t, err, http.StatusBadRequest)
}

func TestRequestRefresh(t *testing.T) {
	ownerID := uuid.New()
	tasks := &fakeTasks{}
	svc := NewAnalyticsService(&fakeAnalyticsRepo{}, nil, tasks)

	require.NoError(t, svc.RequestRefresh(ownerCtx(ownerID)))
	require.Equal(t, []uuid.UUID{ownerID}, tasks.refreshes)

	tasks.err = errBroker
	requireAppError(t, svc.RequestRefresh(ownerCtx(ownerID)), http.StatusServiceUnavailable)
}
