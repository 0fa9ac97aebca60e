package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/repository"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/geocoding"
	infraRepo "github.com/sangkips/fueltrack-api/internal/infrastructure/repository"
	"github.com/sangkips/fueltrack-api/pkg/pagination"
)

var fixedNow = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func ownerCtx(ownerID uuid.UUID) context.Context {
	return infraRepo.WithOwner(context.Background(), ownerID)
}

func visible(ctx context.Context, ownerID uuid.UUID) bool {
	id, ok := infraRepo.GetOwnerID(ctx)
	return ok && id == ownerID
}

type fakeVehicleRepo struct {
	mu       sync.Mutex
	vehicles map[valueobject.VehicleID]*entity.Vehicle
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{vehicles: map[valueobject.VehicleID]*entity.Vehicle{}}
}

func (r *fakeVehicleRepo) Create(_ context.Context, v *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.ID.IsZero() {
		v.ID = valueobject.NewVehicleID()
	}
	v.CreatedAt = fixedNow
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) GetByID(ctx context.Context, id valueobject.VehicleID) (*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok || !visible(ctx, v.OwnerID) {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVehicleRepo) GetByPlate(ctx context.Context, plate string) (*entity.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.vehicles {
		if v.Plate == plate && visible(ctx, v.OwnerID) {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeVehicleRepo) Update(_ context.Context, v *entity.Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.vehicles[v.ID] = &cp
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id valueobject.VehicleID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vehicles, id)
	return nil
}

func (r *fakeVehicleRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Vehicle, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Vehicle
	for _, v := range r.vehicles {
		if !visible(ctx, v.OwnerID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(v.Name+v.Plate), strings.ToLower(search)) {
			continue
		}
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, int64(len(out)), nil
}

// AdvanceOdometer mirrors the conditional update the stores run inside their transactions
func (r *fakeVehicleRepo) AdvanceOdometer(_ context.Context, id valueobject.VehicleID, km int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.vehicles[id]
	if !ok {
		return false, nil
	}
	return v.AdvanceOdometer(km), nil
}

type fakeStationRepo struct {
	mu        sync.Mutex
	stations  map[valueobject.StationID]*entity.Station
	geocoding map[valueobject.StationID]repository.GeocodingResult
}

func newFakeStationRepo() *fakeStationRepo {
	return &fakeStationRepo{
		stations:  map[valueobject.StationID]*entity.Station{},
		geocoding: map[valueobject.StationID]repository.GeocodingResult{},
	}
}

func (r *fakeStationRepo) Create(_ context.Context, s *entity.Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.ID.IsZero() {
		s.ID = valueobject.NewStationID()
	}
	cp := *s
	r.stations[s.ID] = &cp
	return nil
}

func (r *fakeStationRepo) GetByID(ctx context.Context, id valueobject.StationID) (*entity.Station, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stations[id]
	if !ok || !visible(ctx, s.OwnerID) {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStationRepo) Update(_ context.Context, s *entity.Station) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.stations[s.ID] = &cp
	return nil
}

func (r *fakeStationRepo) Delete(_ context.Context, id valueobject.StationID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stations, id)
	return nil
}

func (r *fakeStationRepo) List(ctx context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Station, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Station
	for _, s := range r.stations {
		if visible(ctx, s.OwnerID) {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeStationRepo) UpdateGeocoding(_ context.Context, id valueobject.StationID, result repository.GeocodingResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.geocoding[id] = result
	if s, ok := r.stations[id]; ok {
		s.GeocodingStatus = result.Status
		s.Latitude = result.Latitude
		s.Longitude = result.Longitude
	}
	return nil
}

type fakeReceiptRepo struct {
	mu       sync.Mutex
	receipts map[valueobject.ReceiptID]*entity.Receipt
	failWith error
	// vehicles receives odometer readings as part of Create
	vehicles    *fakeVehicleRepo
	odometerErr error
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{receipts: map[valueobject.ReceiptID]*entity.Receipt{}}
}

func (r *fakeReceiptRepo) Create(ctx context.Context, rc *entity.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if rc.OdometerKm != nil {
		if r.odometerErr != nil {
			return r.odometerErr
		}
		if r.vehicles != nil {
			if _, err := r.vehicles.AdvanceOdometer(ctx, rc.VehicleID, *rc.OdometerKm); err != nil {
				return err
			}
		}
	}
	if rc.ID.IsZero() {
		rc.ID = valueobject.NewReceiptID()
	}
	rc.CreatedAt = fixedNow
	cp := *rc
	r.receipts[rc.ID] = &cp
	return nil
}

func (r *fakeReceiptRepo) GetByID(ctx context.Context, id valueobject.ReceiptID) (*entity.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rc, ok := r.receipts[id]
	if !ok || !visible(ctx, rc.OwnerID) {
		return nil, nil
	}
	cp := *rc
	return &cp, nil
}

func (r *fakeReceiptRepo) Delete(_ context.Context, id valueobject.ReceiptID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.receipts, id)
	return nil
}

func (r *fakeReceiptRepo) matching(ctx context.Context, f repository.ReceiptFilter) []entity.Receipt {
	var out []entity.Receipt
	for _, rc := range r.receipts {
		if !visible(ctx, rc.OwnerID) {
			continue
		}
		if f.VehicleID != nil && rc.VehicleID != *f.VehicleID {
			continue
		}
		if f.From != nil && rc.IssuedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && rc.IssuedAt.After(*f.To) {
			continue
		}
		out = append(out, *rc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.String() < out[j].ID.String() })
	return out
}

func (r *fakeReceiptRepo) List(ctx context.Context, f repository.ReceiptFilter, _ *pagination.PaginationParams) ([]entity.Receipt, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.matching(ctx, f)
	return out, int64(len(out)), nil
}

func (r *fakeReceiptRepo) ListWithCursor(ctx context.Context, f repository.ReceiptFilter, params *pagination.CursorParams) ([]entity.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.matching(ctx, f)
	if len(out) > params.Limit+1 {
		out = out[:params.Limit+1]
	}
	return out, nil
}

func (r *fakeReceiptRepo) ListAll(ctx context.Context, f repository.ReceiptFilter) ([]entity.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matching(ctx, f), nil
}

type fakeMaintenanceRepo struct {
	mu        sync.Mutex
	events    map[valueobject.MaintenanceEventID]*entity.MaintenanceEvent
	reminders map[valueobject.MaintenanceReminderID]*entity.MaintenanceReminder
	vehicles  *fakeVehicleRepo
}

func newFakeMaintenanceRepo(vehicles *fakeVehicleRepo) *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{
		events:    map[valueobject.MaintenanceEventID]*entity.MaintenanceEvent{},
		reminders: map[valueobject.MaintenanceReminderID]*entity.MaintenanceReminder{},
		vehicles:  vehicles,
	}
}

func (r *fakeMaintenanceRepo) CreateEvent(ctx context.Context, e *entity.MaintenanceEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e.OdometerKm != nil {
		if _, err := r.vehicles.AdvanceOdometer(ctx, e.VehicleID, *e.OdometerKm); err != nil {
			return err
		}
	}
	if e.ID.IsZero() {
		e.ID = valueobject.NewMaintenanceEventID()
	}
	cp := *e
	r.events[e.ID] = &cp
	return nil
}

func (r *fakeMaintenanceRepo) GetEventByID(ctx context.Context, id valueobject.MaintenanceEventID) (*entity.MaintenanceEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok || !visible(ctx, e.OwnerID) {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (r *fakeMaintenanceRepo) DeleteEvent(_ context.Context, id valueobject.MaintenanceEventID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.events, id)
	return nil
}

func (r *fakeMaintenanceRepo) ListEvents(ctx context.Context, vehicleID valueobject.VehicleID) ([]entity.MaintenanceEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.MaintenanceEvent
	for _, e := range r.events {
		if e.VehicleID == vehicleID && visible(ctx, e.OwnerID) {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *fakeMaintenanceRepo) CreateReminder(_ context.Context, rem *entity.MaintenanceReminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if rem.ID.IsZero() {
		rem.ID = valueobject.NewMaintenanceReminderID()
	}
	cp := *rem
	r.reminders[rem.ID] = &cp
	return nil
}

func (r *fakeMaintenanceRepo) GetReminderByID(ctx context.Context, id valueobject.MaintenanceReminderID) (*entity.MaintenanceReminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rem, ok := r.reminders[id]
	if !ok || !visible(ctx, rem.OwnerID) {
		return nil, nil
	}
	cp := *rem
	return &cp, nil
}

func (r *fakeMaintenanceRepo) UpdateReminder(_ context.Context, rem *entity.MaintenanceReminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *rem
	r.reminders[rem.ID] = &cp
	return nil
}

func (r *fakeMaintenanceRepo) DeleteReminder(_ context.Context, id valueobject.MaintenanceReminderID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.reminders, id)
	return nil
}

func (r *fakeMaintenanceRepo) ListReminders(ctx context.Context, vehicleID valueobject.VehicleID, status *enum.ReminderStatus) ([]entity.MaintenanceReminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.MaintenanceReminder
	for _, rem := range r.reminders {
		if rem.VehicleID != vehicleID || !visible(ctx, rem.OwnerID) {
			continue
		}
		if status != nil && rem.Status != *status {
			continue
		}
		out = append(out, *rem)
	}
	return out, nil
}

func (r *fakeMaintenanceRepo) CompleteOpenReminders(_ context.Context, vehicleID valueobject.VehicleID, typ enum.MaintenanceType, at time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rem := range r.reminders {
		if rem.VehicleID == vehicleID && rem.Type == typ && rem.Status != enum.ReminderStatusDone {
			rem.Complete(at)
			n++
		}
	}
	return n, nil
}

func (r *fakeMaintenanceRepo) MarkDueReminders(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rem := range r.reminders {
		if rem.Status != enum.ReminderStatusPending {
			continue
		}
		var odometer int64
		if v, ok := r.vehicles.vehicles[rem.VehicleID]; ok {
			odometer = v.OdometerKm
		}
		if rem.IsDue(now, odometer) {
			rem.Status = enum.ReminderStatusDue
			n++
		}
	}
	return n, nil
}

type fakeAnalyticsRepo struct {
	rows       []entity.MonthlyKPI
	listCalls  int
	rebuilt    []uuid.UUID
	rebuildErr error
}

func (r *fakeAnalyticsRepo) RebuildMonthlyKPIs(_ context.Context, ownerID uuid.UUID, _ time.Time) (int64, error) {
	if r.rebuildErr != nil {
		return 0, r.rebuildErr
	}
	r.rebuilt = append(r.rebuilt, ownerID)
	return int64(len(r.rows)), nil
}

func (r *fakeAnalyticsRepo) ListMonthlyKPIs(_ context.Context, q repository.KPIQuery) ([]entity.MonthlyKPI, error) {
	r.listCalls++
	var out []entity.MonthlyKPI
	for _, row := range r.rows {
		if row.OwnerID != q.OwnerID || row.Month.Before(q.From) || row.Month.After(q.To) {
			continue
		}
		if q.VehicleID != nil && row.VehicleID != *q.VehicleID {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

type fakeTasks struct {
	refreshes []uuid.UUID
	geocodes  []valueobject.StationID
	err       error
}

func (f *fakeTasks) EnqueueAnalyticsRefresh(_ context.Context, ownerID uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.refreshes = append(f.refreshes, ownerID)
	return nil
}

func (f *fakeTasks) EnqueueStationGeocode(_ context.Context, _ uuid.UUID, stationID valueobject.StationID) error {
	if f.err != nil {
		return f.err
	}
	f.geocodes = append(f.geocodes, stationID)
	return nil
}

type fakeGeocoder struct {
	coords *geocoding.Coordinates
	err    error
}

func (g *fakeGeocoder) Geocode(context.Context, string) (*geocoding.Coordinates, error) {
	return g.coords, g.err
}

var errBroker = errors.New("broker down")
