package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidArgument is returned when a value object is built from invalid input.
var ErrInvalidArgument = errors.New("invalid argument")

// ID is an opaque identifier backed by a time-ordered UUID. The type
// parameter only distinguishes identifier kinds at compile time.
type ID[T any] struct {
	value uuid.UUID
}

type (
	vehicleKind             struct{}
	receiptKind             struct{}
	stationKind             struct{}
	maintenanceEventKind    struct{}
	maintenanceReminderKind struct{}
)

type (
	VehicleID             = ID[vehicleKind]
	ReceiptID             = ID[receiptKind]
	StationID             = ID[stationKind]
	MaintenanceEventID    = ID[maintenanceEventKind]
	MaintenanceReminderID = ID[maintenanceReminderKind]
)

func newID[T any]() ID[T] {
	return ID[T]{value: uuid.Must(uuid.NewV7())}
}

func parseID[T any](kind, s string) (ID[T], error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID[T]{}, fmt.Errorf("%s id %q: %w", kind, s, ErrInvalidArgument)
	}
	if u == uuid.Nil {
		return ID[T]{}, fmt.Errorf("%s id must not be nil: %w", kind, ErrInvalidArgument)
	}
	return ID[T]{value: u}, nil
}

func NewVehicleID() VehicleID                         { return newID[vehicleKind]() }
func NewReceiptID() ReceiptID                         { return newID[receiptKind]() }
func NewStationID() StationID                         { return newID[stationKind]() }
func NewMaintenanceEventID() MaintenanceEventID       { return newID[maintenanceEventKind]() }
func NewMaintenanceReminderID() MaintenanceReminderID { return newID[maintenanceReminderKind]() }

func ParseVehicleID(s string) (VehicleID, error) { return parseID[vehicleKind]("vehicle", s) }
func ParseReceiptID(s string) (ReceiptID, error) { return parseID[receiptKind]("receipt", s) }
func ParseStationID(s string) (StationID, error) { return parseID[stationKind]("station", s) }

func ParseMaintenanceEventID(s string) (MaintenanceEventID, error) {
	return parseID[maintenanceEventKind]("maintenance event", s)
}

func ParseMaintenanceReminderID(s string) (MaintenanceReminderID, error) {
	return parseID[maintenanceReminderKind]("maintenance reminder", s)
}

// IDFromUUID wraps an existing UUID without validation (used when rebuilding from storage)
func IDFromUUID[T any](u uuid.UUID) ID[T] {
	return ID[T]{value: u}
}

func (id ID[T]) UUID() uuid.UUID { return id.value }

func (id ID[T]) String() string { return id.value.String() }

func (id ID[T]) IsZero() bool { return id.value == uuid.Nil }

func (id ID[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value.String())
}

func (id *ID[T]) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := parseID[T]("entity", s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// GormDataType tells gorm how to declare the column
func (ID[T]) GormDataType() string { return "uuid" }

func (id ID[T]) Value() (driver.Value, error) {
	return id.value.String(), nil
}

func (id *ID[T]) Scan(value interface{}) error {
	var u uuid.UUID
	if err := u.Scan(value); err != nil {
		return err
	}
	id.value = u
	return nil
}
