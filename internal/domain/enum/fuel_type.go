package enum

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCode is returned when a string code is outside an enum's closed set
var ErrUnknownCode = errors.New("unknown enum code")

// FuelType represents the kind of fuel sold on a receipt line
type FuelType string

const (
	FuelTypeSP95   FuelType = "SP95"
	FuelTypeSP98   FuelType = "SP98"
	FuelTypeE10    FuelType = "E10"
	FuelTypeE85    FuelType = "E85"
	FuelTypeDiesel FuelType = "DIESEL"
	FuelTypeLPG    FuelType = "LPG"
)

// AllFuelTypes returns every supported fuel type in display order
func AllFuelTypes() []FuelType {
	return []FuelType{
		FuelTypeSP95,
		FuelTypeSP98,
		FuelTypeE10,
		FuelTypeE85,
		FuelTypeDiesel,
		FuelTypeLPG,
	}
}

// ParseFuelType converts a code into a FuelType. Input is case-insensitive.
func ParseFuelType(s string) (FuelType, error) {
	code := FuelType(strings.ToUpper(strings.TrimSpace(s)))
	if !code.IsValid() {
		return "", fmt.Errorf("fuel type %q: %w", s, ErrUnknownCode)
	}
	return code, nil
}

// IsValid reports whether f belongs to the closed set
func (f FuelType) IsValid() bool {
	switch f {
	case FuelTypeSP95, FuelTypeSP98, FuelTypeE10, FuelTypeE85, FuelTypeDiesel, FuelTypeLPG:
		return true
	}
	return false
}

func (f FuelType) String() string {
	return string(f)
}

// Label returns a human readable name
func (f FuelType) Label() string {
	switch f {
	case FuelTypeSP95:
		return "Unleaded 95"
	case FuelTypeSP98:
		return "Unleaded 98"
	case FuelTypeE10:
		return "Unleaded 95-E10"
	case FuelTypeE85:
		return "Superethanol E85"
	case FuelTypeDiesel:
		return "Diesel"
	case FuelTypeLPG:
		return "LPG"
	}
	return string(f)
}

func (f *FuelType) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseFuelType(str)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f FuelType) Value() (driver.Value, error) {
	if !f.IsValid() {
		return nil, fmt.Errorf("fuel type %q: %w", string(f), ErrUnknownCode)
	}
	return string(f), nil
}

func (f *FuelType) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	default:
		return fmt.Errorf("fuel type: unsupported scan type %T", value)
	}
	parsed, err := ParseFuelType(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}
