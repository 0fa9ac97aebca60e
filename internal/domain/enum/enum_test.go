package enum_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sangkips/fueltrack-api/internal/domain/enum"
)

func TestParseFuelType(t *testing.T) {
	for _, ft := range enum.AllFuelTypes() {
		parsed, err := enum.ParseFuelType(string(ft))
		require.NoError(t, err)
		require.Equal(t, ft, parsed)
		require.NotEmpty(t, ft.Label())
	}

	parsed, err := enum.ParseFuelType(" diesel ")
	require.NoError(t, err)
	require.Equal(t, enum.FuelTypeDiesel, parsed)

	_, err = enum.ParseFuelType("KEROSENE")
	require.ErrorIs(t, err, enum.ErrUnknownCode)
}

func TestFuelTypeJSONRejectsUnknownCodes(t *testing.T) {
	var ft enum.FuelType
	require.NoError(t, json.Unmarshal([]byte(`"e10"`), &ft))
	require.Equal(t, enum.FuelTypeE10, ft)
	require.Error(t, json.Unmarshal([]byte(`"KEROSENE"`), &ft))
	require.Error(t, json.Unmarshal([]byte(`42`), &ft))
}

func TestFuelTypeValueRejectsUnknownCodes(t *testing.T) {
	_, err := enum.FuelType("KEROSENE").Value()
	require.ErrorIs(t, err, enum.ErrUnknownCode)

	v, err := enum.FuelTypeLPG.Value()
	require.NoError(t, err)
	require.Equal(t, "LPG", v)
}

func TestReminderStatusJSON(t *testing.T) {
	raw, err := json.Marshal(enum.ReminderStatusDue)
	require.NoError(t, err)
	require.Equal(t, `"DUE"`, string(raw))

	var s enum.ReminderStatus
	require.NoError(t, json.Unmarshal([]byte(`"done"`), &s))
	require.Equal(t, enum.ReminderStatusDone, s)
	require.Error(t, json.Unmarshal([]byte(`"LATE"`), &s))
}

func TestReminderStatusScan(t *testing.T) {
	var s enum.ReminderStatus
	require.NoError(t, s.Scan(int64(1)))
	require.Equal(t, enum.ReminderStatusDue, s)
	require.NoError(t, s.Scan(nil))
	require.Equal(t, enum.ReminderStatusPending, s)

	require.ErrorIs(t, s.Scan(int64(7)), enum.ErrUnknownCode)
	require.Error(t, s.Scan("DUE"))
	require.Equal(t, enum.ReminderStatusPending, s)
}

func TestGeocodingStatusScanRejectsUnknownValues(t *testing.T) {
	var s enum.GeocodingStatus
	require.NoError(t, s.Scan(int64(2)))
	require.Equal(t, enum.GeocodingStatusFailed, s)

	cases := []struct {
		name  string
		value interface{}
	}{
		{"out of range", int64(3)},
		{"negative", int64(-1)},
		{"string", "FAILED"},
		{"bytes", []byte("1")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Error(t, s.Scan(tc.value))
			require.Equal(t, enum.GeocodingStatusFailed, s)
		})
	}
	require.ErrorIs(t, s.Scan(int64(3)), enum.ErrUnknownCode)
}

func TestParseMaintenanceType(t *testing.T) {
	mt, err := enum.ParseMaintenanceType("oil_change")
	require.NoError(t, err)
	require.Equal(t, enum.MaintenanceTypeOilChange, mt)

	_, err = enum.ParseMaintenanceType("detailing")
	require.ErrorIs(t, err, enum.ErrUnknownCode)
}
