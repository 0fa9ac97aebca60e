package valueobject_test

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
)

func TestNewIDsAreTimeOrderedUUIDs(t *testing.T) {
	a := valueobject.NewReceiptID()
	b := valueobject.NewReceiptID()

	require.Equal(t, uuid.Version(7), a.UUID().Version())
	require.NotEqual(t, a, b)
	require.False(t, a.IsZero())
	require.LessOrEqual(t, a.String(), b.String())
}

func TestParseIDRoundTrip(t *testing.T) {
	id := valueobject.NewVehicleID()
	parsed, err := valueobject.ParseVehicleID(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
}

func TestParseIDRejectsBadInput(t *testing.T) {
	for _, in := range []string{"", "not-a-uuid", uuid.Nil.String()} {
		_, err := valueobject.ParseStationID(in)
		require.ErrorIs(t, err, valueobject.ErrInvalidArgument, in)
	}
}

func TestIDJSON(t *testing.T) {
	id := valueobject.NewMaintenanceEventID()
	raw, err := json.Marshal(id)
	require.NoError(t, err)
	require.Equal(t, `"`+id.String()+`"`, string(raw))

	var back valueobject.MaintenanceEventID
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, id, back)

	require.Error(t, json.Unmarshal([]byte(`"nope"`), &back))
}

func TestIDScanAndValue(t *testing.T) {
	id := valueobject.NewMaintenanceReminderID()
	v, err := id.Value()
	require.NoError(t, err)

	var scanned valueobject.MaintenanceReminderID
	require.NoError(t, scanned.Scan(v))
	require.Equal(t, id, scanned)
}
