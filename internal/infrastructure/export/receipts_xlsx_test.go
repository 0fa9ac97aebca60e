package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/sangkips/fueltrack-api/internal/domain/valueobject"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteReceiptsXLSX(t *testing.T) {
	line, err := valueobject.NewReceiptLine(enum.FuelTypeDiesel, 9560, 1879, 20)
	require.NoError(t, err)

	r := entity.Receipt{
		ID:       valueobject.NewReceiptID(),
		IssuedAt: time.Date(2024, 3, 14, 8, 30, 0, 0, time.UTC),
		Vehicle:  &entity.Vehicle{Name: "Clio", Plate: "AB-123-CD"},
	}
	require.NoError(t, r.AddLine(line))

	var buf bytes.Buffer
	require.NoError(t, WriteReceiptsXLSX(&buf, []entity.Receipt{r}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{receiptsSheet, linesSheet}, f.GetSheetList())

	rows, err := f.GetRows(receiptsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, "Receipt ID", rows[0][0])
	require.Equal(t, r.ID.String(), rows[1][0])
	require.Equal(t, "2024-03-14 08:30", rows[1][1])
	require.Equal(t, "AB-123-CD", rows[1][3])

	total, err := f.GetCellValue(receiptsSheet, "G2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Equal(t, "17.96", total)
	vat, err := f.GetCellValue(receiptsSheet, "H2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Equal(t, "2.99", vat)

	lines, err := f.GetRows(linesSheet)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, "DIESEL", lines[1][2])
	require.Equal(t, "20", lines[1][5])
}

func TestWriteReceiptsXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReceiptsXLSX(&buf, nil))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(receiptsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}
