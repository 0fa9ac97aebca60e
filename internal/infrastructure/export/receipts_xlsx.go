package export

import (
	"fmt"
	"io"

	"github.com/sangkips/fueltrack-api/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const (
	receiptsSheet = "Receipts"
	linesSheet    = "Lines"
	dateLayout    = "2006-01-02 15:04"
)

var (
	receiptHeaders = []interface{}{"Receipt ID", "Issued at", "Vehicle", "Plate", "Station", "Odometer (km)", "Total", "VAT", "Net", "Notes"}
	lineHeaders    = []interface{}{"Receipt ID", "Position", "Fuel type", "TTC total", "Unit price", "VAT rate (%)", "Line total", "VAT amount"}
)

// WriteReceiptsXLSX writes a two-sheet workbook: one row per receipt and one row per fuel line.
// Money columns are written in currency units with two decimals.
func WriteReceiptsXLSX(w io.Writer, receipts []entity.Receipt) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", receiptsSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(linesSheet); err != nil {
		return err
	}

	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(receiptsSheet, "A1", &receiptHeaders); err != nil {
		return err
	}
	if err := f.SetSheetRow(linesSheet, "A1", &lineHeaders); err != nil {
		return err
	}

	lineRow := 2
	for i, r := range receipts {
		row := i + 2
		var vehicle, plate, station string
		if r.Vehicle != nil {
			vehicle, plate = r.Vehicle.Name, r.Vehicle.Plate
		}
		if r.Station != nil {
			station = r.Station.Name
		}
		var odometer interface{}
		if r.OdometerKm != nil {
			odometer = *r.OdometerKm
		}
		var notes string
		if r.Notes != nil {
			notes = *r.Notes
		}
		values := []interface{}{
			r.ID.String(),
			r.IssuedAt.Format(dateLayout),
			vehicle,
			plate,
			station,
			odometer,
			centsToUnits(r.TotalCents),
			centsToUnits(r.VATCents),
			centsToUnits(r.NetCents()),
			notes,
		}
		if err := f.SetSheetRow(receiptsSheet, cell("A", row), &values); err != nil {
			return err
		}

		for _, l := range r.Lines {
			lineValues := []interface{}{
				r.ID.String(),
				l.Position,
				string(l.FuelType),
				centsToUnits(l.TTCTotalCents),
				centsToUnits(l.UnitPriceCents),
				l.VATRatePercent,
				centsToUnits(l.LineTotalCents),
				centsToUnits(l.VATAmountCents),
			}
			if err := f.SetSheetRow(linesSheet, cell("A", lineRow), &lineValues); err != nil {
				return err
			}
			lineRow++
		}
	}

	if len(receipts) > 0 {
		if err := f.SetCellStyle(receiptsSheet, "G2", cell("I", len(receipts)+1), money); err != nil {
			return err
		}
	}
	if lineRow > 2 {
		if err := f.SetCellStyle(linesSheet, "D2", cell("E", lineRow-1), money); err != nil {
			return err
		}
		if err := f.SetCellStyle(linesSheet, "G2", cell("H", lineRow-1), money); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func centsToUnits(cents int64) float64 {
	return float64(cents) / 100
}
