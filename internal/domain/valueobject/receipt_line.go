package valueobject

import (
	"fmt"

	"github.com/sangkips/fueltrack-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

const (
	// MaxVATRatePercent is the upper bound accepted for a VAT rate
	MaxVATRatePercent = 100

	// lineTotalScale brings ttcTotalCents × unitPriceCents back to cents
	lineTotalScale = 10000
)

var (
	hundred     = decimal.NewFromInt(100)
	scale       = decimal.NewFromInt(lineTotalScale)
	maxCents    = decimal.NewFromInt(1<<63 - 1)
	zeroDecimal = decimal.Zero
)

// ReceiptLine is the tax breakdown of one purchased line of fuel.
// It is immutable: all amounts are derived once in NewReceiptLine.
type ReceiptLine struct {
	fuelType       enum.FuelType
	ttcTotalCents  int64
	unitPriceCents int64
	vatRatePercent int64
	lineTotalCents int64
	vatAmountCents int64
}

// NewReceiptLine validates the inputs and derives the line total and VAT amount.
// All failures wrap ErrInvalidArgument.
func NewReceiptLine(fuelType enum.FuelType, ttcTotalCents, unitPriceCents, vatRatePercent int64) (ReceiptLine, error) {
	if !fuelType.IsValid() {
		return ReceiptLine{}, fmt.Errorf("fuel type %q: %w", fuelType, ErrInvalidArgument)
	}
	if ttcTotalCents < 0 {
		return ReceiptLine{}, fmt.Errorf("ttc total must be >= 0, got %d: %w", ttcTotalCents, ErrInvalidArgument)
	}
	if unitPriceCents < 0 {
		return ReceiptLine{}, fmt.Errorf("unit price must be >= 0, got %d: %w", unitPriceCents, ErrInvalidArgument)
	}
	if vatRatePercent < 0 || vatRatePercent > MaxVATRatePercent {
		return ReceiptLine{}, fmt.Errorf("vat rate must be within [0,%d], got %d: %w", MaxVATRatePercent, vatRatePercent, ErrInvalidArgument)
	}
	if unitPriceCents == 0 && ttcTotalCents > 0 {
		return ReceiptLine{}, fmt.Errorf("unit price must be > 0 when a total is supplied: %w", ErrInvalidArgument)
	}

	total := decimal.NewFromInt(ttcTotalCents).
		Mul(decimal.NewFromInt(unitPriceCents)).
		DivRound(scale, 0)
	if total.GreaterThan(maxCents) {
		return ReceiptLine{}, fmt.Errorf("line total overflows: %w", ErrInvalidArgument)
	}

	lineTotal := total.IntPart()
	return ReceiptLine{
		fuelType:       fuelType,
		ttcTotalCents:  ttcTotalCents,
		unitPriceCents: unitPriceCents,
		vatRatePercent: vatRatePercent,
		lineTotalCents: lineTotal,
		vatAmountCents: VATFromInclusive(lineTotal, vatRatePercent),
	}, nil
}

// VATFromInclusive returns the VAT embedded in a tax-inclusive amount.
// The net amount total×100/(100+rate) is rounded half-up to the cent and the
// VAT is what remains, so net + VAT always equals total.
func VATFromInclusive(totalCents, vatRatePercent int64) int64 {
	if totalCents <= 0 || vatRatePercent <= 0 {
		return 0
	}
	t := decimal.NewFromInt(totalCents)
	net := t.Mul(hundred).DivRound(hundred.Add(decimal.NewFromInt(vatRatePercent)), 0)
	vat := t.Sub(net)
	if vat.LessThan(zeroDecimal) {
		return 0
	}
	return vat.IntPart()
}

func (l ReceiptLine) FuelType() enum.FuelType { return l.fuelType }

func (l ReceiptLine) TTCTotalCents() int64 { return l.ttcTotalCents }

func (l ReceiptLine) UnitPriceCents() int64 { return l.unitPriceCents }

func (l ReceiptLine) VATRatePercent() int64 { return l.vatRatePercent }

// LineTotalCents is the tax-inclusive total of the line
func (l ReceiptLine) LineTotalCents() int64 { return l.lineTotalCents }

// VATAmountCents is the VAT portion of LineTotalCents
func (l ReceiptLine) VATAmountCents() int64 { return l.vatAmountCents }

// NetAmountCents is LineTotalCents without VAT
func (l ReceiptLine) NetAmountCents() int64 { return l.lineTotalCents - l.vatAmountCents }
