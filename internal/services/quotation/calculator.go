// Package quotation computes the costing worksheet for a prospective
// print-packaging order: paper weight and cost, per-process amounts,
// interest and profit loading, and the final per-piece rate.
package quotation

import (
	"math"

	"github.com/printomax/packtrackgo/internal/models"
	"github.com/shopspring/decimal"
)

// paperWeightDivisor converts (H cm × W cm × GSM × sheets) to kilograms.
var paperWeightDivisor = decimal.NewFromInt(1550000)

var (
	thousand           = decimal.NewFromInt(1000)
	hundred            = decimal.NewFromInt(100)
	defaultPackingRate = decimal.RequireFromString("5.333")
)

// Calculate recomputes every derived amount on the quotation in place.
// Zero or missing divisors fall back to 1 so a half-filled worksheet
// still produces numbers instead of a division error.
func Calculate(q *models.Quotation) {
	ups := q.UpsSheet
	if ups <= 0 {
		ups = 1
	}

	// Sheets to order: enough for the quantity at this UPS, plus buffer
	q.PaperOrder = int(math.Ceil(float64(q.Qty)/float64(ups))) + q.BufferQty
	paperOrder := decimal.NewFromInt(int64(q.PaperOrder))

	q.PaperWt = q.SizeH.Mul(q.SizeW).Mul(q.GSM).Mul(paperOrder).Div(paperWeightDivisor)
	q.PaperCost = q.PaperWt.Mul(q.RateKg)

	packingRate := q.PackingRate
	if packingRate.IsZero() {
		packingRate = defaultPackingRate
	}
	q.PackingAmt = q.PaperWt.Mul(packingRate)

	q.PrintingQty = q.PaperOrder * q.PrintingUps
	printingQty := decimal.NewFromInt(int64(q.PrintingQty))
	q.PrintingAmt = printingQty.Div(thousand).Mul(q.PrintingRate).Mul(q.Colour)

	// Aqua coating uses print dimensions when given, sheet dimensions otherwise
	printH, printW := q.PrintSizeH, q.PrintSizeW
	if printH.IsZero() {
		printH = q.SizeH
	}
	if printW.IsZero() {
		printW = q.SizeW
	}
	q.AquaAmt = printH.Mul(printW).Mul(printingQty).Mul(q.AquaRate)

	q.PunchingAmt = printingQty.Div(thousand).Mul(q.PunchingRate)
	q.PlateAmt = q.PlateRate.Mul(q.Colour)
	q.PastingAmt = paperOrder.Mul(decimal.NewFromInt(int64(ups))).Div(thousand).Mul(q.PastingRate)
	q.FoilAmt = printingQty.Mul(q.FoilPerPc)

	q.Subtotal = q.PaperCost.
		Add(q.PackingAmt).
		Add(q.PrintingAmt).
		Add(q.AquaAmt).
		Add(q.PunchingAmt).
		Add(q.PunchRate). // fixed die cost
		Add(q.PlateAmt).
		Add(q.PastingAmt).
		Add(q.FoilAmt).
		Add(q.ExtraCost)

	// Interest on costs first, then profit on costs plus interest
	q.InterestAmt = q.Subtotal.Mul(q.InterestPct).Div(hundred)
	q.ProfitAmt = q.Subtotal.Add(q.InterestAmt).Mul(q.ProfitPct).Div(hundred)
	q.TotalAmt = q.Subtotal.Add(q.InterestAmt).Add(q.ProfitAmt)

	divisor := q.Qty
	if divisor <= 0 {
		divisor = 1
	}
	q.RatePerPc = q.TotalAmt.Div(decimal.NewFromInt(int64(divisor)))
}

// AmountPerSheet is the raw paper cost of a single sheet at the
// quotation's dimensions and rate.
func AmountPerSheet(q *models.Quotation) decimal.Decimal {
	return q.SizeH.Mul(q.SizeW).Mul(q.GSM).Mul(q.RateKg).Div(paperWeightDivisor)
}
