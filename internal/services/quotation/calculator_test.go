package quotation

import (
	"testing"

	"github.com/printomax/packtrackgo/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalculate_PaperOrderAndWeight(t *testing.T) {
	q := &models.Quotation{
		Qty:       10000,
		UpsSheet:  4,
		BufferQty: 100,
		SizeH:     dec("20"),
		SizeW:     dec("30"),
		GSM:       dec("310"),
		RateKg:    dec("100"),
	}

	Calculate(q)

	// ceil(10000/4) + 100
	assert.Equal(t, 2600, q.PaperOrder)

	// 20*30*310*2600/1550000 = 312 kg
	require.True(t, q.PaperWt.Equal(dec("312")), "paper weight = %s", q.PaperWt)
	assert.True(t, q.PaperCost.Equal(dec("31200")), "paper cost = %s", q.PaperCost)
}

func TestCalculate_SequentialInterestAndProfit(t *testing.T) {
	// Minimal worksheet: only extra cost forms the subtotal
	q := &models.Quotation{
		Qty:         1000,
		ExtraCost:   dec("1000"),
		InterestPct: dec("10"),
		ProfitPct:   dec("20"),
	}

	Calculate(q)

	require.True(t, q.Subtotal.Equal(dec("1000")), "subtotal = %s", q.Subtotal)
	// Interest on subtotal, then profit on subtotal+interest
	assert.True(t, q.InterestAmt.Equal(dec("100")), "interest = %s", q.InterestAmt)
	assert.True(t, q.ProfitAmt.Equal(dec("220")), "profit = %s", q.ProfitAmt)
	assert.True(t, q.TotalAmt.Equal(dec("1320")), "total = %s", q.TotalAmt)
	assert.True(t, q.RatePerPc.Equal(dec("1.32")), "rate/pc = %s", q.RatePerPc)
}

func TestCalculate_ProcessAmounts(t *testing.T) {
	q := &models.Quotation{
		Qty:          4000,
		UpsSheet:     4,
		PrintingUps:  4,
		PrintingRate: dec("150"),
		Colour:       dec("4"),
		PunchingRate: dec("250"),
		PunchRate:    dec("3000"),
		PlateRate:    dec("500"),
		PastingRate:  dec("120"),
		FoilPerPc:    dec("0.5"),
	}

	Calculate(q)

	// paperOrder = 1000, printingQty = 4000
	assert.Equal(t, 1000, q.PaperOrder)
	assert.Equal(t, 4000, q.PrintingQty)

	// 4000/1000 * 150 * 4
	assert.True(t, q.PrintingAmt.Equal(dec("2400")), "printing = %s", q.PrintingAmt)
	// 4000/1000 * 250
	assert.True(t, q.PunchingAmt.Equal(dec("1000")), "punching = %s", q.PunchingAmt)
	// 500 * 4
	assert.True(t, q.PlateAmt.Equal(dec("2000")), "plate = %s", q.PlateAmt)
	// 1000*4/1000 * 120
	assert.True(t, q.PastingAmt.Equal(dec("480")), "pasting = %s", q.PastingAmt)
	// 4000 * 0.5
	assert.True(t, q.FoilAmt.Equal(dec("2000")), "foil = %s", q.FoilAmt)
	// includes the fixed die cost
	assert.True(t, q.Subtotal.Equal(dec("10880")), "subtotal = %s", q.Subtotal)
}

func TestCalculate_ZeroDivisorsAreSafe(t *testing.T) {
	q := &models.Quotation{} // everything blank

	assert.NotPanics(t, func() { Calculate(q) })
	assert.True(t, q.TotalAmt.IsZero())
	assert.True(t, q.RatePerPc.IsZero())
}

func TestAmountPerSheet(t *testing.T) {
	q := &models.Quotation{
		SizeH:  dec("20"),
		SizeW:  dec("30"),
		GSM:    dec("310"),
		RateKg: dec("100"),
	}
	// 20*30*310*100/1550000 = 12
	assert.True(t, AmountPerSheet(q).Equal(dec("12")), "amount/sheet = %s", AmountPerSheet(q))
}
