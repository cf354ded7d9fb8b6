package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Quotation stores a costing worksheet for a prospective order.
// Input columns mirror the quotation form; the amount columns are
// recomputed by the quotation calculator whenever inputs change.
type Quotation struct {
	ID           string  `gorm:"primaryKey;type:uuid" json:"id"`
	CustomerID   *string `gorm:"type:uuid;index" json:"customer_id"`
	ProductName  string  `json:"product_name"`
	CustomerName string  `json:"customer_name"`

	// Inputs
	Qty          int             `json:"qty"`
	SizeH        decimal.Decimal `gorm:"type:numeric" json:"size_h"`
	SizeW        decimal.Decimal `gorm:"type:numeric" json:"size_w"`
	GSM          decimal.Decimal `gorm:"type:numeric" json:"gsm"`
	RateKg       decimal.Decimal `gorm:"type:numeric" json:"rate_kg"`
	UpsSheet     int             `json:"ups_sheet"`
	BufferQty    int             `json:"buffer_qty"`
	PrintingUps  int             `json:"printing_ups"`
	PrintingRate decimal.Decimal `gorm:"type:numeric" json:"printing_rate"`
	Colour       decimal.Decimal `gorm:"type:numeric" json:"colour"`
	AquaRate     decimal.Decimal `gorm:"type:numeric" json:"aqua_rt"`
	PrintSizeH   decimal.Decimal `gorm:"type:numeric" json:"print_size_h"`
	PrintSizeW   decimal.Decimal `gorm:"type:numeric" json:"print_size_w"`
	PunchingRate decimal.Decimal `gorm:"type:numeric" json:"punching_rt"`
	PunchRate    decimal.Decimal `gorm:"type:numeric" json:"punch_rate"` // fixed die cost
	PlateRate    decimal.Decimal `gorm:"type:numeric" json:"plate_rate"`
	PastingRate  decimal.Decimal `gorm:"type:numeric" json:"pasting_rate"`
	FoilPerPc    decimal.Decimal `gorm:"type:numeric" json:"foil_pc"`
	PackingRate  decimal.Decimal `gorm:"type:numeric" json:"packing_rate"`
	ExtraCost    decimal.Decimal `gorm:"type:numeric" json:"extra_cost"`
	InterestPct  decimal.Decimal `gorm:"type:numeric" json:"interest_pc"`
	ProfitPct    decimal.Decimal `gorm:"type:numeric" json:"profit_pc"`

	// Computed amounts
	PaperOrder  int             `json:"paper_order"`
	PaperWt     decimal.Decimal `gorm:"type:numeric" json:"paper_wt"`
	PaperCost   decimal.Decimal `gorm:"type:numeric" json:"paper_cost"`
	PackingAmt  decimal.Decimal `gorm:"type:numeric" json:"packing_amt"`
	PrintingQty int             `json:"printing_qty"`
	PrintingAmt decimal.Decimal `gorm:"type:numeric" json:"printing_amt"`
	AquaAmt     decimal.Decimal `gorm:"type:numeric" json:"aqua_amt"`
	PunchingAmt decimal.Decimal `gorm:"type:numeric" json:"punching_amt"`
	PlateAmt    decimal.Decimal `gorm:"type:numeric" json:"plate_amt"`
	PastingAmt  decimal.Decimal `gorm:"type:numeric" json:"pasting_amt"`
	FoilAmt     decimal.Decimal `gorm:"type:numeric" json:"foil_amt"`
	Subtotal    decimal.Decimal `gorm:"type:numeric" json:"subtotal"`
	InterestAmt decimal.Decimal `gorm:"type:numeric" json:"interest_amt"`
	ProfitAmt   decimal.Decimal `gorm:"type:numeric" json:"profit_amt"`
	TotalAmt    decimal.Decimal `gorm:"type:numeric" json:"total_amt"`
	RatePerPc   decimal.Decimal `gorm:"type:numeric" json:"rate_pcs"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Quotation) TableName() string { return "quotations" }

func (q *Quotation) BeforeCreate(tx *gorm.DB) error {
	ensureID(&q.ID)
	return nil
}
