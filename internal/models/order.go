package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OrderStatus defines possible order statuses
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusCompleted OrderStatus = "Completed"
)

// OrderProgress is the production stage an order sits in on the board
type OrderProgress string

const (
	ProgressPaper   OrderProgress = "Paper"
	ProgressPlate   OrderProgress = "Plate"
	ProgressPrint   OrderProgress = "Print"
	ProgressVarnish OrderProgress = "Varnish"
	ProgressFoil    OrderProgress = "Foil"
	ProgressPasting OrderProgress = "Pasting"
	ProgressFolding OrderProgress = "Folding"
	ProgressReady   OrderProgress = "Ready"
	ProgressHold    OrderProgress = "Hold"
)

// ProgressStages lists the production stages in board order.
var ProgressStages = []OrderProgress{
	ProgressPaper, ProgressPlate, ProgressPrint, ProgressVarnish,
	ProgressFoil, ProgressPasting, ProgressFolding, ProgressReady,
	ProgressHold,
}

// ValidProgress reports whether s is a known production stage.
func ValidProgress(s OrderProgress) bool {
	for _, p := range ProgressStages {
		if p == s {
			return true
		}
	}
	return false
}

// Order is a production order. The snapshot columns denormalize the
// linked product's resolved state at entry or last-sync time so the
// order remains readable (and printable) independently of later
// product edits. Operational fields below the snapshot block belong
// to the order alone and are never touched by reconciliation.
type Order struct {
	ID        string  `gorm:"primaryKey;type:uuid" json:"id"`
	OrderID   string  `gorm:"uniqueIndex;not null" json:"order_id"`
	ProductID *string `gorm:"type:uuid;index" json:"product_id"`
	ParentID  *string `gorm:"type:uuid;index" json:"parent_id"` // split lineage

	// Snapshot columns (product + lookup resolution)
	ProductName      string `json:"product_name"`
	CustomerName     string `json:"customer_name"`
	PaperTypeName    string `json:"paper_type_name"`
	GSMValue         string `json:"gsm_value"`
	PrintSize        string `json:"print_size"`
	PastingType      string `json:"pasting_type"`
	ConstructionType string `json:"construction_type"`
	Specification    string `gorm:"type:text" json:"specification"`
	DeliveryAddress  string `gorm:"type:text" json:"delivery_address"`
	SpecialEffects   string `json:"special_effects"` // resolved names, "Foil | UV"
	Dimension        string `json:"dimension"`
	Ink              string `json:"ink"`
	PlateNo          string `json:"plate_no"`
	Coating          string `json:"coating"`
	ArtworkCode      string `json:"artwork_code"`
	ArtworkPDF       string `json:"artwork_pdf"`
	ArtworkCDR       string `json:"artwork_cdr"`
	ProductImage     string `json:"product_image"`
	FoldingDimension string `json:"folding_dimension"`
	Specs            string `gorm:"type:text" json:"specs"`
	ProductSpecs     string `gorm:"type:text" json:"product_specs"`
	UPS              *int   `json:"ups"`

	// Operational fields (never synced)
	Quantity     int             `json:"quantity"`
	QtyDelivered int             `json:"qty_delivered"`
	Status       OrderStatus     `gorm:"default:'Pending';index" json:"status"`
	Progress     OrderProgress   `gorm:"default:'Paper';index" json:"progress"`
	Value        decimal.Decimal `gorm:"type:numeric" json:"value"`
	PrinterName  string          `json:"printer_name"`
	BatchNo      string          `json:"batch_no"`
	InvoiceNo    string          `json:"invoice_no"`
	OrderDate    *time.Time      `json:"order_date"`
	DeliveryDate *time.Time      `json:"delivery_date"`

	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// BeforeCreate assigns the uuid and a human order number when absent
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	ensureID(&o.ID)
	if o.OrderID == "" {
		o.OrderID = generateOrderID()
	}
	return nil
}

// generateOrderID creates a unique human-readable order number
func generateOrderID() string {
	return fmt.Sprintf("ORD-%s-%04d", time.Now().Format("20060102"), time.Now().UnixNano()%10000)
}

// IsSplit returns true if this order was cloned off another order
func (o *Order) IsSplit() bool {
	return o.ParentID != nil && *o.ParentID != ""
}
