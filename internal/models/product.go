package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is the authoritative master record for a packaging item.
// Orders denormalize a snapshot of it at entry time; the reconcile
// engine re-projects it onto linked orders on demand.
//
// SpecialEffects is semantically a list of SpecialEffect ids but is
// persisted as a single string. Legacy rows carry one of three
// encodings (JSON array literal, pipe-delimited ids, resolved names);
// the normalizer collapses all of them to the canonical pipe-delimited
// id form, which is the only form ever written back here.
type Product struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	ProductName string `gorm:"index;not null" json:"product_name"`
	ArtworkCode string `gorm:"index" json:"artwork_code"`

	// Physical attributes
	Dimension  string `json:"dimension"`   // e.g. "85x40x110"
	FoldingDim string `json:"folding_dim"` // inserts only
	Ink        string `json:"ink"`
	PlateNo    string `json:"plate_no"`
	Coating    string `json:"coating"`
	UPS        *int   `json:"ups"` // units per sheet; NULL = not measured

	// SpecialEffects: canonical "id|id|id" (see type comment).
	// Specs: derived display string, never hand-edited once inputs exist.
	SpecialEffects string `json:"special_effects"`
	Specs          string `gorm:"type:text" json:"specs"`

	// Lookup references
	CustomerID        *string `gorm:"type:uuid;index" json:"customer_id"`
	PaperTypeID       *string `gorm:"type:uuid" json:"paper_type_id"`
	GSMID             *string `gorm:"type:uuid" json:"gsm_id"`
	SizeID            *string `gorm:"type:uuid" json:"size_id"`
	PastingID         *string `gorm:"type:uuid" json:"pasting_id"`
	ConstructionID    *string `gorm:"type:uuid" json:"construction_id"`
	SpecificationID   *string `gorm:"type:uuid" json:"specification_id"`
	DeliveryAddressID *string `gorm:"type:uuid" json:"delivery_address_id"`
	CategoryID        *string `gorm:"type:uuid" json:"category_id"`

	// Artwork files
	ArtworkPDF   string `json:"artwork_pdf"`
	ArtworkCDR   string `json:"artwork_cdr"`
	ProductImage string `json:"product_image"`

	Metadata datatypes.JSON `json:"metadata,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// UPSValue returns the units-per-sheet count, 0 when unset.
func (p *Product) UPSValue() int {
	if p.UPS == nil {
		return 0
	}
	return *p.UPS
}
