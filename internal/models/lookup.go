package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lookup table names, as referenced by the resolver and the sync engine.
const (
	TableSpecialEffects    = "special_effects"
	TableSizes             = "sizes"
	TablePaperTypes        = "paper_types"
	TableGSM               = "gsm"
	TablePasting           = "pasting"
	TableConstructions     = "constructions"
	TableSpecifications    = "specifications"
	TableDeliveryAddresses = "delivery_addresses"
	TableCustomers         = "customers"
	TablePrinters          = "printers"
	TablePaperwala         = "paperwala"
	TableCategories        = "categories"
)

// AllLookupTables lists every lookup table in resolution order.
var AllLookupTables = []string{
	TableSpecialEffects,
	TableSizes,
	TablePaperTypes,
	TableGSM,
	TablePasting,
	TableConstructions,
	TableSpecifications,
	TableDeliveryAddresses,
	TableCustomers,
	TablePrinters,
	TablePaperwala,
	TableCategories,
}

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

// SpecialEffect is a finishing effect applied during production (foil, UV, emboss...)
type SpecialEffect struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (SpecialEffect) TableName() string { return TableSpecialEffects }

func (e *SpecialEffect) BeforeCreate(tx *gorm.DB) error { ensureID(&e.ID); return nil }

// Size is a sheet/print size (e.g. "20x30")
type Size struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (Size) TableName() string { return TableSizes }

func (s *Size) BeforeCreate(tx *gorm.DB) error { ensureID(&s.ID); return nil }

// PaperType is a paper stock (e.g. "Art Card", "Kraft")
type PaperType struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (PaperType) TableName() string { return TablePaperTypes }

func (p *PaperType) BeforeCreate(tx *gorm.DB) error { ensureID(&p.ID); return nil }

// GSM is a paper weight value (stored as a name string, e.g. "300")
type GSM struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (GSM) TableName() string { return TableGSM }

func (g *GSM) BeforeCreate(tx *gorm.DB) error { ensureID(&g.ID); return nil }

// Pasting is a pasting style (side pasting, bottom lock...)
type Pasting struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (Pasting) TableName() string { return TablePasting }

func (p *Pasting) BeforeCreate(tx *gorm.DB) error { ensureID(&p.ID); return nil }

// Construction is a carton construction type
type Construction struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (Construction) TableName() string { return TableConstructions }

func (c *Construction) BeforeCreate(tx *gorm.DB) error { ensureID(&c.ID); return nil }

// Specification is a named product specification text
type Specification struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (Specification) TableName() string { return TableSpecifications }

func (s *Specification) BeforeCreate(tx *gorm.DB) error { ensureID(&s.ID); return nil }

// DeliveryAddress is a customer delivery location. Some legacy rows only
// carry Address, so the resolver falls back to it when Name is empty.
type DeliveryAddress struct {
	ID      string `gorm:"primaryKey;type:uuid" json:"id"`
	Name    string `json:"name"`
	Address string `gorm:"type:text" json:"address"`
}

func (DeliveryAddress) TableName() string { return TableDeliveryAddresses }

func (d *DeliveryAddress) BeforeCreate(tx *gorm.DB) error { ensureID(&d.ID); return nil }

// Customer is a buying party
type Customer struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"index;not null" json:"name"`
}

func (Customer) TableName() string { return TableCustomers }

func (c *Customer) BeforeCreate(tx *gorm.DB) error { ensureID(&c.ID); return nil }

// Printer is a print vendor orders get assigned to
type Printer struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (Printer) TableName() string { return TablePrinters }

func (p *Printer) BeforeCreate(tx *gorm.DB) error { ensureID(&p.ID); return nil }

// Paperwala is a paper supplier
type Paperwala struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (Paperwala) TableName() string { return TablePaperwala }

func (p *Paperwala) BeforeCreate(tx *gorm.DB) error { ensureID(&p.ID); return nil }

// Category is a product category (carton, insert, label...)
type Category struct {
	ID   string `gorm:"primaryKey;type:uuid" json:"id"`
	Name string `gorm:"not null" json:"name"`
}

func (Category) TableName() string { return TableCategories }

func (c *Category) BeforeCreate(tx *gorm.DB) error { ensureID(&c.ID); return nil }
