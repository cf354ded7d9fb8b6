package printer

import (
	"bytes"
	"testing"
	"time"

	"github.com/printomax/packtrackgo/internal/models"
)

func sampleOrder() *models.Order {
	date := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)
	return &models.Order{
		ID:               "ord-1",
		OrderID:          "ORD-20260815-0042",
		ProductName:      "Livadrine Carton",
		CustomerName:     "Acme Pharma",
		DeliveryAddress:  "Plot 14, MIDC, Pune",
		DeliveryDate:     &date,
		GSMValue:         "300",
		Dimension:        "85x40x110",
		ConstructionType: "Reverse Tuck In",
		SpecialEffects:   "Foil Stamping | Spot UV",
		ArtworkCode:      "LIV-001",
		BatchNo:          "B-77",
		InvoiceNo:        "INV-1203",
		Quantity:         5000,
		QtyDelivered:     4800,
	}
}

func assertPDF(t *testing.T, data []byte, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty document")
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not look like a PDF: %q", data[:8])
	}
}

func TestGenerateCOA(t *testing.T) {
	data, err := GenerateCOA(sampleOrder())
	assertPDF(t, data, err)
}

func TestGenerateDeliveryLabel(t *testing.T) {
	data, err := GenerateDeliveryLabel(sampleOrder())
	assertPDF(t, data, err)
}

func TestGenerateShadeCard(t *testing.T) {
	data, err := GenerateShadeCard(sampleOrder())
	assertPDF(t, data, err)
}

// Sparse orders (no product link, blank snapshots) must still render
func TestGenerate_SparseOrder(t *testing.T) {
	order := &models.Order{ID: "ord-2", OrderID: "ORD-20260815-0043"}

	for name, gen := range map[string]func(*models.Order) ([]byte, error){
		"coa":   GenerateCOA,
		"label": GenerateDeliveryLabel,
		"shade": GenerateShadeCard,
	} {
		t.Run(name, func(t *testing.T) {
			data, err := gen(order)
			assertPDF(t, data, err)
		})
	}
}
