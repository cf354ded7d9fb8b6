// Package printer renders the printable documents that accompany a
// dispatched order: certificate of analysis, delivery label and shade
// card. All content comes from the order's snapshot columns so a
// document stays reproducible even after the product master changes.
package printer

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/printomax/packtrackgo/internal/models"
	"github.com/skip2/go-qrcode"
)

const companyName = "Printomax Packaging"

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("02/01/2006")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// GenerateCOA renders the certificate of analysis for one order.
func GenerateCOA(order *models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(180, 10, companyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(180, 8, "CERTIFICATE OF ANALYSIS", "B", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	header := [][2]string{
		{"Customer", orDash(order.CustomerName)},
		{"Delivery Address", orDash(order.DeliveryAddress)},
		{"Delivery Date", formatDate(order.DeliveryDate)},
		{"Product Name", orDash(order.ProductName)},
		{"Quantity", fmt.Sprintf("%d", deliveredQty(order))},
		{"Batch No", orDash(order.BatchNo)},
		{"Invoice No", orDash(order.InvoiceNo)},
		{"Artwork Code", orDash(order.ArtworkCode)},
	}
	for _, row := range header {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(135, 7, row[1], "", "L", false)
	}
	pdf.Ln(4)

	// Tested-parameters table
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(60, 8, "Parameter", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 8, "Standard", "1", 0, "C", false, 0, "")
	pdf.CellFormat(60, 8, "Observed", "1", 1, "C", false, 0, "")

	construction := orDash(order.ConstructionType)
	if order.FoldingDimension != "" {
		construction = fmt.Sprintf("%s (%s)", construction, order.FoldingDimension)
	}

	rows := [][3]string{
		{"Specification", orDash(firstNonEmpty(order.Specification, order.Specs)), "Complies"},
		{"GSM", gsmTolerance(order.GSMValue), orDash(order.GSMValue)},
		{"Construction", construction, "As per approved specimen"},
		{"Dimension", dimensionTolerance(order.Dimension), orDash(order.Dimension)},
		{"Special Effects", orDash(order.SpecialEffects), "Complies"},
		{"Shade", "As per approved shade card", "Complies"},
	}
	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		pdf.CellFormat(60, 8, row[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, row[1], "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, row[2], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(12)
	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(180, 6, "Checked and approved by Quality Control", "", 1, "L", false, 0, "")
	pdf.CellFormat(180, 6, fmt.Sprintf("Order: %s", order.OrderID), "", 1, "L", false, 0, "")

	return output(pdf)
}

// GenerateDeliveryLabel renders the carton-side delivery label,
// including a QR code carrying the order number.
func GenerateDeliveryLabel(order *models.Order) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 9, companyName, "B", 1, "C", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, strings.ToUpper(orDash(order.ProductName)), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(35, 7, "Deliver To:", "", 0, "L", false, 0, "")
	pdf.MultiCell(0, 7, orDash(order.DeliveryAddress), "", "L", false)

	pdf.CellFormat(35, 7, "Quantity:", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("%d", deliveredQty(order)), "", 1, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Invoice No:", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, orDash(order.InvoiceNo), "", 1, "L", false, 0, "")
	pdf.CellFormat(35, 7, "Order:", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, order.OrderID, "", 1, "L", false, 0, "")

	// QR code for scan-in at the customer's warehouse
	qrPng, err := qrcode.Encode(order.OrderID, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode label QR: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("qr", opts, bytes.NewReader(qrPng))
	pdf.ImageOptions("qr", 160, 55, 30, 30, false, opts, 0, "")

	return output(pdf)
}

// GenerateShadeCard renders the shade reference card the printer signs
// off against before a production run.
func GenerateShadeCard(order *models.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(180, 9, companyName+" - Shade Card", "B", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 10)
	rows := [][2]string{
		{"Product", orDash(order.ProductName)},
		{"Artwork Code", orDash(order.ArtworkCode)},
		{"Ink", orDash(order.Ink)},
		{"Coating", orDash(order.Coating)},
		{"Special Effects", orDash(order.SpecialEffects)},
		{"Paper", orDash(order.PaperTypeName)},
		{"GSM", orDash(order.GSMValue)},
	}
	for _, row := range rows {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 7, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(135, 7, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Approval swatch area: the pressman pastes the approved pulls here
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(180, 7, "Approved Shade Pulls", "", 1, "L", false, 0, "")
	for row := 0; row < 2; row++ {
		y := pdf.GetY()
		for col := 0; col < 3; col++ {
			pdf.Rect(15+float64(col)*60, y, 55, 45, "D")
		}
		pdf.SetY(y + 50)
	}

	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(90, 7, "Approved by: ____________________", "", 0, "L", false, 0, "")
	pdf.CellFormat(90, 7, "Date: ____________________", "", 1, "L", false, 0, "")

	return output(pdf)
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output failed: %w", err)
	}
	return buf.Bytes(), nil
}

func deliveredQty(order *models.Order) int {
	if order.QtyDelivered > 0 {
		return order.QtyDelivered
	}
	return order.Quantity
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func gsmTolerance(gsm string) string {
	if strings.TrimSpace(gsm) == "" {
		return "-"
	}
	return gsm + " +/- 5%"
}

func dimensionTolerance(dim string) string {
	if strings.TrimSpace(dim) == "" {
		return "-"
	}
	return dim + " mm +/- 2mm"
}
