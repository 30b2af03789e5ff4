package infra

// pdf.go — quote document generation using go-pdf/fpdf.
// Renders an A4 quote with the business header, client block, item table
// (description, quantity, unit price, line total), discount line when
// present, bold total, validity date, and free-form notes.
//
// The output file is saved to storagePath/quote_{number}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/guustavovelos0/artisan/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateQuotePDF renders the PDF document for a quote. businessName heads
// the page; storagePath is created if needed. Returns the absolute path of
// the generated file.
func GenerateQuotePDF(q *model.Quote, businessName, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("quote_%d.pdf", q.Number)
	filePath := filepath.Join(storagePath, fileName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 36

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, businessName, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Quote #%d", q.Number), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, q.CreatedAt.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Client block ─────────────────────────────────────────────────────────
	if q.Client != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 5, "Prepared for", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, 5, q.Client.Name, "", 1, "L", false, 0, "")
		if q.Client.Email != nil && *q.Client.Email != "" {
			pdf.CellFormat(contentW, 5, *q.Client.Email, "", 1, "L", false, 0, "")
		}
		if q.Client.Address != nil && *q.Client.Address != "" {
			pdf.CellFormat(contentW, 5, *q.Client.Address, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(5)

	// ── Items table ──────────────────────────────────────────────────────────
	col1 := contentW * 0.50 // description
	col2 := contentW * 0.12 // qty
	col3 := contentW * 0.18 // unit price
	col4 := contentW * 0.20 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(col1, 7, "Description", "B", 0, "L", true, 0, "")
	pdf.CellFormat(col2, 7, "Qty", "B", 0, "C", true, 0, "")
	pdf.CellFormat(col3, 7, "Unit price", "B", 0, "R", true, 0, "")
	pdf.CellFormat(col4, 7, "Total", "B", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range q.Items {
		desc := item.Description
		if len(desc) > 48 {
			desc = desc[:47] + "..."
		}
		pdf.CellFormat(col1, 6, desc, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("%d", item.Quantity), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+item.LineTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(18, pdf.GetY(), pageW-18, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(col1+col2+col3, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "$"+q.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !q.Discount.IsZero() {
		pdf.CellFormat(col1+col2+col3, 6, "Discount:", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "-$"+q.Discount.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, "$"+q.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 9)
	if q.ValidUntil != nil {
		pdf.CellFormat(contentW, 5, "Valid until "+q.ValidUntil.Format("January 2, 2006"), "", 1, "L", false, 0, "")
	}
	if q.Notes != nil && *q.Notes != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(contentW, 5, *q.Notes, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
