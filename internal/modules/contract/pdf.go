package contract

import (
	"bytes"
	"fmt"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/domain"

	"github.com/go-pdf/fpdf"
)

// RenderPDF lays the contract body out as a single-column A4 document.
func RenderPDF(c *domain.Contract) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Contrato %d", c.ID), true)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Contrato #%d - unidade %s - página %d/{nb}", c.ID, c.Unit, pdf.PageNo())), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(c.Body), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render contract pdf: %w", err)
	}
	return buf.Bytes(), nil
}
