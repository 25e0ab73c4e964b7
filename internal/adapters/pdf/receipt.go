// Package pdf renders a one-page, right-to-left receipt of a submitted form.
// Each page shows a dark title bar, a two-column key/value table of the
// record, and a footer with the generation time.
package pdf

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/csg33k/approval-form/internal/domain"
	"github.com/csg33k/approval-form/internal/jalali"
)

const (
	// ContentType is the MIME type of a rendered receipt.
	ContentType = "application/pdf"

	fontFamily = "receipt"
)

// Receipt renders records with a UTF-8 TrueType font that carries Persian glyphs.
type Receipt struct {
	fontPath string
	now      func() time.Time
}

// New checks that fontPath is readable. The core PDF fonts cannot encode
// Persian, so a receipt without a font file is not possible.
func New(fontPath string) (*Receipt, error) {
	if fontPath == "" {
		return nil, fmt.Errorf("pdf receipt: font path is empty")
	}
	if _, err := os.Stat(fontPath); err != nil {
		return nil, fmt.Errorf("pdf receipt: %w", err)
	}
	return &Receipt{fontPath: fontPath, now: time.Now}, nil
}

// Render writes title and every field of r as one A4 page.
func (rc *Receipt) Render(title string, r domain.Record) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddUTF8Font(fontFamily, "", rc.fontPath)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("load receipt font: %w", err)
	}
	pdf.RTL()
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	marginL, marginT, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Title bar ────────────────────────────────────────────────────────────
	pdf.SetFillColor(102, 126, 234) // #667eea
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont(fontFamily, "", 13)
	pdf.SetXY(marginL, marginT)
	pdf.CellFormat(contentW, 11, title, "", 1, "C", true, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 15

	// ── Fields ───────────────────────────────────────────────────────────────
	keyW := contentW * 0.35
	valW := contentW - keyW
	rowH := 8.0
	pdf.SetFont(fontFamily, "", 10)
	for i, f := range r {
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.SetXY(marginL, y)
		pdf.CellFormat(keyW, rowH, f.Key, "1", 0, "R", true, 0, "")
		pdf.CellFormat(valW, rowH, cellText(f.Value), "1", 1, "R", true, 0, "")
		y += rowH
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.SetXY(marginL, pageH-marginB-6)
	pdf.SetFont(fontFamily, "", 7.5)
	pdf.SetTextColor(130, 130, 130)
	pdf.CellFormat(contentW, 5, jalali.FormatDateTime(rc.now()), "", 0, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// cellText formats a record value for display.
func cellText(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case string:
		if v == "" {
			return "-"
		}
		return v
	case time.Time:
		return jalali.FormatDateTime(v)
	default:
		return fmt.Sprint(v)
	}
}
