// Package exporter renders memos into downloadable paginated documents.
package exporter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/memoflow/memoflow/internal/model"
)

// contentWidth is the fixed line-wrap width in millimeters on an A4 page.
const contentWidth = 180

const defaultBaseName = "memo"

// PDFExporter converts a memo record into a paginated PDF document.
// The output bytes are opaque to callers.
type PDFExporter struct{}

// NewPDF creates a PDF exporter.
func NewPDF() *PDFExporter { return &PDFExporter{} }

// Render lays out title, category, and the line-wrapped body.
func (e *PDFExporter) Render(m *model.Memo) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.MultiCell(contentWidth, 8, fmt.Sprintf("Title: %s", m.Title), "", "L", false)
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(contentWidth, 6, fmt.Sprintf("Category: %s", m.Category), "", "L", false)
	pdf.Ln(4)
	pdf.MultiCell(contentWidth, 6, "Body:", "", "L", false)
	pdf.MultiCell(contentWidth, 6, m.Body, "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// Filename derives the download name from the memo title, falling back to a
// default when the title is empty or collapses to nothing after sanitizing.
func (e *PDFExporter) Filename(m *model.Memo) string {
	base := sanitize(m.Title)
	if base == "" {
		base = defaultBaseName
	}
	return base + ".pdf"
}

func sanitize(title string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(title) {
		switch {
		case r == '/' || r == '\\' || r == ':' || r == '*' || r == '?' ||
			r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		case r < 0x20:
			// drop control characters
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
