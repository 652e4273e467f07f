// Package output - PDF formatter
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"roaming-cost/core/types"
	"roaming-cost/internal/errors"
)

const (
	pdfMargin  = 15.0
	pdfContent = 180.0 // A4 width minus margins
)

var (
	pdfAccent = [3]int{0, 84, 166}
	pdfMuted  = [3]int{110, 110, 110}
	pdfBest   = [3]int{225, 245, 230}
	pdfHeader = [3]int{235, 240, 248}
)

// PDFFormatter renders reports as a printable A4 document
type PDFFormatter struct{}

// NewPDFFormatter creates a PDF formatter
func NewPDFFormatter() *PDFFormatter {
	return &PDFFormatter{}
}

// Format returns the format type
func (f *PDFFormatter) Format() Format {
	return FormatPDF
}

// Render writes the report as PDF
func (f *PDFFormatter) Render(w io.Writer, r *Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, 20)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 7)
		setText(pdf, pdfMuted)
		left := "Roaming cost simulation"
		if r.Metadata.SimulationID != "" {
			left += " " + r.Metadata.SimulationID
		}
		pdf.CellFormat(pdfContent/2, 6, tr(left), "", 0, "L", false, 0, "")
		pdf.CellFormat(pdfContent/2, 6, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	setText(pdf, pdfAccent)
	pdf.CellFormat(pdfContent, 10, "Roaming Cost Simulation", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	setText(pdf, [3]int{0, 0, 0})
	line := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(30, 6, tr(label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(pdfContent-30, 6, tr(value), "", "L", false)
	}
	if s := r.Subscriber; s != nil {
		line("Subscriber", fmt.Sprintf("%s (%s), plan %s", s.Name, s.Phone, s.CurrentPlan))
	}
	line("Countries", plainCountryList(r.Trip))
	line("Dates", dateRange(r.Trip))
	line("Usage", profileLine(r.Usage))
	line("Trip total", totalsLine(r.Usage.Totals(r.Trip.Duration)))
	pdf.Ln(4)

	best, ok := r.Result.Best()
	if !ok {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.CellFormat(pdfContent, 6, "No countries selected, nothing to price.", "", 1, "L", false, 0, "")
	} else {
		pdf.SetFont("Helvetica", "B", 12)
		summary := fmt.Sprintf("Best option: %s, %s", best.Name, r.Amount(best.TotalCost))
		if savings, ok := r.Savings(); ok && savings.IsPositive() {
			summary += fmt.Sprintf(" (saves %s)", r.Amount(savings))
		}
		pdf.MultiCell(pdfContent, 7, tr(summary), "", "L", false)
		pdf.Ln(3)

		widths := []float64{10, 62, 27, 27, 27, 27}
		headers := []string{"#", "Option", "Base", "Overage", "Surcharge", "Total"}
		pdf.SetFont("Helvetica", "B", 9)
		setFill(pdf, pdfHeader)
		for i, h := range headers {
			pdf.CellFormat(widths[i], 7, h, "B", 0, alignFor(i), true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for i, e := range r.Result.Estimates {
			setFill(pdf, pdfBest)
			cells := []string{
				fmt.Sprint(i + 1), e.Name,
				r.Amount(e.BaseCost), r.Amount(e.OverageCost), r.Amount(e.Surcharge), r.Amount(e.TotalCost),
			}
			for j, c := range cells {
				pdf.CellFormat(widths[j], 6, tr(c), "", 0, alignFor(j), e.Recommended, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)

		for _, e := range r.Result.Estimates {
			if len(e.Warnings) == 0 {
				continue
			}
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(pdfContent, 6, tr(e.Name), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			for _, warning := range e.Warnings {
				pdf.MultiCell(pdfContent, 5, tr("- "+warning), "", "L", false)
			}
			pdf.Ln(2)
		}
	}

	if r.TopUp != nil {
		c := r.TopUp.Comparison
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(pdfContent, 7, "Top-up", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(pdfContent, 5, fmt.Sprintf("Data: %s GB to %s GB", quantity(c.Before.DataGB()), quantity(c.After.DataGB())), "", 1, "L", false, 0, "")
		pdf.CellFormat(pdfContent, 5, fmt.Sprintf("Voice: %s min to %s min", quantity(c.Before.VoiceMin), quantity(c.After.VoiceMin)), "", 1, "L", false, 0, "")
		pdf.CellFormat(pdfContent, 5, fmt.Sprintf("SMS: %s to %s", quantity(c.Before.SMS), quantity(c.After.SMS)), "", 1, "L", false, 0, "")
		pdf.Ln(3)
	}

	if len(r.Result.Alerts) > 0 {
		pdf.SetFont("Helvetica", "B", 11)
		setText(pdf, [3]int{0, 0, 0})
		pdf.CellFormat(pdfContent, 7, "Alerts", "", 1, "L", false, 0, "")
		for _, a := range r.Result.Alerts {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(pdfContent, 5, tr(fmt.Sprintf("%s (%s)", a.Title, a.Severity)), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(pdfContent, 5, tr(a.Message), "", "L", false)
		}
	}

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(errors.TypeOutput, "failed to write pdf report", err)
	}
	return nil
}

func setFill(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetFillColor(c[0], c[1], c[2]) }
func setText(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetTextColor(c[0], c[1], c[2]) }

func alignFor(column int) string {
	if column >= 2 {
		return "R"
	}
	return "L"
}

// plainCountryList omits flags, which the core PDF fonts cannot draw
func plainCountryList(t types.TripPlan) string {
	if len(t.Countries) == 0 {
		return "none"
	}
	names := make([]string, len(t.Countries))
	for i, c := range t.Countries {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}
