package export

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/cwbudde/algo-photometry/dsp/core"
	"github.com/cwbudde/algo-photometry/measure/photometry"
)

// MaxPDFRows bounds the average table in the PDF report; longer traces
// are subsampled evenly.
const MaxPDFRows = 40

// WritePDF renders a one-page report: the summary fields followed by the
// average trace as a table.
func WritePDF(w io.Writer, sum Summary, avg photometry.Average) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Photometry Alignment")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	for _, fd := range sum.fields() {
		pdf.Cell(0, 6, fmt.Sprintf("%s: %v", fd.label, fd.value))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(35, 6, "Time (s)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "Mean", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 6, "SEM", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 6, "n", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, i := range tableRows(len(avg.Time), MaxPDFRows) {
		pdf.CellFormat(35, 6, fmt.Sprintf("%.3f", avg.Time[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, pdfNumber(avg.Mean[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 6, pdfNumber(avg.SEM[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", avg.Count[i]), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	return pdf.Output(w)
}

func pdfNumber(v float64) string {
	if core.IsMissing(v) {
		return "-"
	}
	return fmt.Sprintf("%.4f", v)
}

// tableRows picks at most limit evenly spaced indices of n, always
// including the first and last.
func tableRows(n, limit int) []int {
	if n <= limit {
		rows := make([]int, n)
		for i := range rows {
			rows[i] = i
		}
		return rows
	}
	rows := make([]int, limit)
	for i := range rows {
		rows[i] = i * (n - 1) / (limit - 1)
	}
	return rows
}
