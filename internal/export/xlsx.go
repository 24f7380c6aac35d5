package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/cwbudde/algo-photometry/dsp/core"
	"github.com/cwbudde/algo-photometry/measure/photometry"
)

// Sheet names of the workbook written by WriteXLSX.
const (
	SheetSummary  = "summary"
	SheetSegments = "segments"
	SheetAverage  = "average"
)

// WriteXLSX writes a workbook with the summary, every segment as a column
// and the average trace. Missing values are left blank.
func WriteXLSX(w io.Writer, sum Summary, segs []photometry.Segment, avg photometry.Average) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetSegments); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetAverage); err != nil {
		return err
	}

	_ = f.SetCellValue(SheetSummary, "A1", "Photometry Alignment")
	for i, fd := range sum.fields() {
		row := i + 3
		_ = f.SetCellValue(SheetSummary, fmt.Sprintf("A%d", row), fd.label)
		_ = f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", row), fd.value)
	}

	_ = f.SetCellValue(SheetSegments, "A1", "time")
	for j, s := range segs {
		col, err := excelize.ColumnNumberToName(j + 2)
		if err != nil {
			return err
		}
		_ = f.SetCellValue(SheetSegments, col+"1", fmt.Sprintf("event_%d", s.Index))
		for i, v := range s.Values {
			setNumber(f, SheetSegments, col, i+2, v)
		}
	}
	if len(segs) > 0 {
		for i, t := range segs[0].Time {
			setNumber(f, SheetSegments, "A", i+2, t)
		}
	}

	for j, h := range []string{"time", "mean", "sem", "count"} {
		col, _ := excelize.ColumnNumberToName(j + 1)
		_ = f.SetCellValue(SheetAverage, col+"1", h)
	}
	for i := range avg.Time {
		row := i + 2
		setNumber(f, SheetAverage, "A", row, avg.Time[i])
		setNumber(f, SheetAverage, "B", row, avg.Mean[i])
		setNumber(f, SheetAverage, "C", row, avg.SEM[i])
		_ = f.SetCellValue(SheetAverage, fmt.Sprintf("D%d", row), avg.Count[i])
	}

	return f.Write(w)
}

func setNumber(f *excelize.File, sheet, col string, row int, v float64) {
	if core.IsMissing(v) {
		return
	}
	_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, row), v)
}
