package sheet

import (
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/trezcool/darasa/core/grade"
)

const (
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	gradebookSheet  = "Gradebook"
	attendanceSheet = "Attendance"
)

// WriteXLSX writes a workbook holding the non-nil sheets to w.
func WriteXLSX(w io.Writer, gb *Gradebook, as *AttendanceSheet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E0E7FF"}},
	})
	if err != nil {
		return errors.Wrap(err, "creating header style")
	}

	first := true
	if gb != nil {
		if err = addSheet(f, gradebookSheet, first); err != nil {
			return err
		}
		if err = writeGradebook(f, header, *gb); err != nil {
			return errors.Wrap(err, "writing gradebook")
		}
		first = false
	}
	if as != nil {
		if err = addSheet(f, attendanceSheet, first); err != nil {
			return err
		}
		if err = writeAttendance(f, header, *as); err != nil {
			return errors.Wrap(err, "writing attendance")
		}
	}

	_, err = f.WriteTo(w)
	return errors.Wrap(err, "writing workbook")
}

// addSheet renames the default sheet for the first one, appends a new sheet otherwise.
func addSheet(f *excelize.File, name string, first bool) error {
	if first {
		return errors.Wrap(f.SetSheetName(f.GetSheetName(0), name), "naming sheet")
	}
	_, err := f.NewSheet(name)
	return errors.Wrap(err, "creating sheet")
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func styleHeader(f *excelize.File, sheet string, style, cols int) error {
	if cols < 1 {
		return nil
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func writeGradebook(f *excelize.File, style int, gb Gradebook) error {
	header := []interface{}{"Student"}
	for _, a := range gb.Assignments {
		header = append(header, a.Title+" ("+grade.FormatScore(a.TotalPoints)+")")
	}
	header = append(header, "Average", "Letter")
	if err := writeRow(f, gradebookSheet, 1, header); err != nil {
		return err
	}

	for i, r := range gb.Rows {
		values := []interface{}{r.Student.FullName()}
		for _, c := range r.Cells {
			if c.Score == nil {
				values = append(values, "")
				continue
			}
			values = append(values, *c.Score)
		}
		values = append(values, FormatPercent(r.Average), r.Letter)
		if err := writeRow(f, gradebookSheet, i+2, values); err != nil {
			return err
		}
	}

	footer := []interface{}{"Class average"}
	for range gb.Assignments {
		footer = append(footer, "")
	}
	footer = append(footer, FormatPercent(gb.ClassAverage))
	if err := writeRow(f, gradebookSheet, len(gb.Rows)+2, footer); err != nil {
		return err
	}

	if err := f.SetColWidth(gradebookSheet, "A", "A", 28); err != nil {
		return err
	}
	return styleHeader(f, gradebookSheet, style, len(header))
}

func writeAttendance(f *excelize.File, style int, as AttendanceSheet) error {
	header := []interface{}{"Student"}
	for _, d := range as.Days {
		header = append(header, d.Format("Mon 02"))
	}
	header = append(header, "Present")
	if err := writeRow(f, attendanceSheet, 1, header); err != nil {
		return err
	}

	for i, r := range as.Rows {
		values := []interface{}{r.Student.FullName()}
		for _, st := range r.Statuses {
			values = append(values, statusMark(st.String()))
		}
		values = append(values, r.Present)
		if err := writeRow(f, attendanceSheet, i+2, values); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(attendanceSheet, "A", "A", 28); err != nil {
		return err
	}
	return styleHeader(f, attendanceSheet, style, len(header))
}

// statusMark is the single letter shown for a status in the exported grid.
func statusMark(status string) string {
	switch status {
	case "present":
		return "P"
	case "late":
		return "L"
	case "absent":
		return "A"
	default:
		return ""
	}
}
