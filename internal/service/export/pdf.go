package export

import (
	"fmt"
	"path/filepath"

	"erp/backend/internal/service/workhours"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"
)

// MonthlyPDF writes the month's summary and session table to a PDF under
// dir and returns the file path.
func MonthlyPDF(dir, userName string, year, month int, rows []MonthlyRow, stats workhours.MonthlyStats) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Attendance Report %04d/%02d - %s", year, month, userName))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 10)
	summary := []string{
		fmt.Sprintf("Work days: %d", stats.TotalWorkDays),
		fmt.Sprintf("Total minutes: %d", stats.TotalWorkMinutes),
		fmt.Sprintf("Average minutes: %d", stats.AverageWorkMinutes),
		fmt.Sprintf("Late: %d  Early leave: %d  Vacation: %d", stats.LateCount, stats.EarlyLeaveCount, stats.VacationCount),
	}
	for _, line := range summary {
		pdf.Cell(0, 6, line)
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 9)
	widths := []float64{28, 32, 32, 32, 28}
	headers := []string{"Date", "Check In", "Check Out", "Status", "Minutes"}
	for i, header := range headers {
		pdf.CellFormat(widths[i], 7, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range rows {
		pdf.CellFormat(widths[0], 6, row.Date, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 6, row.CheckIn, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[2], 6, row.CheckOut, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[3], 6, row.Status, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%d", row.WorkMinutes), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	fileName := filepath.Join(dir, fmt.Sprintf("attendance_%04d_%02d.pdf", year, month))
	if err := pdf.OutputFileAndClose(fileName); err != nil {
		return "", errors.Wrap(err, "saving pdf report")
	}

	return fileName, nil
}
