// Package export renders monthly attendance reports as files on disk.
// Controllers stream the returned path and are responsible for cleanup.
package export

import (
	"fmt"
	"path/filepath"

	"erp/backend/internal/service/workhours"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// MonthlyRow is one rendered attendance line.
type MonthlyRow struct {
	Date        string
	CheckIn     string
	CheckOut    string
	Status      string
	WorkMinutes int
}

// MonthlyExcel writes the month's sessions and summary to an xlsx file
// under dir and returns the file path.
func MonthlyExcel(dir, userName string, year, month int, rows []MonthlyRow, stats workhours.MonthlyStats) (string, error) {
	f := excelize.NewFile()
	sheet := "Attendance"
	f.SetSheetName("Sheet1", sheet)

	f.SetCellValue(sheet, "A1", fmt.Sprintf("%s - %04d/%02d", userName, year, month))

	headers := []string{"Date", "Check In", "Check Out", "Status", "Work Minutes"}
	for i, header := range headers {
		cell := fmt.Sprintf("%c2", 'A'+i)
		f.SetCellValue(sheet, cell, header)
	}

	rowNum := 3
	for _, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), row.Date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), row.CheckIn)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), row.CheckOut)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), row.Status)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), row.WorkMinutes)
		rowNum++
	}

	rowNum++
	summary := [][2]interface{}{
		{"Work Days", stats.TotalWorkDays},
		{"Total Minutes", stats.TotalWorkMinutes},
		{"Average Minutes", stats.AverageWorkMinutes},
		{"Late", stats.LateCount},
		{"Early Leave", stats.EarlyLeaveCount},
		{"Vacation", stats.VacationCount},
	}
	for _, line := range summary {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), line[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), line[1])
		rowNum++
	}

	fileName := filepath.Join(dir, fmt.Sprintf("attendance_%04d_%02d.xlsx", year, month))
	if err := f.SaveAs(fileName); err != nil {
		return "", errors.Wrap(err, "saving excel report")
	}

	return fileName, nil
}
