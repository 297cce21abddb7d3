package attendance

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"erp/backend/foundation/web"
	"erp/backend/internal/auth"
	"erp/backend/internal/entity"
	"erp/backend/internal/pkg/kst"
	"erp/backend/internal/repository/postgres/activity"
	"erp/backend/internal/repository/postgres/attendance"
	"erp/backend/internal/service/export"
	"erp/backend/internal/service/workhours"

	"github.com/pkg/errors"
)

var errMonthRange = errors.New("month must be between 1 and 12")

type Controller struct {
	attendance Attendance
	activity   Activity
	users      Users
	policy     workhours.Policy
}

func NewController(attendance Attendance, activity Activity, users Users, policy workhours.Policy) *Controller {
	return &Controller{attendance: attendance, activity: activity, users: users, policy: policy}
}

func (ac Controller) CheckIn(c *web.Context) error {
	var request attendance.CheckInRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	response, err := ac.attendance.CheckIn(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	ac.logActivity(c, "attendance.check_in", response.ID, response.WorkDate)

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) CheckOut(c *web.Context) error {
	response, err := ac.attendance.CheckOut(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	ac.logActivity(c, "attendance.check_out", response.ID, response.WorkDate)

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) GetStatus(c *web.Context) error {
	response, err := ac.attendance.Status(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) CorrectAutoCheckout(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request attendance.CorrectAutoCheckoutRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := ac.attendance.CorrectAutoCheckout(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	ac.logActivity(c, "attendance.auto_checkout_corrected", id, "")

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) GetAutoCheckoutHistory(c *web.Context) error {
	filter, err := ac.listFilter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, count, err := ac.attendance.AutoCheckoutHistory(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) GetList(c *web.Context) error {
	filter, err := ac.listFilter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, count, err := ac.attendance.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) listFilter(c *web.Context) (attendance.Filter, error) {
	var filter attendance.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if userID, ok := c.GetQueryFunc(reflect.String, "user_id").(*string); ok {
		filter.UserID = userID
	}
	if buCode, ok := c.GetQueryFunc(reflect.String, "bu_code").(*string); ok {
		filter.BUCode = buCode
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if date, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok {
		filter.Date = date
	}
	if startDate, ok := c.GetQueryFunc(reflect.String, "start_date").(*string); ok {
		filter.StartDate = startDate
	}
	if endDate, ok := c.GetQueryFunc(reflect.String, "end_date").(*string); ok {
		filter.EndDate = endDate
	}
	if err := c.ValidQuery(); err != nil {
		return attendance.Filter{}, err
	}

	return filter, nil
}

func (ac Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := ac.attendance.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) AdminCreate(c *web.Context) error {
	var request attendance.AdminCreateRequest

	if err := c.BindFunc(&request, "UserID", "WorkDate", "CheckInTime"); err != nil {
		return c.RespondError(err)
	}

	response, err := ac.attendance.AdminCreate(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	ac.logActivity(c, "attendance.admin_create", response.ID, response.WorkDate)

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request attendance.UpdateRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := ac.attendance.UpdateColumns(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	ac.logActivity(c, "attendance.update", id, "")

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) Delete(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := ac.attendance.Delete(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	ac.logActivity(c, "attendance.delete", id, "")

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) GetMonthlyStats(c *web.Context) error {
	userID, year, month, err := ac.monthQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	response, err := ac.attendance.MonthlyStats(c.Ctx, userID, year, month)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) GetTeamStats(c *web.Context) error {
	buCode := ""
	if v, ok := c.GetQueryFunc(reflect.String, "bu_code").(*string); ok && v != nil {
		buCode = *v
	}
	day := ""
	if v, ok := c.GetQueryFunc(reflect.String, "date").(*string); ok && v != nil {
		day = *v
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := ac.attendance.TeamStats(c.Ctx, buCode, day)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (ac Controller) AutoCheckoutBatch(c *web.Context) error {
	response, err := ac.attendance.AutoCheckoutBatch(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	ac.logActivity(c, "attendance.auto_checkout_batch", "", "")

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

// ExportMonthlyExcel streams the month's report as an xlsx download.
func (ac Controller) ExportMonthlyExcel(c *web.Context) error {
	return ac.exportMonthly(c, "excel")
}

// ExportMonthlyPdf streams the month's report as a PDF download.
func (ac Controller) ExportMonthlyPdf(c *web.Context) error {
	return ac.exportMonthly(c, "pdf")
}

func (ac Controller) exportMonthly(c *web.Context, format string) error {
	userID, year, month, err := ac.monthQuery(c)
	if err != nil {
		return c.RespondError(err)
	}
	if userID == "" {
		claims, err := auth.GetClaims(c.Ctx)
		if err != nil {
			return c.RespondError(err)
		}
		userID = claims.UserID
	}

	// MonthlyStats carries the visibility check for the target user.
	stats, err := ac.attendance.MonthlyStats(c.Ctx, userID, year, month)
	if err != nil {
		return c.RespondError(err)
	}

	logs, err := ac.attendance.MonthlyLogs(c.Ctx, userID, year, month)
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := ac.users.GetByID(c.Ctx, userID)
	if err != nil {
		return c.RespondError(err)
	}
	userName := detail.ID
	if detail.Name != nil {
		userName = *detail.Name
	}

	rows := ac.reportRows(logs)

	var filePath, contentType string
	switch format {
	case "pdf":
		filePath, err = export.MonthlyPDF(os.TempDir(), userName, year, month, rows, stats)
		contentType = "application/pdf"
	default:
		filePath, err = export.MonthlyExcel(os.TempDir(), userName, year, month, rows, stats)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	if err != nil {
		return c.RespondError(err)
	}
	defer os.Remove(filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return c.RespondError(err)
	}
	defer file.Close()

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", "attachment; filename=\""+filepath.Base(filePath)+"\"")
	c.Status(http.StatusOK)
	if _, err = io.Copy(c.Writer, file); err != nil {
		return c.RespondError(err)
	}

	return nil
}

func (ac Controller) reportRows(logs []entity.AttendanceLog) []export.MonthlyRow {
	rows := make([]export.MonthlyRow, 0, len(logs))

	for _, log := range logs {
		row := export.MonthlyRow{Date: log.WorkDate}
		if log.CheckInAt != nil {
			row.CheckIn = log.CheckInAt.In(kst.Zone).Format("15:04")
		}
		if log.CheckOutAt != nil {
			row.CheckOut = log.CheckOutAt.In(kst.Zone).Format("15:04")
		}
		if log.Status != nil {
			row.Status = *log.Status
		}
		if minutes, ok := ac.policy.WorkTimeMinutes(log.CheckInAt, log.CheckOutAt); ok {
			row.WorkMinutes = minutes
		}
		rows = append(rows, row)
	}

	return rows
}

func (ac Controller) monthQuery(c *web.Context) (userID string, year, month int, err error) {
	if v, ok := c.GetQueryFunc(reflect.String, "user_id").(*string); ok && v != nil {
		userID = *v
	}

	now := time.Now().In(kst.Zone)
	year, month = now.Year(), int(now.Month())

	if v, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok && v != nil {
		year = *v
	}
	if v, ok := c.GetQueryFunc(reflect.Int, "month").(*int); ok && v != nil {
		month = *v
	}
	if month < 1 || month > 12 {
		return "", 0, 0, web.NewRequestError(errMonthRange, http.StatusBadRequest)
	}
	if err := c.ValidQuery(); err != nil {
		return "", 0, 0, err
	}

	return userID, year, month, nil
}

func (ac Controller) logActivity(c *web.Context, action, entityID, title string) {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return
	}

	ac.activity.Log(c.Ctx, activity.Entry{
		UserID:      claims.UserID,
		ActionType:  action,
		EntityType:  "attendance_log",
		EntityID:    entityID,
		EntityTitle: title,
	})
}
