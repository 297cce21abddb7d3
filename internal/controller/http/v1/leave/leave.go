package leave

import (
	"net/http"
	"reflect"

	"erp/backend/foundation/web"
	"erp/backend/internal/auth"
	"erp/backend/internal/repository/postgres/activity"
	"erp/backend/internal/repository/postgres/leave"
)

type Controller struct {
	leave    Leave
	activity Activity
}

func NewController(leave Leave, activity Activity) *Controller {
	return &Controller{leave: leave, activity: activity}
}

func (lc Controller) GetBalances(c *web.Context) error {
	userID, year, err := lc.userYearQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := lc.leave.Balances(c.Ctx, userID, year)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (lc Controller) GetGrants(c *web.Context) error {
	userID, year, err := lc.userYearQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := lc.leave.Grants(c.Ctx, userID, year)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}

func (lc Controller) CreateCompensatory(c *web.Context) error {
	var request leave.CreateCompensatoryRequest

	if err := c.BindFunc(&request, "WorkDate", "Days"); err != nil {
		return c.RespondError(err)
	}

	response, err := lc.leave.CreateCompensatory(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	lc.logActivity(c, "compensatory.create", response.ID)

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (lc Controller) GetCompensatoryList(c *web.Context) error {
	var filter leave.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if status, ok := c.GetQueryFunc(reflect.String, "status").(*string); ok {
		filter.Status = status
	}
	if userID, ok := c.GetQueryFunc(reflect.String, "user_id").(*string); ok {
		filter.UserID = userID
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := lc.leave.CompensatoryList(c.Ctx, filter)
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

func (lc Controller) ApproveCompensatory(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := lc.leave.ApproveCompensatory(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	lc.logActivity(c, "compensatory.approve", id)

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (lc Controller) RejectCompensatory(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request leave.RejectCompensatoryRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := lc.leave.RejectCompensatory(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	lc.logActivity(c, "compensatory.reject", id)

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (lc Controller) GenerateYearly(c *web.Context) error {
	year := 0
	if v, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok && v != nil {
		year = *v
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	response, err := lc.leave.GenerateYearly(c.Ctx, year)
	if err != nil {
		return c.RespondError(err)
	}

	lc.logActivity(c, "leave.generate_yearly", "")

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (lc Controller) GenerateMonthly(c *web.Context) error {
	response, err := lc.leave.GenerateMonthly(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	lc.logActivity(c, "leave.generate_monthly", "")

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (lc Controller) GetPendingSummary(c *web.Context) error {
	response, err := lc.leave.PendingSummary(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (lc Controller) userYearQuery(c *web.Context) (string, int, error) {
	userID := ""
	if v, ok := c.GetQueryFunc(reflect.String, "user_id").(*string); ok && v != nil {
		userID = *v
	}
	year := 0
	if v, ok := c.GetQueryFunc(reflect.Int, "year").(*int); ok && v != nil {
		year = *v
	}
	if err := c.ValidQuery(); err != nil {
		return "", 0, err
	}

	return userID, year, nil
}

func (lc Controller) logActivity(c *web.Context, action, entityID string) {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return
	}

	lc.activity.Log(c.Ctx, activity.Entry{
		UserID:     claims.UserID,
		ActionType: action,
		EntityType: "leave",
		EntityID:   entityID,
	})
}
