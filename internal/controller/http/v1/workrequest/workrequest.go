package workrequest

import (
	"net/http"
	"reflect"

	"erp/backend/foundation/web"
	"erp/backend/internal/auth"
	"erp/backend/internal/repository/postgres/activity"
	"erp/backend/internal/repository/postgres/notification"
	"erp/backend/internal/repository/postgres/workrequest"
)

type Controller struct {
	workRequest WorkRequest
	activity    Activity
	notifier    Notifier
}

func NewController(workRequest WorkRequest, activity Activity, notifier Notifier) *Controller {
	return &Controller{workRequest: workRequest, activity: activity, notifier: notifier}
}

func (wc Controller) Create(c *web.Context) error {
	var request workrequest.CreateRequest

	if err := c.BindFunc(&request, "RequestType", "StartDate", "EndDate"); err != nil {
		return c.RespondError(err)
	}

	response, err := wc.workRequest.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	wc.logActivity(c, "work_request.create", response.ID)

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (wc Controller) GetList(c *web.Context) error {
	var filter workrequest.Filter

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
	if requestType, ok := c.GetQueryFunc(reflect.String, "request_type").(*string); ok {
		filter.RequestType = requestType
	}
	if requesterID, ok := c.GetQueryFunc(reflect.String, "requester_id").(*string); ok {
		filter.RequesterID = requesterID
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := wc.workRequest.GetList(c.Ctx, filter)
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

func (wc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := wc.workRequest.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (wc Controller) Approve(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := wc.workRequest.Approve(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	wc.logActivity(c, "work_request.approve", id)
	wc.notifyRequester(c, id, "Request approved", "Your request has been approved.")

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (wc Controller) Reject(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request workrequest.RejectRequest

	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}
	request.ID = id

	if err := wc.workRequest.Reject(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	wc.logActivity(c, "work_request.reject", id)
	wc.notifyRequester(c, id, "Request rejected", "Your request has been rejected.")

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (wc Controller) logActivity(c *web.Context, action, entityID string) {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return
	}

	wc.activity.Log(c.Ctx, activity.Entry{
		UserID:     claims.UserID,
		ActionType: action,
		EntityType: "work_request",
		EntityID:   entityID,
	})
}

func (wc Controller) notifyRequester(c *web.Context, id, title, body string) {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return
	}

	detail, err := wc.workRequest.GetDetailById(c.Ctx, id)
	if err != nil || detail.RequesterID == nil {
		return
	}

	notificationType := "work_request"
	link := "/requests/" + id

	wc.notifier.Notify(c.Ctx, claims.UserID, notification.SendRequest{
		UserID: detail.RequesterID,
		Title:  &title,
		Body:   &body,
		Type:   &notificationType,
		Link:   &link,
	})
}
