package notification

import (
	"net/http"
	"reflect"

	"erp/backend/foundation/web"
	"erp/backend/internal/repository/postgres/notification"
)

type Controller struct {
	notification Notification
}

func NewController(notification Notification) *Controller {
	return &Controller{notification: notification}
}

func (nc Controller) GetList(c *web.Context) error {
	var filter notification.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if unreadOnly, ok := c.GetQueryFunc(reflect.Bool, "unread_only").(*bool); ok {
		filter.UnreadOnly = unreadOnly
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := nc.notification.GetList(c.Ctx, filter)
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

func (nc Controller) GetUnreadCount(c *web.Context) error {
	count, err := nc.notification.UnreadCount(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"count": count,
		},
		"status": true,
	}, http.StatusOK)
}

func (nc Controller) MarkRead(c *web.Context) error {
	id := c.GetParam(reflect.String, "id").(string)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := nc.notification.MarkRead(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (nc Controller) MarkAllRead(c *web.Context) error {
	if err := nc.notification.MarkAllRead(c.Ctx); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (nc Controller) Send(c *web.Context) error {
	var request notification.SendRequest

	if err := c.BindFunc(&request, "UserID", "Title"); err != nil {
		return c.RespondError(err)
	}

	id, err := nc.notification.Send(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]string{
			"id": id,
		},
		"status": true,
	}, http.StatusOK)
}

func (nc Controller) RegisterToken(c *web.Context) error {
	var request notification.RegisterTokenRequest

	if err := c.BindFunc(&request, "Token"); err != nil {
		return c.RespondError(err)
	}

	if err := nc.notification.RegisterToken(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (nc Controller) UnregisterToken(c *web.Context) error {
	var request notification.UnregisterTokenRequest

	if err := c.BindFunc(&request, "Token"); err != nil {
		return c.RespondError(err)
	}

	if err := nc.notification.UnregisterToken(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
