package activity

import (
	"net/http"
	"reflect"

	"erp/backend/foundation/web"
)

type Controller struct {
	activity Activity
}

func NewController(activity Activity) *Controller {
	return &Controller{activity: activity}
}

func (ac Controller) GetList(c *web.Context) error {
	limit := 0
	if v, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok && v != nil {
		limit = *v
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, err := ac.activity.GetList(c.Ctx, limit)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   list,
		"status": true,
	}, http.StatusOK)
}
