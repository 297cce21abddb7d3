package web

import (
	"context"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the request scoped values through the handler chain.
type Context struct {
	*gin.Context
	Ctx context.Context

	queryErrors []FieldError
	paramErrors []FieldError
}

func NewContext(c *gin.Context) *Context {
	return &Context{Context: c, Ctx: c.Request.Context()}
}

// BindFunc binds the request body into dst and verifies that the named
// struct fields were provided.
func (c *Context) BindFunc(dst interface{}, required ...string) error {
	if err := c.ShouldBind(dst); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request"), http.StatusBadRequest)
	}

	var fields []FieldError

	v := reflect.ValueOf(dst).Elem()
	for _, name := range required {
		f := v.FieldByName(name)
		if !f.IsValid() {
			continue
		}
		if f.IsZero() {
			fields = append(fields, FieldError{Field: name, Error: "field is required"})
		}
	}

	if len(fields) > 0 {
		return &Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// GetQueryFunc reads an optional query parameter as a typed pointer. The
// returned value is a nil pointer of the requested kind when the
// parameter is absent, so callers can type-assert unconditionally.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok || value == "" {
			return (*int)(nil)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, FieldError{Field: name, Error: "must be an integer"})
			return (*int)(nil)
		}
		return &n
	case reflect.Bool:
		if !ok || value == "" {
			return (*bool)(nil)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrors = append(c.queryErrors, FieldError{Field: name, Error: "must be a boolean"})
			return (*bool)(nil)
		}
		return &b
	case reflect.String:
		if !ok || value == "" {
			return (*string)(nil)
		}
		return &value
	}

	return nil
}

// GetParam reads a required path parameter of the requested kind.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrors = append(c.paramErrors, FieldError{Field: name, Error: "must be an integer"})
			return 0
		}
		return n
	case reflect.String:
		if value == "" {
			c.paramErrors = append(c.paramErrors, FieldError{Field: name, Error: "parameter is required"})
		}
		return value
	}

	return nil
}

// ValidQuery reports query parameter parse failures collected by
// GetQueryFunc.
func (c *Context) ValidQuery() error {
	if len(c.queryErrors) > 0 {
		return &Error{
			Err:    errors.New("invalid query parameters"),
			Status: http.StatusBadRequest,
			Fields: c.queryErrors,
		}
	}

	return nil
}

// ValidParam reports path parameter parse failures collected by GetParam.
func (c *Context) ValidParam() error {
	if len(c.paramErrors) > 0 {
		return &Error{
			Err:    errors.New("invalid path parameters"),
			Status: http.StatusBadRequest,
			Fields: c.paramErrors,
		}
	}

	return nil
}

func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}

// RespondError translates err into a JSON error envelope. Unknown errors
// are reported as 500 with their raw message.
func (c *Context) RespondError(err error) error {
	if webErr := GetRequestError(err); webErr != nil {
		response := map[string]interface{}{
			"error":  webErr.Err.Error(),
			"status": false,
		}
		if len(webErr.Fields) > 0 {
			response["fields"] = webErr.Fields
		}
		c.JSON(webErr.Status, response)
		return nil
	}

	c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error":  err.Error(),
		"status": false,
	})

	return nil
}
