package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context wraps gin's context with the request-scoped context.Context that
// carries auth claims, plus accumulated param/query conversion errors.
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErrs map[string]string
	queryErrs map[string]string
}

// BindFunc binds the request body into v and verifies the named struct fields
// are set. Binding or validation failures surface as a 400 with field details.
func (c *Context) BindFunc(v interface{}, requiredFields ...string) error {
	if err := c.Bind(v); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request"), http.StatusBadRequest)
	}

	fields := map[string]string{}
	rv := reflect.Indirect(reflect.ValueOf(v))
	for _, name := range requiredFields {
		fv := rv.FieldByName(name)
		if !fv.IsValid() {
			continue
		}
		if fv.IsZero() {
			fields[name] = "required field"
		}
	}
	if len(fields) > 0 {
		return &Error{
			Err:    errors.New("invalid request body"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// GetParam converts the named path parameter to the requested kind. The
// conversion error, if any, is reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		v, err := strconv.Atoi(value)
		if err != nil {
			c.addParamErr(name, "must be an integer")
			return 0
		}
		return v
	case reflect.String:
		return value
	default:
		c.addParamErr(name, fmt.Sprintf("unsupported kind %s", kind))
		return nil
	}
}

// GetQueryFunc converts the named query parameter to a pointer of the
// requested kind. A missing parameter yields a typed nil pointer so callers
// can keep the single type-assertion form.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		v, err := strconv.Atoi(value)
		if err != nil {
			c.addQueryErr(name, "must be an integer")
			return (*int)(nil)
		}
		return &v
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		v, err := strconv.ParseBool(value)
		if err != nil {
			c.addQueryErr(name, "must be a boolean")
			return (*bool)(nil)
		}
		return &v
	case reflect.String:
		if !ok {
			return (*string)(nil)
		}
		return &value
	default:
		c.addQueryErr(name, fmt.Sprintf("unsupported kind %s", kind))
		return nil
	}
}

func (c *Context) addParamErr(name, msg string) {
	if c.paramErrs == nil {
		c.paramErrs = map[string]string{}
	}
	c.paramErrs[name] = msg
}

func (c *Context) addQueryErr(name, msg string) {
	if c.queryErrs == nil {
		c.queryErrs = map[string]string{}
	}
	c.queryErrs[name] = msg
}

// ValidParam reports accumulated path-parameter conversion errors.
func (c *Context) ValidParam() error {
	if len(c.paramErrs) == 0 {
		return nil
	}
	return &Error{
		Err:    errors.New("invalid path params"),
		Status: http.StatusBadRequest,
		Fields: c.paramErrs,
	}
}

// ValidQuery reports accumulated query-parameter conversion errors.
func (c *Context) ValidQuery() error {
	if len(c.queryErrs) == 0 {
		return nil
	}
	return &Error{
		Err:    errors.New("invalid query params"),
		Status: http.StatusBadRequest,
		Fields: c.queryErrs,
	}
}

// Respond writes the payload as JSON with the given status code.
func (c *Context) Respond(data interface{}, statusCode int) error {
	if v, ok := c.Ctx.Value(KeyValues).(*Values); ok {
		v.StatusCode = statusCode
	}

	c.JSON(statusCode, data)
	return nil
}

// RespondError translates an application error into the canonical error
// envelope. Untyped errors are masked as 500s so internals never leak.
func (c *Context) RespondError(err error) error {
	if webErr, ok := IsRequestError(err); ok {
		body := map[string]interface{}{
			"error":  webErr.Err.Error(),
			"status": false,
		}
		if len(webErr.Fields) > 0 {
			body["fields"] = webErr.Fields
		}
		return c.Respond(body, webErr.Status)
	}

	return c.Respond(map[string]interface{}{
		"error":  http.StatusText(http.StatusInternalServerError),
		"status": false,
	}, http.StatusInternalServerError)
}
