package util

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

const SiteTitleKey = "siteTitle"

type HTTPError struct {
	Status  int
	Message string
	// Err is the underlying cause. It is logged, never rendered.
	Err error
}

func (he *HTTPError) Error() string {
	if he.Err != nil {
		return fmt.Sprintf("%v (statusCode=%v): %v", he.Message, he.Status, he.Err)
	}
	return fmt.Sprintf("%v (statusCode=%v)", he.Message, he.Status)
}

func (he *HTTPError) Unwrap() error {
	return he.Err
}

var (
	NotFoundHTTPErr = HTTPError{
		Message: "post not found",
		Status:  http.StatusNotFound,
	}
	MalformedIdHTTPErr = HTTPError{
		Message: "id malformed",
		Status:  http.StatusBadRequest,
	}
)

func BuildDbHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Message: "database error",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

func BuildCreateHTTPErr(err error) *HTTPError {
	return &HTTPError{
		Message: "failed to create post",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// ParseId parses a positive post id from a path parameter
func ParseId(val string) (int64, *HTTPError) {
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil || id <= 0 {
		httpErr := MalformedIdHTTPErr
		return 0, &httpErr
	}
	return id, nil
}

// Page adds the values every template expects to data
func Page(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["SiteTitle"] = c.GetString(SiteTitleKey)
	return data
}

const ErrorTemplate = "error.html"

type HandlerOpts struct{}

type Handler func(c *gin.Context) *HTTPError

/*
	HandlerWrapper runs fn and renders the error page if fn returns an HTTPError.
	fn is responsible for writing the response when it succeeds.
*/
func HandlerWrapper(fn Handler, opts *HandlerOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		httpErr := fn(c)
		if httpErr == nil {
			return
		}
		HandleHTTPErrorRes(c, httpErr)
	}
}

/*
	HandleHTTPErrorRes renders ErrorTemplate for err.
	break the route after calling this function
*/
func HandleHTTPErrorRes(c *gin.Context, err *HTTPError) {
	entry := log.WithFields(log.Fields{
		"status": err.Status,
		"path":   c.Request.URL.Path,
	})
	if err.Err != nil {
		entry = entry.WithError(err.Err)
	}
	if err.Status >= http.StatusInternalServerError {
		entry.Error(err.Message)
	} else {
		entry.Info(err.Message)
	}

	_ = c.Error(err)
	c.HTML(err.Status, ErrorTemplate, Page(c, gin.H{
		"Status":  err.Status,
		"Message": err.Message,
	}))
}
