package util

import (
	"errors"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseId(t *testing.T) {
	tests := []struct {
		name    string
		val     string
		want    int64
		wantErr bool
	}{
		{name: "positive", val: "42", want: 42},
		{name: "zero", val: "0", wantErr: true},
		{name: "negative", val: "-3", wantErr: true},
		{name: "not a number", val: "abc", wantErr: true},
		{name: "overflow", val: "99999999999999999999", wantErr: true},
		{name: "empty", val: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, httpErr := ParseId(tt.val)
			if tt.wantErr {
				require.NotNil(t, httpErr)
				assert.Equal(t, http.StatusBadRequest, httpErr.Status)
				return
			}
			require.Nil(t, httpErr)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestHTTPErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := BuildDbHTTPErr(cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "database error")
	assert.Contains(t, err.Error(), "boom")
}

func TestHandlerWrapperRendersError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New(ErrorTemplate).Parse(`{{.SiteTitle}}: {{.Status}} {{.Message}}`)))
	r.Use(func(c *gin.Context) {
		c.Set(SiteTitleKey, "Blog")
	})
	r.GET("/fail", HandlerWrapper(func(c *gin.Context) *HTTPError {
		httpErr := NotFoundHTTPErr
		return &httpErr
	}, &HandlerOpts{}))
	r.GET("/ok", HandlerWrapper(func(c *gin.Context) *HTTPError {
		c.String(http.StatusOK, "fine")
		return nil
	}, nil))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Blog: 404 post not found", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fine", w.Body.String())
}
