package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspectweave/weave/internal/advice"
	"github.com/aspectweave/weave/internal/engine"
)

func TestEcho(t *testing.T) {
	e := engine.New(nil)

	var seen []string
	i := NewInterceptor(e,
		def(t, "audit", advice.Before, func(method, path string) {
			seen = append(seen, method+" "+path)
		}, advice.WithArgNames("method", "path")),
	)

	app := echo.New()
	app.Use(Echo(i))
	app.GET("/users/:id", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Param("id"))
	})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Body.String())
	assert.Equal(t, []string{"GET /users/:id"}, seen)
}
