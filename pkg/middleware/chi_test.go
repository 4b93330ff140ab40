package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aspectweave/weave/internal/advice"
	"github.com/aspectweave/weave/internal/engine"
)

func TestChi(t *testing.T) {
	e := engine.New(nil)

	var seen []string
	i := NewInterceptor(e,
		def(t, "audit", advice.Before, func(method string) {
			seen = append(seen, method)
		}, advice.WithArgNames("method")),
	)

	r := chi.NewRouter()
	Chi(r, i)
	r.Get("/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chi.URLParam(r, "id")))
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/7", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", rec.Body.String())
	assert.Equal(t, []string{"GET"}, seen)
}
