package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Chi attaches the interceptor to a chi router as standard middleware.
func Chi(r chi.Router, i *Interceptor) {
	r.Use(func(next http.Handler) http.Handler {
		return Wrap(next, i)
	})
}
