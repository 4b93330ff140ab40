package middleware

import "net/http"

// Wrap intercepts every request served by next. A before advice that
// returns an error aborts the request with a 500 before the handler runs.
func Wrap(next http.Handler, i *Interceptor) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		static := requestStaticPart(r.Method, r.URL.Path)
		captures := requestCaptures(r.Method, r.URL.Path)
		_, err := i.Intercept(static, nil, []any{w, r}, captures, func([]any) (any, error) {
			next.ServeHTTP(w, r)
			return nil, nil
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}
