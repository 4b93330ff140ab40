package middleware

import "github.com/labstack/echo/v4"

// Echo returns an echo middleware driving the interceptor. The handler's
// error, if any, flows through after-throwing advices and back to echo's
// error handler unchanged.
func Echo(i *Interceptor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			static := requestStaticPart(c.Request().Method, c.Path())
			captures := requestCaptures(c.Request().Method, c.Path())
			_, err := i.Intercept(static, nil, []any{c}, captures, func([]any) (any, error) {
				return nil, next(c)
			})
			return err
		}
	}
}
