package middleware

import "github.com/gofiber/fiber/v2"

// Fiber returns a fiber handler driving the interceptor.
func Fiber(i *Interceptor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		static := requestStaticPart(c.Method(), c.Path())
		captures := requestCaptures(c.Method(), c.Path())
		_, err := i.Intercept(static, nil, []any{c}, captures, func([]any) (any, error) {
			return nil, c.Next()
		})
		return err
	}
}
