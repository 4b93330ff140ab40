package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Gin returns a gin middleware driving the interceptor. The route path
// (c.FullPath) is used for captures when available, falling back to the
// raw URL path for unmatched requests.
func Gin(i *Interceptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		static := requestStaticPart(c.Request.Method, path)
		captures := requestCaptures(c.Request.Method, path)
		_, err := i.Intercept(static, nil, []any{c}, captures, func([]any) (any, error) {
			c.Next()
			return nil, nil
		})
		if err != nil {
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}
