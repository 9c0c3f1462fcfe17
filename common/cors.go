package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS attaches the permissive header set every endpoint carries and answers
// preflight requests with 200 and no body. The Allow-Origin "*" plus
// Allow-Credentials "true" combination is what the dashboard has always been
// served; changing it is a product decision, not a cleanup.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Credentials", "true")
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}

		c.Next()
	}
}

// IDParam returns the resource id from the path parameter, falling back to
// the query string. Collection and item routes share one handler, so the id
// can arrive either way.
func IDParam(c *gin.Context) string {
	if id := c.Param("id"); id != "" {
		return id
	}
	return c.Query("id")
}
