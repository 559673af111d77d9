package middleware

import (
	"net/http"

	"github.com/haierkeys/noteful-service/pkg/util"

	"github.com/gin-gonic/gin"
)

// Cors 跨域中间件，origins 为空时允许所有来源
func Cors(origins ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			switch {
			case len(origins) == 0:
				c.Header("Access-Control-Allow-Origin", "*")
			case util.InSlice(origins, origin):
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Lang, X-Trace-ID")
			c.Header("Access-Control-Expose-Headers", "Location, X-Trace-ID")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
