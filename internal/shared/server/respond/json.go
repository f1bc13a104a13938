package respond

import "github.com/gin-gonic/gin"

// JSON writes payload with the given status. Success responses go through
// here so handlers pair naturally with Error.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}
