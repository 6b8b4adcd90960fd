package respond

import "github.com/gin-gonic/gin"

// JSON writes the payload with the given status. Success responses go through
// here so they share a chokepoint with Error.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}
