// Package response implements the uniform JSON envelope every handler
// returns: {error: bool, message?, data?, id?}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const genericErrorMessage = "Something went wrong"

// OK sends a 200 response carrying data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{"error": false, "data": data})
}

// OKMessage sends a 200 response carrying only a message.
func OKMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"error": false, "message": message})
}

// OKCreated sends a 200 response with a message and the generated id.
func OKCreated(c *gin.Context, message string, id uint) {
	c.JSON(http.StatusOK, gin.H{"error": false, "message": message, "id": id})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": true, "message": message})
}

// MethodNotAllowed sends a 405 error response.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"error": true, "message": "Method not allowed"})
}

// InternalError sends a 500 with a generic message. The real cause must
// be logged by the caller; it is never exposed to the client.
func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": true, "message": genericErrorMessage})
}
