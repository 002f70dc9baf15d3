package httpapi

import "github.com/gin-gonic/gin"

// errorResponse is the uniform non-streaming error shape.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, errorResponse{Error: msg})
}
