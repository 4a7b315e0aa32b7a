// Package router wires the HTTP surface: the auth token route, the
// generation route, and its websocket twin.
package router

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// New builds the gin engine with all routes registered.
func New(h *Handlers) *gin.Engine {
	r := gin.Default()
	r.Use(requestID())

	api := r.Group("/api")
	api.GET("/auth/token", h.GetToken)
	api.POST("/computer", h.Computer)
	api.GET("/computer/ws", h.ComputerWS)

	return r
}

// requestID tags every request so streamed responses can be correlated in
// the logs.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
