package server

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error kinds, logged with every failed request so provider failures can be
// told apart from client mistakes in the logs.
const (
	kindValidation    = "validation"
	kindAuthorization = "authorization"
	kindStore         = "store"
	kindProvider      = "provider"
)

// fail logs the error with its kind and writes the uniform error envelope.
// The underlying message is surfaced to the caller unchanged.
func (s *Server) fail(c *gin.Context, status int, kind string, err error) {
	s.logger.Error("request failed",
		zap.String("kind", kind),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	c.JSON(status, gin.H{"success": false, "error": err.Error()})
}
