// Package server wires the HTTP API: three REST endpoints delegating to
// the document store and the email provider.
package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/avelisk/remindd/internal/mailer"
	"github.com/avelisk/remindd/internal/store"
	"github.com/avelisk/remindd/pkg/metrics"
)

// Server holds the request handlers' dependencies. All fields are read-only
// after construction; handlers share no mutable state.
type Server struct {
	logger  *zap.Logger
	store   store.EventStore
	mailer  mailer.Mailer
	allowed map[string]struct{}
	router  *gin.Engine
}

// New creates the HTTP server. allowedRecipients is the static allow-list
// of outbound destination addresses, matched exactly.
func New(logger *zap.Logger, eventStore store.EventStore, m mailer.Mailer, allowedRecipients []string) *Server {
	allowed := make(map[string]struct{}, len(allowedRecipients))
	for _, addr := range allowedRecipients {
		allowed[addr] = struct{}{}
	}

	s := &Server{
		logger:  logger,
		store:   eventStore,
		mailer:  m,
		allowed: allowed,
	}

	router := gin.New()

	router.Use(ginzap.Ginzap(logger, time.RFC3339, true))
	router.Use(ginzap.RecoveryWithZap(logger, true))
	router.Use(cors.Default())
	router.Use(metrics.Middleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/send-email", s.handleSendEmail)
	router.POST("/events", s.handleCreateEvent)

	api := router.Group("/api")
	{
		api.GET("/events", s.handleListEvents)
		api.GET("/events/:email", s.handleListEventsByCreator)
	}

	s.router = router
	return s
}

// Router returns the internal Gin engine for testing purposes
func (s *Server) Router() *gin.Engine {
	return s.router
}
