package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/avelisk/remindd/pkg/metrics"
	"github.com/avelisk/remindd/pkg/models"
)

// handleSendEmail relays one message through the email provider. The
// destination must be on the static allow-list; there is no retry and no
// idempotency key, so duplicate requests send duplicate emails.
func (s *Server) handleSendEmail(c *gin.Context) {
	var req models.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, http.StatusBadRequest, kindValidation, err)
		return
	}

	if _, ok := s.allowed[req.Email]; !ok {
		metrics.EmailsDispatched.WithLabelValues("denied").Inc()
		s.fail(c, http.StatusForbidden, kindAuthorization,
			fmt.Errorf("The email %q is not authorized in the Mailgun Sandbox.", req.Email))
		return
	}

	resp, err := s.mailer.Send(c.Request.Context(), req.Email, req.Message)
	if err != nil {
		metrics.EmailsDispatched.WithLabelValues("failed").Inc()
		s.fail(c, http.StatusInternalServerError, kindProvider, err)
		return
	}

	metrics.EmailsDispatched.WithLabelValues("sent").Inc()
	s.logger.Info("email dispatched", zap.String("to", req.Email), zap.String("message_id", resp.ID))
	c.JSON(http.StatusOK, gin.H{"success": true, "body": resp})
}

// handleCreateEvent inserts one document into the events collection.
// Only presence of the required fields is checked; start and remindAt are
// stored as the caller sent them.
func (s *Server) handleCreateEvent(c *gin.Context) {
	var ev models.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		s.fail(c, http.StatusBadRequest, kindValidation, err)
		return
	}

	id, err := s.store.Add(c.Request.Context(), ev)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, kindStore, err)
		return
	}

	metrics.EventsCreated.Inc()
	s.logger.Info("event created", zap.String("id", id), zap.String("created_by", ev.CreatedBy))
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id, "event": ev})
}

// handleListEvents returns every event, in the store's natural order.
func (s *Server) handleListEvents(c *gin.Context) {
	events, err := s.store.ListAll(c.Request.Context())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, kindStore, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}

// handleListEventsByCreator returns the events whose createdBy equals the
// path parameter exactly.
func (s *Server) handleListEventsByCreator(c *gin.Context) {
	events, err := s.store.ListByCreator(c.Request.Context(), c.Param("email"))
	if err != nil {
		s.fail(c, http.StatusInternalServerError, kindStore, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "events": events})
}
