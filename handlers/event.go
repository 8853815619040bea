package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	eventService "forotrix/services/event"
	"forotrix/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxEventDataChars = 4000

var eventTypePattern = regexp.MustCompile(`(?i)^[a-z0-9][a-z0-9:._-]*$`)

type logEventRequest struct {
	VisitorID string                 `json:"visitorId"`
	SessionID string                 `json:"sessionId"`
	Type      string                 `json:"type"`
	Data      map[string]interface{} `json:"data"`
	CreatedAt string                 `json:"createdAt"`
}

func (r *logEventRequest) Validate() error {
	if err := validateLength("visitorId", r.VisitorID, 3, 120); err != nil {
		return err
	}
	if r.SessionID != "" {
		if err := validateLength("sessionId", r.SessionID, 3, 160); err != nil {
			return err
		}
	}
	trimmedType := strings.TrimSpace(r.Type)
	if err := validateLength("type", trimmedType, 3, 160); err != nil {
		return err
	}
	if !eventTypePattern.MatchString(trimmedType) {
		return fmt.Errorf("invalid event type format")
	}
	if r.Data != nil {
		serialized, err := json.Marshal(r.Data)
		if err != nil {
			return fmt.Errorf("data payload must be JSON serializable")
		}
		if len(serialized) > maxEventDataChars {
			return fmt.Errorf("data payload too large (>%d chars)", maxEventDataChars)
		}
	}
	return nil
}

// LogEventHandler stores one frontend analytics event with the request's
// user agent and client IP attached.
func LogEventHandler(svc eventService.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req logEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}
		if err := req.Validate(); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
			return
		}

		var createdAt time.Time
		if req.CreatedAt != "" {
			if parsed, err := time.Parse(time.RFC3339, req.CreatedAt); err == nil {
				createdAt = parsed
			}
		}

		_, err := svc.Store(c.Request.Context(), eventService.LogInput{
			VisitorID: req.VisitorID,
			SessionID: req.SessionID,
			Type:      req.Type,
			Data:      req.Data,
			UserAgent: c.GetHeader("User-Agent"),
			IP:        c.ClientIP(),
			CreatedAt: createdAt,
		})
		if err != nil {
			getLogger(c).Error("Failed to store event", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to store event", "")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	}
}
