package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"forotrix/models"
	eventService "forotrix/services/event"

	"github.com/gin-gonic/gin"
)

func TestLogEventRequestValidate(t *testing.T) {
	base := func() logEventRequest {
		return logEventRequest{
			VisitorID: "visitor-123",
			SessionID: "session-456",
			Type:      "ad.view:detail",
		}
	}

	t.Run("valid", func(t *testing.T) {
		req := base()
		if err := req.Validate(); err != nil {
			t.Fatalf("valid request rejected: %v", err)
		}
	})

	t.Run("session is optional", func(t *testing.T) {
		req := base()
		req.SessionID = ""
		if err := req.Validate(); err != nil {
			t.Fatalf("missing session rejected: %v", err)
		}
	})

	cases := []struct {
		name   string
		mutate func(*logEventRequest)
	}{
		{"visitor too short", func(r *logEventRequest) { r.VisitorID = "ab" }},
		{"type too short", func(r *logEventRequest) { r.Type = "ab" }},
		{"type with spaces", func(r *logEventRequest) { r.Type = "ad view" }},
		{"type with slash", func(r *logEventRequest) { r.Type = "ad/view" }},
		{"type leading separator", func(r *logEventRequest) { r.Type = ":adview" }},
		{"session too long", func(r *logEventRequest) { r.SessionID = strings.Repeat("s", 161) }},
		{"oversized data", func(r *logEventRequest) {
			r.Data = map[string]interface{}{"blob": strings.Repeat("x", maxEventDataChars+1)}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := base()
			tc.mutate(&req)
			if err := req.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}

	t.Run("mixed case type accepted", func(t *testing.T) {
		req := base()
		req.Type = "Ad.View"
		if err := req.Validate(); err != nil {
			t.Fatalf("mixed case type rejected: %v", err)
		}
	})
}

type mockEventService struct {
	stored []eventService.LogInput
	fail   error
}

func (m *mockEventService) Store(_ context.Context, in eventService.LogInput) (*models.EventLog, error) {
	if m.fail != nil {
		return nil, m.fail
	}
	m.stored = append(m.stored, in)
	return &models.EventLog{ID: "evt-1", Type: in.Type}, nil
}

func TestLogEventHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &mockEventService{}
	router := gin.New()
	router.POST("/events/log", LogEventHandler(svc))

	body := `{"visitorId":"visitor-123","type":"ad.view","data":{"adId":"ad-1"}}`
	req := httptest.NewRequest(http.MethodPost, "/events/log", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "test-agent")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if len(svc.stored) != 1 {
		t.Fatalf("stored %d events", len(svc.stored))
	}
	if svc.stored[0].UserAgent != "test-agent" {
		t.Errorf("userAgent = %q", svc.stored[0].UserAgent)
	}
	if svc.stored[0].Type != "ad.view" {
		t.Errorf("type = %q", svc.stored[0].Type)
	}

	// Invalid type never reaches the service.
	bad := `{"visitorId":"visitor-123","type":"ad view"}`
	req = httptest.NewRequest(http.MethodPost, "/events/log", strings.NewReader(bad))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if len(svc.stored) != 1 {
		t.Errorf("invalid event stored")
	}
}
