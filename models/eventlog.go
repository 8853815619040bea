package models

import "time"

// EventLog is a single analytics event reported by a frontend visitor.
type EventLog struct {
	ID        string                 `bson:"id" json:"id"`
	VisitorID string                 `bson:"visitorId" json:"visitorId"`
	SessionID string                 `bson:"sessionId,omitempty" json:"sessionId,omitempty"`
	Type      string                 `bson:"type" json:"type"`
	Data      map[string]interface{} `bson:"data,omitempty" json:"data,omitempty"`
	UserAgent string                 `bson:"userAgent,omitempty" json:"userAgent,omitempty"`
	IP        string                 `bson:"ip,omitempty" json:"ip,omitempty"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
}
