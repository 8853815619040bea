package models

import "time"

// AuditRecord is a persisted audit event describing one mutation.
type AuditRecord struct {
	ID        string                 `bson:"id" json:"id"`
	Action    string                 `bson:"action" json:"action"`
	ActorID   string                 `bson:"actorId" json:"actorId"`
	TargetID  string                 `bson:"targetId,omitempty" json:"targetId,omitempty"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty" json:"metadata,omitempty"`
	Timestamp time.Time              `bson:"timestamp" json:"timestamp"`
}
