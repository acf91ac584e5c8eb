package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Analytics event types emitted by the service itself
const (
	EventQuestionnaireSubmitted = "questionnaire_submitted"
	EventSchemeSelected         = "scheme_selected"
	EventUserRegistered         = "user_registered"
	EventDocumentUploaded       = "document_uploaded"
	EventContactSubmitted       = "contact_submitted"
)

// AnalyticsEvent is a fire-and-forget audit/analytics record
type AnalyticsEvent struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id"`
	EventType string                 `bson:"event_type" json:"event_type"`
	EventData map[string]interface{} `bson:"event_data,omitempty" json:"event_data,omitempty"`
	SessionID string                 `bson:"session_id,omitempty" json:"session_id,omitempty"`
	PageURL   string                 `bson:"page_url,omitempty" json:"page_url,omitempty"`
	UserAgent string                 `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	CreatedAt time.Time              `bson:"created_at" json:"created_at"`
}

// EventRequest is the public payload for page-level analytics events
type EventRequest struct {
	EventType string                 `json:"event_type" binding:"required"`
	EventData map[string]interface{} `json:"event_data"`
	SessionID string                 `json:"session_id"`
	PageURL   string                 `json:"page_url"`
}
