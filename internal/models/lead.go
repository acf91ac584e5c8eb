package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead statuses through the sales pipeline
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusClosed    = "closed"
)

// Lead sources
const (
	LeadSourceQuestionnaire = "questionnaire"
	LeadSourceContactForm   = "contact_form"
)

// ValidLeadStatus reports whether s is a known pipeline status
func ValidLeadStatus(s string) bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusConverted, LeadStatusClosed:
		return true
	}
	return false
}

// LeadNote is a timestamped back-office annotation
type LeadNote struct {
	Author    string    `bson:"author" json:"author"`
	Text      string    `bson:"text" json:"text"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Lead is a prospective customer tracked by administrative staff
type Lead struct {
	ID               primitive.ObjectID    `bson:"_id,omitempty" json:"id"`
	SessionID        string                `bson:"session_id,omitempty" json:"session_id,omitempty"`
	Source           string                `bson:"source" json:"source"`
	Name             string                `bson:"name,omitempty" json:"name,omitempty"`
	Email            string                `bson:"email,omitempty" json:"email,omitempty"`
	Phone            string                `bson:"phone,omitempty" json:"phone,omitempty"`
	Message          string                `bson:"message,omitempty" json:"message,omitempty"`
	Answers          *QuestionnaireAnswers `bson:"answers,omitempty" json:"answers,omitempty"`
	MatchedSchemeIDs []primitive.ObjectID  `bson:"matched_scheme_ids,omitempty" json:"matched_scheme_ids,omitempty"`
	SelectedSchemeID *primitive.ObjectID   `bson:"selected_scheme_id,omitempty" json:"selected_scheme_id,omitempty"`
	Status           string                `bson:"status" json:"status"`
	BrokerID         *primitive.ObjectID   `bson:"broker_id,omitempty" json:"broker_id,omitempty"`
	Notes            []LeadNote            `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt        time.Time             `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time             `bson:"updated_at" json:"updated_at"`
}

// LeadUpdateRequest is the admin payload for moving a lead through the pipeline
type LeadUpdateRequest struct {
	Status *string `json:"status"`
	Note   *string `json:"note"`
}

// LeadAssignRequest assigns a lead to a broker
type LeadAssignRequest struct {
	BrokerID string `json:"broker_id" binding:"required"`
}

// ContactRequest is the public contact-form payload
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Message string `json:"message" binding:"required"`
}
