package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Well-known template keys
const (
	TemplateKeyWelcome = "welcome"
)

// EmailTemplate is an admin-managed message template. The body may contain
// {{placeholder}} markers filled in at send time.
type EmailTemplate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Key       string             `bson:"key" json:"key"`
	Subject   string             `bson:"subject" json:"subject"`
	Body      string             `bson:"body" json:"body"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// EmailTemplateRequest is the admin payload for creating or replacing a template
type EmailTemplateRequest struct {
	Key     string `json:"key" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}
