package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Broker is a licensed intermediary who receives qualified leads
type Broker struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Email         string             `bson:"email" json:"email"`
	Phone         string             `bson:"phone" json:"phone"`
	LicenceNumber string             `bson:"licence_number" json:"licence_number"`
	Active        bool               `bson:"active" json:"active"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// BrokerCreateRequest is the admin payload for registering a broker
type BrokerCreateRequest struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone" binding:"required"`
	LicenceNumber string `json:"licence_number" binding:"required"`
}

// BrokerUpdateRequest is the admin payload for updating a broker
type BrokerUpdateRequest struct {
	Name          *string `json:"name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	LicenceNumber *string `json:"licence_number"`
	Active        *bool   `json:"active"`
}
