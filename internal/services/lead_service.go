package services

import (
	"context"
	"fmt"
	"time"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/models"
	"github.com/credimed/app-leads/internal/observability"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// LeadListFilters narrows the back-office lead listing
type LeadListFilters struct {
	Status   string `form:"status"`
	BrokerID string `form:"broker_id"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

// LeadList is a page of leads plus the unpaged total
type LeadList struct {
	Leads   []models.Lead `json:"leads"`
	Total   int64         `json:"total"`
	Page    int           `json:"page"`
	PerPage int           `json:"per_page"`
}

// LeadService manages the sales pipeline
type LeadService struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewLeadService creates a new lead service instance
func NewLeadService() *LeadService {
	return &LeadService{
		collection: config.MongoDB.Collection(config.AppConfig.LeadCollection),
		logger:     logging.Logger.Named("lead_service"),
	}
}

// CreateFromQuestionnaire upserts the lead for a wizard session. Resubmitting
// the same session refreshes answers and matches instead of duplicating the
// lead; pipeline fields set by staff survive the refresh.
func (s *LeadService) CreateFromQuestionnaire(ctx context.Context, sessionID string, answers models.QuestionnaireAnswers, matchedIDs []primitive.ObjectID) (*models.Lead, error) {
	now := time.Now()
	filter := bson.M{"session_id": sessionID, "source": models.LeadSourceQuestionnaire}
	update := bson.M{
		"$set": bson.M{
			"answers":            answers,
			"matched_scheme_ids": matchedIDs,
			"updated_at":         now,
		},
		"$setOnInsert": bson.M{
			"session_id": sessionID,
			"source":     models.LeadSourceQuestionnaire,
			"status":     models.LeadStatusNew,
			"created_at": now,
		},
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var lead models.Lead
	if err := s.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&lead); err != nil {
		observability.DatabaseOperations.WithLabelValues("mongodb", "upsert", "error").Inc()
		return nil, fmt.Errorf("failed to upsert lead: %w", err)
	}

	observability.LeadsCreated.WithLabelValues(models.LeadSourceQuestionnaire).Inc()
	s.logger.Info("questionnaire lead stored",
		zap.String("lead_id", lead.ID.Hex()),
		zap.String("session_id", sessionID),
		zap.Int("matched_schemes", len(matchedIDs)))
	return &lead, nil
}

// CreateFromContact records a contact-form submission as a fresh lead
func (s *LeadService) CreateFromContact(ctx context.Context, req models.ContactRequest, sessionID string) (*models.Lead, error) {
	now := time.Now()
	lead := models.Lead{
		ID:        primitive.NewObjectID(),
		SessionID: sessionID,
		Source:    models.LeadSourceContactForm,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		Status:    models.LeadStatusNew,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := s.collection.InsertOne(ctx, lead); err != nil {
		observability.DatabaseOperations.WithLabelValues("mongodb", "insert", "error").Inc()
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	observability.LeadsCreated.WithLabelValues(models.LeadSourceContactForm).Inc()
	s.logger.Info("contact lead created",
		zap.String("lead_id", lead.ID.Hex()),
		zap.String("email", observability.MaskEmail(lead.Email)))
	return &lead, nil
}

// Get fetches a lead by its hex ID
func (s *LeadService) Get(ctx context.Context, id string) (*models.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrLeadNotFound
	}

	var lead models.Lead
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&lead)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch lead: %w", err)
	}
	return &lead, nil
}

// List returns a page of leads, newest first, optionally narrowed by
// status and assigned broker
func (s *LeadService) List(ctx context.Context, filters LeadListFilters) (*LeadList, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PerPage < 1 || filters.PerPage > 100 {
		filters.PerPage = 20
	}

	query := bson.M{}
	if filters.Status != "" {
		if !models.ValidLeadStatus(filters.Status) {
			return nil, models.ErrInvalidLeadStatus
		}
		query["status"] = filters.Status
	}
	if filters.BrokerID != "" {
		brokerOID, err := primitive.ObjectIDFromHex(filters.BrokerID)
		if err != nil {
			return nil, models.ErrBrokerNotFound
		}
		query["broker_id"] = brokerOID
	}

	total, err := s.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count leads: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((filters.Page - 1) * filters.PerPage)).
		SetLimit(int64(filters.PerPage))
	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer cursor.Close(ctx)

	leads := []models.Lead{}
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("failed to decode leads: %w", err)
	}

	return &LeadList{
		Leads:   leads,
		Total:   total,
		Page:    filters.Page,
		PerPage: filters.PerPage,
	}, nil
}

// Update applies a status transition and/or appends a note
func (s *LeadService) Update(ctx context.Context, id, author string, req models.LeadUpdateRequest) (*models.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrLeadNotFound
	}

	update := bson.M{"$set": bson.M{"updated_at": time.Now()}}
	if req.Status != nil {
		if !models.ValidLeadStatus(*req.Status) {
			return nil, models.ErrInvalidLeadStatus
		}
		update["$set"].(bson.M)["status"] = *req.Status
	}
	if req.Note != nil && *req.Note != "" {
		update["$push"] = bson.M{"notes": models.LeadNote{
			Author:    author,
			Text:      *req.Note,
			CreatedAt: time.Now(),
		}}
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var lead models.Lead
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&lead)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	s.logger.Info("lead updated", zap.String("lead_id", id))
	return &lead, nil
}

// Assign hands a lead to a broker. The caller is responsible for checking
// the broker exists.
func (s *LeadService) Assign(ctx context.Context, id string, brokerID primitive.ObjectID) (*models.Lead, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrLeadNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var lead models.Lead
	err = s.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"broker_id": brokerID, "updated_at": time.Now()}},
		opts,
	).Decode(&lead)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrLeadNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to assign lead: %w", err)
	}

	s.logger.Info("lead assigned",
		zap.String("lead_id", id),
		zap.String("broker_id", brokerID.Hex()))
	return &lead, nil
}

// SetSelectedScheme records which matched scheme the visitor picked on the
// results page, keyed by wizard session
func (s *LeadService) SetSelectedScheme(ctx context.Context, sessionID string, schemeID primitive.ObjectID) error {
	result, err := s.collection.UpdateOne(ctx,
		bson.M{"session_id": sessionID, "source": models.LeadSourceQuestionnaire},
		bson.M{"$set": bson.M{"selected_scheme_id": schemeID, "updated_at": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to record scheme selection: %w", err)
	}
	if result.MatchedCount == 0 {
		return models.ErrLeadNotFound
	}
	return nil
}

// CountByStatus aggregates pipeline totals for the admin dashboard
func (s *LeadService) CountByStatus(ctx context.Context) (map[string]int64, error) {
	cursor, err := s.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate leads: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status string `bson:"_id"`
		Count  int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
