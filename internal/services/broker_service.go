package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// BrokerService manages the broker roster
type BrokerService struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewBrokerService creates a new broker service instance
func NewBrokerService() *BrokerService {
	return &BrokerService{
		collection: config.MongoDB.Collection(config.AppConfig.BrokerCollection),
		logger:     logging.Logger.Named("broker_service"),
	}
}

// Create registers a broker. Broker emails are unique.
func (s *BrokerService) Create(ctx context.Context, req models.BrokerCreateRequest) (*models.Broker, error) {
	now := time.Now()
	broker := models.Broker{
		ID:            primitive.NewObjectID(),
		Name:          req.Name,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		LicenceNumber: req.LicenceNumber,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := s.collection.InsertOne(ctx, broker); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create broker: %w", err)
	}

	s.logger.Info("broker created",
		zap.String("broker_id", broker.ID.Hex()),
		zap.String("name", broker.Name))
	return &broker, nil
}

// Get fetches a broker by its hex ID
func (s *BrokerService) Get(ctx context.Context, id string) (*models.Broker, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrBrokerNotFound
	}

	var broker models.Broker
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&broker)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrBrokerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch broker: %w", err)
	}
	return &broker, nil
}

// List returns all brokers ordered by name
func (s *BrokerService) List(ctx context.Context) ([]models.Broker, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list brokers: %w", err)
	}
	defer cursor.Close(ctx)

	brokers := []models.Broker{}
	if err := cursor.All(ctx, &brokers); err != nil {
		return nil, fmt.Errorf("failed to decode brokers: %w", err)
	}
	return brokers, nil
}

// Update applies the non-nil fields of req to an existing broker
func (s *BrokerService) Update(ctx context.Context, id string, req models.BrokerUpdateRequest) (*models.Broker, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrBrokerNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
	}
	if req.Email != nil {
		set["email"] = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.LicenceNumber != nil {
		set["licence_number"] = *req.LicenceNumber
	}
	if req.Active != nil {
		set["active"] = *req.Active
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var broker models.Broker
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&broker)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrBrokerNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, models.ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update broker: %w", err)
	}

	s.logger.Info("broker updated", zap.String("broker_id", id))
	return &broker, nil
}

// Delete removes a broker. Leads previously assigned to the broker keep
// the dangling reference and surface it in the back office.
func (s *BrokerService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrBrokerNotFound
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete broker: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrBrokerNotFound
	}

	s.logger.Info("broker deleted", zap.String("broker_id", id))
	return nil
}
