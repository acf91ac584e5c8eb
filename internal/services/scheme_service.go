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

// SchemeService manages the medical-scheme catalogue
type SchemeService struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewSchemeService creates a new scheme service instance
func NewSchemeService() *SchemeService {
	return &SchemeService{
		collection: config.MongoDB.Collection(config.AppConfig.SchemeCollection),
		logger:     logging.Logger.Named("scheme_service"),
	}
}

// Create inserts a new scheme. The scheme name and plan name pair must be
// unique across the catalogue.
func (s *SchemeService) Create(ctx context.Context, req models.SchemeCreateRequest) (*models.MedicalScheme, error) {
	now := time.Now()
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	scheme := models.MedicalScheme{
		ID:             primitive.NewObjectID(),
		SchemeName:     req.SchemeName,
		PlanName:       req.PlanName,
		MonthlyPremium: req.MonthlyPremium,
		KeyHighlights:  req.KeyHighlights,
		Coverage:       req.Coverage,
		LogoURL:        req.LogoURL,
		BrochureURL:    req.BrochureURL,
		Active:         active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if scheme.KeyHighlights == nil {
		scheme.KeyHighlights = []string{}
	}

	if _, err := s.collection.InsertOne(ctx, scheme); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, models.ErrSchemeExists
		}
		observability.DatabaseOperations.WithLabelValues("mongodb", "insert", "error").Inc()
		return nil, fmt.Errorf("failed to create scheme: %w", err)
	}

	s.logger.Info("scheme created",
		zap.String("scheme_id", scheme.ID.Hex()),
		zap.String("scheme_name", scheme.SchemeName),
		zap.String("plan_name", scheme.PlanName))
	return &scheme, nil
}

// Get fetches a scheme by its hex ID
func (s *SchemeService) Get(ctx context.Context, id string) (*models.MedicalScheme, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrSchemeNotFound
	}

	var scheme models.MedicalScheme
	err = s.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&scheme)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrSchemeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scheme: %w", err)
	}
	return &scheme, nil
}

// List returns the full catalogue, inactive plans included, ordered by
// scheme then plan name. Intended for back-office screens.
func (s *SchemeService) List(ctx context.Context) ([]models.MedicalScheme, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "scheme_name", Value: 1},
		{Key: "plan_name", Value: 1},
	})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list schemes: %w", err)
	}
	defer cursor.Close(ctx)

	schemes := []models.MedicalScheme{}
	if err := cursor.All(ctx, &schemes); err != nil {
		return nil, fmt.Errorf("failed to decode schemes: %w", err)
	}
	return schemes, nil
}

// ListActive returns only active schemes, the matcher's candidate set
func (s *SchemeService) ListActive(ctx context.Context) ([]models.MedicalScheme, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "monthly_premium", Value: 1},
	})
	cursor, err := s.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list active schemes: %w", err)
	}
	defer cursor.Close(ctx)

	schemes := []models.MedicalScheme{}
	if err := cursor.All(ctx, &schemes); err != nil {
		return nil, fmt.Errorf("failed to decode schemes: %w", err)
	}
	return schemes, nil
}

// ListFiltered narrows active schemes to those satisfying the given
// filters, without ranking. Backs the public catalogue endpoint.
func (s *SchemeService) ListFiltered(ctx context.Context, filters models.SchemeFilters) ([]models.MedicalScheme, error) {
	candidates, err := s.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.MedicalScheme, 0, len(candidates))
	for _, scheme := range candidates {
		if eligibleScheme(filters, scheme) {
			matched = append(matched, scheme)
		}
	}
	return matched, nil
}

// Update applies the non-nil fields of req to an existing scheme
func (s *SchemeService) Update(ctx context.Context, id string, req models.SchemeUpdateRequest) (*models.MedicalScheme, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, models.ErrSchemeNotFound
	}

	set := bson.M{"updated_at": time.Now()}
	if req.SchemeName != nil {
		set["scheme_name"] = *req.SchemeName
	}
	if req.PlanName != nil {
		set["plan_name"] = *req.PlanName
	}
	if req.MonthlyPremium != nil {
		set["monthly_premium"] = *req.MonthlyPremium
	}
	if req.KeyHighlights != nil {
		set["key_highlights"] = *req.KeyHighlights
	}
	if req.Coverage != nil {
		set["coverage_indicators"] = *req.Coverage
	}
	if req.LogoURL != nil {
		set["logo_url"] = *req.LogoURL
	}
	if req.BrochureURL != nil {
		set["brochure_url"] = *req.BrochureURL
	}
	if req.Active != nil {
		set["active"] = *req.Active
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var updated models.MedicalScheme
	err = s.collection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&updated)
	if err == mongo.ErrNoDocuments {
		return nil, models.ErrSchemeNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return nil, models.ErrSchemeExists
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update scheme: %w", err)
	}

	s.logger.Info("scheme updated", zap.String("scheme_id", id))
	return &updated, nil
}

// Delete removes a scheme from the catalogue. Existing leads keep their
// matched scheme IDs; lookups against deleted schemes resolve to not found.
func (s *SchemeService) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.ErrSchemeNotFound
	}

	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete scheme: %w", err)
	}
	if result.DeletedCount == 0 {
		return models.ErrSchemeNotFound
	}

	s.logger.Info("scheme deleted", zap.String("scheme_id", id))
	return nil
}

// FindByIDs fetches the schemes for a list of IDs, preserving input order
// and skipping IDs that no longer resolve
func (s *SchemeService) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.MedicalScheme, error) {
	if len(ids) == 0 {
		return []models.MedicalScheme{}, nil
	}

	cursor, err := s.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schemes: %w", err)
	}
	defer cursor.Close(ctx)

	fetched := []models.MedicalScheme{}
	if err := cursor.All(ctx, &fetched); err != nil {
		return nil, fmt.Errorf("failed to decode schemes: %w", err)
	}

	byID := make(map[primitive.ObjectID]models.MedicalScheme, len(fetched))
	for _, scheme := range fetched {
		byID[scheme.ID] = scheme
	}

	ordered := make([]models.MedicalScheme, 0, len(ids))
	for _, id := range ids {
		if scheme, ok := byID[id]; ok {
			ordered = append(ordered, scheme)
		}
	}
	return ordered, nil
}
