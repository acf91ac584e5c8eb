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

const analyticsWriteTimeout = 5 * time.Second

// AnalyticsService records fire-and-forget analytics events. A failed write
// is logged and dropped; no caller flow ever depends on the sink.
type AnalyticsService struct {
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewAnalyticsService creates a new analytics service instance
func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{
		collection: config.MongoDB.Collection(config.AppConfig.AnalyticsCollection),
		logger:     logging.Logger.Named("analytics_service"),
	}
}

// Track writes an event synchronously, swallowing failures
func (s *AnalyticsService) Track(ctx context.Context, event models.AnalyticsEvent) {
	event.ID = primitive.NewObjectID()
	event.CreatedAt = time.Now()

	if _, err := s.collection.InsertOne(ctx, event); err != nil {
		observability.AnalyticsDropped.Inc()
		s.logger.Warn("analytics event dropped",
			zap.String("event_type", event.EventType),
			zap.Error(err))
	}
}

// TrackAsync writes an event off the request path with its own deadline,
// so slow storage never delays a response
func (s *AnalyticsService) TrackAsync(event models.AnalyticsEvent) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), analyticsWriteTimeout)
		defer cancel()
		s.Track(ctx, event)
	}()
}

// Emit is shorthand for service-originated events
func (s *AnalyticsService) Emit(eventType, sessionID string, data map[string]interface{}) {
	s.TrackAsync(models.AnalyticsEvent{
		EventType: eventType,
		EventData: data,
		SessionID: sessionID,
	})
}

// Recent returns the newest events of an optional type, capped at limit
func (s *AnalyticsService) Recent(ctx context.Context, eventType string, limit int) ([]models.AnalyticsEvent, error) {
	if limit < 1 || limit > 500 {
		limit = 100
	}

	query := bson.M{}
	if eventType != "" {
		query["event_type"] = eventType
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := s.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.AnalyticsEvent{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return events, nil
}

// CountByType aggregates event totals for the admin dashboard
func (s *AnalyticsService) CountByType(ctx context.Context) (map[string]int64, error) {
	cursor, err := s.collection.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$event_type", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate events: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		EventType string `bson:"_id"`
		Count     int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode aggregation: %w", err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.EventType] = row.Count
	}
	return counts, nil
}
