package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// Data types available for back-office export
const (
	ExportLeads          = "leads"
	ExportQuestionnaires = "questionnaires"
	ExportAnalytics      = "analytics"
	ExportBrokers        = "brokers"
	ExportSchemes        = "schemes"
)

// exportColumns fixes the CSV column order per data type
var exportColumns = map[string][]string{
	ExportLeads: {
		"_id", "session_id", "source", "name", "email", "phone", "status",
		"broker_id", "selected_scheme_id", "matched_scheme_ids",
		"created_at", "updated_at",
	},
	ExportQuestionnaires: {
		"_id", "session_id", "answers", "matched_scheme_ids",
		"created_at", "updated_at",
	},
	ExportAnalytics: {
		"_id", "event_type", "session_id", "event_data", "page_url",
		"user_agent", "created_at",
	},
	ExportBrokers: {
		"_id", "name", "email", "phone", "licence_number", "active",
		"created_at", "updated_at",
	},
	ExportSchemes: {
		"_id", "scheme_name", "plan_name", "monthly_premium", "coverage",
		"key_highlights", "active", "created_at", "updated_at",
	},
}

func exportCollection(dataType string) (string, bool) {
	switch dataType {
	case ExportLeads:
		return config.AppConfig.LeadCollection, true
	case ExportQuestionnaires:
		return config.AppConfig.QuestionnaireCollection, true
	case ExportAnalytics:
		return config.AppConfig.AnalyticsCollection, true
	case ExportBrokers:
		return config.AppConfig.BrokerCollection, true
	case ExportSchemes:
		return config.AppConfig.SchemeCollection, true
	}
	return "", false
}

// ExportService produces back-office data extracts
type ExportService struct {
	db     *mongo.Database
	logger *zap.Logger
}

// NewExportService creates a new export service instance
func NewExportService() *ExportService {
	return &ExportService{
		db:     config.MongoDB,
		logger: logging.Logger.Named("export_service"),
	}
}

// Fetch returns documents of the given type created inside the optional
// date range, oldest first
func (s *ExportService) Fetch(ctx context.Context, dataType string, from, to *time.Time) ([]bson.M, error) {
	name, ok := exportCollection(dataType)
	if !ok {
		return nil, models.ErrUnknownExportType
	}

	filter := bson.M{}
	created := bson.M{}
	if from != nil {
		created["$gte"] = *from
	}
	if to != nil {
		created["$lte"] = *to
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}

	cursor, err := s.db.Collection(name).Find(ctx, filter,
		options.Find().SetSort(bson.M{"created_at": 1}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s export: %w", dataType, err)
	}

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode %s export: %w", dataType, err)
	}

	s.logger.Info("export fetched",
		zap.String("data_type", dataType),
		zap.Int("documents", len(docs)))
	return docs, nil
}

// CSV renders documents in the column order registered for the data type.
// Nested values are JSON-encoded into their cell.
func (s *ExportService) CSV(dataType string, docs []bson.M) ([]byte, error) {
	columns, ok := exportColumns[dataType]
	if !ok {
		return nil, models.ErrUnknownExportType
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, doc := range docs {
		row := make([]string, len(columns))
		for i, col := range columns {
			row[i] = exportCell(doc[col])
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

func exportCell(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case primitive.ObjectID:
		return val.Hex()
	case primitive.DateTime:
		return val.Time().UTC().Format(time.RFC3339)
	case time.Time:
		return val.UTC().Format(time.RFC3339)
	case bool, int, int32, int64, float64:
		return fmt.Sprint(val)
	default:
		encoded, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(encoded)
	}
}
