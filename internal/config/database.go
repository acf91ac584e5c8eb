package config

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/zap"
)

var (
	// MongoDB client
	MongoDB *mongo.Database
	// Redis client
	Redis *redisclient.Client
)

// InitMongoDB initializes the MongoDB connection
func InitMongoDB() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().
		ApplyURI(AppConfig.MongoURI).
		SetMonitor(otelmongo.NewMonitor()).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(5 * time.Minute).
		SetRetryWrites(true).
		SetRetryReads(true)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		log.Fatal(err)
	}

	// Ping the database
	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatal(err)
	}

	MongoDB = client.Database(AppConfig.MongoDatabase)

	if err := ensureIndexes(); err != nil {
		logging.Logger.Error("failed to ensure indexes on startup", zap.Error(err))
	}

	logging.Logger.Info("connected to MongoDB",
		zap.String("uri", maskMongoURI(AppConfig.MongoURI)),
		zap.String("database", AppConfig.MongoDatabase),
	)
}

// InitRedis initializes the Redis connection
func InitRedis() {
	redisClient := redis.NewClient(&redis.Options{
		Addr:         AppConfig.RedisURI,
		Password:     AppConfig.RedisPassword,
		DB:           AppConfig.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	// Wrap with traced client
	Redis = redisclient.NewClient(redisClient)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := Redis.Ping(ctx).Err(); err != nil {
		logging.Logger.Error("failed to connect to Redis",
			zap.String("uri", AppConfig.RedisURI),
			zap.Error(err))
		return
	}

	logging.Logger.Info("connected to Redis",
		zap.String("uri", AppConfig.RedisURI))
}

// maskMongoURI masks credentials embedded in a MongoDB URI
func maskMongoURI(uri string) string {
	at := strings.LastIndex(uri, "@")
	if at == -1 {
		return uri
	}
	return "mongodb://****:****@" + uri[at+1:]
}

// ensureIndexes creates required indexes if they don't exist
func ensureIndexes() error {
	logger := zap.L().Named("database")
	logger.Info("ensuring required indexes exist")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		AppConfig.SchemeCollection: {
			{
				Keys:    bson.D{{Key: "scheme_name", Value: 1}, {Key: "plan_name", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("scheme_plan_unique"),
			},
			{
				Keys:    bson.D{{Key: "active", Value: 1}, {Key: "monthly_premium", Value: 1}},
				Options: options.Index().SetName("active_premium"),
			},
		},
		AppConfig.LeadCollection: {
			{
				Keys:    bson.D{{Key: "session_id", Value: 1}},
				Options: options.Index().SetName("lead_session"),
			},
			{
				Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("lead_status_created"),
			},
			{
				Keys:    bson.D{{Key: "broker_id", Value: 1}},
				Options: options.Index().SetSparse(true).SetName("lead_broker"),
			},
		},
		AppConfig.UserCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("user_email_unique"),
			},
		},
		AppConfig.QuestionnaireCollection: {
			{
				Keys:    bson.D{{Key: "session_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("questionnaire_session_unique"),
			},
		},
		AppConfig.RegistrationCollection: {
			{
				Keys:    bson.D{{Key: "registration_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("registration_id_unique"),
			},
			{
				Keys:    bson.D{{Key: "documents.status", Value: 1}},
				Options: options.Index().SetName("registration_document_status"),
			},
		},
		AppConfig.BrokerCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("broker_email_unique"),
			},
		},
		AppConfig.EmailTemplateCollection: {
			{
				Keys:    bson.D{{Key: "key", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("template_key_unique"),
			},
		},
		AppConfig.AnalyticsCollection: {
			{
				Keys:    bson.D{{Key: "event_type", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("event_type_created"),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := MongoDB.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			logger.Error("failed to create indexes",
				zap.String("collection", collection),
				zap.Error(err))
			return err
		}
	}

	logger.Info("indexes ensured")
	return nil
}
