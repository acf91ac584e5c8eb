package tests

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/redisclient"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TestContainers holds references to test containers
type TestContainers struct {
	MongoContainer *mongodb.MongoDBContainer
	RedisContainer *redis.RedisContainer
	MongoDB        *mongo.Database
	Cleanup        func()
}

// SetupTestContainers starts MongoDB and Redis containers and points the
// global config at them
func SetupTestContainers(t *testing.T) *TestContainers {
	ctx := context.Background()

	if logging.Logger == nil {
		require.NoError(t, logging.InitLogger(), "Failed to initialize logger")
	}

	mongoContainer, err := mongodb.Run(ctx,
		"mongo:7.0",
		mongodb.WithUsername("root"),
		mongodb.WithPassword("password"),
	)
	require.NoError(t, err, "Failed to start MongoDB container")
	testcontainers.CleanupContainer(t, mongoContainer)

	redisContainer, err := redis.Run(ctx,
		"redis:7-alpine",
	)
	require.NoError(t, err, "Failed to start Redis container")
	testcontainers.CleanupContainer(t, redisContainer)

	mongoURI, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get MongoDB connection string")

	redisURI, err := redisContainer.ConnectionString(ctx)
	require.NoError(t, err, "Failed to get Redis connection string")

	clientOptions := options.Client().ApplyURI(mongoURI)
	mongoClient, err := mongo.Connect(ctx, clientOptions)
	require.NoError(t, err, "Failed to connect to MongoDB")

	err = mongoClient.Ping(ctx, nil)
	require.NoError(t, err, "Failed to ping MongoDB")

	database := mongoClient.Database("credimed_test")

	if config.AppConfig == nil {
		config.AppConfig = &config.Config{}
	}

	config.AppConfig.MongoURI = mongoURI
	config.AppConfig.MongoDatabase = "credimed_test"
	config.AppConfig.RedisURI = strings.TrimPrefix(redisURI, "redis://")
	config.AppConfig.RedisDB = 0
	config.AppConfig.RedisPassword = ""
	config.AppConfig.SchemeCollection = "medical_schemes"
	config.AppConfig.LeadCollection = "leads"
	config.AppConfig.BrokerCollection = "brokers"
	config.AppConfig.UserCollection = "users"
	config.AppConfig.QuestionnaireCollection = "questionnaires"
	config.AppConfig.RegistrationCollection = "registrations"
	config.AppConfig.EmailTemplateCollection = "email_templates"
	config.AppConfig.AnalyticsCollection = "analytics_events"
	config.AppConfig.SessionTTL = 24 * time.Hour
	config.AppConfig.OTPTTL = 5 * time.Minute
	config.AppConfig.OTPBypassAllow = true
	config.AppConfig.SMSEnabled = false
	config.AppConfig.MailEnabled = false
	config.AppConfig.AdminRole = "admin"
	config.AppConfig.RoleCacheTTL = 15 * time.Minute
	config.AppConfig.Environment = "test"

	config.MongoDB = database

	redisClient := goredis.NewClient(&goredis.Options{
		Addr: config.AppConfig.RedisURI,
	})
	config.Redis = redisclient.NewClient(redisClient)
	require.NoError(t, config.Redis.Ping(ctx).Err(), "Failed to ping Redis")

	// container teardown is registered above; only the client needs closing
	cleanup := func() {
		mongoClient.Disconnect(context.Background())
	}

	return &TestContainers{
		MongoContainer: mongoContainer,
		RedisContainer: redisContainer,
		MongoDB:        database,
		Cleanup:        cleanup,
	}
}

// CleanupDatabase drops all collections in the test database
func CleanupDatabase(t *testing.T, db *mongo.Database) {
	ctx := context.Background()
	collections, err := db.ListCollectionNames(ctx, map[string]interface{}{})
	require.NoError(t, err, "Failed to list collections")

	for _, collection := range collections {
		err := db.Collection(collection).Drop(ctx)
		require.NoError(t, err, fmt.Sprintf("Failed to drop collection %s", collection))
	}
}
