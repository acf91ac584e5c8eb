package fixtures

import (
	"context"
	"testing"

	"github.com/credimed/app-leads/internal/models"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
)

// InsertSchemes loads schemes into the given collection
func InsertSchemes(t *testing.T, collection *mongo.Collection, schemes []models.MedicalScheme) {
	t.Helper()
	docs := make([]interface{}, len(schemes))
	for i, scheme := range schemes {
		docs[i] = scheme
	}
	_, err := collection.InsertMany(context.Background(), docs)
	require.NoError(t, err, "Failed to insert schemes")
}

// InsertUser loads a user account into the given collection
func InsertUser(t *testing.T, collection *mongo.Collection, user models.User) {
	t.Helper()
	_, err := collection.InsertOne(context.Background(), user)
	require.NoError(t, err, "Failed to insert user")
}
