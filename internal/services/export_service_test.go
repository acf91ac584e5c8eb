package services

import (
	"strings"
	"testing"
	"time"

	"github.com/credimed/app-leads/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestExportCSV_LeadColumns(t *testing.T) {
	svc := &ExportService{}
	brokerID := primitive.NewObjectID()
	created := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)

	out, err := svc.CSV(ExportLeads, []bson.M{
		{
			"_id":        primitive.NewObjectID(),
			"session_id": "sess-1",
			"source":     "questionnaire",
			"email":      "jane@example.com",
			"status":     "new",
			"broker_id":  brokerID,
			"created_at": created,
		},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t,
		"_id,session_id,source,name,email,phone,status,broker_id,selected_scheme_id,matched_scheme_ids,created_at,updated_at",
		lines[0])
	assert.Contains(t, lines[1], "sess-1")
	assert.Contains(t, lines[1], brokerID.Hex())
	assert.Contains(t, lines[1], "2026-08-01T10:30:00Z")
}

func TestExportCSV_NestedValuesAreJSONEncoded(t *testing.T) {
	svc := &ExportService{}

	out, err := svc.CSV(ExportAnalytics, []bson.M{
		{
			"event_type": "page_view",
			"event_data": bson.M{"page": "/results"},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"{""page"":""/results""}"`)
}

func TestExportCSV_MissingFieldsAreEmptyCells(t *testing.T) {
	svc := &ExportService{}

	out, err := svc.CSV(ExportBrokers, []bson.M{
		{"name": "Thandi Nkosi"},
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, ",Thandi Nkosi,,,,,,", lines[1])
}

func TestExportCSV_UnknownType(t *testing.T) {
	svc := &ExportService{}

	_, err := svc.CSV("users", nil)
	assert.Equal(t, models.ErrUnknownExportType, err)
}

func TestExportCSV_HeaderOnlyForNoDocuments(t *testing.T) {
	svc := &ExportService{}

	out, err := svc.CSV(ExportSchemes, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "_id,scheme_name,plan_name"))
}
