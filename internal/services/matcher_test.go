package services

import (
	"context"
	"errors"
	"testing"

	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	if logging.Logger == nil {
		if err := logging.InitLogger(); err != nil {
			panic(err)
		}
	}
}

func scheme(name, plan string, premium float64, hospital, chronic, dayToDay, dental int) models.MedicalScheme {
	return models.MedicalScheme{
		ID:             primitive.NewObjectID(),
		SchemeName:     name,
		PlanName:       plan,
		MonthlyPremium: premium,
		Coverage: models.CoverageIndicators{
			Hospital: hospital,
			Chronic:  chronic,
			DayToDay: dayToDay,
			Dental:   dental,
		},
		Active: true,
	}
}

func f64(v float64) *float64 { return &v }
func boolp(v bool) *bool     { return &v }
func strp(v string) *string  { return &v }
func intp(v int) *int        { return &v }

func TestMatchSchemes_ReturnsAtMostThree(t *testing.T) {
	candidates := []models.MedicalScheme{
		scheme("Alpha", "Core", 1200, 80, 70, 60, 50),
		scheme("Bravo", "Plus", 1500, 85, 75, 65, 55),
		scheme("Charlie", "Essential", 900, 60, 50, 40, 30),
		scheme("Delta", "Max", 2500, 95, 90, 85, 80),
		scheme("Echo", "Saver", 700, 50, 40, 30, 20),
	}

	results := MatchSchemes(models.SchemeFilters{}, candidates)
	require.Len(t, results, MatchTopN)

	// every result came from the candidate list
	byID := make(map[primitive.ObjectID]bool)
	for _, c := range candidates {
		byID[c.ID] = true
	}
	for _, r := range results {
		assert.True(t, byID[r.ID])
		assert.NotEmpty(t, r.RecommendationReason)
	}
}

func TestMatchSchemes_ExcludesInactive(t *testing.T) {
	inactive := scheme("Alpha", "Core", 1200, 90, 90, 90, 90)
	inactive.Active = false
	active := scheme("Bravo", "Plus", 1500, 70, 70, 70, 70)

	results := MatchSchemes(models.SchemeFilters{}, []models.MedicalScheme{inactive, active})
	require.Len(t, results, 1)
	assert.Equal(t, "Bravo", results[0].SchemeName)
}

func TestMatchSchemes_BudgetFilter(t *testing.T) {
	candidates := []models.MedicalScheme{
		scheme("Alpha", "Core", 1000, 70, 70, 70, 70),
		scheme("Bravo", "Plus", 5000, 90, 90, 90, 90),
		scheme("Charlie", "Max", 9000, 95, 95, 95, 95),
	}

	results := MatchSchemes(models.SchemeFilters{Budget: f64(4000)}, candidates)
	require.Len(t, results, 1)
	assert.Equal(t, "Alpha", results[0].SchemeName)
}

func TestMatchSchemes_ChronicThreshold(t *testing.T) {
	candidates := []models.MedicalScheme{
		scheme("Alpha", "Core", 1000, 70, 40, 70, 70),
		scheme("Bravo", "Plus", 1000, 70, 60, 70, 70),
	}

	results := MatchSchemes(models.SchemeFilters{Chronic: boolp(true)}, candidates)
	require.Len(t, results, 1)
	assert.Equal(t, "Bravo", results[0].SchemeName)

	// no chronic need keeps both
	results = MatchSchemes(models.SchemeFilters{Chronic: boolp(false)}, candidates)
	assert.Len(t, results, 2)
}

func TestMatchSchemes_NetworkAndDayToDayTiers(t *testing.T) {
	weak := scheme("Alpha", "Core", 1000, 50, 70, 30, 70)
	strong := scheme("Bravo", "Plus", 1000, 90, 70, 80, 70)
	candidates := []models.MedicalScheme{weak, strong}

	results := MatchSchemes(models.SchemeFilters{
		HospitalNetwork: strp(models.NetworkComprehensive),
	}, candidates)
	require.Len(t, results, 1)
	assert.Equal(t, "Bravo", results[0].SchemeName)

	results = MatchSchemes(models.SchemeFilters{
		DayToDay: strp(models.DayToDayComprehensive),
	}, candidates)
	require.Len(t, results, 1)
	assert.Equal(t, "Bravo", results[0].SchemeName)

	// "none" tier imposes no day-to-day floor
	results = MatchSchemes(models.SchemeFilters{
		DayToDay: strp(models.DayToDayNone),
	}, candidates)
	assert.Len(t, results, 2)
}

func TestMatchSchemes_DSPComfortFloors(t *testing.T) {
	restricted := scheme("Alpha", "Network", 1000, 45, 70, 70, 70)
	open := scheme("Bravo", "Open", 1000, 75, 70, 70, 70)
	candidates := []models.MedicalScheme{restricted, open}

	// high comfort with DSP networks accepts anything
	results := MatchSchemes(models.SchemeFilters{DSPComfort: strp(models.DSPComfortHigh)}, candidates)
	assert.Len(t, results, 2)

	results = MatchSchemes(models.SchemeFilters{DSPComfort: strp(models.DSPComfortBasic)}, candidates)
	require.Len(t, results, 1)
	assert.Equal(t, "Bravo", results[0].SchemeName)
}

func TestMatchSchemes_LargeHouseholdNeedsDayToDay(t *testing.T) {
	thin := scheme("Alpha", "Hospital Plan", 1000, 90, 70, 20, 70)
	rich := scheme("Bravo", "Family", 1000, 70, 70, 60, 70)
	candidates := []models.MedicalScheme{thin, rich}

	results := MatchSchemes(models.SchemeFilters{Dependants: intp(4)}, candidates)
	require.Len(t, results, 1)
	assert.Equal(t, "Bravo", results[0].SchemeName)

	results = MatchSchemes(models.SchemeFilters{Dependants: intp(1)}, candidates)
	assert.Len(t, results, 2)
}

func TestMatchSchemes_Deterministic(t *testing.T) {
	candidates := []models.MedicalScheme{
		scheme("Delta", "Max", 2500, 95, 90, 85, 80),
		scheme("Alpha", "Core", 1200, 80, 70, 60, 50),
		scheme("Charlie", "Essential", 900, 60, 50, 40, 30),
		scheme("Bravo", "Plus", 1500, 85, 75, 65, 55),
	}
	filters := models.SchemeFilters{Budget: f64(3000), Chronic: boolp(true)}

	first := MatchSchemes(filters, candidates)
	for i := 0; i < 5; i++ {
		again := MatchSchemes(filters, candidates)
		require.Equal(t, first, again)
	}
}

func TestMatchSchemes_TieBreakByName(t *testing.T) {
	// identical coverage and premium produce identical scores
	a := scheme("Zulu", "Plan", 1000, 70, 70, 70, 70)
	b := scheme("Alpha", "Plan B", 1000, 70, 70, 70, 70)
	c := scheme("Alpha", "Plan A", 1000, 70, 70, 70, 70)

	results := MatchSchemes(models.SchemeFilters{}, []models.MedicalScheme{a, b, c})
	require.Len(t, results, 3)
	assert.Equal(t, "Plan A", results[0].PlanName)
	assert.Equal(t, "Plan B", results[1].PlanName)
	assert.Equal(t, "Zulu", results[2].SchemeName)
}

func TestMatchSchemes_ScoreOrderingPrefersHeadroom(t *testing.T) {
	cheap := scheme("Alpha", "Saver", 1000, 70, 70, 70, 70)
	pricey := scheme("Bravo", "Premium", 3900, 72, 72, 72, 72)

	results := MatchSchemes(models.SchemeFilters{Budget: f64(4000)}, []models.MedicalScheme{pricey, cheap})
	require.Len(t, results, 2)
	// marginally better coverage does not beat a much cheaper plan
	assert.Equal(t, "Alpha", results[0].SchemeName)
	assert.Greater(t, results[0].MatchScore, results[1].MatchScore)
}

func TestMatchSchemes_EmptyCandidates(t *testing.T) {
	results := MatchSchemes(models.SchemeFilters{}, nil)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestMatchSchemes_ScoreRounding(t *testing.T) {
	results := MatchSchemes(models.SchemeFilters{}, []models.MedicalScheme{
		scheme("Alpha", "Core", 1234, 77, 63, 51, 42),
	})
	require.Len(t, results, 1)
	rounded := results[0].MatchScore
	assert.InDelta(t, rounded, float64(int(rounded*10))/10, 1e-9)
}

type stubCandidateSource struct {
	schemes []models.MedicalScheme
	err     error
}

func (s stubCandidateSource) ListActive(ctx context.Context) ([]models.MedicalScheme, error) {
	return s.schemes, s.err
}

func TestFindMatches_SourceFailureReturnsEmpty(t *testing.T) {
	m := NewMatcherService(stubCandidateSource{err: errors.New("catalogue unavailable")})

	results := m.FindMatches(context.Background(), models.QuestionnaireAnswers{})
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestFindMatches_RanksFetchedCandidates(t *testing.T) {
	m := NewMatcherService(stubCandidateSource{schemes: []models.MedicalScheme{
		scheme("Alpha", "Core", 1200, 80, 70, 60, 50),
		scheme("Bravo", "Plus", 5500, 85, 75, 65, 55),
	}})

	results := m.FindMatches(context.Background(), models.QuestionnaireAnswers{Budget: f64(4000)})
	require.Len(t, results, 1)
	assert.Equal(t, "Alpha", results[0].SchemeName)
}
