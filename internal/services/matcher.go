package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/models"
	"github.com/credimed/app-leads/internal/observability"
	"go.uber.org/zap"
)

// MatchTopN is the number of schemes returned to the results page
const MatchTopN = 3

// Minimum coverage-indicator thresholds per answer tier. A scheme below the
// threshold for a requested tier is filtered out before ranking.
const (
	chronicMinIndicator = 60

	dayToDayComprehensiveMin = 70
	dayToDayBasicMin         = 40

	networkComprehensiveMin = 80
	networkSelectiveMin     = 60
	networkBasicMin         = 40

	// Low DSP comfort means the applicant wants an unrestricted provider
	// network, which only schemes with strong hospital cover offer
	dspMediumMin = 50
	dspBasicMin  = 70

	// Larger families lean on day-to-day benefits
	dependantsLargeHousehold = 3
	dependantsDayToDayMin    = 50
)

// Composite score weights. Coverage dimensions sum to 1 and the blended
// score trades coverage against budget headroom.
const (
	weightHospital = 0.30
	weightChronic  = 0.25
	weightDayToDay = 0.25
	weightDental   = 0.20

	weightCoverage  = 0.75
	weightBudgetFit = 0.25
)

// MatchSchemes narrows candidates by the given filters and returns the top
// MatchTopN ranked by composite score. It is pure and deterministic: ties
// are broken by scheme name then plan name, and candidates are never
// mutated or fabricated.
func MatchSchemes(filters models.SchemeFilters, candidates []models.MedicalScheme) []models.RankedScheme {
	eligible := make([]models.RankedScheme, 0, len(candidates))

	for _, scheme := range candidates {
		if !eligibleScheme(filters, scheme) {
			continue
		}
		ranked := models.RankedScheme{MedicalScheme: scheme}
		ranked.MatchScore = scoreScheme(filters, scheme)
		ranked.RecommendationReason = recommendationReason(filters, scheme)
		eligible = append(eligible, ranked)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		if eligible[i].MatchScore != eligible[j].MatchScore {
			return eligible[i].MatchScore > eligible[j].MatchScore
		}
		if eligible[i].SchemeName != eligible[j].SchemeName {
			return eligible[i].SchemeName < eligible[j].SchemeName
		}
		return eligible[i].PlanName < eligible[j].PlanName
	})

	if len(eligible) > MatchTopN {
		eligible = eligible[:MatchTopN]
	}
	return eligible
}

// eligibleScheme applies every filter dimension; absent fields impose no
// constraint
func eligibleScheme(f models.SchemeFilters, s models.MedicalScheme) bool {
	if !s.Active {
		return false
	}
	if f.Budget != nil && s.MonthlyPremium > *f.Budget {
		return false
	}
	if f.Chronic != nil && *f.Chronic && s.Coverage.Chronic < chronicMinIndicator {
		return false
	}
	if f.DayToDay != nil {
		switch *f.DayToDay {
		case models.DayToDayComprehensive:
			if s.Coverage.DayToDay < dayToDayComprehensiveMin {
				return false
			}
		case models.DayToDayBasic:
			if s.Coverage.DayToDay < dayToDayBasicMin {
				return false
			}
		}
	}
	if f.HospitalNetwork != nil {
		switch *f.HospitalNetwork {
		case models.NetworkComprehensive:
			if s.Coverage.Hospital < networkComprehensiveMin {
				return false
			}
		case models.NetworkSelective:
			if s.Coverage.Hospital < networkSelectiveMin {
				return false
			}
		case models.NetworkBasic:
			if s.Coverage.Hospital < networkBasicMin {
				return false
			}
		}
	}
	if f.DSPComfort != nil {
		switch *f.DSPComfort {
		case models.DSPComfortMedium:
			if s.Coverage.Hospital < dspMediumMin {
				return false
			}
		case models.DSPComfortBasic:
			if s.Coverage.Hospital < dspBasicMin {
				return false
			}
		}
	}
	if f.Dependants != nil && *f.Dependants >= dependantsLargeHousehold && s.Coverage.DayToDay < dependantsDayToDayMin {
		return false
	}
	return true
}

// scoreScheme blends normalized coverage with budget headroom into a
// 0-100 score rounded to one decimal
func scoreScheme(f models.SchemeFilters, s models.MedicalScheme) float64 {
	coverage := weightHospital*float64(s.Coverage.Hospital) +
		weightChronic*float64(s.Coverage.Chronic) +
		weightDayToDay*float64(s.Coverage.DayToDay) +
		weightDental*float64(s.Coverage.Dental)

	score := coverage
	if f.Budget != nil && *f.Budget > 0 {
		fit := 1.0 - s.MonthlyPremium / *f.Budget
		if fit < 0 {
			fit = 0
		}
		score = weightCoverage*coverage + weightBudgetFit*fit*100
	}

	return math.Round(score*10) / 10
}

// recommendationReason names the scheme's strongest selling point for the
// given answers
func recommendationReason(f models.SchemeFilters, s models.MedicalScheme) string {
	if f.Budget != nil && s.MonthlyPremium <= 0.8**f.Budget {
		return fmt.Sprintf("Comfortably within your R%.0f monthly budget", *f.Budget)
	}
	if f.Chronic != nil && *f.Chronic && s.Coverage.Chronic >= 80 {
		return "Excellent chronic medication benefits"
	}

	best, bestVal := "hospital cover", s.Coverage.Hospital
	if s.Coverage.Chronic > bestVal {
		best, bestVal = "chronic cover", s.Coverage.Chronic
	}
	if s.Coverage.DayToDay > bestVal {
		best, bestVal = "day-to-day benefits", s.Coverage.DayToDay
	}
	if s.Coverage.Dental > bestVal {
		best, bestVal = "dental cover", s.Coverage.Dental
	}
	if bestVal >= 70 {
		return fmt.Sprintf("Strong %s for your profile", best)
	}
	return fmt.Sprintf("Balanced cover at R%.0f per month", s.MonthlyPremium)
}

// candidateSource supplies the active scheme catalogue for matching
type candidateSource interface {
	ListActive(ctx context.Context) ([]models.MedicalScheme, error)
}

// MatcherService ranks schemes fetched from the scheme store
type MatcherService struct {
	schemes candidateSource
	logger  *zap.Logger
}

// NewMatcherService creates a new matcher service instance
func NewMatcherService(schemes candidateSource) *MatcherService {
	return &MatcherService{
		schemes: schemes,
		logger:  logging.Logger.Named("matcher"),
	}
}

// FindMatches fetches active schemes and ranks them against the answers.
// A candidate-source failure resolves to an empty list so the results page
// can render a "no matches" state instead of an error.
func (m *MatcherService) FindMatches(ctx context.Context, answers models.QuestionnaireAnswers) []models.RankedScheme {
	filters := answers.Filters()

	candidates, err := m.schemes.ListActive(ctx)
	if err != nil {
		m.logger.Error("failed to fetch candidate schemes, returning no matches", zap.Error(err))
		observability.MatchesComputed.WithLabelValues("source_error").Inc()
		return []models.RankedScheme{}
	}

	results := MatchSchemes(filters, candidates)
	if len(results) == 0 {
		observability.MatchesComputed.WithLabelValues("empty").Inc()
	} else {
		observability.MatchesComputed.WithLabelValues("ok").Inc()
	}
	return results
}
