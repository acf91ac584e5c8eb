package services

import (
	"context"
	"fmt"
	"time"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/logging"
	"github.com/credimed/app-leads/internal/models"
	"github.com/credimed/app-leads/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// QuestionnaireService drives the comparison wizard: session lifecycle,
// answer accumulation, step transitions and the submission pipeline.
type QuestionnaireService struct {
	sessions   *SessionStore
	matcher    *MatcherService
	leads      *LeadService
	analytics  *AnalyticsService
	schemes    *SchemeService
	collection *mongo.Collection
	logger     *zap.Logger
}

// NewQuestionnaireService creates a new questionnaire service instance
func NewQuestionnaireService(sessions *SessionStore, matcher *MatcherService, leads *LeadService, analytics *AnalyticsService, schemes *SchemeService) *QuestionnaireService {
	return &QuestionnaireService{
		sessions:   sessions,
		matcher:    matcher,
		leads:      leads,
		analytics:  analytics,
		schemes:    schemes,
		collection: config.MongoDB.Collection(config.AppConfig.QuestionnaireCollection),
		logger:     logging.Logger.Named("questionnaire_service"),
	}
}

// StartSession creates a fresh wizard session and returns its initial state
func (s *QuestionnaireService) StartSession(ctx context.Context) (*models.QuestionnaireState, error) {
	state := models.NewQuestionnaireState(utils.GenerateUUID())
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	s.logger.Info("wizard session started", zap.String("session_id", state.SessionID))
	return state, nil
}

// GetSession loads the wizard state for a session
func (s *QuestionnaireService) GetSession(ctx context.Context, sessionID string) (*models.QuestionnaireState, error) {
	return s.sessions.Get(ctx, sessionID)
}

// UpdateAnswers validates and merges partial answers into the session.
// Fields the payload does not carry are left untouched.
func (s *QuestionnaireService) UpdateAnswers(ctx context.Context, sessionID string, partial models.QuestionnaireAnswers) (*models.QuestionnaireState, error) {
	if result := utils.ValidateAnswers(partial); !result.IsValid {
		return nil, fmt.Errorf("invalid answers: %s", result.Error())
	}

	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state.UpdateData(partial)
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Next advances the wizard one step. Advancing off the final step runs the
// submission pipeline: match, persist, lead upsert, analytics.
func (s *QuestionnaireService) Next(ctx context.Context, sessionID string) (*models.QuestionnaireState, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	wasComplete := state.IsComplete
	if err := state.Next(); err != nil {
		return nil, err
	}

	if state.IsComplete && !wasComplete {
		s.submit(ctx, state)
	}

	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Prev retreats the wizard one step
func (s *QuestionnaireService) Prev(ctx context.Context, sessionID string) (*models.QuestionnaireState, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state.Prev()
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// Reset wipes the session back to step one, keeping the session ID
func (s *QuestionnaireService) Reset(ctx context.Context, sessionID string) (*models.QuestionnaireState, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	state.Reset()
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	s.logger.Info("wizard session reset", zap.String("session_id", sessionID))
	return state, nil
}

// Submit recomputes matches for an already completed session. Used when the
// visitor revisits the results page after the first submission.
func (s *QuestionnaireService) Submit(ctx context.Context, sessionID string) (*models.QuestionnaireState, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !state.Data.Complete() {
		return nil, models.ErrStepIncomplete
	}

	state.IsComplete = true
	s.submit(ctx, state)

	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

// submit runs the post-completion pipeline. Matching always produces a
// result set; persistence failures degrade to results-only so the visitor
// still sees their comparison.
func (s *QuestionnaireService) submit(ctx context.Context, state *models.QuestionnaireState) {
	results := s.matcher.FindMatches(ctx, state.Data)
	state.SetResults(results)

	matchedIDs := make([]primitive.ObjectID, 0, len(results))
	for _, r := range results {
		matchedIDs = append(matchedIDs, r.ID)
	}

	if err := s.persistRecord(ctx, state.SessionID, state.Data, matchedIDs); err != nil {
		s.logger.Error("failed to persist questionnaire record",
			zap.String("session_id", state.SessionID),
			zap.Error(err))
	}

	if _, err := s.leads.CreateFromQuestionnaire(ctx, state.SessionID, state.Data, matchedIDs); err != nil {
		s.logger.Error("failed to store questionnaire lead",
			zap.String("session_id", state.SessionID),
			zap.Error(err))
	}

	s.analytics.Emit(models.EventQuestionnaireSubmitted, state.SessionID, map[string]interface{}{
		"matched_count": len(results),
	})
}

// persistRecord upserts the durable answer snapshot keyed by session
func (s *QuestionnaireService) persistRecord(ctx context.Context, sessionID string, answers models.QuestionnaireAnswers, matchedIDs []primitive.ObjectID) error {
	now := time.Now()
	update := bson.M{
		"$set": bson.M{
			"answers":            answers,
			"matched_scheme_ids": matchedIDs,
			"updated_at":         now,
		},
		"$setOnInsert": bson.M{
			"session_id": sessionID,
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	if _, err := s.collection.UpdateOne(ctx, bson.M{"session_id": sessionID}, update, opts); err != nil {
		return fmt.Errorf("failed to upsert questionnaire record: %w", err)
	}
	return nil
}

// SelectScheme records the visitor's pick from their match results, on both
// the session and the lead
func (s *QuestionnaireService) SelectScheme(ctx context.Context, sessionID, schemeID string) (*models.QuestionnaireState, error) {
	state, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	var selected *models.MedicalScheme
	for i := range state.Results {
		if state.Results[i].ID.Hex() == schemeID {
			selected = &state.Results[i].MedicalScheme
			break
		}
	}
	if selected == nil {
		return nil, models.ErrSchemeNotFound
	}

	state.SelectedScheme = selected
	if err := s.sessions.Save(ctx, state); err != nil {
		return nil, err
	}

	if err := s.leads.SetSelectedScheme(ctx, sessionID, selected.ID); err != nil {
		s.logger.Warn("failed to record selection on lead",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}

	s.analytics.Emit(models.EventSchemeSelected, sessionID, map[string]interface{}{
		"scheme_id":   selected.ID.Hex(),
		"scheme_name": selected.SchemeName,
		"plan_name":   selected.PlanName,
	})
	return state, nil
}
