package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func strPtr(s string) *string     { return &s }
func boolPtr(b bool) *bool        { return &b }

// fullAnswers returns a complete answer set
func fullAnswers() QuestionnaireAnswers {
	return QuestionnaireAnswers{
		Budget:           floatPtr(3500),
		HospitalNetwork:  strPtr(NetworkSelective),
		ChronicCover:     boolPtr(true),
		Dependants:       &Dependants{Adults: 1, Children: 2},
		DayToDayBenefits: strPtr(DayToDayBasic),
		Province:         strPtr("gauteng"),
		Lifestyle:        &Lifestyle{Area: AreaUrban},
		DSPComfort:       strPtr(DSPComfortMedium),
	}
}

func TestQuestionnaireState_Initial(t *testing.T) {
	s := NewQuestionnaireState("sess-1")

	assert.Equal(t, 1, s.Step)
	assert.Equal(t, QuestionnaireTotalSteps, s.TotalSteps)
	assert.False(t, s.IsComplete)
	assert.Empty(t, s.Results)
}

func TestQuestionnaireState_NextRequiresAnswer(t *testing.T) {
	s := NewQuestionnaireState("sess-1")

	err := s.Next()
	assert.ErrorIs(t, err, ErrStepIncomplete)
	assert.Equal(t, 1, s.Step)
}

func TestQuestionnaireState_StepBounds(t *testing.T) {
	s := NewQuestionnaireState("sess-1")
	s.UpdateData(fullAnswers())

	// Prev at step 1 is a no-op
	s.Prev()
	assert.Equal(t, 1, s.Step)

	// Walk forward to the last step
	for i := 1; i < QuestionnaireTotalSteps; i++ {
		require.NoError(t, s.Next())
	}
	assert.Equal(t, QuestionnaireTotalSteps, s.Step)
	assert.False(t, s.IsComplete)

	// Next at the last step completes without exceeding the bound
	require.NoError(t, s.Next())
	assert.Equal(t, QuestionnaireTotalSteps, s.Step)
	assert.True(t, s.IsComplete)

	// And again: still clamped
	require.NoError(t, s.Next())
	assert.Equal(t, QuestionnaireTotalSteps, s.Step)

	// Prev clears completion
	s.Prev()
	assert.Equal(t, QuestionnaireTotalSteps-1, s.Step)
	assert.False(t, s.IsComplete)
}

func TestQuestionnaireState_StepBounds_RandomWalk(t *testing.T) {
	s := NewQuestionnaireState("sess-1")
	s.UpdateData(fullAnswers())

	// A fixed pseudo-random walk; the bound must hold at every point
	walk := []bool{true, true, false, true, true, true, false, false, true, true, true, true, true, false, true, true, true}
	for _, forward := range walk {
		if forward {
			_ = s.Next()
		} else {
			s.Prev()
		}
		assert.GreaterOrEqual(t, s.Step, 1)
		assert.LessOrEqual(t, s.Step, s.TotalSteps)
	}
}

func TestQuestionnaireAnswers_MergeMonotonic(t *testing.T) {
	s := NewQuestionnaireState("sess-1")

	s.UpdateData(QuestionnaireAnswers{Budget: floatPtr(2000)})
	s.UpdateData(QuestionnaireAnswers{HospitalNetwork: strPtr(NetworkBasic)})

	// Earlier fields survive later partial updates
	require.NotNil(t, s.Data.Budget)
	assert.Equal(t, 2000.0, *s.Data.Budget)
	require.NotNil(t, s.Data.HospitalNetwork)

	// Same-key update overwrites
	s.UpdateData(QuestionnaireAnswers{Budget: floatPtr(4500)})
	assert.Equal(t, 4500.0, *s.Data.Budget)
	assert.Equal(t, NetworkBasic, *s.Data.HospitalNetwork)

	// Nil fields never clear previously set answers
	s.UpdateData(QuestionnaireAnswers{})
	assert.NotNil(t, s.Data.Budget)
	assert.NotNil(t, s.Data.HospitalNetwork)
}

func TestQuestionnaireAnswers_Complete(t *testing.T) {
	a := fullAnswers()
	assert.True(t, a.Complete())

	a.Province = nil
	assert.False(t, a.Complete())
}

func TestQuestionnaireAnswers_Filters(t *testing.T) {
	a := fullAnswers()
	f := a.Filters()

	require.NotNil(t, f.Budget)
	assert.Equal(t, 3500.0, *f.Budget)
	require.NotNil(t, f.Dependants)
	assert.Equal(t, 3, *f.Dependants)
	require.NotNil(t, f.Chronic)
	assert.True(t, *f.Chronic)

	empty := QuestionnaireAnswers{}
	f = empty.Filters()
	assert.Nil(t, f.Budget)
	assert.Nil(t, f.Dependants)
}

func TestQuestionnaireState_SetResults(t *testing.T) {
	s := NewQuestionnaireState("sess-1")

	s.SetResults(nil)
	assert.NotNil(t, s.Results)
	assert.Empty(t, s.Results)

	s.SetResults([]RankedScheme{{MatchScore: 80}})
	assert.Len(t, s.Results, 1)
}

func TestQuestionnaireState_Reset(t *testing.T) {
	s := NewQuestionnaireState("sess-1")
	s.UpdateData(fullAnswers())
	_ = s.Next()
	s.SetResults([]RankedScheme{{MatchScore: 80}})

	s.Reset()

	assert.Equal(t, 1, s.Step)
	assert.Equal(t, "sess-1", s.SessionID)
	assert.Nil(t, s.Data.Budget)
	assert.Empty(t, s.Results)
	assert.False(t, s.IsComplete)
}
