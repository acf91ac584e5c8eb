package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hospital network tiers
const (
	NetworkComprehensive = "comprehensive"
	NetworkSelective     = "selective"
	NetworkBasic         = "basic"
)

// Day-to-day benefit tiers
const (
	DayToDayComprehensive = "comprehensive"
	DayToDayBasic         = "basic"
	DayToDayNone          = "none"
)

// DSP comfort tiers: how comfortable the applicant is with a restricted
// designated-service-provider network
const (
	DSPComfortHigh   = "high"
	DSPComfortMedium = "medium"
	DSPComfortBasic  = "basic"
)

// Lifestyle areas
const (
	AreaUrban = "urban"
	AreaRural = "rural"
)

// Provinces lists the nine South African provinces accepted in answers
var Provinces = []string{
	"eastern-cape",
	"free-state",
	"gauteng",
	"kwazulu-natal",
	"limpopo",
	"mpumalanga",
	"northern-cape",
	"north-west",
	"western-cape",
}

// Budget slider bounds in ZAR per month
const (
	BudgetMin = 500
	BudgetMax = 10000
)

// Dependants holds the adult and child head counts
type Dependants struct {
	Adults   int `bson:"adults" json:"adults" binding:"min=0,max=10"`
	Children int `bson:"children" json:"children" binding:"min=0,max=10"`
}

// Total returns the combined head count
func (d Dependants) Total() int {
	return d.Adults + d.Children
}

// Lifestyle holds area and student details
type Lifestyle struct {
	Area             string `bson:"area" json:"area"`
	IsStudent        bool   `bson:"is_student" json:"is_student"`
	StudentProofPath string `bson:"student_proof_path,omitempty" json:"student_proof_path,omitempty"`
}

// QuestionnaireAnswers accumulates partial answers across wizard steps.
// Nil fields have not been answered yet.
type QuestionnaireAnswers struct {
	Budget           *float64    `bson:"budget,omitempty" json:"budget,omitempty"`
	HospitalNetwork  *string     `bson:"hospital_network,omitempty" json:"hospital_network,omitempty"`
	ChronicCover     *bool       `bson:"chronic_cover,omitempty" json:"chronic_cover,omitempty"`
	Dependants       *Dependants `bson:"dependants,omitempty" json:"dependants,omitempty"`
	DayToDayBenefits *string     `bson:"day_to_day_benefits,omitempty" json:"day_to_day_benefits,omitempty"`
	Province         *string     `bson:"province,omitempty" json:"province,omitempty"`
	Lifestyle        *Lifestyle  `bson:"lifestyle,omitempty" json:"lifestyle,omitempty"`
	DSPComfort       *string     `bson:"dsp_comfort,omitempty" json:"dsp_comfort,omitempty"`
}

// Merge shallow-merges non-nil fields from other. Previously set fields are
// only replaced when other carries the same field; nothing is ever removed.
func (a *QuestionnaireAnswers) Merge(other QuestionnaireAnswers) {
	if other.Budget != nil {
		a.Budget = other.Budget
	}
	if other.HospitalNetwork != nil {
		a.HospitalNetwork = other.HospitalNetwork
	}
	if other.ChronicCover != nil {
		a.ChronicCover = other.ChronicCover
	}
	if other.Dependants != nil {
		a.Dependants = other.Dependants
	}
	if other.DayToDayBenefits != nil {
		a.DayToDayBenefits = other.DayToDayBenefits
	}
	if other.Province != nil {
		a.Province = other.Province
	}
	if other.Lifestyle != nil {
		a.Lifestyle = other.Lifestyle
	}
	if other.DSPComfort != nil {
		a.DSPComfort = other.DSPComfort
	}
}

// Complete reports whether all eight answers have been provided
func (a *QuestionnaireAnswers) Complete() bool {
	for step := 1; step <= QuestionnaireTotalSteps; step++ {
		if !a.StepAnswered(step) {
			return false
		}
	}
	return true
}

// StepAnswered reports whether the answer owned by the given wizard step is set
func (a *QuestionnaireAnswers) StepAnswered(step int) bool {
	switch step {
	case 1:
		return a.Budget != nil
	case 2:
		return a.HospitalNetwork != nil
	case 3:
		return a.ChronicCover != nil
	case 4:
		return a.Dependants != nil
	case 5:
		return a.DayToDayBenefits != nil
	case 6:
		return a.Province != nil
	case 7:
		return a.Lifestyle != nil
	case 8:
		return a.DSPComfort != nil
	default:
		return false
	}
}

// Filters reduces the answers to the typed scheme filter set
func (a *QuestionnaireAnswers) Filters() SchemeFilters {
	f := SchemeFilters{
		Budget:          a.Budget,
		Chronic:         a.ChronicCover,
		DayToDay:        a.DayToDayBenefits,
		DSPComfort:      a.DSPComfort,
		HospitalNetwork: a.HospitalNetwork,
	}
	if a.Dependants != nil {
		total := a.Dependants.Total()
		f.Dependants = &total
	}
	return f
}

// QuestionnaireTotalSteps is the fixed number of wizard steps
const QuestionnaireTotalSteps = 8

// QuestionnaireState is the wizard state held per session in Redis
type QuestionnaireState struct {
	SessionID      string               `json:"session_id"`
	Step           int                  `json:"step"`
	TotalSteps     int                  `json:"total_steps"`
	Data           QuestionnaireAnswers `json:"data"`
	Results        []RankedScheme       `json:"results"`
	SelectedScheme *MedicalScheme       `json:"selected_scheme,omitempty"`
	IsComplete     bool                 `json:"is_complete"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// NewQuestionnaireState returns the initial wizard state for a session
func NewQuestionnaireState(sessionID string) *QuestionnaireState {
	now := time.Now()
	return &QuestionnaireState{
		SessionID:  sessionID,
		Step:       1,
		TotalSteps: QuestionnaireTotalSteps,
		Data:       QuestionnaireAnswers{},
		Results:    []RankedScheme{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Next advances the wizard one step, clamped at TotalSteps. Advancing off
// the last step marks the wizard complete. The current step's answer must
// already be present, so a caller driving the machine programmatically
// cannot skip a question.
func (s *QuestionnaireState) Next() error {
	if !s.Data.StepAnswered(s.Step) {
		return ErrStepIncomplete
	}
	if s.Step == s.TotalSteps {
		s.IsComplete = true
	} else {
		s.Step++
	}
	return nil
}

// Prev retreats the wizard one step, clamped at 1, and clears completion
func (s *QuestionnaireState) Prev() {
	if s.Step > 1 {
		s.Step--
	}
	s.IsComplete = false
}

// UpdateData shallow-merges partial answers into the accumulated state
func (s *QuestionnaireState) UpdateData(partial QuestionnaireAnswers) {
	s.Data.Merge(partial)
}

// SetResults stores matcher output for display
func (s *QuestionnaireState) SetResults(results []RankedScheme) {
	if results == nil {
		results = []RankedScheme{}
	}
	s.Results = results
}

// Reset returns the wizard to its initial state
func (s *QuestionnaireState) Reset() {
	created := s.CreatedAt
	*s = *NewQuestionnaireState(s.SessionID)
	s.CreatedAt = created
}

// QuestionnaireRecord is the durable snapshot persisted on submission
type QuestionnaireRecord struct {
	ID               primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	SessionID        string               `bson:"session_id" json:"session_id"`
	Answers          QuestionnaireAnswers `bson:"answers" json:"answers"`
	MatchedSchemeIDs []primitive.ObjectID `bson:"matched_scheme_ids" json:"matched_scheme_ids"`
	CreatedAt        time.Time            `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time            `bson:"updated_at" json:"updated_at"`
}
