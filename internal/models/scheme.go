package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CoverageIndicators holds per-dimension coverage percentages (0-100)
type CoverageIndicators struct {
	Hospital int `bson:"hospital" json:"hospital"`
	Chronic  int `bson:"chronic" json:"chronic"`
	DayToDay int `bson:"dayToDay" json:"dayToDay"`
	Dental   int `bson:"dental" json:"dental"`
}

// MedicalScheme represents a medical-aid product managed by back-office staff
type MedicalScheme struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchemeName     string             `bson:"scheme_name" json:"scheme_name"`
	PlanName       string             `bson:"plan_name" json:"plan_name"`
	MonthlyPremium float64            `bson:"monthly_premium" json:"monthly_premium"`
	KeyHighlights  []string           `bson:"key_highlights" json:"key_highlights"`
	Coverage       CoverageIndicators `bson:"coverage_indicators" json:"coverage_indicators"`
	LogoURL        string             `bson:"logo_url,omitempty" json:"logo_url,omitempty"`
	BrochureURL    string             `bson:"brochure_url,omitempty" json:"brochure_url,omitempty"`
	Active         bool               `bson:"active" json:"active"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// RankedScheme is a scheme with matcher output attached
type RankedScheme struct {
	MedicalScheme        `bson:",inline"`
	MatchScore           float64 `bson:"match_score" json:"match_score"`
	RecommendationReason string  `bson:"recommendation_reason,omitempty" json:"recommendation_reason,omitempty"`
}

// SchemeFilters enumerates every optional narrowing dimension for a scheme
// query. A zero-value filter matches all active schemes.
type SchemeFilters struct {
	Budget          *float64 `json:"budget,omitempty" form:"budget"`
	Chronic         *bool    `json:"chronic,omitempty" form:"chronic"`
	Dependants      *int     `json:"dependants,omitempty" form:"dependants"`
	DayToDay        *string  `json:"day_to_day,omitempty" form:"day_to_day"`
	DSPComfort      *string  `json:"dsp_comfort,omitempty" form:"dsp_comfort"`
	HospitalNetwork *string  `json:"hospital_network,omitempty" form:"hospital_network"`
}

// SchemeCreateRequest is the admin payload for creating a scheme
type SchemeCreateRequest struct {
	SchemeName     string             `json:"scheme_name" binding:"required"`
	PlanName       string             `json:"plan_name" binding:"required"`
	MonthlyPremium float64            `json:"monthly_premium" binding:"required,gt=0"`
	KeyHighlights  []string           `json:"key_highlights"`
	Coverage       CoverageIndicators `json:"coverage_indicators"`
	LogoURL        string             `json:"logo_url"`
	BrochureURL    string             `json:"brochure_url"`
	Active         *bool              `json:"active"`
}

// SchemeUpdateRequest is the admin payload for updating a scheme; nil fields
// are left untouched
type SchemeUpdateRequest struct {
	SchemeName     *string             `json:"scheme_name"`
	PlanName       *string             `json:"plan_name"`
	MonthlyPremium *float64            `json:"monthly_premium"`
	KeyHighlights  *[]string           `json:"key_highlights"`
	Coverage       *CoverageIndicators `json:"coverage_indicators"`
	LogoURL        *string             `json:"logo_url"`
	BrochureURL    *string             `json:"brochure_url"`
	Active         *bool               `json:"active"`
}
