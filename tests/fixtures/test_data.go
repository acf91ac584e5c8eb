package fixtures

import (
	"time"

	"github.com/credimed/app-leads/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SampleSchemes returns a small active catalogue spanning the premium range
func SampleSchemes() []models.MedicalScheme {
	now := time.Now()
	build := func(scheme, plan string, premium float64, hospital, chronic, dayToDay, dental int) models.MedicalScheme {
		return models.MedicalScheme{
			ID:             primitive.NewObjectID(),
			SchemeName:     scheme,
			PlanName:       plan,
			MonthlyPremium: premium,
			KeyHighlights:  []string{"Test highlight"},
			Coverage: models.CoverageIndicators{
				Hospital: hospital,
				Chronic:  chronic,
				DayToDay: dayToDay,
				Dental:   dental,
			},
			Active:    true,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	return []models.MedicalScheme{
		build("Testcare", "Entry", 900, 50, 50, 40, 20),
		build("Testcare", "Standard", 2200, 75, 70, 60, 45),
		build("Testcare", "Premier", 5500, 95, 90, 85, 80),
		build("Medisure", "Network", 1600, 65, 60, 50, 30),
		build("Medisure", "Complete", 4100, 88, 82, 76, 62),
	}
}

// CompleteAnswers returns a fully answered questionnaire
func CompleteAnswers() models.QuestionnaireAnswers {
	budget := 4500.0
	network := models.NetworkSelective
	chronic := true
	dayToDay := models.DayToDayBasic
	province := "gauteng"
	dsp := models.DSPComfortMedium
	return models.QuestionnaireAnswers{
		Budget:           &budget,
		HospitalNetwork:  &network,
		ChronicCover:     &chronic,
		Dependants:       &models.Dependants{Adults: 1, Children: 1},
		DayToDayBenefits: &dayToDay,
		Province:         &province,
		Lifestyle:        &models.Lifestyle{Area: models.AreaUrban},
		DSPComfort:       &dsp,
	}
}

// SampleBroker returns a broker create payload
func SampleBroker() models.BrokerCreateRequest {
	return models.BrokerCreateRequest{
		Name:          "Thandi Nkosi",
		Email:         "thandi@example-brokers.co.za",
		Phone:         "+27711112222",
		LicenceNumber: "FSP-44821",
	}
}

// AdminUser returns an administrator account
func AdminUser() models.User {
	return models.User{
		Email:        "admin@credimed.co.za",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuvwx",
		FirstName:    "Admin",
		LastName:     "User",
		Phone:        "+27710000000",
		Role:         models.RoleAdmin,
		Consents:     models.Consents{POPIA: true, Disclosure: true},
	}
}
