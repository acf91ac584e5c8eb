package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/credimed/app-leads/internal/config"
	"github.com/credimed/app-leads/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

// SeedSchemes contains a starter scheme catalogue for development and demos
var SeedSchemes = []models.MedicalScheme{
	{
		SchemeName:     "Discovery Health",
		PlanName:       "KeyCare Plus",
		MonthlyPremium: 1850,
		KeyHighlights:  []string{"Unlimited hospital cover in network", "Chronic illness benefit", "Day-to-day cover through network GPs"},
		Coverage:       models.CoverageIndicators{Hospital: 70, Chronic: 65, DayToDay: 55, Dental: 30},
		Active:         true,
	},
	{
		SchemeName:     "Discovery Health",
		PlanName:       "Classic Saver",
		MonthlyPremium: 4200,
		KeyHighlights:  []string{"Full hospital cover at any private hospital", "Medical savings account", "Above-threshold benefit"},
		Coverage:       models.CoverageIndicators{Hospital: 90, Chronic: 80, DayToDay: 75, Dental: 60},
		Active:         true,
	},
	{
		SchemeName:     "Bonitas",
		PlanName:       "BonFit Select",
		MonthlyPremium: 1650,
		KeyHighlights:  []string{"Network hospital cover", "Preventative care benefits", "Virtual GP consultations"},
		Coverage:       models.CoverageIndicators{Hospital: 60, Chronic: 55, DayToDay: 45, Dental: 25},
		Active:         true,
	},
	{
		SchemeName:     "Bonitas",
		PlanName:       "BonComprehensive",
		MonthlyPremium: 6100,
		KeyHighlights:  []string{"Comprehensive hospital and chronic cover", "Generous savings account", "Extensive dental and optical"},
		Coverage:       models.CoverageIndicators{Hospital: 95, Chronic: 90, DayToDay: 85, Dental: 80},
		Active:         true,
	},
	{
		SchemeName:     "Momentum Medical Scheme",
		PlanName:       "Ingwe Option",
		MonthlyPremium: 950,
		KeyHighlights:  []string{"Entry-level network cover", "Student-friendly premiums", "Unlimited network GP visits"},
		Coverage:       models.CoverageIndicators{Hospital: 50, Chronic: 50, DayToDay: 40, Dental: 20},
		Active:         true,
	},
	{
		SchemeName:     "Momentum Medical Scheme",
		PlanName:       "Extender",
		MonthlyPremium: 5400,
		KeyHighlights:  []string{"Any-hospital cover", "Extended chronic benefit", "Strong day-to-day limits"},
		Coverage:       models.CoverageIndicators{Hospital: 92, Chronic: 85, DayToDay: 78, Dental: 65},
		Active:         true,
	},
	{
		SchemeName:     "Medihelp",
		PlanName:       "MedVital",
		MonthlyPremium: 2100,
		KeyHighlights:  []string{"Hospital plan with chronic cover", "Network specialists", "Maternity programme"},
		Coverage:       models.CoverageIndicators{Hospital: 75, Chronic: 70, DayToDay: 35, Dental: 20},
		Active:         true,
	},
	{
		SchemeName:     "Fedhealth",
		PlanName:       "Flexifed 4",
		MonthlyPremium: 3800,
		KeyHighlights:  []string{"Flexible hospital cover", "Threshold day-to-day benefits", "Chronic medicine at any pharmacy"},
		Coverage:       models.CoverageIndicators{Hospital: 85, Chronic: 75, DayToDay: 65, Dental: 50},
		Active:         true,
	},
}

func main() {
	fmt.Println("🌱 Seeding medical scheme catalogue...")

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	config.InitMongoDB()
	if config.MongoDB == nil {
		log.Fatal("Failed to initialize MongoDB")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	collection := config.MongoDB.Collection(config.AppConfig.SchemeCollection)

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatalf("Failed to count existing schemes: %v", err)
	}

	if count > 0 {
		fmt.Printf("⚠️  Found %d existing schemes. Do you want to replace them? (y/N): ", count)
		var response string
		_, err := fmt.Scanln(&response)
		if err != nil {
			fmt.Println("❌ Error reading input")
			return
		}
		if response != "y" && response != "Y" {
			fmt.Println("❌ Seeding cancelled")
			return
		}

		result, err := collection.DeleteMany(ctx, bson.M{})
		if err != nil {
			log.Fatalf("Failed to delete existing schemes: %v", err)
		}
		fmt.Printf("🗑️  Deleted %d existing schemes\n", result.DeletedCount)
	}

	now := time.Now()
	docs := make([]interface{}, len(SeedSchemes))
	for i, scheme := range SeedSchemes {
		scheme.CreatedAt = now
		scheme.UpdatedAt = now
		docs[i] = scheme
	}

	result, err := collection.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("Failed to insert schemes: %v", err)
	}

	fmt.Printf("✅ Successfully seeded %d schemes:\n", len(result.InsertedIDs))
	for _, scheme := range SeedSchemes {
		fmt.Printf("  ✓ %s - %s (R%.0f pm)\n", scheme.SchemeName, scheme.PlanName, scheme.MonthlyPremium)
	}

	fmt.Println("\n🎉 Seeding completed successfully!")
}
