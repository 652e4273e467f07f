// Package catalog - Built-in reference data
package catalog

import (
	"github.com/shopspring/decimal"

	"roaming-cost/core/types"
	"roaming-cost/core/usage"
)

// Default returns the built-in catalog. Each call returns fresh slices.
func Default() *Catalog {
	return &Catalog{
		Countries:   defaultCountries(),
		Bundles:     defaultBundles(),
		Rates:       defaultRates(),
		Presets:     usage.Presets(),
		Subscribers: defaultSubscribers(),
	}
}

func defaultCountries() []types.Country {
	return []types.Country{
		{Code: "TR", Name: "Turkey", Region: "Turkey", Flag: "🇹🇷"},
		{Code: "DE", Name: "Germany", Region: "Europe", Flag: "🇩🇪"},
		{Code: "FR", Name: "France", Region: "Europe", Flag: "🇫🇷"},
		{Code: "IT", Name: "Italy", Region: "Europe", Flag: "🇮🇹"},
		{Code: "ES", Name: "Spain", Region: "Europe", Flag: "🇪🇸"},
		{Code: "GB", Name: "United Kingdom", Region: "Europe", Flag: "🇬🇧"},
		{Code: "US", Name: "United States", Region: "Americas", Flag: "🇺🇸"},
		{Code: "AE", Name: "United Arab Emirates", Region: "Middle East", Flag: "🇦🇪"},
		{Code: "SA", Name: "Saudi Arabia", Region: "Middle East", Flag: "🇸🇦"},
		{Code: "JP", Name: "Japan", Region: "Asia", Flag: "🇯🇵"},
		{Code: "CN", Name: "China", Region: "Asia", Flag: "🇨🇳"},
		{Code: "IN", Name: "India", Region: "Asia", Flag: "🇮🇳"},
		{Code: "RU", Name: "Russia", Region: "Eurasia", Flag: "🇷🇺"},
		{Code: "EG", Name: "Egypt", Region: "Africa", Flag: "🇪🇬"},
		{Code: "ZA", Name: "South Africa", Region: "Africa", Flag: "🇿🇦"},
	}
}

func defaultBundles() []types.BundleOffer {
	europe := []string{"DE", "FR", "IT", "ES", "GB"}

	return []types.BundleOffer{
		{
			ID:           "eu-weekly",
			Name:         "Europe Weekly",
			Kind:         types.CoverageRegional,
			Regions:      []types.Region{"Europe"},
			Countries:    europe,
			DataGB:       decimal.NewFromInt(5),
			VoiceMinutes: decimal.NewFromInt(100),
			SMS:          decimal.NewFromInt(50),
			Price:        decimal.NewFromInt(149),
			ValidityDays: 7,
			Description:  "Weekly roaming bundle for European countries",
			Features:     []string{"5GB Data", "100 Minutes", "50 SMS", "Valid 7 days"},
		},
		{
			ID:           "eu-monthly",
			Name:         "Europe Monthly",
			Kind:         types.CoverageRegional,
			Regions:      []types.Region{"Europe"},
			Countries:    europe,
			DataGB:       decimal.NewFromInt(20),
			VoiceMinutes: decimal.NewFromInt(300),
			SMS:          decimal.NewFromInt(150),
			Price:        decimal.NewFromInt(399),
			ValidityDays: 30,
			Description:  "Monthly roaming bundle for European countries",
			Features:     []string{"20GB Data", "300 Minutes", "150 SMS", "Valid 30 days"},
		},
		{
			ID:           "usa-weekly",
			Name:         "USA Weekly",
			Kind:         types.CoverageCountry,
			Regions:      []types.Region{"Americas"},
			Countries:    []string{"US"},
			DataGB:       decimal.NewFromInt(3),
			VoiceMinutes: decimal.NewFromInt(60),
			SMS:          decimal.NewFromInt(30),
			Price:        decimal.NewFromInt(199),
			ValidityDays: 7,
			Description:  "Weekly roaming bundle for the United States",
			Features:     []string{"3GB Data", "60 Minutes", "30 SMS", "Valid 7 days"},
		},
		{
			ID:           "global-monthly",
			Name:         "Global Monthly",
			Kind:         types.CoverageGlobal,
			Regions:      []types.Region{"Europe", "Americas", "Asia", "Middle East"},
			Countries:    []string{"DE", "FR", "IT", "ES", "GB", "US", "AE", "SA", "JP"},
			DataGB:       decimal.NewFromInt(15),
			VoiceMinutes: decimal.NewFromInt(200),
			SMS:          decimal.NewFromInt(100),
			Price:        decimal.NewFromInt(599),
			ValidityDays: 30,
			Description:  "Monthly roaming bundle for destinations worldwide",
			Features:     []string{"15GB Data", "200 Minutes", "100 SMS", "Valid 30 days"},
		},
		{
			ID:           "middle-east-weekly",
			Name:         "Middle East Weekly",
			Kind:         types.CoverageRegional,
			Regions:      []types.Region{"Middle East"},
			Countries:    []string{"AE", "SA"},
			DataGB:       decimal.NewFromInt(4),
			VoiceMinutes: decimal.NewFromInt(80),
			SMS:          decimal.NewFromInt(40),
			Price:        decimal.NewFromInt(129),
			ValidityDays: 7,
			Description:  "Weekly roaming bundle for Middle East countries",
			Features:     []string{"4GB Data", "80 Minutes", "40 SMS", "Valid 7 days"},
		},
	}
}

func rate(country, dataPerMB, voicePerMin, smsPerUnit string) types.MeteredRate {
	return types.MeteredRate{
		Country:     country,
		DataPerMB:   decimal.RequireFromString(dataPerMB),
		VoicePerMin: decimal.RequireFromString(voicePerMin),
		SMSPerUnit:  decimal.RequireFromString(smsPerUnit),
	}
}

// Turkey is the home network and has no roaming rate.
func defaultRates() []types.MeteredRate {
	return []types.MeteredRate{
		rate("DE", "0.15", "2.5", "1.0"),
		rate("FR", "0.15", "2.5", "1.0"),
		rate("IT", "0.15", "2.5", "1.0"),
		rate("ES", "0.15", "2.5", "1.0"),
		rate("GB", "0.18", "3.0", "1.2"),
		rate("US", "0.25", "4.0", "1.5"),
		rate("AE", "0.12", "2.0", "0.8"),
		rate("SA", "0.12", "2.0", "0.8"),
		rate("JP", "0.30", "5.0", "2.0"),
		rate("CN", "0.20", "3.5", "1.3"),
		rate("IN", "0.08", "1.5", "0.5"),
		rate("RU", "0.22", "3.8", "1.4"),
		rate("EG", "0.10", "1.8", "0.6"),
		rate("ZA", "0.16", "2.8", "1.1"),
	}
}

func defaultSubscribers() []types.Subscriber {
	return []types.Subscriber{
		{ID: "1", Name: "Ahmet Yilmaz", Phone: "0532 123 45 67", CurrentPlan: "Platinum 50GB"},
		{ID: "2", Name: "Ayse Demir", Phone: "0533 987 65 43", CurrentPlan: "Gold 25GB"},
		{ID: "3", Name: "Mehmet Kaya", Phone: "0534 555 44 33", CurrentPlan: "Silver 10GB"},
	}
}
