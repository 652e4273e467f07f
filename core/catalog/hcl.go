// Package catalog - HCL catalog files
package catalog

import (
	stderrors "errors"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"roaming-cost/core/types"
	"roaming-cost/core/usage"
	"roaming-cost/internal/errors"
)

// An HCL catalog file looks like:
//
//	country "DE" {
//	  name   = "Germany"
//	  region = "Europe"
//	}
//
//	bundle "eu-weekly" {
//	  name          = "Europe Weekly"
//	  kind          = "regional"
//	  countries     = ["DE", "FR"]
//	  data_gb       = 5
//	  voice_minutes = 100
//	  sms           = 50
//	  price         = 149
//	  validity_days = 7
//	}
//
//	rate "DE" {
//	  data_per_mb   = 0.15
//	  voice_per_min = 2.5
//	  sms_per_unit  = 1.0
//	}
//
// preset and subscriber blocks are optional.

type hclCatalog struct {
	Countries   []hclCountry    `hcl:"country,block"`
	Bundles     []hclBundle     `hcl:"bundle,block"`
	Rates       []hclRate       `hcl:"rate,block"`
	Presets     []hclPreset     `hcl:"preset,block"`
	Subscribers []hclSubscriber `hcl:"subscriber,block"`
}

type hclCountry struct {
	Code   string `hcl:"code,label"`
	Name   string `hcl:"name"`
	Region string `hcl:"region"`
	Flag   string `hcl:"flag,optional"`
}

type hclBundle struct {
	ID           string   `hcl:"id,label"`
	Name         string   `hcl:"name"`
	Kind         string   `hcl:"kind"`
	Regions      []string `hcl:"regions,optional"`
	Countries    []string `hcl:"countries"`
	DataGB       float64  `hcl:"data_gb"`
	VoiceMinutes float64  `hcl:"voice_minutes"`
	SMS          float64  `hcl:"sms"`
	Price        float64  `hcl:"price"`
	ValidityDays int      `hcl:"validity_days"`
	Description  string   `hcl:"description,optional"`
	Features     []string `hcl:"features,optional"`
}

type hclRate struct {
	Country     string  `hcl:"country,label"`
	DataPerMB   float64 `hcl:"data_per_mb"`
	VoicePerMin float64 `hcl:"voice_per_min"`
	SMSPerUnit  float64 `hcl:"sms_per_unit"`
}

type hclPreset struct {
	Kind          string  `hcl:"kind,label"`
	DailyDataMB   float64 `hcl:"daily_data_mb"`
	DailyVoiceMin float64 `hcl:"daily_voice_min"`
	DailySMS      float64 `hcl:"daily_sms"`
}

type hclSubscriber struct {
	ID          string `hcl:"id,label"`
	Name        string `hcl:"name"`
	Phone       string `hcl:"phone,optional"`
	CurrentPlan string `hcl:"current_plan,optional"`
}

// Open returns the built-in catalog when path is empty, otherwise the
// catalog in the HCL file at path. The catalog is validated either way.
func Open(path string) (*Catalog, error) {
	var (
		c   *Catalog
		err error
	)
	if path == "" {
		c = Default()
	} else {
		c, err = LoadHCL(path)
		if err != nil {
			return nil, err
		}
	}

	if errs := c.Validate(DefaultValidationRules()); len(errs) > 0 {
		return nil, errors.Catalog("catalog failed validation", stderrors.Join(errs...)).
			WithContext("path", path).
			WithContext("violations", len(errs))
	}
	return c, nil
}

// LoadHCL reads a catalog from an HCL file
func LoadHCL(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Catalog("failed to read catalog file", err).WithContext("path", path)
	}
	return ParseHCL(src, path)
}

// ParseHCL decodes a catalog from HCL source. Presets missing from the
// source fall back to the built-in presets.
func ParseHCL(src []byte, filename string) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, errors.Catalog("failed to parse catalog", diags).WithContext("path", filename)
	}

	var raw hclCatalog
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, errors.Catalog("failed to decode catalog", diags).WithContext("path", filename)
	}

	c := &Catalog{}
	for _, x := range raw.Countries {
		c.Countries = append(c.Countries, types.Country{
			Code:   normalizeCode(x.Code),
			Name:   x.Name,
			Region: types.Region(x.Region),
			Flag:   x.Flag,
		})
	}
	for _, x := range raw.Bundles {
		regions := make([]types.Region, len(x.Regions))
		for i, r := range x.Regions {
			regions[i] = types.Region(r)
		}
		countries := make([]string, len(x.Countries))
		for i, code := range x.Countries {
			countries[i] = normalizeCode(code)
		}
		c.Bundles = append(c.Bundles, types.BundleOffer{
			ID:           x.ID,
			Name:         x.Name,
			Kind:         types.CoverageKind(x.Kind),
			Regions:      regions,
			Countries:    countries,
			DataGB:       decimal.NewFromFloat(x.DataGB),
			VoiceMinutes: decimal.NewFromFloat(x.VoiceMinutes),
			SMS:          decimal.NewFromFloat(x.SMS),
			Price:        decimal.NewFromFloat(x.Price),
			ValidityDays: x.ValidityDays,
			Description:  x.Description,
			Features:     x.Features,
		})
	}
	for _, x := range raw.Rates {
		c.Rates = append(c.Rates, types.MeteredRate{
			Country:     normalizeCode(x.Country),
			DataPerMB:   decimal.NewFromFloat(x.DataPerMB),
			VoicePerMin: decimal.NewFromFloat(x.VoicePerMin),
			SMSPerUnit:  decimal.NewFromFloat(x.SMSPerUnit),
		})
	}
	for _, x := range raw.Presets {
		c.Presets = append(c.Presets, types.UsageProfile{
			DailyDataMB:   decimal.NewFromFloat(x.DailyDataMB),
			DailyVoiceMin: decimal.NewFromFloat(x.DailyVoiceMin),
			DailySMS:      decimal.NewFromFloat(x.DailySMS),
			Kind:          types.ProfileKind(x.Kind),
		})
	}
	if len(c.Presets) == 0 {
		c.Presets = usage.Presets()
	}
	for _, x := range raw.Subscribers {
		c.Subscribers = append(c.Subscribers, types.Subscriber{
			ID:          x.ID,
			Name:        x.Name,
			Phone:       x.Phone,
			CurrentPlan: x.CurrentPlan,
		})
	}

	return c, nil
}
