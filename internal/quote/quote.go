// Package quote defines the quote document exchanged with clients and its validation rules.
package quote

import (
	"strconv"
	"time"

	"github.com/Simplici0/printquote/internal/pricing"
)

// Printer describes the machine running the job.
type Printer struct {
	Name              string  `json:"name" yaml:"name" validate:"required,min=2,max=30,alnumspace"`
	Watts             float64 `json:"watts" yaml:"watts" validate:"gt=0"`
	Type              string  `json:"type" yaml:"type" validate:"required,printer_type"`
	Speed             float64 `json:"speed" yaml:"speed" validate:"gt=0,lte=300"`
	Nozzle            string  `json:"nozzle" yaml:"nozzle" validate:"required,nozzle"`
	Layer             float64 `json:"layer" yaml:"layer" validate:"gt=0,lte=1"`
	BedTemperature    float64 `json:"bed_temperature" yaml:"bed_temperature" validate:"gte=0,lte=120"`
	HotendTemperature float64 `json:"hotend_temperature" yaml:"hotend_temperature" validate:"gte=150,lte=350"`
	HourlyCost        float64 `json:"hourly_cost" yaml:"hourly_cost" validate:"gte=1,lte=500"`
}

// Filament describes the spool used for the job.
type Filament struct {
	Name        string  `json:"name" yaml:"name" validate:"required,min=2,max=40,alphaspace"`
	Type        string  `json:"type" yaml:"type" validate:"required,filament_type"`
	Color       string  `json:"color" yaml:"color" validate:"required,filament_color"`
	Diameter    float64 `json:"diameter" yaml:"diameter" validate:"filament_diameter"`
	PricePerKg  float64 `json:"price_per_kg" yaml:"price_per_kg" validate:"gt=1,lte=100"`
	TotalWeight float64 `json:"total_weight" yaml:"total_weight" validate:"gt=0"`
}

// Energy holds the electricity rate.
type Energy struct {
	KwhCost float64 `json:"kwh_cost" yaml:"kwh_cost" validate:"gt=0"`
}

// ModelData describes the printed object.
type ModelData struct {
	ModelWeight   float64 `json:"model_weight" yaml:"model_weight" validate:"gt=0"`
	PrintTime     float64 `json:"print_time" yaml:"print_time" validate:"gt=0"`
	Infill        float64 `json:"infill" yaml:"infill" validate:"gt=0,lte=100"`
	Supports      bool    `json:"supports" yaml:"supports"`
	SupportType   string  `json:"support_type,omitempty" yaml:"support_type,omitempty" validate:"omitempty,support_type"`
	SupportWeight float64 `json:"support_weight" yaml:"support_weight" validate:"gte=0"`
	LayerHeight   float64 `json:"layer_height" yaml:"layer_height" validate:"gt=0,lte=1"`
}

// Commercial holds labor costs and markup fractions.
type Commercial struct {
	Labor          float64 `json:"labor" yaml:"labor" validate:"gte=0,lte=500"`
	PostProcessing float64 `json:"post_processing" yaml:"post_processing" validate:"gte=0,lte=500"`
	Margin         float64 `json:"margin" yaml:"margin" validate:"gt=0,lte=1"`
	Taxes          float64 `json:"taxes" yaml:"taxes" validate:"gte=0,lte=1"`
}

// Document is the client-supplied part of a quote.
type Document struct {
	QuoteName  string     `json:"quote_name" yaml:"quote_name" validate:"required,min=3,max=60"`
	Printer    Printer    `json:"printer" yaml:"printer"`
	Filament   Filament   `json:"filament" yaml:"filament"`
	Energy     Energy     `json:"energy" yaml:"energy"`
	Model      ModelData  `json:"model" yaml:"model"`
	Commercial Commercial `json:"commercial" yaml:"commercial"`
}

// Quote is a persisted document together with its computed summary.
type Quote struct {
	ID      int64           `json:"id"`
	UserID  int64           `json:"user_id"`
	Summary pricing.Summary `json:"summary"`
	Document
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PricingInput converts a validated document into the calculator's input.
func (d Document) PricingInput() pricing.Input {
	nozzle, _ := strconv.ParseFloat(d.Printer.Nozzle, 64)
	return pricing.Input{
		Printer: pricing.PrinterInput{
			Watts:      d.Printer.Watts,
			Speed:      d.Printer.Speed,
			Nozzle:     nozzle,
			HourlyCost: d.Printer.HourlyCost,
		},
		Filament: pricing.FilamentInput{PricePerKg: d.Filament.PricePerKg},
		Energy:   pricing.EnergyInput{KwhCost: d.Energy.KwhCost},
		Model: pricing.ModelInput{
			ModelWeight:   d.Model.ModelWeight,
			PrintTime:     d.Model.PrintTime,
			Infill:        d.Model.Infill,
			Supports:      d.Model.Supports,
			SupportWeight: d.Model.SupportWeight,
			LayerHeight:   d.Model.LayerHeight,
		},
		Commercial: pricing.CommercialInput{
			Labor:          d.Commercial.Labor,
			PostProcessing: d.Commercial.PostProcessing,
			Margin:         d.Commercial.Margin,
			Taxes:          d.Commercial.Taxes,
		},
	}
}

// Summarize validates d and computes its summary.
func (d Document) Summarize() (pricing.Summary, error) {
	if err := Validate(d); err != nil {
		return pricing.Summary{}, err
	}
	return pricing.Summarize(d.PricingInput())
}
