package pricing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrInvalidInput is returned when a parameter set carries values the formulas cannot price.
var ErrInvalidInput = errors.New("invalid pricing input")

// PrinterInput holds the printer values used by the formulas.
type PrinterInput struct {
	Watts      float64
	Speed      float64
	Nozzle     float64
	HourlyCost float64
}

// FilamentInput holds the filament values used by the formulas.
type FilamentInput struct {
	PricePerKg float64
}

// EnergyInput holds the electricity rate.
type EnergyInput struct {
	KwhCost float64
}

// ModelInput holds the job geometry and timing.
type ModelInput struct {
	ModelWeight   float64
	PrintTime     float64
	Infill        float64
	Supports      bool
	SupportWeight float64
	LayerHeight   float64
}

// CommercialInput holds the labor costs and the markup fractions.
type CommercialInput struct {
	Labor          float64
	PostProcessing float64
	Margin         float64
	Taxes          float64
}

// Input is one complete parameter set.
type Input struct {
	Printer    PrinterInput
	Filament   FilamentInput
	Energy     EnergyInput
	Model      ModelInput
	Commercial CommercialInput
}

// Breakdown contains all intermediate, unrounded values of the cost calculation.
type Breakdown struct {
	MaterialCost   float64
	EnergyCost     float64
	MachineCost    float64
	Labor          float64
	PostProcessing float64
	Subtotal       float64
	Margin         float64
	Tax            float64
	Total          float64
}

// Summary is the rounded result stored alongside a quote.
type Summary struct {
	EstimatedTotalCost float64  `json:"estimated_total_cost" yaml:"estimated_total_cost"`
	GramsUsed          float64  `json:"grams_used" yaml:"grams_used"`
	GramsWasted        float64  `json:"grams_wasted" yaml:"grams_wasted"`
	WastePercentage    float64  `json:"waste_percentage" yaml:"waste_percentage"`
	Suggestions        []string `json:"suggestions" yaml:"suggestions"`
}

// Result groups the breakdown with the summary derived from it.
type Result struct {
	Breakdown Breakdown
	Summary   Summary
}

// Calculate computes the cost breakdown and summary for one parameter set.
// Inputs are assumed validated; only zero denominators are guarded.
func Calculate(in Input) Result {
	used, wasted := gramsUsed(in.Model)
	waste := wastePercentage(wasted, used)

	materialCost := materialCost(in.Filament.PricePerKg, used)
	energyCost := energyCost(in.Printer.Watts, in.Model.PrintTime, in.Energy.KwhCost)
	machineCost := machineCost(in.Model.PrintTime, in.Printer.HourlyCost)

	subtotal := materialCost + energyCost + machineCost + in.Commercial.Labor + in.Commercial.PostProcessing
	margin := subtotal * in.Commercial.Margin
	// Taxes apply to the post-margin amount.
	tax := (subtotal + margin) * in.Commercial.Taxes
	total := subtotal + margin + tax

	return Result{
		Breakdown: Breakdown{
			MaterialCost:   materialCost,
			EnergyCost:     energyCost,
			MachineCost:    machineCost,
			Labor:          in.Commercial.Labor,
			PostProcessing: in.Commercial.PostProcessing,
			Subtotal:       subtotal,
			Margin:         margin,
			Tax:            tax,
			Total:          total,
		},
		Summary: Summary{
			EstimatedTotalCost: round2(total),
			GramsUsed:          round2(used),
			GramsWasted:        round2(wasted),
			WastePercentage:    round2(waste),
			Suggestions:        Advise(in, waste),
		},
	}
}

// Summarize returns the summary for in, rejecting values no formula can price.
func Summarize(in Input) (Summary, error) {
	if err := in.check(); err != nil {
		return Summary{}, err
	}
	return Calculate(in).Summary, nil
}

func (in Input) check() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"printer.watts", in.Printer.Watts},
		{"printer.speed", in.Printer.Speed},
		{"printer.hourly_cost", in.Printer.HourlyCost},
		{"filament.price_per_kg", in.Filament.PricePerKg},
		{"energy.kwh_cost", in.Energy.KwhCost},
		{"model.model_weight", in.Model.ModelWeight},
		{"model.print_time", in.Model.PrintTime},
		{"model.infill", in.Model.Infill},
		{"model.support_weight", in.Model.SupportWeight},
		{"model.layer_height", in.Model.LayerHeight},
		{"commercial.labor", in.Commercial.Labor},
		{"commercial.post_processing", in.Commercial.PostProcessing},
		{"commercial.margin", in.Commercial.Margin},
		{"commercial.taxes", in.Commercial.Taxes},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s is not a finite number", ErrInvalidInput, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s must not be negative", ErrInvalidInput, f.name)
		}
	}
	return nil
}

func gramsUsed(m ModelInput) (used, wasted float64) {
	if m.Supports {
		wasted = m.SupportWeight
	}
	return m.ModelWeight + wasted, wasted
}

func wastePercentage(wasted, used float64) float64 {
	return safeDiv(wasted, used, 0) * 100
}

func materialCost(pricePerKg, grams float64) float64 {
	return (pricePerKg / 1000.0) * grams
}

func energyCost(watts, hours, kwhCost float64) float64 {
	return (watts / 1000.0) * hours * kwhCost
}

func machineCost(hours, hourlyCost float64) float64 {
	return hours * hourlyCost
}

// safeDiv returns num/den, or fallback when den is not positive.
func safeDiv(num, den, fallback float64) float64 {
	if den <= 0 {
		return fallback
	}
	return num / den
}

func round2(v float64) float64 {
	return roundTo(v, 2)
}

// roundTo rounds the exact binary value of v to places decimals, ties to even.
// Scaling by a power of ten first can push values like 2.67499... across the tie.
func roundTo(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return v
	}
	return r
}
