package pricing

import (
	"errors"
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func referenceInput() Input {
	return Input{
		Printer:    PrinterInput{Watts: 200, Speed: 100, Nozzle: 0.4, HourlyCost: 5},
		Filament:   FilamentInput{PricePerKg: 20},
		Energy:     EnergyInput{KwhCost: 0.15},
		Model:      ModelInput{ModelWeight: 100, PrintTime: 5, Infill: 20, LayerHeight: 0.2},
		Commercial: CommercialInput{Margin: 0.3, Taxes: 0.1},
	}
}

func TestCalculate_ReferenceQuote(t *testing.T) {
	result := Calculate(referenceInput())

	nearlyEqual(t, "materialCost", result.Breakdown.MaterialCost, 2)
	nearlyEqual(t, "energyCost", result.Breakdown.EnergyCost, 0.15)
	nearlyEqual(t, "machineCost", result.Breakdown.MachineCost, 25)
	nearlyEqual(t, "subtotal", result.Breakdown.Subtotal, 27.15)
	nearlyEqual(t, "margin", result.Breakdown.Margin, 8.145)
	nearlyEqual(t, "tax", result.Breakdown.Tax, 3.5295)
	nearlyEqual(t, "total", result.Breakdown.Total, 38.8245)

	nearlyEqual(t, "estimatedTotalCost", result.Summary.EstimatedTotalCost, 38.82)
	nearlyEqual(t, "gramsUsed", result.Summary.GramsUsed, 100)
	nearlyEqual(t, "gramsWasted", result.Summary.GramsWasted, 0)
	nearlyEqual(t, "wastePercentage", result.Summary.WastePercentage, 0)
	if len(result.Summary.Suggestions) != 0 {
		t.Fatalf("expected no suggestions, got %v", result.Summary.Suggestions)
	}
}

func TestCalculate_TaxAppliesAfterMargin(t *testing.T) {
	result := Calculate(referenceInput())
	subtotal := result.Breakdown.Subtotal

	compounded := subtotal * (1 + 0.3) * (1 + 0.1)
	nearlyEqual(t, "total", result.Breakdown.Total, compounded)

	additive := subtotal * (1 + 0.3 + 0.1)
	if math.Abs(result.Breakdown.Total-additive) < 0.01 {
		t.Fatalf("total %v should differ from additive markup %v", result.Breakdown.Total, additive)
	}
}

func TestCalculate_LaborAndPostProcessingJoinSubtotal(t *testing.T) {
	in := referenceInput()
	in.Commercial = CommercialInput{Labor: 10, PostProcessing: 2.85}

	result := Calculate(in)

	nearlyEqual(t, "subtotal", result.Breakdown.Subtotal, 40)
	nearlyEqual(t, "total", result.Breakdown.Total, 40)
	nearlyEqual(t, "estimatedTotalCost", result.Summary.EstimatedTotalCost, 40)
}

func TestCalculate_MonotonicInMarginAndTaxes(t *testing.T) {
	in := referenceInput()
	prev := -1.0
	for _, margin := range []float64{0, 0.1, 0.25, 0.5, 1} {
		in.Commercial.Margin = margin
		total := Calculate(in).Breakdown.Total
		if total < prev {
			t.Fatalf("total decreased at margin %v: %v < %v", margin, total, prev)
		}
		prev = total
	}

	in = referenceInput()
	prev = -1.0
	for _, taxes := range []float64{0, 0.05, 0.19, 0.5, 1} {
		in.Commercial.Taxes = taxes
		total := Calculate(in).Breakdown.Total
		if total < prev {
			t.Fatalf("total decreased at taxes %v: %v < %v", taxes, total, prev)
		}
		prev = total
	}
}

func TestCalculate_SupportsCountAsWaste(t *testing.T) {
	in := referenceInput()
	in.Model.Supports = true
	in.Model.SupportWeight = 25

	result := Calculate(in)

	nearlyEqual(t, "gramsUsed", result.Summary.GramsUsed, 125)
	nearlyEqual(t, "gramsWasted", result.Summary.GramsWasted, 25)
	nearlyEqual(t, "wastePercentage", result.Summary.WastePercentage, 20)
	nearlyEqual(t, "materialCost", result.Breakdown.MaterialCost, 2.5)
}

func TestCalculate_SupportWeightIgnoredWithoutSupports(t *testing.T) {
	in := referenceInput()
	in.Model.SupportWeight = 30

	result := Calculate(in)

	nearlyEqual(t, "gramsUsed", result.Summary.GramsUsed, 100)
	nearlyEqual(t, "gramsWasted", result.Summary.GramsWasted, 0)
}

func TestCalculate_ZeroGramsUsedYieldsZeroWaste(t *testing.T) {
	in := referenceInput()
	in.Model.ModelWeight = 0

	result := Calculate(in)

	nearlyEqual(t, "wastePercentage", result.Summary.WastePercentage, 0)
}

func TestCalculate_WastePercentageStaysInRange(t *testing.T) {
	in := referenceInput()
	in.Model.Supports = true
	for _, support := range []float64{0.5, 10, 100, 1000, 50000} {
		in.Model.SupportWeight = support
		s := Calculate(in).Summary
		if s.WastePercentage < 0 || s.WastePercentage > 100 {
			t.Fatalf("waste percentage %v out of range for support %v", s.WastePercentage, support)
		}
		nearlyEqual(t, "wastePercentage", s.WastePercentage, round2(support/(100+support)*100))
	}
}

func TestSummarize_RejectsInvalidNumbers(t *testing.T) {
	cases := map[string]func(*Input){
		"nan watts":       func(in *Input) { in.Printer.Watts = math.NaN() },
		"infinite price":  func(in *Input) { in.Filament.PricePerKg = math.Inf(1) },
		"negative labor":  func(in *Input) { in.Commercial.Labor = -1 },
		"negative margin": func(in *Input) { in.Commercial.Margin = -0.1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := referenceInput()
			mutate(&in)
			if _, err := Summarize(in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSummarize_MatchesCalculate(t *testing.T) {
	in := referenceInput()
	in.Model.Infill = 40

	summary, err := Summarize(in)
	if err != nil {
		t.Fatalf("Summarize returned error: %v", err)
	}
	want := Calculate(in).Summary
	nearlyEqual(t, "estimatedTotalCost", summary.EstimatedTotalCost, want.EstimatedTotalCost)
	if len(summary.Suggestions) != 1 {
		t.Fatalf("expected infill suggestion, got %v", summary.Suggestions)
	}
}

func TestSafeDiv(t *testing.T) {
	nearlyEqual(t, "regular", safeDiv(1, 4, 9), 0.25)
	nearlyEqual(t, "zero", safeDiv(1, 0, 9), 9)
	nearlyEqual(t, "negative", safeDiv(1, -2, 1), 1)
}

func TestCalculate_RoundsExactBinaryValue(t *testing.T) {
	in := Input{
		Filament: FilamentInput{PricePerKg: 26.75},
		Model:    ModelInput{ModelWeight: 100},
	}

	result := Calculate(in)

	// 26.75/1000*100 is stored as 2.67499999999999982...
	nearlyEqual(t, "estimatedTotalCost", result.Summary.EstimatedTotalCost, 2.67)
}

func TestRoundTo(t *testing.T) {
	cases := []struct {
		in     float64
		places int
		want   float64
	}{
		{38.8245, 2, 38.82},
		{2.675, 2, 2.67},
		{0.125, 2, 0.12},
		{0.375, 2, 0.38},
		{2.5, 0, 2},
		{0.2205, 3, 0.221},
		{-1.005, 2, -1},
	}
	for _, tc := range cases {
		if got := roundTo(tc.in, tc.places); got != tc.want {
			t.Fatalf("roundTo(%v, %d) = %v, want %v", tc.in, tc.places, got, tc.want)
		}
	}
}
