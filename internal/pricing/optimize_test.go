package pricing

import "testing"

func assertParameters(t *testing.T, mode string, got, want ModeParameters) {
	t.Helper()
	nearlyEqual(t, mode+" speed", got.Speed, want.Speed)
	nearlyEqual(t, mode+" layerHeight", got.LayerHeight, want.LayerHeight)
	nearlyEqual(t, mode+" infill", got.Infill, want.Infill)
	nearlyEqual(t, mode+" supportWeight", got.SupportWeight, want.SupportWeight)
}

func assertResults(t *testing.T, mode string, got, want ModeResults) {
	t.Helper()
	nearlyEqual(t, mode+" printTime", got.PrintTime, want.PrintTime)
	nearlyEqual(t, mode+" gramsUsed", got.GramsUsed, want.GramsUsed)
	nearlyEqual(t, mode+" gramsWasted", got.GramsWasted, want.GramsWasted)
	nearlyEqual(t, mode+" wastePercentage", got.WastePercentage, want.WastePercentage)
	nearlyEqual(t, mode+" materialCost", got.MaterialCost, want.MaterialCost)
	nearlyEqual(t, mode+" energyCost", got.EnergyCost, want.EnergyCost)
	nearlyEqual(t, mode+" machineCost", got.MachineCost, want.MachineCost)
	nearlyEqual(t, mode+" totalCost", got.TotalCost, want.TotalCost)
}

func TestOptimize_ReferenceQuote(t *testing.T) {
	opt := Optimize(referenceInput())

	assertParameters(t, "fast", opt.Fast.NewParameters, ModeParameters{Speed: 110, LayerHeight: 0.22, Infill: 20, SupportWeight: 0})
	assertResults(t, "fast", opt.Fast.Results, ModeResults{
		PrintTime: 4.13, GramsUsed: 100, MaterialCost: 2, EnergyCost: 0.12, MachineCost: 20.66, TotalCost: 22.79,
	})

	assertParameters(t, "economic", opt.Economic.NewParameters, ModeParameters{Speed: 100, LayerHeight: 0.2, Infill: 16, SupportWeight: 0})
	assertResults(t, "economic", opt.Economic.Results, ModeResults{
		PrintTime: 4, GramsUsed: 80, MaterialCost: 1.6, EnergyCost: 0.12, MachineCost: 20, TotalCost: 21.72,
	})

	assertParameters(t, "balanced", opt.Balanced.NewParameters, ModeParameters{Speed: 105, LayerHeight: 0.21, Infill: 18, SupportWeight: 0})
	assertResults(t, "balanced", opt.Balanced.Results, ModeResults{
		PrintTime: 4.08, GramsUsed: 90, MaterialCost: 1.8, EnergyCost: 0.12, MachineCost: 20.41, TotalCost: 22.33,
	})
}

func TestOptimize_SupportsScaleDown(t *testing.T) {
	in := referenceInput()
	in.Model.Supports = true
	in.Model.SupportWeight = 30

	opt := Optimize(in)

	nearlyEqual(t, "fast support", opt.Fast.NewParameters.SupportWeight, 27)
	assertResults(t, "fast", opt.Fast.Results, ModeResults{
		PrintTime: 4.13, GramsUsed: 127, GramsWasted: 27, WastePercentage: 21.26,
		MaterialCost: 2.54, EnergyCost: 0.12, MachineCost: 20.66, TotalCost: 23.33,
	})

	nearlyEqual(t, "economic support", opt.Economic.NewParameters.SupportWeight, 25.5)
	assertResults(t, "economic", opt.Economic.Results, ModeResults{
		PrintTime: 4, GramsUsed: 105.5, GramsWasted: 25.5, WastePercentage: 24.17,
		MaterialCost: 2.11, EnergyCost: 0.12, MachineCost: 20, TotalCost: 22.23,
	})
}

func TestOptimize_IgnoresSupportWeightWithoutSupports(t *testing.T) {
	in := referenceInput()
	in.Model.SupportWeight = 30

	opt := Optimize(in)

	nearlyEqual(t, "fast support", opt.Fast.NewParameters.SupportWeight, 0)
	nearlyEqual(t, "balanced wasted", opt.Balanced.Results.GramsWasted, 0)
}

func TestOptimize_ClampsSpeedAndLayerHeight(t *testing.T) {
	in := referenceInput()
	for _, speed := range []float64{273, 280, 299.9, 300} {
		in.Printer.Speed = speed
		in.Model.LayerHeight = 0.95

		opt := Optimize(in)

		if opt.Fast.NewParameters.Speed != 300.0 {
			t.Fatalf("fast speed for %v = %v, want 300", speed, opt.Fast.NewParameters.Speed)
		}
		if opt.Fast.NewParameters.LayerHeight != 1.0 {
			t.Fatalf("fast layer height = %v, want 1.0", opt.Fast.NewParameters.LayerHeight)
		}
		if opt.Balanced.NewParameters.Speed > 300.0 {
			t.Fatalf("balanced speed %v exceeds 300", opt.Balanced.NewParameters.Speed)
		}
	}
}

func TestOptimize_InfillFloor(t *testing.T) {
	in := referenceInput()
	for _, infill := range []float64{1, 4, 5, 6.2} {
		in.Model.Infill = infill

		opt := Optimize(in)

		if opt.Economic.NewParameters.Infill != 5.0 {
			t.Fatalf("economic infill for %v = %v, want 5", infill, opt.Economic.NewParameters.Infill)
		}
		if opt.Balanced.NewParameters.Infill < 5.0 {
			t.Fatalf("balanced infill for %v = %v, below floor", infill, opt.Balanced.NewParameters.Infill)
		}
	}
}

func TestOptimize_ZeroInfillKeepsModelWeight(t *testing.T) {
	in := referenceInput()
	in.Model.Infill = 0

	opt := Optimize(in)

	nearlyEqual(t, "economic infill", opt.Economic.NewParameters.Infill, 5)
	assertResults(t, "economic", opt.Economic.Results, ModeResults{
		PrintTime: 5, GramsUsed: 100, MaterialCost: 2, EnergyCost: 0.15, MachineCost: 25, TotalCost: 27.15,
	})
	nearlyEqual(t, "fast gramsUsed", opt.Fast.Results.GramsUsed, 100)
}

func TestOptimize_ZeroSpeedAndLayerFallBack(t *testing.T) {
	in := referenceInput()
	in.Printer.Speed = 0
	in.Model.LayerHeight = 0

	opt := Optimize(in)

	nearlyEqual(t, "fast printTime", opt.Fast.Results.PrintTime, 5)
	nearlyEqual(t, "economic printTime", opt.Economic.Results.PrintTime, 4)
}

func TestOptimize_ResultsCarryNoCommercialMarkup(t *testing.T) {
	in := referenceInput()
	in.Commercial = CommercialInput{Labor: 100, PostProcessing: 50, Margin: 1, Taxes: 1}

	opt := Optimize(in)

	nearlyEqual(t, "economic totalCost", opt.Economic.Results.TotalCost, 21.72)
}
