package pricing

import "fmt"

const (
	infillAdviceThreshold   = 20.0
	infillAdviceTarget      = 15.0
	layerAdviceThreshold    = 0.2
	layerAdviceTarget       = 0.3
	nozzleAdviceTarget      = 0.6
	nozzleAdviceHours       = 5.0
	wasteAdviceThreshold    = 15.0
	materialAdviceThreshold = 22.0
	materialAdviceTarget    = 20.0
)

// Advise returns the suggestions that apply to in. wastePct is the unrounded
// waste percentage of the same parameter set.
//
// Rules are evaluated in a fixed order and each contributes at most one message.
func Advise(in Input, wastePct float64) []string {
	suggestions := make([]string, 0)

	if in.Model.Infill > infillAdviceThreshold {
		suggestions = append(suggestions, fmt.Sprintf(
			"Reduce infill from %.0f%% to %.0f%% to save material and print time.",
			in.Model.Infill, infillAdviceTarget))
	}
	if in.Model.LayerHeight < layerAdviceThreshold {
		suggestions = append(suggestions, fmt.Sprintf(
			"Increase layer height from %.2f mm to %.1f mm to shorten the print.",
			in.Model.LayerHeight, layerAdviceTarget))
	}
	if smallNozzle(in.Printer.Nozzle) && in.Model.PrintTime > nozzleAdviceHours {
		suggestions = append(suggestions, fmt.Sprintf(
			"Switch to a %.1f mm nozzle; jobs over %.0f h print faster with a wider nozzle.",
			nozzleAdviceTarget, nozzleAdviceHours))
	}
	if in.Model.Supports && wastePct > wasteAdviceThreshold {
		suggestions = append(suggestions, fmt.Sprintf(
			"Supports waste %.1f%% of the material; use tree supports instead.", wastePct))
	}
	if in.Filament.PricePerKg > materialAdviceThreshold {
		suggestions = append(suggestions, fmt.Sprintf(
			"Filament costs %.2f/kg; a material under %.0f/kg lowers the quote.",
			in.Filament.PricePerKg, materialAdviceTarget))
	}

	return suggestions
}

func smallNozzle(d float64) bool {
	return d == 0.2 || d == 0.4
}
