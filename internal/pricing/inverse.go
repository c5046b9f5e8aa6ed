package pricing

const (
	lowBudget  = 15.0
	highBudget = 20.0
)

// InverseInput describes what a customer can spend and how much material the job needs.
type InverseInput struct {
	Budget        float64 `json:"budget" yaml:"budget"`
	TotalWeight   float64 `json:"total_weight" yaml:"total_weight"`
	FilamentGrams float64 `json:"filament_grams" yaml:"filament_grams"`
}

// InverseResult holds the print settings suggested for a budget.
type InverseResult struct {
	PrintTime   float64 `json:"time" yaml:"time"`
	Infill      float64 `json:"infill" yaml:"infill"`
	LayerHeight float64 `json:"layer_height" yaml:"layer_height"`
}

// Inverse suggests print time, infill and layer height that fit a budget.
// Budgets under 15 get a sparse, coarse print and budgets over 20 a dense, fine one.
func Inverse(in InverseInput) InverseResult {
	if in.TotalWeight <= 0 || in.FilamentGrams <= 0 {
		return InverseResult{}
	}
	use := safeDiv(in.TotalWeight, in.FilamentGrams, 0)

	var r InverseResult
	switch {
	case in.Budget < lowBudget:
		r = InverseResult{PrintTime: use * 8, Infill: 10, LayerHeight: 0.4}
	case in.Budget > highBudget:
		r = InverseResult{PrintTime: use * 12, Infill: 80, LayerHeight: 0.2}
	default:
		r = InverseResult{PrintTime: use * 10, Infill: 40, LayerHeight: 0.3}
	}

	return InverseResult{
		PrintTime:   round2(r.PrintTime),
		Infill:      roundTo(r.Infill, 1),
		LayerHeight: round2(r.LayerHeight),
	}
}
