package quote

import "github.com/Simplici0/printquote/internal/pricing"

// InverseRequest is a client request for settings that fit a budget.
type InverseRequest struct {
	Budget        float64 `json:"budget" yaml:"budget" validate:"gt=0"`
	TotalWeight   float64 `json:"total_weight" yaml:"total_weight" validate:"gt=0"`
	FilamentGrams float64 `json:"filament_grams" yaml:"filament_grams" validate:"gt=0"`
}

// Input validates r and converts it into the calculator's input.
func (r InverseRequest) Input() (pricing.InverseInput, error) {
	if err := Validate(r); err != nil {
		return pricing.InverseInput{}, err
	}
	return pricing.InverseInput{
		Budget:        r.Budget,
		TotalWeight:   r.TotalWeight,
		FilamentGrams: r.FilamentGrams,
	}, nil
}
