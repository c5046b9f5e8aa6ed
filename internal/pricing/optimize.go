package pricing

const (
	maxSpeed       = 300.0
	maxLayerHeight = 1.0
	minInfill      = 5.0
)

// ModeParameters are the projected print parameters of one optimization mode.
type ModeParameters struct {
	Speed         float64 `json:"speed" yaml:"speed"`
	LayerHeight   float64 `json:"layer_height" yaml:"layer_height"`
	Infill        float64 `json:"infill" yaml:"infill"`
	SupportWeight float64 `json:"support_weight" yaml:"support_weight"`
}

// ModeResults are the production costs recomputed for one optimization mode.
// They carry no margin or taxes.
type ModeResults struct {
	PrintTime       float64 `json:"print_time" yaml:"print_time"`
	GramsUsed       float64 `json:"grams_used" yaml:"grams_used"`
	GramsWasted     float64 `json:"grams_wasted" yaml:"grams_wasted"`
	WastePercentage float64 `json:"waste_percentage" yaml:"waste_percentage"`
	MaterialCost    float64 `json:"material_cost" yaml:"material_cost"`
	EnergyCost      float64 `json:"energy_cost" yaml:"energy_cost"`
	MachineCost     float64 `json:"machine_cost" yaml:"machine_cost"`
	TotalCost       float64 `json:"total_cost" yaml:"total_cost"`
}

// Mode pairs projected parameters with their results.
type Mode struct {
	NewParameters ModeParameters `json:"new_parameters" yaml:"new_parameters"`
	Results       ModeResults    `json:"results" yaml:"results"`
}

// Optimizations holds the three projected modes.
type Optimizations struct {
	Fast     Mode `json:"fast" yaml:"fast"`
	Economic Mode `json:"economic" yaml:"economic"`
	Balanced Mode `json:"balanced" yaml:"balanced"`
}

// baseline is the subset of a parameter set the projector reads.
type baseline struct {
	speed       float64
	layer       float64
	infill      float64
	support     float64
	modelWeight float64
	printTime   float64
	pricePerKg  float64
	watts       float64
	kwhCost     float64
	hourlyCost  float64
}

func newBaseline(in Input) baseline {
	support := in.Model.SupportWeight
	if !in.Model.Supports {
		support = 0
	}
	return baseline{
		speed:       in.Printer.Speed,
		layer:       in.Model.LayerHeight,
		infill:      in.Model.Infill,
		support:     support,
		modelWeight: in.Model.ModelWeight,
		printTime:   in.Model.PrintTime,
		pricePerKg:  in.Filament.PricePerKg,
		watts:       in.Printer.Watts,
		kwhCost:     in.Energy.KwhCost,
		hourlyCost:  in.Printer.HourlyCost,
	}
}

// Optimize projects the fast, economic and balanced modes from in.
// Each mode is derived from the baseline independently.
func Optimize(in Input) Optimizations {
	b := newBaseline(in)

	fast := ModeParameters{
		Speed:         min(b.speed*1.10, maxSpeed),
		LayerHeight:   min(b.layer*1.10, maxLayerHeight),
		Infill:        b.infill,
		SupportWeight: b.support * 0.90,
	}
	economic := ModeParameters{
		Speed:         b.speed,
		LayerHeight:   b.layer,
		Infill:        max(b.infill*0.80, minInfill),
		SupportWeight: b.support * 0.85,
	}
	balanced := ModeParameters{
		Speed:         min(b.speed*1.05, maxSpeed),
		LayerHeight:   min(b.layer*1.05, maxLayerHeight),
		Infill:        max(b.infill*0.90, minInfill),
		SupportWeight: b.support * 0.90,
	}

	return Optimizations{
		Fast:     b.project(fast),
		Economic: b.project(economic),
		Balanced: b.project(balanced),
	}
}

func (b baseline) project(p ModeParameters) Mode {
	infillFactor := safeDiv(p.Infill, b.infill, 1.0)
	modelWeight := b.modelWeight * infillFactor

	printTime := b.printTime *
		safeDiv(b.layer, p.LayerHeight, 1.0) *
		safeDiv(b.speed, p.Speed, 1.0) *
		infillFactor

	used := modelWeight + p.SupportWeight
	wasted := p.SupportWeight

	material := materialCost(b.pricePerKg, used)
	energy := energyCost(b.watts, printTime, b.kwhCost)
	machine := machineCost(printTime, b.hourlyCost)

	return Mode{
		NewParameters: ModeParameters{
			Speed:         round2(p.Speed),
			LayerHeight:   roundTo(p.LayerHeight, 3),
			Infill:        round2(p.Infill),
			SupportWeight: round2(p.SupportWeight),
		},
		Results: ModeResults{
			PrintTime:       round2(printTime),
			GramsUsed:       round2(used),
			GramsWasted:     round2(wasted),
			WastePercentage: round2(wastePercentage(wasted, used)),
			MaterialCost:    round2(material),
			EnergyCost:      round2(energy),
			MachineCost:     round2(machine),
			TotalCost:       round2(material + energy + machine),
		},
	}
}
