package quote

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Simplici0/printquote/internal/pricing"
)

func validDocument() Document {
	return Document{
		QuoteName: "Desk organizer",
		Printer: Printer{
			Name:              "Ender 3 V2",
			Watts:             200,
			Type:              PrinterFDM,
			Speed:             100,
			Nozzle:            "0.4",
			Layer:             0.2,
			BedTemperature:    60,
			HotendTemperature: 210,
			HourlyCost:        5,
		},
		Filament: Filament{
			Name:        "Generic PLA",
			Type:        "PLA",
			Color:       "black",
			Diameter:    1.75,
			PricePerKg:  20,
			TotalWeight: 1000,
		},
		Energy: Energy{KwhCost: 0.15},
		Model: ModelData{
			ModelWeight: 100,
			PrintTime:   5,
			Infill:      20,
			LayerHeight: 0.2,
		},
		Commercial: Commercial{Margin: 0.3, Taxes: 0.1},
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	out := make(map[string]string, len(verr.Fields))
	for _, f := range verr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestValidate_AcceptsValidDocument(t *testing.T) {
	assert.NoError(t, Validate(validDocument()))
}

func TestValidate_RejectsOutOfRangeValues(t *testing.T) {
	doc := validDocument()
	doc.Printer.Speed = 301
	doc.Printer.HourlyCost = 0.5
	doc.Filament.PricePerKg = 1
	doc.Model.Infill = 0
	doc.Commercial.Margin = 1.5

	fields := fieldsOf(t, Validate(doc))

	assert.Equal(t, "must be at most 300", fields["printer.speed"])
	assert.Equal(t, "must be at least 1", fields["printer.hourly_cost"])
	assert.Equal(t, "must be greater than 1", fields["filament.price_per_kg"])
	assert.Equal(t, "must be greater than 0", fields["model.infill"])
	assert.Equal(t, "must be at most 1", fields["commercial.margin"])
}

func TestValidate_RejectsUnknownEnumerations(t *testing.T) {
	doc := validDocument()
	doc.Printer.Type = "FFF"
	doc.Printer.Nozzle = "0.5"
	doc.Filament.Type = "Wood"
	doc.Filament.Color = "pink"
	doc.Filament.Diameter = 2

	fields := fieldsOf(t, Validate(doc))

	assert.Contains(t, fields, "printer.type")
	assert.Contains(t, fields, "printer.nozzle")
	assert.Contains(t, fields, "filament.type")
	assert.Contains(t, fields, "filament.color")
	assert.Contains(t, fields, "filament.diameter")
}

func TestValidate_Names(t *testing.T) {
	doc := validDocument()
	doc.Printer.Name = "Ender-3"
	doc.Filament.Name = "PLA 2"

	fields := fieldsOf(t, Validate(doc))

	assert.Equal(t, "may only contain letters, digits and spaces", fields["printer.name"])
	assert.Equal(t, "may only contain letters and spaces", fields["filament.name"])
}

func TestValidate_SupportInvariant(t *testing.T) {
	t.Run("supports without weight or type", func(t *testing.T) {
		doc := validDocument()
		doc.Model.Supports = true

		fields := fieldsOf(t, Validate(doc))

		assert.Equal(t, "is required when supports is true", fields["model.support_type"])
		assert.Equal(t, "is required when supports is true", fields["model.support_weight"])
	})

	t.Run("weight without supports", func(t *testing.T) {
		doc := validDocument()
		doc.Model.SupportWeight = 12
		doc.Model.SupportType = SupportLinear

		fields := fieldsOf(t, Validate(doc))

		assert.Equal(t, "must be empty when supports is false", fields["model.support_type"])
		assert.Equal(t, "must be empty when supports is false", fields["model.support_weight"])
	})

	t.Run("complete supports", func(t *testing.T) {
		doc := validDocument()
		doc.Model.Supports = true
		doc.Model.SupportType = SupportTree
		doc.Model.SupportWeight = 15

		assert.NoError(t, Validate(doc))
	})
}

func TestDocument_PricingInput(t *testing.T) {
	in := validDocument().PricingInput()

	assert.Equal(t, 0.4, in.Printer.Nozzle)
	assert.Equal(t, 100.0, in.Printer.Speed)
	assert.Equal(t, 20.0, in.Filament.PricePerKg)
	assert.Equal(t, 0.2, in.Model.LayerHeight)
	assert.Equal(t, 0.3, in.Commercial.Margin)
}

func TestDocument_Summarize(t *testing.T) {
	summary, err := validDocument().Summarize()
	require.NoError(t, err)

	assert.InDelta(t, 38.82, summary.EstimatedTotalCost, 1e-9)
	assert.InDelta(t, 100, summary.GramsUsed, 1e-9)
	assert.Empty(t, summary.Suggestions)
}

func TestDocument_SummarizeRejectsInvalidDocument(t *testing.T) {
	doc := validDocument()
	doc.Energy.KwhCost = 0

	_, err := doc.Summarize()

	var verr *ValidationError
	assert.True(t, errors.As(err, &verr))
	assert.False(t, errors.Is(err, pricing.ErrInvalidInput))
}

func TestInverseRequest_Input(t *testing.T) {
	in, err := InverseRequest{Budget: 18, TotalWeight: 1000, FilamentGrams: 250}.Input()
	require.NoError(t, err)
	assert.Equal(t, pricing.InverseInput{Budget: 18, TotalWeight: 1000, FilamentGrams: 250}, in)

	_, err = InverseRequest{Budget: 18, TotalWeight: 0, FilamentGrams: -1}.Input()
	fields := fieldsOf(t, err)
	assert.Equal(t, "must be greater than 0", fields["total_weight"])
	assert.Equal(t, "must be greater than 0", fields["filament_grams"])
}
