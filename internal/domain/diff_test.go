package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string          { return &s }
func floatPtr(f float64) *float64      { return &f }
func unitPtr(u WeightUnit) *WeightUnit { return &u }

func sampleProduct() *Product {
	return &Product{
		ID:          "11111111-1111-1111-1111-111111111111",
		GTIN:        "04006381333931",
		Name:        "Шоколад молочный",
		Description: "",
		Brand:       "Tasty",
		Manufacturer: Manufacturer{
			Name:    "Tasty Foods GmbH",
			Code:    "TF-01",
			Country: "DE",
		},
		NetWeight:  floatPtr(100),
		WeightUnit: unitPtr(UnitGram),
		Status:     StatusPendingReview,
		CreatedBy:  "provider-1",
	}
}

func TestComputeAuditDiff_EmptyUpdate(t *testing.T) {
	diff := ComputeAuditDiff(sampleProduct(), &ProductUpdate{})

	assert.True(t, diff.IsEmpty())
	assert.Empty(t, diff.ChangedFields())
}

func TestComputeAuditDiff_SameValuesProduceEmptyDiff(t *testing.T) {
	current := sampleProduct()
	updates := &ProductUpdate{
		Name:      strPtr(current.Name),
		Brand:     strPtr(current.Brand),
		NetWeight: floatPtr(*current.NetWeight),
		Manufacturer: &Manufacturer{
			Name:    current.Manufacturer.Name,
			Code:    current.Manufacturer.Code,
			Country: current.Manufacturer.Country,
		},
	}

	diff := ComputeAuditDiff(current, updates)

	assert.True(t, diff.IsEmpty())
}

func TestComputeAuditDiff_OnlyChangedFieldsEnterDiff(t *testing.T) {
	current := sampleProduct()
	updates := &ProductUpdate{
		Name:  strPtr("Шоколад тёмный"),
		Brand: strPtr(current.Brand), // прислано без изменения
	}

	diff := ComputeAuditDiff(current, updates)

	require.False(t, diff.IsEmpty())
	assert.Equal(t, []string{FieldName}, diff.ChangedFields())
	assert.Equal(t, "Шоколад молочный", diff.Previous[FieldName])
	assert.Equal(t, "Шоколад тёмный", diff.Next[FieldName])
	assert.NotContains(t, diff.Previous, FieldBrand)
	assert.NotContains(t, diff.Next, FieldBrand)
}

func TestComputeAuditDiff_EmptyStringToValue(t *testing.T) {
	current := sampleProduct()
	updates := &ProductUpdate{Description: strPtr("Очень вкусный")}

	diff := ComputeAuditDiff(current, updates)

	require.False(t, diff.IsEmpty())
	assert.Equal(t, "", diff.Previous[FieldDescription])
	assert.Equal(t, "Очень вкусный", diff.Next[FieldDescription])
}

func TestComputeAuditDiff_ManufacturerComparedByValue(t *testing.T) {
	current := sampleProduct()

	same := &ProductUpdate{Manufacturer: &Manufacturer{
		Name: "Tasty Foods GmbH", Code: "TF-01", Country: "DE",
	}}
	assert.True(t, ComputeAuditDiff(current, same).IsEmpty())

	changed := &ProductUpdate{Manufacturer: &Manufacturer{
		Name: "Tasty Foods GmbH", Code: "TF-02", Country: "DE",
	}}
	diff := ComputeAuditDiff(current, changed)
	require.False(t, diff.IsEmpty())
	assert.Equal(t, []string{FieldManufacturer}, diff.ChangedFields())
	assert.Equal(t,
		map[string]any{"name": "Tasty Foods GmbH", "code": "TF-01", "country": "DE"},
		diff.Previous[FieldManufacturer])
	assert.Equal(t,
		map[string]any{"name": "Tasty Foods GmbH", "code": "TF-02", "country": "DE"},
		diff.Next[FieldManufacturer])
}

func TestComputeAuditDiff_NilNetWeightToValue(t *testing.T) {
	current := sampleProduct()
	current.NetWeight = nil

	diff := ComputeAuditDiff(current, &ProductUpdate{NetWeight: floatPtr(250)})

	require.False(t, diff.IsEmpty())
	assert.Nil(t, diff.Previous[FieldNetWeight])
	assert.Equal(t, float64(250), diff.Next[FieldNetWeight])
}

func TestComputeAuditDiff_WeightUnitChange(t *testing.T) {
	current := sampleProduct()

	diff := ComputeAuditDiff(current, &ProductUpdate{WeightUnit: unitPtr(UnitKilogram)})

	require.False(t, diff.IsEmpty())
	assert.Equal(t, "g", diff.Previous[FieldWeightUnit])
	assert.Equal(t, "kg", diff.Next[FieldWeightUnit])
}

func TestBusinessSnapshot_ContainsAllAuditedFields(t *testing.T) {
	snapshot := BusinessSnapshot(sampleProduct())

	for _, field := range []string{
		FieldGTIN, FieldName, FieldDescription, FieldBrand,
		FieldManufacturer, FieldNetWeight, FieldWeightUnit, FieldStatus,
	} {
		assert.Contains(t, snapshot, field)
	}
	assert.Equal(t, "PENDING_REVIEW", snapshot[FieldStatus])
	assert.Len(t, snapshot, 8)
}

func TestApplyUpdate_DoesNotMutateOriginal(t *testing.T) {
	current := sampleProduct()

	next := ApplyUpdate(current, &ProductUpdate{Name: strPtr("Новое имя")})

	assert.Equal(t, "Новое имя", next.Name)
	assert.Equal(t, "Шоколад молочный", current.Name)
	assert.Equal(t, current.GTIN, next.GTIN)
}
