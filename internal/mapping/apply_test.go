package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
)

func personTable() *Table {
	return NewTable("demo", "person", []FieldRule{
		{Canonical: "Id", Column: "id", Kind: KindID},
		{Canonical: "FirstName", Column: "first name", Kind: KindString, Default: "Unknown"},
		{Canonical: "Gender", Column: "gender", Kind: KindGender},
		{Canonical: "Amount", Column: "amount", Kind: KindCents},
		{Canonical: "Birthdate", Column: "dob", Kind: KindDate},
		{Canonical: "Active", Column: "active", Kind: KindBool},
	})
}

func TestApplyCoercesThroughRules(t *testing.T) {
	v := personTable().Apply(coerce.Bag{
		"id":         "42",
		"first name": "Ann",
		"gender":     "F",
		"amount":     "$1,234.56",
		"dob":        "3/14/1985",
		"active":     "Yes",
	})

	assert.Equal(t, int32(42), v.ID("Id"))
	assert.Equal(t, "Ann", v.String("FirstName"))
	assert.Equal(t, model.GenderFemale, v.Gender("Gender"))
	assert.Equal(t, model.Cents(123456), v.Cents("Amount"))
	assert.True(t, v.Bool("Active"))
	require.NotNil(t, v.Date("Birthdate"))
	assert.Equal(t, 1985, v.Date("Birthdate").Year())
	assert.Empty(t, v.Unmapped())
}

func TestApplyDefaultsAndAbsence(t *testing.T) {
	v := personTable().Apply(coerce.Bag{})

	assert.Equal(t, "Unknown", v.String("FirstName"), "blank values take the rule default")
	assert.Equal(t, int32(0), v.ID("Id"))
	assert.Nil(t, v.Date("Birthdate"))
	assert.Nil(t, v.CentsPtr("Amount"))

	// A canonical with no rule at all reads as the kind's zero value.
	assert.Equal(t, "", v.String("Undeclared"))
	assert.Equal(t, model.GenderUnknown, v.Gender("Undeclared"))
}

func TestApplyRecordsUnmappedEnumValues(t *testing.T) {
	v := personTable().Apply(coerce.Bag{"gender": "nonbinary"})

	assert.Equal(t, model.GenderUnknown, v.Gender("Gender"))
	unmapped := v.Unmapped()
	require.Len(t, unmapped, 1)
	assert.Equal(t, "Gender", unmapped[0].Canonical)
	assert.Equal(t, "nonbinary", unmapped[0].Raw)

	// Blank enum input is absence, not an unmapped value.
	v = personTable().Apply(coerce.Bag{"gender": ""})
	v.Gender("Gender")
	assert.Empty(t, v.Unmapped())
}
