package breeze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/mapping"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

func testContext() *translate.Context {
	return translate.NewContext(map[string]*mapping.Table{
		"person": mapping.NewTable("breeze", "person", []mapping.FieldRule{
			{Canonical: "Id", Column: "breeze id", Kind: mapping.KindID},
			{Canonical: "FirstName", Column: "first name", Kind: mapping.KindString},
			{Canonical: "LastName", Column: "last name", Kind: mapping.KindString},
			{Canonical: "Gender", Column: "gender", Kind: mapping.KindGender},
			{Canonical: "RecordStatus", Column: "status", Kind: mapping.KindRecordStatus},
			{Canonical: "InactiveReason", Column: "inactive reason", Kind: mapping.KindString},
			{Canonical: "FamilyId", Column: "family id", Kind: mapping.KindID},
			{Canonical: "MobilePhone", Column: "mobile", Kind: mapping.KindString},
			{Canonical: "Street1", Column: "street address", Kind: mapping.KindString},
			{Canonical: "City", Column: "city", Kind: mapping.KindString},
		}),
		"person_attributes": mapping.NewTable("breeze", "person_attributes", []mapping.FieldRule{
			{Canonical: "breeze-grade", Column: "grade", Kind: mapping.KindString, Default: "Grade"},
		}),
		"contribution": mapping.NewTable("breeze", "contribution", []mapping.FieldRule{
			{Canonical: "Id", Column: "payment id", Kind: mapping.KindID},
			{Canonical: "PersonId", Column: "person id", Kind: mapping.KindID},
			{Canonical: "Date", Column: "date", Kind: mapping.KindDate},
			{Canonical: "Fund", Column: "fund name", Kind: mapping.KindString},
			{Canonical: "Method", Column: "method", Kind: mapping.KindCurrencyType},
			{Canonical: "Amount", Column: "amount", Kind: mapping.KindCents},
		}),
		"tag": mapping.NewTable("breeze", "tag", []mapping.FieldRule{
			{Canonical: "Name", Column: "tag name", Kind: mapping.KindString},
			{Canonical: "PersonId", Column: "person id", Kind: mapping.KindID},
			{Canonical: "Role", Column: "role", Kind: mapping.KindString},
		}),
	})
}

func TestTranslatePerson(t *testing.T) {
	ctx := testContext()
	person, ok := TranslatePerson(ctx, coerce.Bag{
		"breeze id":      "42",
		"first name":     "Ann",
		"last name":      "Lee",
		"gender":         "F",
		"mobile":         "555-0100",
		"street address": "1 Main St",
		"city":           "Springfield",
		"grade":          "5",
	})
	require.True(t, ok)

	assert.Equal(t, int32(42), person.ID)
	assert.Equal(t, model.GenderFemale, person.Gender)
	assert.Equal(t, model.SynthesizeID("breeze-family", "42"), person.FamilyID,
		"a person without a family gets a deterministic one-person household")

	require.Len(t, person.Phones, 1)
	assert.Equal(t, "Mobile", person.Phones[0].PhoneType)
	assert.True(t, person.Phones[0].IsMessagingEnabled)

	require.Len(t, person.Addresses, 1)
	assert.Equal(t, "Springfield", person.Addresses[0].City)
	assert.True(t, person.Addresses[0].IsMailing)

	require.Len(t, person.AttributeValues, 1)
	assert.Equal(t, "breeze-grade", person.AttributeValues[0].AttributeKey)
	assert.Equal(t, "5", person.AttributeValues[0].AttributeValue)

	attrs := ctx.Acc.Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, "Grade", attrs[0].Name, "rule default supplies the display name")
}

func TestTranslatePersonSkipsWithoutID(t *testing.T) {
	_, ok := TranslatePerson(testContext(), coerce.Bag{"first name": "Nobody"})
	assert.False(t, ok)
}

func TestTranslatePersonUnmappedEnumLandsInNote(t *testing.T) {
	person, ok := TranslatePerson(testContext(), coerce.Bag{
		"breeze id": "1",
		"gender":    "nonbinary",
	})
	require.True(t, ok)
	assert.Contains(t, person.Note, "Gender: nonbinary")
}

func TestTranslateContributionSynthesizesAccountAndBatch(t *testing.T) {
	ctx := testContext()
	ok := TranslateContribution(ctx, coerce.Bag{
		"payment id": "200",
		"person id":  "42",
		"date":       "6/4/2023",
		"fund name":  "Missions",
		"method":     "Check",
		"amount":     "$125.50",
	})
	require.True(t, ok)

	accounts := ctx.Acc.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "Missions", accounts[0].Name)
	assert.Equal(t, model.SynthesizeID("Missions"), accounts[0].ID)

	batches := ctx.Acc.Batches()
	require.Len(t, batches, 1)
	assert.Equal(t, "Breeze 2023-06-04", batches[0].Name)
	require.Len(t, batches[0].Transactions, 1)

	tx := batches[0].Transactions[0]
	assert.Equal(t, int32(200), tx.ID)
	assert.Equal(t, model.CurrencyTypeCheck, tx.CurrencyType)
	require.Len(t, tx.Details, 1)
	assert.Equal(t, model.Cents(12550), tx.Details[0].Amount)
	assert.Equal(t, accounts[0].ID, tx.Details[0].AccountID)
}

func TestTranslateContributionSameDaySharesBatch(t *testing.T) {
	ctx := testContext()
	for _, id := range []string{"1", "2"} {
		require.True(t, TranslateContribution(ctx, coerce.Bag{
			"payment id": id, "person id": "42", "date": "6/4/2023", "amount": "10",
		}))
	}
	batches := ctx.Acc.Batches()
	require.Len(t, batches, 1)
	assert.Len(t, batches[0].Transactions, 2)
}

func TestGroupBuilderMergesTagRows(t *testing.T) {
	ctx := testContext()
	b := NewGroupBuilder()

	require.True(t, b.Add(ctx, coerce.Bag{"tag name": "Choir", "person id": "1"}))
	require.True(t, b.Add(ctx, coerce.Bag{"tag name": "Choir", "person id": "2", "role": "Leader"}))
	require.True(t, b.Add(ctx, coerce.Bag{"tag name": "Ushers", "person id": "1"}))
	assert.False(t, b.Add(ctx, coerce.Bag{"tag name": "", "person id": "3"}))

	groups := b.Groups()
	require.Len(t, groups, 2)
	for _, g := range groups {
		assert.Equal(t, b.GroupType().ID, g.GroupTypeID)
	}

	var choir *model.Group
	for _, g := range groups {
		if g.Name == "Choir" {
			choir = g
		}
	}
	require.NotNil(t, choir)
	require.Len(t, choir.Members, 2)
	assert.Equal(t, "Member", choir.Members[0].Role)
	assert.Equal(t, "Leader", choir.Members[1].Role)
}
