package pco

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
		"person": mapping.NewTable("pco", "person", []mapping.FieldRule{
			{Canonical: "Id", Column: "id", Kind: mapping.KindID},
			{Canonical: "FirstName", Column: "attributes.first_name", Kind: mapping.KindString},
			{Canonical: "Inactive", Column: "attributes.inactive", Kind: mapping.KindBool},
			{Canonical: "InactiveReason", Column: "attributes.inactive_reason", Kind: mapping.KindString},
			{Canonical: "FamilyId", Column: "household.id", Kind: mapping.KindID},
			{Canonical: "Phone0Number", Column: "phone_numbers.0.number", Kind: mapping.KindString},
			{Canonical: "Phone0Type", Column: "phone_numbers.0.location", Kind: mapping.KindString},
		}),
		"fund": mapping.NewTable("pco", "fund", []mapping.FieldRule{
			{Canonical: "Id", Column: "id", Kind: mapping.KindID},
			{Canonical: "Name", Column: "attributes.name", Kind: mapping.KindString},
			{Canonical: "NonTaxDeductible", Column: "attributes.non_tax_deductible", Kind: mapping.KindBool},
		}),
		"batch": mapping.NewTable("pco", "batch", []mapping.FieldRule{
			{Canonical: "Id", Column: "id", Kind: mapping.KindID},
			{Canonical: "Description", Column: "attributes.description", Kind: mapping.KindString},
			{Canonical: "CommittedAt", Column: "attributes.committed_at", Kind: mapping.KindDateTime},
		}),
		"donation": mapping.NewTable("pco", "donation", []mapping.FieldRule{
			{Canonical: "Id", Column: "id", Kind: mapping.KindID},
			{Canonical: "PersonId", Column: "person.id", Kind: mapping.KindID},
			{Canonical: "BatchId", Column: "batch.id", Kind: mapping.KindID},
			{Canonical: "FundId", Column: "designations.0.fund.id", Kind: mapping.KindID},
			{Canonical: "Amount", Column: "attributes.amount_cents", Kind: mapping.KindInt},
		}),
		"checkin": mapping.NewTable("pco", "checkin", []mapping.FieldRule{
			{Canonical: "PersonId", Column: "person.id", Kind: mapping.KindID},
			{Canonical: "GroupId", Column: "event.id", Kind: mapping.KindID},
			{Canonical: "StartedAt", Column: "attributes.created_at", Kind: mapping.KindDateTime},
		}),
	})
}

func TestTranslatePersonInactiveFlag(t *testing.T) {
	ctx := testContext()
	person, ok := TranslatePerson(ctx, coerce.Bag{
		"id":                         "42",
		"attributes.first_name":      "Ann",
		"attributes.inactive":        "true",
		"attributes.inactive_reason": "Deceased",
		"household.id":               "77",
	})
	require.True(t, ok)
	assert.Equal(t, model.RecordStatusInactive, person.RecordStatus)
	assert.Equal(t, "Deceased", person.InactiveReason)
	assert.Equal(t, int32(77), person.FamilyID)
}

func TestTranslatePersonPhoneTypeFallback(t *testing.T) {
	ctx := testContext()
	person, ok := TranslatePerson(ctx, coerce.Bag{
		"id":                     "42",
		"phone_numbers.0.number": "555-0100",
	})
	require.True(t, ok)
	require.Len(t, person.Phones, 1)
	assert.Equal(t, "Mobile", person.Phones[0].PhoneType, "missing location falls back per slot")
}

func TestTranslateBatchOpenWhenUncommitted(t *testing.T) {
	ctx := testContext()
	require.True(t, TranslateBatch(ctx, coerce.Bag{
		"id":                     "20",
		"attributes.description": "Sunday",
	}))
	batches := ctx.Acc.Batches()
	require.Len(t, batches, 1)
	assert.Equal(t, model.BatchStatusOpen, batches[0].Status)

	require.True(t, TranslateBatch(ctx, coerce.Bag{
		"id":                      "21",
		"attributes.committed_at": "2023-06-04T10:00:00Z",
	}))
	committed := ctx.Acc.Batches()
	require.Len(t, committed, 2)
	assert.Equal(t, model.BatchStatusClosed, committed[1].Status)
}

func TestTranslateDonationWithoutBatchOrFund(t *testing.T) {
	ctx := testContext()
	ok := TranslateDonation(ctx, coerce.Bag{
		"id":                     "300",
		"person.id":              "42",
		"attributes.amount_cents": "12550",
	})
	require.True(t, ok)

	batches := ctx.Acc.Batches()
	require.Len(t, batches, 1)
	assert.Equal(t, "No Batch", batches[0].Name)

	accounts := ctx.Acc.Accounts()
	require.Len(t, accounts, 1)
	assert.Equal(t, "General Fund", accounts[0].Name)

	require.Len(t, batches[0].Transactions, 1)
	assert.Equal(t, accounts[0].ID, batches[0].Transactions[0].Details[0].AccountID)
	assert.Equal(t, model.Cents(12550), batches[0].Transactions[0].Details[0].Amount,
		"amount_cents is taken as cents, not dollars")
}

func TestTranslateFundNegatesDeductibility(t *testing.T) {
	ctx := testContext()
	require.True(t, TranslateFund(ctx, coerce.Bag{
		"id":                             "10",
		"attributes.name":                "Staff Gifts",
		"attributes.non_tax_deductible":  "true",
	}))
	accounts := ctx.Acc.Accounts()
	require.Len(t, accounts, 1)
	assert.False(t, accounts[0].IsTaxDeductible)
}

func TestTranslateCheckInSynthesizesStableID(t *testing.T) {
	ctx := testContext()
	bag := coerce.Bag{
		"person.id":             "42",
		"event.id":              "9",
		"attributes.created_at": "2023-06-04T09:30:00Z",
	}
	att1, ok := TranslateCheckIn(ctx, bag)
	require.True(t, ok)
	att2, ok := TranslateCheckIn(ctx, bag)
	require.True(t, ok)
	assert.Equal(t, att1.AttendanceID, att2.AttendanceID)

	_, ok = TranslateCheckIn(ctx, coerce.Bag{"person.id": "42"})
	assert.False(t, ok, "check-ins without a timestamp are dropped")
}
