package servantkeeper

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
		"person": mapping.NewTable("servantkeeper", "person", []mapping.FieldRule{
			{Canonical: "Id", Column: "ind_id", Kind: mapping.KindID},
			{Canonical: "FamilyId", Column: "fam_id", Kind: mapping.KindID},
			{Canonical: "FirstName", Column: "first_name", Kind: mapping.KindString},
			{Canonical: "LastName", Column: "last_name", Kind: mapping.KindString},
			{Canonical: "RecordStatus", Column: "active_ind", Kind: mapping.KindRecordStatus},
			{Canonical: "InactiveReason", Column: "inactive_reason", Kind: mapping.KindString},
			{Canonical: "DateJoined", Column: "join_dt", Kind: mapping.KindString},
		}),
		"contribution": mapping.NewTable("servantkeeper", "contribution", []mapping.FieldRule{
			{Canonical: "PersonId", Column: "ind_id", Kind: mapping.KindID},
			{Canonical: "Date", Column: "batch_date", Kind: mapping.KindDate},
			{Canonical: "Fund", Column: "fund_desc", Kind: mapping.KindString},
			{Canonical: "EncodedAmount", Column: "amount", Kind: mapping.KindString},
			{Canonical: "PaymentType", Column: "pay_type", Kind: mapping.KindCurrencyType},
			{Canonical: "CheckNumber", Column: "check_no", Kind: mapping.KindString},
		}),
		"note": mapping.NewTable("servantkeeper", "note", []mapping.FieldRule{
			{Canonical: "PersonId", Column: "ind_id", Kind: mapping.KindID},
			{Canonical: "NoteType", Column: "note_type", Kind: mapping.KindString},
			{Canonical: "Text", Column: "note_text", Kind: mapping.KindString},
			{Canonical: "Date", Column: "note_date", Kind: mapping.KindDateTime},
		}),
	})
}

func TestTranslatePersonInactiveReasonGating(t *testing.T) {
	ctx := testContext()
	person, ok := TranslatePerson(ctx, coerce.Bag{
		"ind_id":          "5",
		"fam_id":          "9",
		"first_name":      "Ann",
		"active_ind":      "0",
		"inactive_reason": "Moved away",
	})
	require.True(t, ok)
	assert.Equal(t, model.RecordStatusInactive, person.RecordStatus)
	assert.Equal(t, "Moved away", person.InactiveReason)
	assert.Equal(t, int32(9), person.FamilyID, "real family ids are kept")

	person, ok = TranslatePerson(ctx, coerce.Bag{
		"ind_id":          "6",
		"active_ind":      "1",
		"inactive_reason": "stale data",
	})
	require.True(t, ok)
	assert.Empty(t, person.InactiveReason, "active people carry no inactive reason")
}

func TestTranslatePersonJoinDateBecomesAttribute(t *testing.T) {
	ctx := testContext()
	person, ok := TranslatePerson(ctx, coerce.Bag{
		"ind_id":  "5",
		"join_dt": "1998-04-12",
	})
	require.True(t, ok)
	require.Len(t, person.AttributeValues, 1)
	assert.Equal(t, "sk-date-joined", person.AttributeValues[0].AttributeKey)
	require.Len(t, ctx.Acc.Attributes(), 1)
}

func TestTranslateContributionDecodesCipheredAmount(t *testing.T) {
	ctx := testContext()
	ok := TranslateContribution(ctx, coerce.Bag{
		"ind_id":     "5",
		"batch_date": "2021-03-07",
		"fund_desc":  "Building",
		"amount":     "KLOZOJ", // 125.50
		"pay_type":   "Check",
		"check_no":   "1041",
	})
	require.True(t, ok)

	batches := ctx.Acc.Batches()
	require.Len(t, batches, 1)
	assert.Equal(t, "ServantKeeper 2021-03-07", batches[0].Name)
	require.Len(t, batches[0].Transactions, 1)

	tx := batches[0].Transactions[0]
	assert.Positive(t, tx.ID, "transaction ids are synthesized")
	assert.Equal(t, "1041", tx.TransactionCode)
	require.Len(t, tx.Details, 1)
	assert.Equal(t, model.Cents(12550), tx.Details[0].Amount)
}

func TestTranslateContributionSkipsUndecodableAmount(t *testing.T) {
	ctx := testContext()
	ok := TranslateContribution(ctx, coerce.Bag{
		"ind_id": "5",
		"amount": "garbage",
	})
	assert.False(t, ok)
	assert.Empty(t, ctx.Acc.Batches())
}

func TestTranslateNote(t *testing.T) {
	ctx := testContext()
	note, ok := TranslateNote(ctx, coerce.Bag{
		"ind_id":    "5",
		"note_type": "Pastoral",
		"note_text": "Visited in hospital",
		"note_date": "2020-11-02 14:00:00",
	})
	require.True(t, ok)
	assert.Equal(t, int32(5), note.PersonID)
	assert.Equal(t, "Pastoral", note.NoteType)
	assert.Positive(t, note.ID)
	require.NotNil(t, note.DateTime)

	// Identical rows synthesize identical ids, collapsing duplicates.
	again, ok := TranslateNote(ctx, coerce.Bag{
		"ind_id":    "5",
		"note_type": "Pastoral",
		"note_text": "Visited in hospital",
		"note_date": "2020-11-02 14:00:00",
	})
	require.True(t, ok)
	assert.Equal(t, note.ID, again.ID)

	_, ok = TranslateNote(ctx, coerce.Bag{"ind_id": "5", "note_text": ""})
	assert.False(t, ok, "empty notes are dropped")
}
