package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every emittable type, one value each. Row and Header must stay in
// lockstep; the importer matches columns by position.
func allEntities() []Entity {
	return []Entity{
		&Person{}, &PersonPhone{}, &PersonAddress{}, &PersonAttribute{}, &PersonAttributeValue{},
		&GroupType{}, &Group{}, &GroupMember{}, &GroupAddress{},
		&FinancialAccount{}, &FinancialBatch{}, &FinancialTransaction{}, &FinancialTransactionDetail{},
		&PersonNote{}, &FamilyNote{}, &Attendance{},
	}
}

func TestHeaderRowLockstep(t *testing.T) {
	for _, e := range allEntities() {
		assert.Len(t, e.Row(), len(e.Header()), "%s: row width must match header", e.FileName())
	}
}

func TestFileNamesDistinct(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range allEntities() {
		require.False(t, seen[e.FileName()], "duplicate file name %s", e.FileName())
		seen[e.FileName()] = true
	}
}

func TestCentsString(t *testing.T) {
	assert.Equal(t, "0.00", Cents(0).String())
	assert.Equal(t, "0.05", Cents(5).String())
	assert.Equal(t, "1234.56", Cents(123456).String())
	assert.Equal(t, "-1234.56", Cents(-123456).String())
	assert.Equal(t, "-0.99", Cents(-99).String())
}

func TestZeroIDSerializesBlank(t *testing.T) {
	p := Person{ID: 7, FirstName: "Ann"}
	row := p.Row()
	assert.Equal(t, "7", row[0])
	assert.Equal(t, "", row[1], "unset family id must serialize as blank, not 0")
}

func TestPersonRowValues(t *testing.T) {
	birth := time.Date(1985, 3, 14, 0, 0, 0, 0, time.UTC)
	p := Person{
		ID:           7,
		FamilyID:     12,
		FirstName:    "Ann",
		LastName:     "Lee",
		Gender:       GenderFemale,
		Birthdate:    &birth,
		RecordStatus: RecordStatusInactive,
	}
	row := p.Row()
	header := p.Header()
	byName := map[string]string{}
	for i, h := range header {
		byName[h] = row[i]
	}

	assert.Equal(t, "Female", byName["Gender"])
	assert.Equal(t, "1985-03-14", byName["Birthdate"])
	assert.Equal(t, "Inactive", byName["RecordStatus"])
	assert.Equal(t, "", byName["AnniversaryDate"])
}

func TestBatchFansOutTransactionsAndDetails(t *testing.T) {
	batch := FinancialBatch{
		ID: 1,
		Transactions: []FinancialTransaction{
			{ID: 10, Details: []FinancialTransactionDetail{{TransactionID: 10, Amount: 500}}},
			{ID: 11},
		},
	}
	children := batch.Children()
	require.Len(t, children, 2)

	tx, ok := children[0].(*FinancialTransaction)
	require.True(t, ok)
	assert.Len(t, tx.Children(), 1)
}
