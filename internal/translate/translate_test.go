package translate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slingshot-dev/slingshot/internal/mapping"
	"github.com/slingshot-dev/slingshot/internal/model"
)

func TestAccumulatorDeduplicatesOnFirstSight(t *testing.T) {
	acc := NewAccumulator()

	a1 := acc.Account(10, "General Fund", true)
	a2 := acc.Account(10, "Renamed Later", false)
	assert.Same(t, a1, a2)
	assert.Equal(t, "General Fund", a2.Name, "first sighting wins")

	date := time.Date(2023, 6, 4, 0, 0, 0, 0, time.UTC)
	b1 := acc.Batch(20, "Sunday", &date)
	b2 := acc.Batch(20, "", nil)
	assert.Same(t, b1, b2)
	assert.Equal(t, model.BatchStatusClosed, b1.Status)

	acc.Attribute("grade", "Grade", "Demo", "text")
	acc.Attribute("grade", "Other Name", "Demo", "text")
	attrs := acc.Attributes()
	require.Len(t, attrs, 1)
	assert.Equal(t, "Grade", attrs[0].Name)
}

func TestAccumulatorFlushOrderIsDeterministic(t *testing.T) {
	acc := NewAccumulator()
	acc.Account(30, "C", true)
	acc.Account(10, "A", true)
	acc.Account(20, "B", true)

	accounts := acc.Accounts()
	require.Len(t, accounts, 3)
	assert.Equal(t, int32(10), accounts[0].ID)
	assert.Equal(t, int32(20), accounts[1].ID)
	assert.Equal(t, int32(30), accounts[2].ID)
}

func TestContextFallsBackToEmptyTable(t *testing.T) {
	ctx := NewContext(map[string]*mapping.Table{})
	table := ctx.Table("person")
	require.NotNil(t, table)

	v := table.Apply(map[string]string{"anything": "x"})
	assert.Equal(t, "", v.String("FirstName"))
	assert.Equal(t, int32(0), v.ID("Id"))
}

func TestNoteUnmapped(t *testing.T) {
	unmapped := []mapping.UnmappedValue{
		{Canonical: "Gender", Raw: "nonbinary"},
		{Canonical: "MaritalStatus", Raw: "widowed"},
	}
	assert.Equal(t, "Gender: nonbinary; MaritalStatus: widowed", NoteUnmapped("", unmapped))
	assert.Equal(t, "existing; Gender: nonbinary; MaritalStatus: widowed", NoteUnmapped("existing", unmapped))
	assert.Equal(t, "kept", NoteUnmapped("kept", nil))
}

func TestRoleOrMember(t *testing.T) {
	assert.Equal(t, "Member", RoleOrMember(""))
	assert.Equal(t, "Leader", RoleOrMember("Leader"))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "5550100", DigitsOnly("(555) 01-00"))
	assert.Equal(t, "+15550100", DigitsOnly("+1 555 0100"))
	assert.Equal(t, "", DigitsOnly("n/a"))
}
