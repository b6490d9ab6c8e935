package model

import (
	"fmt"
	"strconv"
	"time"
)

// Entity is implemented by every record type the package writer can emit.
// FileName is the fixed per-type CSV name inside the .slingshot archive,
// Header the exact ordered field-name list, and Row the matching values for
// one record. Header and Row must stay in lockstep.
type Entity interface {
	FileName() string
	Header() []string
	Row() []string
}

// ParentEntity is implemented by types that own child collections written
// into sibling CSV files in the same pass (Person, Group, FinancialBatch,
// FinancialTransaction). The writer appends the parent row first, then one
// row per child.
type ParentEntity interface {
	Entity
	Children() []Entity
}

// Cents is a monetary amount in hundredths of the currency unit.
// Serialized as a plain decimal with two fraction digits ("1234.56").
type Cents int64

func (c Cents) String() string {
	v := int64(c)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// Serialization helpers shared by the Row implementations. Empty string
// means "no value" in every column; the destination importer treats blank
// and absent identically.

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04:05"
)

func formatID(id int32) string {
	if id == 0 {
		return ""
	}
	return strconv.FormatInt(int64(id), 10)
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatDateTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateTimeLayout)
}
