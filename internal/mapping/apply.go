package mapping

import (
	"time"

	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
)

// Values is one raw record viewed through a mapping table. Accessors take
// the canonical field name, resolve the source column through the table,
// and coerce on demand. A canonical field with no rule yields the kind's
// zero default, so partial mappings degrade instead of failing.
//
// Enum accessors record unmapped non-empty source values; translators
// collect them via Unmapped and append them to the person note so no
// categorical data is silently dropped.
type Values struct {
	table    *Table
	bag      coerce.Bag
	unmapped []UnmappedValue
}

// UnmappedValue is a source enum value no lookup table recognized.
type UnmappedValue struct {
	Canonical string
	Raw       string
}

// Apply binds a raw record to the table.
func (t *Table) Apply(bag coerce.Bag) *Values {
	return &Values{table: t, bag: bag}
}

// Unmapped returns the enum values that failed to map while reading this
// record, in access order.
func (v *Values) Unmapped() []UnmappedValue {
	return v.unmapped
}

func (v *Values) raw(canonical string) (string, FieldRule, bool) {
	rule, ok := v.table.Rule(canonical)
	if !ok {
		return "", rule, false
	}
	return coerce.String(v.bag, rule.Column), rule, true
}

func (v *Values) String(canonical string) string {
	s, rule, ok := v.raw(canonical)
	if !ok {
		return ""
	}
	if s == "" {
		return rule.Default
	}
	return s
}

func (v *Values) Bool(canonical string) bool {
	s, _, ok := v.raw(canonical)
	if !ok {
		return false
	}
	return coerce.ParseBool(s, false)
}

func (v *Values) Int(canonical string) int {
	s, _, ok := v.raw(canonical)
	if !ok {
		return 0
	}
	if n := coerce.ParseInt(s); n != nil {
		return *n
	}
	return 0
}

func (v *Values) ID(canonical string) int32 {
	s, _, ok := v.raw(canonical)
	if !ok {
		return 0
	}
	return coerce.ParseID(s)
}

func (v *Values) Cents(canonical string) model.Cents {
	s, _, ok := v.raw(canonical)
	if !ok {
		return 0
	}
	if c := coerce.ParseCents(s); c != nil {
		return *c
	}
	return 0
}

// CentsPtr is Cents with unparsable-vs-zero distinguished; translators
// that must drop amountless records use this form.
func (v *Values) CentsPtr(canonical string) *model.Cents {
	s, _, ok := v.raw(canonical)
	if !ok {
		return nil
	}
	return coerce.ParseCents(s)
}

func (v *Values) Date(canonical string) *time.Time {
	s, _, ok := v.raw(canonical)
	if !ok {
		return nil
	}
	return coerce.ParseTime(s)
}

func (v *Values) Gender(canonical string) model.Gender {
	s, _, ok := v.raw(canonical)
	if !ok {
		return model.GenderUnknown
	}
	g, mapped := coerce.Gender(s)
	v.note(canonical, s, mapped)
	return g
}

func (v *Values) MaritalStatus(canonical string) model.MaritalStatus {
	s, _, ok := v.raw(canonical)
	if !ok {
		return model.MaritalStatusUnknown
	}
	m, mapped := coerce.MaritalStatus(s)
	v.note(canonical, s, mapped)
	return m
}

func (v *Values) RecordStatus(canonical string) model.RecordStatus {
	s, _, ok := v.raw(canonical)
	if !ok {
		return model.RecordStatusActive
	}
	r, mapped := coerce.RecordStatus(s)
	v.note(canonical, s, mapped)
	return r
}

func (v *Values) FamilyRole(canonical string) model.FamilyRole {
	s, _, ok := v.raw(canonical)
	if !ok {
		return model.FamilyRoleAdult
	}
	f, mapped := coerce.FamilyRole(s)
	v.note(canonical, s, mapped)
	return f
}

func (v *Values) EmailPreference(canonical string) model.EmailPreference {
	s, _, ok := v.raw(canonical)
	if !ok {
		return model.EmailPreferenceEmailAllowed
	}
	e, mapped := coerce.EmailPreference(s)
	v.note(canonical, s, mapped)
	return e
}

func (v *Values) AddressType(canonical string) model.AddressType {
	s, _, ok := v.raw(canonical)
	if !ok {
		return model.AddressTypeHome
	}
	a, mapped := coerce.AddressType(s)
	v.note(canonical, s, mapped)
	return a
}

func (v *Values) BatchStatus(canonical string) model.BatchStatus {
	s, _, ok := v.raw(canonical)
	if !ok {
		return model.BatchStatusClosed
	}
	b, mapped := coerce.BatchStatus(s)
	v.note(canonical, s, mapped)
	return b
}

func (v *Values) TransactionSource(canonical string) model.TransactionSource {
	s, _, ok := v.raw(canonical)
	if !ok {
		return model.TransactionSourceUnknown
	}
	t, mapped := coerce.TransactionSource(s)
	v.note(canonical, s, mapped)
	return t
}

func (v *Values) CurrencyType(canonical string) model.CurrencyType {
	s, _, ok := v.raw(canonical)
	if !ok {
		return model.CurrencyTypeUnknown
	}
	c, mapped := coerce.CurrencyType(s)
	v.note(canonical, s, mapped)
	return c
}

func (v *Values) note(canonical, raw string, mapped bool) {
	if mapped || raw == "" {
		return
	}
	v.unmapped = append(v.unmapped, UnmappedValue{Canonical: canonical, Raw: raw})
}
