// Package translate holds what the per-system translators share: the
// mapping tables for the system being exported, and the cross-record
// accumulators for entities that must be deduplicated across many source
// rows before a final flush (accounts, batches, attribute definitions).
//
// Translators themselves are pure functions from one raw record to one
// canonical entity, returning ok=false when the record lacks a usable
// identity. The accumulator is the single deliberate exception to purity
// and is owned by one goroutine for the duration of an export.
package translate

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/slingshot-dev/slingshot/internal/mapping"
	"github.com/slingshot-dev/slingshot/internal/model"
)

// Context carries per-run translation state into the translators.
type Context struct {
	tables map[string]*mapping.Table
	Acc    *Accumulator
}

// NewContext builds a context over one system's mapping tables, keyed by
// entity name as declared in the CUE files.
func NewContext(tables map[string]*mapping.Table) *Context {
	return &Context{tables: tables, Acc: NewAccumulator()}
}

// emptyTable backs lookups for undeclared entities so translators read
// all-default values instead of nil-checking.
var emptyTable = &mapping.Table{}

// Table returns the mapping table for an entity, or an empty table when
// the system's mapping files do not declare one.
func (c *Context) Table(entity string) *mapping.Table {
	if t, ok := c.tables[entity]; ok {
		return t
	}
	return emptyTable
}

// NoteUnmapped folds enum values that failed to map into a person note so
// the categorical data survives the export for a human to review.
func NoteUnmapped(note string, unmapped []mapping.UnmappedValue) string {
	for _, u := range unmapped {
		entry := fmt.Sprintf("%s: %s", u.Canonical, u.Raw)
		if note == "" {
			note = entry
		} else {
			note += "; " + entry
		}
	}
	return note
}

// RoleOrMember normalizes a group role, defaulting blanks to "Member".
func RoleOrMember(role string) string {
	if role == "" {
		return "Member"
	}
	return role
}

// DigitsOnly strips everything but digits from a phone number, keeping a
// leading + for international numbers.
func DigitsOnly(phone string) string {
	var b strings.Builder
	for i, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		} else if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Accumulator deduplicates entities assembled across many source rows.
// Flush methods return deterministic (id-sorted) slices so repeated
// exports of the same data produce identical packages.
type Accumulator struct {
	accounts   map[int32]*model.FinancialAccount
	batches    map[int32]*model.FinancialBatch
	attributes map[string]*model.PersonAttribute
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		accounts:   map[int32]*model.FinancialAccount{},
		batches:    map[int32]*model.FinancialBatch{},
		attributes: map[string]*model.PersonAttribute{},
	}
}

// Account returns the account with the given id, creating it on first
// sight. Later sightings keep the first name seen.
func (a *Accumulator) Account(id int32, name string, taxDeductible bool) *model.FinancialAccount {
	if acct, ok := a.accounts[id]; ok {
		return acct
	}
	acct := &model.FinancialAccount{ID: id, Name: name, IsTaxDeductible: taxDeductible}
	a.accounts[id] = acct
	return acct
}

// Batch returns the batch with the given id, creating it on first sight.
func (a *Accumulator) Batch(id int32, name string, date *time.Time) *model.FinancialBatch {
	if b, ok := a.batches[id]; ok {
		return b
	}
	b := &model.FinancialBatch{
		ID:        id,
		Name:      name,
		StartDate: date,
		EndDate:   date,
		Status:    model.BatchStatusClosed,
	}
	a.batches[id] = b
	return b
}

// Attribute registers an attribute schema record on first sight of its key.
func (a *Accumulator) Attribute(key, name, category, fieldType string) {
	if _, ok := a.attributes[key]; ok {
		return
	}
	a.attributes[key] = &model.PersonAttribute{
		Key: key, Name: name, Category: category, FieldType: fieldType,
	}
}

// Accounts returns accumulated accounts sorted by id.
func (a *Accumulator) Accounts() []*model.FinancialAccount {
	out := make([]*model.FinancialAccount, 0, len(a.accounts))
	for _, acct := range a.accounts {
		out = append(out, acct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Batches returns accumulated batches sorted by id. Transactions keep the
// order they were appended in.
func (a *Accumulator) Batches() []*model.FinancialBatch {
	out := make([]*model.FinancialBatch, 0, len(a.batches))
	for _, b := range a.batches {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Attributes returns accumulated attribute schemas sorted by key.
func (a *Accumulator) Attributes() []*model.PersonAttribute {
	out := make([]*model.PersonAttribute, 0, len(a.attributes))
	for _, attr := range a.attributes {
		out = append(out, attr)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
