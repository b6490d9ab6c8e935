// Package mapping loads the declarative field-mapping tables that drive
// record translation.
//
// The per-system field maps are configuration, not code: each system ships
// a CUE file under mappings/ declaring, per canonical entity, which source
// column feeds which canonical field and with which coercion kind. The
// tables are schema-validated at load time and unit-testable independently
// of any source I/O.
package mapping

import (
	"fmt"
	"sort"
)

// FieldRule binds one canonical field to a source column.
type FieldRule struct {
	// Canonical is the canonical field name the rule populates.
	Canonical string
	// Column is the source column, attribute or flattened JSON key.
	Column string
	// Kind selects the coercion applied to the raw value.
	Kind Kind
	// Default substitutes for an absent or blank source value.
	// Only meaningful for string-kinded rules.
	Default string
}

// Table is the compiled mapping for one (system, entity) pair.
type Table struct {
	System string
	Entity string
	// SourceHint names the source file or table the system conventionally
	// exports this entity in. Informational; connectors choose their own
	// sources.
	SourceHint string

	rules map[string]FieldRule
}

// NewTable builds a table programmatically. Loading CUE files is the
// normal path; this constructor serves tests and embedded defaults.
func NewTable(system, entity string, rules []FieldRule) *Table {
	t := &Table{System: system, Entity: entity, rules: map[string]FieldRule{}}
	for _, r := range rules {
		t.rules[r.Canonical] = r
	}
	return t
}

// Rule returns the rule for a canonical field, if declared.
func (t *Table) Rule(canonical string) (FieldRule, bool) {
	r, ok := t.rules[canonical]
	return r, ok
}

// Canonicals lists the declared canonical fields in sorted order.
func (t *Table) Canonicals() []string {
	out := make([]string, 0, len(t.rules))
	for c := range t.rules {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// Set holds every table loaded from a mappings directory, keyed by system
// then entity.
type Set struct {
	tables map[string]map[string]*Table
}

// Table returns the table for a system/entity pair.
func (s *Set) Table(system, entity string) (*Table, error) {
	entities, ok := s.tables[system]
	if !ok {
		return nil, fmt.Errorf("no mappings for system %q", system)
	}
	t, ok := entities[entity]
	if !ok {
		return nil, fmt.Errorf("system %q has no mapping for entity %q", system, entity)
	}
	return t, nil
}

// System returns all tables for one system, keyed by entity.
func (s *Set) System(system string) (map[string]*Table, error) {
	entities, ok := s.tables[system]
	if !ok {
		return nil, fmt.Errorf("no mappings for system %q", system)
	}
	return entities, nil
}

// Systems lists the systems present in the set, sorted.
func (s *Set) Systems() []string {
	out := make([]string, 0, len(s.tables))
	for name := range s.tables {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Kind is the coercion applied to a mapped source value.
type Kind string

const (
	KindString            Kind = "string"
	KindBool              Kind = "bool"
	KindInt               Kind = "int"
	KindID                Kind = "id"
	KindCents             Kind = "cents"
	KindDate              Kind = "date"
	KindDateTime          Kind = "datetime"
	KindGender            Kind = "gender"
	KindMaritalStatus     Kind = "maritalstatus"
	KindRecordStatus      Kind = "recordstatus"
	KindFamilyRole        Kind = "familyrole"
	KindEmailPreference   Kind = "emailpreference"
	KindAddressType       Kind = "addresstype"
	KindBatchStatus       Kind = "batchstatus"
	KindTransactionSource Kind = "transactionsource"
	KindCurrencyType      Kind = "currencytype"
)

var validKinds = map[Kind]bool{
	KindString: true, KindBool: true, KindInt: true, KindID: true,
	KindCents: true, KindDate: true, KindDateTime: true,
	KindGender: true, KindMaritalStatus: true, KindRecordStatus: true,
	KindFamilyRole: true, KindEmailPreference: true, KindAddressType: true,
	KindBatchStatus: true, KindTransactionSource: true, KindCurrencyType: true,
}

// ValidKind reports whether k is a known coercion kind.
func ValidKind(k Kind) bool {
	return validKinds[k]
}
