package model

import "time"

// Campus is the nested campus reference carried on Person and Group rows.
type Campus struct {
	CampusID   int32
	CampusName string
}

// Person is the canonical individual record. It owns its phones, addresses
// and attribute values; the package writer fans those out into sibling CSV
// files keyed by the same person id.
//
// Invariant: ID must be a stable positive integer across repeated runs on
// the same source record so re-imports upsert instead of duplicating.
type Person struct {
	ID               int32
	FamilyID         int32
	FamilyName       string
	FamilyRole       FamilyRole
	FirstName        string
	NickName         string
	MiddleName       string
	LastName         string
	Salutation       string
	Suffix           string
	Email            string
	EmailPreference  EmailPreference
	Gender           Gender
	MaritalStatus    MaritalStatus
	Birthdate        *time.Time
	AnniversaryDate  *time.Time
	RecordStatus     RecordStatus
	InactiveReason   string
	ConnectionStatus string
	GiveIndividually bool
	Campus           Campus
	CreatedDateTime  *time.Time
	ModifiedDateTime *time.Time
	Note             string

	Phones          []PersonPhone
	Addresses       []PersonAddress
	AttributeValues []PersonAttributeValue
}

func (*Person) FileName() string { return "person.csv" }

func (*Person) Header() []string {
	return []string{
		"Id", "FamilyId", "FamilyName", "FamilyRole",
		"FirstName", "NickName", "MiddleName", "LastName", "Salutation", "Suffix",
		"Email", "EmailPreference", "Gender", "MaritalStatus",
		"Birthdate", "AnniversaryDate",
		"RecordStatus", "InactiveReason", "ConnectionStatus",
		"GiveIndividually", "CampusId", "CampusName",
		"CreatedDateTime", "ModifiedDateTime", "Note",
	}
}

func (p *Person) Row() []string {
	return []string{
		formatID(p.ID), formatID(p.FamilyID), p.FamilyName, p.FamilyRole.String(),
		p.FirstName, p.NickName, p.MiddleName, p.LastName, p.Salutation, p.Suffix,
		p.Email, p.EmailPreference.String(), p.Gender.String(), p.MaritalStatus.String(),
		formatDate(p.Birthdate), formatDate(p.AnniversaryDate),
		p.RecordStatus.String(), p.InactiveReason, p.ConnectionStatus,
		formatBool(p.GiveIndividually), formatID(p.Campus.CampusID), p.Campus.CampusName,
		formatDateTime(p.CreatedDateTime), formatDateTime(p.ModifiedDateTime), p.Note,
	}
}

func (p *Person) Children() []Entity {
	children := make([]Entity, 0, len(p.AttributeValues)+len(p.Phones)+len(p.Addresses))
	for i := range p.AttributeValues {
		children = append(children, &p.AttributeValues[i])
	}
	for i := range p.Phones {
		children = append(children, &p.Phones[i])
	}
	for i := range p.Addresses {
		children = append(children, &p.Addresses[i])
	}
	return children
}

// PersonPhone is one phone number owned by a person. PhoneType is free text
// because the source systems do not agree on a closed set.
type PersonPhone struct {
	PersonID           int32
	PhoneType          string
	PhoneNumber        string
	IsMessagingEnabled bool
	IsUnlisted         bool
}

func (*PersonPhone) FileName() string { return "person-phone.csv" }

func (*PersonPhone) Header() []string {
	return []string{"PersonId", "PhoneType", "PhoneNumber", "IsMessagingEnabled", "IsUnlisted"}
}

func (p *PersonPhone) Row() []string {
	return []string{
		formatID(p.PersonID), p.PhoneType, p.PhoneNumber,
		formatBool(p.IsMessagingEnabled), formatBool(p.IsUnlisted),
	}
}

// PersonAddress is one postal address owned by a person.
type PersonAddress struct {
	PersonID   int32
	Street1    string
	Street2    string
	City       string
	State      string
	PostalCode string
	Country    string
	Type       AddressType
	IsMailing  bool
}

func (*PersonAddress) FileName() string { return "person-address.csv" }

func (*PersonAddress) Header() []string {
	return []string{
		"PersonId", "Street1", "Street2", "City", "State", "PostalCode", "Country",
		"AddressType", "IsMailing",
	}
}

func (a *PersonAddress) Row() []string {
	return []string{
		formatID(a.PersonID), a.Street1, a.Street2, a.City, a.State, a.PostalCode, a.Country,
		a.Type.String(), formatBool(a.IsMailing),
	}
}

// PersonAttribute is the schema record for a custom person field. Attribute
// schema rows must be written alongside the values that reference them.
type PersonAttribute struct {
	Key       string
	Name      string
	Category  string
	FieldType string
}

func (*PersonAttribute) FileName() string { return "person-attribute.csv" }

func (*PersonAttribute) Header() []string {
	return []string{"Key", "Name", "Category", "FieldType"}
}

func (a *PersonAttribute) Row() []string {
	return []string{a.Key, a.Name, a.Category, a.FieldType}
}

// PersonAttributeValue is one custom field value on a person, referencing a
// PersonAttribute by key.
type PersonAttributeValue struct {
	PersonID       int32
	AttributeKey   string
	AttributeValue string
}

func (*PersonAttributeValue) FileName() string { return "person-attributevalue.csv" }

func (*PersonAttributeValue) Header() []string {
	return []string{"PersonId", "AttributeKey", "AttributeValue"}
}

func (v *PersonAttributeValue) Row() []string {
	return []string{formatID(v.PersonID), v.AttributeKey, v.AttributeValue}
}
