package model

// Closed enumerations shared across all source systems. String values are
// what the destination importer expects in the CSVs; every enum has an
// explicit Unknown/default member because translation never fails on an
// unrecognized source value.

// Gender of a person.
type Gender int

const (
	GenderUnknown Gender = iota
	GenderMale
	GenderFemale
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "Unknown"
	}
}

// MaritalStatus of a person.
type MaritalStatus int

const (
	MaritalStatusUnknown MaritalStatus = iota
	MaritalStatusSingle
	MaritalStatusMarried
	MaritalStatusDivorced
)

func (m MaritalStatus) String() string {
	switch m {
	case MaritalStatusSingle:
		return "Single"
	case MaritalStatusMarried:
		return "Married"
	case MaritalStatusDivorced:
		return "Divorced"
	default:
		return "Unknown"
	}
}

// RecordStatus marks a person as active or inactive in the source system.
type RecordStatus int

const (
	RecordStatusActive RecordStatus = iota
	RecordStatusInactive
)

func (r RecordStatus) String() string {
	if r == RecordStatusInactive {
		return "Inactive"
	}
	return "Active"
}

// FamilyRole positions a person within their household.
type FamilyRole int

const (
	FamilyRoleAdult FamilyRole = iota
	FamilyRoleChild
)

func (f FamilyRole) String() string {
	if f == FamilyRoleChild {
		return "Child"
	}
	return "Adult"
}

// EmailPreference records how a person wants to be emailed.
type EmailPreference int

const (
	EmailPreferenceEmailAllowed EmailPreference = iota
	EmailPreferenceNoMassEmails
	EmailPreferenceDoNotEmail
)

func (e EmailPreference) String() string {
	switch e {
	case EmailPreferenceNoMassEmails:
		return "NoMassEmails"
	case EmailPreferenceDoNotEmail:
		return "DoNotEmail"
	default:
		return "EmailAllowed"
	}
}

// AddressType categorizes a person address.
type AddressType int

const (
	AddressTypeHome AddressType = iota
	AddressTypeWork
	AddressTypePrevious
	AddressTypeOther
)

func (a AddressType) String() string {
	switch a {
	case AddressTypeWork:
		return "Work"
	case AddressTypePrevious:
		return "Previous"
	case AddressTypeOther:
		return "Other"
	default:
		return "Home"
	}
}

// BatchStatus of a financial batch.
type BatchStatus int

const (
	BatchStatusClosed BatchStatus = iota
	BatchStatusOpen
)

func (b BatchStatus) String() string {
	if b == BatchStatusOpen {
		return "Open"
	}
	return "Closed"
}

// TransactionType of a financial transaction. Contribution is the only type
// the legacy systems emit today; the enum exists so the column survives in
// the output contract.
type TransactionType int

const (
	TransactionTypeContribution TransactionType = iota
)

func (t TransactionType) String() string {
	return "Contribution"
}

// TransactionSource is the channel a contribution arrived through.
type TransactionSource int

const (
	TransactionSourceUnknown TransactionSource = iota
	TransactionSourceWebsite
	TransactionSourceKiosk
	TransactionSourceOnsiteCollection
	TransactionSourceBankChecks
)

func (t TransactionSource) String() string {
	switch t {
	case TransactionSourceWebsite:
		return "Website"
	case TransactionSourceKiosk:
		return "Kiosk"
	case TransactionSourceOnsiteCollection:
		return "OnsiteCollection"
	case TransactionSourceBankChecks:
		return "BankChecks"
	default:
		return "Unknown"
	}
}

// CurrencyType is the tender of a contribution.
type CurrencyType int

const (
	CurrencyTypeUnknown CurrencyType = iota
	CurrencyTypeCash
	CurrencyTypeCheck
	CurrencyTypeCreditCard
	CurrencyTypeACH
	CurrencyTypeNonCash
	CurrencyTypeOther
)

func (c CurrencyType) String() string {
	switch c {
	case CurrencyTypeCash:
		return "Cash"
	case CurrencyTypeCheck:
		return "Check"
	case CurrencyTypeCreditCard:
		return "CreditCard"
	case CurrencyTypeACH:
		return "ACH"
	case CurrencyTypeNonCash:
		return "NonCash"
	case CurrencyTypeOther:
		return "Other"
	default:
		return "Unknown"
	}
}
