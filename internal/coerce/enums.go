package coerce

import (
	"strings"

	"github.com/slingshot-dev/slingshot/internal/model"
)

// Enumeration remapping. Each lookup is a case-insensitive table with an
// explicit default branch; the second return value reports whether the
// input mapped, so translators can accumulate unmapped non-empty values
// into the person note instead of losing them. Empty input is the default
// with ok=true (absence is not "unmapped").

// Gender maps a source gender string.
func Gender(s string) (model.Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return model.GenderUnknown, true
	case "m", "male":
		return model.GenderMale, true
	case "f", "female":
		return model.GenderFemale, true
	default:
		return model.GenderUnknown, false
	}
}

// MaritalStatus maps a source marital status string.
func MaritalStatus(s string) (model.MaritalStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return model.MaritalStatusUnknown, true
	case "single", "s":
		return model.MaritalStatusSingle, true
	case "married", "m":
		return model.MaritalStatusMarried, true
	case "divorced", "d":
		return model.MaritalStatusDivorced, true
	default:
		return model.MaritalStatusUnknown, false
	}
}

// RecordStatus maps a source record status string. Unrecognized values
// default to Active: the systems that emit anything here use it for
// inactivation reasons, and a person present in the export is presumed
// active.
func RecordStatus(s string) (model.RecordStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return model.RecordStatusActive, true
	case "active", "a", "true", "yes", "1":
		return model.RecordStatusActive, true
	case "inactive", "i", "false", "no", "0":
		return model.RecordStatusInactive, true
	default:
		return model.RecordStatusActive, false
	}
}

// FamilyRole maps a source household position string.
func FamilyRole(s string) (model.FamilyRole, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return model.FamilyRoleAdult, true
	case "adult", "head", "head of household", "spouse", "primary":
		return model.FamilyRoleAdult, true
	case "child", "dependent":
		return model.FamilyRoleChild, true
	default:
		return model.FamilyRoleAdult, false
	}
}

// EmailPreference maps a source email preference string.
func EmailPreference(s string) (model.EmailPreference, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return model.EmailPreferenceEmailAllowed, true
	case "emailallowed", "email allowed", "allowed", "subscribed":
		return model.EmailPreferenceEmailAllowed, true
	case "nomassemails", "no mass emails":
		return model.EmailPreferenceNoMassEmails, true
	case "donotemail", "do not email", "unsubscribed", "opted out", "opt out":
		return model.EmailPreferenceDoNotEmail, true
	default:
		return model.EmailPreferenceEmailAllowed, false
	}
}

// AddressType maps a source address category string.
func AddressType(s string) (model.AddressType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return model.AddressTypeHome, true
	case "home", "main", "mailing", "primary":
		return model.AddressTypeHome, true
	case "work", "business", "office":
		return model.AddressTypeWork, true
	case "previous", "prior", "old":
		return model.AddressTypePrevious, true
	case "other":
		return model.AddressTypeOther, true
	default:
		return model.AddressTypeOther, false
	}
}

// BatchStatus maps a source batch status string. Closed is the default:
// exported history is settled.
func BatchStatus(s string) (model.BatchStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return model.BatchStatusClosed, true
	case "open", "pending", "in progress":
		return model.BatchStatusOpen, true
	case "closed", "committed", "posted":
		return model.BatchStatusClosed, true
	default:
		return model.BatchStatusClosed, false
	}
}

// TransactionSource maps a source giving-channel string.
func TransactionSource(s string) (model.TransactionSource, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return model.TransactionSourceUnknown, true
	case "website", "web", "online", "internet":
		return model.TransactionSourceWebsite, true
	case "kiosk":
		return model.TransactionSourceKiosk, true
	case "onsitecollection", "onsite", "offering", "sunday offering", "collection":
		return model.TransactionSourceOnsiteCollection, true
	case "bankchecks", "bank checks", "bank draft", "mail":
		return model.TransactionSourceBankChecks, true
	default:
		return model.TransactionSourceUnknown, false
	}
}

// CurrencyType maps a source tender string.
func CurrencyType(s string) (model.CurrencyType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return model.CurrencyTypeUnknown, true
	case "cash", "currency":
		return model.CurrencyTypeCash, true
	case "check", "cheque", "chk":
		return model.CurrencyTypeCheck, true
	case "creditcard", "credit card", "credit", "card", "visa", "mastercard", "amex", "discover":
		return model.CurrencyTypeCreditCard, true
	case "ach", "eft", "bank transfer", "direct deposit", "echeck":
		return model.CurrencyTypeACH, true
	case "noncash", "non-cash", "non cash", "in kind", "in-kind", "stock":
		return model.CurrencyTypeNonCash, true
	case "other":
		return model.CurrencyTypeOther, true
	default:
		return model.CurrencyTypeUnknown, false
	}
}
