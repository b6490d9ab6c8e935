package breeze

import (
	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/mapping"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// mustID synthesizes an id from a name known at compile time.
func mustID(parts ...string) int32 {
	return model.SynthesizeID(parts...)
}

// TranslatePerson maps one people.csv row to a canonical Person. Returns
// ok=false when the row has no usable person id. Phones, the mailing
// address and custom attribute values are attached for writer fan-out;
// unmapped enum values land in the note.
func TranslatePerson(ctx *translate.Context, bag coerce.Bag) (*model.Person, bool) {
	v := ctx.Table("person").Apply(bag)

	id := v.ID("Id")
	if id == 0 {
		return nil, false
	}

	person := &model.Person{
		ID:               id,
		FirstName:        v.String("FirstName"),
		NickName:         v.String("NickName"),
		MiddleName:       v.String("MiddleName"),
		LastName:         v.String("LastName"),
		Email:            v.String("Email"),
		EmailPreference:  v.EmailPreference("EmailPreference"),
		Gender:           v.Gender("Gender"),
		MaritalStatus:    v.MaritalStatus("MaritalStatus"),
		Birthdate:        v.Date("Birthdate"),
		AnniversaryDate:  v.Date("AnniversaryDate"),
		RecordStatus:     v.RecordStatus("RecordStatus"),
		ConnectionStatus: v.String("ConnectionStatus"),
		FamilyRole:       v.FamilyRole("FamilyRole"),
	}
	if person.RecordStatus == model.RecordStatusInactive {
		person.InactiveReason = v.String("InactiveReason")
	}

	// Breeze family ids are per-export strings; a missing family gets a
	// deterministic one-person household keyed by the person id.
	person.FamilyID = v.ID("FamilyId")
	person.FamilyName = v.String("FamilyName")
	if person.FamilyID == 0 {
		person.FamilyID = model.SynthesizeID("breeze-family", v.String("Id"))
	}

	attachPhones(person, v)
	attachAddress(person, v)
	attachAttributes(ctx, person, bag)

	person.Note = translate.NoteUnmapped(person.Note, v.Unmapped())
	return person, true
}

// phoneFields maps canonical phone fields to their emitted types. Breeze
// exports each number in its own column.
var phoneFields = []struct {
	canonical string
	phoneType string
	messaging bool
}{
	{"MobilePhone", "Mobile", true},
	{"HomePhone", "Home", false},
	{"WorkPhone", "Work", false},
}

func attachPhones(person *model.Person, v *mapping.Values) {
	for _, pf := range phoneFields {
		number := v.String(pf.canonical)
		if translate.DigitsOnly(number) == "" {
			continue
		}
		person.Phones = append(person.Phones, model.PersonPhone{
			PersonID:           person.ID,
			PhoneType:          pf.phoneType,
			PhoneNumber:        number,
			IsMessagingEnabled: pf.messaging,
			IsUnlisted:         v.Bool("PhoneUnlisted"),
		})
	}
}

func attachAddress(person *model.Person, v *mapping.Values) {
	street1 := v.String("Street1")
	city := v.String("City")
	if street1 == "" && city == "" {
		return
	}
	person.Addresses = append(person.Addresses, model.PersonAddress{
		PersonID:   person.ID,
		Street1:    street1,
		Street2:    v.String("Street2"),
		City:       city,
		State:      v.String("State"),
		PostalCode: v.String("PostalCode"),
		Country:    v.String("Country"),
		Type:       model.AddressTypeHome,
		IsMailing:  true,
	})
}

// attachAttributes turns every column declared in the person_attributes
// table into a person attribute value, registering the schema record on
// first sight. The rule's canonical name is the attribute key; its
// default, when set, supplies the display name.
func attachAttributes(ctx *translate.Context, person *model.Person, bag coerce.Bag) {
	table := ctx.Table("person_attributes")
	for _, key := range table.Canonicals() {
		rule, _ := table.Rule(key)
		value := coerce.String(bag, rule.Column)
		if value == "" {
			continue
		}
		name := rule.Default
		if name == "" {
			name = key
		}
		ctx.Acc.Attribute(key, name, "Breeze", "text")
		person.AttributeValues = append(person.AttributeValues, model.PersonAttributeValue{
			PersonID:       person.ID,
			AttributeKey:   key,
			AttributeValue: value,
		})
	}
}
