package pco

import (
	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// TranslatePerson maps one PCO person object (flattened, with dotted keys
// for the included campus and household) to a canonical Person.
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
		Salutation:       v.String("Salutation"),
		Suffix:           v.String("Suffix"),
		Email:            v.String("Email"),
		EmailPreference:  v.EmailPreference("EmailPreference"),
		Gender:           v.Gender("Gender"),
		MaritalStatus:    v.MaritalStatus("MaritalStatus"),
		Birthdate:        v.Date("Birthdate"),
		AnniversaryDate:  v.Date("AnniversaryDate"),
		ConnectionStatus: v.String("ConnectionStatus"),
		FamilyRole:       v.FamilyRole("FamilyRole"),
		GiveIndividually: v.Bool("GiveIndividually"),
		CreatedDateTime:  v.Date("CreatedDateTime"),
		ModifiedDateTime: v.Date("ModifiedDateTime"),
		Campus: model.Campus{
			CampusID:   v.ID("CampusId"),
			CampusName: v.String("CampusName"),
		},
	}

	if v.Bool("Inactive") {
		person.RecordStatus = model.RecordStatusInactive
		person.InactiveReason = v.String("InactiveReason")
	}

	person.FamilyID = v.ID("FamilyId")
	person.FamilyName = v.String("FamilyName")
	if person.FamilyID == 0 {
		person.FamilyID = model.SynthesizeID("pco-household", v.String("Id"))
	}

	for _, pf := range []struct {
		numberField string
		typeField   string
		fallback    string
	}{
		{"Phone0Number", "Phone0Type", "Mobile"},
		{"Phone1Number", "Phone1Type", "Home"},
	} {
		number := v.String(pf.numberField)
		if translate.DigitsOnly(number) == "" {
			continue
		}
		phoneType := v.String(pf.typeField)
		if phoneType == "" {
			phoneType = pf.fallback
		}
		person.Phones = append(person.Phones, model.PersonPhone{
			PersonID:           person.ID,
			PhoneType:          phoneType,
			PhoneNumber:        number,
			IsMessagingEnabled: phoneType == "Mobile",
		})
	}

	if street := v.String("Street1"); street != "" {
		person.Addresses = append(person.Addresses, model.PersonAddress{
			PersonID:   person.ID,
			Street1:    street,
			Street2:    v.String("Street2"),
			City:       v.String("City"),
			State:      v.String("State"),
			PostalCode: v.String("PostalCode"),
			Country:    v.String("Country"),
			Type:       v.AddressType("AddressType"),
			IsMailing:  true,
		})
	}

	if grade := v.String("Grade"); grade != "" {
		ctx.Acc.Attribute("pco-grade", "Grade", "PCO", "text")
		person.AttributeValues = append(person.AttributeValues, model.PersonAttributeValue{
			PersonID: person.ID, AttributeKey: "pco-grade", AttributeValue: grade,
		})
	}
	if school := v.String("School"); school != "" {
		ctx.Acc.Attribute("pco-school", "School", "PCO", "text")
		person.AttributeValues = append(person.AttributeValues, model.PersonAttributeValue{
			PersonID: person.ID, AttributeKey: "pco-school", AttributeValue: school,
		})
	}

	person.Note = translate.NoteUnmapped(person.Note, v.Unmapped())
	return person, true
}
