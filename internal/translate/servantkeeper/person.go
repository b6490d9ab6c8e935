package servantkeeper

import (
	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// TranslatePerson maps one member row to a canonical Person. ServantKeeper
// keys members by ind_id and households by fam_id, both real integers.
func TranslatePerson(ctx *translate.Context, bag coerce.Bag) (*model.Person, bool) {
	v := ctx.Table("person").Apply(bag)

	id := v.ID("Id")
	if id == 0 {
		return nil, false
	}

	person := &model.Person{
		ID:               id,
		FamilyID:         v.ID("FamilyId"),
		FamilyName:       v.String("FamilyName"),
		FamilyRole:       v.FamilyRole("FamilyRole"),
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
		RecordStatus:     v.RecordStatus("RecordStatus"),
		ConnectionStatus: v.String("ConnectionStatus"),
		CreatedDateTime:  v.Date("CreatedDateTime"),
		ModifiedDateTime: v.Date("ModifiedDateTime"),
	}
	if person.RecordStatus == model.RecordStatusInactive {
		person.InactiveReason = v.String("InactiveReason")
	}
	if person.FamilyID == 0 {
		person.FamilyID = model.SynthesizeID("sk-family", v.String("Id"))
	}

	for _, pf := range []struct {
		canonical string
		phoneType string
	}{
		{"CellPhone", "Mobile"},
		{"HomePhone", "Home"},
		{"WorkPhone", "Work"},
	} {
		number := v.String(pf.canonical)
		if translate.DigitsOnly(number) == "" {
			continue
		}
		person.Phones = append(person.Phones, model.PersonPhone{
			PersonID:           id,
			PhoneType:          pf.phoneType,
			PhoneNumber:        number,
			IsMessagingEnabled: pf.phoneType == "Mobile",
			IsUnlisted:         v.Bool("PhoneUnlisted"),
		})
	}

	if street := v.String("Street1"); street != "" {
		person.Addresses = append(person.Addresses, model.PersonAddress{
			PersonID:   id,
			Street1:    street,
			Street2:    v.String("Street2"),
			City:       v.String("City"),
			State:      v.String("State"),
			PostalCode: v.String("PostalCode"),
			Country:    v.String("Country"),
			Type:       model.AddressTypeHome,
			IsMailing:  true,
		})
	}

	// Membership-era fields the destination has no column for become
	// attributes rather than dropping on the floor.
	if joined := v.String("DateJoined"); joined != "" {
		ctx.Acc.Attribute("sk-date-joined", "Date Joined", "ServantKeeper", "date")
		person.AttributeValues = append(person.AttributeValues, model.PersonAttributeValue{
			PersonID: id, AttributeKey: "sk-date-joined", AttributeValue: joined,
		})
	}
	if how := v.String("HowJoined"); how != "" {
		ctx.Acc.Attribute("sk-how-joined", "How Joined", "ServantKeeper", "text")
		person.AttributeValues = append(person.AttributeValues, model.PersonAttributeValue{
			PersonID: id, AttributeKey: "sk-how-joined", AttributeValue: how,
		})
	}

	person.Note = translate.NoteUnmapped(person.Note, v.Unmapped())
	return person, true
}
