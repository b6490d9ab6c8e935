package acs

import (
	"context"

	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/source"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// Family is the household data joined onto each person during
// translation. ACS addresses live on the family, not the individual.
type Family struct {
	ID      int32
	Name    string
	Street1 string
	Street2 string
	City    string
	State   string
	Postal  string
	Country string
}

// LoadFamilies reads the family table into a map keyed by family id.
func LoadFamilies(ctx context.Context, tctx *translate.Context, db *source.DB) (map[int32]Family, error) {
	bags, err := db.Rows(ctx, "SELECT * FROM family")
	if err != nil {
		return nil, err
	}
	families := make(map[int32]Family, len(bags))
	for _, bag := range bags {
		v := tctx.Table("family").Apply(bag)
		id := v.ID("Id")
		if id == 0 {
			continue
		}
		families[id] = Family{
			ID:      id,
			Name:    v.String("Name"),
			Street1: v.String("Street1"),
			Street2: v.String("Street2"),
			City:    v.String("City"),
			State:   v.String("State"),
			Postal:  v.String("PostalCode"),
			Country: v.String("Country"),
		}
	}
	return families, nil
}

// TranslatePerson maps one individual row to a canonical Person, pulling
// the household name and address from the joined family.
func TranslatePerson(ctx *translate.Context, bag coerce.Bag, families map[int32]Family) (*model.Person, bool) {
	v := ctx.Table("person").Apply(bag)

	id := v.ID("Id")
	if id == 0 {
		return nil, false
	}

	person := &model.Person{
		ID:               id,
		FamilyID:         v.ID("FamilyId"),
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

	family, haveFamily := families[person.FamilyID]
	if haveFamily {
		person.FamilyName = family.Name
	}
	if person.FamilyID == 0 {
		person.FamilyID = model.SynthesizeID("acs-family", v.String("Id"))
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
		})
	}

	if haveFamily && family.Street1 != "" {
		person.Addresses = append(person.Addresses, model.PersonAddress{
			PersonID:   id,
			Street1:    family.Street1,
			Street2:    family.Street2,
			City:       family.City,
			State:      family.State,
			PostalCode: family.Postal,
			Country:    family.Country,
			Type:       model.AddressTypeHome,
			IsMailing:  true,
		})
	}

	if envelope := v.String("EnvelopeNumber"); envelope != "" {
		ctx.Acc.Attribute("acs-envelope-number", "Envelope Number", "ACS", "text")
		person.AttributeValues = append(person.AttributeValues, model.PersonAttributeValue{
			PersonID: id, AttributeKey: "acs-envelope-number", AttributeValue: envelope,
		})
	}

	person.Note = translate.NoteUnmapped(person.Note, v.Unmapped())
	return person, true
}
