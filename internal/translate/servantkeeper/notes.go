package servantkeeper

import (
	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// TranslateNote maps one member note. ServantKeeper notes have no ids of
// their own; the id is synthesized from the person, type and timestamp,
// which also collapses exact duplicate rows in the source.
func TranslateNote(ctx *translate.Context, bag coerce.Bag) (*model.PersonNote, bool) {
	v := ctx.Table("note").Apply(bag)

	personID := v.ID("PersonId")
	text := v.String("Text")
	if personID == 0 || text == "" {
		return nil, false
	}

	noteType := v.String("NoteType")
	if noteType == "" {
		noteType = "General"
	}
	note := &model.PersonNote{
		ID:       model.SynthesizeID("sk-note", v.String("PersonId"), noteType, v.String("Date")),
		PersonID: personID,
		NoteType: noteType,
		Text:     text,
		DateTime: v.Date("Date"),
	}
	return note, true
}
