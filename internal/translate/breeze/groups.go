package breeze

import (
	"sort"

	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// GroupBuilder assembles groups from tag rows. Breeze tags are (person,
// tag name) pairs; the group id is synthesized from the tag name so the
// same tag maps to the same group on every run.
type GroupBuilder struct {
	groups map[int32]*model.Group
}

// NewGroupBuilder creates an empty builder.
func NewGroupBuilder() *GroupBuilder {
	return &GroupBuilder{groups: map[int32]*model.Group{}}
}

// Add folds one tags.csv row in. Returns false when the row lacks a tag
// name or person id.
func (b *GroupBuilder) Add(ctx *translate.Context, bag coerce.Bag) bool {
	v := ctx.Table("tag").Apply(bag)

	name := v.String("Name")
	personID := v.ID("PersonId")
	if name == "" || personID == 0 {
		return false
	}

	id := model.SynthesizeID(name)
	if id == 0 {
		// The one-in-two-billion hash miss; leave the tag out rather than
		// emit an unkeyed group.
		return false
	}
	group, ok := b.groups[id]
	if !ok {
		group = &model.Group{
			ID:          id,
			Name:        name,
			GroupTypeID: groupTypeID,
			IsActive:    true,
		}
		b.groups[id] = group
	}
	group.Members = append(group.Members, model.GroupMember{
		GroupID:  id,
		PersonID: personID,
		Role:     translate.RoleOrMember(v.String("Role")),
	})
	return true
}

// GroupType returns the single type all tag groups share.
func (b *GroupBuilder) GroupType() *model.GroupType {
	return &model.GroupType{ID: groupTypeID, Name: "Breeze Tags"}
}

// Groups returns the assembled groups sorted by id.
func (b *GroupBuilder) Groups() []*model.Group {
	out := make([]*model.Group, 0, len(b.groups))
	for _, g := range b.groups {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
