package pco

import (
	"sort"

	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// GroupBuilder assembles PCO groups and their memberships, which arrive
// in separate dumps joined on the group id.
type GroupBuilder struct {
	groups map[int32]*model.Group
	types  map[int32]*model.GroupType
}

// NewGroupBuilder creates an empty builder.
func NewGroupBuilder() *GroupBuilder {
	return &GroupBuilder{
		groups: map[int32]*model.Group{},
		types:  map[int32]*model.GroupType{},
	}
}

// AddGroup folds one group object in. Returns false when the object has
// no usable id.
func (b *GroupBuilder) AddGroup(ctx *translate.Context, bag coerce.Bag) bool {
	v := ctx.Table("group").Apply(bag)

	id := v.ID("Id")
	if id == 0 {
		return false
	}

	typeID := v.ID("GroupTypeId")
	typeName := v.String("GroupTypeName")
	if typeID == 0 {
		typeID = model.SynthesizeID("pco-group-type", typeName)
	}
	if _, ok := b.types[typeID]; !ok {
		if typeName == "" {
			typeName = "PCO Groups"
		}
		b.types[typeID] = &model.GroupType{ID: typeID, Name: typeName}
	}

	b.groups[id] = &model.Group{
		ID:          id,
		Name:        v.String("Name"),
		Description: v.String("Description"),
		GroupTypeID: typeID,
		MeetingDay:  v.String("MeetingDay"),
		MeetingTime: v.String("MeetingTime"),
		IsActive:    !v.Bool("Archived"),
		IsPublic:    v.Bool("Public"),
		Campus: model.Campus{
			CampusID: v.ID("CampusId"),
		},
	}
	return true
}

// AddMembership folds one membership object into its group. Memberships
// for groups missing from the group dump are dropped; the destination
// cannot import a member without its group row.
func (b *GroupBuilder) AddMembership(ctx *translate.Context, bag coerce.Bag) bool {
	v := ctx.Table("membership").Apply(bag)

	groupID := v.ID("GroupId")
	personID := v.ID("PersonId")
	if groupID == 0 || personID == 0 {
		return false
	}
	group, ok := b.groups[groupID]
	if !ok {
		return false
	}
	group.Members = append(group.Members, model.GroupMember{
		GroupID:  groupID,
		PersonID: personID,
		Role:     translate.RoleOrMember(v.String("Role")),
	})
	return true
}

// GroupTypes returns the distinct group types sorted by id.
func (b *GroupBuilder) GroupTypes() []*model.GroupType {
	out := make([]*model.GroupType, 0, len(b.types))
	for _, t := range b.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
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
