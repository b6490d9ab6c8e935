package acs

import (
	"sort"

	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/model"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// GroupBuilder assembles ACS activities and their rosters. Activity and
// individual ids are real; the activity category becomes the group type.
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

// AddActivity folds one activity row in. Returns false when the row has
// no usable id.
func (b *GroupBuilder) AddActivity(ctx *translate.Context, bag coerce.Bag) bool {
	v := ctx.Table("activity").Apply(bag)

	id := v.ID("Id")
	if id == 0 {
		return false
	}

	category := v.String("Category")
	if category == "" {
		category = "ACS Activities"
	}
	typeID := model.SynthesizeID("acs-activity-category", category)
	if _, ok := b.types[typeID]; !ok {
		b.types[typeID] = &model.GroupType{ID: typeID, Name: category}
	}

	b.groups[id] = &model.Group{
		ID:          id,
		Name:        v.String("Name"),
		Description: v.String("Description"),
		GroupTypeID: typeID,
		MeetingDay:  v.String("MeetingDay"),
		IsActive:    !v.Bool("Inactive"),
	}
	return true
}

// AddRoster folds one roster row into its activity. Rows pointing at an
// activity missing from the activity table are dropped.
func (b *GroupBuilder) AddRoster(ctx *translate.Context, bag coerce.Bag) bool {
	v := ctx.Table("roster").Apply(bag)

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

// GroupTypes returns the distinct activity categories sorted by id.
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
