package model

// GroupType is the schema record for a category of groups. Written once per
// distinct type id; groups reference it by GroupTypeID.
type GroupType struct {
	ID   int32
	Name string
}

func (*GroupType) FileName() string { return "grouptype.csv" }

func (*GroupType) Header() []string { return []string{"Id", "Name"} }

func (t *GroupType) Row() []string { return []string{formatID(t.ID), t.Name} }

// Group is a canonical group or serving team. ParentGroupID forms a tree;
// zero means top level. Groups own their members and optional addresses for
// writer fan-out.
type Group struct {
	ID            int32
	Name          string
	Description   string
	GroupTypeID   int32
	ParentGroupID int32
	Campus        Campus
	MeetingDay    string
	MeetingTime   string
	IsActive      bool
	IsPublic      bool
	Capacity      *int

	Members   []GroupMember
	Addresses []GroupAddress
}

func (*Group) FileName() string { return "group.csv" }

func (*Group) Header() []string {
	return []string{
		"Id", "Name", "Description", "GroupTypeId", "ParentGroupId",
		"CampusId", "MeetingDay", "MeetingTime", "IsActive", "IsPublic", "Capacity",
	}
}

func (g *Group) Row() []string {
	capacity := ""
	if g.Capacity != nil {
		capacity = itoa(*g.Capacity)
	}
	return []string{
		formatID(g.ID), g.Name, g.Description, formatID(g.GroupTypeID), formatID(g.ParentGroupID),
		formatID(g.Campus.CampusID), g.MeetingDay, g.MeetingTime,
		formatBool(g.IsActive), formatBool(g.IsPublic), capacity,
	}
}

func (g *Group) Children() []Entity {
	children := make([]Entity, 0, len(g.Members)+len(g.Addresses))
	for i := range g.Members {
		children = append(children, &g.Members[i])
	}
	for i := range g.Addresses {
		children = append(children, &g.Addresses[i])
	}
	return children
}

// GroupMember links a person into a group with a free-text role.
type GroupMember struct {
	GroupID  int32
	PersonID int32
	Role     string
}

func (*GroupMember) FileName() string { return "groupmember.csv" }

func (*GroupMember) Header() []string { return []string{"GroupId", "PersonId", "Role"} }

func (m *GroupMember) Row() []string {
	return []string{formatID(m.GroupID), formatID(m.PersonID), m.Role}
}

// GroupAddress is a meeting location for a group.
type GroupAddress struct {
	GroupID    int32
	Street1    string
	Street2    string
	City       string
	State      string
	PostalCode string
	Country    string
}

func (*GroupAddress) FileName() string { return "group-address.csv" }

func (*GroupAddress) Header() []string {
	return []string{"GroupId", "Street1", "Street2", "City", "State", "PostalCode", "Country"}
}

func (a *GroupAddress) Row() []string {
	return []string{
		formatID(a.GroupID), a.Street1, a.Street2, a.City, a.State, a.PostalCode, a.Country,
	}
}
