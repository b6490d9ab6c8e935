package model

import "time"

// PersonNote is a dated note attached to a person. Source systems rarely
// expose note ids, so ID is usually synthesized from the person id, note
// type and timestamp.
type PersonNote struct {
	ID       int32
	PersonID int32
	NoteType string
	Text     string
	DateTime *time.Time
}

func (*PersonNote) FileName() string { return "person-note.csv" }

func (*PersonNote) Header() []string {
	return []string{"Id", "PersonId", "NoteType", "Text", "DateTime"}
}

func (n *PersonNote) Row() []string {
	return []string{
		formatID(n.ID), formatID(n.PersonID), n.NoteType, n.Text, formatDateTime(n.DateTime),
	}
}

// FamilyNote is a dated note attached to a household.
type FamilyNote struct {
	ID       int32
	FamilyID int32
	NoteType string
	Text     string
	DateTime *time.Time
}

func (*FamilyNote) FileName() string { return "family-note.csv" }

func (*FamilyNote) Header() []string {
	return []string{"Id", "FamilyId", "NoteType", "Text", "DateTime"}
}

func (n *FamilyNote) Row() []string {
	return []string{
		formatID(n.ID), formatID(n.FamilyID), n.NoteType, n.Text, formatDateTime(n.DateTime),
	}
}

// Attendance is one check-in of a person against a group. AttendanceID is
// synthesized; the source systems do not expose one.
type Attendance struct {
	AttendanceID  int32
	PersonID      int32
	GroupID       int32
	ScheduleID    int32
	LocationID    int32
	StartDateTime *time.Time
	EndDateTime   *time.Time
	Note          string
}

func (*Attendance) FileName() string { return "attendance.csv" }

func (*Attendance) Header() []string {
	return []string{
		"AttendanceId", "PersonId", "GroupId", "ScheduleId", "LocationId",
		"StartDateTime", "EndDateTime", "Note",
	}
}

func (a *Attendance) Row() []string {
	return []string{
		formatID(a.AttendanceID), formatID(a.PersonID), formatID(a.GroupID),
		formatID(a.ScheduleID), formatID(a.LocationID),
		formatDateTime(a.StartDateTime), formatDateTime(a.EndDateTime), a.Note,
	}
}
