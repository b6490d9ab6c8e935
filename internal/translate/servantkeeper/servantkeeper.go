// Package servantkeeper exports data from a ServantKeeper database
// converted to SQLite.
//
// ServantKeeper is a desktop product; its Access-era database is
// converted to SQLite ahead of the export and read here with plain
// queries. Member ids are real; note and batch ids are synthesized.
// Contribution amounts are stored under a substitution cipher (see
// cipher.go) that must be reversed before parsing.
package servantkeeper

import (
	"context"

	"github.com/slingshot-dev/slingshot/internal/export"
	"github.com/slingshot-dev/slingshot/internal/source"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// System is the profile name this connector registers under.
const System = "servantkeeper"

// Connector implements export.Connector for ServantKeeper.
type Connector struct {
	profile *export.Profile
	ctx     *translate.Context
}

// New builds a ServantKeeper connector over a loaded profile and the
// servantkeeper mapping tables.
func New(profile *export.Profile, ctx *translate.Context) *Connector {
	return &Connector{profile: profile, ctx: ctx}
}

func (c *Connector) Name() string { return System }

func (c *Connector) Phases() []export.Phase {
	return []export.Phase{
		{Name: "Individuals", Run: c.exportIndividuals},
		{Name: "Giving", Run: c.exportGiving},
		{Name: "Notes", Run: c.exportNotes},
	}
}

func (c *Connector) open() (*source.DB, error) {
	path, err := c.profile.Source("database")
	if err != nil {
		return nil, err
	}
	return source.OpenDB(path)
}

func (c *Connector) exportIndividuals(ctx context.Context, emit *export.Emit) error {
	db, err := c.open()
	if err != nil {
		return err
	}
	defer db.Close()

	bags, err := db.Rows(ctx, "SELECT * FROM member")
	if err != nil {
		return err
	}
	for i, bag := range bags {
		person, ok := TranslatePerson(c.ctx, bag)
		if !ok {
			emit.Skip()
			continue
		}
		if err := emit.Write(person); err != nil {
			return err
		}
		emit.Progress(i+1, len(bags), "members")
	}
	for _, attr := range c.ctx.Acc.Attributes() {
		if err := emit.Write(attr); err != nil {
			return err
		}
	}
	return nil
}

func (c *Connector) exportGiving(ctx context.Context, emit *export.Emit) error {
	db, err := c.open()
	if err != nil {
		return err
	}
	defer db.Close()

	bags, err := db.Rows(ctx, "SELECT * FROM contribution ORDER BY batch_date, ind_id")
	if err != nil {
		return err
	}
	for i, bag := range bags {
		if !TranslateContribution(c.ctx, bag) {
			emit.Skip()
			continue
		}
		emit.Progress(i+1, len(bags), "contributions")
	}
	for _, account := range c.ctx.Acc.Accounts() {
		if err := emit.Write(account); err != nil {
			return err
		}
	}
	for _, batch := range c.ctx.Acc.Batches() {
		if err := emit.Write(batch); err != nil {
			return err
		}
	}
	return nil
}

func (c *Connector) exportNotes(ctx context.Context, emit *export.Emit) error {
	db, err := c.open()
	if err != nil {
		return err
	}
	defer db.Close()

	bags, err := db.Rows(ctx, "SELECT * FROM member_note ORDER BY ind_id, note_date")
	if err != nil {
		return err
	}
	for i, bag := range bags {
		note, ok := TranslateNote(c.ctx, bag)
		if !ok {
			emit.Skip()
			continue
		}
		if err := emit.Write(note); err != nil {
			return err
		}
		emit.Progress(i+1, len(bags), "notes")
	}
	return nil
}
