// Package acs exports data from an ACS Technologies database converted
// to SQLite.
//
// ACS keeps households in their own table, so the Individuals phase
// loads families first and joins them in memory while translating
// people. Person, family, fund and activity ids are all real; only
// transaction ids are synthesized.
package acs

import (
	"context"

	"github.com/slingshot-dev/slingshot/internal/export"
	"github.com/slingshot-dev/slingshot/internal/source"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// System is the profile name this connector registers under.
const System = "acs"

// Connector implements export.Connector for ACS.
type Connector struct {
	profile *export.Profile
	ctx     *translate.Context
}

// New builds an ACS connector over a loaded profile and the acs mapping
// tables.
func New(profile *export.Profile, ctx *translate.Context) *Connector {
	return &Connector{profile: profile, ctx: ctx}
}

func (c *Connector) Name() string { return System }

func (c *Connector) Phases() []export.Phase {
	return []export.Phase{
		{Name: "Individuals", Run: c.exportIndividuals},
		{Name: "Giving", Run: c.exportGiving},
		{Name: "Groups", Run: c.exportGroups},
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

	families, err := LoadFamilies(ctx, c.ctx, db)
	if err != nil {
		return err
	}

	bags, err := db.Rows(ctx, "SELECT * FROM individual ORDER BY ind_id")
	if err != nil {
		return err
	}
	for i, bag := range bags {
		person, ok := TranslatePerson(c.ctx, bag, families)
		if !ok {
			emit.Skip()
			continue
		}
		if err := emit.Write(person); err != nil {
			return err
		}
		emit.Progress(i+1, len(bags), "individuals")
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

	bags, err := db.Rows(ctx, "SELECT * FROM contribution ORDER BY post_date, ind_id")
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

func (c *Connector) exportGroups(ctx context.Context, emit *export.Emit) error {
	db, err := c.open()
	if err != nil {
		return err
	}
	defer db.Close()

	groups := NewGroupBuilder()

	bags, err := db.Rows(ctx, "SELECT * FROM activity ORDER BY activity_id")
	if err != nil {
		return err
	}
	for _, bag := range bags {
		if !groups.AddActivity(c.ctx, bag) {
			emit.Skip()
		}
	}

	bags, err = db.Rows(ctx, "SELECT * FROM activity_roster ORDER BY activity_id, ind_id")
	if err != nil {
		return err
	}
	for _, bag := range bags {
		if !groups.AddRoster(c.ctx, bag) {
			emit.Skip()
		}
	}

	for _, gt := range groups.GroupTypes() {
		if err := emit.Write(gt); err != nil {
			return err
		}
	}
	for i, group := range groups.Groups() {
		if err := emit.Write(group); err != nil {
			return err
		}
		emit.Progress(i+1, len(groups.Groups()), "groups")
	}
	return nil
}
