// Package pco exports data dumped from the Planning Center Online API.
//
// PCO paginates everything; the fetch side of the tooling saves each page
// as <name>_<page>.json in a dump directory and this connector walks the
// pages in order, bounded by the run's page guard so a malformed dump
// cannot loop the export forever. PCO exposes real integer ids for every
// entity, so nothing is synthesized except attendance ids.
package pco

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/slingshot-dev/slingshot/internal/coerce"
	"github.com/slingshot-dev/slingshot/internal/export"
	"github.com/slingshot-dev/slingshot/internal/source"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// System is the profile name this connector registers under.
const System = "pco"

// Connector implements export.Connector for Planning Center.
type Connector struct {
	profile *export.Profile
	ctx     *translate.Context
}

// New builds a PCO connector over a loaded profile and the pco mapping
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
		{Name: "Attendance", Run: c.exportAttendance},
	}
}

// readPages loads <dir>/<name>_<page>.json starting at page 1 until a
// page is missing or the guard trips.
func readPages(dir, name string, guard *export.PageGuard) ([]coerce.Bag, error) {
	var bags []coerce.Bag
	page := 1
	for guard.Next() {
		path := filepath.Join(dir, fmt.Sprintf("%s_%d.json", name, page))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if page == 1 {
				// A single unnumbered file is also accepted.
				single := filepath.Join(dir, name+".json")
				if _, err := os.Stat(single); err == nil {
					return source.JSONFile(single)
				}
			}
			return bags, nil
		}
		pageBags, err := source.JSONFile(path)
		if err != nil {
			return nil, err
		}
		bags = append(bags, pageBags...)
		page++
	}
	return nil, guard.Err()
}

func (c *Connector) exportIndividuals(ctx context.Context, emit *export.Emit) error {
	dir, err := c.profile.Source("people")
	if err != nil {
		return err
	}
	bags, err := readPages(dir, "people", emit.Guard())
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
		emit.Progress(i+1, len(bags), "people")
	}
	for _, attr := range c.ctx.Acc.Attributes() {
		if err := emit.Write(attr); err != nil {
			return err
		}
	}
	return nil
}

func (c *Connector) exportGiving(ctx context.Context, emit *export.Emit) error {
	dir, err := c.profile.Source("giving")
	if err != nil {
		return err
	}

	fundBags, err := readPages(dir, "funds", emit.Guard())
	if err != nil {
		return err
	}
	for _, bag := range fundBags {
		if !TranslateFund(c.ctx, bag) {
			emit.Skip()
		}
	}

	batchBags, err := readPages(dir, "batches", emit.Guard())
	if err != nil {
		return err
	}
	for _, bag := range batchBags {
		if !TranslateBatch(c.ctx, bag) {
			emit.Skip()
		}
	}

	donationBags, err := readPages(dir, "donations", emit.Guard())
	if err != nil {
		return err
	}
	for i, bag := range donationBags {
		if !TranslateDonation(c.ctx, bag) {
			emit.Skip()
			continue
		}
		emit.Progress(i+1, len(donationBags), "donations")
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
	dir, err := c.profile.Source("groups")
	if err != nil {
		return err
	}

	groupBags, err := readPages(dir, "groups", emit.Guard())
	if err != nil {
		return err
	}
	memberBags, err := readPages(dir, "memberships", emit.Guard())
	if err != nil {
		return err
	}

	builder := NewGroupBuilder()
	for _, bag := range groupBags {
		if !builder.AddGroup(c.ctx, bag) {
			emit.Skip()
		}
	}
	for _, bag := range memberBags {
		if !builder.AddMembership(c.ctx, bag) {
			emit.Skip()
		}
	}

	for _, gt := range builder.GroupTypes() {
		if err := emit.Write(gt); err != nil {
			return err
		}
	}
	groups := builder.Groups()
	for i, group := range groups {
		if err := emit.Write(group); err != nil {
			return err
		}
		emit.Progress(i+1, len(groups), "groups")
	}
	return nil
}

func (c *Connector) exportAttendance(ctx context.Context, emit *export.Emit) error {
	dir, err := c.profile.Source("attendance")
	if err != nil {
		return err
	}
	bags, err := readPages(dir, "checkins", emit.Guard())
	if err != nil {
		return err
	}
	for i, bag := range bags {
		att, ok := TranslateCheckIn(c.ctx, bag)
		if !ok {
			emit.Skip()
			continue
		}
		if err := emit.Write(att); err != nil {
			return err
		}
		emit.Progress(i+1, len(bags), "check-ins")
	}
	return nil
}
