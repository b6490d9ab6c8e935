// Package breeze exports data from Breeze ChMS CSV exports.
//
// Breeze hands people and giving out as flat CSV files and models groups
// as free-text tags on people, so group ids (and the accounts and batches
// giving rows imply) are synthesized deterministically from their names.
package breeze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/slingshot-dev/slingshot/internal/export"
	"github.com/slingshot-dev/slingshot/internal/source"
	"github.com/slingshot-dev/slingshot/internal/translate"
)

// System is the profile name this connector registers under.
const System = "breeze"

// GroupTypeID labels the single group type Breeze tags translate to.
// Synthesized once from a fixed name so it is stable across runs.
var groupTypeID = mustID("Breeze Tags")

// Connector implements export.Connector for Breeze.
type Connector struct {
	profile *export.Profile
	ctx     *translate.Context
}

// New builds a Breeze connector over a loaded profile and the breeze
// mapping tables.
func New(profile *export.Profile, ctx *translate.Context) *Connector {
	return &Connector{profile: profile, ctx: ctx}
}

func (c *Connector) Name() string { return System }

// Phases returns the export sequence. Individuals must run first: giving
// and groups reference person ids, and the destination importer matches
// them by the ids person.csv established.
func (c *Connector) Phases() []export.Phase {
	return []export.Phase{
		{Name: "Individuals", Run: c.exportIndividuals},
		{Name: "Giving", Run: c.exportGiving},
		{Name: "Groups", Run: c.exportGroups},
		{Name: "Photos", Run: c.exportPhotos},
	}
}

func (c *Connector) exportIndividuals(ctx context.Context, emit *export.Emit) error {
	path, err := c.profile.Source("people")
	if err != nil {
		return err
	}
	bags, err := source.CSVFile(path, source.CSVOptions{})
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
	// Attribute schema rows ride along with the values that referenced them.
	for _, attr := range c.ctx.Acc.Attributes() {
		if err := emit.Write(attr); err != nil {
			return err
		}
	}
	return nil
}

func (c *Connector) exportGiving(ctx context.Context, emit *export.Emit) error {
	path, err := c.profile.Source("giving")
	if err != nil {
		return err
	}
	bags, err := source.CSVFile(path, source.CSVOptions{})
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
	// Batches fan out their accumulated transactions and details.
	for _, batch := range c.ctx.Acc.Batches() {
		if err := emit.Write(batch); err != nil {
			return err
		}
	}
	return nil
}

func (c *Connector) exportGroups(ctx context.Context, emit *export.Emit) error {
	path, err := c.profile.Source("tags")
	if err != nil {
		return err
	}
	bags, err := source.CSVFile(path, source.CSVOptions{})
	if err != nil {
		return err
	}

	groups := NewGroupBuilder()
	for _, bag := range bags {
		if !groups.Add(c.ctx, bag) {
			emit.Skip()
		}
	}
	if err := emit.Write(groups.GroupType()); err != nil {
		return err
	}
	for i, group := range groups.Groups() {
		if err := emit.Write(group); err != nil {
			return err
		}
		emit.Progress(i+1, len(groups.Groups()), "groups")
	}
	return nil
}

// exportPhotos copies profile photos exported alongside the CSVs. Files
// are named <breeze person id>.jpg; anything else is skipped.
func (c *Connector) exportPhotos(ctx context.Context, emit *export.Emit) error {
	dir, err := c.profile.Source("photos")
	if err != nil {
		// Photos are optional; a profile without them is not a failure.
		return nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading photos directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base := entry.Name()
		id, convErr := strconv.ParseInt(base[:len(base)-len(filepath.Ext(base))], 10, 32)
		if convErr != nil || id <= 0 {
			emit.Skip()
			continue
		}
		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			return fmt.Errorf("opening photo %s: %w", entry.Name(), err)
		}
		err = emit.WriteImage(int32(id), f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
