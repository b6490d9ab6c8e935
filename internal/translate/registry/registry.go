// Package registry binds system names to their connectors. It is the one
// place that knows every supported source system.
package registry

import (
	"fmt"
	"sort"

	"github.com/slingshot-dev/slingshot/internal/export"
	"github.com/slingshot-dev/slingshot/internal/mapping"
	"github.com/slingshot-dev/slingshot/internal/translate"
	"github.com/slingshot-dev/slingshot/internal/translate/acs"
	"github.com/slingshot-dev/slingshot/internal/translate/breeze"
	"github.com/slingshot-dev/slingshot/internal/translate/pco"
	"github.com/slingshot-dev/slingshot/internal/translate/servantkeeper"
)

// Systems returns the supported system names, sorted.
func Systems() []string {
	names := []string{acs.System, breeze.System, pco.System, servantkeeper.System}
	sort.Strings(names)
	return names
}

// NewConnector builds the connector for a system, wiring it to its
// mapping tables from the loaded set.
func NewConnector(system string, profile *export.Profile, set *mapping.Set) (export.Connector, error) {
	tables, err := set.System(system)
	if err != nil {
		return nil, err
	}
	ctx := translate.NewContext(tables)
	switch system {
	case breeze.System:
		return breeze.New(profile, ctx), nil
	case pco.System:
		return pco.New(profile, ctx), nil
	case servantkeeper.System:
		return servantkeeper.New(profile, ctx), nil
	case acs.System:
		return acs.New(profile, ctx), nil
	}
	return nil, fmt.Errorf("unknown system %q (supported: %v)", system, Systems())
}
