package mapping

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// LoadMode controls how errors are handled during mapping loading.
type LoadMode int

const (
	// LoadModeFailFast stops on the first error encountered.
	LoadModeFailFast LoadMode = iota
	// LoadModeCollectAll collects all errors before returning.
	LoadModeCollectAll
)

// Error codes surfaced by Load. Stable identifiers for the CLI's JSON
// output.
const (
	ErrCodeGeneric     = "M001" // generic/unknown error
	ErrCodeNotFound    = "M002" // path not found
	ErrCodeNoFiles     = "M003" // no CUE files found
	ErrCodeLoadFailed  = "M004" // CUE load failed
	ErrCodeBuildFailed = "M005" // CUE build failed

	ErrCodeMissingFields = "M101" // entity declares no fields
	ErrCodeBadRule       = "M102" // malformed field rule
	ErrCodeBadKind       = "M103" // unknown coercion kind
	ErrCodeDuplicate     = "M104" // duplicate canonical field
)

// LoadError is an error that occurred while loading mapping files.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads and validates every CUE mapping file in dir, compiling them
// into a Set. Files must declare tables under the path
// mapping.<system>.<entity>. In fail-fast mode the first error aborts; in
// collect-all mode every table that compiles is kept and all errors are
// returned together.
func Load(dir string, mode LoadMode) (*Set, []error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("mappings directory not found: %s", dir)}}
	}
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing mappings directory: %v", err)}}
	}
	if !info.IsDir() {
		return nil, []error{&LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a directory: %s", dir)}}
	}

	cueFiles, err := findCUEFiles(dir)
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("error scanning directory: %v", err)}}
	}
	if len(cueFiles) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeNoFiles, Message: fmt.Sprintf("no CUE files found in %s", dir)}}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: "no CUE instances loaded"}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{&LoadError{Code: ErrCodeLoadFailed, Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("building CUE value: %v", err)}}
	}

	return compileSet(value, mode)
}

func compileSet(value cue.Value, mode LoadMode) (*Set, []error) {
	var errs []error
	set := &Set{tables: map[string]map[string]*Table{}}

	mappingVal := value.LookupPath(cue.ParsePath("mapping"))
	if !mappingVal.Exists() {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: `no "mapping" declaration found`}}
	}

	systems, err := mappingVal.Fields()
	if err != nil {
		return nil, []error{&LoadError{Code: ErrCodeBuildFailed, Message: fmt.Sprintf("iterating systems: %v", err)}}
	}
	for systems.Next() {
		system := systems.Label()
		entities, err := systems.Value().Fields()
		if err != nil {
			errs = append(errs, &LoadError{Code: ErrCodeGeneric, Message: fmt.Sprintf("iterating entities of %s: %v", system, err), Pos: systems.Value().Pos()})
			if mode == LoadModeFailFast {
				return nil, errs
			}
			continue
		}
		for entities.Next() {
			entity := entities.Label()
			table, tableErrs := compileTable(system, entity, entities.Value())
			if len(tableErrs) > 0 {
				errs = append(errs, tableErrs...)
				if mode == LoadModeFailFast {
					return nil, errs
				}
				continue
			}
			if set.tables[system] == nil {
				set.tables[system] = map[string]*Table{}
			}
			set.tables[system][entity] = table
		}
	}

	if len(errs) > 0 {
		return set, errs
	}
	return set, nil
}

// compileTable parses one mapping.<system>.<entity> struct into a Table.
func compileTable(system, entity string, v cue.Value) (*Table, []error) {
	var errs []error
	table := &Table{System: system, Entity: entity, rules: map[string]FieldRule{}}

	if hint := v.LookupPath(cue.ParsePath("source")); hint.Exists() {
		if s, err := hint.String(); err == nil {
			table.SourceHint = s
		}
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if !fieldsVal.Exists() {
		return nil, []error{&LoadError{
			Code:    ErrCodeMissingFields,
			Message: fmt.Sprintf("%s.%s: fields list is required", system, entity),
			Pos:     v.Pos(),
		}}
	}
	iter, err := fieldsVal.List()
	if err != nil {
		return nil, []error{&LoadError{
			Code:    ErrCodeBadRule,
			Message: fmt.Sprintf("%s.%s: fields must be a list: %v", system, entity, err),
			Pos:     fieldsVal.Pos(),
		}}
	}

	for iter.Next() {
		rule, ruleErr := compileRule(system, entity, iter.Value())
		if ruleErr != nil {
			errs = append(errs, ruleErr)
			continue
		}
		if _, dup := table.rules[rule.Canonical]; dup {
			errs = append(errs, &LoadError{
				Code:    ErrCodeDuplicate,
				Message: fmt.Sprintf("%s.%s: duplicate canonical field %q", system, entity, rule.Canonical),
				Pos:     iter.Value().Pos(),
			})
			continue
		}
		table.rules[rule.Canonical] = rule
	}

	if len(errs) > 0 {
		return nil, errs
	}
	if len(table.rules) == 0 {
		return nil, []error{&LoadError{
			Code:    ErrCodeMissingFields,
			Message: fmt.Sprintf("%s.%s: fields list is empty", system, entity),
			Pos:     fieldsVal.Pos(),
		}}
	}
	return table, nil
}

func compileRule(system, entity string, v cue.Value) (FieldRule, error) {
	var rule FieldRule

	canonical, err := stringField(v, "canonical")
	if err != nil || canonical == "" {
		return rule, &LoadError{
			Code:    ErrCodeBadRule,
			Message: fmt.Sprintf("%s.%s: rule is missing canonical", system, entity),
			Pos:     v.Pos(),
		}
	}
	column, err := stringField(v, "column")
	if err != nil || column == "" {
		return rule, &LoadError{
			Code:    ErrCodeBadRule,
			Message: fmt.Sprintf("%s.%s.%s: rule is missing column", system, entity, canonical),
			Pos:     v.Pos(),
		}
	}
	kindStr, err := stringField(v, "kind")
	if err != nil || kindStr == "" {
		return rule, &LoadError{
			Code:    ErrCodeBadRule,
			Message: fmt.Sprintf("%s.%s.%s: rule is missing kind", system, entity, canonical),
			Pos:     v.Pos(),
		}
	}
	kind := Kind(strings.ToLower(kindStr))
	if !ValidKind(kind) {
		return rule, &LoadError{
			Code:    ErrCodeBadKind,
			Message: fmt.Sprintf("%s.%s.%s: unknown kind %q", system, entity, canonical, kindStr),
			Pos:     v.Pos(),
		}
	}

	rule.Canonical = canonical
	rule.Column = column
	rule.Kind = kind
	rule.Default, _ = stringField(v, "default")
	return rule, nil
}

func stringField(v cue.Value, name string) (string, error) {
	f := v.LookupPath(cue.ParsePath(name))
	if !f.Exists() {
		return "", nil
	}
	return f.String()
}

func findCUEFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".cue") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}
