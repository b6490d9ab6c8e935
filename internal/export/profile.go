package export

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Profile describes one export: which system, where its source files or
// database live, which mapping tables to use, and where the package goes.
// Paths may reference environment variables ($CHURCH_DATA_DIR and
// friends); the CLI loads .env before profiles so credentials and data
// roots stay out of the profile file.
type Profile struct {
	System    string            `yaml:"system"`
	Mappings  string            `yaml:"mappings"`
	Sources   map[string]string `yaml:"sources"`
	Out       string            `yaml:"out"`
	Filename  string            `yaml:"filename"`
	PageLimit int               `yaml:"page_limit"`
}

// LoadProfile reads and validates a YAML profile. Relative paths are left
// relative to the working directory; environment references are expanded.
func LoadProfile(path string) (*Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var p Profile
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parsing profile %s: %w", path, err)
	}
	if p.System == "" {
		return nil, fmt.Errorf("profile %s: system is required", path)
	}
	if p.Mappings == "" {
		return nil, fmt.Errorf("profile %s: mappings directory is required", path)
	}
	if p.Out == "" {
		p.Out = "."
	}
	if p.Filename == "" {
		p.Filename = p.System + ".slingshot"
	}
	if filepath.Ext(p.Filename) == "" {
		p.Filename += ".slingshot"
	}

	p.Mappings = os.ExpandEnv(p.Mappings)
	p.Out = os.ExpandEnv(p.Out)
	for k, v := range p.Sources {
		p.Sources[k] = os.ExpandEnv(v)
	}
	return &p, nil
}

// Source returns the configured path for a named source, or an error
// naming the missing key so connector failures are self-explanatory.
func (p *Profile) Source(name string) (string, error) {
	v, ok := p.Sources[name]
	if !ok || v == "" {
		return "", fmt.Errorf("profile for %s is missing source %q", p.System, name)
	}
	return v, nil
}

// PackagePath is the full path of the .slingshot file this profile writes.
func (p *Profile) PackagePath() string {
	return filepath.Join(p.Out, p.Filename)
}
