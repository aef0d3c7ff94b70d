// Package manifest parses YAML run manifests that select which registered
// cases a run executes and carry suite-level options.
package manifest

import (
	"fmt"
	"os"

	"github.com/sycl-conformance/ctskit/packages/core/suite"
	"gopkg.in/yaml.v3"
)

// Selector matches cases by exact name or by tag. An empty selector matches
// nothing; use a nil Include in Manifest to select everything.
type Selector struct {
	Names []string `yaml:"names,omitempty"`
	Tags  []string `yaml:"tags,omitempty"`
}

// Manifest describes one conformance run: which cases to execute and which
// suite options apply. Options left nil defer to config and CLI flags.
type Manifest struct {
	Suite    string    `yaml:"suite"`
	Interop  *bool     `yaml:"interop,omitempty"`
	Parallel *bool     `yaml:"parallel,omitempty"`
	Include  *Selector `yaml:"include,omitempty"`
	Exclude  *Selector `yaml:"exclude,omitempty"`
}

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	if m.Suite == "" {
		return nil, fmt.Errorf("manifest %s: suite name is required", path)
	}

	return &m, nil
}

// Selected reports whether the manifest selects the given case. Include is
// evaluated first (nil includes everything), then Exclude removes matches.
func (m *Manifest) Selected(c suite.Case) bool {
	if m.Include != nil && !m.Include.matches(c) {
		return false
	}
	if m.Exclude != nil && m.Exclude.matches(c) {
		return false
	}
	return true
}

// Filter returns the subset of cases the manifest selects, preserving order.
func (m *Manifest) Filter(cases []suite.Case) []suite.Case {
	var out []suite.Case
	for _, c := range cases {
		if m.Selected(c) {
			out = append(out, c)
		}
	}
	return out
}

func (s *Selector) matches(c suite.Case) bool {
	for _, name := range s.Names {
		if name == c.Info.Name {
			return true
		}
	}
	for _, want := range s.Tags {
		for _, tag := range c.Tags {
			if tag == want {
				return true
			}
		}
	}
	return false
}
