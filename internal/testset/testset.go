// Package testset defines demo test cases, the named sets that group them, and the
// immutable catalog used to resolve a selector into the sets to run.
package testset

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
)

// SelectorAll selects every test set in a catalog.
const SelectorAll = "all"

var (
	// ErrUnknownTestSet is returned when a selector names no known test set.
	ErrUnknownTestSet = errors.New("unknown test set")

	errNameRequired      = errors.New("test set name is required")
	errReservedName      = errors.New("test set name is reserved")
	errDuplicateName     = errors.New("duplicate test set name")
	errNoCases           = errors.New("test set has no cases")
	errRecordingRequired = errors.New("test case recording path is required")
	errExpectedRequired  = errors.New("test case expected result path is required")
)

// TestCase is one (recording, expected result) pair to verify.
// Paths are relative to the recordings directory unless absolute.
type TestCase struct {
	Recording string
	Expected  string
}

// TestSet is a named group of test cases sharing an optional disc image.
type TestSet struct {
	Name      string
	DiscImage string
	Cases     []TestCase
}

// clone returns a deep copy so callers can never alias catalog storage.
func (s TestSet) clone() TestSet {
	s.Cases = slices.Clone(s.Cases)
	return s
}

// Validate checks the set is well formed.
func (s TestSet) Validate() error {
	if s.Name == "" {
		return errNameRequired
	}

	if s.Name == SelectorAll {
		return fmt.Errorf("%w: %s", errReservedName, s.Name)
	}

	if len(s.Cases) == 0 {
		return fmt.Errorf("%w: %s", errNoCases, s.Name)
	}

	for i, c := range s.Cases {
		if c.Recording == "" {
			return fmt.Errorf("%w: set %s, case %d", errRecordingRequired, s.Name, i)
		}

		if c.Expected == "" {
			return fmt.Errorf("%w: set %s, case %d", errExpectedRequired, s.Name, i)
		}
	}

	return nil
}

// Catalog is a read-only lookup table of test sets keyed by name.
// It is built once and never mutated; all accessors return copies.
type Catalog struct {
	sets  map[string]TestSet
	order []string
}

// NewCatalog builds a catalog from the given sets, preserving their order.
func NewCatalog(sets ...TestSet) (*Catalog, error) {
	c := &Catalog{
		sets:  make(map[string]TestSet, len(sets)),
		order: make([]string, 0, len(sets)),
	}

	for _, s := range sets {
		if err := s.Validate(); err != nil {
			return nil, err
		}

		if _, exists := c.sets[s.Name]; exists {
			return nil, fmt.Errorf("%w: %s", errDuplicateName, s.Name)
		}

		c.sets[s.Name] = s.clone()
		c.order = append(c.order, s.Name)
	}

	return c, nil
}

// Names returns the set names in catalog order.
func (c *Catalog) Names() []string {
	return slices.Clone(c.order)
}

// Lookup returns the named set.
func (c *Catalog) Lookup(name string) (TestSet, bool) {
	s, ok := c.sets[name]
	if !ok {
		return TestSet{}, false
	}

	return s.clone(), true
}

// Sets returns every set in catalog order.
func (c *Catalog) Sets() []TestSet {
	out := make([]TestSet, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.sets[name].clone())
	}

	return out
}

// Resolve turns a selector into the sets it names: every set for "all",
// otherwise exactly the named set.
func (c *Catalog) Resolve(selector string) ([]TestSet, error) {
	if selector == SelectorAll {
		return c.Sets(), nil
	}

	s, ok := c.Lookup(selector)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTestSet, selector)
	}

	return []TestSet{s}, nil
}

// Merge returns a new catalog holding c's sets followed by extra. A set in
// extra whose name already exists replaces the existing one in place only
// when replace reports true for that name.
func (c *Catalog) Merge(extra []TestSet, replace func(name string) bool) (*Catalog, error) {
	merged := c.Sets()
	index := make(map[string]int, len(merged))

	for i, s := range merged {
		index[s.Name] = i
	}

	for _, s := range extra {
		i, exists := index[s.Name]
		if !exists {
			index[s.Name] = len(merged)
			merged = append(merged, s)

			continue
		}

		if replace == nil || !replace(s.Name) {
			return nil, fmt.Errorf("%w: %s", errDuplicateName, s.Name)
		}

		merged[i] = s
	}

	return NewCatalog(merged...)
}

// CaseCount returns the total number of cases across sets.
func CaseCount(sets []TestSet) int {
	n := 0
	for _, s := range sets {
		n += len(s.Cases)
	}

	return n
}

// ResolvePath joins p onto base unless p is already absolute.
func ResolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(base, p)
}
