package testset

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk YAML form of additional test sets.
type Manifest struct {
	TestSets []*ManifestSet `yaml:"test_sets"`
}

// ManifestSet describes one test set in a manifest.
type ManifestSet struct {
	Name      string          `yaml:"name"`
	DiscImage string          `yaml:"disc_image,omitempty"`
	Replace   bool            `yaml:"replace,omitempty"` // Allow overriding a built-in set of the same name
	Cases     []*ManifestCase `yaml:"cases"`
}

// ManifestCase describes one test case in a manifest.
type ManifestCase struct {
	Recording string `yaml:"recording"`
	Expected  string `yaml:"expected"`
}

// LoadManifest reads a manifest file and returns its sets together with the
// names that may replace existing sets.
func LoadManifest(log logrus.FieldLogger, path string) ([]TestSet, map[string]bool, error) {
	log = log.WithField("component", "testset_manifest")

	data, err := os.ReadFile(path) //nolint:gosec // G304: manifest path comes from the operator
	if err != nil {
		return nil, nil, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, nil, fmt.Errorf("parsing yaml: %w", err)
	}

	var (
		sets    = make([]TestSet, 0, len(manifest.TestSets))
		replace = make(map[string]bool)
		seen    = make(map[string]bool)
	)

	for i, ms := range manifest.TestSets {
		if ms == nil {
			return nil, nil, fmt.Errorf("%w at index %d", errNameRequired, i)
		}

		set := TestSet{
			Name:      ms.Name,
			DiscImage: ms.DiscImage,
			Cases:     make([]TestCase, 0, len(ms.Cases)),
		}

		for _, mc := range ms.Cases {
			if mc == nil {
				continue
			}

			set.Cases = append(set.Cases, TestCase{Recording: mc.Recording, Expected: mc.Expected})
		}

		if err := set.Validate(); err != nil {
			return nil, nil, fmt.Errorf("validating manifest set %d: %w", i, err)
		}

		// Replace only overrides sets from the base catalog, never an
		// earlier entry of the same manifest.
		if seen[set.Name] {
			return nil, nil, fmt.Errorf("%w: %s", errDuplicateName, set.Name)
		}
		seen[set.Name] = true

		if ms.Replace {
			replace[set.Name] = true
		}

		sets = append(sets, set)
	}

	log.WithFields(logrus.Fields{
		"path": path,
		"sets": len(sets),
	}).Debug("loaded test set manifest")

	return sets, replace, nil
}

// LoadCatalog returns base extended with the sets from the manifest at path.
// An empty path returns base unchanged.
func LoadCatalog(log logrus.FieldLogger, base *Catalog, path string) (*Catalog, error) {
	if path == "" {
		return base, nil
	}

	sets, replace, err := LoadManifest(log, path)
	if err != nil {
		return nil, fmt.Errorf("loading manifest %s: %w", path, err)
	}

	catalog, err := base.Merge(sets, func(name string) bool { return replace[name] })
	if err != nil {
		return nil, fmt.Errorf("merging manifest %s: %w", path, err)
	}

	return catalog, nil
}
