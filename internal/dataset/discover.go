package dataset

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var fileRegexp = regexp.MustCompile(`^[a-z0-9_-]+\.ya?ml$`)

// file is the on-disk layout of a dataset definition.
type file struct {
	Name    string   `yaml:"name"`
	Samples []Sample `yaml:"samples"`
}

// DiscoverFiles returns the dataset definition files beneath root in
// lexical order.
func DiscoverFiles(root string) ([]string, error) {
	entries := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if fileRegexp.MatchString(d.Name()) {
			entries = append(entries, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "discover datasets")
	}
	sort.Strings(entries)
	return entries, nil
}

// LoadFile reads one dataset definition. The name defaults to the file
// name without its extension.
func LoadFile(path string) (*Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read dataset")
	}
	var f file
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, errors.Wrapf(err, "parse dataset %s", path)
	}
	if f.Name == "" {
		base := filepath.Base(path)
		f.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return New(f.Name, f.Samples)
}

// LoadDir discovers and loads every dataset definition beneath root.
func LoadDir(root string) ([]*Set, error) {
	paths, err := DiscoverFiles(root)
	if err != nil {
		return nil, err
	}
	sets := make([]*Set, 0, len(paths))
	for _, p := range paths {
		s, err := LoadFile(p)
		if err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	return sets, nil
}
