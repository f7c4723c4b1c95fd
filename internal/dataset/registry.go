package dataset

import (
	"sort"

	"github.com/pkg/errors"
)

// Dataset names shipped with the module.
const (
	AND = "and"
	XOR = "xor"
)

// ErrUnknownDataset is returned when a registry has no set under a name.
var ErrUnknownDataset = errors.New("unknown dataset")

// Registry is the read-only lookup the trainers consume.
type Registry interface {
	Lookup(name string) (*Set, error)
	Names() []string
}

// MapRegistry is a Registry backed by a map. It is not safe to Add while
// other goroutines call Lookup.
type MapRegistry struct {
	sets map[string]*Set
}

// NewRegistry builds a registry holding sets keyed by their names.
func NewRegistry(sets ...*Set) *MapRegistry {
	r := &MapRegistry{sets: make(map[string]*Set, len(sets))}
	for _, s := range sets {
		r.sets[s.Name()] = s
	}
	return r
}

// Add registers s, replacing any set with the same name. The zero
// MapRegistry is ready to use.
func (r *MapRegistry) Add(s *Set) {
	if r.sets == nil {
		r.sets = make(map[string]*Set)
	}
	r.sets[s.Name()] = s
}

// Lookup returns the set registered under name.
func (r *MapRegistry) Lookup(name string) (*Set, error) {
	s, ok := r.sets[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownDataset, "dataset %q", name)
	}
	return s, nil
}

// Names returns the registered names in sorted order.
func (r *MapRegistry) Names() []string {
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a registry with the logical AND and XOR tables over
// bipolar inputs.
func Builtin() *MapRegistry {
	inputs := [][]float64{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}
	table := func(name string, targets ...float64) *Set {
		samples := make([]Sample, len(inputs))
		for i, in := range inputs {
			samples[i] = Sample{Input: in, Target: targets[i]}
		}
		return MustNew(name, samples)
	}
	return NewRegistry(
		table(AND, -1, -1, -1, 1),
		table(XOR, -1, 1, 1, -1),
	)
}
