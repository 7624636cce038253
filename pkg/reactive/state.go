package reactive

import (
	"reflect"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/vango-dev/reactree/internal/errors"
)

// State is an observed plain record: one Cell per key present when the
// record was observed. Nested map[string]any values are observed too and
// stored as *State.
type State struct {
	tracker *Tracker
	cells   map[string]*Cell
	keys    []string
}

func newState(t *Tracker) *State {
	return &State{
		tracker: t,
		cells:   make(map[string]*Cell),
	}
}

// Observe makes every key of data reactive and returns the resulting State.
// Keys are installed in sorted order. A map reachable more than once (including
// through a cycle) is observed once and shared. Slices are stored as plain
// values; their elements are not reactive.
func Observe(t *Tracker, data map[string]any) *State {
	if t == nil {
		t = NewTracker()
	}
	return observe(t, data, make(map[uintptr]*State))
}

func observe(t *Tracker, data map[string]any, seen map[uintptr]*State) *State {
	if data != nil {
		ptr := reflect.ValueOf(data).Pointer()
		if s, ok := seen[ptr]; ok {
			return s
		}
		s := newState(t)
		seen[ptr] = s
		for _, key := range sortedKeys(data) {
			makeReactive(t, s, key, data[key], seen)
		}
		return s
	}
	return newState(t)
}

// MakeReactive installs a Cell for key on owner holding initial. A nested
// map[string]any is observed first. An existing Cell for key is replaced.
func MakeReactive(t *Tracker, owner *State, key string, initial any) *Cell {
	if t == nil {
		t = owner.tracker
	}
	return makeReactive(t, owner, key, initial, make(map[uintptr]*State))
}

func makeReactive(t *Tracker, owner *State, key string, initial any, seen map[uintptr]*State) *Cell {
	dep := t.NewDep()

	value := initial
	if m, ok := initial.(map[string]any); ok && m != nil {
		value = observe(t, m, seen)
	}

	cell := &Cell{
		key:     key,
		value:   value,
		dep:     dep,
		tracker: t,
	}
	owner.install(key, cell)
	return cell
}

func (s *State) install(key string, c *Cell) {
	if _, exists := s.cells[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.cells[key] = c
}

// Tracker returns the tracking context the State was observed with.
func (s *State) Tracker() *Tracker {
	return s.tracker
}

// Get reads key through its Cell. Unknown keys read as nil.
func (s *State) Get(key string) any {
	c, ok := s.cells[key]
	if !ok {
		return nil
	}
	return c.Get()
}

// Peek reads key without tracking.
func (s *State) Peek(key string) any {
	c, ok := s.cells[key]
	if !ok {
		return nil
	}
	return c.Peek()
}

// Set writes key through its Cell. Only keys present at observation time
// can be written. A map written here is stored as-is and is not observed.
func (s *State) Set(key string, v any) error {
	c, ok := s.cells[key]
	if !ok {
		return errors.New("R001").WithDetailf("key %q", key)
	}
	return c.Set(v)
}

// Cell returns the Cell installed for key.
func (s *State) Cell(key string) (*Cell, bool) {
	c, ok := s.cells[key]
	return c, ok
}

// Has reports whether key is reactive on this State.
func (s *State) Has(key string) bool {
	_, ok := s.cells[key]
	return ok
}

// Keys returns the reactive keys in installation order.
func (s *State) Keys() []string {
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Len returns the number of reactive keys.
func (s *State) Len() int {
	return len(s.keys)
}

// Lookup reads a dotted path such as "user.name", tracking every Cell on the
// way. A plain map reached on the path (one written through Set) is indexed
// without tracking; the Cell holding it stays tracked.
func (s *State) Lookup(path string) (any, error) {
	segments := strings.Split(path, ".")
	cur := s
	for i, seg := range segments {
		c, ok := cur.cells[seg]
		if !ok {
			return nil, errors.New("R002").WithDetailf("%q has no key %q", strings.Join(segments[:i], "."), seg)
		}
		v := c.Get()
		if i == len(segments)-1 {
			return v, nil
		}
		switch next := v.(type) {
		case *State:
			cur = next
		case map[string]any:
			return lookupPlain(next, segments, i+1)
		default:
			return nil, errors.New("R002").WithDetailf("%q is not a record", strings.Join(segments[:i+1], "."))
		}
	}
	return nil, errors.New("R002").WithDetail("empty path")
}

// lookupPlain resolves segments[from:] inside plain maps.
func lookupPlain(m map[string]any, segments []string, from int) (any, error) {
	for i := from; i < len(segments); i++ {
		v, ok := m[segments[i]]
		if !ok {
			return nil, errors.New("R002").WithDetailf("%q has no key %q", strings.Join(segments[:i], "."), segments[i])
		}
		if i == len(segments)-1 {
			return v, nil
		}
		next, ok := v.(map[string]any)
		if !ok {
			return nil, errors.New("R002").WithDetailf("%q is not a record", strings.Join(segments[:i+1], "."))
		}
		m = next
	}
	return nil, errors.New("R002").WithDetail("empty path")
}

// Assign writes a dotted path. The final segment must be a reactive key;
// fields inside a plain map written through Set cannot be assigned.
func (s *State) Assign(path string, v any) error {
	segments := strings.Split(path, ".")
	cur := s
	for i, seg := range segments[:len(segments)-1] {
		next, ok := cur.Peek(seg).(*State)
		if !ok {
			prefix := strings.Join(segments[:i+1], ".")
			if _, plain := cur.Peek(seg).(map[string]any); plain {
				return errors.New("R002").
					WithDetailf("%q holds a plain map; its fields are not reactive", prefix).
					WithSuggestion("Replace the whole value with a write to " + prefix)
			}
			return errors.New("R002").WithDetailf("%q is not a record", prefix)
		}
		cur = next
	}
	return cur.Set(segments[len(segments)-1], v)
}

// Snapshot returns an untracked deep copy of the State as plain maps.
func (s *State) Snapshot() map[string]any {
	return s.snapshot(make(map[*State]map[string]any))
}

func (s *State) snapshot(seen map[*State]map[string]any) map[string]any {
	if out, ok := seen[s]; ok {
		return out
	}
	out := make(map[string]any, len(s.keys))
	seen[s] = out
	for _, key := range s.keys {
		v := s.cells[key].Peek()
		if nested, ok := v.(*State); ok && nested != nil {
			v = nested.snapshot(seen)
		}
		out[key] = v
	}
	return out
}

// Decode copies the State into out, a pointer to a struct or map. Struct
// fields are matched by their json tag.
func (s *State) Decode(out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.New("R003").Wrap(err)
	}
	if err := dec.Decode(s.Snapshot()); err != nil {
		return errors.New("R003").Wrap(err)
	}
	return nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
