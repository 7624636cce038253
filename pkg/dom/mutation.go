package dom

// MutationOp names a recorded host operation.
type MutationOp string

const (
	OpCreateElement MutationOp = "createElement"
	OpCreateText    MutationOp = "createText"
	OpSetAttribute  MutationOp = "setAttribute"
	OpSetText       MutationOp = "setText"
	OpAppendChild   MutationOp = "appendChild"
	OpInsertBefore  MutationOp = "insertBefore"
	OpRemoveChild   MutationOp = "removeChild"
)

// Mutation is one recorded host operation. Node references are node IDs;
// zero means unused.
type Mutation struct {
	Op     MutationOp `json:"op" yaml:"op"`
	Target uint64     `json:"target" yaml:"target"`
	Parent uint64     `json:"parent,omitempty" yaml:"parent,omitempty"`
	Ref    uint64     `json:"ref,omitempty" yaml:"ref,omitempty"`
	Key    string     `json:"key,omitempty" yaml:"key,omitempty"`
	Value  string     `json:"value,omitempty" yaml:"value,omitempty"`
}

// Mutations returns a copy of the log.
func (d *Document) Mutations() []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Mutation, len(d.log))
	copy(out, d.log)
	return out
}

// Drain returns the log and clears it.
func (d *Document) Drain() []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.log
	d.log = nil
	return out
}

// Subscribe registers fn to be called with every future mutation, after it
// is logged. The returned function unsubscribes.
func (d *Document) Subscribe(fn func(Mutation)) (unsubscribe func()) {
	d.mu.Lock()
	d.sub++
	id := d.sub
	d.subs[id] = fn
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.subs, id)
		d.mu.Unlock()
	}
}

func (d *Document) record(m Mutation) {
	d.mu.Lock()
	d.log = append(d.log, m)
	subs := make([]func(Mutation), 0, len(d.subs))
	for _, fn := range d.subs {
		subs = append(subs, fn)
	}
	d.mu.Unlock()

	for _, fn := range subs {
		fn(m)
	}
}
