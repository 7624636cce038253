package reactive

// Subscriber is anything a Dep can notify.
type Subscriber interface {
	// Update re-evaluates the subscriber after one of its dependencies changed.
	Update() error

	// ID returns a unique identifier for this subscriber.
	ID() uint64
}

// Dep is the ordered subscriber list of a single Cell.
type Dep struct {
	id      uint64
	subs    []Subscriber
	tracker *Tracker
}

// NewDep creates a Dep that is not attached to any Tracker.
func NewDep() *Dep {
	return &Dep{id: nextID()}
}

// ID returns the unique identifier for this Dep.
func (d *Dep) ID() uint64 {
	return d.id
}

// AddSub appends a subscriber. Deduplication is the subscriber's job
// (see Watcher.AddDep).
func (d *Dep) AddSub(s Subscriber) {
	if s == nil {
		return
	}
	d.subs = append(d.subs, s)
}

// removeSub removes a subscriber, keeping the order of the others.
func (d *Dep) removeSub(s Subscriber) {
	sid := s.ID()
	for i, existing := range d.subs {
		if existing.ID() == sid {
			d.subs = append(d.subs[:i], d.subs[i+1:]...)
			return
		}
	}
}

// Subscribers returns a copy of the subscriber list in registration order.
func (d *Dep) Subscribers() []Subscriber {
	subs := make([]Subscriber, len(d.subs))
	copy(subs, d.subs)
	return subs
}

// Len returns the number of registered subscribers.
func (d *Dep) Len() int {
	return len(d.subs)
}

// Notify calls Update on every subscriber registered at the time of the
// call, in registration order. The first error stops the cascade and is
// returned; later subscribers are not updated.
func (d *Dep) Notify() error {
	subs := d.Subscribers()

	if d.tracker != nil && d.tracker.hooks.OnNotify != nil {
		d.tracker.hooks.OnNotify(d.id, len(subs))
	}

	for _, sub := range subs {
		if err := sub.Update(); err != nil {
			return err
		}
	}
	return nil
}
