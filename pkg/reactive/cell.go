package reactive

// Cell is a reactive wrapper around a single state property. Once a Cell is
// installed, Get and Set are the only way its value is read or written.
type Cell struct {
	key     string
	value   any
	dep     *Dep
	tracker *Tracker
}

// Get returns the current value and registers the Cell's Dep with the
// active Watcher, if any.
func (c *Cell) Get() any {
	if w := c.tracker.Active(); w != nil {
		w.AddDep(c.dep)
	}
	return c.value
}

// Peek returns the current value without tracking.
func (c *Cell) Peek() any {
	return c.value
}

// Set assigns v and synchronously notifies subscribers. A value loosely
// equal to the current one is ignored. The error of the first failing
// subscriber is returned; the new value stays assigned.
func (c *Cell) Set(v any) error {
	if LooseEqual(v, c.value) {
		return nil
	}
	c.value = v
	return c.dep.Notify()
}

// Dep returns the Cell's dependency list.
func (c *Cell) Dep() *Dep {
	return c.dep
}

// Key returns the property name the Cell was installed under.
func (c *Cell) Key() string {
	return c.key
}
