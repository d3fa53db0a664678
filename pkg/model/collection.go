package model

import "github.com/vango-dev/backtension/pkg/events"

// Collection is an ordered list of models.
type Collection struct {
	*events.Emitter

	models []*Model
}

// NewCollection returns a collection holding models in order.
func NewCollection(models ...*Model) *Collection {
	c := &Collection{Emitter: events.NewEmitter()}
	c.Add(models...)
	return c
}

// Add appends models, skipping nils and models already present, and
// triggers "add" for each one.
func (c *Collection) Add(models ...*Model) {
	for _, m := range models {
		if m == nil || c.Index(m) >= 0 {
			continue
		}
		c.models = append(c.models, m)
		c.Trigger("add", m, c)
	}
}

// Remove drops m and triggers "remove". It reports whether m was present.
func (c *Collection) Remove(m *Model) bool {
	i := c.Index(m)
	if i < 0 {
		return false
	}
	c.models = append(c.models[:i], c.models[i+1:]...)
	c.Trigger("remove", m, c)
	return true
}

// Len returns the number of models.
func (c *Collection) Len() int { return len(c.models) }

// At returns the model at i, or nil when out of range.
func (c *Collection) At(i int) *Model {
	if i < 0 || i >= len(c.models) {
		return nil
	}
	return c.models[i]
}

// Models returns the models in order.
func (c *Collection) Models() []*Model {
	return append([]*Model(nil), c.models...)
}

// Index returns the position of the model that Is m, or -1.
func (c *Collection) Index(m *Model) int {
	for i, cur := range c.models {
		if cur.Is(m) {
			return i
		}
	}
	return -1
}

// IsValid reports whether every model is valid. An empty collection is
// valid.
func (c *Collection) IsValid() bool {
	for _, m := range c.models {
		if !m.IsValid() {
			return false
		}
	}
	return true
}

// Move repositions the model at from to index to, shifting the models in
// between, and triggers "move". Out-of-range indexes do nothing.
func (c *Collection) Move(from, to int) bool {
	n := len(c.models)
	if from < 0 || from >= n || to < 0 || to >= n {
		return false
	}
	if from == to {
		return true
	}
	m := c.models[from]
	if from < to {
		copy(c.models[from:to], c.models[from+1:to+1])
	} else {
		copy(c.models[to+1:from+1], c.models[to:from])
	}
	c.models[to] = m
	c.Trigger("move", m, from, to)
	return true
}

// Equals reports whether other holds the same models in the same order.
func (c *Collection) Equals(other *Collection) bool {
	if other == nil {
		return false
	}
	if c == other {
		return true
	}
	if len(c.models) != len(other.models) {
		return false
	}
	for i, m := range c.models {
		if !m.Is(other.models[i]) {
			return false
		}
	}
	return true
}
